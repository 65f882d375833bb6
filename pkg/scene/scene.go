// Package scene loads scene descriptions from XML and turns them into meshes
// and a camera.
//
// A scene document looks like:
//
//	<SceneElements>
//	  <ArrayOfCuboids>
//	    <Cuboid>
//	      <LengthX>2</LengthX><LengthY>2</LengthY><LengthZ>2</LengthZ>
//	      <Row1>1 0 0 0</Row1><Row2>0 1 0 0</Row2>
//	      <Row3>0 0 1 0</Row3><Row4>0 0 0 1</Row4>
//	    </Cuboid>
//	  </ArrayOfCuboids>
//	  <ArrayOfSpheres>...</ArrayOfSpheres>
//	  <ArrayOfCylinders>...</ArrayOfCylinders>
//	  <ArrayOfCones>...</ArrayOfCones>
//	  <ArrayOfModels>...</ArrayOfModels>
//	  <Camera><Position>1.2 0 8</Position><LookAt>0 0 1</LookAt></Camera>
//	</SceneElements>
//
// Each Row element is one row of a row-major placement matrix.
package scene

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/wireframe/pkg/math3d"
	"github.com/taigrr/wireframe/pkg/models"
	"github.com/taigrr/wireframe/pkg/render"
)

var (
	// ErrDecode is returned when a scene document is not valid XML or does
	// not match the expected layout.
	ErrDecode = errors.New("decode scene")
	// ErrMalformedVector is returned for a camera vector that is not three
	// numbers.
	ErrMalformedVector = errors.New("malformed vector")
)

// Placement holds the four textual rows of a placement matrix.
type Placement struct {
	Row1 string `xml:"Row1"`
	Row2 string `xml:"Row2"`
	Row3 string `xml:"Row3"`
	Row4 string `xml:"Row4"`
}

// Matrix parses the rows. A placement with no rows at all is the identity.
func (p Placement) Matrix() (math3d.Mat4, error) {
	rows := [4]string{p.Row1, p.Row2, p.Row3, p.Row4}
	if strings.TrimSpace(strings.Join(rows[:], "")) == "" {
		return math3d.Identity(), nil
	}
	return models.ParsePlacement(rows)
}

// Cuboid describes an axis-aligned box.
type Cuboid struct {
	LengthX float64 `xml:"LengthX"`
	LengthY float64 `xml:"LengthY"`
	LengthZ float64 `xml:"LengthZ"`
	Placement
}

// Sphere describes a UV-sphere. Triangles is the ring resolution.
type Sphere struct {
	Radius    float64 `xml:"Radius"`
	Triangles int     `xml:"Triangles"`
	Placement
}

// Cylinder describes a capped cylinder built from a triangle budget.
type Cylinder struct {
	Radius    float64 `xml:"Radius"`
	Height    float64 `xml:"Height"`
	Triangles int     `xml:"Triangles"`
	Placement
}

// Cone describes a cone built from a triangle budget.
type Cone struct {
	Radius    float64 `xml:"Radius"`
	Height    float64 `xml:"Height"`
	Triangles int     `xml:"Triangles"`
	Placement
}

// Model references a glTF binary file. Relative paths are resolved against
// the scene file's directory.
type Model struct {
	Path string `xml:"Path"`
	Placement
}

// CameraElement holds the optional camera as space-separated triples.
type CameraElement struct {
	Position string `xml:"Position"`
	LookAt   string `xml:"LookAt"`
	Up       string `xml:"Up"`
}

// Scene is a decoded scene document.
type Scene struct {
	XMLName   xml.Name       `xml:"SceneElements"`
	Cuboids   []Cuboid       `xml:"ArrayOfCuboids>Cuboid"`
	Spheres   []Sphere       `xml:"ArrayOfSpheres>Sphere"`
	Cylinders []Cylinder     `xml:"ArrayOfCylinders>Cylinder"`
	Cones     []Cone         `xml:"ArrayOfCones>Cone"`
	Models    []Model        `xml:"ArrayOfModels>Model"`
	View      *CameraElement `xml:"Camera"`

	dir string
}

// Load reads and decodes the scene at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)

	render.Logger().Info("scene loaded",
		"path", path,
		"cuboids", len(s.Cuboids),
		"spheres", len(s.Spheres),
		"cylinders", len(s.Cylinders),
		"cones", len(s.Cones),
		"models", len(s.Models),
	)
	return s, nil
}

// Parse decodes a scene document. Model paths in a parsed scene resolve
// against the working directory.
func Parse(r io.Reader) (*Scene, error) {
	var s Scene
	if err := xml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &s, nil
}

// Len returns the number of mesh descriptors in the scene.
func (s *Scene) Len() int {
	return len(s.Cuboids) + len(s.Spheres) + len(s.Cylinders) + len(s.Cones) + len(s.Models)
}

// Meshes builds every mesh in document order: cuboids, spheres, cylinders,
// cones, then models. The first failure aborts the build; the error names
// the element kind and its index.
func (s *Scene) Meshes() ([]*models.Mesh, error) {
	meshes := make([]*models.Mesh, 0, s.Len())

	add := func(kind string, i int, p Placement, build func(math3d.Mat4) (*models.Mesh, error)) error {
		m, err := p.Matrix()
		if err != nil {
			return fmt.Errorf("%s %d: %w", kind, i, err)
		}
		mesh, err := build(m)
		if err != nil {
			return fmt.Errorf("%s %d: %w", kind, i, err)
		}
		meshes = append(meshes, mesh)
		return nil
	}

	for i, c := range s.Cuboids {
		err := add("cuboid", i, c.Placement, func(m math3d.Mat4) (*models.Mesh, error) {
			return models.NewBox(c.LengthX, c.LengthY, c.LengthZ, m)
		})
		if err != nil {
			return nil, err
		}
	}
	for i, sp := range s.Spheres {
		err := add("sphere", i, sp.Placement, func(m math3d.Mat4) (*models.Mesh, error) {
			return models.NewSphere(sp.Radius, sp.Triangles, m)
		})
		if err != nil {
			return nil, err
		}
	}
	for i, c := range s.Cylinders {
		err := add("cylinder", i, c.Placement, func(m math3d.Mat4) (*models.Mesh, error) {
			return models.NewCylinder(c.Radius, c.Height, c.Triangles, m)
		})
		if err != nil {
			return nil, err
		}
	}
	for i, c := range s.Cones {
		err := add("cone", i, c.Placement, func(m math3d.Mat4) (*models.Mesh, error) {
			return models.NewCone(c.Radius, c.Height, c.Triangles, m)
		})
		if err != nil {
			return nil, err
		}
	}
	for i, md := range s.Models {
		err := add("model", i, md.Placement, func(m math3d.Mat4) (*models.Mesh, error) {
			return models.LoadGLB(s.resolve(md.Path), m)
		})
		if err != nil {
			return nil, err
		}
	}

	return meshes, nil
}

// Camera returns the scene's camera, or render.DefaultCamera when the scene
// does not define one. Missing fields fall back to the default camera's.
func (s *Scene) Camera() (*render.Camera, error) {
	def := render.DefaultCamera()
	if s.View == nil {
		return def, nil
	}

	pos, err := parseVector(s.View.Position, def.Position)
	if err != nil {
		return nil, fmt.Errorf("camera position: %w", err)
	}
	look, err := parseVector(s.View.LookAt, def.Look)
	if err != nil {
		return nil, fmt.Errorf("camera look: %w", err)
	}
	up, err := parseVector(s.View.Up, def.Up)
	if err != nil {
		return nil, fmt.Errorf("camera up: %w", err)
	}
	return render.NewCamera(pos, look, up), nil
}

func (s *Scene) resolve(path string) string {
	if filepath.IsAbs(path) || s.dir == "" {
		return path
	}
	return filepath.Join(s.dir, path)
}

func parseVector(text string, fallback math3d.Vec3) (math3d.Vec3, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return fallback, nil
	}
	if len(fields) != 3 {
		return math3d.Vec3{}, fmt.Errorf("%q: want 3 values, got %d: %w", text, len(fields), ErrMalformedVector)
	}
	var v [3]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("%q: %w", text, ErrMalformedVector)
		}
		v[i] = x
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}
