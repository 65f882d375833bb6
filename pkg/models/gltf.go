package models

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/wireframe/pkg/math3d"
)

// ErrNoGeometry is returned when a glTF document holds no triangle primitives.
var ErrNoGeometry = errors.New("no triangle geometry")

// LoadGLB loads every triangle primitive of a glTF/GLB file into a single mesh
// named after the file. Node transforms in the file are ignored; the given
// placement positions the mesh instead.
func LoadGLB(path string, placement math3d.Mat4) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path), 0, 0)
	for _, m := range doc.Meshes {
		if err := appendGLTFMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoGeometry)
	}
	mesh.Placement = placement

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// appendGLTFMesh extracts positions and triangles from a glTF mesh.
func appendGLTFMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(mesh.Vertices)
		for _, p := range positions {
			mesh.Vertices = append(mesh.Vertices, math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
		}

		if prim.Indices == nil {
			// No indices, assume sequential triangles
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, Face{A: base + i, B: base + i + 1, C: base + i + 2})
			}
			continue
		}

		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{
				A: base + int(indices[i]),
				B: base + int(indices[i+1]),
				C: base + int(indices[i+2]),
			})
		}
	}
	return nil
}

// SaveGLB writes the meshes to a binary glTF file, one node per mesh. Each
// node carries the mesh's placement as its matrix, which uses the same
// column-major layout as math3d.Mat4.
func SaveGLB(path string, meshes []*Mesh) error {
	doc := gltf.NewDocument()

	for _, mesh := range meshes {
		positions := make([][3]float32, len(mesh.Vertices))
		for i, v := range mesh.Vertices {
			positions[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
		}
		indices := make([]uint32, 0, 3*len(mesh.Faces))
		for _, f := range mesh.Faces {
			indices = append(indices, uint32(f.A), uint32(f.B), uint32(f.C))
		}

		prim := &gltf.Primitive{
			Mode:       gltf.PrimitiveTriangles,
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: map[string]int{gltf.POSITION: modeler.WritePosition(doc, positions)},
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: mesh.Name, Primitives: []*gltf.Primitive{prim}})

		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:   mesh.Name,
			Mesh:   gltf.Index(len(doc.Meshes) - 1),
			Matrix: [16]float64(mesh.Placement),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}
