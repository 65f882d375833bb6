package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/wireframe/pkg/math3d"
)

var (
	// ErrInvalidSize is returned for a zero, negative or non-finite dimension.
	ErrInvalidSize = errors.New("size must be positive")
	// ErrTriangleBudget is returned when a triangle budget is too small to
	// close the solid or too large to allocate.
	ErrTriangleBudget = errors.New("triangle budget out of range")
)

// Minimum budgets. Each one yields at least three rim vertices (or one full
// ring for the sphere), the smallest count that still encloses a volume.
const (
	MinSphereRings       = 3
	MinCylinderTriangles = 12
	MinConeTriangles     = 6
)

// Maximum budgets. They keep vertex and face counts well inside int32, so
// the count arithmetic cannot overflow and allocation stays bounded.
const (
	MaxSphereRings       = 1 << 12
	MaxCylinderTriangles = 1 << 24
	MaxConeTriangles     = 1 << 24
)

// Fixed box topology: 8 corners, 2 triangles on each of the 6 sides.
var boxFaces = [12]Face{
	{0, 1, 2}, {1, 2, 3}, // front  (z+)
	{1, 3, 6}, {1, 5, 6}, // right  (x+)
	{0, 1, 4}, {1, 4, 5}, // top    (y+)
	{2, 3, 7}, {3, 6, 7}, // bottom (y-)
	{0, 2, 7}, {0, 4, 7}, // left   (x-)
	{4, 5, 6}, {4, 6, 7}, // back   (z-)
}

// SphereCounts returns the vertex and face counts of a UV-sphere with the
// given ring resolution. rings must not exceed MaxSphereRings.
func SphereCounts(rings int) (vertices, faces int) {
	return rings * rings, rings * (rings - 1)
}

// CylinderCounts returns the rim vertex count and the vertex and face counts
// of a cylinder built from a triangle budget. The budget is truncated to a
// multiple of 4, so up to 3 requested triangles are never generated.
func CylinderCounts(triangles int) (rim, vertices, faces int) {
	rim = triangles / 4
	return rim, 2 * (rim + 1), 4 * rim
}

// ConeCounts returns the rim vertex count and the vertex and face counts of a
// cone built from a triangle budget. An odd budget loses one triangle.
func ConeCounts(triangles int) (rim, vertices, faces int) {
	rim = triangles / 2
	return rim, rim + 2, 2 * rim
}

// NewBox generates an axis-aligned box centered at the origin.
func NewBox(lx, ly, lz float64, placement math3d.Mat4) (*Mesh, error) {
	if err := checkSizes("box", lx, ly, lz); err != nil {
		return nil, err
	}

	hx, hy, hz := lx/2, ly/2, lz/2
	mesh := NewMesh("Box", 8, len(boxFaces))
	copy(mesh.Vertices, []math3d.Vec3{
		{X: -hx, Y: hy, Z: hz},
		{X: hx, Y: hy, Z: hz},
		{X: -hx, Y: -hy, Z: hz},
		{X: hx, Y: -hy, Z: hz},
		{X: -hx, Y: hy, Z: -hz},
		{X: hx, Y: hy, Z: -hz},
		{X: hx, Y: -hy, Z: -hz},
		{X: -hx, Y: -hy, Z: -hz},
	})
	copy(mesh.Faces, boxFaces[:])
	mesh.Placement = placement

	return finish(mesh)
}

// NewSphere generates a UV-sphere with rings latitude rings of rings points
// each. Ring i sits at polar angle i/(rings-1)·π − π/2, so the first and last
// rings collapse to the poles as rings of coincident points; they are not
// merged into single vertices.
func NewSphere(radius float64, rings int, placement math3d.Mat4) (*Mesh, error) {
	if err := checkSizes("sphere", radius); err != nil {
		return nil, err
	}
	if rings < MinSphereRings || rings > MaxSphereRings {
		return nil, fmt.Errorf("sphere: %d rings, need %d to %d: %w", rings, MinSphereRings, MaxSphereRings, ErrTriangleBudget)
	}

	n := rings
	vertexCount, faceCount := SphereCounts(n)
	mesh := NewMesh("Sphere", vertexCount, faceCount)

	for i := range n {
		y := math.Sin(float64(i)/float64(n-1)*math.Pi-math.Pi/2) * radius
		// sin can overshoot radius by an ulp at the poles
		ringRadius := math.Sqrt(math.Max(0, radius*radius-y*y))
		for j := range n {
			mesh.Vertices[i*n+j] = rimPoint(j, n, ringRadius, y)
		}
	}

	for i := range n - 1 {
		s := i * n
		for j := range n {
			mesh.Faces[s+j] = Face{A: s + j, B: s + (j+1)%n, C: s + j + n}
		}
	}
	mesh.Placement = placement

	return finish(mesh)
}

// NewCylinder generates a capped cylinder centered at the origin with its axis
// along Y. triangles/4 rim vertices are used per cap.
//
// Vertex layout: 0 top center, 1..k top rim, k+1 bottom center,
// k+2..2k+1 bottom rim.
func NewCylinder(radius, height float64, triangles int, placement math3d.Mat4) (*Mesh, error) {
	if err := checkSizes("cylinder", radius, height); err != nil {
		return nil, err
	}
	if triangles < MinCylinderTriangles || triangles > MaxCylinderTriangles {
		return nil, fmt.Errorf("cylinder: %d triangles, need %d to %d: %w", triangles, MinCylinderTriangles, MaxCylinderTriangles, ErrTriangleBudget)
	}

	k, vertexCount, faceCount := CylinderCounts(triangles)
	half := height / 2
	top, bottom := 0, k+1

	mesh := NewMesh("Cylinder", vertexCount, faceCount)
	mesh.Vertices[top] = math3d.V3(0, half, 0)
	mesh.Vertices[bottom] = math3d.V3(0, -half, 0)
	for j := range k {
		mesh.Vertices[top+1+j] = rimPoint(j, k, radius, half)
		mesh.Vertices[bottom+1+j] = rimPoint(j, k, radius, -half)
	}

	for j := range k {
		next := (j + 1) % k
		t0, t1 := top+1+j, top+1+next
		b0, b1 := bottom+1+j, bottom+1+next

		mesh.Faces[j] = Face{A: top, B: t0, C: t1}
		mesh.Faces[k+j] = Face{A: bottom, B: b0, C: b1}
		mesh.Faces[2*k+j] = Face{A: t0, B: t1, C: b0}
		mesh.Faces[3*k+j] = Face{A: t1, B: b0, C: b1}
	}
	mesh.Placement = placement

	return finish(mesh)
}

// NewCone generates a cone centered at the origin with its apex on +Y.
// triangles/2 rim vertices are used.
//
// Vertex layout: 0 apex, 1..k rim, k+1 base center.
func NewCone(radius, height float64, triangles int, placement math3d.Mat4) (*Mesh, error) {
	if err := checkSizes("cone", radius, height); err != nil {
		return nil, err
	}
	if triangles < MinConeTriangles || triangles > MaxConeTriangles {
		return nil, fmt.Errorf("cone: %d triangles, need %d to %d: %w", triangles, MinConeTriangles, MaxConeTriangles, ErrTriangleBudget)
	}

	k, vertexCount, faceCount := ConeCounts(triangles)
	half := height / 2
	apex, center := 0, k+1

	mesh := NewMesh("Cone", vertexCount, faceCount)
	mesh.Vertices[apex] = math3d.V3(0, half, 0)
	mesh.Vertices[center] = math3d.V3(0, -half, 0)
	for j := range k {
		mesh.Vertices[1+j] = rimPoint(j, k, radius, -half)
	}

	for j := range k {
		r0, r1 := 1+j, 1+(j+1)%k
		mesh.Faces[j] = Face{A: apex, B: r0, C: r1}
		mesh.Faces[k+j] = Face{A: center, B: r0, C: r1}
	}
	mesh.Placement = placement

	return finish(mesh)
}

// rimPoint returns point j of n evenly spaced around a circle of the given
// radius in the plane at height y.
func rimPoint(j, n int, radius, y float64) math3d.Vec3 {
	angle := float64(j) / float64(n) * 2 * math.Pi
	return math3d.V3(math.Cos(angle)*radius, y, math.Sin(angle)*radius)
}

func checkSizes(kind string, sizes ...float64) error {
	for _, s := range sizes {
		if !(s > 0) || math.IsInf(s, 0) {
			return fmt.Errorf("%s: size %v: %w", kind, s, ErrInvalidSize)
		}
	}
	return nil
}

func finish(mesh *Mesh) (*Mesh, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}
