// Package models provides mesh data, procedural solids, and glTF import/export
// for the wireframe renderer.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/wireframe/pkg/math3d"
)

// ErrIndexOutOfRange is returned when a face references a vertex outside the
// mesh's vertex array.
var ErrIndexOutOfRange = errors.New("face index out of range")

// Face is a triangle given as three indices into Mesh.Vertices.
type Face struct {
	A, B, C int
}

// Indices returns the face's vertex indices in order.
func (f Face) Indices() [3]int {
	return [3]int{f.A, f.B, f.C}
}

// Mesh is a named triangle mesh in local space plus the placement matrix that
// positions it in the world. The placement is applied during rendering, never
// baked into Vertices.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Faces     []Face
	Placement math3d.Mat4
}

// NewMesh creates a mesh with its vertex and face arrays pre-sized. The caller
// must populate every entry before the mesh is rendered.
func NewMesh(name string, vertexCount, faceCount int) *Mesh {
	return &Mesh{
		Name:      name,
		Vertices:  make([]math3d.Vec3, vertexCount),
		Faces:     make([]Face, faceCount),
		Placement: math3d.Identity(),
	}
}

// Validate checks that every face index lies in [0, VertexCount()).
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f.Indices() {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%s face %d: index %d not in [0,%d): %w", m.Name, i, idx, n, ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Bounds returns the local-space axis-aligned bounding box.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	if len(m.Vertices) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max
}
