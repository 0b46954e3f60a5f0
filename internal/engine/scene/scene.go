// Package scene holds the immutable wireframe geometry that the renderer draws.
package scene

import (
	"image/color"

	"github.com/Faultbox/wirehouse/pkg/math"
)

// Edge connects two vertices of a mesh by index.
type Edge struct {
	A, B int
}

// InRange reports whether both indices address one of n vertices.
func (e Edge) InRange(n int) bool {
	return e.A >= 0 && e.A < n && e.B >= 0 && e.B < n
}

// Mesh is a colored wireframe object: vertices plus edges between them.
// A Mesh never changes after NewMesh returns.
type Mesh struct {
	vertices []math.Vec3
	edges    []Edge
	valid    []Edge
	color    color.RGBA
	name     string
}

// NewMesh copies the given geometry into a new Mesh.
// Edges whose indices fall outside the vertex list are kept as given but
// excluded from ValidEdges; they are tolerated, not rejected.
func NewMesh(vertices []math.Vec3, edges []Edge, c color.RGBA) *Mesh {
	m := &Mesh{
		vertices: append([]math.Vec3(nil), vertices...),
		edges:    append([]Edge(nil), edges...),
		color:    c,
	}
	m.valid = make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.InRange(len(vertices)) {
			m.valid = append(m.valid, e)
		}
	}
	return m
}

// Named returns a copy of the mesh carrying a debug name.
func (m *Mesh) Named(name string) *Mesh {
	cp := *m
	cp.name = name
	return &cp
}

// Name returns the debug name, if any.
func (m *Mesh) Name() string { return m.name }

// Color returns the line color.
func (m *Mesh) Color() color.RGBA { return m.color }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.vertices) }

// Vertex returns vertex i. The caller must keep i in range.
func (m *Mesh) Vertex(i int) math.Vec3 { return m.vertices[i] }

// Vertices returns a copy of the vertex list.
func (m *Mesh) Vertices() []math.Vec3 {
	return append([]math.Vec3(nil), m.vertices...)
}

// Edges returns a copy of every edge, including out-of-range ones.
func (m *Mesh) Edges() []Edge {
	return append([]Edge(nil), m.edges...)
}

// ValidEdges returns the edges whose indices are in range.
// The returned slice must not be modified.
func (m *Mesh) ValidEdges() []Edge { return m.valid }

// SkippedEdges returns how many edges are out of range.
func (m *Mesh) SkippedEdges() int { return len(m.edges) - len(m.valid) }

// Scene is an ordered, read-only collection of meshes.
type Scene struct {
	meshes []*Mesh
}

// New creates a scene from meshes. Nil meshes are dropped.
func New(meshes ...*Mesh) *Scene {
	s := &Scene{meshes: make([]*Mesh, 0, len(meshes))}
	for _, m := range meshes {
		if m != nil {
			s.meshes = append(s.meshes, m)
		}
	}
	return s
}

// Len returns the number of meshes.
func (s *Scene) Len() int { return len(s.meshes) }

// At returns mesh i.
func (s *Scene) At(i int) *Mesh { return s.meshes[i] }

// Meshes returns a copy of the mesh list.
func (s *Scene) Meshes() []*Mesh {
	return append([]*Mesh(nil), s.meshes...)
}

// Stats summarizes scene size for logging.
func (s *Scene) Stats() (meshes, vertices, edges int) {
	for _, m := range s.meshes {
		vertices += len(m.vertices)
		edges += len(m.edges)
	}
	return len(s.meshes), vertices, edges
}

// Provider builds the scene once at startup.
type Provider interface {
	Build() *Scene
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func() *Scene

// Build calls f.
func (f ProviderFunc) Build() *Scene { return f() }
