package bramble

import "math"

// Primitive is how a Mesh's vertices form triangles.
type Primitive uint8

const (
	PrimitiveTriangleStrip Primitive = iota
	PrimitiveTriangles
	PrimitiveTriangleFan
)

// FloatsPerVertex is the vertex stride of a Mesh: position (3), normal (3),
// texture coordinates (2).
const FloatsPerVertex = 8

const (
	vertexUOffset = 6
	vertexVOffset = 7
)

// Mesh is the geometry of a surface in its unit square, centered on the
// origin. Vertices hold FloatsPerVertex floats each. Indices, when present,
// index triangles for PrimitiveTriangles.
//
// Meshes are shared by the nodes that draw them, except frame and bar meshes
// which are edited per node (see Clone).
type Mesh struct {
	Vertices  []float32
	Indices   []uint16
	Primitive Primitive

	// triangles caches the triangle-list indices of the mesh.
	triangles []uint16
}

// NewMesh returns a mesh over vertices.
func NewMesh(vertices []float32, indices []uint16, prim Primitive) *Mesh {
	return &Mesh{Vertices: vertices, Indices: indices, Primitive: prim}
}

// Clone returns a deep copy of m. A nil mesh clones to nil.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	c := &Mesh{
		Vertices:  append([]float32(nil), m.Vertices...),
		Primitive: m.Primitive,
	}
	if m.Indices != nil {
		c.Indices = append([]uint16(nil), m.Indices...)
	}
	return c
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / FloatsPerVertex }

// SetXOfVertex sets the x position of vertex i.
func (m *Mesh) SetXOfVertex(x float32, i int) { m.Vertices[i*FloatsPerVertex] = x }

// SetYOfVertex sets the y position of vertex i.
func (m *Mesh) SetYOfVertex(y float32, i int) { m.Vertices[i*FloatsPerVertex+1] = y }

// SetZOfVertex sets the z position of vertex i.
func (m *Mesh) SetZOfVertex(z float32, i int) { m.Vertices[i*FloatsPerVertex+2] = z }

// Vertex returns the position and texture coordinates of vertex i.
func (m *Mesh) Vertex(i int) (x, y, z, u, v float32) {
	o := i * FloatsPerVertex
	return m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2], m.Vertices[o+vertexUOffset], m.Vertices[o+vertexVOffset]
}

// TriangleIndices returns the mesh as a triangle list. Strips and fans are
// unrolled once and cached; the topology of a mesh never changes.
func (m *Mesh) TriangleIndices() []uint16 {
	if m.triangles != nil {
		return m.triangles
	}
	n := m.VertexCount()
	switch {
	case m.Indices != nil && m.Primitive == PrimitiveTriangles:
		m.triangles = m.Indices
	case m.Primitive == PrimitiveTriangleStrip:
		for i := 0; i+2 < n; i++ {
			if i%2 == 0 {
				m.triangles = append(m.triangles, uint16(i), uint16(i+1), uint16(i+2))
			} else {
				m.triangles = append(m.triangles, uint16(i+1), uint16(i), uint16(i+2))
			}
		}
	case m.Primitive == PrimitiveTriangleFan:
		for i := 1; i+1 < n; i++ {
			m.triangles = append(m.triangles, 0, uint16(i), uint16(i+1))
		}
	default:
		for i := 0; i+2 < n; i += 3 {
			m.triangles = append(m.triangles, uint16(i), uint16(i+1), uint16(i+2))
		}
	}
	return m.triangles
}

// fanVertexCount is the number of vertices of a fan mesh: the center and
// nine points on the rim.
const fanVertexCount = 10

// UpdateAsAFanWith opens the fan to ratio of a full turn, clockwise from
// the top.
func (m *Mesh) UpdateAsAFanWith(ratio float64) {
	if m.VertexCount() < fanVertexCount {
		warnf(nil, "fan mesh has %d vertices, want %d", m.VertexCount(), fanVertexCount)
		return
	}
	setFanRim(m.Vertices, ratio)
}

func setFanRim(v []float32, ratio float64) {
	for i := 1; i < fanVertexCount; i++ {
		sin, cos := math.Sincos(ratio * 2 * math.Pi * float64(i-1) / 8)
		o := i * FloatsPerVertex
		v[o] = float32(-0.5 * sin)
		v[o+1] = float32(0.5 * cos)
		v[o+vertexUOffset] = float32(0.5 - 0.5*sin)
		v[o+vertexVOffset] = float32(0.5 - 0.5*cos)
	}
}

// --- Default meshes ---

// NewSpriteMesh returns the unit quad as a strip.
func NewSpriteMesh() *Mesh {
	return NewMesh([]float32{
		-0.5, 0.5, 0, 0, 0, 1, 0, 0,
		0.5, 0.5, 0, 0, 0, 1, 1, 0,
		-0.5, -0.5, 0, 0, 0, 1, 0, 1,
		0.5, -0.5, 0, 0, 0, 1, 1, 1,
	}, nil, PrimitiveTriangleStrip)
}

// NewTriangleMesh returns a single triangle.
func NewTriangleMesh() *Mesh {
	return NewMesh([]float32{
		0, 0.5, 0, 0, 0, 1, 0.5, 0,
		0.5, 0.5, 0, 0, 0, 1, 0.067, 0.75,
		-0.5, -0.5, 0, 0, 0, 1, 0.933, 0.75,
	}, nil, PrimitiveTriangles)
}

// NewFanMesh returns a full disc made of eight slices around its center.
func NewFanMesh() *Mesh {
	v := make([]float32, fanVertexCount*FloatsPerVertex)
	for i := 0; i < fanVertexCount; i++ {
		v[i*FloatsPerVertex+5] = 1
	}
	v[vertexUOffset] = 0.5
	v[vertexVOffset] = 0.5
	setFanRim(v, 1)
	idx := make([]uint16, 0, 24)
	for i := 1; i < fanVertexCount-1; i++ {
		idx = append(idx, 0, uint16(i), uint16(i+1))
	}
	return NewMesh(v, idx, PrimitiveTriangles)
}

// newFrameMesh returns the 4x4 vertex grid of a 9-slice frame.
func newFrameMesh() *Mesh {
	const third, twoThirds = 0.333, 0.667
	edges := [4]float32{-0.5, -0.1667, 0.1667, 0.5}
	uvs := [4]float32{0, third, twoThirds, 1}
	v := make([]float32, 0, 16*FloatsPerVertex)
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			v = append(v, edges[col], -edges[row], 0, 0, 0, 1, uvs[col], uvs[row])
		}
	}
	idx := make([]uint16, 0, 54)
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			i := uint16(col*4 + row)
			idx = append(idx, i, i+1, i+4, i+1, i+5, i+4)
		}
	}
	return NewMesh(v, idx, PrimitiveTriangles)
}

// newBarMesh returns the 8-vertex strip of a 3-slice bar.
func newBarMesh() *Mesh {
	return NewMesh([]float32{
		-0.5, 0.5, 0, 0, 0, 1, 0, 0,
		-0.5, -0.5, 0, 0, 0, 1, 0, 1,
		-0.1667, 0.5, 0, 0, 0, 1, 0.333, 0,
		-0.1667, -0.5, 0, 0, 0, 1, 0.333, 1,
		0.1667, 0.5, 0, 0, 0, 1, 0.667, 0,
		0.1667, -0.5, 0, 0, 0, 1, 0.667, 1,
		0.5, 0.5, 0, 0, 0, 1, 1, 0,
		0.5, -0.5, 0, 0, 0, 1, 1, 1,
	}, nil, PrimitiveTriangleStrip)
}

// --- Cache ---

// MeshCache holds the shared meshes of an engine, by name.
type MeshCache struct {
	meshes map[string]*Mesh

	// DefaultSprite, DefaultTriangle and DefaultFan are always present.
	DefaultSprite   *Mesh
	DefaultTriangle *Mesh
	DefaultFan      *Mesh
}

// spriteMesh is the quad every plain surface shares. It is never edited.
var spriteMesh = NewSpriteMesh()

// NewMeshCache returns a cache holding the default meshes.
func NewMeshCache() *MeshCache {
	c := &MeshCache{
		meshes:          make(map[string]*Mesh),
		DefaultSprite:   spriteMesh,
		DefaultTriangle: NewTriangleMesh(),
		DefaultFan:      NewFanMesh(),
	}
	c.meshes["sprite"] = c.DefaultSprite
	c.meshes["triangle"] = c.DefaultTriangle
	c.meshes["fan"] = c.DefaultFan
	return c
}

// GetOrCreate returns the mesh named name, building it with create the
// first time.
func (c *MeshCache) GetOrCreate(name string, create func() *Mesh) *Mesh {
	if m, ok := c.meshes[name]; ok {
		return m
	}
	m := create()
	c.meshes[name] = m
	return m
}

// Get returns the mesh named name, or nil.
func (c *MeshCache) Get(name string) *Mesh { return c.meshes[name] }
