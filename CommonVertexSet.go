package playrho

import "math"

// DefaultMinVertexSeparationSquared is the default squared-distance
// threshold under which two vertices are treated as the same vertex.
// It is the square root of the minimum representable float64 so that
// squaring a distance at the threshold stays representable.
var DefaultMinVertexSeparationSquared = math.Sqrt(math.SmallestNonzeroFloat64)

// VertexSet is an ordered collection of vertices that silently welds
// near-coincident insertions. Used when building polygon shapes so that
// degenerate input cannot produce zero-length edges.
type VertexSet struct {
	vertices      []Vec2
	minSepSquared float64
}

// MakeVertexSet constructs a set welding vertices closer than the square
// root of minSepSquared.
func MakeVertexSet(minSepSquared float64) VertexSet {
	return VertexSet{minSepSquared: minSepSquared}
}

// MakeDefaultVertexSet constructs a set with the default weld threshold.
func MakeDefaultVertexSet() VertexSet {
	return MakeVertexSet(DefaultMinVertexSeparationSquared)
}

func (s *VertexSet) GetMinSeparationSquared() float64 {
	return s.minSepSquared
}

func (s *VertexSet) Size() int {
	return len(s.vertices)
}

func (s *VertexSet) Get(index int) Vec2 {
	return s.vertices[index]
}

// Vertices exposes the accepted vertices in insertion order.
func (s *VertexSet) Vertices() []Vec2 {
	return s.vertices
}

// Find returns the index of the first vertex within the weld threshold
// of v, or -1 when none is.
func (s *VertexSet) Find(v Vec2) int {
	for i := range s.vertices {
		if Vec2DistanceSquared(s.vertices[i], v) < s.minSepSquared {
			return i
		}
	}
	return -1
}

// Add appends v unless it welds onto an existing vertex. Reports whether
// the vertex was accepted.
func (s *VertexSet) Add(v Vec2) bool {
	if s.Find(v) != -1 {
		return false
	}
	s.vertices = append(s.vertices, v)
	return true
}
