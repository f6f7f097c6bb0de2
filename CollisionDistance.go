package playrho

// A distance proxy is a view of a single convex piece of a shape,
// expressed in shape-local coordinates: its hull vertices plus the
// radius to grow the hull by. It is what the distance query, manifold
// builder, and time-of-impact solver operate on.
type DistanceProxy struct {
	Vertices []Vec2
	Radius   float64
}

func MakeDistanceProxy(vertices []Vec2, radius float64) DistanceProxy {
	return DistanceProxy{Vertices: vertices, Radius: radius}
}

func (p DistanceProxy) GetVertexCount() int {
	return len(p.Vertices)
}

func (p DistanceProxy) GetVertex(index int) Vec2 {
	Assert(0 <= index && index < len(p.Vertices))
	return p.Vertices[index]
}

// GetSupport returns the index of the vertex most extreme in direction d.
func (p DistanceProxy) GetSupport(d Vec2) int {
	bestIndex := 0
	bestValue := Vec2Dot(p.Vertices[0], d)
	for i := 1; i < len(p.Vertices); i++ {
		value := Vec2Dot(p.Vertices[i], d)
		if value > bestValue {
			bestIndex = i
			bestValue = value
		}
	}

	return bestIndex
}

func (p DistanceProxy) GetSupportVertex(d Vec2) Vec2 {
	return p.Vertices[p.GetSupport(d)]
}

// SimplexCache warm starts Distance. Set count to zero on first call.
type SimplexCache struct {
	Metric float64 // length or area
	Count  int
	IndexA [3]int // vertices on shape A
	IndexB [3]int // vertices on shape B
}

// DistanceStats carries counters for the distance query. Callers that
// want instrumentation supply one through DistanceInput; there is no
// package-level mutable state.
type DistanceStats struct {
	Calls    int
	Iters    int
	MaxIters int
}

// Input for Distance. The shape radii are only consulted when UseRadii
// is set.
type DistanceInput struct {
	ProxyA     DistanceProxy
	ProxyB     DistanceProxy
	TransformA Transform
	TransformB Transform
	UseRadii   bool
	Stats      *DistanceStats
}

// Output for Distance.
type DistanceOutput struct {
	PointA     Vec2 // closest point on shapeA
	PointB     Vec2 // closest point on shapeB
	Distance   float64
	Iterations int // number of GJK iterations used
}

type simplexVertex struct {
	wA     Vec2    // support point in proxyA
	wB     Vec2    // support point in proxyB
	w      Vec2    // wB - wA
	a      float64 // barycentric coordinate for closest point
	indexA int     // wA index
	indexB int     // wB index
}

type simplex struct {
	vs    [3]simplexVertex
	count int
}

func (s *simplex) readCache(cache *SimplexCache, proxyA DistanceProxy, transformA Transform, proxyB DistanceProxy, transformB Transform) {
	Assert(cache.Count <= 3)

	// Copy data from cache.
	s.count = cache.Count
	for i := 0; i < s.count; i++ {
		v := &s.vs[i]
		v.indexA = cache.IndexA[i]
		v.indexB = cache.IndexB[i]
		v.wA = TransformVec2Mul(transformA, proxyA.GetVertex(v.indexA))
		v.wB = TransformVec2Mul(transformB, proxyB.GetVertex(v.indexB))
		v.w = Vec2Sub(v.wB, v.wA)
		v.a = 0.0
	}

	// Compute the new simplex metric, if it is substantially different than
	// old metric then flush the simplex.
	if s.count > 1 {
		metric1 := cache.Metric
		metric2 := s.getMetric()
		if metric2 < 0.5*metric1 || 2.0*metric1 < metric2 || metric2 < Epsilon {
			s.count = 0
		}
	}

	// If the cache is empty or invalid, start from the first vertices.
	if s.count == 0 {
		v := &s.vs[0]
		v.indexA = 0
		v.indexB = 0
		v.wA = TransformVec2Mul(transformA, proxyA.GetVertex(0))
		v.wB = TransformVec2Mul(transformB, proxyB.GetVertex(0))
		v.w = Vec2Sub(v.wB, v.wA)
		v.a = 1.0
		s.count = 1
	}
}

func (s *simplex) writeCache(cache *SimplexCache) {
	cache.Metric = s.getMetric()
	cache.Count = s.count
	for i := 0; i < s.count; i++ {
		cache.IndexA[i] = s.vs[i].indexA
		cache.IndexB[i] = s.vs[i].indexB
	}
}

func (s *simplex) getSearchDirection() Vec2 {
	switch s.count {
	case 1:
		return s.vs[0].w.Negate()

	case 2:
		e12 := Vec2Sub(s.vs[1].w, s.vs[0].w)
		sgn := Vec2Cross(e12, s.vs[0].w.Negate())
		if sgn > 0.0 {
			// Origin is left of e12.
			return Vec2CrossScalarVector(1.0, e12)
		}
		// Origin is right of e12.
		return Vec2CrossVectorScalar(e12, 1.0)

	default:
		Assert(false)
		return Vec2Zero
	}
}

func (s *simplex) getWitnessPoints(pA, pB *Vec2) {
	switch s.count {
	case 1:
		*pA = s.vs[0].wA
		*pB = s.vs[0].wB

	case 2:
		*pA = Vec2Add(
			Vec2MulScalar(s.vs[0].a, s.vs[0].wA),
			Vec2MulScalar(s.vs[1].a, s.vs[1].wA),
		)
		*pB = Vec2Add(
			Vec2MulScalar(s.vs[0].a, s.vs[0].wB),
			Vec2MulScalar(s.vs[1].a, s.vs[1].wB),
		)

	case 3:
		*pA = Vec2Add(
			Vec2Add(
				Vec2MulScalar(s.vs[0].a, s.vs[0].wA),
				Vec2MulScalar(s.vs[1].a, s.vs[1].wA),
			),
			Vec2MulScalar(s.vs[2].a, s.vs[2].wA),
		)
		*pB = *pA

	default:
		Assert(false)
	}
}

func (s *simplex) getMetric() float64 {
	switch s.count {
	case 1:
		return 0.0

	case 2:
		return Vec2Distance(s.vs[0].w, s.vs[1].w)

	case 3:
		return Vec2Cross(
			Vec2Sub(s.vs[1].w, s.vs[0].w),
			Vec2Sub(s.vs[2].w, s.vs[0].w),
		)

	default:
		Assert(false)
		return 0.0
	}
}

// Solve a line segment using barycentric coordinates.
func (s *simplex) solve2() {
	w1 := s.vs[0].w
	w2 := s.vs[1].w
	e12 := Vec2Sub(w2, w1)

	// w1 region
	d12_2 := -Vec2Dot(w1, e12)
	if d12_2 <= 0.0 {
		// a2 <= 0, so we clamp it to 0
		s.vs[0].a = 1.0
		s.count = 1
		return
	}

	// w2 region
	d12_1 := Vec2Dot(w2, e12)
	if d12_1 <= 0.0 {
		// a1 <= 0, so we clamp it to 0
		s.vs[1].a = 1.0
		s.count = 1
		s.vs[0] = s.vs[1]
		return
	}

	// Must be in e12 region.
	inv_d12 := 1.0 / (d12_1 + d12_2)
	s.vs[0].a = d12_1 * inv_d12
	s.vs[1].a = d12_2 * inv_d12
	s.count = 2
}

// Solve a triangle using barycentric coordinates. Possible regions:
// each vertex, each edge, or inside the triangle.
func (s *simplex) solve3() {
	w1 := s.vs[0].w
	w2 := s.vs[1].w
	w3 := s.vs[2].w

	// Edge12
	// [1      1     ][a1] = [1]
	// [w1.e12 w2.e12][a2] = [0]
	// a3 = 0
	e12 := Vec2Sub(w2, w1)
	w1e12 := Vec2Dot(w1, e12)
	w2e12 := Vec2Dot(w2, e12)
	d12_1 := w2e12
	d12_2 := -w1e12

	// Edge13
	// [1      1     ][a1] = [1]
	// [w1.e13 w3.e13][a3] = [0]
	// a2 = 0
	e13 := Vec2Sub(w3, w1)
	w1e13 := Vec2Dot(w1, e13)
	w3e13 := Vec2Dot(w3, e13)
	d13_1 := w3e13
	d13_2 := -w1e13

	// Edge23
	// [1      1     ][a2] = [1]
	// [w2.e23 w3.e23][a3] = [0]
	// a1 = 0
	e23 := Vec2Sub(w3, w2)
	w2e23 := Vec2Dot(w2, e23)
	w3e23 := Vec2Dot(w3, e23)
	d23_1 := w3e23
	d23_2 := -w2e23

	// Triangle123
	n123 := Vec2Cross(e12, e13)

	d123_1 := n123 * Vec2Cross(w2, w3)
	d123_2 := n123 * Vec2Cross(w3, w1)
	d123_3 := n123 * Vec2Cross(w1, w2)

	// w1 region
	if d12_2 <= 0.0 && d13_2 <= 0.0 {
		s.vs[0].a = 1.0
		s.count = 1
		return
	}

	// e12
	if d12_1 > 0.0 && d12_2 > 0.0 && d123_3 <= 0.0 {
		inv_d12 := 1.0 / (d12_1 + d12_2)
		s.vs[0].a = d12_1 * inv_d12
		s.vs[1].a = d12_2 * inv_d12
		s.count = 2
		return
	}

	// e13
	if d13_1 > 0.0 && d13_2 > 0.0 && d123_2 <= 0.0 {
		inv_d13 := 1.0 / (d13_1 + d13_2)
		s.vs[0].a = d13_1 * inv_d13
		s.vs[2].a = d13_2 * inv_d13
		s.count = 2
		s.vs[1] = s.vs[2]
		return
	}

	// w2 region
	if d12_1 <= 0.0 && d23_2 <= 0.0 {
		s.vs[1].a = 1.0
		s.count = 1
		s.vs[0] = s.vs[1]
		return
	}

	// w3 region
	if d13_1 <= 0.0 && d23_1 <= 0.0 {
		s.vs[2].a = 1.0
		s.count = 1
		s.vs[0] = s.vs[2]
		return
	}

	// e23
	if d23_1 > 0.0 && d23_2 > 0.0 && d123_1 <= 0.0 {
		inv_d23 := 1.0 / (d23_1 + d23_2)
		s.vs[1].a = d23_1 * inv_d23
		s.vs[2].a = d23_2 * inv_d23
		s.count = 2
		s.vs[0] = s.vs[2]
		return
	}

	// Must be in triangle123
	inv_d123 := 1.0 / (d123_1 + d123_2 + d123_3)
	s.vs[0].a = d123_1 * inv_d123
	s.vs[1].a = d123_2 * inv_d123
	s.vs[2].a = d123_3 * inv_d123
	s.count = 3
}

// Distance computes the closest points between the two proxies using
// GJK with Voronoi regions and barycentric coordinates. The cache is
// read for warm starting and written back for the next call.
func Distance(output *DistanceOutput, cache *SimplexCache, input *DistanceInput) {
	if input.Stats != nil {
		input.Stats.Calls++
	}

	proxyA := input.ProxyA
	proxyB := input.ProxyB

	transformA := input.TransformA
	transformB := input.TransformB

	// Initialize the simplex.
	var sx simplex
	sx.readCache(cache, proxyA, transformA, proxyB, transformB)

	// These store the vertices of the last simplex so that we
	// can check for duplicates and prevent cycling.
	var saveA, saveB [3]int
	saveCount := 0

	// Main iteration loop.
	iter := 0
	for iter < MaxDistanceIterations {
		// Copy simplex so we can identify duplicates.
		saveCount = sx.count
		for i := 0; i < saveCount; i++ {
			saveA[i] = sx.vs[i].indexA
			saveB[i] = sx.vs[i].indexB
		}

		switch sx.count {
		case 1:
		case 2:
			sx.solve2()
		case 3:
			sx.solve3()
		default:
			Assert(false)
		}

		// If we have 3 points, then the origin is in the corresponding triangle.
		if sx.count == 3 {
			break
		}

		// Get search direction.
		d := sx.getSearchDirection()

		// Ensure the search direction is numerically fit.
		if d.LengthSquared() < Epsilon*Epsilon {
			// The origin is probably contained by a line segment
			// or triangle. Thus the shapes are overlapped.

			// We can't return zero here even though there may be overlap.
			// In case the simplex is a point, segment, or triangle it is
			// difficult to determine if the origin is contained in the CSO
			// or very close to it.
			break
		}

		// Compute a tentative new simplex vertex using support points.
		vertex := &sx.vs[sx.count]
		vertex.indexA = proxyA.GetSupport(RotVec2MulT(transformA.Q, d.Negate()))
		vertex.wA = TransformVec2Mul(transformA, proxyA.GetVertex(vertex.indexA))
		vertex.indexB = proxyB.GetSupport(RotVec2MulT(transformB.Q, d))
		vertex.wB = TransformVec2Mul(transformB, proxyB.GetVertex(vertex.indexB))
		vertex.w = Vec2Sub(vertex.wB, vertex.wA)

		// Iteration count is equated to the number of support point calls.
		iter++
		if input.Stats != nil {
			input.Stats.Iters++
		}

		// Check for duplicate support points. This is the main termination criteria.
		duplicate := false
		for i := 0; i < saveCount; i++ {
			if vertex.indexA == saveA[i] && vertex.indexB == saveB[i] {
				duplicate = true
				break
			}
		}

		// If we found a duplicate support point we must exit to avoid cycling.
		if duplicate {
			break
		}

		// New vertex is ok and needed.
		sx.count++
	}

	if input.Stats != nil {
		input.Stats.MaxIters = MaxInt(input.Stats.MaxIters, iter)
	}

	// Prepare output.
	sx.getWitnessPoints(&output.PointA, &output.PointB)
	output.Distance = Vec2Distance(output.PointA, output.PointB)
	output.Iterations = iter

	// Cache the simplex.
	sx.writeCache(cache)

	// Apply radii if requested.
	if input.UseRadii {
		rA := proxyA.Radius
		rB := proxyB.Radius

		if output.Distance > rA+rB && output.Distance > Epsilon {
			// Shapes are still not overlapped.
			// Move the witness points to the outer surface.
			output.Distance -= rA + rB
			normal := Vec2Sub(output.PointB, output.PointA)
			normal.Normalize()
			output.PointA = Vec2Add(output.PointA, Vec2MulScalar(rA, normal))
			output.PointB = Vec2Sub(output.PointB, Vec2MulScalar(rB, normal))
		} else {
			// Shapes are overlapped when radii are considered.
			// Move the witness points to the middle.
			p := Vec2MulScalar(0.5, Vec2Add(output.PointA, output.PointB))
			output.PointA = p
			output.PointB = p
			output.Distance = 0.0
		}
	}
}
