package playrho

type ShapeType uint8

const (
	ShapeTypeCircle ShapeType = iota
	ShapeTypeEdge
	ShapeTypePolygon
	ShapeTypeChain
)

// Shape is a closed variant over the supported convex geometries. A
// shape only exposes the capabilities the collision pipeline consumes:
// its type tag and the distance proxies of its children. Every child
// proxy is a convex vertex hull grown by a radius; a circle is a
// one-vertex hull, an edge a two-vertex hull.
type Shape struct {
	shapeType ShapeType
	radius    float64
	vertices  []Vec2
}

// MakeCircleShape constructs a circle with the given local center.
func MakeCircleShape(center Vec2, radius float64) Shape {
	Assert(radius >= 0.0)
	return Shape{
		shapeType: ShapeTypeCircle,
		radius:    radius,
		vertices:  []Vec2{center},
	}
}

// MakeEdgeShape constructs a two-sided line segment.
func MakeEdgeShape(v1, v2 Vec2) Shape {
	return Shape{
		shapeType: ShapeTypeEdge,
		radius:    PolygonRadius,
		vertices:  []Vec2{v1, v2},
	}
}

// MakeChainShape constructs an open chain of line segments from the
// given vertex list. Each segment is one child proxy.
func MakeChainShape(vertices []Vec2) Shape {
	Assert(len(vertices) >= 2)
	vs := make([]Vec2, len(vertices))
	copy(vs, vertices)
	return Shape{
		shapeType: ShapeTypeChain,
		radius:    PolygonRadius,
		vertices:  vs,
	}
}

// MakePolygonShape constructs a convex polygon from the given points.
// Near-coincident points are welded, then the convex hull of the
// survivors is computed, so the result may have fewer vertices than
// were passed in. The interior ends up to the left of each edge.
func MakePolygonShape(points []Vec2) Shape {
	Assert(3 <= len(points) && len(points) <= MaxPolygonVertices)

	n := MinInt(len(points), MaxPolygonVertices)

	// Perform welding and copy vertices into a local buffer.
	weldSquared := (0.5 * LinearSlop) * (0.5 * LinearSlop)
	set := MakeVertexSet(weldSquared)
	for i := 0; i < n; i++ {
		set.Add(points[i])
	}

	ps := set.Vertices()
	n = len(ps)

	// Welding a valid polygon down below a triangle is a caller bug.
	Assert(n >= 3)

	hull := giftWrapHull(ps)
	Assert(len(hull) >= 3)

	vertices := make([]Vec2, len(hull))
	for i, idx := range hull {
		vertices[i] = ps[idx]
	}

	// Ensure the edges have non-zero length.
	for i := range vertices {
		i2 := 0
		if i+1 < len(vertices) {
			i2 = i + 1
		}
		edge := Vec2Sub(vertices[i2], vertices[i])
		Assert(edge.LengthSquared() > Epsilon*Epsilon)
	}

	return Shape{
		shapeType: ShapeTypePolygon,
		radius:    PolygonRadius,
		vertices:  vertices,
	}
}

// MakeBoxShape constructs an axis-aligned box polygon from half-extents.
func MakeBoxShape(hx, hy float64) Shape {
	return Shape{
		shapeType: ShapeTypePolygon,
		radius:    PolygonRadius,
		vertices: []Vec2{
			MakeVec2(-hx, -hy),
			MakeVec2(hx, -hy),
			MakeVec2(hx, hy),
			MakeVec2(-hx, hy),
		},
	}
}

// giftWrapHull computes the counter-clockwise convex hull of ps as
// indices into ps, using the gift wrapping algorithm.
func giftWrapHull(ps []Vec2) []int {
	n := len(ps)

	// Find the right most point on the hull.
	i0 := 0
	x0 := ps[0].X
	for i := 1; i < n; i++ {
		x := ps[i].X
		if x > x0 || (x == x0 && ps[i].Y < ps[i0].Y) {
			i0 = i
			x0 = x
		}
	}

	var hull []int
	ih := i0

	for {
		Assert(len(hull) < MaxPolygonVertices)
		hull = append(hull, ih)

		ie := 0
		for j := 1; j < n; j++ {
			if ie == ih {
				ie = j
				continue
			}

			r := Vec2Sub(ps[ie], ps[ih])
			v := Vec2Sub(ps[j], ps[ih])
			c := Vec2Cross(r, v)
			if c < 0.0 {
				ie = j
			}

			// Collinearity check
			if c == 0.0 && v.LengthSquared() > r.LengthSquared() {
				ie = j
			}
		}

		ih = ie

		if ie == i0 {
			break
		}
	}

	return hull
}

func (s Shape) Type() ShapeType {
	return s.shapeType
}

func (s Shape) Radius() float64 {
	return s.radius
}

// ChildCount returns the number of convex children of this shape.
func (s Shape) ChildCount() int {
	if s.shapeType == ShapeTypeChain {
		return len(s.vertices) - 1
	}
	return 1
}

// ChildProxy returns the distance proxy of child index.
func (s Shape) ChildProxy(index int) DistanceProxy {
	Assert(0 <= index && index < s.ChildCount())
	if s.shapeType == ShapeTypeChain {
		return MakeDistanceProxy(s.vertices[index:index+2], s.radius)
	}
	return MakeDistanceProxy(s.vertices, s.radius)
}
