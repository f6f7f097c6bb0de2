package playrho

import "math"

const NullFeature uint8 = math.MaxUint8

type ContactFeatureType uint8

const (
	ContactFeatureVertex ContactFeatureType = 0
	ContactFeatureFace   ContactFeatureType = 1
)

// ContactFeature identifies the pair of shape features that intersect
// to form a contact point. This must be 4 bytes or less since it is the
// key that carries impulses across steps.
type ContactFeature struct {
	IndexA uint8              // feature index on shapeA
	IndexB uint8              // feature index on shapeB
	TypeA  ContactFeatureType // the feature type on shapeA
	TypeB  ContactFeatureType // the feature type on shapeB
}

func MakeVertexVertexFeature(indexA, indexB uint8) ContactFeature {
	return ContactFeature{
		IndexA: indexA,
		IndexB: indexB,
		TypeA:  ContactFeatureVertex,
		TypeB:  ContactFeatureVertex,
	}
}

func MakeFaceVertexFeature(indexA, indexB uint8) ContactFeature {
	return ContactFeature{
		IndexA: indexA,
		IndexB: indexB,
		TypeA:  ContactFeatureFace,
		TypeB:  ContactFeatureVertex,
	}
}

// Key packs the feature into a single comparable value. Used to quickly
// match contact points across steps.
func (cf ContactFeature) Key() uint32 {
	var key uint32
	key |= uint32(cf.IndexA)
	key |= uint32(cf.IndexB) << 8
	key |= uint32(cf.TypeA) << 16
	key |= uint32(cf.TypeB) << 24
	return key
}

// Flipped returns the feature with the roles of shape A and B swapped.
func (cf ContactFeature) Flipped() ContactFeature {
	return ContactFeature{
		IndexA: cf.IndexB,
		IndexB: cf.IndexA,
		TypeA:  cf.TypeB,
		TypeB:  cf.TypeA,
	}
}

type ManifoldType uint8

const (
	// ManifoldTypeUnset is the type of a manifold with no points.
	ManifoldTypeUnset ManifoldType = iota
	ManifoldTypeCircles
	ManifoldTypeFaceA
	ManifoldTypeFaceB
)

// A manifold point is a contact point belonging to a contact manifold.
// The local point usage depends on the manifold type:
// - circles: the local center of shape B
// - faceA: the local center of circle B or the clip point of polygon B
// - faceB: the clip point of polygon A
// This structure is stored across time steps, so we keep it small.
// Note: the impulses are used for internal caching and may not provide
// reliable contact forces, especially for high speed collisions.
type ManifoldPoint struct {
	LocalPoint     Vec2           // usage depends on manifold type
	NormalImpulse  float64        // the non-penetration impulse
	TangentImpulse float64        // the friction impulse
	Feature        ContactFeature // uniquely identifies a contact point between two shapes
}

// A manifold for two touching convex shapes. Supported contact cases:
// - clip point versus plane with radius
// - point versus point with radius (circles)
// The local point usage depends on the manifold type:
// - circles: the local center of shape A
// - faceA: the center of faceA
// - faceB: the center of faceB
// Similarly the local normal usage:
// - circles: not used, holds the invalid sentinel
// - faceA: the normal on shape A
// - faceB: the normal on shape B
// Contacts are stored this way so that position correction can account
// for movement, which is critical for continuous physics.
// A zero Manifold is the unset manifold: no points, type unset.
type Manifold struct {
	Points      [MaxManifoldPoints]ManifoldPoint // the points of contact
	LocalNormal Vec2                             // not used for circles
	LocalPoint  Vec2                             // usage depends on manifold type
	Type        ManifoldType
	PointCount  int // the number of manifold points
}

// ManifoldEquals reports whether the two manifolds express the same
// contact. Point comparison is keyed on contact features, so point
// order does not matter.
func ManifoldEquals(a, b Manifold) bool {
	if a.Type != b.Type || a.PointCount != b.PointCount {
		return false
	}

	switch a.Type {
	case ManifoldTypeCircles:
		if !Vec2Equals(a.LocalPoint, b.LocalPoint) {
			return false
		}
	case ManifoldTypeFaceA, ManifoldTypeFaceB:
		if !Vec2Equals(a.LocalNormal, b.LocalNormal) || !Vec2Equals(a.LocalPoint, b.LocalPoint) {
			return false
		}
	}

	for i := 0; i < a.PointCount; i++ {
		key := a.Points[i].Feature.Key()
		found := false
		for j := 0; j < b.PointCount; j++ {
			if b.Points[j].Feature.Key() == key {
				found = Vec2Equals(a.Points[i].LocalPoint, b.Points[j].LocalPoint)
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// AssignImpulses warm starts this manifold's points with the impulses of
// matching points from the old manifold. Points whose feature has no
// match start cold.
func (m *Manifold) AssignImpulses(old Manifold) {
	for i := 0; i < m.PointCount; i++ {
		mp := &m.Points[i]
		mp.NormalImpulse = 0.0
		mp.TangentImpulse = 0.0

		key := mp.Feature.Key()
		for j := 0; j < old.PointCount; j++ {
			if old.Points[j].Feature.Key() == key {
				mp.NormalImpulse = old.Points[j].NormalImpulse
				mp.TangentImpulse = old.Points[j].TangentImpulse
				break
			}
		}
	}
}

type PointState uint8

const (
	PointStateNull    PointState = iota // point does not exist
	PointStateAdd                       // point was added in the update
	PointStatePersist                   // point persisted across the update
	PointStateRemove                    // point was removed in the update
)

// GetPointStates computes the point states of two manifolds. The states
// pertain to the transition from manifold1 to manifold2, so state1 is
// either persist or remove while state2 is either add or persist.
func GetPointStates(state1, state2 *[MaxManifoldPoints]PointState, manifold1, manifold2 Manifold) {
	for i := 0; i < MaxManifoldPoints; i++ {
		state1[i] = PointStateNull
		state2[i] = PointStateNull
	}

	// Detect persists and removes.
	for i := 0; i < manifold1.PointCount; i++ {
		key := manifold1.Points[i].Feature.Key()

		state1[i] = PointStateRemove

		for j := 0; j < manifold2.PointCount; j++ {
			if manifold2.Points[j].Feature.Key() == key {
				state1[i] = PointStatePersist
				break
			}
		}
	}

	// Detect persists and adds.
	for i := 0; i < manifold2.PointCount; i++ {
		key := manifold2.Points[i].Feature.Key()

		state2[i] = PointStateAdd

		for j := 0; j < manifold1.PointCount; j++ {
			if manifold1.Points[j].Feature.Key() == key {
				state2[i] = PointStatePersist
				break
			}
		}
	}
}

// WorldManifold is the world-space evaluation of a contact manifold.
type WorldManifold struct {
	Normal      Vec2                          // world vector pointing from A to B
	Points      [MaxManifoldPoints]Vec2       // world contact point (point of intersection)
	Separations [MaxManifoldPoints]float64    // a negative value indicates overlap
	PointCount  int
}

// MakeWorldManifold evaluates the manifold with both transforms and
// shape radii.
func MakeWorldManifold(manifold *Manifold, xfA Transform, radiusA float64, xfB Transform, radiusB float64) WorldManifold {
	var wm WorldManifold
	wm.PointCount = manifold.PointCount

	if manifold.PointCount == 0 {
		return wm
	}

	switch manifold.Type {
	case ManifoldTypeCircles:
		wm.Normal.Set(1.0, 0.0)
		pointA := TransformVec2Mul(xfA, manifold.LocalPoint)
		pointB := TransformVec2Mul(xfB, manifold.Points[0].LocalPoint)
		if Vec2DistanceSquared(pointA, pointB) > Epsilon*Epsilon {
			wm.Normal = Vec2Sub(pointB, pointA)
			wm.Normal.Normalize()
		}

		cA := Vec2Add(pointA, Vec2MulScalar(radiusA, wm.Normal))
		cB := Vec2Sub(pointB, Vec2MulScalar(radiusB, wm.Normal))

		wm.Points[0] = Vec2MulScalar(0.5, Vec2Add(cA, cB))
		wm.Separations[0] = Vec2Dot(Vec2Sub(cB, cA), wm.Normal)

	case ManifoldTypeFaceA:
		wm.Normal = RotVec2Mul(xfA.Q, manifold.LocalNormal)
		planePoint := TransformVec2Mul(xfA, manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := TransformVec2Mul(xfB, manifold.Points[i].LocalPoint)
			cA := Vec2Add(
				clipPoint,
				Vec2MulScalar(
					radiusA-Vec2Dot(Vec2Sub(clipPoint, planePoint), wm.Normal),
					wm.Normal,
				),
			)
			cB := Vec2Sub(clipPoint, Vec2MulScalar(radiusB, wm.Normal))
			wm.Points[i] = Vec2MulScalar(0.5, Vec2Add(cA, cB))
			wm.Separations[i] = Vec2Dot(Vec2Sub(cB, cA), wm.Normal)
		}

	case ManifoldTypeFaceB:
		wm.Normal = RotVec2Mul(xfB.Q, manifold.LocalNormal)
		planePoint := TransformVec2Mul(xfB, manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := TransformVec2Mul(xfA, manifold.Points[i].LocalPoint)
			cB := Vec2Add(
				clipPoint,
				Vec2MulScalar(
					radiusB-Vec2Dot(Vec2Sub(clipPoint, planePoint), wm.Normal),
					wm.Normal,
				),
			)
			cA := Vec2Sub(clipPoint, Vec2MulScalar(radiusA, wm.Normal))
			wm.Points[i] = Vec2MulScalar(0.5, Vec2Add(cA, cB))
			wm.Separations[i] = Vec2Dot(Vec2Sub(cA, cB), wm.Normal)
		}

		// Ensure normal points from A to B.
		wm.Normal = wm.Normal.Negate()
	}

	return wm
}

// ClipVertex is used for computing contact manifolds.
type ClipVertex struct {
	V       Vec2
	Feature ContactFeature
}

// ClipSegmentToLine performs Sutherland-Hodgman clipping of a segment
// against a half-plane, returning the number of output points (0 to 2).
func ClipSegmentToLine(vOut, vIn []ClipVertex, normal Vec2, offset float64, vertexIndexA int) int {
	numOut := 0

	// Calculate the distance of end points to the line.
	distance0 := Vec2Dot(normal, vIn[0].V) - offset
	distance1 := Vec2Dot(normal, vIn[1].V) - offset

	// If the points are behind the plane.
	if distance0 <= 0.0 {
		vOut[numOut] = vIn[0]
		numOut++
	}

	if distance1 <= 0.0 {
		vOut[numOut] = vIn[1]
		numOut++
	}

	// If the points are on different sides of the plane.
	if distance0*distance1 < 0.0 {
		// Find intersection point of edge and plane.
		interp := distance0 / (distance0 - distance1)
		vOut[numOut].V = Vec2Add(
			vIn[0].V,
			Vec2MulScalar(interp, Vec2Sub(vIn[1].V, vIn[0].V)),
		)

		// VertexA is hitting edgeB.
		vOut[numOut].Feature.IndexA = uint8(vertexIndexA)
		vOut[numOut].Feature.IndexB = vIn[0].Feature.IndexB
		vOut[numOut].Feature.TypeA = ContactFeatureVertex
		vOut[numOut].Feature.TypeB = ContactFeatureFace
		numOut++
	}

	return numOut
}

// proxyFaceNormal computes the outward normal of face index of a
// counter-clockwise proxy hull. It reports false when the face's edge is
// shorter than the weld threshold and thus has no usable direction.
func proxyFaceNormal(p DistanceProxy, index int) (Vec2, bool) {
	count := p.GetVertexCount()
	v1 := p.GetVertex(index)
	v2 := p.GetVertex((index + 1) % count)

	edge := Vec2Sub(v2, v1)
	if edge.LengthSquared() < DefaultMinVertexSeparationSquared {
		return Vec2Zero, false
	}

	n := Vec2CrossVectorScalar(edge, 1.0)
	n.Normalize()
	return n, true
}

// proxyIsPointlike reports whether the proxy degenerates to a single
// location: one vertex, or multiple vertices all within the weld
// threshold of each other.
func proxyIsPointlike(p DistanceProxy) bool {
	count := p.GetVertexCount()
	if count == 1 {
		return true
	}
	v0 := p.GetVertex(0)
	for i := 1; i < count; i++ {
		if Vec2DistanceSquared(p.GetVertex(i), v0) >= DefaultMinVertexSeparationSquared {
			return false
		}
	}
	return true
}

// CollideShapes computes the contact manifold between two convex
// distance proxies. The unset manifold is returned when the proxies are
// not touching. Proxies that degenerate to a point collide as circles.
func CollideShapes(proxyA DistanceProxy, xfA Transform, proxyB DistanceProxy, xfB Transform) Manifold {
	aPoint := proxyIsPointlike(proxyA)
	bPoint := proxyIsPointlike(proxyB)

	switch {
	case aPoint && bPoint:
		return collideCircles(proxyA, xfA, proxyB, xfB)
	case bPoint:
		return collideFaceCircle(proxyA, xfA, proxyB, xfB, false)
	case aPoint:
		return collideFaceCircle(proxyB, xfB, proxyA, xfA, true)
	default:
		return collidePolygons(proxyA, xfA, proxyB, xfB)
	}
}

func collideCircles(proxyA DistanceProxy, xfA Transform, proxyB DistanceProxy, xfB Transform) Manifold {
	pA := TransformVec2Mul(xfA, proxyA.GetVertex(0))
	pB := TransformVec2Mul(xfB, proxyB.GetVertex(0))

	d := Vec2Sub(pB, pA)
	distSqr := Vec2Dot(d, d)
	radius := proxyA.Radius + proxyB.Radius
	if distSqr > radius*radius {
		return Manifold{}
	}

	var manifold Manifold
	manifold.Type = ManifoldTypeCircles
	manifold.LocalPoint = proxyA.GetVertex(0)
	manifold.LocalNormal = Vec2Invalid
	manifold.PointCount = 1
	manifold.Points[0].LocalPoint = proxyB.GetVertex(0)
	manifold.Points[0].Feature = MakeVertexVertexFeature(0, 0)

	return manifold
}

// collideFaceCircle collides a face-bearing proxy against a point-like
// proxy. When flip is set the face shape is shape B of the output
// manifold, otherwise it is shape A.
func collideFaceCircle(faceProxy DistanceProxy, xfFace Transform, circleProxy DistanceProxy, xfCircle Transform, flip bool) Manifold {
	manifoldType := ManifoldTypeFaceA
	if flip {
		manifoldType = ManifoldTypeFaceB
	}

	// Compute circle position in the frame of the face shape.
	c := TransformVec2Mul(xfCircle, circleProxy.GetVertex(0))
	cLocal := TransformVec2MulT(xfFace, c)

	// Find the min separating face.
	normalIndex := -1
	var faceNormal Vec2
	separation := -MaxFloat
	radius := faceProxy.Radius + circleProxy.Radius
	vertexCount := faceProxy.GetVertexCount()

	for i := 0; i < vertexCount; i++ {
		n, ok := proxyFaceNormal(faceProxy, i)
		if !ok {
			continue
		}

		s := Vec2Dot(n, Vec2Sub(cLocal, faceProxy.GetVertex(i)))
		if s > radius {
			// Early out.
			return Manifold{}
		}

		if s > separation {
			separation = s
			normalIndex = i
			faceNormal = n
		}
	}

	if normalIndex == -1 {
		// No usable face. The face proxy welds down to a point.
		return collideCircles(faceProxy, xfFace, circleProxy, xfCircle)
	}

	// Vertices that subtend the incident face.
	vertIndex1 := normalIndex
	vertIndex2 := (vertIndex1 + 1) % vertexCount

	v1 := faceProxy.GetVertex(vertIndex1)
	v2 := faceProxy.GetVertex(vertIndex2)

	var manifold Manifold
	manifold.Points[0].LocalPoint = circleProxy.GetVertex(0)
	manifold.Points[0].Feature = MakeVertexVertexFeature(0, 0)
	manifold.PointCount = 1
	manifold.Type = manifoldType

	// If the center is inside the face shape ...
	if separation < Epsilon {
		manifold.LocalNormal = faceNormal
		manifold.LocalPoint = Vec2MulScalar(0.5, Vec2Add(v1, v2))
		return manifold
	}

	// Compute barycentric coordinates.
	u1 := Vec2Dot(Vec2Sub(cLocal, v1), Vec2Sub(v2, v1))
	u2 := Vec2Dot(Vec2Sub(cLocal, v2), Vec2Sub(v1, v2))
	switch {
	case u1 <= 0.0:
		if Vec2DistanceSquared(cLocal, v1) > radius*radius {
			return Manifold{}
		}

		normal := Vec2Sub(cLocal, v1)
		normal.Normalize()
		manifold.LocalNormal = normal
		manifold.LocalPoint = v1

	case u2 <= 0.0:
		if Vec2DistanceSquared(cLocal, v2) > radius*radius {
			return Manifold{}
		}

		normal := Vec2Sub(cLocal, v2)
		normal.Normalize()
		manifold.LocalNormal = normal
		manifold.LocalPoint = v2

	default:
		faceCenter := Vec2MulScalar(0.5, Vec2Add(v1, v2))
		if Vec2Dot(Vec2Sub(cLocal, faceCenter), faceNormal) > radius {
			return Manifold{}
		}

		manifold.LocalNormal = faceNormal
		manifold.LocalPoint = faceCenter
	}

	return manifold
}

// findMaxSeparation finds the max separation between proxy1 and proxy2
// using the face normals of proxy1. It reports false when proxy1 has no
// usable faces.
func findMaxSeparation(proxy1 DistanceProxy, xf1 Transform, proxy2 DistanceProxy, xf2 Transform) (int, float64, bool) {
	count1 := proxy1.GetVertexCount()
	count2 := proxy2.GetVertexCount()

	xf := TransformMulT(xf2, xf1)

	bestIndex := -1
	maxSeparation := -MaxFloat
	for i := 0; i < count1; i++ {
		n, ok := proxyFaceNormal(proxy1, i)
		if !ok {
			continue
		}

		// Get proxy1 normal and vertex in frame2.
		n = RotVec2Mul(xf.Q, n)
		v1 := TransformVec2Mul(xf, proxy1.GetVertex(i))

		// Find deepest point for normal i.
		si := MaxFloat
		for j := 0; j < count2; j++ {
			sij := Vec2Dot(n, Vec2Sub(proxy2.GetVertex(j), v1))
			if sij < si {
				si = sij
			}
		}

		if si > maxSeparation {
			maxSeparation = si
			bestIndex = i
		}
	}

	return bestIndex, maxSeparation, bestIndex != -1
}

// findIncidentEdge finds the edge of proxy2 most anti-parallel to the
// reference face of proxy1 and emits its clip vertices.
func findIncidentEdge(c []ClipVertex, proxy1 DistanceProxy, xf1 Transform, edge1 int, proxy2 DistanceProxy, xf2 Transform) bool {
	count2 := proxy2.GetVertexCount()

	Assert(0 <= edge1 && edge1 < proxy1.GetVertexCount())

	refNormal, ok := proxyFaceNormal(proxy1, edge1)
	if !ok {
		return false
	}

	// Get the normal of the reference edge in proxy2's frame.
	normal1 := RotVec2MulT(xf2.Q, RotVec2Mul(xf1.Q, refNormal))

	// Find the incident edge on proxy2.
	index := -1
	minDot := MaxFloat
	for i := 0; i < count2; i++ {
		n, ok := proxyFaceNormal(proxy2, i)
		if !ok {
			continue
		}

		dot := Vec2Dot(normal1, n)
		if dot < minDot {
			minDot = dot
			index = i
		}
	}

	if index == -1 {
		return false
	}

	// Build the clip vertices for the incident edge.
	i1 := index
	i2 := (i1 + 1) % count2

	c[0].V = TransformVec2Mul(xf2, proxy2.GetVertex(i1))
	c[0].Feature = MakeFaceVertexFeature(uint8(edge1), uint8(i1))

	c[1].V = TransformVec2Mul(xf2, proxy2.GetVertex(i2))
	c[1].Feature = MakeFaceVertexFeature(uint8(edge1), uint8(i2))

	return true
}

// collidePolygons computes the manifold between two face-bearing
// proxies:
// find the face of max separation on A, early out if separating;
// find the face of max separation on B, early out if separating;
// choose the reference face, find the incident edge, clip.
// The normal points from 1 to 2.
func collidePolygons(proxyA DistanceProxy, xfA Transform, proxyB DistanceProxy, xfB Transform) Manifold {
	totalRadius := proxyA.Radius + proxyB.Radius

	edgeA, separationA, okA := findMaxSeparation(proxyA, xfA, proxyB, xfB)
	if okA && separationA > totalRadius {
		return Manifold{}
	}

	edgeB, separationB, okB := findMaxSeparation(proxyB, xfB, proxyA, xfA)
	if okB && separationB > totalRadius {
		return Manifold{}
	}

	if !okA || !okB {
		return Manifold{}
	}

	var proxy1, proxy2 DistanceProxy // reference and incident
	var xf1, xf2 Transform
	var edge1 int // reference edge
	var flip bool
	var manifold Manifold

	// Prefer the face of shape A unless B's separation is meaningfully
	// larger.
	const k_tol = 0.1 * LinearSlop

	if separationB > separationA+k_tol {
		proxy1 = proxyB
		proxy2 = proxyA
		xf1 = xfB
		xf2 = xfA
		edge1 = edgeB
		manifold.Type = ManifoldTypeFaceB
		flip = true
	} else {
		proxy1 = proxyA
		proxy2 = proxyB
		xf1 = xfA
		xf2 = xfB
		edge1 = edgeA
		manifold.Type = ManifoldTypeFaceA
		flip = false
	}

	incidentEdge := make([]ClipVertex, 2)
	if !findIncidentEdge(incidentEdge, proxy1, xf1, edge1, proxy2, xf2) {
		return Manifold{}
	}

	count1 := proxy1.GetVertexCount()

	iv1 := edge1
	iv2 := (edge1 + 1) % count1

	v11 := proxy1.GetVertex(iv1)
	v12 := proxy1.GetVertex(iv2)

	localTangent := Vec2Sub(v12, v11)
	localTangent.Normalize()

	localNormal := Vec2CrossVectorScalar(localTangent, 1.0)
	planePoint := Vec2MulScalar(0.5, Vec2Add(v11, v12))

	tangent := RotVec2Mul(xf1.Q, localTangent)
	normal := Vec2CrossVectorScalar(tangent, 1.0)

	v11 = TransformVec2Mul(xf1, v11)
	v12 = TransformVec2Mul(xf1, v12)

	// Face offset.
	frontOffset := Vec2Dot(normal, v11)

	// Side offsets, extended by polytope skin thickness.
	sideOffset1 := -Vec2Dot(tangent, v11) + totalRadius
	sideOffset2 := Vec2Dot(tangent, v12) + totalRadius

	// Clip incident edge against extruded edge1 side edges.
	clipPoints1 := make([]ClipVertex, 2)
	clipPoints2 := make([]ClipVertex, 2)

	// Clip to side 1.
	np := ClipSegmentToLine(clipPoints1, incidentEdge, tangent.Negate(), sideOffset1, iv1)
	if np < 2 {
		return Manifold{}
	}

	// Clip to negative side 1.
	np = ClipSegmentToLine(clipPoints2, clipPoints1, tangent, sideOffset2, iv2)
	if np < 2 {
		return Manifold{}
	}

	// Now clipPoints2 contains the clipped points.
	manifold.LocalNormal = localNormal
	manifold.LocalPoint = planePoint

	pointCount := 0
	for i := 0; i < MaxManifoldPoints; i++ {
		separation := Vec2Dot(normal, clipPoints2[i].V) - frontOffset

		if separation <= totalRadius {
			cp := &manifold.Points[pointCount]
			cp.LocalPoint = TransformVec2MulT(xf2, clipPoints2[i].V)
			cp.Feature = clipPoints2[i].Feature
			if flip {
				cp.Feature = cp.Feature.Flipped()
			}
			pointCount++
		}
	}

	manifold.PointCount = pointCount
	if pointCount == 0 {
		return Manifold{}
	}

	return manifold
}
