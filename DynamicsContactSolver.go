package playrho

import (
	"math"
)

type VelocityConstraintPoint struct {
	RA             Vec2    // position of the point relative to body A's center
	RB             Vec2    // position of the point relative to body B's center
	NormalImpulse  float64 // accumulated normal impulse
	TangentImpulse float64 // accumulated friction impulse
	NormalMass     float64
	TangentMass    float64
	VelocityBias   float64 // restitution bias
}

// VelocityConstraint is the velocity-solver view of a single contact.
// When it has two points and the block-solve mass matrix K is valid,
// the normal impulses are solved as a coupled pair; an invalid K means
// the matrix was too ill-conditioned to invert and the points are
// solved sequentially instead.
type VelocityConstraint struct {
	BodyA, BodyB *BodyConstraint
	Normal       Vec2 // world normal, pointing from A to B
	NormalMass   Mat22
	K            Mat22
	Friction     float64
	Restitution  float64
	TangentSpeed float64
	Points       [MaxManifoldPoints]VelocityConstraintPoint
	PointCount   int
}

// The block solver requires a reasonable condition number on the
// effective mass matrix before inverting it.
const maxBlockSolveConditionNumber = 1000.0

// MakeVelocityConstraint initializes a velocity constraint from a
// manifold and the two body views, evaluating the manifold at the
// bodies' current positions. Warm-start impulses are taken from the
// manifold points scaled by dtRatio; pass zero to start cold.
func MakeVelocityConstraint(manifold *Manifold, bodyA, bodyB *BodyConstraint, radiusA, radiusB float64, friction, restitution, tangentSpeed, dtRatio float64) VelocityConstraint {
	Assert(manifold.PointCount > 0)

	vc := VelocityConstraint{
		BodyA:        bodyA,
		BodyB:        bodyB,
		Friction:     friction,
		Restitution:  restitution,
		TangentSpeed: tangentSpeed,
		PointCount:   manifold.PointCount,
		K:            Mat22Invalid,
	}

	mA := bodyA.InvMass
	mB := bodyB.InvMass
	iA := bodyA.InvRotInertia
	iB := bodyB.InvRotInertia

	cA := bodyA.Position.C
	vA := bodyA.Velocity.V
	wA := bodyA.Velocity.W

	cB := bodyB.Position.C
	vB := bodyB.Velocity.V
	wB := bodyB.Velocity.W

	xfA := bodyA.GetTransform()
	xfB := bodyB.GetTransform()

	worldManifold := MakeWorldManifold(manifold, xfA, radiusA, xfB, radiusB)
	vc.Normal = worldManifold.Normal

	for j := 0; j < vc.PointCount; j++ {
		vcp := &vc.Points[j]

		vcp.NormalImpulse = dtRatio * manifold.Points[j].NormalImpulse
		vcp.TangentImpulse = dtRatio * manifold.Points[j].TangentImpulse

		vcp.RA = Vec2Sub(worldManifold.Points[j], cA)
		vcp.RB = Vec2Sub(worldManifold.Points[j], cB)

		rnA := Vec2Cross(vcp.RA, vc.Normal)
		rnB := Vec2Cross(vcp.RB, vc.Normal)

		kNormal := mA + mB + iA*rnA*rnA + iB*rnB*rnB
		if kNormal > 0.0 {
			vcp.NormalMass = 1.0 / kNormal
		}

		tangent := Vec2CrossVectorScalar(vc.Normal, 1.0)

		rtA := Vec2Cross(vcp.RA, tangent)
		rtB := Vec2Cross(vcp.RB, tangent)

		kTangent := mA + mB + iA*rtA*rtA + iB*rtB*rtB
		if kTangent > 0.0 {
			vcp.TangentMass = 1.0 / kTangent
		}

		// Setup a velocity bias for restitution.
		vRel := Vec2Dot(
			vc.Normal,
			Vec2Sub(
				Vec2Add(vB, Vec2CrossScalarVector(wB, vcp.RB)),
				Vec2Add(vA, Vec2CrossScalarVector(wA, vcp.RA)),
			),
		)
		if vRel < -VelocityThreshold {
			vcp.VelocityBias = -restitution * vRel
		}
	}

	// If we have two points, then prepare the block solver.
	if vc.PointCount == 2 {
		vcp1 := &vc.Points[0]
		vcp2 := &vc.Points[1]

		rn1A := Vec2Cross(vcp1.RA, vc.Normal)
		rn1B := Vec2Cross(vcp1.RB, vc.Normal)
		rn2A := Vec2Cross(vcp2.RA, vc.Normal)
		rn2B := Vec2Cross(vcp2.RB, vc.Normal)

		k11 := mA + mB + iA*rn1A*rn1A + iB*rn1B*rn1B
		k22 := mA + mB + iA*rn2A*rn2A + iB*rn2B*rn2B
		k12 := mA + mB + iA*rn1A*rn2A + iB*rn1B*rn2B

		// Ensure a reasonable condition number, else leave K marked
		// invalid and fall back to sequential solving.
		if k11*k11 < maxBlockSolveConditionNumber*(k11*k22-k12*k12) {
			vc.K = MakeMat22FromScalars(k11, k12, k12, k22)
			vc.NormalMass = vc.K.GetInverse()
		}
	}

	return vc
}

// WarmStart applies the constraint's accumulated impulses to the body
// velocities.
func WarmStart(vc *VelocityConstraint) {
	mA := vc.BodyA.InvMass
	iA := vc.BodyA.InvRotInertia
	mB := vc.BodyB.InvMass
	iB := vc.BodyB.InvRotInertia

	vA := vc.BodyA.Velocity.V
	wA := vc.BodyA.Velocity.W
	vB := vc.BodyB.Velocity.V
	wB := vc.BodyB.Velocity.W

	normal := vc.Normal
	tangent := Vec2CrossVectorScalar(normal, 1.0)

	for j := 0; j < vc.PointCount; j++ {
		vcp := &vc.Points[j]
		P := Vec2Add(
			Vec2MulScalar(vcp.NormalImpulse, normal),
			Vec2MulScalar(vcp.TangentImpulse, tangent),
		)
		wA -= iA * Vec2Cross(vcp.RA, P)
		vA = Vec2Sub(vA, Vec2MulScalar(mA, P))
		wB += iB * Vec2Cross(vcp.RB, P)
		vB = Vec2Add(vB, Vec2MulScalar(mB, P))
	}

	vc.BodyA.Velocity = Velocity{V: vA, W: wA}
	vc.BodyB.Velocity = Velocity{V: vB, W: wB}
}

// relativeVelocity computes the velocity of the contact point on body B
// relative to the same point on body A.
func relativeVelocity(vA Vec2, wA float64, rA Vec2, vB Vec2, wB float64, rB Vec2) Vec2 {
	return Vec2Sub(
		Vec2Add(vB, Vec2CrossScalarVector(wB, rB)),
		Vec2Add(vA, Vec2CrossScalarVector(wA, rA)),
	)
}

// SolveVelocityConstraint runs one Gauss-Seidel iteration of the
// constraint, updating body velocities and accumulated impulses in
// place, and returns the largest magnitude of impulse change applied.
func SolveVelocityConstraint(vc *VelocityConstraint) float64 {
	maxIncImpulse := 0.0

	mA := vc.BodyA.InvMass
	iA := vc.BodyA.InvRotInertia
	mB := vc.BodyB.InvMass
	iB := vc.BodyB.InvRotInertia

	vA := vc.BodyA.Velocity.V
	wA := vc.BodyA.Velocity.W
	vB := vc.BodyB.Velocity.V
	wB := vc.BodyB.Velocity.W

	normal := vc.Normal
	tangent := Vec2CrossVectorScalar(normal, 1.0)
	friction := vc.Friction

	Assert(vc.PointCount == 1 || vc.PointCount == 2)

	// Solve tangent constraints first because non-penetration is more
	// important than friction. The second point is processed first so
	// the first point's result is the freshest.
	for j := vc.PointCount - 1; j >= 0; j-- {
		vcp := &vc.Points[j]

		// Relative velocity at contact.
		dv := relativeVelocity(vA, wA, vcp.RA, vB, wB, vcp.RB)

		// Compute tangent force.
		vt := Vec2Dot(dv, tangent) - vc.TangentSpeed
		lambda := vcp.TangentMass * (-vt)

		// Clamp the accumulated force.
		maxFriction := friction * vcp.NormalImpulse
		newImpulse := FloatClamp(vcp.TangentImpulse+lambda, -maxFriction, maxFriction)
		lambda = newImpulse - vcp.TangentImpulse
		vcp.TangentImpulse = newImpulse
		maxIncImpulse = math.Max(maxIncImpulse, math.Abs(lambda))

		// Apply contact impulse.
		P := Vec2MulScalar(lambda, tangent)

		vA = Vec2Sub(vA, Vec2MulScalar(mA, P))
		wA -= iA * Vec2Cross(vcp.RA, P)

		vB = Vec2Add(vB, Vec2MulScalar(mB, P))
		wB += iB * Vec2Cross(vcp.RB, P)
	}

	// Solve normal constraints.
	if vc.PointCount == 1 || !vc.K.IsValid() {
		for j := 0; j < vc.PointCount; j++ {
			vcp := &vc.Points[j]

			// Relative velocity at contact.
			dv := relativeVelocity(vA, wA, vcp.RA, vB, wB, vcp.RB)

			// Compute normal impulse.
			vn := Vec2Dot(dv, normal)
			lambda := -vcp.NormalMass * (vn - vcp.VelocityBias)

			// Clamp the accumulated impulse.
			newImpulse := math.Max(vcp.NormalImpulse+lambda, 0.0)
			lambda = newImpulse - vcp.NormalImpulse
			vcp.NormalImpulse = newImpulse
			maxIncImpulse = math.Max(maxIncImpulse, math.Abs(lambda))

			// Apply contact impulse.
			P := Vec2MulScalar(lambda, normal)
			vA = Vec2Sub(vA, Vec2MulScalar(mA, P))
			wA -= iA * Vec2Cross(vcp.RA, P)

			vB = Vec2Add(vB, Vec2MulScalar(mB, P))
			wB += iB * Vec2Cross(vcp.RB, P)
		}
	} else {
		// Block solver developed in collaboration with Dirk Gregorius
		// (back in 01/07 on Box2D_Lite). Build the mini LCP for this
		// contact patch:
		//
		// vn = A * x + b, vn >= 0, x >= 0 and vn_i * x_i = 0 with i = 1..2
		//
		// A = J * W * JT and J = ( -n, -r1 x n, n, r2 x n )
		// b = vn0 - velocityBias
		//
		// The system is solved using the "Total enumeration method"
		// (s. Murty). The complementary constraint vn_i * x_i implies
		// that we must have in any solution either vn_i = 0 or x_i = 0.
		// So for the 2D contact problem the cases vn1 = 0 and vn2 = 0,
		// x1 = 0 and x2 = 0, x1 = 0 and vn2 = 0, x2 = 0 and vn1 = 0 need
		// to be tested. The first valid solution that satisfies the
		// problem is chosen.
		//
		// In order to account for the accumulated impulse 'a' (because of
		// the iterative nature of the solver which only requires that the
		// accumulated impulse is clamped and not the incremental impulse)
		// we change the impulse variable (x_i):
		//
		// x = a + d, where a is the old total impulse, x the new total
		// impulse and d the incremental impulse. Then:
		//
		// vn = A * d + b
		//    = A * (x - a) + b
		//    = A * x + b - A * a
		//    = A * x + b'
		// b' = b - A * a

		cp1 := &vc.Points[0]
		cp2 := &vc.Points[1]

		a := MakeVec2(cp1.NormalImpulse, cp2.NormalImpulse)
		Assert(a.X >= 0.0 && a.Y >= 0.0)

		// Relative velocity at contact.
		dv1 := relativeVelocity(vA, wA, cp1.RA, vB, wB, cp1.RB)
		dv2 := relativeVelocity(vA, wA, cp2.RA, vB, wB, cp2.RB)

		// Compute normal velocity.
		vn1 := Vec2Dot(dv1, normal)
		vn2 := Vec2Dot(dv2, normal)

		b := MakeVec2(vn1-cp1.VelocityBias, vn2-cp2.VelocityBias)

		// Compute b'.
		b = Vec2Sub(b, Mat22Vec2Mul(vc.K, a))

		applyBlockImpulse := func(x Vec2) {
			// Get the incremental impulse.
			d := Vec2Sub(x, a)
			maxIncImpulse = math.Max(maxIncImpulse, math.Max(math.Abs(d.X), math.Abs(d.Y)))

			// Apply incremental impulse.
			P1 := Vec2MulScalar(d.X, normal)
			P2 := Vec2MulScalar(d.Y, normal)
			vA = Vec2Sub(vA, Vec2MulScalar(mA, Vec2Add(P1, P2)))
			wA -= iA * (Vec2Cross(cp1.RA, P1) + Vec2Cross(cp2.RA, P2))

			vB = Vec2Add(vB, Vec2MulScalar(mB, Vec2Add(P1, P2)))
			wB += iB * (Vec2Cross(cp1.RB, P1) + Vec2Cross(cp2.RB, P2))

			// Accumulate.
			cp1.NormalImpulse = x.X
			cp2.NormalImpulse = x.Y
		}

		for {
			// Case 1: vn = 0
			//
			// 0 = A * x + b'
			//
			// Solve for x:
			//
			// x = -inv(A) * b'
			x := Mat22Vec2Mul(vc.NormalMass, b).Negate()

			if x.X >= 0.0 && x.Y >= 0.0 {
				applyBlockImpulse(x)
				break
			}

			// Case 2: vn1 = 0 and x2 = 0
			//
			//   0 = a11 * x1 + a12 * 0 + b1'
			// vn2 = a21 * x1 + a22 * 0 + b2'
			x.X = -cp1.NormalMass * b.X
			x.Y = 0.0
			vn2 = vc.K.Ex.Y*x.X + b.Y
			if x.X >= 0.0 && vn2 >= 0.0 {
				applyBlockImpulse(x)
				break
			}

			// Case 3: vn2 = 0 and x1 = 0
			//
			// vn1 = a11 * 0 + a12 * x2 + b1'
			//   0 = a21 * 0 + a22 * x2 + b2'
			x.X = 0.0
			x.Y = -cp2.NormalMass * b.Y
			vn1 = vc.K.Ey.X*x.Y + b.X
			if x.Y >= 0.0 && vn1 >= 0.0 {
				applyBlockImpulse(x)
				break
			}

			// Case 4: x1 = 0 and x2 = 0
			//
			// vn1 = b1
			// vn2 = b2
			x.X = 0.0
			x.Y = 0.0
			vn1 = b.X
			vn2 = b.Y
			if vn1 >= 0.0 && vn2 >= 0.0 {
				applyBlockImpulse(x)
				break
			}

			// No solution, give up. This is hit sometimes, but it doesn't
			// seem to matter.
			break
		}
	}

	vc.BodyA.Velocity = Velocity{V: vA, W: wA}
	vc.BodyB.Velocity = Velocity{V: vB, W: wB}

	return maxIncImpulse
}

// StoreImpulses writes the constraint's accumulated impulses back into
// the manifold for warm starting the next step.
func StoreImpulses(vc *VelocityConstraint, manifold *Manifold) {
	for j := 0; j < vc.PointCount; j++ {
		manifold.Points[j].NormalImpulse = vc.Points[j].NormalImpulse
		manifold.Points[j].TangentImpulse = vc.Points[j].TangentImpulse
	}
}

// PositionConstraint is the position-solver view of a single contact.
// It keeps the manifold so the contact geometry can be re-evaluated at
// the bodies' current positions on every solver call.
type PositionConstraint struct {
	Manifold     Manifold
	BodyA, BodyB *BodyConstraint
	RadiusA      float64
	RadiusB      float64
}

func MakePositionConstraint(manifold Manifold, bodyA, bodyB *BodyConstraint, radiusA, radiusB float64) PositionConstraint {
	Assert(manifold.PointCount > 0)
	return PositionConstraint{
		Manifold: manifold,
		BodyA:    bodyA,
		BodyB:    bodyB,
		RadiusA:  radiusA,
		RadiusB:  radiusB,
	}
}

// PositionSolution is the result of solving a position constraint: the
// new positions for both bodies and the minimum separation found before
// resolution.
type PositionSolution struct {
	PosA          Position
	PosB          Position
	MinSeparation float64
}

// ConstraintSolverConf parameterizes position resolution.
type ConstraintSolverConf struct {
	ResolutionRate      float64 // fraction of overlap resolved per call
	LinearSlop          float64 // allowed penetration
	MaxLinearCorrection float64 // correction cap per call, prevents overshoot
}

func DefaultConstraintSolverConf() ConstraintSolverConf {
	return ConstraintSolverConf{
		ResolutionRate:      Baumgarte,
		LinearSlop:          LinearSlop,
		MaxLinearCorrection: MaxLinearCorrection,
	}
}

func DefaultTOIConstraintSolverConf() ConstraintSolverConf {
	return ConstraintSolverConf{
		ResolutionRate:      ToiBaumgarte,
		LinearSlop:          LinearSlop,
		MaxLinearCorrection: MaxLinearCorrection,
	}
}

// positionSolverManifold evaluates point index of the constraint's
// manifold at the given transforms, returning the world normal, world
// point, and separation (negative when overlapping, radii included).
func positionSolverManifold(pc *PositionConstraint, xfA, xfB Transform, index int) (Vec2, Vec2, float64) {
	manifold := &pc.Manifold
	Assert(manifold.PointCount > 0)

	var normal, point Vec2
	var separation float64

	switch manifold.Type {
	case ManifoldTypeCircles:
		pointA := TransformVec2Mul(xfA, manifold.LocalPoint)
		pointB := TransformVec2Mul(xfB, manifold.Points[0].LocalPoint)
		normal = Vec2Sub(pointB, pointA)
		normal.Normalize()
		point = Vec2MulScalar(0.5, Vec2Add(pointA, pointB))
		separation = Vec2Dot(Vec2Sub(pointB, pointA), normal) - pc.RadiusA - pc.RadiusB

	case ManifoldTypeFaceA:
		normal = RotVec2Mul(xfA.Q, manifold.LocalNormal)
		planePoint := TransformVec2Mul(xfA, manifold.LocalPoint)

		clipPoint := TransformVec2Mul(xfB, manifold.Points[index].LocalPoint)
		separation = Vec2Dot(Vec2Sub(clipPoint, planePoint), normal) - pc.RadiusA - pc.RadiusB
		point = clipPoint

	case ManifoldTypeFaceB:
		normal = RotVec2Mul(xfB.Q, manifold.LocalNormal)
		planePoint := TransformVec2Mul(xfB, manifold.LocalPoint)

		clipPoint := TransformVec2Mul(xfA, manifold.Points[index].LocalPoint)
		separation = Vec2Dot(Vec2Sub(clipPoint, planePoint), normal) - pc.RadiusA - pc.RadiusB
		point = clipPoint

		// Ensure normal points from A to B.
		normal = normal.Negate()

	default:
		Assert(false)
	}

	return normal, point, separation
}

// positionDeltas computes the position corrections for one manifold
// point without applying them.
func positionDeltas(normal, point Vec2, separation float64, posA, posB Position, mA, iA, mB, iB float64, conf ConstraintSolverConf) (Position, Position) {
	rA := Vec2Sub(point, posA.C)
	rB := Vec2Sub(point, posB.C)

	// Prevent large corrections and allow slop.
	C := FloatClamp(conf.ResolutionRate*(separation+conf.LinearSlop), -conf.MaxLinearCorrection, 0.0)

	// Compute the effective mass.
	rnA := Vec2Cross(rA, normal)
	rnB := Vec2Cross(rB, normal)
	K := mA + mB + iA*rnA*rnA + iB*rnB*rnB

	// Compute normal impulse.
	impulse := 0.0
	if K > 0.0 {
		impulse = -C / K
	}

	P := Vec2MulScalar(impulse, normal)

	deltaA := Position{
		C: Vec2MulScalar(mA, P).Negate(),
		A: -iA * Vec2Cross(rA, P),
	}
	deltaB := Position{
		C: Vec2MulScalar(mB, P),
		A: iB * Vec2Cross(rB, P),
	}
	return deltaA, deltaB
}

func addPosition(p, d Position) Position {
	return Position{C: Vec2Add(p.C, d.C), A: p.A + d.A}
}

// SolvePositionConstraint resolves the overlap of one contact by moving
// the bodies apart along the contact normal, re-evaluating the contact
// geometry at the bodies' current positions. Bodies whose move flag is
// unset are treated as immovable. The bodies themselves are not
// updated; the solution holds the new positions and the minimum
// separation found before any correction.
func SolvePositionConstraint(pc *PositionConstraint, moveA, moveB bool, conf ConstraintSolverConf) PositionSolution {
	var mA, iA float64
	if moveA {
		mA = pc.BodyA.InvMass
		iA = pc.BodyA.InvRotInertia
	}

	var mB, iB float64
	if moveB {
		mB = pc.BodyB.InvMass
		iB = pc.BodyB.InvRotInertia
	}

	localCenterA := pc.BodyA.LocalCenter
	localCenterB := pc.BodyB.LocalCenter

	posA := pc.BodyA.Position
	posB := pc.BodyB.Position

	switch pc.Manifold.PointCount {
	case 1:
		xfA := GetBodyTransform(posA, localCenterA)
		xfB := GetBodyTransform(posB, localCenterB)
		normal, point, separation := positionSolverManifold(pc, xfA, xfB, 0)

		dA, dB := positionDeltas(normal, point, separation, posA, posB, mA, iA, mB, iB, conf)
		return PositionSolution{
			PosA:          addPosition(posA, dA),
			PosB:          addPosition(posB, dB),
			MinSeparation: separation,
		}

	case 2:
		xfA := GetBodyTransform(posA, localCenterA)
		xfB := GetBodyTransform(posB, localCenterB)
		normal0, point0, separation0 := positionSolverManifold(pc, xfA, xfB, 0)
		normal1, point1, separation1 := positionSolverManifold(pc, xfA, xfB, 1)

		if AlmostEqual(separation0, separation1) {
			// Equally deep: resolve both points simultaneously from the
			// same base positions.
			dA0, dB0 := positionDeltas(normal0, point0, separation0, posA, posB, mA, iA, mB, iB, conf)
			dA1, dB1 := positionDeltas(normal1, point1, separation1, posA, posB, mA, iA, mB, iB, conf)
			return PositionSolution{
				PosA:          addPosition(addPosition(posA, dA0), dA1),
				PosB:          addPosition(addPosition(posB, dB0), dB1),
				MinSeparation: math.Min(separation0, separation1),
			}
		}

		// Resolve the deeper point first, then re-evaluate the other at
		// the corrected positions.
		second := 1
		normal, point, separation := normal0, point0, separation0
		if separation1 < separation0 {
			second = 0
			normal, point, separation = normal1, point1, separation1
		}
		firstSeparation := separation

		dA, dB := positionDeltas(normal, point, separation, posA, posB, mA, iA, mB, iB, conf)
		posA = addPosition(posA, dA)
		posB = addPosition(posB, dB)

		xfA = GetBodyTransform(posA, localCenterA)
		xfB = GetBodyTransform(posB, localCenterB)
		normal, point, separation = positionSolverManifold(pc, xfA, xfB, second)

		dA, dB = positionDeltas(normal, point, separation, posA, posB, mA, iA, mB, iB, conf)
		return PositionSolution{
			PosA:          addPosition(posA, dA),
			PosB:          addPosition(posB, dB),
			MinSeparation: math.Min(firstSeparation, separation),
		}
	}

	return PositionSolution{PosA: posA, PosB: posB, MinSeparation: MaxFloat}
}

// SolvePositionConstraints runs one sequential pass over all the
// constraints, updating the bodies' positions, and returns the minimum
// separation found. The result cannot be expected to reach -linearSlop
// because separations are not pushed above that level.
func SolvePositionConstraints(pcs []PositionConstraint, conf ConstraintSolverConf) float64 {
	minSeparation := MaxFloat

	for i := range pcs {
		pc := &pcs[i]
		sol := SolvePositionConstraint(pc, true, true, conf)
		pc.BodyA.Position = sol.PosA
		pc.BodyB.Position = sol.PosB
		minSeparation = math.Min(minSeparation, sol.MinSeparation)
	}

	return minSeparation
}

// SolveTOIPositionConstraints is the variant used after a time-of-impact
// sub-step: only the two bodies involved in the TOI event are moved,
// everything else they touch is treated as immovable.
func SolveTOIPositionConstraints(pcs []PositionConstraint, bodiesA, bodiesB *BodyConstraint, conf ConstraintSolverConf) float64 {
	minSeparation := MaxFloat

	for i := range pcs {
		pc := &pcs[i]
		moveA := pc.BodyA == bodiesA || pc.BodyA == bodiesB
		moveB := pc.BodyB == bodiesA || pc.BodyB == bodiesB
		sol := SolvePositionConstraint(pc, moveA, moveB, conf)
		pc.BodyA.Position = sol.PosA
		pc.BodyB.Position = sol.PosB
		minSeparation = math.Min(minSeparation, sol.MinSeparation)
	}

	return minSeparation
}

// ContactDescriptor names everything the solver needs to know about one
// contact: its manifold, the two body views, and the material mix.
type ContactDescriptor struct {
	Manifold     *Manifold
	BodyA, BodyB *BodyConstraint
	RadiusA      float64
	RadiusB      float64
	Friction     float64
	Restitution  float64
	TangentSpeed float64
}

// ContactSolver owns the per-step velocity and position constraint
// arrays of a batch of contacts. The arrays live in a stack arena;
// Destroy must be called on every exit path to release them.
type ContactSolver struct {
	arena    *StackArena
	contacts []ContactDescriptor
	velocity []VelocityConstraint
	position []PositionConstraint
}

// MakeContactSolver builds the constraint arrays for the given
// contacts. dtRatio scales the warm-start impulses carried in the
// manifolds; pass zero to start cold.
func MakeContactSolver(contacts []ContactDescriptor, dtRatio float64, arena *StackArena) ContactSolver {
	solver := ContactSolver{
		arena:    arena,
		contacts: contacts,
		velocity: arena.AllocVelocityConstraints(len(contacts)),
		position: arena.AllocPositionConstraints(len(contacts)),
	}

	for i := range contacts {
		c := &contacts[i]
		solver.velocity[i] = MakeVelocityConstraint(
			c.Manifold, c.BodyA, c.BodyB, c.RadiusA, c.RadiusB,
			c.Friction, c.Restitution, c.TangentSpeed, dtRatio,
		)
		solver.position[i] = MakePositionConstraint(*c.Manifold, c.BodyA, c.BodyB, c.RadiusA, c.RadiusB)
	}

	return solver
}

// Destroy releases the solver's arena allocations.
func (solver *ContactSolver) Destroy() {
	solver.arena.Release()
	solver.velocity = nil
	solver.position = nil
}

// WarmStart applies all accumulated impulses.
func (solver *ContactSolver) WarmStart() {
	for i := range solver.velocity {
		WarmStart(&solver.velocity[i])
	}
}

// SolveVelocityConstraints runs one iteration over all the velocity
// constraints and returns the largest magnitude of impulse change.
func (solver *ContactSolver) SolveVelocityConstraints() float64 {
	maxIncImpulse := 0.0
	for i := range solver.velocity {
		maxIncImpulse = math.Max(maxIncImpulse, SolveVelocityConstraint(&solver.velocity[i]))
	}
	return maxIncImpulse
}

// StoreImpulses writes the accumulated impulses back to the manifolds.
func (solver *ContactSolver) StoreImpulses() {
	for i := range solver.velocity {
		StoreImpulses(&solver.velocity[i], solver.contacts[i].Manifold)
	}
}

// SolvePositionConstraints runs one position pass, returning the
// minimum separation found.
func (solver *ContactSolver) SolvePositionConstraints(conf ConstraintSolverConf) float64 {
	return SolvePositionConstraints(solver.position, conf)
}

// SolveTOIPositionConstraints runs one position pass moving only the
// given TOI bodies.
func (solver *ContactSolver) SolveTOIPositionConstraints(bodiesA, bodiesB *BodyConstraint, conf ConstraintSolverConf) float64 {
	return SolveTOIPositionConstraints(solver.position, bodiesA, bodiesB, conf)
}
