package playrho

// Position holds the location of a body's center of mass and its
// orientation angle in radians.
type Position struct {
	C Vec2
	A float64
}

// Velocity holds a body's linear and angular velocity.
type Velocity struct {
	V Vec2
	W float64
}

// BodyConstraint is the solver's view of a body: its inverse mass
// properties plus mutable position and velocity. Static bodies have
// zero inverse mass and zero inverse rotational inertia, which makes
// every impulse and correction applied to them a no-op without the
// solvers special-casing them.
type BodyConstraint struct {
	InvMass       float64 // inverse mass, 0 for static bodies
	InvRotInertia float64 // inverse rotational inertia about the center of mass
	LocalCenter   Vec2    // center of mass in body-local coordinates
	Position      Position
	Velocity      Velocity
}

func MakeBodyConstraint(invMass, invRotInertia float64, localCenter Vec2, position Position, velocity Velocity) BodyConstraint {
	Assert(invMass >= 0.0 && invRotInertia >= 0.0)
	return BodyConstraint{
		InvMass:       invMass,
		InvRotInertia: invRotInertia,
		LocalCenter:   localCenter,
		Position:      position,
		Velocity:      velocity,
	}
}

// GetBodyTransform computes the body-origin transform of a position
// given the body's local center of mass.
func GetBodyTransform(pos Position, localCenter Vec2) Transform {
	var xf Transform
	xf.Q.Set(pos.A)
	xf.P = Vec2Sub(pos.C, RotVec2Mul(xf.Q, localCenter))
	return xf
}

// GetTransform computes the body-origin transform at the body's current
// position.
func (b *BodyConstraint) GetTransform() Transform {
	return GetBodyTransform(b.Position, b.LocalCenter)
}
