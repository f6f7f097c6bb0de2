package playrho

import "math"

// Assert panics when the condition does not hold. Used for programming
// errors only; bad geometry and solver non-convergence are reported
// through result states, never through panics.
func Assert(a bool) {
	if !a {
		panic("Assert")
	}
}

const MaxFloat = math.MaxFloat64

// Epsilon is the smallest increment distinguishable from 1.0.
const Epsilon = 2.220446049250313e-16

const Pi = math.Pi

// Collision

// The maximum number of contact points between two convex shapes. Do
// not change this value.
const MaxManifoldPoints = 2

// The maximum number of vertices on a convex polygon.
const MaxPolygonVertices = 8

// A small length used as a collision and constraint tolerance. Usually it is
// chosen to be numerically significant, but visually insignificant.
const LinearSlop = 0.005

// A small angle used as a collision and constraint tolerance.
const AngularSlop = 2.0 / 180.0 * Pi

// The radius of the polygon/edge shape skin. This should not be modified.
// Making this smaller means polygons will have an insufficient buffer for
// continuous collision. Making it larger may create artifacts for vertex
// collision.
const PolygonRadius = 2.0 * LinearSlop

// Dynamics

// A velocity threshold for elastic collisions. Any collision with a relative
// linear velocity below this threshold will be treated as inelastic.
const VelocityThreshold = 1.0

// The maximum linear position correction used when solving constraints.
// This helps to prevent overshoot.
const MaxLinearCorrection = 0.2

// Position resolution rates. Ideally these would be 1 so that overlap is
// removed in one time step, but values close to 1 often lead to overshoot.
const Baumgarte = 0.2
const ToiBaumgarte = 0.75

// Iteration budgets for the time-of-impact solver.
const MaxTOIIterations = 20
const MaxTOIRootIterations = 50

// Iteration budget for the distance query.
const MaxDistanceIterations = 20

// AlmostEqual reports whether x and y differ by at most ulps times the
// epsilon scaled to their magnitude.
func AlmostEqual(x, y float64) bool {
	return math.Abs(x-y) <= Epsilon*math.Max(1.0, math.Max(math.Abs(x), math.Abs(y)))*4.0
}

func FloatClamp(a, low, high float64) float64 {
	if a < low {
		return low
	}
	if a > high {
		return high
	}
	return a
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
