package playrho

import (
	"math"
)

// IsValidFloat reports whether x is neither NaN nor infinite.
func IsValidFloat(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// A 2D column vector.
type Vec2 struct {
	X, Y float64
}

func MakeVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Set this vector to all zeros.
func (v *Vec2) SetZero() {
	v.X = 0.0
	v.Y = 0.0
}

// Set this vector to some specified coordinates.
func (v *Vec2) Set(x, y float64) {
	v.X = x
	v.Y = y
}

func (v Vec2) Negate() Vec2 {
	return MakeVec2(-v.X, -v.Y)
}

// Get the length of this vector (the norm).
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Get the length squared. For performance, use this instead of Length
// where possible.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Convert this vector into a unit vector and return the original length.
// Vectors shorter than Epsilon are left unchanged and report zero.
func (v *Vec2) Normalize() float64 {
	length := v.Length()
	if length < Epsilon {
		return 0.0
	}

	invLength := 1.0 / length
	v.X *= invLength
	v.Y *= invLength

	return length
}

// Does this vector contain finite coordinates?
func (v Vec2) IsValid() bool {
	return IsValidFloat(v.X) && IsValidFloat(v.Y)
}

// Get the skew vector such that dot(skew_vec, other) == cross(vec, other).
func (v Vec2) Skew() Vec2 {
	return MakeVec2(-v.Y, v.X)
}

var Vec2Zero = MakeVec2(0, 0)

// Vec2Invalid is the sentinel for fields that carry no meaning in the
// current state, such as the local normal of a circles manifold.
var Vec2Invalid = Vec2{X: math.NaN(), Y: math.NaN()}

// Perform the dot product on two vectors.
func Vec2Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Perform the cross product on two vectors. In 2D this produces a scalar.
func Vec2Cross(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Perform the cross product on a vector and a scalar. In 2D this produces
// a vector.
func Vec2CrossVectorScalar(a Vec2, s float64) Vec2 {
	return MakeVec2(s*a.Y, -s*a.X)
}

// Perform the cross product on a scalar and a vector. In 2D this produces
// a vector.
func Vec2CrossScalarVector(s float64, a Vec2) Vec2 {
	return MakeVec2(-s*a.Y, s*a.X)
}

// Add two vectors component-wise.
func Vec2Add(a, b Vec2) Vec2 {
	return MakeVec2(a.X+b.X, a.Y+b.Y)
}

// Subtract two vectors component-wise.
func Vec2Sub(a, b Vec2) Vec2 {
	return MakeVec2(a.X-b.X, a.Y-b.Y)
}

func Vec2MulScalar(s float64, a Vec2) Vec2 {
	return MakeVec2(s*a.X, s*a.Y)
}

func Vec2Equals(a, b Vec2) bool {
	return a.X == b.X && a.Y == b.Y
}

func Vec2Distance(a, b Vec2) float64 {
	return Vec2Sub(a, b).Length()
}

func Vec2DistanceSquared(a, b Vec2) float64 {
	c := Vec2Sub(a, b)
	return Vec2Dot(c, c)
}

func Vec2Abs(a Vec2) Vec2 {
	return MakeVec2(math.Abs(a.X), math.Abs(a.Y))
}

func Vec2Min(a, b Vec2) Vec2 {
	return MakeVec2(math.Min(a.X, b.X), math.Min(a.Y, b.Y))
}

func Vec2Max(a, b Vec2) Vec2 {
	return MakeVec2(math.Max(a.X, b.X), math.Max(a.Y, b.Y))
}

func Vec2Clamp(a, low, high Vec2) Vec2 {
	return Vec2Max(low, Vec2Min(a, high))
}

// A 2-by-2 matrix. Stored in column-major order.
type Mat22 struct {
	Ex, Ey Vec2
}

// Construct this matrix using columns.
func MakeMat22FromColumns(c1, c2 Vec2) Mat22 {
	return Mat22{Ex: c1, Ey: c2}
}

// Construct this matrix using scalars.
func MakeMat22FromScalars(a11, a12, a21, a22 float64) Mat22 {
	return Mat22{
		Ex: MakeVec2(a11, a21),
		Ey: MakeVec2(a12, a22),
	}
}

// Mat22Invalid marks a matrix as unusable, for instance the block-solve
// mass matrix of an ill-conditioned two-point contact.
var Mat22Invalid = Mat22{Ex: Vec2Invalid, Ey: Vec2Invalid}

// Set this to the identity matrix.
func (m *Mat22) SetIdentity() {
	m.Ex.X = 1.0
	m.Ey.X = 0.0
	m.Ex.Y = 0.0
	m.Ey.Y = 1.0
}

// Set this matrix to all zeros.
func (m *Mat22) SetZero() {
	m.Ex.SetZero()
	m.Ey.SetZero()
}

func (m Mat22) IsValid() bool {
	return m.Ex.IsValid() && m.Ey.IsValid()
}

func (m Mat22) GetInverse() Mat22 {
	a := m.Ex.X
	b := m.Ey.X
	c := m.Ex.Y
	d := m.Ey.Y

	det := a*d - b*c
	if det != 0.0 {
		det = 1.0 / det
	}

	var inv Mat22
	inv.Ex.X = det * d
	inv.Ey.X = -det * b
	inv.Ex.Y = -det * c
	inv.Ey.Y = det * a

	return inv
}

// Solve A * x = b, where b is a column vector. This is more efficient
// than computing the inverse in one-shot cases.
func (m Mat22) Solve(b Vec2) Vec2 {
	a11 := m.Ex.X
	a12 := m.Ey.X
	a21 := m.Ex.Y
	a22 := m.Ey.Y
	det := a11*a22 - a12*a21

	if det != 0.0 {
		det = 1.0 / det
	}

	return MakeVec2(
		det*(a22*b.X-a12*b.Y),
		det*(a11*b.Y-a21*b.X),
	)
}

// Multiply a matrix times a vector. If a rotation matrix is provided,
// then this transforms the vector from one frame to another.
func Mat22Vec2Mul(A Mat22, v Vec2) Vec2 {
	return MakeVec2(A.Ex.X*v.X+A.Ey.X*v.Y, A.Ex.Y*v.X+A.Ey.Y*v.Y)
}

// Multiply a matrix transpose times a vector (inverse transform for
// rotation matrices).
func Mat22Vec2MulT(A Mat22, v Vec2) Vec2 {
	return MakeVec2(Vec2Dot(v, A.Ex), Vec2Dot(v, A.Ey))
}

// Rotation expressed as a sine/cosine pair.
type Rot struct {
	S, C float64
}

// Initialize from an angle in radians.
func MakeRotFromAngle(angle float64) Rot {
	return Rot{
		S: math.Sin(angle),
		C: math.Cos(angle),
	}
}

// Set using an angle in radians.
func (r *Rot) Set(angle float64) {
	r.S = math.Sin(angle)
	r.C = math.Cos(angle)
}

// Set to the identity rotation.
func (r *Rot) SetIdentity() {
	r.S = 0.0
	r.C = 1.0
}

// Get the angle in radians.
func (r Rot) GetAngle() float64 {
	return math.Atan2(r.S, r.C)
}

// Get the x-axis.
func (r Rot) GetXAxis() Vec2 {
	return MakeVec2(r.C, r.S)
}

// Get the y-axis.
func (r Rot) GetYAxis() Vec2 {
	return MakeVec2(-r.S, r.C)
}

// Multiply two rotations: q * r
func RotMul(q, r Rot) Rot {
	return Rot{
		S: q.S*r.C + q.C*r.S,
		C: q.C*r.C - q.S*r.S,
	}
}

// Transpose multiply two rotations: qT * r
func RotMulT(q, r Rot) Rot {
	return Rot{
		S: q.C*r.S - q.S*r.C,
		C: q.C*r.C + q.S*r.S,
	}
}

// Rotate a vector.
func RotVec2Mul(q Rot, v Vec2) Vec2 {
	return MakeVec2(
		q.C*v.X-q.S*v.Y,
		q.S*v.X+q.C*v.Y,
	)
}

// Inverse rotate a vector.
func RotVec2MulT(q Rot, v Vec2) Vec2 {
	return MakeVec2(
		q.C*v.X+q.S*v.Y,
		-q.S*v.X+q.C*v.Y,
	)
}

// A transform contains translation and rotation. It is used to represent
// the position and orientation of rigid frames.
type Transform struct {
	P Vec2
	Q Rot
}

func MakeTransformIdentity() Transform {
	return Transform{P: Vec2Zero, Q: Rot{S: 0, C: 1}}
}

// Initialize using a position vector and a rotation.
func MakeTransform(position Vec2, rotation Rot) Transform {
	return Transform{P: position, Q: rotation}
}

// Set this to the identity transform.
func (t *Transform) SetIdentity() {
	t.P.SetZero()
	t.Q.SetIdentity()
}

// Set this based on the position and angle.
func (t *Transform) Set(position Vec2, angle float64) {
	t.P = position
	t.Q.Set(angle)
}

func TransformVec2Mul(t Transform, v Vec2) Vec2 {
	return MakeVec2(
		(t.Q.C*v.X-t.Q.S*v.Y)+t.P.X,
		(t.Q.S*v.X+t.Q.C*v.Y)+t.P.Y,
	)
}

func TransformVec2MulT(t Transform, v Vec2) Vec2 {
	px := v.X - t.P.X
	py := v.Y - t.P.Y

	return MakeVec2(
		t.Q.C*px+t.Q.S*py,
		-t.Q.S*px+t.Q.C*py,
	)
}

func TransformMul(a, b Transform) Transform {
	return Transform{
		P: Vec2Add(RotVec2Mul(a.Q, b.P), a.P),
		Q: RotMul(a.Q, b.Q),
	}
}

func TransformMulT(a, b Transform) Transform {
	return Transform{
		P: RotVec2MulT(a.Q, Vec2Sub(b.P, a.P)),
		Q: RotMulT(a.Q, b.Q),
	}
}

// Sweep describes the motion of a body/shape for TOI computation.
// Shapes are defined with respect to the body origin, which may not
// coincide with the center of mass. However, to support dynamics we
// must interpolate the center of mass position.
type Sweep struct {
	LocalCenter Vec2    // local center of mass position
	C0, C       Vec2    // center world positions
	A0, A       float64 // world angles

	// Fraction of the current time step in the range [0,1].
	// C0 and A0 are the positions at Alpha0.
	Alpha0 float64
}

// GetTransform computes the interpolated transform at a particular time.
// beta is a factor in [0,1], where 0 indicates Alpha0.
func (sweep Sweep) GetTransform(beta float64) Transform {
	var xf Transform
	xf.P = Vec2Add(
		Vec2MulScalar(1.0-beta, sweep.C0),
		Vec2MulScalar(beta, sweep.C),
	)
	xf.Q.Set((1.0-beta)*sweep.A0 + beta*sweep.A)

	// Shift to origin
	xf.P = Vec2Sub(xf.P, RotVec2Mul(xf.Q, sweep.LocalCenter))

	return xf
}

// Advance the sweep forward, yielding a new initial state.
// alpha is the new initial time.
func (sweep *Sweep) Advance(alpha float64) {
	Assert(sweep.Alpha0 < 1.0)
	beta := (alpha - sweep.Alpha0) / (1.0 - sweep.Alpha0)
	sweep.C0 = Vec2Add(sweep.C0, Vec2MulScalar(beta, Vec2Sub(sweep.C, sweep.C0)))
	sweep.A0 += beta * (sweep.A - sweep.A0)
	sweep.Alpha0 = alpha
}

// Normalize the sweep angles so A0 lands between -2pi and 2pi.
func (sweep *Sweep) Normalize() {
	twoPi := 2.0 * Pi
	d := twoPi * math.Floor(sweep.A0/twoPi)
	sweep.A0 -= d
	sweep.A -= d
}
