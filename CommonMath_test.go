package playrho_test

import (
	"math"
	"testing"

	playrho "github.com/ws320/PlayRho"
)

func TestVec2Ops(t *testing.T) {
	a := playrho.MakeVec2(3.0, 4.0)

	if a.Length() != 5.0 {
		t.Errorf("length = %g, want 5", a.Length())
	}
	if a.LengthSquared() != 25.0 {
		t.Errorf("length squared = %g, want 25", a.LengthSquared())
	}
	if got := playrho.Vec2Dot(a, playrho.MakeVec2(1.0, 2.0)); got != 11.0 {
		t.Errorf("dot = %g, want 11", got)
	}
	if got := playrho.Vec2Cross(playrho.MakeVec2(1.0, 0.0), playrho.MakeVec2(0.0, 1.0)); got != 1.0 {
		t.Errorf("cross = %g, want 1", got)
	}

	// The skew vector is perpendicular: dot(skew(a), a) = 0.
	if got := playrho.Vec2Dot(a.Skew(), a); got != 0.0 {
		t.Errorf("dot(skew(a), a) = %g, want 0", got)
	}

	n := playrho.MakeVec2(3.0, 4.0)
	length := n.Normalize()
	if length != 5.0 {
		t.Errorf("normalize returned %g, want the old length 5", length)
	}
	if math.Abs(n.Length()-1.0) > 1e-15 {
		t.Errorf("normalized length = %g, want 1", n.Length())
	}
}

func TestVec2Invalid(t *testing.T) {
	if playrho.Vec2Invalid.IsValid() {
		t.Error("the invalid sentinel must not be valid")
	}
	if !playrho.MakeVec2(0.0, 0.0).IsValid() {
		t.Error("the zero vector is valid")
	}
	if playrho.Mat22Invalid.IsValid() {
		t.Error("the invalid matrix sentinel must not be valid")
	}
}

func TestMat22SolveAndInverse(t *testing.T) {
	m := playrho.MakeMat22FromScalars(2.0, 1.0, 1.0, 3.0)
	b := playrho.MakeVec2(5.0, 10.0)

	x := m.Solve(b)
	got := playrho.Mat22Vec2Mul(m, x)
	if math.Abs(got.X-b.X) > 1e-12 || math.Abs(got.Y-b.Y) > 1e-12 {
		t.Errorf("M * solve(b) = %v, want %v", got, b)
	}

	inv := m.GetInverse()
	y := playrho.Mat22Vec2Mul(inv, b)
	if math.Abs(y.X-x.X) > 1e-12 || math.Abs(y.Y-x.Y) > 1e-12 {
		t.Errorf("inverse and solve disagree: %v vs %v", y, x)
	}
}

func TestRotRoundTrip(t *testing.T) {
	q := playrho.MakeRotFromAngle(0.7)
	v := playrho.MakeVec2(1.0, 2.0)

	w := playrho.RotVec2MulT(q, playrho.RotVec2Mul(q, v))
	if math.Abs(w.X-v.X) > 1e-15 || math.Abs(w.Y-v.Y) > 1e-15 {
		t.Errorf("rotate round trip = %v, want %v", w, v)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	xf := playrho.MakeTransform(playrho.MakeVec2(3.0, -2.0), playrho.MakeRotFromAngle(1.2))
	v := playrho.MakeVec2(0.5, 0.25)

	w := playrho.TransformVec2MulT(xf, playrho.TransformVec2Mul(xf, v))
	if math.Abs(w.X-v.X) > 1e-14 || math.Abs(w.Y-v.Y) > 1e-14 {
		t.Errorf("transform round trip = %v, want %v", w, v)
	}
}

func TestTransformMulT(t *testing.T) {
	a := playrho.MakeTransform(playrho.MakeVec2(1.0, 0.0), playrho.MakeRotFromAngle(0.3))
	b := playrho.MakeTransform(playrho.MakeVec2(0.0, 2.0), playrho.MakeRotFromAngle(-0.5))
	v := playrho.MakeVec2(0.7, -0.1)

	// MulT(a, b) maps b's frame into a's frame: applying it must agree
	// with going through world coordinates.
	ab := playrho.TransformMulT(a, b)
	got := playrho.TransformVec2Mul(ab, v)
	want := playrho.TransformVec2MulT(a, playrho.TransformVec2Mul(b, v))
	if math.Abs(got.X-want.X) > 1e-14 || math.Abs(got.Y-want.Y) > 1e-14 {
		t.Errorf("composed = %v, want %v", got, want)
	}
}

func TestSweepGetTransform(t *testing.T) {
	sweep := playrho.Sweep{
		C0: playrho.MakeVec2(0.0, 0.0),
		C:  playrho.MakeVec2(10.0, 0.0),
		A0: 0.0,
		A:  playrho.Pi,
	}

	xf0 := sweep.GetTransform(0.0)
	if !playrho.Vec2Equals(xf0.P, playrho.MakeVec2(0.0, 0.0)) {
		t.Errorf("transform at beta=0: P = %v, want C0", xf0.P)
	}

	xf1 := sweep.GetTransform(1.0)
	if !playrho.Vec2Equals(xf1.P, playrho.MakeVec2(10.0, 0.0)) {
		t.Errorf("transform at beta=1: P = %v, want C", xf1.P)
	}

	xfHalf := sweep.GetTransform(0.5)
	if !playrho.Vec2Equals(xfHalf.P, playrho.MakeVec2(5.0, 0.0)) {
		t.Errorf("transform at beta=0.5: P = %v, want the midpoint", xfHalf.P)
	}
	if math.Abs(xfHalf.Q.GetAngle()-0.5*playrho.Pi) > 1e-12 {
		t.Errorf("angle at beta=0.5 = %g, want pi/2", xfHalf.Q.GetAngle())
	}
}

func TestSweepLocalCenter(t *testing.T) {
	// With a local center offset, the transform must place the body
	// origin so the center of mass lands on the interpolated position.
	sweep := playrho.Sweep{
		LocalCenter: playrho.MakeVec2(1.0, 0.0),
		C0:          playrho.MakeVec2(2.0, 0.0),
		C:           playrho.MakeVec2(2.0, 0.0),
	}

	xf := sweep.GetTransform(0.0)
	com := playrho.TransformVec2Mul(xf, sweep.LocalCenter)
	if math.Abs(com.X-2.0) > 1e-14 || math.Abs(com.Y) > 1e-14 {
		t.Errorf("world center of mass = %v, want (2,0)", com)
	}
}

func TestSweepAdvance(t *testing.T) {
	sweep := playrho.Sweep{
		C0: playrho.MakeVec2(0.0, 0.0),
		C:  playrho.MakeVec2(10.0, 0.0),
		A0: 0.0,
		A:  1.0,
	}

	sweep.Advance(0.5)

	if sweep.Alpha0 != 0.5 {
		t.Errorf("alpha0 = %g, want 0.5", sweep.Alpha0)
	}
	if !playrho.Vec2Equals(sweep.C0, playrho.MakeVec2(5.0, 0.0)) {
		t.Errorf("C0 = %v, want the midpoint", sweep.C0)
	}
	if sweep.A0 != 0.5 {
		t.Errorf("A0 = %g, want 0.5", sweep.A0)
	}

	// The transform at the old time 0.75 equals the one the advanced
	// sweep yields at the remapped fraction 0.5.
	xf := sweep.GetTransform(0.5)
	if math.Abs(xf.P.X-7.5) > 1e-12 {
		t.Errorf("P.X = %g, want 7.5", xf.P.X)
	}
}

func TestSweepNormalize(t *testing.T) {
	sweep := playrho.Sweep{
		A0: 5.0 * playrho.Pi,
		A:  5.5 * playrho.Pi,
	}

	sweep.Normalize()

	if sweep.A0 < 0.0 || sweep.A0 >= 2.0*playrho.Pi {
		t.Errorf("A0 = %g, want within [0, 2pi)", sweep.A0)
	}
	// The relative rotation is preserved.
	if math.Abs((sweep.A-sweep.A0)-0.5*playrho.Pi) > 1e-12 {
		t.Errorf("A - A0 = %g, want pi/2", sweep.A-sweep.A0)
	}
}

func TestAlmostEqual(t *testing.T) {
	if !playrho.AlmostEqual(1.0, 1.0) {
		t.Error("a value equals itself")
	}
	if !playrho.AlmostEqual(1.0, 1.0+playrho.Epsilon) {
		t.Error("one epsilon apart is almost equal")
	}
	if playrho.AlmostEqual(1.0, 1.0001) {
		t.Error("clearly distinct values are not almost equal")
	}
	if !playrho.AlmostEqual(0.0, 0.0) {
		t.Error("zero equals zero")
	}
}

func TestGetBodyTransform(t *testing.T) {
	pos := playrho.Position{C: playrho.MakeVec2(3.0, 4.0), A: 0.5}
	localCenter := playrho.MakeVec2(0.25, 0.0)

	xf := playrho.GetBodyTransform(pos, localCenter)

	// The transform maps the local center onto the world center.
	com := playrho.TransformVec2Mul(xf, localCenter)
	if math.Abs(com.X-3.0) > 1e-14 || math.Abs(com.Y-4.0) > 1e-14 {
		t.Errorf("world center = %v, want (3,4)", com)
	}
}
