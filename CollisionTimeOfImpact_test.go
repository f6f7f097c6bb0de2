package playrho_test

import (
	"math"
	"testing"

	playrho "github.com/ws320/PlayRho"
)

func makeStationarySweep(x, y float64) playrho.Sweep {
	return playrho.Sweep{
		C0: playrho.MakeVec2(x, y),
		C:  playrho.MakeVec2(x, y),
	}
}

func makeLinearSweep(x0, y0, x1, y1 float64) playrho.Sweep {
	return playrho.Sweep{
		C0: playrho.MakeVec2(x0, y0),
		C:  playrho.MakeVec2(x1, y1),
	}
}

func TestTimeOfImpactBoxes(t *testing.T) {
	a := playrho.MakeBoxShape(0.5, 0.5).ChildProxy(0)
	b := playrho.MakeBoxShape(0.5, 0.5).ChildProxy(0)

	sweepA := makeStationarySweep(0.0, 0.0)
	sweepB := makeLinearSweep(2.0, 0.0, -0.5, 0.0)

	out := playrho.TimeOfImpact(a, sweepA, b, sweepB, 1.0, playrho.DefaultTOIConf())

	if out.State != playrho.TOIStateTouching {
		t.Fatalf("state = %s, want touching", out.State)
	}

	// The hulls touch the target separation when B has closed the gap
	// to max(slop, totalRadius-3*slop): faces 1 apart, closing at 2.5
	// per unit time, so t = (1 - 0.005) / 2.5.
	want := (1.0 - 0.005) / 2.5
	if math.Abs(out.T-want) > 0.01 {
		t.Errorf("t = %g, want about %g", out.T, want)
	}
	if out.T > 0.4 {
		t.Errorf("t = %g, must not exceed the face touching time 0.4", out.T)
	}
}

func TestTimeOfImpactSweptBox(t *testing.T) {
	// A unit box swept from x=0 to x=10 against a stationary unit box
	// at x=5. The faces touch analytically at t=0.4; the solver must
	// stop at or before that, just short of it by the target band.
	a := playrho.MakeBoxShape(0.5, 0.5).ChildProxy(0)
	b := playrho.MakeBoxShape(0.5, 0.5).ChildProxy(0)

	sweepA := makeLinearSweep(0.0, 0.0, 10.0, 0.0)
	sweepB := makeStationarySweep(5.0, 0.0)

	out := playrho.TimeOfImpact(a, sweepA, b, sweepB, 1.0, playrho.DefaultTOIConf())

	if out.State != playrho.TOIStateTouching {
		t.Fatalf("state = %s, want touching", out.State)
	}
	if out.T > 0.4 {
		t.Errorf("t = %g, reported past the analytic first touch 0.4", out.T)
	}
	if math.Abs(out.T-0.4) > 0.01 {
		t.Errorf("t = %g, want about 0.4", out.T)
	}
}

func TestTimeOfImpactCircles(t *testing.T) {
	a := playrho.MakeCircleShape(playrho.MakeVec2(0.0, 0.0), 1.0).ChildProxy(0)
	b := playrho.MakeCircleShape(playrho.MakeVec2(0.0, 0.0), 1.0).ChildProxy(0)

	sweepA := makeStationarySweep(0.0, 0.0)
	sweepB := makeLinearSweep(10.0, 0.0, 0.0, 0.0)

	out := playrho.TimeOfImpact(a, sweepA, b, sweepB, 1.0, playrho.DefaultTOIConf())

	if out.State != playrho.TOIStateTouching {
		t.Fatalf("state = %s, want touching", out.State)
	}

	// Point hulls 10 apart, total radius 2, target 2 - 3*slop: the
	// centers touch the target when 10*t = 10 - (2 - 0.015).
	want := (10.0 - (2.0 - 3.0*playrho.LinearSlop)) / 10.0
	if math.Abs(out.T-want) > 0.001 {
		t.Errorf("t = %g, want about %g", out.T, want)
	}
}

func TestTimeOfImpactOverlapped(t *testing.T) {
	a := playrho.MakeBoxShape(0.5, 0.5).ChildProxy(0)
	b := playrho.MakeBoxShape(0.5, 0.5).ChildProxy(0)

	sweepA := makeStationarySweep(0.0, 0.0)
	sweepB := makeStationarySweep(0.5, 0.0)

	out := playrho.TimeOfImpact(a, sweepA, b, sweepB, 1.0, playrho.DefaultTOIConf())

	if out.State != playrho.TOIStateOverlapped {
		t.Fatalf("state = %s, want overlapped", out.State)
	}
	if out.T != 0.0 {
		t.Errorf("t = %g, want 0 for initially overlapping shapes", out.T)
	}
}

func TestTimeOfImpactSeparated(t *testing.T) {
	a := playrho.MakeCircleShape(playrho.MakeVec2(0.0, 0.0), 1.0).ChildProxy(0)
	b := playrho.MakeCircleShape(playrho.MakeVec2(0.0, 0.0), 1.0).ChildProxy(0)

	sweepA := makeStationarySweep(0.0, 0.0)
	sweepB := makeLinearSweep(10.0, 0.0, 5.0, 0.0)

	out := playrho.TimeOfImpact(a, sweepA, b, sweepB, 1.0, playrho.DefaultTOIConf())

	if out.State != playrho.TOIStateSeparated {
		t.Fatalf("state = %s, want separated", out.State)
	}
	if out.T != 1.0 {
		t.Errorf("t = %g, want tMax for shapes that never come close", out.T)
	}
}

func TestTimeOfImpactRespectsTMax(t *testing.T) {
	a := playrho.MakeCircleShape(playrho.MakeVec2(0.0, 0.0), 1.0).ChildProxy(0)
	b := playrho.MakeCircleShape(playrho.MakeVec2(0.0, 0.0), 1.0).ChildProxy(0)

	sweepA := makeStationarySweep(0.0, 0.0)
	sweepB := makeLinearSweep(10.0, 0.0, 0.0, 0.0)

	// Impact happens around t=0.8; with tMax=0.5 the query must report
	// separated at the interval end.
	out := playrho.TimeOfImpact(a, sweepA, b, sweepB, 0.5, playrho.DefaultTOIConf())

	if out.State != playrho.TOIStateSeparated {
		t.Fatalf("state = %s, want separated within the shortened interval", out.State)
	}
	if out.T != 0.5 {
		t.Errorf("t = %g, want tMax", out.T)
	}
}

func TestTimeOfImpactRotatingBox(t *testing.T) {
	// A spinning box sweeping sideways into a stationary one. The exact
	// time is hard to state in closed form; the result must be a touch
	// strictly inside the interval and the advanced configuration must
	// not be deeply overlapping.
	a := playrho.MakeBoxShape(0.5, 0.5).ChildProxy(0)
	b := playrho.MakeBoxShape(0.5, 0.5).ChildProxy(0)

	sweepA := makeStationarySweep(0.0, 0.0)
	sweepB := playrho.Sweep{
		C0: playrho.MakeVec2(3.0, 0.0),
		C:  playrho.MakeVec2(0.0, 0.0),
		A0: 0.0,
		A:  2.0 * playrho.Pi,
	}

	out := playrho.TimeOfImpact(a, sweepA, b, sweepB, 1.0, playrho.DefaultTOIConf())

	if out.State != playrho.TOIStateTouching {
		t.Fatalf("state = %s, want touching", out.State)
	}
	if out.T <= 0.0 || out.T >= 1.0 {
		t.Fatalf("t = %g, want strictly inside (0,1)", out.T)
	}

	// Verify the reported time: the shapes must still be separated or
	// just touching there.
	xfA := sweepA.GetTransform(out.T)
	xfB := sweepB.GetTransform(out.T)

	input := playrho.DistanceInput{
		ProxyA:     a,
		ProxyB:     b,
		TransformA: xfA,
		TransformB: xfB,
		UseRadii:   true,
	}
	var cache playrho.SimplexCache
	var output playrho.DistanceOutput
	playrho.Distance(&output, &cache, &input)

	if output.Distance > 2.0*playrho.LinearSlop {
		t.Errorf("distance at impact time = %g, want near touching", output.Distance)
	}
}

func TestTimeOfImpactStats(t *testing.T) {
	a := playrho.MakeBoxShape(0.5, 0.5).ChildProxy(0)
	b := playrho.MakeBoxShape(0.5, 0.5).ChildProxy(0)

	sweepA := makeStationarySweep(0.0, 0.0)
	sweepB := makeLinearSweep(2.0, 0.0, -0.5, 0.0)

	var stats playrho.TOIStats
	conf := playrho.DefaultTOIConf()
	conf.Stats = &stats

	playrho.TimeOfImpact(a, sweepA, b, sweepB, 1.0, conf)
	playrho.TimeOfImpact(a, sweepA, b, sweepB, 1.0, conf)

	if stats.Calls != 2 {
		t.Errorf("calls = %d, want 2", stats.Calls)
	}
	if stats.Iters < 1 {
		t.Errorf("iters = %d, want at least 1", stats.Iters)
	}
	if stats.MaxIters > playrho.MaxTOIIterations {
		t.Errorf("max iters = %d, beyond the budget %d", stats.MaxIters, playrho.MaxTOIIterations)
	}
	if stats.MaxRootIters > playrho.MaxTOIRootIterations {
		t.Errorf("max root iters = %d, beyond the budget %d", stats.MaxRootIters, playrho.MaxTOIRootIterations)
	}
}

func TestTOIStateString(t *testing.T) {
	cases := map[playrho.TOIState]string{
		playrho.TOIStateUnknown:    "unknown",
		playrho.TOIStateFailed:     "failed",
		playrho.TOIStateOverlapped: "overlapped",
		playrho.TOIStateTouching:   "touching",
		playrho.TOIStateSeparated:  "separated",
	}
	for state, want := range cases {
		if state.String() != want {
			t.Errorf("%d.String() = %q, want %q", state, state.String(), want)
		}
	}
}

func TestSeparationFunction(t *testing.T) {
	a := playrho.MakeBoxShape(0.5, 0.5).ChildProxy(0)
	b := playrho.MakeBoxShape(0.5, 0.5).ChildProxy(0)

	sweepA := makeStationarySweep(0.0, 0.0)
	sweepB := makeLinearSweep(2.0, 0.0, 0.0, 0.0)

	// Seed the cache at t=0.
	input := playrho.DistanceInput{
		ProxyA:     a,
		ProxyB:     b,
		TransformA: sweepA.GetTransform(0.0),
		TransformB: sweepB.GetTransform(0.0),
	}
	var cache playrho.SimplexCache
	var output playrho.DistanceOutput
	playrho.Distance(&output, &cache, &input)

	f := playrho.MakeSeparationFunction(&cache, a, sweepA, b, sweepB, 0.0)

	s0 := f.FindMinSeparation(0.0)
	if math.Abs(s0.Distance-1.0) > 1e-9 {
		t.Errorf("separation at t=0 is %g, want 1", s0.Distance)
	}

	// Halfway through, B has advanced 1 unit: the hulls touch.
	s1 := f.FindMinSeparation(0.5)
	if math.Abs(s1.Distance) > 1e-9 {
		t.Errorf("separation at t=0.5 is %g, want 0", s1.Distance)
	}

	// Evaluate must agree with FindMinSeparation at its own index pair.
	if got := f.Evaluate(s1.IndexPair, 0.5); math.Abs(got-s1.Distance) > 1e-9 {
		t.Errorf("Evaluate = %g, FindMinSeparation = %g", got, s1.Distance)
	}

	// Separation must decrease monotonically as B approaches.
	if !(s1.Distance < s0.Distance) {
		t.Errorf("separation did not decrease: %g then %g", s0.Distance, s1.Distance)
	}
}
