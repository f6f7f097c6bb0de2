package playrho

import (
	"math"
)

// InvalidIndex marks a witness index with no meaning, such as the face
// side of a face-type separation function.
const InvalidIndex = -1

// IndexPair holds the witness vertex indices of a separation
// measurement, one per proxy.
type IndexPair struct {
	A, B int
}

// Separation is a minimum-separation measurement: the distance along
// the separating axis plus the witness indices it was measured at.
type Separation struct {
	IndexPair IndexPair
	Distance  float64
}

type separationFunctionType uint8

const (
	separationFunctionPoints separationFunctionType = iota
	separationFunctionFaceA
	separationFunctionFaceB
)

// SeparationFunction evaluates the separation of two swept proxies
// along an axis established from a simplex cache at time t1.
type SeparationFunction struct {
	proxyA, proxyB DistanceProxy
	sweepA, sweepB Sweep
	funcType       separationFunctionType
	localPoint     Vec2
	axis           Vec2
}

// MakeSeparationFunction establishes the separating axis from the
// cached simplex of a distance query run at time t1. The cache must
// hold one or two vertices: one is a point-point axis, two on the same
// shape select that shape's face as the axis.
func MakeSeparationFunction(cache *SimplexCache, proxyA DistanceProxy, sweepA Sweep, proxyB DistanceProxy, sweepB Sweep, t1 float64) SeparationFunction {
	count := cache.Count
	Assert(0 < count && count < 3)

	f := SeparationFunction{
		proxyA: proxyA,
		proxyB: proxyB,
		sweepA: sweepA,
		sweepB: sweepB,
	}

	xfA := sweepA.GetTransform(t1)
	xfB := sweepB.GetTransform(t1)

	if count == 1 {
		f.funcType = separationFunctionPoints
		localPointA := proxyA.GetVertex(cache.IndexA[0])
		localPointB := proxyB.GetVertex(cache.IndexB[0])
		pointA := TransformVec2Mul(xfA, localPointA)
		pointB := TransformVec2Mul(xfB, localPointB)
		f.axis = Vec2Sub(pointB, pointA)
		f.axis.Normalize()
		return f
	}

	if cache.IndexA[0] == cache.IndexA[1] {
		// Two points on B and one on A.
		f.funcType = separationFunctionFaceB
		localPointB1 := proxyB.GetVertex(cache.IndexB[0])
		localPointB2 := proxyB.GetVertex(cache.IndexB[1])

		f.axis = Vec2CrossVectorScalar(Vec2Sub(localPointB2, localPointB1), 1.0)
		f.axis.Normalize()
		normal := RotVec2Mul(xfB.Q, f.axis)

		f.localPoint = Vec2MulScalar(0.5, Vec2Add(localPointB1, localPointB2))
		pointB := TransformVec2Mul(xfB, f.localPoint)

		localPointA := proxyA.GetVertex(cache.IndexA[0])
		pointA := TransformVec2Mul(xfA, localPointA)

		if Vec2Dot(Vec2Sub(pointA, pointB), normal) < 0.0 {
			f.axis = f.axis.Negate()
		}

		return f
	}

	// Two points on A and one or two points on B.
	f.funcType = separationFunctionFaceA
	localPointA1 := proxyA.GetVertex(cache.IndexA[0])
	localPointA2 := proxyA.GetVertex(cache.IndexA[1])

	f.axis = Vec2CrossVectorScalar(Vec2Sub(localPointA2, localPointA1), 1.0)
	f.axis.Normalize()
	normal := RotVec2Mul(xfA.Q, f.axis)

	f.localPoint = Vec2MulScalar(0.5, Vec2Add(localPointA1, localPointA2))
	pointA := TransformVec2Mul(xfA, f.localPoint)

	localPointB := proxyB.GetVertex(cache.IndexB[0])
	pointB := TransformVec2Mul(xfB, localPointB)

	if Vec2Dot(Vec2Sub(pointB, pointA), normal) < 0.0 {
		f.axis = f.axis.Negate()
	}

	return f
}

// FindMinSeparation computes the minimum separation at time t and the
// witness indices it occurs at.
func (f *SeparationFunction) FindMinSeparation(t float64) Separation {
	xfA := f.sweepA.GetTransform(t)
	xfB := f.sweepB.GetTransform(t)

	switch f.funcType {
	case separationFunctionPoints:
		axisA := RotVec2MulT(xfA.Q, f.axis)
		axisB := RotVec2MulT(xfB.Q, f.axis.Negate())

		indexA := f.proxyA.GetSupport(axisA)
		indexB := f.proxyB.GetSupport(axisB)

		pointA := TransformVec2Mul(xfA, f.proxyA.GetVertex(indexA))
		pointB := TransformVec2Mul(xfB, f.proxyB.GetVertex(indexB))

		return Separation{
			IndexPair: IndexPair{A: indexA, B: indexB},
			Distance:  Vec2Dot(Vec2Sub(pointB, pointA), f.axis),
		}

	case separationFunctionFaceA:
		normal := RotVec2Mul(xfA.Q, f.axis)
		pointA := TransformVec2Mul(xfA, f.localPoint)

		axisB := RotVec2MulT(xfB.Q, normal.Negate())

		indexB := f.proxyB.GetSupport(axisB)
		pointB := TransformVec2Mul(xfB, f.proxyB.GetVertex(indexB))

		return Separation{
			IndexPair: IndexPair{A: InvalidIndex, B: indexB},
			Distance:  Vec2Dot(Vec2Sub(pointB, pointA), normal),
		}

	case separationFunctionFaceB:
		normal := RotVec2Mul(xfB.Q, f.axis)
		pointB := TransformVec2Mul(xfB, f.localPoint)

		axisA := RotVec2MulT(xfA.Q, normal.Negate())

		indexA := f.proxyA.GetSupport(axisA)
		pointA := TransformVec2Mul(xfA, f.proxyA.GetVertex(indexA))

		return Separation{
			IndexPair: IndexPair{A: indexA, B: InvalidIndex},
			Distance:  Vec2Dot(Vec2Sub(pointA, pointB), normal),
		}

	default:
		Assert(false)
		return Separation{
			IndexPair: IndexPair{A: InvalidIndex, B: InvalidIndex},
		}
	}
}

// Evaluate computes the separation at time t of the witness points
// identified by ip.
func (f *SeparationFunction) Evaluate(ip IndexPair, t float64) float64 {
	xfA := f.sweepA.GetTransform(t)
	xfB := f.sweepB.GetTransform(t)

	switch f.funcType {
	case separationFunctionPoints:
		pointA := TransformVec2Mul(xfA, f.proxyA.GetVertex(ip.A))
		pointB := TransformVec2Mul(xfB, f.proxyB.GetVertex(ip.B))

		return Vec2Dot(Vec2Sub(pointB, pointA), f.axis)

	case separationFunctionFaceA:
		normal := RotVec2Mul(xfA.Q, f.axis)
		pointA := TransformVec2Mul(xfA, f.localPoint)
		pointB := TransformVec2Mul(xfB, f.proxyB.GetVertex(ip.B))

		return Vec2Dot(Vec2Sub(pointB, pointA), normal)

	case separationFunctionFaceB:
		normal := RotVec2Mul(xfB.Q, f.axis)
		pointB := TransformVec2Mul(xfB, f.localPoint)
		pointA := TransformVec2Mul(xfA, f.proxyA.GetVertex(ip.A))

		return Vec2Dot(Vec2Sub(pointA, pointB), normal)

	default:
		Assert(false)
		return 0.0
	}
}

type TOIState uint8

const (
	TOIStateUnknown TOIState = iota
	TOIStateFailed
	TOIStateOverlapped
	TOIStateTouching
	TOIStateSeparated
)

func (s TOIState) String() string {
	switch s {
	case TOIStateUnknown:
		return "unknown"
	case TOIStateFailed:
		return "failed"
	case TOIStateOverlapped:
		return "overlapped"
	case TOIStateTouching:
		return "touching"
	case TOIStateSeparated:
		return "separated"
	}
	return "invalid"
}

// TOIOutput carries the result state of a time-of-impact computation
// and the time it pertains to.
type TOIOutput struct {
	State TOIState
	T     float64
}

// TOIStats carries counters for the time-of-impact solver. Callers that
// want instrumentation supply one through TOIConf; there is no
// package-level mutable state.
type TOIStats struct {
	Calls        int
	Iters        int
	MaxIters     int
	RootIters    int
	MaxRootIters int
}

// TOIConf holds the iteration budgets of the time-of-impact solver and
// an optional stats sink.
type TOIConf struct {
	MaxToiIters  int
	MaxRootIters int
	Stats        *TOIStats
}

func DefaultTOIConf() TOIConf {
	return TOIConf{
		MaxToiIters:  MaxTOIIterations,
		MaxRootIters: MaxTOIRootIterations,
	}
}

// TimeOfImpact computes the upper bound on time before two shapes
// penetrate beyond the target depth. Time is represented as a fraction
// between [0,tMax]. This uses a swept separating axis and may miss some
// intermediate, non-tunneling collision. If you change the time
// interval, you should call this function again.
//
// CCD via the local separating axis method. This seeks progression by
// computing the largest time at which separation is maintained. Use
// Distance to compute the contact point and normal at the time of
// impact. Non-convergence is reported through the output state, never
// through panics; every loop is budget bounded.
func TimeOfImpact(proxyA DistanceProxy, sweepA Sweep, proxyB DistanceProxy, sweepB Sweep, tMax float64, conf TOIConf) TOIOutput {
	if conf.Stats != nil {
		conf.Stats.Calls++
	}

	output := TOIOutput{State: TOIStateUnknown, T: tMax}

	// Large rotations can make the root finder fail, so we normalize the
	// sweep angles.
	sweepA.Normalize()
	sweepB.Normalize()

	totalRadius := proxyA.Radius + proxyB.Radius
	target := math.Max(LinearSlop, totalRadius-3.0*LinearSlop)
	tolerance := 0.25 * LinearSlop
	Assert(target > tolerance)

	t1 := 0.0
	iter := 0

	// Prepare input for the distance query.
	var cache SimplexCache
	distanceInput := DistanceInput{
		ProxyA:   proxyA,
		ProxyB:   proxyB,
		UseRadii: false,
	}

	// The outer loop progressively attempts to compute new separating
	// axes. This loop terminates when an axis is repeated (no progress is
	// made).
	for {
		xfA := sweepA.GetTransform(t1)
		xfB := sweepB.GetTransform(t1)

		// Get the distance between shapes. We can also use the results to
		// get a separating axis.
		distanceInput.TransformA = xfA
		distanceInput.TransformB = xfB
		var distanceOutput DistanceOutput
		Distance(&distanceOutput, &cache, &distanceInput)

		// If the shapes are overlapped, we give up on continuous collision.
		if distanceOutput.Distance <= 0.0 {
			output.State = TOIStateOverlapped
			output.T = 0.0
			break
		}

		if distanceOutput.Distance < target+tolerance {
			// Victory!
			output.State = TOIStateTouching
			output.T = t1
			break
		}

		// Initialize the separating axis.
		fcn := MakeSeparationFunction(&cache, proxyA, sweepA, proxyB, sweepB, t1)

		// Compute the TOI on the separating axis. We do this by
		// successively resolving the deepest point. This loop is bounded
		// by the number of vertices.
		done := false
		t2 := tMax
		pushBackIter := 0
		for {
			// Find the deepest point at t2. Store the witness point indices.
			minSep := fcn.FindMinSeparation(t2)
			s2 := minSep.Distance

			// Is the final configuration separated?
			if s2 > target+tolerance {
				// Victory! Report the time the separation was measured at.
				output.State = TOIStateSeparated
				output.T = t2
				done = true
				break
			}

			// Has the separation reached tolerance?
			if s2 > target-tolerance {
				// Advance the sweeps.
				t1 = t2
				break
			}

			// Compute the initial separation of the witness points.
			s1 := fcn.Evaluate(minSep.IndexPair, t1)

			// Check for initial overlap. This might happen if the root
			// finder runs out of iterations.
			if s1 < target-tolerance {
				output.State = TOIStateFailed
				output.T = t1
				done = true
				break
			}

			// Check for touching.
			if s1 <= target+tolerance {
				// Victory! t1 should hold the TOI (could be 0.0).
				output.State = TOIStateTouching
				output.T = t1
				done = true
				break
			}

			// Compute 1D root of: f(x) - target = 0
			rootIterCount := 0
			a1 := t1
			a2 := t2

			for {
				// Use a mix of the secant rule and bisection.
				var t float64
				if (rootIterCount & 1) != 0 {
					// Secant rule to improve convergence.
					t = a1 + (target-s1)*(a2-a1)/(s2-s1)
				} else {
					// Bisection to guarantee progress.
					t = 0.5 * (a1 + a2)
				}

				rootIterCount++
				if conf.Stats != nil {
					conf.Stats.RootIters++
				}

				s := fcn.Evaluate(minSep.IndexPair, t)

				if math.Abs(s-target) < tolerance {
					// t2 holds a tentative value for t1.
					t2 = t
					break
				}

				// Ensure we continue to bracket the root.
				if s > target {
					a1 = t
					s1 = s
				} else {
					a2 = t
					s2 = s
				}

				if rootIterCount == conf.MaxRootIters {
					break
				}
			}

			if conf.Stats != nil {
				conf.Stats.MaxRootIters = MaxInt(conf.Stats.MaxRootIters, rootIterCount)
			}

			pushBackIter++

			if pushBackIter == MaxPolygonVertices {
				break
			}
		}

		iter++
		if conf.Stats != nil {
			conf.Stats.Iters++
		}

		if done {
			break
		}

		if iter == conf.MaxToiIters {
			// Root finder got stuck. Semi-victory: t1 is safe to advance to.
			output.State = TOIStateFailed
			output.T = t1
			break
		}
	}

	if conf.Stats != nil {
		conf.Stats.MaxIters = MaxInt(conf.Stats.MaxIters, iter)
	}

	return output
}
