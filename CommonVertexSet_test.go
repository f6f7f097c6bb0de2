package playrho_test

import (
	"testing"

	playrho "github.com/ws320/PlayRho"
)

func TestVertexSetWelds(t *testing.T) {
	set := playrho.MakeVertexSet(0.01 * 0.01)

	if !set.Add(playrho.MakeVec2(0.0, 0.0)) {
		t.Error("first vertex must be accepted")
	}
	if set.Add(playrho.MakeVec2(0.005, 0.0)) {
		t.Error("vertex within the weld threshold must be rejected")
	}
	if !set.Add(playrho.MakeVec2(0.02, 0.0)) {
		t.Error("vertex beyond the weld threshold must be accepted")
	}

	if set.Size() != 2 {
		t.Fatalf("size = %d, want 2", set.Size())
	}
	if !playrho.Vec2Equals(set.Get(0), playrho.MakeVec2(0.0, 0.0)) {
		t.Errorf("vertex 0 = %v", set.Get(0))
	}
	if !playrho.Vec2Equals(set.Get(1), playrho.MakeVec2(0.02, 0.0)) {
		t.Errorf("vertex 1 = %v", set.Get(1))
	}
}

func TestVertexSetFind(t *testing.T) {
	set := playrho.MakeVertexSet(0.01 * 0.01)
	set.Add(playrho.MakeVec2(1.0, 1.0))
	set.Add(playrho.MakeVec2(2.0, 2.0))

	if i := set.Find(playrho.MakeVec2(2.0, 2.0)); i != 1 {
		t.Errorf("Find = %d, want 1", i)
	}
	if i := set.Find(playrho.MakeVec2(5.0, 5.0)); i != -1 {
		t.Errorf("Find = %d, want -1 for a distant vertex", i)
	}
}

func TestDefaultVertexSetThreshold(t *testing.T) {
	set := playrho.MakeDefaultVertexSet()
	if set.GetMinSeparationSquared() != playrho.DefaultMinVertexSeparationSquared {
		t.Error("default set must carry the default threshold")
	}

	// The default threshold only welds truly coincident vertices.
	set.Add(playrho.MakeVec2(0.0, 0.0))
	if !set.Add(playrho.MakeVec2(1e-30, 0.0)) {
		t.Error("a representable separation must survive the default threshold")
	}
	if set.Add(playrho.MakeVec2(0.0, 0.0)) {
		t.Error("an exact duplicate must weld")
	}
}

func TestVertexSetInsertionOrder(t *testing.T) {
	set := playrho.MakeVertexSet(1e-6)
	in := []playrho.Vec2{
		playrho.MakeVec2(0.0, 0.0),
		playrho.MakeVec2(1.0, 0.0),
		playrho.MakeVec2(1.0, 1.0),
	}
	for _, v := range in {
		set.Add(v)
	}

	out := set.Vertices()
	if len(out) != len(in) {
		t.Fatalf("got %d vertices, want %d", len(out), len(in))
	}
	for i := range in {
		if !playrho.Vec2Equals(out[i], in[i]) {
			t.Errorf("vertex %d = %v, want %v", i, out[i], in[i])
		}
	}
}
