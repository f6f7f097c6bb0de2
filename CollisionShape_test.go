package playrho_test

import (
	"testing"

	playrho "github.com/ws320/PlayRho"
)

func TestMakeCircleShape(t *testing.T) {
	s := playrho.MakeCircleShape(playrho.MakeVec2(1.0, 2.0), 0.5)

	if s.Type() != playrho.ShapeTypeCircle {
		t.Errorf("type = %d, want circle", s.Type())
	}
	if s.Radius() != 0.5 {
		t.Errorf("radius = %g, want 0.5", s.Radius())
	}
	if s.ChildCount() != 1 {
		t.Errorf("child count = %d, want 1", s.ChildCount())
	}

	proxy := s.ChildProxy(0)
	if proxy.GetVertexCount() != 1 {
		t.Fatalf("vertex count = %d, want 1", proxy.GetVertexCount())
	}
	if !playrho.Vec2Equals(proxy.GetVertex(0), playrho.MakeVec2(1.0, 2.0)) {
		t.Errorf("vertex = %v, want the center", proxy.GetVertex(0))
	}
}

func TestMakeEdgeShape(t *testing.T) {
	s := playrho.MakeEdgeShape(playrho.MakeVec2(-1.0, 0.0), playrho.MakeVec2(1.0, 0.0))

	if s.Type() != playrho.ShapeTypeEdge {
		t.Errorf("type = %d, want edge", s.Type())
	}
	if s.Radius() != playrho.PolygonRadius {
		t.Errorf("radius = %g, want the polygon skin", s.Radius())
	}

	proxy := s.ChildProxy(0)
	if proxy.GetVertexCount() != 2 {
		t.Errorf("vertex count = %d, want 2", proxy.GetVertexCount())
	}
}

func TestMakeChainShape(t *testing.T) {
	vs := []playrho.Vec2{
		playrho.MakeVec2(0.0, 0.0),
		playrho.MakeVec2(1.0, 0.0),
		playrho.MakeVec2(2.0, 1.0),
		playrho.MakeVec2(3.0, 1.0),
	}
	s := playrho.MakeChainShape(vs)

	if s.Type() != playrho.ShapeTypeChain {
		t.Errorf("type = %d, want chain", s.Type())
	}
	if s.ChildCount() != 3 {
		t.Fatalf("child count = %d, want one per segment", s.ChildCount())
	}

	for i := 0; i < s.ChildCount(); i++ {
		proxy := s.ChildProxy(i)
		if proxy.GetVertexCount() != 2 {
			t.Fatalf("child %d vertex count = %d, want 2", i, proxy.GetVertexCount())
		}
		if !playrho.Vec2Equals(proxy.GetVertex(0), vs[i]) || !playrho.Vec2Equals(proxy.GetVertex(1), vs[i+1]) {
			t.Errorf("child %d = %v %v, want %v %v", i, proxy.GetVertex(0), proxy.GetVertex(1), vs[i], vs[i+1])
		}
	}
}

func TestMakeBoxShape(t *testing.T) {
	s := playrho.MakeBoxShape(1.0, 2.0)

	if s.Type() != playrho.ShapeTypePolygon {
		t.Errorf("type = %d, want polygon", s.Type())
	}

	proxy := s.ChildProxy(0)
	if proxy.GetVertexCount() != 4 {
		t.Fatalf("vertex count = %d, want 4", proxy.GetVertexCount())
	}

	// Counter-clockwise winding: positive doubled area.
	area := 0.0
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		area += playrho.Vec2Cross(proxy.GetVertex(i), proxy.GetVertex(j))
	}
	if area <= 0.0 {
		t.Errorf("doubled area = %g, want positive (counter-clockwise)", area)
	}
}

func TestMakePolygonShapeHull(t *testing.T) {
	// An interior point must be dropped by the hull computation.
	points := []playrho.Vec2{
		playrho.MakeVec2(-1.0, -1.0),
		playrho.MakeVec2(1.0, -1.0),
		playrho.MakeVec2(0.0, 0.0), // interior
		playrho.MakeVec2(1.0, 1.0),
		playrho.MakeVec2(-1.0, 1.0),
	}
	s := playrho.MakePolygonShape(points)

	proxy := s.ChildProxy(0)
	if proxy.GetVertexCount() != 4 {
		t.Fatalf("vertex count = %d, want 4 with the interior point dropped", proxy.GetVertexCount())
	}
	for i := 0; i < proxy.GetVertexCount(); i++ {
		if playrho.Vec2Equals(proxy.GetVertex(i), playrho.MakeVec2(0.0, 0.0)) {
			t.Error("interior point survived the hull")
		}
	}
}

func TestMakePolygonShapeWelds(t *testing.T) {
	// Near-coincident points weld to one, leaving a triangle.
	points := []playrho.Vec2{
		playrho.MakeVec2(0.0, 0.0),
		playrho.MakeVec2(0.001, 0.0), // welds onto the first
		playrho.MakeVec2(1.0, 0.0),
		playrho.MakeVec2(0.0, 1.0),
	}
	s := playrho.MakePolygonShape(points)

	proxy := s.ChildProxy(0)
	if proxy.GetVertexCount() != 3 {
		t.Errorf("vertex count = %d, want 3 after welding", proxy.GetVertexCount())
	}
}
