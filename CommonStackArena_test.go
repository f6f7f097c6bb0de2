package playrho_test

import (
	"testing"

	playrho "github.com/ws320/PlayRho"
)

func TestStackArenaAllocatesZeroed(t *testing.T) {
	arena := playrho.NewStackArena()

	vcs := arena.AllocVelocityConstraints(4)
	if len(vcs) != 4 {
		t.Fatalf("got %d velocity constraints, want 4", len(vcs))
	}
	for i := range vcs {
		if vcs[i].PointCount != 0 || vcs[i].BodyA != nil {
			t.Fatalf("constraint %d not zeroed: %+v", i, vcs[i])
		}
	}

	pcs := arena.AllocPositionConstraints(3)
	if len(pcs) != 3 {
		t.Fatalf("got %d position constraints, want 3", len(pcs))
	}

	if arena.GetAllocation() != 7 {
		t.Errorf("allocation = %d, want 7", arena.GetAllocation())
	}
}

func TestStackArenaFreeOrder(t *testing.T) {
	arena := playrho.NewStackArena()

	arena.AllocVelocityConstraints(2)
	arena.AllocPositionConstraints(5)

	arena.Free() // the position allocation
	if arena.GetAllocation() != 2 {
		t.Errorf("allocation = %d, want 2 after freeing the top entry", arena.GetAllocation())
	}
	arena.Free()
	if arena.GetAllocation() != 0 {
		t.Errorf("allocation = %d, want 0", arena.GetAllocation())
	}
}

func TestStackArenaReuse(t *testing.T) {
	arena := playrho.NewStackArena()

	first := arena.AllocVelocityConstraints(1)
	first[0].PointCount = 2
	arena.Free()

	// The next allocation reuses the same storage zeroed.
	second := arena.AllocVelocityConstraints(1)
	if second[0].PointCount != 0 {
		t.Error("reused storage must come back zeroed")
	}
	if &first[0] != &second[0] {
		t.Error("freed arena storage must be reused")
	}
}

func TestStackArenaHeapFallback(t *testing.T) {
	arena := playrho.NewStackArena()

	big := arena.AllocVelocityConstraints(playrho.StackArenaCapacity + 1)
	if len(big) != playrho.StackArenaCapacity+1 {
		t.Fatalf("got %d, want %d", len(big), playrho.StackArenaCapacity+1)
	}

	// The fixed backing stays untouched: a fitting allocation still
	// starts at the bottom of the arena.
	small := arena.AllocVelocityConstraints(1)
	if &big[0] == &small[0] {
		t.Error("oversized allocation must live on the heap")
	}

	if arena.GetAllocation() != playrho.StackArenaCapacity+2 {
		t.Errorf("allocation = %d, want %d", arena.GetAllocation(), playrho.StackArenaCapacity+2)
	}

	arena.Release()
	if arena.GetAllocation() != 0 {
		t.Errorf("allocation after release = %d, want 0", arena.GetAllocation())
	}
}

func TestStackArenaMaxAllocation(t *testing.T) {
	arena := playrho.NewStackArena()

	arena.AllocVelocityConstraints(10)
	arena.AllocPositionConstraints(20)
	arena.Release()
	arena.AllocVelocityConstraints(5)

	if arena.GetMaxAllocation() != 30 {
		t.Errorf("max allocation = %d, want 30", arena.GetMaxAllocation())
	}
	if arena.GetAllocation() != 5 {
		t.Errorf("allocation = %d, want 5", arena.GetAllocation())
	}
}
