package playrho

// StackArenaCapacity is the per-type high-water element count of the
// arena's fixed backing. Requests beyond it fall back to the heap.
const StackArenaCapacity = 256

const (
	arenaKindVelocity = iota
	arenaKindPosition
)

type stackArenaEntry struct {
	kind  int
	count int
	heap  bool
}

// StackArena is a bump-pointer allocator for the per-step constraint
// arrays. Allocations are stack-ordered; oversized requests fall back to
// the heap transparently. A zero StackArena is ready to use.
type StackArena struct {
	velocity [StackArenaCapacity]VelocityConstraint
	position [StackArenaCapacity]PositionConstraint

	velocityIndex int
	positionIndex int
	entries       []stackArenaEntry

	allocation    int
	maxAllocation int
}

func NewStackArena() *StackArena {
	return &StackArena{}
}

// AllocVelocityConstraints returns a slice of n zeroed velocity
// constraints, backed by the arena when it fits.
func (a *StackArena) AllocVelocityConstraints(n int) []VelocityConstraint {
	entry := stackArenaEntry{kind: arenaKindVelocity, count: n}

	var s []VelocityConstraint
	if a.velocityIndex+n > StackArenaCapacity {
		entry.heap = true
		s = make([]VelocityConstraint, n)
	} else {
		s = a.velocity[a.velocityIndex : a.velocityIndex+n]
		for i := range s {
			s[i] = VelocityConstraint{}
		}
		a.velocityIndex += n
	}

	a.entries = append(a.entries, entry)
	a.allocation += n
	a.maxAllocation = MaxInt(a.maxAllocation, a.allocation)

	return s
}

// AllocPositionConstraints returns a slice of n zeroed position
// constraints, backed by the arena when it fits.
func (a *StackArena) AllocPositionConstraints(n int) []PositionConstraint {
	entry := stackArenaEntry{kind: arenaKindPosition, count: n}

	var s []PositionConstraint
	if a.positionIndex+n > StackArenaCapacity {
		entry.heap = true
		s = make([]PositionConstraint, n)
	} else {
		s = a.position[a.positionIndex : a.positionIndex+n]
		for i := range s {
			s[i] = PositionConstraint{}
		}
		a.positionIndex += n
	}

	a.entries = append(a.entries, entry)
	a.allocation += n
	a.maxAllocation = MaxInt(a.maxAllocation, a.allocation)

	return s
}

// Free releases the most recent allocation. Allocations must be released
// in reverse order.
func (a *StackArena) Free() {
	Assert(len(a.entries) > 0)
	entry := a.entries[len(a.entries)-1]
	a.entries = a.entries[:len(a.entries)-1]

	if !entry.heap {
		switch entry.kind {
		case arenaKindVelocity:
			a.velocityIndex -= entry.count
		case arenaKindPosition:
			a.positionIndex -= entry.count
		}
	}

	a.allocation -= entry.count
}

// Release frees every outstanding allocation. Holders call it on each
// exit path so the arena is reusable regardless of how a step ended.
func (a *StackArena) Release() {
	for len(a.entries) > 0 {
		a.Free()
	}
}

// GetAllocation returns the number of elements currently allocated.
func (a *StackArena) GetAllocation() int {
	return a.allocation
}

// GetMaxAllocation returns the high-water element count seen so far.
func (a *StackArena) GetMaxAllocation() int {
	return a.maxAllocation
}
