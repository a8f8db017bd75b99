package lease

// T is a lease on a set of reserved blocks. The blocks are handed back
// through the callback when the lease is closed, unless the lease was
// committed first.
type T struct {
	blocks []int
	cb     func([]int)
}

// New constructs a lease for the blocks that will have the callback
// called with the blocks when Close is called before Commit.
func New(blocks []int, cb func([]int)) T {
	return T{
		blocks: blocks,
		cb:     cb,
	}
}

// Zero returns if the lease is the zero value.
func (t T) Zero() bool { return t.cb == nil }

// Blocks returns the blocks held by the lease. It is not safe to modify
// the returned slice.
func (t T) Blocks() []int { return t.blocks }

// Commit takes ownership of the blocks away from the lease, so that Close
// no longer returns them. It clears out any state so that it becomes a
// zero lease.
func (t *T) Commit() []int {
	blocks := t.blocks
	*t = T{}
	return blocks
}

// Close returns the blocks through the callback if the lease has not been
// committed. It clears out any state so that it becomes a zero lease.
func (t *T) Close() {
	if t.cb != nil {
		t.cb(t.blocks)
	}
	*t = T{}
}
