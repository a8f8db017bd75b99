package filestore

import (
	"github.com/zeebo/filestore/lease"
)

// BlocksNeeded returns how many blocks a single replica needs to store n
// bytes when every block of blockSize bytes gives up one byte to the
// sentinel. Empty content still takes one block.
func BlocksNeeded(n, blockSize int) int {
	payload := blockSize - 1
	needed := (n + payload - 1) / payload
	if needed < 1 {
		needed = 1
	}
	return needed
}

// ReplicaBlocks returns the block indices of every replica for the first
// replica's blocks. The outer slice is indexed by replica.
func (t *T) ReplicaBlocks(blocks []int) [][]int {
	offset := t.cfg.segment()
	out := make([][]int, t.cfg.Replicas)
	for r := range out {
		out[r] = make([]int, len(blocks))
		for i, b := range blocks {
			out[r][i] = b + offset*r
		}
	}
	return out
}

// reserve takes the first n blocks off of the free list. The returned lease
// puts them back at the front unless it is committed.
func (t *T) reserve(n int) lease.T {
	blocks := append([]int(nil), t.free[:n]...)
	t.free = t.free[n:]
	return lease.New(blocks, t.unreserve)
}

// unreserve puts blocks back at the front of the free list.
func (t *T) unreserve(blocks []int) {
	free := make([]int, 0, len(blocks)+len(t.free))
	free = append(free, blocks...)
	t.free = append(free, t.free...)
}
