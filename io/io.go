package io

// Device is an interface abstracting an addressable array of fixed size
// blocks. Implementations may be unreliable: the content returned from Read
// and Write is what the device actually holds afterwards, which need not be
// what was asked for.
type Device interface {
	// BlockSize returns the length of every block on the device.
	BlockSize() int

	// BlockCount returns the number of addressable blocks.
	BlockCount() int

	// Read returns the content of the block at index. Reading may change
	// the stored content; the returned bytes are what remains stored.
	Read(index int) ([]byte, error)

	// Write stores content at index and returns what was persisted. Content
	// longer than BlockSize is truncated, and shorter content keeps the
	// tail of the existing block.
	Write(index int, content []byte) ([]byte, error)
}
