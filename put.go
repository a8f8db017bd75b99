package filestore

import (
	"bytes"
	"context"
	"time"

	"github.com/zeebo/filestore/internal/debug"
	"github.com/zeebo/filestore/internal/mon"
)

var writeThunk mon.Thunk // timing for a retried block write

// Put stores content under name, replacing any existing file. Every block
// of every replica is rewritten until the device reports it persisted as
// intended, so a successful Put always returns content unchanged.
//
// It fails with an OutOfSpaceError, leaving the free list untouched, if
// there are not enough free blocks, and with a TimeoutError if some block
// could not be written within the timeout. An existing file is removed
// before either check.
func (t *T) Put(name string, content []byte) (_ []byte, err error) {
	start := time.Now()
	needed := BlocksNeeded(len(content), t.cfg.BlockSize)
	defer func() {
		t.logger.LogPut(context.Background(), name, len(content), needed, err)
		t.metrics.RecordPut(needed, time.Since(start), err)
	}()

	t.remove(name)

	if needed > len(t.free) {
		return nil, Error.Wrap(OutOfSpaceError.New(
			"not enough space for %q: need %d blocks, have %d free blocks",
			name, needed, len(t.free)))
	}

	chunks := pad(Chunk(content, t.cfg.BlockSize-1), t.cfg.BlockSize)
	debug.Assert("one chunk per block", func() bool { return len(chunks) == needed })

	le := t.reserve(needed)
	defer le.Close()

	for _, blocks := range t.ReplicaBlocks(le.Blocks()) {
		for i, block := range blocks {
			if err := t.putBlock(block, chunks[i]); err != nil {
				return nil, err
			}
		}
	}

	t.files[name] = FileMetadata{
		Length: len(content),
		Blocks: le.Commit(),
	}
	debug.Assert("free list partition", t.partitioned)

	return content, nil
}

// putBlock writes data to the block until the device returns it unchanged
// or the timeout elapses. On timeout the block is left with whatever the
// last attempt persisted.
func (t *T) putBlock(block int, data []byte) (err error) {
	timer := writeThunk.Start()
	start := t.clock.Now()
	attempts := 0
	defer func() {
		t.metrics.RecordBlockWrite(attempts, timer.Stop(), err)
	}()

	for {
		attempts++
		got, err := t.dev.Write(block, data)
		if err != nil {
			return Error.Wrap(err)
		}
		if bytes.Equal(got, data) {
			return nil
		}

		if elapsed := t.since(start); elapsed > t.cfg.Timeout {
			return Error.Wrap(TimeoutError.New(
				"failed to write block %d: %d attempts in %v", block, attempts, elapsed))
		}
	}
}

// Chunk splits content into pieces of at most size bytes. It always
// returns at least one piece, which is empty for empty content.
func Chunk(content []byte, size int) [][]byte {
	if len(content) == 0 {
		return [][]byte{{}}
	}
	chunks := make([][]byte, 0, (len(content)+size-1)/size)
	for len(content) > size {
		chunks = append(chunks, content[:size:size])
		content = content[size:]
	}
	return append(chunks, content)
}

// pad copies every chunk into a fresh block of blockSize bytes. The unused
// tail is zero, so the last byte of every padded chunk is the sentinel.
func pad(chunks [][]byte, blockSize int) [][]byte {
	out := make([][]byte, len(chunks))
	for i, chunk := range chunks {
		out[i] = make([]byte, blockSize)
		copy(out[i], chunk)
	}
	return out
}
