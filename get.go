package filestore

import (
	"bytes"
	"context"
	"time"

	"github.com/zeebo/filestore/internal/mon"
)

const sentinel = 0x00

var readThunk mon.Thunk // timing for a block read

// Get returns the content of the file.
//
// Get mutates the device. Reads may corrupt blocks, and a block that fails
// the sentinel check is recovered from the next replica that passes it;
// every replica that failed before it is rewritten with the recovered
// block. If some block cannot be recovered from any replica, the file is
// deleted and the returned content is marked corrupted, with zero bytes in
// place of each lost block.
//
// It fails with a NotFoundError if the file does not exist.
func (t *T) Get(name string) (content Content, err error) {
	start := time.Now()
	defer func() {
		t.logger.LogGet(context.Background(), name, content, err)
		t.metrics.RecordGet(content.IsCorrupted(), time.Since(start), err)
	}()

	meta, ok := t.files[name]
	if !ok {
		return Content{}, Error.Wrap(NotFoundError.New("%q is not found", name))
	}

	replicas := t.ReplicaBlocks(meta.Blocks)
	payload := t.cfg.BlockSize - 1
	data := make([]byte, 0, len(meta.Blocks)*payload)
	corrupted := false

	for i := range meta.Blocks {
		chunk, ok, err := t.recoverBlock(replicas, i)
		if err != nil {
			return Content{}, err
		}
		if !ok {
			corrupted = true
			chunk = make([]byte, payload)
		}
		data = append(data, chunk...)
	}
	data = data[:meta.Length]

	if corrupted {
		t.remove(name)
		return Corrupted(data), nil
	}
	return Clean(data), nil
}

// recoverBlock reads position i of each replica in order until one passes
// the sentinel check, and rewrites the replicas that failed before it. It
// returns the payload of the passing block, or false if none passed.
func (t *T) recoverBlock(replicas [][]int, i int) ([]byte, bool, error) {
	var bad []int
	for _, blocks := range replicas {
		data, err := t.readBlock(blocks[i])
		if err != nil {
			return nil, false, err
		}
		if !valid(data) {
			bad = append(bad, blocks[i])
			continue
		}

		for _, block := range bad {
			if err := t.repairBlock(block, blocks[i], data); err != nil {
				return nil, false, err
			}
		}
		return data[:len(data)-1], true, nil
	}
	return nil, false, nil
}

// readBlock reads a single block from the device.
func (t *T) readBlock(block int) ([]byte, error) {
	defer readThunk.Start().Stop()

	data, err := t.dev.Read(block)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return data, nil
}

// repairBlock overwrites block with data read from source. It is a single
// write: if the device corrupts it, the block stays bad until the next
// read that notices.
func (t *T) repairBlock(block, source int, data []byte) error {
	got, err := t.dev.Write(block, data)
	if err != nil {
		return Error.Wrap(err)
	}

	ok := bytes.Equal(got, data)
	t.logger.LogRepair(context.Background(), block, source, ok)
	t.metrics.RecordRepair(ok)
	return nil
}

// valid reports if the block carries the sentinel as its last byte.
func valid(block []byte) bool {
	return len(block) > 0 && block[len(block)-1] == sentinel
}
