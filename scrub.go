package filestore

import (
	"context"
)

// ScrubReport summarizes a scrub pass.
type ScrubReport struct {
	Files    int      // files examined
	Blocks   int      // blocks read, across all replicas
	Repaired int      // blocks rewritten from a healthy replica
	Lost     []string // files deleted because some block had no healthy replica
}

// Scrub reads every replica of every block of every file, rewriting the
// replicas that fail the sentinel check from the first one that passes.
// Files with a block that fails on every replica are deleted, as Get would
// do, and reported as lost.
//
// Like Get, Scrub mutates the device, and its reads can themselves
// corrupt blocks.
func (t *T) Scrub() (report ScrubReport, err error) {
	for _, name := range t.Names() {
		meta := t.files[name]
		replicas := t.ReplicaBlocks(meta.Blocks)
		report.Files++

		lost := false
		for i := range meta.Blocks {
			repaired, ok, err := t.scrubBlock(replicas, i)
			report.Blocks += len(replicas)
			report.Repaired += repaired
			if err != nil {
				return report, err
			}
			if !ok {
				lost = true
			}
		}

		if lost {
			t.remove(name)
			report.Lost = append(report.Lost, name)
			t.logger.ErrorContext(context.Background(), "scrub lost file", "file", name)
		}
	}

	t.logger.InfoContext(context.Background(), "scrub completed",
		"files", report.Files,
		"blocks", report.Blocks,
		"repaired", report.Repaired,
		"lost", len(report.Lost),
	)
	return report, nil
}

// scrubBlock reads position i of every replica and rewrites the ones that
// fail the sentinel check from the first that passes. It returns how many
// blocks were rewritten, and false if no replica passed.
func (t *T) scrubBlock(replicas [][]int, i int) (int, bool, error) {
	var (
		bad    []int
		good   []byte
		source int
	)
	for _, blocks := range replicas {
		data, err := t.readBlock(blocks[i])
		if err != nil {
			return 0, false, err
		}
		switch {
		case !valid(data):
			bad = append(bad, blocks[i])
		case good == nil:
			good, source = data, blocks[i]
		}
	}
	if good == nil {
		return 0, false, nil
	}

	for _, block := range bad {
		if err := t.repairBlock(block, source, good); err != nil {
			return 0, false, err
		}
	}
	return len(bad), true, nil
}
