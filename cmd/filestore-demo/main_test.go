package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/zeebo/assert"
	"github.com/zeebo/filestore"
)

func TestRunDevice(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, runDevice(&buf, 1))

	out := buf.String()
	assert.That(t, strings.HasSuffix(out, "Success!\n"))
	assert.That(t, strings.Contains(out, "Writing '123456789' to the block device: 12345678\n"))
	assert.That(t, strings.Contains(out, "Writing 'abcd' to the block device: abcd5678\n"))
	assert.That(t, strings.Contains(out, "Reading (no corruption): 1234abcd\n"))
}

func TestRunStore(t *testing.T) {
	t.Run("Reliable", func(t *testing.T) {
		var buf bytes.Buffer
		err := runStore(&buf, storeParams{
			cfg: filestore.Config{
				Replicas:   2,
				Timeout:    time.Second,
				BlockCount: 1024,
				BlockSize:  8,
			},
			files:  10,
			maxLen: 32,
			seed:   1,
			logger: filestore.NoopLogger(),
		})
		assert.NoError(t, err)

		out := buf.String()
		assert.That(t, strings.Contains(out, "puts: 10 ok, 0 timed out, 0 out of space\n"))
		assert.That(t, strings.Contains(out, "gets: 10 clean, 0 corrupted, 0 mismatched\n"))
	})

	t.Run("Invalid", func(t *testing.T) {
		var buf bytes.Buffer
		err := runStore(&buf, storeParams{
			cfg:    filestore.Config{},
			logger: filestore.NoopLogger(),
		})
		assert.Error(t, err)
		assert.Equal(t, filestore.KindOf(err), filestore.KindParameter)
	})
}
