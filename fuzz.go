//go:build gofuzz

package filestore

import (
	"bytes"
	"time"
)

// Fuzz checks that content round trips through a reliable store. The first
// byte picks the block size and replica count.
func Fuzz(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	cfg := Config{
		Replicas:   int(data[0]>>4)%4 + 1,
		Timeout:    time.Second,
		BlockCount: 4096,
		BlockSize:  int(data[0]&15) + 2,
	}
	content := data[1:]

	st, err := New(cfg, WithSeed(uint64(len(data))))
	if err != nil {
		panic(err)
	}
	if _, err := st.Put("fuzz", content); err != nil {
		if OutOfSpaceError.Has(err) {
			return 0
		}
		panic(err)
	}
	got, err := st.Get("fuzz")
	if err != nil {
		panic(err)
	}
	if got.IsCorrupted() || !bytes.Equal(got.Bytes(), content) {
		panic("round trip mismatch")
	}
	return 1
}
