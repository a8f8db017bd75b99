package filestore

import (
	"testing"

	"github.com/zeebo/assert"
)

func TestBlocksNeeded(t *testing.T) {
	for content, count := range map[string]int{
		"":                1,
		"1":               1,
		"1234567":         1,
		"12345678":        2,
		"12345678901234":  2,
		"123456789012345": 3,
	} {
		assert.Equal(t, BlocksNeeded(len(content), 8), count)
	}

	assert.Equal(t, BlocksNeeded(10, 2), 10)
	assert.Equal(t, BlocksNeeded(0, 2), 1)
}

func TestChunk(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		var got []string
		for _, chunk := range Chunk([]byte("foobaryou"), 3) {
			got = append(got, string(chunk))
		}
		assert.DeepEqual(t, got, []string{"foo", "bar", "you"})
	})

	t.Run("Short", func(t *testing.T) {
		var got []string
		for _, chunk := range Chunk([]byte("foobar1"), 3) {
			got = append(got, string(chunk))
		}
		assert.DeepEqual(t, got, []string{"foo", "bar", "1"})
	})

	t.Run("Empty", func(t *testing.T) {
		chunks := Chunk(nil, 7)
		assert.Equal(t, len(chunks), 1)
		assert.Equal(t, len(chunks[0]), 0)
	})

	t.Run("Pad", func(t *testing.T) {
		padded := pad(Chunk([]byte("12345678"), 7), 8)
		assert.Equal(t, len(padded), 2)
		assert.Equal(t, string(padded[0]), "1234567\x00")
		assert.Equal(t, string(padded[1]), "8\x00\x00\x00\x00\x00\x00\x00")
		for _, block := range padded {
			assert.That(t, valid(block))
		}
	})
}

func TestReplicaBlocks(t *testing.T) {
	t.Run("Even", func(t *testing.T) {
		st := newStore(t, config(func(c *Config) { c.Replicas, c.BlockCount = 2, 64 }))
		assert.DeepEqual(t, st.ReplicaBlocks([]int{0}), [][]int{{0}, {32}})
	})

	t.Run("Leftover", func(t *testing.T) {
		st := newStore(t, config(func(c *Config) { c.Replicas, c.BlockCount = 3, 100 }))
		assert.DeepEqual(t, st.ReplicaBlocks([]int{0}), [][]int{{0}, {33}, {66}})
		assert.DeepEqual(t, st.ReplicaBlocks([]int{5, 32}), [][]int{{5, 32}, {38, 65}, {71, 98}})
	})

	t.Run("Single", func(t *testing.T) {
		st := newStore(t, DefaultConfig())
		assert.DeepEqual(t, st.ReplicaBlocks([]int{3, 4}), [][]int{{3, 4}})
	})
}

func TestFree(t *testing.T) {
	t.Run("Initial", func(t *testing.T) {
		for count := 1; count <= 4; count++ {
			st := newStore(t, config(func(c *Config) { c.BlockCount = count }))
			assert.Equal(t, st.Free(), count*8)
		}
	})

	t.Run("PutDelete", func(t *testing.T) {
		st := newStore(t, config(func(c *Config) { c.BlockCount = 16 }))
		initial := st.Free()
		assert.Equal(t, initial, 16*8)

		_, err := st.Put("parrot.txt", []byte(parrot))
		assert.NoError(t, err)
		assert.Equal(t, st.Free(), (16-BlocksNeeded(len(parrot), 8))*8)

		assert.NoError(t, st.Delete("parrot.txt"))
		assert.Equal(t, st.Free(), initial)
	})

	t.Run("Replicas", func(t *testing.T) {
		st := newStore(t, config(func(c *Config) { c.Replicas, c.BlockCount = 4, 32 }))
		needed := BlocksNeeded(len(parrot), 8)
		assert.Equal(t, needed, 4)
		assert.Equal(t, st.Free(), 32*8/4)

		_, err := st.Put("parrot.txt", []byte(parrot))
		assert.NoError(t, err)
		assert.Equal(t, st.Free(), (32/4-needed)*8)

		assert.NoError(t, st.Delete("parrot.txt"))
		assert.Equal(t, st.Free(), 32*8/4)
	})

	t.Run("Reuse", func(t *testing.T) {
		st := newStore(t, config(func(c *Config) { c.BlockCount = 4 }))

		_, err := st.Put("a", []byte("1234567"))
		assert.NoError(t, err)
		_, err = st.Put("b", []byte("12345678901234"))
		assert.NoError(t, err)
		assert.NoError(t, st.Delete("a"))

		_, err = st.Put("c", []byte("12345678"))
		assert.NoError(t, err)

		meta, ok := st.Stat("c")
		assert.That(t, ok)
		assert.DeepEqual(t, meta.Blocks, []int{3, 0})
		assert.Equal(t, st.Free(), 0)
		assert.That(t, st.partitioned())
	})
}

func TestReserve(t *testing.T) {
	st := newStore(t, config(func(c *Config) { c.BlockCount = 8 }))

	le := st.reserve(3)
	assert.DeepEqual(t, le.Blocks(), []int{0, 1, 2})
	assert.DeepEqual(t, st.free, []int{3, 4, 5, 6, 7})

	le.Close()
	assert.DeepEqual(t, st.free, []int{0, 1, 2, 3, 4, 5, 6, 7})

	le = st.reserve(2)
	assert.DeepEqual(t, le.Commit(), []int{0, 1})
	le.Close()
	assert.DeepEqual(t, st.free, []int{2, 3, 4, 5, 6, 7})
}
