package filestore

// Content is the result of reading a file. It is either clean, holding
// exactly what was put, or corrupted, holding what could be recovered with
// zero bytes in place of lost blocks.
type Content struct {
	data      []byte
	corrupted bool
}

// Clean returns content that was read back intact.
func Clean(data []byte) Content { return Content{data: data} }

// Corrupted returns content that could only be partially recovered.
func Corrupted(data []byte) Content { return Content{data: data, corrupted: true} }

// Bytes returns the data. It is not safe to modify the returned slice.
func (c Content) Bytes() []byte { return c.data }

// String returns the data as a string.
func (c Content) String() string { return string(c.data) }

// IsCorrupted returns true if the data was only partially recovered.
func (c Content) IsCorrupted() bool { return c.corrupted }
