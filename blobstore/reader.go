package blobstore

import (
	"bufio"
	"bytes"
	"io"
)

// DefaultReadBufferSize is the buffer NewReader puts in front of remote blobs.
// Ranged GETs are expensive, so each read should fetch a large window.
const DefaultReadBufferSize = 4 << 20

// NewReader returns a sequential reader over the whole blob.
//
// Mappable blobs are read straight from memory. Other blobs are wrapped in a
// section reader behind a DefaultReadBufferSize buffer.
func NewReader(b Blob) io.Reader {
	if m, ok := b.(Mappable); ok {
		if data, err := m.Bytes(); err == nil {
			return bytes.NewReader(data)
		}
	}

	size := b.Size()
	bufSize := DefaultReadBufferSize
	if size < int64(bufSize) {
		bufSize = max(int(size), 16)
	}

	return bufio.NewReaderSize(io.NewSectionReader(b, 0, size), bufSize)
}
