// Package mmap provides read-only memory-mapped file access.
//
// Dataset files can be large; mapping them lets the blob store serve
// ReadAt calls without copying through an intermediate buffer.
//
//	m, err := mmap.Open("vectors.fvecs")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix platforms use mmap(2) and madvise(2) via golang.org/x/sys/unix.
// Windows uses CreateFileMapping/MapViewOfFile; Advise is a no-op there.
//
// A Mapping is safe for concurrent reads. Close is idempotent, but callers
// must not touch Bytes() after Close returns.
package mmap
