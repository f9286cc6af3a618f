// Package message provides Buffer, a fixed-capacity byte container
// that is filled from the back, drained from either end
// and decoded with an independent read cursor.
package message

import (
	"bytes"
	"errors"
	"io"
)

var (
	ErrCapacity     = errors.New("message: not enough space left in buffer")
	ErrUnderflow    = errors.New("message: buffer holds fewer bytes than requested")
	ErrOutOfRange   = errors.New("message: read past the end of the buffered data")
	ErrNotFixedSize = errors.New("message: value does not have a fixed size")
	ErrCapacityArg  = errors.New("message: capacity must not be negative")
)

// Terminator ends every string written with PushString.
const Terminator = 0

// Buffer holds up to Cap bytes.
// Data occupies the range [0, Size) and the cursor lies within [0, Size].
// The cursor is only moved by the read operations, SetCursor and Clear,
// except that removing bytes keeps it within the remaining data.
// A Buffer must not be used by multiple goroutines at once.
type Buffer struct {
	data   []byte
	size   int
	cursor int
}

// New creates an empty Buffer with the given capacity.
func New(capacity int) *Buffer {
	if capacity < 0 {
		panic(ErrCapacityArg)
	}
	return &Buffer{
		data:   make([]byte, capacity),
		size:   0,
		cursor: 0,
	}
}

// Size returns the number of buffered bytes.
func (b *Buffer) Size() int {
	return b.size
}

// Cap returns the fixed capacity of the buffer.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Space returns the number of bytes that can still be pushed.
func (b *Buffer) Space() int {
	return len(b.data) - b.size
}

// Bytes returns the buffered bytes.
// The slice aliases the buffer and is only valid until the next mutation.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.size]
}

// Tail returns the free region behind the buffered bytes.
// Bytes written into it become part of the buffer after a call to AddSize.
func (b *Buffer) Tail() []byte {
	return b.data[b.size:]
}

// AddSize marks n bytes of the tail as buffered data.
func (b *Buffer) AddSize(n int) error {
	if n < 0 || n > b.Space() {
		return ErrCapacity
	}
	b.size += n
	return nil
}

// Push appends p. Nothing is written if p does not fit.
func (b *Buffer) Push(p []byte) error {
	if len(p) > b.Space() {
		return ErrCapacity
	}
	b.size += copy(b.data[b.size:], p)
	return nil
}

// PushString appends s followed by a Terminator byte.
func (b *Buffer) PushString(s string) error {
	if len(s)+1 > b.Space() {
		return ErrCapacity
	}
	b.size += copy(b.data[b.size:], s)
	b.data[b.size] = Terminator
	b.size++
	return nil
}

// Pop removes and returns the first n bytes.
// The remaining bytes are moved to the front of the buffer.
func (b *Buffer) Pop(n int) ([]byte, error) {
	if n < 0 || n > b.size {
		return nil, ErrUnderflow
	}
	out := make([]byte, n)
	copy(out, b.data[:n])
	copy(b.data, b.data[n:b.size])
	b.size -= n
	b.cursor -= n
	if b.cursor < 0 {
		b.cursor = 0
	}
	return out, nil
}

// PopBack removes and returns the last n bytes.
func (b *Buffer) PopBack(n int) ([]byte, error) {
	if n < 0 || n > b.size {
		return nil, ErrUnderflow
	}
	out := make([]byte, n)
	copy(out, b.data[b.size-n:b.size])
	b.size -= n
	if b.cursor > b.size {
		b.cursor = b.size
	}
	return out, nil
}

// Cursor returns the position of the next read.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the read cursor. Positions past the data are clamped to Size.
func (b *Buffer) SetCursor(pos int) {
	switch {
	case pos < 0:
		b.cursor = 0
	case pos > b.size:
		b.cursor = b.size
	default:
		b.cursor = pos
	}
}

// ReadString reads a Terminator-delimited string at the cursor
// and moves the cursor behind the terminator.
// If there is no terminator before the end of the data
// it reports false and leaves the cursor where it was.
func (b *Buffer) ReadString() (string, bool) {
	if b.cursor >= b.size {
		return "", false
	}
	i := bytes.IndexByte(b.data[b.cursor:b.size], Terminator)
	if i < 0 {
		return "", false
	}
	s := string(b.data[b.cursor : b.cursor+i])
	b.cursor += i + 1
	return s, true
}

// Read implements io.Reader on top of the cursor.
// The buffered bytes themselves are left untouched.
func (b *Buffer) Read(p []byte) (n int, err error) {
	if b.cursor >= b.size {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n = copy(p, b.data[b.cursor:b.size])
	b.cursor += n
	return
}

// Write implements io.Writer with the semantics of Push.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if err = b.Push(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Clear empties the buffer and rewinds the cursor.
func (b *Buffer) Clear() {
	b.size = 0
	b.cursor = 0
}
