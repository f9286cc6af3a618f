package message

import (
	"encoding/binary"
	"projekt/udpframe/lib/byteorder"
)

// Values are encoded with encoding/binary in the host's byte order,
// so they have the same layout as a plain memory copy of the value.
// T must have a fixed size: sized integers, floats, bools,
// and arrays or structs made of those.

func sizeOf[T any]() (int, error) {
	var zero T
	n := binary.Size(zero)
	if n < 0 {
		return 0, ErrNotFixedSize
	}
	return n, nil
}

// PushValue appends the binary encoding of v.
// Like Push it fails with ErrCapacity and writes nothing if v does not fit.
func PushValue[T any](b *Buffer, v T) error {
	n, err := sizeOf[T]()
	if err != nil {
		return err
	}
	if n > b.Space() {
		return ErrCapacity
	}
	if _, err = binary.Encode(b.data[b.size:b.size+n], byteorder.Native, v); err != nil {
		return err
	}
	b.size += n
	return nil
}

// PopValue removes a value of type T from the front of the buffer.
func PopValue[T any](b *Buffer) (v T, err error) {
	n, err := sizeOf[T]()
	if err != nil {
		return
	}
	raw, err := b.Pop(n)
	if err != nil {
		return
	}
	_, err = binary.Decode(raw, byteorder.Native, &v)
	return
}

// PopBackValue removes a value of type T from the back of the buffer.
func PopBackValue[T any](b *Buffer) (v T, err error) {
	n, err := sizeOf[T]()
	if err != nil {
		return
	}
	raw, err := b.PopBack(n)
	if err != nil {
		return
	}
	_, err = binary.Decode(raw, byteorder.Native, &v)
	return
}

// ReadValue decodes a value of type T at the cursor and advances the cursor.
// It returns ErrOutOfRange if the value would extend past the buffered data.
func ReadValue[T any](b *Buffer) (v T, err error) {
	n, err := sizeOf[T]()
	if err != nil {
		return
	}
	if b.cursor+n > b.size {
		err = ErrOutOfRange
		return
	}
	if _, err = binary.Decode(b.data[b.cursor:b.cursor+n], byteorder.Native, &v); err != nil {
		return
	}
	b.cursor += n
	return
}
