package message

import (
	"encoding/binary"
	"errors"
	"google.golang.org/protobuf/proto"
)

// RecordHeaderSize is the size of the big endian length in front of every record.
const RecordHeaderSize = 2

// MaxRecordSize is the largest encoded message PushMessage accepts.
const MaxRecordSize = 1<<(RecordHeaderSize*8) - 1

var ErrRecordSize = errors.New("message: encoded message exceeds the record size limit")

// PushMessage appends m as a record: the length of its protobuf encoding, then the encoding.
// The length is big endian, independent of the host byte order.
func (b *Buffer) PushMessage(m proto.Message) error {
	record, err := proto.Marshal(m)
	if err != nil {
		return err
	}
	if len(record) > MaxRecordSize {
		return ErrRecordSize
	}
	if RecordHeaderSize+len(record) > b.Space() {
		return ErrCapacity
	}
	tail := b.Tail()
	binary.BigEndian.PutUint16(tail, uint16(len(record)))
	copy(tail[RecordHeaderSize:], record)
	return b.AddSize(RecordHeaderSize + len(record))
}

// ReadMessage decodes the record at the cursor into m.
// The cursor is only advanced if the whole record could be decoded.
func (b *Buffer) ReadMessage(m proto.Message) error {
	start := b.cursor + RecordHeaderSize
	if start > b.size {
		return ErrOutOfRange
	}
	end := start + int(binary.BigEndian.Uint16(b.data[b.cursor:start]))
	if end > b.size {
		return ErrOutOfRange
	}
	if err := proto.Unmarshal(b.data[start:end], m); err != nil {
		return err
	}
	b.cursor = end
	return nil
}
