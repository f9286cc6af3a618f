package main

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
	"projekt/udpframe/lib/message"
)

// codec converts chat lines to payloads and back.
type codec interface {
	encode(line string) ([]byte, error)
	decode(payload []byte) (string, error)
}

// textCodec sends lines as zero-terminated strings.
type textCodec struct{}

func (textCodec) encode(line string) ([]byte, error) {
	b := message.New(len(line) + 1)
	if err := b.PushString(line); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (textCodec) decode(payload []byte) (string, error) {
	b := message.New(len(payload))
	if err := b.Push(payload); err != nil {
		return "", err
	}
	s, ok := b.ReadString()
	if !ok {
		return string(payload), nil
	}
	return s, nil
}

// protoCodec sends lines as length-prefixed protobuf string values.
type protoCodec struct{}

func (protoCodec) encode(line string) ([]byte, error) {
	m := wrapperspb.String(line)
	b := message.New(message.RecordHeaderSize + proto.Size(m))
	if err := b.PushMessage(m); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (protoCodec) decode(payload []byte) (string, error) {
	b := message.New(len(payload))
	if err := b.Push(payload); err != nil {
		return "", err
	}
	var m wrapperspb.StringValue
	if err := b.ReadMessage(&m); err != nil {
		return "", err
	}
	return m.GetValue(), nil
}

func newCodec(useProto bool) codec {
	if useProto {
		return protoCodec{}
	}
	return textCodec{}
}
