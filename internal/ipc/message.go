package ipc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Magic opens every frame in both directions
	Magic = "i3-ipc"
	// HeaderSize is magic + payload length + message type
	HeaderSize = len(Magic) + 4 + 4
	// DefaultMaxPayload bounds the payload length accepted from the peer
	DefaultMaxPayload = 64 << 20

	eventFlag = 1 << 31
)

// MessageType is the message tag carried in every header.
// Values are fixed by the compositor protocol.
type MessageType uint32

const (
	Command    MessageType = 0
	Subscribe  MessageType = 2
	GetTree    MessageType = 4
	GetVersion MessageType = 7
)

func (t MessageType) String() string {
	switch t {
	case Command:
		return "RUN_COMMAND"
	case Subscribe:
		return "SUBSCRIBE"
	case GetTree:
		return "GET_TREE"
	case GetVersion:
		return "GET_VERSION"
	}
	if t&eventFlag != 0 {
		return fmt.Sprintf("EVENT(%d)", uint32(t&^eventFlag))
	}
	return fmt.Sprintf("TYPE(%d)", uint32(t))
}

// IsEvent reports whether the type has the event bit set
func (t MessageType) IsEvent() bool {
	return t&eventFlag != 0
}

// Header is a decoded frame header
type Header struct {
	Length uint32
	Type   MessageType
}

// Encode serializes a frame: header followed by payload, little-endian.
func Encode(t MessageType, payload []byte) []byte {
	buf := make([]byte, HeaderSize+len(payload))
	copy(buf, Magic)
	binary.LittleEndian.PutUint32(buf[len(Magic):], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[len(Magic)+4:], uint32(t))
	copy(buf[HeaderSize:], payload)
	return buf
}

// DecodeHeader parses exactly HeaderSize bytes
func DecodeHeader(buf []byte, checkMagic bool) (Header, error) {
	if len(buf) != HeaderSize {
		return Header{}, &ProtocolError{Reason: fmt.Sprintf("header is %d bytes, want %d", len(buf), HeaderSize)}
	}
	if checkMagic && !bytes.Equal(buf[:len(Magic)], []byte(Magic)) {
		return Header{}, &ProtocolError{Reason: fmt.Sprintf("bad magic %q", buf[:len(Magic)])}
	}
	return Header{
		Length: binary.LittleEndian.Uint32(buf[len(Magic):]),
		Type:   MessageType(binary.LittleEndian.Uint32(buf[len(Magic)+4:])),
	}, nil
}

// ReadOptions controls frame validation on read
type ReadOptions struct {
	// MaxPayload rejects frames declaring a longer payload. 0 means no limit.
	MaxPayload uint32
	CheckMagic bool
}

// ReadMessage reads one complete frame. A short read is an IOError,
// never a partial message.
func ReadMessage(r io.Reader, opts ReadOptions) (Header, []byte, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, nil, &IOError{Op: "read header", Err: err}
	}

	h, err := DecodeHeader(buf, opts.CheckMagic)
	if err != nil {
		return Header{}, nil, err
	}
	if opts.MaxPayload > 0 && h.Length > opts.MaxPayload {
		return h, nil, &ProtocolError{Reason: fmt.Sprintf("payload length %d exceeds limit %d", h.Length, opts.MaxPayload)}
	}

	payload := make([]byte, h.Length)
	if h.Length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return h, nil, &IOError{Op: "read payload", Err: err}
		}
	}

	return h, payload, nil
}
