package ipc

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestEncodeReadRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		msgType MessageType
		payload []byte
	}{
		{"empty get_tree", GetTree, nil},
		{"command", Command, []byte("split vertical;exec 'foot '")},
		{"subscribe", Subscribe, []byte(`["window"]`)},
		{"large", GetVersion, bytes.Repeat([]byte("x"), 70000)},
		{"event type", MessageType(eventFlag | 3), []byte("{}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := Encode(tt.msgType, tt.payload)
			if len(frame) != HeaderSize+len(tt.payload) {
				t.Fatalf("len(frame) = %d, want %d", len(frame), HeaderSize+len(tt.payload))
			}

			h, payload, err := ReadMessage(bytes.NewReader(frame), ReadOptions{CheckMagic: true})
			if err != nil {
				t.Fatalf("ReadMessage() unexpected error: %v", err)
			}
			if h.Type != tt.msgType {
				t.Errorf("Type = %v, want %v", h.Type, tt.msgType)
			}
			if int(h.Length) != len(tt.payload) {
				t.Errorf("Length = %d, want %d", h.Length, len(tt.payload))
			}
			if !bytes.Equal(payload, tt.payload) {
				t.Errorf("payload mismatch")
			}
		})
	}
}

func TestEncode_WireLayout(t *testing.T) {
	frame := Encode(GetTree, []byte("ab"))
	want := []byte{'i', '3', '-', 'i', 'p', 'c', 2, 0, 0, 0, 4, 0, 0, 0, 'a', 'b'}
	if !bytes.Equal(frame, want) {
		t.Errorf("Encode() = %v, want %v", frame, want)
	}
	if HeaderSize != 14 {
		t.Errorf("HeaderSize = %d, want 14", HeaderSize)
	}
}

func TestReadMessage_Errors(t *testing.T) {
	valid := Encode(Command, []byte(`[{"success":true}]`))
	badMagic := append([]byte("i4-ipc"), valid[len(Magic):]...)

	tests := []struct {
		name      string
		data      []byte
		opts      ReadOptions
		wantIO    bool
		wantProto bool
	}{
		{"empty stream", nil, ReadOptions{}, true, false},
		{"short header", valid[:9], ReadOptions{}, true, false},
		{"short payload", valid[:len(valid)-3], ReadOptions{}, true, false},
		{"bad magic", badMagic, ReadOptions{CheckMagic: true}, false, true},
		{"over limit", valid, ReadOptions{MaxPayload: 4}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadMessage(bytes.NewReader(tt.data), tt.opts)
			if err == nil {
				t.Fatal("ReadMessage() expected error, got nil")
			}

			var ioErr *IOError
			var protoErr *ProtocolError
			if tt.wantIO && !errors.As(err, &ioErr) {
				t.Errorf("ReadMessage() error = %v, want *IOError", err)
			}
			if tt.wantProto && !errors.As(err, &protoErr) {
				t.Errorf("ReadMessage() error = %v, want *ProtocolError", err)
			}
		})
	}
}

func TestReadMessage_ShortPayloadIsUnexpectedEOF(t *testing.T) {
	frame := Encode(GetTree, []byte("{}"))
	_, _, err := ReadMessage(bytes.NewReader(frame[:HeaderSize+1]), ReadOptions{})
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadMessage() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestReadMessage_MagicNotChecked(t *testing.T) {
	frame := Encode(GetTree, []byte("{}"))
	copy(frame, "xxxxxx")
	h, payload, err := ReadMessage(bytes.NewReader(frame), ReadOptions{})
	if err != nil {
		t.Fatalf("ReadMessage() unexpected error: %v", err)
	}
	if h.Type != GetTree || string(payload) != "{}" {
		t.Errorf("ReadMessage() = %+v %q", h, payload)
	}
}

func TestMessageTypeString(t *testing.T) {
	tests := []struct {
		input    MessageType
		expected string
	}{
		{Command, "RUN_COMMAND"},
		{GetTree, "GET_TREE"},
		{Subscribe, "SUBSCRIBE"},
		{GetVersion, "GET_VERSION"},
		{MessageType(1), "TYPE(1)"},
		{MessageType(eventFlag | 3), "EVENT(3)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.input.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCommandErrorMessage(t *testing.T) {
	err := &CommandError{
		Command: "split sideways",
		Failures: []CommandFailure{
			{Index: 0, ParseError: true, Error: "Invalid split command"},
			{Index: 2},
		},
	}
	msg := err.Error()
	for _, want := range []string{"split sideways", "#0: Invalid split command", "#2: unknown error"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}
