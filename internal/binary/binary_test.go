package binary

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReaderReadByte(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(bytes.NewReader(data))

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	_, err := r.ReadByte()
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestReaderReadBytesTruncated(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02}))
	_, err := r.ReadBytes(4)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReaderReadU32(t *testing.T) {
	tests := []struct {
		encoded []byte
		want    uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		r := NewReader(bytes.NewReader(tt.encoded))
		got, err := r.ReadU32()
		if err != nil {
			t.Errorf("ReadU32(%v): %v", tt.encoded, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ReadU32(%v): got %d, want %d", tt.encoded, got, tt.want)
		}
	}
}

func TestReaderReadU32Overflow(t *testing.T) {
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	r := NewReader(bytes.NewReader(data))
	_, err := r.ReadU32()
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}

func TestReaderReadS64(t *testing.T) {
	tests := []struct {
		encoded []byte
		want    int64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, -1},
		{[]byte{0x3f}, 63},
		{[]byte{0x40}, -64},
		{[]byte{0xc0, 0x00}, 64},
		{[]byte{0xbf, 0x7f}, -65},
	}

	for _, tt := range tests {
		r := NewReader(bytes.NewReader(tt.encoded))
		got, err := r.ReadS64()
		if err != nil {
			t.Errorf("ReadS64(%v): %v", tt.encoded, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ReadS64(%v): got %d, want %d", tt.encoded, got, tt.want)
		}
	}
}

func TestReaderReadStringInvalidUTF8(t *testing.T) {
	data := []byte{0x02, 0xff, 0xfe}
	r := NewReader(bytes.NewReader(data))
	if _, err := r.ReadString(); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}

func TestReaderWrapError(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02}))
	r.ReadByte()
	r.ReadByte()

	err := r.WrapError("schema id", errors.New("test error"))
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if de.Position != 2 {
		t.Errorf("Position: got %d, want 2", de.Position)
	}
	if got := de.Error(); got != "decode schema id at position 2: test error" {
		t.Errorf("Error(): got %q", got)
	}

	bare := &DecodeError{Position: 5, Err: errors.New("some error")}
	if got := bare.Error(); got != "decode at position 5: some error" {
		t.Errorf("Error(): got %q", got)
	}
}

func TestWriterWriteS64(t *testing.T) {
	tests := []struct {
		want  []byte
		value int64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, -1},
		{[]byte{0x40}, -64},
		{[]byte{0xc0, 0x00}, 64},
		{[]byte{0xbf, 0x7f}, -65},
	}

	for _, tt := range tests {
		w := NewWriter()
		w.WriteS64(tt.value)
		if got := w.Bytes(); !bytes.Equal(got, tt.want) {
			t.Errorf("WriteS64(%d): got %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestWriterWriteU32(t *testing.T) {
	tests := []struct {
		want  []byte
		value uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		w := NewWriter()
		w.WriteU32(tt.value)
		if got := w.Bytes(); !bytes.Equal(got, tt.want) {
			t.Errorf("WriteU32(%d): got %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestWriterWriteString(t *testing.T) {
	w := NewWriter()
	w.WriteString("test")
	want := []byte{0x04, 't', 'e', 's', 't'}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("WriteString: got %v, want %v", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU32(12345)
	w.WriteS64(-9876)
	w.WriteString("provided dependency")
	w.WriteU32LE(0xDEADBEEF)

	r := NewReader(bytes.NewReader(w.Bytes()))

	u32, err := r.ReadU32()
	if err != nil || u32 != 12345 {
		t.Errorf("ReadU32: got %d, %v", u32, err)
	}
	s64, err := r.ReadS64()
	if err != nil || s64 != -9876 {
		t.Errorf("ReadS64: got %d, %v", s64, err)
	}
	s, err := r.ReadString()
	if err != nil || s != "provided dependency" {
		t.Errorf("ReadString: got %q, %v", s, err)
	}
	le, err := r.ReadU32LE()
	if err != nil || le != 0xDEADBEEF {
		t.Errorf("ReadU32LE: got 0x%08x, %v", le, err)
	}
	if r.Position() != w.Len() {
		t.Errorf("position: got %d, want %d", r.Position(), w.Len())
	}
}
