package protocol

import (
	"fmt"
	"io"
)

// A Field is both FieldEncoder and FieldDecoder.
type Field interface {
	FieldEncoder
	FieldDecoder
}

// A FieldEncoder can be encoded as minecraft protocol used.
type FieldEncoder io.WriterTo

// A FieldDecoder can Decode from minecraft protocol.
type FieldDecoder io.ReaderFrom

type (
	// Byte is signed 8-bit integer, two's complement.
	Byte int8
	// UnsignedShort is unsigned 16-bit integer, big-endian.
	UnsignedShort uint16
	// String is a sequence of Unicode scalar values, prefixed with its
	// byte length as a VarInt.
	String string

	// VarInt is variable-length data encoding a two's complement signed
	// 32-bit integer. Each byte carries 7 value bits, least significant
	// group first, with the high bit signaling continuation.
	VarInt int32
)

// MaxVarIntLen is the longest valid VarInt encoding. Any 32-bit value fits
// in 5 bytes; a 5th byte with the continuation bit set is malformed.
const MaxVarIntLen = 5

func (b Byte) WriteTo(w io.Writer) (int64, error) {
	nn, err := w.Write([]byte{byte(b)})
	return int64(nn), err
}

func (b *Byte) ReadFrom(r io.Reader) (int64, error) {
	n, v, err := readByte(r)
	if err != nil {
		return n, truncated(err)
	}
	*b = Byte(v)
	return n, nil
}

func (us UnsignedShort) WriteTo(w io.Writer) (int64, error) {
	n := uint16(us)
	nn, err := w.Write([]byte{byte(n >> 8), byte(n)})
	return int64(nn), err
}

func (us *UnsignedShort) ReadFrom(r io.Reader) (int64, error) {
	var bs [2]byte
	nn, err := io.ReadFull(r, bs[:])
	if err != nil {
		return int64(nn), truncated(err)
	}

	*us = UnsignedShort(uint16(bs[0])<<8 | uint16(bs[1]))
	return int64(nn), nil
}

func (s String) WriteTo(w io.Writer) (int64, error) {
	byteStr := []byte(s)
	n1, err := VarInt(len(byteStr)).WriteTo(w)
	if err != nil {
		return n1, err
	}
	n2, err := w.Write(byteStr)
	return n1 + int64(n2), err
}

func (s *String) ReadFrom(r io.Reader) (int64, error) {
	var l VarInt // String length

	nn, err := l.ReadFrom(r)
	if err != nil {
		return nn, err
	}
	n := nn

	// The length prefix comes off the wire; a hostile peer can declare a
	// negative or absurd length. Bound it before allocating anything.
	if l < 0 {
		return n, fmt.Errorf("%w: negative string length %d", ErrMalformedVarInt, l)
	}
	if int(l) > MaxDataLength {
		return n, fmt.Errorf("%w: declared string length %d", ErrInvalidPacketLength, l)
	}

	bs := make([]byte, l)
	if _, err := io.ReadFull(r, bs); err != nil {
		return n, truncated(err)
	}
	n += int64(l)

	*s = String(bs)
	return n, nil
}

func (v VarInt) WriteTo(w io.Writer) (int64, error) {
	var vi [MaxVarIntLen]byte
	n := v.WriteToBytes(vi[:])
	n, err := w.Write(vi[:n])
	return int64(n), err
}

// WriteToBytes encodes the VarInt into buf and returns the number of bytes
// written. The encoding is always the shortest one for the value. If the
// buffer is too small, WriteToBytes will panic.
func (v VarInt) WriteToBytes(buf []byte) int {
	num := uint32(v)
	i := 0
	for {
		b := num & 0x7F
		num >>= 7
		if num != 0 {
			b |= 0x80
		}
		buf[i] = byte(b)
		i++
		if num == 0 {
			break
		}
	}
	return i
}

func (v *VarInt) ReadFrom(r io.Reader) (int64, error) {
	var vi uint32
	var n int64
	for i := 0; ; i++ {
		if i == MaxVarIntLen {
			return n, ErrMalformedVarInt
		}

		nn, sec, err := readByte(r)
		n += nn
		if err != nil {
			return n, truncated(err)
		}

		vi |= uint32(sec&0x7F) << (7 * i)
		if sec&0x80 == 0 {
			break
		}
	}
	*v = VarInt(vi)
	return n, nil
}

// Len returns the number of bytes required to encode the VarInt.
func (v VarInt) Len() int {
	switch {
	case v < 0:
		return MaxVarIntLen
	case v < 1<<(7*1):
		return 1
	case v < 1<<(7*2):
		return 2
	case v < 1<<(7*3):
		return 3
	case v < 1<<(7*4):
		return 4
	default:
		return 5
	}
}

// readByte reads one byte from io.Reader.
func readByte(r io.Reader) (int64, byte, error) {
	if r, ok := r.(io.ByteReader); ok {
		v, err := r.ReadByte()
		return 1, v, err
	}
	var v [1]byte
	n, err := io.ReadFull(r, v[:])
	return int64(n), v[0], err
}
