package protocol

import (
	"bytes"
	"fmt"
	"io"
)

// MaxDataLength is the default upper bound on the data length a packet may
// declare. Status payloads are JSON plus one small base64 image, so anything
// beyond a few megabytes indicates a hostile or corrupt peer.
const MaxDataLength = 0x200000

// Packet is one length-prefixed, id-tagged unit of protocol data.
type Packet struct {
	ID   int32
	Data []byte
}

func (pk Packet) Decode(fields ...FieldDecoder) error {
	r := bytes.NewReader(pk.Data)
	return ScanFields(r, fields...)
}

func ScanFields(r io.Reader, fields ...FieldDecoder) error {
	for i, v := range fields {
		_, err := v.ReadFrom(r)
		if err != nil {
			return fmt.Errorf("scanning packet field[%d]: %w", i, err)
		}
	}
	return nil
}

func (pk *Packet) Encode(id int32, fields ...FieldEncoder) error {
	buf := bytes.NewBuffer(pk.Data[:0])
	for _, f := range fields {
		if _, err := f.WriteTo(buf); err != nil {
			return err
		}
	}
	pk.ID = id
	pk.Data = buf.Bytes()
	return nil
}

// WriteTo frames the packet as length, id, data and writes it out in full.
func (pk Packet) WriteTo(w io.Writer) (int64, error) {
	pkLen := VarInt(VarInt(pk.ID).Len() + len(pk.Data))
	nLen, err := pkLen.WriteTo(w)
	if err != nil {
		return nLen, err
	}
	n := nLen

	nID, err := VarInt(pk.ID).WriteTo(w)
	n += nID
	if err != nil {
		return n, err
	}

	if len(pk.Data) > 0 {
		nData, err := w.Write(pk.Data)
		n += int64(nData)
		if err != nil {
			return n, err
		}
	}

	return n, err
}

// ReadFrom reads one framed packet. The declared length is validated against
// MaxDataLength before any allocation happens.
func (pk *Packet) ReadFrom(r io.Reader) (int64, error) {
	return pk.ReadFromLimited(r, MaxDataLength)
}

// ReadFromLimited is ReadFrom with a caller-chosen bound on the declared
// data length.
func (pk *Packet) ReadFromLimited(r io.Reader, maxDataLength int) (int64, error) {
	var pkLen VarInt
	n, err := pkLen.ReadFrom(r)
	if err != nil {
		return n, err
	}

	if pkLen < 1 {
		return n, fmt.Errorf("%w: declared %d", ErrInvalidPacketLength, pkLen)
	}

	var pkID VarInt
	nID, err := pkID.ReadFrom(r)
	n += nID
	if err != nil {
		return n, err
	}
	pk.ID = int32(pkID)

	lengthOfData := int(pkLen) - int(nID)
	if lengthOfData < 0 || lengthOfData > maxDataLength {
		return n, fmt.Errorf("%w: data length of %d", ErrInvalidPacketLength, lengthOfData)
	}

	if cap(pk.Data) < lengthOfData {
		pk.Data = make([]byte, lengthOfData)
	} else {
		pk.Data = pk.Data[:lengthOfData]
	}

	nData, err := io.ReadFull(r, pk.Data)
	n += int64(nData)
	if err != nil {
		return n, truncated(err)
	}

	return n, nil
}
