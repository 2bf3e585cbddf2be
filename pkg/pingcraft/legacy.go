package pingcraft

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol"
	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol/status"
)

// legacyRequest is the fixed pre-Netty (beta 1.8 - 1.6) server list ping: a
// 0xFE probe followed by a 0xFA "MC|PingHost" plugin message with an empty
// hostname. Every legacy server answers it with a 0xFF kick packet.
var legacyRequest = []byte{
	0xfe, // server list ping
	0x01, // payload, always 1
	0xfa, // plugin message
	0x00, 0x0b, // length of the channel name, always 11
	0x00, 0x4d, 0x00, 0x43, 0x00, 0x7c, 0x00, 0x50, 0x00, 0x69, 0x00, 0x6e,
	0x00, 0x67, 0x00, 0x48, 0x00, 0x6f, 0x00, 0x73, 0x00, 0x74, // "MC|PingHost" as UTF-16BE
	0x00, 0x07, // length of the remaining data
	0x4a,       // protocol version of the last legacy client
	0x00, 0x00, // hostname length, 0
	0x00, 0x00, 0x00, 0x00, // port, 0
}

const legacyKickID = 0xff

// PingLegacy queries a pre-1.7 server over rw. The response is a kick
// packet whose UTF-16BE payload carries six null-separated fields. The
// transport is read to EOF, so rw must be a one-shot connection.
func (p *Pinger) PingLegacy(rw io.ReadWriter) (*Pong, error) {
	start := time.Now()

	if _, err := rw.Write(legacyRequest); err != nil {
		return nil, fmt.Errorf("legacy request: %w", err)
	}

	buffer, err := io.ReadAll(rw)
	if err != nil {
		return nil, fmt.Errorf("legacy response: %w", err)
	}

	pong, err := parseLegacy(buffer)
	if err != nil {
		return nil, fmt.Errorf("legacy response: %w", err)
	}
	pong.Latency = time.Since(start)

	return pong, nil
}

// PingLegacy queries a pre-1.7 server with default settings. See
// Pinger.PingLegacy.
func PingLegacy(rw io.ReadWriter) (*Pong, error) {
	return NewPinger().PingLegacy(rw)
}

func parseLegacy(buffer []byte) (*Pong, error) {
	// Kick id, 2-byte string length, at least one UTF-16 code unit.
	if len(buffer) <= 3 {
		return nil, protocol.ErrTruncatedStream
	}
	if buffer[0] != legacyKickID {
		return nil, fmt.Errorf("%w: 0x%02x", protocol.ErrInvalidPacketID, buffer[0])
	}

	payload := buffer[3:]
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("%w: odd UTF-16 payload", ErrInvalidEncoding)
	}

	codeUnits := make([]uint16, len(payload)/2)
	for i := range codeUnits {
		codeUnits[i] = uint16(payload[2*i])<<8 | uint16(payload[2*i+1])
	}
	text := string(utf16.Decode(codeUnits))

	// §1, protocol, version name, motd, online count, max count.
	fields := strings.Split(text, "\x00")
	if len(fields) < 6 || fields[0] != "§1" {
		return nil, fmt.Errorf("%w: unexpected kick payload", ErrInvalidStatus)
	}

	protocolNumber, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: protocol number: %v", ErrInvalidStatus, err)
	}
	online, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: online count: %v", ErrInvalidStatus, err)
	}
	maxPlayers, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("%w: max count: %v", ErrInvalidStatus, err)
	}

	return &Pong{
		Version:       fields[2],
		Protocol:      protocolNumber,
		MaxPlayers:    maxPlayers,
		OnlinePlayers: online,
		Description:   status.Chat{Text: fields[3]},
		MOTD:          fields[3],
		Raw:           buffer,
	}, nil
}
