package handshaking

import (
	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol"
)

const (
	ServerBoundHandshakeID int32 = 0x00

	StateStatusServerBoundHandshake = protocol.Byte(1)
	StateLoginServerBoundHandshake  = protocol.Byte(2)
)

// ServerBoundHandshake is the first packet of any connection. For a status
// query NextState is 1 and no further handshake happens.
type ServerBoundHandshake struct {
	ProtocolVersion protocol.VarInt
	ServerAddress   protocol.String
	ServerPort      protocol.UnsignedShort
	NextState       protocol.Byte
}

func (pk ServerBoundHandshake) Marshal(packet *protocol.Packet) error {
	return packet.Encode(
		ServerBoundHandshakeID,
		pk.ProtocolVersion,
		pk.ServerAddress,
		pk.ServerPort,
		pk.NextState,
	)
}

func (pk *ServerBoundHandshake) Unmarshal(packet protocol.Packet) error {
	if packet.ID != ServerBoundHandshakeID {
		return protocol.ErrInvalidPacketID
	}

	return packet.Decode(
		&pk.ProtocolVersion,
		&pk.ServerAddress,
		&pk.ServerPort,
		&pk.NextState,
	)
}

func (pk ServerBoundHandshake) IsStatusRequest() bool {
	return pk.NextState == StateStatusServerBoundHandshake
}

func (pk ServerBoundHandshake) IsLoginRequest() bool {
	return pk.NextState == StateLoginServerBoundHandshake
}
