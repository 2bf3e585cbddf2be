package status

import "github.com/pingcraft/pingcraft/pkg/pingcraft/protocol"

const ServerBoundRequestID int32 = 0x00

// ServerBoundRequest asks the server for its status. It has no body.
type ServerBoundRequest struct{}

func (pk ServerBoundRequest) Marshal(packet *protocol.Packet) error {
	return packet.Encode(
		ServerBoundRequestID,
	)
}
