package status_test

import (
	"bytes"
	"testing"

	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol"
	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol/status"
)

func TestServerBoundRequest_Marshal(t *testing.T) {
	var pk protocol.Packet
	if err := (status.ServerBoundRequest{}).Marshal(&pk); err != nil {
		t.Fatal(err)
	}

	if pk.ID != status.ServerBoundRequestID {
		t.Error("invalid packet id")
	}

	if len(pk.Data) != 0 {
		t.Errorf("expected empty body, got %v", pk.Data)
	}

	var buf bytes.Buffer
	if _, err := pk.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(buf.Bytes(), []byte{0x01, 0x00}) {
		t.Errorf("got: %v, want: %v", buf.Bytes(), []byte{0x01, 0x00})
	}
}
