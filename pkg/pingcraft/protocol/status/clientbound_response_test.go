package status_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol"
	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol/status"
)

func TestClientBoundResponse_Marshal(t *testing.T) {
	tt := []struct {
		packet          status.ClientBoundResponse
		marshaledPacket protocol.Packet
	}{
		{
			packet: status.ClientBoundResponse{
				JSONResponse: protocol.String(""),
			},
			marshaledPacket: protocol.Packet{
				ID:   0x00,
				Data: []byte{0x00},
			},
		},
		{
			packet: status.ClientBoundResponse{
				JSONResponse: protocol.String("Hello, World!"),
			},
			marshaledPacket: protocol.Packet{
				ID:   0x00,
				Data: []byte{0x0d, 0x48, 0x65, 0x6c, 0x6c, 0x6f, 0x2c, 0x20, 0x57, 0x6f, 0x72, 0x6c, 0x64, 0x21},
			},
		},
	}

	var pk protocol.Packet
	for _, tc := range tt {
		_ = tc.packet.Marshal(&pk)

		if pk.ID != status.ClientBoundResponseID {
			t.Error("invalid packet id")
		}

		if !bytes.Equal(pk.Data, tc.marshaledPacket.Data) {
			t.Errorf("got: %v, want: %v", pk.Data, tc.marshaledPacket.Data)
		}
	}
}

func TestUnmarshalClientBoundResponse(t *testing.T) {
	tt := []struct {
		packet             protocol.Packet
		unmarshalledPacket status.ClientBoundResponse
	}{
		{
			packet: protocol.Packet{
				ID:   0x00,
				Data: []byte{0x00},
			},
			unmarshalledPacket: status.ClientBoundResponse{
				JSONResponse: "",
			},
		},
		{
			packet: protocol.Packet{
				ID:   0x00,
				Data: []byte{0x0d, 0x48, 0x65, 0x6c, 0x6c, 0x6f, 0x2c, 0x20, 0x57, 0x6f, 0x72, 0x6c, 0x64, 0x21},
			},
			unmarshalledPacket: status.ClientBoundResponse{
				JSONResponse: protocol.String("Hello, World!"),
			},
		},
	}

	var actual status.ClientBoundResponse
	for _, tc := range tt {
		if err := actual.Unmarshal(tc.packet); err != nil {
			t.Error(err)
		}

		expected := tc.unmarshalledPacket

		if actual.JSONResponse != expected.JSONResponse {
			t.Errorf("got: %v, want: %v", actual, expected)
		}
	}
}

func TestUnmarshalClientBoundResponse_wrongID(t *testing.T) {
	pk := protocol.Packet{ID: 0x01, Data: []byte{0x00}}

	var resp status.ClientBoundResponse
	if err := resp.Unmarshal(pk); err != protocol.ErrInvalidPacketID {
		t.Errorf("want ErrInvalidPacketID, got %v", err)
	}
}

func TestResponseJSON_Unmarshal(t *testing.T) {
	doc := `{
		"version": {"name": "1.20", "protocol": 763},
		"players": {"max": 20, "online": 3, "sample": [{"name": "Notch", "id": "069a79f4-44e9-4726-a5be-fca90e38aaf5"}]},
		"description": "A Server",
		"enforcesSecureChat": true
	}`

	var respJSON status.ResponseJSON
	if err := json.Unmarshal([]byte(doc), &respJSON); err != nil {
		t.Fatal(err)
	}

	if respJSON.Version.Name != "1.20" || respJSON.Version.Protocol != 763 {
		t.Errorf("version: got %+v", respJSON.Version)
	}

	if respJSON.Players.Max != 20 || respJSON.Players.Online != 3 {
		t.Errorf("players: got %+v", respJSON.Players)
	}

	if len(respJSON.Players.Sample) != 1 || respJSON.Players.Sample[0].Name != "Notch" {
		t.Errorf("sample: got %+v", respJSON.Players.Sample)
	}

	if respJSON.Description.Text != "A Server" {
		t.Errorf("description: got %+v", respJSON.Description)
	}

	if respJSON.EnforcesSecureChat == nil || !*respJSON.EnforcesSecureChat {
		t.Error("expected enforcesSecureChat to be set")
	}

	if respJSON.PreviewsChat != nil {
		t.Error("expected previewsChat to be absent")
	}
}

func TestResponseJSON_Unmarshal_forge(t *testing.T) {
	doc := `{
		"version": {"name": "1.12.2", "protocol": 340},
		"players": {"max": 64, "online": 0},
		"description": {"text": "Modded"},
		"modinfo": {"type": "FML", "modList": [{"modid": "forge", "version": "14.23.5"}]}
	}`

	var respJSON status.ResponseJSON
	if err := json.Unmarshal([]byte(doc), &respJSON); err != nil {
		t.Fatal(err)
	}

	if respJSON.FMLModInfo == nil {
		t.Fatal("expected modinfo to be set")
	}

	if respJSON.FMLModInfo.LoaderType != "FML" {
		t.Errorf("got: %q, want: %q", respJSON.FMLModInfo.LoaderType, "FML")
	}

	if len(respJSON.FMLModInfo.ModList) != 1 || respJSON.FMLModInfo.ModList[0].ID != "forge" {
		t.Errorf("modList: got %+v", respJSON.FMLModInfo.ModList)
	}
}
