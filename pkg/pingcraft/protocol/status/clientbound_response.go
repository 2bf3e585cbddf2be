package status

import "github.com/pingcraft/pingcraft/pkg/pingcraft/protocol"

const (
	ClientBoundResponseID int32 = 0x00
)

// ClientBoundResponse carries the status document as one length-prefixed
// JSON string.
type ClientBoundResponse struct {
	JSONResponse protocol.String
}

func (pk ClientBoundResponse) Marshal(packet *protocol.Packet) error {
	return packet.Encode(
		ClientBoundResponseID,
		pk.JSONResponse,
	)
}

func (pk *ClientBoundResponse) Unmarshal(packet protocol.Packet) error {
	if packet.ID != ClientBoundResponseID {
		return protocol.ErrInvalidPacketID
	}

	return packet.Decode(
		&pk.JSONResponse,
	)
}

type ResponseJSON struct {
	Version VersionJSON `json:"version"`
	Players PlayersJSON `json:"players"`
	// Servers answer with either a plain string or a chat component here;
	// Chat accepts both.
	Description Chat   `json:"description"`
	Favicon     string `json:"favicon,omitempty"`
	// Added since 1.19
	PreviewsChat *bool `json:"previewsChat,omitempty"`
	// Added since 1.19.1
	EnforcesSecureChat *bool `json:"enforcesSecureChat,omitempty"`
	// FMLModInfo is set by FML servers (1.7 - 1.12) so that clients
	// recognise them as valid Forge servers.
	FMLModInfo *FMLModInfoJSON `json:"modinfo,omitempty"`
	// FML2ForgeData is the FML2 (1.13+) equivalent of FMLModInfo.
	FML2ForgeData *FML2ForgeDataJSON `json:"forgeData,omitempty"`
}

type VersionJSON struct {
	Name     string `json:"name"`
	Protocol int    `json:"protocol"`
}

type PlayersJSON struct {
	Max    int                `json:"max"`
	Online int                `json:"online"`
	Sample []PlayerSampleJSON `json:"sample,omitempty"`
}

type PlayerSampleJSON struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// FMLModInfoJSON is a part of the FML Server List Ping.
type FMLModInfoJSON struct {
	LoaderType string       `json:"type"`
	ModList    []FMLModJSON `json:"modList"`
}

type FMLModJSON struct {
	ID      string `json:"modid"`
	Version string `json:"version"`
}

// FML2ForgeDataJSON is a part of the FML2 Server List Ping.
type FML2ForgeDataJSON struct {
	Channels          []FML2ChannelsJSON `json:"channels"`
	Mods              []FML2ModJSON      `json:"mods"`
	FMLNetworkVersion int                `json:"fmlNetworkVersion"`
}

type FML2ChannelsJSON struct {
	Res      string `json:"res"`
	Version  string `json:"version"`
	Required bool   `json:"required"`
}

type FML2ModJSON struct {
	ID     string `json:"modId"`
	Marker string `json:"modmarker"`
}
