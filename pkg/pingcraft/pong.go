package pingcraft

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol/status"
)

// FaviconPrefix is the data URI prefix every well-formed favicon starts with.
const FaviconPrefix = "data:image/png;base64,"

// Player is one entry of the status document's player sample.
type Player struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// UUID parses the player's id. Servers are free to put anything in the
// sample, so this can fail on perfectly pingable servers.
func (p Player) UUID() (uuid.UUID, error) {
	return uuid.Parse(p.ID)
}

// Pong is the fully validated result of one status query.
type Pong struct {
	// Version is the server's version name, e.g. "1.20.4".
	Version string
	// Protocol is the server's protocol number.
	Protocol int
	MaxPlayers    int
	OnlinePlayers int
	// Sample is the server's sampled player list. It can be empty even
	// when players are online.
	Sample []Player
	// Description is the structured description as the server sent it.
	Description status.Chat
	// MOTD is the description flattened to plain text.
	MOTD string
	// Favicon holds the decoded PNG bytes, nil if the server sent none.
	// The pixel content is not validated.
	Favicon []byte
	// PreviewsChat and EnforcesSecureChat are absent on servers older
	// than 1.19 / 1.19.1.
	PreviewsChat       *bool
	EnforcesSecureChat *bool
	// ModInfo is set by FML servers (1.7 - 1.12).
	ModInfo *status.FMLModInfoJSON
	// ForgeData is set by FML2 servers (1.13+).
	ForgeData *status.FML2ForgeDataJSON
	// Latency is the measured round-trip time of the whole exchange.
	Latency time.Duration
	// Raw is the status document exactly as received.
	Raw []byte
}

// newPong validates and decodes a raw status document. A document missing
// optional fields is fine; a structurally broken one is fatal.
func newPong(raw []byte) (*Pong, error) {
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: status document is not valid UTF-8", ErrInvalidEncoding)
	}

	// json.Unmarshal leaves the target untouched on a top-level null, so
	// "null" would otherwise pass as an empty status.
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: status document is not a JSON object", ErrInvalidStatus)
	}

	var respJSON status.ResponseJSON
	if err := json.Unmarshal(raw, &respJSON); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	favicon, err := decodeFavicon(respJSON.Favicon)
	if err != nil {
		return nil, err
	}

	var sample []Player
	if len(respJSON.Players.Sample) > 0 {
		sample = make([]Player, len(respJSON.Players.Sample))
		for i, s := range respJSON.Players.Sample {
			sample[i] = Player{Name: s.Name, ID: s.ID}
		}
	}

	return &Pong{
		Version:            respJSON.Version.Name,
		Protocol:           respJSON.Version.Protocol,
		MaxPlayers:         respJSON.Players.Max,
		OnlinePlayers:      respJSON.Players.Online,
		Sample:             sample,
		Description:        respJSON.Description,
		MOTD:               respJSON.Description.Flatten(),
		Favicon:            favicon,
		PreviewsChat:       respJSON.PreviewsChat,
		EnforcesSecureChat: respJSON.EnforcesSecureChat,
		ModInfo:            respJSON.FMLModInfo,
		ForgeData:          respJSON.FML2ForgeData,
		Raw:                raw,
	}, nil
}

func decodeFavicon(favicon string) ([]byte, error) {
	if favicon == "" {
		return nil, nil
	}

	if !strings.HasPrefix(favicon, FaviconPrefix) {
		return nil, fmt.Errorf("%w: missing %q prefix", ErrInvalidFavicon, FaviconPrefix)
	}

	bb, err := base64.StdEncoding.DecodeString(favicon[len(FaviconPrefix):])
	if err != nil {
		return nil, fmt.Errorf("%w: favicon: %v", ErrInvalidEncoding, err)
	}
	return bb, nil
}
