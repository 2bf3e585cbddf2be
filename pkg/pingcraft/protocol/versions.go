package protocol

import "strconv"

// Version is a Minecraft protocol version number.
type Version int32

// VersionLatest is the sentinel a client sends when it does not pin a
// version and lets the server answer with whatever it runs.
const VersionLatest Version = -1

const (
	Version1_18_2 Version = 758
	Version1_19   Version = 759
	Version1_19_3 Version = 761
	Version1_20   Version = 763
	Version1_20_2 Version = 764
	Version1_20_4 Version = 765
)

func (v Version) Name() string {
	switch v {
	case VersionLatest:
		return "latest"
	case Version1_18_2:
		return "1.18.2"
	case Version1_19:
		return "1.19"
	case Version1_19_3:
		return "1.19.3"
	case Version1_20:
		return "1.20"
	case Version1_20_2:
		return "1.20.2"
	case Version1_20_4:
		return "1.20.4"
	default:
		return strconv.Itoa(int(v))
	}
}

func (v Version) ProtocolNumber() int32 {
	return int32(v)
}
