package pingcraft

import (
	"context"
	"net"
	"strconv"
	"strings"
)

// DefaultPort is the default Minecraft server port.
const DefaultPort = 25565

// SplitAddr splits a "host" or "host:port" string. A missing port defaults
// to DefaultPort.
func SplitAddr(addr string) (string, uint16, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		// No port in addr.
		return addr, DefaultPort, nil
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return "", 0, err
	}
	return host, uint16(port), nil
}

// ResolveAddr resolves addr the way a Minecraft client does: split off the
// port, then let a _minecraft._tcp SRV record redirect host and port. A
// missing SRV record is not an error.
func ResolveAddr(ctx context.Context, addr string) (string, uint16, error) {
	host, port, err := SplitAddr(addr)
	if err != nil {
		return "", 0, err
	}

	// SRV records only exist for hostnames.
	if net.ParseIP(host) != nil {
		return host, port, nil
	}

	_, srvs, err := net.DefaultResolver.LookupSRV(ctx, "minecraft", "tcp", host)
	if err != nil {
		if dnsErr, ok := err.(*net.DNSError); ok && !dnsErr.IsNotFound {
			return "", 0, err
		}
	} else if len(srvs) > 0 {
		// SRV targets usually carry a trailing dot.
		host = strings.TrimSuffix(srvs[0].Target, ".")
		port = srvs[0].Port
	}

	return host, port, nil
}
