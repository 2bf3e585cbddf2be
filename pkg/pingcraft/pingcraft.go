// Package pingcraft implements the client side of the Minecraft Server List
// Ping: one handshake, one status request, one status response, over a
// caller-owned byte stream.
package pingcraft

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol"
	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol/handshaking"
	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol/status"
)

// Pinger holds the knobs of a status query. The zero value is not usable;
// use NewPinger.
type Pinger struct {
	// ProtocolVersion is the version number sent in the handshake.
	// Defaults to the latest-version sentinel, which lets the server
	// answer with whatever it runs.
	ProtocolVersion protocol.Version
	// MaxPacketLength bounds the data length the response may declare.
	MaxPacketLength int
	// Timeout applies to dialing and to every transport operation of
	// PingAddr. Zero means no timeout.
	Timeout time.Duration
	// ServerAddress overrides the hostname written into the handshake.
	// Some server networks route on it.
	ServerAddress string
	// ResolveSRV enables the _minecraft._tcp SRV lookup in PingAddr.
	ResolveSRV bool
}

type Option func(p *Pinger)

func WithProtocolVersion(v protocol.Version) Option {
	return func(p *Pinger) {
		p.ProtocolVersion = v
	}
}

func WithMaxPacketLength(n int) Option {
	return func(p *Pinger) {
		p.MaxPacketLength = n
	}
}

func WithTimeout(d time.Duration) Option {
	return func(p *Pinger) {
		p.Timeout = d
	}
}

func WithServerAddress(host string) Option {
	return func(p *Pinger) {
		p.ServerAddress = host
	}
}

func WithoutSRV() Option {
	return func(p *Pinger) {
		p.ResolveSRV = false
	}
}

func NewPinger(opts ...Option) *Pinger {
	p := &Pinger{
		ProtocolVersion: protocol.VersionLatest,
		MaxPacketLength: protocol.MaxDataLength,
		Timeout:         5 * time.Second,
		ResolveSRV:      true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ping sends a status query over rw and reads the response. rw is used
// exclusively for the duration of the call and is not closed. The call
// blocks until the exchange completes or fails; callers wanting a deadline
// use PingContext or wrap rw themselves.
func (p *Pinger) Ping(rw io.ReadWriter, host string, port uint16) (*Pong, error) {
	start := time.Now()

	if p.ServerAddress != "" {
		host = p.ServerAddress
	}

	hs := handshaking.ServerBoundHandshake{
		ProtocolVersion: protocol.VarInt(p.ProtocolVersion),
		ServerAddress:   protocol.String(host),
		ServerPort:      protocol.UnsignedShort(port),
		NextState:       handshaking.StateStatusServerBoundHandshake,
	}

	var pk protocol.Packet
	if err := hs.Marshal(&pk); err != nil {
		return nil, fmt.Errorf("handshake: %w", err)
	}
	if _, err := pk.WriteTo(rw); err != nil {
		return nil, fmt.Errorf("handshake: %w", err)
	}

	if err := (status.ServerBoundRequest{}).Marshal(&pk); err != nil {
		return nil, fmt.Errorf("status request: %w", err)
	}
	if _, err := pk.WriteTo(rw); err != nil {
		return nil, fmt.Errorf("status request: %w", err)
	}

	r := bufio.NewReader(rw)
	if _, err := pk.ReadFromLimited(r, p.MaxPacketLength); err != nil {
		return nil, fmt.Errorf("status response: %w", err)
	}

	var resp status.ClientBoundResponse
	if err := resp.Unmarshal(pk); err != nil {
		return nil, fmt.Errorf("status response: %w", err)
	}

	pong, err := newPong([]byte(resp.JSONResponse))
	if err != nil {
		return nil, fmt.Errorf("status response: %w", err)
	}
	pong.Latency = time.Since(start)

	return pong, nil
}

// PingContext is Ping with context-driven cancellation. The context's
// deadline is applied to the connection, and cancellation unblocks any
// in-flight read or write.
func (p *Pinger) PingContext(ctx context.Context, conn net.Conn, host string, port uint16) (*Pong, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("set deadline: %w", err)
		}
		defer func() {
			_ = conn.SetDeadline(time.Time{})
		}()
	}

	stop := context.AfterFunc(ctx, func() {
		// Wake up blocked transport calls.
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	pong, err := p.Ping(conn, host, port)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return pong, nil
}

// PingAddr resolves addr, dials it and runs one status query. addr is a
// "host" or "host:port" string; a missing port defaults to 25565 and, if
// enabled, an SRV record may redirect both host and port. The handshake
// carries the original hostname unless overridden via WithServerAddress.
func (p *Pinger) PingAddr(ctx context.Context, addr string) (*Pong, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	origHost, _, err := SplitAddr(addr)
	if err != nil {
		return nil, err
	}

	host, port := origHost, uint16(DefaultPort)
	if p.ResolveSRV {
		host, port, err = ResolveAddr(ctx, addr)
	} else {
		_, port, err = SplitAddr(addr)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", addr, err)
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, fmt.Sprint(port)))
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return p.PingContext(ctx, conn, origHost, port)
}

// Ping runs one blocking status query with default settings. See
// Pinger.Ping.
func Ping(rw io.ReadWriter, host string, port uint16) (*Pong, error) {
	return NewPinger().Ping(rw, host, port)
}

// PingContext runs one status query with default settings under ctx. See
// Pinger.PingContext.
func PingContext(ctx context.Context, conn net.Conn, host string, port uint16) (*Pong, error) {
	return NewPinger().PingContext(ctx, conn, host, port)
}

// PingAddr dials addr and runs one status query with default settings. See
// Pinger.PingAddr.
func PingAddr(ctx context.Context, addr string) (*Pong, error) {
	return NewPinger().PingAddr(ctx, addr)
}
