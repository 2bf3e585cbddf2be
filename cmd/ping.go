package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pingcraft/pingcraft/pkg/pingcraft"
	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol"
)

var (
	pingTimeout           = 5 * time.Second
	pingProtocol    int32 = int32(protocol.VersionLatest)
	pingNoSRV       bool
	pingLegacy      bool
	pingJSONOutput  bool
	pingFaviconPath string

	pingCmd = &cobra.Command{
		Use:   "ping <address>",
		Short: "Queries one server and prints its status",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			addr := args[0]

			opts := []pingcraft.Option{
				pingcraft.WithProtocolVersion(protocol.Version(pingProtocol)),
				pingcraft.WithTimeout(pingTimeout),
			}
			if pingNoSRV {
				opts = append(opts, pingcraft.WithoutSRV())
			}
			pinger := pingcraft.NewPinger(opts...)

			var (
				pong *pingcraft.Pong
				err  error
			)
			if pingLegacy {
				pong, err = legacyPing(pinger, addr)
			} else {
				pong, err = pinger.PingAddr(context.Background(), addr)
			}
			if err != nil {
				return err
			}

			if pingFaviconPath != "" && len(pong.Favicon) > 0 {
				if err := os.WriteFile(pingFaviconPath, pong.Favicon, 0644); err != nil {
					return err
				}
				logger.Info().
					Str("path", pingFaviconPath).
					Int("bytes", len(pong.Favicon)).
					Msg("wrote favicon")
			}

			if pingJSONOutput {
				return printJSON(pong)
			}
			printPong(pong)
			return nil
		},
	}
)

func init() {
	pingCmd.Flags().DurationVarP(&pingTimeout, "timeout", "t", pingTimeout, "timeout for the whole exchange")
	pingCmd.Flags().Int32VarP(&pingProtocol, "protocol", "p", pingProtocol, "protocol number to announce")
	pingCmd.Flags().BoolVar(&pingNoSRV, "no-srv", pingNoSRV, "skip SRV record resolution")
	pingCmd.Flags().BoolVar(&pingLegacy, "legacy", pingLegacy, "use the pre-1.7 ping instead")
	pingCmd.Flags().BoolVar(&pingJSONOutput, "json", pingJSONOutput, "print the result as JSON")
	pingCmd.Flags().StringVar(&pingFaviconPath, "favicon", pingFaviconPath, "write the favicon PNG to this path")
}

func legacyPing(pinger *pingcraft.Pinger, addr string) (*pingcraft.Pong, error) {
	host, port, err := pingcraft.SplitAddr(addr)
	if err != nil {
		return nil, err
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, fmt.Sprint(port)), pingTimeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(pingTimeout)); err != nil {
		return nil, err
	}
	return pinger.PingLegacy(conn)
}

func printJSON(pong *pingcraft.Pong) error {
	dto := struct {
		Version   string             `json:"version"`
		Protocol  int                `json:"protocol"`
		Players   int                `json:"players"`
		MaxPlayer int                `json:"maxPlayers"`
		Sample    []pingcraft.Player `json:"sample,omitempty"`
		MOTD      string             `json:"motd"`
		LatencyMs int64              `json:"latencyMs"`
	}{
		Version:   pong.Version,
		Protocol:  pong.Protocol,
		Players:   pong.OnlinePlayers,
		MaxPlayer: pong.MaxPlayers,
		Sample:    pong.Sample,
		MOTD:      pong.MOTD,
		LatencyMs: pong.Latency.Milliseconds(),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(dto)
}

func printPong(pong *pingcraft.Pong) {
	fmt.Printf("version:  %s (protocol %d)\n", pong.Version, pong.Protocol)
	fmt.Printf("players:  %d/%d\n", pong.OnlinePlayers, pong.MaxPlayers)
	for _, player := range pong.Sample {
		fmt.Printf("          - %s\n", player.Name)
	}
	fmt.Printf("motd:     %s\n", pong.MOTD)
	fmt.Printf("latency:  %s\n", pong.Latency.Round(time.Millisecond))
	if pong.ModInfo != nil {
		fmt.Printf("mods:     %d\n", len(pong.ModInfo.ModList))
	}
	if pong.ForgeData != nil {
		fmt.Printf("mods:     %d\n", len(pong.ForgeData.Mods))
	}
}
