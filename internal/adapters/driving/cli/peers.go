package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

var peersJSON bool

var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "Known peers",
	Long: `Peers are recorded from every response. They let commands address a
chat or user by @username, +phone or ID.`,
	RunE: runPeersList,
}

var peersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored peers",
	Args:  cobra.NoArgs,
	RunE:  runPeersList,
}

var peersResolveCmd = &cobra.Command{
	Use:   "resolve <ref>",
	Short: "Resolve a peer reference",
	Args:  cobra.ExactArgs(1),
	RunE:  runPeersResolve,
}

func init() {
	peersCmd.PersistentFlags().BoolVar(&peersJSON, "json", false, "output as JSON")
	peersCmd.AddCommand(peersListCmd)
	peersCmd.AddCommand(peersResolveCmd)
	rootCmd.AddCommand(peersCmd)
}

func runPeersList(cmd *cobra.Command, _ []string) error {
	if peerService == nil {
		return errors.New("peer service not configured")
	}

	peers, err := peerService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list peers: %w", err)
	}

	if peersJSON {
		return printJSON(cmd, peers)
	}
	if len(peers) == 0 {
		cmd.Println("No peers stored.")
		return nil
	}

	rows := make([][]string, len(peers))
	for i, p := range peers {
		rows[i] = peerRow(p)
	}
	return printTable(cmd, []string{"ID", "TYPE", "USERNAME", "NAME", "UPDATED"}, rows)
}

func peerRow(p domain.PeerRecord) []string {
	username := "-"
	if p.Username != "" {
		username = "@" + p.Username
	}
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Type.String(),
		username,
		orDash(p.Name),
		formatTime(p.UpdatedAt),
	}
}

func runPeersResolve(cmd *cobra.Command, args []string) error {
	if peerService == nil {
		return errors.New("peer service not configured")
	}

	rec, err := peerService.Resolve(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("resolve %s: %w", args[0], err)
	}

	if peersJSON {
		return printJSON(cmd, rec)
	}

	printFields(cmd, [][2]string{
		{"ID", strconv.FormatInt(rec.ID, 10)},
		{"Type", rec.Type.String()},
		{"Access hash", strconv.FormatInt(rec.AccessHash, 10)},
		{"Username", orDash(rec.Username)},
		{"Phone", orDash(rec.Phone)},
		{"Name", orDash(rec.Name)},
	})
	return nil
}
