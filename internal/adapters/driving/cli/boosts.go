package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

var (
	boostsLimit int
	boostsGifts bool
	boostsJSON  bool
)

var boostsCmd = &cobra.Command{
	Use:   "boosts <chat>",
	Short: "List the boosts of a channel",
	Long: `List the boosts applied to a channel, newest first.

The chat may be a @username, a t.me link or a peer ID. Pages are fetched
lazily until the limit is reached.`,
	Args: cobra.ExactArgs(1),
	RunE: runBoosts,
}

var boostsStatusCmd = &cobra.Command{
	Use:   "status <chat>",
	Short: "Show a channel's boost level",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoostsStatus,
}

var boostsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your boost slots",
	Args:  cobra.NoArgs,
	RunE:  runBoostsMine,
}

func init() {
	boostsCmd.Flags().IntVarP(&boostsLimit, "limit", "n", 100, "maximum number of boosts (0 = all)")
	boostsCmd.Flags().BoolVar(&boostsGifts, "gifts", false, "only boosts from gifts and giveaways")
	boostsCmd.PersistentFlags().BoolVar(&boostsJSON, "json", false, "output as JSON")
	boostsCmd.AddCommand(boostsStatusCmd)
	boostsCmd.AddCommand(boostsMineCmd)
	rootCmd.AddCommand(boostsCmd)
}

func runBoosts(cmd *cobra.Command, args []string) error {
	if boostService == nil {
		return errors.New("boost service not configured")
	}

	opts := domain.BoostListOptions{
		ListOptions: domain.ListOptions{Limit: boostsLimit},
		Gifts:       boostsGifts,
	}

	var boosts []domain.Boost
	for boost, err := range boostService.List(cmd.Context(), args[0], opts) {
		if err != nil {
			return fmt.Errorf("list boosts: %w", err)
		}
		boosts = append(boosts, boost)
	}

	if boostsJSON {
		return printJSON(cmd, boosts)
	}
	if len(boosts) == 0 {
		cmd.Println("No boosts found.")
		return nil
	}

	rows := make([][]string, len(boosts))
	for i, b := range boosts {
		user := "-"
		if b.User != nil {
			user = orDash(b.User.Mention())
		}
		rows[i] = []string{
			b.ID,
			user,
			string(b.Source),
			strconv.Itoa(max(b.Multiplier, 1)),
			formatTime(b.Date),
			formatTime(b.ExpireDate),
		}
	}
	return printTable(cmd, []string{"ID", "USER", "SOURCE", "X", "DATE", "EXPIRES"}, rows)
}

func runBoostsStatus(cmd *cobra.Command, args []string) error {
	if boostService == nil {
		return errors.New("boost service not configured")
	}

	status, err := boostService.Status(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("boost status: %w", err)
	}

	if boostsJSON {
		return printJSON(cmd, status)
	}

	next := "-"
	if status.NextLevelBoosts > 0 {
		next = strconv.Itoa(status.NextLevelBoosts)
	}
	audience := "-"
	if status.PremiumAudience != nil && status.PremiumAudience.Total > 0 {
		audience = fmt.Sprintf("%.1f%%", 100*status.PremiumAudience.Part/status.PremiumAudience.Total)
	}
	slots := make([]string, len(status.MyBoostSlots))
	for i, s := range status.MyBoostSlots {
		slots[i] = strconv.Itoa(s)
	}

	printFields(cmd, [][2]string{
		{"Level", strconv.Itoa(status.Level)},
		{"Boosts", strconv.Itoa(status.Boosts)},
		{"Gift boosts", strconv.Itoa(status.GiftBoosts)},
		{"Level starts at", strconv.Itoa(status.CurrentLevelBoosts)},
		{"Next level at", next},
		{"Premium audience", audience},
		{"Boost link", orDash(status.BoostURL)},
		{"Prepaid giveaways", strconv.Itoa(len(status.PrepaidGiveaways))},
		{"My slots", orDash(strings.Join(slots, ", "))},
	})
	return nil
}

func runBoostsMine(cmd *cobra.Command, _ []string) error {
	if boostService == nil {
		return errors.New("boost service not configured")
	}

	boosts, err := boostService.MyBoosts(cmd.Context())
	if err != nil {
		return fmt.Errorf("my boosts: %w", err)
	}

	if boostsJSON {
		return printJSON(cmd, boosts)
	}
	if len(boosts) == 0 {
		cmd.Println("No boost slots.")
		return nil
	}

	rows := make([][]string, len(boosts))
	for i, b := range boosts {
		chat := "-"
		if b.Chat != nil {
			chat = b.Chat.DisplayName()
		}
		rows[i] = []string{
			strconv.Itoa(b.Slot),
			chat,
			formatTime(b.Date),
			formatTime(b.ExpireDate),
			formatTime(b.CooldownUntilDate),
		}
	}
	return printTable(cmd, []string{"SLOT", "CHAT", "DATE", "EXPIRES", "COOLDOWN"}, rows)
}
