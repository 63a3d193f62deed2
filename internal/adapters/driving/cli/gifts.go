package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

var (
	giftsJSON       bool
	giftsSavedLimit int
)

var giftsCmd = &cobra.Command{
	Use:   "gifts",
	Short: "Star gifts and collectibles",
}

var giftsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the gifts that can be bought",
	Args:  cobra.NoArgs,
	RunE:  runGiftsCatalog,
}

var giftsSavedCmd = &cobra.Command{
	Use:   "saved [peer]",
	Short: "List the gifts kept on a profile",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGiftsSaved,
}

var giftsShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a collectible gift",
	Args:  cobra.ExactArgs(1),
	RunE:  runGiftsShow,
}

func init() {
	giftsCmd.PersistentFlags().BoolVar(&giftsJSON, "json", false, "output as JSON")
	giftsSavedCmd.Flags().IntVarP(&giftsSavedLimit, "limit", "n", 100, "maximum number of gifts (0 = all)")
	giftsCmd.AddCommand(giftsCatalogCmd)
	giftsCmd.AddCommand(giftsSavedCmd)
	giftsCmd.AddCommand(giftsShowCmd)
	rootCmd.AddCommand(giftsCmd)
}

func runGiftsCatalog(cmd *cobra.Command, _ []string) error {
	if paymentService == nil {
		return errors.New("payment service not configured")
	}

	catalog, err := paymentService.StarGifts(cmd.Context())
	if err != nil {
		return fmt.Errorf("star gifts: %w", err)
	}

	if giftsJSON {
		return printJSON(cmd, catalog)
	}
	if len(catalog.Gifts) == 0 {
		cmd.Println("No gifts found.")
		return nil
	}
	return printGifts(cmd, catalog.Gifts)
}

func runGiftsSaved(cmd *cobra.Command, args []string) error {
	if paymentService == nil {
		return errors.New("payment service not configured")
	}

	opts := domain.ListOptions{Limit: giftsSavedLimit}
	var saved []domain.SavedStarGift
	for gift, err := range paymentService.SavedStarGifts(cmd.Context(), optionalArg(args), opts) {
		if err != nil {
			return fmt.Errorf("list saved gifts: %w", err)
		}
		saved = append(saved, gift)
	}

	if giftsJSON {
		return printJSON(cmd, saved)
	}
	if len(saved) == 0 {
		cmd.Println("No saved gifts found.")
		return nil
	}

	rows := make([][]string, len(saved))
	for i, s := range saved {
		from := "anonymous"
		if s.From != nil {
			from = s.From.DisplayName()
		}
		kind, title, _ := describeGift(s.Gift)
		rows[i] = []string{formatTime(s.Date), from, kind, title}
	}
	return printTable(cmd, []string{"DATE", "FROM", "KIND", "GIFT"}, rows)
}

func runGiftsShow(cmd *cobra.Command, args []string) error {
	if paymentService == nil {
		return errors.New("payment service not configured")
	}

	gift, err := paymentService.UniqueStarGift(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("unique gift: %w", err)
	}

	if giftsJSON {
		return printJSON(cmd, gift)
	}

	owner := gift.OwnerName
	if gift.Owner != nil {
		owner = gift.Owner.DisplayName()
	}
	printFields(cmd, [][2]string{
		{"Title", fmt.Sprintf("%s #%d", gift.Title, gift.Num)},
		{"Slug", gift.Slug},
		{"Issued", fmt.Sprintf("%d/%d", gift.AvailabilityIssued, gift.AvailabilityTotal)},
		{"Owner", orDash(owner)},
		{"Address", orDash(gift.GiftAddress)},
	})
	return nil
}

func printGifts(cmd *cobra.Command, gifts []domain.Gift) error {
	rows := make([][]string, len(gifts))
	for i, g := range gifts {
		kind, title, price := describeGift(g)
		rows[i] = []string{kind, title, price}
	}
	return printTable(cmd, []string{"KIND", "GIFT", "STARS"}, rows)
}

// describeGift returns the kind, title and price columns of a gift.
func describeGift(g domain.Gift) (kind, title, price string) {
	switch g := g.(type) {
	case *domain.StarGift:
		title = orDash(g.Title)
		if g.Title == "" {
			title = strconv.FormatInt(g.ID, 10)
		}
		if g.SoldOut {
			title += " (sold out)"
		}
		return "gift", title, strconv.FormatInt(g.Stars, 10)
	case *domain.UniqueStarGift:
		return "collectible", fmt.Sprintf("%s #%d", g.Title, g.Num), "-"
	case domain.Unsupported:
		return "unsupported", g.Tag, "-"
	}
	return "-", "-", "-"
}
