package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

var (
	txLimit     int
	txInbound   bool
	txOutbound  bool
	txAscending bool
	txJSON      bool

	starsJSON           bool
	starsSubsLimit      int
	starsAuctionVersion int
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions [peer]",
	Short: "List stars transactions",
	Long: `List the stars balance history of the current account, or of a bot or
channel you manage when a peer is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTransactions,
}

var starsCmd = &cobra.Command{
	Use:   "stars",
	Short: "Stars balance, subscriptions and gift auctions",
}

var starsStatusCmd = &cobra.Command{
	Use:   "status [peer]",
	Short: "Show a stars balance",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStarsStatus,
}

var starsSubscriptionsCmd = &cobra.Command{
	Use:   "subscriptions [peer]",
	Short: "List active stars subscriptions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStarsSubscriptions,
}

var starsAuctionCmd = &cobra.Command{
	Use:   "auction <gift-id>",
	Short: "Show the state of a gift auction",
	Args:  cobra.ExactArgs(1),
	RunE:  runStarsAuction,
}

func init() {
	transactionsCmd.Flags().IntVarP(&txLimit, "limit", "n", 100, "maximum number of transactions (0 = all)")
	transactionsCmd.Flags().BoolVar(&txInbound, "inbound", false, "only incoming transactions")
	transactionsCmd.Flags().BoolVar(&txOutbound, "outbound", false, "only outgoing transactions")
	transactionsCmd.Flags().BoolVar(&txAscending, "ascending", false, "oldest first")
	transactionsCmd.Flags().BoolVar(&txJSON, "json", false, "output as JSON")
	transactionsCmd.MarkFlagsMutuallyExclusive("inbound", "outbound")
	rootCmd.AddCommand(transactionsCmd)

	starsCmd.PersistentFlags().BoolVar(&starsJSON, "json", false, "output as JSON")
	starsSubscriptionsCmd.Flags().IntVarP(&starsSubsLimit, "limit", "n", 100, "maximum number of subscriptions (0 = all)")
	starsAuctionCmd.Flags().IntVar(&starsAuctionVersion, "version", 0, "last known auction version")
	starsCmd.AddCommand(starsStatusCmd)
	starsCmd.AddCommand(starsSubscriptionsCmd)
	starsCmd.AddCommand(starsAuctionCmd)
	rootCmd.AddCommand(starsCmd)
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func runTransactions(cmd *cobra.Command, args []string) error {
	if paymentService == nil {
		return errors.New("payment service not configured")
	}

	opts := domain.TransactionListOptions{
		ListOptions: domain.ListOptions{Limit: txLimit},
		Inbound:     txInbound,
		Outbound:    txOutbound,
		Ascending:   txAscending,
	}

	var txs []domain.StarsTransaction
	for tx, err := range paymentService.Transactions(cmd.Context(), optionalArg(args), opts) {
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		txs = append(txs, tx)
	}

	if txJSON {
		return printJSON(cmd, txs)
	}
	return printTransactions(cmd, txs)
}

func printTransactions(cmd *cobra.Command, txs []domain.StarsTransaction) error {
	if len(txs) == 0 {
		cmd.Println("No transactions found.")
		return nil
	}

	rows := make([][]string, len(txs))
	for i, tx := range txs {
		rows[i] = []string{
			tx.ID,
			formatTime(tx.Date),
			tx.Amount.String(),
			transactionPeer(tx.Peer),
			orDash(tx.Title),
			tx.State.String(),
		}
	}
	return printTable(cmd, []string{"ID", "DATE", "AMOUNT", "PEER", "TITLE", "STATE"}, rows)
}

func transactionPeer(p domain.TransactionPeer) string {
	if p.Chat != nil {
		return p.Chat.DisplayName()
	}
	return string(p.Type)
}

func runStarsStatus(cmd *cobra.Command, args []string) error {
	if paymentService == nil {
		return errors.New("payment service not configured")
	}

	status, err := paymentService.Status(cmd.Context(), optionalArg(args))
	if err != nil {
		return fmt.Errorf("stars status: %w", err)
	}

	if starsJSON {
		return printJSON(cmd, status)
	}

	printFields(cmd, [][2]string{
		{"Balance", status.Balance.String()},
		{"Subscriptions", strconv.Itoa(len(status.Subscriptions))},
		{"Missing for subscriptions", strconv.FormatInt(status.SubscriptionsMissingBalance, 10)},
		{"Recent transactions", strconv.Itoa(len(status.History))},
	})
	if len(status.History) > 0 {
		cmd.Println()
		return printTransactions(cmd, status.History)
	}
	return nil
}

func runStarsSubscriptions(cmd *cobra.Command, args []string) error {
	if paymentService == nil {
		return errors.New("payment service not configured")
	}

	opts := domain.ListOptions{Limit: starsSubsLimit}
	var subs []domain.StarsSubscription
	for sub, err := range paymentService.Subscriptions(cmd.Context(), optionalArg(args), opts) {
		if err != nil {
			return fmt.Errorf("list subscriptions: %w", err)
		}
		subs = append(subs, sub)
	}

	if starsJSON {
		return printJSON(cmd, subs)
	}
	if len(subs) == 0 {
		cmd.Println("No subscriptions found.")
		return nil
	}

	rows := make([][]string, len(subs))
	for i, sub := range subs {
		chat := "-"
		if sub.Chat != nil {
			chat = sub.Chat.DisplayName()
		}
		state := "active"
		if sub.IsCanceled {
			state = "canceled"
		}
		rows[i] = []string{
			sub.ID,
			chat,
			fmt.Sprintf("%d / %s", sub.Pricing.Amount, sub.Pricing.Period),
			formatTime(sub.UntilDate),
			state,
		}
	}
	return printTable(cmd, []string{"ID", "CHAT", "PRICE", "UNTIL", "STATE"}, rows)
}

func runStarsAuction(cmd *cobra.Command, args []string) error {
	if paymentService == nil {
		return errors.New("payment service not configured")
	}

	giftID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid gift id %q: %w", args[0], domain.ErrInvalidInput)
	}

	snap, err := paymentService.AuctionState(cmd.Context(), giftID, starsAuctionVersion)
	if err != nil {
		return fmt.Errorf("auction state: %w", err)
	}

	if starsJSON {
		return printJSON(cmd, snap)
	}

	fields := [][2]string{{"Gift", strconv.FormatInt(snap.GiftID, 10)}}
	switch st := snap.State.(type) {
	case domain.AuctionActive:
		fields = append(fields,
			[2]string{"State", "active"},
			[2]string{"Version", strconv.Itoa(st.Version)},
			[2]string{"Ends", formatTime(st.EndDate)},
			[2]string{"Minimum bid", strconv.FormatInt(st.MinBidAmount, 10)},
			[2]string{"Round", fmt.Sprintf("%d/%d", st.CurrentRound, st.TotalRounds)},
			[2]string{"Gifts left", strconv.Itoa(st.GiftsLeft)},
		)
	case domain.AuctionFinished:
		fields = append(fields,
			[2]string{"State", "finished"},
			[2]string{"Ended", formatTime(st.EndDate)},
			[2]string{"Average price", strconv.FormatInt(st.AveragePrice, 10)},
			[2]string{"Listed", strconv.Itoa(st.ListedCount)},
		)
	case domain.AuctionNotModified:
		fields = append(fields, [2]string{"State", "not modified"})
	case domain.Unsupported:
		fields = append(fields, [2]string{"State", "unsupported (" + st.Tag + ")"})
	}
	if us := snap.UserState; us != nil && us.BidAmount > 0 {
		fields = append(fields,
			[2]string{"Your bid", strconv.FormatInt(us.BidAmount, 10)},
			[2]string{"Acquired", strconv.Itoa(us.AcquiredCount)},
		)
	}
	printFields(cmd, fields)
	return nil
}
