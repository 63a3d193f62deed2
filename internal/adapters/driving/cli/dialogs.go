package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

var (
	dialogsLimit         int
	dialogsExcludePinned bool
	dialogsJSON          bool

	callLimit int
	callJSON  bool
)

var dialogsCmd = &cobra.Command{
	Use:   "dialogs",
	Short: "Dialog listings",
}

var dialogsSavedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List the saved messages dialogs",
	Args:  cobra.NoArgs,
	RunE:  runDialogsSaved,
}

var dialogsTagsCmd = &cobra.Command{
	Use:   "tags [peer]",
	Short: "List the reaction tags of saved messages",
	Long: `List the reactions used to tag saved messages, across every saved
dialog or within the dialog of one peer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDialogsTags,
}

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "Group call commands",
}

var callsParticipantsCmd = &cobra.Command{
	Use:   "participants <call-id> <access-hash>",
	Short: "List the participants of a group call",
	Args:  cobra.ExactArgs(2),
	RunE:  runCallsParticipants,
}

func init() {
	dialogsSavedCmd.Flags().IntVarP(&dialogsLimit, "limit", "n", 100, "maximum number of dialogs (0 = all)")
	dialogsSavedCmd.Flags().BoolVar(&dialogsExcludePinned, "exclude-pinned", false, "skip pinned dialogs")
	dialogsSavedCmd.Flags().BoolVar(&dialogsJSON, "json", false, "output as JSON")
	dialogsTagsCmd.Flags().BoolVar(&dialogsJSON, "json", false, "output as JSON")
	dialogsCmd.AddCommand(dialogsSavedCmd)
	dialogsCmd.AddCommand(dialogsTagsCmd)
	rootCmd.AddCommand(dialogsCmd)

	callsParticipantsCmd.Flags().IntVarP(&callLimit, "limit", "n", 100, "maximum number of participants (0 = all)")
	callsParticipantsCmd.Flags().BoolVar(&callJSON, "json", false, "output as JSON")
	callsCmd.AddCommand(callsParticipantsCmd)
	rootCmd.AddCommand(callsCmd)
}

func runDialogsSaved(cmd *cobra.Command, _ []string) error {
	if dialogService == nil {
		return errors.New("dialog service not configured")
	}

	opts := domain.SavedDialogsOptions{
		ListOptions:   domain.ListOptions{Limit: dialogsLimit},
		ExcludePinned: dialogsExcludePinned,
	}

	var dialogs []domain.SavedDialog
	for d, err := range dialogService.SavedDialogs(cmd.Context(), opts) {
		if err != nil {
			return fmt.Errorf("list saved dialogs: %w", err)
		}
		dialogs = append(dialogs, d)
	}

	if dialogsJSON {
		return printJSON(cmd, dialogs)
	}
	if len(dialogs) == 0 {
		cmd.Println("No saved dialogs.")
		return nil
	}

	rows := make([][]string, len(dialogs))
	for i, d := range dialogs {
		top, date := "-", "-"
		if d.TopMessage != nil {
			top = strconv.FormatInt(d.TopMessage.ID, 10)
			date = formatTime(d.TopMessage.Date)
		}
		pinned := ""
		if d.Pinned {
			pinned = "yes"
		}
		rows[i] = []string{chatName(d.Chat), top, date, orDash(pinned)}
	}
	return printTable(cmd, []string{"PEER", "TOP MESSAGE", "DATE", "PINNED"}, rows)
}

func runDialogsTags(cmd *cobra.Command, args []string) error {
	if dialogService == nil {
		return errors.New("dialog service not configured")
	}

	tags, err := dialogService.SavedReactionTags(cmd.Context(), optionalArg(args))
	if err != nil {
		return fmt.Errorf("saved reaction tags: %w", err)
	}

	if dialogsJSON {
		return printJSON(cmd, tags)
	}
	if len(tags) == 0 {
		cmd.Println("No reaction tags.")
		return nil
	}

	rows := make([][]string, len(tags))
	for i, tag := range tags {
		rows[i] = []string{reactionName(tag.Reaction), orDash(tag.Title), strconv.Itoa(tag.Count)}
	}
	return printTable(cmd, []string{"REACTION", "TITLE", "COUNT"}, rows)
}

func reactionName(r domain.Reaction) string {
	switch r.Type {
	case domain.ReactionTypeCustomEmoji:
		return "custom:" + strconv.FormatInt(r.CustomEmojiID, 10)
	case domain.ReactionTypePaid:
		return "paid"
	}
	return orDash(r.Emoji)
}

func runCallsParticipants(cmd *cobra.Command, args []string) error {
	if groupCallService == nil {
		return errors.New("group call service not configured")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid call id %q: %w", args[0], domain.ErrInvalidInput)
	}
	hash, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid access hash %q: %w", args[1], domain.ErrInvalidInput)
	}

	ref := domain.GroupCallRef{ID: id, AccessHash: hash}
	var participants []domain.GroupCallParticipant
	for p, err := range groupCallService.Participants(cmd.Context(), ref, domain.ListOptions{Limit: callLimit}) {
		if err != nil {
			return fmt.Errorf("list participants: %w", err)
		}
		participants = append(participants, p)
	}

	if callJSON {
		return printJSON(cmd, participants)
	}
	if len(participants) == 0 {
		cmd.Println("No participants.")
		return nil
	}

	rows := make([][]string, len(participants))
	for i, p := range participants {
		rows[i] = []string{
			chatName(p.Chat),
			formatTime(p.Date),
			p.Mute.String(),
			strconv.Itoa(p.Volume),
			orDash(p.About),
		}
	}
	return printTable(cmd, []string{"PEER", "JOINED", "MUTE", "VOLUME", "ABOUT"}, rows)
}
