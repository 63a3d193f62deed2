package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

var (
	storiesLimit          int
	storiesQuery          string
	storiesJustContacts   bool
	storiesReactionsFirst bool
	storiesForwardsFirst  bool
	storiesHidden         bool
	storiesState          string
	storiesJSON           bool
)

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "Stories and their audience",
}

var storiesViewsCmd = &cobra.Command{
	Use:   "views <peer> <story-id>",
	Short: "List who viewed a story",
	Long: `List the viewers of a story. Forwards and reposts of the story appear
alongside plain views. Use "me" as the peer for your own stories.`,
	Args: cobra.ExactArgs(2),
	RunE: runStoriesViews,
}

var storiesReactionsCmd = &cobra.Command{
	Use:   "reactions <peer> <story-id>",
	Short: "List reactions, forwards and reposts of a story",
	Args:  cobra.ExactArgs(2),
	RunE:  runStoriesReactions,
}

var storiesForwardsCmd = &cobra.Command{
	Use:   "forwards <peer> <story-id>",
	Short: "List public forwards of a story",
	Args:  cobra.ExactArgs(2),
	RunE:  runStoriesForwards,
}

var storiesPeerCmd = &cobra.Command{
	Use:   "peer <peer>",
	Short: "List a peer's active stories",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoriesPeer,
}

var storiesAllCmd = &cobra.Command{
	Use:   "all",
	Short: "List the active stories of followed peers",
	Args:  cobra.NoArgs,
	RunE:  runStoriesAll,
}

func init() {
	storiesCmd.PersistentFlags().BoolVar(&storiesJSON, "json", false, "output as JSON")
	for _, c := range []*cobra.Command{storiesViewsCmd, storiesReactionsCmd, storiesForwardsCmd} {
		c.Flags().IntVarP(&storiesLimit, "limit", "n", 100, "maximum number of entries (0 = all)")
	}
	storiesViewsCmd.Flags().StringVarP(&storiesQuery, "query", "q", "", "filter viewers by name")
	storiesViewsCmd.Flags().BoolVar(&storiesJustContacts, "contacts", false, "only viewers in your contacts")
	storiesViewsCmd.Flags().BoolVar(&storiesReactionsFirst, "reactions-first", false, "list viewers who reacted first")
	storiesViewsCmd.Flags().BoolVar(&storiesForwardsFirst, "forwards-first", false, "list forwards and reposts first")
	storiesReactionsCmd.Flags().BoolVar(&storiesForwardsFirst, "forwards-first", false, "list forwards and reposts first")
	storiesAllCmd.Flags().BoolVar(&storiesHidden, "hidden", false, "stories of hidden peers")
	storiesAllCmd.Flags().StringVar(&storiesState, "state", "", "continue from a previous state")

	storiesCmd.AddCommand(storiesViewsCmd)
	storiesCmd.AddCommand(storiesReactionsCmd)
	storiesCmd.AddCommand(storiesForwardsCmd)
	storiesCmd.AddCommand(storiesPeerCmd)
	storiesCmd.AddCommand(storiesAllCmd)
	rootCmd.AddCommand(storiesCmd)
}

func parseStoryID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid story id %q: %w", s, domain.ErrInvalidInput)
	}
	return id, nil
}

func runStoriesViews(cmd *cobra.Command, args []string) error {
	if storyService == nil {
		return errors.New("story service not configured")
	}
	storyID, err := parseStoryID(args[1])
	if err != nil {
		return err
	}

	opts := domain.StoryViewsOptions{
		ListOptions:    domain.ListOptions{Limit: storiesLimit},
		Query:          storiesQuery,
		JustContacts:   storiesJustContacts,
		ReactionsFirst: storiesReactionsFirst,
		ForwardsFirst:  storiesForwardsFirst,
	}

	var viewers []domain.StoryViewer
	for v, err := range storyService.Views(cmd.Context(), args[0], storyID, opts) {
		if err != nil {
			return fmt.Errorf("list story views: %w", err)
		}
		viewers = append(viewers, v)
	}
	return printViewers(cmd, viewers)
}

func runStoriesReactions(cmd *cobra.Command, args []string) error {
	if storyService == nil {
		return errors.New("story service not configured")
	}
	storyID, err := parseStoryID(args[1])
	if err != nil {
		return err
	}

	opts := domain.StoryViewsOptions{
		ListOptions:   domain.ListOptions{Limit: storiesLimit},
		ForwardsFirst: storiesForwardsFirst,
	}

	var viewers []domain.StoryViewer
	for v, err := range storyService.Reactions(cmd.Context(), args[0], storyID, opts) {
		if err != nil {
			return fmt.Errorf("list story reactions: %w", err)
		}
		viewers = append(viewers, v)
	}
	return printViewers(cmd, viewers)
}

func printViewers(cmd *cobra.Command, viewers []domain.StoryViewer) error {
	if storiesJSON {
		return printJSON(cmd, viewers)
	}
	if len(viewers) == 0 {
		cmd.Println("No viewers found.")
		return nil
	}

	rows := make([][]string, len(viewers))
	for i, v := range viewers {
		rows[i] = viewerRow(v)
	}
	return printTable(cmd, []string{"KIND", "PEER", "DATE", "REACTION"}, rows)
}

func viewerRow(viewer domain.StoryViewer) []string {
	switch v := viewer.(type) {
	case domain.StoryView:
		reaction := "-"
		if v.Reaction != nil {
			reaction = orDash(v.Reaction.Emoji)
		}
		return []string{"view", chatName(v.Peer), formatTime(v.Date), reaction}
	case domain.StoryForwardView:
		var chat *domain.Chat
		var date string
		if v.Message != nil {
			chat = v.Message.Chat
			date = formatTime(v.Message.Date)
		}
		return []string{"forward", chatName(chat), orDash(date), "-"}
	case domain.StoryRepostView:
		date := "-"
		if v.Story != nil {
			date = formatTime(v.Story.Date)
		}
		return []string{"repost", chatName(v.Chat), date, "-"}
	case domain.Unsupported:
		return []string{"unsupported", v.Tag, "-", "-"}
	default:
		return []string{"unknown", "-", "-", "-"}
	}
}

func chatName(c *domain.Chat) string {
	if c == nil {
		return "-"
	}
	return c.DisplayName()
}

func runStoriesForwards(cmd *cobra.Command, args []string) error {
	if storyService == nil {
		return errors.New("story service not configured")
	}
	storyID, err := parseStoryID(args[1])
	if err != nil {
		return err
	}

	var forwards []domain.PublicForward
	opts := domain.ListOptions{Limit: storiesLimit}
	for f, err := range storyService.PublicForwards(cmd.Context(), args[0], storyID, opts) {
		if err != nil {
			return fmt.Errorf("list public forwards: %w", err)
		}
		forwards = append(forwards, f)
	}

	if storiesJSON {
		return printJSON(cmd, forwards)
	}
	if len(forwards) == 0 {
		cmd.Println("No public forwards found.")
		return nil
	}

	rows := make([][]string, len(forwards))
	for i, f := range forwards {
		switch v := f.(type) {
		case domain.PublicForwardMessage:
			var chat *domain.Chat
			date := "-"
			if v.Message != nil {
				chat = v.Message.Chat
				date = formatTime(v.Message.Date)
			}
			rows[i] = []string{"message", chatName(chat), date}
		case domain.PublicForwardStory:
			date := "-"
			if v.Story != nil {
				date = formatTime(v.Story.Date)
			}
			rows[i] = []string{"story", chatName(v.Chat), date}
		case domain.Unsupported:
			rows[i] = []string{"unsupported", v.Tag, "-"}
		default:
			rows[i] = []string{"unknown", "-", "-"}
		}
	}
	return printTable(cmd, []string{"KIND", "PEER", "DATE"}, rows)
}

func runStoriesPeer(cmd *cobra.Command, args []string) error {
	if storyService == nil {
		return errors.New("story service not configured")
	}

	stories, err := storyService.PeerStories(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("peer stories: %w", err)
	}

	if storiesJSON {
		return printJSON(cmd, stories)
	}
	return printStories(cmd, stories.Stories)
}

func printStories(cmd *cobra.Command, stories []domain.Story) error {
	if len(stories) == 0 {
		cmd.Println("No active stories.")
		return nil
	}

	rows := make([][]string, len(stories))
	for i, s := range stories {
		views := "-"
		if s.Views != nil {
			views = strconv.Itoa(s.Views.ViewsCount)
		}
		rows[i] = []string{
			strconv.FormatInt(s.ID, 10),
			chatName(s.Chat),
			formatTime(s.Date),
			formatTime(s.ExpireDate),
			orDash(string(s.Privacy)),
			views,
		}
	}
	return printTable(cmd, []string{"ID", "PEER", "DATE", "EXPIRES", "PRIVACY", "VIEWS"}, rows)
}

func runStoriesAll(cmd *cobra.Command, _ []string) error {
	if storyService == nil {
		return errors.New("story service not configured")
	}

	opts := domain.AllStoriesOptions{
		State:  storiesState,
		Next:   storiesState != "",
		Hidden: storiesHidden,
	}
	all, err := storyService.AllStories(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("all stories: %w", err)
	}

	if storiesJSON {
		return printJSON(cmd, all)
	}
	if !all.Modified {
		cmd.Printf("Not modified (state %s)\n", all.State)
		return nil
	}

	var stories []domain.Story
	for _, ps := range all.Peers {
		stories = append(stories, ps.Stories...)
	}
	if err := printStories(cmd, stories); err != nil {
		return err
	}
	if all.HasMore {
		cmd.Printf("\nMore available: --state %s\n", all.State)
	}
	if until := all.StealthMode.ActiveUntil; all.StealthMode.IsActive(time.Now()) {
		cmd.Printf("\nStealth mode active until %s\n", formatTime(until))
	}
	return nil
}
