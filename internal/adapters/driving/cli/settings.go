package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change tgcore settings. Settings are stored in config.toml in
the config directory; TGCORE_* environment variables take precedence.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save it.

Keys:
  transport.cassette    replay cassette path
  transport.rate        requests per second (0 = unlimited)
  transport.burst       requests allowed above the rate
  transport.watch       reload the cassette when it changes
  decode.policy         drop, surface or escalate
  decode.resolution     eager or lazy
  decode.self_id        your user ID
  pagination.page_size  items per page (at most 100)
  storage.backend       sqlite or memory
  storage.data_dir      directory of the peer database
  log.level             debug, info, warn or error`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsPolicyCmd = &cobra.Command{
	Use:   "policy [drop|surface|escalate]",
	Short: "Set the unsupported variant policy",
	Long: `Set what happens to variants the decoder does not know.

Without an argument the policies are listed for selection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsPolicy,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPolicyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Transport]")
	cmd.Printf("  Cassette: %s\n", orUnset(settings.Transport.Cassette))
	if settings.Transport.Rate > 0 {
		cmd.Printf("  Rate: %g/s (burst %d)\n", settings.Transport.Rate, settings.Transport.Burst)
	} else {
		cmd.Println("  Rate: unlimited")
	}
	cmd.Printf("  Watch: %s\n", yesNo(settings.Transport.Watch))
	cmd.Println()

	cmd.Println("[Decode]")
	cmd.Printf("  Policy: %s\n", settings.Decode.Policy.Description())
	cmd.Printf("  Resolution: %s\n", settings.Decode.Resolution)
	if settings.Decode.SelfID != 0 {
		cmd.Printf("  Self ID: %d\n", settings.Decode.SelfID)
	} else {
		cmd.Println("  Self ID: (not set)")
	}
	cmd.Println()

	cmd.Println("[Pagination]")
	cmd.Printf("  Page size: %d\n", settings.Pagination.PageSize)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	cmd.Printf("  Data dir: %s\n", orUnset(settings.Storage.DataDir))
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Level: %s\n", settings.Log.Level)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'tgcore settings set transport.cassette <path>' to configure a transport.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s to %s\n", args[0], args[1])
	return nil
}

func runSettingsPolicy(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var policy domain.UnsupportedPolicy
	if len(args) == 1 {
		policy = domain.UnsupportedPolicy(args[0])
		if !policy.IsValid() {
			return fmt.Errorf("policy %q: %w", args[0], domain.ErrInvalidInput)
		}
	} else {
		policies := domain.AllPolicies()
		for i, p := range policies {
			cmd.Printf("  %d. %s\n", i+1, p.Description())
		}
		cmd.Print("\nEnter choice [1]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		policy = policies[parseChoice(readLine(reader), len(policies), 1)-1]
	}

	if err := settingsService.SetPolicy(policy); err != nil {
		return fmt.Errorf("failed to set policy: %w", err)
	}
	cmd.Printf("Set policy to: %s\n", policy.Description())
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
