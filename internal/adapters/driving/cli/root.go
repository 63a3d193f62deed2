// Package cli implements the tgcore command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgcore/internal/core/ports/driving"
	"github.com/custodia-labs/tgcore/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Flags holds the global flags.
type Flags struct {
	Verbose   bool
	ConfigDir string
	Cassette  string
}

// Services holds the driving ports used by the commands.
type Services struct {
	Boost     driving.BoostService
	Payment   driving.PaymentService
	Story     driving.StoryService
	Dialog    driving.DialogService
	GroupCall driving.GroupCallService
	Peer      driving.PeerService
	Decode    driving.DecodeService
	Settings  driving.SettingsService
}

// BootstrapFunc builds the services once the global flags are parsed.
type BootstrapFunc func(flags Flags) (*Services, func(), error)

var (
	flags     Flags
	bootstrap BootstrapFunc
	shutdown  func()

	boostService     driving.BoostService
	paymentService   driving.PaymentService
	storyService     driving.StoryService
	dialogService    driving.DialogService
	groupCallService driving.GroupCallService
	peerService      driving.PeerService
	decodeService    driving.DecodeService
	settingsService  driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "tgcore",
	Short: "Inspect Telegram boosts, stars, stories and dialogs",
	Long: `tgcore decodes Telegram API responses into typed records and pages
through list methods such as boosts, stars transactions and story viewers.

Responses come from a replay cassette (--cassette). Peers seen in responses
are stored so later commands can address them by @username, phone or ID.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if shutdown != nil {
			shutdown()
			shutdown = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigDir, "config-dir", "", "configuration directory (default ~/.tgcore)")
	rootCmd.PersistentFlags().StringVar(&flags.Cassette, "cassette", "", "replay cassette to answer requests from")
}

// SetBootstrap sets the function that builds services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs the services directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	boostService = s.Boost
	paymentService = s.Payment
	storyService = s.Story
	dialogService = s.Dialog
	groupCallService = s.GroupCall
	peerService = s.Peer
	decodeService = s.Decode
	settingsService = s.Settings
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flags.Verbose)
	if bootstrap == nil {
		return nil
	}

	services, done, err := bootstrap(flags)
	if err != nil {
		return err
	}
	SetServices(services)
	shutdown = done
	return nil
}
