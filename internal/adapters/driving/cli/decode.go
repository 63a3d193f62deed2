package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

var decodePolicy string

var decodeCmd = &cobra.Command{
	Use:   "decode <family> <file>",
	Short: "Decode a recorded response envelope",
	Long: `Decode a JSON response envelope offline and print the result as JSON.

Objects carry their constructor tag in the "_" field. Use "-" as the file to
read from standard input. Run "tgcore variants" to list the families.`,
	Args: cobra.ExactArgs(2),
	RunE: runDecode,
}

var variantsCmd = &cobra.Command{
	Use:   "variants [family]",
	Short: "List decodable families or the tags of one family",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVariants,
}

func init() {
	decodeCmd.Flags().StringVar(&decodePolicy, "policy", "", "unsupported variant policy: drop, surface or escalate")
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(variantsCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	if decodeService == nil {
		return errors.New("decode service not configured")
	}

	policy := domain.UnsupportedPolicy(decodePolicy)
	if decodePolicy != "" && !policy.IsValid() {
		return fmt.Errorf("policy %q: %w", decodePolicy, domain.ErrInvalidInput)
	}

	data, err := readInput(cmd, args[1])
	if err != nil {
		return err
	}

	result, err := decodeService.DecodeEnvelope(cmd.Context(), domain.Family(args[0]), data, policy)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}

	for _, d := range result.Dropped {
		cmd.PrintErrf("dropped unsupported %s variant %q\n", d.Family, d.Tag)
	}
	return printJSON(cmd, result.Value)
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read envelope: %w", err)
	}
	return data, nil
}

func runVariants(cmd *cobra.Command, args []string) error {
	if decodeService == nil {
		return errors.New("decode service not configured")
	}

	if len(args) == 1 {
		tags := decodeService.Tags(domain.Family(args[0]))
		if len(tags) == 0 {
			return fmt.Errorf("unknown family %q: %w", args[0], domain.ErrNotFound)
		}
		for _, tag := range tags {
			cmd.Println(tag)
		}
		return nil
	}

	families := decodeService.Families()
	rows := make([][]string, len(families))
	for i, f := range families {
		rows[i] = []string{f.String(), fmt.Sprint(len(decodeService.Tags(f)))}
	}
	return printTable(cmd, []string{"FAMILY", "TAGS"}, rows)
}
