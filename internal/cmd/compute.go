package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jzx17/digitpool/internal/config"
	"github.com/jzx17/digitpool/pkg/digits"
	"github.com/jzx17/digitpool/pkg/types"
	"github.com/jzx17/digitpool/pkg/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute digits of pi",
	Long: `Compute digits of pi concurrently and print the assembled value.

Each digit position becomes one task in a shared queue; a fixed pool of
workers drains the queue, and the digits are printed in order once every
worker has finished. One dot is printed per task started when running on a
terminal.`,
	Args: cobra.NoArgs,
	RunE: runCompute,
}

func init() {
	rootCmd.AddCommand(computeCmd)

	computeCmd.Flags().IntP("digits", "n", 0, "number of digits to compute")
	computeCmd.Flags().IntP("workers", "w", 0, "number of workers (default: number of CPUs)")
	computeCmd.Flags().Bool("hex", false, "extract hexadecimal digits instead of decimal")
	computeCmd.Flags().Bool("timing", false, "print elapsed time after the digits")
	computeCmd.Flags().Bool("progress", true, "print one dot per task started")

	_ = viper.BindPFlag("compute.digits", computeCmd.Flags().Lookup("digits"))
	_ = viper.BindPFlag("compute.workers", computeCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("compute.hex", computeCmd.Flags().Lookup("hex"))
	_ = viper.BindPFlag("output.timing", computeCmd.Flags().Lookup("timing"))
	_ = viper.BindPFlag("output.progress", computeCmd.Flags().Lookup("progress"))
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var (
		computer types.DigitComputer
		method   string
	)
	if cfg.Compute.Hex {
		computer = digits.NewHexadecimal()
		method = "hexadecimal"
	} else {
		computer = digits.NewDecimal()
		method = "decimal"
	}

	out := cmd.OutOrStdout()

	// Progress dots only make sense on an interactive terminal.
	showProgress := cfg.Output.Progress && term.IsTerminal(int(os.Stdout.Fd()))

	workerCfg := &worker.Config{
		Workers: cfg.Compute.Workers,
	}
	if showProgress {
		workerCfg.Progress = func(int) {
			fmt.Fprint(out, ".")
		}
	}

	coord, err := worker.NewCoordinator(computer, workerCfg)
	if err != nil {
		return fmt.Errorf("failed to create coordinator: %w", err)
	}

	fmt.Fprintf(out, "Computing pi with %d workers\n", coord.Workers())
	fmt.Fprintf(out, "%d digits (%s)\n", cfg.Compute.Digits, method)

	result, err := coord.Run(cmd.Context(), cfg.Compute.Digits)
	if err != nil {
		return fmt.Errorf("computation failed: %w", err)
	}

	if showProgress {
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, formatPi(result.Digits, cfg.Compute.Hex))

	if cfg.Output.Timing {
		fmt.Fprintf(out, "elapsed: %s\n", result.Duration)
	}

	return nil
}

// formatPi renders the digit sequence as "3." followed by one digit per
// index. Hexadecimal results arrive as overlapping 14-digit chunks, so only
// the leading digit of each chunk is kept.
func formatPi(values []uint64, hex bool) string {
	var sb strings.Builder
	sb.WriteString("3.")

	topShift := uint(4 * (digits.NewHexadecimal().ChunkDigits() - 1))
	for _, v := range values {
		if hex {
			fmt.Fprintf(&sb, "%x", v>>topShift)
		} else {
			fmt.Fprintf(&sb, "%d", v)
		}
	}

	return sb.String()
}
