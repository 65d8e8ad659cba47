package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/wfdscore/internal/domain"
	"github.com/MrSnakeDoc/wfdscore/internal/logger"
	"github.com/MrSnakeDoc/wfdscore/internal/report"
	"github.com/MrSnakeDoc/wfdscore/internal/sources/logfile"
)

type scoreOptions struct {
	delimiter   string
	skipInvalid bool
	format      string
	color       string
	verbose     bool
}

var scoreOpts scoreOptions

func init() {
	scoreCmd.Flags().StringVar(&scoreOpts.delimiter, "delimiter", "", "field delimiter (default: any whitespace)")
	scoreCmd.Flags().BoolVar(&scoreOpts.skipInvalid, "skip-invalid", false, "skip unparseable lines instead of failing")
	scoreCmd.Flags().StringVar(&scoreOpts.format, "format", report.FormatText, "output format (text|json|yaml)")
	scoreCmd.Flags().StringVar(&scoreOpts.color, "color", "auto", "colorize output (auto|on|off)")
	scoreCmd.Flags().BoolVarP(&scoreOpts.verbose, "verbose", "v", false, "list every QSO and log scoring details")
}

var scoreCmd = &cobra.Command{
	Use:   "score FILE POWER",
	Short: "Score a Winter Field Day log file",
	Long: `Score reads FILE one contact per line:

    FREQUENCY CALLSIGN EXCHANGE TIME MODE

and prints the claimed score for a station running POWER watts.`,
	Example: "  wfdscore score wfd.log 5\n  wfdscore score --format json --skip-invalid wfd.csv 100 --delimiter ,",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		power, err := strconv.Atoi(args[1])
		if err != nil || power < 0 {
			return fmt.Errorf("invalid power %q: must be a non-negative integer", args[1])
		}

		useColor, err := resolveColor(scoreOpts.color, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		level := "warn"
		if scoreOpts.verbose {
			level = "debug"
		}
		log := logger.New(level, true)
		defer func() { _ = log.Sync() }()

		return runScore(cmd.OutOrStdout(), log, args[0], power, scoreOpts, useColor, time.Now)
	},
}

func runScore(w io.Writer, log logger.Logger, path string, power int, opts scoreOptions, useColor bool, now func() time.Time) error {
	switch opts.format {
	case report.FormatText, report.FormatJSON, report.FormatYAML:
	default:
		return fmt.Errorf("%w: %s", report.ErrUnknownFormat, opts.format)
	}

	lines, err := logfile.NewLoader(path).Load()
	if err != nil {
		return err
	}
	log.Debug("loaded log file",
		logger.String("file", path),
		logger.Int("lines", len(lines)))

	policy := logfile.PolicyFailFast
	if opts.skipInvalid {
		policy = logfile.PolicySkipInvalid
	}

	rep, err := report.Score(path, lines, domain.NewLineParser(opts.delimiter, now), policy, power)
	if err != nil {
		return err
	}

	for _, s := range rep.Skipped {
		log.Warn("skipped line",
			logger.Int("line", s.Line),
			logger.String("kind", s.Kind),
			logger.String("error", s.Error))
	}
	log.Debug("worked band/modes", logger.Any("pairs", rep.WorkedBandModes))
	log.Debug("cw/digital qsos", logger.Any("qsos", rep.CWDigitalQSOs))
	log.Debug("phone qsos", logger.Any("qsos", rep.PhoneQSOs))
	log.Debug("multipliers",
		logger.Float64("power", rep.PowerMultiplier),
		logger.Int("band_mode", rep.BandModeMultiplier))

	return report.Write(w, rep, opts.format, report.TextOpts{
		Color:   useColor,
		Verbose: opts.verbose,
	})
}

// resolveColor turns --color into a yes/no for the given output.
func resolveColor(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(mode) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		if color.NoColor {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())), nil
	default:
		return false, fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
	}
}
