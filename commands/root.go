package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-perf-timeline/internal/perf"
	"github.com/penwyp/go-perf-timeline/internal/presentation/formatter"
	"github.com/penwyp/go-perf-timeline/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug     bool
	logFile   string
	logFormat string

	// Timeline configuration
	offset    float64
	timestamp bool

	// Output related
	outputFormat string
	timezone     string
	filterType   string
	filterName   string

	rootCmd = &cobra.Command{
		Use:   "go-perf-timeline",
		Short: "Record marks and measures on an in-process performance timeline",
		Long: `go-perf-timeline records named marks and measured intervals against a
monotonic clock and prints the resulting timeline.

Examples:
  go-perf-timeline demo                                  # mark, sleep, mark, measure
  go-perf-timeline demo --delay 250ms --timestamp        # include wall-clock timestamps
  go-perf-timeline demo --type measure                   # measures only
  go-perf-timeline run -- make build                     # time a command
  go-perf-timeline run --output summary -- go test ./... # aggregate view
  go-perf-timeline watch ./logs --for 30s --ext jsonl    # mark filesystem events`,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

func init() {
	// Timeline configuration
	rootCmd.PersistentFlags().Float64Var(&offset, "offset", 0,
		"Offset in milliseconds added to now() (default: measured wall/monotonic skew)")
	rootCmd.PersistentFlags().BoolVar(&timestamp, "timestamp", false,
		"Record a wall-clock timestamp on every entry")

	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, summary)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone for timestamps (e.g., UTC, Asia/Shanghai)")
	rootCmd.PersistentFlags().StringVar(&filterType, "type", "",
		"Only print entries of this type (mark, measure)")
	rootCmd.PersistentFlags().StringVar(&filterName, "name", "",
		"Only print entries with this name")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Also write logs to this file (~ is expanded)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log format (text, json)")
}

func Execute() error {
	return rootCmd.Execute()
}

func setupLogging(cmd *cobra.Command, args []string) error {
	format, err := util.ParseLogFormat(logFormat)
	if err != nil {
		return err
	}

	level := "info"
	if debug {
		level = "debug"
	}

	path := ""
	if logFile != "" {
		path = expandPath(logFile)
		if err := ensureDir(filepath.Dir(path)); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	if err := util.InitLogger(level, path, debug, format); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

// timelineConfig builds the perf configuration from the persistent flags.
// --offset only overrides the computed default when it was given, so an
// explicit --offset 0 is honored.
func timelineConfig(cmd *cobra.Command) *perf.Config {
	cfg := &perf.Config{Timestamp: timestamp}
	if f := cmd.Flag("offset"); f != nil && f.Changed {
		o := offset
		cfg.Offset = &o
	}
	return cfg
}

func newTimeline(cmd *cobra.Command) (*perf.Timeline, error) {
	tl, err := perf.New(timelineConfig(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to create timeline: %w", err)
	}
	util.LogDebug("timeline created",
		util.Field{Key: "offset", Value: tl.Offset()},
		util.Field{Key: "timestamp", Value: tl.CapturesTimestamp()})
	return tl, nil
}

// selectEntries applies the --type and --name filters. With both set an
// entry must match both.
func selectEntries(tl *perf.Timeline) ([]perf.Entry, error) {
	if filterType == "" {
		if filterName == "" {
			return tl.GetEntries(), nil
		}
		return tl.GetEntriesByName(filterName), nil
	}

	t, err := perf.ParseEntryType(filterType)
	if err != nil {
		return nil, err
	}
	entries := tl.GetEntriesByType(t)
	if filterName == "" {
		return entries, nil
	}
	matched := entries[:0]
	for _, e := range entries {
		if e.Name == filterName {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func render(cmd *cobra.Command, tl *perf.Timeline) error {
	entries, err := selectEntries(tl)
	if err != nil {
		return err
	}
	if len(entries) == 0 && tl.Len() > 0 {
		util.LogWarnf("no entries match type=%q name=%q (%d recorded)", filterType, filterName, tl.Len())
	}

	tp, err := util.NewTimeProvider(timezone)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	f, err := formatter.New(outputFormat, formatter.Options{
		Width: util.WriterWidth(out),
		Time:  tp,
	})
	if err != nil {
		return err
	}
	return f.Format(out, entries)
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
