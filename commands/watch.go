package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/penwyp/go-perf-timeline/internal/util"
	"github.com/penwyp/go-perf-timeline/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchFor  time.Duration
	watchExts string
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir> [dir...]",
	Short: "Mark filesystem events under the given directories",
	Long: `Watches directories recursively and marks every event as "<op>:<file>".
Stops after --for (if set) or on interrupt, then measures "session" from the
first event to the stop and prints the timeline.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchFor, "for", 0,
		"Stop after this long (0 = until interrupted)")
	watchCmd.Flags().StringVar(&watchExts, "ext", "",
		"Comma-separated file extensions to record (default: all)")
}

func parseExts(s string) []string {
	var exts []string
	for _, ext := range strings.Split(s, ",") {
		if ext = strings.TrimSpace(ext); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

func runWatch(cmd *cobra.Command, args []string) error {
	tl, err := newTimeline(cmd)
	if err != nil {
		return err
	}

	paths := make([]string, len(args))
	for i, a := range args {
		paths[i] = expandPath(a)
	}

	fw, err := watch.NewFileWatcher(paths, parseExts(watchExts)...)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", strings.Join(paths, ", "), err)
	}
	defer func() {
		if err := fw.Close(); err != nil {
			util.LogErrorf("failed to close watcher: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if watchFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, watchFor)
		defer cancel()
	}

	util.LogInfof("watching %s", strings.Join(paths, ", "))
	util.LogDebug("watch: limits",
		util.Field{Key: "for_ms", Value: util.DurationToMillis(watchFor)},
		util.Field{Key: "ext", Value: watchExts})
	rec := watch.NewRecorder(tl)
	rec.Run(ctx, fw.Events())
	util.LogInfo("watch stopped",
		util.Field{Key: "events", Value: rec.Count()},
		util.Field{Key: "timeline_now_ms", Value: tl.Now()})

	return render(cmd, tl)
}
