package commands

import (
	"time"

	"github.com/penwyp/go-perf-timeline/internal/util"
	"github.com/spf13/cobra"
)

var demoDelay time.Duration

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Mark, sleep, mark again and measure the gap",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().DurationVar(&demoDelay, "delay", 90*time.Millisecond,
		"Sleep between the two marks")
}

func runDemo(cmd *cobra.Command, args []string) error {
	tl, err := newTimeline(cmd)
	if err != nil {
		return err
	}

	util.LogDebug("demo: sleeping between marks",
		util.Field{Key: "delay_ms", Value: util.DurationToMillis(demoDelay)})

	tl.Mark("a")
	time.Sleep(demoDelay)
	tl.Mark("b")
	tl.Measure("a-to-b", "a", "b")
	tl.Measure("since-start")

	return render(cmd, tl)
}
