package commands

import (
	"fmt"
	"os/exec"

	"github.com/penwyp/go-perf-timeline/internal/util"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run -- <command> [args...]",
	Short: "Run a command and print its timeline",
	Long: `Runs a command and records:
  spawn    mark just before the process starts
  exit     mark once it has exited
  startup  measure from timeline creation to spawn
  run      measure from spawn to exit

The timeline is printed even when the command fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	tl, err := newTimeline(cmd)
	if err != nil {
		return err
	}

	child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
	child.Stdin = cmd.InOrStdin()
	child.Stdout = cmd.OutOrStdout()
	child.Stderr = cmd.ErrOrStderr()

	tl.Mark("spawn")
	runErr := child.Run()
	tl.Mark("exit")
	tl.Measure("startup", "", "spawn")
	tl.Measure("run", "spawn", "exit")

	if runErr != nil {
		util.LogWarn("command failed",
			util.Field{Key: "command", Value: args[0]},
			util.Field{Key: "error", Value: runErr.Error()})
	}
	if runs := tl.GetEntriesByName("run"); len(runs) > 0 {
		util.LogDebug("command finished",
			util.Field{Key: "command", Value: args[0]},
			util.Field{Key: "elapsed", Value: util.MillisToDuration(runs[0].Duration).String()})
	}
	if err := render(cmd, tl); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("command failed: %w", runErr)
	}
	return nil
}
