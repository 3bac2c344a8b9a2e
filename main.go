package main

import (
	"os"

	"github.com/penwyp/go-perf-timeline/commands"
	"github.com/penwyp/go-perf-timeline/internal/util"
)

func main() {
	if err := commands.Execute(); err != nil {
		util.LogError("exiting", util.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}
}
