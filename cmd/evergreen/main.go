package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/evergreen"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	frames := flag.Int("frames", 600, "number of frames to simulate")
	dt := flag.Float64("dt", 1.0/60.0, "frame delta in seconds")
	toggleEvery := flag.Int("toggle-every", 180, "toggle the mode every N frames (0 disables)")
	reportEvery := flag.Int("report-every", 30, "log a status line every N frames")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg := evergreen.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = evergreen.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	app := evergreen.NewAppBuilder().
		UseModule(
			evergreen.LoggingModule{Prefix: "evergreen", Debug: *debug},
			evergreen.TimeModule{},
			evergreen.TreeModule{Config: cfg},
		).
		Build()

	tree := evergreen.Resource[evergreen.Tree](app)
	modes := evergreen.Resource[evergreen.ModeStore](app)
	clock := evergreen.Resource[evergreen.Time](app)
	log := app.Logger()

	points := &evergreen.PointBuffer{}
	tree.Foliage.Attach(points)
	buffers := make(map[evergreen.BatchId]*evergreen.InstanceBuffer)
	for _, b := range tree.Batches() {
		buffers[b.Id] = evergreen.NewInstanceBuffer(b.Count())
		b.Attach(buffers[b.Id])
	}

	step := float32(*dt)
	for frame := 1; frame <= *frames; frame++ {
		if *toggleEvery > 0 && frame%*toggleEvery == 0 {
			mode := modes.Toggle()
			log.Infof("frame %d: toggled, button now reads %s", frame, mode.ActionLabel())
		}

		app.RunFrames(1, step)

		if *reportEvery > 0 && frame%*reportEvery == 0 {
			evergreen.LogTreeStatus(log, uint64(frame), clock, modes.Mode(), tree)
		}
	}

	for _, b := range tree.Batches() {
		log.Debugf("batch %s (%s): %d commits", b.Id, b.Kind, buffers[b.Id].Commits)
	}
}
