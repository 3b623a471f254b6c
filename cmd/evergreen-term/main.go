package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/evergreen"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	logPath := flag.String("log", "", "write logs to this file; the terminal is busy drawing")
	fps := flag.Int("fps", 30, "target frames per second")
	flag.Parse()

	if err := run(*configPath, *logPath, *fps); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, fps int) error {
	cfg := evergreen.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = evergreen.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if fps <= 0 {
		fps = 30
	}

	builder := evergreen.NewAppBuilder()
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log %s: %w", logPath, err)
		}
		defer f.Close()
		builder.UseModule(evergreen.LoggingModule{Prefix: "evergreen-term", Debug: true, Output: f})
	}
	app := builder.UseModule(evergreen.TimeModule{}, evergreen.TreeModule{Config: cfg}).Build()

	tree := evergreen.Resource[evergreen.Tree](app)
	modes := evergreen.Resource[evergreen.ModeStore](app)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// PollEvent blocks, so it gets its own goroutine; it only forwards events.
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	v := newView(screen, tree)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	start := time.Now()
	last := start
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
				if ev.Rune() == ' ' || ev.Key() == tcell.KeyEnter {
					mode := modes.Toggle()
					app.Logger().Infof("toggled to %s", mode)
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			app.Tick(float32(now.Sub(start).Seconds()), float32(now.Sub(last).Seconds()))
			last = now
			v.draw(float32(now.Sub(start).Seconds()), modes.Mode())
		}
	}
}
