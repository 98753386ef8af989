// ABOUTME: Entry point for the toolbox CLI
// ABOUTME: Parses global flags and dispatches to the audio and timer commands
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	"github.com/harperreed/toolbox/internal/app"
	"github.com/harperreed/toolbox/internal/config"
	"github.com/harperreed/toolbox/internal/ui"
	"github.com/harperreed/toolbox/internal/version"
	"github.com/harperreed/toolbox/pkg/audio"
)

// lineInterval is the tick rate of the countdown in line mode
const lineInterval = 100 * time.Millisecond

const usage = `Usage: toolbox [global flags] <command> [flags]

Commands:
  convert    -in FILE [-out FILE]                  decode MP3/FLAC/Opus/WAV to 16-bit WAV
  trim       -in FILE -start S -end S [-out FILE]  cut a clip and save it as WAV
             -in FILE -clip S:E [-clip S:E ...]    cut several clips from one decode
  info       -in FILE                              show sample rate, channels and length
  play       -in FILE [-volume V]                  play a file through the audio device
  timer      [-duration D] [-no-tui]               countdown timer
  stopwatch  [-no-tui]                             stopwatch with laps
  version                                          print the version

Global flags:
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	global := flag.NewFlagSet("toolbox", flag.ContinueOnError)
	configPath := global.String("config", "", "YAML config file")
	logFile := global.String("log-file", "", "Log file path (overrides config)")
	logLevel := global.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	global.Usage = func() {
		fmt.Fprint(global.Output(), usage)
		global.PrintDefaults()
	}

	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}
	if global.Arg(0) == "version" {
		fmt.Printf("%s (%s)\n", version.String(), version.Manufacturer)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, cmdArgs := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "convert":
		err = runConvert(ctx, cfg, cmdArgs)
	case "trim":
		err = runTrim(ctx, cfg, cmdArgs)
	case "info":
		err = runInfo(ctx, cfg, cmdArgs)
	case "play":
		err = runPlay(ctx, cfg, cmdArgs)
	case "timer":
		err = runTimer(ctx, cfg, cmdArgs)
	case "stopwatch":
		err = runStopwatch(ctx, cfg, cmdArgs)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		global.Usage()
		return 2
	}

	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 2
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		return 1
	}
}

// withApp starts the fx graph, runs fn and stops the graph again
func withApp(ctx context.Context, cfg *config.Config, console bool, fn func() error, populate ...any) error {
	a := app.New(cfg, console, fx.Populate(populate...))
	if err := a.Err(); err != nil {
		return err
	}
	if err := a.Start(ctx); err != nil {
		return err
	}

	runErr := fn()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Stop(stopCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func runConvert(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	in := fs.String("in", "", "Input audio file")
	out := fs.String("out", "", "Output WAV file (default <input>-converted.wav)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("-in is required")
	}

	var tools *app.Tools
	return withApp(ctx, cfg, true, func() error {
		report, err := tools.Convert(*in, *out)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%s, %d Hz, %d ch, %s)\n", report.Output, report.Format.Codec,
			report.Format.SampleRate, report.Channels, report.Duration.Round(time.Millisecond))
		return nil
	}, &tools)
}

func runTrim(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("trim", flag.ContinueOnError)
	in := fs.String("in", "", "Input audio file")
	out := fs.String("out", "", "Output WAV file (default <input>-trimmed.wav)")
	start := fs.Float64("start", 0, "Clip start in seconds")
	end := fs.Float64("end", 0, "Clip end in seconds")
	var clips []audio.Range
	fs.Func("clip", "Clip as START:END seconds; repeat to cut several clips (<input>-trimmed-N.wav)", func(s string) error {
		r, err := audio.ParseRange(s)
		if err != nil {
			return err
		}
		clips = append(clips, r)
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("-in is required")
	}
	if len(clips) > 0 && *out != "" {
		return errors.New("-out cannot be combined with -clip")
	}

	var tools *app.Tools
	return withApp(ctx, cfg, true, func() error {
		if len(clips) > 0 {
			reports, err := tools.TrimClips(*in, clips)
			for _, report := range reports {
				printTrimmed(report)
			}
			return err
		}

		report, err := tools.Trim(*in, *out, audio.Range{Start: *start, End: *end})
		if err != nil {
			return err
		}
		printTrimmed(report)
		return nil
	}, &tools)
}

func printTrimmed(report app.Report) {
	fmt.Printf("Wrote %s (%d frames, %s)\n", report.Output, report.Frames,
		report.Duration.Round(time.Millisecond))
}

func runInfo(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	in := fs.String("in", "", "Input audio file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("-in is required")
	}

	var tools *app.Tools
	return withApp(ctx, cfg, true, func() error {
		report, err := tools.Info(*in)
		if err != nil {
			return err
		}
		fmt.Printf("File:        %s\n", report.Input)
		fmt.Printf("Codec:       %s\n", report.Format.Codec)
		fmt.Printf("Sample rate: %d Hz\n", report.Format.SampleRate)
		fmt.Printf("Channels:    %d\n", report.Channels)
		if report.Format.BitDepth > 0 {
			fmt.Printf("Bit depth:   %d\n", report.Format.BitDepth)
		}
		fmt.Printf("Frames:      %d\n", report.Frames)
		fmt.Printf("Duration:    %s\n", report.Duration.Round(time.Millisecond))
		return nil
	}, &tools)
}

func runPlay(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	in := fs.String("in", "", "Input audio file")
	volume := fs.Float64("volume", 1, "Playback volume 0-1")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("-in is required")
	}

	var tools *app.Tools
	return withApp(ctx, cfg, true, func() error {
		return tools.Play(ctx, *in, *volume)
	}, &tools)
}

func runTimer(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("timer", flag.ContinueOnError)
	duration := fs.Duration("duration", cfg.Timer.DefaultDuration, "Countdown length, e.g. 90s or 5m")
	noTUI := fs.Bool("no-tui", false, "Disable TUI, print the countdown line by line")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var keeper *app.Timekeeper
	return withApp(ctx, cfg, *noTUI, func() error {
		cd := keeper.Countdown()
		if err := cd.Configure(*duration); err != nil {
			return err
		}

		if *noTUI {
			return ui.RunCountdownLines(ctx, cd, os.Stdout, lineInterval)
		}
		return ui.Run(cd, keeper.Stopwatch(), keeper.Sounds(), ui.TimerTab)
	}, &keeper)
}

func runStopwatch(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("stopwatch", flag.ContinueOnError)
	noTUI := fs.Bool("no-tui", false, "Disable TUI, read commands from stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var keeper *app.Timekeeper
	return withApp(ctx, cfg, *noTUI, func() error {
		sw := keeper.Stopwatch()
		if *noTUI {
			return ui.RunStopwatchLines(ctx, sw, os.Stdin, os.Stdout)
		}
		return ui.Run(keeper.Countdown(), sw, keeper.Sounds(), ui.StopwatchTab)
	}, &keeper)
}
