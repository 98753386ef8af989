// ABOUTME: Line-mode runners for terminals without the TUI
// ABOUTME: Prints clock updates and reads stopwatch commands from a reader
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harperreed/toolbox/pkg/timer"
)

// RunCountdownLines starts cd if needed and prints each whole second until it
// finishes or ctx is done
func RunCountdownLines(ctx context.Context, cd Countdown, w io.Writer, interval time.Duration) error {
	if cd.Phase() != timer.Running {
		if err := cd.Start(); err != nil {
			return err
		}
	}

	last := -1
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		phase := cd.Tick()
		if secs := cd.RemainingSeconds(); secs != last {
			last = secs
			fmt.Fprintln(w, timer.FormatClock(time.Duration(secs)*time.Second))
		}
		if phase == timer.Finished {
			fmt.Fprintln(w, "Time's up!")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunStopwatchLines starts sw and reads one command per line from in:
// an empty line or "l" records a lap, "x" stops, "r" resets, "q" quits.
// The final elapsed time is printed on stop or quit. When ctx ends, in is
// closed if it is an io.Closer so the reading goroutine can exit.
func RunStopwatchLines(ctx context.Context, sw Stopwatch, in io.Reader, w io.Writer) error {
	if err := sw.Start(); err != nil {
		return err
	}
	fmt.Fprintln(w, "Stopwatch running. Enter: lap, x: stop, r: reset, q: quit")

	commands := make(chan string)
	go func() {
		defer close(commands)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case commands <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			// A blocked Scan only returns once the reader is closed.
			if c, ok := in.(io.Closer); ok {
				c.Close()
			}
			return ctx.Err()
		case cmd, ok := <-commands:
			if !ok {
				cmd = "q"
			}
			switch cmd {
			case "", "l":
				lap, err := sw.Lap()
				if err != nil {
					fmt.Fprintln(w, err)
					continue
				}
				fmt.Fprintf(w, "Lap %d  %s  %s\n", lap.Number,
					timer.FormatClockMillis(lap.LapElapsed), timer.FormatClockMillis(lap.TotalElapsed))
			case "x":
				if err := sw.Stop(); err != nil {
					fmt.Fprintln(w, err)
					continue
				}
				fmt.Fprintf(w, "Stopped at %s\n", timer.FormatClockMillis(sw.Elapsed()))
			case "r":
				sw.Reset()
				if err := sw.Start(); err != nil {
					return err
				}
				fmt.Fprintln(w, "Reset")
			case "q":
				fmt.Fprintf(w, "Elapsed %s\n", timer.FormatClockMillis(sw.Elapsed()))
				return nil
			default:
				fmt.Fprintf(w, "unknown command %q\n", cmd)
			}
		}
	}
}
