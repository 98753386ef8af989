// ABOUTME: Time-accounting engines for countdowns and stopwatches
// ABOUTME: Pure state machines driven by explicit commands and an injected clock
// Package timer implements a countdown timer and a lap stopwatch.
//
// Both engines are plain state machines. Commands (Start, Pause, Lap, Stop,
// Reset) either succeed or return *InvalidStateError and leave the engine
// untouched. Time comes from a Clock so simulations and tests can advance it
// by hand with ManualClock.
//
// The countdown keeps an absolute end time while running. Each Tick
// recomputes the remaining time from that end time, so late or missed ticks
// never accumulate drift.
//
//	clock := timer.SystemClock{}
//	cd := timer.NewCountdown(clock, timer.CountdownHooks{
//		OnExpired: func() { fmt.Println("done") },
//	})
//	cd.Configure(5 * time.Minute)
//	cd.Start()
//	err := cd.Run(ctx, 100*time.Millisecond)
//
// Hooks run on the goroutine that issued the command, after the engine's
// lock is released, so a hook may query the engine.
package timer
