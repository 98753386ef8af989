// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the timer and stopwatch
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits
func Run(cd Countdown, sw Stopwatch, sounds SoundToggle, tab Tab) error {
	p := tea.NewProgram(NewModel(cd, sw, sounds, tab), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
