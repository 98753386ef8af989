// ABOUTME: Bubbletea model for the timer and stopwatch TUI
// ABOUTME: Maps keys to engine commands and renders the clock, progress and laps
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/toolbox/pkg/timer"
)

// refreshInterval is how often the clock is ticked and redrawn
const refreshInterval = 100 * time.Millisecond

// maxCountdown keeps +/- adjustments inside the clock face
const maxCountdown = 24*time.Hour - time.Second

// maxLapsShown limits the lap list height
const maxLapsShown = 10

// Tab selects the visible tool
type Tab int

const (
	TimerTab Tab = iota
	StopwatchTab
)

// Countdown is the countdown engine as the UI drives it
type Countdown interface {
	Configure(total time.Duration) error
	Start() error
	Pause() error
	Reset()
	Tick() timer.Phase
	Phase() timer.Phase
	Total() time.Duration
	Remaining() time.Duration
	RemainingSeconds() int
	Progress() float64
}

// Stopwatch is the stopwatch engine as the UI drives it
type Stopwatch interface {
	Start() error
	Lap() (timer.Lap, error)
	Stop() error
	Reset()
	ClearLaps()
	Elapsed() time.Duration
	Laps() []timer.Lap
	Phase() timer.Phase
}

// volumeStep is the change per volume key press
const volumeStep = 0.1

// SoundToggle switches feedback beeps and sets their volume
type SoundToggle interface {
	Enabled() bool
	SetEnabled(bool)
	Volume() float64
	SetVolume(float64)
}

// Model represents the TUI state
type Model struct {
	tab       Tab
	countdown Countdown
	stopwatch Stopwatch
	sounds    SoundToggle

	// status holds the last command error
	status string

	quitting bool

	// Dimensions
	width  int
	height int
}

type tickMsg time.Time

// NewModel creates a new TUI model. sounds may be nil.
func NewModel(cd Countdown, sw Stopwatch, sounds SoundToggle, tab Tab) Model {
	return Model{
		tab:       tab,
		countdown: cd,
		stopwatch: sw,
		sounds:    sounds,
	}
}

// Init starts the refresh ticker
func (m Model) Init() tea.Cmd {
	return tickEvery()
}

func tickEvery() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		m.countdown.Tick()
		return m, tickEvery()
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		if m.tab == TimerTab {
			m.tab = StopwatchTab
		} else {
			m.tab = TimerTab
		}
		m.status = ""
		return m, nil
	case "m":
		if m.sounds != nil {
			m.sounds.SetEnabled(!m.sounds.Enabled())
		}
		return m, nil
	case "[", "]":
		if m.sounds != nil {
			step := volumeStep
			if key == "[" {
				step = -step
			}
			m.sounds.SetVolume(m.sounds.Volume() + step)
		}
		return m, nil
	}

	var err error
	if m.tab == TimerTab {
		err = m.timerKey(key)
	} else {
		err = m.stopwatchKey(key)
	}

	if err != nil {
		m.status = err.Error()
	} else {
		m.status = ""
	}
	return m, nil
}

func (m Model) timerKey(key string) error {
	switch key {
	case "s":
		return m.countdown.Start()
	case "p":
		return m.countdown.Pause()
	case "r":
		m.countdown.Reset()
	case "1", "2", "3", "4", "5":
		preset := timer.Presets[int(key[0]-'1')]
		m.countdown.Reset()
		return m.countdown.Configure(preset)
	case "+", "=":
		return m.adjust(time.Minute)
	case "-":
		return m.adjust(-time.Minute)
	}
	return nil
}

// adjust changes the configured duration; Configure rejects it unless Ready
func (m Model) adjust(delta time.Duration) error {
	total := m.countdown.Total() + delta
	if total < 0 {
		total = 0
	}
	if total > maxCountdown {
		total = maxCountdown
	}
	return m.countdown.Configure(total)
}

func (m Model) stopwatchKey(key string) error {
	switch key {
	case "s":
		return m.stopwatch.Start()
	case "l", " ", "space":
		_, err := m.stopwatch.Lap()
		return err
	case "x":
		return m.stopwatch.Stop()
	case "r":
		m.stopwatch.Reset()
	case "c":
		m.stopwatch.ClearLaps()
	}
	return nil
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Underline(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("250")).
			Padding(1, 2)

	finishedStyle = clockStyle.Foreground(lipgloss.Color("196"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Faint(true)
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Toolbox"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if m.tab == TimerTab {
		b.WriteString(m.renderTimer())
	} else {
		b.WriteString(m.renderStopwatch())
	}

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderTabs() string {
	timerTab, swTab := tabStyle, tabStyle
	if m.tab == TimerTab {
		timerTab = activeTabStyle
	} else {
		swTab = activeTabStyle
	}
	return timerTab.Render("Timer") + "  " + swTab.Render("Stopwatch")
}

func (m Model) renderTimer() string {
	phase := m.countdown.Phase()
	clock := timer.FormatClock(time.Duration(m.countdown.RemainingSeconds()) * time.Second)

	var b strings.Builder
	if phase == timer.Finished {
		b.WriteString(finishedStyle.Render(clock + "  Time's up!"))
	} else {
		b.WriteString(clockStyle.Render(clock))
	}
	b.WriteString("\n")

	progress := int(m.countdown.Progress() * 100)
	b.WriteString(fmt.Sprintf("[%s] %3d%%  %s  of %s\n",
		renderBar(progress, 100, 30), progress, phase, timer.FormatClock(m.countdown.Total())))
	return b.String()
}

func (m Model) renderStopwatch() string {
	var b strings.Builder
	b.WriteString(clockStyle.Render(timer.FormatClockMillis(m.stopwatch.Elapsed())))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s\n", m.stopwatch.Phase()))

	laps := m.stopwatch.Laps()
	if len(laps) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("Laps (%d)", len(laps))))
		b.WriteString("\n")
		for i, lap := range laps {
			if i == maxLapsShown {
				b.WriteString(fmt.Sprintf("  ... %d more\n", len(laps)-maxLapsShown))
				break
			}
			b.WriteString(fmt.Sprintf("  Lap %-3d %s  %s\n", lap.Number,
				timer.FormatClockMillis(lap.LapElapsed), timer.FormatClockMillis(lap.TotalElapsed)))
		}
	}
	return b.String()
}

func (m Model) renderHelp() string {
	sound := "off"
	if m.sounds != nil && m.sounds.Enabled() {
		sound = "on"
	}
	volume := ""
	if m.sounds != nil {
		volume = fmt.Sprintf("  [/]:Vol %d%%", int(math.Round(m.sounds.Volume()*100)))
	}

	keys := "s:Start  l:Lap  x:Stop  r:Reset  c:Clear laps"
	if m.tab == TimerTab {
		keys = "s:Start/Resume  p:Pause  r:Reset  1-5:Presets  +/-:Minutes"
	}
	return helpStyle.Render(fmt.Sprintf("%s  m:Sound(%s)%s  tab:Switch  q:Quit", keys, sound, volume))
}

// Utility functions
func renderBar(value, max, width int) string {
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
