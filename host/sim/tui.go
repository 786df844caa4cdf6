package sim

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"illo/host/web"
)

// displayGain compensates for hardware brightness topping out near a
// quarter of full scale, which would render as near-black glyphs.
const displayGain = 4

const heavyDrop = 0.6

// KeyMap defines the simulator's keyboard shortcuts.
type KeyMap struct {
	ButtonA key.Binding
	ButtonB key.Binding
	Slide   key.Binding
	Next    key.Binding
	Prev    key.Binding
	Loss    key.Binding
	Pause   key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	ButtonA: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "button A"),
	),
	ButtonB: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "button B"),
	),
	Slide: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "slide switch"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down", "right"),
		key.WithHelp("tab", "next toy"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up", "left"),
		key.WithHelp("shift+tab", "prev toy"),
	),
	Loss: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "heavy loss"),
	),
	Pause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pause"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	pausedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type tickMsg time.Time
type reloadMsg struct{}

// Rebuild makes a fresh Sim after the scenario file changes. The
// closure owns whatever must move over, like a LAN bridge.
type Rebuild func() (*Sim, error)

// ModelOptions carries the optional extras of a simulator session.
type ModelOptions struct {
	// Hub mirrors frames to connected browsers.
	Hub *web.Hub

	// Logs shows device log lines in a pane under the toys.
	Logs *LogBuffer

	// ScenarioPath enables hot reload of this file. Requires Rebuild.
	ScenarioPath string
	Rebuild      Rebuild
}

// Model is the simulator TUI.
type Model struct {
	sim  *Sim
	keys KeyMap
	hub  *web.Hub
	logs *LogBuffer

	rebuild   Rebuild
	reload    <-chan struct{}
	stopWatch func() error

	selected  int
	paused    bool
	heavyLoss bool
	baseDrop  float64
	status    string
	width     int
}

func NewModel(s *Sim, opts ModelOptions) (Model, error) {
	m := Model{
		sim:  s,
		keys: DefaultKeyMap,
		hub:  opts.Hub,
		logs: opts.Logs,
	}
	if opts.ScenarioPath != "" && opts.Rebuild != nil {
		ch, stop, err := WatchScenario(opts.ScenarioPath)
		if err != nil {
			return Model{}, err
		}
		m.rebuild = opts.Rebuild
		m.reload = ch
		m.stopWatch = stop
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.reload != nil {
		cmds = append(cmds, m.waitReload())
	}
	return tea.Batch(cmds...)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.sim.Scenario.Step(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitReload() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.reload; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		if !m.paused {
			m.sim.Tick()
			if m.hub != nil {
				m.hub.Broadcast(m.frames())
			}
		}
		return m, m.tick()

	case reloadMsg:
		if s, err := m.rebuild(); err != nil {
			m.status = "reload failed: " + err.Error()
		} else {
			m.sim = s
			if m.selected >= len(s.Devices) {
				m.selected = len(s.Devices) - 1
			}
			m.heavyLoss = false
			m.status = "scenario reloaded"
		}
		return m, m.waitReload()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dev := m.sim.Devices[m.selected]
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.stopWatch != nil {
			_ = m.stopWatch()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Next):
		m.selected = (m.selected + 1) % len(m.sim.Devices)

	case key.Matches(msg, m.keys.Prev):
		m.selected = (m.selected + len(m.sim.Devices) - 1) % len(m.sim.Devices)

	case key.Matches(msg, m.keys.ButtonA):
		dev.Inputs.PressA()
		m.status = dev.Name + " button A"

	case key.Matches(msg, m.keys.ButtonB):
		dev.Inputs.PressB()
		m.status = dev.Name + " button B"

	case key.Matches(msg, m.keys.Slide):
		if dev.Inputs.ToggleSlide() {
			m.status = dev.Name + " switch up, radio allowed"
		} else {
			m.status = dev.Name + " switch down, radio off"
		}

	case key.Matches(msg, m.keys.Loss):
		m.heavyLoss = !m.heavyLoss
		if m.heavyLoss {
			m.baseDrop = m.sim.Medium.Drop()
			m.sim.Medium.SetDrop(heavyDrop)
			m.status = fmt.Sprintf("heavy loss on, dropping %.0f%%", heavyDrop*100)
		} else {
			m.sim.Medium.SetDrop(m.baseDrop)
			m.status = "heavy loss off"
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "starting\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("illo sim"))
	b.WriteString("  " + m.sim.Scenario.Name)
	b.WriteString(faintStyle.Render(fmt.Sprintf("  %s  step %s  drop %.0f%%",
		fmtElapsed(m.sim.Elapsed()), m.sim.Scenario.Step(), m.sim.Medium.Drop()*100)))
	if m.hub != nil {
		if n := m.hub.Clients(); n > 0 {
			b.WriteString(faintStyle.Render(fmt.Sprintf("  %d viewers", n)))
		}
	}
	if m.paused {
		b.WriteString("  " + pausedStyle.Render("paused"))
	}
	b.WriteString("\n\n")

	for i, d := range m.sim.Devices {
		marker := "  "
		if i == m.selected {
			marker = selectedStyle.Render("▸") + " "
		}
		routine, mode := d.Active()
		row := fmt.Sprintf("%s%-14s %-8s %d  %s  %s",
			marker, d.Name, shortRoutine(routine), mode, dots(d.Ring.Frame()), airState(d))
		if i == m.selected {
			b.WriteString(selectedStyle.Render(row))
		} else {
			b.WriteString(row)
		}
		b.WriteString("\n")
	}

	if m.logs != nil {
		b.WriteString("\n")
		for _, line := range m.logs.Tail(6) {
			b.WriteString("  " + faintStyle.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("  " + m.status + "\n")
	}
	b.WriteString(m.helpLine() + "\n")
	return b.String()
}

func (m Model) helpLine() string {
	bindings := []key.Binding{
		m.keys.ButtonA, m.keys.ButtonB, m.keys.Slide, m.keys.Next,
		m.keys.Loss, m.keys.Pause, m.keys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, bind := range bindings {
		h := bind.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return faintStyle.Render("  " + strings.Join(parts, "  ·  "))
}

// frames snapshots every toy for the browser mirror.
func (m Model) frames() []web.Frame {
	out := make([]web.Frame, 0, len(m.sim.Devices))
	for _, d := range m.sim.Devices {
		routine, mode := d.Active()
		f := web.Frame{Device: d.Name, Routine: shortRoutine(routine), Mode: mode}
		if token, on := d.Radio.Current(); on {
			f.Token = token
		}
		for _, c := range d.Ring.Frame() {
			f.Pixels = append(f.Pixels, displayHex(c))
		}
		out = append(out, f)
	}
	return out
}

func airState(d *SimDevice) string {
	if token, on := d.Radio.Current(); on {
		return faintStyle.Render(token)
	}
	if d.Radio.Powered() {
		return faintStyle.Render("listening")
	}
	return faintStyle.Render("radio off")
}

func shortRoutine(name string) string {
	switch name {
	case "Dance Party":
		return "dance"
	case "Intergalactic Cruising":
		return "cruise"
	case "Meditate":
		return "meditate"
	}
	return strings.ToLower(name)
}

func dots(frame []color.RGBA) string {
	var b strings.Builder
	for _, c := range frame {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(displayHex(c)))
		b.WriteString(style.Render("●"))
	}
	return b.String()
}

func displayHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", boost(c.R), boost(c.G), boost(c.B))
}

func boost(v uint8) uint8 {
	w := uint16(v) * displayGain
	if w > 255 {
		w = 255
	}
	return uint8(w)
}

func fmtElapsed(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
