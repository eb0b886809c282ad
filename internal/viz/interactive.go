package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/futuroptimist/strider/internal/config"
	"github.com/futuroptimist/strider/internal/drive"
	"github.com/futuroptimist/strider/internal/terrain"
	"github.com/futuroptimist/strider/internal/walker"
)

var terrainInfo = map[string]string{
	"flat":   "level ground",
	"ramp":   "constant slope",
	"stairs": "quantized treads",
	"hills":  "rolling sines",
}

const (
	stateMenu = iota
	stateConfig
	stateWalk
)

type app struct {
	state, cursor int
	terrains      []string
	selected      string

	params      map[string]float64
	paramNames  []string
	paramCursor int

	live Model
}

func NewInteractiveApp() *app {
	return &app{
		state:    stateMenu,
		terrains: terrain.Names(),
		params: map[string]float64{
			"speed": config.DefaultSpeed, "turn": 0.0, "dt": config.DefaultDt,
		},
		paramNames: []string{"speed", "turn", "dt"},
	}
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	default:
		if a.state == stateWalk {
			newLive, cmd := a.live.Update(msg)
			a.live = newLive.(Model)
			return a, cmd
		}
	}
	return a, nil
}

func (a app) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.state {
	case stateMenu:
		return a.menuKey(msg)
	case stateConfig:
		return a.configKey(msg)
	case stateWalk:
		if msg.String() == "escape" {
			a.live.w.Dispose()
			a.state = stateMenu
			return a, nil
		}
		newLive, cmd := a.live.Update(msg)
		a.live = newLive.(Model)
		return a, cmd
	}
	return a, nil
}

func (a app) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.terrains)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.selected = a.terrains[a.cursor]
		a.state, a.paramCursor = stateConfig, 0
	}
	return a, nil
}

func (a app) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "escape":
		a.state = stateMenu
	case "up", "k":
		if a.paramCursor > 0 {
			a.paramCursor--
		}
	case "down", "j":
		if a.paramCursor < len(a.paramNames)-1 {
			a.paramCursor++
		}
	case "left", "h":
		a.adjustParam(-1)
	case "right", "l":
		a.adjustParam(1)
	case "s", "enter":
		cmd := a.start()
		return a, cmd
	}
	return a, nil
}

func (a *app) adjustParam(dir float64) {
	name := a.paramNames[a.paramCursor]
	step := 0.2
	if name == "dt" {
		step = 0.004
	}
	v := a.params[name] + dir*step
	switch name {
	case "speed":
		if v < 0 {
			v = 0
		}
	case "dt":
		if v < 0.004 {
			v = 0.004
		}
	}
	a.params[name] = v
}

func (a *app) start() tea.Cmd {
	src := drive.NewConstant(a.params["speed"], a.params["turn"])
	build := func() (*walker.Walker, error) {
		field, err := terrain.NewField(a.selected)
		if err != nil {
			return nil, err
		}
		return walker.New(field, src, walker.Options{})
	}

	w, err := build()
	if err != nil {
		return nil
	}
	a.live = NewModel(w, a.params["dt"], build, src)
	a.state = stateWalk
	return a.live.Init()
}

func (a app) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case stateConfig:
		return a.viewConfig()
	case stateWalk:
		return a.live.View()
	}
	return ""
}

func (a app) viewMenu() string {
	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	b.WriteString("\n\n    " + h.Render("STRIDER") + "\n")
	b.WriteString("    " + Subtle.Render("avatar locomotion sandbox") + "\n")
	b.WriteString("    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, name := range a.terrains {
		desc := terrainInfo[name]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				MetricValue.Render("▸"),
				lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-10s", name)),
				Subtle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n",
				Subtle.Render(fmt.Sprintf("%-10s", name)),
				Subtle.Render(desc)))
		}
	}
	b.WriteString("\n    " + KeyHint.Render("j/k navigate · enter select · q quit") + "\n")
	return b.String()
}

func (a app) viewConfig() string {
	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	b.WriteString("\n\n    " + h.Render(strings.ToUpper(a.selected)) + "\n")
	b.WriteString("    " + Subtle.Render(terrainInfo[a.selected]) + "\n")
	b.WriteString("    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, name := range a.paramNames {
		line := fmt.Sprintf("%-8s %8.3f", name, a.params[name])
		if i == a.paramCursor {
			b.WriteString("    " + MetricValue.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("      " + Subtle.Render(line) + "\n")
		}
	}
	b.WriteString("\n    " + KeyHint.Render("j/k select · h/l adjust · s start · esc back") + "\n")
	return b.String()
}

// RunInteractive starts the full-screen terrain picker and walk view.
func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}
