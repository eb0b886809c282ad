package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/futuroptimist/strider/internal/drive"
	"github.com/futuroptimist/strider/internal/walker"
)

const (
	width           = 80
	height          = 22
	historyCapacity = 600
	viewSpan        = 8.0 // meters of terrain visible around the avatar
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(45)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type TickMsg time.Time

// Model is the live side-view of a walking avatar.
type Model struct {
	w        *walker.Walker
	build    func() (*walker.Walker, error)
	constant *drive.Constant // nil unless the drive speed is adjustable

	t, dt   float64
	running bool
	canvas  *Canvas

	offsetHistory []float64
	speedHistory  []float64
	lastFrame     walker.Frame
	showHelp      bool
}

// NewModel wraps a walker for live viewing. build is called on reset to
// produce a fresh avatar; pass the constructor used for the original.
func NewModel(w *walker.Walker, dt float64, build func() (*walker.Walker, error), constant *drive.Constant) Model {
	return Model{
		w:             w,
		build:         build,
		constant:      constant,
		dt:            dt,
		running:       true,
		canvas:        NewCanvas(width, height),
		offsetHistory: make([]float64, 0, historyCapacity),
		speedHistory:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.w.Dispose()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "up", "k":
			if m.constant != nil {
				m.constant.Linear += 0.2
			}
		case "down", "j":
			if m.constant != nil && m.constant.Linear > 0.2 {
				m.constant.Linear -= 0.2
			}
		case "left", "h":
			if m.constant != nil {
				m.constant.Angular += 0.2
			}
		case "right", "l":
			if m.constant != nil {
				m.constant.Angular -= 0.2
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	frame := m.w.Step(m.t, m.dt)
	m.t += m.dt
	m.lastFrame = frame

	m.offsetHistory = append(m.offsetHistory, frame.Left.Offset)
	if len(m.offsetHistory) > historyCapacity {
		m.offsetHistory = m.offsetHistory[1:]
	}
	m.speedHistory = append(m.speedHistory, frame.LinearSpeed)
	if len(m.speedHistory) > historyCapacity {
		m.speedHistory = m.speedHistory[1:]
	}
}

func (m *Model) reset() {
	if m.build == nil {
		return
	}
	fresh, err := m.build()
	if err != nil {
		return
	}
	m.w.Dispose()
	m.w = fresh
	m.t = 0
	m.lastFrame = walker.Frame{}
	m.offsetHistory = m.offsetHistory[:0]
	m.speedHistory = m.speedHistory[:0]
}

// draw renders the terrain profile and rig joints into the braille canvas.
// The camera tracks the avatar along its own forward line.
func (m *Model) draw() {
	m.canvas.Clear()

	rig := m.w.Rig()
	field := m.w.Field()
	rootPos := rig.Root.Position

	cw, ch := width*2, height*4
	groundRow := float64(ch) * 0.75
	scale := float64(cw) / viewSpan

	baseHeight := field.HeightAt(rootPos.X, rootPos.Z)

	toScreen := func(along, worldY float64) (int, int) {
		x := int((along + viewSpan/2) * scale)
		y := int(groundRow - (worldY-baseHeight)*scale*0.6)
		return x, y
	}

	// Terrain slice through the avatar's position along its heading.
	yaw := rig.Root.Rotation.Y
	dirX, dirZ := math.Sin(yaw), math.Cos(yaw)
	prevX, prevY := -1, -1
	for px := 0; px < cw; px++ {
		along := float64(px)/scale - viewSpan/2
		wx := rootPos.X + dirX*along
		wz := rootPos.Z + dirZ*along
		h := field.HeightAt(wx, wz)
		sx, sy := toScreen(along, h)
		if prevX >= 0 {
			m.canvas.DrawLine(prevX, prevY, sx, sy)
		}
		prevX, prevY = sx, sy
	}

	// Rig joints. Feet are offset sideways from the heading, so project
	// their world position onto the view line.
	project := func(worldX, worldY, worldZ float64) (int, int) {
		along := (worldX-rootPos.X)*dirX + (worldZ-rootPos.Z)*dirZ
		return toScreen(along, worldY)
	}

	rx, ry := project(rootPos.X, rootPos.Y, rootPos.Z)
	m.canvas.DrawCircle(rx, ry, 3)

	pelvis := rig.Pelvis.WorldPosition()
	px, py := project(pelvis.X, pelvis.Y, pelvis.Z)
	m.canvas.Set(px, py)
	m.canvas.DrawLine(rx, ry, px, py)

	for _, foot := range []struct {
		x, y, z float64
	}{
		{rig.LeftFoot.WorldPosition().X, rig.LeftFoot.WorldPosition().Y, rig.LeftFoot.WorldPosition().Z},
		{rig.RightFoot.WorldPosition().X, rig.RightFoot.WorldPosition().Y, rig.RightFoot.WorldPosition().Z},
	} {
		fx, fy := project(foot.x, foot.y, foot.z)
		m.canvas.DrawLine(px, py, fx, fy)
		m.canvas.DrawCircle(fx, fy, 1)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	f := m.lastFrame
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("STRIDER") + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("WALKING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.offsetHistory) > 1 {
		chart := asciigraph.Plot(m.offsetHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Left foot offset"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(MetricLabel.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(MetricLabel.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.2f m/s", f.LinearSpeed)) + "\n")
	s.WriteString(MetricLabel.Render("Ground") + valueStyle.Render(fmt.Sprintf("%.2f m", f.GroundHeight)) + "\n")
	s.WriteString(MetricLabel.Render("State") + valueStyle.Render(string(f.Snapshot.LinearState)) + "\n")
	s.WriteString(MetricLabel.Render("Terrain") + valueStyle.Render(m.w.Field().Name()) + "\n")

	s.WriteString("\nBLEND WEIGHTS\n")
	w := f.Snapshot.Weights
	for _, row := range []struct {
		label  string
		weight float64
	}{
		{"idle", w.Idle}, {"walk", w.Walk}, {"run", w.Run},
		{"turn L", w.TurnLeft}, {"turn R", w.TurnRight},
	} {
		s.WriteString(fmt.Sprintf("%-8s %s %.2f\n", row.label, WeightBar(row.weight, 12), row.weight))
	}

	s.WriteString("\nCONTACT\n")
	s.WriteString(fmt.Sprintf("left  %s   right %s\n", contactDot(f.Left.InContact), contactDot(f.Right.InContact)))

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nT:Theme ↑↓:Speed ←→:Turn ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset walk               ║
║  Q        - Quit                     ║
║  Up/K     - Walk faster              ║
║  Down/J   - Walk slower              ║
║  Left/H   - Turn left                ║
║  Right/L  - Turn right               ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func contactDot(down bool) string {
	if down {
		return StatusRunning.Render("●")
	}
	return Subtle.Render("○")
}

// RunLive starts the live walk view.
func RunLive(w *walker.Walker, dt float64, build func() (*walker.Walker, error), constant *drive.Constant) error {
	_, err := tea.NewProgram(NewModel(w, dt, build, constant), tea.WithAltScreen()).Run()
	return err
}
