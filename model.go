package main

import (
	"fmt"
	"io"
	"strings"

	"go-pairs/internal/anim"
	"go-pairs/internal/audio"
	"go-pairs/internal/card"
	"go-pairs/internal/config"
	"go-pairs/internal/faces"
	"go-pairs/internal/game"
	"go-pairs/internal/layout"
	"go-pairs/internal/match"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // mismatch
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // match
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	faceStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	backStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Align(lipgloss.Center, lipgloss.Center)
	cursorColor = lipgloss.Color("11")
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// Lines used by the title, status, progress, message and help rows.
	chromeHeight = 7
	cellSpacing  = 1
)

// charGrid sizes cards in terminal cells. Cells are about twice as tall as
// wide, so a 2:3 card comes out near 4:3 in characters.
func charGrid() layout.Grid {
	return layout.Grid{
		Padding:     0,
		AspectRatio: 4.0 / 3.0,
		MinCell:     3,
		MaxCell:     12,
	}
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Flip    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flip, k.Restart, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, {k.Flip, k.Restart, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Flip:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "flip")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// model is the terminal front end. It is the session's scene loader and
// observer, and owns the scheduler that feeds timers back into Update.
type model struct {
	session *game.Session
	sched   *teaScheduler
	faces   []string
	logger  *zap.Logger

	keys     keyMap
	help     help.Model
	progress progress.Model

	scene   game.Scene
	cursor  int
	width   int
	height  int
	message string
}

func newModel(cfg config.Config, faceSet []string, bell io.Writer, logger *zap.Logger) (*model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &model{
		sched:    &teaScheduler{},
		faces:    faceSet,
		logger:   logger,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		width:    defaultWidth,
		height:   defaultHeight,
	}

	cues := audio.NewCues(m.sched, bell, logger)
	m.session = game.NewSession(game.Collaborators{
		Animator:  anim.NewTimed(m.sched, cfg.FlipDuration),
		Audio:     cues,
		Layout:    charGrid(),
		Scenes:    m,
		Scheduler: m.sched,
		Observer:  m,
	}, game.Options{
		Spacing: cellSpacing,
		Bounds:  m.bounds(),
		Seed:    cfg.Seed,
		Engine: match.Options{
			RevealDelay:     cfg.RevealDelay,
			AwaitMatchSound: cfg.AwaitMatchSound,
		},
	}, logger)

	if err := m.session.Start(cfg.Rows, cfg.Columns); err != nil {
		return nil, err
	}
	return m, nil
}

// Load switches the visible scene.
func (m *model) Load(scene game.Scene) {
	m.scene = scene
	if scene == game.SceneBoard {
		m.cursor = 0
		m.message = ""
	}
}

func (m *model) Outcome(o match.Outcome, first, second *card.Card) {
	if o == match.OutcomeMatch {
		m.message = greenStyle.Render("Match!")
	} else {
		m.message = redStyle.Render("No match.")
	}
}

func (m *model) ScoreChanged(int) {}

func (m *model) GameOver(score int) {
	m.message = ""
}

func (m *model) bounds() layout.Rect {
	h := m.height - chromeHeight
	if h < 1 {
		h = 1
	}
	return layout.Rect{Width: float64(m.width), Height: float64(h)}
}

func (m *model) Init() tea.Cmd {
	return m.sched.Flush()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerFiredMsg:
		msg.fn()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(40, max(10, msg.Width-4))
		if err := m.session.Relayout(m.bounds()); err != nil {
			m.logger.Warn("relayout failed", zap.Error(err))
		}
	case tea.KeyMsg:
		m.logger.Debug("key", zap.String("key", msg.String()))
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			m.restart()
		case m.scene == game.SceneGameOver:
			if key.Matches(msg, m.keys.Flip) {
				m.restart()
			}
		case key.Matches(msg, m.keys.Up):
			m.move(-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.move(1, 0)
		case key.Matches(msg, m.keys.Left):
			m.move(0, -1)
		case key.Matches(msg, m.keys.Right):
			m.move(0, 1)
		case key.Matches(msg, m.keys.Flip):
			m.session.OnCellActivated(m.cursor)
		}
	}
	return m, m.sched.Flush()
}

func (m *model) restart() {
	if err := m.session.Restart(); err != nil {
		m.logger.Error("restart failed", zap.Error(err))
		m.message = redStyle.Render(err.Error())
	}
}

func (m *model) move(dr, dc int) {
	r := m.session.Round
	if r == nil {
		return
	}
	row := m.cursor/r.Columns + dr
	col := m.cursor%r.Columns + dc
	if row < 0 || row >= r.Rows || col < 0 || col >= r.Columns {
		return
	}
	m.cursor = row*r.Columns + col
}

func (m *model) View() string {
	if m.session.Round == nil {
		return ""
	}
	if m.scene == game.SceneGameOver {
		return m.gameOverView()
	}

	r := m.session.Round
	found, total := r.Score.Progress()

	var b strings.Builder
	b.WriteString(boldStyle.Render(fmt.Sprintf("PAIRS %dx%d", r.Rows, r.Columns)))
	b.WriteString("\n\n")
	b.WriteString(m.renderBoard())
	b.WriteString("\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("SCORE: %d | PAIRS: %d/%d | MISSES: %d",
		r.Score.Score(), found, total, r.Score.MismatchCount)))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(r.Score.Fraction()))
	b.WriteString("\n")
	b.WriteString(m.message)
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *model) renderBoard() string {
	r := m.session.Round
	rows := make([]string, 0, 2*r.Rows)
	for row := 0; row < r.Rows; row++ {
		cells := make([]string, 0, 2*r.Columns)
		for col := 0; col < r.Columns; col++ {
			if col > 0 {
				cells = append(cells, strings.Repeat(" ", cellSpacing))
			}
			cells = append(cells, m.renderCard(row*r.Columns+col))
		}
		if row > 0 {
			rows = append(rows, "")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *model) renderCard(i int) string {
	r := m.session.Round
	c := r.Cards[i]

	w, h := 1, 1
	if i < len(r.Placements) {
		w = max(int(r.Placements[i].Width)-2, 1)
		h = max(int(r.Placements[i].Height)-2, 1)
	}

	style := cardStyle.Width(w).Height(h)
	if i == m.cursor {
		style = style.Border(lipgloss.ThickBorder()).BorderForeground(cursorColor)
	}
	if c.Animating() {
		style = style.Faint(true)
	}

	switch {
	case c.State() == card.Removed:
		return style.Border(lipgloss.HiddenBorder()).Render("")
	case c.FrontVisible():
		return style.Render(faceStyle.Render(faces.ForValue(m.faces, int(c.Value()))))
	default:
		back := strings.TrimSuffix(strings.Repeat(strings.Repeat("░", w)+"\n", h), "\n")
		return style.Render(backStyle.Render(back))
	}
}

func (m *model) gameOverView() string {
	r := m.session.Round
	hist := m.session.History

	display := greenStyle.Render(fmt.Sprintf("Round complete! Final score: %d", r.Score.Score()))
	display += fmt.Sprintf("\nMisses: %d", r.Score.MismatchCount)
	if hist.GotHighScore() {
		display += "\n" + scoreStyle.Render("New high score!")
	}
	if hist.Rounds() > 1 {
		display += "\nTop scores this session:"
		for _, entry := range hist.GetNScoreEntries(5) {
			display += fmt.Sprintf("\n  * %d on %dx%d (%d misses) at %s",
				entry.Score, entry.Rows, entry.Columns, entry.Mismatches, entry.Finished.Format("15:04:05"))
		}
	}
	display += "\n\nPress r to play again, q to quit.\n"
	return display
}
