package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/coilforce/internal/analysis"
	"github.com/san-kum/coilforce/internal/dynamo"
)

const (
	barWidth   = 40
	plotHeight = 10
	plotWidth  = 60
)

// pointMsg carries the outcome of one height evaluation.
type pointMsg struct {
	point dynamo.HeightPoint
	err   error
}

// Model steps a height sweep one height per command.
type Model struct {
	ctx      context.Context
	analyzer *analysis.Analyzer
	cfg      analysis.HeightSweepConfig
	title    string

	next    int
	points  []dynamo.HeightPoint
	err     error
	running bool
	pending bool

	started time.Time
	elapsed time.Duration
}

// NewModel prepares a live sweep over cfg's height range. Evaluation starts
// when the program calls Init.
func NewModel(ctx context.Context, a *analysis.Analyzer, cfg analysis.HeightSweepConfig, title string) Model {
	return Model{
		ctx:      ctx,
		analyzer: a,
		cfg:      cfg,
		title:    title,
		next:     cfg.Start,
		points:   make([]dynamo.HeightPoint, 0, max(cfg.Stop-cfg.Start, 0)),
		running:  true,
		pending:  true,
	}
}

func (m Model) Init() tea.Cmd {
	if m.total() < 1 {
		return func() tea.Msg {
			return pointMsg{err: fmt.Errorf("%w: empty height range [%d, %d)", dynamo.ErrDegenerateSweep, m.cfg.Start, m.cfg.Stop)}
		}
	}
	return m.evaluate(m.next)
}

// evaluate runs the single-height sweep [h, h+1) off the UI goroutine.
func (m Model) evaluate(h int) tea.Cmd {
	ctx, a, cfg := m.ctx, m.analyzer, m.cfg
	cfg.Start, cfg.Stop, cfg.OnPoint = h, h+1, nil
	return func() tea.Msg {
		res, err := a.HeightSweep(ctx, cfg)
		if err != nil {
			return pointMsg{err: err}
		}
		return pointMsg{point: res.Points[0]}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.started.IsZero() {
		m.started = time.Now()
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running && !m.pending && !m.Done() {
				m.pending = true
				return m, m.evaluate(m.next)
			}
		case "t":
			NextTheme()
		}

	case pointMsg:
		m.pending = false
		if msg.err != nil {
			m.err = msg.err
			m.elapsed = time.Since(m.started)
			return m, nil
		}
		m.points = append(m.points, msg.point)
		m.next = msg.point.Height + 1
		if m.Done() {
			m.elapsed = time.Since(m.started)
			return m, nil
		}
		if m.running {
			m.pending = true
			return m, m.evaluate(m.next)
		}
	}
	return m, nil
}

func (m Model) total() int { return m.cfg.Stop - m.cfg.Start }

// Done reports whether every height finished or the sweep failed.
func (m Model) Done() bool {
	return m.err != nil || len(m.points) >= m.total()
}

func (m Model) Err() error { return m.err }

// Result returns the heights completed so far.
func (m Model) Result() *dynamo.HeightSweepResult {
	pts := make([]dynamo.HeightPoint, len(m.points))
	copy(pts, m.points)
	return &dynamo.HeightSweepResult{Points: pts}
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return statusStyle(CurrentTheme.Error).Render("FAILED")
	case m.Done():
		return statusStyle(CurrentTheme.Success).Render(fmt.Sprintf("DONE in %s", m.elapsed.Round(time.Millisecond)))
	case !m.running:
		return statusStyle(CurrentTheme.Warning).Render("PAUSED")
	default:
		return statusStyle(CurrentTheme.Success).Render("RUNNING")
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle().Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	done, total := len(m.points), m.total()
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	s.WriteString(fmt.Sprintf("%s %d/%d\n\n", ProgressBar(pct, barWidth), done, total))

	if done > 0 {
		last := m.points[done-1]
		s.WriteString(Row("Height", fmt.Sprintf("%d", last.Height)) + "\n")
		s.WriteString(Row("Gap", fmt.Sprintf("%.4g m", last.Gap)) + "\n")
		s.WriteString(Row("Distance", fmt.Sprintf("%.4g m", last.Z)) + "\n")
		s.WriteString(Row("Coefficient", fmt.Sprintf("%.4f uN/A", last.Coefficient)) + "\n")
	}

	if done > 1 {
		coeffs := make([]float64, done)
		for i, p := range m.points {
			coeffs[i] = p.Coefficient
		}
		chart := asciigraph.Plot(coeffs,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("force constant (uN/A) vs height"))
		s.WriteString(graphStyle().Render(chart) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + statusStyle(CurrentTheme.Error).Render(m.err.Error()) + "\n")
	}

	s.WriteString(keyHintStyle().Render("SP:Pause T:Theme Q:Quit"))
	return panelStyle().Render(s.String())
}
