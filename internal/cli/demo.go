package cli

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flipkit/pkg/flip"
	"github.com/matzehuels/flipkit/pkg/render/term"
	"github.com/matzehuels/flipkit/pkg/scene"
)

//go:embed demo.toml
var demoScene []byte

// Demo styles
var (
	demoFrameStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	demoHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	demoWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	demoErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// demoOpts holds the command-line flags for the demo command.
type demoOpts struct {
	fps   int
	auto  bool
	debug bool
}

// demoCommand creates the demo command, an interactive terminal player.
func (c *CLI) demoCommand() *cobra.Command {
	var opts demoOpts

	cmd := &cobra.Command{
		Use:   "demo [scene]",
		Short: "Play a scene interactively in the terminal",
		Long: `Demo plays a scene in the terminal. Space or → moves to the next frame,
← to the previous one, d toggles debug mode and q quits. Without a scene a
built-in one is played.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("fps") {
				opts.fps = c.config.FPS
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runDemo(cmd.Context(), path, opts, c.config)
		},
	}

	cmd.Flags().IntVar(&opts.fps, "fps", defaultFPS, "frames per second")
	cmd.Flags().BoolVar(&opts.auto, "auto", false, "advance frames automatically")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "start in debug mode")

	return cmd
}

// loadDemoScene loads path, or the built-in scene when path is empty.
func loadDemoScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.Decode(bytes.NewReader(demoScene), "toml")
	}
	return scene.Load(path)
}

func runDemo(ctx context.Context, path string, opts demoOpts, cfg Config) error {
	logger := loggerFromContext(ctx)

	s, err := loadDemoScene(path)
	if err != nil {
		return err
	}
	logger.Debugf("Playing %s interactively at %d fps", s.Name, opts.fps)

	// The engine logs into the alt screen otherwise.
	sess, err := newSession(s, log.New(io.Discard), opts.debug)
	if err != nil {
		return err
	}

	m := newDemoModel(sess, opts, cfg)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// demoModel - bubbletea player
// =============================================================================

// demoTickMsg advances the animation clock by one frame.
type demoTickMsg time.Time

// demoModel steps a session on a simulated clock, one loop step per tick.
type demoModel struct {
	sess     *session
	term     term.Options
	interval time.Duration
	now      time.Time

	auto     bool
	hold     time.Duration
	frameDur time.Duration

	last     flip.Report
	err      error
	quitting bool
}

func newDemoModel(sess *session, opts demoOpts, cfg Config) demoModel {
	fps := opts.fps
	if fps <= 0 {
		fps = defaultFPS
	}
	return demoModel{
		sess:     sess,
		term:     term.Options{Columns: cfg.Columns, Color: cfg.Color},
		interval: time.Second / time.Duration(fps),
		now:      time.Now(),
		auto:     opts.auto,
		frameDur: sess.scene.FrameDuration() + time.Second,
	}
}

func (m demoModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return demoTickMsg(t) })
}

func (m demoModel) Init() tea.Cmd {
	return m.tick()
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ", "space", "right", "l", "n":
			m = m.advance(1)
		case "left", "h", "p":
			m = m.advance(-1)
		case "d":
			opts := m.sess.flipper.Options()
			opts.Debug = !opts.Debug
			m.sess.flipper.SetOptions(opts)
		case "a":
			m.auto = !m.auto
			m.hold = 0
		}
	case demoTickMsg:
		m = m.step()
		return m, m.tick()
	case tea.WindowSizeMsg:
		if cols := msg.Width - 2; cols > 0 && cols < m.term.Columns {
			m.term.Columns = cols
		}
	}
	return m, nil
}

// step advances the clock by one frame interval.
func (m demoModel) step() demoModel {
	m.now = m.now.Add(m.interval)
	m.sess.loop.Step(m.now)
	if m.auto {
		m.hold += m.interval
		if m.hold >= m.frameDur && m.sess.loop.Idle() {
			m = m.advance(1)
		}
	}
	return m
}

// advance transitions to the frame delta steps away, wrapping around.
func (m demoModel) advance(delta int) demoModel {
	n := m.sess.frames()
	if n < 2 {
		return m
	}
	next := ((m.sess.frame+delta)%n + n) % n
	m.last, m.err = m.sess.goTo(next)
	m.hold = 0
	return m
}

func (m demoModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	s := m.sess.scene
	f := s.Frames[m.sess.frame]

	b.WriteString(StyleTitle.Render(s.Name))
	b.WriteString("  ")
	frame := fmt.Sprintf("frame %d/%d", m.sess.frame+1, m.sess.frames())
	if f.Name != "" {
		frame += " · " + f.Name
	}
	b.WriteString(demoFrameStyle.Render(frame))
	b.WriteString("\n\n")

	b.WriteString(term.Render(m.sess.doc, m.term))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(demoErrStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.last.ID != "" {
		b.WriteString(StyleDim.Render(fmt.Sprintf("transition %s: %d animated · %d skipped · %d appeared · %d exited · %d running",
			m.last.ID, m.last.Started, m.last.Skipped, m.last.Appeared, m.last.Exited, m.sess.flipper.Registry().Len())))
		b.WriteString("\n")
	}
	if m.sess.flipper.Options().Debug {
		b.WriteString(demoWarnStyle.Render("debug: transitions stop at their first frame"))
		b.WriteString("\n")
	}

	help := "space/→ next  ← prev  d debug  a auto  q quit"
	if m.auto {
		help += "  (auto)"
	}
	b.WriteString(demoHelpStyle.Render(help))
	return b.String()
}
