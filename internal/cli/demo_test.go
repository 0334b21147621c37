package cli

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func newTestDemo(t *testing.T, opts demoOpts) demoModel {
	t.Helper()
	s, err := loadDemoScene("")
	if err != nil {
		t.Fatalf("loadDemoScene() error: %v", err)
	}
	sess, err := newSession(s, log.New(io.Discard), opts.debug)
	if err != nil {
		t.Fatalf("newSession() error: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Color = false
	return newDemoModel(sess, opts, cfg)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m demoModel, msg tea.Msg) (demoModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(demoModel), cmd
}

func TestLoadDemoScene(t *testing.T) {
	s, err := loadDemoScene("")
	if err != nil {
		t.Fatalf("loadDemoScene() error: %v", err)
	}
	if s.Name != "cards" {
		t.Errorf("Name = %q, want cards", s.Name)
	}
	if len(s.Frames) != 3 {
		t.Errorf("frames = %d, want 3", len(s.Frames))
	}
}

func TestDemoNavigation(t *testing.T) {
	m := newTestDemo(t, demoOpts{fps: 60})

	m, _ = update(m, key("right"))
	if m.sess.frame != 1 {
		t.Fatalf("frame = %d after →, want 1", m.sess.frame)
	}
	if m.last.Started == 0 {
		t.Error("moving to the shuffle frame should start animations")
	}

	m, _ = update(m, key("space"))
	if m.sess.frame != 2 {
		t.Errorf("frame = %d after space, want 2", m.sess.frame)
	}

	m, _ = update(m, key("right"))
	if m.sess.frame != 0 {
		t.Errorf("frame = %d, want wrap to 0", m.sess.frame)
	}

	m, _ = update(m, key("left"))
	if m.sess.frame != 2 {
		t.Errorf("frame = %d after ←, want wrap to 2", m.sess.frame)
	}
}

func TestDemoTick(t *testing.T) {
	m := newTestDemo(t, demoOpts{fps: 60})
	m, _ = update(m, key("right"))

	before := m.sess.loop.Steps()
	m, cmd := update(m, demoTickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.sess.loop.Steps() != before+1 {
		t.Errorf("loop steps = %d, want %d", m.sess.loop.Steps(), before+1)
	}

	for i := 0; i < maxSettleSteps && !m.sess.loop.Idle(); i++ {
		m, _ = update(m, demoTickMsg(time.Now()))
	}
	if !m.sess.loop.Idle() {
		t.Error("transition should settle")
	}
}

func TestDemoAuto(t *testing.T) {
	m := newTestDemo(t, demoOpts{fps: 60, auto: true})
	m.frameDur = 100 * time.Millisecond

	for i := 0; i < 10; i++ {
		m, _ = update(m, demoTickMsg(time.Now()))
	}
	if m.sess.frame != 1 {
		t.Errorf("frame = %d, want auto advance to 1", m.sess.frame)
	}
}

func TestDemoDebugToggle(t *testing.T) {
	m := newTestDemo(t, demoOpts{fps: 60})

	m, _ = update(m, key("d"))
	if !m.sess.flipper.Options().Debug {
		t.Fatal("d should enable debug mode")
	}
	if !strings.Contains(m.View(), "debug") {
		t.Error("view should flag debug mode")
	}

	m, _ = update(m, key("right"))
	if !m.last.DebugOnly || m.last.Started != 0 {
		t.Errorf("report = %+v, want a debug-only transition", m.last)
	}

	m, _ = update(m, key("d"))
	if m.sess.flipper.Options().Debug {
		t.Error("second d should disable debug mode")
	}
}

func TestDemoView(t *testing.T) {
	m := newTestDemo(t, demoOpts{fps: 60})

	view := m.View()
	for _, want := range []string{"cards", "frame 1/3", "stack", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestDemoQuit(t *testing.T) {
	m := newTestDemo(t, demoOpts{fps: 60})

	m, cmd := update(m, key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if !m.quitting || m.View() != "" {
		t.Error("model should be quitting with an empty view")
	}
}
