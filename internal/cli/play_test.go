package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flipkit/pkg/errors"
)

const shuffleScene = "../../pkg/scene/testdata/shuffle.toml"

func quietContext() context.Context {
	return withLogger(context.Background(), newLogger(io.Discard, log.InfoLevel))
}

func TestRunPlay(t *testing.T) {
	var out bytes.Buffer
	res, err := runPlay(quietContext(), shuffleScene, playOpts{fps: 60}, DefaultConfig(), &out)
	if err != nil {
		t.Fatalf("runPlay() error: %v", err)
	}

	if len(res.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(res.rows))
	}
	row := res.rows[0]
	if row.frame != 1 {
		t.Errorf("frame = %d, want 1", row.frame)
	}
	if row.report.Started != 1 {
		t.Errorf("Started = %d, want 1 (only a moves)", row.report.Started)
	}
	if row.report.Appeared != 1 || row.report.Exited != 1 {
		t.Errorf("Appeared, Exited = %d, %d, want 1, 1", row.report.Appeared, row.report.Exited)
	}
	if row.steps == 0 || row.steps >= maxSettleSteps {
		t.Errorf("steps = %d, want a settled transition", row.steps)
	}
	if res.stats.Completed < 1 {
		t.Errorf("stats.Completed = %d, want at least 1", res.stats.Completed)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed without --print, got %q", out.String())
	}
}

func TestRunPlayPrint(t *testing.T) {
	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.Color = false

	if _, err := runPlay(quietContext(), shuffleScene, playOpts{fps: 30, print: true}, cfg, &out); err != nil {
		t.Fatalf("runPlay() error: %v", err)
	}
	if !strings.Contains(out.String(), "█") {
		t.Errorf("printed layout should contain filled cells:\n%s", out.String())
	}
}

func TestRunPlayDebug(t *testing.T) {
	res, err := runPlay(quietContext(), shuffleScene, playOpts{fps: 60, debug: true}, DefaultConfig(), io.Discard)
	if err != nil {
		t.Fatalf("runPlay() error: %v", err)
	}
	rep := res.rows[0].report
	if !rep.DebugOnly {
		t.Error("DebugOnly should be set")
	}
	if rep.Started != 0 {
		t.Errorf("Started = %d, want 0 in debug mode", rep.Started)
	}
}

func TestRunPlayFrames(t *testing.T) {
	dir := t.TempDir()
	res, err := runPlay(quietContext(), shuffleScene, playOpts{fps: 30, frames: dir, scale: 1}, DefaultConfig(), io.Discard)
	if err != nil {
		t.Fatalf("runPlay() error: %v", err)
	}

	want := 1 + res.rows[0].steps
	if res.written != want {
		t.Errorf("written = %d, want %d", res.written, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_0000.png")); err != nil {
		t.Errorf("first frame missing: %v", err)
	}
}

func TestRunPlayMissingScene(t *testing.T) {
	_, err := runPlay(quietContext(), filepath.Join(t.TempDir(), "nope.toml"), playOpts{}, DefaultConfig(), io.Discard)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSummaryTable(t *testing.T) {
	res := &playResult{rows: []playRow{{frame: 1, name: "shuffle", steps: 12}, {frame: 2}}}
	got := summaryTable(res)

	for _, want := range []string{"Frame", "Animated", "shuffle", "12", "abandoned"} {
		if !strings.Contains(got, want) {
			t.Errorf("summaryTable() missing %q:\n%s", want, got)
		}
	}
}
