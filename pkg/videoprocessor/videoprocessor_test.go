package videoprocessor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ZacxDev/panel-splitter/internal/config"
	"github.com/ZacxDev/panel-splitter/pkg/types"
	"github.com/pkg/errors"
)

// fakeRunner pretends to be ffmpeg: it writes every .mp4 output named in the
// arguments, except those whose path contains one of failOn.
type fakeRunner struct {
	mu     sync.Mutex
	calls  [][]string
	failOn []string
}

func (r *fakeRunner) Run(_ context.Context, args []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, args)
	r.mu.Unlock()

	for i, arg := range args {
		if !strings.HasSuffix(arg, ".mp4") || (i > 0 && args[i-1] == "-i") {
			continue
		}
		for _, f := range r.failOn {
			if strings.Contains(arg, f) {
				return errors.New("exit status 1")
			}
		}
		if err := os.WriteFile(arg, []byte("video"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	source := filepath.Join(dir, "org8k.mkv")
	if err := os.WriteFile(source, []byte("master"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := config.Default()
	cfg.InputPath = source
	cfg.OutputDir = filepath.Join(dir, "videos")
	cfg.IntermediatePath = filepath.Join(dir, "work", "tmp.mp4")
	cfg.Displays = []types.Resolution{{Code: "2k", Width: 1920, Height: 1080}}
	cfg.Concurrency = 2
	return &cfg
}

func TestSplitPanels(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{failOn: []string{filepath.Join("2k", "2-3.mp4")}}

	report, err := SplitPanels(context.Background(), cfg, SplitOptions{Runner: runner})
	if err != nil {
		t.Fatalf("SplitPanels: %v", err)
	}
	if report.Succeeded != 16 || report.Failed != 1 {
		t.Fatalf("got %d succeeded, %d failed; want 16, 1", report.Succeeded, report.Failed)
	}
	if report.TrimSkipped {
		t.Fatal("first run should trim")
	}
	if len(runner.calls) != 18 {
		t.Fatalf("got %d ffmpeg calls, want 18 (trim + 17 panels)", len(runner.calls))
	}
	for _, p := range []string{
		filepath.Join(cfg.OutputDir, "2k", "4-4.mp4"),
		filepath.Join(cfg.OutputDir, "hd", "1-1.mp4"),
		cfg.IntermediatePath,
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s: %v", p, err)
		}
	}

	cfg.FailOnJobError = true
	report, err = SplitPanels(context.Background(), cfg, SplitOptions{Runner: runner})
	if !errors.Is(err, ErrJobsFailed) {
		t.Fatalf("expected ErrJobsFailed, got %v", err)
	}
	if !report.TrimSkipped {
		t.Fatal("second run should reuse the intermediate")
	}
	if len(runner.calls) != 18+17 {
		t.Fatalf("trim should not run again, got %d calls", len(runner.calls))
	}
}

func TestSplitPanels_ConfigErrorRunsNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Displays = []types.Resolution{
		{Code: "2k", Width: 1920, Height: 1080},
		{Code: "2k", Width: 3840, Height: 2160},
	}
	runner := &fakeRunner{}

	_, err := SplitPanels(context.Background(), cfg, SplitOptions{Runner: runner})
	var cfgErr *types.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("no subprocess may run on a config error, got %d", len(runner.calls))
	}
}

func TestSplitPanels_TrimFailureIsFatal(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{failOn: []string{"tmp.mp4"}}

	report, err := SplitPanels(context.Background(), cfg, SplitOptions{Runner: runner})
	var trErr *types.TranscodeError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TranscodeError, got %v", err)
	}
	if report != nil {
		t.Fatal("no report when the trim fails")
	}
	if len(runner.calls) != 1 {
		t.Fatalf("no panel may run after a failed trim, got %d calls", len(runner.calls))
	}
}

func TestPlanPanels_DefaultLayout(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	jobs, err := PlanPanels(&cfg)
	if err != nil {
		t.Fatalf("PlanPanels: %v", err)
	}
	// 8k 16x16, 4k 8x8, 2k 4x4, plus the hd panel
	if len(jobs) != 256+64+16+1 {
		t.Fatalf("got %d jobs, want 337", len(jobs))
	}
	codes := jobs.Codes()
	if strings.Join(codes, ",") != "8k,4k,2k,hd" {
		t.Fatalf("unexpected code order %v", codes)
	}
}
