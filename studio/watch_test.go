package studio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatchDetectsWrites(t *testing.T) {
	s := newTestStudio(t)
	dir := t.TempDir()

	var mu sync.Mutex
	var changed []string
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, dir, func(path string) {
			mu.Lock()
			changed = append(changed, path)
			mu.Unlock()
		})
	}()

	// Let the watcher register before writing.
	time.Sleep(100 * time.Millisecond)
	target := filepath.Join(dir, "piece.dot")
	if err := os.WriteFile(target, []byte("digraph { a; }"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		mu.Lock()
		n := len(changed)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("change never reported")
		case <-time.After(20 * time.Millisecond):
		}
	}

	mu.Lock()
	got := changed[0]
	mu.Unlock()
	if got != target {
		t.Errorf("changed path = %q, want %q", got, target)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Watch returned %v, want context.Canceled", err)
	}
}

func TestWatchDebouncesBursts(t *testing.T) {
	s := newTestStudio(t)
	dir := t.TempDir()

	var mu sync.Mutex
	count := 0
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.Watch(ctx, dir, func(path string) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	time.Sleep(100 * time.Millisecond)

	target := filepath.Join(dir, "burst.txt")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(target, []byte("tick"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	// All five writes land inside one debounce window.
	time.Sleep(600 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("burst reported %d times, want 1", count)
	}
}

func TestWatchIgnoresTempFiles(t *testing.T) {
	s := newTestStudio(t)
	dir := t.TempDir()

	var mu sync.Mutex
	count := 0
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.Watch(ctx, dir, func(path string) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	time.Sleep(100 * time.Millisecond)

	for _, name := range []string{".hidden", "save~", "buffer.swp", "atomic.tmp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(600 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("temp files reported %d changes, want 0", count)
	}
}

func TestWatchMissingDir(t *testing.T) {
	s := newTestStudio(t)
	err := s.Watch(context.Background(), "/does/not/exist", func(string) {})
	if err == nil {
		t.Error("watching a missing directory should fail")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atelier.yaml")
	content := `
output_dir: renders
width: 800
height: 600
jobs: 2
seed: 7
sources:
  - pieces/a.dot
  - pieces/b.txt
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.OutputDir != "renders" || cfg.Width != 800 || cfg.Jobs != 2 || cfg.Seed != 7 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Sources) != 2 {
		t.Errorf("sources = %v", cfg.Sources)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	def := DefaultConfig()
	if cfg.OutputDir != def.OutputDir || cfg.Width != def.Width || cfg.Jobs != def.Jobs {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadConfigAppliesDefaultsToPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(path, []byte("jobs: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Jobs != 8 {
		t.Errorf("Jobs = %d, want 8", cfg.Jobs)
	}
	if cfg.Width != DefaultConfig().Width {
		t.Errorf("Width = %d, want default", cfg.Width)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("width: -3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); !errors.Is(err, ErrBadConfig) {
		t.Errorf("LoadConfig = %v, want ErrBadConfig", err)
	}
}
