// Package studio batches the atelier pipelines: it maps source files
// to render jobs, runs them with a bounded worker group, records the
// results in the gallery, and re-renders on file changes.
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/etudelab/atelier"
	"github.com/etudelab/atelier/compose"
	"github.com/etudelab/atelier/dot"
	"github.com/etudelab/atelier/gallery"
	"github.com/etudelab/atelier/score"
)

// ErrUnknownKind is returned for job kinds the studio cannot render.
var ErrUnknownKind = errors.New("studio: unknown job kind")

// Job is one unit of work.
type Job struct {
	Kind   string // "dot", "text", or "sketch"
	Input  string // source file, or sketch name for Kind "sketch"
	Output string // target path; empty derives from Input
}

// Result pairs a job with its outcome.
type Result struct {
	Job  Job
	Path string
	Err  error
}

// SketchFunc draws a generative sketch onto a prepared canvas.
type SketchFunc func(c *atelier.Context, seed int64) error

// Studio runs render jobs against a config.
type Studio struct {
	cfg Config
	log *slog.Logger
	gal *gallery.Store

	mu       sync.RWMutex
	sketches map[string]SketchFunc
}

// Option configures a Studio.
type Option func(*Studio)

// WithGallery records every successful render in the catalog.
func WithGallery(g *gallery.Store) Option {
	return func(s *Studio) { s.gal = g }
}

// WithLogger overrides the module logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Studio) { s.log = l }
}

// New validates the config and builds a Studio.
func New(cfg Config, opts ...Option) (*Studio, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Studio{
		cfg:      cfg,
		log:      atelier.Logger(),
		sketches: make(map[string]SketchFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RegisterSketch makes a named generative sketch renderable.
func (s *Studio) RegisterSketch(name string, fn SketchFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sketches[name] = fn
}

// Render runs one job and returns the path written.
func (s *Studio) Render(ctx context.Context, job Job) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch job.Kind {
	case "dot":
		return s.renderDot(ctx, job)
	case "text":
		return s.renderText(ctx, job)
	case "sketch":
		return s.renderSketch(ctx, job)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, job.Kind)
	}
}

// RenderAll runs jobs with at most cfg.Jobs in flight. The first
// error cancels the rest of the batch; completed results are still
// returned.
func (s *Studio) RenderAll(ctx context.Context, jobs []Job) ([]Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Jobs)

	results := make([]Result, len(jobs))
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			path, err := s.Render(ctx, job)
			results[i] = Result{Job: job, Path: path, Err: err}
			return err
		})
	}
	err := g.Wait()
	return results, err
}

// JobsFromSources maps source files to jobs by extension. Unknown
// extensions are skipped with a warning.
func (s *Studio) JobsFromSources(sources []string) []Job {
	jobs := make([]Job, 0, len(sources))
	for _, src := range sources {
		switch strings.ToLower(filepath.Ext(src)) {
		case ".dot", ".gv":
			jobs = append(jobs, Job{Kind: "dot", Input: src})
		case ".txt":
			jobs = append(jobs, Job{Kind: "text", Input: src})
		default:
			s.log.Warn("skipping source with unknown extension", "path", src)
		}
	}
	return jobs
}

func (s *Studio) renderDot(ctx context.Context, job Job) (string, error) {
	data, err := os.ReadFile(job.Input)
	if err != nil {
		return "", fmt.Errorf("studio: read source: %w", err)
	}
	g, err := dot.ParseString(string(data))
	if err != nil {
		return "", err
	}
	opts := dot.RenderOptions{}
	if dir, _ := g.Attr("rankdir"); strings.EqualFold(dir, "LR") {
		opts.Layout.Rankdir = dot.RankLR
	}
	c := dot.Render(g, opts)
	defer c.Close()

	out := s.outputPath(job, ".png")
	if err := s.savePNG(c, out); err != nil {
		return "", err
	}
	s.record(ctx, &gallery.Piece{
		Kind:   "graph",
		Title:  g.Name(),
		Path:   out,
		Format: "png",
		Width:  c.Width(),
		Height: c.Height(),
	})
	s.log.Info("graph rendered", "input", job.Input, "output", out)
	return out, nil
}

func (s *Studio) renderText(ctx context.Context, job Job) (string, error) {
	data, err := os.ReadFile(job.Input)
	if err != nil {
		return "", fmt.Errorf("studio: read source: %w", err)
	}
	cfg := compose.DefaultConfig()
	cfg.Seed = s.cfg.Seed
	cfg.Title = strings.TrimSuffix(filepath.Base(job.Input), filepath.Ext(job.Input))
	piece, err := compose.BuildScore(string(data), cfg)
	if err != nil {
		return "", err
	}

	out := s.outputPath(job, ".ly")
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return "", fmt.Errorf("studio: create output dir: %w", err)
	}
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("studio: create output: %w", err)
	}
	if err := score.WriteLilyPond(f, piece); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	s.record(ctx, &gallery.Piece{
		Kind:   "score",
		Title:  cfg.Title,
		Path:   out,
		Format: "ly",
		Seed:   cfg.Seed,
	})

	// Proof sheet next to the score.
	roll := compose.RenderRoll(piece, compose.RollOptions{})
	defer roll.Close()
	rollPath := strings.TrimSuffix(out, ".ly") + ".roll.png"
	if err := s.savePNG(roll, rollPath); err != nil {
		return "", err
	}
	s.record(ctx, &gallery.Piece{
		Kind:   "score",
		Title:  cfg.Title + " (roll)",
		Path:   rollPath,
		Format: "png",
		Seed:   cfg.Seed,
		Width:  roll.Width(),
		Height: roll.Height(),
	})
	s.log.Info("score composed", "input", job.Input, "output", out, "roll", rollPath)
	return out, nil
}

func (s *Studio) renderSketch(ctx context.Context, job Job) (string, error) {
	s.mu.RLock()
	fn, ok := s.sketches[job.Input]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("studio: no sketch registered as %q", job.Input)
	}

	c := atelier.NewContext(s.cfg.Width, s.cfg.Height)
	defer c.Close()
	if err := fn(c, s.cfg.Seed); err != nil {
		return "", fmt.Errorf("studio: sketch %q: %w", job.Input, err)
	}

	out := job.Output
	if out == "" {
		out = filepath.Join(s.cfg.OutputDir, job.Input+".png")
	}
	if err := s.savePNG(c, out); err != nil {
		return "", err
	}
	s.record(ctx, &gallery.Piece{
		Kind:   "sketch",
		Title:  job.Input,
		Path:   out,
		Format: "png",
		Seed:   s.cfg.Seed,
		Width:  c.Width(),
		Height: c.Height(),
	})
	s.log.Info("sketch rendered", "name", job.Input, "output", out)
	return out, nil
}

// outputPath derives the target path: explicit Output wins, otherwise
// the input basename with ext lands in OutputDir.
func (s *Studio) outputPath(job Job, ext string) string {
	if job.Output != "" {
		return job.Output
	}
	base := strings.TrimSuffix(filepath.Base(job.Input), filepath.Ext(job.Input))
	return filepath.Join(s.cfg.OutputDir, base+ext)
}

func (s *Studio) savePNG(c *atelier.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("studio: create output dir: %w", err)
	}
	if err := c.SavePNG(path); err != nil {
		return fmt.Errorf("studio: save png: %w", err)
	}
	return nil
}

// record writes a gallery entry when a catalog is attached. Failures
// are logged, not fatal: the render already succeeded.
func (s *Studio) record(ctx context.Context, p *gallery.Piece) {
	if s.gal == nil {
		return
	}
	if err := s.gal.Add(ctx, p); err != nil {
		s.log.Warn("gallery record failed", "path", p.Path, "err", err)
	}
}
