package gallery

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "catalog", "gallery.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := &Piece{
		Kind:   "graph",
		Title:  "pipeline",
		Path:   "/tmp/pipeline.png",
		Format: "png",
		Seed:   42,
		Width:  640,
		Height: 480,
		Meta:   map[string]string{"rankdir": "TB"},
	}
	if err := s.Add(ctx, p); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.ID == "" {
		t.Fatal("Add did not assign an id")
	}
	if p.CreatedAt.IsZero() {
		t.Fatal("Add did not assign a creation time")
	}

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "pipeline" || got.Kind != "graph" || got.Seed != 42 {
		t.Errorf("Get = %+v", got)
	}
	if got.Meta["rankdir"] != "TB" {
		t.Errorf("Meta = %v, want rankdir TB", got.Meta)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, p.CreatedAt)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestAddDuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := &Piece{ID: "fixed", Kind: "sketch", Path: "/tmp/a.png", Format: "png"}
	if err := s.Add(ctx, p); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	dup := &Piece{ID: "fixed", Kind: "sketch", Path: "/tmp/b.png", Format: "png"}
	if err := s.Add(ctx, dup); err == nil {
		t.Error("duplicate id accepted")
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		p := &Piece{
			Kind:      "score",
			Title:     string(rune('a' + i)),
			Path:      "/tmp/x.ly",
			Format:    "ly",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.Add(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List returned %d pieces, want 3", len(got))
	}
	if got[0].Title != "c" || got[2].Title != "a" {
		t.Errorf("order = %s, %s, %s, want c, b, a", got[0].Title, got[1].Title, got[2].Title)
	}
}

func TestListFilterAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		kind := "graph"
		if i%2 == 1 {
			kind = "score"
		}
		if err := s.Add(ctx, &Piece{Kind: kind, Path: "/tmp/x", Format: "png"}); err != nil {
			t.Fatal(err)
		}
	}

	graphs, err := s.List(ctx, Filter{Kind: "graph"})
	if err != nil {
		t.Fatal(err)
	}
	if len(graphs) != 2 {
		t.Errorf("graph filter returned %d, want 2", len(graphs))
	}

	limited, err := s.List(ctx, Filter{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limit 1 returned %d", len(limited))
	}

	all, err := s.List(ctx, Filter{Limit: -5})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Errorf("negative limit returned %d, want all 4", len(all))
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := &Piece{Kind: "sketch", Path: "/tmp/x.png", Format: "png"}
	if err := s.Add(ctx, p); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete = %v, want ErrNotFound", err)
	}
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestThumbnail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "piece.png")
	writeTestPNG(t, src, 400, 200)

	p := &Piece{Kind: "sketch", Path: src, Format: "png", Width: 400, Height: 200}
	if err := s.Add(ctx, p); err != nil {
		t.Fatal(err)
	}

	thumb, err := s.Thumbnail(ctx, p.ID, 100)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if !strings.HasSuffix(thumb, ".thumb.png") {
		t.Errorf("thumb path = %q", thumb)
	}

	f, err := os.Open(thumb)
	if err != nil {
		t.Fatalf("open thumbnail: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("thumbnail %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestThumbnailUnsupported(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := &Piece{Kind: "score", Path: "/tmp/x.ly", Format: "ly"}
	if err := s.Add(ctx, p); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Thumbnail(ctx, p.ID, 100); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Thumbnail on ly = %v, want ErrUnsupported", err)
	}
}

func TestThumbnailMissingPiece(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Thumbnail(context.Background(), "nope", 100); !errors.Is(err, ErrNotFound) {
		t.Errorf("Thumbnail missing = %v, want ErrNotFound", err)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "gallery.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	p := &Piece{Kind: "graph", Path: "/tmp/g.png", Format: "png"}
	if err := s.Add(ctx, p); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Kind != "graph" {
		t.Errorf("Kind = %q", got.Kind)
	}
}
