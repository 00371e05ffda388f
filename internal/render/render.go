// Package render draws layer grids as PNG maps.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// SampleFunc returns the encoded value at world position (x, z), in whatever
// unit the caller chose for the view.
type SampleFunc func(x, z int) int32

// View is the window of world space drawn into an image. Pixel (px, pz)
// samples (X + px*Step, Z + pz*Step).
type View struct {
	X, Z          int
	Width, Height int
	Step          int
}

// Validate reports whether v describes a drawable image.
func (v View) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("render: bad image size %dx%d", v.Width, v.Height)
	}
	if v.Step <= 0 {
		return fmt.Errorf("render: bad step %d", v.Step)
	}
	return nil
}

// Draw samples every pixel of v, one row per task on up to workers goroutines.
func Draw(ctx context.Context, v View, sample SampleFunc, p Palette, workers int) (*image.RGBA, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, v.Width, v.Height))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))
	for pz := 0; pz < v.Height; pz++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			z := v.Z + pz*v.Step
			for px := 0; px < v.Width; px++ {
				img.SetRGBA(px, pz, p(sample(v.X+px*v.Step, z)))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

// Meta describes a rendered map.
type Meta struct {
	Seed     int64  `json:"seed"`
	Pipeline string `json:"pipeline"`
	Stage    string `json:"stage"`
	Level    int    `json:"level"`
	View     View   `json:"view"`
	// Caption is drawn into the top-left corner when non-empty.
	Caption string `json:"caption,omitempty"`
}

// Renderer writes maps into a directory.
type Renderer struct {
	dir     string
	workers int
	log     *slog.Logger
}

// New returns a Renderer rooted at dir, creating it as needed. A nil log
// discards output.
func New(dir string, workers int, log *slog.Logger) (*Renderer, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return &Renderer{dir: dir, workers: workers, log: log}, nil
}

// Render draws the view and writes <name>.png with a <name>.json sidecar. It
// returns the image path.
func (r *Renderer) Render(ctx context.Context, name string, m Meta, sample SampleFunc, p Palette) (string, error) {
	img, err := Draw(ctx, m.View, sample, p, r.workers)
	if err != nil {
		return "", fmt.Errorf("draw %s: %w", name, err)
	}
	Caption(img, m.Caption)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	path := filepath.Join(r.dir, name+".png")
	if err := atomicWrite(path, buf.Bytes()); err != nil {
		return "", err
	}
	if err := atomicWriteJSON(filepath.Join(r.dir, name+".json"), m); err != nil {
		return "", err
	}
	r.log.Info("rendered map", "path", path, "stage", m.Stage, "width", m.View.Width, "height", m.View.Height)
	return path, nil
}

func atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return atomicWrite(path, append(data, '\n'))
}

func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
