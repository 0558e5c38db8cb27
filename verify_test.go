package trendicon

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		want  []VerifyStatus
	}{
		{
			name:  "nothing generated",
			setup: func(t *testing.T, dir string) {},
			want:  []VerifyStatus{VerifyStatusMissing, VerifyStatusMissing, VerifyStatusMissing},
		},
		{
			name:  "up to date",
			setup: generate,
			want:  []VerifyStatus{VerifyStatusOK, VerifyStatusOK, VerifyStatusOK},
		},
		{
			name: "one missing",
			setup: func(t *testing.T, dir string) {
				generate(t, dir)
				if err := os.Remove(filepath.Join(dir, "icon48.png")); err != nil {
					t.Fatal(err)
				}
			},
			want: []VerifyStatus{VerifyStatusOK, VerifyStatusMissing, VerifyStatusOK},
		},
		{
			name: "not a png",
			setup: func(t *testing.T, dir string) {
				generate(t, dir)
				if err := os.WriteFile(filepath.Join(dir, "icon16.png"), []byte("not a png"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			want: []VerifyStatus{VerifyStatusStale, VerifyStatusOK, VerifyStatusOK},
		},
		{
			name: "wrong size",
			setup: func(t *testing.T, dir string) {
				generate(t, dir)
				writePNG(t, filepath.Join(dir, "icon128.png"), mustRender(t, 48))
			},
			want: []VerifyStatus{VerifyStatusOK, VerifyStatusOK, VerifyStatusStale},
		},
		{
			name: "different drawing",
			setup: func(t *testing.T, dir string) {
				generate(t, dir)
				img := image.NewNRGBA(image.Rect(0, 0, 128, 128))
				for y := 0; y < 128; y++ {
					for x := 0; x < 64; x++ {
						img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
					}
				}
				writePNG(t, filepath.Join(dir, "icon128.png"), img)
			},
			want: []VerifyStatus{VerifyStatusOK, VerifyStatusOK, VerifyStatusStale},
		},
		{
			name: "recoloured fill",
			setup: func(t *testing.T, dir string) {
				generate(t, dir)
				for _, icon := range Icons(dir) {
					img := mustRender(t, icon.Size)
					recolor(img, fillColor, color.NRGBA{G: 128, A: 255})
					writePNG(t, icon.Path, img)
				}
			},
			want: []VerifyStatus{VerifyStatusStale, VerifyStatusStale, VerifyStatusStale},
		},
		{
			name: "directory in place of icon",
			setup: func(t *testing.T, dir string) {
				generate(t, dir)
				p := filepath.Join(dir, "icon16.png")
				if err := os.Remove(p); err != nil {
					t.Fatal(err)
				}
				if err := os.Mkdir(p, 0o755); err != nil {
					t.Fatal(err)
				}
			},
			want: []VerifyStatus{VerifyStatusStale, VerifyStatusOK, VerifyStatusOK},
		},
		{
			name: "re-encoded with the same pixels",
			setup: func(t *testing.T, dir string) {
				generate(t, dir)
				buf := new(bytes.Buffer)
				enc := &png.Encoder{CompressionLevel: png.NoCompression}
				if err := enc.Encode(buf, mustRender(t, 48)); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(dir, "icon48.png"), buf.Bytes(), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			want: []VerifyStatus{VerifyStatusOK, VerifyStatusOK, VerifyStatusOK},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "icons")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				t.Fatal(err)
			}
			tt.setup(t, dir)
			r := newTestRenderer(t, dir, new(bytes.Buffer))
			results, err := r.Verify(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			var got []VerifyStatus
			for i, res := range results {
				if res.Icon != Icons(dir)[i] {
					t.Errorf("result %d is for %v, want %v", i, res.Icon, Icons(dir)[i])
				}
				got = append(got, res.Status)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Verify() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func generate(t *testing.T, dir string) {
	t.Helper()
	r := newTestRenderer(t, dir, new(bytes.Buffer))
	if err := r.Generate(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func mustRender(t *testing.T, size int) *image.NRGBA {
	t.Helper()
	img, err := Render(size)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func recolor(img *image.NRGBA, from, to color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) == from {
				img.SetNRGBA(x, y, to)
			}
		}
	}
}
