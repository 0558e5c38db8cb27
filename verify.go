package trendicon

import (
	"bytes"
	"context"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"os"

	"github.com/corona10/goimagehash"
	"github.com/k1LoW/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

type VerifyStatus string

const (
	VerifyStatusOK      VerifyStatus = "ok"
	VerifyStatusStale   VerifyStatus = "stale"
	VerifyStatusMissing VerifyStatus = "missing"
)

// maxHashDistance is the perceptual hash distance below which two icons are considered the same.
const maxHashDistance = 5

// maxChannelDelta is the per-channel difference tolerated between decoded pixels.
const maxChannelDelta = 2

const verifyConcurrency = 3

type VerifyResult struct {
	Icon   Icon
	Status VerifyStatus
}

// Verify compares each icon on disk with a fresh rendering.
// Results are returned in the same order as Icons.
func (r *Renderer) Verify(ctx context.Context) (_ []VerifyResult, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	icons := Icons(r.outDir)
	results := make([]VerifyResult, len(icons))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(verifyConcurrency)
	for i, icon := range icons {
		eg.Go(func() error {
			status, err := verifyIcon(icon)
			if err != nil {
				return err
			}
			r.logger.DebugContext(egCtx, "verified icon", "path", icon.Path, "status", status)
			results[i] = VerifyResult{Icon: icon, Status: status}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func verifyIcon(icon Icon) (VerifyStatus, error) {
	got, err := os.ReadFile(icon.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return VerifyStatusMissing, nil
		}
		// unreadable, e.g. a directory in place of the icon
		return VerifyStatusStale, nil
	}
	want, err := renderPNG(icon.Size)
	if err != nil {
		return "", err
	}
	if crc32.ChecksumIEEE(got) == crc32.ChecksumIEEE(want) {
		return VerifyStatusOK, nil
	}
	gotImg, err := png.Decode(bytes.NewReader(got))
	if err != nil {
		return VerifyStatusStale, nil
	}
	wantImg, err := png.Decode(bytes.NewReader(want))
	if err != nil {
		return "", fmt.Errorf("failed to decode rendered icon: %w", err)
	}
	ok, err := equivalent(gotImg, wantImg)
	if err != nil {
		return "", err
	}
	if !ok {
		return VerifyStatusStale, nil
	}
	return VerifyStatusOK, nil
}

// equivalent reports whether a and b draw the same icon.
// Re-encoding by other tools changes bytes without changing what is drawn, so pixels are compared
// after a perceptual hash check rejects clearly different drawings.
func equivalent(a, b image.Image) (bool, error) {
	if a.Bounds().Size() != b.Bounds().Size() {
		return false, nil
	}
	aHash, err := goimagehash.PerceptionHash(a)
	if err != nil {
		return false, fmt.Errorf("failed to compute perceptual hash: %w", err)
	}
	bHash, err := goimagehash.PerceptionHash(b)
	if err != nil {
		return false, fmt.Errorf("failed to compute perceptual hash: %w", err)
	}
	distance, err := aHash.Distance(bHash)
	if err != nil {
		return false, err
	}
	if distance >= maxHashDistance {
		return false, nil
	}
	return samePixels(toNRGBA(a), toNRGBA(b)), nil
}

// samePixels reports whether every channel of a and b differs by at most maxChannelDelta.
func samePixels(a, b *image.NRGBA) bool {
	if len(a.Pix) != len(b.Pix) {
		return false
	}
	for i := range a.Pix {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d > maxChannelDelta || d < -maxChannelDelta {
			return false
		}
	}
	return true
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(n, n.Bounds(), img, b.Min, xdraw.Src)
	return n
}
