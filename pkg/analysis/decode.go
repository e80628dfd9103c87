package analysis

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultMaxSide bounds the longer edge of a raster before it is scanned.
const DefaultMaxSide = 512

// FromImage converts img into a PixelBuffer, shrinking it first so the longer
// side is at most maxSide. Ratios computed on the shrunken raster approximate
// the full-resolution ones; they are not bit-exact. maxSide <= 0 disables scaling.
func FromImage(img image.Image, maxSide int) PixelBuffer {
	sb := img.Bounds()
	w, h := scaledSize(sb.Dx(), sb.Dy(), maxSide)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == sb.Dx() && h == sb.Dy() {
		draw.Draw(dst, dst.Bounds(), img, sb.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, sb, draw.Src, nil)
	}
	return PixelBuffer{Pix: dst.Pix, Width: w, Height: h}
}

func scaledSize(w, h, maxSide int) (int, int) {
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) || w == 0 || h == 0 {
		return w, h
	}
	if w >= h {
		nh := h * maxSide / w
		if nh < 1 {
			nh = 1
		}
		return maxSide, nh
	}
	nw := w * maxSide / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxSide
}

type decoded struct {
	img    image.Image
	format string
	err    error
}

// Decode reads an encoded image from r and returns its (possibly downscaled)
// pixels and the format name. It returns early with ctx.Err() when ctx is done;
// the decoder goroutine then exits on its own once r is drained or closed.
func Decode(ctx context.Context, r io.Reader, maxSide int) (PixelBuffer, string, error) {
	ch := make(chan decoded, 1)
	go func() {
		img, format, err := image.Decode(r)
		ch <- decoded{img: img, format: format, err: err}
	}()

	select {
	case <-ctx.Done():
		return PixelBuffer{}, "", fmt.Errorf("decode image: %w", ctx.Err())
	case d := <-ch:
		if d.err != nil {
			return PixelBuffer{}, "", fmt.Errorf("decode image: %w", d.err)
		}
		if b := d.img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
			return PixelBuffer{}, d.format, ErrInvalidDimensions
		}
		return FromImage(d.img, maxSide), d.format, nil
	}
}
