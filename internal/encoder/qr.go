package encoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"

	apperrors "ncfqr/pkg/errors"
)

// Options controls how a symbol is rendered.
type Options struct {
	// Width of the square output image in pixels.
	Width int
	// Margin is the quiet zone in modules.
	Margin int
	Dark   color.Color
	Light  color.Color
	Level  qrcode.RecoveryLevel
}

// DefaultOptions renders a 300px image with a two module margin in black on
// white at medium error correction.
func DefaultOptions() Options {
	return Options{
		Width:  300,
		Margin: 2,
		Dark:   color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
		Light:  color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Level:  qrcode.Medium,
	}
}

// QREncoder turns text into a PNG image of a QR symbol. Failures are
// reported as errors matching apperrors.ErrEncoding.
type QREncoder interface {
	Encode(ctx context.Context, text string, opts Options) ([]byte, error)
}

// SymbolEncoder is the go-qrcode backed QREncoder.
type SymbolEncoder struct{}

func NewSymbolEncoder() *SymbolEncoder {
	return &SymbolEncoder{}
}

func (e *SymbolEncoder) Encode(ctx context.Context, text string, opts Options) (out []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewEncodingError(err)
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, apperrors.NewEncodingError(fmt.Errorf("encoder panic: %v", r))
		}
	}()

	q, err := qrcode.New(text, opts.Level)
	if err != nil {
		return nil, apperrors.NewEncodingError(err)
	}
	q.DisableBorder = true

	img := render(q.Bitmap(), opts)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, apperrors.NewEncodingError(err)
	}
	return buf.Bytes(), nil
}

// render draws the module grid with its margin at one pixel per module and
// scales it to the requested width. A width too small to fit every module
// falls back to four pixels per module.
func render(bitmap [][]bool, opts Options) *image.Paletted {
	palette := color.Palette{opts.Light, opts.Dark}
	margin := opts.Margin
	if margin < 0 {
		margin = 0
	}

	modules := len(bitmap) + 2*margin
	src := image.NewPaletted(image.Rect(0, 0, modules, modules), palette)
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				src.SetColorIndex(x+margin, y+margin, 1)
			}
		}
	}

	width := opts.Width
	if width < modules {
		width = modules * 4
	}
	dst := image.NewPaletted(image.Rect(0, 0, width, width), palette)
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
