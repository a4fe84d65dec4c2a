// SPDX-License-Identifier: MIT

// Package imaging turns uploaded pictures into compact data URIs that can be
// stored inline with portfolio cards and settings.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"math"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/janayne/salon/internal/logging"
)

var (
	// ErrDecode is returned when the upload is not a readable image
	ErrDecode = errors.New("failed to decode image")
	// ErrUnsupported is returned for uploads that are not an accepted image type
	ErrUnsupported = errors.New("unsupported image type")
	// ErrTooLarge is returned when the upload exceeds Options.MaxBytes
	ErrTooLarge = errors.New("image upload too large")
)

// FallbackFormat is the encoding used when the preferred format has no encoder
const FallbackFormat = "image/jpeg"

// Accepted lists the upload types that can be decoded
var Accepted = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp"}

// Options bound the output raster and pick its encoding
type Options struct {
	MaxWidth  int
	MaxHeight int
	Quality   int    // 1-100
	Format    string // preferred MIME type, e.g. image/webp
	MaxBytes  int64  // upload size limit, zero for none
	// MaxPixels caps the declared width x height of an upload, checked
	// before the raster is allocated
	MaxPixels int64
}

// DefaultOptions matches the admin panel: 800x800 box, quality 60, WebP preferred
func DefaultOptions() Options {
	return Options{
		MaxWidth:  800,
		MaxHeight: 800,
		Quality:   60,
		Format:    "image/webp",
		MaxBytes:  20 << 20,
		MaxPixels: 40_000_000,
	}
}

// Result is a normalized image
type Result struct {
	DataURI string `json:"dataUri"`
	MIME    string `json:"mime"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Source  string `json:"source"` // sniffed MIME type of the upload
}

// Normalizer decodes, shrinks and re-encodes uploads
type Normalizer struct {
	opts     Options
	encoders *Encoders
	logger   *zap.Logger
}

// NewNormalizer creates a normalizer. Zero option fields take the defaults.
func NewNormalizer(opts Options, encoders *Encoders, logger *zap.Logger) *Normalizer {
	def := DefaultOptions()
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = def.MaxWidth
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = def.MaxHeight
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = def.Quality
	}
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = def.MaxPixels
	}
	if encoders == nil {
		encoders = DefaultEncoders()
	}
	return &Normalizer{opts: opts, encoders: encoders, logger: logging.OrNop(logger)}
}

// Options returns the effective options
func (n *Normalizer) Options() Options {
	return n.opts
}

// Normalize reads an upload and returns it as a data URI whose larger side
// fits the configured box. Smaller images keep their size.
func (n *Normalizer) Normalize(ctx context.Context, r io.Reader) (Result, error) {
	data, err := n.read(r)
	if err != nil {
		return Result{}, err
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), Accepted...) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupported, mtype.String())
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Result{}, fmt.Errorf("%w: empty image", ErrDecode)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > n.opts.MaxPixels {
		return Result{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, cfg.Width, cfg.Height, n.opts.MaxPixels)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	width, height := FitWithin(src.Bounds().Dx(), src.Bounds().Dy(), n.opts.MaxWidth, n.opts.MaxHeight)
	if width == 0 || height == 0 {
		return Result{}, fmt.Errorf("%w: empty image", ErrDecode)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	format := n.opts.Format
	uri, err := n.encoders.DataURI(dst, format, n.opts.Quality)
	if err != nil {
		n.logger.Warn("preferred image encoder failed", zap.String("format", format), zap.Error(err))
		uri = ""
	}
	if !strings.HasPrefix(uri, "data:"+format) {
		n.logger.Debug("preferred image format unavailable, falling back",
			zap.String("preferred", format),
			zap.String("fallback", FallbackFormat),
		)
		format = FallbackFormat
		uri, err = n.encoders.DataURI(dst, format, n.opts.Quality)
		if err != nil {
			return Result{}, err
		}
	}

	n.logger.Info("normalized image",
		zap.String("source", mtype.String()),
		zap.Int("source_width", src.Bounds().Dx()),
		zap.Int("source_height", src.Bounds().Dy()),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.String("format", format),
		zap.Int("bytes", len(uri)),
	)

	return Result{
		DataURI: uri,
		MIME:    format,
		Width:   width,
		Height:  height,
		Source:  mtype.String(),
	}, nil
}

func (n *Normalizer) read(r io.Reader) ([]byte, error) {
	if n.opts.MaxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read upload: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, n.opts.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > n.opts.MaxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, n.opts.MaxBytes)
	}
	return data, nil
}

// FitWithin scales width x height down so that neither side exceeds the box,
// preserving the aspect ratio. It never scales up.
func FitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	scale := math.Min(1, math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height)))
	if scale >= 1 {
		return width, height
	}

	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	w = max(1, min(w, maxWidth))
	h = max(1, min(h, maxHeight))
	return w, h
}

// Encoder writes img in one format. quality is 1-100 and may be ignored.
type Encoder func(w io.Writer, img image.Image, quality int) error

// Encoders maps MIME types to encoders
type Encoders struct {
	byType map[string]Encoder
}

// DefaultEncoders knows WebP, JPEG and PNG
func DefaultEncoders() *Encoders {
	e := BaseEncoders()
	e.Register("image/webp", encodeWebP)
	return e
}

// BaseEncoders knows only the formats every browser displays, JPEG and PNG
func BaseEncoders() *Encoders {
	e := &Encoders{byType: map[string]Encoder{}}
	e.Register("image/jpeg", func(w io.Writer, img image.Image, quality int) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	})
	e.Register("image/png", encodePNG)
	return e
}

// Register adds or replaces the encoder for a MIME type
func (e *Encoders) Register(mime string, enc Encoder) {
	e.byType[mime] = enc
}

// Has reports whether mime can be encoded
func (e *Encoders) Has(mime string) bool {
	_, ok := e.byType[mime]
	return ok
}

// DataURI encodes img as a base64 data URI. An unknown format is encoded as
// PNG, so callers detect a missing encoder from the URI's MIME prefix.
func (e *Encoders) DataURI(img image.Image, mime string, quality int) (string, error) {
	enc, ok := e.byType[mime]
	if !ok {
		mime = "image/png"
		enc = encodePNG
	}

	var buf bytes.Buffer
	if err := enc(&buf, img, quality); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", mime, err)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
