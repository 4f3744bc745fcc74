// Package texture converts between images and block-compressed textures.
//
// A Texture holds one compressed surface per mip level. Textures are read
// and written as DDS files with a DX10 header, or rebuilt from headerless
// payloads described by a 256-byte metadata record.
package texture

import (
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/EchoTools/texcomp/pkg/bc"
	"golang.org/x/image/draw"
)

// Texture is a block-compressed image with an optional mip chain. Levels[0]
// is the full-size surface; each following level halves both dimensions
// down to a minimum of one pixel.
//
// Textures read from uncompressed payloads set Raw to their DXGI format and
// leave Format as bc.Unknown. They can be decoded and rewritten but not
// produced by Encode.
type Texture struct {
	Format bc.Format
	Raw    uint32
	Width  int
	Height int
	Levels [][]byte
}

// MaxDimension is the largest width or height accepted from a header.
const MaxDimension = 16384

// ValidateGeometry checks dimensions and mip count read from untrusted
// headers before any size is derived from them.
func ValidateGeometry(width, height, mips int) error {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", bc.ErrInvalidDimensions, width, height)
	}
	if mips <= 0 || mips > MaxLevels(width, height) {
		return fmt.Errorf("invalid mip count %d for %dx%d", mips, width, height)
	}
	return nil
}

// LevelSize returns the pixel dimensions of the given mip level.
func (t *Texture) LevelSize(level int) (width, height int) {
	return levelDim(t.Width, level), levelDim(t.Height, level)
}

func levelDim(n, level int) int {
	return max(1, n>>uint(level))
}

// MaxLevels returns the length of a full mip chain for a width x height image.
func MaxLevels(width, height int) int {
	n := 1
	for width > 1 || height > 1 {
		width = max(1, width/2)
		height = max(1, height/2)
		n++
	}
	return n
}

// DataSize returns the encoded size of mips levels of a width x height
// texture in format f.
func DataSize(f bc.Format, width, height, mips int) int {
	total := 0
	for i := 0; i < mips; i++ {
		total += f.SurfaceSize(levelDim(width, i), levelDim(height, i))
	}
	return total
}

// Validate checks that the texture dimensions and level sizes agree.
func (t *Texture) Validate() error {
	switch {
	case t.Raw != 0 && !IsUncompressed(t.Raw):
		return fmt.Errorf("%w: %s", ErrUnsupportedDXGIFormat, FormatName(t.Raw))
	case t.Raw == 0 && !t.Format.Valid():
		return fmt.Errorf("%w: %v", bc.ErrUnsupportedFormat, t.Format)
	}
	if err := ValidateGeometry(t.Width, t.Height, len(t.Levels)); err != nil {
		return err
	}
	for i, lvl := range t.Levels {
		if want := t.surfaceSize(t.LevelSize(i)); len(lvl) != want {
			return fmt.Errorf("level %d: expected %d bytes, got %d", i, want, len(lvl))
		}
	}
	return nil
}

// Data returns all levels concatenated in order.
func (t *Texture) Data() []byte {
	out := make([]byte, 0, t.payloadSize(len(t.Levels)))
	for _, lvl := range t.Levels {
		out = append(out, lvl...)
	}
	return out
}

// Option configures Encode.
type Option func(*encodeOptions)

type encodeOptions struct {
	method  bc.Method
	format  bc.Format
	mipmaps bool
	workers int
}

// WithMethod sets the compression method.
func WithMethod(m bc.Method) Option {
	return func(o *encodeOptions) {
		o.method = m
	}
}

// WithFormat forces the output format instead of detecting one.
func WithFormat(f bc.Format) Option {
	return func(o *encodeOptions) {
		o.format = f
	}
}

// WithMipmaps enables generation of a full mip chain.
func WithMipmaps(enabled bool) Option {
	return func(o *encodeOptions) {
		o.mipmaps = enabled
	}
}

// WithWorkers sets how many goroutines compress each level. Values below
// one select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *encodeOptions) {
		o.workers = n
	}
}

// Encode compresses img. Without WithFormat the format is chosen by
// DetectFormat.
func Encode(img image.Image, opts ...Option) (*Texture, error) {
	o := encodeOptions{method: bc.Balanced}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.format == bc.Unknown {
		o.format = DetectFormat(img)
	}
	if !o.format.Valid() {
		return nil, fmt.Errorf("%w: %v", bc.ErrUnsupportedFormat, o.format)
	}

	b := img.Bounds()
	if err := ValidateGeometry(b.Dx(), b.Dy(), 1); err != nil {
		return nil, err
	}

	levels := []image.Image{img}
	if o.mipmaps {
		levels = generateMipmaps(img, mipScaler(o.method))
	}

	t := &Texture{Format: o.format, Width: b.Dx(), Height: b.Dy(), Levels: make([][]byte, len(levels))}
	Logger().Debug("encode texture",
		"format", t.Format, "method", o.method,
		"width", t.Width, "height", t.Height,
		"levels", len(levels), "workers", o.workers)

	for i, lvl := range levels {
		data, err := encodeLevel(lvl, o.format, o.method, o.workers)
		if err != nil {
			return nil, fmt.Errorf("encode level %d: %w", i, err)
		}
		t.Levels[i] = data
	}
	return t, nil
}

// encodeLevel compresses one image, splitting its block rows into bands
// that are encoded concurrently.
func encodeLevel(img image.Image, f bc.Format, method bc.Method, workers int) ([]byte, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	src := ToSurface(img, f)
	srcPitch := w * f.PixelBytes()
	dstPitch := f.RowPitch(w)
	out := make([]byte, f.SurfaceSize(w, h))

	rows := bc.BlocksHigh(h)
	workers = min(workers, rows)
	per := (rows + workers - 1) / workers

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		r0 := i * per
		r1 := min(rows, r0+per)
		if r0 >= r1 {
			break
		}
		y0 := r0 * bc.BlockHeight
		bandHeight := min(h, r1*bc.BlockHeight) - y0

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = bc.EncodeSurface(f,
				out[r0*dstPitch:r1*dstPitch], dstPitch,
				src[y0*srcPitch:], srcPitch,
				w, bandHeight, method)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Decode expands one mip level to an NRGBA image.
func (t *Texture) Decode(level int) (*image.NRGBA, error) {
	if level < 0 || level >= len(t.Levels) {
		return nil, fmt.Errorf("%w: %d of %d", ErrLevelOutOfRange, level, len(t.Levels))
	}
	if t.Raw != 0 {
		return t.decodeRaw(level), nil
	}
	w, h := t.LevelSize(level)
	pixels := make([]byte, w*h*t.Format.PixelBytes())
	if err := bc.DecodeSurface(t.Format, pixels, 0, t.Levels[level], 0, w, h); err != nil {
		return nil, fmt.Errorf("decode level %d: %w", level, err)
	}
	return FromSurface(pixels, t.Format, w, h), nil
}

func mipScaler(m bc.Method) draw.Scaler {
	switch m {
	case bc.Speed:
		return draw.ApproxBiLinear
	case bc.Quality:
		return draw.CatmullRom
	}
	return draw.BiLinear
}
