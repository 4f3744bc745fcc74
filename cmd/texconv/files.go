package main

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/EchoTools/texcomp/pkg/texture"
)

const zstdExt = ".zst"

// kind returns the lower-case extension of path, ignoring a trailing .zst.
func kind(path string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSuffix(strings.ToLower(path), zstdExt)))
}

func isZstd(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), zstdExt)
}

func isImage(path string) bool {
	switch kind(path) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp", ".gif":
		return true
	}
	return false
}

// openInput opens path for reading, decompressing .zst files on the fly.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if !isZstd(path) {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	return &zstdReadCloser{Decoder: dec, file: f}, nil
}

type zstdReadCloser struct {
	*zstd.Decoder
	file *os.File
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.file.Close()
}

// createOutput creates path, refusing to replace an existing file unless
// -force is set.
func createOutput(path string) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !forceOverwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}

// discardOnError closes f and removes it when *err is set, so failed
// conversions leave no partial output.
func discardOnError(f *os.File, err *error) {
	f.Close()
	if *err != nil {
		os.Remove(f.Name())
	}
}

// writeOutput streams write's output to path, compressing it when the
// path ends in .zst.
func writeOutput(path string, write func(io.Writer) error) (err error) {
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	defer discardOnError(f, &err)

	if !isZstd(path) {
		if err := write(f); err != nil {
			return err
		}
		return f.Close()
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := write(enc); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close zstd writer: %w", err)
	}
	return f.Close()
}

// readImage decodes any registered image format.
func readImage(path string) (image.Image, error) {
	r, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, name, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	texture.Logger().Debug("decoded image", "path", path, "format", name, "bounds", img.Bounds())
	return img, nil
}

// writeImage encodes img in the format named by the extension of path.
func writeImage(path string, img image.Image) error {
	var encode func(io.Writer, image.Image) error
	switch kind(path) {
	case ".png":
		encode = png.Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
		}
	case ".bmp":
		encode = bmp.Encode
	case ".tif", ".tiff":
		encode = func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		return fmt.Errorf("unsupported image output: %s", path)
	}

	return writeOutput(path, func(w io.Writer) error {
		if err := encode(w, img); err != nil {
			return fmt.Errorf("encode image: %w", err)
		}
		return nil
	})
}
