package archive

import (
	"fmt"
	"io"

	"github.com/DataDog/zstd"
	"github.com/EchoTools/texcomp/pkg/texture"
)

// Writer wraps an io.WriteSeeker to provide compression of container data.
type Writer struct {
	dst     io.WriteSeeker
	zWriter *zstd.Writer
	header  *Header
	start   int64
	written uint64
	level   int
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCompressionLevel sets the compression level for the writer.
func WithCompressionLevel(level int) WriterOption {
	return func(w *Writer) {
		w.level = level
	}
}

// NewWriter writes a placeholder for h to dst and returns a writer for
// the uncompressed mip data. Close patches the compressed length.
func NewWriter(dst io.WriteSeeker, h *Header, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		dst:    dst,
		level:  DefaultCompressionLevel,
		header: h,
	}

	for _, opt := range opts {
		opt(w)
	}

	start, err := dst.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("get position: %w", err)
	}
	w.start = start

	headerBytes, err := w.header.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal header: %w", err)
	}
	if _, err := dst.Write(headerBytes); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	w.zWriter = zstd.NewWriterLevel(dst, w.level)
	return w, nil
}

// Write writes compressed data.
func (w *Writer) Write(p []byte) (n int, err error) {
	n, err = w.zWriter.Write(p)
	w.written += uint64(n)
	return n, err
}

// Close finalizes the container by updating the header with the compressed
// size.
func (w *Writer) Close() error {
	if err := w.zWriter.Close(); err != nil {
		return fmt.Errorf("close compressor: %w", err)
	}
	if w.written != w.header.Length {
		return fmt.Errorf("wrote %d bytes, header declares %d", w.written, w.header.Length)
	}

	pos, err := w.dst.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("get position: %w", err)
	}

	w.header.CompressedLength = uint64(pos-w.start) - uint64(w.header.Size())

	if _, err := w.dst.Seek(w.start, io.SeekStart); err != nil {
		return fmt.Errorf("seek to header: %w", err)
	}

	headerBytes, err := w.header.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}

	if _, err := w.dst.Write(headerBytes); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if _, err := w.dst.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}

	return nil
}

// WriteTexture compresses t and writes it as a container to dst.
func WriteTexture(dst io.WriteSeeker, t *texture.Texture, opts ...WriterOption) error {
	h, err := NewHeader(t)
	if err != nil {
		return err
	}
	w, err := NewWriter(dst, h, opts...)
	if err != nil {
		return err
	}

	for i, lvl := range t.Levels {
		if _, err := w.Write(lvl); err != nil {
			return fmt.Errorf("write level %d: %w", i, err)
		}
	}

	if err := w.Close(); err != nil {
		return err
	}
	texture.Logger().Debug("wrote container",
		"format", t.FormatString(), "length", h.Length, "compressed", h.CompressedLength)
	return nil
}
