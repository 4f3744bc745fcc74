package archive

import (
	"fmt"
	"io"

	"github.com/DataDog/zstd"
	"github.com/EchoTools/texcomp/pkg/texture"
)

const (
	// DefaultCompressionLevel is the default compression level for encoding.
	DefaultCompressionLevel = zstd.BestSpeed
)

// Reader wraps an io.Reader to provide decompression of container data.
type Reader struct {
	header    *Header
	zReader   io.ReadCloser
	headerBuf [HeaderSize]byte
}

// NewReader reads and validates the header, then returns a reader for the
// decompressed mip data.
func NewReader(r io.Reader) (*Reader, error) {
	reader := &Reader{
		header: &Header{},
	}

	if _, err := io.ReadFull(r, reader.headerBuf[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if err := reader.header.UnmarshalBinary(reader.headerBuf[:]); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	reader.zReader = zstd.NewReader(r)
	return reader, nil
}

// Header returns the container header.
func (r *Reader) Header() *Header {
	return r.header
}

// Read reads decompressed data into p.
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.zReader.Read(p)
}

// Close closes the reader.
func (r *Reader) Close() error {
	return r.zReader.Close()
}

// Length returns the uncompressed data length.
func (r *Reader) Length() int {
	return int(r.header.Length)
}

// CompressedLength returns the compressed data length.
func (r *Reader) CompressedLength() int {
	return int(r.header.CompressedLength)
}

// ReadAll reads the entire decompressed payload from a container.
func ReadAll(r io.Reader) (*Header, []byte, error) {
	reader, err := NewReader(r)
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, int64(reader.Length())))
	if err != nil {
		return nil, nil, fmt.Errorf("read content: %w", err)
	}
	if len(data) != reader.Length() {
		return nil, nil, fmt.Errorf("read content: %w: expected %d bytes, got %d", io.ErrUnexpectedEOF, reader.Length(), len(data))
	}

	return reader.Header(), data, nil
}

// ReadTexture reads a container into a texture.
func ReadTexture(r io.Reader) (*texture.Texture, error) {
	h, data, err := ReadAll(r)
	if err != nil {
		return nil, err
	}
	t, err := texture.WrapRaw(data, h.Metadata())
	if err != nil {
		return nil, fmt.Errorf("wrap payload: %w", err)
	}
	texture.Logger().Debug("read container",
		"format", t.FormatString(), "width", t.Width, "height", t.Height,
		"levels", len(t.Levels), "compressed", h.CompressedLength)
	return t, nil
}
