// Package archive stores block-compressed textures in zstd-compressed
// .bcz containers.
//
// A container is a fixed 40-byte header describing the texture followed by
// a single zstd frame holding every mip level in order.
package archive

import (
	"encoding/binary"
	"fmt"

	"github.com/EchoTools/texcomp/pkg/texture"
)

// Magic bytes identifying a texture container header.
var Magic = [4]byte{0x42, 0x43, 0x54, 0x5a} // "BCTZ"

const (
	// HeaderSize is the fixed binary size of a container header.
	HeaderSize = 40 // 4 + 4 + 4*4 + 8 + 8 bytes

	// headerLength counts the header bytes that follow the length field.
	headerLength = HeaderSize - 8
)

// Header describes the texture held by a container.
type Header struct {
	Magic            [4]byte
	HeaderLength     uint32
	DXGIFormat       uint32
	Width            uint32
	Height           uint32
	MipLevels        uint32
	Length           uint64 // Uncompressed size
	CompressedLength uint64 // Compressed size
}

// Size returns the binary size of the header.
func (h *Header) Size() int {
	return HeaderSize
}

// Validate checks the header for validity.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("invalid magic: expected %x, got %x", Magic, h.Magic)
	}
	if h.HeaderLength != headerLength {
		return fmt.Errorf("invalid header length: expected %d, got %d", headerLength, h.HeaderLength)
	}
	want, err := texture.PayloadSize(h.DXGIFormat, int(h.Width), int(h.Height), int(h.MipLevels))
	if err != nil {
		return fmt.Errorf("invalid texture %dx%d with %d levels: %w", h.Width, h.Height, h.MipLevels, err)
	}
	if h.Length != uint64(want) {
		return fmt.Errorf("uncompressed size %d does not match texture size %d", h.Length, want)
	}
	if h.CompressedLength == 0 {
		return fmt.Errorf("compressed size is zero")
	}
	return nil
}

// MarshalBinary encodes the header to binary format.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// EncodeTo writes the header to the given buffer.
// The buffer must be at least HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.HeaderLength)
	binary.LittleEndian.PutUint32(buf[8:12], h.DXGIFormat)
	binary.LittleEndian.PutUint32(buf[12:16], h.Width)
	binary.LittleEndian.PutUint32(buf[16:20], h.Height)
	binary.LittleEndian.PutUint32(buf[20:24], h.MipLevels)
	binary.LittleEndian.PutUint64(buf[24:32], h.Length)
	binary.LittleEndian.PutUint64(buf[32:40], h.CompressedLength)
}

// UnmarshalBinary decodes and validates the header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("header data too short: need %d, got %d", HeaderSize, len(data))
	}
	h.DecodeFrom(data)
	return h.Validate()
}

// DecodeFrom reads the header from the given buffer.
// Does not validate - use UnmarshalBinary for validation.
func (h *Header) DecodeFrom(data []byte) {
	copy(h.Magic[:], data[0:4])
	h.HeaderLength = binary.LittleEndian.Uint32(data[4:8])
	h.DXGIFormat = binary.LittleEndian.Uint32(data[8:12])
	h.Width = binary.LittleEndian.Uint32(data[12:16])
	h.Height = binary.LittleEndian.Uint32(data[16:20])
	h.MipLevels = binary.LittleEndian.Uint32(data[20:24])
	h.Length = binary.LittleEndian.Uint64(data[24:32])
	h.CompressedLength = binary.LittleEndian.Uint64(data[32:40])
}

// NewHeader describes t. The compressed length is filled in when the
// container is closed.
func NewHeader(t *texture.Texture) (*Header, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	dxgi, err := t.DXGIFormat()
	if err != nil {
		return nil, err
	}
	return &Header{
		Magic:        Magic,
		HeaderLength: headerLength,
		DXGIFormat:   dxgi,
		Width:        uint32(t.Width),
		Height:       uint32(t.Height),
		MipLevels:    uint32(len(t.Levels)),
		Length:       uint64(len(t.Data())),
	}, nil
}

// Metadata converts the header to a raw payload descriptor.
func (h *Header) Metadata() *texture.Metadata {
	return &texture.Metadata{
		Width:       h.Width,
		Height:      h.Height,
		MipLevels:   h.MipLevels,
		DXGIFormat:  h.DXGIFormat,
		DDSFileSize: uint32(h.Length) + texture.DX10DataOffset,
		RawFileSize: uint32(h.Length),
		ArraySize:   1,
	}
}
