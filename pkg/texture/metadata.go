package texture

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MetadataSize is the fixed size of a texture metadata record.
const MetadataSize = 256

// Metadata is the 256-byte descriptor that accompanies headerless
// texture payloads.
type Metadata struct {
	Width       uint32    // +0x00
	Height      uint32    // +0x04
	MipLevels   uint32    // +0x08
	DXGIFormat  uint32    // +0x0C
	DDSFileSize uint32    // +0x10: size with DDS and DX10 headers
	RawFileSize uint32    // +0x14: size of the payload alone
	Flags       uint32    // +0x18
	ArraySize   uint32    // +0x1C
	Reserved    [224]byte // +0x20
}

// ParseMetadata reads a metadata record.
func ParseMetadata(r io.Reader) (*Metadata, error) {
	data := make([]byte, MetadataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	m := &Metadata{}
	if err := m.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return m, nil
}

// MarshalBinary encodes the record to 256 bytes.
func (m *Metadata) MarshalBinary() ([]byte, error) {
	data := make([]byte, MetadataSize)
	binary.LittleEndian.PutUint32(data[0x00:], m.Width)
	binary.LittleEndian.PutUint32(data[0x04:], m.Height)
	binary.LittleEndian.PutUint32(data[0x08:], m.MipLevels)
	binary.LittleEndian.PutUint32(data[0x0C:], m.DXGIFormat)
	binary.LittleEndian.PutUint32(data[0x10:], m.DDSFileSize)
	binary.LittleEndian.PutUint32(data[0x14:], m.RawFileSize)
	binary.LittleEndian.PutUint32(data[0x18:], m.Flags)
	binary.LittleEndian.PutUint32(data[0x1C:], m.ArraySize)
	copy(data[0x20:], m.Reserved[:])
	return data, nil
}

// UnmarshalBinary decodes a 256-byte record.
func (m *Metadata) UnmarshalBinary(data []byte) error {
	if len(data) < MetadataSize {
		return fmt.Errorf("%w: metadata is %d bytes", ErrTruncated, len(data))
	}
	m.Width = binary.LittleEndian.Uint32(data[0x00:])
	m.Height = binary.LittleEndian.Uint32(data[0x04:])
	m.MipLevels = binary.LittleEndian.Uint32(data[0x08:])
	m.DXGIFormat = binary.LittleEndian.Uint32(data[0x0C:])
	m.DDSFileSize = binary.LittleEndian.Uint32(data[0x10:])
	m.RawFileSize = binary.LittleEndian.Uint32(data[0x14:])
	m.Flags = binary.LittleEndian.Uint32(data[0x18:])
	m.ArraySize = binary.LittleEndian.Uint32(data[0x1C:])
	copy(m.Reserved[:], data[0x20:MetadataSize])
	return nil
}

func (m *Metadata) String() string {
	return fmt.Sprintf(
		"Texture: %dx%d, %d mips, format=%s, dds_size=%d, raw_size=%d",
		m.Width, m.Height, m.MipLevels,
		FormatName(m.DXGIFormat),
		m.DDSFileSize, m.RawFileSize,
	)
}

// Metadata describes the texture as a headerless payload.
func (t *Texture) Metadata() (*Metadata, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	dxgi, err := t.DXGIFormat()
	if err != nil {
		return nil, err
	}
	raw := uint32(t.payloadSize(len(t.Levels)))
	return &Metadata{
		Width:       uint32(t.Width),
		Height:      uint32(t.Height),
		MipLevels:   uint32(len(t.Levels)),
		DXGIFormat:  dxgi,
		DDSFileSize: raw + DX10DataOffset,
		RawFileSize: raw,
		ArraySize:   1,
	}, nil
}

// WrapRaw rebuilds a texture from a headerless payload and its metadata.
func WrapRaw(raw []byte, meta *Metadata) (*Texture, error) {
	if meta == nil {
		return nil, fmt.Errorf("metadata is required")
	}
	if uint32(len(raw)) != meta.RawFileSize {
		return nil, fmt.Errorf("raw data size %d doesn't match metadata size %d", len(raw), meta.RawFileSize)
	}
	w, h, mips := int(meta.Width), int(meta.Height), max(1, int(meta.MipLevels))
	if err := ValidateGeometry(w, h, mips); err != nil {
		return nil, err
	}
	t, err := newTexture(meta.DXGIFormat, w, h)
	if err != nil {
		return nil, err
	}
	if err := t.split(raw, mips); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
