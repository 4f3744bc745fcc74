package texture

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/EchoTools/texcomp/pkg/bc"
)

// DDS header constants
const (
	DDSMagic         = 0x20534444 // "DDS "
	DDSHeaderSize    = 124
	DX10HeaderSize   = 20
	PixelFormatSize  = 32
	DDSDataOffset    = 4 + DDSHeaderSize
	DX10DataOffset   = DDSDataOffset + DX10HeaderSize
	dimensionTexture = 3 // D3D10_RESOURCE_DIMENSION_TEXTURE2D

	DDSFlagCaps        = 0x00000001
	DDSFlagHeight      = 0x00000002
	DDSFlagWidth       = 0x00000004
	DDSFlagPitch       = 0x00000008
	DDSFlagPixelFormat = 0x00001000
	DDSFlagMipMapCount = 0x00020000
	DDSFlagLinearSize  = 0x00080000

	DDPFFourCC    = 0x00000004
	DDPFRGB       = 0x00000040
	DDPFLuminance = 0x00020000

	DDSCapsComplex = 0x00000008
	DDSCapsTexture = 0x00001000
	DDSCapsMipMap  = 0x00400000
)

// Header is the magic number followed by the 124-byte DDS_HEADER.
type Header struct {
	Magic             uint32
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       PixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// PixelFormat is the 32-byte DDS_PIXELFORMAT.
type PixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      [4]byte
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

// DX10Header is the DDS_HEADER_DXT10 extension.
type DX10Header struct {
	DXGIFormat        uint32
	ResourceDimension uint32
	MiscFlag          uint32
	ArraySize         uint32
	MiscFlags2        uint32
}

// Info summarises a parsed DDS header.
type Info struct {
	Width      int
	Height     int
	MipLevels  int
	Format     bc.Format // bc.Unknown for uncompressed data
	DXGIFormat uint32    // zero for legacy FourCC files
	FourCC     string
	DataOffset int
	DataSize   int
}

// ParseHeader reads the DDS header and, when present, the DX10 extension.
// The reader is left at the start of the pixel data.
func ParseHeader(r io.Reader) (*Info, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if h.Magic != DDSMagic {
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidMagic, h.Magic)
	}

	info := &Info{
		Width:     int(h.Width),
		Height:    int(h.Height),
		MipLevels: int(h.MipMapCount),
		FourCC:    string(h.PixelFormat.FourCC[:]),
	}
	if info.MipLevels == 0 {
		info.MipLevels = 1
	}
	if info.Width <= 0 || info.Height <= 0 || info.Width > MaxDimension || info.Height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", bc.ErrInvalidDimensions, info.Width, info.Height)
	}
	if limit := MaxLevels(info.Width, info.Height); info.MipLevels > limit {
		info.MipLevels = limit
	}

	var err error
	switch {
	case info.FourCC == "DX10":
		var dx10 DX10Header
		if err := binary.Read(r, binary.LittleEndian, &dx10); err != nil {
			return nil, fmt.Errorf("read DX10 header: %w", err)
		}
		info.DXGIFormat = dx10.DXGIFormat
		info.DataOffset = DX10DataOffset
		if !IsUncompressed(dx10.DXGIFormat) {
			info.Format, err = FormatFromDXGI(dx10.DXGIFormat)
		}
	case h.PixelFormat.FourCC == [4]byte{}:
		info.DataOffset = DDSDataOffset
		dxgi, ok := legacyRawFormat(h.PixelFormat)
		if !ok {
			err = fmt.Errorf("%w: %d-bit pixel format with flags 0x%x",
				ErrUnsupportedDXGIFormat, h.PixelFormat.RGBBitCount, h.PixelFormat.Flags)
		}
		info.DXGIFormat = dxgi
	default:
		info.DataOffset = DDSDataOffset
		info.Format, err = formatFromFourCC(info.FourCC)
	}
	if err != nil {
		return nil, err
	}

	t, err := info.texture()
	if err != nil {
		return nil, err
	}
	info.DataSize = t.payloadSize(info.MipLevels)

	Logger().Debug("parsed DDS header",
		"width", info.Width, "height", info.Height,
		"mips", info.MipLevels, "format", info.Format,
		"dxgi", FormatName(info.DXGIFormat), "data_size", info.DataSize)
	return info, nil
}

// texture returns an empty texture matching the header.
func (info *Info) texture() (*Texture, error) {
	if info.Format != bc.Unknown {
		return &Texture{Format: info.Format, Width: info.Width, Height: info.Height}, nil
	}
	return newTexture(info.DXGIFormat, info.Width, info.Height)
}

// ReadDDS reads a complete DDS file.
func ReadDDS(r io.Reader) (*Texture, error) {
	info, err := ParseHeader(r)
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	// the buffer grows with the input instead of trusting the header size
	data, err := io.ReadAll(io.LimitReader(r, int64(info.DataSize)))
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	if len(data) < info.DataSize {
		return nil, fmt.Errorf("read data: %w: got %d of %d bytes", ErrTruncated, len(data), info.DataSize)
	}

	t, err := info.texture()
	if err != nil {
		return nil, err
	}
	if err := t.split(data, info.MipLevels); err != nil {
		return nil, err
	}
	return t, nil
}

// WriteDDS writes the texture as a DDS file with a DX10 header.
func (t *Texture) WriteDDS(w io.Writer) error {
	if err := t.Validate(); err != nil {
		return err
	}
	dxgi, err := t.DXGIFormat()
	if err != nil {
		return err
	}

	mips := uint32(len(t.Levels))
	flags := uint32(DDSFlagCaps | DDSFlagHeight | DDSFlagWidth | DDSFlagPixelFormat)
	pitch := t.surfaceSize(t.Width, t.Height)
	if t.Raw != 0 {
		flags |= DDSFlagPitch
		pitch = t.Width * rawFormats[t.Raw].bytes
	} else {
		flags |= DDSFlagLinearSize
	}
	caps := uint32(DDSCapsTexture)
	if mips > 1 {
		flags |= DDSFlagMipMapCount
		caps |= DDSCapsComplex | DDSCapsMipMap
	}

	header := Header{
		Magic:             DDSMagic,
		Size:              DDSHeaderSize,
		Flags:             flags,
		Height:            uint32(t.Height),
		Width:             uint32(t.Width),
		PitchOrLinearSize: uint32(pitch),
		MipMapCount:       mips,
		PixelFormat: PixelFormat{
			Size:   PixelFormatSize,
			Flags:  DDPFFourCC,
			FourCC: [4]byte{'D', 'X', '1', '0'},
		},
		Caps: caps,
	}
	dx10 := DX10Header{
		DXGIFormat:        dxgi,
		ResourceDimension: dimensionTexture,
		ArraySize:         1,
	}

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, &dx10); err != nil {
		return fmt.Errorf("write dx10 header: %w", err)
	}
	for i, lvl := range t.Levels {
		if _, err := w.Write(lvl); err != nil {
			return fmt.Errorf("write level %d: %w", i, err)
		}
	}
	return nil
}
