package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/EchoTools/texcomp/pkg/bc"
)

func TestParseMetadata(t *testing.T) {
	data := make([]byte, MetadataSize)
	binary.LittleEndian.PutUint32(data[0x00:], 512) // width
	binary.LittleEndian.PutUint32(data[0x04:], 512) // height
	binary.LittleEndian.PutUint32(data[0x08:], 10)  // mipLevels
	binary.LittleEndian.PutUint32(data[0x0C:], DXGI_FORMAT_BC7_UNORM)
	binary.LittleEndian.PutUint32(data[0x10:], 349672) // ddsFileSize
	binary.LittleEndian.PutUint32(data[0x14:], 349524) // rawFileSize
	binary.LittleEndian.PutUint32(data[0x1C:], 1)      // arraySize

	meta, err := ParseMetadata(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse metadata: %v", err)
	}
	if meta.Width != 512 || meta.Height != 512 {
		t.Errorf("expected 512x512, got %dx%d", meta.Width, meta.Height)
	}
	if meta.MipLevels != 10 {
		t.Errorf("expected 10 mip levels, got %d", meta.MipLevels)
	}
	if meta.DXGIFormat != DXGI_FORMAT_BC7_UNORM {
		t.Errorf("expected format BC7_UNORM, got %d", meta.DXGIFormat)
	}
}

func TestParseMetadataShort(t *testing.T) {
	if _, err := ParseMetadata(bytes.NewReader(make([]byte, 100))); err == nil {
		t.Error("expected error for short metadata")
	}
	var m Metadata
	if err := m.UnmarshalBinary(make([]byte, 10)); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	original := &Metadata{
		Width:       1024,
		Height:      1024,
		MipLevels:   11,
		DXGIFormat:  DXGI_FORMAT_BC3_UNORM,
		DDSFileSize: 1398256,
		RawFileSize: 1398108,
		ArraySize:   1,
	}
	original.Reserved[0] = 0x5A

	data, err := original.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(data) != MetadataSize {
		t.Errorf("expected %d bytes, got %d", MetadataSize, len(data))
	}

	parsed, err := ParseMetadata(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if *parsed != *original {
		t.Errorf("expected %v, got %v", original, parsed)
	}
}

func TestTextureMetadata(t *testing.T) {
	tex := solidTexture(t, bc.BC1, 16, 8, true)
	meta, err := tex.Metadata()
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	// 16x8, 8x4, 4x2, 2x1, 1x1 in BC1
	if want := uint32(64 + 16 + 8 + 8 + 8); meta.RawFileSize != want {
		t.Errorf("expected raw size %d, got %d", want, meta.RawFileSize)
	}
	if meta.DDSFileSize != meta.RawFileSize+DX10DataOffset {
		t.Errorf("expected dds size %d, got %d", meta.RawFileSize+DX10DataOffset, meta.DDSFileSize)
	}
	if meta.MipLevels != 5 {
		t.Errorf("expected 5 mip levels, got %d", meta.MipLevels)
	}
}

func TestWrapRaw(t *testing.T) {
	tex := solidTexture(t, bc.BC3, 8, 8, true)
	meta, err := tex.Metadata()
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}

	t.Run("RoundTrip", func(t *testing.T) {
		got, err := WrapRaw(tex.Data(), meta)
		if err != nil {
			t.Fatalf("wrap: %v", err)
		}
		if got.Format != bc.BC3 || got.Width != 8 || got.Height != 8 || len(got.Levels) != 4 {
			t.Errorf("unexpected texture %v %dx%d with %d levels", got.Format, got.Width, got.Height, len(got.Levels))
		}
		if !bytes.Equal(got.Data(), tex.Data()) {
			t.Error("payload mismatch")
		}
	})

	t.Run("NilMetadata", func(t *testing.T) {
		if _, err := WrapRaw(tex.Data(), nil); err == nil {
			t.Error("expected error for nil metadata")
		}
	})

	t.Run("SizeMismatch", func(t *testing.T) {
		if _, err := WrapRaw(tex.Data()[1:], meta); err == nil {
			t.Error("expected error for size mismatch")
		}
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		bad := *meta
		bad.DXGIFormat = DXGI_FORMAT_BC6H_UF16
		if _, err := WrapRaw(tex.Data(), &bad); !errors.Is(err, ErrUnsupportedDXGIFormat) {
			t.Errorf("expected ErrUnsupportedDXGIFormat, got %v", err)
		}
	})
}

func TestFormatName(t *testing.T) {
	tests := []struct {
		format uint32
		want   string
	}{
		{DXGI_FORMAT_BC1_UNORM, "BC1_UNORM"},
		{DXGI_FORMAT_BC3_UNORM_SRGB, "BC3_UNORM_SRGB"},
		{DXGI_FORMAT_BC7_UNORM, "BC7_UNORM"},
		{DXGI_FORMAT_R8G8B8A8_UNORM, "R8G8B8A8_UNORM"},
		{9999, "UNKNOWN(0x270f)"},
	}
	for _, tt := range tests {
		if got := FormatName(tt.format); got != tt.want {
			t.Errorf("FormatName(%d) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func TestDXGIMapping(t *testing.T) {
	for _, f := range bc.Formats {
		dxgi, err := DXGIFormat(f)
		if f == bc.BC4SRGB || f == bc.BC5SRGB {
			if !errors.Is(err, ErrUnsupportedDXGIFormat) {
				t.Errorf("%v: expected ErrUnsupportedDXGIFormat, got %v", f, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%v: %v", f, err)
		}
		back, err := FormatFromDXGI(dxgi)
		if err != nil || back != f {
			t.Errorf("%v: round trip through %d gave %v (%v)", f, dxgi, back, err)
		}
	}
}
