package texture

import (
	"fmt"

	"github.com/EchoTools/texcomp/pkg/bc"
)

// DXGI_FORMAT values for the formats this package reads or names.
const (
	DXGI_FORMAT_UNKNOWN             = 0
	DXGI_FORMAT_R11G11B10_FLOAT     = 26
	DXGI_FORMAT_R8G8B8A8_UNORM      = 28
	DXGI_FORMAT_R8G8B8A8_UNORM_SRGB = 29
	DXGI_FORMAT_R8_UNORM            = 61
	DXGI_FORMAT_BC1_UNORM           = 71
	DXGI_FORMAT_BC1_UNORM_SRGB      = 72
	DXGI_FORMAT_BC2_UNORM           = 74
	DXGI_FORMAT_BC2_UNORM_SRGB      = 75
	DXGI_FORMAT_BC3_UNORM           = 77
	DXGI_FORMAT_BC3_UNORM_SRGB      = 78
	DXGI_FORMAT_BC4_UNORM           = 80
	DXGI_FORMAT_BC4_SNORM           = 81
	DXGI_FORMAT_BC5_UNORM           = 83
	DXGI_FORMAT_BC5_SNORM           = 84
	DXGI_FORMAT_B8G8R8A8_UNORM      = 87
	DXGI_FORMAT_B8G8R8A8_TYPELESS   = 90
	DXGI_FORMAT_B8G8R8A8_UNORM_SRGB = 91
	DXGI_FORMAT_BC6H_UF16           = 95
	DXGI_FORMAT_BC6H_SF16           = 96
	DXGI_FORMAT_BC7_UNORM           = 98
	DXGI_FORMAT_BC7_UNORM_SRGB      = 99
)

var dxgiToFormat = map[uint32]bc.Format{
	DXGI_FORMAT_BC1_UNORM:      bc.BC1,
	DXGI_FORMAT_BC1_UNORM_SRGB: bc.BC1SRGB,
	DXGI_FORMAT_BC2_UNORM:      bc.BC2,
	DXGI_FORMAT_BC2_UNORM_SRGB: bc.BC2SRGB,
	DXGI_FORMAT_BC3_UNORM:      bc.BC3,
	DXGI_FORMAT_BC3_UNORM_SRGB: bc.BC3SRGB,
	DXGI_FORMAT_BC4_UNORM:      bc.BC4,
	DXGI_FORMAT_BC5_UNORM:      bc.BC5,
	DXGI_FORMAT_BC4_SNORM:      bc.BC4SNorm,
	DXGI_FORMAT_BC5_SNORM:      bc.BC5SNorm,
	DXGI_FORMAT_BC7_UNORM:      bc.BC7,
	DXGI_FORMAT_BC7_UNORM_SRGB: bc.BC7SRGB,
}

var dxgiNames = map[uint32]string{
	DXGI_FORMAT_R11G11B10_FLOAT:     "R11G11B10_FLOAT",
	DXGI_FORMAT_R8G8B8A8_UNORM:      "R8G8B8A8_UNORM",
	DXGI_FORMAT_R8G8B8A8_UNORM_SRGB: "R8G8B8A8_UNORM_SRGB",
	DXGI_FORMAT_R8_UNORM:            "R8_UNORM",
	DXGI_FORMAT_BC1_UNORM:           "BC1_UNORM",
	DXGI_FORMAT_BC1_UNORM_SRGB:      "BC1_UNORM_SRGB",
	DXGI_FORMAT_BC2_UNORM:           "BC2_UNORM",
	DXGI_FORMAT_BC2_UNORM_SRGB:      "BC2_UNORM_SRGB",
	DXGI_FORMAT_BC3_UNORM:           "BC3_UNORM",
	DXGI_FORMAT_BC3_UNORM_SRGB:      "BC3_UNORM_SRGB",
	DXGI_FORMAT_BC4_UNORM:           "BC4_UNORM",
	DXGI_FORMAT_BC4_SNORM:           "BC4_SNORM",
	DXGI_FORMAT_BC5_UNORM:           "BC5_UNORM",
	DXGI_FORMAT_BC5_SNORM:           "BC5_SNORM",
	DXGI_FORMAT_B8G8R8A8_UNORM:      "B8G8R8A8_UNORM",
	DXGI_FORMAT_B8G8R8A8_TYPELESS:   "B8G8R8A8_TYPELESS",
	DXGI_FORMAT_B8G8R8A8_UNORM_SRGB: "B8G8R8A8_UNORM_SRGB",
	DXGI_FORMAT_BC6H_UF16:           "BC6H_UF16",
	DXGI_FORMAT_BC6H_SF16:           "BC6H_SF16",
	DXGI_FORMAT_BC7_UNORM:           "BC7_UNORM",
	DXGI_FORMAT_BC7_UNORM_SRGB:      "BC7_UNORM_SRGB",
}

// FormatName returns a human-readable name for a DXGI_FORMAT value.
func FormatName(dxgi uint32) string {
	if name, ok := dxgiNames[dxgi]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%x)", dxgi)
}

// FormatFromDXGI maps a DXGI_FORMAT value to a block format. Uncompressed
// formats are reported as unsupported; see IsUncompressed.
func FormatFromDXGI(dxgi uint32) (bc.Format, error) {
	if f, ok := dxgiToFormat[dxgi]; ok {
		return f, nil
	}
	return bc.Unknown, fmt.Errorf("%w: %s", ErrUnsupportedDXGIFormat, FormatName(dxgi))
}

// DXGIFormat returns the DXGI_FORMAT value for f. The single and two
// channel sRGB variants have no DXGI equivalent.
func DXGIFormat(f bc.Format) (uint32, error) {
	for dxgi, g := range dxgiToFormat {
		if g == f {
			return dxgi, nil
		}
	}
	return DXGI_FORMAT_UNKNOWN, fmt.Errorf("%w: no DXGI format for %v", ErrUnsupportedDXGIFormat, f)
}

// formatFromFourCC maps legacy DDS FourCC codes.
func formatFromFourCC(fourCC string) (bc.Format, error) {
	switch fourCC {
	case "DXT1":
		return bc.BC1, nil
	case "DXT2", "DXT3":
		return bc.BC2, nil
	case "DXT4", "DXT5":
		return bc.BC3, nil
	case "ATI1", "BC4U":
		return bc.BC4, nil
	case "ATI2", "BC5U":
		return bc.BC5, nil
	case "BC4S":
		return bc.BC4SNorm, nil
	case "BC5S":
		return bc.BC5SNorm, nil
	}
	return bc.Unknown, fmt.Errorf("%w: fourCC %q", ErrUnsupportedDXGIFormat, fourCC)
}
