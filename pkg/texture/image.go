package texture

import (
	"image"
	"math"

	"github.com/EchoTools/texcomp/pkg/bc"
	"golang.org/x/image/draw"
)

// toNRGBA returns img as a non-premultiplied image anchored at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// ToSurface converts img to the tightly packed pixel layout that f
// encodes from. Single-channel formats take red; two-channel formats take
// red and green.
func ToSurface(img image.Image, f bc.Format) []byte {
	src := toNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	pb := f.PixelBytes()
	out := make([]byte, w*h*pb)

	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		dst := out[y*w*pb : (y+1)*w*pb]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+4]
			switch f.DecodedLayout() {
			case bc.LayoutR8:
				dst[x] = p[0]
			case bc.LayoutGR8:
				dst[2*x] = p[0]
				dst[2*x+1] = p[1]
			default:
				d := dst[x*4 : x*4+4]
				d[0], d[1], d[2], d[3] = p[2], p[1], p[0], p[3]
			}
		}
	}
	return out
}

// FromSurface converts decoded pixels of format f back to an image.
// Single-channel data becomes grey. Two-channel data is treated as a
// tangent-space normal map and gains a reconstructed blue channel.
func FromSurface(pixels []byte, f bc.Format, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	pb := f.PixelBytes()

	for y := 0; y < height; y++ {
		src := pixels[y*width*pb : (y+1)*width*pb]
		for x := 0; x < width; x++ {
			d := img.Pix[img.PixOffset(x, y):]
			switch f.DecodedLayout() {
			case bc.LayoutR8:
				v := src[x]
				d[0], d[1], d[2], d[3] = v, v, v, 255
			case bc.LayoutGR8:
				r, g := src[2*x], src[2*x+1]
				d[0], d[1], d[2], d[3] = r, g, normalZ(r, g), 255
			default:
				p := src[x*4 : x*4+4]
				d[0], d[1], d[2], d[3] = p[2], p[1], p[0], p[3]
			}
		}
	}
	return img
}

// normalZ reconstructs z = sqrt(1 - x² - y²) for a unit normal stored in
// unsigned red and green.
func normalZ(r, g uint8) uint8 {
	nx := float64(r)/127.5 - 1
	ny := float64(g)/127.5 - 1
	nz := math.Sqrt(math.Max(0, 1-nx*nx-ny*ny))
	return uint8(math.Round((nz + 1) * 127.5))
}

// DetectFormat samples img and picks BC3 when it finds partial alpha,
// otherwise BC1.
func DetectFormat(img image.Image) bc.Format {
	b := img.Bounds()
	stepX := b.Dx()/10 + 1
	stepY := b.Dy()/10 + 1

	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			_, _, _, a := img.At(x, y).RGBA()
			if a8 := a >> 8; a8 > 0 && a8 < 255 {
				return bc.BC3
			}
		}
	}
	return bc.BC1
}

// GenerateMipmaps returns img followed by successively halved copies down
// to 1x1.
func GenerateMipmaps(img image.Image) []image.Image {
	return generateMipmaps(img, draw.BiLinear)
}

func generateMipmaps(img image.Image, s draw.Scaler) []image.Image {
	mips := []image.Image{img}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	for w > 1 || h > 1 {
		w = max(1, w/2)
		h = max(1, h/2)

		prev := mips[len(mips)-1]
		next := image.NewNRGBA(image.Rect(0, 0, w, h))
		s.Scale(next, next.Bounds(), prev, prev.Bounds(), draw.Src, nil)
		mips = append(mips, next)
	}
	Logger().Debug("generated mip chain", "levels", len(mips))
	return mips
}
