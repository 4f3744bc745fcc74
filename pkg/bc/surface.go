package bc

import "fmt"

// EncodeSurface compresses a width x height image. src holds rows of
// f.PixelBytes() pixels srcPitch bytes apart; dst receives block rows
// dstPitch bytes apart. A zero pitch selects the tightly packed pitch.
// Texels of partial edge blocks that fall outside the image encode as zero.
func EncodeSurface(f Format, dst []byte, dstPitch int, src []byte, srcPitch, width, height int, method Method) error {
	c, err := NewCodec(f)
	if err != nil {
		return err
	}
	g, err := newSurfaceGeometry(f, len(dst), dstPitch, len(src), srcPitch, width, height)
	if err != nil {
		return err
	}

	pb := g.pixelBytes
	var block [BlockPixels * 4]byte
	rowBytes := BlockWidth * pb
	for by := 0; by < g.blocksHigh; by++ {
		out := dst[by*g.blockPitch:]
		for bx := 0; bx < g.blocksWide; bx++ {
			x0 := bx * BlockWidth
			cols := min(BlockWidth, width-x0)
			for y := 0; y < BlockHeight; y++ {
				row := block[y*rowBytes : (y+1)*rowBytes]
				py := by*BlockHeight + y
				n := 0
				if py < height {
					o := py*g.pixelPitch + x0*pb
					n = copy(row[:cols*pb], src[o:o+cols*pb])
				}
				clear(row[n:])
			}
			c.EncodeBlock(out[bx*g.blockBytes:], block[:BlockPixels*pb], method)
		}
	}
	return nil
}

// DecodeSurface expands a width x height surface. Only texels inside the
// image are written to dst.
func DecodeSurface(f Format, dst []byte, dstPitch int, src []byte, srcPitch, width, height int) error {
	c, err := NewCodec(f)
	if err != nil {
		return err
	}
	g, err := newSurfaceGeometry(f, len(src), srcPitch, len(dst), dstPitch, width, height)
	if err != nil {
		return err
	}

	pb := g.pixelBytes
	var block [BlockPixels * 4]byte
	rowBytes := BlockWidth * pb
	for by := 0; by < g.blocksHigh; by++ {
		in := src[by*g.blockPitch:]
		for bx := 0; bx < g.blocksWide; bx++ {
			c.DecodeBlock(block[:BlockPixels*pb], in[bx*g.blockBytes:])
			x0 := bx * BlockWidth
			cols := min(BlockWidth, width-x0)
			for y := 0; y < BlockHeight; y++ {
				py := by*BlockHeight + y
				if py >= height {
					break
				}
				o := py*g.pixelPitch + x0*pb
				copy(dst[o:o+cols*pb], block[y*rowBytes:y*rowBytes+cols*pb])
			}
		}
	}
	return nil
}

type surfaceGeometry struct {
	blocksWide, blocksHigh int
	blockBytes, blockPitch int
	pixelBytes, pixelPitch int
}

// newSurfaceGeometry resolves pitches and checks that both buffers cover
// the surface.
func newSurfaceGeometry(f Format, blockLen, blockPitch, pixelLen, pixelPitch, width, height int) (surfaceGeometry, error) {
	if width <= 0 || height <= 0 {
		return surfaceGeometry{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	g := surfaceGeometry{
		blocksWide: BlocksWide(width),
		blocksHigh: BlocksHigh(height),
		blockBytes: f.BlockBytes(),
		blockPitch: blockPitch,
		pixelBytes: f.PixelBytes(),
		pixelPitch: pixelPitch,
	}
	if g.blockPitch == 0 {
		g.blockPitch = g.blocksWide * g.blockBytes
	}
	if g.pixelPitch == 0 {
		g.pixelPitch = width * g.pixelBytes
	}
	if g.blockPitch < g.blocksWide*g.blockBytes {
		return g, fmt.Errorf("%w: block pitch %d below %d", ErrInvalidDimensions, g.blockPitch, g.blocksWide*g.blockBytes)
	}
	if g.pixelPitch < width*g.pixelBytes {
		return g, fmt.Errorf("%w: pixel pitch %d below %d", ErrInvalidDimensions, g.pixelPitch, width*g.pixelBytes)
	}

	needBlocks := (g.blocksHigh-1)*g.blockPitch + g.blocksWide*g.blockBytes
	if blockLen < needBlocks {
		return g, fmt.Errorf("%w: compressed data needs %d bytes, got %d", ErrShortBuffer, needBlocks, blockLen)
	}
	needPixels := (height-1)*g.pixelPitch + width*g.pixelBytes
	if pixelLen < needPixels {
		return g, fmt.Errorf("%w: pixel data needs %d bytes, got %d", ErrShortBuffer, needPixels, pixelLen)
	}
	return g, nil
}
