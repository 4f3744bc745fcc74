package bc

import (
	"encoding/binary"
	"fmt"
)

// Block geometry shared by every BCn format.
const (
	BlockWidth  = 4
	BlockHeight = 4
	BlockPixels = BlockWidth * BlockHeight
)

// Encoded block sizes in bytes.
const (
	BC1BlockSize = 8
	BC2BlockSize = 16
	BC3BlockSize = 16
	BC4BlockSize = 8
	BC5BlockSize = 16
	BC7BlockSize = 16
)

// BC1Block is a decoded view of an 8-byte BC1 block: two RGB565 endpoints
// followed by sixteen 2-bit palette indices, pixel 0 in the low bits.
type BC1Block struct {
	Color0  RGB565
	Color1  RGB565
	Indices uint32
}

// PutBytes writes the block to dst, which must hold BC1BlockSize bytes.
func (b BC1Block) PutBytes(dst []byte) {
	_ = dst[BC1BlockSize-1]
	binary.LittleEndian.PutUint16(dst[0:2], uint16(b.Color0))
	binary.LittleEndian.PutUint16(dst[2:4], uint16(b.Color1))
	binary.LittleEndian.PutUint32(dst[4:8], b.Indices)
}

// ReadBC1Block parses the first BC1BlockSize bytes of src.
func ReadBC1Block(src []byte) BC1Block {
	_ = src[BC1BlockSize-1]
	return BC1Block{
		Color0:  RGB565(binary.LittleEndian.Uint16(src[0:2])),
		Color1:  RGB565(binary.LittleEndian.Uint16(src[2:4])),
		Indices: binary.LittleEndian.Uint32(src[4:8]),
	}
}

// Index returns the palette index of pixel i.
func (b BC1Block) Index(i int) int {
	return int(b.Indices>>(2*uint(i))) & 3
}

// Opaque reports whether the block uses the four-colour palette.
func (b BC1Block) Opaque() bool {
	return b.Color0 > b.Color1
}

func (b BC1Block) String() string {
	return fmt.Sprintf("BC1{%04x %04x %08x}", uint16(b.Color0), uint16(b.Color1), b.Indices)
}

// BC2Block holds sixteen explicit 4-bit alpha values, one uint16 per row,
// followed by an opaque BC1 colour block.
type BC2Block struct {
	Alpha [4]uint16
	Color BC1Block
}

// PutBytes writes the block to dst, which must hold BC2BlockSize bytes.
func (b BC2Block) PutBytes(dst []byte) {
	_ = dst[BC2BlockSize-1]
	for i, row := range b.Alpha {
		binary.LittleEndian.PutUint16(dst[i*2:], row)
	}
	b.Color.PutBytes(dst[8:16])
}

// ReadBC2Block parses the first BC2BlockSize bytes of src.
func ReadBC2Block(src []byte) BC2Block {
	_ = src[BC2BlockSize-1]
	var b BC2Block
	for i := range b.Alpha {
		b.Alpha[i] = binary.LittleEndian.Uint16(src[i*2:])
	}
	b.Color = ReadBC1Block(src[8:16])
	return b
}

// BC4Block is a single-channel block: two 8-bit endpoints and sixteen
// 3-bit indices packed little-endian into the low 48 bits of Indices.
type BC4Block struct {
	Alpha0  uint8
	Alpha1  uint8
	Indices uint64
}

// PutBytes writes the block to dst, which must hold BC4BlockSize bytes.
func (b BC4Block) PutBytes(dst []byte) {
	_ = dst[BC4BlockSize-1]
	dst[0] = b.Alpha0
	dst[1] = b.Alpha1
	for i := 0; i < 6; i++ {
		dst[2+i] = byte(b.Indices >> (8 * uint(i)))
	}
}

// ReadBC4Block parses the first BC4BlockSize bytes of src.
func ReadBC4Block(src []byte) BC4Block {
	_ = src[BC4BlockSize-1]
	b := BC4Block{Alpha0: src[0], Alpha1: src[1]}
	for i := 0; i < 6; i++ {
		b.Indices |= uint64(src[2+i]) << (8 * uint(i))
	}
	return b
}

// Index returns the 3-bit index of pixel i.
func (b BC4Block) Index(i int) int {
	return int(b.Indices>>(3*uint(i))) & 7
}

// BC3Block is a BC4 alpha block followed by an opaque BC1 colour block.
type BC3Block struct {
	Alpha BC4Block
	Color BC1Block
}

// PutBytes writes the block to dst, which must hold BC3BlockSize bytes.
func (b BC3Block) PutBytes(dst []byte) {
	_ = dst[BC3BlockSize-1]
	b.Alpha.PutBytes(dst[0:8])
	b.Color.PutBytes(dst[8:16])
}

// ReadBC3Block parses the first BC3BlockSize bytes of src.
func ReadBC3Block(src []byte) BC3Block {
	_ = src[BC3BlockSize-1]
	return BC3Block{Alpha: ReadBC4Block(src[0:8]), Color: ReadBC1Block(src[8:16])}
}

// BC5Block stores red and green as two independent BC4 blocks.
type BC5Block struct {
	Red   BC4Block
	Green BC4Block
}

// PutBytes writes the block to dst, which must hold BC5BlockSize bytes.
func (b BC5Block) PutBytes(dst []byte) {
	_ = dst[BC5BlockSize-1]
	b.Red.PutBytes(dst[0:8])
	b.Green.PutBytes(dst[8:16])
}

// ReadBC5Block parses the first BC5BlockSize bytes of src.
func ReadBC5Block(src []byte) BC5Block {
	_ = src[BC5BlockSize-1]
	return BC5Block{Red: ReadBC4Block(src[0:8]), Green: ReadBC4Block(src[8:16])}
}
