// Package bc implements the BCn block-compression formats used by GPU
// textures: BC1 through BC5 with their sRGB variants, and BC7.
//
// Every format works on 4x4 blocks. Block functions take 16 pixels in
// raster order and produce a fixed-size block, or the reverse; they hold no
// state and are safe for concurrent use. EncodeSurface and DecodeSurface
// tile whole images, padding partial edge blocks with zero texels.
//
// Encoding quality is selected with a Method. Speed picks endpoints by
// luminance, Balanced adds a least-squares endpoint refinement and Quality
// also fits endpoints along the principal colour axis.
package bc
