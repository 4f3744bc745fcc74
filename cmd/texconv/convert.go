package main

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/EchoTools/texcomp/pkg/archive"
	"github.com/EchoTools/texcomp/pkg/texture"
)

// readTexture loads a .dds or .bcz file.
func readTexture(path string) (*texture.Texture, error) {
	r, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var tex *texture.Texture
	switch kind(path) {
	case ".dds":
		tex, err = texture.ReadDDS(r)
	case ".bcz":
		tex, err = archive.ReadTexture(r)
	default:
		return nil, fmt.Errorf("unsupported texture input: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return tex, nil
}

// writeTexture stores tex as .dds or .bcz.
func writeTexture(path string, tex *texture.Texture) (err error) {
	switch kind(path) {
	case ".dds":
		return writeOutput(path, func(w io.Writer) error {
			if err := tex.WriteDDS(w); err != nil {
				return fmt.Errorf("write dds: %w", err)
			}
			return nil
		})
	case ".bcz":
		if isZstd(path) {
			return fmt.Errorf("%s: .bcz payloads are already zstd-compressed", path)
		}
		var f *os.File
		if f, err = createOutput(path); err != nil {
			return err
		}
		defer discardOnError(f, &err)
		if err := archive.WriteTexture(f, tex, archive.WithCompressionLevel(level)); err != nil {
			return fmt.Errorf("write bcz: %w", err)
		}
		return f.Close()
	}
	return fmt.Errorf("unsupported texture output: %s", path)
}

func decodeFile(inputPath, outputPath string) error {
	tex, err := readTexture(inputPath)
	if err != nil {
		return err
	}
	img, err := tex.Decode(mipLevel)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	return writeImage(outputPath, img)
}

// encodeFile compresses an image, or recompresses the top level of a
// texture file.
func encodeFile(inputPath, outputPath string, opts []texture.Option) error {
	var img image.Image
	if isImage(inputPath) {
		var err error
		if img, err = readImage(inputPath); err != nil {
			return err
		}
	} else {
		src, err := readTexture(inputPath)
		if err != nil {
			return err
		}
		if img, err = src.Decode(0); err != nil {
			return fmt.Errorf("decompress: %w", err)
		}
	}
	tex, err := texture.Encode(img, opts...)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	return writeTexture(outputPath, tex)
}

func wrapFile(rawPath, metaPath, outputPath string) error {
	mr, err := openInput(metaPath)
	if err != nil {
		return err
	}
	defer mr.Close()
	meta, err := texture.ParseMetadata(mr)
	if err != nil {
		return fmt.Errorf("parse metadata: %w", err)
	}

	rr, err := openInput(rawPath)
	if err != nil {
		return err
	}
	defer rr.Close()
	raw, err := io.ReadAll(rr)
	if err != nil {
		return fmt.Errorf("read raw: %w", err)
	}

	tex, err := texture.WrapRaw(raw, meta)
	if err != nil {
		return fmt.Errorf("wrap: %w", err)
	}
	return writeTexture(outputPath, tex)
}

func showInfo(inputPath string) error {
	if kind(inputPath) == ".meta" {
		r, err := openInput(inputPath)
		if err != nil {
			return err
		}
		defer r.Close()
		meta, err := texture.ParseMetadata(r)
		if err != nil {
			return fmt.Errorf("parse metadata: %w", err)
		}
		fmt.Printf("File: %s\n%s\n", inputPath, meta)
		return nil
	}

	tex, err := readTexture(inputPath)
	if err != nil {
		return err
	}
	dataSize := len(tex.Data())

	fmt.Printf("File: %s\n", inputPath)
	fmt.Printf("Dimensions: %dx%d\n", tex.Width, tex.Height)
	fmt.Printf("Mip levels: %d\n", len(tex.Levels))
	if dxgi, err := tex.DXGIFormat(); err == nil {
		fmt.Printf("Format: %s (DXGI %d)\n", tex.FormatString(), dxgi)
	} else {
		fmt.Printf("Format: %s\n", tex.FormatString())
	}
	if tex.Raw != 0 {
		fmt.Println("Storage: uncompressed")
	} else {
		fmt.Printf("Block size: %d bytes, decodes to %v\n", tex.Format.BlockBytes(), tex.Format.DecodedLayout())
	}
	fmt.Printf("Data size: %d bytes (%.2f KB)\n", dataSize, float64(dataSize)/1024)
	for i, lvl := range tex.Levels {
		w, h := tex.LevelSize(i)
		fmt.Printf("  level %2d: %5dx%-5d %d bytes\n", i, w, h, len(lvl))
	}
	return nil
}

func isDirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdir(1)
	return err == io.EOF, nil
}
