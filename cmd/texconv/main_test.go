package main

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/EchoTools/texcomp/pkg/bc"
	"github.com/EchoTools/texcomp/pkg/texture"
)

func TestKind(t *testing.T) {
	tests := []struct {
		path string
		want string
		zst  bool
	}{
		{"a/b.PNG", ".png", false},
		{"tex.dds.zst", ".dds", true},
		{"tex.BCZ", ".bcz", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		if got := kind(tt.path); got != tt.want {
			t.Errorf("kind(%q) = %q, want %q", tt.path, got, tt.want)
		}
		if got := isZstd(tt.path); got != tt.zst {
			t.Errorf("isZstd(%q) = %v, want %v", tt.path, got, tt.zst)
		}
	}
}

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestEncodeDecodeFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writePNG(t, src, color.NRGBA{0, 255, 0, 255})

	opts := []texture.Option{texture.WithFormat(bc.BC1), texture.WithMipmaps(true)}
	for _, out := range []string{"out.dds", "out.dds.zst", "out.bcz"} {
		t.Run(out, func(t *testing.T) {
			texPath := filepath.Join(dir, out)
			if err := encodeFile(src, texPath, opts); err != nil {
				t.Fatalf("encode: %v", err)
			}

			tex, err := readTexture(texPath)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if tex.Format != bc.BC1 || len(tex.Levels) != 4 {
				t.Errorf("expected BC1 with 4 levels, got %v with %d", tex.Format, len(tex.Levels))
			}

			pngPath := filepath.Join(dir, out+".png")
			if err := decodeFile(texPath, pngPath); err != nil {
				t.Fatalf("decode: %v", err)
			}
			img, err := readImage(pngPath)
			if err != nil {
				t.Fatalf("read png: %v", err)
			}
			if got := color.NRGBAModel.Convert(img.At(3, 3)); got != (color.NRGBA{0, 255, 0, 255}) {
				t.Errorf("expected pure green, got %v", got)
			}
		})
	}
}

func TestCreateOutputRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exists.png")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := createOutput(path); err == nil {
		t.Error("expected error for existing output without -force")
	}
}

func TestWrapFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writePNG(t, src, color.NRGBA{10, 20, 30, 255})
	img, err := readImage(src)
	if err != nil {
		t.Fatal(err)
	}
	tex, err := texture.Encode(img, texture.WithFormat(bc.BC3))
	if err != nil {
		t.Fatal(err)
	}
	meta, err := tex.Metadata()
	if err != nil {
		t.Fatal(err)
	}
	metaBytes, _ := meta.MarshalBinary()

	rawPath := filepath.Join(dir, "tex.raw")
	metaPath := filepath.Join(dir, "tex.meta")
	os.WriteFile(rawPath, tex.Data(), 0644)
	os.WriteFile(metaPath, metaBytes, 0644)

	out := filepath.Join(dir, "tex.dds")
	if err := wrapFile(rawPath, metaPath, out); err != nil {
		t.Fatalf("wrap: %v", err)
	}
	got, err := readTexture(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got.Data()) != string(tex.Data()) {
		t.Error("payload mismatch")
	}
}

func TestFailedWriteRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writePNG(t, src, color.NRGBA{40, 40, 40, 255})

	// BC4_SRGB has no DXGI code, so the container write fails after the
	// output file is created.
	opts := []texture.Option{texture.WithFormat(bc.BC4SRGB)}
	for _, out := range []string{"out.dds", "out.dds.zst", "out.bcz"} {
		t.Run(out, func(t *testing.T) {
			path := filepath.Join(dir, out)
			if err := encodeFile(src, path, opts); err == nil {
				t.Fatal("expected write error")
			}
			if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("expected %s to be removed, stat gave %v", out, err)
			}
		})
	}

	t.Run("ExistingKept", func(t *testing.T) {
		path := filepath.Join(dir, "keep.dds")
		if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := encodeFile(src, path, opts); err == nil {
			t.Fatal("expected error for existing output")
		}
		if data, err := os.ReadFile(path); err != nil || string(data) != "old" {
			t.Errorf("existing output changed: %q %v", data, err)
		}
	})
}

func TestEncodeFromUncompressedDDS(t *testing.T) {
	dir := t.TempDir()
	payload := make([]byte, 8*8*4)
	for i := 0; i < len(payload); i += 4 {
		// B, G, R, A
		payload[i], payload[i+1], payload[i+2], payload[i+3] = 0, 0, 255, 255
	}
	src, err := texture.WrapRaw(payload, &texture.Metadata{
		Width: 8, Height: 8, MipLevels: 1,
		DXGIFormat:  texture.DXGI_FORMAT_B8G8R8A8_UNORM,
		RawFileSize: uint32(len(payload)),
	})
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	srcPath := filepath.Join(dir, "in.dds")
	if err := writeTexture(srcPath, src); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if err := showInfo(srcPath); err != nil {
		t.Errorf("info: %v", err)
	}

	pngPath := filepath.Join(dir, "in.png")
	if err := decodeFile(srcPath, pngPath); err != nil {
		t.Fatalf("decode: %v", err)
	}

	outPath := filepath.Join(dir, "out.dds")
	if err := encodeFile(srcPath, outPath, []texture.Option{texture.WithFormat(bc.BC1)}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	tex, err := readTexture(outPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if tex.Format != bc.BC1 {
		t.Errorf("expected BC1, got %s", tex.FormatString())
	}
	img, err := tex.Decode(0)
	if err != nil {
		t.Fatalf("decode bc1: %v", err)
	}
	if got := img.NRGBAAt(2, 5); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("expected pure red, got %v", got)
	}
}
