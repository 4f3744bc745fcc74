// texconv converts between images and block-compressed textures.
//
// Usage:
//
//	texconv [flags] decode <in.dds|in.bcz> <out.png>
//	texconv [flags] encode <in.png|in.dds|in.bcz> <out.dds|out.bcz>
//	texconv [flags] info <in.dds|in.bcz|in.meta>
//	texconv [flags] batch <decode|encode> <dir> <out>
//	texconv [flags] wrap <in.raw> <in.meta> <out.dds|out.bcz>
//
// Any path may carry a trailing .zst, in which case the file is read or
// written through a zstd stream.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/EchoTools/texcomp/pkg/bc"
	"github.com/EchoTools/texcomp/pkg/texture"
)

var (
	formatName     string
	methodName     string
	mipmaps        bool
	mipLevel       int
	workers        int
	level          int
	verbose        bool
	forceOverwrite bool
)

func init() {
	flag.StringVar(&formatName, "format", "", "Output format for encode (e.g. bc1, bc3_srgb, bc7); detected when empty")
	flag.StringVar(&methodName, "method", "balanced", "Compression method: speed, balanced, quality")
	flag.BoolVar(&mipmaps, "mips", true, "Generate a full mip chain when encoding")
	flag.IntVar(&mipLevel, "mip", 0, "Mip level to decode")
	flag.IntVar(&workers, "workers", 0, "Encoder goroutines per level (0 = GOMAXPROCS)")
	flag.IntVar(&level, "level", 3, "zstd level for .bcz and .zst outputs")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&forceOverwrite, "force", false, "Overwrite existing outputs and allow a non-empty batch output directory")

	flag.Usage = printUsage
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	texture.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("command is required")
	}

	switch cmd, args := args[0], args[1:]; cmd {
	case "decode":
		if len(args) != 2 {
			return fmt.Errorf("usage: texconv decode <in.dds|in.bcz> <out.png>")
		}
		if err := decodeFile(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Decoded %s → %s\n", args[0], args[1])

	case "encode":
		if len(args) != 2 {
			return fmt.Errorf("usage: texconv encode <in.png|in.dds|in.bcz> <out.dds|out.bcz>")
		}
		opts, err := encodeOptions()
		if err != nil {
			return err
		}
		if err := encodeFile(args[0], args[1], opts); err != nil {
			return err
		}
		fmt.Printf("Encoded %s → %s\n", args[0], args[1])

	case "info":
		if len(args) != 1 {
			return fmt.Errorf("usage: texconv info <in>")
		}
		return showInfo(args[0])

	case "batch":
		if len(args) != 3 {
			return fmt.Errorf("usage: texconv batch <decode|encode> <dir> <out>")
		}
		return batchConvert(args[0], args[1], args[2])

	case "wrap":
		if len(args) != 3 {
			return fmt.Errorf("usage: texconv wrap <in.raw> <in.meta> <out.dds|out.bcz>")
		}
		if err := wrapFile(args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Printf("Wrapped %s → %s\n", args[0], args[2])

	default:
		flag.Usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}

// encodeOptions translates the encode flags.
func encodeOptions() ([]texture.Option, error) {
	method, err := bc.ParseMethod(methodName)
	if err != nil {
		return nil, err
	}
	opts := []texture.Option{
		texture.WithMethod(method),
		texture.WithMipmaps(mipmaps),
		texture.WithWorkers(workers),
	}
	if formatName != "" {
		f, err := bc.ParseFormat(formatName)
		if err != nil {
			return nil, err
		}
		opts = append(opts, texture.WithFormat(f))
	}
	return opts, nil
}

func printUsage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "texconv - block-compressed texture converter")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  texconv [flags] decode <in.dds|in.bcz> <out.png>")
	fmt.Fprintln(out, "  texconv [flags] encode <in.png|in.dds|in.bcz> <out.dds|out.bcz>")
	fmt.Fprintln(out, "  texconv [flags] info <in.dds|in.bcz|in.meta>")
	fmt.Fprintln(out, "  texconv [flags] batch <decode|encode> <dir> <out>")
	fmt.Fprintln(out, "  texconv [flags] wrap <in.raw> <in.meta> <out.dds|out.bcz>")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Images: png, jpeg, bmp, tiff, webp (input only). Append .zst to any path for zstd streams.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Formats:")
	for _, f := range bc.Formats {
		fmt.Fprintf(out, "  %-9s %2d bytes/block, decodes to %v\n", f, f.BlockBytes(), f.DecodedLayout())
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Flags:")
	flag.PrintDefaults()
}
