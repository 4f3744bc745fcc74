package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/EchoTools/texcomp/pkg/texture"
)

// batchConvert decodes every texture, or encodes every image, under
// inputDir into the same relative paths under outputDir.
func batchConvert(mode, inputDir, outputDir string) error {
	var (
		match  func(string) bool
		outExt string
		opts   []texture.Option
		err    error
	)
	switch mode {
	case "decode":
		match = func(p string) bool { k := kind(p); return k == ".dds" || k == ".bcz" }
		outExt = ".png"
	case "encode":
		match = isImage
		outExt = ".dds"
		if opts, err = encodeOptions(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("batch mode must be 'decode' or 'encode'")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if !forceOverwrite {
		empty, err := isDirEmpty(outputDir)
		if err != nil {
			return fmt.Errorf("check output directory: %w", err)
		}
		if !empty {
			return fmt.Errorf("output directory is not empty (use -force to override)")
		}
	}

	count := 0
	errors := 0

	err = filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !match(path) {
			return nil
		}

		relPath, _ := filepath.Rel(inputDir, path)
		base := strings.TrimSuffix(relPath, filepath.Ext(relPath))
		if isZstd(relPath) {
			base = strings.TrimSuffix(base, filepath.Ext(base))
		}
		outPath := filepath.Join(outputDir, base+outExt)

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", filepath.Dir(outPath), err)
			errors++
			return nil
		}

		var convErr error
		if mode == "decode" {
			convErr = decodeFile(path, outPath)
		} else {
			convErr = encodeFile(path, outPath, opts)
		}

		if convErr != nil {
			fmt.Fprintf(os.Stderr, "convert %s: %v\n", path, convErr)
			errors++
		} else {
			count++
			if count%100 == 0 {
				fmt.Printf("Processed %d files...\n", count)
			}
		}

		return nil
	})

	if err != nil {
		return err
	}

	fmt.Printf("\nCompleted: %d files converted, %d errors\n", count, errors)
	return nil
}
