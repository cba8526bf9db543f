package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// ReadDocument returns the whole file at `path`, byte for byte.
func ReadDocument(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return data, nil
}

// WriteDocument replaces the file at `path` with everything `src` writes,
// creating the file if it does not exist.
func WriteDocument(fsys afero.Fs, path string, src io.WriterTo) error {
	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if _, err := src.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
