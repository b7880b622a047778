package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
	"github.com/sqweek/dialog"
)

// loadROM reads path and, if it is a .zip or .7z archive, extracts the
// first entry rather than the raw archive bytes. Anything else is
// returned as-is; a host that wants to support other boot-rom or raw
// .gb/.gbc extensions doesn't need to special-case them here.
func loadROM(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".zip":
		r, err := zip.NewReader(f, info.Size())
		if err != nil {
			return nil, fmt.Errorf("open zip: %w", err)
		}
		if len(r.File) == 0 {
			return nil, fmt.Errorf("archive %s is empty", path)
		}
		rc, err := r.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)

	case ".7z":
		r, err := sevenzip.NewReader(f, info.Size())
		if err != nil {
			return nil, fmt.Errorf("open 7z: %w", err)
		}
		if len(r.File) == 0 {
			return nil, fmt.Errorf("archive %s is empty", path)
		}
		rc, err := r.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)

	default:
		return io.ReadAll(f)
	}
}

// pickFile opens a native file-selection dialog for interactive use
// when no ROM path was given on the command line.
func pickFile() (string, error) {
	return dialog.File().Title("Select a Game Boy ROM").Load()
}
