package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const starterSource = `let width = 6
let height = 7
width * height
`

// Init writes a starter reckon.toml and main.rk into dir. Existing files
// are left alone and reported as an error.
func Init(dir, name string) (*Manifest, error) {
	if name == "" {
		name = filepath.Base(dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %q: %w", dir, err)
	}

	cfg := Config{
		Package:     PackageConfig{Name: name},
		Run:         RunConfig{Main: "main" + SourceExt},
		Diagnostics: DiagnosticsConfig{Max: 100, Context: 8, Color: "auto"},
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	manifestPath := filepath.Join(dir, ManifestName)
	if err := writeNew(manifestPath, buf.Bytes()); err != nil {
		return nil, err
	}
	if err := writeNew(filepath.Join(dir, cfg.Run.Main), []byte(starterSource)); err != nil {
		return nil, err
	}
	return &Manifest{Path: manifestPath, Root: dir, Config: cfg}, nil
}

func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists", path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
