// Package project finds and decodes reckon.toml.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"reckon/internal/diag"
)

// ManifestName is the file searched for by Find.
const ManifestName = "reckon.toml"

// SourceExt is the extension of reckon source files.
const SourceExt = ".rk"

// ErrNoManifest is returned by Load when no reckon.toml exists up the tree.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

// Manifest is a decoded reckon.toml and where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package     PackageConfig     `toml:"package"`
	Run         RunConfig         `toml:"run"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type RunConfig struct {
	Main string `toml:"main"`
}

// DiagnosticsConfig holds defaults that CLI flags override.
type DiagnosticsConfig struct {
	Max     int    `toml:"max"`
	Context int    `toml:"context"`
	Color   string `toml:"color"` // auto|on|off
}

// ManifestError is a problem with the content of reckon.toml.
type ManifestError struct {
	Code diag.Code
	Path string
	Msg  string
	Err  error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Code.ID(), e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Code.ID(), e.Path, e.Msg)
}

func (e *ManifestError) Unwrap() error { return e.Err }

func invalid(path, msg string) *ManifestError {
	return &ManifestError{Code: diag.PrjManifestInvalid, Path: path, Msg: msg}
}

// Find walks up from startDir to locate reckon.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes the manifest governing startDir.
func Load(startDir string) (*Manifest, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	return LoadFile(path)
}

// LoadFile decodes and validates one manifest file.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, &ManifestError{Code: diag.PrjManifestInvalid, Path: path, Msg: "failed to parse TOML", Err: err}
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, invalid(path, "missing [package].name")
	}
	if !meta.IsDefined("run", "main") || strings.TrimSpace(cfg.Run.Main) == "" {
		return nil, invalid(path, "missing [run].main")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, invalid(path, fmt.Sprintf("unknown key %q", undecoded[0].String()))
	}
	if cfg.Diagnostics.Max < 0 {
		return nil, invalid(path, "[diagnostics].max must not be negative")
	}
	switch cfg.Diagnostics.Color {
	case "", "auto", "on", "off":
	default:
		return nil, invalid(path, fmt.Sprintf("[diagnostics].color must be auto|on|off, got %q", cfg.Diagnostics.Color))
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// MainPath resolves [run].main against the manifest directory. The target
// may be a .rk file or a directory of them.
func (m *Manifest) MainPath() (string, error) {
	mainPath := filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Run.Main)))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &ManifestError{Code: diag.PrjMainMissing, Path: m.Path, Msg: "[run].main path does not exist: " + mainPath, Err: err}
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", m.Path, err)
	}
	if !info.IsDir() && filepath.Ext(mainPath) != SourceExt {
		return "", invalid(m.Path, "[run].main must be a "+SourceExt+" file or directory")
	}
	return mainPath, nil
}
