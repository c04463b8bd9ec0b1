package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultOverlayYaml is written to a new config file the first time
// LoadOrCreateOverlay runs with no existing file. It documents the
// format with a commented-out example rather than defining any atoms,
// so a fresh install behaves exactly like the static table alone.
var DefaultOverlayYaml = []byte(`# fitsunits atom overlay
#
# Each entry extends the recognised atom vocabulary with a
# site-specific unit. Uncomment and edit the example below, or add
# your own entries in the same shape.
#
# - name: ["furlong"]
#   factor: 201.168
#   vector:
#     length: 1
#   prefixPolicy: none
`)

// OverlayPath returns the path to the overlay configuration file.
func OverlayPath() (string, error) {
	path := filepath.Join("fitsunits", "atoms.yaml")
	return xdg.ConfigFile(path)
}

// LoadOrCreateOverlay loads the overlay file if it exists and creates a
// default (empty) one otherwise. Passing forceDefault skips the
// filesystem entirely and returns the built-in empty overlay, which is
// useful for batch/non-interactive invocations that want to ignore
// whatever a user has configured.
func LoadOrCreateOverlay(forceDefault bool) (Overlay, error) {
	if forceDefault {
		log.Printf("Using default (empty) atom overlay\n")
		return unmarshalOverlay(DefaultOverlayYaml)
	}

	path, err := OverlayPath()
	if err != nil {
		return nil, err
	}

	log.Printf("Loading atom overlay from %q\n", path)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("Writing default atom overlay to %q\n", path)
		if err := saveDefaultOverlay(path); err != nil {
			return nil, errors.Wrapf(err, "writing default atom overlay to %q", path)
		}
		return unmarshalOverlay(DefaultOverlayYaml)
	} else if err != nil {
		return nil, errors.Wrapf(err, "loading atom overlay from %q", path)
	}

	overlay, err := unmarshalOverlay(data)
	if err != nil {
		return nil, err
	}

	if err := overlay.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid atom overlay at %q", path)
	}

	return overlay, nil
}

func unmarshalOverlay(data []byte) (Overlay, error) {
	var defs []AtomDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, errors.Wrapf(err, "yaml.Unmarshal")
	}
	return Overlay(defs), nil
}

// saveDefaultOverlay atomically writes the default overlay file,
// creating any missing parent directories first.
func saveDefaultOverlay(path string) error {
	dirPath := filepath.Dir(path)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return errors.Wrapf(err, "os.MkdirAll")
	}

	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644), renameio.WithExistingPermissions())
	if err != nil {
		return errors.Wrapf(err, "renameio.NewPendingFile")
	}
	defer pf.Cleanup()

	if _, err := pf.Write(DefaultOverlayYaml); err != nil {
		return errors.Wrapf(err, "pf.Write")
	}

	if err := pf.CloseAtomicallyReplace(); err != nil {
		return errors.Wrapf(err, "pf.CloseAtomicallyReplace")
	}

	return nil
}

// SaveOverlay atomically writes an overlay to path as YAML, creating
// any missing parent directories first.
func SaveOverlay(path string, overlay Overlay) error {
	data, err := yaml.Marshal([]AtomDef(overlay))
	if err != nil {
		return errors.Wrapf(err, "yaml.Marshal")
	}

	dirPath := filepath.Dir(path)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return errors.Wrapf(err, "os.MkdirAll")
	}

	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644), renameio.WithExistingPermissions())
	if err != nil {
		return errors.Wrapf(err, "renameio.NewPendingFile")
	}
	defer pf.Cleanup()

	if _, err := pf.Write(data); err != nil {
		return errors.Wrapf(err, "pf.Write")
	}

	return pf.CloseAtomicallyReplace()
}
