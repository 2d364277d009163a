package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"snapdiff/internal/version"
)

// DescriptorFileName sits beside the database and records how it was
// created, so a future schema change can detect older stores without
// opening them.
const DescriptorFileName = "history.toml"

// Descriptor describes a history store on disk
type Descriptor struct {
	SchemaVersion int       `toml:"schema_version"`
	CreatedAt     time.Time `toml:"created_at"`
	CreatedBy     string    `toml:"created_by"`
}

func writeDescriptor(dir string) error {
	desc := Descriptor{
		SchemaVersion: currentSchemaVersion,
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     "snapdiff " + version.Version,
	}

	f, err := os.Create(filepath.Join(dir, DescriptorFileName))
	if err != nil {
		return fmt.Errorf("failed to write history descriptor: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(desc); err != nil {
		return fmt.Errorf("failed to encode history descriptor: %w", err)
	}
	return nil
}

// ReadDescriptor loads the descriptor for a history directory.
func ReadDescriptor(dir string) (*Descriptor, error) {
	var desc Descriptor
	if _, err := toml.DecodeFile(filepath.Join(dir, DescriptorFileName), &desc); err != nil {
		return nil, fmt.Errorf("failed to read history descriptor: %w", err)
	}
	return &desc, nil
}
