package cleaner

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DeletionManifest keeps track of deleted files
type DeletionManifest struct {
	ID        string            `yaml:"id"`
	Root      string            `yaml:"root"`
	Timestamp time.Time         `yaml:"timestamp"`
	TotalSize int64             `yaml:"total_size"`
	Files     []DeletedFileInfo `yaml:"files"`
}

// DeletedFileInfo represents information about a deleted file
type DeletedFileInfo struct {
	Path      string    `yaml:"path"`
	Size      int64     `yaml:"size"`
	Checksum  string    `yaml:"checksum"`
	DeletedAt time.Time `yaml:"deleted_at"`
}

// NewDeletionManifest creates a new DeletionManifest with a fresh run ID
func NewDeletionManifest(root string) *DeletionManifest {
	return &DeletionManifest{
		ID:        uuid.NewString(),
		Root:      root,
		Timestamp: time.Now(),
		Files:     []DeletedFileInfo{},
	}
}

// Add adds a file to the manifest
func (m *DeletionManifest) Add(path string, size int64, checksum string) {
	m.Files = append(m.Files, DeletedFileInfo{
		Path:      path,
		Size:      size,
		Checksum:  checksum,
		DeletedAt: time.Now(),
	})
	m.TotalSize += size
}

// Save writes the manifest as YAML
func (m *DeletionManifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
