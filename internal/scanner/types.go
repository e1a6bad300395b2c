package scanner

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fenilsonani/dupsweep/pkg/utils"
	"github.com/spf13/afero"
)

// FileRecord is the immutable description of one scanned file
type FileRecord struct {
	Path      string    `json:"path" yaml:"path"`
	Name      string    `json:"name" yaml:"name"`
	Extension string    `json:"extension" yaml:"extension"`
	Size      int64     `json:"size" yaml:"size"`
	ModTime   time.Time `json:"mod_time" yaml:"mod_time"`
	Checksum  string    `json:"checksum" yaml:"checksum"`
}

// NewFileRecord reads the whole file at path and builds its record.
// Any failure to open, stat or read the file is returned as a *HashError.
func NewFileRecord(fs afero.Fs, path string, algo utils.Algorithm) (FileRecord, error) {
	file, err := fs.Open(path)
	if err != nil {
		return FileRecord{}, &HashError{Path: path, Err: err}
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return FileRecord{}, &HashError{Path: path, Err: err}
	}

	checksum, err := utils.HashReader(file, algo)
	if err != nil {
		return FileRecord{}, &HashError{Path: path, Err: err}
	}

	name := filepath.Base(path)
	return FileRecord{
		Path:      path,
		Name:      name,
		Extension: extension(name),
		Size:      info.Size(),
		ModTime:   info.ModTime(),
		Checksum:  checksum,
	}, nil
}

// String renders the record for listings
func (r FileRecord) String() string {
	return fmt.Sprintf("%s (%s, modified %s)", r.Path, utils.FormatBytes(r.Size), r.ModTime.Format("2006-01-02 15:04:05"))
}

// extension returns the final suffix of name, treating dotfiles like ".bashrc" as having none
func extension(name string) string {
	trimmed := strings.TrimLeft(name, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 || idx == len(trimmed)-1 {
		return ""
	}
	return trimmed[idx:]
}

// ScanResult represents the result of a scan operation
type ScanResult struct {
	Root      string
	Recursive bool
	Records   []FileRecord
	TotalSize int64
	Errors    []error // only populated when unreadable files are skipped
}

// ProgressCallback is called after each file is hashed
type ProgressCallback func(done, total int, currentPath string)
