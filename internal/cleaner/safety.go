package cleaner

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// lstat stats path without following a final symlink when the filesystem allows it
func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if lfs, ok := fs.(afero.Lstater); ok {
		info, _, err := lfs.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}

// checkRemovable rejects anything that is no longer a plain file or a link to one
func checkRemovable(info os.FileInfo) error {
	mode := info.Mode()

	switch {
	case mode.IsDir():
		return fmt.Errorf("is a directory")
	case mode&os.ModeCharDevice != 0:
		return fmt.Errorf("is a character device")
	case mode&os.ModeDevice != 0:
		return fmt.Errorf("is a device file")
	case mode&os.ModeSocket != 0:
		return fmt.Errorf("is a socket")
	case mode&os.ModeNamedPipe != 0:
		return fmt.Errorf("is a named pipe (FIFO)")
	}

	return nil
}
