package ui

import (
	"io"
	"os"

	"github.com/fenilsonani/dupsweep/internal/scanner"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// HashProgress draws a progress bar while the scanner hashes files
type HashProgress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewHashProgress creates a progress display writing to w. The bar is
// created on the first update, once the number of files is known.
func NewHashProgress(w io.Writer) *HashProgress {
	return &HashProgress{w: w}
}

// Callback returns the function to hand to Scanner.SetProgressCallback
func (hp *HashProgress) Callback() scanner.ProgressCallback {
	return func(done, total int, currentPath string) {
		if hp.bar == nil {
			hp.bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(hp.w),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(15),
				progressbar.OptionSetDescription("Hashing files..."),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = hp.bar.Set(done)
	}
}

// Finish completes the bar if one was drawn
func (hp *HashProgress) Finish() {
	if hp.bar != nil {
		_ = hp.bar.Finish()
	}
}
