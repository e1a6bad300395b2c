package scanner

import (
	"fmt"
	"testing"

	"github.com/fenilsonani/dupsweep/internal/config"
	"github.com/fenilsonani/dupsweep/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// =============================================================================
// Scanner Benchmarks
// =============================================================================

func benchFs(files, size int) afero.Fs {
	fs := afero.NewMemMapFs()
	content := make([]byte, size)
	for i := 0; i < files; i++ {
		content[0] = byte(i % 7)
		afero.WriteFile(fs, fmt.Sprintf("/bench/dir%d/file%d.bin", i%10, i), content, 0644)
	}
	return fs
}

func BenchmarkScanRecursive(b *testing.B) {
	fs := benchFs(500, 4096)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	s := New(config.GetDefault(), logrus.NewEntry(logger))
	s.SetFs(fs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Scan("/bench", true); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNewFileRecord(b *testing.B) {
	fs := benchFs(1, 1024*1024)

	for _, algo := range utils.Algorithms() {
		b.Run(string(algo), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := NewFileRecord(fs, "/bench/dir0/file0.bin", algo); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
