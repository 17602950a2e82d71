package disksearch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FS is the filesystem surface the pipeline depends on. Every method is
// called concurrently from several workers.
type FS interface {
	// Subdirs returns the immediate subdirectories of dir as full paths.
	Subdirs(dir string) ([]string, error)

	// Files returns the immediate regular files of dir whose base name
	// satisfies keep, as full paths.
	Files(dir string, keep func(name string) bool) ([]string, error)

	// CopyFile writes the content of src to destDir/base(src), creating
	// destDir and its parents when missing and replacing any existing
	// file. It returns the number of bytes written.
	CopyFile(src, destDir string) (int64, error)
}

// OSFS implements [FS] on the local filesystem. Symbolic links are never
// followed when listing.
type OSFS struct{}

var _ FS = OSFS{}

// Subdirs lists the directories directly inside dir. Symbolic links to
// directories are not included.
func (OSFS) Subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

// Files lists the regular files directly inside dir whose names satisfy
// keep. Symbolic links and special files are skipped.
func (OSFS) Files(dir string, keep func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && keep(e.Name()) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

// CopyFile copies through a temporary file in destDir followed by a rename,
// so readers of the destination never see a partially written file even
// when two copiers write the same name.
func (OSFS) CopyFile(src, destDir string) (n int64, err error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("create destination: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(destDir, ".disksearch-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	n, err = io.Copy(tmp, in)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		return n, fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return n, fmt.Errorf("close %s: %w", tmpPath, err)
	}

	target := filepath.Join(destDir, filepath.Base(src))
	if err = os.Rename(tmpPath, target); err != nil {
		return n, fmt.Errorf("rename to %s: %w", target, err)
	}
	return n, nil
}
