// internal/endpoints/staging/staging.go
package staging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Staged temp files carry this prefix so cleanup can tell them apart from
// caller-owned paths passed in via image_paths.
const tempPrefix = "dvi_"

// StageBytes writes image bytes to a uniquely named temp file and returns
// its path. Names are random so concurrently handled requests cannot
// collide.
func StageBytes(data []byte) (string, error) {
	path := tempPath()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to stage image: %w", err)
	}
	return path, nil
}

// StageReader drains r into a uniquely named temp file and returns its path.
func StageReader(r io.Reader) (string, error) {
	path := tempPath()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to stage image: %w", err)
	}

	return path, nil
}

// IsStaged reports whether path was created by this bridge's staging.
func IsStaged(path string) bool {
	return strings.HasPrefix(filepath.Base(path), tempPrefix)
}

// Remove deletes every staged file in paths, ignoring paths that are not
// ours and errors on ones that are already gone.
func Remove(paths []string) {
	for _, p := range paths {
		if p == "" || !IsStaged(p) {
			continue
		}
		_ = os.Remove(p)
	}
}

func tempPath() string {
	name := tempPrefix + strings.ReplaceAll(uuid.New().String(), "-", "") + ".jpg"
	return filepath.Join(os.TempDir(), name)
}
