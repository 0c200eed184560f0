package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/ports"
)

// TimestampLayout formats session start times in output file names
const TimestampLayout = "20060102_150405"

// maxClaimAttempts bounds the _N suffix search
const maxClaimAttempts = 10000

// PathNamer assigns output files as <dir>/<key>/<key>_<timestamp>.<container>
type PathNamer struct {
	container string
	outputDir string
}

// Verify interface compliance at compile time
var _ ports.PathNamer = (*PathNamer)(nil)

// NewPathNamer creates a PathNamer writing below outputDir
func NewPathNamer(outputDir, container string) *PathNamer {
	return &PathNamer{
		container: strings.TrimPrefix(container, "."),
		outputDir: outputDir,
	}
}

// Path returns the undisambiguated output path without touching the disk
func (n *PathNamer) Path(sourceKey string, startedAt time.Time) string {
	key := safeKey(sourceKey)
	name := fmt.Sprintf("%s_%s.%s", key, startedAt.Format(TimestampLayout), n.container)
	return filepath.Join(n.outputDir, key, name)
}

// Claim creates an empty file at the first free path, appending _1, _2, ...
// before the extension when needed. Concurrent claims never return the same
// path because creation uses O_EXCL.
func (n *PathNamer) Claim(sourceKey string, startedAt time.Time) (string, error) {
	base := n.Path(sourceKey, startedAt)
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 0; i < maxClaimAttempts; i++ {
		path := base
		if i > 0 {
			path = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			f.Close()
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("failed to claim output path: %w", err)
		}
	}
	return "", fmt.Errorf("no free output path for %s after %d attempts", base, maxClaimAttempts)
}

func safeKey(sourceKey string) string {
	key := domain.SanitizeFilename(sourceKey)
	if key == "" || key == "." || key == ".." {
		return "stream"
	}
	return key
}
