package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Ext is the suffix of compressed transcripts.
const Ext = ".zst"

// Archive compresses the analyzed transcript into archiveDir/{name}.txt.zst.
// Returns the archive path.
func Archive(text, name, archiveDir string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("archive name is empty")
	}

	destPath := Path(name, archiveDir)

	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer dest.Close()

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if _, err := io.Copy(encoder, strings.NewReader(text)); err != nil {
		encoder.Close()
		return "", fmt.Errorf("compress: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}

	return destPath, nil
}

// ReadFile returns the content of path, decompressing it when the name
// ends in .zst.
func ReadFile(path string) ([]byte, error) {
	if !IsCompressed(path) {
		return os.ReadFile(path)
	}

	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	decoder, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	data, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return data, nil
}

// IsCompressed reports whether path names a zstd file.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, Ext)
}

// IsArchived returns true if an archive file exists for the given name.
func IsArchived(name, archiveDir string) bool {
	_, err := os.Stat(Path(name, archiveDir))
	return err == nil
}

// Path returns the deterministic archive path for a name.
func Path(name, archiveDir string) string {
	return filepath.Join(archiveDir, name+".txt"+Ext)
}

// Name builds the archive name for a run: the date plus the first eight
// characters of the run id.
func Name(date, runID string) string {
	if len(runID) > 8 {
		runID = runID[:8]
	}
	return date + "-" + runID
}
