// Package digest provides the content digest capability using SHA-256.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/ahouse2/LCAS/internal/core/ports/driven"
)

// Ensure SHA256 implements the interface.
var _ driven.Digester = (*SHA256)(nil)

// SHA256 computes SHA-256 hex digests.
type SHA256 struct{}

// New creates a new SHA-256 digester.
func New() *SHA256 {
	return &SHA256{}
}

// Algorithm names the digest algorithm.
func (d *SHA256) Algorithm() string {
	return "sha256"
}

// Sum returns the hex digest of the given bytes.
func (d *SHA256) Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SumReader returns the hex digest of everything read from r.
func (d *SHA256) SumReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SumFile returns the hex digest of the file at path.
func (d *SHA256) SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", path, err)
	}
	defer f.Close()
	return d.SumReader(f)
}
