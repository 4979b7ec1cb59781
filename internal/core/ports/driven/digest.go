package driven

import "io"

// Digester computes deterministic fixed-length hex digests. Used both
// for evidence item identifiers and for preservation integrity records.
type Digester interface {
	// Sum returns the hex digest of the given bytes.
	Sum(data []byte) string

	// SumReader returns the hex digest of everything read from r.
	SumReader(r io.Reader) (string, error)

	// SumFile returns the hex digest of the file at path.
	SumFile(path string) (string, error)

	// Algorithm names the digest algorithm, e.g. "sha256".
	Algorithm() string
}
