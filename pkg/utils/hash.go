package utils

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Algorithm names a content digest used for duplicate detection
type Algorithm string

const (
	AlgorithmMD5     Algorithm = "md5"
	AlgorithmSHA256  Algorithm = "sha256"
	AlgorithmBLAKE2b Algorithm = "blake2b"
)

// DefaultAlgorithm is the 128-bit digest used when nothing else is configured
const DefaultAlgorithm = AlgorithmMD5

// Algorithms lists every supported digest
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmMD5, AlgorithmSHA256, AlgorithmBLAKE2b}
}

// ParseAlgorithm converts a user supplied name to an Algorithm
func ParseAlgorithm(name string) (Algorithm, error) {
	switch algo := Algorithm(strings.ToLower(strings.TrimSpace(name))); algo {
	case "":
		return DefaultAlgorithm, nil
	case AlgorithmMD5, AlgorithmSHA256, AlgorithmBLAKE2b:
		return algo, nil
	default:
		return "", fmt.Errorf("unknown hash algorithm: %s", name)
	}
}

// NewHash returns a fresh hash.Hash for the algorithm
func NewHash(algo Algorithm) (hash.Hash, error) {
	switch algo {
	case AlgorithmMD5, "":
		return md5.New(), nil
	case AlgorithmSHA256:
		return sha256.New(), nil
	case AlgorithmBLAKE2b:
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("unknown hash algorithm: %s", algo)
	}
}

// HashReader streams everything from r through the digest and returns it hex encoded
func HashReader(r io.Reader, algo Algorithm) (string, error) {
	h, err := NewHash(algo)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
