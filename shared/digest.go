package shared

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spacemeshos/sha256-simd"
)

// FileDigest returns the hex encoded sha256 of the named file.
func FileDigest(name string) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %v: %w", name, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CompareDigests fails with a DigestMismatchError if the two files differ.
func CompareDigests(src, dst string) (string, error) {
	expected, err := FileDigest(src)
	if err != nil {
		return "", err
	}
	found, err := FileDigest(dst)
	if err != nil {
		return "", err
	}
	if expected != found {
		return "", DigestMismatchError{Source: src, Destination: dst, Expected: expected, Found: found}
	}
	return expected, nil
}
