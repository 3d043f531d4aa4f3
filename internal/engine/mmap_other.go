//go:build !unix

package engine

import "os"

// mapFile reads path into memory where mapping is unavailable.
func mapFile(path string) ([]byte, func() error, error) {
	b, err := os.ReadFile(path)
	return b, nil, err
}
