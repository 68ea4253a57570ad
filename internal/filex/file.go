// Package filex contains small file helpers used by upload flows.
package filex

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// ReadBase64 reads the file at path and returns its contents encoded as a
// standard base64 string, together with the MIME type guessed from the file
// extension (empty when unknown). Used by endpoints that embed binary
// payloads in JSON bodies.
func ReadBase64(path string) (content string, mimeType string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(data), mime.TypeByExtension(filepath.Ext(path)), nil
}

// EnsureSubDir creates (if needed) a subdirectory of the current working
// directory and returns its absolute path.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
