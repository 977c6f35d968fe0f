// Package assets implements the local filesystem store for generated audio.
// The directory tree is the only persisted state: one directory per batch,
// one vo_<ordinal>.mp3 per variant, immutable once written.
package assets

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL path under which the asset root is served statically.
const PublicPrefix = "/files"

// Store resolves batch identifiers and public URLs to locations under a
// single root directory.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve asset root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset root: %w", err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute asset root directory.
func (s *Store) Root() string {
	return s.root
}

// CreateBatchDir creates the directory for a batch and returns its path.
func (s *Store) CreateBatchDir(batchID string) (string, error) {
	dir := filepath.Join(s.root, batchID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create batch directory: %w", err)
	}
	return dir, nil
}

// FilePath returns the on-disk path for a variant's audio file. Ordinals are
// 1-based.
func (s *Store) FilePath(batchID string, ordinal int) string {
	return filepath.Join(s.root, batchID, FileName(ordinal))
}

// FileName returns the ordinal-stable audio file name.
func FileName(ordinal int) string {
	return fmt.Sprintf("vo_%d.mp3", ordinal)
}

// PublicURL builds the externally reachable URL for a variant's audio file.
func (s *Store) PublicURL(baseURL, batchID string, ordinal int) string {
	return strings.TrimSuffix(baseURL, "/") + path.Join(PublicPrefix, batchID, FileName(ordinal))
}

// Resolve maps a previously issued file URL back to a path under the asset
// root. The boolean is false when the URL does not address a file under the
// root: wrong prefix, traversal segments, or anything else that would escape
// confinement. Existence on disk is not checked here.
func (s *Store) Resolve(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	rel, ok := strings.CutPrefix(u.Path, PublicPrefix+"/")
	if !ok || rel == "" {
		return "", false
	}

	resolved := filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+rel)))

	// Confinement check: the resolved path must stay under the root.
	relToRoot, err := filepath.Rel(s.root, resolved)
	if err != nil || relToRoot == ".." || strings.HasPrefix(relToRoot, ".."+string(filepath.Separator)) {
		return "", false
	}

	return resolved, true
}
