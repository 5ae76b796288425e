package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const (
	slotExt     = ".json"
	tempDirName = ".tmp"
)

// DiskvSlots stores each slot as <base>/<key>.json.
type DiskvSlots struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv creates a diskv-backed store rooted at basePath.
func NewDiskv(basePath string) (*DiskvSlots, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &DiskvSlots{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           filepath.Join(basePath, tempDirName),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			// Other processes may rewrite slots; always read from disk.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

func (s *DiskvSlots) BasePath() string {
	return s.basePath
}

func (s *DiskvSlots) Get(_ context.Context, key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(val), true, nil
}

func (s *DiskvSlots) Set(_ context.Context, key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	return s.d.Write(key, []byte(value))
}

// Path is the file holding key.
func (s *DiskvSlots) Path(key string) string {
	return filepath.Join(s.basePath, key+slotExt)
}

func (s *DiskvSlots) Close() error { return nil }

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key + slotExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, slotExt)
}

// keyForPath maps a file under base back to its slot key, or "" when the
// file is not a slot.
func keyForPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." {
		return ""
	}
	if strings.ContainsRune(rel, os.PathSeparator) || strings.HasPrefix(rel, ".") {
		return ""
	}
	if !strings.HasSuffix(rel, slotExt) {
		return ""
	}
	return strings.TrimSuffix(rel, slotExt)
}
