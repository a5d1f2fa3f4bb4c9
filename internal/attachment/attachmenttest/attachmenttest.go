// Package attachmenttest builds attachment registries backed by the in-memory
// record store and a temporary local blob store, for feature tests.
package attachmenttest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"invest-portal/internal/attachment"
	"invest-portal/internal/blobstore"
	"invest-portal/internal/recordstore"

	"go.uber.org/zap"
)

var (
	PNG  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	JPEG = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 64)...)
	PDF  = append([]byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"), make([]byte, 64)...)
)

type Env struct {
	Registry *attachment.Registry
	Blobs    *blobstore.LocalStore
	Root     string
	Stores   map[string]*recordstore.MemoryStore
}

// New returns an Env with every schema from attachment.Schemas registered.
// unique maps a collection to its unique fields.
func New(t *testing.T, unique map[string][]string) *Env {
	t.Helper()

	root := t.TempDir()
	env := &Env{
		Blobs:  blobstore.NewLocalStore(root, "/uploads"),
		Root:   root,
		Stores: map[string]*recordstore.MemoryStore{},
	}
	open := func(collection string) recordstore.Store {
		s := recordstore.NewMemoryStore(unique[collection]...)
		env.Stores[collection] = s
		return s
	}
	env.Registry = attachment.NewRegistry(open, env.Blobs, zap.NewNop(), attachment.Schemas()...)
	if err := env.Registry.Prepare(context.Background()); err != nil {
		t.Fatalf("prepare blob store: %v", err)
	}
	return env
}

// Uploads builds a single-file upload set.
func Uploads(field, filename string, data []byte) attachment.Uploads {
	u := attachment.Uploads{}
	u.Add(field, attachment.FromBytes(filename, data))
	return u
}

// Exists reports whether a /uploads/... reference is present on disk.
func (e *Env) Exists(ref string) bool {
	rel := strings.TrimPrefix(ref, "/uploads/")
	_, err := os.Stat(filepath.Join(e.Root, filepath.FromSlash(rel)))
	return err == nil
}

// Files counts the blobs stored under category.
func (e *Env) Files(category string) int {
	entries, err := os.ReadDir(filepath.Join(e.Root, category))
	if err != nil {
		return 0
	}
	return len(entries)
}
