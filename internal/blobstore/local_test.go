package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateName(t *testing.T) {
	re := regexp.MustCompile(`^[a-zA-Z0-9_-]+-\d+-\d+\.png$`)

	name := GenerateName("My Logo (final).PNG")
	assert.Regexp(t, re, name)
	assert.True(t, strings.HasPrefix(name, "My-Logo-final-"))

	assert.True(t, strings.HasPrefix(GenerateName("../../etc/passwd"), "passwd-"))
	assert.True(t, strings.HasPrefix(GenerateName(".png"), "file-"))

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		n := GenerateName("a.png")
		assert.False(t, seen[n], "duplicate name %s", n)
		seen[n] = true
	}
}

func TestLocalStoreSaveDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewLocalStore(root, "/uploads")

	require.NoError(t, store.Prepare(ctx, []string{"members", "gallery"}))
	assert.DirExists(t, filepath.Join(root, "members"))
	assert.DirExists(t, filepath.Join(root, "gallery"))

	ref, err := store.Save(ctx, "members", strings.NewReader("hello"), "photo.JPG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref.ReferencePath, "/uploads/members/photo-"))
	assert.Equal(t, int64(5), ref.SizeBytes)
	assert.Equal(t, ".jpg", ref.OriginalExtension)
	assert.True(t, store.Owns(ref.ReferencePath))

	ok, err := store.Exists(ctx, ref.ReferencePath)
	require.NoError(t, err)
	assert.True(t, ok)

	objects, err := store.List(ctx, "members")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, ref.ReferencePath, objects[0].ReferencePath)

	require.NoError(t, store.Delete(ctx, ref.ReferencePath))
	ok, err = store.Exists(ctx, ref.ReferencePath)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStoreDeleteMissingIsNoop(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/uploads")
	assert.NoError(t, store.Delete(context.Background(), "/uploads/members/never-existed.png"))
}

func TestLocalStoreRejectsForeignPaths(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0644))
	t.Cleanup(func() { os.Remove(outside) })

	store := NewLocalStore(root, "/uploads")
	ctx := context.Background()

	assert.ErrorIs(t, store.Delete(ctx, "https://cdn.example.com/a.png"), ErrNotOwned)
	assert.ErrorIs(t, store.Delete(ctx, "/uploads/../keep.txt"), ErrPathTraversal)
	assert.FileExists(t, outside)
	assert.False(t, store.Owns("/uploadsX/a.png"))
}

func TestLocalStoreInvalidCategory(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "uploads/")
	_, err := store.Save(context.Background(), "../etc", strings.NewReader("x"), "a.txt")
	assert.Error(t, err)
	assert.Error(t, store.Prepare(context.Background(), []string{"a/b"}))
}

func TestS3StoreKeys(t *testing.T) {
	store := &S3Store{bucket: "b", baseURL: "https://cdn.example.com"}

	key, err := store.key("https://cdn.example.com/gallery/a-1-2.png")
	require.NoError(t, err)
	assert.Equal(t, "gallery/a-1-2.png", key)

	_, err = store.key("/uploads/gallery/a.png")
	assert.ErrorIs(t, err, ErrNotOwned)
	_, err = store.key("https://cdn.example.com/../x")
	assert.ErrorIs(t, err, ErrPathTraversal)
}
