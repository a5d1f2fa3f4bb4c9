package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore keeps blobs under root/<category>/ and serves them under urlPrefix.
type LocalStore struct {
	root      string
	urlPrefix string
}

func NewLocalStore(root, urlPrefix string) *LocalStore {
	return &LocalStore{root: root, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}
}

func (s *LocalStore) Prepare(ctx context.Context, categories []string) error {
	for _, c := range categories {
		if err := validCategory(c); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Join(s.root, c), 0755); err != nil {
			return fmt.Errorf("failed to create upload directory %s: %w", c, err)
		}
	}
	return nil
}

func (s *LocalStore) Save(ctx context.Context, category string, r io.Reader, suggestedName string) (AttachmentRef, error) {
	if err := validCategory(category); err != nil {
		return AttachmentRef{}, err
	}
	if err := ctx.Err(); err != nil {
		return AttachmentRef{}, err
	}

	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return AttachmentRef{}, fmt.Errorf("failed to create directory: %w", err)
	}

	name := GenerateName(suggestedName)
	fullPath := filepath.Join(dir, name)

	// O_EXCL so a name collision fails instead of overwriting another record's blob.
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return AttachmentRef{}, fmt.Errorf("failed to create file: %w", err)
	}

	n, err := io.Copy(file, r)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(fullPath)
		return AttachmentRef{}, fmt.Errorf("failed to write file: %w", err)
	}

	return AttachmentRef{
		ReferencePath:     path.Join(s.urlPrefix, category, name),
		SizeBytes:         n,
		OriginalExtension: strings.ToLower(filepath.Ext(suggestedName)),
	}, nil
}

func (s *LocalStore) Delete(ctx context.Context, referencePath string) error {
	fullPath, err := s.resolve(referencePath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStore) Exists(ctx context.Context, referencePath string) (bool, error) {
	fullPath, err := s.resolve(referencePath)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *LocalStore) List(ctx context.Context, category string) ([]Object, error) {
	if err := validCategory(category); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, category))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	objects := make([]Object, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		objects = append(objects, Object{
			ReferencePath: path.Join(s.urlPrefix, category, e.Name()),
			SizeBytes:     info.Size(),
			ModTime:       info.ModTime(),
		})
	}
	return objects, nil
}

func (s *LocalStore) Owns(referencePath string) bool {
	return strings.HasPrefix(referencePath, s.urlPrefix+"/")
}

// resolve maps a reference path to a file under root, rejecting anything that escapes it.
func (s *LocalStore) resolve(referencePath string) (string, error) {
	if !s.Owns(referencePath) {
		return "", ErrNotOwned
	}

	rel := strings.TrimPrefix(referencePath, s.urlPrefix+"/")
	if strings.Contains(rel, "..") || filepath.IsAbs(rel) {
		return "", ErrPathTraversal
	}

	absPath, err := filepath.Abs(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}
	absBase, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}
	return absPath, nil
}
