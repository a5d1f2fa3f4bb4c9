package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"invest-portal/internal/config"

	"go.uber.org/zap"
)

var (
	ErrPathTraversal = errors.New("path traversal detected")
	ErrNotOwned      = errors.New("reference is not managed by this store")
)

// AttachmentRef identifies one stored blob. A new upload always yields a new ref.
type AttachmentRef struct {
	ReferencePath     string `json:"referencePath" bson:"referencePath"`
	SizeBytes         int64  `json:"sizeBytes" bson:"sizeBytes"`
	OriginalExtension string `json:"originalExtension" bson:"originalExtension"`
}

// Object is a stored blob as seen by List.
type Object struct {
	ReferencePath string
	SizeBytes     int64
	ModTime       time.Time
}

// Store saves and removes attachment blobs. Reference paths are stable strings
// that can be written into records and served to clients.
type Store interface {
	Prepare(ctx context.Context, categories []string) error
	Save(ctx context.Context, category string, r io.Reader, suggestedName string) (AttachmentRef, error)
	// Delete removes the blob; deleting an absent blob is not an error.
	Delete(ctx context.Context, referencePath string) error
	Exists(ctx context.Context, referencePath string) (bool, error)
	List(ctx context.Context, category string) ([]Object, error)
	// Owns reports whether referencePath points into this store.
	Owns(referencePath string) bool
}

// NewStore builds the store selected by STORAGE_DRIVER.
func NewStore(cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.StorageDriver {
	case config.StorageS3:
		logger.Info("Using S3 blob store", zap.String("bucket", cfg.S3.Bucket))
		return NewS3Store(cfg.S3)
	default:
		logger.Info("Using local blob store", zap.String("path", cfg.FSPath), zap.String("url", cfg.FSURL))
		return NewLocalStore(cfg.FSPath, cfg.FSURL), nil
	}
}

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// GenerateName returns <base>-<unixMillis>-<random><ext> for suggestedName.
func GenerateName(suggestedName string) string {
	ext := strings.ToLower(filepath.Ext(suggestedName))
	base := strings.TrimSuffix(filepath.Base(suggestedName), filepath.Ext(suggestedName))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "-"), "-")
	if base == "" {
		base = "file"
	}
	if len(base) > 40 {
		base = base[:40]
	}

	rngMu.Lock()
	n := rng.Int63n(1e9)
	rngMu.Unlock()

	return fmt.Sprintf("%s-%d-%d%s", base, time.Now().UnixMilli(), n, ext)
}

func validCategory(category string) error {
	if category == "" || strings.ContainsAny(category, `/\`) || strings.Contains(category, "..") {
		return fmt.Errorf("invalid category %q", category)
	}
	return nil
}
