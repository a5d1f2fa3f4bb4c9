package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"invest-portal/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Store keeps blobs in an S3-compatible bucket (AWS, R2, MinIO) under <category>/<name>.
type S3Store struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	baseURL  string
}

func NewS3Store(cfg config.S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required for s3 storage")
	}

	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 session: %w", err)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Store{
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.Bucket,
		baseURL:  baseURL,
	}, nil
}

// Prepare is a no-op: object stores have no directories.
func (s *S3Store) Prepare(ctx context.Context, categories []string) error {
	for _, c := range categories {
		if err := validCategory(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *S3Store) Save(ctx context.Context, category string, r io.Reader, suggestedName string) (AttachmentRef, error) {
	if err := validCategory(category); err != nil {
		return AttachmentRef{}, err
	}

	ext := strings.ToLower(filepath.Ext(suggestedName))
	key := category + "/" + GenerateName(suggestedName)
	counter := &countingReader{r: r}

	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   counter,
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return AttachmentRef{}, fmt.Errorf("failed to upload to s3: %w", err)
	}

	return AttachmentRef{
		ReferencePath:     s.baseURL + "/" + key,
		SizeBytes:         counter.n,
		OriginalExtension: ext,
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, referencePath string) error {
	key, err := s.key(referencePath)
	if err != nil {
		return err
	}

	// S3 DeleteObject already succeeds for absent keys.
	_, err = s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from s3: %w", err)
	}
	return nil
}

func (s *S3Store) Exists(ctx context.Context, referencePath string) (bool, error) {
	key, err := s.key(referencePath)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.RequestFailure
		if errors.As(err, &aerr) && aerr.StatusCode() == 404 {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *S3Store) List(ctx context.Context, category string) ([]Object, error) {
	if err := validCategory(category); err != nil {
		return nil, err
	}

	var objects []Object
	err := s.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(category + "/"),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, o := range page.Contents {
			objects = append(objects, Object{
				ReferencePath: s.baseURL + "/" + aws.StringValue(o.Key),
				SizeBytes:     aws.Int64Value(o.Size),
				ModTime:       aws.TimeValue(o.LastModified),
			})
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list s3 objects: %w", err)
	}
	return objects, nil
}

func (s *S3Store) Owns(referencePath string) bool {
	return strings.HasPrefix(referencePath, s.baseURL+"/")
}

func (s *S3Store) key(referencePath string) (string, error) {
	if !s.Owns(referencePath) {
		return "", ErrNotOwned
	}
	key := strings.TrimPrefix(referencePath, s.baseURL+"/")
	if key == "" || strings.Contains(key, "..") {
		return "", ErrPathTraversal
	}
	return key, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
