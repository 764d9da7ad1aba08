package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"educonnect_backend/internal/config"
	"educonnect_backend/internal/model"
	"educonnect_backend/internal/util"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// UploadResult describes a stored object. ObjectKey is the provider-side
// handle used for later removal; URL is what clients fetch.
type UploadResult struct {
	URL       string `json:"url"`
	ObjectKey string `json:"objectKey"`
	FileType  string `json:"fileType"`
	Size      int64  `json:"size"`
}

// StorageProvider abstracts where uploaded files live. The MinIO provider is
// the production path; the local provider serves development and tests.
type StorageProvider interface {
	Upload(ctx context.Context, r io.Reader, size int64, filename, contentType string) (*UploadResult, error)
	Remove(ctx context.Context, objectKey string) error
}

type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := newMinioProvider(&cfg.Storage.Minio)
		if err != nil {
			return nil, err
		}
		return &StorageService{Provider: p}, nil
	case util.StorageLocal, "":
		return &StorageService{Provider: &LocalProvider{
			Dir:     cfg.Storage.Local.Dir,
			BaseURL: cfg.Storage.Local.BaseURL,
		}}, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
}

func (s *StorageService) Upload(ctx context.Context, r io.Reader, size int64, filename, contentType string) (*UploadResult, error) {
	return s.Provider.Upload(ctx, r, size, filename, contentType)
}

func (s *StorageService) Remove(ctx context.Context, objectKey string) error {
	return s.Provider.Remove(ctx, objectKey)
}

// objectKey namespaces uploads by a fresh uuid so concurrent uploads of the
// same filename never collide.
func objectKey(filename string) string {
	return model.GenerateUUID() + "/" + filepath.Base(filename)
}

// MinioProvider stores objects in a MinIO (S3-compatible) bucket.
type MinioProvider struct {
	Client  *minio.Client
	Bucket  string
	BaseURL string
}

func newMinioProvider(cfg *config.MinioConfig) (*MinioProvider, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &MinioProvider{Client: client, Bucket: cfg.Bucket, BaseURL: baseURL}, nil
}

func (p *MinioProvider) Upload(ctx context.Context, r io.Reader, size int64, filename, contentType string) (*UploadResult, error) {
	key := objectKey(filename)
	info, err := p.Client.PutObject(ctx, p.Bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("minio put: %w", err)
	}
	return &UploadResult{
		URL:       p.BaseURL + "/" + key,
		ObjectKey: key,
		FileType:  contentType,
		Size:      info.Size,
	}, nil
}

func (p *MinioProvider) Remove(ctx context.Context, objectKey string) error {
	return p.Client.RemoveObject(ctx, p.Bucket, objectKey, minio.RemoveObjectOptions{})
}

// LocalProvider stores objects under a directory on disk, served by the
// static file route.
type LocalProvider struct {
	Dir     string
	BaseURL string
}

func (p *LocalProvider) Upload(_ context.Context, r io.Reader, size int64, filename, contentType string) (*UploadResult, error) {
	key := objectKey(filename)
	path := filepath.Join(p.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return nil, err
	}
	if size > 0 && written != size {
		return nil, fmt.Errorf("short write: got %d of %d bytes", written, size)
	}
	return &UploadResult{
		URL:       strings.TrimSuffix(p.BaseURL, "/") + "/" + key,
		ObjectKey: key,
		FileType:  contentType,
		Size:      written,
	}, nil
}

func (p *LocalProvider) Remove(_ context.Context, objectKey string) error {
	path := filepath.Join(p.Dir, filepath.FromSlash(objectKey))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
