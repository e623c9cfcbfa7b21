package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"boutiqueCMS/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOStorage struct {
	client *minio.Client
	bucket string
}

func NewMinIOStorage(ctx context.Context, cfg config.MinIO) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента MinIO: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки бакета %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("ошибка создания бакета %s: %w", cfg.BucketName, err)
		}
	}

	return &MinIOStorage{client: client, bucket: cfg.BucketName}, nil
}

func isNoSuchKey(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

func (m *MinIOStorage) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (int64, error) {
	if _, err := CleanName(name); err != nil {
		return 0, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := m.client.PutObject(ctx, m.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return 0, fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}
	return info.Size, nil
}

func (m *MinIOStorage) Open(ctx context.Context, name string) (io.ReadSeekCloser, *ObjectInfo, error) {
	if _, err := CleanName(name); err != nil {
		return nil, nil, err
	}

	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка чтения из MinIO: %w", err)
	}

	// GetObject is lazy; Stat surfaces a missing key.
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		if isNoSuchKey(err) {
			return nil, nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("ошибка чтения атрибутов из MinIO: %w", err)
	}

	return obj, &ObjectInfo{Name: name, Size: st.Size, ModTime: st.LastModified}, nil
}

func (m *MinIOStorage) Stat(ctx context.Context, name string) (*ObjectInfo, error) {
	if _, err := CleanName(name); err != nil {
		return nil, err
	}

	st, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения атрибутов из MinIO: %w", err)
	}

	return &ObjectInfo{Name: name, Size: st.Size, ModTime: st.LastModified}, nil
}

func (m *MinIOStorage) Exists(ctx context.Context, name string) (bool, error) {
	_, err := m.Stat(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete stats first because RemoveObject succeeds on missing keys.
func (m *MinIOStorage) Delete(ctx context.Context, name string) error {
	if _, err := m.Stat(ctx, name); err != nil {
		return err
	}

	err := m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{GovernanceBypass: true})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}

func (m *MinIOStorage) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo

	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("ошибка получения списка объектов: %w", obj.Err)
		}
		objects = append(objects, ObjectInfo{Name: obj.Key, Size: obj.Size, ModTime: obj.LastModified})
	}

	return objects, nil
}
