// Package storage uploads craft images to Google Cloud Storage.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

type GCSUploader struct {
	client *storage.Client
	bucket string
}

// NewGCSUploader uses the credentials file when given, otherwise application
// default credentials.
func NewGCSUploader(ctx context.Context, bucket, credentialsFile string) (*GCSUploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs: bucket name is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSUploader{
		client: client,
		bucket: bucket,
	}, nil
}

func (u *GCSUploader) Close() error {
	return u.client.Close()
}

// Upload writes data to the named object and returns its gs:// URI.
func (u *GCSUploader) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	w := u.client.Bucket(u.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize %s: %w", name, err)
	}
	return URI(u.bucket, name), nil
}

func URI(bucket, name string) string {
	return "gs://" + bucket + "/" + name
}

// ObjectName lays uploads out as <profile>/<YYYYmmdd_HHMMSS>_<id8><ext>.
func ObjectName(profileID, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%s_%s%s", profileID, now.UTC().Format("20060102_150405"), id, ext)
}
