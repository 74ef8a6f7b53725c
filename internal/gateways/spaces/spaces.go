// Package spaces stores item artwork in DigitalOcean Spaces.
package spaces

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/embark-app/embark/internal/config"
	"github.com/google/uuid"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Store struct {
	client objectPutter
	bucket string
	region string
	root   string
}

// New builds a store for the configured Spaces bucket.
func New(ctx context.Context, cfg config.SpacesConfig) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load spaces config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.digitaloceanspaces.com", cfg.Region))
	})
	return newStore(client, cfg), nil
}

func newStore(client objectPutter, cfg config.SpacesConfig) *Store {
	return &Store{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		root:   strings.Trim(cfg.Root, "/"),
	}
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (s *Store) itemKey(itemID uuid.UUID, contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", contentType)
	}
	return path.Join(s.root, "items", itemID.String()+ext), nil
}

// PublicURL returns the CDN-less public address of an object key.
func (s *Store) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}

// UploadItemImage writes public-read artwork for an item and returns its URL.
// Re-uploading replaces the previous image.
func (s *Store) UploadItemImage(ctx context.Context, itemID uuid.UUID, contentType string, data []byte) (string, error) {
	key, err := s.itemKey(itemID, contentType)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
		ACL:          types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	slog.Info("Item image uploaded",
		slog.String("type", "sys"),
		slog.String("item_id", itemID.String()),
		slog.String("key", key),
		slog.Int("bytes", len(data)),
	)
	return s.PublicURL(key), nil
}
