// Package storage wraps the S3-compatible object store that holds uploaded
// lesson media.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// MediaStore handles uploads to the lesson media bucket
type MediaStore struct {
	s3Client *s3.S3
	bucket   string
	endpoint string
	cdnURL   string
}

// Config holds configuration for the media store
type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	CDNURL    string
}

// NewMediaStore creates a new media store client
func NewMediaStore(config Config) (*MediaStore, error) {
	if config.Bucket == "" || config.Region == "" {
		return nil, fmt.Errorf("media bucket and region must be configured")
	}
	if config.Endpoint == "" {
		config.Endpoint = fmt.Sprintf("s3.%s.amazonaws.com", config.Region)
	}

	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
		Endpoint:         aws.String(config.Endpoint),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media store session: %w", err)
	}

	return &MediaStore{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
		endpoint: config.Endpoint,
		cdnURL:   config.CDNURL,
	}, nil
}

// UploadBytes uploads media bytes under the given key and returns its public URL
func (s *MediaStore) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(bytes.NewReader(data)),
		ACL:         aws.String("public-read"), // Lessons are served straight from the bucket
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}

	return s.PublicURL(key), nil
}

// PublicURL returns the public URL for an object key
func (s *MediaStore) PublicURL(key string) string {
	if s.cdnURL != "" {
		return fmt.Sprintf("%s/%s", s.cdnURL, key)
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.endpoint, key)
}

// Delete removes an object from the bucket
func (s *MediaStore) Delete(ctx context.Context, key string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	return nil
}
