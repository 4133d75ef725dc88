package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/udsonbraga/app-lia-2025/internal/server/config"
)

// presignExpiry bounds how long attachment upload/download URLs stay valid.
const presignExpiry = 15 * time.Minute

// Presigner hands out short-lived URLs for attachment objects. The S3
// implementation is the default; tests substitute a stub.
type Presigner interface {
	PresignPut(ctx context.Context, key string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// RandomStorageKey generates an object key for a new attachment, grouped
// by upload date.
func RandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("diary/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// s3Presigner issues presigned URLs against an S3-compatible backend
// (MinIO in development).
type s3Presigner struct {
	config *sc.Config
}

// NewS3Presigner constructs the default S3-backed Presigner.
func NewS3Presigner(cfg *sc.Config) Presigner {
	return &s3Presigner{config: cfg}
}

func (p *s3Presigner) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(p.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.config.S3RootUser,
			p.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.config.S3BaseEndpoint)
	})

	return s3.NewPresignClient(client), nil
}

// PresignPut returns a presigned upload URL for the given object key.
func (p *s3Presigner) PresignPut(ctx context.Context, key string) (string, error) {
	presignClient, err := p.getPresignClient(ctx)
	if err != nil {
		return "", err
	}
	bucket := p.config.S3Bucket
	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PresignGet returns a presigned download URL for the given object key.
func (p *s3Presigner) PresignGet(ctx context.Context, key string) (string, error) {
	presignClient, err := p.getPresignClient(ctx)
	if err != nil {
		return "", err
	}
	bucket := p.config.S3Bucket
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
