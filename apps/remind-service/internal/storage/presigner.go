package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
)

// Upload kinds
const (
	KindProfile    = "profile"
	KindBackground = "background"
	KindProject    = "project"
)

// ErrStorageDisabled is returned when no object storage is configured
var ErrStorageDisabled = errors.New("object storage is disabled")

// Presigner hands out upload URLs for member images
type Presigner interface {
	PresignUpload(ctx context.Context, loginID, kind, contentType string) (*dto.PresignResponse, error)
}

// Config holds S3-compatible storage settings
type Config struct {
	Endpoint       string
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	PublicBaseURL  string
	PresignTTL     time.Duration
	ForcePathStyle bool
	Now            func() time.Time
}

// S3Presigner presigns PUT requests against an S3-compatible bucket
type S3Presigner struct {
	presign *s3.PresignClient
	bucket  string
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

// NewS3Presigner builds the S3 client. Presigning is local; nothing is sent to the endpoint here.
func NewS3Presigner(ctx context.Context, cfg *Config) (*S3Presigner, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.PresignTTL == 0 {
		cfg.PresignTTL = 15 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		if endpoint != "" {
			baseURL = endpoint + "/" + cfg.Bucket
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &S3Presigner{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
		ttl:     cfg.PresignTTL,
		now:     cfg.Now,
	}, nil
}

// PresignUpload returns a PUT URL for a new object under <kind>/<loginID>/<uuid>
func (p *S3Presigner) PresignUpload(ctx context.Context, loginID, kind, contentType string) (*dto.PresignResponse, error) {
	if !validKind(kind) {
		return nil, fmt.Errorf("%w: unknown upload kind %q", domain.ErrBadRequest, kind)
	}
	if loginID == "" {
		return nil, domain.ErrMemberNotFound
	}

	key := ObjectKey(kind, loginID)
	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = p.ttl
	})
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &dto.PresignResponse{
		UploadURL: req.URL,
		ObjectURL: p.baseURL + "/" + key,
		Key:       key,
		ExpiresAt: p.now().Add(p.ttl).UTC(),
	}, nil
}

// ObjectKey builds a fresh object key for kind and owner
func ObjectKey(kind, loginID string) string {
	return fmt.Sprintf("%s/%s/%s", kind, loginID, uuid.New().String())
}

func validKind(kind string) bool {
	switch kind {
	case KindProfile, KindBackground, KindProject:
		return true
	}
	return false
}

// DisabledPresigner is used when storage is not configured
type DisabledPresigner struct{}

// PresignUpload always fails with ErrStorageDisabled
func (DisabledPresigner) PresignUpload(context.Context, string, string, string) (*dto.PresignResponse, error) {
	return nil, ErrStorageDisabled
}
