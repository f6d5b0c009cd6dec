package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var ErrArchiveDisabled = errors.New("export archive is not configured")

// presignTTL is how long the returned download link stays valid.
const presignTTL = 15 * time.Minute

// Overridable in tests.
var (
	loadAWSConfig = awsconfig.LoadDefaultConfig

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // empty for AWS; set for MinIO and friends
	AccessKey string
	SecretKey string
}

// Archive is a stored export.
type Archive struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// S3Archiver stores CSV exports in an S3-compatible bucket.
type S3Archiver struct {
	bucket  string
	client  *s3.Client
	presign *s3.PresignClient
}

func NewS3Archiver(ctx context.Context, cfg S3Config) (*S3Archiver, error) {
	if cfg.Bucket == "" {
		return nil, ErrArchiveDisabled
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archiver{
		bucket:  cfg.Bucket,
		client:  client,
		presign: s3.NewPresignClient(client),
	}, nil
}

// ArchiveKey builds the object key for an export produced at now, dated in
// UTC like FileName.
func ArchiveKey(now time.Time) string {
	now = now.UTC()
	return fmt.Sprintf("exports/%04d/%02d/%02d/%s-%s", now.Year(), now.Month(), now.Day(),
		uuid.NewString(), FileName(now))
}

// Store uploads payload and returns its key and a short-lived download URL.
func (a *S3Archiver) Store(ctx context.Context, now time.Time, payload []byte) (Archive, error) {
	key := ArchiveKey(now)

	err := putObject(a.client, ctx, &s3.PutObjectInput{
		Bucket:             aws.String(a.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(payload),
		ContentType:        aws.String("text/csv; charset=utf-8"),
		ContentDisposition: aws.String(`attachment; filename="` + FileName(now) + `"`),
	})
	if err != nil {
		return Archive{}, fmt.Errorf("upload %s: %w", key, err)
	}

	req, err := presignGetObject(a.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return Archive{}, fmt.Errorf("presign %s: %w", key, err)
	}

	return Archive{Key: key, URL: req.URL}, nil
}
