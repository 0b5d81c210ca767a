package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"datalake/internal/config"
	"datalake/internal/lake"
	"datalake/internal/logging"
	"datalake/internal/metadata"
)

var (
	// ErrNoStorageURL indicates archive access was requested without a
	// configured storage URL.
	ErrNoStorageURL = errors.New("no storage url configured")
	// ErrPush indicates an upload could not be completed.
	ErrPush = errors.New("push failed")
)

// MetadataHeader is the S3 object metadata key carrying the serialized
// datalake metadata.
const MetadataHeader = "datalake-metadata"

// Archive uploads datalake files to an S3 bucket.
type Archive struct {
	client *s3.Client
	bucket string
	prefix string
	logger *slog.Logger
}

// New constructs an Archive from the storage section of cfg. The storage URL
// must be of the form s3://bucket[/prefix]. Static credentials are used when
// both key halves are configured; otherwise the SDK default chain applies.
// A configured endpoint switches the client to path-style addressing for
// S3-compatible object stores.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Archive, error) {
	bucket, prefix, err := parseStorageURL(cfg.Storage.URL)
	if err != nil {
		return nil, err
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Storage.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Storage.Region))
	}
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Storage.AccessKeyID, cfg.Storage.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Archive{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logging.NewComponentLogger(logger, "archive"),
	}, nil
}

func parseStorageURL(raw string) (bucket, prefix string, err error) {
	if strings.TrimSpace(raw) == "" {
		return "", "", ErrNoStorageURL
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse storage url: %w", err)
	}
	if parsed.Scheme != "s3" || parsed.Host == "" {
		return "", "", fmt.Errorf("storage url %q: expected s3://bucket[/prefix]", raw)
	}
	return parsed.Host, strings.Trim(parsed.Path, "/"), nil
}

// ObjectKey returns the bucket key for a file carrying the given metadata:
// v0/<what>/<start date UTC>/<where>/<id>, below the configured prefix.
func (a *Archive) ObjectKey(md metadata.Metadata) string {
	day := time.UnixMilli(md.Start).UTC().Format("2006/01/02")
	key := path.Join("v0", md.What, day, md.Where, md.ID)
	if a.prefix != "" {
		key = path.Join(a.prefix, key)
	}
	return key
}

// URL returns the s3 URL a file carrying the given metadata occupies.
func (a *Archive) URL(md metadata.Metadata) string {
	return "s3://" + path.Join(a.bucket, a.ObjectKey(md))
}

// Push uploads the file body and its metadata to the archive and returns the
// object URL.
func (a *Archive) Push(ctx context.Context, f *lake.File) (string, error) {
	body, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrPush, f.Path, err)
	}
	defer body.Close()

	key := a.ObjectKey(f.Metadata)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String("application/octet-stream"),
		Metadata: map[string]string{
			MetadataHeader: string(f.Metadata.JSON()),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrPush, f.Path, err)
	}

	objectURL := a.URL(f.Metadata)
	a.logger.Debug("uploaded object",
		logging.String(logging.FieldPath, f.Path),
		logging.String(logging.FieldID, f.Metadata.ID),
		logging.String(logging.FieldURL, objectURL))
	return objectURL, nil
}

// PushPath constructs a File from sourcePath and fields, then pushes it.
func (a *Archive) PushPath(ctx context.Context, sourcePath string, fields metadata.Fields) (string, error) {
	f, err := lake.FromPath(sourcePath, fields)
	if err != nil {
		return "", err
	}
	return a.Push(ctx, f)
}
