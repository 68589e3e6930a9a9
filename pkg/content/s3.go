package content

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultRegion is used when S3Config.Region is empty.
const DefaultRegion = "us-east-1"

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config holds S3-compatible bucket settings.
type S3Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `env:"BUCKET" yaml:"bucket"`

	// Prefix is the key prefix holding the language directories, e.g. "content/".
	Prefix string `env:"PREFIX" yaml:"prefix"`

	// AccessKey is the AWS access key ID (required unless a client is injected).
	AccessKey string `env:"ACCESS_KEY" yaml:"access_key"`

	// SecretKey is the AWS secret access key (required unless a client is injected).
	SecretKey string `env:"SECRET_KEY" yaml:"secret_key"`

	// Endpoint is the custom S3 endpoint URL (optional, for MinIO or other S3-compatible services).
	Endpoint string `env:"ENDPOINT" yaml:"endpoint"`

	// Region is the AWS region (default: us-east-1).
	Region string `env:"REGION" envDefault:"us-east-1" yaml:"region"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"PATH_STYLE" yaml:"path_style"`
}

// S3Option configures an S3Store.
type S3Option func(*S3Store)

// WithS3Client replaces the client built from the configuration.
func WithS3Client(client S3API) S3Option {
	return func(s *S3Store) {
		s.client = client
	}
}

// WithS3Extensions limits the store to keys with the given extensions.
func WithS3Extensions(exts ...string) S3Option {
	return func(s *S3Store) {
		s.extensions = exts
	}
}

// WithS3Exclude hides keys whose id matches any of the glob patterns.
func WithS3Exclude(patterns ...string) S3Option {
	return func(s *S3Store) {
		s.exclude = patterns
	}
}

// S3Store serves content items from an S3-compatible bucket.
// Item ids are object keys relative to the configured prefix.
type S3Store struct {
	client     S3API
	bucket     string
	prefix     string
	extensions []string
	exclude    []string
}

// NewS3Store creates a store for the given bucket.
func NewS3Store(cfg S3Config, opts ...S3Option) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	s := &S3Store{
		bucket:     cfg.Bucket,
		prefix:     normalizePrefix(cfg.Prefix),
		extensions: DefaultExtensions,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := validatePatterns(s.exclude); err != nil {
		return nil, err
	}

	if s.client == nil {
		if cfg.AccessKey == "" || cfg.SecretKey == "" {
			return nil, fmt.Errorf("%w: access key and secret key are required", ErrInvalidConfig)
		}
		s.client = newS3Client(cfg)
	}

	return s, nil
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return s3.New(s3.Options{}, opts...)
}

// IDs lists every object under the prefix, following pagination.
// Directory markers (keys ending in "/") and keys that are not valid ids
// are skipped.
func (s *S3Store) IDs(ctx context.Context) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix)
	}

	var ids []string
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapS3Error(err, ErrListFailed)
		}

		for _, obj := range page.Contents {
			id := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if strings.HasSuffix(id, "/") || !validID(id) || !hasExtension(id, s.extensions) || excluded(id, s.exclude) {
				continue
			}
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)
	return ids, nil
}

// Open downloads a content item.
func (s *S3Store) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if excluded(id, s.exclude) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + id),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrReadFailed)
	}

	return output.Body, nil
}

// normalizePrefix turns "content", "/content/" and "content/" into "content/".
func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

var _ Store = (*S3Store)(nil)
