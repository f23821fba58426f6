package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sony/gobreaker"

	"github.com/i474232898/bike-sharing-dashboard/internal/logging"
)

// S3Config holds credentials for an S3-compatible bucket (AWS S3 or
// Cloudflare R2).
type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	Region          string
}

// objectGetter is the subset of the S3 client used to fetch the dataset.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the dataset from a single object in a bucket.
type S3Source struct {
	client  objectGetter
	bucket  string
	key     string
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

// NewS3Source creates an S3Source using static credentials and path-style
// addressing.
func NewS3Source(cfg S3Config, bucket, key string) (*S3Source, error) {
	var missing []string
	if cfg.AccessKeyID == "" {
		missing = append(missing, "S3_ACCESS_KEY_ID")
	}
	if cfg.SecretAccessKey == "" {
		missing = append(missing, "S3_SECRET_ACCESS_KEY")
	}
	if cfg.Endpoint == "" {
		missing = append(missing, "S3_ENDPOINT")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v", missing)
	}

	region := cfg.Region
	if region == "" {
		// R2 ignores the region but the SDK requires one.
		region = "auto"
	}

	client := s3.New(s3.Options{
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		BaseEndpoint: aws.String(cfg.Endpoint),
		Region:       region,
		UsePathStyle: true,
		// fetchWithResilience owns retries.
		Retryer: aws.NopRetryer{},
	})

	return newS3Source(client, bucket, key), nil
}

func newS3Source(client objectGetter, bucket, key string) *S3Source {
	return &S3Source{
		client: client,
		bucket: bucket,
		key:    key,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "s3-dataset",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrSourceNotFound)
			},
		}),
	}
}

// Name returns the s3:// location of the object.
func (s *S3Source) Name() string {
	return "s3://" + s.bucket + "/" + s.key
}

// Open downloads the object with retries. A missing bucket or key wraps
// ErrSourceNotFound and is not retried.
func (s *S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	start := time.Now()
	defer func() {
		logging.Debug("s3 get object finished", "location", s.Name(), "elapsed", time.Since(start))
	}()

	return fetchWithResilience(ctx, s.backoff, s.circuit, func(ctx context.Context) (io.ReadCloser, error) {
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.key),
		})
		if err != nil {
			var noKey *types.NoSuchKey
			var noBucket *types.NoSuchBucket
			if errors.As(err, &noKey) || errors.As(err, &noBucket) {
				return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, s.Name())
			}
			return nil, fmt.Errorf("failed to get object: %w", err)
		}
		return out.Body, nil
	})
}
