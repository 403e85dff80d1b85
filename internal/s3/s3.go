package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Midoriya12/calsnap/internal/catalog"
	"github.com/Midoriya12/calsnap/internal/config"
	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrSnapshotNotFound is returned when the catalog object does not exist.
var ErrSnapshotNotFound = errors.New("catalog snapshot not found")

// ObjectGetter is the part of the S3 client CatalogSource reads with.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Uploader is the part of the S3 upload manager PublishCatalogSnapshot uses.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// NewClient creates a new S3 client from the app config.
// When AWS access key and secret are provided, static credentials are used;
// otherwise the default credential chain is preserved (IAM role, instance
// profile, etc.) so ECS/EC2 task roles work without explicit keys.
func NewClient(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.EnvVars.AWSRegion),
	}

	if cfg.EnvVars.AWSAccessKeyID != "" && cfg.EnvVars.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.EnvVars.AWSAccessKeyID,
			cfg.EnvVars.AWSSecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// CatalogSource reads the recipe catalog from a JSON snapshot object.
type CatalogSource struct {
	client ObjectGetter
	bucket string
	key    string
}

// NewCatalogSource creates a CatalogSource for bucket/key.
func NewCatalogSource(client ObjectGetter, bucket, key string) *CatalogSource {
	return &CatalogSource{client: client, bucket: bucket, key: key}
}

// ListRecipes downloads and decodes the snapshot.
func (s *CatalogSource) ListRecipes(ctx context.Context) ([]models.RecipeRecord, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, s.key, ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("failed to get catalog from S3: %v", err)
	}
	defer out.Body.Close()

	body, err := catalog.ReadPayload(out.Body, catalog.DefaultMaxPayloadBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog from S3: %v", err)
	}

	records, err := catalog.DecodeRecipes(body)
	if err != nil {
		return nil, err
	}
	return catalog.Finalize("s3", records), nil
}

// GetRecipe scans the snapshot for id.
func (s *CatalogSource) GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error) {
	records, err := s.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			r := records[i]
			return &r, nil
		}
	}
	return nil, fmt.Errorf("recipe %q: %w", id, search.ErrRecipeNotFound)
}

// PublishCatalogSnapshot uploads records as a JSON array and returns the
// object location URL.
func PublishCatalogSnapshot(ctx context.Context, uploader Uploader, bucket, key string, records []models.RecipeRecord) (string, error) {
	if records == nil {
		records = []models.RecipeRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode catalog snapshot: %v", err)
	}

	result, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	return result.Location, nil
}

// NewUploader wraps client in the S3 upload manager.
func NewUploader(client *s3.Client) *manager.Uploader {
	return manager.NewUploader(client)
}
