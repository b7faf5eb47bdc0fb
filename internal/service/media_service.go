package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"wishlisted/internal/config"
	apperrors "wishlisted/internal/errors"
	"wishlisted/internal/repository"
)

const presignExpiry = 15 * time.Minute

// ObjectStore is the slice of object storage this service needs: short-lived
// upload URLs and deletes. The S3 implementation below is the only one in
// production; tests swap in a fake.
type ObjectStore interface {
	PresignPut(ctx context.Context, key string) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

// MediaService hands out upload URLs for pictures and removes uploaded files.
// Storage itself is an external collaborator; nothing here inspects content.
type MediaService interface {
	CreateUploadURL(ctx context.Context) (key, url string, err error)
	// DeleteFile removes the object and clears the user's picture reference.
	DeleteFile(ctx context.Context, userID uint, key string) error
}

type mediaService struct {
	store    ObjectStore
	userRepo repository.UserRepository
}

// NewMediaService creates a media service over the given object store.
func NewMediaService(store ObjectStore, userRepo repository.UserRepository) MediaService {
	return &mediaService{store: store, userRepo: userRepo}
}

func (s *mediaService) CreateUploadURL(ctx context.Context) (string, string, error) {
	key := randomStorageKey()
	url, err := s.store.PresignPut(ctx, key)
	if err != nil {
		return "", "", fmt.Errorf("presign upload: %w", err)
	}
	return key, url, nil
}

func (s *mediaService) DeleteFile(ctx context.Context, userID uint, key string) error {
	if err := s.store.DeleteObject(ctx, key); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	user.Picture = ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("clear picture: %w", err)
	}
	return nil
}

// Keys are date partitioned so buckets stay browsable.
func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("pictures/%d/%02d/%02d/%s", d.Year(), d.Month(), d.Day(), uuid.New())
}

// s3Store implements ObjectStore over aws-sdk-go-v2, pointing at AWS or any
// S3-compatible endpoint (minio in development).
type s3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store builds the production object store from configuration.
func NewS3Store(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
	})
	return &s3Store{client: client, bucket: cfg.S3Bucket}, nil
}

func (s *s3Store) PresignPut(ctx context.Context, key string) (string, error) {
	presigner := s3.NewPresignClient(s.client)
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *s3Store) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	return err
}
