// Package backup exports a user's ledger snapshot as a JSON object to S3
// compatible storage and hands back a presigned download URL.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/meslee/moneyledger/internal/ledger"
)

// Test seams over the AWS SDK, same trick as elsewhere: package-level
// function vars the tests can stub.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	timeNow = time.Now
)

// Config carries the S3 connection settings.
type Config struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
}

// Service writes ledger exports to the configured bucket.
type Service struct {
	config Config
}

func NewService(cfg Config) *Service {
	return &Service{config: cfg}
}

// document is the exported file layout.
type document struct {
	UserID       string            `json:"user_id"`
	Email        string            `json:"email,omitempty"`
	Created      time.Time         `json:"created"`
	Transactions []transactionJSON `json:"transactions"`
	Categories   []categoryJSON    `json:"categories"`
}

type transactionJSON struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	CategoryID  string  `json:"category_id"`
	Description string  `json:"description"`
}

type categoryJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Color    string `json:"color"`
	IsActive bool   `json:"is_active"`
}

// objectKey lays backups out per user and day, unique per export.
func objectKey(userID string, created time.Time) string {
	return fmt.Sprintf("backups/%s/%s/%d.json", userID, created.Format("2006/01/02"), created.UnixNano())
}

func (s *Service) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.AccessKey,
			s.config.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.BaseEndpoint)
		}
	}), nil
}

// Export serializes the snapshot and uploads it, returning the object key.
func (s *Service) Export(ctx context.Context, snap ledger.Snapshot) (string, error) {
	if snap.User == nil {
		return "", fmt.Errorf("no user in snapshot")
	}

	created := timeNow()
	doc := document{
		UserID:       snap.User.ID,
		Email:        snap.User.Email,
		Created:      created,
		Transactions: make([]transactionJSON, 0, len(snap.Transactions)),
		Categories:   make([]categoryJSON, 0, len(snap.Categories)),
	}
	for _, t := range snap.Transactions {
		doc.Transactions = append(doc.Transactions, transactionJSON{
			ID:          t.ID,
			Date:        t.Date.Format(time.RFC3339),
			Amount:      t.Amount,
			Type:        string(t.Type),
			CategoryID:  t.CategoryID,
			Description: t.Description,
		})
	}
	for _, c := range snap.Categories {
		doc.Categories = append(doc.Categories, categoryJSON{
			ID:       c.ID,
			Name:     c.Name,
			Type:     string(c.Type),
			Color:    c.Color,
			IsActive: c.IsActive,
		})
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding backup: %w", err)
	}

	client, err := s.getClient()
	if err != nil {
		return "", err
	}

	key := objectKey(snap.User.ID, created)
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading backup: %w", err)
	}

	return key, nil
}

// PresignedGetURL returns a time-limited download URL for a backup object.
func (s *Service) PresignedGetURL(ctx context.Context, key string) (string, error) {
	client, err := s.getClient()
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
