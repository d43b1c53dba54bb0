package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/kanbord/internal/server/config"
	"github.com/dmitrijs2005/kanbord/internal/server/models"
	"github.com/dmitrijs2005/kanbord/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ErrExportDisabled is returned when no bucket is configured.
var ErrExportDisabled = errors.New("note export is not configured")

const exportLinkValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ExportService uploads JSON snapshots of a user's notes to S3-compatible
// storage and hands back a short-lived download link.
type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewExportService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *ExportService {
	return &ExportService{
		db:          db,
		repomanager: m,
		config:      cfg,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type exportDocument struct {
	ExportedAt time.Time      `json:"exportedAt"`
	Count      int            `json:"count"`
	Notes      []exportedNote `json:"notes"`
}

type exportedNote struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// StorageKey builds the object key for an export made by userID at t.
func StorageKey(userID string, t time.Time) string {
	return fmt.Sprintf("users/%s/exports/%04d/%02d/%02d/%s.json", userID, t.Year(), t.Month(), t.Day(), uuid.New())
}

func (s *ExportService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Export snapshots every note of ownerID, uploads it and presigns a GET.
func (s *ExportService) Export(ctx context.Context, ownerID string) (*models.NoteExport, error) {
	if !s.config.ExportEnabled() {
		return nil, ErrExportDisabled
	}

	notes, err := s.repomanager.Notes(s.db).ListAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error loading notes: %w", err)
	}

	now := s.now()
	body, err := encodeExport(notes, now)
	if err != nil {
		return nil, err
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := StorageKey(ownerID, now)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(exportLinkValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	return &models.NoteExport{
		Key:       key,
		URL:       req.URL,
		Count:     len(notes),
		ExpiresAt: now.Add(exportLinkValidity),
	}, nil
}

func encodeExport(notes []*models.Note, at time.Time) ([]byte, error) {
	doc := exportDocument{ExportedAt: at, Count: len(notes), Notes: make([]exportedNote, 0, len(notes))}
	for _, n := range notes {
		doc.Notes = append(doc.Notes, exportedNote{
			ID:          n.ID,
			Title:       n.Title,
			Content:     n.Content,
			Category:    string(n.Category),
			Priority:    string(n.Priority),
			DueDate:     n.DueDate,
			Tags:        n.Tags,
			IsCompleted: n.IsCompleted,
			CreatedAt:   n.CreatedAt,
			UpdatedAt:   n.UpdatedAt,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}
