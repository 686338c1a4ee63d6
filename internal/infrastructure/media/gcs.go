package media

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/uuid"
	"google.golang.org/api/option"
)

const uploadTimeout = 2 * time.Minute

// GCSConfig options for the media host client
type GCSConfig struct {
	Bucket  string // bucket holding course media
	BaseURL string // public URL prefix, empty means storage.googleapis.com
}

// GCSStore media host backed by a Google Cloud Storage bucket. The object
// key doubles as the asset public ID so deletion needs no extra lookup.
type GCSStore struct {
	client        *storage.Client
	bucket        string
	baseURL       string
	UUIDGenerator uuid.Generator
}

var _ domain.MediaStore = &GCSStore{}

// NewGCSStore create a media store client, credentials resolve from the
// environment by default
func NewGCSStore(ctx context.Context, cfg *GCSConfig, UUIDGenerator uuid.Generator, opts ...option.ClientOption) (*GCSStore, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + cfg.Bucket
	}
	return &GCSStore{
		client:        client,
		bucket:        cfg.Bucket,
		baseURL:       strings.TrimRight(baseURL, "/"),
		UUIDGenerator: UUIDGenerator,
	}, nil
}

// Upload write the file under folder/<id><ext> and return its descriptor
func (gs *GCSStore) Upload(ctx context.Context, folder string, file *domain.UploadFile) (*domain.MediaAsset, error) {
	id, err := gs.UUIDGenerator.Generate()
	if err != nil {
		return nil, err
	}
	key := folder + "/" + id + strings.ToLower(path.Ext(file.Name))

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := gs.client.Bucket(gs.bucket).Object(key).NewWriter(ctx)
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		w.ContentType = ct
	}
	if _, err := w.Write(file.Content); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write data to media host: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close media host writer: %w", err)
	}
	return &domain.MediaAsset{
		PublicID: key,
		URL:      gs.baseURL + "/" + key,
	}, nil
}

// Delete remove the object behind the descriptor, missing objects are not
// an error
func (gs *GCSStore) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	err := gs.client.Bucket(gs.bucket).Object(publicID).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	return err
}
