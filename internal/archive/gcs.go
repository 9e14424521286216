package archive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/ebolat/ekstre/internal/parser"
)

// GCSArchiver stores the original pasted statement text in a GCS bucket so
// every ingested transaction can be traced back to the exact paste it came
// from. It assumes Application Default Credentials are configured.
type GCSArchiver struct {
	bucket string
	clock  func() time.Time
}

// NewGCSArchiver creates an archiver writing into the given bucket. clock
// may be nil, in which case time.Now is used.
func NewGCSArchiver(bucket string, clock func() time.Time) *GCSArchiver {
	if clock == nil {
		clock = time.Now
	}
	return &GCSArchiver{bucket: bucket, clock: clock}
}

// ArchiveRaw uploads the pasted text and returns the object's gs:// URI.
func (a *GCSArchiver) ArchiveRaw(ctx context.Context, accountID string, bankType parser.BankType, rawText string) (string, error) {
	objectName := fmt.Sprintf("pastes/%s/%s/%s-%s.txt",
		accountID,
		a.clock().UTC().Format("2006/01/02"),
		bankType,
		uuid.NewString(),
	)

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("ArchiveRaw: creating storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(a.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "text/plain; charset=utf-8"

	if _, err := io.Copy(w, strings.NewReader(rawText)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("ArchiveRaw: writing object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("ArchiveRaw: finalizing upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", a.bucket, objectName), nil
}
