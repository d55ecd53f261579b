// Package evidence opens the audio recording attached to a report as a byte
// stream from S3-compatible object storage. It only reads; recordings are
// immutable once a report references them.
package evidence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"meetz/backend/internal/apperr"
	"meetz/backend/internal/models"

	"github.com/minio/minio-go/v7"
)

// ObjectStore fetches an object by bucket and key. The production
// implementation is MinioStore; tests substitute a fake.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// MinioStore implements ObjectStore on a minio client.
type MinioStore struct {
	Client *minio.Client
}

// Get opens the object. minio defers most errors until the first read, so a
// Stat forces the round-trip here and a missing object fails at open time
// instead of surfacing mid-stream.
func (m *MinioStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := m.Client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

// Retriever resolves a report to its stored audio object.
type Retriever struct {
	Store ObjectStore
	// BucketPrefix + meeting ID names the bucket, e.g. "meeting42".
	BucketPrefix string
	// LegacyURLPrefixFormat reproduces the display URL prefix old clients
	// wrote into Report.FilePath; %d is the meeting ID.
	LegacyURLPrefixFormat string
}

func NewRetriever(store ObjectStore, bucketPrefix, legacyURLPrefixFormat string) *Retriever {
	return &Retriever{
		Store:                 store,
		BucketPrefix:          bucketPrefix,
		LegacyURLPrefixFormat: legacyURLPrefixFormat,
	}
}

// KeyForFan is the storage key a report records at creation time. Recordings
// are stored per fan inside the meeting's bucket.
func KeyForFan(fanID uint) string {
	return fmt.Sprintf("fan_%d.webm", fanID)
}

// Bucket returns the bucket holding a meeting's recordings.
func (r *Retriever) Bucket(meetingID uint) string {
	return fmt.Sprintf("%s%d", r.BucketPrefix, meetingID)
}

// Key returns the raw storage key for a report. New rows carry ObjectKey
// directly; legacy rows stored a display URL in FilePath, whose known prefix
// is stripped off.
func (r *Retriever) Key(report *models.Report) string {
	if report.ObjectKey != "" {
		return report.ObjectKey
	}
	prefix := fmt.Sprintf(r.LegacyURLPrefixFormat, report.MeetingID)
	return strings.TrimPrefix(report.FilePath, prefix)
}

// Open returns a readable stream of the report's audio evidence. The caller
// must close it on every exit path. A missing object or bucket maps to
// apperr.ErrNotFound; any transport failure, including a deadline hit, maps
// to apperr.ErrStorageUnavailable so callers can tell retryable from
// terminal.
func (r *Retriever) Open(ctx context.Context, report *models.Report) (io.ReadCloser, error) {
	bucket := r.Bucket(report.MeetingID)
	key := r.Key(report)
	if key == "" {
		return nil, fmt.Errorf("report %d has no evidence key: %w", report.ID, apperr.ErrNotFound)
	}

	stream, err := r.Store.Get(ctx, bucket, key)
	if err != nil {
		return nil, classify(bucket, key, err)
	}
	return stream, nil
}

func classify(bucket, key string, err error) error {
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrStorageUnavailable) {
		return err
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("object %s/%s: %w", bucket, key, apperr.ErrNotFound)
	}
	return fmt.Errorf("object %s/%s: %v: %w", bucket, key, err, apperr.ErrStorageUnavailable)
}
