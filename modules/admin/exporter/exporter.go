package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wedding-rsvp/core/logger"
	"wedding-rsvp/modules/rsvp/entity"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"
)

var csvHeader = []string{
	"id", "name", "email", "attending", "number_of_guests",
	"guest_names", "dietary_restrictions", "song_requests", "notes", "created_at",
}

// RenderCSV serializes the record set for the couple's spreadsheet.
func RenderCSV(rsvps []entity.RSVP) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range rsvps {
		r := &rsvps[i]
		attending := "no"
		if r.IsAttending {
			attending = "yes"
		}
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.Name,
			r.Email,
			attending,
			strconv.Itoa(r.NumberOfGuests),
			strings.Join(r.GuestNames, "; "),
			deref(r.DietaryRestrictions),
			deref(r.SongRequests),
			deref(r.Notes),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type S3ExporterConfig struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// S3Exporter uploads CSV snapshots of the guest list to a bucket.
type S3Exporter struct {
	client *s3.Client
	bucket string
}

func NewS3Exporter(cfg S3ExporterConfig) *S3Exporter {
	client := s3.NewFromConfig(aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	})
	return &S3Exporter{client: client, bucket: cfg.Bucket}
}

// ObjectKey builds a dated, slugged key such as
// exports/jane-and-john/rsvps-2026-06-01T12-00-00.csv.
func ObjectKey(coupleNames string, now time.Time) string {
	return fmt.Sprintf("exports/%s/rsvps-%s.csv",
		slug.Make(coupleNames),
		now.UTC().Format("2006-01-02T15-04-05"),
	)
}

func (e *S3Exporter) Upload(ctx context.Context, key string, body []byte) error {
	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		logger.Error("S3Exporter:Upload:Error", "bucket", e.bucket, "key", key, "error", err)
		return err
	}
	logger.Info("S3Exporter:Upload:Done", "bucket", e.bucket, "key", key, "bytes", len(body))
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
