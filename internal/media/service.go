// Package media hands out time-bounded playback URLs for movie video assets
// stored in S3, plus the stored media metadata.
package media

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/kinostream/backend/internal/config"
)

type Service struct {
	svc    *s3.S3
	bucket string
	ttl    time.Duration
}

func NewService(cfg *config.Config) (*Service, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is not configured")
	}

	sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.S3Region)})
	if err != nil {
		return nil, err
	}

	return &Service{
		svc:    s3.New(sess),
		bucket: cfg.S3Bucket,
		ttl:    cfg.PlaybackURLTTL,
	}, nil
}

// PlaybackURL presigns a GET for the object key. The URL stops working at
// the returned expiry; no application state tracks it.
func (s *Service) PlaybackURL(key string) (string, time.Time, error) {
	req, _ := s.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(s.ttl)
	if err != nil {
		return "", time.Time{}, err
	}

	return url, time.Now().Add(s.ttl), nil
}
