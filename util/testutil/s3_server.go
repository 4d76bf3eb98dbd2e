package testutil

import (
	"net/http/httptest"
	"strings"

	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
)

// ExportBucket is the bucket the doctor tests probe against.
const ExportBucket = "roast-exports"

// S3Server is an in-memory S3 endpoint for tests.
type S3Server struct {
	server *httptest.Server
	URL    string
}

// NewS3Server starts a local S3 server holding the named buckets, or
// just ExportBucket when none are given.
func NewS3Server(buckets ...string) *S3Server {
	backend := s3mem.New()
	if len(buckets) == 0 {
		buckets = []string{ExportBucket}
	}
	for _, bucket := range buckets {
		backend.CreateBucket(bucket)
	}
	faker := gofakes3.New(backend)
	server := httptest.NewServer(faker.Server())
	return &S3Server{
		server: server,
		URL:    server.URL,
	}
}

// Endpoint returns the host:port form minio clients expect.
func (s *S3Server) Endpoint() string {
	return strings.TrimPrefix(s.URL, "http://")
}

func (s *S3Server) Close() {
	s.server.Close()
}
