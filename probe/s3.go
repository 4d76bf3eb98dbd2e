package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/models/common"
)

// S3Probe checks that AWS_S3_BUCKET exists and is visible with the
// configured credentials. Without credentials it probes anonymously
// and reports a warning, since the bucket may still allow public
// reads.
type S3Probe struct {
	settings *common.Settings

	// Endpoint, Secure and Region override the real AWS endpoint.
	// Tests point them at a local server.
	Endpoint string
	Secure   bool
	Region   string
}

func NewS3Probe(settings *common.Settings) *S3Probe {
	return &S3Probe{
		settings: settings,
		Endpoint: "s3.amazonaws.com",
		Secure:   true,
	}
}

func (p *S3Probe) Name() string { return "s3" }
func (p *S3Probe) Kind() string { return "network" }

func (p *S3Probe) Check(ctx context.Context) Result {
	start := time.Now()
	aws := p.settings.AWS
	if !aws.IsConfigured() {
		return result(p, start, constants.ProbeSkipped,
			fmt.Sprintf("%s is not set", constants.EnvAWSS3Bucket))
	}

	region := p.Region
	if region == "" {
		region = aws.Region
	}
	opts := &minio.Options{Secure: p.Secure, Region: region}
	if aws.HasCredentials() {
		opts.Creds = credentials.NewStaticV4(aws.AccessKeyID, aws.SecretAccessKey, "")
	}
	client, err := minio.New(p.Endpoint, opts)
	if err != nil {
		return result(p, start, constants.ProbeFail,
			fmt.Sprintf("cannot build S3 client: %v", err))
	}

	exists, err := client.BucketExists(ctx, aws.Bucket)
	if err != nil {
		return result(p, start, constants.ProbeFail,
			fmt.Sprintf("cannot reach %s: %v", p.Endpoint, err))
	}
	if !exists {
		return result(p, start, constants.ProbeFail,
			fmt.Sprintf("bucket %s does not exist or is not visible", aws.Bucket))
	}
	if !aws.HasCredentials() {
		return result(p, start, constants.ProbeWarn,
			fmt.Sprintf("bucket %s is visible anonymously; no credentials are set", aws.Bucket))
	}
	return result(p, start, constants.ProbeOK,
		fmt.Sprintf("bucket %s is reachable", aws.Bucket))
}
