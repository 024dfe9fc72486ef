package source

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/services/importer"
)

const DefaultRegion = "us-east-1"

// ObjectGetter is the part of the S3 client the object source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ObjectSource parses an inspection export dropped into an S3 bucket. The
// object key decides the file format.
type ObjectSource struct {
	client ObjectGetter
	bucket string
	key    string
	origin string
}

func NewObjectSource(client ObjectGetter, bucket, key, origin string) *ObjectSource {
	return &ObjectSource{client: client, bucket: bucket, key: key, origin: origin}
}

func (s *ObjectSource) Fetch(ctx context.Context, _ domain.FilterCriteria) (*domain.Dataset, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	records, err := importer.Parse(path.Base(s.key), out.Body)
	if err != nil {
		return nil, fmt.Errorf("parse s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return &domain.Dataset{
		Records: records,
		Options: optionsOf(records),
		Origin:  s.origin,
	}, nil
}

func newS3Client(ctx context.Context, p domain.SourceProfile) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithDefaultRegion(p.Setting("region", DefaultRegion)),
	}
	if profile := p.Setting("aws_profile", ""); profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	endpoint := p.Setting("endpoint", "")
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
