package analytics

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/brandazine/stock-nudge/pkg/errors"
)

// ObjectAPI is the slice of the S3 client the fetcher needs.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fetcher downloads query result objects.
type Fetcher struct {
	client ObjectAPI
}

func NewFetcher(client ObjectAPI) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch reads the object at an s3://bucket/key location.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := parseS3Location(location)
	if err != nil {
		return nil, errors.ResultFetch(location, err)
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.ResultFetch(location, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.ResultFetch(location, err)
	}
	return data, nil
}

func parseS3Location(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 location: %q", location)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 location: %q", location)
	}
	return bucket, key, nil
}
