package analytics

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	bucket string
	key    string
	body   string
	err    error
}

func (f *fakeObjectAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestFetcherFetch(t *testing.T) {
	api := &fakeObjectAPI{body: "header\nrow\n"}

	data, err := NewFetcher(api).Fetch(context.Background(), "s3://high-demand-stock-data/high_demand_product/qe-1.csv")
	require.NoError(t, err)
	assert.Equal(t, "header\nrow\n", string(data))
	assert.Equal(t, "high-demand-stock-data", api.bucket)
	assert.Equal(t, "high_demand_product/qe-1.csv", api.key)
}

func TestFetcherFetchError(t *testing.T) {
	api := &fakeObjectAPI{err: errors.New("no such key")}

	_, err := NewFetcher(api).Fetch(context.Background(), "s3://bucket/key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://bucket/key")
}

func TestParseS3Location(t *testing.T) {
	bucket, key, err := parseS3Location("s3://bucket/a/b/c.csv")
	require.NoError(t, err)
	assert.Equal(t, "bucket", bucket)
	assert.Equal(t, "a/b/c.csv", key)

	_, _, err = parseS3Location("https://bucket/a.csv")
	assert.Error(t, err)

	_, _, err = parseS3Location("s3://bucket-only")
	assert.Error(t, err)
}
