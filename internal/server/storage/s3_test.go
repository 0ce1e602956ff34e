package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/linkify/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

type fakePresigner struct {
	key     string
	expires time.Duration
	err     error
}

func (f *fakePresigner) PresignGetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.PresignOptions)) (*PresignedRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	o := &s3.PresignOptions{}
	for _, fn := range opts {
		fn(o)
	}
	f.key = aws.ToString(in.Key)
	f.expires = o.Expires
	return &PresignedRequest{URL: "https://s3.local/" + f.key}, nil
}

func TestS3Store_Put(t *testing.T) {
	client := &fakeS3{}
	store := NewS3StoreWithClients("snaps", client, &fakePresigner{})

	err := store.Put(context.Background(), "snapshots/a.bin", []byte("data"), map[string]string{"sha256": "x"})
	require.NoError(t, err)
	assert.Equal(t, "snaps", aws.ToString(client.in.Bucket))
	assert.Equal(t, "snapshots/a.bin", aws.ToString(client.in.Key))
	assert.Equal(t, int64(4), aws.ToInt64(client.in.ContentLength))
	assert.Equal(t, "x", client.in.Metadata["sha256"])
	assert.Equal(t, []byte("data"), client.body)

	client.err = errors.New("denied")
	assert.ErrorContains(t, store.Put(context.Background(), "k", nil, nil), "s3 put k: denied")
}

func TestS3Store_PresignGet(t *testing.T) {
	p := &fakePresigner{}
	store := NewS3StoreWithClients("snaps", &fakeS3{}, p)

	url, err := store.PresignGet(context.Background(), "snapshots/a.bin", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/snapshots/a.bin", url)
	assert.Equal(t, 15*time.Minute, p.expires)

	p.err = errors.New("no creds")
	_, err = store.PresignGet(context.Background(), "k", time.Minute)
	assert.ErrorContains(t, err, "no creds")
}

func TestNewS3Store(t *testing.T) {
	var cfg config.Config
	cfg.LoadDefaults()

	store, err := NewS3Store(context.Background(), &cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.S3Bucket, store.bucket)

	url, err := store.PresignGet(context.Background(), "snapshots/x.bin", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "/linkify-snapshots/snapshots/x.bin")
}
