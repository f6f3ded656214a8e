package storage

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modorifa/rifas/internal/shared/config"
)

func TestNewKey(t *testing.T) {
	at := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		filename string
		wantExt  string
	}{
		{"capture.PNG", ".png"},
		{"receipt.pdf", ".pdf"},
		{"noext", ""},
		{"../../etc/passwd", ""},
		{"weird.extension-too-long", ""},
	}

	for _, tt := range tests {
		key := newKey(tt.filename, at)
		assert.True(t, strings.HasPrefix(key, "proofs/2026/03/"), key)
		assert.True(t, strings.HasSuffix(key, tt.wantExt), key)
		assert.NoError(t, validKey(key))
	}
}

func TestValidKey(t *testing.T) {
	assert.Error(t, validKey("../secret"))
	assert.Error(t, validKey("proofs/../../secret"))
	assert.Error(t, validKey("other/2026/03/a.png"))
	assert.Error(t, validKey("proofs//a.png"))
	assert.NoError(t, validKey("proofs/2026/03/a.png"))
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, "pago.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"), 10)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/admin/"+key, store.URL(key))

	f, err := store.Open(key)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(key)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, key))
	assert.Error(t, store.Delete(ctx, "../outside"))
}

type mockUploader struct {
	s3manageriface.UploaderAPI
	inputs []*s3manager.UploadInput
}

func (m *mockUploader) UploadWithContext(ctx aws.Context, in *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	m.inputs = append(m.inputs, in)
	return &s3manager.UploadOutput{}, nil
}

type mockS3 struct {
	s3iface.S3API
	deleted []string
}

func (m *mockS3) DeleteObjectWithContext(ctx aws.Context, in *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error) {
	m.deleted = append(m.deleted, aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	uploader := &mockUploader{}
	client := &mockS3{}
	store := &S3Store{client: client, uploader: uploader, bucket: "rifas-proofs", publicURL: "https://cdn.example.com/"}
	store.publicURL = strings.TrimRight(store.publicURL, "/")
	ctx := context.Background()

	key, err := store.Save(ctx, "pago.png", "image/png", strings.NewReader("png"), 3)
	require.NoError(t, err)
	require.Len(t, uploader.inputs, 1)
	assert.Equal(t, "rifas-proofs", aws.StringValue(uploader.inputs[0].Bucket))
	assert.Equal(t, key, aws.StringValue(uploader.inputs[0].Key))
	assert.Equal(t, "image/png", aws.StringValue(uploader.inputs[0].ContentType))
	assert.Nil(t, uploader.inputs[0].ACL)
	assert.Equal(t, "https://cdn.example.com/"+key, store.URL(key))

	require.NoError(t, store.Delete(ctx, key))
	assert.Equal(t, []string{key}, client.deleted)
}

func TestNew(t *testing.T) {
	store, err := New(config.StorageConfig{Driver: config.StorageDriverLocal, LocalDir: t.TempDir()}, "")
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = New(config.StorageConfig{Driver: "ftp"}, "")
	assert.Error(t, err)
}
