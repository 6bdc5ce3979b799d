package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-booking/internal/domain"
)

type fakeS3 struct {
	mu          sync.Mutex
	status      int
	paths       []string
	bodies      [][]byte
	contentType []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.bodies = append(f.bodies, body)
	f.contentType = append(f.contentType, r.Header.Get("Content-Type"))
	status := f.status
	f.mu.Unlock()

	if status != 0 && status != http.StatusOK {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
		return
	}
	w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
	w.WriteHeader(http.StatusOK)
}

func newTestS3Client(endpoint string) *s3.Client {
	return s3.New(s3.Options{
		Region:                     "us-east-1",
		BaseEndpoint:               aws.String(endpoint),
		UsePathStyle:               true,
		Credentials:                credentials.NewStaticCredentialsProvider("test", "test", ""),
		RetryMaxAttempts:           1,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
	})
}

// === s3 ===

func TestS3Uploader_Upload(t *testing.T) {
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	up, err := NewS3Uploader(newTestS3Client(srv.URL), S3Options{Bucket: "hotels", KeyPrefix: "images/"})
	require.NoError(t, err)

	url, err := up.Upload(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)

	require.Len(t, fake.paths, 1)
	assert.True(t, strings.HasPrefix(fake.paths[0], "/hotels/images/"), fake.paths[0])
	assert.True(t, strings.HasSuffix(fake.paths[0], ".png"), fake.paths[0])
	assert.Equal(t, "png-bytes", string(fake.bodies[0]))
	assert.Equal(t, "image/png", fake.contentType[0])
	assert.True(t, strings.HasPrefix(url, srv.URL), url)
	assert.True(t, strings.HasSuffix(url, strings.TrimPrefix(fake.paths[0], "/hotels")), url)
}

func TestS3Uploader_PublicBaseURL(t *testing.T) {
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	up, err := NewS3Uploader(newTestS3Client(srv.URL), S3Options{
		Bucket:        "hotels",
		KeyPrefix:     "images",
		PublicBaseURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)

	url, err := up.Upload(context.Background(), []byte("gif"), "image/gif")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/images/"), url)
	assert.True(t, strings.HasSuffix(url, ".gif"), url)
}

func TestS3Uploader_Failure(t *testing.T) {
	srv := httptest.NewServer(&fakeS3{status: http.StatusForbidden})
	defer srv.Close()

	up, err := NewS3Uploader(newTestS3Client(srv.URL), S3Options{Bucket: "hotels"})
	require.NoError(t, err)

	_, err = up.Upload(context.Background(), []byte("x"), "image/png")
	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestNewS3Uploader_RequiresBucket(t *testing.T) {
	_, err := NewS3Uploader(newTestS3Client("http://127.0.0.1:1"), S3Options{})
	require.Error(t, err)
}

// === cloudinary ===

type fakeCloudinary struct {
	file   interface{}
	params uploader.UploadParams
	result *uploader.UploadResult
	err    error
}

func (f *fakeCloudinary) Upload(_ context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.file = file
	f.params = params
	return f.result, f.err
}

func TestCloudinaryUploader_SendsDataURI(t *testing.T) {
	fake := &fakeCloudinary{result: &uploader.UploadResult{
		URL:       "http://res.cloudinary.com/demo/image/upload/a.png",
		SecureURL: "https://res.cloudinary.com/demo/image/upload/a.png",
	}}
	up := &CloudinaryUploader{api: fake, folder: "hotels"}

	url, err := up.Upload(context.Background(), []byte("hi"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/a.png", url)
	assert.Equal(t, "data:image/png;base64,aGk=", fake.file)
	assert.Equal(t, "hotels", fake.params.Folder)
}

func TestCloudinaryUploader_Errors(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeCloudinary
	}{
		{"transport", &fakeCloudinary{err: errors.New("connection reset")}},
		{"api error", &fakeCloudinary{result: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}}},
		{"no url", &fakeCloudinary{result: &uploader.UploadResult{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &CloudinaryUploader{api: tt.fake}
			_, err := up.Upload(context.Background(), []byte("x"), "image/png")
			require.ErrorIs(t, err, domain.ErrUpstream)
		})
	}
}

func TestObjectKey(t *testing.T) {
	key := objectKey("/hotels/", "image/jpeg")
	assert.True(t, strings.HasPrefix(key, "hotels/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)

	bare := objectKey("", "application/x-unknown-type")
	assert.NotContains(t, bare, "/")
}
