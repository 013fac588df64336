package archive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory S3Client double: archiving logic is tested without
// a real S3 endpoint, per the approach documented in DESIGN.md.
type fakeS3 struct {
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	f.objects[*params.Key] = body

	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[*params.Key]
	if !ok {
		return nil, errors.New("no such key")
	}

	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func writeIndexFixture(t *testing.T, dir string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "store"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index_meta.json"), []byte(`{"version":1}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "store", "segment.bin"), []byte("segment-data"), 0o600))
}

func TestKeyNamesSnapshotsByBuildID(t *testing.T) {
	assert.Equal(t, "index-snapshots/abc-123.tar.gz", Key("abc-123"))
}

func TestUploadDownloadRoundTripsDirectoryContents(t *testing.T) {
	client := newFakeS3()
	a := New(client, "test-bucket")

	srcDir := filepath.Join(t.TempDir(), "index.bleve")
	writeIndexFixture(t, srcDir)

	require.NoError(t, a.Upload(context.Background(), srcDir, "build-1"))
	assert.Contains(t, client.objects, "index-snapshots/build-1.tar.gz")

	destDir := filepath.Join(t.TempDir(), "restored")
	require.NoError(t, a.Download(context.Background(), "build-1", destDir))

	meta, err := os.ReadFile(filepath.Join(destDir, "index_meta.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(meta))

	segment, err := os.ReadFile(filepath.Join(destDir, "store", "segment.bin"))
	require.NoError(t, err)
	assert.Equal(t, "segment-data", string(segment))
}

func TestDownloadMissingSnapshotReturnsError(t *testing.T) {
	client := newFakeS3()
	a := New(client, "test-bucket")

	err := a.Download(context.Background(), "does-not-exist", t.TempDir())
	require.Error(t, err)
}

func TestSafeJoinRejectsDirectoryTraversal(t *testing.T) {
	_, err := safeJoin(t.TempDir(), "../../etc/passwd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPath))
}
