package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArchiverUsesConfiguredBucket(t *testing.T) {
	a, err := newArchiver(context.Background(), ArchiveConfig{Bucket: "my-bucket", Region: "il-central-1"})
	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestNewArchiverAcceptsStaticCredentials(t *testing.T) {
	a, err := newArchiver(context.Background(), ArchiveConfig{
		Bucket:          "my-bucket",
		Region:          "il-central-1",
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.NotNil(t, a)
}
