//go:build integration

package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startLocalStack(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := localstack.Run(ctx,
		"localstack/localstack:latest",
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/_localstack/health").
				WithPort("4566").
				WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(t, err, "start localstack")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "4566")
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, port.Port())
}

func TestS3StorageAgainstLocalStack(t *testing.T) {
	ctx := context.Background()
	endpoint := startLocalStack(ctx, t)

	store, err := NewS3Storage(ctx, S3Options{
		Region:       "us-east-1",
		Bucket:       "integration-files",
		AccessKey:    "test",
		SecretKey:    "test",
		Endpoint:     endpoint,
		UsePathStyle: true,
		CreateBucket: true,
	})
	require.NoError(t, err)

	payload := "integration payload"
	require.NoError(t, store.Upload(ctx, "alice/report.txt", strings.NewReader(payload), int64(len(payload)), "text/plain"))
	require.NoError(t, store.Upload(ctx, "alice/notes.txt", strings.NewReader("n"), 1, "text/plain"))
	require.NoError(t, store.Upload(ctx, "bob/report.txt", strings.NewReader("b"), 1, "text/plain"))

	objects, err := store.List(ctx, "alice/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "alice/notes.txt", objects[0].Key)
	assert.Equal(t, "alice/report.txt", objects[1].Key)

	obj, err := store.Download(ctx, "alice/report.txt")
	require.NoError(t, err)
	defer obj.Body.Close()
	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
	assert.Equal(t, "text/plain", obj.ContentType)

	_, err = store.Download(ctx, "alice/missing.txt")
	assert.True(t, IsNotFound(err))
}
