package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestMemoryStorage(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	t.Run("Upload", func(t *testing.T) {
		require.NoError(t, store.Upload(ctx, "alice/report.txt", strings.NewReader("report"), 6, "text/plain"))
		require.NoError(t, store.Upload(ctx, "alice/notes.txt", strings.NewReader("notes"), 5, "text/plain"))
		require.NoError(t, store.Upload(ctx, "bob/report.txt", strings.NewReader("bob"), 3, "text/plain"))
	})

	t.Run("List", func(t *testing.T) {
		objects, err := store.List(ctx, "alice/")
		require.NoError(t, err)
		require.Len(t, objects, 2)
		assert.Equal(t, "alice/notes.txt", objects[0].Key)
		assert.Equal(t, int64(5), objects[0].Size)
		assert.Equal(t, "alice/report.txt", objects[1].Key)
	})

	t.Run("Download", func(t *testing.T) {
		obj, err := store.Download(ctx, "alice/report.txt")
		require.NoError(t, err)
		defer obj.Body.Close()

		data, err := io.ReadAll(obj.Body)
		require.NoError(t, err)
		assert.Equal(t, "report", string(data))
		assert.Equal(t, "text/plain", obj.ContentType)
		assert.Equal(t, int64(6), obj.Size)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Upload(ctx, "bob/report.txt", strings.NewReader("v2!"), 3, "application/json"))

		obj, err := store.Download(ctx, "bob/report.txt")
		require.NoError(t, err)
		data, _ := io.ReadAll(obj.Body)
		assert.Equal(t, "v2!", string(data))
		assert.Equal(t, "application/json", obj.ContentType)
	})

	t.Run("DownloadMissing", func(t *testing.T) {
		_, err := store.Download(ctx, "alice/missing.txt")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("FailedReadLeavesNoObject", func(t *testing.T) {
		err := store.Upload(ctx, "alice/broken.bin", failingReader{}, 10, "application/octet-stream")
		require.Error(t, err)

		_, err = store.Download(ctx, "alice/broken.bin")
		assert.True(t, IsNotFound(err))
	})

	t.Run("ShortReadIsRejected", func(t *testing.T) {
		err := store.Upload(ctx, "alice/short.bin", strings.NewReader("abc"), 10, "")
		require.Error(t, err)

		_, err = store.Download(ctx, "alice/short.bin")
		assert.True(t, IsNotFound(err))
	})

	t.Run("CancelledContext", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.List(cctx, "alice/")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMemoryStorageConcurrency(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("user%d/file-%d", w, i)
				payload := fmt.Sprintf("payload %d/%d", w, i)
				assert.NoError(t, store.Upload(ctx, key, strings.NewReader(payload), int64(len(payload)), "text/plain"))

				obj, err := store.Download(ctx, key)
				if assert.NoError(t, err) {
					data, _ := io.ReadAll(obj.Body)
					assert.Equal(t, payload, string(data))
				}
			}
		}(w)
	}
	wg.Wait()

	objects, err := store.List(ctx, "user3/")
	require.NoError(t, err)
	assert.Len(t, objects, perWorker)
}
