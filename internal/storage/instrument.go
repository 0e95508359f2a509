package storage

import (
	"context"
	"io"
	"time"
)

// Observer receives one call per storage operation.
type Observer interface {
	Observe(op string, bytes int64, err error, dur time.Duration)
}

type instrumented struct {
	next Storage
	obs  Observer
}

// Instrument wraps s so that every List, Upload and Download is reported to obs.
// Download is observed when the returned body is closed, so the byte count covers the transfer.
func Instrument(s Storage, obs Observer) Storage {
	return &instrumented{next: s, obs: obs}
}

func (i *instrumented) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	start := time.Now()
	objects, err := i.next.List(ctx, prefix)
	i.obs.Observe("list", 0, err, time.Since(start))
	return objects, err
}

func (i *instrumented) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	start := time.Now()
	err := i.next.Upload(ctx, key, reader, size, contentType)
	var n int64
	if err == nil {
		n = size
	}
	i.obs.Observe("upload", n, err, time.Since(start))
	return err
}

func (i *instrumented) Download(ctx context.Context, key string) (*Object, error) {
	start := time.Now()
	obj, err := i.next.Download(ctx, key)
	if err != nil {
		i.obs.Observe("download", 0, err, time.Since(start))
		return nil, err
	}
	obj.Body = &observedBody{ReadCloser: obj.Body, obs: i.obs, start: start}
	return obj, nil
}

// observedBody counts bytes read and reports the download once, on Close.
type observedBody struct {
	io.ReadCloser
	obs     Observer
	start   time.Time
	n       int64
	readErr error
	closed  bool
}

func (b *observedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	b.n += int64(n)
	if err != nil && err != io.EOF {
		b.readErr = err
	}
	return n, err
}

func (b *observedBody) Close() error {
	err := b.ReadCloser.Close()
	if !b.closed {
		b.closed = true
		b.obs.Observe("download", b.n, b.readErr, time.Since(b.start))
	}
	return err
}
