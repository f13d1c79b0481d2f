package marquee

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader opens named assets. Implementations must be safe for concurrent use.
type Loader interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FSLoader loads assets from an fs.FS, such as os.DirFS or an embed.FS.
type FSLoader struct {
	FS fs.FS
}

// Open implements Loader.
func (l FSLoader) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := l.FS.Open(strings.TrimPrefix(name, "/"))
	if err != nil {
		return nil, fmt.Errorf("marquee: open asset %s: %w", name, err)
	}
	return f, nil
}

// HTTPLoader fetches assets with plain GET requests relative to BaseURL.
type HTTPLoader struct {
	BaseURL string
	// Client defaults to http.DefaultClient.
	Client *http.Client
}

// Open implements Loader. Non-2xx responses are errors.
func (l HTTPLoader) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	u, err := l.resolve(name)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("marquee: fetch %s: %w", name, err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("marquee: fetch %s: %w", name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("marquee: fetch %s: %s", name, resp.Status)
	}
	return resp.Body, nil
}

func (l HTTPLoader) resolve(name string) (string, error) {
	base, err := url.Parse(l.BaseURL)
	if err != nil {
		return "", fmt.Errorf("marquee: bad asset base URL %q: %w", l.BaseURL, err)
	}
	ref, err := url.Parse(strings.TrimPrefix(name, "/"))
	if err != nil {
		return "", fmt.Errorf("marquee: bad asset name %q: %w", name, err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base.ResolveReference(ref).String(), nil
}

// --- Future ---

// Future is the result of a one-shot asynchronous operation. It resolves
// exactly once, with a value or an error.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Async runs fn on a new goroutine and returns its Future.
func Async[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		v, err := fn(ctx)
		f.resolve(v, err)
	}()
	return f
}

// Resolved returns a Future that is already complete.
func Resolved[T any](v T, err error) *Future[T] {
	f := newFuture[T]()
	f.resolve(v, err)
	return f
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(v T, err error) {
	f.val, f.err = v, err
	close(f.done)
}

// Done returns a channel closed when the Future resolves.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Poll returns the result without blocking. ok is false while pending.
func (f *Future[T]) Poll() (v T, ok bool, err error) {
	select {
	case <-f.done:
		return f.val, true, f.err
	default:
		return v, false, nil
	}
}

// Wait blocks until the Future resolves or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// --- AssetCache ---

// AssetCache fetches asset bytes through a Loader. Concurrent fetches of
// one name share a single load, and successful results are kept, so every
// asset is loaded once per cache. Failures are not cached.
type AssetCache struct {
	loader Loader
	group  singleflight.Group

	mu    sync.Mutex
	bytes map[string][]byte
}

// NewAssetCache creates a cache over loader.
func NewAssetCache(loader Loader) *AssetCache {
	return &AssetCache{loader: loader, bytes: make(map[string][]byte)}
}

// Fetch returns the bytes of name, loading them on first use.
func (c *AssetCache) Fetch(ctx context.Context, name string) ([]byte, error) {
	c.mu.Lock()
	b, ok := c.bytes[name]
	c.mu.Unlock()
	if ok {
		return b, nil
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		rc, err := c.loader.Open(ctx, name)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("marquee: read asset %s: %w", name, err)
		}
		c.mu.Lock()
		c.bytes[name] = data
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
