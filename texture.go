package marquee

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // slide decoding
	_ "image/png"  // slide and atlas decoding

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // slide decoding
	"golang.org/x/sync/errgroup"
)

// maxConcurrentDecodes bounds texture goroutines.
const maxConcurrentDecodes = 4

// FontAsset is a parsed MSDF font with its decoded atlas page. The atlas is
// a CPU image; the game loop uploads it.
type FontAsset struct {
	Font  *MSDFFont
	Atlas image.Image
}

// DecodeImage decodes PNG, JPEG or WebP data.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("marquee: decode image: %w", err)
	}
	return img, nil
}

// NormalizeImage resamples img to exactly w x h. Images that already match
// are returned as is.
func NormalizeImage(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// LoadFont fetches and parses the font descriptor and atlas concurrently.
func LoadFont(ctx context.Context, cache *AssetCache, fontName, atlasName string) (*FontAsset, error) {
	var fa FontAsset
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := cache.Fetch(ctx, fontName)
		if err != nil {
			return err
		}
		fa.Font, err = ParseMSDFFont(data)
		return err
	})
	g.Go(func() error {
		data, err := cache.Fetch(ctx, atlasName)
		if err != nil {
			return err
		}
		fa.Atlas, err = DecodeImage(data)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &fa, nil
}

// LoadTextures starts loading every named slide and returns one Future per
// name, in order. Each slide resolves independently: a failure leaves only
// that slide missing. Decoded slides are resampled to w x h.
func LoadTextures(ctx context.Context, cache *AssetCache, names []string, w, h int) []*Future[image.Image] {
	futures := make([]*Future[image.Image], len(names))
	for i := range futures {
		futures[i] = newFuture[image.Image]()
	}
	go func() {
		var g errgroup.Group
		g.SetLimit(maxConcurrentDecodes)
		for i, name := range names {
			g.Go(func() error {
				img, err := loadTexture(ctx, cache, name, w, h)
				futures[i].resolve(img, err)
				return nil
			})
		}
		_ = g.Wait()
	}()
	return futures
}

func loadTexture(ctx context.Context, cache *AssetCache, name string, w, h int) (image.Image, error) {
	data, err := cache.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	img, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("marquee: texture %s: %w", name, err)
	}
	return NormalizeImage(img, w, h), nil
}
