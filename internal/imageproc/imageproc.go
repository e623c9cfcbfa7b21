// Package imageproc derives the web renditions of an uploaded image.
package imageproc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/storage"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

var ErrDecode = errors.New("не удалось прочитать изображение")

type Options struct {
	MaxDimension     int
	OptimizedQuality int
	ThumbnailSize    int
	ThumbnailQuality int
}

func DefaultOptions() Options {
	return Options{MaxDimension: 1200, OptimizedQuality: 80, ThumbnailSize: 300, ThumbnailQuality: 70}
}

type Variant struct {
	Name   string
	Size   int64
	Width  int
	Height int
}

type Variants struct {
	Optimized Variant
	Thumbnail Variant
}

func OptimizedName(base string) string { return base + "-optimized.webp" }
func ThumbnailName(base string) string { return base + "-thumbnail.webp" }

type Processor struct {
	store storage.Storage
	opts  Options
	// Observe, when set, receives the wall time of every successful Process call.
	Observe func(time.Duration)
}

func New(store storage.Storage, opts Options) *Processor {
	def := DefaultOptions()
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = def.MaxDimension
	}
	if opts.OptimizedQuality <= 0 || opts.OptimizedQuality > 100 {
		opts.OptimizedQuality = def.OptimizedQuality
	}
	if opts.ThumbnailSize <= 0 {
		opts.ThumbnailSize = def.ThumbnailSize
	}
	if opts.ThumbnailQuality <= 0 || opts.ThumbnailQuality > 100 {
		opts.ThumbnailQuality = def.ThumbnailQuality
	}
	return &Processor{store: store, opts: opts}
}

// Process decodes data and writes the optimized and thumbnail renditions concurrently.
// Either both files exist afterwards or neither does.
func (p *Processor) Process(ctx context.Context, baseName string, data []byte) (*Variants, error) {
	start := time.Now()

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var optimized, thumbnail Variant
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		img := imaging.Fit(src, p.opts.MaxDimension, p.opts.MaxDimension, imaging.Lanczos)
		v, err := p.write(gctx, OptimizedName(baseName), img, p.opts.OptimizedQuality)
		optimized = v
		return err
	})

	g.Go(func() error {
		img := imaging.Fill(src, p.opts.ThumbnailSize, p.opts.ThumbnailSize, imaging.Center, imaging.Lanczos)
		v, err := p.write(gctx, ThumbnailName(baseName), img, p.opts.ThumbnailQuality)
		thumbnail = v
		return err
	})

	if err := g.Wait(); err != nil {
		p.cleanup(context.WithoutCancel(ctx), optimized.Name, thumbnail.Name)
		return nil, err
	}

	if p.Observe != nil {
		p.Observe(time.Since(start))
	}

	return &Variants{Optimized: optimized, Thumbnail: thumbnail}, nil
}

// write encodes img as lossy WebP and stores it. Name is set on the result only once the file exists.
func (p *Processor) write(ctx context.Context, name string, img image.Image, quality int) (Variant, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return Variant{}, fmt.Errorf("ошибка кодирования %s: %w", name, err)
	}

	if err := ctx.Err(); err != nil {
		return Variant{}, err
	}

	size, err := p.store.Save(ctx, name, &buf, int64(buf.Len()), models.VariantMimeType)
	if err != nil {
		return Variant{}, fmt.Errorf("ошибка сохранения %s: %w", name, err)
	}

	b := img.Bounds()
	return Variant{Name: name, Size: size, Width: b.Dx(), Height: b.Dy()}, nil
}

func (p *Processor) cleanup(ctx context.Context, names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := p.store.Delete(ctx, name); err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.Ctx(ctx).Warn().Err(err).Str("file", name).Msg("не удалось удалить вариант изображения")
		}
	}
}
