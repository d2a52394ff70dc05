// Package image derives the fixed size variants of a product original.
package image

import (
	"context"
	"errors"
	"fmt"
	stdImage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	_ "golang.org/x/image/webp"

	inErrors "github.com/Alturino/grocery/internal/errors"
	"github.com/Alturino/grocery/internal/log"
	"github.com/Alturino/grocery/internal/metrics"
	inOtel "github.com/Alturino/grocery/internal/otel"
	"github.com/Alturino/grocery/internal/storage"
	"github.com/Alturino/grocery/product/internal/otel"
)

const (
	VariantOriginal = "original"
	VariantLarge    = "large"
	VariantMedium   = "medium"
	VariantSmall    = "small"

	// fallbackExt is used for variants of originals whose format has no encoder.
	fallbackExt = "png"
)

type Box struct {
	Name   string
	Width  int
	Height int
}

var Boxes = []Box{
	{Name: VariantLarge, Width: 800, Height: 800},
	{Name: VariantMedium, Width: 400, Height: 400},
	{Name: VariantSmall, Width: 200, Height: 200},
}

// Source is one uploaded original. Upload names the directory its files are
// written to, so a new upload never touches the files of an earlier one.
type Source struct {
	Image  stdImage.Image
	Slug   string
	Upload string
	Ext    string
}

// Variants holds the storage relative paths of the derived images.
type Variants struct {
	Large  string
	Medium string
	Small  string
}

func (v *Variants) set(name string, p string) {
	switch name {
	case VariantLarge:
		v.Large = p
	case VariantMedium:
		v.Medium = p
	case VariantSmall:
		v.Small = p
	}
}

func (v Variants) Paths() []string {
	return []string{v.Large, v.Medium, v.Small}
}

// Path returns products/{slug}/{upload}/{slug}_{variant}.{ext} with ext lower
// cased.
func Path(slug string, upload string, variant string, ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return path.Join("products", slug, upload, fmt.Sprintf("%s_%s.%s", slug, variant, ext))
}

// Ext returns the lower cased extension of filename without the dot.
func Ext(filename string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
}

// Decode reads an original. Formats without a registered decoder and corrupt
// data are processing errors.
func Decode(r io.Reader) (stdImage.Image, error) {
	img, _, err := stdImage.Decode(r)
	if err != nil {
		return nil, inErrors.Processing(fmt.Errorf("failed decoding image with error=%w", err))
	}
	return img, nil
}

// VariantExt returns the extension variants of an ext original are written
// with: ext itself when it can be encoded, png otherwise.
func VariantExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if _, err := imaging.FormatFromExtension(ext); err != nil {
		return fallbackExt
	}
	return ext
}

type Deriver struct {
	blob *storage.Blob
}

func NewDeriver(blob *storage.Blob) *Deriver {
	return &Deriver{blob: blob}
}

// DeriveVariants writes the large, medium and small variants of src under its
// upload directory. Either all three paths end up in storage or none of the
// files written by this call remain. Variants already in that directory are
// overwritten.
func (d *Deriver) DeriveVariants(c context.Context, src Source) (variants Variants, err error) {
	c, span := otel.Tracer.Start(
		c,
		"Deriver DeriveVariants",
		trace.WithAttributes(
			attribute.String(log.KeySlug, src.Slug),
			attribute.String(log.KeyUpload, src.Upload),
			attribute.String(log.KeyExt, src.Ext),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.ImageDerivations.WithLabelValues(metrics.Outcome(err)).Inc()
		metrics.ImageDerivationDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			inOtel.RecordError(err, span)
		}
	}()

	if src.Image == nil {
		return Variants{}, inErrors.Processing(errors.New("failed deriving variants with error=missing source image"))
	}
	if src.Slug == "" {
		return Variants{}, inErrors.Processing(errors.New("failed deriving variants with error=missing slug"))
	}
	if src.Upload == "" {
		return Variants{}, inErrors.Processing(errors.New("failed deriving variants with error=missing upload"))
	}

	ext := VariantExt(src.Ext)
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return Variants{}, inErrors.Processing(fmt.Errorf("failed resolving format of ext=%s with error=%w", ext, err))
	}

	staged := make(map[string]string, len(Boxes))
	promoted := make([]string, 0, len(Boxes))
	defer func() {
		if err == nil {
			return
		}
		for _, p := range staged {
			err = errors.Join(err, d.blob.Remove(p))
		}
		for _, p := range promoted {
			err = errors.Join(err, d.blob.Remove(p))
		}
	}()

	for _, box := range Boxes {
		if err := c.Err(); err != nil {
			return Variants{}, inErrors.Processing(fmt.Errorf("failed deriving variants with error=%w", err))
		}

		span.AddEvent(fmt.Sprintf("resizing variant=%s", box.Name))
		resized := imaging.Fit(src.Image, box.Width, box.Height, imaging.Lanczos)

		target := Path(src.Slug, src.Upload, box.Name, ext)
		tmp, err := d.blob.Stage(target, func(w io.Writer) error {
			return imaging.Encode(w, resized, format)
		})
		if err != nil {
			return Variants{}, inErrors.Processing(fmt.Errorf("failed encoding variant=%s with error=%w", box.Name, err))
		}
		staged[target] = tmp
	}

	for _, box := range Boxes {
		target := Path(src.Slug, src.Upload, box.Name, ext)
		if err := d.blob.Promote(staged[target], target); err != nil {
			return Variants{}, inErrors.Processing(fmt.Errorf("failed storing variant=%s with error=%w", box.Name, err))
		}
		delete(staged, target)
		promoted = append(promoted, target)
		variants.set(box.Name, target)
	}
	span.AddEvent("derived variants")

	return variants, nil
}
