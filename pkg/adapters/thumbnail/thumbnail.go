// Package thumbnail renders WebP menu icons for expression animations.
package thumbnail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// DefaultSize is the edge length of generated icons in pixels.
const DefaultSize = 256

// Renderer draws icons. When a preview directory is set and holds <guid>.png, the
// preview is scaled into the icon; otherwise a labelled tile is drawn.
// It implements ports.ThumbnailProvider.
type Renderer struct {
	size       int
	previewDir string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the icon edge length.
func WithSize(px int) Option {
	return func(r *Renderer) {
		if px > 0 {
			r.size = px
		}
	}
}

// WithPreviewDir sets where captured previews are looked up.
func WithPreviewDir(dir string) Option {
	return func(r *Renderer) { r.previewDir = dir }
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{size: DefaultSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Thumbnail renders the icon of anim. Animations without a GUID get no icon.
func (r *Renderer) Thumbnail(ctx context.Context, anim domain.AnimationInfo) (*domain.Thumbnail, error) {
	if anim.GUID == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := r.preview(anim.GUID)
	if err != nil {
		return nil, err
	}
	if img == nil {
		img = r.tile(anim)
	}

	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("webp encode %s: %w", anim.GUID, err)
	}
	return &domain.Thumbnail{
		Key:         anim.GUID + ".webp",
		ContentType: "image/webp",
		Data:        buf.Bytes(),
	}, nil
}

func (r *Renderer) preview(guid string) (image.Image, error) {
	if r.previewDir == "" || strings.ContainsAny(guid, `/\`) {
		return nil, nil
	}
	f, err := os.Open(filepath.Join(r.previewDir, guid+".png"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode preview %s: %w", guid, err)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, r.size, r.size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// tile draws the animation initials on a background derived from its GUID.
// The text is drawn at the bitmap font size and scaled up.
func (r *Renderer) tile(anim domain.AnimationInfo) image.Image {
	const small = 32
	face := basicfont.Face7x13

	canvas := image.NewNRGBA(image.Rect(0, 0, small, small))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(background(anim.GUID)), image.Point{}, draw.Src)

	label := initials(anim.Name)
	d := &font.Drawer{Dst: canvas, Src: image.White, Face: face}
	width := d.MeasureString(label).Ceil()
	d.Dot = fixed.P((small-width)/2, (small+face.Ascent-face.Descent)/2)
	d.DrawString(label)

	dst := image.NewNRGBA(image.Rect(0, 0, r.size, r.size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return dst
}

func background(guid string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(guid))
	v := h.Sum32()
	// Keep channels dark enough for white text.
	return color.NRGBA{R: uint8(v>>16)%160 + 32, G: uint8(v>>8)%160 + 32, B: uint8(v)%160 + 32, A: 255}
}

// initials returns up to two upper-case letters, e.g. "angry_grin" -> "AG".
func initials(name string) string {
	var out []rune
	start := true
	for _, c := range name {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			start = true
			continue
		}
		if start && c < unicode.MaxASCII {
			out = append(out, unicode.ToUpper(c))
			if len(out) == 2 {
				break
			}
		}
		start = false
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}
