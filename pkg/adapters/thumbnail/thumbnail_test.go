package thumbnail

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

func assertWebP(t *testing.T, data []byte) {
	t.Helper()
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}

func TestRenderer_Tile(t *testing.T) {
	r := New(WithSize(64))
	thumb, err := r.Thumbnail(context.Background(), domain.AnimationInfo{GUID: "guid-smile", Name: "smile"})
	require.NoError(t, err)
	require.NotNil(t, thumb)

	assert.Equal(t, "guid-smile.webp", thumb.Key)
	assert.Equal(t, "image/webp", thumb.ContentType)
	assert.Equal(t, "thumbnails/guid-smile.webp", thumb.ArtifactKey())
	assertWebP(t, thumb.Data)
}

func TestRenderer_NoGUID(t *testing.T) {
	thumb, err := New().Thumbnail(context.Background(), domain.AnimationInfo{Name: "smile"})
	require.NoError(t, err)
	assert.Nil(t, thumb)
}

func TestRenderer_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Thumbnail(ctx, domain.AnimationInfo{GUID: "g"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderer_Preview(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:], []uint8{200, 40, 40, 255})
	}
	f, err := os.Create(filepath.Join(dir, "guid-wink.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	r := New(WithSize(16), WithPreviewDir(dir))
	img, err := r.preview("guid-wink")
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
	c := color.NRGBAModel.Convert(img.At(8, 8)).(color.NRGBA)
	assert.InDelta(t, 200, int(c.R), 2)
	assert.InDelta(t, 40, int(c.G), 2)

	missing, err := r.preview("guid-other")
	require.NoError(t, err)
	assert.Nil(t, missing)

	thumb, err := r.Thumbnail(context.Background(), domain.AnimationInfo{GUID: "guid-wink"})
	require.NoError(t, err)
	assertWebP(t, thumb.Data)
}

func TestRenderer_CorruptPreview(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("nope"), 0o644))

	_, err := New(WithPreviewDir(dir)).Thumbnail(context.Background(), domain.AnimationInfo{GUID: "bad"})
	assert.ErrorContains(t, err, "decode preview bad")
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"smile":        "S",
		"angry_grin":   "AG",
		"very big eye": "VB",
		"":             "?",
		"__":           "?",
		"2face":        "2",
	}
	for in, want := range tests {
		assert.Equal(t, want, initials(in), in)
	}
}

func TestBackground_Stable(t *testing.T) {
	a := background("guid-smile")
	assert.Equal(t, a, background("guid-smile"))
	assert.Equal(t, uint8(255), a.A)
	assert.GreaterOrEqual(t, a.R, uint8(32))
	assert.Less(t, a.R, uint8(192))
}
