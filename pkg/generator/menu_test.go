package generator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzuryg/facial-expression-switcher/internal/testutils"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/generator"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		labels []string
	}{
		{"empty", 0, nil},
		{"single page", 8, []string{"1 - 8"}},
		{"partial last page", 20, []string{"1 - 8", "9 - 16", "17 - 20"}},
		{"exactly two pages", 16, []string{"1 - 8", "9 - 16"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var labels []string
			for _, p := range generator.Paginate(tt.n, generator.ItemLimit) {
				labels = append(labels, p.Label())
			}
			assert.Equal(t, tt.labels, labels)
		})
	}
}

func TestPaginate_Ranges(t *testing.T) {
	assert.Equal(t, []generator.PageRange{{Start: 0, End: 7}, {Start: 8, End: 9}}, generator.Paginate(10, generator.ItemLimit))

	for n := 0; n <= generator.ItemLimit*generator.ItemLimit; n++ {
		pages := generator.Paginate(n, generator.ItemLimit)
		folders := min((n+generator.ItemLimit-1)/generator.ItemLimit, generator.ItemLimit)
		require.Len(t, pages, folders, "n=%d", n)

		next, total := 0, 0
		for _, page := range pages {
			assert.Equal(t, next, page.Start, "n=%d: ranges are contiguous", n)
			assert.LessOrEqual(t, page.End-page.Start+1, generator.ItemLimit, "n=%d", n)
			total += page.End - page.Start + 1
			next = page.End + 1
		}
		assert.Equal(t, n, total, "n=%d", n)
	}
}

func TestPaginate_DropsOverflow(t *testing.T) {
	pages := generator.Paginate(100, generator.ItemLimit)
	require.Len(t, pages, 8)
	assert.Equal(t, generator.PageRange{Start: 56, End: 63}, pages[7])
}

func names(m *domain.ExMenu) []string {
	out := make([]string, len(m.Controls))
	for i, c := range m.Controls {
		out[i] = c.Name
	}
	return out
}

func sub(t *testing.T, m *domain.ExMenu, name string) *domain.ExMenu {
	t.Helper()
	for _, c := range m.Controls {
		if c.Name == name {
			require.NotNil(t, c.SubMenu, "%s is not a folder", name)
			return c.SubMenu
		}
	}
	t.Fatalf("menu %q has no control %q", m.Name, name)
	return nil
}

func TestBuildMenu_Structure(t *testing.T) {
	f := newFixture()
	res, err := f.generator(t, generator.DefaultSettings()).Generate(context.Background(), testutils.SampleMenu())
	require.NoError(t, err)

	require.Len(t, res.Menu.Controls, 1)
	fes := sub(t, res.Menu, "FES")
	assert.Equal(t, []string{"Calm", "Fun", "Emote Select", "Setting"}, names(fes))

	calm := fes.Controls[0]
	assert.Equal(t, domain.ControlToggle, calm.Type)
	assert.Equal(t, domain.ParamEmotePattern, calm.Parameter)
	assert.Equal(t, 0.0, calm.Value)
	happy := sub(t, fes, "Fun").Controls[0]
	assert.Equal(t, "Happy", happy.Name)
	assert.Equal(t, 1.0, happy.Value)

	emoteSelect := fes.Controls[2]
	assert.Equal(t, domain.ParamEmotePrelock, emoteSelect.Parameter)
	assert.Equal(t, 1.0, emoteSelect.Value)
	assert.Equal(t, []string{"Emote Lock", "Fun"}, names(emoteSelect.SubMenu), "branchless modes that keep the default face are skipped")

	folder := sub(t, sub(t, emoteSelect.SubMenu, "Fun"), "Happy")
	assert.Equal(t, []string{"smile", "angry", "wink"}, names(folder))
	for i, c := range folder.Controls {
		assert.Equal(t, domain.ParamSyncEmote, c.Parameter)
		assert.Equal(t, float64(i+1), c.Value)
		assert.Equal(t, domain.IconFace, c.Icon)
	}

	setting := sub(t, fes, "Setting")
	assert.Equal(t, []string{"Blink Off", "Dance Gimmick", "Contact Emote Lock", "Emote Override", "Wait Emote By Voice"}, names(setting))
}

func TestBuildMenu_CompressedBindsPattern(t *testing.T) {
	f := newFixture()
	settings := generator.DefaultSettings()
	settings.ForceCompressed = true
	res, err := f.generator(t, settings).Generate(context.Background(), testutils.SampleMenu())
	require.NoError(t, err)

	fun := sub(t, sub(t, sub(t, res.Menu, "FES"), "Emote Select"), "Fun")
	control := fun.Controls[0]
	assert.Equal(t, domain.ParamEmotePattern, control.Parameter)
	assert.Equal(t, 1.0, control.Value)

	var values []float64
	for _, c := range control.SubMenu.Controls {
		values = append(values, c.Value)
	}
	assert.Equal(t, []float64{0, 1, 2}, values)
}

func TestBuildMenu_WithoutEmoteSelect(t *testing.T) {
	f := newFixture()
	settings := generator.DefaultSettings()
	settings.AddConfig = generator.MenuConfig{HandPatternSwap: true, ControllerIndex: true}
	settings.ReplaceBlink = false
	res, err := f.generator(t, settings).Generate(context.Background(), testutils.SampleMenu())
	require.NoError(t, err)

	fes := sub(t, res.Menu, "FES")
	assert.Equal(t, []string{"Calm", "Fun", "Emote Lock", "Setting"}, names(fes))
	lock := fes.Controls[2]
	assert.Equal(t, domain.ControlToggle, lock.Type)
	assert.Equal(t, domain.ParamEmoteLock, lock.Parameter)

	setting := sub(t, fes, "Setting")
	assert.Equal(t, []string{"Hand Pattern", "Controller"}, names(setting))
	assert.Equal(t, []string{"Swap L/R"}, names(sub(t, setting, "Hand Pattern")))
	assert.Equal(t, []string{"Index"}, names(sub(t, setting, "Controller")))
}

func TestBuildMenu_PaginatesLargeModes(t *testing.T) {
	branches := make([]domain.Branch, 20)
	for i := range branches {
		branches[i] = domain.Branch{Conditions: []domain.Condition{testutils.LeftFist()}}
	}
	menu := &domain.Menu{ID: "big", Items: []domain.MenuItem{{Mode: &domain.Mode{ID: "m", DisplayName: "Many", Branches: branches}}}}

	f := newFixture()
	res, err := f.generator(t, generator.DefaultSettings()).Generate(context.Background(), menu)
	require.NoError(t, err)

	folder := sub(t, sub(t, sub(t, res.Menu, "FES"), "Emote Select"), "Many")
	assert.Equal(t, []string{"1 - 8", "9 - 16", "17 - 20"}, names(folder))
	last := sub(t, folder, "17 - 20")
	require.Len(t, last.Controls, 4)
	assert.Equal(t, "(No Expression)", last.Controls[0].Name)
	assert.Equal(t, 17.0, last.Controls[0].Value, "mode 0 branch 16 resolves to 1+16")
}

type fakeThumbnails struct {
	calls int
}

func (f *fakeThumbnails) Thumbnail(_ context.Context, anim domain.AnimationInfo) (*domain.Thumbnail, error) {
	f.calls++
	return &domain.Thumbnail{Key: anim.GUID + ".webp", ContentType: "image/webp", Data: []byte(anim.Name)}, nil
}

func TestBuildMenu_Thumbnails(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	settings := generator.DefaultSettings()
	settings.GenerateThumbnails = true
	thumbs := &fakeThumbnails{}

	res, err := f.generator(t, settings, generator.WithThumbnails(thumbs)).Generate(ctx, testutils.SampleMenu())
	require.NoError(t, err)

	happy := sub(t, sub(t, res.Menu, "FES"), "Fun").Controls[0]
	assert.Equal(t, domain.Icon("thumbnails/guid-smile.webp"), happy.Icon)
	assert.Equal(t, domain.IconFace, sub(t, res.Menu, "FES").Controls[0].Icon, "modes keeping the default face use the face icon")
	assert.Equal(t, 3, thumbs.calls, "each animation is rendered once")

	data, err := f.store.Get(ctx, res.Output, "thumbnails/guid-smile.webp")
	require.NoError(t, err)
	assert.Equal(t, "smile", string(data))
}

func TestBuildMenu_ModesWithoutIDs(t *testing.T) {
	branch := []domain.Branch{{Conditions: []domain.Condition{testutils.LeftFist()}}}
	menu := &domain.Menu{ID: "anon", Items: []domain.MenuItem{
		{Mode: &domain.Mode{DisplayName: "A", Branches: branch}},
		{Mode: &domain.Mode{DisplayName: "B", Branches: branch}},
	}}

	f := newFixture()
	res, err := f.generator(t, generator.DefaultSettings()).Generate(context.Background(), menu)
	require.NoError(t, err)

	fes := sub(t, res.Menu, "FES")
	require.Equal(t, []string{"A", "B", "Emote Select", "Setting"}, names(fes))
	assert.Equal(t, 0.0, fes.Controls[0].Value)
	assert.Equal(t, 1.0, fes.Controls[1].Value)

	emoteSelect := sub(t, fes, "Emote Select")
	assert.Equal(t, []string{"Emote Lock", "A", "B"}, names(emoteSelect))
	assert.Equal(t, 1.0, sub(t, emoteSelect, "A").Controls[0].Value, "A's branch follows A's body")
	assert.Equal(t, 3.0, sub(t, emoteSelect, "B").Controls[0].Value, "B's branch follows B's body")
}

type failingThumbnails struct {
	fakeThumbnails
	fail string
}

func (f *failingThumbnails) Thumbnail(ctx context.Context, anim domain.AnimationInfo) (*domain.Thumbnail, error) {
	if anim.Name == f.fail {
		f.calls++
		return nil, errors.New("decode preview: png: invalid format")
	}
	return f.fakeThumbnails.Thumbnail(ctx, anim)
}

func TestBuildMenu_ThumbnailFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	settings := generator.DefaultSettings()
	settings.GenerateThumbnails = true
	thumbs := &failingThumbnails{fail: testutils.AnimSmile.Name}

	res, err := f.generator(t, settings, generator.WithThumbnails(thumbs)).Generate(ctx, testutils.SampleMenu())
	require.NoError(t, err)

	happy := sub(t, sub(t, res.Menu, "FES"), "Fun").Controls[0]
	assert.Equal(t, domain.IconFace, happy.Icon)
	require.Len(t, res.Report.Warnings, 1)
	assert.Contains(t, res.Report.Warnings[0], "invalid format")
	assert.Equal(t, res.Report.Warnings, res.Manifest.Warnings)
	assert.Equal(t, 3, thumbs.calls, "a failed render is not retried")

	_, err = f.store.Get(ctx, res.Output, "thumbnails/guid-angry.webp")
	assert.NoError(t, err, "other thumbnails are still written")
}
