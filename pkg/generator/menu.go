package generator

import (
	"context"
	"fmt"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/emote"
	"github.com/suzuryg/facial-expression-switcher/pkg/ports"
)

// ItemLimit is the number of controls a runtime menu page can show.
const ItemLimit = 8

// PageRange is an inclusive range of item offsets shown in one folder.
type PageRange struct {
	Start int
	End   int
}

// Label is the folder name shown for the range, 1-based.
func (r PageRange) Label() string {
	return fmt.Sprintf("%d - %d", r.Start+1, r.End+1)
}

// Paginate splits n items into at most itemLimit folders of up to itemLimit items.
// Items past itemLimit*itemLimit do not fit and are dropped.
func Paginate(n, itemLimit int) []PageRange {
	if n <= 0 || itemLimit <= 0 {
		return nil
	}
	folders := n / itemLimit
	if n%itemLimit != 0 {
		folders++
	}
	folders = min(folders, itemLimit)

	pages := make([]PageRange, 0, folders)
	for f := 0; f < folders; f++ {
		start := f * itemLimit
		end := min((f+1)*itemLimit, n) - 1
		pages = append(pages, PageRange{Start: start, End: end})
	}
	return pages
}

// buildMenu mirrors the configuration tree into the selector menu.
func (p *pass) buildMenu(ctx context.Context) (*domain.ExMenu, error) {
	labels := p.settings.Labels
	container := domain.NewExMenu("")
	fes, _ := container.AddSubMenu(labels.RootMenu, domain.IconLogo)

	if err := p.modeSelect(ctx, fes, p.menu.Items); err != nil {
		return nil, err
	}

	if p.settings.AddConfig.EmoteSelect {
		sub, control := fes.AddSubMenu(labels.EmoteSelect, domain.IconFolder)
		control.Parameter = domain.ParamEmotePrelock
		control.Value = 1
		sub.AddToggle(labels.EmoteLock, domain.IconLock, domain.ParamEmoteLock, 1)
		if err := p.emoteSelect(ctx, sub, p.menu.Items); err != nil {
			return nil, err
		}
	} else {
		fes.AddToggle(labels.EmoteLock, domain.IconLock, domain.ParamEmoteLock, 1)
	}

	p.settingMenu(fes)
	return container, nil
}

func (p *pass) modeSelect(ctx context.Context, parent ports.MenuSink, items []domain.MenuItem) error {
	for _, item := range items {
		if item.Group != nil {
			sub, _ := parent.AddSubMenu(item.Group.DisplayName, domain.IconFolder)
			if err := p.modeSelect(ctx, sub, item.Group.Items); err != nil {
				return err
			}
			continue
		}

		entry := p.byMode[item.Mode]
		icon := domain.IconFace
		if p.settings.GenerateThumbnails && item.Mode.ChangeDefaultFace {
			var err error
			if icon, err = p.icon(ctx, item.Mode.Animation); err != nil {
				return err
			}
		}
		parent.AddToggle(entry.DisplayName, icon, domain.ParamEmotePattern, float64(emote.ModeSelectorValue(entry)))
	}
	return nil
}

func (p *pass) emoteSelect(ctx context.Context, parent ports.MenuSink, items []domain.MenuItem) error {
	for _, item := range items {
		if item.Group != nil {
			sub, _ := parent.AddSubMenu(item.Group.DisplayName, domain.IconFolder)
			if err := p.emoteSelect(ctx, sub, item.Group.Items); err != nil {
				return err
			}
			continue
		}

		entry := p.byMode[item.Mode]
		mode := item.Mode

		// The mode body is listed first when it changes the default face.
		refs := make([]emote.BranchRef, 0, len(mode.Branches)+1)
		if mode.ChangeDefaultFace {
			refs = append(refs, emote.NoBranch)
		}
		for i := range mode.Branches {
			refs = append(refs, emote.BranchAt(i))
		}
		if len(refs) == 0 {
			continue
		}

		folder, control := parent.AddSubMenu(entry.DisplayName, domain.IconFolder)
		if p.regime == emote.Compressed {
			control.Parameter = domain.ParamEmotePattern
			control.Value = float64(emote.ModeSelectorValue(entry))
		}

		pages := Paginate(len(refs), ItemLimit)
		for _, page := range pages {
			target := folder
			if len(pages) > 1 {
				target, _ = folder.AddSubMenu(page.Label(), domain.IconFolder)
			}
			for _, ref := range refs[page.Start : page.End+1] {
				if err := p.emoteLeaf(ctx, target, entry, ref); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (p *pass) emoteLeaf(ctx context.Context, parent ports.MenuSink, entry emote.ModeEntry, ref emote.BranchRef) error {
	anim := entry.Mode.Animation
	if offset, ok := ref.Offset(); ok {
		anim = entry.Mode.Branches[offset].BaseAnimation
	}

	name := p.settings.Labels.NoExpression
	if info, ok := p.catalog.Lookup(anim); ok && info.Name != "" {
		name = info.Name
	}

	icon := domain.IconFace
	if p.settings.GenerateThumbnails {
		var err error
		if icon, err = p.icon(ctx, anim); err != nil {
			return err
		}
	}
	parent.AddToggle(name, icon, domain.ParamSyncEmote, float64(emote.Resolve(entry, ref, p.regime)))
	return nil
}

// icon renders (once per animation) and stores a thumbnail. Render failures fall
// back to the face icon with a warning; failing to store one is fatal.
func (p *pass) icon(ctx context.Context, ref domain.AnimationRef) (domain.Icon, error) {
	if p.thumbnails == nil {
		return domain.IconFace, nil
	}
	info, ok := p.catalog.Lookup(ref)
	if !ok {
		return domain.IconFace, nil
	}
	if icon, done := p.icons[info.GUID]; done {
		return icon, nil
	}

	icon := domain.IconFace
	thumb, err := p.thumbnails.Thumbnail(ctx, info)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		p.report.warn(p.logger, &domain.ConfigurationError{
			Path:   "thumbnails/" + info.Name,
			Reason: fmt.Sprintf("thumbnail unavailable, using the default icon: %v", err),
		})
		p.icons[info.GUID] = icon
		return icon, nil
	}
	if thumb != nil {
		if err := p.store.Put(ctx, p.output, thumb.ArtifactKey(), thumb.Data); err != nil {
			return "", &domain.ResourceError{Op: "write " + thumb.ArtifactKey(), Err: err}
		}
		icon = thumb.Icon()
	}
	p.icons[info.GUID] = icon
	return icon, nil
}

func (p *pass) settingMenu(parent ports.MenuSink) {
	labels := p.settings.Labels
	cfg := p.settings.AddConfig
	settings, _ := parent.AddSubMenu(labels.Setting, domain.IconSettings)

	if cfg.BlinkOff && p.settings.ReplaceBlink {
		settings.AddToggle(labels.BlinkOff, domain.IconBlinkOff, domain.ParamForceBlinkDisable, 1)
	}
	if cfg.DanceGimmick {
		settings.AddToggle(labels.DanceGimmick, domain.IconDance, domain.ParamDanceGimmick, 1)
	}
	if cfg.ContactLock {
		settings.AddToggle(labels.ContactLock, domain.IconContactLock, domain.ParamContactLock, 1)
	}
	if cfg.Override {
		settings.AddToggle(labels.Override, domain.IconOverride, domain.ParamOverrideEnable, 1)
	}
	if cfg.Voice {
		settings.AddToggle(labels.Voice, domain.IconVoice, domain.ParamWaitEmoteByVoice, 1)
	}

	if cfg.HandPatternSwap || cfg.HandPatternDisableLeft || cfg.HandPatternDisableRight {
		hand, _ := settings.AddSubMenu(labels.HandPattern, domain.IconHandPattern)
		if cfg.HandPatternSwap {
			hand.AddToggle(labels.SwapLR, domain.IconSwapLR, domain.ParamSwapLR, 1)
		}
		if cfg.HandPatternDisableLeft {
			hand.AddToggle(labels.DisableLeft, domain.IconDisableLeft, domain.ParamDisableLeft, 1)
		}
		if cfg.HandPatternDisableRight {
			hand.AddToggle(labels.DisableRight, domain.IconDisableRight, domain.ParamDisableRight, 1)
		}
	}

	if cfg.ControllerQuest || cfg.ControllerIndex {
		controller, _ := settings.AddSubMenu(labels.Controller, domain.IconController)
		if cfg.ControllerQuest {
			controller.AddToggle(labels.Quest, domain.IconQuest, domain.ParamControllerQuest, 1)
		}
		if cfg.ControllerIndex {
			controller.AddToggle(labels.Index, domain.IconIndex, domain.ParamControllerIndex, 1)
		}
	}
}
