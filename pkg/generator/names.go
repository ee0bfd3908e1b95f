package generator

import (
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/emote"
	"github.com/suzuryg/facial-expression-switcher/pkg/ports"
)

// ModeNamer returns the display-name rule shared by the flattener and the menu:
// the animation name when requested and resolvable, else the display name, else
// the "no expression" label.
func ModeNamer(catalog ports.AnimationCatalog, noExpression string) emote.Namer {
	return func(m *domain.Mode) string {
		if m.UseAnimationNameAsDisplayName && catalog != nil {
			if info, ok := catalog.Lookup(m.Animation); ok && info.Name != "" {
				return info.Name
			}
		}
		if m.DisplayName != "" {
			return m.DisplayName
		}
		return noExpression
	}
}

// menuCatalog resolves animations from the list embedded in the menu document.
type menuCatalog map[string]domain.AnimationInfo

func newMenuCatalog(menu *domain.Menu) menuCatalog {
	c := make(menuCatalog, len(menu.Animations))
	for _, a := range menu.Animations {
		c[a.GUID] = a
	}
	return c
}

func (c menuCatalog) Lookup(ref domain.AnimationRef) (domain.AnimationInfo, bool) {
	if ref.IsZero() {
		return domain.AnimationInfo{}, false
	}
	a, ok := c[ref.GUID]
	return a, ok
}
