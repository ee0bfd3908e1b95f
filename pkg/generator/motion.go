package generator

import (
	"strings"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// clip resolves a reference. Zero refs and unknown GUIDs become the empty clip;
// unknown GUIDs are reported since they point at a deleted or moved animation.
func (p *pass) clip(ref domain.AnimationRef, where string) domain.Clip {
	if ref.IsZero() {
		return domain.EmptyClip()
	}
	info, ok := p.catalog.Lookup(ref)
	if !ok {
		p.report.warn(p.logger, &domain.ConfigurationError{
			Path:   where,
			Reason: "animation " + ref.GUID + " was not found; using an empty clip",
		})
		return domain.EmptyClip()
	}
	return domain.Clip{GUID: info.GUID, Name: info.Name}
}

// weightAxes are the blend parameters for the left and right trigger.
func (p *pass) weightAxes() (left, right string) {
	if p.settings.SmoothAnalogFist {
		return domain.ParamGestureLWSmoothing, domain.ParamGestureRWSmoothing
	}
	return domain.ParamGestureLeftWeight, domain.ParamGestureRightWeight
}

// branchMotion picks the playback node of a branch from its trigger usage.
func (p *pass) branchMotion(b *domain.Branch, where string) *domain.Motion {
	base := p.clip(b.BaseAnimation, where+"/base")
	left, right := p.weightAxes()

	switch {
	case b.LeftTriggerActive() && b.RightTriggerActive():
		l := p.clip(b.LeftHandAnimation, where+"/left")
		r := p.clip(b.RightHandAnimation, where+"/right")
		both := p.clip(b.BothHandsAnimation, where+"/both")
		return &domain.Motion{
			Kind:       domain.MotionBlend2D,
			Name:       joinNames(base, l, r, both),
			ParameterX: left,
			ParameterY: right,
			Children: []domain.BlendChild{
				{Clip: base, Position: [2]float64{0, 0}},
				{Clip: l, Position: [2]float64{1, 0}},
				{Clip: r, Position: [2]float64{0, 1}},
				{Clip: both, Position: [2]float64{1, 1}},
			},
		}
	case b.LeftTriggerActive():
		l := p.clip(b.LeftHandAnimation, where+"/left")
		return blend1D(base, l, left)
	case b.RightTriggerActive():
		r := p.clip(b.RightHandAnimation, where+"/right")
		return blend1D(base, r, right)
	}
	return domain.ClipMotion(base)
}

func blend1D(base, pressed domain.Clip, axis string) *domain.Motion {
	return &domain.Motion{
		Kind:       domain.MotionBlend1D,
		Name:       joinNames(base, pressed),
		ParameterX: axis,
		Children: []domain.BlendChild{
			{Clip: base, Threshold: 0},
			{Clip: pressed, Threshold: 1},
		},
	}
}

func joinNames(clips ...domain.Clip) string {
	names := make([]string, len(clips))
	for i, c := range clips {
		names[i] = c.Name
	}
	return strings.Join(names, "_")
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
