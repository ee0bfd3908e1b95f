package generator

import (
	"fmt"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/dsl"
	"github.com/suzuryg/facial-expression-switcher/pkg/emote"
)

// AFK sub-machine crossfades.
const (
	afkShortFade = 0.1
	afkLongFade  = 0.75
)

// emitEmotePlayer builds the layer that plays the emote selected by the synced index.
func (p *pass) emitEmotePlayer() *domain.Layer {
	b := dsl.New(domain.LayerEmotePlayer).Weight(1)
	root := b.Root()

	notAFK := root.Machine("Not AFK")
	root.EntryTo(notAFK).When(dsl.False(domain.ParamAFK))
	notAFK.ThenExit()

	compressed := p.regime == emote.Compressed
	message := fmt.Sprintf("Generating %q layer...", domain.LayerEmotePlayer)
	for i, entry := range p.entries {
		p.step(message, i, len(p.entries))

		machine := notAFK
		pos := emote.ModeSelectorValue(entry)
		if compressed {
			machine = notAFK.Machine(entry.PathLabel)
			notAFK.EntryTo(machine).When(dsl.Eq(domain.ParamEmotePattern, pos))
			machine.ThenExit()
		}

		p.emitEmoteState(machine, entry, emote.NoBranch)
		for bi := range entry.Mode.Branches {
			p.substep(message, i, len(p.entries), bi+1, len(entry.Mode.Branches)+1)
			p.emitEmoteState(machine, entry, emote.BranchAt(bi))
		}

		if compressed {
			change := machine.State("MODE CHANGE")
			machine.EntryTo(change).When(dsl.Ne(domain.ParamEmotePattern, pos))
			change.ToExit().When(dsl.False(domain.ParamDummy))
		}
	}

	p.emitAFK(root)
	p.emitInterrupts(root)
	return b.Build()
}

func (p *pass) emitEmoteState(machine *dsl.MachineBuilder, entry emote.ModeEntry, ref emote.BranchRef) {
	index := emote.Resolve(entry, ref, p.regime)
	mode := entry.Mode

	var (
		motion *domain.Motion
		blink  bool
		cancel bool
		eyes   domain.TrackingType
		mouth  domain.TrackingType
	)
	if offset, ok := ref.Offset(); ok {
		branch := &mode.Branches[offset]
		motion = p.branchMotion(branch, fmt.Sprintf("%s/branch[%d]", entry.PathLabel, offset))
		blink = branch.BlinkEnabled
		cancel = branch.MouthMorphCancelerEnabled && branch.MouthTrackingControl == domain.Tracking
		eyes, mouth = branch.EyeTrackingControl, branch.MouthTrackingControl
	} else {
		motion = domain.ClipMotion(p.clip(mode.Animation, entry.PathLabel))
		blink = mode.BlinkEnabled
		cancel = mode.MouthMorphCancelerEnabled && mode.MouthTrackingControl == domain.Tracking
		eyes, mouth = mode.EyeTrackingControl, mode.MouthTrackingControl
	}

	state := machine.State(motion.Name).
		Motion(motion).
		DriveBool(domain.ParamBlinkEnable, blink).
		DriveBool(domain.ParamMouthMorphCancel, cancel).
		Track(trackingOrDefault(eyes), trackingOrDefault(mouth))
	machine.EntryTo(state).When(dsl.Eq(domain.ParamSyncEmote, index))

	// Leaving is debounced by voice when the wait setting is on.
	quiet := dsl.Lt(domain.ParamVoice, domain.VoiceThreshold)
	state.ToExit().
		Duration(p.settings.TransitionDurationSeconds).
		When(dsl.True(domain.ParamAFK)).
		When(dsl.Ne(domain.ParamSyncEmote, index), dsl.False(domain.ParamWaitEmoteByVoice)).
		When(dsl.Ne(domain.ParamSyncEmote, index), dsl.True(domain.ParamWaitEmoteByVoice), quiet)

	if p.regime == emote.Compressed {
		pos := emote.ModeSelectorValue(entry)
		state.ToExit().
			Duration(p.settings.TransitionDurationSeconds).
			When(dsl.Ne(domain.ParamEmotePattern, pos), dsl.False(domain.ParamWaitEmoteByVoice)).
			When(dsl.Ne(domain.ParamEmotePattern, pos), dsl.True(domain.ParamWaitEmoteByVoice), quiet)
	}
}

func trackingOrDefault(t domain.TrackingType) domain.TrackingType {
	if t == "" {
		return domain.Tracking
	}
	return t
}

func (p *pass) emitAFK(root *dsl.MachineBuilder) {
	afk := root.Machine("AFK")
	root.EntryTo(afk).When(dsl.True(domain.ParamAFK))
	afk.ThenExit()

	standby := afk.State("AFK Standby").
		DriveBool(domain.ParamBlinkEnable, true).
		DriveBool(domain.ParamMouthMorphCancel, true).
		Track(domain.Tracking, domain.Tracking)
	afk.EntryTo(standby)

	enter := afk.State("AFK Enter").
		DriveBool(domain.ParamBlinkEnable, true).
		DriveBool(domain.ParamMouthMorphCancel, true).
		Track(domain.Tracking, domain.Tracking)
	standby.To(enter).Duration(afkShortFade).When(dsl.False(domain.ParamDummy))

	idle := afk.State("AFK").
		DriveBool(domain.ParamBlinkEnable, false).
		DriveBool(domain.ParamMouthMorphCancel, false).
		Track(domain.Animation, domain.Tracking)
	enter.To(idle).Duration(afkLongFade).AfterAnimation()

	leave := afk.State("AFK Exit").
		DriveBool(domain.ParamBlinkEnable, true).
		DriveBool(domain.ParamMouthMorphCancel, true).
		Track(domain.Tracking, domain.Tracking)
	idle.To(leave).Duration(afkLongFade).When(dsl.False(domain.ParamAFK))
	leave.ToExit().Duration(afkShortFade).AfterAnimation()

	clips := p.settings.Clips
	if !clips.AfkEnter.IsZero() {
		enter.Clip(p.clip(clips.AfkEnter, "settings/clips/afk_enter"))
	}
	if !clips.Afk.IsZero() {
		idle.Clip(p.clip(clips.Afk, "settings/clips/afk"))
	}
	if !clips.AfkExit.IsZero() {
		leave.Clip(p.clip(clips.AfkExit, "settings/clips/afk_exit"))
	}
}

// emitInterrupts adds the any-state priority states for override and dance.
func (p *pass) emitInterrupts(root *dsl.MachineBuilder) {
	override := root.State("in OVERRIDE")
	root.AnyTo(override).
		When(dsl.True(domain.ParamEmoteOverride), dsl.False(domain.ParamDanceGimmick)).
		When(dsl.True(domain.ParamEmoteOverride), dsl.False(domain.ParamInStation))
	override.ToExit().When(dsl.False(domain.ParamEmoteOverride))

	dance := root.State("in DANCE")
	root.AnyTo(dance).
		When(dsl.True(domain.ParamDanceGimmick), dsl.True(domain.ParamInStation), dsl.Lt(domain.ParamVoice, domain.VoiceThreshold))
	dance.ToExit().
		When(dsl.False(domain.ParamDanceGimmick)).
		When(dsl.False(domain.ParamInStation))
}

// modifierMotions fills the template's blink and mouth-morph-canceler states.
func (p *pass) modifierMotions() (blink, canceler *domain.Motion) {
	blinkClip := domain.EmptyClip()
	if p.settings.ReplaceBlink {
		blinkClip = p.clip(p.settings.Clips.Blink, "settings/clips/blink")
	}
	return domain.ClipMotion(blinkClip),
		domain.ClipMotion(p.clip(p.settings.Clips.MouthMorphCanceler, "settings/clips/mouth_morph_canceler"))
}
