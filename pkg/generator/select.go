package generator

import (
	"fmt"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/dsl"
	"github.com/suzuryg/facial-expression-switcher/pkg/emote"
	"github.com/suzuryg/facial-expression-switcher/pkg/grid"
)

// emitSetControl builds the mode-select layer. It runs locally only and turns the
// selected mode and the current gesture pair into the synced emote index.
func (p *pass) emitSetControl() *domain.Layer {
	b := dsl.New(domain.LayerSetControl).Weight(0)
	root := b.Root()

	initState := root.State("INIT")
	gate := root.State("GATE")
	initState.To(gate).When(dsl.True(domain.ParamIsLocal))

	message := fmt.Sprintf("Generating %q layer...", domain.LayerSetControl)
	for i, entry := range p.entries {
		p.step(message, i, len(p.entries))

		pos := emote.ModeSelectorValue(entry)
		machine := root.Machine(entry.PathLabel)
		gate.To(machine).When(dsl.Eq(domain.ParamEmotePattern, pos))
		machine.Then(machine).When(dsl.Eq(domain.ParamEmotePattern, pos))
		machine.ThenExit().When(dsl.Ne(domain.ParamEmotePattern, pos))

		if entry.BranchCount() == 0 {
			state := machine.State("Any Gestures").
				DriveLocal(domain.ParamSyncEmote, float64(emote.Resolve(entry, emote.NoBranch, p.regime)))
			machine.EntryTo(state)
			state.ToExit().When(dsl.Ne(domain.ParamEmotePattern, pos))
			continue
		}

		g := grid.Build(entry.Mode, p.gestures)
		n := len(g.Gestures)
		for ci, cell := range g.Cells {
			p.substep(message, i, len(p.entries), ci, len(g.Cells))
			name := fmt.Sprintf("L%d R%d", cell.Preselect/n, cell.Preselect%n)
			state := machine.State(name).
				DriveLocal(domain.ParamSyncEmote, float64(emote.Resolve(entry, cell.Branch, p.regime)))
			machine.EntryTo(state).When(dsl.Eq(domain.ParamEmotePreselect, cell.Preselect))
			state.ToExit().
				When(dsl.Ne(domain.ParamEmotePreselect, cell.Preselect)).
				When(dsl.Ne(domain.ParamEmotePattern, pos))
		}
	}
	return b.Build()
}

// emitDefaultFace builds the layer holding the neutral face under every emote.
func (p *pass) emitDefaultFace() *domain.Layer {
	b := dsl.New(domain.LayerDefaultFace).Weight(1)
	b.Root().State("DEFAULT").Clip(p.clip(p.settings.Clips.DefaultFace, "settings/clips/default_face"))
	return b.Build()
}
