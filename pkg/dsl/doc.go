/*
Package dsl provides a fluent builder for controller layers.

Emitters describe states, sub-machines and guarded transitions without tracking
node paths or pseudo-node bookkeeping themselves. Names are made unique within
their parent machine by suffixing, matching how the host editor names duplicates.

Example usage:

	b := dsl.New("FES Set Control")
	root := b.Root()

	initState := root.State("INIT")
	gate := root.State("GATE")
	initState.To(gate).When(dsl.True("IsLocal"))

	mode := root.Machine("Smile")
	gate.To(mode).When(dsl.Eq("EM_EMOTE_PATTERN", 0))
	mode.Then(mode).When(dsl.Eq("EM_EMOTE_PATTERN", 0))
	mode.ThenExit().When(dsl.Ne("EM_EMOTE_PATTERN", 0))

	layer := b.Build()
*/
package dsl
