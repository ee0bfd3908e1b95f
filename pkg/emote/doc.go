/*
Package emote flattens the configuration tree and allocates emote indices.

The emote index is the single number correlating the selection layer (which drives it)
with the playback layer (which reacts to it) and the selector menu (which binds it).
Resolve is the only place the addressing formula lives; every emitter calls it.

Two regimes exist. Normal addressing numbers every mode body and branch consecutively.
Compressed addressing is used once the total exceeds the numeric budget of a single
synced parameter: the mode selector parameter picks the mode and the emote index
becomes mode-relative (0 for the body, branch offset + 1 for a branch).
*/
package emote
