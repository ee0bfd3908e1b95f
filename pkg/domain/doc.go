/*
Package domain contains the core models of the expression generator.

It defines the configuration tree the user authors (menus, groups, modes, gesture
branches) and the artifacts a generation pass produces (the layered controller graph,
the selector menu tree and the parameter manifest). The package is kept pure and free
of I/O so every other package can share it.

# Key Entities

  - Menu / Group / Mode / Branch: the hierarchical expression configuration.
  - Condition / HandGesture: the two-handed gesture tests that select a branch.
  - Controller / Layer / StateMachine / State / Transition: the emitted state-machine graph.
  - ExMenu / Control: the selector tree mirrored from the configuration.
  - ParameterConfig / Manifest: what gets installed alongside the controller.
*/
package domain
