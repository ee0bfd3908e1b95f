package dsl

import "github.com/suzuryg/facial-expression-switcher/pkg/domain"

// MachineBuilder provides a fluent API for configuring a (sub-)state machine.
type MachineBuilder struct {
	machine *domain.StateMachine
	parent  *MachineBuilder
	path    []string
	names   map[string]int
}

// Name returns the (possibly suffixed) machine name.
func (m *MachineBuilder) Name() string { return m.machine.Name }

// Path returns the machine path from the layer root.
func (m *MachineBuilder) Path() []string { return m.path }

// State adds a state. Duplicate names are suffixed.
func (m *MachineBuilder) State(name string) *StateBuilder {
	s := &domain.State{Name: uniqueName(m.names, name)}
	m.machine.States = append(m.machine.States, s)
	return &StateBuilder{state: s, owner: m, path: childPath(m.path, s.Name)}
}

// Machine adds a nested machine. Duplicate names are suffixed.
func (m *MachineBuilder) Machine(name string) *MachineBuilder {
	sm := &domain.StateMachine{Name: uniqueName(m.names, name)}
	m.machine.Machines = append(m.machine.Machines, sm)
	return &MachineBuilder{machine: sm, parent: m, path: childPath(m.path, sm.Name), names: make(map[string]int)}
}

// EntryTo adds a transition from this machine's entry node.
func (m *MachineBuilder) EntryTo(t Target) *TransitionBuilder {
	tr := &domain.Transition{Source: domain.Endpoint{Kind: domain.EndpointEntry, Path: m.path}, Destination: t.endpoint()}
	m.machine.EntryTransitions = append(m.machine.EntryTransitions, tr)
	return &TransitionBuilder{t: tr}
}

// AnyTo adds a transition from the any-state node of this machine.
func (m *MachineBuilder) AnyTo(t Target) *TransitionBuilder {
	tr := &domain.Transition{Source: domain.Endpoint{Kind: domain.EndpointAny, Path: m.path}, Destination: t.endpoint()}
	m.machine.AnyStateTransitions = append(m.machine.AnyStateTransitions, tr)
	return &TransitionBuilder{t: tr}
}

// Then adds a transition taken after this machine exits. It is stored on the parent.
// Calling Then on the root machine panics.
func (m *MachineBuilder) Then(t Target) *TransitionBuilder {
	if m.parent == nil {
		panic("dsl: the root machine has no outgoing transitions")
	}
	tr := &domain.Transition{Source: m.endpoint(), Destination: t.endpoint()}
	m.parent.machine.MachineTransitions = append(m.parent.machine.MachineTransitions, tr)
	return &TransitionBuilder{t: tr}
}

// ThenExit leaves the parent machine once this machine exits.
func (m *MachineBuilder) ThenExit() *TransitionBuilder {
	if m.parent == nil {
		panic("dsl: the root machine has no outgoing transitions")
	}
	return m.Then(m.parent.exit())
}

// Exit is the exit node of this machine as a transition target.
func (m *MachineBuilder) Exit() Target { return m.exit() }

func (m *MachineBuilder) exit() Target {
	return endpointTarget(domain.Endpoint{Kind: domain.EndpointExit, Path: m.path})
}

func (m *MachineBuilder) endpoint() domain.Endpoint {
	return domain.Endpoint{Kind: domain.EndpointMachine, Path: m.path}
}

type endpointTarget domain.Endpoint

func (e endpointTarget) endpoint() domain.Endpoint { return domain.Endpoint(e) }

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	state *domain.State
	owner *MachineBuilder
	path  []string
}

// Name returns the (possibly suffixed) state name.
func (s *StateBuilder) Name() string { return s.state.Name }

// Motion sets the playback motion.
func (s *StateBuilder) Motion(m *domain.Motion) *StateBuilder {
	s.state.Motion = m
	return s
}

// Clip plays a single clip.
func (s *StateBuilder) Clip(c domain.Clip) *StateBuilder {
	return s.Motion(domain.ClipMotion(c))
}

// Drive sets a parameter on entry for every client.
func (s *StateBuilder) Drive(param string, value float64) *StateBuilder {
	s.state.Drivers = append(s.state.Drivers, domain.ParameterDriver{Parameter: param, Value: value})
	return s
}

// DriveLocal sets a parameter on entry for the owning client only.
func (s *StateBuilder) DriveLocal(param string, value float64) *StateBuilder {
	s.state.Drivers = append(s.state.Drivers, domain.ParameterDriver{Parameter: param, Value: value, Local: true})
	return s
}

// DriveBool is Drive with a boolean value.
func (s *StateBuilder) DriveBool(param string, value bool) *StateBuilder {
	v := 0.0
	if value {
		v = 1
	}
	return s.Drive(param, v)
}

// Track sets the tracking control of eyes and mouth.
func (s *StateBuilder) Track(eyes, mouth domain.TrackingType) *StateBuilder {
	s.state.Tracking = &domain.TrackingControl{Eyes: eyes, Mouth: mouth}
	return s
}

// To adds an outgoing transition.
func (s *StateBuilder) To(t Target) *TransitionBuilder {
	tr := &domain.Transition{Source: s.endpoint(), Destination: t.endpoint()}
	s.state.Transitions = append(s.state.Transitions, tr)
	return &TransitionBuilder{t: tr}
}

// ToExit adds a transition to the exit node of the owning machine.
func (s *StateBuilder) ToExit() *TransitionBuilder {
	return s.To(s.owner.exit())
}

func (s *StateBuilder) endpoint() domain.Endpoint {
	return domain.Endpoint{Kind: domain.EndpointState, Path: s.path}
}

// TransitionBuilder configures a transition after it has been added.
type TransitionBuilder struct {
	t *domain.Transition
}

// When adds a conjunction of guards. Each call adds an alternative.
func (t *TransitionBuilder) When(guards ...domain.Guard) *TransitionBuilder {
	t.t.Conditions = append(t.t.Conditions, append([]domain.Guard(nil), guards...))
	return t
}

// Duration sets the crossfade duration in seconds.
func (t *TransitionBuilder) Duration(seconds float64) *TransitionBuilder {
	t.t.DurationSeconds = seconds
	return t
}

// AfterAnimation waits for the source motion to finish before evaluating guards.
func (t *TransitionBuilder) AfterAnimation() *TransitionBuilder {
	t.t.AfterAnimation = true
	return t
}

// Build returns the underlying transition.
func (t *TransitionBuilder) Build() *domain.Transition { return t.t }
