package domain

// Controller is the generated state-machine description handed to the runtime.
// It is an abstract graph: nodes, edges and guards. Layout is left to renderers.
type Controller struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
	Layers     []*Layer    `json:"layers"`
}

// ParameterType is the runtime type of an animator parameter.
type ParameterType string

const (
	ParamInt   ParameterType = "int"
	ParamBool  ParameterType = "bool"
	ParamFloat ParameterType = "float"
)

// Parameter declares a signal the controller reads or drives.
type Parameter struct {
	Name string        `json:"name"`
	Type ParameterType `json:"type"`
}

// Layer is one independently evaluated state machine.
type Layer struct {
	Name         string        `json:"name"`
	Weight       float64       `json:"weight"`
	StateMachine *StateMachine `json:"state_machine"`
}

// StateMachine is a (sub-)state machine. Machine transitions leave a child machine
// once it exits; entry and any-state transitions start at the pseudo nodes.
type StateMachine struct {
	Name                string          `json:"name"`
	States              []*State        `json:"states,omitempty"`
	Machines            []*StateMachine `json:"machines,omitempty"`
	EntryTransitions    []*Transition   `json:"entry_transitions,omitempty"`
	AnyStateTransitions []*Transition   `json:"any_state_transitions,omitempty"`
	MachineTransitions  []*Transition   `json:"machine_transitions,omitempty"`
}

// FindState returns the direct child state with the given name.
func (m *StateMachine) FindState(name string) *State {
	for _, s := range m.States {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// FindMachine returns the direct child machine with the given name.
func (m *StateMachine) FindMachine(name string) *StateMachine {
	for _, sm := range m.Machines {
		if sm.Name == name {
			return sm
		}
	}
	return nil
}

// Walk visits the machine and every nested machine depth-first.
// path holds the machine names below the receiver (empty for the receiver).
func (m *StateMachine) Walk(fn func(path []string, sm *StateMachine)) {
	m.walk(nil, fn)
}

func (m *StateMachine) walk(path []string, fn func([]string, *StateMachine)) {
	fn(path, m)
	for _, child := range m.Machines {
		childPath := append(append([]string{}, path...), child.Name)
		child.walk(childPath, fn)
	}
}

// Resolve follows a machine path from the receiver. It returns nil when a segment is missing.
func (m *StateMachine) Resolve(path []string) *StateMachine {
	cur := m
	for _, name := range path {
		if cur = cur.FindMachine(name); cur == nil {
			return nil
		}
	}
	return cur
}

// State is a leaf node of the graph.
type State struct {
	Name        string            `json:"name"`
	Motion      *Motion           `json:"motion,omitempty"`
	Drivers     []ParameterDriver `json:"drivers,omitempty"`
	Tracking    *TrackingControl  `json:"tracking,omitempty"`
	Transitions []*Transition     `json:"transitions,omitempty"`
}

// ParameterDriver sets a parameter when its state is entered.
type ParameterDriver struct {
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
	Local     bool    `json:"local,omitempty"`
}

// TrackingControl selects tracking vs animation for eyes and mouth while a state is active.
type TrackingControl struct {
	Eyes  TrackingType `json:"eyes"`
	Mouth TrackingType `json:"mouth"`
}

// EndpointKind distinguishes the node types a transition can connect.
type EndpointKind string

const (
	EndpointState   EndpointKind = "state"
	EndpointMachine EndpointKind = "machine"
	EndpointExit    EndpointKind = "exit"
	EndpointEntry   EndpointKind = "entry"
	EndpointAny     EndpointKind = "any"
)

// Endpoint names one side of a transition. Path lists node names from the layer root;
// for entry and exit endpoints it names the owning machine.
// Names may contain any character, so paths are never joined into a single string.
type Endpoint struct {
	Kind EndpointKind `json:"kind"`
	Path []string     `json:"path,omitempty"`
}

// Operator is a guard comparison understood by the runtime.
type Operator string

const (
	OpEquals   Operator = "equals"
	OpNotEqual Operator = "not_equal"
	OpGreater  Operator = "greater"
	OpLess     Operator = "less"
	OpIf       Operator = "if"
	OpIfNot    Operator = "if_not"
)

// Guard is a single parameter comparison.
type Guard struct {
	Parameter string   `json:"parameter"`
	Operator  Operator `json:"operator"`
	Threshold float64  `json:"threshold,omitempty"`
}

// Transition is a guarded edge. Conditions is a disjunction of conjunctions; an
// empty list means "always". The runtime models each disjunct as a separate edge.
type Transition struct {
	Source          Endpoint  `json:"source"`
	Destination     Endpoint  `json:"destination"`
	Conditions      [][]Guard `json:"conditions,omitempty"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	// AfterAnimation fires only once the source state's motion has finished.
	AfterAnimation bool `json:"after_animation,omitempty"`
}

// MotionKind selects how a state plays back animation.
type MotionKind string

const (
	MotionClip    MotionKind = "clip"
	MotionBlend1D MotionKind = "blend_1d"
	MotionBlend2D MotionKind = "blend_2d"
)

// Clip is a resolved animation. Empty clips are no-op placeholders.
type Clip struct {
	GUID  string `json:"guid,omitempty"`
	Name  string `json:"name"`
	Empty bool   `json:"empty,omitempty"`
}

// EmptyClipName labels placeholder clips.
const EmptyClipName = "Empty"

// EmptyClip returns the no-op placeholder clip.
func EmptyClip() Clip { return Clip{Name: EmptyClipName, Empty: true} }

// BlendChild places a clip on a blend axis (1-D threshold) or plane (2-D position).
type BlendChild struct {
	Clip      Clip       `json:"clip"`
	Threshold float64    `json:"threshold,omitempty"`
	Position  [2]float64 `json:"position,omitempty"`
}

// Motion is the playback node attached to a state.
type Motion struct {
	Kind       MotionKind   `json:"kind"`
	Name       string       `json:"name"`
	Clip       *Clip        `json:"clip,omitempty"`
	ParameterX string       `json:"parameter_x,omitempty"`
	ParameterY string       `json:"parameter_y,omitempty"`
	Children   []BlendChild `json:"children,omitempty"`
}

// ClipMotion wraps a single clip.
func ClipMotion(c Clip) *Motion {
	return &Motion{Kind: MotionClip, Name: c.Name, Clip: &c}
}

// HasLayer reports whether a layer with the given name exists.
func (c *Controller) HasLayer(name string) bool {
	return c.Layer(name) != nil
}

// Layer returns the named layer or nil.
func (c *Controller) Layer(name string) *Layer {
	for _, l := range c.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// ReplaceLayer swaps the contents of an existing layer in place, keeping its position.
func (c *Controller) ReplaceLayer(layer *Layer) error {
	for i, l := range c.Layers {
		if l.Name == layer.Name {
			c.Layers[i] = layer
			return nil
		}
	}
	return &TemplateMissingError{Layer: layer.Name}
}

// SetStateMotion replaces the motion of a root-level state in an existing layer.
func (c *Controller) SetStateMotion(layerName, stateName string, motion *Motion) error {
	l := c.Layer(layerName)
	if l == nil || l.StateMachine == nil {
		return &TemplateMissingError{Layer: layerName}
	}
	s := l.StateMachine.FindState(stateName)
	if s == nil {
		return &TemplateMissingError{Layer: layerName, State: stateName}
	}
	s.Motion = motion
	return nil
}

// AddParameter declares a parameter once; redeclaring keeps the first type.
func (c *Controller) AddParameter(name string, typ ParameterType) {
	for _, p := range c.Parameters {
		if p.Name == name {
			return
		}
	}
	c.Parameters = append(c.Parameters, Parameter{Name: name, Type: typ})
}

// Count returns the number of states and transitions below the machine, nested machines included.
func (m *StateMachine) Count() (states, transitions int) {
	m.Walk(func(_ []string, sm *StateMachine) {
		states += len(sm.States)
		transitions += len(sm.EntryTransitions) + len(sm.AnyStateTransitions) + len(sm.MachineTransitions)
		for _, s := range sm.States {
			transitions += len(s.Transitions)
		}
	})
	return states, transitions
}
