package domain

// TrackingType selects whether the runtime or the animation drives a face part.
type TrackingType string

const (
	Tracking  TrackingType = "tracking"
	Animation TrackingType = "animation"
)

// AnimationRef points at an animation clip owned by the host ("GUID" in the editor).
// The zero value means "no animation".
type AnimationRef struct {
	GUID string `json:"guid,omitempty" yaml:"guid,omitempty"`
}

// IsZero reports whether the reference points at nothing.
func (a AnimationRef) IsZero() bool { return a.GUID == "" }

// AnimationInfo describes an animation the host knows about.
type AnimationInfo struct {
	GUID string `json:"guid" yaml:"guid"`
	Name string `json:"name" yaml:"name"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Menu is the root of the expression configuration.
// Items are ordered; the order defines both the selection index and the display order.
type Menu struct {
	ID               string          `json:"id" yaml:"id"`
	DefaultSelection string          `json:"default_selection,omitempty" yaml:"default_selection,omitempty"`
	Items            []MenuItem      `json:"items" yaml:"items"`
	Animations       []AnimationInfo `json:"animations,omitempty" yaml:"animations,omitempty"`
}

// MenuItem holds exactly one of Group or Mode.
type MenuItem struct {
	Group *Group `json:"group,omitempty" yaml:"group,omitempty"`
	Mode  *Mode  `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// ID returns the identifier of whichever node the item carries.
func (i MenuItem) ID() string {
	switch {
	case i.Mode != nil:
		return i.Mode.ID
	case i.Group != nil:
		return i.Group.ID
	}
	return ""
}

// Group is a named folder of menu items.
type Group struct {
	ID          string     `json:"id" yaml:"id"`
	DisplayName string     `json:"display_name" yaml:"display_name"`
	Items       []MenuItem `json:"items" yaml:"items"`
}

// Mode is a selectable expression entry, optionally subdivided by gesture branches.
type Mode struct {
	ID                            string       `json:"id" yaml:"id"`
	DisplayName                   string       `json:"display_name" yaml:"display_name"`
	UseAnimationNameAsDisplayName bool         `json:"use_animation_name_as_display_name" yaml:"use_animation_name_as_display_name"`
	ChangeDefaultFace             bool         `json:"change_default_face" yaml:"change_default_face"`
	Animation                     AnimationRef `json:"animation" yaml:"animation"`
	EyeTrackingControl            TrackingType `json:"eye_tracking_control" yaml:"eye_tracking_control"`
	MouthTrackingControl          TrackingType `json:"mouth_tracking_control" yaml:"mouth_tracking_control"`
	BlinkEnabled                  bool         `json:"blink_enabled" yaml:"blink_enabled"`
	MouthMorphCancelerEnabled     bool         `json:"mouth_morph_canceler_enabled" yaml:"mouth_morph_canceler_enabled"`
	Branches                      []Branch     `json:"branches,omitempty" yaml:"branches,omitempty"`
}

// GestureCell returns the index of the first branch (in declaration order) whose
// conditions match the pair, or -1 when none does.
func (m *Mode) GestureCell(left, right HandGesture) int {
	for i := range m.Branches {
		if m.Branches[i].Matches(left, right) {
			return i
		}
	}
	return -1
}

// Branch is a gesture-conditioned variant of a mode.
type Branch struct {
	Conditions                []Condition  `json:"conditions" yaml:"conditions"`
	BaseAnimation             AnimationRef `json:"base_animation" yaml:"base_animation"`
	LeftHandAnimation         AnimationRef `json:"left_hand_animation" yaml:"left_hand_animation"`
	RightHandAnimation        AnimationRef `json:"right_hand_animation" yaml:"right_hand_animation"`
	BothHandsAnimation        AnimationRef `json:"both_hands_animation" yaml:"both_hands_animation"`
	EyeTrackingControl        TrackingType `json:"eye_tracking_control" yaml:"eye_tracking_control"`
	MouthTrackingControl      TrackingType `json:"mouth_tracking_control" yaml:"mouth_tracking_control"`
	BlinkEnabled              bool         `json:"blink_enabled" yaml:"blink_enabled"`
	MouthMorphCancelerEnabled bool         `json:"mouth_morph_canceler_enabled" yaml:"mouth_morph_canceler_enabled"`
	IsLeftTriggerUsed         bool         `json:"is_left_trigger_used" yaml:"is_left_trigger_used"`
	IsRightTriggerUsed        bool         `json:"is_right_trigger_used" yaml:"is_right_trigger_used"`
}

// Matches reports whether every condition holds. A branch without conditions never matches.
func (b *Branch) Matches(left, right HandGesture) bool {
	if len(b.Conditions) == 0 {
		return false
	}
	for _, c := range b.Conditions {
		if !c.Matches(left, right) {
			return false
		}
	}
	return true
}

// CanLeftTriggerUsed reports whether the left trigger weight is meaningful for this branch.
func (b *Branch) CanLeftTriggerUsed() bool {
	for _, c := range b.Conditions {
		if c.requiresFist(HandLeft) {
			return true
		}
	}
	return false
}

// CanRightTriggerUsed reports whether the right trigger weight is meaningful for this branch.
func (b *Branch) CanRightTriggerUsed() bool {
	for _, c := range b.Conditions {
		if c.requiresFist(HandRight) {
			return true
		}
	}
	return false
}

// LeftTriggerActive is true when the left trigger is both usable and enabled.
func (b *Branch) LeftTriggerActive() bool { return b.CanLeftTriggerUsed() && b.IsLeftTriggerUsed }

// RightTriggerActive is true when the right trigger is both usable and enabled.
func (b *Branch) RightTriggerActive() bool { return b.CanRightTriggerUsed() && b.IsRightTriggerUsed }
