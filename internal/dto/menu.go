package dto

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// MenuDocument is the authored form of an expression menu.
// It uses "mapstructure" tags so YAML, TOML, JSON and frontmatter sources decode alike.
type MenuDocument struct {
	ID               string              `json:"id" mapstructure:"id"`
	DefaultSelection string              `json:"default_selection" mapstructure:"default_selection"`
	Animations       []AnimationDocument `json:"animations" mapstructure:"animations"`
	Items            []ItemDocument      `json:"items" mapstructure:"items"`
}

type AnimationDocument struct {
	GUID string `json:"guid" mapstructure:"guid"`
	Name string `json:"name" mapstructure:"name"`
	Path string `json:"path" mapstructure:"path"`
}

// ItemDocument holds either a group or a mode.
type ItemDocument struct {
	Group *GroupDocument `json:"group,omitempty" mapstructure:"group"`
	Mode  *ModeDocument  `json:"mode,omitempty" mapstructure:"mode"`
}

type GroupDocument struct {
	ID          string         `json:"id" mapstructure:"id"`
	DisplayName string         `json:"display_name" mapstructure:"display_name"`
	Items       []ItemDocument `json:"items" mapstructure:"items"`
}

// ModeDocument leaves optional flags as pointers; nil means the editor default.
type ModeDocument struct {
	ID                            string           `json:"id" mapstructure:"id"`
	DisplayName                   string           `json:"display_name" mapstructure:"display_name"`
	UseAnimationNameAsDisplayName bool             `json:"use_animation_name_as_display_name" mapstructure:"use_animation_name_as_display_name"`
	ChangeDefaultFace             bool             `json:"change_default_face" mapstructure:"change_default_face"`
	Animation                     string           `json:"animation" mapstructure:"animation"`
	EyeTracking                   string           `json:"eye_tracking" mapstructure:"eye_tracking"`
	MouthTracking                 string           `json:"mouth_tracking" mapstructure:"mouth_tracking"`
	Blink                         *bool            `json:"blink,omitempty" mapstructure:"blink"`
	MouthMorphCanceler            *bool            `json:"mouth_morph_canceler,omitempty" mapstructure:"mouth_morph_canceler"`
	Branches                      []BranchDocument `json:"branches" mapstructure:"branches"`
}

type BranchDocument struct {
	Conditions         []ConditionDocument `json:"conditions" mapstructure:"conditions"`
	Base               string              `json:"base" mapstructure:"base"`
	Left               string              `json:"left" mapstructure:"left"`
	Right              string              `json:"right" mapstructure:"right"`
	Both               string              `json:"both" mapstructure:"both"`
	EyeTracking        string              `json:"eye_tracking" mapstructure:"eye_tracking"`
	MouthTracking      string              `json:"mouth_tracking" mapstructure:"mouth_tracking"`
	Blink              *bool               `json:"blink,omitempty" mapstructure:"blink"`
	MouthMorphCanceler *bool               `json:"mouth_morph_canceler,omitempty" mapstructure:"mouth_morph_canceler"`
	LeftTrigger        bool                `json:"left_trigger" mapstructure:"left_trigger"`
	RightTrigger       bool                `json:"right_trigger" mapstructure:"right_trigger"`
}

type ConditionDocument struct {
	Hand     string `json:"hand" mapstructure:"hand"`
	Gesture  string `json:"gesture" mapstructure:"gesture"`
	Operator string `json:"operator" mapstructure:"operator"`
}

// Decode maps a generic document (as produced by YAML, TOML or JSON decoders) onto
// a MenuDocument. Unknown keys are rejected.
func Decode(raw map[string]any) (*MenuDocument, error) {
	var doc MenuDocument
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		TagName:          "mapstructure",
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, &domain.ConfigurationError{Path: fmt.Sprint(raw["id"]), Reason: err.Error()}
	}
	return &doc, nil
}

// ToDomain validates the document and converts it into the domain menu.
// fallbackID is used when the document carries no id of its own.
func (d *MenuDocument) ToDomain(fallbackID string) (*domain.Menu, error) {
	menu := &domain.Menu{
		ID:               d.ID,
		DefaultSelection: d.DefaultSelection,
	}
	if menu.ID == "" {
		menu.ID = fallbackID
	}
	for _, a := range d.Animations {
		if a.GUID == "" {
			return nil, &domain.ConfigurationError{Path: menu.ID + "/animations", Reason: "animation without guid"}
		}
		menu.Animations = append(menu.Animations, domain.AnimationInfo(a))
	}
	items, err := convertItems(menu.ID, d.Items)
	if err != nil {
		return nil, err
	}
	menu.Items = items
	return menu, nil
}

func convertItems(path string, docs []ItemDocument) ([]domain.MenuItem, error) {
	items := make([]domain.MenuItem, 0, len(docs))
	for i, doc := range docs {
		where := fmt.Sprintf("%s/items[%d]", path, i)
		switch {
		case doc.Group != nil && doc.Mode != nil:
			return nil, &domain.ConfigurationError{Path: where, Reason: "item has both a group and a mode"}
		case doc.Group != nil:
			children, err := convertItems(where, doc.Group.Items)
			if err != nil {
				return nil, err
			}
			items = append(items, domain.MenuItem{Group: &domain.Group{
				ID:          doc.Group.ID,
				DisplayName: doc.Group.DisplayName,
				Items:       children,
			}})
		case doc.Mode != nil:
			mode, err := doc.Mode.toDomain(where)
			if err != nil {
				return nil, err
			}
			items = append(items, domain.MenuItem{Mode: mode})
		default:
			return nil, &domain.ConfigurationError{Path: where, Reason: "item has neither a group nor a mode"}
		}
	}
	return items, nil
}

func (m *ModeDocument) toDomain(where string) (*domain.Mode, error) {
	eyes, err := parseTracking(m.EyeTracking)
	if err != nil {
		return nil, &domain.ConfigurationError{Path: where, Reason: err.Error()}
	}
	mouth, err := parseTracking(m.MouthTracking)
	if err != nil {
		return nil, &domain.ConfigurationError{Path: where, Reason: err.Error()}
	}
	mode := &domain.Mode{
		ID:                            m.ID,
		DisplayName:                   m.DisplayName,
		UseAnimationNameAsDisplayName: m.UseAnimationNameAsDisplayName,
		ChangeDefaultFace:             m.ChangeDefaultFace,
		Animation:                     domain.AnimationRef{GUID: m.Animation},
		EyeTrackingControl:            eyes,
		MouthTrackingControl:          mouth,
		BlinkEnabled:                  orTrue(m.Blink),
		MouthMorphCancelerEnabled:     orTrue(m.MouthMorphCanceler),
	}
	for i := range m.Branches {
		b, err := m.Branches[i].toDomain(fmt.Sprintf("%s/branches[%d]", where, i))
		if err != nil {
			return nil, err
		}
		mode.Branches = append(mode.Branches, b)
	}
	return mode, nil
}

func (b *BranchDocument) toDomain(where string) (domain.Branch, error) {
	eyes, err := parseTracking(b.EyeTracking)
	if err != nil {
		return domain.Branch{}, &domain.ConfigurationError{Path: where, Reason: err.Error()}
	}
	mouth, err := parseTracking(b.MouthTracking)
	if err != nil {
		return domain.Branch{}, &domain.ConfigurationError{Path: where, Reason: err.Error()}
	}
	branch := domain.Branch{
		BaseAnimation:             domain.AnimationRef{GUID: b.Base},
		LeftHandAnimation:         domain.AnimationRef{GUID: b.Left},
		RightHandAnimation:        domain.AnimationRef{GUID: b.Right},
		BothHandsAnimation:        domain.AnimationRef{GUID: b.Both},
		EyeTrackingControl:        eyes,
		MouthTrackingControl:      mouth,
		BlinkEnabled:              orTrue(b.Blink),
		MouthMorphCancelerEnabled: orTrue(b.MouthMorphCanceler),
		IsLeftTriggerUsed:         b.LeftTrigger,
		IsRightTriggerUsed:        b.RightTrigger,
	}
	for i, c := range b.Conditions {
		cond, err := c.toDomain()
		if err != nil {
			return domain.Branch{}, &domain.ConfigurationError{Path: fmt.Sprintf("%s/conditions[%d]", where, i), Reason: err.Error()}
		}
		branch.Conditions = append(branch.Conditions, cond)
	}
	return branch, nil
}

func (c ConditionDocument) toDomain() (domain.Condition, error) {
	hand := domain.Hand(c.Hand)
	switch hand {
	case domain.HandLeft, domain.HandRight, domain.HandEither, domain.HandBoth, domain.HandOneSide:
	default:
		return domain.Condition{}, fmt.Errorf("unknown hand %q", c.Hand)
	}
	gesture, err := domain.ParseHandGesture(c.Gesture)
	if err != nil {
		return domain.Condition{}, err
	}
	op := domain.Equals
	switch c.Operator {
	case "", "equals", "==":
	case "notequal", "not_equal", "!=":
		op = domain.NotEqual
	default:
		return domain.Condition{}, fmt.Errorf("unknown operator %q", c.Operator)
	}
	return domain.Condition{Hand: hand, HandGesture: gesture, ComparisonOperator: op}, nil
}

func parseTracking(s string) (domain.TrackingType, error) {
	switch domain.TrackingType(s) {
	case "", domain.Tracking:
		return domain.Tracking, nil
	case domain.Animation:
		return domain.Animation, nil
	}
	return "", fmt.Errorf("unknown tracking control %q", s)
}

func orTrue(b *bool) bool {
	return b == nil || *b
}
