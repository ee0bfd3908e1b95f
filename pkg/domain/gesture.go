package domain

import (
	"fmt"
	"strings"
)

// HandGesture is one of the canonical hand-pose codes reported by the runtime.
type HandGesture int

const (
	Neutral HandGesture = iota
	Fist
	HandOpen
	HandPoint
	Victory
	RockNRoll
	HandGun
	ThumbsUp
)

// AllGestures is the canonical gesture ordering used for grid rows/columns and the
// preselect encoding.
var AllGestures = []HandGesture{Neutral, Fist, HandOpen, HandPoint, Victory, RockNRoll, HandGun, ThumbsUp}

var gestureNames = map[HandGesture]string{
	Neutral:   "neutral",
	Fist:      "fist",
	HandOpen:  "open",
	HandPoint: "point",
	Victory:   "victory",
	RockNRoll: "rock",
	HandGun:   "gun",
	ThumbsUp:  "thumbsup",
}

func (g HandGesture) String() string {
	if name, ok := gestureNames[g]; ok {
		return name
	}
	return fmt.Sprintf("gesture(%d)", int(g))
}

// ParseHandGesture accepts the lower-case names produced by String.
func ParseHandGesture(s string) (HandGesture, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for g, name := range gestureNames {
		if name == key {
			return g, nil
		}
	}
	return Neutral, fmt.Errorf("unknown hand gesture %q", s)
}

// Hand selects which hand(s) a condition inspects.
type Hand string

const (
	HandLeft    Hand = "left"
	HandRight   Hand = "right"
	HandEither  Hand = "either"
	HandBoth    Hand = "both"
	HandOneSide Hand = "oneside"
)

// ComparisonOperator is the comparison applied between the observed and the expected gesture.
type ComparisonOperator string

const (
	Equals   ComparisonOperator = "equals"
	NotEqual ComparisonOperator = "notequal"
)

// Condition is a single gesture test. A branch matches when all of its conditions hold.
type Condition struct {
	Hand               Hand               `json:"hand" yaml:"hand"`
	HandGesture        HandGesture        `json:"hand_gesture" yaml:"hand_gesture"`
	ComparisonOperator ComparisonOperator `json:"comparison_operator" yaml:"comparison_operator"`
}

func (c Condition) test(observed HandGesture) bool {
	if c.ComparisonOperator == NotEqual {
		return observed != c.HandGesture
	}
	return observed == c.HandGesture
}

// Matches reports whether the condition holds for the given gesture pair.
func (c Condition) Matches(left, right HandGesture) bool {
	switch c.Hand {
	case HandLeft:
		return c.test(left)
	case HandRight:
		return c.test(right)
	case HandEither:
		return c.test(left) || c.test(right)
	case HandBoth:
		return c.test(left) && c.test(right)
	case HandOneSide:
		return c.test(left) != c.test(right)
	default:
		return false
	}
}

// requiresFist reports whether the condition pins the given hand to a fist,
// which is what makes the analog trigger weight meaningful for that hand.
func (c Condition) requiresFist(hand Hand) bool {
	if c.HandGesture != Fist || c.ComparisonOperator != Equals {
		return false
	}
	return c.Hand == hand || c.Hand == HandBoth
}
