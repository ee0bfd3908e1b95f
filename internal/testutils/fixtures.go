package testutils

import "github.com/suzuryg/facial-expression-switcher/pkg/domain"

// Animations used by SampleMenu.
var (
	AnimSmile = domain.AnimationInfo{GUID: "guid-smile", Name: "smile", Path: "Assets/Faces/smile.anim"}
	AnimAngry = domain.AnimationInfo{GUID: "guid-angry", Name: "angry", Path: "Assets/Faces/angry.anim"}
	AnimWink  = domain.AnimationInfo{GUID: "guid-wink", Name: "wink", Path: "Assets/Faces/wink.anim"}
	AnimGrin  = domain.AnimationInfo{GUID: "guid-grin", Name: "grin", Path: "Assets/Faces/grin.anim"}
)

// LeftFist is the condition "left hand is a fist".
func LeftFist() domain.Condition {
	return domain.Condition{Hand: domain.HandLeft, HandGesture: domain.Fist, ComparisonOperator: domain.Equals}
}

// SampleMenu has a branchless mode "Calm" followed by a group holding "Happy",
// which has two branches: left fist (with left trigger blending) and either-hand victory.
//
// Normal addressing: Calm=0, Happy=1, Happy/branch0=2, Happy/branch1=3.
func SampleMenu() *domain.Menu {
	return &domain.Menu{
		ID:               "sample",
		DefaultSelection: "happy",
		Animations:       []domain.AnimationInfo{AnimSmile, AnimAngry, AnimWink, AnimGrin},
		Items: []domain.MenuItem{
			{Mode: &domain.Mode{
				ID:                   "calm",
				DisplayName:          "Calm",
				EyeTrackingControl:   domain.Tracking,
				MouthTrackingControl: domain.Tracking,
				BlinkEnabled:         true,
			}},
			{Group: &domain.Group{ID: "g-fun", DisplayName: "Fun", Items: []domain.MenuItem{
				{Mode: &domain.Mode{
					ID:                        "happy",
					DisplayName:               "Happy",
					ChangeDefaultFace:         true,
					Animation:                 domain.AnimationRef{GUID: AnimSmile.GUID},
					EyeTrackingControl:        domain.Tracking,
					MouthTrackingControl:      domain.Tracking,
					BlinkEnabled:              true,
					MouthMorphCancelerEnabled: true,
					Branches: []domain.Branch{
						{
							Conditions:           []domain.Condition{LeftFist()},
							BaseAnimation:        domain.AnimationRef{GUID: AnimAngry.GUID},
							LeftHandAnimation:    domain.AnimationRef{GUID: AnimGrin.GUID},
							EyeTrackingControl:   domain.Animation,
							MouthTrackingControl: domain.Tracking,
							IsLeftTriggerUsed:    true,
						},
						{
							Conditions: []domain.Condition{
								{Hand: domain.HandEither, HandGesture: domain.Victory, ComparisonOperator: domain.Equals},
							},
							BaseAnimation:        domain.AnimationRef{GUID: AnimWink.GUID},
							EyeTrackingControl:   domain.Animation,
							MouthTrackingControl: domain.Animation,
						},
					},
				}},
			}}},
		},
	}
}
