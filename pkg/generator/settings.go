package generator

import "github.com/suzuryg/facial-expression-switcher/pkg/domain"

// Settings are the user options of a generation pass.
type Settings struct {
	// EmoteBudget is the largest total emote count addressable in the normal regime.
	EmoteBudget int `mapstructure:"emote_budget" json:"emote_budget"`
	// ForceCompressed selects the compressed regime regardless of the total.
	ForceCompressed           bool    `mapstructure:"force_compressed" json:"force_compressed"`
	TransitionDurationSeconds float64 `mapstructure:"transition_duration_seconds" json:"transition_duration_seconds"`
	SmoothAnalogFist          bool    `mapstructure:"smooth_analog_fist" json:"smooth_analog_fist"`
	ReplaceBlink              bool    `mapstructure:"replace_blink" json:"replace_blink"`
	GenerateThumbnails        bool    `mapstructure:"generate_thumbnails" json:"generate_thumbnails"`
	AddParameterPrefix        bool    `mapstructure:"add_parameter_prefix" json:"add_parameter_prefix"`
	ParameterPrefix           string  `mapstructure:"parameter_prefix" json:"parameter_prefix"`

	// OutputPrefix starts every generated namespace name. Cleanup only touches
	// namespaces carrying it.
	OutputPrefix string `mapstructure:"output_prefix" json:"output_prefix"`
	// InstallTarget names the host target the controller is attached to. Each
	// menu installs below it, see TargetFor.
	InstallTarget string `mapstructure:"install_target" json:"install_target"`

	AddConfig     MenuConfig    `mapstructure:"add_config" json:"add_config"`
	DefaultValues DefaultValues `mapstructure:"default_values" json:"default_values"`
	Clips         Clips         `mapstructure:"clips" json:"clips"`
	Labels        Labels        `mapstructure:"labels" json:"labels"`
}

// MenuConfig selects which optional controls the selector menu carries.
type MenuConfig struct {
	EmoteSelect             bool `mapstructure:"emote_select" json:"emote_select"`
	BlinkOff                bool `mapstructure:"blink_off" json:"blink_off"`
	DanceGimmick            bool `mapstructure:"dance_gimmick" json:"dance_gimmick"`
	ContactLock             bool `mapstructure:"contact_lock" json:"contact_lock"`
	Override                bool `mapstructure:"override" json:"override"`
	Voice                   bool `mapstructure:"voice" json:"voice"`
	HandPatternSwap         bool `mapstructure:"hand_pattern_swap" json:"hand_pattern_swap"`
	HandPatternDisableLeft  bool `mapstructure:"hand_pattern_disable_left" json:"hand_pattern_disable_left"`
	HandPatternDisableRight bool `mapstructure:"hand_pattern_disable_right" json:"hand_pattern_disable_right"`
	ControllerQuest         bool `mapstructure:"controller_quest" json:"controller_quest"`
	ControllerIndex         bool `mapstructure:"controller_index" json:"controller_index"`
}

// DefaultValues are the initial values of the saved configuration parameters.
type DefaultValues struct {
	ContactLock             bool `mapstructure:"contact_lock" json:"contact_lock"`
	Override                bool `mapstructure:"override" json:"override"`
	Voice                   bool `mapstructure:"voice" json:"voice"`
	HandPatternSwap         bool `mapstructure:"hand_pattern_swap" json:"hand_pattern_swap"`
	HandPatternDisableLeft  bool `mapstructure:"hand_pattern_disable_left" json:"hand_pattern_disable_left"`
	HandPatternDisableRight bool `mapstructure:"hand_pattern_disable_right" json:"hand_pattern_disable_right"`
	ControllerQuest         bool `mapstructure:"controller_quest" json:"controller_quest"`
	ControllerIndex         bool `mapstructure:"controller_index" json:"controller_index"`
}

// Clips are host animations used outside of the configuration tree.
// A zero reference plays the empty clip.
type Clips struct {
	DefaultFace        domain.AnimationRef `mapstructure:"default_face" json:"default_face"`
	Blink              domain.AnimationRef `mapstructure:"blink" json:"blink"`
	MouthMorphCanceler domain.AnimationRef `mapstructure:"mouth_morph_canceler" json:"mouth_morph_canceler"`
	AfkEnter           domain.AnimationRef `mapstructure:"afk_enter" json:"afk_enter"`
	Afk                domain.AnimationRef `mapstructure:"afk" json:"afk"`
	AfkExit            domain.AnimationRef `mapstructure:"afk_exit" json:"afk_exit"`
}

// Labels are the user-visible menu strings.
type Labels struct {
	RootMenu     string `mapstructure:"root_menu" json:"root_menu"`
	NoExpression string `mapstructure:"no_expression" json:"no_expression"`
	EmoteSelect  string `mapstructure:"emote_select" json:"emote_select"`
	EmoteLock    string `mapstructure:"emote_lock" json:"emote_lock"`
	Setting      string `mapstructure:"setting" json:"setting"`
	BlinkOff     string `mapstructure:"blink_off" json:"blink_off"`
	DanceGimmick string `mapstructure:"dance_gimmick" json:"dance_gimmick"`
	ContactLock  string `mapstructure:"contact_lock" json:"contact_lock"`
	Override     string `mapstructure:"override" json:"override"`
	Voice        string `mapstructure:"voice" json:"voice"`
	HandPattern  string `mapstructure:"hand_pattern" json:"hand_pattern"`
	SwapLR       string `mapstructure:"swap_lr" json:"swap_lr"`
	DisableLeft  string `mapstructure:"disable_left" json:"disable_left"`
	DisableRight string `mapstructure:"disable_right" json:"disable_right"`
	Controller   string `mapstructure:"controller" json:"controller"`
	Quest        string `mapstructure:"quest" json:"quest"`
	Index        string `mapstructure:"index" json:"index"`
}

// DefaultEmoteBudget is the numeric range of a single synced int parameter.
const DefaultEmoteBudget = 256

// TargetFor is the installation target of the menu with the given ID.
func (s Settings) TargetFor(menuID string) string {
	if menuID == "" {
		return s.InstallTarget
	}
	return s.InstallTarget + "/" + menuID
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		EmoteBudget:               DefaultEmoteBudget,
		TransitionDurationSeconds: 0.1,
		ReplaceBlink:              true,
		ParameterPrefix:           domain.DefaultParameterPrefix,
		OutputPrefix:              "FES_",
		InstallTarget:             "avatar",
		AddConfig: MenuConfig{
			EmoteSelect:  true,
			BlinkOff:     true,
			DanceGimmick: true,
			ContactLock:  true,
			Override:     true,
			Voice:        true,
		},
		DefaultValues: DefaultValues{
			ContactLock: true,
			Override:    true,
		},
		Labels: Labels{
			RootMenu:     "FES",
			NoExpression: "(No Expression)",
			EmoteSelect:  "Emote Select",
			EmoteLock:    "Emote Lock",
			Setting:      "Setting",
			BlinkOff:     "Blink Off",
			DanceGimmick: "Dance Gimmick",
			ContactLock:  "Contact Emote Lock",
			Override:     "Emote Override",
			Voice:        "Wait Emote By Voice",
			HandPattern:  "Hand Pattern",
			SwapLR:       "Swap L/R",
			DisableLeft:  "Disable Left",
			DisableRight: "Disable Right",
			Controller:   "Controller",
			Quest:        "Quest",
			Index:        "Index",
		},
	}
}
