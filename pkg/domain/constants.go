package domain

// Template layer and state names the generator expects to find in the target controller.
const (
	LayerSetControl           = "FES Set Control"
	LayerDefaultFace          = "FES Default Face"
	LayerEmotePlayer          = "FES Emote Player"
	LayerBlink                = "FES Blink"
	LayerMouthMorphCanceler   = "FES Mouth Morph Canceler"
	StateBlinkEnabled         = "BLINK ENABLED"
	StateMouthMorphCancelerOn = "MOUTH MORPH CANCELER ENABLED"
)

// Parameters owned by the generated controller.
const (
	ParamEmotePattern       = "EM_EMOTE_PATTERN"
	ParamEmotePreselect     = "EM_EMOTE_PRESELECT"
	ParamEmoteSelectL       = "EM_EMOTE_SELECT_L"
	ParamEmoteSelectR       = "EM_EMOTE_SELECT_R"
	ParamSyncEmote          = "SYNC_EM_EMOTE"
	ParamBlinkEnable        = "CN_BLINK_ENABLE"
	ParamMouthMorphCancel   = "CN_MOUTH_MORPH_CANCEL_ENABLE"
	ParamEmoteOverride      = "CN_EMOTE_OVERRIDE"
	ParamEmoteLock          = "CN_EMOTE_LOCK_ENABLE"
	ParamEmotePrelock       = "CN_EMOTE_PRELOCK_ENABLE"
	ParamWaitEmoteByVoice   = "SYNC_CN_WAIT_FACE_EMOTE_BY_VOICE"
	ParamDanceGimmick       = "SYNC_CN_DANCE_GIMMICK_ENABLE"
	ParamForceBlinkDisable  = "SYNC_CN_FORCE_BLINK_DISABLE"
	ParamOverrideEnable     = "SYNC_CN_EMOTE_OVERRIDE_ENABLE"
	ParamContactLock        = "CN_CONTACT_EMOTE_LOCK_ENABLE"
	ParamSwapLR             = "CN_EMOTE_SELECT_SWAP_LR"
	ParamDisableLeft        = "CN_EMOTE_SELECT_DISABLE_LEFT"
	ParamDisableRight       = "CN_EMOTE_SELECT_DISABLE_RIGHT"
	ParamControllerQuest    = "CN_CONTROLLER_TYPE_QUEST"
	ParamControllerIndex    = "CN_CONTROLLER_TYPE_INDEX"
	ParamPlayIndicatorSound = "EV_PLAY_INDICATOR_SOUND"
	ParamTouchNadenade      = "CNST_TOUCH_NADENADE_POINT"
	ParamTouchEmoteLockL    = "CNST_TOUCH_EMOTE_LOCK_TRIGGER_L"
	ParamTouchEmoteLockR    = "CNST_TOUCH_EMOTE_LOCK_TRIGGER_R"
	ParamDummy              = "Dummy"
	DefaultParameterPrefix  = "FES_"
)

// Parameters provided by the runtime itself.
const (
	ParamIsLocal            = "IsLocal"
	ParamAFK                = "AFK"
	ParamVoice              = "Voice"
	ParamInStation          = "InStation"
	ParamGestureLeftWeight  = "GestureLeftWeight"
	ParamGestureRightWeight = "GestureRightWeight"
	ParamGestureLWSmoothing = "GestureLWSmoothing"
	ParamGestureRWSmoothing = "GestureRWSmoothing"
)

// VoiceThreshold is the voice level under which a debounced exit may fire.
const VoiceThreshold = 0.01
