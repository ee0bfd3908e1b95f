package generator

import "github.com/suzuryg/facial-expression-switcher/pkg/domain"

// Parameters builds the parameter manifest installed alongside the controller.
func Parameters(s Settings, defaultModeIndex int) []domain.ParameterConfig {
	cfg := s.AddConfig
	def := s.DefaultValues
	prefix := ""
	if s.AddParameterPrefix {
		prefix = s.ParameterPrefix
	}

	param := func(name string, sync domain.SyncType, value float64, saved bool) domain.ParameterConfig {
		pc := domain.ParameterConfig{Name: name, SyncType: sync}
		if prefix != "" {
			pc.RemapTo = prefix + name
		}
		if sync != domain.SyncNone {
			pc.DefaultValue = value
			pc.Saved = saved
		}
		return pc
	}
	savedBool := func(name string, enabled, value bool) domain.ParameterConfig {
		return param(name, boolSync(enabled), boolValue(value), true)
	}
	local := func(name string) domain.ParameterConfig {
		return param(name, domain.SyncNone, 0, false)
	}

	return []domain.ParameterConfig{
		// Saved configuration.
		savedBool(domain.ParamControllerQuest, cfg.ControllerQuest, def.ControllerQuest),
		savedBool(domain.ParamControllerIndex, cfg.ControllerIndex, def.ControllerIndex),
		savedBool(domain.ParamSwapLR, cfg.HandPatternSwap, def.HandPatternSwap),
		savedBool(domain.ParamDisableLeft, cfg.HandPatternDisableLeft, def.HandPatternDisableLeft),
		savedBool(domain.ParamDisableRight, cfg.HandPatternDisableRight, def.HandPatternDisableRight),
		savedBool(domain.ParamContactLock, cfg.ContactLock, def.ContactLock),
		savedBool(domain.ParamOverrideEnable, cfg.Override, def.Override),
		savedBool(domain.ParamWaitEmoteByVoice, cfg.Voice, def.Voice),
		param(domain.ParamEmotePattern, domain.SyncInt, float64(defaultModeIndex), true),

		// Unsaved configuration.
		param(domain.ParamEmoteLock, domain.SyncBool, 0, false),
		param(domain.ParamEmotePrelock, boolSync(cfg.EmoteSelect), 0, false),
		param(domain.ParamForceBlinkDisable, boolSync(cfg.BlinkOff && s.ReplaceBlink), 0, false),
		param(domain.ParamDanceGimmick, boolSync(cfg.DanceGimmick), 0, false),

		param(domain.ParamSyncEmote, domain.SyncInt, 0, false),

		local(domain.ParamDummy),
		local(domain.ParamEmoteSelectL),
		local(domain.ParamEmoteSelectR),
		local(domain.ParamEmotePreselect),
		local(domain.ParamBlinkEnable),
		local(domain.ParamMouthMorphCancel),
		local(domain.ParamEmoteOverride),
		local(domain.ParamPlayIndicatorSound),
		local(domain.ParamTouchNadenade),
		local(domain.ParamTouchEmoteLockL),
		local(domain.ParamTouchEmoteLockR),
	}
}

func boolSync(enabled bool) domain.SyncType {
	if enabled {
		return domain.SyncBool
	}
	return domain.SyncNone
}

// controllerParameters are the animator parameters the generated layers read or drive.
func (p *pass) controllerParameters() []domain.Parameter {
	params := []domain.Parameter{
		{Name: domain.ParamEmotePattern, Type: domain.ParamInt},
		{Name: domain.ParamEmotePreselect, Type: domain.ParamInt},
		{Name: domain.ParamEmoteSelectL, Type: domain.ParamInt},
		{Name: domain.ParamEmoteSelectR, Type: domain.ParamInt},
		{Name: domain.ParamSyncEmote, Type: domain.ParamInt},
		{Name: domain.ParamBlinkEnable, Type: domain.ParamBool},
		{Name: domain.ParamMouthMorphCancel, Type: domain.ParamBool},
		{Name: domain.ParamEmoteOverride, Type: domain.ParamBool},
		{Name: domain.ParamEmoteLock, Type: domain.ParamBool},
		{Name: domain.ParamEmotePrelock, Type: domain.ParamBool},
		{Name: domain.ParamWaitEmoteByVoice, Type: domain.ParamBool},
		{Name: domain.ParamDanceGimmick, Type: domain.ParamBool},
		{Name: domain.ParamForceBlinkDisable, Type: domain.ParamBool},
		{Name: domain.ParamOverrideEnable, Type: domain.ParamBool},
		{Name: domain.ParamContactLock, Type: domain.ParamBool},
		{Name: domain.ParamSwapLR, Type: domain.ParamBool},
		{Name: domain.ParamDisableLeft, Type: domain.ParamBool},
		{Name: domain.ParamDisableRight, Type: domain.ParamBool},
		{Name: domain.ParamControllerQuest, Type: domain.ParamBool},
		{Name: domain.ParamControllerIndex, Type: domain.ParamBool},
		{Name: domain.ParamDummy, Type: domain.ParamBool},
		{Name: domain.ParamIsLocal, Type: domain.ParamBool},
		{Name: domain.ParamAFK, Type: domain.ParamBool},
		{Name: domain.ParamInStation, Type: domain.ParamBool},
		{Name: domain.ParamVoice, Type: domain.ParamFloat},
	}
	left, right := p.weightAxes()
	return append(params,
		domain.Parameter{Name: left, Type: domain.ParamFloat},
		domain.Parameter{Name: right, Type: domain.ParamFloat},
	)
}
