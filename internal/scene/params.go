package scene

import (
	"strconv"

	"porch/internal/core"
)

func (s *Scene) Parameters() core.ParameterSnapshot {
	st := s.cycle.State()
	wl := s.wildlife.Config()
	groups := []core.ParameterGroup{
		{
			Name: "Scene",
			Params: []core.Parameter{
				int64Param("seed", "Seed", s.cfg.Seed),
				floatParam("time", "Time", s.now),
				boolParam("idle", "Idle mode", s.app.IdleMode()),
			},
		},
		{
			Name: "Season",
			Params: []core.Parameter{
				floatParam("season_period", "Season length", s.cycle.Period()),
				textParam("season", "Season", st.Season.String()),
				textParam("weather", "Weather", st.Weather.String()),
				floatParam("rain_intensity", "Rain intensity", st.RainIntensity()),
			},
		},
		{
			Name: "Wildlife",
			Params: []core.Parameter{
				intParam("max_population", "Max population", wl.MaxPopulation),
				floatParam("spawn_min", "Spawn min", wl.SpawnMin),
				floatParam("spawn_max", "Spawn max", wl.SpawnMax),
				intParam("population", "Population", s.wildlife.Population().Len()),
			},
		},
		{
			Name: "Swing",
			Params: []core.Parameter{
				floatParam("swing_damping", "Swing damping", s.swing.Damping()),
				floatParam("swing_amplitude", "Swing amplitude", s.swing.Amplitude()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

var parameterControls = []core.ParameterControl{
	{Key: "season_period", Label: "Season length", Type: core.ParamTypeFloat, Step: 5, Min: 5, Max: 600, HasMin: true, HasMax: true},
	{Key: "spawn_min", Label: "Spawn min", Type: core.ParamTypeFloat, Step: 1, Min: 1, Max: 120, HasMin: true, HasMax: true},
	{Key: "spawn_max", Label: "Spawn max", Type: core.ParamTypeFloat, Step: 1, Min: 1, Max: 120, HasMin: true, HasMax: true},
	{Key: "max_population", Label: "Max population", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 32, HasMin: true, HasMax: true},
	{Key: "swing_damping", Label: "Swing damping", Type: core.ParamTypeFloat, Step: 0.005, Min: 0.9, Max: 0.995, HasMin: true, HasMax: true},
}

// ParameterControls lists the HUD-adjustable parameters.
func (s *Scene) ParameterControls() []core.ParameterControl {
	out := make([]core.ParameterControl, len(parameterControls))
	copy(out, parameterControls)
	return out
}

// SetFloatParameter applies a HUD adjustment, clamped to the control bounds.
func (s *Scene) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := controlFor(key, core.ParamTypeFloat)
	if !ok {
		return false
	}
	value = ctrl.Clamp(value)
	switch key {
	case "season_period":
		return s.cycle.SetPeriod(value) == nil
	case "spawn_min":
		wl := s.wildlife.Config()
		max := wl.SpawnMax
		if max < value {
			max = value
		}
		s.wildlife.SetSpawnRange(value, max)
		return true
	case "spawn_max":
		wl := s.wildlife.Config()
		min := wl.SpawnMin
		if value < min {
			min = value
		}
		s.wildlife.SetSpawnRange(min, value)
		return true
	case "swing_damping":
		return s.swing.SetDamping(value)
	}
	return false
}

// SetIntParameter applies a HUD adjustment, clamped to the control bounds.
func (s *Scene) SetIntParameter(key string, value int) bool {
	ctrl, ok := controlFor(key, core.ParamTypeInt)
	if !ok {
		return false
	}
	value = int(ctrl.Clamp(float64(value)))
	switch key {
	case "max_population":
		return s.wildlife.SetMaxPopulation(value)
	}
	return false
}

func controlFor(key string, typ core.ParamType) (core.ParameterControl, bool) {
	for _, c := range parameterControls {
		if c.Key == key && c.Type == typ {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func textParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeText,
		Value: value,
	}
}
