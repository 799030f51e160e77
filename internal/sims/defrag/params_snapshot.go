package defrag

import (
	"strconv"

	"defrag-timer/internal/core"
	"defrag-timer/internal/countdown"
)

// Parameters reports the disk's settings and countdown for the HUD.
func (d *Disk) Parameters() core.ParameterSnapshot {
	status := d.Status()
	counts := d.layout.Counts()
	groups := []core.ParameterGroup{
		{
			Name: "Timer",
			Params: []core.Parameter{
				textParam("remaining", "Remaining", countdown.FormatClock(status.Remaining)),
				textParam("state", "State", status.State.String()),
				intParam("minutes", "Minutes", d.cfg.Timer.Minutes),
				intParam("seconds", "Seconds", d.cfg.Timer.Seconds),
			},
		},
		{
			Name: "Disk",
			Params: []core.Parameter{
				intParam("free_space_percent", "Free space %", d.cfg.Layout.FreeSpacePercent),
				intParam("fragmented_file_percent", "Fragmented %", d.cfg.Layout.FragmentedFilePercent),
				intParam("optimized", "Optimized", status.Optimized),
				intParam("data", "Data blocks", counts.Data()),
				intParam("free", "Free blocks", counts.Free),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the settings the HUD may adjust.
func (d *Disk) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "minutes", Label: "Minutes", Step: 1, Min: 0, Max: 999, HasMin: true, HasMax: true},
		{Key: "seconds", Label: "Seconds", Step: 5, Min: 0, Max: 59, HasMin: true, HasMax: true},
		{Key: "free_space_percent", Label: "Free %", Step: 5, Min: 0, Max: 100, HasMin: true, HasMax: true},
		{Key: "fragmented_file_percent", Label: "Fragmented %", Step: 5, Min: 0, Max: 100, HasMin: true, HasMax: true},
	}
}

// SetIntParameter applies a HUD adjustment. Timer changes reset the
// countdown; proportion changes lay the disk out again.
func (d *Disk) SetIntParameter(key string, value int) bool {
	switch key {
	case "minutes", "seconds":
		minutes, seconds := d.cfg.Timer.Minutes, d.cfg.Timer.Seconds
		if key == "minutes" {
			minutes = value
		} else {
			seconds = value
		}
		if seconds < 0 || seconds >= 60 {
			return false
		}
		target, err := countdown.Target(minutes, seconds)
		if err != nil {
			return false
		}
		return d.SetTarget(target) == nil
	case "free_space_percent", "fragmented_file_percent":
		next := d.cfg.Layout
		if key == "free_space_percent" {
			next.FreeSpacePercent = value
		} else {
			next.FragmentedFilePercent = value
		}
		if next.Validate() != nil {
			return false
		}
		d.cfg.Layout = next
		d.Reset(d.seed)
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
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

var _ interface {
	core.Sim
	core.ParameterProvider
	core.ParameterControlsProvider
	core.IntParameterSetter
} = (*Disk)(nil)
