package model

import "strings"

// CPU aggregates one delta-sampled CPU reading.
type CPU struct {
	Total   float64   // percent 0-100, capped
	PerCore []float64 // per-core percent, in the order the OS reports cores
}

// Memory captures system virtual memory utilization.
type Memory struct {
	UsedPercent float64
}

// BatteryState is the coarse charge/discharge classification of a battery.
type BatteryState int

const (
	StateUnknown BatteryState = iota
	StateCharging
	StateDischarging
	StateEmpty
	StateFull
	StateOther
)

var stateNames = map[BatteryState]string{
	StateUnknown:     "Unknown",
	StateCharging:    "Charging",
	StateDischarging: "Discharging",
	StateEmpty:       "Empty",
	StateFull:        "Full",
	StateOther:       "Other",
}

func (s BatteryState) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "Other"
}

// ParseBatteryState maps a provider state name onto BatteryState.
// Names are matched case-insensitively. Idle and "Not charging" (plugged in,
// holding charge) are StateUnknown; anything else unrecognised is StateOther.
func ParseBatteryState(name string) BatteryState {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "charging":
		return StateCharging
	case "discharging":
		return StateDischarging
	case "empty":
		return StateEmpty
	case "full":
		return StateFull
	case "unknown", "", "idle", "not charging":
		return StateUnknown
	default:
		return StateOther
	}
}

// Battery shows the first battery's charge and state.
type Battery struct {
	Percent int // rounded, 0-100
	State   BatteryState
}

// BatteryReading is the raw energy data of one battery as reported by the platform.
type BatteryReading struct {
	Current float64 // mWh
	Full    float64 // mWh
	State   string
}
