package sampler

import (
	"errors"
	"math"

	"github.com/Dicklesworthstone/statline/internal/apperrors"
	"github.com/Dicklesworthstone/statline/internal/model"
)

// BatterySampler reports the charge and state of the first battery found.
type BatterySampler struct {
	src BatterySource
}

func NewBatterySampler(src BatterySource) *BatterySampler {
	return &BatterySampler{src: src}
}

// Sample returns the first battery. Every failure, including an empty
// battery list, is a *apperrors.SampleError; the kind tells them apart.
func (b *BatterySampler) Sample() (model.Battery, error) {
	readings, err := b.src.Batteries()
	if err != nil {
		var se *apperrors.SampleError
		if !errors.As(err, &se) {
			err = apperrors.New(apperrors.SourceBattery, apperrors.KindReadFailed,
				"unable to access battery information", err)
		}
		return model.Battery{}, err
	}
	if len(readings) == 0 {
		return model.Battery{}, apperrors.New(apperrors.SourceBattery, apperrors.KindNotFound,
			"unable to find any batteries", nil)
	}

	first := readings[0]
	if first.Full <= 0 || math.IsNaN(first.Current) {
		return model.Battery{}, apperrors.New(apperrors.SourceBattery, apperrors.KindReadFailed,
			"battery reports no usable capacity", nil)
	}
	return model.Battery{
		Percent: ChargePercent(first.Current / first.Full),
		State:   model.ParseBatteryState(first.State),
	}, nil
}

// ChargePercent converts a 0.0-1.0 charge fraction into a percent in
// [0, 100], rounding ties to even.
func ChargePercent(fraction float64) int {
	pct := math.RoundToEven(fraction * 100)
	switch {
	case math.IsNaN(pct) || pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return int(pct)
}
