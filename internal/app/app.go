// Package app wires the samplers and the formatter into the one-shot
// pipeline: snapshot CPU counters, wait, read everything once, print.
package app

import (
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dicklesworthstone/statline/internal/apperrors"
	"github.com/Dicklesworthstone/statline/internal/config"
	"github.com/Dicklesworthstone/statline/internal/sampler"
	"github.com/Dicklesworthstone/statline/internal/ui"
)

// Sources are the platform providers the pipeline reads from.
type Sources struct {
	CPU     sampler.CPUSource
	Memory  sampler.MemorySource
	Battery sampler.BatterySource
	// Sleep blocks between the two CPU snapshots; time.Sleep when nil.
	Sleep func(time.Duration)
}

// SystemSources returns the gopsutil and distatus/battery backed providers.
func SystemSources() Sources {
	return Sources{
		CPU:     sampler.SystemCPU{},
		Memory:  sampler.SystemMemory{},
		Battery: sampler.SystemBatteries{},
		Sleep:   time.Sleep,
	}
}

// Run samples once and writes the status line to stdout. It returns the
// process exit code.
func Run(cfg config.Config, src Sources, stdout io.Writer, log zerolog.Logger) int {
	collector, err := sampler.NewCPUCollector(src.CPU)
	if err != nil {
		report(log, err)
		return apperrors.ExitErrorGeneric
	}

	sleep := src.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(cfg.Interval)

	line := ui.NewLine(ui.NewPalette(stdout, cfg.Color))

	cores, err := collector.PerCore()
	if err != nil {
		report(log, err)
		cores = nil
	}
	line.Histogram(cores)

	if total, err := collector.Total(); err != nil {
		report(log, err)
	} else {
		line.CPU(total)
	}

	if mem, err := sampler.NewMemorySampler(src.Memory).Sample(); err != nil {
		report(log, err)
	} else {
		line.Memory(mem)
	}

	if batt, err := sampler.NewBatterySampler(src.Battery).Sample(); err != nil {
		report(log, err)
	} else {
		line.Battery(batt)
	}

	if err := line.Err(); err != nil {
		log.Error().Err(err).Msg("format status line")
		return apperrors.ExitErrorGeneric
	}
	if err := line.Flush(stdout, cfg.Newline); err != nil {
		log.Error().Err(apperrors.WriteError{Cause: err}).Msg("print status line")
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// report logs a sampling failure. Fatal ones go out at error level, a
// missing battery only at info.
func report(log zerolog.Logger, err error) {
	kind := apperrors.KindOf(err)
	ev := log.Warn()
	switch {
	case apperrors.IsFatal(err):
		ev = log.Error()
	case kind == apperrors.KindNotFound:
		ev = log.Info()
	}

	var se *apperrors.SampleError
	if errors.As(err, &se) {
		ev = ev.Str("source", string(se.Source))
		if se.Err != nil {
			ev = ev.AnErr("cause", se.Err)
		}
		ev.Str("kind", kind.String()).Msg(se.Msg)
		return
	}
	ev.Str("kind", kind.String()).Err(err).Msg("sampling failed")
}
