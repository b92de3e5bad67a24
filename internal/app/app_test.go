package app

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"

	"github.com/Dicklesworthstone/statline/internal/apperrors"
	"github.com/Dicklesworthstone/statline/internal/config"
	"github.com/Dicklesworthstone/statline/internal/logging"
	"github.com/Dicklesworthstone/statline/internal/model"
)

// fakeCPU returns "before" counters on the first call per mode and "after"
// counters afterwards, unless the matching error is set.
type fakeCPU struct {
	before, after map[bool][]cpu.TimesStat
	newErr        error
	readErr       map[bool]error
	calls         map[bool]int
}

func counters(pcts ...float64) (before, after []cpu.TimesStat) {
	for _, p := range pcts {
		before = append(before, cpu.TimesStat{User: 100, Idle: 100})
		after = append(after, cpu.TimesStat{User: 100 + p, Idle: 100 + (100 - p)})
	}
	return before, after
}

func newFakeCPU(total float64, cores ...float64) *fakeCPU {
	f := &fakeCPU{
		before:  map[bool][]cpu.TimesStat{},
		after:   map[bool][]cpu.TimesStat{},
		readErr: map[bool]error{},
		calls:   map[bool]int{},
	}
	f.before[false], f.after[false] = counters(total)
	f.before[true], f.after[true] = counters(cores...)
	return f
}

func (f *fakeCPU) Times(percpu bool) ([]cpu.TimesStat, error) {
	f.calls[percpu]++
	if f.calls[percpu] == 1 {
		if f.newErr != nil {
			return nil, f.newErr
		}
		return f.before[percpu], nil
	}
	if err := f.readErr[percpu]; err != nil {
		return nil, err
	}
	return f.after[percpu], nil
}

type fakeMemory struct {
	pct float64
	err error
}

func (f fakeMemory) VirtualMemory() (*mem.VirtualMemoryStat, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &mem.VirtualMemoryStat{UsedPercent: f.pct}, nil
}

type fakeBatteries struct {
	readings []model.BatteryReading
	err      error
}

func (f fakeBatteries) Batteries() ([]model.BatteryReading, error) { return f.readings, f.err }

type recordedSleep struct{ got []time.Duration }

func (r *recordedSleep) sleep(d time.Duration) { r.got = append(r.got, d) }

func laptop() (Sources, *recordedSleep) {
	rec := &recordedSleep{}
	return Sources{
		CPU:     newFakeCPU(42, 5, 50, 95),
		Memory:  fakeMemory{pct: 63.4},
		Battery: fakeBatteries{readings: []model.BatteryReading{{Current: 77, Full: 100, State: "Discharging"}}},
		Sleep:   rec.sleep,
	}, rec
}

func run(t *testing.T, cfg config.Config, src Sources) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Run(cfg, src, &out, logging.New(&errOut, "info"))
	return code, out.String(), errOut.String()
}

func TestRun_FullLine(t *testing.T) {
	src, rec := laptop()

	code, out, _ := run(t, config.Default(), src)

	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, " ▄█ 42ℂ 63ℝ 77♡", out)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, rec.got)
}

func TestRun_Newline(t *testing.T) {
	src, _ := laptop()
	cfg := config.Default()
	cfg.Newline = true

	_, out, _ := run(t, cfg, src)

	assert.Equal(t, " ▄█ 42ℂ 63ℝ 77♡\n", out)
}

func TestRun_ConfiguredInterval(t *testing.T) {
	src, rec := laptop()
	cfg := config.Default()
	cfg.Interval = 2 * time.Second

	run(t, cfg, src)

	assert.Equal(t, []time.Duration{2 * time.Second}, rec.got)
}

func TestRun_NoBattery(t *testing.T) {
	src, _ := laptop()
	src.Battery = fakeBatteries{}

	code, out, diag := run(t, config.Default(), src)

	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, " ▄█ 42ℂ 63ℝ", out)
	assert.Contains(t, diag, "unable to find any batteries")
}

func TestRun_BatteryProviderFailure(t *testing.T) {
	src, _ := laptop()
	src.Battery = fakeBatteries{err: apperrors.New(apperrors.SourceBattery, apperrors.KindConstructionFailed,
		"unable to enumerate batteries", errors.New("no power supply class"))}

	code, out, diag := run(t, config.Default(), src)

	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, " ▄█ 42ℂ 63ℝ", out)
	assert.Contains(t, diag, "unable to enumerate batteries")
	assert.Contains(t, diag, "no power supply class")
}

func TestRun_PerCoreFailureIsIsolated(t *testing.T) {
	src, _ := laptop()
	fc := newFakeCPU(42, 5, 50, 95)
	fc.readErr[true] = errors.New("per-cpu read failed")
	src.CPU = fc

	code, out, diag := run(t, config.Default(), src)

	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, " 42ℂ 63ℝ 77♡", out)
	assert.Contains(t, diag, "per-cpu read failed")
}

func TestRun_AggregateFailureSkipsSegment(t *testing.T) {
	src, _ := laptop()
	fc := newFakeCPU(42, 5, 50, 95)
	fc.readErr[false] = errors.New("aggregate read failed")
	src.CPU = fc

	code, out, _ := run(t, config.Default(), src)

	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, " ▄█ 63ℝ 77♡", out)
}

func TestRun_MemoryFailureSkipsSegment(t *testing.T) {
	src, _ := laptop()
	src.Memory = fakeMemory{err: errors.New("sysinfo failed")}

	code, out, diag := run(t, config.Default(), src)

	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, " ▄█ 42ℂ 77♡", out)
	assert.Contains(t, diag, "unable to determine used memory percent")
}

func TestRun_CollectorConstructionIsFatal(t *testing.T) {
	src, rec := laptop()
	fc := newFakeCPU(0)
	fc.newErr = errors.New("open /proc/stat: permission denied")
	src.CPU = fc

	code, out, diag := run(t, config.Default(), src)

	assert.Equal(t, apperrors.ExitErrorGeneric, code)
	assert.Empty(t, out)
	assert.Empty(t, rec.got, "no sleep after a fatal construction error")
	assert.Contains(t, diag, "unable to create cpu percent collector")
}

type brokenStdout struct{}

func (brokenStdout) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRun_WriteFailureIsFatal(t *testing.T) {
	src, _ := laptop()
	var diag bytes.Buffer

	code := Run(config.Default(), src, brokenStdout{}, logging.New(&diag, ""))

	assert.Equal(t, apperrors.ExitErrorGeneric, code)
	assert.Contains(t, diag.String(), "broken pipe")
}
