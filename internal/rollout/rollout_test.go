package rollout

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/banshee-data/kinematics2d"
	"github.com/banshee-data/kinematics2d/internal/config"
	"github.com/banshee-data/kinematics2d/internal/monitoring"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func testConfig() *config.MotionConfig {
	return &config.MotionConfig{
		MaxLinearDecel:  f64Ptr(5),
		MaxAngularDecel: f64Ptr(2),
		TimeStep:        strPtr("500ms"),
		Horizon:         strPtr("2s"),
	}
}

func TestRunSampling(t *testing.T) {
	start := kinematics2d.NewKinematics(kinematics2d.NewVector(1, 1), 0, kinematics2d.NewVector(2, 0), 0)
	samples := Run(start, testConfig())

	require.Len(t, samples, 5)
	for i, s := range samples {
		assert.Equal(t, time.Duration(i)*500*time.Millisecond, s.Elapsed)
		assert.True(t, s.State.Position.IsCloseTo(kinematics2d.NewVector(1+float64(i), 1)), "sample %d at %v", i, s.State.Position)
	}
	assert.Equal(t, start, samples[0].State)
}

func TestRunMatchesRepeatedStep(t *testing.T) {
	start := kinematics2d.NewKinematics(kinematics2d.NewVector(0, 0), 0.2, kinematics2d.NewVector(1, 0.5), 0.7)
	cfg := testConfig()
	samples := Run(start, cfg)

	state := start
	for i, s := range samples {
		if i > 0 {
			state = state.Updated(0.5)
		}
		if diff := cmp.Diff(state, s.State, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("sample %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestRunStopEnvelope(t *testing.T) {
	// speed 10, decel 5 -> 10 m to stop; rotation 2, decel 2 -> 1 rad.
	start := kinematics2d.NewKinematics(kinematics2d.ZeroVector(), 0, kinematics2d.NewVector(6, 8), 2)
	cfg := testConfig()
	cfg.Horizon = strPtr("0s")
	samples := Run(start, cfg)

	require.Len(t, samples, 1)
	assert.True(t, samples[0].StopPosition.IsCloseTo(kinematics2d.NewVector(6, 8)), "got %v", samples[0].StopPosition)
	assert.InDelta(t, 1.0, samples[0].StopOrientation, 1e-12)
	assert.Equal(t, kinematics2d.NewPose(samples[0].StopPosition, samples[0].StopOrientation), samples[0].StopPose())
}

func TestRunNilConfigUsesDefaults(t *testing.T) {
	samples := Run(kinematics2d.ZeroKinematics(), nil)
	// 2s horizon at 100ms steps
	assert.Len(t, samples, 21)
	for _, s := range samples {
		assert.Equal(t, kinematics2d.ZeroKinematics(), s.State)
		assert.Equal(t, kinematics2d.ZeroVector(), s.StopPosition)
	}
}

func TestRunCapsSampleCount(t *testing.T) {
	original := monitoring.Logf
	t.Cleanup(func() { monitoring.SetLogger(original) })

	var lines []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})

	cfg := &config.MotionConfig{TimeStep: strPtr("1ns"), Horizon: strPtr("2400h")}
	require.Error(t, cfg.Validate())

	samples := Run(kinematics2d.ZeroKinematics(), cfg)
	require.Len(t, samples, config.MaxSamples)
	assert.Equal(t, time.Duration(config.MaxSamples-1), samples[len(samples)-1].Elapsed)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "truncating")
}

func TestRunLogsWhenVerbose(t *testing.T) {
	original := monitoring.Logf
	t.Cleanup(func() {
		monitoring.SetLogger(original)
		monitoring.SetVerbose(false)
	})

	var lines []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	monitoring.SetVerbose(true)

	Run(kinematics2d.ZeroKinematics(), testConfig())
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "rollout t=0s"), lines[0])
}

func TestInFrame(t *testing.T) {
	start := kinematics2d.NewKinematics(kinematics2d.NewVector(1, 2), kinematics2d.Pi/2, kinematics2d.NewVector(0, 1), 0)
	samples := Run(start, testConfig())

	frame := kinematics2d.NewPose(kinematics2d.NewVector(1, 1), kinematics2d.Pi/2)
	local := InFrame(samples, frame)
	require.Len(t, local, len(samples))

	// In the frame, the body starts one metre ahead and moves straight ahead.
	assert.True(t, local[0].State.Pose().IsAt(kinematics2d.NewPose(kinematics2d.NewVector(1, 0), 0)), "got %v", local[0].State)
	assert.True(t, local[0].State.Velocity.IsCloseTo(kinematics2d.NewVector(1, 0)))

	for i := range samples {
		assert.Equal(t, samples[i].Elapsed, local[i].Elapsed)
		world := frame.Add(local[i].StopPose())
		assert.True(t, world.IsAt(samples[i].StopPose()), "stop pose %d does not round trip", i)
	}
}

func TestReached(t *testing.T) {
	start := kinematics2d.NewKinematics(kinematics2d.ZeroVector(), 0, kinematics2d.NewVector(1, 0), 0)
	cfg := testConfig()
	cfg.PositionTolerance = f64Ptr(0.01)
	samples := Run(start, cfg)

	s, ok := Reached(samples, kinematics2d.NewPose(kinematics2d.NewVector(1, 0), 0), cfg)
	require.True(t, ok)
	assert.Equal(t, time.Second, s.Elapsed)

	_, ok = Reached(samples, kinematics2d.NewPose(kinematics2d.NewVector(1, 0), 1), cfg)
	assert.False(t, ok, "orientation does not match")

	_, ok = Reached(samples, kinematics2d.NewPose(kinematics2d.NewVector(5, 0), 0), nil)
	assert.False(t, ok)
}

func TestWritePNG(t *testing.T) {
	start := kinematics2d.NewKinematics(kinematics2d.ZeroVector(), 0, kinematics2d.NewVector(1, 0), 0.5)
	samples := Run(start, testConfig())

	out := filepath.Join(t.TempDir(), "plots", "rollout.png")
	require.NoError(t, WritePNG(out, samples))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.ErrorIs(t, WritePNG(out, nil), ErrNoSamples)
}

func TestRenderHTML(t *testing.T) {
	start := kinematics2d.NewKinematics(kinematics2d.ZeroVector(), 0, kinematics2d.NewVector(1, 0), 0.5)
	samples := Run(start, testConfig())

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, samples))
	html := buf.String()
	assert.Contains(t, html, "Kinematics Rollout")
	assert.Contains(t, html, "echarts")

	assert.ErrorIs(t, RenderHTML(&buf, nil), ErrNoSamples)
}
