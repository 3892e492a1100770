// Package rollout predicts a body's motion over a short horizon by repeating
// the single-step constant-rate update, and records where the body would
// come to rest if it started braking at each sample.
package rollout

import (
	"time"

	"github.com/banshee-data/kinematics2d"
	"github.com/banshee-data/kinematics2d/internal/config"
	"github.com/banshee-data/kinematics2d/internal/monitoring"
)

// Sample is one predicted state plus its braking envelope.
type Sample struct {
	Elapsed time.Duration
	State   kinematics2d.Kinematics

	// Where the body stops if it brakes at the configured limits from State.
	StopPosition    kinematics2d.Vector
	StopOrientation float64
}

// StopPose returns the stop position and orientation as a Pose.
func (s Sample) StopPose() kinematics2d.Pose {
	return kinematics2d.NewPose(s.StopPosition, s.StopOrientation)
}

func newSample(elapsed time.Duration, state kinematics2d.Kinematics, cfg *config.MotionConfig) Sample {
	return Sample{
		Elapsed:         elapsed,
		State:           state,
		StopPosition:    state.Position.Add(state.DeltaPositionToStop(cfg.GetMaxLinearDecel())),
		StopOrientation: state.Orientation + state.DeltaOrientationToStop(cfg.GetMaxAngularDecel()),
	}
}

// Run samples start every time step from zero up to and including the
// horizon, stopping after config.MaxSamples samples. A nil cfg uses the
// defaults.
func Run(start kinematics2d.Kinematics, cfg *config.MotionConfig) []Sample {
	if cfg == nil {
		cfg = config.EmptyMotionConfig()
	}
	step := cfg.GetTimeStep()
	horizon := cfg.GetHorizon()
	if horizon < 0 {
		horizon = 0
	}

	steps := horizon / step
	if steps >= config.MaxSamples {
		monitoring.Logf("rollout: horizon %s at step %s exceeds %d samples, truncating", horizon, step, config.MaxSamples)
		steps = config.MaxSamples - 1
	}
	n := int(steps)
	samples := make([]Sample, 0, n+1)
	state := start
	for i := 0; i <= n; i++ {
		if i > 0 {
			state = state.Step(step)
		}
		s := newSample(time.Duration(i)*step, state, cfg)
		monitoring.Debugf("rollout t=%s %v stop=%v", s.Elapsed, s.State, s.StopPose())
		samples = append(samples, s)
	}
	return samples
}

// InFrame re-expresses samples relative to frame. Velocities are rotated into
// the frame; the frame itself is treated as stationary.
func InFrame(samples []Sample, frame kinematics2d.Pose) []Sample {
	reference := kinematics2d.KinematicsFromPose(frame, kinematics2d.ZeroVector(), 0)
	out := make([]Sample, len(samples))
	for i, s := range samples {
		stop := s.StopPose().Sub(frame)
		out[i] = Sample{
			Elapsed:         s.Elapsed,
			State:           s.State.Sub(reference),
			StopPosition:    stop.Position,
			StopOrientation: stop.Orientation,
		}
	}
	return out
}

// Reached returns the first sample whose pose matches target within the
// configured tolerances.
func Reached(samples []Sample, target kinematics2d.Pose, cfg *config.MotionConfig) (Sample, bool) {
	if cfg == nil {
		cfg = config.EmptyMotionConfig()
	}
	posTol := cfg.GetPositionTolerance()
	ortTol := cfg.GetOrientationTolerance()
	for _, s := range samples {
		if s.State.Pose().IsAtWithin(target, posTol, ortTol) {
			return s, true
		}
	}
	return Sample{}, false
}
