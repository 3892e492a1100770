package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/kinematics2d"
)

// DefaultConfigPath is the path to the canonical motion defaults file.
const DefaultConfigPath = "config/motion.defaults.json"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid motion config")

// MaxSamples bounds the number of samples one rollout may produce, counting
// the initial state.
const MaxSamples = 100000

const (
	defaultMaxLinearDecel  = 2.0 // m/s^2
	defaultMaxAngularDecel = 3.0 // rad/s^2
	defaultTimeStep        = 100 * time.Millisecond
	defaultHorizon         = 2 * time.Second
)

// MotionConfig holds the braking limits and prediction settings used by
// rollouts. Fields left out of the JSON fall back to defaults through the
// Get* methods, so partial configs are safe.
type MotionConfig struct {
	MaxLinearDecel  *float64 `json:"max_linear_decel,omitempty"`  // m/s^2
	MaxAngularDecel *float64 `json:"max_angular_decel,omitempty"` // rad/s^2

	TimeStep *string `json:"time_step,omitempty"` // duration string like "100ms"
	Horizon  *string `json:"horizon,omitempty"`   // duration string like "2s"

	PositionTolerance    *float64 `json:"position_tolerance,omitempty"`
	OrientationTolerance *float64 `json:"orientation_tolerance,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// EmptyMotionConfig returns a MotionConfig with all fields set to nil.
func EmptyMotionConfig() *MotionConfig {
	return &MotionConfig{}
}

// DefaultMotionConfig returns a MotionConfig with every field populated with
// its default. It matches DefaultConfigPath.
func DefaultMotionConfig() *MotionConfig {
	return &MotionConfig{
		MaxLinearDecel:       ptrFloat64(defaultMaxLinearDecel),
		MaxAngularDecel:      ptrFloat64(defaultMaxAngularDecel),
		TimeStep:             ptrString(defaultTimeStep.String()),
		Horizon:              ptrString(defaultHorizon.String()),
		PositionTolerance:    ptrFloat64(kinematics2d.Epsilon),
		OrientationTolerance: ptrFloat64(kinematics2d.Epsilon),
	}
}

// LoadMotionConfig loads a MotionConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadMotionConfig(path string) (*MotionConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyMotionConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values that are set. Decelerations and the time step
// must be strictly positive; stopping predictions divide by them.
func (c *MotionConfig) Validate() error {
	if c.MaxLinearDecel != nil && !(*c.MaxLinearDecel > 0) {
		return fmt.Errorf("%w: max_linear_decel must be positive, got %f", ErrInvalidConfig, *c.MaxLinearDecel)
	}
	if c.MaxAngularDecel != nil && !(*c.MaxAngularDecel > 0) {
		return fmt.Errorf("%w: max_angular_decel must be positive, got %f", ErrInvalidConfig, *c.MaxAngularDecel)
	}

	var step, horizon time.Duration
	if c.TimeStep != nil && *c.TimeStep != "" {
		d, err := time.ParseDuration(*c.TimeStep)
		if err != nil {
			return fmt.Errorf("%w: time_step '%s': %w", ErrInvalidConfig, *c.TimeStep, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: time_step must be positive, got %s", ErrInvalidConfig, d)
		}
		step = d
	}
	if c.Horizon != nil && *c.Horizon != "" {
		d, err := time.ParseDuration(*c.Horizon)
		if err != nil {
			return fmt.Errorf("%w: horizon '%s': %w", ErrInvalidConfig, *c.Horizon, err)
		}
		horizon = d
	}
	if step == 0 {
		step = defaultTimeStep
	}
	if horizon != 0 && horizon < step {
		return fmt.Errorf("%w: horizon %s is shorter than time_step %s", ErrInvalidConfig, horizon, step)
	}
	if horizon == 0 {
		horizon = defaultHorizon
	}
	if steps := horizon / step; steps >= MaxSamples {
		return fmt.Errorf("%w: horizon %s at time_step %s needs %d samples (max %d)",
			ErrInvalidConfig, horizon, step, int64(steps)+1, MaxSamples)
	}

	if c.PositionTolerance != nil && *c.PositionTolerance < 0 {
		return fmt.Errorf("%w: position_tolerance must be non-negative, got %g", ErrInvalidConfig, *c.PositionTolerance)
	}
	if c.OrientationTolerance != nil && *c.OrientationTolerance < 0 {
		return fmt.Errorf("%w: orientation_tolerance must be non-negative, got %g", ErrInvalidConfig, *c.OrientationTolerance)
	}

	return nil
}

// GetMaxLinearDecel returns the max_linear_decel value or the default.
func (c *MotionConfig) GetMaxLinearDecel() float64 {
	if c.MaxLinearDecel == nil {
		return defaultMaxLinearDecel
	}
	return *c.MaxLinearDecel
}

// GetMaxAngularDecel returns the max_angular_decel value or the default.
func (c *MotionConfig) GetMaxAngularDecel() float64 {
	if c.MaxAngularDecel == nil {
		return defaultMaxAngularDecel
	}
	return *c.MaxAngularDecel
}

// GetTimeStep parses and returns the TimeStep as a time.Duration.
func (c *MotionConfig) GetTimeStep() time.Duration {
	if c.TimeStep == nil || *c.TimeStep == "" {
		return defaultTimeStep
	}
	d, err := time.ParseDuration(*c.TimeStep)
	if err != nil || d <= 0 {
		return defaultTimeStep
	}
	return d
}

// GetHorizon parses and returns the Horizon as a time.Duration.
func (c *MotionConfig) GetHorizon() time.Duration {
	if c.Horizon == nil || *c.Horizon == "" {
		return defaultHorizon
	}
	d, err := time.ParseDuration(*c.Horizon)
	if err != nil {
		return defaultHorizon
	}
	return d
}

// GetPositionTolerance returns the position_tolerance value or the default.
func (c *MotionConfig) GetPositionTolerance() float64 {
	if c.PositionTolerance == nil {
		return kinematics2d.Epsilon
	}
	return *c.PositionTolerance
}

// GetOrientationTolerance returns the orientation_tolerance value or the default.
func (c *MotionConfig) GetOrientationTolerance() float64 {
	if c.OrientationTolerance == nil {
		return kinematics2d.Epsilon
	}
	return *c.OrientationTolerance
}
