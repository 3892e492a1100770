// Command k2d-rollout predicts a body's motion over a short horizon and
// reports where it would stop if it braked at the configured limits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/banshee-data/kinematics2d"
	"github.com/banshee-data/kinematics2d/internal/config"
	"github.com/banshee-data/kinematics2d/internal/monitoring"
	"github.com/banshee-data/kinematics2d/internal/rollout"
	"github.com/banshee-data/kinematics2d/internal/units"
	"github.com/banshee-data/kinematics2d/internal/version"
)

// Options holds the command-line settings.
type Options struct {
	ConfigPath string

	X, Y   float64
	Theta  float64 // AngleUnits
	VX, VY float64 // SpeedUnits
	Omega  float64 // AngleUnits per second

	SpeedUnits string
	AngleUnits string

	PNGPath     string
	HTMLPath    string
	Verbose     bool
	ShowVersion bool
}

func parseFlags(fs *flag.FlagSet, args []string) (Options, error) {
	var o Options
	fs.StringVar(&o.ConfigPath, "config", "", "Motion config JSON (defaults used when empty)")
	fs.Float64Var(&o.X, "x", 0, "Initial X position (m)")
	fs.Float64Var(&o.Y, "y", 0, "Initial Y position (m)")
	fs.Float64Var(&o.Theta, "theta", 0, "Initial orientation (angle units)")
	fs.Float64Var(&o.VX, "vx", 0, "Initial X velocity (speed units)")
	fs.Float64Var(&o.VY, "vy", 0, "Initial Y velocity (speed units)")
	fs.Float64Var(&o.Omega, "omega", 0, "Initial rotation rate (angle units per second)")
	fs.StringVar(&o.SpeedUnits, "speed-units", units.MPS, "Speed units: "+strings.Join(units.ValidSpeedUnits, ", "))
	fs.StringVar(&o.AngleUnits, "angle-units", units.DEG, "Angle units: "+strings.Join(units.ValidAngleUnits, ", "))
	fs.StringVar(&o.PNGPath, "png", "", "Write a plot of the rollout to this file")
	fs.StringVar(&o.HTMLPath, "html", "", "Write an interactive chart of the rollout to this file")
	fs.BoolVar(&o.Verbose, "v", false, "Log every sample")
	fs.BoolVar(&o.ShowVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, units.Validate(o.SpeedUnits, o.AngleUnits)
}

// Start returns the initial state described by the options.
func (o Options) Start() kinematics2d.Kinematics {
	return kinematics2d.NewKinematics(
		kinematics2d.NewVector(o.X, o.Y),
		units.ToRadians(o.Theta, o.AngleUnits),
		kinematics2d.NewVector(units.ToMPS(o.VX, o.SpeedUnits), units.ToMPS(o.VY, o.SpeedUnits)),
		units.ToRadians(o.Omega, o.AngleUnits),
	)
}

func loadConfig(path string) (*config.MotionConfig, error) {
	if path == "" {
		return config.DefaultMotionConfig(), nil
	}
	return config.LoadMotionConfig(path)
}

func run(o Options) error {
	monitoring.SetVerbose(o.Verbose)

	cfg, err := loadConfig(o.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	start := o.Start()
	monitoring.Logf("start %v (speed %.2f %s)", start,
		units.ConvertSpeed(start.Velocity.Magnitude(), o.SpeedUnits), o.SpeedUnits)
	monitoring.Logf("limits linear=%.3f m/s^2 angular=%.3f rad/s^2 step=%s horizon=%s",
		cfg.GetMaxLinearDecel(), cfg.GetMaxAngularDecel(), cfg.GetTimeStep(), cfg.GetHorizon())

	samples := rollout.Run(start, cfg)
	if len(samples) == 0 {
		return rollout.ErrNoSamples
	}
	last := samples[len(samples)-1]
	monitoring.Logf("after %s: %v", last.Elapsed, last.State.Pose().Capped())
	monitoring.Logf("braking now stops at %v (%.3f m, %.3f %s)",
		samples[0].StopPose().Capped(),
		samples[0].StopPosition.Sub(start.Position).Magnitude(),
		units.ConvertAngle(samples[0].StopOrientation-start.Orientation, o.AngleUnits), o.AngleUnits)

	if o.PNGPath != "" {
		if err := rollout.WritePNG(o.PNGPath, samples); err != nil {
			return err
		}
		monitoring.Logf("wrote %s", o.PNGPath)
	}

	if o.HTMLPath != "" {
		if err := writeHTML(o.HTMLPath, samples); err != nil {
			return err
		}
		monitoring.Logf("wrote %s", o.HTMLPath)
	}

	return nil
}

func writeHTML(path string, samples []rollout.Sample) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return rollout.RenderHTML(f, samples)
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("invalid flags: %v", err)
	}

	if opts.ShowVersion {
		fmt.Println(version.String("k2d-rollout"))
		return
	}

	if err := run(opts); err != nil {
		log.Fatalf("rollout failed: %v", err)
	}
}
