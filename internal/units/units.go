// Package units provides the speed and angle units accepted and reported by
// the rollout tools. Internally everything is m/s and radians.
package units

import (
	"fmt"
	"strings"

	"github.com/banshee-data/kinematics2d"
)

// Speed unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// Angle unit constants
const (
	RAD = "rad"
	DEG = "deg"
)

// ValidSpeedUnits contains all valid speed unit values
var ValidSpeedUnits = []string{MPS, MPH, KMPH, KPH}

// ValidAngleUnits contains all valid angle unit values
var ValidAngleUnits = []string{RAD, DEG}

func contains(list []string, unit string) bool {
	for _, u := range list {
		if unit == u {
			return true
		}
	}
	return false
}

// IsValidSpeed checks if the given unit is a known speed unit
func IsValidSpeed(unit string) bool {
	return contains(ValidSpeedUnits, unit)
}

// IsValidAngle checks if the given unit is a known angle unit
func IsValidAngle(unit string) bool {
	return contains(ValidAngleUnits, unit)
}

// Validate returns an error naming the accepted values when speedUnit or
// angleUnit is unknown.
func Validate(speedUnit, angleUnit string) error {
	if !IsValidSpeed(speedUnit) {
		return fmt.Errorf("invalid speed unit %q, expected one of: %s", speedUnit, strings.Join(ValidSpeedUnits, ", "))
	}
	if !IsValidAngle(angleUnit) {
		return fmt.Errorf("invalid angle unit %q, expected one of: %s", angleUnit, strings.Join(ValidAngleUnits, ", "))
	}
	return nil
}

// ConvertSpeed converts a speed from meters per second to the target units.
// Unknown units fall back to m/s.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedMPS * 2.2369362920544
	case KMPH, KPH:
		return speedMPS * 3.6
	default:
		return speedMPS
	}
}

// ToMPS converts a speed in the given units to meters per second.
func ToMPS(speed float64, fromUnits string) float64 {
	switch fromUnits {
	case MPH:
		return speed / 2.2369362920544
	case KMPH, KPH:
		return speed / 3.6
	default:
		return speed
	}
}

// ConvertAngle converts radians to the target units. Unknown units fall back
// to radians.
func ConvertAngle(rad float64, targetUnits string) float64 {
	if targetUnits == DEG {
		return kinematics2d.DegFromRad(rad)
	}
	return rad
}

// ToRadians converts an angle (or angular rate) in the given units to radians.
func ToRadians(angle float64, fromUnits string) float64 {
	if fromUnits == DEG {
		return kinematics2d.RadFromDeg(angle)
	}
	return angle
}
