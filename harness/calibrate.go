package harness

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// DefaultCalibrationTarget is the shortest calibration pass that ends the
// search.
const DefaultCalibrationTarget = time.Second

// Calibrator finds an iteration count whose measured run lasts roughly ten
// times the calibration target.
type Calibrator struct {
	// Measure runs the given number of iterations and returns the elapsed
	// time.
	Measure func(iterations uint32) time.Duration

	// Target ends the search. Default: 1s.
	Target time.Duration

	Logger *zap.Logger
}

// Calibrate starts from one iteration and multiplies the count by ten until
// a pass lasts at least Target, then scales the count by the elapsed time
// of that pass.
func (c *Calibrator) Calibrate() uint32 {
	target := c.Target
	if target <= 0 {
		target = DefaultCalibrationTarget
	}
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}

	iterations := uint32(1)
	var elapsed time.Duration
	for elapsed < target {
		if iterations > math.MaxUint32/10 {
			log.Warn("calibration stopped at the iteration limit",
				zap.Uint32("iterations", iterations))
			return iterations
		}

		iterations *= 10
		elapsed = c.Measure(iterations)

		log.Debug("calibration pass",
			zap.Uint32("iterations", iterations),
			zap.Duration("elapsed", elapsed))
	}

	final := Scale(iterations, elapsed.Seconds())
	log.Info("calibrated", zap.Uint32("iterations", final))

	return final
}

// Scale multiplies iterations by 1 + 10/floor(seconds). A pass shorter
// than one second counts as one second.
func Scale(iterations uint32, seconds float64) uint32 {
	divisor := uint32(math.Floor(seconds))
	if divisor == 0 {
		divisor = 1
	}
	return iterations * (1 + 10/divisor)
}
