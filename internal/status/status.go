// Package status maps continuous sensor readings onto discrete
// severity bands. The classifiers are pure: fixed thresholds, no
// settings lookup, same input always yields the same band.
package status

// Severity orders the classification bands. Higher is worse.
type Severity int

const (
	Low Severity = iota
	Nominal
	Elevated
	Critical
)

// String returns the severity name used for timeline markers.
func (s Severity) String() string {
	switch s {
	case Low:
		return "low"
	case Elevated:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "normal"
	}
}

// Worse returns the more severe of a and b.
func Worse(a, b Severity) Severity {
	if a > b {
		return a
	}
	return b
}

// Status pairs a CSS class with a human-readable label for one reading.
type Status struct {
	Severity Severity
	Class    string
	Label    string
}

// Band boundaries are closed on the lower bound: a reading equal to a
// cut point falls in the higher band, so every value maps to exactly
// one band.
const (
	tempLowMax      = 4.0
	tempNominalMax  = 25.0
	tempElevatedMax = 28.0

	gasLowMax      = 50.0
	gasNominalMax  = 150.0
	gasElevatedMax = 300.0

	humidityLowMax      = 40.0
	humidityNominalMax  = 85.0
	humidityElevatedMax = 95.0
)

// Temperature classifies a temperature reading in °C.
func Temperature(v float64) Status {
	switch {
	case v < tempLowMax:
		return Status{Low, "status-low", "Too Cold"}
	case v < tempNominalMax:
		return Status{Nominal, "status-good", "Normal"}
	case v < tempElevatedMax:
		return Status{Elevated, "status-warning", "Warning"}
	default:
		return Status{Critical, "status-critical", "Critical"}
	}
}

// Gas classifies an ethylene gas reading in ppm.
func Gas(v float64) Status {
	switch {
	case v < gasLowMax:
		return Status{Low, "status-low", "Trace"}
	case v < gasNominalMax:
		return Status{Nominal, "status-good", "Normal"}
	case v < gasElevatedMax:
		return Status{Elevated, "status-warning", "Elevated"}
	default:
		return Status{Critical, "status-critical", "Critical"}
	}
}

// Humidity classifies a relative humidity reading in %.
func Humidity(v float64) Status {
	switch {
	case v < humidityLowMax:
		return Status{Low, "status-low", "Dry"}
	case v < humidityNominalMax:
		return Status{Nominal, "status-good", "Normal"}
	case v < humidityElevatedMax:
		return Status{Elevated, "status-warning", "Humid"}
	default:
		return Status{Critical, "status-critical", "Saturated"}
	}
}

// Overall combines temperature and gas into the single marker severity
// used by timeline and status indicators. The overall scale starts at
// Nominal: a Low dimension reading does not drag the marker below
// Nominal.
func Overall(temperature, gas float64) Severity {
	t := Temperature(temperature).Severity
	g := Gas(gas).Severity
	return Worse(Nominal, Worse(t, g))
}
