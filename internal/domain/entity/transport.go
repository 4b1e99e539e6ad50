package entity

// TransportMode determines which ground travel-time lookup is used
type TransportMode string

const (
	ModeDriving   TransportMode = "driving"
	ModeTransit   TransportMode = "transit"
	ModeBicycling TransportMode = "bicycling"
	ModeWalking   TransportMode = "walking"
)

var modeLabels = map[TransportMode]string{
	ModeDriving:   "Car",
	ModeTransit:   "Public Transit",
	ModeBicycling: "Bike",
	ModeWalking:   "Walk",
}

// Average straight-line speeds in km/h used by the airport prefilter
var modeSpeeds = map[TransportMode]float64{
	ModeDriving:   100,
	ModeTransit:   80,
	ModeBicycling: 20,
	ModeWalking:   6,
}

// Valid reports whether the mode is known
func (m TransportMode) Valid() bool {
	_, ok := modeLabels[m]
	return ok
}

// Label returns the user facing name of the mode
func (m TransportMode) Label() string {
	return modeLabels[m]
}

// AverageSpeedKmh returns the prefilter speed for the mode
func (m TransportMode) AverageSpeedKmh() float64 {
	return modeSpeeds[m]
}
