package road

import "math"

// Outcome tells whether Extract produced a record, and if not, which check
// rejected the feature.
type Outcome int

const (
	Accepted Outcome = iota
	RejectedClassification
	RejectedName
	RejectedGeometry
	OutcomeCount
)

var outcomeNames = []string{"accepted", "not_drivable", "unnamed", "not_line"}

func (o Outcome) String() string {
	if o < 0 || o >= OutcomeCount {
		return "invalid"
	}
	return outcomeNames[o]
}

// Outcomes lists every Outcome value in order.
func Outcomes() []Outcome {
	outcomes := make([]Outcome, OutcomeCount)
	for i := range outcomes {
		outcomes[i] = Outcome(i)
	}
	return outcomes
}

// Extract turns a feature into a road record. The record is only meaningful
// when the outcome is Accepted.
func Extract(f Feature) (Record, Outcome) {
	highway := f.Highway()
	if !IsDrivable(highway) {
		return Record{}, RejectedClassification
	}

	name := f.Name()
	if name == "" {
		return Record{}, RejectedName
	}

	line, ok := f.Geometry.(LineGeometry)
	if !ok {
		return Record{}, RejectedGeometry
	}
	origin, ok := line.Points.First()
	if !ok {
		return Record{}, RejectedGeometry
	}
	destination, _ := line.Points.Last()

	speed := f.MaxSpeed()
	if speed == "" {
		speed = DefaultSpeed(highway)
	}

	return Record{
		RoadName:      name,
		From:          origin.String(),
		To:            destination.String(),
		LengthKm:      RoundKm(line.Points.Length()),
		SpeedLimitKmH: speed,
	}, Accepted
}

// RoundKm rounds a length to whole meters, halves away from zero.
func RoundKm(km float64) float64 {
	return math.Round(km*1000) / 1000
}
