package road

import "github.com/natevvv/osm-road-export/pkg/geometry"

// Header lists the road table columns in output order.
var Header = []string{"RoadName", "From", "To", "LengthKm", "SpeedLimitKmH"}

// Record is one row of the road table.
type Record struct {
	RoadName      string  `json:"RoadName"`
	From          string  `json:"From"`
	To            string  `json:"To"`
	LengthKm      float64 `json:"LengthKm"`
	SpeedLimitKmH string  `json:"SpeedLimitKmH"`
}

// Row returns the record fields in Header order.
func (r Record) Row() []string {
	return []string{r.RoadName, r.From, r.To, geometry.FormatDecimal(r.LengthKm), r.SpeedLimitKmH}
}
