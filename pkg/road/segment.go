package road

type RoadType int

const (
	Unknown RoadType = iota
	Motorway
	Trunk
	Primary
	Secondary
	Tertiary
	Unclassified
	Residential
	LivingStreet
	Service
)

var roadTypeTags = []string{"", "motorway", "trunk", "primary", "secondary", "tertiary", "unclassified", "residential", "living_street", "service"}

func (r RoadType) String() string {
	return []string{"Unknown", "Motorway", "Trunk", "Primary", "Secondary", "Tertiary", "Unclassified", "Residential", "LivingStreet", "Service"}[r]
}

// Tag returns the OSM highway value of the road type.
func (r RoadType) Tag() string {
	return roadTypeTags[r]
}

// Drivable reports whether roads of this type are kept in the road table.
func (r RoadType) Drivable() bool {
	switch r {
	case Motorway, Trunk, Primary, Secondary, Tertiary, Unclassified, Residential, LivingStreet:
		return true
	default:
		return false
	}
}

// ParseRoadType maps an OSM highway value to a RoadType. Matching is exact
// and case-sensitive.
func ParseRoadType(highway string) RoadType {
	switch highway {
	case "motorway":
		return Motorway
	case "trunk":
		return Trunk
	case "primary":
		return Primary
	case "secondary":
		return Secondary
	case "tertiary":
		return Tertiary
	case "unclassified":
		return Unclassified
	case "residential":
		return Residential
	case "living_street":
		return LivingStreet
	case "service":
		return Service
	default:
		return Unknown
	}
}

func IsDrivable(highway string) bool {
	return ParseRoadType(highway).Drivable()
}

// DefaultSpeed returns the speed limit in km/h assumed for a highway value
// without a maxspeed tag. The table only lists some classes; unclassified
// and living_street take the fallback like any unknown value.
func DefaultSpeed(highway string) string {
	switch highway {
	case "motorway":
		return "90"
	case "trunk":
		return "70"
	case "primary":
		return "60"
	case "secondary":
		return "50"
	case "tertiary":
		return "50"
	case "residential":
		return "30"
	case "service":
		return "20"
	default:
		return "50"
	}
}
