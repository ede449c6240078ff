package ranges

// Parameter identifies a measured telemetry field
type Parameter string

const (
	PH         Parameter = "pH"
	EC         Parameter = "ec"
	WaterTemp  Parameter = "waterTemp"
	AirTemp    Parameter = "airTemp"
	Humidity   Parameter = "humidity"
	LightLevel Parameter = "lightLevel"
)

// Condition is the side of a range a value fell out of
type Condition string

const (
	Low  Condition = "low"
	High Condition = "high"
)

type descriptor struct {
	displayName string
	low         string
	high        string
}

// descriptors holds display names and the gendered Spanish adjective used for each side.
var descriptors = map[Parameter]descriptor{
	PH:         {displayName: "pH", low: "bajo", high: "alto"},
	EC:         {displayName: "EC", low: "baja", high: "alta"},
	WaterTemp:  {displayName: "Temperatura del agua", low: "baja", high: "alta"},
	AirTemp:    {displayName: "Temperatura del aire", low: "baja", high: "alta"},
	Humidity:   {displayName: "Humedad", low: "baja", high: "alta"},
	LightLevel: {displayName: "Nivel de luz", low: "bajo", high: "alto"},
}

// Bounded lists the range-checked parameters in evaluation order.
// lightLevel is intentionally absent.
func Bounded() []Parameter {
	return []Parameter{PH, EC, WaterTemp, AirTemp, Humidity}
}

// All lists every measured parameter, used for statistics.
func All() []Parameter {
	return []Parameter{PH, EC, WaterTemp, AirTemp, Humidity, LightLevel}
}

// DisplayName returns the human-readable name used in alert messages
func (p Parameter) DisplayName() string {
	if d, ok := descriptors[p]; ok {
		return d.displayName
	}
	return string(p)
}

// Label returns the localized adjective for the condition, agreeing in gender with the parameter
func (p Parameter) Label(c Condition) string {
	d, ok := descriptors[p]
	if !ok {
		return string(c)
	}
	if c == Low {
		return d.low
	}
	return d.high
}

func (p Parameter) String() string {
	return string(p)
}
