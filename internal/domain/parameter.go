package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownParameter is returned when a parameter name is not supported.
var ErrUnknownParameter = errors.New("unknown parameter")

// ErrMissingReading is returned when a record has no value for the requested parameter.
var ErrMissingReading = errors.New("missing reading")

// Parameter identifies the quantity a view renders.
type Parameter int

const (
	ParameterAQI Parameter = iota + 1
	ParameterNO2
	ParameterO3
	ParameterAOD
)

var parameterNames = map[Parameter]string{
	ParameterAQI: "aqi",
	ParameterNO2: "no2",
	ParameterO3:  "o3",
	ParameterAOD: "aod",
}

// Parameters lists every supported parameter in display order.
func Parameters() []Parameter {
	return []Parameter{ParameterAQI, ParameterNO2, ParameterO3, ParameterAOD}
}

// ParseParameter resolves a case-insensitive parameter name such as "no2".
func ParseParameter(s string) (Parameter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range parameterNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, s)
}

func (p Parameter) String() string {
	if name, ok := parameterNames[p]; ok {
		return name
	}
	return fmt.Sprintf("parameter(%d)", int(p))
}

// Valid reports whether p is one of the supported parameters.
func (p Parameter) Valid() bool {
	_, ok := parameterNames[p]
	return ok
}

// Max is the reading treated as full intensity for color and normalization.
func (p Parameter) Max() float64 {
	switch p {
	case ParameterAQI:
		return 300
	case ParameterNO2:
		return 60
	case ParameterO3:
		return 150
	case ParameterAOD:
		return 1.5
	default:
		return 100
	}
}

// Sample reads the parameter from a TEMPO sample. AQI is not part of a
// TEMPO retrieval and reports false.
func (p Parameter) Sample(s TempoSample) (float64, bool) {
	switch p {
	case ParameterNO2:
		return s.NO2, true
	case ParameterO3:
		return s.O3, true
	case ParameterAOD:
		return s.AOD, true
	default:
		return 0, false
	}
}

// Record reads the parameter from a raw wire record.
func (p Parameter) Record(r RawRecord) (float64, bool) {
	var v *float64
	switch p {
	case ParameterAQI:
		v = r.AQI
	case ParameterNO2:
		v = r.NO2
	case ParameterO3:
		v = r.O3
	case ParameterAOD:
		v = r.AOD
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

func (p Parameter) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownParameter, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Parameter) UnmarshalText(b []byte) error {
	parsed, err := ParseParameter(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
