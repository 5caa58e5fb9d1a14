package json

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/thermo"
)

// propertiesDTO is the body of a point query response. Undefined properties
// are encoded as null, never omitted.
type propertiesDTO struct {
	T  *float64 `json:"T"`
	P  *float64 `json:"P"`
	D  *float64 `json:"D"`
	H  *float64 `json:"H"`
	S  *float64 `json:"S"`
	Q  *float64 `json:"Q"`
	CP *float64 `json:"CP"`
	CV *float64 `json:"CV"`
	W  *float64 `json:"W"`
}

// MarshalProperties serializes p with the single-letter keys of the API.
func MarshalProperties(p thermo.Properties) ([]byte, error) {
	return json.Marshal(propertiesDTO{
		T:  p.Temperature,
		P:  p.Pressure,
		D:  p.Density,
		H:  p.Enthalpy,
		S:  p.Entropy,
		Q:  p.Quality,
		CP: p.Cp,
		CV: p.Cv,
		W:  p.SoundSpeed,
	})
}

// UnmarshalProperties is the inverse of MarshalProperties.
func UnmarshalProperties(data []byte) (thermo.Properties, error) {
	var dto propertiesDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return thermo.Properties{}, fmt.Errorf("unmarshal properties: %w", err)
	}
	return thermo.Properties{
		Temperature: dto.T,
		Pressure:    dto.P,
		Density:     dto.D,
		Enthalpy:    dto.H,
		Entropy:     dto.S,
		Quality:     dto.Q,
		Cp:          dto.CP,
		Cv:          dto.CV,
		SoundSpeed:  dto.W,
	}, nil
}
