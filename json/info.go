package json

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/thermo"
)

type triplePointDTO struct {
	T *float64 `json:"T"`
	P *float64 `json:"P"`
}

type infoDTO struct {
	SafetyClass         *string         `json:"safety_class"`
	GWP                 *float64        `json:"gwp"`
	ODP                 *float64        `json:"odp"`
	CriticalTemperature *float64        `json:"critical_temperature"`
	NormalBoilingPoint  *float64        `json:"normal_boiling_point"`
	CAS                 *string         `json:"cas_number"`
	TriplePoint         *triplePointDTO `json:"triple_point"`
	MolecularWeight     *float64        `json:"molecular_weight"`
	K                   *float64        `json:"k_value"`
}

// MarshalInfo serializes reference properties. Missing values are null.
func MarshalInfo(info thermo.FluidInfo) ([]byte, error) {
	dto := infoDTO{
		SafetyClass:         info.SafetyClass,
		GWP:                 info.GWP,
		ODP:                 info.ODP,
		CriticalTemperature: info.CriticalTemperature,
		NormalBoilingPoint:  info.NormalBoilingPoint,
		CAS:                 info.CAS,
		MolecularWeight:     info.MolarMass,
		K:                   info.AdiabaticIndex,
	}
	if tp := info.TriplePoint; tp != nil {
		dto.TriplePoint = &triplePointDTO{T: tp.Temperature, P: tp.Pressure}
	}
	return json.Marshal(dto)
}

// UnmarshalInfo is the inverse of MarshalInfo.
func UnmarshalInfo(data []byte) (thermo.FluidInfo, error) {
	var dto infoDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return thermo.FluidInfo{}, fmt.Errorf("unmarshal info: %w", err)
	}
	info := thermo.FluidInfo{
		SafetyClass:         dto.SafetyClass,
		GWP:                 dto.GWP,
		ODP:                 dto.ODP,
		CriticalTemperature: dto.CriticalTemperature,
		NormalBoilingPoint:  dto.NormalBoilingPoint,
		CAS:                 dto.CAS,
		MolarMass:           dto.MolecularWeight,
		AdiabaticIndex:      dto.K,
	}
	if dto.TriplePoint != nil {
		info.TriplePoint = &thermo.TriplePoint{Temperature: dto.TriplePoint.T, Pressure: dto.TriplePoint.P}
	}
	return info, nil
}
