package json

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/thermo"
)

type pointDTO struct {
	P float64 `json:"P"`
	H float64 `json:"H"`
}

type criticalDTO struct {
	T float64 `json:"T"`
	P float64 `json:"P"`
	H float64 `json:"H"`
}

type domeDTO struct {
	Liquid   []pointDTO  `json:"liquid"`
	Vapor    []pointDTO  `json:"vapor"`
	Critical criticalDTO `json:"critical"`
}

// domeEnvelope is the v1 file format of a saved dome.
type domeEnvelope struct {
	Version int     `json:"version"`
	Fluid   string  `json:"fluid"`
	Dome    domeDTO `json:"dome"`
}

// MarshalDome serializes d as the dome API response.
func MarshalDome(d thermo.Dome) ([]byte, error) {
	return json.Marshal(toDomeDTO(d))
}

// UnmarshalDome is the inverse of MarshalDome.
func UnmarshalDome(data []byte) (thermo.Dome, error) {
	var dto domeDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return thermo.Dome{}, fmt.Errorf("unmarshal dome: %w", err)
	}
	return fromDomeDTO(dto), nil
}

// SaveDome writes the dome of fluid to a JSON file, creating parent
// directories as needed.
func SaveDome(path, fluid string, d thermo.Dome) error {
	data, err := json.MarshalIndent(domeEnvelope{Version: 1, Fluid: fluid, Dome: toDomeDTO(d)}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return writeFile(path, data)
}

// LoadDome reads a dome saved by SaveDome and returns it with its fluid.
func LoadDome(path string) (string, thermo.Dome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", thermo.Dome{}, fmt.Errorf("read file: %w", err)
	}
	var env domeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", thermo.Dome{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return "", thermo.Dome{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	return env.Fluid, fromDomeDTO(env.Dome), nil
}

func toDomeDTO(d thermo.Dome) domeDTO {
	return domeDTO{
		Liquid: toPoints(d.Liquid),
		Vapor:  toPoints(d.Vapor),
		Critical: criticalDTO{
			T: d.Critical.Temperature,
			P: d.Critical.Pressure,
			H: d.Critical.Enthalpy,
		},
	}
}

func fromDomeDTO(dto domeDTO) thermo.Dome {
	return thermo.Dome{
		Liquid: fromPoints(dto.Liquid),
		Vapor:  fromPoints(dto.Vapor),
		Critical: thermo.CriticalPoint{
			Temperature: dto.Critical.T,
			Pressure:    dto.Critical.P,
			Enthalpy:    dto.Critical.H,
		},
	}
}

// toPoints never returns nil so empty branches encode as [].
func toPoints(points []thermo.SaturationPoint) []pointDTO {
	out := make([]pointDTO, len(points))
	for i, p := range points {
		out[i] = pointDTO{P: p.Pressure, H: p.Enthalpy}
	}
	return out
}

func fromPoints(points []pointDTO) []thermo.SaturationPoint {
	out := make([]thermo.SaturationPoint, len(points))
	for i, p := range points {
		out[i] = thermo.SaturationPoint{Pressure: p.P, Enthalpy: p.H}
	}
	return out
}
