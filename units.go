package thermo

// Public units follow the library's DEFAULT set: P [kPa], D [mol/dm³].
// Backend calls use MOLAR BASE SI: P [Pa], D [mol/m³]. Temperature [K],
// molar enthalpy [J/mol], molar entropy and heat capacities [J/(mol·K)],
// quality and speed of sound [m/s] are the same in both.
const (
	pressureFactor = 1000.0 // Pa per kPa
	densityFactor  = 1000.0 // (mol/m³) per (mol/dm³)
)

// PressureToBackend converts kPa to Pa.
func PressureToBackend(kPa float64) float64 { return kPa * pressureFactor }

// PressureToPublic converts Pa to kPa.
func PressureToPublic(pa float64) float64 { return pa / pressureFactor }

// DensityToBackend converts mol/dm³ to mol/m³.
func DensityToBackend(v float64) float64 { return v * densityFactor }

// DensityToPublic converts mol/m³ to mol/dm³.
func DensityToPublic(v float64) float64 { return v / densityFactor }

// toBackend converts a value tagged with a state-variable code.
func toBackend(tag byte, v float64) float64 {
	switch tag {
	case TagPressure:
		return PressureToBackend(v)
	case TagDensity:
		return DensityToBackend(v)
	default:
		return v
	}
}
