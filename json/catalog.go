package json

import (
	"encoding/json"

	"github.com/fwojciec/thermo/catalog"
)

type catalogDTO struct {
	Fluids   []string `json:"fluids"`
	Mixtures []string `json:"mixtures"`
}

// MarshalCatalog serializes c. Empty lists are encoded as [].
func MarshalCatalog(c catalog.Catalog) ([]byte, error) {
	dto := catalogDTO{Fluids: c.Fluids, Mixtures: c.Mixtures}
	if dto.Fluids == nil {
		dto.Fluids = []string{}
	}
	if dto.Mixtures == nil {
		dto.Mixtures = []string{}
	}
	return json.Marshal(dto)
}
