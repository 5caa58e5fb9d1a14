package json

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/thermo"
)

// callDTO is a backend call on the wire. Fractions carries only the
// leading entries; the rest are zero.
type callDTO struct {
	Fluid     string    `json:"fluid"`
	Fractions []float64 `json:"fractions"`
	Input     string    `json:"input"`
	Outputs   []string  `json:"outputs"`
	Flag      int       `json:"flag"`
	A         float64   `json:"a"`
	B         float64   `json:"b"`
}

type replyDTO struct {
	Output  []float64 `json:"output"`
	Text    string    `json:"text,omitempty"`
	Code    int       `json:"code"`
	Message string    `json:"message,omitempty"`
}

// MarshalCall serializes c for the remote backend protocol.
func MarshalCall(c thermo.Call) ([]byte, error) {
	n := len(c.Fractions)
	for n > 0 && c.Fractions[n-1] == 0 {
		n--
	}
	return json.Marshal(callDTO{
		Fluid:     c.Fluid,
		Fractions: c.Fractions[:n],
		Input:     c.Input,
		Outputs:   c.Outputs,
		Flag:      c.Flag,
		A:         c.A,
		B:         c.B,
	})
}

// UnmarshalCall is the inverse of MarshalCall. More than
// thermo.MaxComponents fractions is an error wrapping thermo.ErrInvalidInput.
func UnmarshalCall(data []byte) (thermo.Call, error) {
	var dto callDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return thermo.Call{}, fmt.Errorf("unmarshal call: %v: %w", err, thermo.ErrInvalidInput)
	}
	if len(dto.Fractions) > thermo.MaxComponents {
		return thermo.Call{}, fmt.Errorf("unmarshal call: %d fractions exceeds maximum of %d: %w",
			len(dto.Fractions), thermo.MaxComponents, thermo.ErrInvalidInput)
	}
	c := thermo.Call{
		Fluid:   dto.Fluid,
		Input:   dto.Input,
		Outputs: dto.Outputs,
		Flag:    dto.Flag,
		A:       dto.A,
		B:       dto.B,
	}
	copy(c.Fractions[:], dto.Fractions)
	return c, nil
}

// MarshalReply serializes r for the remote backend protocol.
func MarshalReply(r thermo.Reply) ([]byte, error) {
	return json.Marshal(replyDTO{Output: r.Output, Text: r.Text, Code: r.Code, Message: r.Message})
}

// UnmarshalReply is the inverse of MarshalReply.
func UnmarshalReply(data []byte) (thermo.Reply, error) {
	var dto replyDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return thermo.Reply{}, fmt.Errorf("unmarshal reply: %w", err)
	}
	return thermo.Reply{Output: dto.Output, Text: dto.Text, Code: dto.Code, Message: dto.Message}, nil
}
