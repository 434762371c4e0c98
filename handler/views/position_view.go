package views

import (
	"redbank/core"
)

// Position account snapshot plus its health evaluation
type Position struct {
	core.Position
	Health *core.Health `json:"health"`
}
