package model

import (
	"encoding/json"
	"fmt"
)

// Body identifies a tracked celestial body. The set is closed: every body
// carries exactly one position strategy, so adding a body means adding a
// constant here and a case in Strategy, nothing else.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	NorthNode
	SouthNode
	Lilith
	Chiron
	Ceres
	Pallas
	Vesta
)

// Strategy describes how a body's position is computed.
type Strategy int

const (
	// StrategySolar uses the closed-form solar series (mean anomaly +
	// equation of center).
	StrategySolar Strategy = iota
	// StrategyLunar uses the low-order lunar periodic series.
	StrategyLunar
	// StrategyKepler propagates two-body Keplerian elements.
	StrategyKepler
	// StrategyLinear is a pure linear-rate mathematical point (nodes, Lilith).
	StrategyLinear
)

// AllBodies lists every tracked body in canonical order.
var AllBodies = []Body{
	Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto,
	NorthNode, SouthNode, Lilith, Chiron, Ceres, Pallas, Vesta,
}

// Strategy returns the position-calculation strategy for the body.
func (b Body) Strategy() Strategy {
	switch b {
	case Sun:
		return StrategySolar
	case Moon:
		return StrategyLunar
	case NorthNode, SouthNode, Lilith:
		return StrategyLinear
	default:
		return StrategyKepler
	}
}

// Valid reports whether b is one of the tracked bodies.
func (b Body) Valid() bool {
	return b >= Sun && b <= Vesta
}

func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	case Mercury:
		return "mercury"
	case Venus:
		return "venus"
	case Mars:
		return "mars"
	case Jupiter:
		return "jupiter"
	case Saturn:
		return "saturn"
	case Uranus:
		return "uranus"
	case Neptune:
		return "neptune"
	case Pluto:
		return "pluto"
	case NorthNode:
		return "north_node"
	case SouthNode:
		return "south_node"
	case Lilith:
		return "lilith"
	case Chiron:
		return "chiron"
	case Ceres:
		return "ceres"
	case Pallas:
		return "pallas"
	case Vesta:
		return "vesta"
	default:
		return "unknown"
	}
}

// BodyFromString maps a body name back to its constant. The second return
// is false for names outside the tracked set.
func BodyFromString(s string) (Body, bool) {
	for _, b := range AllBodies {
		if b.String() == s {
			return b, true
		}
	}
	return Body(-1), false
}

// MarshalJSON serializes the body as its name so API payloads and config
// files stay readable.
func (b Body) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts a body name.
func (b *Body) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := BodyFromString(s)
	if !ok {
		return fmt.Errorf("unknown body %q", s)
	}
	*b = parsed
	return nil
}
