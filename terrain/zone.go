package terrain

import (
	"fmt"

	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/vmath"
)

// Zone is a rectangular friction override such as a sand trap
type Zone struct {
	Rect            vmath.Rect
	StaticFriction  float64
	KineticFriction float64
}

// NewZone creates a sand zone between two opposite corners with default frictions
func NewZone(a, b vmath.Vec2) Zone {
	return Zone{
		Rect:            vmath.NewRect(a, b),
		StaticFriction:  parameter.ZoneStaticFriction,
		KineticFriction: parameter.ZoneKineticFriction,
	}
}

func (z Zone) Contains(p vmath.Vec2) bool {
	return z.Rect.ContainsPoint(p)
}

func (z Zone) validate() error {
	if z.Rect.Width() <= 0 || z.Rect.Height() <= 0 {
		return fmt.Errorf("zone %v-%v has zero area: %w", z.Rect.Min, z.Rect.Max, ErrInvalidBounds)
	}
	if err := validateFriction(z.StaticFriction, z.KineticFriction); err != nil {
		return fmt.Errorf("zone %v-%v: %w", z.Rect.Min, z.Rect.Max, err)
	}
	return nil
}
