package terrain

import (
	"math"

	"github.com/lixenwraith/golf-sim/parameter"
)

// HeightFunction is the surface z = h(x, y) with its first partial derivatives
type HeightFunction interface {
	HeightAt(x, y float64) float64
	XDerivativeAt(x, y float64) float64
	YDerivativeAt(x, y float64) float64
}

// Flat is a constant-height surface
type Flat struct {
	Height float64
}

func (f Flat) HeightAt(_, _ float64) float64      { return f.Height }
func (f Flat) XDerivativeAt(_, _ float64) float64 { return 0 }
func (f Flat) YDerivativeAt(_, _ float64) float64 { return 0 }

// Plane is h = A·x + B·y + C
type Plane struct {
	A, B, C float64
}

func (p Plane) HeightAt(x, y float64) float64      { return p.A*x + p.B*y + p.C }
func (p Plane) XDerivativeAt(_, _ float64) float64 { return p.A }
func (p Plane) YDerivativeAt(_, _ float64) float64 { return p.B }

// Wave is h = Amplitude·sin(KX·x + KY·y) + Offset
type Wave struct {
	Amplitude float64
	KX, KY    float64
	Offset    float64
}

func (w Wave) HeightAt(x, y float64) float64 {
	return w.Amplitude*math.Sin(w.KX*x+w.KY*y) + w.Offset
}

func (w Wave) XDerivativeAt(x, y float64) float64 {
	return w.Amplitude * w.KX * math.Cos(w.KX*x+w.KY*y)
}

func (w Wave) YDerivativeAt(x, y float64) float64 {
	return w.Amplitude * w.KY * math.Cos(w.KX*x+w.KY*y)
}

// Bump is a Gaussian hill of peak Height centered at (X, Y) on top of Offset
// h = Height·exp(-((x-X)² + (y-Y)²) / (2·Sigma²)) + Offset
type Bump struct {
	Height float64
	X, Y   float64
	Sigma  float64
	Offset float64
}

func (b Bump) gauss(x, y float64) float64 {
	dx, dy := x-b.X, y-b.Y
	return b.Height * math.Exp(-(dx*dx+dy*dy)/(2*b.Sigma*b.Sigma))
}

func (b Bump) HeightAt(x, y float64) float64 { return b.gauss(x, y) + b.Offset }

func (b Bump) XDerivativeAt(x, y float64) float64 {
	return -(x - b.X) / (b.Sigma * b.Sigma) * b.gauss(x, y)
}

func (b Bump) YDerivativeAt(x, y float64) float64 {
	return -(y - b.Y) / (b.Sigma * b.Sigma) * b.gauss(x, y)
}

// Func wraps an arbitrary height function, derivatives use central differences
type Func struct {
	F    func(x, y float64) float64
	Step float64
}

// NewFunc wraps f with the default difference step
func NewFunc(f func(x, y float64) float64) Func {
	return Func{F: f, Step: parameter.DerivativeStep}
}

func (f Func) step() float64 {
	if f.Step > 0 {
		return f.Step
	}
	return parameter.DerivativeStep
}

func (f Func) HeightAt(x, y float64) float64 { return f.F(x, y) }

func (f Func) XDerivativeAt(x, y float64) float64 {
	h := f.step()
	return (f.F(x+h, y) - f.F(x-h, y)) / (2 * h)
}

func (f Func) YDerivativeAt(x, y float64) float64 {
	h := f.step()
	return (f.F(x, y+h) - f.F(x, y-h)) / (2 * h)
}

// Sum adds several surfaces, useful for composing a bump on a plane
type Sum []HeightFunction

func (s Sum) HeightAt(x, y float64) float64 {
	var h float64
	for _, f := range s {
		h += f.HeightAt(x, y)
	}
	return h
}

func (s Sum) XDerivativeAt(x, y float64) float64 {
	var d float64
	for _, f := range s {
		d += f.XDerivativeAt(x, y)
	}
	return d
}

func (s Sum) YDerivativeAt(x, y float64) float64 {
	var d float64
	for _, f := range s {
		d += f.YDerivativeAt(x, y)
	}
	return d
}

// secondDerivatives estimates hxx, hyy, hxy by differencing the first derivatives
func secondDerivatives(f HeightFunction, x, y float64) (xx, yy, xy float64) {
	h := parameter.DerivativeStep
	xx = (f.XDerivativeAt(x+h, y) - f.XDerivativeAt(x-h, y)) / (2 * h)
	yy = (f.YDerivativeAt(x, y+h) - f.YDerivativeAt(x, y-h)) / (2 * h)
	xy = (f.XDerivativeAt(x, y+h) - f.XDerivativeAt(x, y-h)) / (2 * h)
	return xx, yy, xy
}
