package main

import (
	"context"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/golf-sim/audio"
	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/course"
	"github.com/lixenwraith/golf-sim/obstacle"
	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/physics"
	"github.com/lixenwraith/golf-sim/sweep"
	"github.com/lixenwraith/golf-sim/vmath"
)

// statusRows are reserved below the course for the HUD
const statusRows = 2

var (
	styleGreen  = tcell.StyleDefault.Background(tcell.NewRGBColor(30, 110, 40))
	styleSand   = tcell.StyleDefault.Background(tcell.NewRGBColor(200, 180, 110))
	styleWater  = tcell.StyleDefault.Background(tcell.NewRGBColor(30, 60, 160))
	styleTree   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(10, 60, 10))
	styleBox    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 80, 40))
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleBall   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleTarget = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleTrail  = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	styleAim    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// cell is one pre-rendered course cell
type cell struct {
	r     rune
	style tcell.Style
}

// Viewer draws a course, lets the player aim and animates simulated shots
type Viewer struct {
	screen        tcell.Screen
	width, height int
	background    [][]cell

	course *course.Course
	engine *physics.Engine
	sound  *audio.SoundManager
	logger *zap.Logger

	pointsPerFrame int
	sweepOptions   sweep.Options
	evolveOptions  sweep.EvolveOptions

	ball    vmath.Vec2
	angle   float64
	power   float64
	strokes int
	holed   bool
	status  string

	trace     physics.Trace
	playing   bool
	frame     int
	nextEvent int
}

// NewViewer creates a viewer on an initialized screen, sound may be nil
func NewViewer(screen tcell.Screen, c *course.Course, e *physics.Engine, sound *audio.SoundManager, logger *zap.Logger) *Viewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &Viewer{
		screen:         screen,
		course:         c,
		engine:         e,
		sound:          sound,
		logger:         logger.Named("viewer"),
		pointsPerFrame: parameter.TrajectoryPointsPerFrame,
		ball:           c.Ball.State.Position,
		power:          parameter.DefaultAimPower,
	}
	v.angle = c.Terrain.Target.Position.Sub(v.ball).Angle()
	v.status = "←/→ aim  ↑/↓ power  space shoot  a sweep  e evolve  r reset  q quit"
	v.handleResize()
	return v
}

// toScreen maps a course position to a cell, y grows upward on the course and downward on screen
func (v *Viewer) toScreen(p vmath.Vec2) (int, int) {
	b := v.course.Terrain.Bounds
	rows := v.height - statusRows
	x := int((p.X - b.Min.X) / b.Width() * float64(v.width-1))
	y := int((b.Max.Y - p.Y) / b.Height() * float64(rows-1))
	return x, y
}

// toWorld returns the course position at the centre of a cell
func (v *Viewer) toWorld(x, y int) vmath.Vec2 {
	b := v.course.Terrain.Bounds
	rows := v.height - statusRows
	return vmath.V(
		b.Min.X+(float64(x)+0.5)/float64(v.width)*b.Width(),
		b.Max.Y-(float64(y)+0.5)/float64(rows)*b.Height(),
	)
}

func (v *Viewer) inView(x, y int) bool {
	return x >= 0 && x < v.width && y >= 0 && y < v.height-statusRows
}

func (v *Viewer) handleResize() {
	v.width, v.height = v.screen.Size()
	if v.height <= statusRows || v.width <= 0 {
		v.background = nil
		return
	}
	v.renderBackground()
}

// renderBackground samples the static course once per screen size
func (v *Viewer) renderBackground() {
	t := v.course.Terrain
	rows := v.height - statusRows
	v.background = make([][]cell, rows)
	for y := range rows {
		v.background[y] = make([]cell, v.width)
		for x := range v.width {
			p := v.toWorld(x, y)
			c := cell{r: ' ', style: styleGreen}
			switch {
			case t.InWater(p):
				c = cell{r: '~', style: styleWater.Foreground(tcell.ColorLightBlue)}
			case t.KineticFrictionAt(p) != t.KineticFriction:
				c = cell{r: '.', style: styleSand.Foreground(tcell.ColorDarkKhaki)}
			default:
				// shade the green by height so slopes are visible
				h := math.Max(-1, math.Min(1, t.HeightAt(p)/2))
				g := int32(110 + 60*h)
				c.style = tcell.StyleDefault.Background(tcell.NewRGBColor(30, g, 40))
			}
			v.background[y][x] = c
		}
	}

	for _, o := range t.Obstacles() {
		v.stampObstacle(o)
	}
}

func (v *Viewer) stampObstacle(o obstacle.Obstacle) {
	switch ob := o.(type) {
	case *obstacle.Wall:
		seg := ob.Segment()
		n := int(math.Ceil(seg.Length()*float64(v.width)/v.course.Terrain.Bounds.Width()*2)) + 1
		for i := 0; i <= n; i++ {
			p := seg.A.Lerp(seg.B, float64(i)/float64(n))
			v.stamp(p, '█', styleWall)
		}
	case *obstacle.Tree:
		v.stampFilled(o, '♣', styleTree)
		v.stamp(ob.Center(), '♣', styleTree)
	case *obstacle.Box:
		v.stampFilled(o, '▓', styleBox)
		v.stamp(ob.Rect().Center(), '▓', styleBox)
	}
}

func (v *Viewer) stampFilled(o obstacle.Obstacle, r rune, style tcell.Style) {
	for y := range v.background {
		for x := range v.background[y] {
			if o.ContainsPoint(v.toWorld(x, y)) {
				v.background[y][x] = v.overlay(x, y, r, style)
			}
		}
	}
}

func (v *Viewer) stamp(p vmath.Vec2, r rune, style tcell.Style) {
	x, y := v.toScreen(p)
	if v.inView(x, y) {
		v.background[y][x] = v.overlay(x, y, r, style)
	}
}

// overlay keeps the ground colour under a foreground glyph
func (v *Viewer) overlay(x, y int, r rune, style tcell.Style) cell {
	_, bg, _ := v.background[y][x].style.Decompose()
	return cell{r: r, style: style.Background(bg)}
}

func (v *Viewer) draw() {
	v.screen.Clear()
	if v.background == nil {
		v.screen.Show()
		return
	}

	for y, row := range v.background {
		for x, c := range row {
			v.screen.SetContent(x, y, c.r, nil, c.style)
		}
	}

	v.setForeground(v.course.Terrain.Target.Position, '⚑', styleTarget)

	ball := v.ball
	if v.playing {
		last := min(v.frame, len(v.trace.Positions)-1)
		for _, p := range v.trace.Positions[:last] {
			v.setForeground(p, '·', styleTrail)
		}
		ball = v.trace.Positions[last]
	} else if !v.holed {
		dir := vmath.FromAngle(v.angle)
		for i := 1; i <= 5; i++ {
			v.setForeground(ball.Add(dir.Scale(v.power*0.3*float64(i))), '•', styleAim)
		}
	}
	v.setForeground(ball, '●', styleBall)

	v.drawHUD()
	v.screen.Show()
}

func (v *Viewer) setForeground(p vmath.Vec2, r rune, style tcell.Style) {
	x, y := v.toScreen(p)
	if !v.inView(x, y) {
		return
	}
	_, bg, _ := v.background[y][x].style.Decompose()
	v.screen.SetContent(x, y, r, nil, style.Background(bg))
}

func (v *Viewer) drawHUD() {
	deg := math.Mod(v.angle*180/math.Pi+360, 360)
	line := fmt.Sprintf(" %s  stroke %d  aim %5.1f°  power %.1f  distance %.2f",
		v.course.Name, v.strokes, deg, v.power, v.course.Terrain.Target.DistanceTo(v.ball))
	v.drawText(0, v.height-2, line)
	v.drawText(0, v.height-1, " "+v.status)
}

func (v *Viewer) drawText(x, y int, s string) {
	for _, r := range s {
		if x >= v.width {
			return
		}
		v.screen.SetContent(x, y, r, nil, styleHUD)
		x++
	}
}

// shoot simulates a shot from the current ball position and starts the animation
func (v *Viewer) shoot(v0 vmath.Vec2) {
	if v.playing || v.holed {
		return
	}
	ball := v.course.Ball
	ball.State.Position = v.ball

	tr, err := v.engine.Trace(v0, ball, v.course.Terrain)
	if err != nil {
		if len(tr.Positions) == 0 {
			v.status = err.Error()
			return
		}
		// a partial trace is still animated
		v.logger.Warn("shot did not settle", zap.Error(err))
	}
	v.strokes++
	v.trace = tr
	v.playing = true
	v.frame = 0
	v.nextEvent = 0
	v.status = fmt.Sprintf("shot %v", v0)
	v.logger.Info("shot", zap.Stringer("velocity", v0), zap.Int("steps", tr.Steps()))
}

// update advances the animation by one frame and plays the tones of passed events
func (v *Viewer) update() {
	if !v.playing {
		return
	}
	v.frame += v.pointsPerFrame
	for v.nextEvent < len(v.trace.Events) && v.trace.Events[v.nextEvent].Step <= v.frame {
		if v.sound != nil {
			v.sound.PlayEvent(v.trace.Events[v.nextEvent])
		}
		v.nextEvent++
	}
	if v.frame < len(v.trace.Positions)-1 {
		return
	}
	v.finishShot()
}

func (v *Viewer) finishShot() {
	v.playing = false
	final := v.trace.Final()
	t := v.course.Terrain

	switch {
	case t.InWater(final):
		v.strokes++
		v.status = "water hazard, one stroke penalty"
	case t.Target.Contains(final):
		v.ball = final
		v.holed = true
		v.status = fmt.Sprintf("holed in %d, press r to play again", v.strokes)
		if v.sound != nil {
			v.sound.PlayHole()
		}
	default:
		v.ball = final
		v.status = fmt.Sprintf("%.2f to the hole", t.Target.DistanceTo(final))
	}
}

// autoAim sweeps candidate shots from the ball and points the aim at the best one
func (v *Viewer) autoAim(ctx context.Context) {
	v.suggest(ctx, func(s *sweep.Sweeper, ball core.Ball) (sweep.Result, bool, error) {
		grid, err := sweep.Grid(parameter.DefaultSweepAngles*2, parameter.DefaultSweepSpeeds*2,
			parameter.DefaultSweepMinSpeed, parameter.MaxBallSpeed)
		if err != nil {
			return sweep.Result{}, false, err
		}
		results, err := s.Evaluate(ctx, ball, v.course.Terrain, grid)
		if err != nil {
			return sweep.Result{}, false, err
		}
		best, ok := sweep.Best(results)
		return best, ok, nil
	})
}

// evolveAim runs the genetic search from the ball and points the aim at its best shot
func (v *Viewer) evolveAim(ctx context.Context) {
	v.suggest(ctx, func(s *sweep.Sweeper, ball core.Ball) (sweep.Result, bool, error) {
		ev, err := s.Evolve(ctx, ball, v.course.Terrain, v.evolveOptions)
		if err != nil {
			return sweep.Result{}, false, err
		}
		return ev.Best, true, nil
	})
}

func (v *Viewer) suggest(ctx context.Context, search func(*sweep.Sweeper, core.Ball) (sweep.Result, bool, error)) {
	if v.playing || v.holed {
		return
	}
	s, err := sweep.New(v.engine, v.sweepOptions)
	if err != nil {
		v.status = err.Error()
		return
	}
	ball := v.course.Ball
	ball.State.Position = v.ball

	best, ok, err := search(s, ball)
	switch {
	case err != nil:
		v.status = err.Error()
	case !ok:
		v.status = "no settling shot found"
	default:
		v.angle = best.Velocity.Angle()
		v.power = best.Velocity.Length()
		v.status = fmt.Sprintf("suggested shot scores %.3f", best.Score)
	}
}

func (v *Viewer) reset() {
	v.ball = v.course.Ball.State.Position
	v.angle = v.course.Terrain.Target.Position.Sub(v.ball).Angle()
	v.power = parameter.DefaultAimPower
	v.strokes = 0
	v.holed = false
	v.playing = false
	v.status = "reset"
}

// handleInput returns false when the viewer should exit
func (v *Viewer) handleInput(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.angle += parameter.AimAngleStep
		case tcell.KeyRight:
			v.angle -= parameter.AimAngleStep
		case tcell.KeyUp:
			v.power = math.Min(v.power+parameter.AimPowerStep, parameter.MaxBallSpeed)
		case tcell.KeyDown:
			v.power = math.Max(v.power-parameter.AimPowerStep, parameter.AimPowerStep)
		case tcell.KeyEnter:
			v.shoot(vmath.FromAngle(v.angle).Scale(v.power))
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				v.angle += parameter.AimAngleStep
			case 'l':
				v.angle -= parameter.AimAngleStep
			case 'k':
				v.power = math.Min(v.power+parameter.AimPowerStep, parameter.MaxBallSpeed)
			case 'j':
				v.power = math.Max(v.power-parameter.AimPowerStep, parameter.AimPowerStep)
			case ' ':
				v.shoot(vmath.FromAngle(v.angle).Scale(v.power))
			case 'a':
				v.autoAim(ctx)
			case 'e':
				v.evolveAim(ctx)
			case 'r':
				v.reset()
			}
		}
	case *tcell.EventResize:
		v.handleResize()
		v.screen.Sync()
	}
	return true
}
