package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/evergreen"
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// canvas is the part of tcell.Screen the view draws on.
type canvas interface {
	Size() (int, int)
	Clear()
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	Show()
}

const (
	// radians per second of camera orbit
	orbitSpeed = 0.2
	// terminal cells are about twice as tall as they are wide
	cellAspect = 2.0
	// fraction of the screen height the assembled tree occupies
	treeFill = 0.75
)

var (
	black      = colorful.Color{}
	boxRune    = '■'
	sphereRune = 'o'
)

type view struct {
	screen canvas
	tree   *evergreen.Tree

	positions []mgl32.Vec3
	zbuf      []float32
}

func newView(screen canvas, tree *evergreen.Tree) *view {
	return &view{
		screen:    screen,
		tree:      tree,
		positions: make([]mgl32.Vec3, tree.Foliage.Count()),
	}
}

type projection struct {
	cos, sin float64
	scale    float64
	cx, cy   float64
	w, h     int
}

func (v *view) projection(elapsed float32) projection {
	w, h := v.screen.Size()
	yaw := float64(elapsed) * orbitSpeed
	return projection{
		cos:   math.Cos(yaw),
		sin:   math.Sin(yaw),
		scale: treeFill * float64(h) / float64(v.tree.Config.TreeHeight),
		cx:    float64(w) / 2,
		cy:    float64(h) / 2,
		w:     w,
		h:     h,
	}
}

// project returns the cell for p and its depth (larger is closer to the viewer).
func (p projection) project(pos mgl32.Vec3) (int, int, float32, bool) {
	x := float64(pos.X())*p.cos - float64(pos.Z())*p.sin
	z := float64(pos.X())*p.sin + float64(pos.Z())*p.cos

	sx := int(math.Round(p.cx + x*p.scale*cellAspect))
	sy := int(math.Round(p.cy - float64(pos.Y())*p.scale))
	if sx < 0 || sy < 0 || sx >= p.w || sy >= p.h {
		return 0, 0, 0, false
	}
	return sx, sy, float32(z), true
}

func (v *view) draw(elapsed float32, mode evergreen.AnimationMode) {
	v.screen.Clear()
	proj := v.projection(elapsed)
	if proj.w <= 0 || proj.h <= 0 {
		return
	}

	if n := proj.w * proj.h; len(v.zbuf) != n {
		v.zbuf = make([]float32, n)
	}
	for i := range v.zbuf {
		v.zbuf[i] = float32(math.Inf(-1))
	}

	foliage := v.tree.Foliage
	foliage.Evaluate(v.positions, nil, 0, len(v.positions))
	alpha := float64(foliage.Alpha())
	palette := v.tree.Palette
	radius := float64(v.tree.Config.ScatterRadius)

	for i, pos := range v.positions {
		x, y, z, ok := proj.project(pos)
		if !ok || !v.closer(proj, x, y, z) {
			continue
		}
		// nearer particles glow brighter; the seed varies the sprite core
		depth := 0.5 + 0.5*(float64(z)/radius)
		strength := 0.4 + 0.6*float64(foliage.Seed(i))
		c := palette.ParticleColor(strength).BlendRgb(black, 1-alpha*clamp01(0.35+0.65*depth))
		ch := '.'
		if strength > 0.8 {
			ch = '*'
		}
		v.screen.SetContent(x, y, ch, nil, tcell.StyleDefault.Foreground(toTcell(c)))
	}

	for _, b := range v.tree.Batches() {
		mat := b.Kind.Material(palette)
		ch := sphereRune
		if b.Kind == evergreen.OrnamentBox {
			ch = boxRune
		}
		style := tcell.StyleDefault.Foreground(toTcell(mat.Color.BlendRgb(mat.Emissive, float64(mat.EmissiveIntensity))))
		for i := 0; i < b.Count(); i++ {
			x, y, z, ok := proj.project(b.Position(i))
			if !ok || !v.closer(proj, x, y, z) {
				continue
			}
			v.screen.SetContent(x, y, ch, nil, style)
		}
	}

	v.caption(proj, "[space] "+mode.ActionLabel()+"   [q] quit", palette.GoldWarm)
	v.screen.Show()
}

func (v *view) closer(p projection, x, y int, z float32) bool {
	idx := y*p.w + x
	if z <= v.zbuf[idx] {
		return false
	}
	v.zbuf[idx] = z
	return true
}

func (v *view) caption(p projection, text string, c colorful.Color) {
	style := tcell.StyleDefault.Foreground(toTcell(c))
	x := (p.w - len([]rune(text))) / 2
	if x < 0 {
		x = 0
	}
	y := p.h - 1
	for _, r := range text {
		if x >= p.w {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
