package evergreen

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the scene's named colours.
type Palette struct {
	EmeraldDeep  colorful.Color
	EmeraldLight colorful.Color
	GoldMetallic colorful.Color
	GoldWarm     colorful.Color
	WhiteHot     colorful.Color
}

func DefaultPalette() Palette {
	return Palette{
		EmeraldDeep:  mustHex("#00241B"),
		EmeraldLight: mustHex("#004d3d"),
		GoldMetallic: mustHex("#FFD700"),
		GoldWarm:     mustHex("#D4AF37"),
		WhiteHot:     mustHex("#FFF8E7"),
	}
}

// mustHex parses a palette constant. A bad literal is a programming error.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("palette: %v", err))
	}
	return c
}

var coreGlow = colorful.Color{R: 1, G: 1, B: 0.8}

// ParticleColor mirrors the particle sprite: emerald base tinted towards gold by strength,
// blown out to pale yellow near the core. strength is 1 at the sprite center, 0 at its edge.
func (p Palette) ParticleColor(strength float64) colorful.Color {
	c := p.EmeraldDeep.BlendRgb(p.GoldMetallic, strength*0.3)
	if strength > 0.8 {
		c = c.BlendRgb(coreGlow, (strength-0.8)*5)
	}
	return c.Clamped()
}

// Material describes how an ornament kind is shaded.
type Material struct {
	Color             colorful.Color
	Emissive          colorful.Color
	Roughness         float32
	Metalness         float32
	EmissiveIntensity float32
}
