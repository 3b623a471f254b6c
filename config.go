package evergreen

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gekko3d/evergreen/geometry"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the fixed constants both endpoint geometries are derived from.
type Config struct {
	FoliageCount        int     `yaml:"foliage_count"`
	OrnamentBoxCount    int     `yaml:"ornament_box_count"`
	OrnamentSphereCount int     `yaml:"ornament_sphere_count"`
	TreeHeight          float32 `yaml:"tree_height"`
	TreeRadius          float32 `yaml:"tree_radius"`
	ScatterRadius       float32 `yaml:"scatter_radius"`
	// Per-axis spread added to foliage tree positions so the spiral isn't a perfect line.
	FoliageJitter float32 `yaml:"foliage_jitter"`
	// Distance ornaments sit outside the cone surface.
	OrnamentOffset float32       `yaml:"ornament_offset"`
	AnimationSpeed float32       `yaml:"animation_speed"`
	InitialMode    AnimationMode `yaml:"initial_mode"`
	// 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		FoliageCount:        15000,
		OrnamentBoxCount:    150,
		OrnamentSphereCount: 250,
		TreeHeight:          14,
		TreeRadius:          5.5,
		ScatterRadius:       25,
		FoliageJitter:       0.5,
		OrnamentOffset:      0.5,
		AnimationSpeed:      DefaultAnimationSpeed,
		InitialMode:         Assembled,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	positiveCount := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be > 0, got %d", ErrInvalidConfig, name, v))
		}
	}
	positive := func(name string, v float32) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be > 0, got %g", ErrInvalidConfig, name, v))
		}
	}

	positiveCount("foliage_count", c.FoliageCount)
	positiveCount("ornament_box_count", c.OrnamentBoxCount)
	positiveCount("ornament_sphere_count", c.OrnamentSphereCount)
	positive("tree_height", c.TreeHeight)
	positive("tree_radius", c.TreeRadius)
	positive("scatter_radius", c.ScatterRadius)
	positive("animation_speed", c.AnimationSpeed)
	scrambled := func(name string, v int) {
		if v > 0 && v%geometry.ScrambleMultiplier == 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be a multiple of %d, got %d",
				ErrInvalidConfig, name, geometry.ScrambleMultiplier, v))
		}
	}
	scrambled("ornament_box_count", c.OrnamentBoxCount)
	scrambled("ornament_sphere_count", c.OrnamentSphereCount)
	if c.OrnamentOffset < 0 {
		errs = append(errs, fmt.Errorf("%w: ornament_offset must be >= 0, got %g", ErrInvalidConfig, c.OrnamentOffset))
	}
	if c.FoliageJitter < 0 {
		errs = append(errs, fmt.Errorf("%w: foliage_jitter must be >= 0, got %g", ErrInvalidConfig, c.FoliageJitter))
	}
	if c.InitialMode != Assembled && c.InitialMode != Scattered {
		errs = append(errs, fmt.Errorf("%w: unknown initial_mode %d", ErrInvalidConfig, c.InitialMode))
	}
	return errors.Join(errs...)
}

func (c Config) Cone() geometry.Cone {
	return geometry.Cone{Height: c.TreeHeight, Radius: c.TreeRadius}
}

func (c Config) Sphere() geometry.Sphere {
	return geometry.Sphere{Radius: c.ScatterRadius}
}

func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func ParseMode(s string) (AnimationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "assembled", "tree", "tree_shape":
		return Assembled, nil
	case "scattered", "scatter":
		return Scattered, nil
	}
	return Assembled, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
}

func (m *AnimationMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	mode, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m AnimationMode) MarshalYAML() (any, error) {
	return m.String(), nil
}
