package evergreen

import "fmt"

// Tree is the scene resource: the particle field plus both ornament batches.
type Tree struct {
	Config  Config
	Palette Palette
	Foliage *Foliage
	Boxes   *OrnamentBatch
	Spheres *OrnamentBatch
}

// NewTree generates every endpoint from cfg. It panics if cfg is invalid.
func NewTree(cfg Config) *Tree {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("evergreen: %v", err))
	}
	rng := cfg.Rand()
	cone, sphere := cfg.Cone(), cfg.Sphere()

	tree := &Tree{
		Config:  cfg,
		Palette: DefaultPalette(),
		Foliage: NewFoliage(cfg.FoliageCount, cone, sphere, cfg.FoliageJitter, rng),
		Boxes:   NewOrnamentBatch(OrnamentBox, cfg.OrnamentBoxCount, cone, cfg.OrnamentOffset, sphere, rng),
		Spheres: NewOrnamentBatch(OrnamentSphere, cfg.OrnamentSphereCount, cone, cfg.OrnamentOffset, sphere, rng),
	}

	tree.Foliage.Reset(cfg.InitialMode, cfg.AnimationSpeed)
	for _, b := range tree.Batches() {
		b.Reset(cfg.InitialMode, cfg.AnimationSpeed)
	}
	return tree
}

func (t *Tree) Batches() []*OrnamentBatch {
	return []*OrnamentBatch{t.Boxes, t.Spheres}
}

// Batch finds an ornament batch by id, nil if unknown.
func (t *Tree) Batch(id BatchId) *OrnamentBatch {
	for _, b := range t.Batches() {
		if b.Id == id {
			return b
		}
	}
	return nil
}

// TreeModule builds the Tree and the ModeStore and schedules the frame drivers.
type TreeModule struct {
	Config Config
}

func (mod TreeModule) Install(app *App, cmd *Commands) {
	tree := NewTree(mod.Config)

	TimeModule{}.Install(app, cmd)
	if modes := Resource[ModeStore](app); modes != nil {
		modes.SetMode(mod.Config.InitialMode)
	} else {
		cmd.AddResources(NewModeStore(mod.Config.InitialMode))
	}
	cmd.AddResources(tree, &modeWatch{last: mod.Config.InitialMode})

	cmd.UseSystem(System(foliageSystem).InStage(Update))
	cmd.UseSystem(System(ornamentSystem).InStage(Update))
	cmd.UseSystem(System(modeWatchSystem).InStage(PostUpdate))

	LogTreeSummary(cmd.Logger(), tree, mod.Config.InitialMode)
}

func foliageSystem(t *Time, modes *ModeStore, tree *Tree) {
	tree.Foliage.Update(t.Elapsed, t.Dt, modes.Mode())
}

func ornamentSystem(t *Time, modes *ModeStore, tree *Tree) {
	mode := modes.Mode()
	for _, b := range tree.Batches() {
		b.Update(t.Elapsed, t.Dt, mode)
	}
}

type modeWatch struct {
	last AnimationMode
}

func modeWatchSystem(t *Time, modes *ModeStore, tree *Tree, watch *modeWatch, cmd *Commands) {
	mode := modes.Mode()
	if mode == watch.last {
		return
	}
	LogModeChange(cmd.Logger(), t.Frame, watch.last, mode, tree)
	watch.last = mode
}
