package evergreen

// AnimationMode is the discrete target the scene is heading towards.
type AnimationMode int

const (
	Assembled AnimationMode = iota
	Scattered
)

func (m AnimationMode) String() string {
	switch m {
	case Assembled:
		return "assembled"
	case Scattered:
		return "scattered"
	}
	return "unknown"
}

// Toggled returns the other mode.
func (m AnimationMode) Toggled() AnimationMode {
	if m == Assembled {
		return Scattered
	}
	return Assembled
}

// Target is the progress value drivers damp towards: 1 for Assembled, 0 for Scattered.
func (m AnimationMode) Target() float32 {
	if m == Assembled {
		return 1
	}
	return 0
}

// ActionLabel is the caption for the control that would switch away from m.
func (m AnimationMode) ActionLabel() string {
	if m == Assembled {
		return "DISSOLVE"
	}
	return "ASSEMBLE"
}

// ModeStore holds the current AnimationMode. It is installed as an App resource;
// drivers read it once per frame and only the toggle action writes it.
type ModeStore struct {
	mode AnimationMode
}

func NewModeStore(initial AnimationMode) *ModeStore {
	return &ModeStore{mode: initial}
}

func (s *ModeStore) Mode() AnimationMode {
	return s.mode
}

func (s *ModeStore) SetMode(mode AnimationMode) {
	s.mode = mode
}

func (s *ModeStore) Toggle() AnimationMode {
	s.mode = s.mode.Toggled()
	return s.mode
}
