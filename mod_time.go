package evergreen

// Time is stamped by App.Tick from the rendering engine's frame callback.
// Elapsed and Dt are in seconds.
type Time struct {
	Elapsed float32
	Dt      float32
	Frame   uint64
}

type TimeModule struct {
}

// Install is a no-op when a Time resource already exists.
func (mod TimeModule) Install(app *App, cmd *Commands) {
	if Resource[Time](app) != nil {
		return
	}
	cmd.AddResources(&Time{})
}
