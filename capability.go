package engine2000

// Capabilities are small interfaces a component or prefab may implement so
// that other components can discover behavior without knowing the concrete
// type. Resolve them with Capability, which checks the prefab first.

// Sizer is implemented by anything with a natural pixel size, typically a
// Sprite. Physics uses it to size shapes from the visual.
type Sizer interface {
	Size() (w, h float64)
}

// SensorListener receives the begin of an overlap with a sensor shape.
type SensorListener interface {
	OnSensorBegin(other *Entity)
}

// SensorEndListener receives the end of an overlap with a sensor shape. Ends
// only follow delivered begins: an overlap that started under immunity ends
// without a callback.
type SensorEndListener interface {
	OnSensorEnd(other *Entity)
}

// BoundsResponder reacts to a ScreenBounds component crossing the screen
// edge. Which method fires depends on the bounds behavior.
type BoundsResponder interface {
	OnBoundsDestroy()
	OnBoundsSleep()
	OnBoundsWakeup()
}

// BaseBoundsResponder implements BoundsResponder with no-ops. Embed it to
// override only the callbacks you need.
type BaseBoundsResponder struct{}

func (BaseBoundsResponder) OnBoundsDestroy() {}
func (BaseBoundsResponder) OnBoundsSleep() {}
func (BaseBoundsResponder) OnBoundsWakeup() {}
