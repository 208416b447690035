package engine2000

import "errors"

var (
	// ErrLayerExists is returned by LayerTable.CreateLayer when the name is taken.
	ErrLayerExists = errors.New("engine2000: physics layer already exists")
	// ErrLayerTableFull is returned when every physics layer slot is in use.
	ErrLayerTableFull = errors.New("engine2000: physics layer table is full")
	// ErrInvalidLayer is returned for an out-of-range or built-in layer index.
	ErrInvalidLayer = errors.New("engine2000: invalid physics layer")
	// ErrInvalidPhysicsConfig is returned by NewPhysicsWorld for a bad config.
	ErrInvalidPhysicsConfig = errors.New("engine2000: invalid physics config")
	// ErrNoLevel is returned when the engine runs without a current level.
	ErrNoLevel = errors.New("engine2000: no current level")
	// ErrAlreadyInitialized is returned by a second Engine.Init call.
	ErrAlreadyInitialized = errors.New("engine2000: engine already initialized")
	// ErrNotInitialized is returned by Engine.Run before Init succeeded.
	ErrNotInitialized = errors.New("engine2000: engine not initialized")
	// ErrEmptyScript is returned by LoadTestScript for a script with no steps.
	ErrEmptyScript = errors.New("engine2000: test script has no steps")
	// ErrInvalidAtlas is returned by LoadAtlas for JSON it cannot read.
	ErrInvalidAtlas = errors.New("engine2000: invalid atlas")
)
