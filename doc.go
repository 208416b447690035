// Package engine2000 is a small 2D game engine built around entities,
// components and a rigid-body physics world.
//
// An [Engine] runs an [Application] on a [Platform]. Platforms live in
// sub-packages: backend/ebitenbackend opens a window with [Ebitengine],
// backend/termbackend draws into a terminal with [tcell], and the
// [HeadlessPlatform] in this package drives frames without any output for
// tests and scripted runs.
//
// # Quick start
//
//	type game struct{}
//
//	func (game) OnInit(e *engine2000.Engine) error {
//		level, err := e.NewLevel()
//		if err != nil {
//			return err
//		}
//		level.CreateEntity(engine2000.LayerPlayer, engine2000.PrefabFunc(func(ent *engine2000.Entity) {
//			engine2000.AddComponent[engine2000.Sprite](ent).SetTexture(ship)
//		}))
//		e.SetCurrentLevel(level)
//		return nil
//	}
//
//	eng := engine2000.New(engine2000.DefaultSettings(), game{}, ebitenbackend.New())
//	if err := eng.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer eng.Shutdown()
//	_ = eng.Run()
//
// # Entities and components
//
// Every game object is an [Entity] with a [Transform] and any number of
// components, at most one per [ComponentKind]. Use [AddComponent] and
// [GetComponent] for typed access. Gameplay objects are usually a [Prefab]
// that builds the entity and stays attached to it, so the prefab can
// implement capabilities such as [SensorListener] or [BoundsResponder].
//
// # Levels
//
// A [Level] groups entities into five render layers and owns the
// [PhysicsWorld]. Creating and removing entities is deferred to the start of
// the next [Level.Update], which makes it safe from any callback.
//
// # Physics
//
// Physics uses Chipmunk2D through [cp]. A [LayerTable] names up to 32
// physics layers and holds the matrix of which layers collide. Sensor shapes
// report overlaps to the owning components, which forward them to their
// listener unless either side is immune.
//
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
// [cp]: https://github.com/jakecoffman/cp
package engine2000
