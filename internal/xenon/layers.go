package xenon

import (
	"errors"
	"fmt"

	"github.com/phanxgames/engine2000"
)

// Physics layers added on top of the engine's built-in ones.
const (
	LayerEnemyProjectile  = "EnemyProjectile"
	LayerPlayerProjectile = "PlayerProjectile"
	LayerPowerUp          = "PowerUp"
	LayerMetalAsteroid    = "MetalAsteroid"
)

// CustomLayers lists the game's layers in creation order.
var CustomLayers = []string{
	LayerEnemyProjectile,
	LayerPlayerProjectile,
	LayerPowerUp,
	LayerMetalAsteroid,
}

// LayerRule is one entry of the collision matrix.
type LayerRule struct {
	A, B    string
	Collide bool
}

const (
	layerDefault    = engine2000.PhysicsLayerDefault
	layerBackground = engine2000.PhysicsLayerBackground
	layerPlayer     = engine2000.PhysicsLayerPlayer
	layerEnemy      = engine2000.PhysicsLayerEnemy
	layerProjectile = engine2000.PhysicsLayerProjectile
)

// CollisionRules is the game's collision matrix, applied in order over the
// engine defaults. Hits between shots and ships are reported through sensor
// events, so most solid pairs are switched off.
var CollisionRules = []LayerRule{
	{layerEnemy, layerEnemy, false},

	{layerPlayer, layerEnemy, false},
	{layerPlayer, layerPlayer, false},

	{LayerPlayerProjectile, LayerPlayerProjectile, false},
	{LayerPlayerProjectile, layerPlayer, false},
	{LayerPlayerProjectile, layerEnemy, false},

	{LayerEnemyProjectile, LayerEnemyProjectile, false},
	{LayerEnemyProjectile, LayerPlayerProjectile, false},
	{LayerEnemyProjectile, layerEnemy, false},
	{LayerEnemyProjectile, layerPlayer, false},

	{layerBackground, layerEnemy, false},
	{layerBackground, layerPlayer, false},
	{layerBackground, layerProjectile, false},
	{layerBackground, LayerEnemyProjectile, false},
	{layerBackground, LayerPlayerProjectile, false},

	{LayerPowerUp, layerBackground, false},
	{LayerPowerUp, LayerPowerUp, false},
	{LayerPowerUp, layerEnemy, false},
	{LayerPowerUp, layerPlayer, false},
	{LayerPowerUp, layerDefault, false},
	{LayerPowerUp, layerProjectile, false},
	{LayerPowerUp, LayerEnemyProjectile, false},
	{LayerPowerUp, LayerPlayerProjectile, false},

	{LayerMetalAsteroid, layerBackground, false},
	{LayerMetalAsteroid, LayerPowerUp, false},
	{LayerMetalAsteroid, layerEnemy, false},
	{LayerMetalAsteroid, layerPlayer, true},
	{LayerMetalAsteroid, layerDefault, false},
	{LayerMetalAsteroid, layerProjectile, false},
	{LayerMetalAsteroid, LayerEnemyProjectile, false},
	{LayerMetalAsteroid, LayerPlayerProjectile, false},
}

// SetupLayers registers the custom layers and applies CollisionRules. Layers
// that already exist are reused, so calling it again is harmless.
func SetupLayers(t *engine2000.LayerTable) error {
	logger.Debug("setting up collision matrix")
	for _, name := range CustomLayers {
		if _, err := t.CreateLayer(name); err != nil && !errors.Is(err, engine2000.ErrLayerExists) {
			return fmt.Errorf("xenon: create layer %s: %w", name, err)
		}
	}
	for _, r := range CollisionRules {
		t.SetLayerCollision(r.A, r.B, r.Collide)
	}
	return nil
}
