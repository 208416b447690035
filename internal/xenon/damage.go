package xenon

import "github.com/phanxgames/engine2000"

// Damageable is implemented by prefabs that lose health on contact.
type Damageable interface {
	TakeDamage(amount float64)
}

// physicsLayer returns the physics layer of e, or "" without a body.
func physicsLayer(e *engine2000.Entity) string {
	if p := engine2000.GetComponent[engine2000.PhysicsComponent](e); p != nil {
		return p.Layer()
	}
	return ""
}

// damage hits other for amount unless other is on one of the excluded
// layers. It reports whether damage was dealt.
func damage(other *engine2000.Entity, amount float64, exclude ...string) bool {
	if other == nil || other.Destroyed() {
		return false
	}
	d, ok := engine2000.Capability[Damageable](other)
	if !ok {
		return false
	}
	layer := physicsLayer(other)
	for _, x := range exclude {
		if layer == x {
			return false
		}
	}
	d.TakeDamage(amount)
	return true
}

// enemyContact is the damage rule shared by enemies: anything damageable that
// is not itself hostile takes the hit.
func enemyContact(other *engine2000.Entity, amount float64) bool {
	return damage(other, amount, layerEnemy, LayerEnemyProjectile)
}

// center returns the midpoint of e's visual box.
func center(e *engine2000.Entity) engine2000.Vec2 {
	pos := e.Position()
	w, h, _ := e.Size()
	return engine2000.Vec2{X: pos.X + w/2, Y: pos.Y + h/2}
}
