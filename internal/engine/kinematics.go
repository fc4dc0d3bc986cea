package engine

// stepPlayer advances the player by one tick: gravity, Euler integration,
// platform resolution and world bounds.
//
// Every platform overlapping the player contributes a correction, in level
// order, and each overlap test sees the corrections applied before it. There
// is no swept test, so a fast enough fall can pass through a thin platform.
func (s *Simulation) stepPlayer() {
	p := &s.player

	if !p.OnGround {
		p.VelocityY += s.phys.Gravity
		if p.VelocityY > s.phys.MaxFallSpeed {
			p.VelocityY = s.phys.MaxFallSpeed
		}
	}

	p.X += p.VelocityX
	p.Y += p.VelocityY

	p.OnGround = false
	for _, idx := range s.platforms {
		plat := &s.entities[idx]
		if !p.Rect().Intersects(plat.Rect()) {
			continue
		}
		s.resolvePlatform(plat)
	}

	if p.X < 0 {
		p.X = 0
		p.VelocityX = 0
	}
	if p.Y > s.viewport.Height {
		s.respawn()
	}
}

// resolvePlatform pushes the player out of one overlapping platform.
// At most one branch applies.
func (s *Simulation) resolvePlatform(plat *Entity) {
	p := &s.player
	switch {
	case p.VelocityY > 0 && p.Y < plat.Y:
		// Landing on top
		p.Y = plat.Y - p.Height
		p.VelocityY = 0
		p.OnGround = true
	case p.VelocityY < 0 && p.Y > plat.Y:
		// Head hits the underside
		p.Y = plat.Y + plat.Height
		p.VelocityY = 0
	case p.VelocityX > 0 && p.X < plat.X:
		p.X = plat.X - p.Width
		p.VelocityX = 0
	case p.VelocityX < 0 && p.X > plat.X:
		p.X = plat.X + plat.Width
		p.VelocityX = 0
	}
}

// respawn puts the player back at the level spawn with no velocity.
func (s *Simulation) respawn() {
	p := &s.player
	p.X = s.level.SpawnX
	p.Y = s.level.SpawnY
	p.VelocityX = 0
	p.VelocityY = 0
}
