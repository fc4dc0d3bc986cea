package engine

// stepEnemies moves every live, moving enemy and turns it around at the
// edge of the platform it stands on. Enemies have no gravity: one that finds
// no supporting platform turns around as if it had reached a ledge.
func (s *Simulation) stepEnemies() {
	for _, idx := range s.enemies {
		e := &s.entities[idx]
		if e.Collected || e.VelocityX == 0 {
			continue
		}

		e.X += e.VelocityX

		support := s.supportOf(e)
		if support == nil {
			e.turn()
			continue
		}

		if (e.VelocityX > 0 && e.X+e.Width >= support.X+support.Width) ||
			(e.VelocityX < 0 && e.X <= support.X) {
			e.turn()
		}
	}
}

// supportOf returns the first platform in level order the enemy stands on.
func (s *Simulation) supportOf(e *Entity) *Entity {
	bottom := e.Y + e.Height
	for _, idx := range s.platforms {
		p := &s.entities[idx]
		if bottom >= p.Y &&
			bottom <= p.Y+p.Height+s.phys.SupportTolerance &&
			e.X+e.Width > p.X &&
			e.X < p.X+p.Width {
			return p
		}
	}
	return nil
}

func (e *Entity) turn() {
	e.VelocityX = -e.VelocityX
	e.Direction = -e.Direction
}
