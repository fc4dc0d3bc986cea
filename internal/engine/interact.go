package engine

// resolvePickups collects every live pickup the player overlaps.
func (s *Simulation) resolvePickups(events []Event) []Event {
	pr := s.player.Rect()
	for _, idx := range s.pickups {
		item := &s.entities[idx]
		if item.Collected || !pr.Intersects(item.Rect()) {
			continue
		}
		item.Collected = true
		events = append(events, Event{
			Type:     EventCollect,
			Kind:     item.Kind,
			EntityID: item.ID,
			Sprite:   item.Sprite,
		})
	}
	return events
}

// resolveEnemyContacts decides stomp or hit for every live enemy the player
// overlaps. A stomp bounces the player, so a second enemy touched in the
// same tick is judged against the bounced velocity.
func (s *Simulation) resolveEnemyContacts(events []Event) []Event {
	p := &s.player
	for _, idx := range s.enemies {
		enemy := &s.entities[idx]
		if enemy.Collected || !p.Rect().Intersects(enemy.Rect()) {
			continue
		}

		if p.VelocityY > 0 && p.Y < enemy.Y-s.phys.StompTolerance {
			enemy.Collected = true
			p.VelocityY = s.phys.JumpForce / 2
			events = append(events, Event{
				Type:     EventStomp,
				Kind:     KindEnemy,
				EntityID: enemy.ID,
				Sprite:   enemy.Sprite,
			})
			continue
		}

		events = append(events, Event{
			Type:     EventHit,
			Kind:     KindEnemy,
			EntityID: enemy.ID,
			Sprite:   enemy.Sprite,
		})
	}
	return events
}
