package engine

import "math"

// CameraX returns the horizontal scroll offset that keeps the player about a
// third of the way into the viewport, never scrolling left of the origin.
// Screen x = world x - CameraX.
func CameraX(playerX, viewportWidth float64) float64 {
	return math.Max(0, playerX-viewportWidth/3)
}
