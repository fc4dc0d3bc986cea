package pup

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// Visual characters for rendering
const (
	PlatformChar = '▓'
	GroundChar   = '▒'
	PlayerChar   = '█'
	PlayerEye    = '•'
	BoneChar     = 'b'
	EnemyChar    = 'E'
	SpinChar     = '*'
	HeartChar    = '♥'
)

const hudRows = 1

// spriteGlyphs maps level sprites to single-cell glyphs. Emoji are two
// cells wide in most terminals.
var spriteGlyphs = map[string]struct {
	r rune
	c core.Color
}{
	"🐱":  {'C', core.ColorOrange},
	"🐿️": {'S', core.ColorBrown},
	"🐿":  {'S', core.ColorBrown},
	"🦴":  {BoneChar, core.ColorBrightWhite},
	"⚡":  {'J', core.ColorYellow},
	"🔥":  {'F', core.ColorRed},
	"🌪️": {'T', core.ColorCyan},
	"🌪":  {'T', core.ColorCyan},
}

// projection maps world units onto screen cells below the HUD.
type projection struct {
	cameraX float64
	unitsX  float64 // World units per column
	unitsY  float64 // World units per row
	top     int
}

func newProjection(vp engine.Viewport, cameraX float64, w, h int) projection {
	rows := max(1, h-hudRows)
	return projection{
		cameraX: cameraX,
		unitsX:  vp.Width / float64(max(1, w)),
		unitsY:  vp.Height / float64(rows),
		top:     hudRows,
	}
}

// cells returns the cell rectangle covering a world rectangle. Every
// visible object covers at least one cell.
func (p projection) cells(x, y, w, h float64) (cx, cy, cw, ch int) {
	cx = int(math.Floor((x - p.cameraX) / p.unitsX))
	cy = p.top + int(math.Floor(y/p.unitsY))
	right := int(math.Ceil((x + w - p.cameraX) / p.unitsX))
	bottom := p.top + int(math.Ceil((y+h)/p.unitsY))
	return cx, cy, max(1, right-cx), max(1, bottom-cy)
}

// Render draws the world, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		g.drawCenteredMessage(dst, "LEVEL ERROR", truncate(g.loadErr.Error(), dst.Width()-6))
		return
	}
	if g.screenTooSmall || g.sim == nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("need %dx%d", g.minScreenW, g.minScreenH))
		return
	}

	snap := g.sim.Snapshot()
	proj := newProjection(g.sim.Viewport(), snap.CameraX, dst.Width(), dst.Height())

	for _, e := range snap.Visible() {
		g.drawEntity(dst, proj, e)
	}
	g.drawPlayer(dst, proj, snap.Player)
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  Bones: %d  |  Press R to restart", g.score, g.coins))
	}
}

func (g *Game) drawEntity(dst *core.Screen, proj projection, e engine.Entity) {
	x, y, w, h := proj.cells(e.X, e.Y, e.Width, e.Height)

	switch e.Kind {
	case engine.KindPlatform:
		// Thick platforms are ground
		if e.Height >= 50 {
			dst.FillRect(x, y, w, h, GroundChar, core.ColorGreen)
		} else {
			dst.FillRect(x, y, w, h, PlatformChar, core.ColorBrown)
		}
	case engine.KindEnemy:
		glyph, ok := spriteGlyphs[e.Sprite]
		if !ok {
			glyph.r, glyph.c = EnemyChar, core.ColorRed
		}
		dst.FillRect(x, y, w, h, glyph.r, glyph.c)
	default:
		glyph, ok := spriteGlyphs[e.Sprite]
		if !ok {
			glyph.r, glyph.c = BoneChar, core.ColorBrightWhite
			if e.Kind == engine.KindPowerUp {
				glyph.r = PowerUpFromSprite(e.Sprite).Glyph()
				glyph.c = core.ColorMagenta
			}
		}
		// Pickups are drawn as a single glyph in the middle of their box
		dst.SetColor(x+w/2, y+h/2, glyph.r, glyph.c)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, proj projection, p engine.Player) {
	// Blink while invulnerable
	if g.invulnerable > 0 && (g.invulnerable/4)%2 == 1 {
		return
	}

	x, y, w, h := proj.cells(p.X, p.Y, p.Width, p.Height)
	dst.FillRect(x, y, w, h, PlayerChar, core.ColorBrightYellow)

	eyeX := x + w - 1
	if p.Direction < 0 {
		eyeX = x
	}
	dst.SetColor(eyeX, y, PlayerEye, core.ColorBrown)

	if g.spinTimer > 0 {
		for row := y; row < y+h; row++ {
			dst.SetColor(x-1, row, SpinChar, core.ColorCyan)
			dst.SetColor(x+w, row, SpinChar, core.ColorCyan)
		}
	}
	if g.barkTimer > 0 {
		dst.DrawTextColor(x, y-1, "WOOF!", core.ColorWhite)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	var power strings.Builder
	for _, p := range g.powerUps {
		power.WriteRune(p.Glyph())
	}
	if power.Len() == 0 {
		power.WriteString("-")
	}

	left := fmt.Sprintf(" Score: %d  Bones: %d  Power: %s ", g.score, g.coins, power.String())
	dst.DrawText(0, 0, left)

	hearts := strings.Repeat(string(HeartChar), g.lives)
	dst.DrawTextColor(dst.Width()-len([]rune(hearts))-2, 0, hearts, core.ColorRed)

	if g.powerUps.has(PowerSpin) && g.spinTimer == 0 {
		dst.DrawTextColor(0, dst.Height()-1, " C: spin ", core.ColorCyan)
	}

	if name := g.level.Name; name != "" {
		dst.DrawTextColor(len([]rune(left))+1, 0, name, core.ColorGray)
	}
}

// drawCenteredMessage draws a centered box with title and subtitle.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	// Draw text
	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
