//go:build ebiten

package app

import (
	"time"

	"torus-rally/internal/monitoring"
	"torus-rally/internal/render"
	"torus-rally/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a terrain Session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.HeightPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	ramp    render.Ramp
	gray    bool

	scale int
	tiles int
}

// New constructs a Game that draws the session's heightfield at scale
// pixels per cell with a parameter panel of hudWidth pixels.
func New(s *Session, scale, hudWidth int) *Game {
	size := s.Size()
	return &Game{
		session: s,
		painter: render.NewHeightPainter(size.W, size.H),
		hud:     ui.NewHUD(s, hudWidth),
		overlay: ui.NewOverlay(size.W, size.H, scale, func(row, col int) float32 {
			return s.Field().WrapAt(row, col)
		}),
		ramp:  render.TerrainRamp(),
		scale: max(scale, 1),
		tiles: 1,
	}
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.tiles = 3 - g.tiles
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.gray = !g.gray
		g.ramp = render.TerrainRamp()
		if g.gray {
			g.ramp = render.GrayRamp()
		}
	}
	g.report(inpututil.IsKeyJustPressed(ebiten.KeyR), g.session.Regenerate)
	g.report(inpututil.IsKeyJustPressed(ebiten.KeyS), func() error {
		return g.session.Reseed(time.Now().UnixNano())
	})
	g.report(inpututil.IsKeyJustPressed(ebiten.KeyN), g.session.CycleAlgorithm)

	g.overlay.Update()
	g.hud.Update(g.viewWidth())
	ebiten.SetWindowTitle("torus-rally: " + g.session.String())
	return nil
}

func (g *Game) report(pressed bool, action func() error) {
	if !pressed {
		return
	}
	if err := action(); err != nil {
		monitoring.Logf("preview: %v", err)
	}
}

func (g *Game) viewWidth() int {
	return g.session.Size().W * g.scale * g.tiles
}

func (g *Game) viewHeight() int {
	return g.session.Size().H * g.scale * g.tiles
}

// Draw renders the heightfield, the guides and the panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.session.Heights(), g.ramp, g.scale, g.tiles)
	g.overlay.Draw(screen, g.tiles)
	g.hud.Draw(screen, g.viewWidth(), g.viewHeight())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewWidth() + g.hud.Width(), g.viewHeight()
}
