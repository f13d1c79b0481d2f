package marquee

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	ShowFPS   bool
	Resizable bool
	// Runner, when set, plays a test script one step per frame.
	Runner *TestRunner
	// ExitWhenDone ends Run once Runner has finished.
	ExitWhenDone bool
}

// game adapts a Sketch to ebiten.Game.
type game struct {
	sketch *Sketch
	cfg    RunConfig
	fps    *fpsOverlay
}

// Run opens a window and drives s until the window closes, or until the
// test script finishes when ExitWhenDone is set. The sketch is closed on
// return.
func Run(s *Sketch, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	defer s.Close()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := &game{sketch: s, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *game) Update() error {
	s := g.sketch
	if r := g.cfg.Runner; r != nil {
		r.step(s)
		if g.cfg.ExitWhenDone && r.Done() && len(s.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}
	s.source.Poll()
	s.Frame()
	if g.fps != nil {
		g.fps.update(tickSeconds())
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	s := g.sketch
	if s.surface != nil {
		screen.DrawImage(s.surface, nil)
	}
	s.flushScreenshots(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sketch.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// tickSeconds is the nominal length of one Update.
func tickSeconds() float64 {
	if tps := ebiten.TPS(); tps > 0 {
		return 1 / float64(tps)
	}
	return 1 / float64(ebiten.DefaultTPS)
}
