package marquee

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Assets names the files a Sketch loads through Loader. Empty names are
// skipped; a nil Loader loads nothing and the sketch renders without text
// or slides.
type Assets struct {
	Loader   Loader
	Font     string
	Atlas    string
	Textures []string
}

type slideState uint8

const (
	slidePending slideState = iota
	slideReady
	slideFailed
)

// Sketch is the composition root: it owns the scene, the scroll input, the
// banner, the plane, the asset loads, and the render loop driving them.
// Everything except the asset goroutines runs on the game loop.
type Sketch struct {
	cfg Variant

	scene  *Scene
	camera *Camera
	scroll *ScrollInput
	source *ScrollSource
	banner *TextBanner
	plane  *WarpedPlane

	frames FrameQueue
	loop   *RenderLoop

	ctx    context.Context
	cancel context.CancelFunc
	cache  *AssetCache

	font       *Future[*FontAsset]
	fontDone   bool
	textures   []*Future[image.Image]
	slides     []*ebiten.Image
	slideState []slideState
	slide      int

	clock   float64
	dt      float32
	surface *ebiten.Image
	width   int
	height  int

	// OnFrame, when set, runs at the end of every update step with the
	// current scroll state. Returning an error halts the render loop.
	OnFrame func(ScrollState) error

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
}

// New validates cfg, builds the scene, starts loading assets in the
// background and starts the render loop. The loop renders from the first
// frame; text and slides appear as their assets resolve.
func New(cfg Variant, assets Assets) (*Sketch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("marquee: variant %q: %w", cfg.Name, err)
	}

	cam := NewCamera(cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far, cfg.Camera.Z)
	if cfg.Camera.IntroDuration > 0 {
		cam.Z = cfg.Camera.Z + cfg.Camera.IntroDistance
		cam.DollyTo(cfg.Camera.Z, float32(cfg.Camera.IntroDuration), ease.OutCubic)
	}

	s := &Sketch{
		cfg:           cfg,
		camera:        cam,
		scene:         NewScene(cam),
		scroll:        NewScrollInput(cfg.Scroll),
		banner:        NewTextBanner(cfg.Banner),
		plane:         NewWarpedPlane(cfg.Plane),
		dt:            1 / float32(ebiten.DefaultTPS),
		slide:         -1,
		ScreenshotDir: "screenshots",
	}
	s.source = NewScrollSource(s.scroll, cfg.Scroll)
	s.scene.ClearColor = cfg.ClearColor
	s.scene.SetDebugMode(cfg.Debug)

	root := s.scene.Root()
	root.AddChild(s.banner.Group())
	root.AddChild(s.plane.Group())
	if g := s.plane.Guide(); g != nil {
		root.AddChild(g)
	}
	s.scene.Overlay().AddChild(s.banner.CopyGroup())

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.startLoads(assets)

	s.loop = NewRenderLoop(&s.frames, s.update, s.draw)
	Logger().Info("marquee: sketch created",
		slog.String("variant", cfg.Name),
		slog.Int("lines", len(cfg.Banner.Lines)),
		slog.Int("textures", len(s.textures)),
	)
	return s, nil
}

func (s *Sketch) startLoads(assets Assets) {
	if assets.Loader == nil {
		return
	}
	s.cache = NewAssetCache(assets.Loader)
	if assets.Font != "" && assets.Atlas != "" {
		cache := s.cache
		s.font = Async(s.ctx, func(ctx context.Context) (*FontAsset, error) {
			return LoadFont(ctx, cache, assets.Font, assets.Atlas)
		})
	}
	var names []string
	for _, n := range assets.Textures {
		if n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return
	}
	s.textures = LoadTextures(s.ctx, s.cache, names, s.cfg.Plane.TextureWidth, s.cfg.Plane.TextureHeight)
	s.slides = make([]*ebiten.Image, len(names))
	s.slideState = make([]slideState, len(names))
}

// Variant returns the configuration the sketch was built with.
func (s *Sketch) Variant() Variant { return s.cfg }

// Scene returns the sketch scene.
func (s *Sketch) Scene() *Scene { return s.scene }

// Scroll returns the scroll input.
func (s *Sketch) Scroll() *ScrollInput { return s.scroll }

// Source returns the input source feeding Scroll.
func (s *Sketch) Source() *ScrollSource { return s.source }

// Banner returns the text banner.
func (s *Sketch) Banner() *TextBanner { return s.banner }

// Plane returns the warped plane.
func (s *Sketch) Plane() *WarpedPlane { return s.plane }

// Loop returns the render loop.
func (s *Sketch) Loop() *RenderLoop { return s.loop }

// Clock returns the sketch time, advanced by FrameStep every frame.
func (s *Sketch) Clock() float64 { return s.clock }

// Slide returns the active slide index, or -1 before any slide is shown.
func (s *Sketch) Slide() int { return s.slide }

// Surface returns the image the sketch renders into, nil before the first
// Resize.
func (s *Sketch) Surface() *ebiten.Image { return s.surface }

// Stop halts the render loop after the outstanding frame.
func (s *Sketch) Stop() { s.loop.Stop() }

// Play resumes a stopped render loop. No-op after Close.
func (s *Sketch) Play() {
	if s.ctx.Err() != nil {
		return
	}
	s.loop.Play()
}

// Playing reports whether the render loop is playing.
func (s *Sketch) Playing() bool { return s.loop.Playing() }

// Frame runs the frame callbacks requested so far. The game loop calls it
// once per update.
func (s *Sketch) Frame() { s.frames.Flush() }

// Resize reallocates the render surface for a w x h window and updates the
// camera aspect. Non-positive sizes are ignored.
func (s *Sketch) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == s.width && h == s.height) || s.ctx.Err() != nil {
		return
	}
	s.width, s.height = w, h
	s.camera.SetSize(w, h)
	if s.surface != nil {
		s.surface.Deallocate()
	}
	s.surface = ebiten.NewImage(w, h)
}

// Close cancels in-flight asset loads, stops the loop, disposes both node
// trees and releases the render surface. Later calls are no-ops and later
// Resize calls are ignored.
func (s *Sketch) Close() {
	s.cancel()
	s.loop.Stop()
	s.scene.Dispose()
	if s.surface != nil {
		s.surface.Deallocate()
		s.surface = nil
	}
}

// update is the per-frame step run by the render loop.
func (s *Sketch) update() error {
	s.pollAssets()

	s.scroll.Tick()
	st := s.scroll.State()
	s.banner.SetSpeed(st.Target)
	s.banner.SetScroll(st.Position)
	s.plane.SetScroll(st.Position)
	s.updateSlides(st.Position)

	s.clock += s.cfg.FrameStep
	s.plane.Update(s.dt)
	s.scene.Update(s.dt)

	if s.OnFrame != nil {
		return s.OnFrame(st)
	}
	return nil
}

// draw renders the scene into the surface. Without a surface there is
// nothing to draw yet.
func (s *Sketch) draw() error {
	if s.surface == nil {
		return nil
	}
	if s.surface.Bounds().Empty() {
		return errors.New("marquee: draw: empty surface")
	}
	s.scene.Draw(s.surface)
	return nil
}

// slideCount is the modulus for slide cycling: the configured slide count,
// or the overlay line count when there are no slides.
func (s *Sketch) slideCount() int {
	if n := len(s.slides); n > 0 {
		return n
	}
	return len(s.banner.Copies())
}

func (s *Sketch) updateSlides(position float64) {
	idx := 0
	if s.cfg.Plane.CycleTextures {
		idx = SlideIndex(position, s.slideCount())
	}
	if s.cfg.Banner.Overlay {
		s.banner.ShowOnly(idx)
	}
	if idx < 0 || idx >= len(s.slides) {
		return
	}
	s.slide = idx
	// A slide that has not loaded keeps the previous texture on screen.
	if s.slideState[idx] == slideReady {
		s.plane.SetTexture(s.slides[idx])
	}
}

// pollAssets picks up resolved loads without blocking and uploads decoded
// images. Each failure is logged once and leaves its element absent.
func (s *Sketch) pollAssets() {
	if s.font != nil && !s.fontDone {
		if fa, ok, err := s.font.Poll(); ok {
			s.fontDone = true
			s.attachFont(fa, err)
		}
	}
	for i, f := range s.textures {
		if s.slideState[i] != slidePending {
			continue
		}
		img, ok, err := f.Poll()
		if !ok {
			continue
		}
		if err != nil {
			s.slideState[i] = slideFailed
			Logger().Warn("marquee: slide unavailable", slog.Int("slide", i), slog.Any("error", err))
			continue
		}
		s.slides[i] = ebiten.NewImageFromImage(img)
		s.slideState[i] = slideReady
	}
}

func (s *Sketch) attachFont(fa *FontAsset, err error) {
	if err != nil {
		Logger().Warn("marquee: font unavailable, banner stays empty", slog.Any("error", err))
		return
	}
	var atlas *ebiten.Image
	if fa.Atlas != nil {
		atlas = ebiten.NewImageFromImage(fa.Atlas)
	}
	if err := s.banner.Attach(fa.Font, atlas); err != nil {
		Logger().Warn("marquee: banner attach failed", slog.Any("error", err))
		return
	}
	Logger().Info("marquee: banner ready", slog.Int("meshes", len(s.banner.Meshes())))
}
