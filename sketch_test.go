package marquee

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func newTestSketch(t *testing.T, v Variant, assets Assets) *Sketch {
	t.Helper()
	s, err := New(v, assets)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

// waitAssets blocks until every started load has resolved.
func waitAssets(t *testing.T, s *Sketch) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.font != nil {
		_, _ = s.font.Wait(ctx)
	}
	for _, f := range s.textures {
		_, _ = f.Wait(ctx)
	}
	if ctx.Err() != nil {
		t.Fatal("assets did not resolve in time")
	}
}

func TestNewRejectsInvalidVariant(t *testing.T) {
	v := VariantSphere()
	v.Plane.Radius = -1
	if _, err := New(v, Assets{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewBuildsScene(t *testing.T) {
	s := newTestSketch(t, VariantSphere(), Assets{})
	root := s.Scene().Root()
	if root.NumChildren() != 3 {
		t.Fatalf("root children = %d, want banner, plane and guide", root.NumChildren())
	}
	if root.ChildAt(0) != s.Banner().Group() || root.ChildAt(1) != s.Plane().Group() {
		t.Error("unexpected root order")
	}
	if s.Scene().Overlay().NumChildren() != 1 || s.Scene().Overlay().ChildAt(0) != s.Banner().CopyGroup() {
		t.Error("overlay should hold the banner copy group")
	}
	if !s.Playing() || s.frames.Pending() != 1 {
		t.Errorf("loop should start playing with one frame queued, pending = %d", s.frames.Pending())
	}
	if s.Slide() != -1 {
		t.Errorf("Slide = %d, want -1 without textures", s.Slide())
	}
	if s.Surface() != nil {
		t.Error("surface allocated before Resize")
	}
}

func TestSketchFrameAppliesScroll(t *testing.T) {
	s := newTestSketch(t, VariantSphere(), Assets{})
	s.Scroll().Apply(-3000 * 2) // position 2
	s.Frame()

	if !approxEqual(s.Banner().Group().Y, -2*0.2+0.1, epsilon) {
		t.Errorf("banner y = %v, want -0.3", s.Banner().Group().Y)
	}
	if !approxEqual(s.Plane().Mesh().RotationY, 4*math.Pi, epsilon) {
		t.Errorf("plane rotation = %v, want 4pi", s.Plane().Mesh().RotationY)
	}
	st := s.Scroll().State()
	if !approxEqual(s.Banner().Speed(), st.Target, epsilon) || st.Target == 0 {
		t.Errorf("banner speed = %v, want target %v", s.Banner().Speed(), st.Target)
	}
	if !approxEqual(s.Clock(), 0.05, epsilon) {
		t.Errorf("Clock = %v, want 0.05", s.Clock())
	}
	if s.Loop().Frames() != 1 {
		t.Errorf("Frames = %d, want 1", s.Loop().Frames())
	}
}

func TestSketchStopPlay(t *testing.T) {
	s := newTestSketch(t, VariantSphere(), Assets{})
	s.Frame()
	s.Stop()
	s.Frame()
	s.Frame()
	if s.Loop().Frames() != 1 || s.Playing() {
		t.Errorf("frames = %d playing = %v after Stop", s.Loop().Frames(), s.Playing())
	}
	s.Play()
	s.Play()
	if s.frames.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", s.frames.Pending())
	}
	s.Frame()
	if s.Loop().Frames() != 2 {
		t.Errorf("Frames = %d, want 2", s.Loop().Frames())
	}
}

func TestSketchOnFrameErrorHalts(t *testing.T) {
	errStop := errors.New("stop here")
	s := newTestSketch(t, VariantCylinder(), Assets{})
	calls := 0
	s.OnFrame = func(ScrollState) error {
		calls++
		if calls == 2 {
			return errStop
		}
		return nil
	}
	for i := 0; i < 5; i++ {
		s.Frame()
	}
	if calls != 2 {
		t.Errorf("OnFrame calls = %d, want 2", calls)
	}
	if !errors.Is(s.Loop().Err(), errStop) {
		t.Errorf("Err = %v, want errStop", s.Loop().Err())
	}
}

func TestSketchIntroDolly(t *testing.T) {
	v := VariantSphere()
	v.Camera.IntroDistance = 2
	v.Camera.IntroDuration = 1
	s := newTestSketch(t, v, Assets{})
	cam := s.Scene().Camera()
	if cam.Z != 4.5 || !cam.Dollying() {
		t.Fatalf("camera z = %v dollying = %v, want 4.5 true", cam.Z, cam.Dollying())
	}
	for i := 0; i < 120; i++ {
		s.Frame()
	}
	if cam.Dollying() || !approxEqual(cam.Z, 2.5, 1e-6) {
		t.Errorf("after intro: z = %v dollying = %v", cam.Z, cam.Dollying())
	}
}

func TestSketchLoadsAssets(t *testing.T) {
	s := newTestSketch(t, VariantSphere(), Assets{
		Loader:   FSLoader{FS: testAssetFS(t)},
		Font:     "font.json",
		Atlas:    "font.png",
		Textures: []string{"slide1.png", "missing.png", ""},
	})
	if len(s.textures) != 2 {
		t.Fatalf("textures = %d, want 2 (empty names skipped)", len(s.textures))
	}
	waitAssets(t, s)
	s.Frame()

	if !s.Banner().Ready() || len(s.Banner().Meshes()) != len(DefaultLines) {
		t.Fatalf("banner ready = %v meshes = %d", s.Banner().Ready(), len(s.Banner().Meshes()))
	}
	if s.Banner().Material().Images[0] == nil {
		t.Error("atlas not bound to the text material")
	}
	if s.slideState[0] != slideReady || s.slideState[1] != slideFailed {
		t.Errorf("slide states = %v", s.slideState)
	}
	if s.Slide() != 0 || s.Plane().Texture() == nil || s.Plane().Texture() != s.slides[0] {
		t.Errorf("slide = %d, plane texture not set to slide 0", s.Slide())
	}
	for i, c := range s.Banner().Copies() {
		if c.Visible != (i == 0) {
			t.Errorf("copy %d visible = %v", i, c.Visible)
		}
	}

	// Slide 1 failed to load: the plane keeps slide 0.
	s.Scroll().Apply(-3000)
	s.Frame()
	if s.Slide() != 1 || s.Plane().Texture() != s.slides[0] {
		t.Errorf("slide = %d, plane should keep the last loaded texture", s.Slide())
	}
	if !s.Banner().Copies()[1].Visible || s.Banner().Copies()[0].Visible {
		t.Error("overlay should follow the slide index")
	}
}

func TestSketchFontFailureKeepsRunning(t *testing.T) {
	s := newTestSketch(t, VariantSphere(), Assets{
		Loader: FSLoader{FS: testAssetFS(t)},
		Font:   "missing.json",
		Atlas:  "font.png",
	})
	waitAssets(t, s)
	s.Frame()
	s.Frame()
	if s.Banner().Ready() {
		t.Error("banner attached without a font")
	}
	if !s.fontDone {
		t.Error("font failure should be consumed")
	}
	if s.Loop().Frames() != 2 || s.Loop().Err() != nil {
		t.Errorf("frames = %d err = %v, loop should keep running", s.Loop().Frames(), s.Loop().Err())
	}
}

func TestSketchOverlayCyclesWithoutTextures(t *testing.T) {
	s := newTestSketch(t, VariantSphere(), Assets{
		Loader: FSLoader{FS: testAssetFS(t)},
		Font:   "font.json",
		Atlas:  "font.png",
	})
	waitAssets(t, s)
	s.Scroll().Apply(-3000 * 3)
	s.Frame()
	copies := s.Banner().Copies()
	if len(copies) != len(DefaultLines) {
		t.Fatalf("copies = %d", len(copies))
	}
	for i, c := range copies {
		if c.Visible != (i == 3) {
			t.Errorf("copy %d visible = %v, want only 3", i, c.Visible)
		}
	}
}

func TestSketchCloseDisposes(t *testing.T) {
	s := newTestSketch(t, VariantSphere(), Assets{})
	s.Resize(64, 32)
	root, overlay := s.Scene().Root(), s.Scene().Overlay()
	banner, plane := s.Banner().Group(), s.Plane().Group()

	s.Close()
	for name, n := range map[string]*Node{"root": root, "overlay": overlay, "banner": banner, "plane": plane} {
		if !n.IsDisposed() {
			t.Errorf("%s not disposed", name)
		}
	}
	if s.Surface() != nil {
		t.Error("surface kept after Close")
	}
	if s.Playing() {
		t.Error("loop still playing after Close")
	}
	s.Resize(128, 64)
	if s.Surface() != nil {
		t.Error("Resize after Close allocated a surface")
	}
	s.Play()
	if s.Playing() {
		t.Error("Play restarted a closed sketch")
	}
	// Close is idempotent.
	s.Close()
}

func TestSketchResize(t *testing.T) {
	s := newTestSketch(t, VariantSphere(), Assets{})
	s.Resize(0, 100)
	if s.Surface() != nil {
		t.Error("zero size should be ignored")
	}
	s.Resize(200, 100)
	if s.Surface() == nil || s.Surface().Bounds().Dx() != 200 {
		t.Fatal("surface not allocated")
	}
	if s.Scene().Camera().Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", s.Scene().Camera().Aspect)
	}
	surf := s.Surface()
	s.Resize(200, 100)
	if s.Surface() != surf {
		t.Error("same size should keep the surface")
	}
}
