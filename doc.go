// Package marquee is a scroll-driven 3D banner sketch for [Ebitengine].
//
// A sketch is a small retained-mode 3D scene: a stack of names rendered as
// multichannel signed-distance-field (MSDF) text meshes, and a textured
// plane bent onto a cylinder or sphere shell. Wheel and drag input produce
// a scroll position and a damped velocity. The velocity bends the text, the
// position scrolls the banner and spins the plane, and the rounded position
// picks the slide shown on the plane.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	loader := marquee.FSLoader{FS: os.DirFS("assets")}
//	sk, err := marquee.New(marquee.VariantSphere(), marquee.Assets{
//		Loader:   loader,
//		Font:     "font/zookahs-msdf.json",
//		Atlas:    "font/zookahs.png",
//		Textures: []string{"img/1.jpg", "img/2.jpg", "img/3.jpg"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer sk.Close()
//	marquee.Run(sk, marquee.RunConfig{Title: "marquee", Width: 1280, Height: 720})
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]; a second tree, [Scene.Overlay], is drawn after the main
// tree regardless of depth. Children inherit their parent's transform.
//
// # Render loop
//
// A [RenderLoop] is a Playing/Stopped state machine over a [Scheduler].
// Each tick runs the update step, requests the next frame, then draws, so
// a failed draw never breaks the chain while a failed update does.
//
// # Assets
//
// Fonts and slide textures load on goroutines and surface as [Future]
// values that the update step polls without blocking. The loop starts
// drawing an empty scene before any asset resolves.
//
// [Ebitengine]: https://ebitengine.org
package marquee
