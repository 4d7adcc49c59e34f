// Package shatter is a frame-driven particle engine for [Ebitengine] that
// plays two choreographed sequences.
//
// [Warp] is an entry sequence. A field of glyphs rushes toward the viewer,
// slows while a caption types itself out, then accelerates into a white
// reveal. [Disassembly] shatters the viewport into shards that fall, bounce
// and settle. It then pulls them back together to spell a word while the
// leftovers orbit the center.
//
// Both sequences only consume a surface size and a [Canvas], and only
// produce a completion callback plus optional [SequenceEvent]s.
//
// # Quick start
//
// The simplest way to play a sequence is [Run], which creates a window and
// game loop for you:
//
//	seq, err := shatter.NewDisassembly(800, 600, shatter.DefaultDisassemblyConfig(),
//		shatter.DisassemblyOptions{OnComplete: func() { log.Print("done") }})
//	if err != nil {
//		log.Fatal(err)
//	}
//	shatter.Run(seq, shatter.RunConfig{
//		Title: "shatter", Width: 800, Height: 600, ExitOnComplete: true,
//	})
//
// For full control, wrap the sequence in a [Driver] and tick it yourself,
// or embed the Driver's [ebiten.Game] methods in your own game.
//
// # Surfaces
//
// [EbitenCanvas] draws with DrawTriangles32 and text/v2. [ImageCanvas] draws
// on the CPU into an *image.RGBA for headless export and tests. The term
// subpackage plays sequences in a terminal through tcell.
//
// # Configuration
//
// Every tunable lives in [DisassemblyConfig] and [WarpConfig]. [LoadConfig]
// reads them from YAML over the defaults. Set Seed for reproducible runs.
//
// Sequences report phase changes, caption progress and completion to an
// [EventSink]; shatter/ecs publishes them into a [Donburi] world.
//
// # Keys
//
// In a window, Esc cancels the sequence, F12 queues a screenshot and F3
// toggles the FPS overlay. Change [Driver].Keys to rebind, or set it to nil.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package shatter
