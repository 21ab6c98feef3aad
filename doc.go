// Package bramble is a retained-mode 2D scene graph for [Ebitengine] where
// every position, size and scale animates on its own.
//
// Each numeric field of a [Node] is a [SmoothDimension]: setting it starts
// a damped spring motion from whatever the field currently shows toward the
// new value, so retargeting mid-flight never jumps. Layout code only states
// where things should be.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and drives
// the [Engine]:
//
//	e, err := bramble.NewEngine(bramble.EngineOptions{Assets: assets})
//	if err != nil {
//		log.Fatal(err)
//	}
//	screen := bramble.NewScreen(e.Root(), "home", 0)
//	bramble.NewSurface(screen, "logo", e.Textures().Png("logo.png"), 0, 0.5, 0.4, 0, 0, 0)
//	e.ChangeActiveScreen(screen)
//	log.Fatal(bramble.Run(e, bramble.RunConfig{Title: "Demo", Width: 640, Height: 480}))
//
// The Engine implements [ebiten.Game], so it can also be run directly with
// ebiten.RunGame.
//
// # Tree
//
// Nodes are linked as a first child, a last child and elder and younger
// siblings. A node's X and Y are its center in its parent's referential,
// measured in the parent's ScaleX/ScaleY units. Moving a node to another
// parent ([Node.MoveToParent]) re-expresses its fields so it stays where it
// is on screen.
//
// A [Squirrel] walks the tree carrying a position and scale; it backs
// display collection, hit testing and glyph reuse.
//
// # Branches
//
// [Node.OpenBranch] shows a subtree, skipping nodes flagged [FlagHidden]
// and running OnOpen hooks. [Node.CloseBranch] hides it again except for
// [FlagExposed] nodes. [Node.ReshapeBranch] propagates a resize through
// OnReshape hooks. Screens are direct children of the root; only the active
// one receives input.
//
// # Input
//
// The engine listens to one pointer, the left mouse button or the first
// touch. A press released in place is a tap; moving past a few pixels
// starts a drag on the nearest node with an OnGrab hook. Keys go to the
// active screen. Input can be injected with [Engine.InjectTap] and friends,
// or scripted with a [TestRunner].
//
// # ECS
//
// Interaction events can be forwarded to an [EventStore]. The
// bramble/ecs module publishes them as [Donburi] events.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package bramble
