package bramble

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// rootFlags are the flags of the root node: always shown and displayed,
// searched and reshaped.
const rootFlags = FlagExposed | FlagShow | FlagBranchToDisplay | FlagSelectableRoot | FlagReshapableRoot

const (
	clearColorLambda   = 8.0
	defaultDrawableCap = 256
)

// EngineOptions configure NewEngine. Every field is optional.
type EngineOptions struct {
	// Assets holds the png files of Png textures.
	Assets fs.FS
	// Tilings is the JSON tiling table read by LoadTilings.
	Tilings []byte
	// Strings holds the localized strings of every language.
	Strings StringTable
	// Language is the initial display language.
	Language Language
	// Clock replaces the engine clock, mostly for tests driving time with
	// FrameClock.Advance. Update does not advance an injected clock.
	Clock *FrameClock
}

// Engine owns the tree, its clock and resources, and dispatches input to the
// active screen. It implements ebiten.Game.
type Engine struct {
	clock     *FrameClock
	ownsClock bool
	root      *Node
	textures  *TextureCache
	meshes    *MeshCache
	camera    *Camera
	viewport  Viewport
	strings   StringTable
	language  Language
	store     EventStore
	debug     bool

	activeScreen *Node
	selected     *Node

	clearR, clearG, clearB SmoothDimension

	// Hooks
	OnEveryFrame        func()      // start of every Update, after the clock
	OnViewReshaped      func()      // the usable frame changed size
	ExtraCheckAtOpening func(*Node) // called on every node ChangeActiveScreen opens
	ExtraCheckAtClosing func(*Node) // called on every node ChangeActiveScreen closes
	// SetNodeForDrawing replaces the default per-node drawing preparation.
	SetNodeForDrawing NodeForDrawing

	tasks []func() bool

	// Render state
	drawables  []Drawable
	batch      batcher
	updateTime time.Duration

	// Input state
	pointer     pointerState
	keysBuf     []ebiten.Key
	touchBuf    []ebiten.TouchID
	injectQueue []syntheticPointerEvent
	keyQueue    []syntheticKeyEvent
	testRunner  *TestRunner

	// Screenshots
	ScreenshotDir   string
	screenshotQueue []string

	fps *fpsCounter
}

// NewEngine creates an engine with an empty root sized to a square window.
func NewEngine(opts EngineOptions) (*Engine, error) {
	var tilings map[string]Tiling
	if len(opts.Tilings) > 0 {
		var err error
		tilings, err = LoadTilings(opts.Tilings)
		if err != nil {
			return nil, err
		}
	}
	e := &Engine{
		clock:         opts.Clock,
		strings:       opts.Strings,
		language:      opts.Language,
		meshes:        NewMeshCache(),
		drawables:     make([]Drawable, 0, defaultDrawableCap),
		ScreenshotDir: "screenshots",
	}
	if e.clock == nil {
		e.clock = NewFrameClock()
		e.ownsClock = true
	}
	var lookup StringLookup
	if e.strings != nil {
		lookup = e.strings.Lookup(e)
	}
	textures, err := NewTextureCache(opts.Assets, tilings, lookup)
	if err != nil {
		return nil, fmt.Errorf("bramble: failed to create engine: %w", err)
	}
	e.textures = textures
	e.camera = newCamera(e.clock)
	e.viewport = newViewport(e.clock)
	e.root = NewRootNode(e.clock, "root", 0, 0, 4, 4, DefaultLambda, rootFlags)
	e.clearR = NewSmoothDimension(e.clock, 0, clearColorLambda)
	e.clearG = NewSmoothDimension(e.clock, 0, clearColorLambda)
	e.clearB = NewSmoothDimension(e.clock, 0, clearColorLambda)
	return e, nil
}

// Root returns the root node.
func (e *Engine) Root() *Node { return e.root }

// Clock returns the engine clock.
func (e *Engine) Clock() *FrameClock { return e.clock }

// Textures returns the texture cache.
func (e *Engine) Textures() *TextureCache { return e.textures }

// Meshes returns the mesh cache.
func (e *Engine) Meshes() *MeshCache { return e.meshes }

// Camera returns the camera the root is drawn from.
func (e *Engine) Camera() *Camera { return e.camera }

// Viewport returns the window sizing.
func (e *Engine) Viewport() *Viewport { return &e.viewport }

// ActiveScreen returns the screen receiving input, or nil.
func (e *Engine) ActiveScreen() *Node { return e.activeScreen }

// SelectedNode returns the node being dragged, or nil.
func (e *Engine) SelectedNode() *Node { return e.selected }

// Language returns the display language.
func (e *Engine) Language() Language { return e.language }

// SetLanguage changes the display language and refreshes every localized
// texture.
func (e *Engine) SetLanguage(l Language) {
	if l == e.language {
		return
	}
	e.language = l
	e.textures.UpdateAllLocalizedStrings()
}

// SetEventStore sets the optional ECS bridge.
func (e *Engine) SetEventStore(store EventStore) {
	e.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings are logged and per-frame timing stats are logged at
// debug level.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	setGlobalDebug(enabled)
}

// SetClearColor animates the background toward (r, g, b).
func (e *Engine) SetClearColor(r, g, b float64) {
	e.clearR.SetPos(r)
	e.clearG.SetPos(g)
	e.clearB.SetPos(b)
}

// InitClearColor sets the background to (r, g, b) at once.
func (e *Engine) InitClearColor(r, g, b float64) {
	e.clearR.Snap(r)
	e.clearG.Snap(g)
	e.clearB.Snap(b)
}

// ClearColor returns the current background color.
func (e *Engine) ClearColor() Color {
	return Color{e.clearR.Pos(), e.clearG.Pos(), e.clearB.Pos(), 1}
}

// --- Screens ---

// ChangeActiveScreen closes the active screen and opens screen. Asking for
// the active screen again reopens it without the extra checks. A nil screen
// only closes the active one.
func (e *Engine) ChangeActiveScreen(screen *Node) {
	if screen != nil && !screen.ContainsAFlag(FlagIsScreen) {
		warnf(screen, "change active screen: not a screen")
		return
	}
	if e.activeScreen == screen {
		if screen != nil {
			screen.CloseBranch(nil)
			screen.OpenBranch(nil)
		}
		return
	}
	if e.activeScreen != nil {
		e.activeScreen.CloseBranch(e.ExtraCheckAtClosing)
	}
	e.selected = nil
	e.activeScreen = screen
	if screen == nil {
		logger.Debug("no active screen")
		return
	}
	screen.OpenBranch(e.ExtraCheckAtOpening)
}

// --- Frame tasks ---

// FrameScheduler runs work once per frame. Engine implements it.
type FrameScheduler interface {
	AddFrameTask(fn func() bool)
}

// AddFrameTask runs fn at every Update, after input, until it returns false.
func (e *Engine) AddFrameTask(fn func() bool) {
	e.tasks = append(e.tasks, fn)
}

// Tasks added while the tasks run start at the next frame.
func (e *Engine) runFrameTasks() {
	tasks := e.tasks
	e.tasks = nil
	var kept []func() bool
	for _, fn := range tasks {
		if fn() {
			kept = append(kept, fn)
		}
	}
	e.tasks = append(kept, e.tasks...)
}

// --- Suspension ---

// Suspend pauses the clock and releases every texture image, for when the
// window loses focus for long.
func (e *Engine) Suspend() {
	e.clock.Pause()
	e.textures.Suspend()
}

// Resume undoes Suspend.
func (e *Engine) Resume() {
	e.textures.Resume()
	e.clock.Unpause()
}

// --- ebiten.Game ---

// Update advances the clock, runs the test runner, dispatches input and
// moves the camera. It implements ebiten.Game.
func (e *Engine) Update() error {
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}
	if e.ownsClock {
		e.clock.Update(time.Now())
	}
	tps := ebiten.TPS()
	dt := float32(1) / float32(tps)

	if e.OnEveryFrame != nil {
		e.OnEveryFrame()
	}
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.processInput()
	e.runFrameTasks()
	e.camera.update(dt, tps)
	if e.fps != nil {
		e.fps.update()
	}
	if e.debug {
		e.updateTime = time.Since(t0)
	}
	return nil
}

// Draw collects the drawables of the tree and submits them to screen. It
// implements ebiten.Game.
func (e *Engine) Draw(screen *ebiten.Image) {
	stats := debugStats{updateTime: e.updateTime}
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	e.viewport.updateFullSize()
	screen.Fill(e.ClearColor().rgba())

	e.drawables = e.CollectDrawables(e.drawables[:0])
	if e.debug {
		stats.collectTime = time.Since(t0)
		stats.drawableCount = len(e.drawables)
		t0 = time.Now()
	}

	proj := e.viewport.Projection(e.camera.Z.Pos())
	e.batch.submit(screen, e.drawables, &proj)
	if e.debug {
		stats.submitTime = time.Since(t0)
		stats.vertexCount = e.batch.vertexCount
		e.debugLog(stats)
	}

	// Drop node references until the next frame.
	for i := range e.drawables {
		e.drawables[i] = Drawable{}
	}
	e.flushScreenshots(screen)
}

// Layout resizes the viewport to the window and lets the tree adapt. It
// implements ebiten.Game.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	if e.viewport.Resize(float64(outsideWidth), float64(outsideHeight)) {
		e.viewReshaped()
	}
	return outsideWidth, outsideHeight
}

// viewReshaped gives the usable frame to the root and reshapes the tree.
func (e *Engine) viewReshaped() {
	logger.Debug("view reshaped",
		"width", e.viewport.Width, "height", e.viewport.Height,
		"usableWidth", e.viewport.UsableWidth, "usableHeight", e.viewport.UsableHeight)
	e.root.Width.Set(e.viewport.UsableWidth, false, true)
	e.root.Height.Set(e.viewport.UsableHeight, false, true)
	e.root.ReshapeBranch()
	if e.OnViewReshaped != nil {
		e.OnViewReshaped()
	}
}
