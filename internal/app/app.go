// Package app runs the sphere menu in an SDL window: it owns the main loop,
// routes input to the menu, reflects the active item in the window title and
// reloads the team manifest when it changes.
package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/teamsphere/internal/assets"
	"github.com/Faultbox/teamsphere/internal/config"
	"github.com/Faultbox/teamsphere/internal/content"
	"github.com/Faultbox/teamsphere/internal/engine/audio"
	"github.com/Faultbox/teamsphere/internal/engine/framebuffer"
	"github.com/Faultbox/teamsphere/internal/engine/input"
	"github.com/Faultbox/teamsphere/internal/engine/overlay"
	"github.com/Faultbox/teamsphere/internal/engine/renderer"
	"github.com/Faultbox/teamsphere/internal/engine/snapshot"
	"github.com/Faultbox/teamsphere/internal/engine/texture"
	"github.com/Faultbox/teamsphere/internal/engine/window"
	"github.com/Faultbox/teamsphere/internal/logger"
	"github.com/Faultbox/teamsphere/internal/menu"
)

// App is the running viewer.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	input    *input.Input
	renderer *renderer.DiscRenderer
	menu     *menu.Menu
	assets   *assets.Manager
	audio    *audio.Manager
	watcher  *content.Watcher
	shots    *snapshot.Writer
	overlay  *overlay.Overlay
	faces    *overlay.Faces

	section    string
	caption    string
	activeItem *content.MenuItem
	facesDPR   float32
	panelKey   string

	hint   *Hint
	resize *Debouncer
	clicks ClickTracker

	openURL func(string) error
	running bool
}

// New opens the window, loads the manifest and builds the menu.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:     cfg,
		log:     logger.Named("app"),
		input:   input.New(),
		assets:  assets.NewManager(&http.Client{Timeout: cfg.Atlas.LoadTimeout}),
		shots:   snapshot.NewWriter("snapshots", "teamsphere"),
		section: content.DefaultSection,
		resize:  NewDebouncer(ResizeDebounce),
		openURL: sdl.OpenURL,
	}

	items := a.loadItems()

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.renderer = renderer.New()
	a.menu, err = menu.New(a.renderer, a.assets, items, menu.Options{
		DiscScale:    cfg.Menu.DiscScale,
		SphereRadius: cfg.Menu.SphereRadius,
		DiscSteps:    cfg.Menu.DiscSteps,
		Subdivisions: cfg.Menu.Subdivisions,
		MaxDPR:       cfg.Window.MaxDPR,
		ClearColor:   cfg.Menu.ClearColor,
		Atlas: texture.AtlasConfig{
			CellSize:    cfg.Atlas.CellSize,
			LoadTimeout: cfg.Atlas.LoadTimeout,
			Concurrency: cfg.Atlas.Concurrency,
			Fallback:    menu.FallbackColor(cfg.Atlas.FallbackColor),
		},
		OnInit: func(m *menu.Menu) {
			a.log.Info("sphere initialized", zap.Int("items", len(m.Items())))
		},
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create menu: %w", err)
	}

	a.menu.OnActiveItem(a.activeItemChanged)
	a.menu.OnMovement(a.movementChanged)

	w, h := a.window.Size()
	a.input.SetSize(w, h)
	a.menu.Resize(w, h, a.window.PixelRatio())

	if a.overlay, err = overlay.New(); err != nil {
		a.log.Warn("caption overlay disabled", zap.Error(err))
		a.overlay = nil
	}

	a.initAudio()
	a.initWatcher()

	return a, nil
}

func (a *App) loadItems() []content.MenuItem {
	path := a.cfg.Content.File
	m, err := content.LoadManifest(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.log.Info("no manifest, showing placeholder", zap.String("path", path))
		} else {
			a.log.Warn("manifest unreadable, showing placeholder", zap.String("path", path), zap.Error(err))
		}
		return nil
	}
	a.section = m.Section
	a.log.Info("manifest loaded", zap.String("path", path), zap.Int("items", len(m.Items)))
	return m.Items
}

func (a *App) initAudio() {
	if !a.cfg.Audio.Enabled {
		return
	}
	a.audio = audio.New()
	a.audio.SetSFXVolume(float64(a.cfg.Audio.SFXVolume))
	if path := a.cfg.Audio.SelectSound; path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			err = a.audio.LoadCue(audio.CueSelect, data)
		}
		if err != nil {
			a.log.Warn("select sound unusable, using default", zap.String("path", path), zap.Error(err))
		}
	}
	if err := a.audio.Init(); err != nil {
		a.log.Warn("audio disabled", zap.Error(err))
		a.audio = nil
	}
}

func (a *App) initWatcher() {
	if !a.cfg.Content.Watch {
		return
	}
	w, err := content.NewWatcher(a.cfg.Content.File, content.DefaultDebounce)
	if err != nil {
		a.log.Warn("manifest watch disabled", zap.Error(err))
		return
	}
	a.watcher = w
}

// Run drives the main loop until the window closes or Escape is pressed.
func (a *App) Run() error {
	a.running = true
	start := time.Now()
	a.hint = NewHint(start, HintDuration)
	a.updateTitle(start)

	frameCount := 0
	fpsTimer := start

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents(now)

		if w, h, ok := a.resize.Due(now); ok {
			a.input.SetSize(w, h)
			a.menu.Resize(w, h, a.window.PixelRatio())
		}

		a.pollManifest()

		a.menu.Run(now.Sub(start).Seconds() * 1000)
		a.drawPanel(now)
		a.updateTitle(now)
		a.window.SwapBuffers()

		frameCount++
		if now.Sub(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = now
		}
	}

	return nil
}

func (a *App) handleEvents(now time.Time) {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			a.resize.Trigger(now, e.Width, e.Height)
		case input.EventPointerDown:
			a.pointerDown(e.X, e.Y)
		case input.EventPointerMove:
			a.clicks.Move(e.X, e.Y)
			a.menu.PointerMove(e.X, e.Y)
		case input.EventPointerUp:
			a.pointerUp(e.X, e.Y)
		case input.EventPointerLeave:
			a.clicks.Cancel()
			a.menu.PointerLeave()
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_F12:
				a.snapshot()
			case sdl.SCANCODE_RETURN, sdl.SCANCODE_SPACE:
				if !a.menu.Moving() {
					a.activate()
				}
			default:
				if platform, ok := socialForKey(e.Key); ok {
					if item, ok := a.currentItem(); ok {
						a.openSocial(item, platform)
					}
				}
			}
		}
	}
}

// pointerDown notes whether the sphere was at rest before the press; the
// press itself starts a drag, so Moving is true by the time it ends.
func (a *App) pointerDown(x, y float32) {
	a.clicks.Down(x, y, !a.menu.Moving())
	a.menu.PointerDown(x, y)
}

// pointerUp activates the active item when the press was a click on its
// disc.
func (a *App) pointerUp(x, y float32) {
	a.menu.PointerUp()
	if !a.clicks.Up() {
		return
	}
	if item, ok := a.menu.PickItem(x, y); ok && item == a.menu.ActiveItem() {
		a.activate()
	}
}

func (a *App) activeItemChanged(index int) {
	items := a.menu.Items()
	if index < 0 || index >= len(items) {
		a.caption = ""
		a.activeItem = nil
		return
	}
	item := items[index]
	a.activeItem = &item
	a.caption = content.Caption(a.section, item)
	a.log.Debug("active item", zap.Int("index", index), zap.String("title", items[index].Title))
	a.playCue(audio.CueSelect)
}

func (a *App) movementChanged(moving bool) {
	if !moving {
		return
	}
	if a.hint != nil {
		a.hint.Dismiss()
	}
	a.playCue(audio.CueGrab)
}

func (a *App) playCue(cue audio.Cue) {
	if a.audio == nil {
		return
	}
	if err := a.audio.Play(cue); err != nil {
		a.log.Debug("cue failed", zap.Error(err))
	}
}

// activate follows the active item's link: external links open in the
// system browser, anything else is logged as an internal route.
func (a *App) activate() {
	if item, ok := a.currentItem(); ok {
		a.follow(item)
	}
}

func (a *App) currentItem() (content.MenuItem, bool) {
	items := a.menu.Items()
	index := a.menu.ActiveItem()
	if index < 0 || index >= len(items) {
		return content.MenuItem{}, false
	}
	return items[index], true
}

// openSocial opens the item's profile on platform, if it has one.
func (a *App) openSocial(item content.MenuItem, platform string) {
	url, ok := item.SocialLinks()[platform]
	if !ok {
		return
	}
	if err := a.openURL(url); err != nil {
		a.log.Warn("failed to open profile", zap.String("url", url), zap.Error(err))
	}
}

func (a *App) follow(item content.MenuItem) {
	if item.Link == "" {
		return
	}
	if !item.IsExternal() {
		a.log.Info("Internal route", zap.String("link", item.Link))
		return
	}
	if err := a.openURL(item.Link); err != nil {
		a.log.Warn("failed to open link", zap.String("link", item.Link), zap.Error(err))
	}
}

func (a *App) pollManifest() {
	if a.watcher == nil {
		return
	}
	select {
	case <-a.watcher.Changes():
	default:
		return
	}
	a.assets.Forget()
	a.activeItem = nil
	items := a.loadItems()
	a.menu.SetItems(items)
	a.log.Info("manifest reloaded", zap.Int("items", len(a.menu.Items())))
}

// drawPanel re-renders the caption panel when its content or the pixel
// ratio changed, then draws it in the bottom-left corner. The panel is
// hidden while the sphere moves.
func (a *App) drawPanel(now time.Time) {
	if a.overlay == nil || a.menu.Moving() {
		return
	}

	dpr := a.window.PixelRatio()
	if a.faces == nil || dpr != a.facesDPR {
		faces, err := overlay.NewFaces(dpr)
		if err != nil {
			a.log.Warn("caption fonts unavailable", zap.Error(err))
			a.overlay.Release()
			a.overlay = nil
			return
		}
		if a.faces != nil {
			a.faces.Close()
		}
		a.faces, a.facesDPR = faces, dpr
		a.panelKey = ""
	}

	lines := panelLines(a.faces, a.section, a.activeItem, a.hint != nil && a.hint.Visible(now))
	var key strings.Builder
	for _, l := range lines {
		key.WriteString(l.Text)
		key.WriteByte('\n')
	}
	if k := key.String(); k != a.panelKey {
		a.panelKey = k
		a.overlay.SetImage(overlay.Compose(lines, int(panelPadding*dpr), panelBackground))
	}

	dw, dh := a.window.DrawableSize()
	_, ph := a.overlay.Size()
	margin := 24 * dpr
	a.overlay.Draw(margin, float32(dh)-float32(ph)-margin, dw, dh)
}

func (a *App) updateTitle(now time.Time) {
	a.window.SetTitle(FormatTitle(a.window.Title(), a.caption, a.hint != nil && a.hint.Visible(now)))
}

// snapshot draws one extra frame offscreen and writes it as PNG.
func (a *App) snapshot() {
	w, h := a.window.DrawableSize()
	fb, err := framebuffer.New(int32(w), int32(h))
	if err != nil {
		a.log.Error("snapshot failed", zap.Error(err))
		return
	}
	defer fb.Destroy()

	restore := fb.Bind()
	a.menu.Tick(0)
	img := fb.ReadImage()
	restore()

	path, err := a.shots.Save(img)
	if err != nil {
		a.log.Error("snapshot failed", zap.Error(err))
		return
	}
	a.log.Info("snapshot saved", zap.String("path", path))
}

// Close tears everything down in reverse order of creation.
func (a *App) Close() {
	a.log.Info("closing")

	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.faces != nil {
		a.faces.Close()
	}
	if a.overlay != nil {
		a.overlay.Release()
	}
	if a.menu != nil {
		a.menu.Close()
	}
	if a.audio != nil {
		a.audio.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
