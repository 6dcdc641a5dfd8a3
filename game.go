package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/sheetanim/anim"
	"github.com/milk9111/sheetanim/assets"
	"github.com/milk9111/sheetanim/ecs"
	"github.com/milk9111/sheetanim/ecs/component"
	"github.com/milk9111/sheetanim/ecs/system"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 640
	baseHeight = 360

	minTimeScale = 1.0 / 16
	maxTimeScale = 16
)

type Game struct {
	frames int
	key    string

	lib     *assets.Library
	watcher *assets.Watcher

	world   *ecs.World
	sched   *ecs.Scheduler
	events  *ecs.EventQueue[anim.Event]
	anims   *system.AnimationSystem
	scripts *system.AnimScriptSystem
	render  *system.RenderSystem

	completed int
	lastEvent string
}

func NewGame(key string, zoom float64, watcher *assets.Watcher) (*Game, error) {
	lib := assets.NewLibrary()
	if _, err := lib.Load(key); err != nil {
		return nil, err
	}

	events := &ecs.EventQueue[anim.Event]{}
	g := &Game{
		key:     assets.SheetKey(key),
		lib:     lib,
		watcher: watcher,
		world:   ecs.NewWorld(),
		events:  events,
		anims:   system.NewAnimationSystem(lib, events),
		scripts: system.NewAnimScriptSystem(lib, events, assets.LoadScript),
		render:  system.NewRenderSystem(),
	}
	g.render.ShowPivots = true
	g.sched = ecs.NewScheduler(g.anims, g.scripts, system.NewSpriteSyncSystem(lib), g.render)

	if err := g.spawn(zoom); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) spawn(zoom float64) error {
	e := ecs.CreateEntity(g.world)
	if err := ecs.Add(g.world, e, component.TransformComponent.Kind(), &component.Transform{
		X: baseWidth / 2, Y: baseHeight * 2 / 3, ScaleX: zoom, ScaleY: zoom,
	}); err != nil {
		return err
	}
	if err := ecs.Add(g.world, e, component.SpriteComponent.Kind(), &component.Sprite{}); err != nil {
		return err
	}
	if err := ecs.Add(g.world, e, component.AnimationComponent.Kind(), &component.Animation{Sheet: g.key}); err != nil {
		return err
	}
	if err := ecs.Add(g.world, e, component.AnimEventSenderComponent.Kind(), &component.AnimEventSender{}); err != nil {
		return err
	}
	if err := ecs.Add(g.world, e, component.AnimScriptComponent.Kind(), &component.AnimScript{}); err != nil {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	g.frames++

	g.pollWatcher()
	g.handleInput()
	g.sched.Update(g.world)

	for _, ev := range g.events.Drain() {
		g.completed++
		g.lastEvent = g.animName(ev)
		log.Printf("viewer: entity=%v completed %s", ev.Entity, g.lastEvent)
	}
	return nil
}

func (g *Game) animName(ev anim.Event) string {
	entry, ok := g.lib.Lookup(g.key)
	if !ok || entry.Sheet.ID() != ev.Sheet {
		return ev.Anim.String()
	}
	a, ok := entry.Sheet.Animation(ev.Anim)
	if !ok {
		return ev.Anim.String()
	}
	return a.Name
}

// subject returns the animated entity the viewer controls.
func (g *Game) subject() (ecs.Entity, bool) {
	return ecs.First(g.world, component.AnimationComponent.Kind())
}

func (g *Game) animation() *component.Animation {
	e, ok := g.subject()
	if !ok {
		return nil
	}
	a, _ := ecs.Get(g.world, e, component.AnimationComponent.Kind())
	return a
}

func (g *Game) sprite() *component.Sprite {
	e, ok := g.subject()
	if !ok {
		return nil
	}
	s, _ := ecs.Get(g.world, e, component.SpriteComponent.Kind())
	return s
}

func (g *Game) handleInput() {
	a := g.animation()
	if a == nil {
		return
	}
	p := &a.Animator

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.switchAnim(p, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.switchAnim(p, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		if name, ok := g.neighbour(p, 1); ok {
			h, _ := p.Sheet().HandleOf(name)
			if err := p.Queue(h); err != nil {
				log.Printf("viewer: queue %s: %v", name, err)
			}
		}
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if p.Status() == anim.Playing {
			p.Pause()
		} else {
			p.Play()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		p.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		p.RestartAnim()
		p.Play()
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.anims.TimeScale = min(g.anims.TimeScale*2, maxTimeScale)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.anims.TimeScale = max(g.anims.TimeScale/2, minTimeScale)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.anims.Active = !g.anims.Active
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		if s := g.sprite(); s != nil {
			s.FacingLeft = !s.FacingLeft
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		if s := g.sprite(); s != nil {
			s.FlipY = !s.FlipY
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.render.ShowPivots = !g.render.ShowPivots
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		g.reload(g.key)
	}
}

// neighbour returns the animation name dir steps away from the current one.
func (g *Game) neighbour(p *anim.Animator, dir int) (string, bool) {
	sheet := p.Sheet()
	if sheet == nil {
		return "", false
	}
	names := sheet.Anims().Names()
	if len(names) == 0 {
		return "", false
	}
	cur, _ := sheet.Animation(p.Anim())
	idx := 0
	for i, n := range names {
		if n == cur.Name {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(names)) % len(names)
	return names[idx], true
}

func (g *Game) switchAnim(p *anim.Animator, dir int) {
	name, ok := g.neighbour(p, dir)
	if !ok {
		return
	}
	if err := p.SetAnimByName(name); err != nil {
		log.Printf("viewer: play %s: %v", name, err)
		return
	}
	p.Play()
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if assets.IsScriptFile(path) {
				g.scripts.Invalidate(filepath.Base(path))
			}
			for _, key := range g.lib.KeysForPath(path) {
				g.reload(key)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("viewer: watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(key string) {
	entry, err := g.lib.Reload(key)
	if err != nil {
		log.Printf("viewer: reload %s: %v (keeping previous sheet)", key, err)
		return
	}
	g.scripts.Invalidate(entry.Spec.Script)
	log.Printf("viewer: reloaded %s v%d (%d frames, %d animations)", key, entry.Version, entry.Sheet.FrameCount(), entry.Sheet.Anims().Len())
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	g.sched.Draw(g.world, screen)

	a := g.animation()
	if a == nil {
		return
	}
	p := &a.Animator
	cur := "-"
	if sheet := p.Sheet(); sheet != nil {
		if info, ok := sheet.Animation(p.Anim()); ok {
			cur = fmt.Sprintf("%s [%d..%d] end=%s x%.3g", info.Name, info.From, info.To, sheet.DescribeEnd(info.End), info.Speed())
		}
	}
	queued := "-"
	if h, ok := p.Pending(); ok {
		if info, ok := p.Sheet().Animation(h); ok {
			queued = info.Name
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.2f\nsheet: %s\nanim: %s\nframe: %d  status: %s  progress: %.2f\nqueued: %s  speed: %.3gx  active: %t\ncycles: %d  last: %s\n\n<-/-> anim  Q queue  SPACE pause  S stop  R restart\nUP/DOWN speed  TAB freeze  F flip  V flip vertical  P pivots  F5 reload",
		ebiten.ActualFPS(), g.key, cur, p.FrameIndex(), p.Status(), p.Progress(),
		queued, g.anims.TimeScale*p.TimeScale(), g.anims.Active, g.completed, g.lastEvent,
	))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
