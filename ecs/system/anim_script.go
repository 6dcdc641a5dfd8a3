package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/sheetanim/anim"
	"github.com/milk9111/sheetanim/ecs"
	"github.com/milk9111/sheetanim/ecs/component"
)

const animFinishDispatchScript = `
if __anim != "" {
	on_finish(__engine, __anim, __state)
}
`

type animScriptRuntime struct {
	compiled *tengo.Compiled
}

// AnimScriptSystem runs the Tengo script of an entity once for every
// completed animation cycle published this tick. The script defines
//
//	on_finish := func(anim, name, state) { ... }
//
// where anim exposes play, queue, pause, stop, restart, speed and current
// for the entity's animator, and state is a map kept per entity.
type AnimScriptSystem struct {
	sheets  SheetSource
	events  *ecs.EventQueue[anim.Event]
	load    func(path string) ([]byte, error)
	scripts map[string]*animScriptRuntime
	states  map[ecs.Entity]*tengo.Map
}

func NewAnimScriptSystem(sheets SheetSource, events *ecs.EventQueue[anim.Event], load func(path string) ([]byte, error)) *AnimScriptSystem {
	return &AnimScriptSystem{
		sheets:  sheets,
		events:  events,
		load:    load,
		scripts: map[string]*animScriptRuntime{},
		states:  map[ecs.Entity]*tengo.Map{},
	}
}

// Invalidate drops the compiled script loaded from path so the next event
// recompiles it. An empty path drops every script.
func (s *AnimScriptSystem) Invalidate(path string) {
	if path == "" {
		clear(s.scripts)
		return
	}
	delete(s.scripts, path)
}

func (s *AnimScriptSystem) Update(w *ecs.World) {
	if s == nil || s.events == nil {
		return
	}
	for _, ev := range s.events.Pending() {
		e, ok := ev.Entity.(ecs.Entity)
		if !ok || !ecs.IsAlive(w, e) {
			continue
		}
		sc, ok := ecs.Get(w, e, component.AnimScriptComponent.Kind())
		if !ok {
			continue
		}
		a, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
		if !ok {
			continue
		}
		sheet := a.Animator.Sheet()
		if sheet == nil || sheet.ID() != ev.Sheet {
			continue
		}
		finished, ok := sheet.Animation(ev.Anim)
		if !ok {
			continue
		}

		path := sc.Path
		if path == "" && s.sheets != nil {
			if entry, ok := s.sheets.Lookup(a.Sheet); ok {
				path = entry.Spec.Script
			}
		}
		if path == "" {
			continue
		}

		rt, err := s.runtime(path)
		if err != nil {
			log.Printf("anim script: entity=%s load %s: %v", e, path, err)
			continue
		}
		if err := rt.run(finished.Name, buildAnimScriptEngine(&a.Animator), s.state(e)); err != nil {
			log.Printf("anim script: entity=%s %s: %v", e, path, err)
		}
	}

	for e := range s.states {
		if !ecs.IsAlive(w, e) {
			delete(s.states, e)
		}
	}
}

func (s *AnimScriptSystem) state(e ecs.Entity) *tengo.Map {
	st, ok := s.states[e]
	if !ok {
		st = &tengo.Map{Value: map[string]tengo.Object{}}
		s.states[e] = st
	}
	return st
}

func (s *AnimScriptSystem) runtime(path string) (*animScriptRuntime, error) {
	if rt, ok := s.scripts[path]; ok {
		return rt, nil
	}
	if s.load == nil {
		return nil, fmt.Errorf("no script loader")
	}
	src, err := s.load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + animFinishDispatchScript))
	_ = script.Add("__anim", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	rt := &animScriptRuntime{compiled: compiled}
	s.scripts[path] = rt
	return rt, nil
}

func (rt *animScriptRuntime) run(name string, engine *tengo.ImmutableMap, state *tengo.Map) error {
	if err := rt.compiled.Set("__anim", name); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildAnimScriptEngine(a *anim.Animator) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["play"] = &tengo.UserFunction{Name: "play", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if err := a.SetAnimByName(name); err != nil {
			return tengo.FalseValue, nil
		}
		a.Play()
		return tengo.TrueValue, nil
	}}

	values["queue"] = &tengo.UserFunction{Name: "queue", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 || a.Sheet() == nil {
			return tengo.FalseValue, nil
		}
		h, err := a.Sheet().HandleOf(strings.TrimSpace(objectAsString(args[0])))
		if err != nil {
			return tengo.FalseValue, nil
		}
		if err := a.Queue(h); err != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["pause"] = &tengo.UserFunction{Name: "pause", Value: func(args ...tengo.Object) (tengo.Object, error) {
		a.Pause()
		return tengo.UndefinedValue, nil
	}}

	values["stop"] = &tengo.UserFunction{Name: "stop", Value: func(args ...tengo.Object) (tengo.Object, error) {
		a.Stop()
		return tengo.UndefinedValue, nil
	}}

	values["restart"] = &tengo.UserFunction{Name: "restart", Value: func(args ...tengo.Object) (tengo.Object, error) {
		a.RestartAnim()
		a.Play()
		return tengo.UndefinedValue, nil
	}}

	values["speed"] = &tengo.UserFunction{Name: "speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return &tengo.Float{Value: a.TimeScale()}, nil
		}
		v, ok := tengo.ToFloat64(args[0])
		if !ok || a.SetTimeScale(v) != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["current"] = &tengo.UserFunction{Name: "current", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if a.Sheet() == nil {
			return &tengo.String{Value: ""}, nil
		}
		cur, _ := a.Sheet().Animation(a.Anim())
		return &tengo.String{Value: cur.Name}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
