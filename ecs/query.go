package ecs

import (
	"slices"

	"github.com/milk9111/sheetanim/ecs/component"
)

// Query returns the entities that have every one of kinds, iterating the
// smallest store.
func Query(w *World, kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, s)
	}
	slices.SortFunc(stores, func(a, b store) int {
		return len(a.entities()) - len(b.entities())
	})

	var out []Entity
next:
	for _, e := range stores[0].entities() {
		for _, s := range stores[1:] {
			if !s.has(e) {
				continue next
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns any entity that has kind.
func First(w *World, kind component.Kind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok || len(s.entities()) == 0 {
		return 0, false
	}
	return s.entities()[0], true
}
