package ecs

import (
	"testing"

	"github.com/milk9111/sheetanim/anim"
	"github.com/milk9111/sheetanim/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for range c.create {
				ents = append(ents, CreateEntity(w))
			}
			assert.Len(t, Entities(w), c.create)
			for _, e := range ents {
				assert.True(t, e.Valid())
				assert.True(t, IsAlive(w, e))
			}
			if c.destroyIndex < 0 {
				return
			}
			dead := ents[c.destroyIndex]
			assert.True(t, DestroyEntity(w, dead))
			assert.False(t, IsAlive(w, dead))
			assert.False(t, DestroyEntity(w, dead))
			assert.Len(t, Entities(w), c.create-1)
			assert.NotContains(t, Entities(w), dead)
		})
	}
}

func TestEntitySlotReuse(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	old := CreateEntity(w)
	require.NoError(t, Add(w, old, k, intPtr(1)))
	require.True(t, DestroyEntity(w, old))

	reused := CreateEntity(w)
	assert.Equal(t, old.id(), reused.id())
	assert.NotEqual(t, old.generation(), reused.generation())
	assert.NotEqual(t, old, reused)

	assert.False(t, IsAlive(w, old))
	assert.False(t, Has(w, reused, k), "components die with the entity")
	_, ok := Get(w, old, k)
	assert.False(t, ok)
	assert.ErrorIs(t, Add(w, old, k, intPtr(2)), component.ErrEntityNotAlive)
	assert.Equal(t, "1v1", reused.String())
}

func TestComponents(t *testing.T) {
	w := NewWorld()

	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	require.NoError(t, Add(w, e1, ints.Kind(), intPtr(10)))
	v, ok := Get(w, e1, ints.Kind())
	require.True(t, ok)
	assert.Equal(t, 10, *v)

	*v = 11
	v, _ = Get(w, e1, ints.Kind())
	assert.Equal(t, 11, *v, "Get returns the stored pointer")

	require.NoError(t, Add(w, e1, ints.Kind(), intPtr(12)))
	v, _ = Get(w, e1, ints.Kind())
	assert.Equal(t, 12, *v, "Add replaces")

	a, b := "a", "b"
	require.NoError(t, Add(w, e1, strs.Kind(), &a))
	require.NoError(t, Add(w, e2, strs.Kind(), &b))
	assert.True(t, Has(w, e1, strs.Kind()))
	assert.True(t, Has(w, e2, strs.Kind()))
	assert.False(t, Has(w, e2, ints.Kind()))

	assert.True(t, Remove(w, e1, strs.Kind()))
	assert.False(t, Remove(w, e1, strs.Kind()))
	assert.False(t, Has(w, e1, strs.Kind()))
	got, ok := Get(w, e2, strs.Kind())
	require.True(t, ok, "swap removal keeps the other entries")
	assert.Equal(t, "b", *got)

	assert.ErrorIs(t, Add(w, e1, ints.Kind(), nil), component.ErrNilComponent)
	assert.ErrorIs(t, Add(w, e1, component.ComponentKind[int]{}, intPtr(1)), component.ErrInvalidComponentKind)
}

func TestAnimatorComponent(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	require.NoError(t, Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Sheet: "knight"}))

	a, ok := Get(w, e, component.AnimationComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, anim.Unbound, a.Animator.Status())
	assert.Nil(t, a.Animator.Advance(e, 100))
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	require.NoError(t, Add(w, e1, k, intPtr(1)))
	require.NoError(t, Add(w, e3, k, intPtr(3)))

	seen := map[Entity]int{}
	ForEach(w, k, func(e Entity, v *int) {
		seen[e] = *v
		// Removing while iterating must not skip anyone.
		Remove(w, e, k)
	})
	assert.Equal(t, map[Entity]int{e1: 1, e3: 3}, seen)
	assert.NotContains(t, seen, e2)
	assert.False(t, Has(w, e1, k))
}

func TestIntersection(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, w *World, ents []Entity, ka, kb, kc, kd component.ComponentKind[int])
		want func(ents []Entity) []Entity
	}{
		{
			name: "intersection",
			run: func(t *testing.T, w *World, ents []Entity, ka, kb, kc, kd component.ComponentKind[int]) {
				require.NoError(t, Add(w, ents[0], ka, intPtr(1)))
				for _, k := range []component.ComponentKind[int]{ka, kb, kc, kd} {
					require.NoError(t, Add(w, ents[1], k, intPtr(2)))
				}
				require.NoError(t, Add(w, ents[2], kb, intPtr(3)))
				require.NoError(t, Add(w, ents[3], kc, intPtr(4)))
			},
			want: func(ents []Entity) []Entity { return ents[1:2] },
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T, w *World, ents []Entity, ka, kb, kc, kd component.ComponentKind[int]) {
				for _, k := range []component.ComponentKind[int]{ka, kb, kc, kd} {
					require.NoError(t, Add(w, ents[0], k, intPtr(1)))
				}
				require.True(t, DestroyEntity(w, ents[0]))
			},
			want: func([]Entity) []Entity { return nil },
		},
		{
			name: "missing_store",
			run: func(t *testing.T, w *World, ents []Entity, ka, kb, kc, kd component.ComponentKind[int]) {
				require.NoError(t, Add(w, ents[0], ka, intPtr(1)))
				require.NoError(t, Add(w, ents[1], kb, intPtr(2)))
			},
			want: func([]Entity) []Entity { return nil },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			ents := []Entity{CreateEntity(w), CreateEntity(w), CreateEntity(w), CreateEntity(w)}
			ka := component.NewComponentKind[int]()
			kb := component.NewComponentKind[int]()
			kc := component.NewComponentKind[int]()
			kd := component.NewComponentKind[int]()
			tc.run(t, w, ents, ka, kb, kc, kd)
			want := tc.want(ents)

			var res2 []Entity
			ForEach2(w, ka, kb, func(e Entity, _, _ *int) { res2 = append(res2, e) })
			assert.Equal(t, want, res2)
			assert.Equal(t, want, Query(w, ka, kb, kc, kd))
		})
	}
}

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	_, ok := First(w, ka)
	assert.False(t, ok)
	assert.Nil(t, Query(w))

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	s := "x"
	require.NoError(t, Add(w, e1, ka, intPtr(1)))
	require.NoError(t, Add(w, e2, ka, intPtr(2)))
	require.NoError(t, Add(w, e2, kb, &s))

	assert.Equal(t, []Entity{e2}, Query(w, ka, kb))
	assert.ElementsMatch(t, []Entity{e1, e2}, Query(w, ka))

	first, ok := First(w, kb)
	assert.True(t, ok)
	assert.Equal(t, e2, first)
}

func TestEventQueue(t *testing.T) {
	var q EventQueue[string]
	assert.Nil(t, q.Drain())

	q.Push("a")
	q.Push("b", "c")
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []string{"a", "b", "c"}, q.Pending())
	assert.Equal(t, []string{"a", "b", "c"}, q.Drain())
	assert.Zero(t, q.Len())

	var nilQ *EventQueue[int]
	nilQ.Push(1)
	assert.Zero(t, nilQ.Len())
}

type recordSystem struct {
	name string
	log  *[]string
}

func (r recordSystem) Update(*World) { *r.log = append(*r.log, r.name) }

func TestScheduler(t *testing.T) {
	var log []string
	s := NewScheduler(recordSystem{"a", &log})
	s.Add(recordSystem{"b", &log})
	s.Add(nil)

	s.Update(NewWorld())
	assert.Equal(t, []string{"a", "b"}, log)
	assert.Len(t, s.Systems(), 2)
}
