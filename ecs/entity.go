package ecs

import "strconv"

// Entity packs a slot id in the low 32 bits and the slot generation in the
// high 32 bits. A destroyed entity's handle stops being alive even after its
// slot is reused. The zero Entity is never returned by CreateEntity.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

func (e Entity) Valid() bool {
	return e.id() > 0
}

type entitySlot struct {
	gen   generation
	alive bool
}

// entityStore tracks slot generations and free ids. Ids start at 1.
type entityStore struct {
	slots []entitySlot
	free  []entityID
	alive int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, entitySlot{})
		id = entityID(len(s.slots))
	}
	slot := &s.slots[id-1]
	slot.alive = true
	s.alive++
	return makeEntity(id, slot.gen)
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	slot := &s.slots[e.id()-1]
	slot.alive = false
	slot.gen++
	s.free = append(s.free, e.id())
	s.alive--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.slots) {
		return false
	}
	slot := s.slots[id-1]
	return slot.alive && slot.gen == e.generation()
}

func (s *entityStore) each(fn func(Entity)) {
	for i, slot := range s.slots {
		if slot.alive {
			fn(makeEntity(entityID(i+1), slot.gen))
		}
	}
}
