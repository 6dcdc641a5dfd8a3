package sprite

import (
	"strconv"

	"github.com/google/uuid"
)

// AnimHandle identifies one animation of one Spritesheet. Handles are only
// minted by a sheet's Registry; the zero value identifies nothing. Handles
// drawn from different sheets never compare equal, even when the animation
// names match.
type AnimHandle struct {
	sheet uuid.UUID
	index int
}

// Index is the position of the animation in tag declaration order.
func (h AnimHandle) Index() int {
	return h.index
}

// Sheet is the ID of the spritesheet that minted h.
func (h AnimHandle) Sheet() uuid.UUID {
	return h.sheet
}

func (h AnimHandle) IsZero() bool {
	return h.sheet == uuid.Nil
}

func (h AnimHandle) String() string {
	if h.IsZero() {
		return "anim(none)"
	}
	return "anim(" + strconv.Itoa(h.index) + "@" + h.sheet.String()[:8] + ")"
}
