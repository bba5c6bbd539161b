package game

import (
	"github.com/gonewx/backdrop/pkg/surface"
)

// Scene is a fixed-step animated scene.
// Each Update advances exactly one tick; Draw renders the current state.
type Scene interface {
	// Update advances the scene by one tick.
	Update()

	// Draw renders the scene onto s.
	Draw(s surface.Surface)
}

var _ Scene = (*Backdrop)(nil)
