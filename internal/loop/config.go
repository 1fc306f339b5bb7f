package loop

import "github.com/tomz197/cursor-crisis/internal/object"

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Virtual playfield - gameplay uses these logical dimensions.
// Rendering scales them uniformly to fit the terminal.
const (
	VirtualWidth  = 800.0
	VirtualHeight = 600.0
)

// Spawning
const (
	SpawnInterval = 1.2 // Seconds between popups
)

// Meters (normalized to [0, 1])
const (
	DamageRate  = 0.15 // Health lost per second per touching popup
	EnergyRegen = 0.1  // Energy regained per second
	EnergyCost  = 0.2  // Energy spent per detonation
)

// Detonation
const (
	DetonationRadius = 90.0 // Virtual units around the pointer

	// detonationCellSize bounds the pointer-to-popup-center distance of any
	// possible hit: radius plus more than half a max-size popup's diagonal.
	detonationCellSize = DetonationRadius + object.PopupMaxSize
)

// Start cue
const (
	StartCueDelayFrames = 10 // Frames to wait before the first start cue
)

// Direction indicator
const (
	FacingThreshold    = 0.1 // Physical units moved per frame before the facing angle updates
	IndicatorThreshold = 1.0 // Physical units moved per frame for the indicator to show
	IndicatorSmoothing = 3.0 // Per-second approach rate of the indicator opacity
)
