package climb

import "github.com/go-gl/mathgl/mgl32"

// TickOutcome is the outcome of a climbing tick.
type TickOutcome uint8

const (
	// TickOutcomeInactive means the controller was not climbing.
	TickOutcomeInactive TickOutcome = iota
	// TickOutcomeInvalidDelta means the time step was too small to integrate.
	TickOutcomeInvalidDelta
	// TickOutcomeStoppedNoSurface means the surface was lost or turned into a floor.
	TickOutcomeStoppedNoSurface
	// TickOutcomeReachedFloor means the character climbed down onto the ground.
	TickOutcomeReachedFloor
	// TickOutcomeReachedLedge means the climb-to-top transition started.
	TickOutcomeReachedLedge
	// TickOutcomeClimbed means the character moved along the surface.
	TickOutcomeClimbed
)

func (o TickOutcome) String() string {
	switch o {
	case TickOutcomeInactive:
		return "inactive"
	case TickOutcomeInvalidDelta:
		return "invalid_delta"
	case TickOutcomeStoppedNoSurface:
		return "stopped_no_surface"
	case TickOutcomeReachedFloor:
		return "reached_floor"
	case TickOutcomeReachedLedge:
		return "reached_ledge"
	case TickOutcomeClimbed:
		return "climbed"
	default:
		return "unknown"
	}
}

// TickResult describes what a climbing tick did.
type TickResult struct {
	Outcome TickOutcome
	Surface AggregatedSurface

	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Rotation mgl32.Quat
	// Snap is the displacement applied to keep the character on the surface.
	Snap mgl32.Vec3
}
