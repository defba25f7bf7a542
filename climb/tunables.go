package climb

import (
	"strings"

	"github.com/oomph-ac/climbsim/oerror"
)

// LedgeProbe selects how the controller decides it has climbed past the top of a surface.
type LedgeProbe uint8

const (
	// LedgeProbeEyeHeight traces forward from above eye height and then down from the end of that
	// trace, requiring the forward trace to miss and the downward trace to land on something.
	LedgeProbeEyeHeight LedgeProbe = iota
	// LedgeProbeForward traces forward from the top of the climbing capsule and requires a walkable
	// surface below the end of that trace.
	LedgeProbeForward
)

func (p LedgeProbe) String() string {
	switch p {
	case LedgeProbeEyeHeight:
		return "eye_height"
	case LedgeProbeForward:
		return "forward"
	default:
		return "unknown"
	}
}

func (p LedgeProbe) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *LedgeProbe) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "eye_height", "":
		*p = LedgeProbeEyeHeight
	case "forward":
		*p = LedgeProbeForward
	default:
		return oerror.New("unknown ledge probe %q", text)
	}
	return nil
}

// EntryPolicy selects the movement modes climbing may start from.
type EntryPolicy uint8

const (
	// EntryPolicyGroundedOnly refuses to start climbing while falling.
	EntryPolicyGroundedOnly EntryPolicy = iota
	// EntryPolicyAnywhere allows grabbing a wall mid-air.
	EntryPolicyAnywhere
)

func (p EntryPolicy) String() string {
	switch p {
	case EntryPolicyGroundedOnly:
		return "grounded_only"
	case EntryPolicyAnywhere:
		return "anywhere"
	default:
		return "unknown"
	}
}

func (p EntryPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *EntryPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "grounded_only", "":
		*p = EntryPolicyGroundedOnly
	case "anywhere":
		*p = EntryPolicyAnywhere
	default:
		return oerror.New("unknown entry policy %q", text)
	}
	return nil
}

// Tunables holds every distance, speed and threshold used by the climbing controller. Distances
// are in world units, speeds in units per second and angles in degrees.
type Tunables struct {
	// CapsuleRadius and CapsuleHalfHeight size the surface probe capsule.
	CapsuleRadius     float32       `yaml:"capsule_radius"`
	CapsuleHalfHeight float32       `yaml:"capsule_half_height"`
	SurfaceFilter     SurfaceFilter `yaml:"surface_filter"`
	// FloorFilter selects the surfaces the ground probes stand on. Floors need not be climbable.
	FloorFilter SurfaceFilter `yaml:"floor_filter"`
	// SurfaceProbeOffset is how far ahead of the character the probe capsule starts.
	SurfaceProbeOffset float32 `yaml:"surface_probe_offset"`

	MaxClimbSpeed        float32 `yaml:"max_climb_speed"`
	MaxClimbAcceleration float32 `yaml:"max_climb_acceleration"`
	MaxBrakeDeceleration float32 `yaml:"max_brake_deceleration"`
	// DefaultMaxSpeed and DefaultMaxAcceleration are reported while not climbing.
	DefaultMaxSpeed        float32 `yaml:"default_max_speed"`
	DefaultMaxAcceleration float32 `yaml:"default_max_acceleration"`
	// ClimbCapsuleHalfHeight is the capsule half-height applied while climbing.
	ClimbCapsuleHalfHeight float32 `yaml:"climb_capsule_half_height"`

	EyeHeight        float32 `yaml:"eye_height"`
	EyeTraceDistance float32 `yaml:"eye_trace_distance"`

	LedgeProbe             LedgeProbe `yaml:"ledge_probe"`
	LedgeEyeOffset         float32    `yaml:"ledge_eye_offset"`
	LedgeDownDistance      float32    `yaml:"ledge_down_distance"`
	LedgeVelocityThreshold float32    `yaml:"ledge_velocity_threshold"`

	FloorProbeOffset       float32 `yaml:"floor_probe_offset"`
	FloorVelocityThreshold float32 `yaml:"floor_velocity_threshold"`

	ClimbDownWalkableOffset float32 `yaml:"climb_down_walkable_offset"`
	ClimbDownWalkableDepth  float32 `yaml:"climb_down_walkable_depth"`
	ClimbDownLedgeOffset    float32 `yaml:"climb_down_ledge_offset"`
	ClimbDownLedgeDepth     float32 `yaml:"climb_down_ledge_depth"`

	// StopAngle is the largest angle between the surface normal and up at which climbing stops.
	StopAngle           float32     `yaml:"stop_angle"`
	RotationInterpSpeed float32     `yaml:"rotation_interp_speed"`
	EntryPolicy         EntryPolicy `yaml:"entry_policy"`
}

// DefaultTunables returns the stock climbing configuration.
func DefaultTunables() Tunables {
	return Tunables{
		CapsuleRadius:      50,
		CapsuleHalfHeight:  72,
		SurfaceFilter:      FilterClimbable,
		FloorFilter:        FilterAll,
		SurfaceProbeOffset: 30,

		MaxClimbSpeed:          100,
		MaxClimbAcceleration:   300,
		MaxBrakeDeceleration:   400,
		DefaultMaxSpeed:        500,
		DefaultMaxAcceleration: 2048,
		ClimbCapsuleHalfHeight: 48,

		EyeHeight:        64,
		EyeTraceDistance: 100,

		LedgeProbe:             LedgeProbeEyeHeight,
		LedgeEyeOffset:         50,
		LedgeDownDistance:      100,
		LedgeVelocityThreshold: 10,

		FloorProbeOffset:       50,
		FloorVelocityThreshold: -10,

		ClimbDownWalkableOffset: 100,
		ClimbDownWalkableDepth:  100,
		ClimbDownLedgeOffset:    50,
		ClimbDownLedgeDepth:     200,

		StopAngle:           60,
		RotationInterpSpeed: 5,
		EntryPolicy:         EntryPolicyGroundedOnly,
	}
}

// Validate checks that the tunables describe a usable configuration.
func (t Tunables) Validate() error {
	positive := []struct {
		name string
		v    float32
	}{
		{"capsule_radius", t.CapsuleRadius},
		{"capsule_half_height", t.CapsuleHalfHeight},
		{"max_climb_speed", t.MaxClimbSpeed},
		{"max_climb_acceleration", t.MaxClimbAcceleration},
		{"default_max_speed", t.DefaultMaxSpeed},
		{"default_max_acceleration", t.DefaultMaxAcceleration},
		{"climb_capsule_half_height", t.ClimbCapsuleHalfHeight},
		{"eye_trace_distance", t.EyeTraceDistance},
		{"ledge_down_distance", t.LedgeDownDistance},
		{"climb_down_walkable_depth", t.ClimbDownWalkableDepth},
		{"climb_down_ledge_depth", t.ClimbDownLedgeDepth},
	}
	for _, f := range positive {
		if !(f.v > 0) {
			return oerror.New("tunable %s must be positive (got %v)", f.name, f.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float32
	}{
		{"surface_probe_offset", t.SurfaceProbeOffset},
		{"max_brake_deceleration", t.MaxBrakeDeceleration},
		{"eye_height", t.EyeHeight},
		{"ledge_eye_offset", t.LedgeEyeOffset},
		{"floor_probe_offset", t.FloorProbeOffset},
		{"climb_down_walkable_offset", t.ClimbDownWalkableOffset},
		{"climb_down_ledge_offset", t.ClimbDownLedgeOffset},
		{"rotation_interp_speed", t.RotationInterpSpeed},
	}
	for _, f := range nonNegative {
		if !(f.v >= 0) {
			return oerror.New("tunable %s must not be negative (got %v)", f.name, f.v)
		}
	}

	if t.SurfaceFilter == 0 {
		return oerror.New("tunable surface_filter selects no surface classes")
	}
	if t.FloorFilter == 0 {
		return oerror.New("tunable floor_filter selects no surface classes")
	}
	if !(t.StopAngle >= 0 && t.StopAngle < 90) {
		return oerror.New("tunable stop_angle must be in [0, 90) (got %v)", t.StopAngle)
	}
	if t.FloorVelocityThreshold > 0 {
		return oerror.New("tunable floor_velocity_threshold must not be positive (got %v)", t.FloorVelocityThreshold)
	}
	if t.LedgeVelocityThreshold < 0 {
		return oerror.New("tunable ledge_velocity_threshold must not be negative (got %v)", t.LedgeVelocityThreshold)
	}
	if t.LedgeProbe > LedgeProbeForward {
		return oerror.New("tunable ledge_probe is unknown (%d)", t.LedgeProbe)
	}
	if t.EntryPolicy > EntryPolicyAnywhere {
		return oerror.New("tunable entry_policy is unknown (%d)", t.EntryPolicy)
	}
	return nil
}
