package shapes

import (
	"math/rand"
	"strings"
	"time"

	"particle-morph/internal/cloud"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Kind names a shape family the morph engine can target.
type Kind uint8

const (
	Sphere Kind = iota
	Galaxy
)

// MinScale replaces non-positive radius/scale arguments so generators never divide by zero.
const MinScale = 1e-3

// Galaxy layout constants.
const (
	galaxyRadiusFactor = 20
	galaxyBranches     = 4
	galaxySpin         = 1
	galaxyRandomness   = 0.5
	galaxyRandomPower  = 3
	galaxyFlatten      = 2
	galaxyTint         = 0.2
)

// Dust layout constants.
const (
	dustInnerRadius = 30
	dustRadiusSpan  = 60
	dustFlatten     = 0.6
	dustDepthSpan   = 50
	dustDepthOffset = -20
)

var (
	// ErrUnknownKind is returned by Generate and ParseKind for kinds outside the enumeration.
	ErrUnknownKind = errors.New("shapes: unknown shape kind")
	// ErrNegativeCount is returned when a generator is asked for a negative number of points.
	ErrNegativeCount = errors.New("shapes: negative point count")

	galaxyInside  = mustHex("#ff6030")
	galaxyOutside = mustHex("#1b3984")
	dustPurple    = mustHex("#331155")
	dustBlue      = mustHex("#113366")
)

// String returns the lower-case name used in config files and console commands.
func (k Kind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case Galaxy:
		return "galaxy"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String. Matching is case-insensitive.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sphere":
		return Sphere, nil
	case "galaxy":
		return Galaxy, nil
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", name)
}

// NewRand returns a rand source for the generators. seed == 0 uses a time-based seed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generate builds a cloud of the given kind. scale is the sphere radius or the galaxy scale factor.
func Generate(rng *rand.Rand, kind Kind, count int, scale float32) (*cloud.Cloud, error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrNegativeCount, "%d", count)
	}
	switch kind {
	case Sphere:
		return SpherePoints(rng, count, scale), nil
	case Galaxy:
		return GalaxyPoints(rng, count, scale), nil
	}
	return nil, errors.Wrapf(ErrUnknownKind, "kind %d", kind)
}

// SpherePoints places count points uniformly on the surface of a sphere of the given radius.
// Points land on the shell, not inside it. Colors are drawn from a narrow cyan/blue hue band.
func SpherePoints(rng *rand.Rand, count int, radius float32) *cloud.Cloud {
	radius = sanitizeScale(radius)
	c := cloud.New(count)
	for i := 0; i < c.Len(); i++ {
		theta := rng.Float32() * 2 * math32.Pi
		phi := math32.Acos(2*rng.Float32() - 1)
		sinPhi := math32.Sin(phi)
		c.SetPosition(i,
			radius*sinPhi*math32.Cos(theta),
			radius*sinPhi*math32.Sin(theta),
			radius*math32.Cos(phi),
		)

		hue := 0.5 + rng.Float64()*0.1
		light := 0.5 + rng.Float64()*0.2
		clr := colorful.Hsl(hue*360, 1, light)
		c.SetColor(i, float32(clr.R), float32(clr.G), float32(clr.B))
	}
	return c
}

// GalaxyPoints builds a four-armed spiral. Branch assignment is i mod 4, so index i always falls on
// the same arm. Colors blend from a warm core to cool arms; half of the points get a +0.2 red/blue
// tint that can push channels above 1.
func GalaxyPoints(rng *rand.Rand, count int, scale float32) *cloud.Cloud {
	radius := sanitizeScale(scale) * galaxyRadiusFactor
	c := cloud.New(count)
	for i := 0; i < c.Len(); i++ {
		r := rng.Float32() * radius
		spinAngle := r * galaxySpin
		angle := BranchAngle(i) + spinAngle

		rx := randomOffset(rng, r)
		ry := randomOffset(rng, r)
		rz := randomOffset(rng, r)
		c.SetPosition(i,
			math32.Cos(angle)*r+rx,
			ry*galaxyFlatten,
			math32.Sin(angle)*r+rz,
		)

		mixed := galaxyInside.BlendRgb(galaxyOutside, float64(r/radius))
		if rng.Float64() > 0.5 {
			mixed.R += galaxyTint
			mixed.B += galaxyTint
		}
		c.SetColor(i, float32(mixed.R), float32(mixed.G), float32(mixed.B))
	}
	return c
}

// BranchAngle returns the deterministic arm angle for galaxy point i.
func BranchAngle(i int) float32 {
	return float32(i%galaxyBranches) / galaxyBranches * 2 * math32.Pi
}

// DustPoints scatters a flattened ring of background points behind the main cloud.
func DustPoints(rng *rand.Rand, count int) *cloud.Cloud {
	c := cloud.New(count)
	for i := 0; i < c.Len(); i++ {
		angle := rng.Float32() * 2 * math32.Pi
		r := dustInnerRadius + rng.Float32()*dustRadiusSpan
		c.SetPosition(i,
			math32.Cos(angle)*r,
			math32.Sin(angle)*r*dustFlatten,
			(rng.Float32()-0.5)*dustDepthSpan+dustDepthOffset,
		)

		clr := dustPurple
		if rng.Float64() >= 0.5 {
			clr = dustBlue
		}
		c.SetColor(i, float32(clr.R), float32(clr.G), float32(clr.B))
	}
	return c
}

func randomOffset(rng *rand.Rand, r float32) float32 {
	sign := float32(1)
	if rng.Float64() < 0.5 {
		sign = -1
	}
	return sign * math32.Pow(rng.Float32(), galaxyRandomPower) * galaxyRandomness * r
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func sanitizeScale(s float32) float32 {
	if math32.IsNaN(s) || s <= 0 {
		return MinScale
	}
	return s
}
