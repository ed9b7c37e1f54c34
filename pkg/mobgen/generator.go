package mobgen

import (
	"fmt"
	"strconv"
)

// Source is the random capability the generator needs: a uniform draw from
// [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Default spawn position bounds, inclusive on both ends.
const (
	CoordMin = 100
	CoordMax = 600
)

var directions = []string{"left", "right"}

// Progress callbacks fire every progressStep records so the large scales
// don't drown the caller in updates.
const progressStep = 10_000

// Generator synthesizes mob records around a fixed player entry. Configure
// the exported fields before calling Init; zero values fall back to the demo
// map defaults.
type Generator struct {
	Catalog  []AssetClass // asset tags with their walker speeds
	CoordMin int          // inclusive lower bound for x_start/y_start
	CoordMax int          // inclusive upper bound

	// Progress, when set, is called with the running record count every few
	// thousand records and once at the end. The batch runner uses it to
	// drive progress bars.
	Progress func(done int)

	rand Source
}

// Init installs the random source and fills unset fields with defaults.
// Each generator owns its source, so draws never contend on the global rand
// lock and a seeded source makes a whole run reproducible.
func (g *Generator) Init(src Source) {
	g.rand = src

	if len(g.Catalog) == 0 {
		g.Catalog = DefaultCatalog()
	}

	if g.CoordMin == 0 && g.CoordMax == 0 {
		g.CoordMin = CoordMin
		g.CoordMax = CoordMax
	}
}

// Validate reports configuration errors before any generation starts.
func (g *Generator) Validate() error {
	if len(g.Catalog) == 0 {
		return EmptyCatalogError
	}

	if g.CoordMin > g.CoordMax {
		return fmt.Errorf("%w: [%d, %d]", CoordRangeError, g.CoordMin, g.CoordMax)
	}

	if g.rand == nil {
		return NoSourceError
	}

	return nil
}

// NextMob draws one mob record: four independent draws for asset, direction,
// x and y, in that order. Speed comes from the asset's catalog entry, never
// from a draw of its own.
func (g *Generator) NextMob() Mob {
	class := g.Catalog[g.rand.IntN(len(g.Catalog))]
	direction := directions[g.rand.IntN(len(directions))]
	x := g.CoordMin + g.rand.IntN(g.CoordMax-g.CoordMin+1)
	y := g.CoordMin + g.rand.IntN(g.CoordMax-g.CoordMin+1)

	return Mob{
		XStart: x,
		YStart: y,
		Asset:  class.Tag,
		Behaviour: Behaviour{
			Type:      "walker",
			Direction: direction,
			Speed:     class.Speed,
		},
	}
}

// GenerateMobs builds a fresh mobs table: the base document's player entry
// plus n generated records keyed mob_1 through mob_n. It fails before
// generating anything when the player entry is missing.
func (g *Generator) GenerateMobs(base Document, n int) (map[string]any, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", NegativeCountError, n)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	player, err := base.Player()
	if err != nil {
		return nil, err
	}

	mobs := make(map[string]any, n+1)
	mobs["player"] = player

	for i := 1; i <= n; i++ {
		mobs["mob_"+strconv.Itoa(i)] = g.NextMob()

		if g.Progress != nil && i%progressStep == 0 {
			g.Progress(i)
		}
	}

	if g.Progress != nil {
		g.Progress(n)
	}

	return mobs, nil
}
