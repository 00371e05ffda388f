//go:build layerdebug

package gen

import (
	"fmt"

	"github.com/OCharnyshevich/worldlayers/pkg/world/coord"
	"github.com/OCharnyshevich/worldlayers/pkg/world/label"
)

const debugAssertions = true

func (g *Generator) terminal(q coord.Quart, v label.Biome) label.Biome {
	if label.Default.IsMarker(v) {
		panic(fmt.Sprintf("gen: marker %v leaked at quart (%d,%d)", v, q.X, q.Z))
	}
	return v
}
