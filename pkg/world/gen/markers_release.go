//go:build !layerdebug

package gen

import (
	"github.com/OCharnyshevich/worldlayers/pkg/world/coord"
	"github.com/OCharnyshevich/worldlayers/pkg/world/label"
)

const debugAssertions = false

func (g *Generator) terminal(q coord.Quart, v label.Biome) label.Biome {
	if !label.Default.IsMarker(v) {
		return v
	}
	fallback := label.Default.Fallback(v)
	g.log.Warn("marker label leaked",
		"label", v.String(),
		"fallback", fallback.String(),
		"quartX", q.X,
		"quartZ", q.Z,
	)
	return fallback
}
