package planner

import "hash/fnv"

// palette is the fixed set of order colors. Assignment hashes the order id
// so the same order always gets the same color, keeping renders and tests
// reproducible.
var palette = []string{
	"#8ec07c", // green
	"#fabd2f", // yellow
	"#83a598", // blue
	"#d3869b", // purple
	"#fe8019", // orange
	"#fb4934", // red
	"#b8bb26", // lime
	"#689d6a", // aqua
}

// ColorFor returns the deterministic palette color for an order id.
func ColorFor(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return palette[h.Sum32()%uint32(len(palette))]
}
