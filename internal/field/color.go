package field

// Color names a bubble colour. The empty Color marks an empty grid cell.
type Color string

const (
	None     Color = ""
	Red      Color = "red"
	Green    Color = "green"
	Blue     Color = "blue"
	Yellow   Color = "yellow"
	Purple   Color = "purple"
	Cyan     Color = "cyan"
	Wildcard Color = "rainbow"
)

// DefaultPalette is the four-colour set of the free-floating board.
var DefaultPalette = []Color{Red, Green, Blue, Yellow}

// GridPalette is the six-colour set of the grid board.
var GridPalette = []Color{Red, Green, Blue, Yellow, Purple, Cyan}

func (c Color) Empty() bool      { return c == None }
func (c Color) IsWildcard() bool { return c == Wildcard }

func (c Color) String() string {
	if c == None {
		return "empty"
	}
	return string(c)
}

// ParsePalette converts colour names, dropping blanks and duplicates.
func ParsePalette(names []string) []Color {
	seen := make(map[Color]bool, len(names))
	out := make([]Color, 0, len(names))
	for _, n := range names {
		c := Color(n)
		if c.Empty() || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

var hexes = map[Color]string{
	Red:      "#e74c3c",
	Green:    "#2ecc71",
	Blue:     "#3498db",
	Yellow:   "#f1c40f",
	Purple:   "#9b59b6",
	Cyan:     "#1abc9c",
	Wildcard: "#ffffff",
}

// Hex is the display colour as #rrggbb. Unknown colours are grey.
func (c Color) Hex() string {
	if h, ok := hexes[c]; ok {
		return h
	}
	return "#808080"
}

// RGB decodes Hex into its channels.
func (c Color) RGB() (r, g, b uint8) {
	h := c.Hex()
	return hexByte(h[1:3]), hexByte(h[3:5]), hexByte(h[5:7])
}

func hexByte(s string) uint8 {
	var v uint8
	for i := 0; i < len(s); i++ {
		ch := s[i]
		v <<= 4
		switch {
		case ch >= '0' && ch <= '9':
			v |= ch - '0'
		case ch >= 'a' && ch <= 'f':
			v |= ch - 'a' + 10
		}
	}
	return v
}
