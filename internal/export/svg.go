package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/bubblepop/internal/game"
	"github.com/san-kum/bubblepop/internal/sim"
)

// FieldToSVG draws the board, the loaded projectile and the shooter as an SVG
// document sized to the play surface.
func FieldToSVG(s *game.State, rules game.Rules) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, rules.Width, rules.Height, rules.Width, rules.Height)

	r := rules.Radius
	sb.WriteString(`<g class="field">` + "\n")
	for _, b := range s.Bubbles() {
		circle(&sb, b.Pos.X, b.Pos.Y, r, b.Color.Hex())
	}
	sb.WriteString("</g>\n")

	if !s.Over() && !s.Shot.Color.Empty() {
		sb.WriteString(`<g class="shot">` + "\n")
		circle(&sb, s.Shot.Pos.X, s.Shot.Pos.Y, r, s.Shot.Color.Hex())
		sb.WriteString("</g>\n")
	}

	fmt.Fprintf(&sb, `<text x="8" y="20" fill="#cccccc" font-family="monospace" font-size="14">score %d</text>
`, s.Score)
	sb.WriteString("</svg>")
	return sb.String()
}

func circle(sb *strings.Builder, x, y, r float64, fill string) {
	fmt.Fprintf(sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, r, fill)
}

// ScoreToSVG plots score against frame for the recorded samples.
func ScoreToSVG(samples []sim.Sample, width, height int, strokeColor string) string {
	if len(samples) < 2 {
		return ""
	}

	minX, maxX := float64(samples[0].Frame), float64(samples[0].Frame)
	minY, maxY := float64(samples[0].Score), float64(samples[0].Score)
	for _, p := range samples {
		x, y := float64(p.Frame), float64(p.Score)
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range samples {
		x := (float64(p.Frame) - minX) / rangeX * float64(width)
		y := float64(height) - (float64(p.Score)-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
