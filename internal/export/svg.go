package export

import (
	"fmt"
	"image/color"
	"strings"
)

const background = "#0a0a0a"

type circle struct {
	x, y, r float64
	fill    color.RGBA
}

// SVG is a render.Renderer that records circles and writes them out as an
// SVG document.
type SVG struct {
	width, height float64
	circles       []circle
}

func NewSVG(width, height int) *SVG {
	return &SVG{width: float64(width), height: float64(height)}
}

func (s *SVG) Size() (float64, float64) { return s.width, s.height }

func (s *SVG) Circle(x, y, r float64, c color.RGBA) {
	if x+r < 0 || y+r < 0 || x-r > s.width || y-r > s.height {
		return
	}
	s.circles = append(s.circles, circle{x: x, y: y, r: r, fill: c})
}

// Reset drops recorded circles so the next draw pass starts clean.
func (s *SVG) Reset() {
	s.circles = s.circles[:0]
}

func (s *SVG) Len() int { return len(s.circles) }

func (s *SVG) String() string {
	var sb strings.Builder
	writeHeader(&sb, s.width, s.height)

	for _, c := range s.circles {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, c.x, c.y, c.r, hex(c.fill)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Path is one polyline to plot, in physical units.
type Path struct {
	Name   string
	X, Y   []float64
	Stroke string
}

// TrajectoriesToSVG fits every path into one shared frame, keeping the
// aspect ratio so orbits stay round.
func TrajectoriesToSVG(paths []Path, width, height int) string {
	minX, maxX, minY, maxY, ok := bounds(paths)
	if !ok {
		return ""
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	scale := min(float64(width)/(rangeX*1.2), float64(height)/(rangeY*1.2))
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2

	var sb strings.Builder
	writeHeader(&sb, float64(width), float64(height))

	for _, p := range paths {
		if len(p.X) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, p.Stroke))
		for i := range p.X {
			x := (p.X[i]-cx)*scale + float64(width)/2
			y := (p.Y[i]-cy)*scale + float64(height)/2
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString(`"/>
`)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func bounds(paths []Path) (minX, maxX, minY, maxY float64, ok bool) {
	for _, p := range paths {
		for i := range p.X {
			if !ok {
				minX, maxX, minY, maxY = p.X[i], p.X[i], p.Y[i], p.Y[i]
				ok = true
				continue
			}
			minX = min(minX, p.X[i])
			maxX = max(maxX, p.X[i])
			minY = min(minY, p.Y[i])
			maxY = max(maxY, p.Y[i])
		}
	}
	return
}

func writeHeader(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
