package sgp4

import (
	"fmt"
	"math"
	"strings"
)

const (
	svgWidth         = 600
	svgHeight        = 600
	plotMargin       = 50
	plotCenterX      = svgWidth / 2
	plotCenterY      = svgHeight / 2
	plotRadius       = svgWidth/2 - plotMargin
	cardinalFontSize = 16
	ringFontSize     = 10
	foregroundColor  = "black"
	secondaryColor   = "dimgray"
	eclipsedColor    = "#4060a0"
	pathStrokeWidth  = 3
	markerRadius     = 5.0
	markerLabelGap   = 8.0
)

var cardinals = []struct {
	label   string
	azimuth float64
	anchor  string
	dx, dy  float64
}{
	{"N", 0, "middle", 0, -1},
	{"E", 90, "start", 1, 0},
	{"S", 180, "middle", 0, 1},
	{"W", 270, "end", -1, 0},
}

// polarXY maps azimuth and elevation (degrees) to plot coordinates, the
// zenith at the center and the horizon on the outer ring.
func polarXY(azimuth, elevation float64) (x, y float64) {
	r := plotRadius * (1.0 - elevation/90.0)
	s, c := math.Sincos(azimuth * deg2rad)
	return plotCenterX + r*s, plotCenterY - r*c
}

// elevationColor fades from red at the horizon to green at the zenith.
func elevationColor(elevation float64) string {
	t := math.Max(0, math.Min(90, elevation)) / 90.0
	return fmt.Sprintf("#%02x%02x00", int(255*(1-t)), int(255*t))
}

// GeneratePassPolarSVG draws the pass in a polar sky view. Segments flown in
// the Earth's shadow are dashed.
func (p *PassDetails) GeneratePassPolarSVG() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg" style="background-color:white;">`, svgWidth, svgHeight)
	if len(p.DataPoints) < 2 {
		b.WriteString(`<rect width="100%" height="100%" fill="white"/><text x="50" y="50" fill="black">Not enough data points for pass plot.</text></svg>`)
		return b.String()
	}

	// horizon and elevation rings
	fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" stroke="%s" stroke-width="1" fill="none"/>`, plotCenterX, plotCenterY, plotRadius, foregroundColor)
	for _, el := range []float64{10, 30, 60} {
		r := plotRadius * (1.0 - el/90.0)
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%.2f" stroke="%s" stroke-width="0.5" fill="none" stroke-dasharray="4,4"/>`, plotCenterX, plotCenterY, r, secondaryColor)
		fmt.Fprintf(&b, `<text x="%d" y="%.2f" fill="%s" font-size="%d" text-anchor="start">%.0f°</text>`, plotCenterX+5, plotCenterY-r-3, secondaryColor, ringFontSize, el)
	}
	fmt.Fprintf(&b, `<text x="%d" y="%d" fill="%s" font-size="%d" text-anchor="middle" dominant-baseline="middle">90°</text>`, plotCenterX, plotCenterY, secondaryColor, ringFontSize)

	for _, c := range cardinals {
		x1, y1 := polarXY(c.azimuth, 0)
		x2, y2 := polarXY(c.azimuth, -8*90.0/plotRadius)
		fmt.Fprintf(&b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`, x1, y1, x2, y2, foregroundColor)
		lx, ly := polarXY(c.azimuth, -15*90.0/plotRadius)
		lx += c.dx * cardinalFontSize * 0.4
		ly += c.dy * cardinalFontSize * 0.4
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" fill="%s" font-size="%d" text-anchor="%s" dominant-baseline="middle">%s</text>`, lx, ly, foregroundColor, cardinalFontSize, c.anchor, c.label)
	}

	for i := 1; i < len(p.DataPoints); i++ {
		a, z := p.DataPoints[i-1], p.DataPoints[i]
		x1, y1 := polarXY(a.Azimuth, a.Elevation)
		x2, y2 := polarXY(z.Azimuth, z.Elevation)
		color, dash := elevationColor((a.Elevation+z.Elevation)/2), ""
		if !a.Sunlit && !z.Sunlit {
			color, dash = eclipsedColor, ` stroke-dasharray="6,4"`
		}
		fmt.Fprintf(&b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%d"%s/>`, x1, y1, x2, y2, color, pathStrokeWidth, dash)
	}

	p.writeMarker(&b, p.AOSObservation.LookAngles, "AOS", "darkblue", -markerLabelGap)
	p.writeMarker(&b, p.LOSObservation.LookAngles, "LOS", "darkred", markerLabelGap)
	p.writeMarker(&b, p.MaxElObservation.LookAngles, fmt.Sprintf("%.0f°", p.MaxElevation), "darkgreen", -markerLabelGap-2)

	b.WriteString(`</svg>`)
	return b.String()
}

func (p *PassDetails) writeMarker(b *strings.Builder, look TopocentricCoords, label, color string, dy float64) {
	x, y := polarXY(look.Azimuth, math.Max(0, look.Elevation))
	fmt.Fprintf(b, `<circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s" stroke="black" stroke-width="0.5"/>`, x, y, markerRadius, color)
	fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="12" text-anchor="middle">%s</text>`, x, y+dy, color, label)
}
