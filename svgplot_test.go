package sgp4

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolarXY(t *testing.T) {
	x, y := polarXY(0, 90)
	assert.InDelta(t, float64(plotCenterX), x, 1e-9)
	assert.InDelta(t, float64(plotCenterY), y, 1e-9)

	x, y = polarXY(0, 0)
	assert.InDelta(t, float64(plotCenterX), x, 1e-9)
	assert.InDelta(t, float64(plotCenterY-plotRadius), y, 1e-9)

	x, y = polarXY(90, 0)
	assert.InDelta(t, float64(plotCenterX+plotRadius), x, 1e-9)
	assert.InDelta(t, float64(plotCenterY), y, 1e-9)
}

func TestElevationColor(t *testing.T) {
	assert.Equal(t, "#ff0000", elevationColor(0))
	assert.Equal(t, "#00ff00", elevationColor(90))
	assert.Equal(t, "#ff0000", elevationColor(-5))
}

func TestGeneratePassPolarSVG(t *testing.T) {
	_, passes := findISSPasses(t, PassOptions{MinElevation: 10})
	require.NotEmpty(t, passes)

	svg := passes[0].GeneratePassPolarSVG()
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, ">AOS</text>")
	assert.Contains(t, svg, ">LOS</text>")
	assert.Contains(t, svg, ">N</text>")
	assert.Equal(t, len(passes[0].DataPoints)-1+4, strings.Count(svg, "<line"))

	// well formed
	dec := xml.NewDecoder(strings.NewReader(svg))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
}

func TestGeneratePassPolarSVGEclipsed(t *testing.T) {
	now := time.Now()
	p := &PassDetails{DataPoints: []PassDataPoint{
		{Timestamp: now, Azimuth: 10, Elevation: 0, Sunlit: false},
		{Timestamp: now.Add(time.Minute), Azimuth: 40, Elevation: 20, Sunlit: false},
		{Timestamp: now.Add(2 * time.Minute), Azimuth: 80, Elevation: 0, Sunlit: true},
	}}
	svg := p.GeneratePassPolarSVG()
	assert.Equal(t, 1, strings.Count(svg, eclipsedColor))
}

func TestGeneratePassPolarSVGNoData(t *testing.T) {
	p := &PassDetails{}
	assert.Contains(t, p.GeneratePassPolarSVG(), "Not enough data points for pass plot.")
}
