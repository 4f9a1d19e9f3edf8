package sgp4

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const tleLineLength = 69

var (
	ErrInvalidTLE  = errors.New("invalid TLE")
	ErrTLEChecksum = errors.New("TLE checksum mismatch")
)

// TLE is a parsed two-line element set. Angles are degrees and mean motion
// revolutions per day, as written in the lines.
type TLE struct {
	// Line 0 (optional name)
	Name string

	// Line 1 fields
	SatelliteNumber int
	Classification  rune
	International   string // International Designator
	EpochYear       int    // full year
	EpochDay        float64
	MeanMotionDot   float64 // rev/day², as written (ndot/2)
	MeanMotionDot2  float64 // rev/day³, as written (nddot/6)
	Bstar           float64
	ElementNumber   int
	CheckSum1       int // -1 when the line carries none

	// Line 2 fields
	Inclination      float64
	RightAscension   float64
	Eccentricity     float64
	ArgOfPerigee     float64
	MeanAnomaly      float64
	MeanMotion       float64
	RevolutionNumber int
	CheckSum2        int
}

// EpochTime returns the epoch as a UTC time, rounded to the nanosecond.
func (tle *TLE) EpochTime() time.Time {
	days := math.Floor(tle.EpochDay)
	frac := tle.EpochDay - days
	base := time.Date(tle.EpochYear, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(days)-1)
	return base.Add(time.Duration(math.Round(frac * 86400e9)))
}

// EpochJD returns the Julian date of the epoch.
func (tle *TLE) EpochJD() float64 {
	return epochJD(tle.EpochYear, tle.EpochDay)
}

// Elements converts the set to propagator units.
func (tle *TLE) Elements() Elements {
	jd := tle.EpochJD()
	return Elements{
		SatNum:  fmt.Sprintf("%05d", tle.SatelliteNumber),
		EpochJD: jd,
		Epoch:   jd - jd1950,
		Ecco:    tle.Eccentricity,
		Inclo:   tle.Inclination * deg2rad,
		Nodeo:   tle.RightAscension * deg2rad,
		Argpo:   tle.ArgOfPerigee * deg2rad,
		Mo:      tle.MeanAnomaly * deg2rad,
		No:      tle.MeanMotion / xpdotp,
		Bstar:   tle.Bstar,
		NDot:    tle.MeanMotionDot / (xpdotp * minutesPerDay),
		NDDot:   tle.MeanMotionDot2 / (xpdotp * minutesPerDay * minutesPerDay),
	}
}

// ParseTLE parses a two-line element set, with an optional name line.
//
// Lines shorter than 69 columns are padded with blanks: a missing checksum,
// element number or revolution number is accepted. A checksum that is
// present must match.
func ParseTLE(input string) (*TLE, error) {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(input), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 || len(lines) > 3 {
		return nil, errors.Wrapf(ErrInvalidTLE, "got %d lines, want 2 or 3", len(lines))
	}

	tle := &TLE{}
	if len(lines) == 3 {
		tle.Name = strings.TrimSpace(strings.TrimPrefix(lines[0], "0 "))
		lines = lines[1:]
	}

	line1, err := padLine(lines[0])
	if err != nil {
		return nil, errors.Wrap(err, "line 1")
	}
	line2, err := padLine(lines[1])
	if err != nil {
		return nil, errors.Wrap(err, "line 2")
	}

	if err := tle.parseLine1(line1); err != nil {
		return nil, errors.Wrap(err, "line 1")
	}
	if err := tle.parseLine2(line2); err != nil {
		return nil, errors.Wrap(err, "line 2")
	}

	if err := verifyChecksum(line1, tle.CheckSum1); err != nil {
		return nil, errors.Wrap(err, "line 1")
	}
	if err := verifyChecksum(line2, tle.CheckSum2); err != nil {
		return nil, errors.Wrap(err, "line 2")
	}
	return tle, nil
}

func padLine(line string) (string, error) {
	if len(line) > tleLineLength {
		return "", errors.Wrapf(ErrInvalidTLE, "%d characters, want at most %d", len(line), tleLineLength)
	}
	return line + strings.Repeat(" ", tleLineLength-len(line)), nil
}

func (tle *TLE) parseLine1(line string) error {
	if line[0] != '1' {
		return errors.Wrap(ErrInvalidTLE, "must begin with '1'")
	}

	var err error
	if tle.SatelliteNumber, err = parseInt(line[2:7], "satellite number", false); err != nil {
		return err
	}
	tle.Classification = rune(line[7])
	tle.International = strings.TrimSpace(line[9:17])

	yy, err := parseInt(line[18:20], "epoch year", false)
	if err != nil {
		return err
	}
	tle.EpochYear = fullYear(yy)

	if tle.EpochDay, err = parseFloat(line[20:32], "epoch day"); err != nil {
		return err
	}
	if tle.MeanMotionDot, err = parseFloat(line[33:43], "mean motion dot"); err != nil {
		return err
	}
	if tle.MeanMotionDot2, err = parseExponent(line[44:50], line[50:52], "mean motion dot 2"); err != nil {
		return err
	}
	if tle.Bstar, err = parseExponent(line[53:59], line[59:61], "bstar"); err != nil {
		return err
	}
	if tle.ElementNumber, err = parseInt(line[64:68], "element number", true); err != nil {
		return err
	}
	tle.CheckSum1, err = parseChecksum(line[68])
	return err
}

func (tle *TLE) parseLine2(line string) error {
	if line[0] != '2' {
		return errors.Wrap(ErrInvalidTLE, "must begin with '2'")
	}

	satNum, err := parseInt(line[2:7], "satellite number", false)
	if err != nil {
		return err
	}
	if satNum != tle.SatelliteNumber {
		return errors.Wrapf(ErrInvalidTLE, "satellite numbers do not match (%d vs %d)", tle.SatelliteNumber, satNum)
	}

	if tle.Inclination, err = parseFloat(line[8:16], "inclination"); err != nil {
		return err
	}
	if tle.RightAscension, err = parseFloat(line[17:25], "right ascension"); err != nil {
		return err
	}
	// implied leading decimal point
	if tle.Eccentricity, err = parseFloat("."+strings.TrimSpace(line[26:33]), "eccentricity"); err != nil {
		return err
	}
	if tle.ArgOfPerigee, err = parseFloat(line[34:42], "argument of perigee"); err != nil {
		return err
	}
	if tle.MeanAnomaly, err = parseFloat(line[43:51], "mean anomaly"); err != nil {
		return err
	}
	if tle.MeanMotion, err = parseFloat(line[52:63], "mean motion"); err != nil {
		return err
	}
	if tle.RevolutionNumber, err = parseInt(line[63:68], "revolution number", true); err != nil {
		return err
	}
	tle.CheckSum2, err = parseChecksum(line[68])
	return err
}

func parseInt(field, name string, blankOK bool) (int, error) {
	s := strings.TrimSpace(field)
	if s == "" && blankOK {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidTLE, "%s %q", name, field)
	}
	return v, nil
}

// parseFloat reads a decimal field, allowing a bare leading point with or
// without sign (" .00073094", "-.0001").
func parseFloat(field, name string) (float64, error) {
	s := strings.TrimSpace(field)
	switch {
	case strings.HasPrefix(s, "."):
		s = "0" + s
	case strings.HasPrefix(s, "-."), strings.HasPrefix(s, "+."):
		s = s[:1] + "0" + s[1:]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidTLE, "%s %q", name, field)
	}
	return v, nil
}

// parseExponent reads the packed " SMMMMM" mantissa and "±E" exponent
// fields, with an implied leading decimal point. Blank fields read as zero.
func parseExponent(mantissa, exponent, name string) (float64, error) {
	m := strings.TrimSpace(mantissa)
	if m == "" {
		return 0, nil
	}
	sign := 1.0
	switch m[0] {
	case '-':
		sign, m = -1, m[1:]
	case '+':
		m = m[1:]
	}
	e := strings.TrimSpace(exponent)
	if e == "" {
		e = "0"
	}
	v, err := strconv.ParseFloat("."+m+"e"+e, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidTLE, "%s %q%q", name, mantissa, exponent)
	}
	return sign * v, nil
}

func parseChecksum(c byte) (int, error) {
	switch {
	case c == ' ':
		return -1, nil
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	}
	return 0, errors.Wrapf(ErrInvalidTLE, "checksum %q", c)
}

func verifyChecksum(line string, want int) error {
	if want < 0 {
		return nil
	}
	if got := checksum(line); got != want {
		return errors.Wrapf(ErrTLEChecksum, "line says %d, computed %d", want, got)
	}
	return nil
}

// checksum is the modulo-10 sum of the digits of the first 68 columns,
// '-' counting as 1.
func checksum(line string) int {
	sum := 0
	for i := 0; i < tleLineLength-1 && i < len(line); i++ {
		switch c := line[i]; {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}

// RecoveredSemiMajorAxis returns the Kozai semi-major axis in earth radii,
// from the mean motion by Kepler's third law.
func (tle *TLE) RecoveredSemiMajorAxis(grav GravityModel) float64 {
	return pow23(grav.XKE / (tle.MeanMotion / xpdotp))
}

// IsGeostationary reports whether the mean elements describe a near
// equatorial, near circular orbit with a sidereal day period. Station
// keeping is not considered.
func (tle *TLE) IsGeostationary() bool {
	const (
		siderealRevsPerDay  = 1.0027379093509
		meanMotionTolerance = 0.05
		maxInclination      = 5.0 // degrees
		maxEccentricity     = 0.05
	)
	if math.Abs(tle.MeanMotion-siderealRevsPerDay) > meanMotionTolerance {
		return false
	}
	return tle.Inclination <= maxInclination && tle.Eccentricity <= maxEccentricity
}
