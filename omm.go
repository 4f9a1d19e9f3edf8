package sgp4

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidOMM is wrapped by OMM conversion errors.
var ErrInvalidOMM = errors.New("invalid OMM")

// OMM is one CCSDS Orbit Mean-elements Message in the JSON form served by
// space-track.org and celestrak.
type OMM struct {
	ObjectName         string  `json:"OBJECT_NAME"`
	ObjectID           string  `json:"OBJECT_ID"`   // e.g. "1998-067A"
	EpochStr           string  `json:"EPOCH"`       // ISO 8601, UTC when no zone is given
	MeanMotion         float64 `json:"MEAN_MOTION"` // rev/day
	Eccentricity       float64 `json:"ECCENTRICITY"`
	Inclination        float64 `json:"INCLINATION"`       // degrees
	RAOfAscNode        float64 `json:"RA_OF_ASC_NODE"`    // degrees
	ArgOfPericenter    float64 `json:"ARG_OF_PERICENTER"` // degrees
	MeanAnomaly        float64 `json:"MEAN_ANOMALY"`      // degrees
	EphemerisType      int     `json:"EPHEMERIS_TYPE"`
	ClassificationType string  `json:"CLASSIFICATION_TYPE"`
	NoradCatID         int     `json:"NORAD_CAT_ID"`
	ElementSetNo       int     `json:"ELEMENT_SET_NO"`
	RevAtEpoch         int     `json:"REV_AT_EPOCH"`
	BStar              float64 `json:"BSTAR"`            // 1/earth radii
	MeanMotionDot      float64 `json:"MEAN_MOTION_DOT"`  // rev/day², TLE convention (ndot/2)
	MeanMotionDDot     float64 `json:"MEAN_MOTION_DDOT"` // rev/day³, TLE convention (nddot/6)

	CenterName        string `json:"CENTER_NAME,omitempty"`
	RefFrame          string `json:"REF_FRAME,omitempty"`
	TimeSystem        string `json:"TIME_SYSTEM,omitempty"`
	MeanElementTheory string `json:"MEAN_ELEMENT_THEORY,omitempty"`
}

// ParseOMMs parses a JSON array of OMM objects.
func ParseOMMs(jsonData []byte) ([]OMM, error) {
	var omms []OMM
	if err := json.Unmarshal(jsonData, &omms); err != nil {
		return nil, errors.Wrap(err, "unmarshalling OMM JSON")
	}
	return omms, nil
}

var ommEpochLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Epoch parses EpochStr. A string without zone is read as UTC.
func (o *OMM) Epoch() (time.Time, error) {
	for _, layout := range ommEpochLayouts {
		if t, err := time.ParseInLocation(layout, o.EpochStr, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidOMM, "epoch %q", o.EpochStr)
}

// tleEpoch splits t into a full year and a fractional day of year, Jan 1 0h
// being day 1.0.
func tleEpoch(t time.Time) (int, float64) {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return t.Year(), float64(t.YearDay()) + float64(t.Sub(midnight))/float64(24*time.Hour)
}

// internationalDesignator turns "1998-067A" into "98067A".
func internationalDesignator(objectID string) (string, error) {
	year, piece, ok := strings.Cut(objectID, "-")
	if !ok || len(year) < 2 || len(piece) < 4 {
		return "", errors.Wrapf(ErrInvalidOMM, "object id %q, want YYYY-NNNP", objectID)
	}
	return year[len(year)-2:] + piece, nil
}

// ToTLE converts the message to a TLE. Checksums are left unset (-1).
func (o *OMM) ToTLE() (*TLE, error) {
	if o.Eccentricity < 0 || o.Eccentricity >= 1 {
		return nil, errors.Wrapf(ErrInvalidOMM, "eccentricity %v out of [0,1)", o.Eccentricity)
	}
	if o.Inclination < 0 || o.Inclination > 180 {
		return nil, errors.Wrapf(ErrInvalidOMM, "inclination %v out of [0,180]", o.Inclination)
	}

	intl, err := internationalDesignator(o.ObjectID)
	if err != nil {
		return nil, err
	}
	epoch, err := o.Epoch()
	if err != nil {
		return nil, err
	}

	tle := &TLE{
		Name:             o.ObjectName,
		SatelliteNumber:  o.NoradCatID,
		Classification:   'U',
		International:    intl,
		MeanMotionDot:    o.MeanMotionDot,
		MeanMotionDot2:   o.MeanMotionDDot,
		Bstar:            o.BStar,
		ElementNumber:    o.ElementSetNo,
		CheckSum1:        -1,
		Inclination:      o.Inclination,
		RightAscension:   o.RAOfAscNode,
		Eccentricity:     o.Eccentricity,
		ArgOfPerigee:     o.ArgOfPericenter,
		MeanAnomaly:      o.MeanAnomaly,
		MeanMotion:       o.MeanMotion,
		RevolutionNumber: o.RevAtEpoch,
		CheckSum2:        -1,
	}
	if o.ClassificationType != "" {
		tle.Classification = rune(o.ClassificationType[0])
	}
	tle.EpochYear, tle.EpochDay = tleEpoch(epoch)
	return tle, nil
}

// Elements converts the message to propagator units.
func (o *OMM) Elements() (Elements, error) {
	tle, err := o.ToTLE()
	if err != nil {
		return Elements{}, err
	}
	return tle.Elements(), nil
}
