package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"

	"github.com/akhenakh/sgp4/v2"
)

const (
	maxBodyBytes = 1 << 20
	maxStates    = 10000
	maxPassHours = 240
	defaultHours = 24
)

var (
	errTooManyRequests = errors.New("too many requests")
	errBadRequest      = errors.New("bad request")
)

type elementSet struct {
	Name  string `json:"name,omitempty"`
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

func (e elementSet) satellite(cfg sgp4.Config) (*sgp4.Satellite, error) {
	lines := []string{e.Line1, e.Line2}
	if e.Name != "" {
		lines = append([]string{e.Name}, lines...)
	}
	tle, err := sgp4.ParseTLE(strings.Join(lines, "\n"))
	if err != nil {
		return nil, err
	}
	return sgp4.NewSatellite(tle, cfg)
}

type propagateRequest struct {
	elementSet
	Times   []time.Time `json:"times,omitempty"`
	Minutes []float64   `json:"minutes,omitempty"`
}

type stateResponse struct {
	Time      time.Time  `json:"time"`
	Minutes   float64    `json:"minutes"`
	Position  [3]float64 `json:"position"` // TEME, km
	Velocity  [3]float64 `json:"velocity"` // TEME, km/s
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Altitude  float64    `json:"altitude"`
}

type propagateResponse struct {
	SatNum string          `json:"satnum"`
	Epoch  time.Time       `json:"epoch"`
	Method string          `json:"method"`
	States []stateResponse `json:"states"`
}

type errorResponse struct {
	Error  string          `json:"error"`
	Code   int             `json:"code,omitempty"`
	States []stateResponse `json:"states,omitempty"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) propagate(w http.ResponseWriter, r *http.Request) {
	var req propagateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if n := len(req.Times) + len(req.Minutes); n == 0 || n > maxStates {
		writeError(w, http.StatusBadRequest, errors.Wrapf(errBadRequest, "between 1 and %d times or minutes expected, got %d", maxStates, n))
		return
	}
	sat, err := req.satellite(s.opts.Satellite)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec := sat.Record()
	resp := propagateResponse{
		SatNum: rec.SatNum,
		Epoch:  sat.Epoch(),
		Method: rec.Method.String(),
		States: make([]stateResponse, 0, len(req.Times)+len(req.Minutes)),
	}
	// minutes are exact offsets, times are converted from Julian dates
	type point struct {
		at      time.Time
		minutes float64
	}
	points := make([]point, 0, cap(resp.States))
	for _, m := range req.Minutes {
		points = append(points, point{minutes: m})
	}
	for _, t := range req.Times {
		points = append(points, point{at: t})
	}
	for _, p := range points {
		var (
			eci    sgp4.Eci
			err    error
			tsince = p.minutes
		)
		if p.at.IsZero() {
			eci, err = sat.PropagateMinutes(tsince)
		} else {
			eci, err = sat.PropagateAt(p.at)
			tsince = sat.MinutesSinceEpoch(p.at)
		}
		s.metrics.ObservePropagation(rec.Method, err)
		if err != nil {
			level.Debug(s.logger).Log("msg", "propagation failed", "satellite", rec.SatNum, "tsince", tsince, "err", err)
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:  err.Error(),
				Code:   int(sgp4.CodeOf(err)),
				States: resp.States,
			})
			return
		}
		lat, lon, alt := eci.ToGeodetic()
		resp.States = append(resp.States, stateResponse{
			Time:      eci.DateTime,
			Minutes:   tsince,
			Position:  [3]float64{eci.Position.X, eci.Position.Y, eci.Position.Z},
			Velocity:  [3]float64{eci.Velocity.X, eci.Velocity.Y, eci.Velocity.Z},
			Latitude:  lat,
			Longitude: lon,
			Altitude:  alt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type passesRequest struct {
	elementSet
	Latitude     float64   `json:"lat"`
	Longitude    float64   `json:"lon"`
	Altitude     float64   `json:"alt"` // meters
	Start        time.Time `json:"start"`
	Hours        float64   `json:"hours"`
	MinElevation float64   `json:"min_elevation"`
}

type passResponse struct {
	AOS              time.Time `json:"aos"`
	LOS              time.Time `json:"los"`
	MaxElevationTime time.Time `json:"max_elevation_time"`
	AOSAzimuth       float64   `json:"aos_azimuth"`
	LOSAzimuth       float64   `json:"los_azimuth"`
	MaxElevation     float64   `json:"max_elevation"`
	MaxElevationAz   float64   `json:"max_elevation_azimuth"`
	DurationSeconds  float64   `json:"duration_seconds"`
}

func (s *Server) passes(w http.ResponseWriter, r *http.Request) {
	var req passesRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Hours == 0 {
		req.Hours = defaultHours
	}
	if req.Hours < 0 || req.Hours > maxPassHours {
		writeError(w, http.StatusBadRequest, errors.Wrapf(errBadRequest, "hours must be in (0, %d]", maxPassHours))
		return
	}
	sat, err := req.satellite(s.opts.Satellite)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Start.IsZero() {
		req.Start = time.Now().UTC()
	}

	found, err := sat.FindPasses(sgp4.PassOptions{
		Location:     &sgp4.Location{Latitude: req.Latitude, Longitude: req.Longitude, Altitude: req.Altitude},
		Start:        req.Start,
		End:          req.Start.Add(time.Duration(req.Hours * float64(time.Hour))),
		MinElevation: req.MinElevation,
		Step:         s.opts.PassStep,
		DataStep:     s.opts.DataStep,
		Logger:       s.logger,
	})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, sgp4.ErrInvalidLocationLatitude) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error(), Code: int(sgp4.CodeOf(err))})
		return
	}
	s.metrics.PassesFound.Add(float64(len(found)))

	resp := make([]passResponse, 0, len(found))
	for _, p := range found {
		resp = append(resp, passResponse{
			AOS:              p.AOS,
			LOS:              p.LOS,
			MaxElevationTime: p.MaxElevationTime,
			AOSAzimuth:       p.AOSAzimuth,
			LOSAzimuth:       p.LOSAzimuth,
			MaxElevation:     p.MaxElevation,
			MaxElevationAz:   p.MaxElevationAz,
			DurationSeconds:  p.Duration.Seconds(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errBadRequest, err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
