package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skirmish/internal/entity"
	"skirmish/internal/fault"
	"skirmish/internal/field"
	"skirmish/internal/match"
	"skirmish/internal/turn"
	"skirmish/internal/view"
)

// matchState is the snapshot plus the turn controller's state.
type matchState struct {
	State turn.State `json:"state"`
	field.Snapshot
}

// GET /api/field
func (s *Server) getField(w http.ResponseWriter, r *http.Request) {
	var out matchState
	_ = s.session.View(func(m *match.Match) error {
		out = matchState{State: m.Turns.State(), Snapshot: m.Field.Snapshot()}
		return nil
	})
	respondJSON(w, http.StatusOK, out)
}

// GET /api/field/render
func (s *Server) getRender(w http.ResponseWriter, r *http.Request) {
	var text string
	_ = s.session.View(func(m *match.Match) error {
		text = view.Render(m.Field.Snapshot())
		return nil
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// GET /api/units
func (s *Server) listUnits(w http.ResponseWriter, r *http.Request) {
	var units []field.UnitView
	_ = s.session.View(func(m *match.Match) error {
		units = m.Field.Snapshot().Units
		return nil
	})
	respondJSON(w, http.StatusOK, units)
}

type unitDetail struct {
	field.UnitView
	Terrain   string            `json:"terrain"`
	Reachable []entity.Position `json:"reachable"`
}

// GET /api/units/{id}
func (s *Server) getUnit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid unit id")
		return
	}
	var out unitDetail
	err = s.session.View(func(m *match.Match) error {
		u, err := m.Unit(id)
		if err != nil {
			return err
		}
		pos, _ := u.Position()
		land, _ := m.Field.TerrainAt(pos.X, pos.Y)
		out = unitDetail{UnitView: field.ViewUnit(u), Terrain: land.String(), Reachable: m.Field.Reachable(u)}
		if out.Reachable == nil {
			out.Reachable = []entity.Position{}
		}
		return nil
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, out)
}

type cellInfo struct {
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Terrain     string  `json:"terrain"`
	MoveCost    int     `json:"move_cost"`
	Occupant    string  `json:"occupant,omitempty"`
	OccupantSym string  `json:"occupant_symbol,omitempty"`
	Empty       bool    `json:"empty"`
	BaseBonus   float64 `json:"base_bonus"`
}

// GET /api/terrain/{x}/{y}
func (s *Server) getTerrain(w http.ResponseWriter, r *http.Request) {
	x, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	y, err := strconv.Atoi(chi.URLParam(r, "y"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	var out cellInfo
	err = s.session.View(func(m *match.Match) error {
		land, ok := m.Field.TerrainAt(x, y)
		if !ok {
			return fmt.Errorf("(%d,%d): %w", x, y, fault.ErrOutOfBounds)
		}
		out = cellInfo{
			X:         x,
			Y:         y,
			Terrain:   land.String(),
			MoveCost:  land.MoveCost(),
			Empty:     m.Field.IsCellEmpty(x, y),
			BaseBonus: land.AttackBonus(infantry{}),
		}
		if occ := m.Field.OccupantAt(x, y); occ != nil {
			out.Occupant = occ.Name()
			out.OccupantSym = string(occ.Symbol())
		}
		return nil
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// infantry asks a landscape for its modifier against a plain foot soldier.
type infantry struct{}

func (infantry) Mounted() bool  { return false }
func (infantry) Ranged() bool   { return false }
func (infantry) MoveRange() int { return 1 }
