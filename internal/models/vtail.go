package models

import (
	"math"

	"github.com/san-kum/vtrim/internal/aero"
	"github.com/san-kum/vtrim/internal/config"
	"github.com/san-kum/vtrim/internal/trim"
)

const degToRad = math.Pi / 180.0

// VTail is the composite pitching-moment model of a wing plus a tail with
// dihedral plus a constant propulsion offset. The tail aerodynamic-center
// moment comes from a tabulated curve; the rest is closed-form.
type VTail struct {
	Aircraft config.AircraftConfig
	Table    *aero.Table
}

// Breakdown holds the individual contributions to the total moment.
type Breakdown struct {
	TotalAngleDeg float64 `json:"total_angle_deg"`
	CmACTail      float64 `json:"cm_ac_tail"`
	LiftProxy     float64 `json:"lift_proxy"`
	DragPolar     float64 `json:"drag_polar"`
	Wing          float64 `json:"wing"`
	TailAC        float64 `json:"tail_ac"`
	Longitudinal  float64 `json:"longitudinal"`
	Vertical      float64 `json:"vertical"`
	Tail          float64 `json:"tail"`
	Prop          float64 `json:"prop"`
	Total         float64 `json:"total"`
}

func NewVTail(aircraft config.AircraftConfig, table *aero.Table) *VTail {
	return &VTail{Aircraft: aircraft, Table: table}
}

func (v *VTail) Ready() error {
	if v == nil {
		return &trim.PreconditionError{Field: "model", Reason: "is nil"}
	}
	if v.Table.Len() == 0 {
		return &trim.PreconditionError{Field: "aero table", Reason: "is not loaded"}
	}
	return nil
}

func (v *VTail) Moment(tailAlphaDeg, incidenceDeg float64) float64 {
	return v.Terms(tailAlphaDeg, incidenceDeg).Total
}

// Terms evaluates the model and returns every intermediate term.
// The lift proxy is linear in the angle in degrees while the resolution
// through the flow angle uses radians; the 3-D slope constant is
// calibrated for that mix.
func (v *VTail) Terms(tailAlphaDeg, incidenceDeg float64) Breakdown {
	a := v.Aircraft

	angleDeg := tailAlphaDeg + incidenceDeg
	angleRad := angleDeg * degToRad
	sinA, cosA := math.Sincos(angleRad)

	cmAC := v.Table.Evaluate(angleDeg)
	lift := a.Lift3D * angleDeg
	drag := a.Cd0 + a.K*lift*lift

	termAC := cmAC * a.SinDihedral
	termLong := (lift*cosA*a.CosDihedral + drag*sinA) * a.VolumeLongitudinal
	termVert := (lift*sinA*a.CosDihedral - drag*cosA) * a.VolumeVertical
	tail := termAC - termLong + termVert

	return Breakdown{
		TotalAngleDeg: angleDeg,
		CmACTail:      cmAC,
		LiftProxy:     lift,
		DragPolar:     drag,
		Wing:          a.CmWing,
		TailAC:        termAC,
		Longitudinal:  termLong,
		Vertical:      termVert,
		Tail:          tail,
		Prop:          a.CmProp,
		Total:         a.CmWing + tail + a.CmProp,
	}
}
