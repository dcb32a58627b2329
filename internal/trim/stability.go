package trim

// EvaluateStability perturbs the incidence around a trim result and
// returns the one-sided Cm-alpha derivative. Negative is stable.
func EvaluateStability(model Model, res *Result, incidenceDeg, perturbationDeg float64) (Stability, error) {
	if model == nil {
		return Stability{}, &PreconditionError{Field: "model", Reason: "is nil"}
	}
	if res == nil {
		return Stability{}, &PreconditionError{Field: "trim result", Reason: "is nil"}
	}
	if perturbationDeg == 0 || !finite(perturbationDeg) {
		return Stability{}, &PreconditionError{Field: "perturbation", Reason: "must be finite and non-zero"}
	}

	perturbed := model.Moment(res.TailAngleDeg, incidenceDeg+perturbationDeg)
	cma := (perturbed - res.ResidualMoment) / perturbationDeg

	return Stability{
		DerivativePerDeg: cma,
		Stable:           cma < 0,
	}, nil
}
