package models

// SignalBreakdown tallies contributing signals by direction.
type SignalBreakdown struct {
	Bullish int `json:"bullish"`
	Bearish int `json:"bearish"`
	Neutral int `json:"neutral"`
}

// DecisionResult is the composite verdict derived from all valid signals.
// CompositeScore is documented as -100..+100 but is bounded by the ±80
// per-signal score scale; the wider range is kept as the nominal scale.
type DecisionResult struct {
	CompositeScore  int             `json:"compositeScore"`
	Verdict         SignalVerdict   `json:"verdict"`
	Confidence      int             `json:"confidence"`
	SignalBreakdown SignalBreakdown `json:"signalBreakdown"`
	Reasoning       []string        `json:"reasoning"`
}
