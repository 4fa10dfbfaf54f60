package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type DashboardRequest struct {
	Fresh bool `query:"fresh" json:"fresh"`
}

type AlertsRequest struct {
	MinSeverity string `query:"min_severity" json:"min_severity" default:"info" validate:"oneof=info warning critical"`
}
