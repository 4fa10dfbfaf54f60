package models

import "time"

// DashboardData is the aggregate returned by the boundary endpoint:
// one full pipeline evaluation (signals -> decision -> alerts).
type DashboardData struct {
	Price       PriceData      `json:"price"`
	Signals     []Signal       `json:"signals"`
	Decision    DecisionResult `json:"decision"`
	Alerts      []Alert        `json:"alerts"`
	LastUpdated time.Time      `json:"lastUpdated"`
}
