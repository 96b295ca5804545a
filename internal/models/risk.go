package models

import (
	"time"

	"github.com/thenoetrevino/scope/internal/types"
)

// Appetite labels derived from a risk factor
const (
	AppetiteLow      = "Riesgo Bajo"
	AppetiteModerate = "Riesgo Moderado"
	AppetiteHigh     = "Riesgo Alto"
	AppetiteExtreme  = "Riesgo Extremo"
)

// Bounds for impact and probability
const (
	MinRiskScore = 1
	MaxRiskScore = 4
)

// Risk strategies and statuses
const (
	StrategyAvoid    = "avoid"
	StrategyMitigate = "mitigate"
	StrategyTransfer = "transfer"
	StrategyAccept   = "accept"

	RiskOpen       = "open"
	RiskMonitoring = "monitoring"
	RiskClosed     = "closed"
)

// Defaults applied to new risks
const (
	DefaultRiskStrategy = StrategyMitigate
	DefaultRiskStatus   = RiskOpen
)

// Risk is an entry in a project's risk register. RiskFactor and Appetite are
// derived from Impact and Probability and must be refreshed with Recalculate
// whenever either input changes.
type Risk struct {
	ID          types.RiskID    `json:"id"`
	ProjectID   types.ProjectID `json:"projectId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Impact      int             `json:"impact"`
	Probability int             `json:"probability"`
	RiskFactor  int             `json:"riskFactor"`
	Appetite    string          `json:"appetite"`
	Mitigation  string          `json:"mitigation"`
	Strategy    string          `json:"strategy"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Recalculate derives RiskFactor and Appetite from Impact and Probability.
func (r *Risk) Recalculate() {
	r.RiskFactor = r.Impact * r.Probability
	r.Appetite = AppetiteFor(r.RiskFactor)
}

// AppetiteFor maps a risk factor to its appetite label.
func AppetiteFor(factor int) string {
	switch {
	case factor <= 4:
		return AppetiteLow
	case factor <= 8:
		return AppetiteModerate
	case factor <= 12:
		return AppetiteHigh
	default:
		return AppetiteExtreme
	}
}

// ValidRiskScore reports whether v is an acceptable impact or probability.
func ValidRiskScore(v int) bool {
	return v >= MinRiskScore && v <= MaxRiskScore
}

// RiskStats summarizes a project's risk register.
type RiskStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	ByAppetite map[string]int `json:"byAppetite"`
	ByStrategy map[string]int `json:"byStrategy"`
}

// ComputeRiskStats counts risks by status, appetite and strategy.
func ComputeRiskStats(risks []Risk) RiskStats {
	stats := RiskStats{
		ByStatus:   map[string]int{},
		ByAppetite: map[string]int{},
		ByStrategy: map[string]int{},
	}
	for _, r := range risks {
		stats.Total++
		stats.ByStatus[r.Status]++
		stats.ByAppetite[AppetiteFor(r.Impact*r.Probability)]++
		stats.ByStrategy[r.Strategy]++
	}
	return stats
}
