// Package auth holds the access policy, password hashing and token
// handling. The policy is a flat capability check over the two roles; there
// is no hierarchy or delegation.
package auth

import "github.com/trogers1052/stock-analysis-service/internal/models"

// Operation names a role-gated action on reports or portfolio positions.
type Operation string

const (
	OpSaveReport      Operation = "save_report"
	OpListReports     Operation = "list_reports"
	OpCopyToPortfolio Operation = "copy_to_portfolio"
	OpClosePosition   Operation = "close_position"
	OpListPositions   Operation = "list_positions"
)

// Allowed reports whether a role may perform an operation. Unknown roles
// are denied everything.
func Allowed(role models.UserRole, op Operation) bool {
	switch role {
	case models.RoleAnalyst:
		return op == OpSaveReport || op == OpListReports
	case models.RoleInvestor:
		return op == OpCopyToPortfolio || op == OpClosePosition || op == OpListPositions
	}
	return false
}
