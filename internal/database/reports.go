package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/trogers1052/stock-analysis-service/internal/models"
)

// CreateReport inserts a new analysis report. Reports are immutable once
// created; there is no update path.
func (db *DB) CreateReport(r *models.Report) error {
	query := `
		INSERT INTO reports (
			analyst_id, symbol, analysis_date, indicators, recommendation,
			portfolio_allocation, analysis_text, price_at_analysis, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	now := time.Now()
	analysisDate := r.AnalysisDate
	if analysisDate.IsZero() {
		analysisDate = now
	}

	err := db.conn.QueryRow(query,
		r.AnalystID, r.Symbol, analysisDate, r.Indicators, r.Recommendation,
		r.PortfolioAllocation, r.AnalysisText, r.PriceAtAnalysis, now,
	).Scan(&r.ID)

	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	r.AnalysisDate = analysisDate
	r.CreatedAt = now
	return nil
}

// GetReportByID retrieves a report by ID
func (db *DB) GetReportByID(id int) (*models.Report, error) {
	query := `
		SELECT id, analyst_id, symbol, analysis_date, indicators, recommendation,
		       portfolio_allocation, analysis_text, price_at_analysis, created_at
		FROM reports
		WHERE id = $1
	`
	var r models.Report
	err := db.conn.QueryRow(query, id).Scan(
		&r.ID, &r.AnalystID, &r.Symbol, &r.AnalysisDate, &r.Indicators, &r.Recommendation,
		&r.PortfolioAllocation, &r.AnalysisText, &r.PriceAtAnalysis, &r.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &r, nil
}

// GetReportsByAnalyst retrieves all reports authored by an analyst, most
// recent first
func (db *DB) GetReportsByAnalyst(analystID int) ([]*models.Report, error) {
	query := `
		SELECT id, analyst_id, symbol, analysis_date, indicators, recommendation,
		       portfolio_allocation, analysis_text, price_at_analysis, created_at
		FROM reports
		WHERE analyst_id = $1
		ORDER BY analysis_date DESC
	`
	rows, err := db.conn.Query(query, analystID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

// GetLatestReport retrieves the most recently dated report across all
// analysts
func (db *DB) GetLatestReport() (*models.Report, error) {
	query := `
		SELECT id, analyst_id, symbol, analysis_date, indicators, recommendation,
		       portfolio_allocation, analysis_text, price_at_analysis, created_at
		FROM reports
		ORDER BY analysis_date DESC
		LIMIT 1
	`
	var r models.Report
	err := db.conn.QueryRow(query).Scan(
		&r.ID, &r.AnalystID, &r.Symbol, &r.AnalysisDate, &r.Indicators, &r.Recommendation,
		&r.PortfolioAllocation, &r.AnalysisText, &r.PriceAtAnalysis, &r.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no reports found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest report: %w", err)
	}
	return &r, nil
}

func scanReports(rows *sql.Rows) ([]*models.Report, error) {
	var reports []*models.Report
	for rows.Next() {
		var r models.Report
		err := rows.Scan(
			&r.ID, &r.AnalystID, &r.Symbol, &r.AnalysisDate, &r.Indicators, &r.Recommendation,
			&r.PortfolioAllocation, &r.AnalysisText, &r.PriceAtAnalysis, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, &r)
	}
	return reports, nil
}
