package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-analysis-service/internal/models"
)

// CreatePosition inserts a new open portfolio position
func (db *DB) CreatePosition(p *models.PortfolioPosition) error {
	query := `
		INSERT INTO positions (
			investor_id, analysis_id, symbol, allocation_percentage,
			entry_date, entry_price, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	now := time.Now()
	entryDate := p.EntryDate
	if entryDate.IsZero() {
		entryDate = now
	}

	err := db.conn.QueryRow(query,
		p.InvestorID, p.AnalysisID, p.Symbol, p.AllocationPercentage,
		entryDate, p.EntryPrice, now, now,
	).Scan(&p.ID)

	if err != nil {
		return fmt.Errorf("failed to create position: %w", err)
	}
	p.EntryDate = entryDate
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// GetPositionByID retrieves a position by ID
func (db *DB) GetPositionByID(id int) (*models.PortfolioPosition, error) {
	query := `
		SELECT id, investor_id, analysis_id, symbol, allocation_percentage,
		       entry_date, entry_price, exit_date, exit_price, created_at, updated_at
		FROM positions
		WHERE id = $1
	`
	var p models.PortfolioPosition
	var exitDate sql.NullTime
	var exitPrice sql.NullString

	err := db.conn.QueryRow(query, id).Scan(
		&p.ID, &p.InvestorID, &p.AnalysisID, &p.Symbol, &p.AllocationPercentage,
		&p.EntryDate, &p.EntryPrice, &exitDate, &exitPrice, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("position not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	applyExitFields(&p, exitDate, exitPrice)
	return &p, nil
}

// GetPositionsByInvestor retrieves all positions owned by an investor, most
// recent entry first
func (db *DB) GetPositionsByInvestor(investorID int) ([]*models.PortfolioPosition, error) {
	query := `
		SELECT id, investor_id, analysis_id, symbol, allocation_percentage,
		       entry_date, entry_price, exit_date, exit_price, created_at, updated_at
		FROM positions
		WHERE investor_id = $1
		ORDER BY entry_date DESC
	`
	rows, err := db.conn.Query(query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}
	defer rows.Close()

	return scanPositions(rows)
}

// GetPositionsByReport retrieves all positions that reference a report
func (db *DB) GetPositionsByReport(analysisID int) ([]*models.PortfolioPosition, error) {
	query := `
		SELECT id, investor_id, analysis_id, symbol, allocation_percentage,
		       entry_date, entry_price, exit_date, exit_price, created_at, updated_at
		FROM positions
		WHERE analysis_id = $1
		ORDER BY entry_date DESC
	`
	rows, err := db.conn.Query(query, analysisID)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}
	defer rows.Close()

	return scanPositions(rows)
}

// GetPositionsByAnalyst retrieves all positions referencing any report
// authored by the analyst
func (db *DB) GetPositionsByAnalyst(analystID int) ([]*models.PortfolioPosition, error) {
	query := `
		SELECT p.id, p.investor_id, p.analysis_id, p.symbol, p.allocation_percentage,
		       p.entry_date, p.entry_price, p.exit_date, p.exit_price, p.created_at, p.updated_at
		FROM positions p
		JOIN reports r ON p.analysis_id = r.id
		WHERE r.analyst_id = $1
		ORDER BY p.entry_date DESC
	`
	rows, err := db.conn.Query(query, analystID)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}
	defer rows.Close()

	return scanPositions(rows)
}

// CloseOpenPosition sets both exit fields on a position if and only if it is
// still open. Returns false when the position does not exist or is already
// closed; the two exit fields are only ever written together.
func (db *DB) CloseOpenPosition(id int, exitPrice decimal.Decimal, exitDate time.Time) (bool, error) {
	query := `
		UPDATE positions
		SET exit_date = $2, exit_price = $3, updated_at = $4
		WHERE id = $1 AND exit_date IS NULL AND exit_price IS NULL
	`
	result, err := db.conn.Exec(query, id, exitDate, exitPrice, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to close position: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check close result: %w", err)
	}
	return rowsAffected == 1, nil
}

func scanPositions(rows *sql.Rows) ([]*models.PortfolioPosition, error) {
	var positions []*models.PortfolioPosition
	for rows.Next() {
		var p models.PortfolioPosition
		var exitDate sql.NullTime
		var exitPrice sql.NullString

		err := rows.Scan(
			&p.ID, &p.InvestorID, &p.AnalysisID, &p.Symbol, &p.AllocationPercentage,
			&p.EntryDate, &p.EntryPrice, &exitDate, &exitPrice, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}

		applyExitFields(&p, exitDate, exitPrice)
		positions = append(positions, &p)
	}
	return positions, nil
}

func applyExitFields(p *models.PortfolioPosition, exitDate sql.NullTime, exitPrice sql.NullString) {
	if exitDate.Valid {
		p.ExitDate = &exitDate.Time
	}
	if exitPrice.Valid {
		price, _ := decimal.NewFromString(exitPrice.String)
		p.ExitPrice = &price
	}
}
