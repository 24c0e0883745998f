// Package service implements the report and portfolio lifecycle over the
// persistence layer, enforcing the access policy at every write.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-analysis-service/internal/auth"
	"github.com/trogers1052/stock-analysis-service/internal/models"
)

var (
	// ErrForbidden is returned when the acting user's role does not permit
	// the operation or the user does not own the target record.
	ErrForbidden = errors.New("operation not permitted")
	// ErrInvalidState is returned when a lifecycle transition does not apply,
	// e.g. closing an already-closed position.
	ErrInvalidState = errors.New("invalid position state")
)

// ReportStore is the persistence contract for reports.
type ReportStore interface {
	CreateReport(r *models.Report) error
	GetReportByID(id int) (*models.Report, error)
	GetReportsByAnalyst(analystID int) ([]*models.Report, error)
}

// PositionStore is the persistence contract for portfolio positions.
// CloseOpenPosition must set both exit fields in one atomic write and report
// whether an open position was actually closed.
type PositionStore interface {
	CreatePosition(p *models.PortfolioPosition) error
	GetPositionByID(id int) (*models.PortfolioPosition, error)
	GetPositionsByInvestor(investorID int) ([]*models.PortfolioPosition, error)
	GetPositionsByReport(analysisID int) ([]*models.PortfolioPosition, error)
	GetPositionsByAnalyst(analystID int) ([]*models.PortfolioPosition, error)
	CloseOpenPosition(id int, exitPrice decimal.Decimal, exitDate time.Time) (bool, error)
}

// EventPublisher announces successful lifecycle writes. Publishing is
// best-effort and never fails the request.
type EventPublisher interface {
	PublishReportSaved(ctx context.Context, report *models.Report) error
	PublishPositionOpened(ctx context.Context, position *models.PortfolioPosition) error
	PublishPositionClosed(ctx context.Context, position *models.PortfolioPosition) error
}

// Service coordinates lifecycle operations. events may be nil.
type Service struct {
	reports   ReportStore
	positions PositionStore
	events    EventPublisher
}

// New creates a Service.
func New(reports ReportStore, positions PositionStore, events EventPublisher) *Service {
	return &Service{reports: reports, positions: positions, events: events}
}

// SaveReport persists an analysis result as a report owned by the analyst.
// Repeated calls create distinct records; idempotency is intentionally not
// guaranteed.
func (s *Service) SaveReport(ctx context.Context, analyst *models.User, result *models.AnalysisResult) (*models.Report, error) {
	if !auth.Allowed(analyst.Role, auth.OpSaveReport) {
		return nil, fmt.Errorf("%w: role %s cannot save reports", ErrForbidden, analyst.Role)
	}

	indicatorsJSON, err := json.Marshal(result.Indicators)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize indicators: %w", err)
	}

	report := &models.Report{
		AnalystID:           analyst.ID,
		Symbol:              result.Symbol,
		AnalysisDate:        result.GeneratedAt,
		Indicators:          string(indicatorsJSON),
		Recommendation:      result.Signal.Action,
		PortfolioAllocation: result.Signal.AllocationFraction,
		AnalysisText:        result.NarrativeText,
		PriceAtAnalysis:     decimal.NewFromFloat(result.Indicators.Price),
	}
	if err := s.reports.CreateReport(report); err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishReportSaved(ctx, report); err != nil {
			log.Printf("failed to publish report saved event: %v", err)
		}
	}
	return report, nil
}

// ListReports returns the analyst's own reports.
func (s *Service) ListReports(ctx context.Context, analyst *models.User) ([]*models.Report, error) {
	if !auth.Allowed(analyst.Role, auth.OpListReports) {
		return nil, fmt.Errorf("%w: role %s cannot list reports", ErrForbidden, analyst.Role)
	}
	return s.reports.GetReportsByAnalyst(analyst.ID)
}

// CopyToPortfolio opens a position for the investor, copying symbol,
// allocation and entry price from the report as they stand now. The report
// itself is never mutated.
func (s *Service) CopyToPortfolio(ctx context.Context, investor *models.User, reportID int) (*models.PortfolioPosition, error) {
	if !auth.Allowed(investor.Role, auth.OpCopyToPortfolio) {
		return nil, fmt.Errorf("%w: role %s cannot copy reports to a portfolio", ErrForbidden, investor.Role)
	}

	report, err := s.reports.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}

	position := &models.PortfolioPosition{
		InvestorID:           investor.ID,
		AnalysisID:           report.ID,
		Symbol:               report.Symbol,
		AllocationPercentage: report.PortfolioAllocation,
		EntryDate:            time.Now(),
		EntryPrice:           report.PriceAtAnalysis,
	}
	if err := s.positions.CreatePosition(position); err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishPositionOpened(ctx, position); err != nil {
			log.Printf("failed to publish position opened event: %v", err)
		}
	}
	return position, nil
}

// ClosePosition sets both exit fields on an open position owned by the
// caller. Closing an already-closed position fails with ErrInvalidState.
func (s *Service) ClosePosition(ctx context.Context, investor *models.User, positionID int, exitPrice decimal.Decimal, exitDate time.Time) (*models.PortfolioPosition, error) {
	if !auth.Allowed(investor.Role, auth.OpClosePosition) {
		return nil, fmt.Errorf("%w: role %s cannot close positions", ErrForbidden, investor.Role)
	}

	position, err := s.positions.GetPositionByID(positionID)
	if err != nil {
		return nil, err
	}
	if position.InvestorID != investor.ID {
		return nil, fmt.Errorf("%w: position %d belongs to another investor", ErrForbidden, positionID)
	}
	if !position.Open() {
		return nil, fmt.Errorf("%w: position %d is already closed", ErrInvalidState, positionID)
	}

	if exitDate.IsZero() {
		exitDate = time.Now()
	}
	closed, err := s.positions.CloseOpenPosition(positionID, exitPrice, exitDate)
	if err != nil {
		return nil, err
	}
	if !closed {
		// Lost a race with a concurrent close
		return nil, fmt.Errorf("%w: position %d is already closed", ErrInvalidState, positionID)
	}

	position, err = s.positions.GetPositionByID(positionID)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishPositionClosed(ctx, position); err != nil {
			log.Printf("failed to publish position closed event: %v", err)
		}
	}
	return position, nil
}

// ListPositions returns the investor's own positions.
func (s *Service) ListPositions(ctx context.Context, investor *models.User) ([]*models.PortfolioPosition, error) {
	if !auth.Allowed(investor.Role, auth.OpListPositions) {
		return nil, fmt.Errorf("%w: role %s cannot list positions", ErrForbidden, investor.Role)
	}
	return s.positions.GetPositionsByInvestor(investor.ID)
}

// ListReportPositions returns the positions referencing one of the
// analyst's own reports.
func (s *Service) ListReportPositions(ctx context.Context, analyst *models.User, reportID int) ([]*models.PortfolioPosition, error) {
	if !auth.Allowed(analyst.Role, auth.OpListReports) {
		return nil, fmt.Errorf("%w: role %s cannot list report positions", ErrForbidden, analyst.Role)
	}

	report, err := s.reports.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if report.AnalystID != analyst.ID {
		return nil, fmt.Errorf("%w: report %d belongs to another analyst", ErrForbidden, reportID)
	}
	return s.positions.GetPositionsByReport(reportID)
}

// ListAnalystPositions returns every position referencing any of the
// analyst's reports.
func (s *Service) ListAnalystPositions(ctx context.Context, analyst *models.User) ([]*models.PortfolioPosition, error) {
	if !auth.Allowed(analyst.Role, auth.OpListReports) {
		return nil, fmt.Errorf("%w: role %s cannot list report positions", ErrForbidden, analyst.Role)
	}
	return s.positions.GetPositionsByAnalyst(analyst.ID)
}
