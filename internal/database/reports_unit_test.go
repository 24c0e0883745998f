package database

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-analysis-service/internal/models"
)

// Unit-level checks against sqlmock; the container-backed tests cover the
// real SQL, these cover error mapping without Docker.
func TestCreateReportUnit(t *testing.T) {
	t.Run("scans returned id", func(t *testing.T) {
		conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer conn.Close()
		db := &DB{conn: conn}

		mock.ExpectQuery(`INSERT INTO reports`).
			WithArgs(
				1, "AAPL", sqlmock.AnyArg(), "{}", models.ActionBuy,
				0.15, "text", sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		report := &models.Report{
			AnalystID:           1,
			Symbol:              "AAPL",
			Indicators:          "{}",
			Recommendation:      models.ActionBuy,
			PortfolioAllocation: 0.15,
			AnalysisText:        "text",
			PriceAtAnalysis:     decimal.NewFromFloat(150),
		}
		require.NoError(t, db.CreateReport(report))
		assert.Equal(t, 42, report.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps query errors", func(t *testing.T) {
		conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer conn.Close()
		db := &DB{conn: conn}

		mock.ExpectQuery(`INSERT INTO reports`).
			WillReturnError(errors.New("connection reset"))

		err = db.CreateReport(&models.Report{Symbol: "AAPL", PriceAtAnalysis: decimal.NewFromFloat(1)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create report")
	})
}
