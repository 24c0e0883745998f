package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-analysis-service/internal/models"
)

func createTestReport(t *testing.T, tdb *TestDB, analystID int, symbol string) *models.Report {
	t.Helper()
	report := &models.Report{
		AnalystID:           analystID,
		Symbol:              symbol,
		Indicators:          `{"price": 150.0, "rsi": 55.2}`,
		Recommendation:      models.ActionBuy,
		PortfolioAllocation: 0.15,
		AnalysisText:        "Solid uptrend with support at the 50-day SMA.",
		PriceAtAnalysis:     decimal.NewFromFloat(150.00),
	}
	require.NoError(t, tdb.CreateReport(report))
	return report
}

func TestReportsRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("CreateReport assigns id and defaults analysis_date", func(t *testing.T) {
		testDB.TruncateAll(t)

		analyst := createTestUser(t, testDB, "alice", models.RoleAnalyst)
		report := createTestReport(t, testDB, analyst.ID, "AAPL")

		assert.NotZero(t, report.ID)
		assert.False(t, report.AnalysisDate.IsZero())
		assert.False(t, report.CreatedAt.IsZero())
	})

	t.Run("repeated saves create distinct records", func(t *testing.T) {
		testDB.TruncateAll(t)

		analyst := createTestUser(t, testDB, "alice", models.RoleAnalyst)
		first := createTestReport(t, testDB, analyst.ID, "AAPL")
		second := createTestReport(t, testDB, analyst.ID, "AAPL")
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("GetReportByID round trips all fields", func(t *testing.T) {
		testDB.TruncateAll(t)

		analyst := createTestUser(t, testDB, "alice", models.RoleAnalyst)
		created := createTestReport(t, testDB, analyst.ID, "GOOGL")

		retrieved, err := testDB.GetReportByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, analyst.ID, retrieved.AnalystID)
		assert.Equal(t, "GOOGL", retrieved.Symbol)
		assert.Equal(t, models.ActionBuy, retrieved.Recommendation)
		assert.InDelta(t, 0.15, retrieved.PortfolioAllocation, 1e-9)
		assert.True(t, decimal.NewFromFloat(150.00).Equal(retrieved.PriceAtAnalysis))
		assert.Contains(t, retrieved.Indicators, "rsi")
	})

	t.Run("GetReportByID returns error for non-existent ID", func(t *testing.T) {
		testDB.TruncateAll(t)

		_, err := testDB.GetReportByID(99999)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("GetReportsByAnalyst orders most recent first", func(t *testing.T) {
		testDB.TruncateAll(t)

		analyst := createTestUser(t, testDB, "alice", models.RoleAnalyst)
		other := createTestUser(t, testDB, "bob", models.RoleAnalyst)

		now := time.Now()
		for i, symbol := range []string{"AAPL", "GOOGL", "MSFT"} {
			report := &models.Report{
				AnalystID:           analyst.ID,
				Symbol:              symbol,
				AnalysisDate:        now.Add(time.Duration(i) * time.Hour),
				Indicators:          "{}",
				Recommendation:      models.ActionHold,
				PortfolioAllocation: 0.05,
				AnalysisText:        "text",
				PriceAtAnalysis:     decimal.NewFromFloat(100),
			}
			require.NoError(t, testDB.CreateReport(report))
		}
		createTestReport(t, testDB, other.ID, "NVDA")

		reports, err := testDB.GetReportsByAnalyst(analyst.ID)
		require.NoError(t, err)
		require.Len(t, reports, 3)
		assert.Equal(t, "MSFT", reports[0].Symbol)
		assert.Equal(t, "AAPL", reports[2].Symbol)
	})

	t.Run("GetLatestReport returns most recently dated", func(t *testing.T) {
		testDB.TruncateAll(t)

		analyst := createTestUser(t, testDB, "alice", models.RoleAnalyst)
		createTestReport(t, testDB, analyst.ID, "AAPL")
		latest := &models.Report{
			AnalystID:           analyst.ID,
			Symbol:              "TSLA",
			AnalysisDate:        time.Now().Add(24 * time.Hour),
			Indicators:          "{}",
			Recommendation:      models.ActionSell,
			PortfolioAllocation: 0.05,
			AnalysisText:        "text",
			PriceAtAnalysis:     decimal.NewFromFloat(200),
		}
		require.NoError(t, testDB.CreateReport(latest))

		retrieved, err := testDB.GetLatestReport()
		require.NoError(t, err)
		assert.Equal(t, "TSLA", retrieved.Symbol)
	})
}
