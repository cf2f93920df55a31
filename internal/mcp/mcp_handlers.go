package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kitchensight/wastetrack/core"
	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/internal/ledgerio"
	"github.com/kitchensight/wastetrack/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleLogWaste(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	foodType := request.GetString("food_type", "")
	if foodType == "" {
		return mcp.NewToolResultError("food_type is required"), nil
	}
	weight := request.GetFloat("weight_grams", -1)
	if weight < 0 {
		return mcp.NewToolResultError("weight_grams must be a non-negative number"), nil
	}

	timestamp := request.GetString("timestamp", "")
	if timestamp == "" {
		timestamp = time.Now().Format(schema.TimestampFormat)
	}

	ledger, err := core.OpenLedger(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ledger load failed: %v", err)), nil
	}

	obs := core.NewObservation(foodType, weight, timestamp, request.GetFloat("confidence", 1.0), request.GetString("image", ""), cfg.Meals)
	if meal := request.GetString("meal", ""); meal != "" {
		obs.MealPeriod = schema.MealPeriodOrDefault(meal)
	}

	if err := ledger.Append(obs); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("append failed: %v", err)), nil
	}
	if err := ledgerio.SaveObservations(cfg.LedgerPath, ledger.Entries()); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("save failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(obs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStatistics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	period := schema.AllTime
	if p := request.GetString("period", ""); p != "" {
		period = schema.TimePeriod(p)
		if _, ok := schema.ValidTimePeriods[period]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid period %q", p)), nil
		}
	}

	ledger, err := core.OpenLedger(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ledger load failed: %v", err)), nil
	}

	snap := ledger.Statistics(period)
	jsonData, _ := json.MarshalIndent(snap, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	ledger, err := core.OpenLedger(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ledger load failed: %v", err)), nil
	}

	days := request.GetInt("days", cfg.TrendDays)
	analyzer := core.NewAnalyzer(ledger)

	var series schema.TrendSeries
	switch {
	case request.GetString("food", "") != "":
		series = analyzer.FoodTypeTrend(request.GetString("food", ""), days)
	case request.GetString("meal", "") != "":
		series = analyzer.MealPeriodTrend(schema.MealPeriodOrDefault(request.GetString("meal", "")), days)
	default:
		series = analyzer.DailyTrend(days)
	}

	jsonData, _ := json.MarshalIndent(series, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleForecastWaste(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	ledger, err := core.OpenLedger(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ledger load failed: %v", err)), nil
	}

	daysAhead := request.GetInt("days_ahead", cfg.ForecastDays)
	result := struct {
		Model    schema.RegressionModel `json:"model"`
		Forecast []float64              `json:"forecast"`
	}{
		Model:    ledger.ForecastModel(),
		Forecast: ledger.Forecast(daysAhead),
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	ledger, err := core.OpenLedger(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ledger load failed: %v", err)), nil
	}

	findings := ledger.Insights()
	if threshold := request.GetFloat("threshold", 0); threshold > 0 {
		findings = append(ledger.Insights(), ledger.Outliers(threshold)...)
	}
	findings = append(findings, ledger.Correlations()...)

	jsonData, _ := json.MarshalIndent(struct {
		Insights []string `json:"insights"`
	}{Insights: findings}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRecommendations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	ledger, err := core.OpenLedger(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ledger load failed: %v", err)), nil
	}

	limit := request.GetInt("limit", contract.DefaultRecommendations)
	recs := ledger.Recommendations(limit)

	jsonData, _ := json.MarshalIndent(recs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
