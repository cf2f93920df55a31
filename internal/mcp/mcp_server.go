// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the wastetrack MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Waste Ledger Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: log_waste ---
	s.AddTool(mcp.NewTool("log_waste",
		mcp.WithDescription("Append one waste observation to the ledger."),
		mcp.WithString("food_type", mcp.Description("Food category of the wasted item."), mcp.Required()),
		mcp.WithNumber("weight_grams", mcp.Description("Waste weight in grams (must not be negative)."), mcp.Required()),
		mcp.WithString("timestamp", mcp.Description("Capture time as 'YYYY-MM-DD HH:MM:SS' (defaults to now).")),
		mcp.WithString("meal", mcp.Description("Meal period override (Breakfast, Lunch, Dinner, Snack)."), mcp.Enum("Breakfast", "Lunch", "Dinner", "Snack")),
		mcp.WithNumber("confidence", mcp.Description("Detection confidence between 0 and 1.")),
		mcp.WithString("image", mcp.Description("Stored image reference for the observation.")),
	), h.handleLogWaste)

	// --- 2. Tool: get_statistics ---
	s.AddTool(mcp.NewTool("get_statistics",
		mcp.WithDescription("Compute aggregate waste statistics for a time period."),
		mcp.WithString("period", mcp.Description("Statistics window (day, week, month, year, all). Defaults to 'all'."), mcp.Enum("day", "week", "month", "year", "all")),
	), h.handleGetStatistics)

	// --- 3. Tool: get_trend ---
	s.AddTool(mcp.NewTool("get_trend",
		mcp.WithDescription("Build the daily waste trend series, optionally filtered by food type or meal period."),
		mcp.WithNumber("days", mcp.Description("Lookback window in days.")),
		mcp.WithString("food", mcp.Description("Restrict the series to one food type.")),
		mcp.WithString("meal", mcp.Description("Restrict the series to one meal period."), mcp.Enum("Breakfast", "Lunch", "Dinner", "Snack")),
	), h.handleGetTrend)

	// --- 4. Tool: forecast_waste ---
	s.AddTool(mcp.NewTool("forecast_waste",
		mcp.WithDescription("Project future daily waste with a linear regression over the recent series."),
		mcp.WithNumber("days_ahead", mcp.Description("Forecast horizon in days.")),
	), h.handleForecastWaste)

	// --- 5. Tool: get_insights ---
	s.AddTool(mcp.NewTool("get_insights",
		mcp.WithDescription("Generate human-readable findings over the whole ledger, including pattern outliers."),
		mcp.WithNumber("threshold", mcp.Description("Z-score threshold for pattern outliers.")),
	), h.handleGetInsights)

	// --- 6. Tool: get_recommendations ---
	s.AddTool(mcp.NewTool("get_recommendations",
		mcp.WithDescription("Rank the heaviest food and meal pairings and propose portion reductions."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of recommendations.")),
	), h.handleGetRecommendations)

	return s
}

// StartMCPServer starts the wastetrack MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
