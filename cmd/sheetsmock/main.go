package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AppendRequest mirrors the values.append payload of the Sheets v4 API.
type AppendRequest struct {
	Range          string          `json:"range"`
	MajorDimension string          `json:"majorDimension"`
	Values         [][]interface{} `json:"values" binding:"required"`
}

// AppendResponse mirrors the values.append response of the Sheets v4 API.
type AppendResponse struct {
	SpreadsheetID string        `json:"spreadsheetId"`
	TableRange    string        `json:"tableRange"`
	Updates       UpdatedValues `json:"updates"`
}

type UpdatedValues struct {
	SpreadsheetID string `json:"spreadsheetId"`
	UpdatedRange  string `json:"updatedRange"`
	UpdatedRows   int    `json:"updatedRows"`
	UpdatedCells  int    `json:"updatedCells"`
}

// ValuesResponse mirrors the values.get response.
type ValuesResponse struct {
	Range          string          `json:"range"`
	MajorDimension string          `json:"majorDimension"`
	Values         [][]interface{} `json:"values"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status      string    `json:"status"`
	InstanceID  string    `json:"instance_id"`
	Timestamp   time.Time `json:"timestamp"`
	SuccessRate float64   `json:"success_rate"`
}

// MockSheets simulates the Google Sheets values API with in-memory tabs.
type MockSheets struct {
	mu          sync.Mutex
	tabs        map[string][][]interface{}
	successRate float64
	minDelay    time.Duration
	maxDelay    time.Duration
	instanceID  string
	rng         *rand.Rand
}

// NewMockSheets creates a new mock sheets instance
func NewMockSheets(successRate float64, minDelay, maxDelay time.Duration) *MockSheets {
	return &MockSheets{
		tabs:        make(map[string][][]interface{}),
		successRate: successRate,
		minDelay:    minDelay,
		maxDelay:    maxDelay,
		instanceID:  "MOCK_SHEETS_" + uuid.New().String()[:8],
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *MockSheets) append(tab string, values [][]interface{}) (firstRow int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	firstRow = len(m.tabs[tab]) + 1
	m.tabs[tab] = append(m.tabs[tab], values...)
	return firstRow
}

func (m *MockSheets) rows(tab string) [][]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tabs[tab]
}

func (m *MockSheets) randomDelay() time.Duration {
	delta := m.maxDelay - m.minDelay
	if delta <= 0 {
		return m.minDelay
	}
	return m.minDelay + time.Duration(m.rng.Int63n(int64(delta)))
}

func (m *MockSheets) shouldSucceed() bool {
	return m.rng.Float64() < m.successRate
}

// tabFromRange extracts the sheet tab from a range like "Money Flow!A1".
func tabFromRange(r string) string {
	r = strings.TrimSuffix(r, ":append")
	if i := strings.Index(r, "!"); i >= 0 {
		return r[:i]
	}
	return r
}

// Handler struct holds the mock sheets service and routes
type Handler struct {
	sheets *MockSheets
}

func NewHandler(sheets *MockSheets) *Handler {
	return &Handler{sheets: sheets}
}

// Append handles values.append requests
func (h *Handler) Append(c *gin.Context) {
	spreadsheetID := c.Param("spreadsheet_id")
	tab := tabFromRange(strings.TrimPrefix(c.Param("range"), "/"))

	var req AppendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	// Simulate network delay
	time.Sleep(h.sheets.randomDelay())

	if !h.sheets.shouldSucceed() {
		log.Warn().
			Str("spreadsheet_id", spreadsheetID).
			Str("tab", tab).
			Msg("Simulated append failure")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": gin.H{
				"code":    http.StatusServiceUnavailable,
				"message": "The service is currently unavailable.",
				"status":  "UNAVAILABLE",
			},
		})
		return
	}

	firstRow := h.sheets.append(tab, req.Values)
	lastRow := firstRow + len(req.Values) - 1
	cells := 0
	for _, row := range req.Values {
		cells += len(row)
	}

	log.Info().
		Str("spreadsheet_id", spreadsheetID).
		Str("tab", tab).
		Int("rows", len(req.Values)).
		Msg("Rows appended")

	c.JSON(http.StatusOK, AppendResponse{
		SpreadsheetID: spreadsheetID,
		TableRange:    fmt.Sprintf("%s!A1:Z%d", tab, firstRow-1),
		Updates: UpdatedValues{
			SpreadsheetID: spreadsheetID,
			UpdatedRange:  fmt.Sprintf("%s!A%d:Z%d", tab, firstRow, lastRow),
			UpdatedRows:   len(req.Values),
			UpdatedCells:  cells,
		},
	})
}

// GetValues handles values.get requests, used to inspect appended rows locally
func (h *Handler) GetValues(c *gin.Context) {
	tab := tabFromRange(strings.TrimPrefix(c.Param("range"), "/"))

	c.JSON(http.StatusOK, ValuesResponse{
		Range:          tab,
		MajorDimension: "ROWS",
		Values:         h.sheets.rows(tab),
	})
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		InstanceID:  h.sheets.instanceID,
		Timestamp:   time.Now(),
		SuccessRate: h.sheets.successRate,
	})
}

// UpdateConfig allows changing the failure injection rate at runtime
func (h *Handler) UpdateConfig(c *gin.Context) {
	var config struct {
		SuccessRate *float64 `json:"success_rate"`
	}

	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if config.SuccessRate != nil {
		if *config.SuccessRate >= 0 && *config.SuccessRate <= 1.0 {
			h.sheets.successRate = *config.SuccessRate
			log.Info().Float64("rate", *config.SuccessRate).Msg("Updated success rate")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Configuration updated",
		"success_rate": h.sheets.successRate,
	})
}

// SetupRouter configures all routes
func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	// Add request logging middleware
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Msg("Request processed")
	})

	// the :append suffix arrives as part of the range segment
	v4 := router.Group("/v4/spreadsheets/:spreadsheet_id")
	{
		v4.POST("/values/*range", handler.Append)
		v4.GET("/values/*range", handler.GetValues)
	}

	router.GET("/health", handler.HealthCheck)
	router.PUT("/config", handler.UpdateConfig)

	return router
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Get configuration from environment
	port := getEnv("PORT", "8082")
	successRate := getEnvFloat("SUCCESS_RATE", 1)
	minDelay := getEnvDuration("MIN_DELAY", 50*time.Millisecond)
	maxDelay := getEnvDuration("MAX_DELAY", 500*time.Millisecond)

	log.Info().
		Str("port", port).
		Float64("success_rate", successRate).
		Dur("min_delay", minDelay).
		Dur("max_delay", maxDelay).
		Msg("Starting Mock Sheets API")

	// Create mock sheets service
	sheets := NewMockSheets(successRate, minDelay, maxDelay)
	handler := NewHandler(sheets)
	router := SetupRouter(handler)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%f", &f); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
