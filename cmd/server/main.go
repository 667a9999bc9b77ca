package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	argsimilarity "github.com/baditaflorin/go_argument_similarity"
	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
)

// Logger instance
var logger l.Logger

// EvaluateRequest carries an in-memory score table plus the run
// configuration of a threshold cross-validation.
type EvaluateRequest struct {
	Header               []string   `json:"header"`
	Rows                 [][]string `json:"rows"`
	FoldCount            int        `json:"fold_count,omitempty"`
	TopicColumn          string     `json:"topic_column,omitempty"`
	GoldColumn           string     `json:"gold_column,omitempty"`
	ContinuousGoldColumn string     `json:"continuous_gold_column,omitempty"`
	Schemes              []string   `json:"schemes"`
}

// BinsRequest carries a score table plus previously computed thresholds.
type BinsRequest struct {
	Header     []string           `json:"header"`
	Rows       [][]string         `json:"rows"`
	GoldColumn string             `json:"gold_column,omitempty"`
	Schemes    []string           `json:"schemes"`
	Thresholds map[string]float64 `json:"thresholds"`
}

// FoldResponse mirrors one per-fold diagnostic.
type FoldResponse struct {
	Fold      int     `json:"fold"`
	Threshold float64 `json:"threshold"`
	RowCount  int     `json:"row_count"`
	F1        float64 `json:"f1"`
}

// SchemeResponse is one aggregated scheme result.
type SchemeResponse struct {
	Scheme       string         `json:"scheme"`
	F1           float64        `json:"f1"`
	Threshold    float64        `json:"threshold"`
	Folds        []FoldResponse `json:"folds"`
	Correlation  *float64       `json:"correlation,omitempty"`
	CorrelationP *float64       `json:"correlation_p,omitempty"`
}

// BinResponse is one length bin of one scheme.
type BinResponse struct {
	Bin   string   `json:"bin"`
	Count int      `json:"count"`
	Mean  *float64 `json:"mean,omitempty"`
	F1    *float64 `json:"f1,omitempty"`
}

// SchemeBinsResponse is the length-stratified view of one scheme.
type SchemeBinsResponse struct {
	Scheme string        `json:"scheme"`
	Bins   []BinResponse `json:"bins"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	// Set up logger
	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting evaluation HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "ArgSimilarityServer")

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/evaluate":
		handleEvaluate(ctx)
	case "/bins":
		handleBins(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	// Log request
	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	writeJSONResponse(ctx, response)
}

// handleEvaluate runs the cross-validated threshold search over a posted table
func handleEvaluate(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req EvaluateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if len(req.Header) == 0 || len(req.Schemes) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Both header and schemes are required")
		return
	}

	opts := []argsimilarity.Option{argsimilarity.WithLogger(logger)}
	if req.FoldCount > 0 {
		opts = append(opts, argsimilarity.WithFoldCount(req.FoldCount))
	}
	if req.TopicColumn != "" {
		opts = append(opts, argsimilarity.WithTopicColumn(req.TopicColumn))
	}
	if req.GoldColumn != "" {
		opts = append(opts, argsimilarity.WithGoldColumn(req.GoldColumn))
	}
	if req.ContinuousGoldColumn != "" {
		opts = append(opts, argsimilarity.WithContinuousGoldColumn(req.ContinuousGoldColumn))
	}

	eval, err := argsimilarity.New(opts...)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	table, err := domain.NewTable(req.Header, req.Rows)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	schemes := make([]argsimilarity.Scheme, len(req.Schemes))
	for i, column := range req.Schemes {
		schemes[i] = argsimilarity.Scheme{Column: column}
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := eval.EvaluateThresholds(c, table, schemes)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
		writeJSONError(ctx, err.Error())
		return
	}

	response := make([]SchemeResponse, len(results))
	for i, res := range results {
		folds := make([]FoldResponse, len(res.Folds))
		for j, fr := range res.Folds {
			folds[j] = FoldResponse{Fold: fr.Fold, Threshold: fr.Threshold, RowCount: fr.RowCount, F1: fr.F1}
		}
		response[i] = SchemeResponse{
			Scheme:       res.Scheme,
			F1:           res.F1,
			Threshold:    res.Threshold,
			Folds:        folds,
			Correlation:  res.Correlation,
			CorrelationP: res.CorrelationP,
		}
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, response)
}

// handleBins runs the length-stratified analysis over a posted table
func handleBins(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req BinsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if len(req.Header) == 0 || len(req.Schemes) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Both header and schemes are required")
		return
	}

	opts := []argsimilarity.Option{argsimilarity.WithLogger(logger)}
	if req.GoldColumn != "" {
		opts = append(opts, argsimilarity.WithGoldColumn(req.GoldColumn))
	}

	eval, err := argsimilarity.New(opts...)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	table, err := domain.NewTable(req.Header, req.Rows)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bins, err := eval.AnalyzeLengthBins(c, table, req.Schemes, req.Thresholds)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
		writeJSONError(ctx, err.Error())
		return
	}

	response := make([]SchemeBinsResponse, len(bins))
	for i, sb := range bins {
		out := make([]BinResponse, len(sb.Bins))
		for j, bin := range sb.Bins {
			out[j] = BinResponse{Bin: bin.Bin.Label, Count: bin.Count}
			if bin.HasData() {
				mean, f1 := bin.Mean, bin.F1
				out[j].Mean = &mean
				out[j].F1 = &f1
			}
		}
		response[i] = SchemeBinsResponse{Scheme: sb.Scheme, Bins: out}
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, response)
}

// Helper functions

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	errResponse := ErrorResponse{
		Error: message,
	}

	response, err := json.Marshal(errResponse)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	// Create a logger factory
	factory := l.NewStandardFactory()

	// Configure the logger
	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	// Create the logger
	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
