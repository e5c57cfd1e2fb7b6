package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"parsume/internal/errors"
	"parsume/internal/observability"
	"parsume/internal/pipeline"
	"parsume/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// createParseHandler wraps the parse handler with observability
func (s *Server) createParseHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("parsume.api")
		ctx, span := tracer.Start(ctx, "api.parse")
		defer span.End()

		// Parse request
		var req ParseRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		mode, err := s.resolveMode(req.Mode)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid parse mode", err.Error(), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("parse.mode", string(mode)),
			attribute.String("operation", "parse"),
		)

		metrics := om.GetMetrics()
		record, err := s.runParse(ctx, req.ResumeText, mode, metrics, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "processing"))
			metrics.RecordBusinessMetric(ctx, "resume_parsed", false, om,
				attribute.String("mode", string(mode)))
			writeErrorResponse(w, "Failed to parse resume", err.Error(), statusForError(err))
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "resume_parsed", true, om,
			attribute.String("mode", string(mode)),
			attribute.String("source", string(record.ParsingSource)))
		metrics.RecordParseConfidence(ctx, record.ConfidenceScore, om,
			attribute.String("mode", string(mode)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("response.source", string(record.ParsingSource)),
			attribute.Float64("response.confidence", record.ConfidenceScore),
		)

		writeJSONResponse(w, span, record)
	}
}

// runParse executes a parse, tracking it as an AI operation when a provider
// may be involved
func (s *Server) runParse(ctx context.Context, text string, mode pipeline.Mode, metrics *observability.Metrics, om *observability.ObservabilityManager) (types.ResumeRecord, error) {
	if mode == pipeline.ModeLocal {
		return s.Pipeline.ParseText(ctx, text, mode)
	}

	var record types.ResumeRecord
	err := metrics.TrackAIOperationWithTokens(ctx, "parse", func(ctx context.Context) *observability.AIOperationResult {
		var aiErr error
		record, aiErr = s.Pipeline.ParseText(ctx, text, mode)
		return &observability.AIOperationResult{Error: aiErr}
	}, om)
	return record, err
}

// createScoreHandler wraps the score handler with observability
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("parsume.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		var req ScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		mode, err := s.resolveMode(req.Mode)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid scoring mode", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("score.mode", string(mode)),
			attribute.String("operation", "score"),
		)

		metrics := om.GetMetrics()
		record, err := s.runParse(ctx, req.ResumeText, mode, metrics, om)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "processing"))
			metrics.RecordBusinessMetric(ctx, "resume_scored", false, om,
				attribute.String("mode", string(mode)))
			writeErrorResponse(w, "Failed to parse resume", err.Error(), statusForError(err))
			return
		}

		analysis, err := s.runScore(ctx, record, req.JobDescription, mode, metrics, om)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "processing"))
			metrics.RecordBusinessMetric(ctx, "resume_scored", false, om,
				attribute.String("mode", string(mode)))
			writeErrorResponse(w, "Failed to score resume", err.Error(), statusForError(err))
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_scored", true, om,
			attribute.String("mode", string(mode)),
			attribute.String("method", analysis.AnalysisMethod),
			attribute.Int("ats.score", analysis.OverallScore))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", analysis.OverallScore),
			attribute.String("analysis.method", analysis.AnalysisMethod),
		)

		writeJSONResponse(w, span, analysis)
	}
}

// runScore executes a scoring pass, tracking it as an AI operation when a
// provider may be involved
func (s *Server) runScore(ctx context.Context, record types.ResumeRecord, jobDescription string, mode pipeline.Mode, metrics *observability.Metrics, om *observability.ObservabilityManager) (types.ATSAnalysis, error) {
	if mode == pipeline.ModeLocal || !s.Pipeline.HasProvider() {
		return s.Pipeline.Score(ctx, record, jobDescription, mode)
	}

	var analysis types.ATSAnalysis
	err := metrics.TrackAIOperationWithTokens(ctx, "score", func(ctx context.Context) *observability.AIOperationResult {
		var aiErr error
		analysis, aiErr = s.Pipeline.Score(ctx, record, jobDescription, mode)
		return &observability.AIOperationResult{Error: aiErr}
	}, om)
	return analysis, err
}

// createOptimizeHandler wraps the optimize handler with observability
func (s *Server) createOptimizeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("parsume.api")
		ctx, span := tracer.Start(ctx, "api.optimize")
		defer span.End()

		var req OptimizeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "optimize"),
		)

		// Optimization is rule-based, so parsing always runs locally
		metrics := om.GetMetrics()
		record, err := s.Pipeline.ParseText(ctx, req.ResumeText, pipeline.ModeLocal)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "processing"))
			metrics.RecordBusinessMetric(ctx, "resume_optimized", false, om)
			writeErrorResponse(w, "Failed to parse resume", err.Error(), statusForError(err))
			return
		}

		result := s.Pipeline.Optimize(record, req.JobDescription)

		metrics.RecordBusinessMetric(ctx, "resume_optimized", true, om,
			attribute.Int("ats.score", result.Score),
			attribute.Int("suggestions_count", len(result.Suggestions)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.Score),
		)

		writeJSONResponse(w, span, result)
	}
}

// resolveMode resolves the requested parse mode, falling back to the
// configured default when the request leaves it empty
func (s *Server) resolveMode(requested string) (pipeline.Mode, error) {
	if strings.TrimSpace(requested) == "" {
		requested = s.AppConfig.App.DefaultMode
	}
	return pipeline.ParseMode(requested)
}

// statusForError maps application error codes to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.HasCode(err, errors.ErrCodeInvalidRequest),
		errors.HasCode(err, errors.ErrCodeNoTextExtracted):
		return http.StatusBadRequest
	case errors.HasCode(err, errors.ErrCodeMissingAPIKey):
		return http.StatusNotImplemented
	case errors.HasCode(err, errors.ErrCodeProviderDown):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// writeJSONResponse encodes a successful JSON response
func writeJSONResponse(w http.ResponseWriter, span oteltrace.Span, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
