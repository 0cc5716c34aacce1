package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chidionyema/verdict-sub009/internal/economy"
	"github.com/chidionyema/verdict-sub009/internal/ratelimit"
	"github.com/chidionyema/verdict-sub009/internal/storage"
)

// EngineAPI is the slice of the economy engine the handlers consume.
type EngineAPI interface {
	AwardCreditsForReview(ctx context.Context, reviewerID, reviewID string, consensusMatch *bool, helpfulnessRating *float64) (*economy.AwardResult, error)
	EvaluateReviewer(ctx context.Context, reviewerID string) (*economy.Evaluation, error)
	ReviewerSnapshot(ctx context.Context, reviewerID string) (*economy.Snapshot, error)
	ReportReviewer(ctx context.Context, reviewerID string) error
	RecordResponseTime(ctx context.Context, reviewerID string, minutes float64) error
	SpendCredits(ctx context.Context, actorID string, credits int, description, sourceID string) (int, error)
	RefundCredits(ctx context.Context, actorID string, credits int, description, sourceID string) (int, error)
	ChargeSubmission(ctx context.Context, actorID, submissionID string, opts economy.SubmissionOptions) (*economy.SubmissionCharge, error)
	Balance(ctx context.Context, actorID string) (int, error)
	Entries(ctx context.Context, actorID string, limit int) ([]storage.LedgerEntry, error)
}

// Limits are the per-actor request budgets on mutating endpoints.
type Limits struct {
	AwardPerMinute int
	SpendPerMinute int
}

// Server is the HTTP API the marketplace's request handlers call into.
type Server struct {
	engine  EngineAPI
	limiter ratelimit.Limiter
	limits  Limits
	router  *gin.Engine
}

// NewServer creates the API server.
func NewServer(engine EngineAPI, limiter ratelimit.Limiter, limits Limits) *Server {
	router := gin.Default()

	s := &Server{
		engine:  engine,
		limiter: limiter,
		limits:  limits,
		router:  router,
	}

	api := router.Group("/api")
	{
		api.POST("/awards", s.handleAward)
		api.GET("/reviewers/:id", s.handleReviewer)
		api.GET("/reviewers/:id/priority", s.handlePriority)
		api.POST("/reviewers/:id/evaluate", s.handleEvaluate)
		api.POST("/reviewers/:id/reports", s.handleReport)
		api.POST("/reviewers/:id/response-time", s.handleResponseTime)
		api.GET("/credits/:id", s.handleCredits)
		api.POST("/credits/spend", s.handleSpend)
		api.POST("/credits/refund", s.handleRefund)
		api.POST("/submissions/quote", s.handleQuote)
		api.POST("/submissions/charge", s.handleCharge)
	}

	return s
}

// Run starts the API server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// allow consumes one rate-limit slot for the actor, answering false after
// writing the 429 response. A nil limiter disables throttling.
func (s *Server) allow(c *gin.Context, actorID, action string, limit int) bool {
	if s.limiter == nil || limit <= 0 {
		return true
	}

	ok, err := s.limiter.Allow(c.Request.Context(), actorID, action, limit, time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return false
	}
	if !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error":   "rate limit exceeded for " + action,
		})
		return false
	}
	return true
}
