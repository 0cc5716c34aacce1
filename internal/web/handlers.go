package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chidionyema/verdict-sub009/internal/economy"
	"github.com/chidionyema/verdict-sub009/internal/reputation"
	"github.com/chidionyema/verdict-sub009/internal/storage"
)

type awardRequest struct {
	ReviewerID        string   `json:"reviewer_id"`
	ReviewID          string   `json:"review_id"`
	ConsensusMatch    *bool    `json:"consensus_match,omitempty"`
	HelpfulnessRating *float64 `json:"helpfulness_rating,omitempty"`
}

type spendRequest struct {
	ActorID     string `json:"actor_id"`
	Credits     int    `json:"credits"`
	Description string `json:"description"`
	SourceID    string `json:"source_id,omitempty"`
}

type responseTimeRequest struct {
	Minutes float64 `json:"minutes"`
}

type chargeRequest struct {
	ActorID      string `json:"actor_id"`
	SubmissionID string `json:"submission_id"`
	economy.SubmissionOptions
}

func (s *Server) handleAward(c *gin.Context) {
	var req awardRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if !s.allow(c, req.ReviewerID, "award", s.limits.AwardPerMinute) {
		return
	}

	result, err := s.engine.AwardCreditsForReview(c.Request.Context(), req.ReviewerID, req.ReviewID, req.ConsensusMatch, req.HelpfulnessRating)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func (s *Server) handleReviewer(c *gin.Context) {
	snap, err := s.engine.ReviewerSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": snap})
}

// handlePriority serves the routing weight the work dispatcher consumes,
// with the active-status gate it must honor.
func (s *Server) handlePriority(c *gin.Context) {
	snap, err := s.engine.ReviewerSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"priority":   snap.AssignmentPriority,
		"assignable": snap.Status == reputation.StatusActive,
		"status":     snap.Status,
	})
}

func (s *Server) handleEvaluate(c *gin.Context) {
	eval, err := s.engine.EvaluateReviewer(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": eval})
}

func (s *Server) handleReport(c *gin.Context) {
	if err := s.engine.ReportReviewer(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleResponseTime(c *gin.Context) {
	var req responseTimeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := s.engine.RecordResponseTime(c.Request.Context(), c.Param("id"), req.Minutes); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleCredits(c *gin.Context) {
	actorID := c.Param("id")
	ctx := c.Request.Context()

	balance, err := s.engine.Balance(ctx, actorID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	entries, err := s.engine.Entries(ctx, actorID, 50)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"balance": balance,
		"entries": entries,
	})
}

func (s *Server) handleSpend(c *gin.Context) {
	var req spendRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if !s.allow(c, req.ActorID, "spend", s.limits.SpendPerMinute) {
		return
	}

	balance, err := s.engine.SpendCredits(c.Request.Context(), req.ActorID, req.Credits, req.Description, req.SourceID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "balance": balance})
}

func (s *Server) handleRefund(c *gin.Context) {
	var req spendRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	balance, err := s.engine.RefundCredits(c.Request.Context(), req.ActorID, req.Credits, req.Description, req.SourceID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "balance": balance})
}

func (s *Server) handleQuote(c *gin.Context) {
	var opts economy.SubmissionOptions
	if err := c.BindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	cost, features := economy.SubmissionCost(opts)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"cost":     cost,
		"features": features,
	})
}

func (s *Server) handleCharge(c *gin.Context) {
	var req chargeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if !s.allow(c, req.ActorID, "spend", s.limits.SpendPerMinute) {
		return
	}

	charge, err := s.engine.ChargeSubmission(c.Request.Context(), req.ActorID, req.SubmissionID, req.SubmissionOptions)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": charge})
}

// respondError maps engine errors onto HTTP statuses. An insufficient
// balance is a normal outcome and carries the exact shortfall.
func (s *Server) respondError(c *gin.Context, err error) {
	var insufficient *economy.InsufficientCreditsError
	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"success":   false,
			"error":     "insufficient credits",
			"needed":    insufficient.Needed,
			"available": insufficient.Available,
		})
	case errors.Is(err, storage.ErrReviewerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "reviewer not found"})
	case errors.Is(err, economy.ErrInvalidRequest), errors.Is(err, reputation.ErrInvalidPerformance):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
