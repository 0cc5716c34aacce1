package economy

import (
	"context"
	"fmt"
	"strings"

	"github.com/chidionyema/verdict-sub009/internal/storage"
)

// SubmissionCost prices a feedback request from its premium feature flags.
// Pricing is additive; a request with no flags is free. Pure lookup, no
// state.
func SubmissionCost(opts SubmissionOptions) (int, []string) {
	cost := 0
	var features []string

	if opts.Private {
		cost += costPrivate
		features = append(features, "private submission")
	}
	if opts.ExpertOnly {
		cost += costExpertOnly
		features = append(features, "expert reviewers only")
	}
	if opts.PriorityQueue {
		cost += costPriority
		features = append(features, "priority queue")
	}

	if len(features) == 0 {
		features = []string{"public submission (free)"}
	}
	return cost, features
}

// CanAfford reports whether an actor's current balance covers creditsNeeded.
// This is a read-side convenience; the authoritative check happens inside
// the spend transaction, so two concurrent spends cannot both pass it.
func (e *Engine) CanAfford(ctx context.Context, actorID string, creditsNeeded int) (bool, error) {
	if creditsNeeded < 0 {
		return false, fmt.Errorf("%w: credits needed %d negative", ErrInvalidRequest, creditsNeeded)
	}
	balance, err := e.store.Balance(ctx, actorID)
	if err != nil {
		return false, err
	}
	return balance >= creditsNeeded, nil
}

// SpendCredits atomically debits an actor's balance and appends the spend to
// the ledger. The affordability check runs inside the same transaction as
// the debit; a shortfall returns InsufficientCreditsError with the exact
// amounts and leaves no trace in the ledger.
func (e *Engine) SpendCredits(ctx context.Context, actorID string, credits int, description, sourceID string) (int, error) {
	if actorID == "" {
		return 0, fmt.Errorf("%w: actor id required", ErrInvalidRequest)
	}
	if credits <= 0 {
		return 0, fmt.Errorf("%w: spend amount %d must be positive", ErrInvalidRequest, credits)
	}

	now := e.clock.Now().UTC()
	var newBalance int

	err := e.store.Transact(ctx, func(tx Tx) error {
		balance, err := tx.Balance(actorID)
		if err != nil {
			return err
		}
		if balance < credits {
			return &InsufficientCreditsError{ActorID: actorID, Needed: credits, Available: balance}
		}

		if err := tx.AppendEntry(&storage.LedgerEntry{
			ActorID:     actorID,
			Amount:      -credits,
			Type:        storage.EntrySpend,
			SourceID:    sourceID,
			Description: description,
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("failed to record spend: %w", err)
		}

		newBalance = balance - credits
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

// RefundCredits reverses a prior spend by appending a positive refund entry
// tagged to the same source.
func (e *Engine) RefundCredits(ctx context.Context, actorID string, credits int, description, sourceID string) (int, error) {
	if actorID == "" {
		return 0, fmt.Errorf("%w: actor id required", ErrInvalidRequest)
	}
	if credits <= 0 {
		return 0, fmt.Errorf("%w: refund amount %d must be positive", ErrInvalidRequest, credits)
	}

	now := e.clock.Now().UTC()
	var newBalance int

	err := e.store.Transact(ctx, func(tx Tx) error {
		if err := tx.AppendEntry(&storage.LedgerEntry{
			ActorID:     actorID,
			Amount:      credits,
			Type:        storage.EntryRefund,
			SourceID:    sourceID,
			Description: description,
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("failed to record refund: %w", err)
		}
		balance, err := tx.Balance(actorID)
		if err != nil {
			return err
		}
		newBalance = balance
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

// ChargeSubmission prices a submission's premium features and, when the cost
// is non-zero, spends the credits in one transaction. Free submissions touch
// neither the ledger nor the balance.
func (e *Engine) ChargeSubmission(ctx context.Context, actorID, submissionID string, opts SubmissionOptions) (*SubmissionCharge, error) {
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor id required", ErrInvalidRequest)
	}

	cost, features := SubmissionCost(opts)
	if cost == 0 {
		balance, err := e.store.Balance(ctx, actorID)
		if err != nil {
			return nil, err
		}
		return &SubmissionCharge{Cost: 0, Features: features, NewBalance: balance}, nil
	}

	description := "submission features: " + strings.Join(features, ", ")
	newBalance, err := e.SpendCredits(ctx, actorID, cost, description, submissionID)
	if err != nil {
		return nil, err
	}
	return &SubmissionCharge{Cost: cost, Features: features, NewBalance: newBalance}, nil
}
