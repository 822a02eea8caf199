package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/streakguard/internal/companion"
	"github.com/julianstephens/streakguard/internal/constants"
	"github.com/julianstephens/streakguard/internal/logger"
)

// ResetAction names a destructive action that needs confirmation.
type ResetAction string

const (
	ResetRelapse ResetAction = "relapse"   // end the current streak
	ResetAll     ResetAction = "reset-all" // wipe every entity
)

func (a ResetAction) Valid() bool {
	return a == ResetRelapse || a == ResetAll
}

var (
	ErrUnknownAction = errors.New("unknown reset action")
	ErrInvalidToken  = errors.New("confirmation token is not valid")
	ErrTokenExpired  = errors.New("confirmation token expired")
)

// Token authorizes one destructive action. It is single-use and short-lived.
type Token struct {
	ID        string
	Action    ResetAction
	ExpiresAt time.Time
}

// RequestReset issues a token for action; ConfirmReset performs it.
func (t *Tracker) RequestReset(action ResetAction) (Token, error) {
	if !action.Valid() {
		return Token{}, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	now := t.ledger.Now()
	tok := Token{
		ID:        uuid.NewString(),
		Action:    action,
		ExpiresAt: now.Add(constants.ConfirmationTTL),
	}

	t.mu.Lock()
	for id, p := range t.pending {
		if !now.Before(p.ExpiresAt) {
			delete(t.pending, id)
		}
	}
	t.pending[tok.ID] = tok
	t.mu.Unlock()

	logger.Debug("Reset requested", "action", action)
	return tok, nil
}

// ResetResult reports what a confirmed reset did.
type ResetResult struct {
	Action       ResetAction
	PreviousDays int
	Message      string
	SnapshotPath string // safety dump written before a full reset, if any
}

// ConfirmReset consumes tokenID and performs its action.
func (t *Tracker) ConfirmReset(tokenID string) (ResetResult, error) {
	t.mu.Lock()
	tok, ok := t.pending[tokenID]
	delete(t.pending, tokenID)
	t.mu.Unlock()

	if !ok {
		return ResetResult{}, ErrInvalidToken
	}
	if !t.ledger.Now().Before(tok.ExpiresAt) {
		return ResetResult{}, ErrTokenExpired
	}

	switch tok.Action {
	case ResetRelapse:
		return t.relapse()
	case ResetAll:
		return t.resetAll()
	default:
		return ResetResult{}, fmt.Errorf("%w: %s", ErrUnknownAction, tok.Action)
	}
}

func (t *Tracker) relapse() (ResetResult, error) {
	previous := t.ledger.CurrentStreak()
	if err := t.ledger.ResetStreak(); err != nil {
		return ResetResult{}, err
	}
	p := t.ledger.Profile()
	return ResetResult{
		Action:       ResetRelapse,
		PreviousDays: previous,
		Message:      companion.PersonalizedMessage(p.CompanionKind, companion.ContextReset, p.DisplayCompanionName()),
	}, nil
}

func (t *Tracker) resetAll() (ResetResult, error) {
	res := ResetResult{Action: ResetAll, PreviousDays: t.ledger.CurrentStreak()}

	if t.safety != nil {
		dump, err := t.ledger.Dump()
		if err != nil {
			return ResetResult{}, fmt.Errorf("failed to read data for safety backup: %w", err)
		}
		path, err := t.safety.SaveSnapshot(dump)
		if err != nil {
			return ResetResult{}, fmt.Errorf("failed to write safety backup: %w", err)
		}
		res.SnapshotPath = path
	}

	if err := t.ledger.Clear(); err != nil {
		return ResetResult{}, err
	}
	return res, nil
}
