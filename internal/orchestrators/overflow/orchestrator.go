// Package overflow runs spell-overflow dice selections as short-lived
// sessions: open one over a rolled pool, toggle dice, then confirm or cancel.
package overflow

//go:generate mockgen -destination=mock/mock_service.go -package=overflowmock github.com/KirkDiggler/dx3rd-api/internal/orchestrators/overflow Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/pkg/idgen"
	overflowsession "github.com/KirkDiggler/dx3rd-api/internal/repositories/overflow_session"
	rules "github.com/KirkDiggler/dx3rd-api/internal/rules/overflow"
)

const (
	// DefaultSessionTTL is how long an unconfirmed selection lives
	DefaultSessionTTL = 15 * time.Minute

	// MaxDiceCount bounds rolled pools
	MaxDiceCount = 100
)

// Service defines the interface for overflow selection sessions
type Service interface {
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Toggle returns a FailedPrecondition error with a reason when the rules
	// refuse the toggle; the stored session is left as it was
	Toggle(ctx context.Context, input *ToggleInput) (*ToggleOutput, error)

	// Confirm deletes the session once the selection is accepted
	Confirm(ctx context.Context, input *ConfirmInput) (*ConfirmOutput, error)

	Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error)
}

// Config holds the dependencies for the overflow orchestrator
type Config struct {
	SessionRepo overflowsession.Repository
	IDGenerator idgen.Generator
	DiceRoller  dice.Roller
	SessionTTL  time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	if c.SessionTTL < 0 {
		vb.Field("SessionTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	sessionRepo overflowsession.Repository
	idGen       idgen.Generator
	roller      dice.Roller
	ttl         time.Duration
}

// NewOrchestrator creates a new overflow orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &orchestrator{
		sessionRepo: cfg.SessionRepo,
		idGen:       cfg.IDGenerator,
		roller:      cfg.DiceRoller,
		ttl:         ttl,
	}, nil
}

func (o *orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	pool := input.Pool
	if len(pool) == 0 {
		if input.DiceCount <= 0 || input.DiceCount > MaxDiceCount {
			return nil, errors.InvalidArgumentf("either a pool or a dice count between 1 and %d is required", MaxDiceCount)
		}

		rolled, err := o.roller.RollN(input.DiceCount, rules.MaxFace)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll %dd%d", input.DiceCount, rules.MaxFace)
		}
		pool = rolled
	}

	count := 1
	if input.Count != nil {
		count = *input.Count
	}

	selection, err := rules.New(rules.State{
		Pool:          pool,
		Disabled:      input.Disabled,
		Mode:          input.Mode,
		Count:         count,
		OverrideTotal: input.OverrideTotal,
	})
	if err != nil {
		return nil, err
	}

	createOutput, err := o.sessionRepo.Create(ctx, overflowsession.CreateInput{
		ID:      o.idGen.Generate(),
		ActorID: input.ActorID,
		State:   selection.State(),
		TTL:     o.ttl,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create selection session")
	}

	slog.InfoContext(ctx, "overflow selection started",
		"session_id", createOutput.Session.ID,
		"actor_id", input.ActorID,
		"pool", selection.Pool(),
		"mode", selection.Mode(),
		"count", selection.Count())

	return &StartOutput{
		Session: createOutput.Session,
		Preview: selection.Preview(),
	}, nil
}

func (o *orchestrator) Toggle(ctx context.Context, input *ToggleInput) (*ToggleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	session, selection, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := selection.Toggle(input.Index); err != nil {
		slog.WarnContext(ctx, "overflow toggle rejected",
			"session_id", session.ID,
			"index", input.Index,
			"reason", errors.GetReason(err),
			"error", err)
		return nil, err
	}

	session.State = selection.State()
	if err := o.sessionRepo.Update(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to save selection")
	}

	return &ToggleOutput{
		Session: session,
		Preview: selection.Preview(),
	}, nil
}

func (o *orchestrator) Confirm(ctx context.Context, input *ConfirmInput) (*ConfirmOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	session, selection, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	outcome, err := selection.Confirm()
	if err != nil {
		slog.WarnContext(ctx, "overflow confirm rejected",
			"session_id", session.ID,
			"reason", errors.GetReason(err),
			"error", err)
		return nil, err
	}

	if _, err := o.sessionRepo.Delete(ctx, overflowsession.DeleteInput{ID: session.ID}); err != nil {
		return nil, errors.Wrap(err, "failed to close selection session")
	}

	slog.InfoContext(ctx, "overflow selection confirmed",
		"session_id", session.ID,
		"indices", outcome.Indices,
		"no_removal", outcome.NoRemoval)

	return &ConfirmOutput{
		Outcome: outcome,
		Preview: selection.Preview(),
		Pool:    selection.Pool(),
	}, nil
}

func (o *orchestrator) Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	if _, err := o.sessionRepo.Delete(ctx, overflowsession.DeleteInput{ID: input.SessionID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "overflow selection cancelled",
		"session_id", input.SessionID)

	return &CancelOutput{}, nil
}

func (o *orchestrator) load(ctx context.Context, sessionID string) (*overflowsession.Session, *rules.Selection, error) {
	if sessionID == "" {
		return nil, nil, errors.InvalidArgument("session ID is required")
	}

	getOutput, err := o.sessionRepo.Get(ctx, overflowsession.GetInput{ID: sessionID})
	if err != nil {
		return nil, nil, err
	}

	selection, err := rules.New(getOutput.Session.State)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeInternal, "stored selection is invalid")
	}

	return getOutput.Session, selection, nil
}
