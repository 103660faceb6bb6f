package overflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/overflow"
	"github.com/KirkDiggler/dx3rd-api/internal/pkg/clock"
	"github.com/KirkDiggler/dx3rd-api/internal/pkg/idgen"
	overflowsession "github.com/KirkDiggler/dx3rd-api/internal/repositories/overflow_session"
	overflowsessionmock "github.com/KirkDiggler/dx3rd-api/internal/repositories/overflow_session/mock"
	rules "github.com/KirkDiggler/dx3rd-api/internal/rules/overflow"
	"github.com/KirkDiggler/dx3rd-api/internal/testutils"
)

// fixedRoller returns the same faces for every roll
type fixedRoller struct {
	faces []int
	calls int
}

func (r *fixedRoller) Roll(_ int) (int, error) {
	r.calls++
	return r.faces[0], nil
}

func (r *fixedRoller) RollN(count, _ int) ([]int, error) {
	r.calls++
	return append([]int(nil), r.faces[:count]...), nil
}

type OrchestratorTestSuite struct {
	suite.Suite
	roller *fixedRoller
	clock  *clock.Fixed
	repo   overflowsession.Repository
	svc    overflow.Service
	ctx    context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	client, _ := testutils.CreateTestRedisClient(s.T())
	s.clock = &clock.Fixed{At: time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)}
	s.roller = &fixedRoller{faces: []int{3, 5, 10, 2, 10}}
	s.ctx = context.Background()

	repo, err := overflowsession.NewRedisRepository(&overflowsession.Config{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo

	svc, err := overflow.NewOrchestrator(&overflow.Config{
		SessionRepo: repo,
		IDGenerator: idgen.NewSequential("sel"),
		DiceRoller:  s.roller,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	_, err := overflow.NewOrchestrator(&overflow.Config{SessionRepo: s.repo})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestExactSelectionFlow() {
	count := 2
	started, err := s.svc.Start(s.ctx, &overflow.StartInput{
		ActorID:   testutils.ActorKaito,
		DiceCount: 5,
		Mode:      rules.ModeExact,
		Count:     &count,
	})
	s.Require().NoError(err)
	s.Equal(1, s.roller.calls)
	s.Equal([]int{3, 5, 10, 2, 10}, started.Session.State.Pool)
	s.Equal(30, started.Preview.CurrentTotal)
	s.Equal(s.clock.At.Add(overflow.DefaultSessionTTL), started.Session.ExpiresAt)

	id := started.Session.ID

	toggled, err := s.svc.Toggle(s.ctx, &overflow.ToggleInput{SessionID: id, Index: 2})
	s.Require().NoError(err)
	s.Equal(10, toggled.Preview.SelectedSum)

	toggled, err = s.svc.Toggle(s.ctx, &overflow.ToggleInput{SessionID: id, Index: 4})
	s.Require().NoError(err)
	s.Equal(20, toggled.Preview.SelectedSum)
	s.Equal(10, toggled.Preview.PreviewTotal)

	_, err = s.svc.Toggle(s.ctx, &overflow.ToggleInput{SessionID: id, Index: 0})
	s.True(errors.HasReason(err, errors.ReasonLimitExceeded))

	stored, err := s.repo.Get(s.ctx, overflowsession.GetInput{ID: id})
	s.Require().NoError(err)
	s.Equal([]int{2, 4}, stored.Session.State.Selected)

	confirmed, err := s.svc.Confirm(s.ctx, &overflow.ConfirmInput{SessionID: id})
	s.Require().NoError(err)
	s.Equal([]int{2, 4}, confirmed.Outcome.Indices)
	s.Equal(10, confirmed.Preview.PreviewTotal)

	_, err = s.repo.Get(s.ctx, overflowsession.GetInput{ID: id})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestConfirmRejectedKeepsSession() {
	count := 2
	started, err := s.svc.Start(s.ctx, &overflow.StartInput{Pool: []int{3, 10}, Count: &count})
	s.Require().NoError(err)
	s.Equal(0, s.roller.calls)

	_, err = s.svc.Confirm(s.ctx, &overflow.ConfirmInput{SessionID: started.Session.ID})
	s.True(errors.HasReason(err, errors.ReasonCountMismatch))

	_, err = s.repo.Get(s.ctx, overflowsession.GetInput{ID: started.Session.ID})
	s.NoError(err)
}

func (s *OrchestratorTestSuite) TestOverflowOnlyNoRemoval() {
	started, err := s.svc.Start(s.ctx, &overflow.StartInput{
		Pool: []int{4, 6, 10},
		Mode: rules.ModeOverflowOnly,
	})
	s.Require().NoError(err)

	_, err = s.svc.Toggle(s.ctx, &overflow.ToggleInput{SessionID: started.Session.ID, Index: 0})
	s.True(errors.HasReason(err, errors.ReasonWrongFaceKind))

	confirmed, err := s.svc.Confirm(s.ctx, &overflow.ConfirmInput{SessionID: started.Session.ID})
	s.Require().NoError(err)
	s.True(confirmed.Outcome.NoRemoval)
	s.Equal([]int{4, 6, 10}, confirmed.Pool)
}

func (s *OrchestratorTestSuite) TestStartCount() {
	started, err := s.svc.Start(s.ctx, &overflow.StartInput{Pool: []int{10, 4}})
	s.Require().NoError(err)
	s.Equal(1, started.Session.State.Count)

	zero := 0
	started, err = s.svc.Start(s.ctx, &overflow.StartInput{Pool: []int{10, 4}, Mode: rules.ModeExact, Count: &zero})
	s.Require().NoError(err)
	s.Equal(0, started.Session.State.Count)

	_, err = s.svc.Toggle(s.ctx, &overflow.ToggleInput{SessionID: started.Session.ID, Index: 0})
	s.True(errors.HasReason(err, errors.ReasonLimitExceeded))

	confirmed, err := s.svc.Confirm(s.ctx, &overflow.ConfirmInput{SessionID: started.Session.ID})
	s.Require().NoError(err)
	s.False(confirmed.Outcome.NoRemoval)
	s.Empty(confirmed.Outcome.Indices)
	s.Equal(14, confirmed.Preview.PreviewTotal)
}

func (s *OrchestratorTestSuite) TestCancel() {
	started, err := s.svc.Start(s.ctx, &overflow.StartInput{Pool: []int{10}})
	s.Require().NoError(err)

	_, err = s.svc.Cancel(s.ctx, &overflow.CancelInput{SessionID: started.Session.ID})
	s.Require().NoError(err)

	_, err = s.svc.Toggle(s.ctx, &overflow.ToggleInput{SessionID: started.Session.ID, Index: 0})
	s.True(errors.IsNotFound(err))

	_, err = s.svc.Cancel(s.ctx, &overflow.CancelInput{SessionID: started.Session.ID})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestExpiredSession() {
	started, err := s.svc.Start(s.ctx, &overflow.StartInput{Pool: []int{10}})
	s.Require().NoError(err)

	s.clock.Advance(overflow.DefaultSessionTTL + time.Second)

	_, err = s.svc.Confirm(s.ctx, &overflow.ConfirmInput{SessionID: started.Session.ID})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestStartValidation() {
	_, err := s.svc.Start(s.ctx, &overflow.StartInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.Start(s.ctx, &overflow.StartInput{DiceCount: overflow.MaxDiceCount + 1})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.Start(s.ctx, &overflow.StartInput{Pool: []int{12}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestToggleSaveFailure() {
	ctrl := gomock.NewController(s.T())
	repo := overflowsessionmock.NewMockRepository(ctrl)

	svc, err := overflow.NewOrchestrator(&overflow.Config{
		SessionRepo: repo,
		IDGenerator: idgen.NewSequential("sel"),
		DiceRoller:  s.roller,
	})
	s.Require().NoError(err)

	repo.EXPECT().
		Get(s.ctx, overflowsession.GetInput{ID: "sel-1"}).
		Return(&overflowsession.GetOutput{Session: &overflowsession.Session{
			ID:        "sel-1",
			State:     rules.State{Pool: []int{10, 10}, Mode: rules.ModeExact, Count: 1},
			ExpiresAt: s.clock.At.Add(time.Minute),
		}}, nil)
	repo.EXPECT().
		Update(s.ctx, gomock.Any()).
		Return(errors.Internal("redis down"))

	_, err = svc.Toggle(s.ctx, &overflow.ToggleInput{SessionID: "sel-1", Index: 1})
	s.True(errors.IsInternal(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
