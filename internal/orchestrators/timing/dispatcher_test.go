package timing_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/timing"
	timingmock "github.com/KirkDiggler/dx3rd-api/internal/orchestrators/timing/mock"
	"github.com/KirkDiggler/dx3rd-api/internal/testutils"
)

type DispatcherTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	sweeper    *timingmock.MockService
	bus        *events.Bus
	dispatcher *timing.Dispatcher
	ctx        context.Context
}

func (s *DispatcherTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sweeper = timingmock.NewMockService(s.ctrl)
	s.bus = events.NewBus()
	s.ctx = context.Background()

	dispatcher, err := timing.NewDispatcher(&timing.DispatcherConfig{
		Bus:     s.bus,
		Sweeper: s.sweeper,
	})
	s.Require().NoError(err)
	s.dispatcher = dispatcher
}

func (s *DispatcherTestSuite) TearDownTest() {
	s.dispatcher.Close()
	s.ctrl.Finish()
}

func (s *DispatcherTestSuite) TestNewDispatcher() {
	_, err := timing.NewDispatcher(&timing.DispatcherConfig{Bus: s.bus})
	s.True(errors.IsInvalidArgument(err))
}

func (s *DispatcherTestSuite) TestSweepGoesThroughBus() {
	report := &timing.SweepOutput{ActorsScanned: 2, ItemsDeactivated: 1}

	s.sweeper.EXPECT().
		Sweep(gomock.Any(), &timing.SweepInput{
			Timing: dx3rd.TimingScene,
			Target: timing.Many(testutils.ActorKaito, testutils.ActorRina),
		}).
		Return(report, nil)

	var seen int
	s.bus.SubscribeFunc(timing.EventType(dx3rd.TimingScene), 10, func(_ context.Context, _ events.Event) error {
		seen++
		return nil
	})

	out, err := s.dispatcher.Sweep(s.ctx, &timing.SweepInput{
		Timing: dx3rd.TimingScene,
		Target: timing.Many(testutils.ActorKaito, testutils.ActorRina),
	})
	s.Require().NoError(err)
	s.Same(report, out)
	s.Equal(1, seen)
}

func (s *DispatcherTestSuite) TestPublishedEventTriggersSweep() {
	s.sweeper.EXPECT().
		Sweep(gomock.Any(), &timing.SweepInput{Timing: dx3rd.TimingRound}).
		Return(&timing.SweepOutput{}, nil)

	event := events.NewGameEvent(timing.EventType(dx3rd.TimingRound), nil, nil)
	s.Require().NoError(s.bus.Publish(s.ctx, event))

	value, ok := event.Context().Get(timing.ContextReport)
	s.True(ok)
	s.IsType(&timing.SweepOutput{}, value)
}

func (s *DispatcherTestSuite) TestEmptyTimingSkipsBus() {
	s.sweeper.EXPECT().
		Sweep(s.ctx, &timing.SweepInput{}).
		Return(&timing.SweepOutput{}, nil)

	out, err := s.dispatcher.Sweep(s.ctx, &timing.SweepInput{})
	s.Require().NoError(err)
	s.Equal(0, out.ActorsScanned)
}

func (s *DispatcherTestSuite) TestUnknownTiming() {
	_, err := s.dispatcher.Sweep(s.ctx, &timing.SweepInput{Timing: "turn"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *DispatcherTestSuite) TestSweeperErrorKeepsCode() {
	s.sweeper.EXPECT().
		Sweep(gomock.Any(), gomock.Any()).
		Return(nil, errors.InvalidArgument("target one takes exactly one actor"))

	_, err := s.dispatcher.Sweep(s.ctx, &timing.SweepInput{
		Timing: dx3rd.TimingRound,
		Target: timing.Target{Mode: timing.TargetOne, ActorIDs: []string{"a", "b"}},
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}
