package timing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dx3rd-api/internal/entities/dx3rd"
	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/timing"
	"github.com/KirkDiggler/dx3rd-api/internal/pkg/fieldpatch"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/actor"
	actormock "github.com/KirkDiggler/dx3rd-api/internal/repositories/actor/mock"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/scene"
	scenemock "github.com/KirkDiggler/dx3rd-api/internal/repositories/scene/mock"
	"github.com/KirkDiggler/dx3rd-api/internal/testutils"
)

const itemElsewhere = "item-elsewhere"

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	actorRepo *actormock.MockRepository
	sceneRepo *scenemock.MockRepository
	svc       timing.Service
	ctx       context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.actorRepo = actormock.NewMockRepository(s.ctrl)
	s.sceneRepo = scenemock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	svc, err := timing.NewOrchestrator(&timing.Config{
		ActorRepo: s.actorRepo,
		SceneRepo: s.sceneRepo,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// kaito carries two round-expiring toggles, a weapon whose attacks reset
// each round, and four applied effects
func (s *OrchestratorTestSuite) kaito() *dx3rd.Actor {
	a := testutils.NewCharacter(testutils.ActorKaito, "Kaito",
		testutils.NewEffectItem(testutils.ItemHaste, "Haste", true, dx3rd.TimingRound, 1, dx3rd.TimingScene, dx3rd.TimingRound),
		testutils.NewEffectItem(testutils.ItemBarrier, "Barrier", true, dx3rd.TimingRound, 0, dx3rd.TimingRound, dx3rd.TimingNever),
		testutils.NewWeapon(testutils.ItemBlade, "Blade", "3", "1", 1, 2),
	)
	a.System.AppliedEffects["fx1"] = &dx3rd.AppliedEffect{Disable: dx3rd.TimingRound}
	a.System.AppliedEffects["fx2"] = &dx3rd.AppliedEffect{ItemID: testutils.ItemHaste}
	a.System.AppliedEffects["fx3"] = &dx3rd.AppliedEffect{Disable: dx3rd.TimingScene, ItemID: testutils.ItemHaste}
	a.System.AppliedEffects["fx4"] = &dx3rd.AppliedEffect{ItemID: itemElsewhere}
	return a
}

func (s *OrchestratorTestSuite) rina() *dx3rd.Actor {
	return testutils.NewCharacter(testutils.ActorRina, "Rina",
		testutils.NewEffectItem(itemElsewhere, "Blessing", false, dx3rd.TimingNever, 0, dx3rd.TimingNever, dx3rd.TimingRound),
	)
}

func (s *OrchestratorTestSuite) expectItemWrite(itemID, path string, value interface{}, err error) *gomock.Call {
	input := actor.UpdateItemInput{
		ActorID: testutils.ActorKaito,
		ItemID:  itemID,
		Patch:   fieldpatch.Patch{path: value},
	}
	if err != nil {
		return s.actorRepo.EXPECT().UpdateItem(s.ctx, input).Return(nil, err)
	}
	return s.actorRepo.EXPECT().UpdateItem(s.ctx, input).Return(&actor.UpdateItemOutput{}, nil)
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	_, err := timing.NewOrchestrator(&timing.Config{SceneRepo: s.sceneRepo})
	s.True(errors.IsInvalidArgument(err))

	_, err = timing.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSweep_NoTiming() {
	out, err := s.svc.Sweep(s.ctx, &timing.SweepInput{Target: timing.One(testutils.ActorKaito)})
	s.Require().NoError(err)
	s.Equal(&timing.SweepOutput{}, out)
}

func (s *OrchestratorTestSuite) TestSweep_UnknownTiming() {
	for _, key := range []dx3rd.TimingKey{"turn", dx3rd.TimingNotCheck, dx3rd.TimingNever} {
		_, err := s.svc.Sweep(s.ctx, &timing.SweepInput{Timing: key, Target: timing.All()})
		s.True(errors.IsInvalidArgument(err), string(key))
	}
}

func (s *OrchestratorTestSuite) TestSweep_Round() {
	s.actorRepo.EXPECT().
		Get(s.ctx, actor.GetInput{ID: testutils.ActorKaito}).
		Return(&actor.GetOutput{Actor: s.kaito()}, nil)

	gomock.InOrder(
		s.expectItemWrite(testutils.ItemHaste, "system.active.state", false, nil),
		s.expectItemWrite(testutils.ItemBarrier, "system.active.state", false, nil),
		s.expectItemWrite(testutils.ItemBlade, "system.attackUsed.state", 0, nil),
	)

	s.actorRepo.EXPECT().
		List(s.ctx, actor.ListInput{}).
		Return(&actor.ListOutput{Actors: []*dx3rd.Actor{s.kaito(), s.rina()}}, nil)

	s.actorRepo.EXPECT().
		UpdateActor(s.ctx, actor.UpdateActorInput{
			ActorID: testutils.ActorKaito,
			Patch: fieldpatch.Patch{
				"system.appliedEffects.-=fx1": nil,
				"system.appliedEffects.-=fx2": nil,
				"system.appliedEffects.-=fx4": nil,
			},
		}).
		Return(&actor.UpdateActorOutput{}, nil)

	out, err := s.svc.Sweep(s.ctx, &timing.SweepInput{
		Timing: dx3rd.TimingRound,
		Target: timing.One(testutils.ActorKaito),
	})
	s.Require().NoError(err)
	s.Equal(1, out.ActorsScanned)
	s.Equal(2, out.ItemsDeactivated)
	s.Equal(0, out.UsageReset)
	s.Equal(1, out.AttackUsageReset)
	s.Equal(3, out.EffectsRemoved)
	s.Empty(out.Failures)
	s.True(out.Changed())
}

func (s *OrchestratorTestSuite) TestSweep_Scene() {
	s.actorRepo.EXPECT().
		Get(s.ctx, actor.GetInput{ID: testutils.ActorKaito}).
		Return(&actor.GetOutput{Actor: s.kaito()}, nil)

	// only the haste usage counter resets on scene; round toggles stay on
	s.expectItemWrite(testutils.ItemHaste, "system.used.state", 0, nil)

	s.actorRepo.EXPECT().
		List(s.ctx, actor.ListInput{}).
		Return(&actor.ListOutput{Actors: []*dx3rd.Actor{s.rina()}}, nil)

	s.actorRepo.EXPECT().
		UpdateActor(s.ctx, actor.UpdateActorInput{
			ActorID: testutils.ActorKaito,
			Patch:   fieldpatch.Patch{"system.appliedEffects.-=fx3": nil},
		}).
		Return(&actor.UpdateActorOutput{}, nil)

	out, err := s.svc.Sweep(s.ctx, &timing.SweepInput{
		Timing: dx3rd.TimingScene,
		Target: timing.One(testutils.ActorKaito),
	})
	s.Require().NoError(err)
	s.Equal(0, out.ItemsDeactivated)
	s.Equal(1, out.UsageReset)
	s.Equal(1, out.EffectsRemoved)
}

func (s *OrchestratorTestSuite) TestSweep_PartialFailure() {
	a := s.kaito()
	a.System.AppliedEffects = map[string]*dx3rd.AppliedEffect{
		"fx1": {Disable: dx3rd.TimingRound},
	}
	s.actorRepo.EXPECT().
		Get(s.ctx, actor.GetInput{ID: testutils.ActorKaito}).
		Return(&actor.GetOutput{Actor: a}, nil)

	s.expectItemWrite(testutils.ItemHaste, "system.active.state", false, errors.Internal("connection reset"))
	s.expectItemWrite(testutils.ItemBarrier, "system.active.state", false, nil)
	s.expectItemWrite(testutils.ItemBlade, "system.attackUsed.state", 0, nil)

	s.actorRepo.EXPECT().
		UpdateActor(s.ctx, gomock.Any()).
		Return(nil, errors.Abortedf("actor changed during update"))

	out, err := s.svc.Sweep(s.ctx, &timing.SweepInput{
		Timing: dx3rd.TimingRound,
		Target: timing.One(testutils.ActorKaito),
	})
	s.Require().NoError(err)
	s.Equal(1, out.ItemsDeactivated)
	s.Equal(1, out.AttackUsageReset)
	s.Equal(0, out.EffectsRemoved)
	s.Require().Len(out.Failures, 2)

	s.Equal(testutils.ItemHaste, out.Failures[0].ItemID)
	s.Equal(errors.ReasonItemWriteFailed, out.Failures[0].Reason)
	s.Equal(testutils.ActorKaito, out.Failures[1].ActorID)
	s.Empty(out.Failures[1].ItemID)
	s.Equal(errors.ReasonActorWriteFailed, out.Failures[1].Reason)
}

func (s *OrchestratorTestSuite) TestSweep_LeavesOtherTimingsAlone() {
	a := testutils.NewCharacter(testutils.ActorKaito, "Kaito",
		testutils.NewEffectItem(testutils.ItemHaste, "Haste", true, dx3rd.TimingScene, 2, dx3rd.TimingSession, dx3rd.TimingScene),
	)
	a.System.AppliedEffects["fx1"] = &dx3rd.AppliedEffect{Disable: dx3rd.TimingScene}
	a.System.AppliedEffects["fx2"] = &dx3rd.AppliedEffect{ItemID: testutils.ItemHaste}

	s.actorRepo.EXPECT().
		Get(s.ctx, actor.GetInput{ID: testutils.ActorKaito}).
		Return(&actor.GetOutput{Actor: a}, nil)

	out, err := s.svc.Sweep(s.ctx, &timing.SweepInput{
		Timing: dx3rd.TimingRound,
		Target: timing.One(testutils.ActorKaito),
	})
	s.Require().NoError(err)
	s.Equal(1, out.ActorsScanned)
	s.False(out.Changed())
}

func (s *OrchestratorTestSuite) TestSweep_UnresolvedSourceItemIsKept() {
	a := testutils.NewCharacter(testutils.ActorKaito, "Kaito")
	a.System.AppliedEffects["fx1"] = &dx3rd.AppliedEffect{ItemID: "gone"}

	s.actorRepo.EXPECT().
		Get(s.ctx, actor.GetInput{ID: testutils.ActorKaito}).
		Return(&actor.GetOutput{Actor: a}, nil)
	s.actorRepo.EXPECT().
		List(s.ctx, actor.ListInput{}).
		Return(&actor.ListOutput{Actors: []*dx3rd.Actor{a, s.rina()}}, nil)

	out, err := s.svc.Sweep(s.ctx, &timing.SweepInput{
		Timing: dx3rd.TimingRound,
		Target: timing.One(testutils.ActorKaito),
	})
	s.Require().NoError(err)
	s.Equal(0, out.EffectsRemoved)
}

func (s *OrchestratorTestSuite) TestSweep_TargetFiltering() {
	troop := &dx3rd.Actor{ID: testutils.ActorTroop, Type: dx3rd.ActorTypeTroop}
	troop.Items = []*dx3rd.Item{
		testutils.NewEffectItem(testutils.ItemHaste, "Haste", true, dx3rd.TimingRound, 0, dx3rd.TimingNever, dx3rd.TimingNever),
	}

	s.actorRepo.EXPECT().
		Get(s.ctx, actor.GetInput{ID: testutils.ActorTroop}).
		Return(&actor.GetOutput{Actor: troop}, nil)
	s.actorRepo.EXPECT().
		Get(s.ctx, actor.GetInput{ID: "missing"}).
		Return(nil, errors.NotFound("actor with ID missing not found"))
	s.actorRepo.EXPECT().
		Get(s.ctx, actor.GetInput{ID: testutils.ActorRina}).
		Return(&actor.GetOutput{Actor: s.rina()}, nil)

	out, err := s.svc.Sweep(s.ctx, &timing.SweepInput{
		Timing: dx3rd.TimingRound,
		Target: timing.Many(testutils.ActorTroop, "missing", testutils.ActorRina, testutils.ActorRina),
	})
	s.Require().NoError(err)
	s.Equal(1, out.ActorsScanned)
	s.False(out.Changed())
}

func (s *OrchestratorTestSuite) TestSweep_AllWithoutActiveScene() {
	s.sceneRepo.EXPECT().
		GetActive(s.ctx, scene.GetActiveInput{}).
		Return(nil, errors.NotFound("no active scene"))

	out, err := s.svc.Sweep(s.ctx, &timing.SweepInput{Timing: dx3rd.TimingRound})
	s.Require().NoError(err)
	s.Equal(0, out.ActorsScanned)
}

func (s *OrchestratorTestSuite) TestSweep_AllUsesActiveSceneTokens() {
	s.sceneRepo.EXPECT().
		GetActive(s.ctx, scene.GetActiveInput{}).
		Return(&scene.GetActiveOutput{Scene: &dx3rd.Scene{
			ID: "rooftop",
			Tokens: []dx3rd.Token{
				{ID: "t1", ActorID: testutils.ActorRina},
				{ID: "t2", ActorID: testutils.ActorRina},
			},
		}}, nil)
	s.actorRepo.EXPECT().
		Get(s.ctx, actor.GetInput{ID: testutils.ActorRina}).
		Return(&actor.GetOutput{Actor: s.rina()}, nil)

	out, err := s.svc.Sweep(s.ctx, &timing.SweepInput{Timing: dx3rd.TimingRound, Target: timing.All()})
	s.Require().NoError(err)
	s.Equal(1, out.ActorsScanned)
}

func (s *OrchestratorTestSuite) TestSweep_BadTarget() {
	_, err := s.svc.Sweep(s.ctx, &timing.SweepInput{
		Timing: dx3rd.TimingRound,
		Target: timing.Target{Mode: timing.TargetOne, ActorIDs: []string{"a", "b"}},
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.Sweep(s.ctx, &timing.SweepInput{
		Timing: dx3rd.TimingRound,
		Target: timing.Target{Mode: "nearby"},
	})
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
