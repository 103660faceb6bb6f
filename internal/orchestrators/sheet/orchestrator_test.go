package sheet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dx3rd-api/internal/errors"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/sheet"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/actor"
	"github.com/KirkDiggler/dx3rd-api/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	actorRepo actor.Repository
	svc       sheet.Service
	ctx       context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	client, _ := testutils.CreateTestRedisClient(s.T())
	repo, err := actor.NewRedis(&actor.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.actorRepo = repo
	s.ctx = context.Background()

	_, err = repo.Create(s.ctx, actor.CreateInput{Actor: testutils.NewCharacter(testutils.ActorKaito, "Kaito",
		testutils.NewWeapon(testutils.ItemBlade, "Blade", "3", "1", 0, 1),
	)})
	s.Require().NoError(err)

	svc, err := sheet.NewOrchestrator(&sheet.Config{ActorRepo: repo})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *OrchestratorTestSuite) TestApplyFieldChange_Item() {
	out, err := s.svc.ApplyFieldChange(s.ctx, &sheet.ApplyFieldChangeInput{
		ActorID: testutils.ActorKaito,
		ItemID:  testutils.ItemBlade,
		Path:    "system.attack",
		Value:   "5",
	})
	s.Require().NoError(err)
	s.Equal(5, out.Item.System.Attack.Int())
	s.Nil(out.Actor)
}

func (s *OrchestratorTestSuite) TestApplyFieldChange_Actor() {
	out, err := s.svc.ApplyFieldChange(s.ctx, &sheet.ApplyFieldChangeInput{
		ActorID: testutils.ActorKaito,
		Path:    "name",
		Value:   "Kaito Kurosawa",
	})
	s.Require().NoError(err)
	s.Equal("Kaito Kurosawa", out.Actor.Name)

	stored, err := s.actorRepo.Get(s.ctx, actor.GetInput{ID: testutils.ActorKaito})
	s.Require().NoError(err)
	s.Equal("Kaito Kurosawa", stored.Actor.Name)
	s.Len(stored.Actor.Items, 1)
}

func (s *OrchestratorTestSuite) TestApplyFieldChange_Rejected() {
	testCases := []struct {
		name  string
		input *sheet.ApplyFieldChangeInput
	}{
		{"empty path", &sheet.ApplyFieldChangeInput{ActorID: testutils.ActorKaito}},
		{"missing actor ID", &sheet.ApplyFieldChangeInput{Path: "name"}},
		{"actor id", &sheet.ApplyFieldChangeInput{ActorID: testutils.ActorKaito, Path: "id", Value: "x"}},
		{"actor items", &sheet.ApplyFieldChangeInput{ActorID: testutils.ActorKaito, Path: "items.0.name", Value: "x"}},
		{"item type", &sheet.ApplyFieldChangeInput{
			ActorID: testutils.ActorKaito, ItemID: testutils.ItemBlade, Path: "type", Value: "vehicle",
		}},
		{"deletion", &sheet.ApplyFieldChangeInput{ActorID: testutils.ActorKaito, Path: "system.appliedEffects.-=fx1"}},
		{"empty segment", &sheet.ApplyFieldChangeInput{ActorID: testutils.ActorKaito, Path: "system..name"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.svc.ApplyFieldChange(s.ctx, tc.input)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestApplyFieldChange_MissingItem() {
	_, err := s.svc.ApplyFieldChange(s.ctx, &sheet.ApplyFieldChangeInput{
		ActorID: testutils.ActorKaito,
		ItemID:  "nothing",
		Path:    "system.attack",
		Value:   1,
	})
	s.True(errors.IsNotFound(err))
	s.True(errors.HasReason(err, errors.ReasonItemWriteFailed))
}

func (s *OrchestratorTestSuite) TestApplyFieldChange_WrongValueType() {
	_, err := s.svc.ApplyFieldChange(s.ctx, &sheet.ApplyFieldChangeInput{
		ActorID: testutils.ActorKaito,
		ItemID:  testutils.ItemBlade,
		Path:    "system.used.state",
		Value:   "abc",
	})
	s.True(errors.IsInvalidArgument(err))
	s.True(errors.HasReason(err, errors.ReasonItemWriteFailed))

	stored, err := s.actorRepo.Get(s.ctx, actor.GetInput{ID: testutils.ActorKaito})
	s.Require().NoError(err)
	s.Equal(0, stored.Actor.FindItem(testutils.ItemBlade).System.Used.State)

	listed, err := s.actorRepo.List(s.ctx, actor.ListInput{})
	s.Require().NoError(err)
	s.Len(listed.Actors, 1)
}

func (s *OrchestratorTestSuite) TestToggleEquipment() {
	out, err := s.svc.ToggleEquipment(s.ctx, &sheet.ToggleEquipmentInput{
		ActorID: testutils.ActorKaito,
		ItemID:  testutils.ItemBlade,
	})
	s.Require().NoError(err)
	s.True(out.Equipped)
	s.True(out.Item.System.Equipment)

	out, err = s.svc.ToggleEquipment(s.ctx, &sheet.ToggleEquipmentInput{
		ActorID: testutils.ActorKaito,
		ItemID:  testutils.ItemBlade,
	})
	s.Require().NoError(err)
	s.False(out.Equipped)

	_, err = s.svc.ToggleEquipment(s.ctx, &sheet.ToggleEquipmentInput{ActorID: testutils.ActorKaito, ItemID: "nothing"})
	s.True(errors.IsNotFound(err))

	_, err = s.svc.ToggleEquipment(s.ctx, &sheet.ToggleEquipmentInput{ActorID: testutils.ActorKaito})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	_, err := sheet.NewOrchestrator(&sheet.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
