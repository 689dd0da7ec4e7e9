package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/fractalshard/game-api/internal/entities"
	"github.com/fractalshard/game-api/internal/errors"
	"github.com/fractalshard/game-api/internal/orchestrators/character"
	clockmock "github.com/fractalshard/game-api/internal/pkg/clock/mock"
	"github.com/fractalshard/game-api/internal/pkg/idgen"
	characterrepo "github.com/fractalshard/game-api/internal/repositories/character"
	charrepomock "github.com/fractalshard/game-api/internal/repositories/character/mock"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *charrepomock.MockRepository
	orch     *character.Orchestrator
	now      time.Time
	ctx      context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = charrepomock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockClock := clockmock.NewMockClock(s.ctrl)
	mockClock.EXPECT().Now().Return(s.now).AnyTimes()

	orch, err := character.New(&character.Config{
		CharacterRepo: s.mockRepo,
		IDGenerator:   idgen.NewSequential("char"),
		Clock:         mockClock,
	})
	s.Require().NoError(err)
	s.orch = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) existing(level int) *entities.Character {
	return &entities.Character{
		ID:         "char_1",
		Name:       "Azrael Nightwhisper",
		Class:      entities.ClassMage,
		Level:      level,
		LastPlayed: s.now.Add(-time.Hour),
		Stats:      entities.CalculateStats(entities.ClassMage, level),
	}
}

func (s *OrchestratorTestSuite) expectGet(char *entities.Character) {
	s.mockRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{ID: char.ID}).
		Return(&characterrepo.GetOutput{Character: char}, nil)
}

func (s *OrchestratorTestSuite) expectUpdateEcho() {
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input characterrepo.UpdateInput) (*characterrepo.UpdateOutput, error) {
			return &characterrepo.UpdateOutput{Character: input.Character}, nil
		})
}

func (s *OrchestratorTestSuite) TestCreateCharacter() {
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input characterrepo.CreateInput) (*characterrepo.CreateOutput, error) {
			return &characterrepo.CreateOutput{Character: input.Character}, nil
		})
	s.mockRepo.EXPECT().
		SetSelected(s.ctx, characterrepo.SetSelectedInput{ID: "char_1"}).
		Return(&characterrepo.SetSelectedOutput{}, nil)

	out, err := s.orch.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		Name:  "Azrael Nightwhisper",
		Class: entities.ClassWarrior,
	})
	s.Require().NoError(err)

	char := out.Character
	s.Equal("char_1", char.ID)
	s.Equal(1, char.Level)
	s.Equal(s.now, char.LastPlayed)
	s.Equal(120, char.Stats.Health.Max)
	s.Equal(22, char.Stats.Attributes.Strength, "warrior keys strength")
}

func (s *OrchestratorTestSuite) TestCreateCharacter_Invalid() {
	_, err := s.orch.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		Name:  "",
		Class: entities.ClassWarrior,
	})
	s.True(errors.IsInvalidArgument(err), "empty name rejected")

	_, err = s.orch.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		Name:  "Azrael",
		Class: entities.Class("bard"),
	})
	s.True(errors.IsInvalidArgument(err), "unknown class rejected")
}

func (s *OrchestratorTestSuite) TestUpdateCharacter_LevelRecomputes() {
	s.expectGet(s.existing(1))
	s.expectUpdateEcho()

	level := 3
	out, err := s.orch.UpdateCharacter(s.ctx, &character.UpdateCharacterInput{
		CharacterID: "char_1",
		Level:       &level,
	})
	s.Require().NoError(err)
	s.Equal(3, out.Character.Level)
	s.Equal(160, out.Character.Stats.Health.Max)
	s.Equal(26, out.Character.Stats.Attributes.Intelligence)
}

func (s *OrchestratorTestSuite) TestUpdateCharacter_SameLevelRecomputes() {
	char := s.existing(3)
	char.Stats.Experience.Current = 1400
	char.Stats.Health.Current = 90
	s.expectGet(char)
	s.expectUpdateEcho()

	level := 3
	out, err := s.orch.UpdateCharacter(s.ctx, &character.UpdateCharacterInput{
		CharacterID: "char_1",
		Level:       &level,
	})
	s.Require().NoError(err)
	s.Equal(1250, out.Character.Stats.Experience.Current, "accrued experience discarded on recompute")
	s.Equal(160, out.Character.Stats.Health.Current, "spent pools refilled on recompute")
}

func (s *OrchestratorTestSuite) TestUpdateCharacter_ExplicitStatsWin() {
	s.expectGet(s.existing(1))
	s.expectUpdateEcho()

	level := 2
	stats := entities.CalculateStats(entities.ClassMage, 2)
	stats.Health.Current = 50

	out, err := s.orch.UpdateCharacter(s.ctx, &character.UpdateCharacterInput{
		CharacterID: "char_1",
		Level:       &level,
		Stats:       &stats,
	})
	s.Require().NoError(err)
	s.Equal(50, out.Character.Stats.Health.Current, "explicit stats applied after recompute")
}

func (s *OrchestratorTestSuite) TestSelectCharacter() {
	char := s.existing(1)
	s.expectGet(char)
	s.expectUpdateEcho()
	s.mockRepo.EXPECT().
		SetSelected(s.ctx, characterrepo.SetSelectedInput{ID: "char_1"}).
		Return(&characterrepo.SetSelectedOutput{}, nil)

	out, err := s.orch.SelectCharacter(s.ctx, &character.SelectCharacterInput{CharacterID: "char_1"})
	s.Require().NoError(err)
	s.Equal(s.now, out.Character.LastPlayed, "selection stamps LastPlayed")
}

func (s *OrchestratorTestSuite) TestSelectCharacter_Unknown() {
	s.mockRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{ID: "ghost"}).
		Return(nil, errors.NotFound("character with ID ghost not found"))

	_, err := s.orch.SelectCharacter(s.ctx, &character.SelectCharacterInput{CharacterID: "ghost"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGrantExperience_BelowThreshold() {
	s.expectGet(s.existing(1))
	s.expectUpdateEcho()

	out, err := s.orch.GrantExperience(s.ctx, &character.GrantExperienceInput{
		CharacterID: "char_1",
		Amount:      100,
	})
	s.Require().NoError(err)
	s.Equal(0, out.LevelsGained)
	s.Equal(1, out.Character.Level)
	s.Equal(350, out.Character.Stats.Experience.Current)
}

func (s *OrchestratorTestSuite) TestGrantExperience_LevelUp() {
	char := s.existing(1)
	char.Stats.Health.Current = 40 // wounded going in
	s.expectGet(char)
	s.expectUpdateEcho()

	out, err := s.orch.GrantExperience(s.ctx, &character.GrantExperienceInput{
		CharacterID: "char_1",
		Amount:      400,
	})
	s.Require().NoError(err)
	s.Equal(1, out.LevelsGained)
	s.Equal(2, out.Character.Level)
	s.Equal(750, out.Character.Stats.Experience.Current, "overflow discarded under the single policy")
	s.Equal(1000, out.Character.Stats.Experience.Next)
	s.Equal(140, out.Character.Stats.Health.Current, "level up refills pools")
}

func (s *OrchestratorTestSuite) TestGrantExperience_Negative() {
	_, err := s.orch.GrantExperience(s.ctx, &character.GrantExperienceInput{
		CharacterID: "char_1",
		Amount:      -10,
	})
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func TestGrantExperience_CascadePolicy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := charrepomock.NewMockRepository(ctrl)
	mockClock := clockmock.NewMockClock(ctrl)
	mockClock.EXPECT().Now().Return(time.Now()).AnyTimes()

	orch, err := character.New(&character.Config{
		CharacterRepo: mockRepo,
		IDGenerator:   idgen.NewSequential("char"),
		Clock:         mockClock,
		LevelPolicy:   character.LevelPolicyCascade,
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	char := &entities.Character{
		ID:    "char_1",
		Name:  "Azrael",
		Class: entities.ClassMage,
		Level: 1,
		Stats: entities.CalculateStats(entities.ClassMage, 1),
	}
	mockRepo.EXPECT().
		Get(ctx, characterrepo.GetInput{ID: "char_1"}).
		Return(&characterrepo.GetOutput{Character: char}, nil)
	mockRepo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input characterrepo.UpdateInput) (*characterrepo.UpdateOutput, error) {
			return &characterrepo.UpdateOutput{Character: input.Character}, nil
		})

	out, err := orch.GrantExperience(ctx, &character.GrantExperienceInput{
		CharacterID: "char_1",
		Amount:      500,
	})
	if err != nil {
		t.Fatal(err)
	}

	if out.LevelsGained != 2 {
		t.Errorf("LevelsGained = %d, want 2", out.LevelsGained)
	}
	if out.Character.Level != 3 {
		t.Errorf("Level = %d, want 3", out.Character.Level)
	}
	if got := out.Character.Stats.Experience.Current; got != 1250 {
		t.Errorf("Experience.Current = %d, want 1250 (overflow carried)", got)
	}
}
