package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fractalshard/game-api/internal/entities"
	"github.com/fractalshard/game-api/internal/errors"
	"github.com/fractalshard/game-api/internal/repositories/character"
	"github.com/fractalshard/game-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    character.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	repo, err := character.NewRedis(&character.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *RedisRepositoryTestSuite) newCharacter(id string) *entities.Character {
	return &entities.Character{
		ID:         id,
		Name:       "Azrael Nightwhisper",
		Class:      entities.ClassMage,
		Level:      1,
		LastPlayed: time.Now().UTC().Truncate(time.Second),
		Stats:      entities.CalculateStats(entities.ClassMage, 1),
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	char := s.newCharacter("char_1")

	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: char})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: "char_1"})
	s.Require().NoError(err)
	s.Equal(char, got.Character)
}

func (s *RedisRepositoryTestSuite) TestCreate_Duplicate() {
	char := s.newCharacter("char_1")

	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: char})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: char})
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, character.GetInput{ID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	char := s.newCharacter("char_1")
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: char})
	s.Require().NoError(err)

	char.Level = 2
	char.Stats = entities.CalculateStats(char.Class, 2)
	_, err = s.repo.Update(s.ctx, character.UpdateInput{Character: char})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: "char_1"})
	s.Require().NoError(err)
	s.Equal(2, got.Character.Level)
	s.Equal(140, got.Character.Stats.Health.Max)
}

func (s *RedisRepositoryTestSuite) TestUpdate_NotFound() {
	_, err := s.repo.Update(s.ctx, character.UpdateInput{Character: s.newCharacter("ghost")})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestList() {
	for _, id := range []string{"char_1", "char_2", "char_3"} {
		_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.newCharacter(id)})
		s.Require().NoError(err)
	}

	out, err := s.repo.List(s.ctx, character.ListInput{})
	s.Require().NoError(err)
	s.Len(out.Characters, 3)
}

func (s *RedisRepositoryTestSuite) TestSelection() {
	_, err := s.repo.GetSelected(s.ctx, character.GetSelectedInput{})
	s.True(errors.IsNotFound(err), "nothing selected initially")

	char := s.newCharacter("char_1")
	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: char})
	s.Require().NoError(err)

	_, err = s.repo.SetSelected(s.ctx, character.SetSelectedInput{ID: "char_1"})
	s.Require().NoError(err)

	got, err := s.repo.GetSelected(s.ctx, character.GetSelectedInput{})
	s.Require().NoError(err)
	s.Equal("char_1", got.Character.ID)
}

func (s *RedisRepositoryTestSuite) TestSetSelected_UnknownID() {
	_, err := s.repo.SetSelected(s.ctx, character.SetSelectedInput{ID: "ghost"})
	s.True(errors.IsNotFound(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
