package story_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/fractalshard/game-api/internal/content"
	"github.com/fractalshard/game-api/internal/entities"
	"github.com/fractalshard/game-api/internal/errors"
	characterorch "github.com/fractalshard/game-api/internal/orchestrators/character"
	charactermock "github.com/fractalshard/game-api/internal/orchestrators/character/mock"
	"github.com/fractalshard/game-api/internal/orchestrators/story"
	clockmock "github.com/fractalshard/game-api/internal/pkg/clock/mock"
	"github.com/fractalshard/game-api/internal/pkg/idgen"
	sessionrepo "github.com/fractalshard/game-api/internal/repositories/storysession"
	sessionmock "github.com/fractalshard/game-api/internal/repositories/storysession/mock"
)

const typingInterval = 30 * time.Millisecond

func testGraph() *entities.StoryGraph {
	return &entities.StoryGraph{
		Root: "start",
		Nodes: map[string]*entities.StoryNode{
			"start": {
				ID:   "start",
				Text: "The rift hums.",
				Rewards: &entities.StoryRewards{
					Experience: 100,
					Items:      []string{"shard-lens"},
					Currency:   5,
				},
				Choices: []entities.StoryChoice{
					{ID: "advance", Text: "Step through", Next: "deep"},
					{
						ID:   "gated",
						Text: "Force the seal",
						Next: "deep",
						Requires: &entities.ChoiceRequirement{
							Attribute: entities.AttributeHeroism,
							MinValue:  12,
						},
					},
					{ID: "flee", Text: "Flee to the breach", Redirect: "/battle"},
				},
			},
			"deep": {
				ID:   "deep",
				Text: "Deeper.",
				Choices: []entities.StoryChoice{
					{ID: "back", Text: "Turn back", Next: "start"},
					{
						ID:   "sealed",
						Text: "Open the warded door",
						Next: "start",
						Requires: &entities.ChoiceRequirement{
							Item: "shard-lens",
						},
					},
				},
			},
		},
	}
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockRepo    *sessionmock.MockRepository
	mockCharSvc *charactermock.MockService
	orch        *story.Orchestrator
	now         time.Time
	ctx         context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = sessionmock.NewMockRepository(s.ctrl)
	s.mockCharSvc = charactermock.NewMockService(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockClock := clockmock.NewMockClock(s.ctrl)
	mockClock.EXPECT().Now().DoAndReturn(func() time.Time {
		return s.now
	}).AnyTimes()

	orch, err := story.New(&story.Config{
		SessionRepo:      s.mockRepo,
		CharacterService: s.mockCharSvc,
		Graph:            testGraph(),
		IDGenerator:      idgen.NewSequential("sess"),
		Clock:            mockClock,
		TypingInterval:   typingInterval,
	})
	s.Require().NoError(err)
	s.orch = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// boundCharacter wires GetCharacter to return a character whose strength
// (the heroism gate) is the given value.
func (s *OrchestratorTestSuite) boundCharacter(strength int) {
	char := &entities.Character{
		ID:    "char_1",
		Name:  "Azrael",
		Class: entities.ClassWarrior,
		Level: 1,
		Stats: entities.CalculateStats(entities.ClassWarrior, 1),
	}
	char.Stats.Attributes.Strength = strength

	s.mockCharSvc.EXPECT().
		GetCharacter(s.ctx, &characterorch.GetCharacterInput{CharacterID: "char_1"}).
		Return(&characterorch.GetCharacterOutput{Character: char}, nil).
		AnyTimes()
}

func (s *OrchestratorTestSuite) session(nodeID string, revealed bool) *sessionrepo.StorySession {
	return &sessionrepo.StorySession{
		ID:            "sess_1",
		CharacterID:   "char_1",
		NodeID:        nodeID,
		EnteredAt:     s.now,
		RevealSkipped: revealed,
		ExpiresAt:     s.now.Add(24 * time.Hour),
		History: []entities.StoryHistoryEntry{
			{NodeID: "start", Timestamp: s.now},
		},
	}
}

func (s *OrchestratorTestSuite) expectGet(sess *sessionrepo.StorySession) {
	s.mockRepo.EXPECT().
		Get(s.ctx, sessionrepo.GetInput{SessionID: sess.ID}).
		Return(&sessionrepo.GetOutput{Session: sess}, nil)
}

func (s *OrchestratorTestSuite) expectUpdateEcho() {
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input sessionrepo.UpdateInput) (*sessionrepo.UpdateOutput, error) {
			return &sessionrepo.UpdateOutput{Session: input.Session}, nil
		})
}

func (s *OrchestratorTestSuite) TestStartSession() {
	s.boundCharacter(12)
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input sessionrepo.CreateInput) (*sessionrepo.CreateOutput, error) {
			return &sessionrepo.CreateOutput{Session: input.Session}, nil
		})

	out, err := s.orch.StartSession(s.ctx, &story.StartSessionInput{CharacterID: "char_1"})
	s.Require().NoError(err)

	s.Equal("sess_1", out.Session.ID)
	s.Equal("start", out.Session.NodeID)
	s.Require().Len(out.Session.History, 1, "history seeded with the root")
	s.Equal("start", out.Session.History[0].NodeID)

	s.Equal("start", out.Node.ID)
	s.True(out.Node.IsTyping)
	s.Empty(out.Node.RevealedText, "nothing revealed at entry time")
}

func (s *OrchestratorTestSuite) TestGetNode_RevealAdvancesWithClock() {
	s.boundCharacter(12)
	sess := s.session("start", false)
	s.expectGet(sess)

	s.now = s.now.Add(3 * typingInterval)

	out, err := s.orch.GetNode(s.ctx, &story.GetNodeInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.Equal("The", out.Node.RevealedText)
	s.True(out.Node.IsTyping)
}

func (s *OrchestratorTestSuite) TestGetNode_RevealCompletes() {
	s.boundCharacter(12)
	sess := s.session("start", false)
	s.expectGet(sess)

	s.now = s.now.Add(time.Second)

	out, err := s.orch.GetNode(s.ctx, &story.GetNodeInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.Equal("The rift hums.", out.Node.RevealedText)
	s.False(out.Node.IsTyping)
}

func (s *OrchestratorTestSuite) TestHandleChoice_RejectedWhileTyping() {
	sess := s.session("start", false)
	s.expectGet(sess)

	_, err := s.orch.HandleChoice(s.ctx, &story.HandleChoiceInput{
		SessionID: "sess_1",
		ChoiceID:  "advance",
	})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestSkipTyping() {
	s.boundCharacter(12)
	sess := s.session("start", false)
	s.expectGet(sess)
	s.expectUpdateEcho()

	out, err := s.orch.SkipTyping(s.ctx, &story.SkipTypingInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.False(out.Node.IsTyping)
	s.Equal("The rift hums.", out.Node.RevealedText)
}

func (s *OrchestratorTestSuite) TestHandleChoice_MovesAndGrantsRewards() {
	s.boundCharacter(12)
	sess := s.session("start", true)
	s.expectGet(sess)
	s.expectUpdateEcho()
	s.mockCharSvc.EXPECT().
		GrantExperience(s.ctx, &characterorch.GrantExperienceInput{
			CharacterID: "char_1",
			Amount:      100,
		}).
		Return(&characterorch.GrantExperienceOutput{LevelsGained: 0}, nil)

	out, err := s.orch.HandleChoice(s.ctx, &story.HandleChoiceInput{
		SessionID: "sess_1",
		ChoiceID:  "advance",
	})
	s.Require().NoError(err)

	s.Empty(out.Redirect)
	s.Equal("deep", out.Node.ID)
	s.Equal("deep", sess.NodeID)
	s.False(sess.RevealSkipped, "reveal restarts on the new node")
	s.Contains(sess.Items, "shard-lens")
	s.Equal(5, sess.Currency)

	s.Require().Len(sess.History, 2)
	s.Equal("start", sess.History[1].NodeID)
	s.Equal("advance", sess.History[1].ChoiceID)
}

func (s *OrchestratorTestSuite) TestHandleChoice_RedirectLeavesNode() {
	s.boundCharacter(12)
	sess := s.session("start", true)
	s.expectGet(sess)
	s.expectUpdateEcho()
	s.mockCharSvc.EXPECT().
		GrantExperience(s.ctx, gomock.Any()).
		Return(&characterorch.GrantExperienceOutput{}, nil)

	out, err := s.orch.HandleChoice(s.ctx, &story.HandleChoiceInput{
		SessionID: "sess_1",
		ChoiceID:  "flee",
	})
	s.Require().NoError(err)

	s.Equal("/battle", out.Redirect)
	s.Equal("start", sess.NodeID, "redirect does not move the session")
	s.Len(sess.History, 2, "the redirected choice is still recorded")
}

func (s *OrchestratorTestSuite) TestHandleChoice_GatedUnmet() {
	s.boundCharacter(11)
	sess := s.session("start", true)
	s.expectGet(sess)

	_, err := s.orch.HandleChoice(s.ctx, &story.HandleChoiceInput{
		SessionID: "sess_1",
		ChoiceID:  "gated",
	})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestHandleChoice_GatedBoundaryPasses() {
	s.boundCharacter(12)
	sess := s.session("start", true)
	s.expectGet(sess)
	s.expectUpdateEcho()
	s.mockCharSvc.EXPECT().
		GrantExperience(s.ctx, gomock.Any()).
		Return(&characterorch.GrantExperienceOutput{}, nil)

	out, err := s.orch.HandleChoice(s.ctx, &story.HandleChoiceInput{
		SessionID: "sess_1",
		ChoiceID:  "gated",
	})
	s.Require().NoError(err)
	s.Equal("deep", out.Node.ID, "attribute == minimum passes")
}

func (s *OrchestratorTestSuite) TestHandleChoice_GatedUnboundSession() {
	sess := s.session("start", true)
	sess.CharacterID = ""
	s.expectGet(sess)

	_, err := s.orch.HandleChoice(s.ctx, &story.HandleChoiceInput{
		SessionID: "sess_1",
		ChoiceID:  "gated",
	})
	s.True(errors.IsFailedPrecondition(err), "no bound character fails every attribute gate")
}

func (s *OrchestratorTestSuite) TestHandleChoice_ItemGate() {
	sess := s.session("deep", true)
	sess.CharacterID = ""
	s.expectGet(sess)

	_, err := s.orch.HandleChoice(s.ctx, &story.HandleChoiceInput{
		SessionID: "sess_1",
		ChoiceID:  "sealed",
	})
	s.True(errors.IsFailedPrecondition(err), "missing item fails the gate")

	sess.Items = []string{"shard-lens"}
	s.expectGet(sess)
	s.expectUpdateEcho()

	out, err := s.orch.HandleChoice(s.ctx, &story.HandleChoiceInput{
		SessionID: "sess_1",
		ChoiceID:  "sealed",
	})
	s.Require().NoError(err)
	s.Equal("start", out.Node.ID)
}

func (s *OrchestratorTestSuite) TestHandleChoice_UnknownChoice() {
	sess := s.session("start", true)
	s.expectGet(sess)

	_, err := s.orch.HandleChoice(s.ctx, &story.HandleChoiceInput{
		SessionID: "sess_1",
		ChoiceID:  "teleport",
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestResetSession() {
	s.boundCharacter(12)
	sess := s.session("deep", true)
	sess.Attributes.Heroism = 4
	sess.Items = []string{"shard-lens"}
	sess.Currency = 9
	s.expectGet(sess)
	s.expectUpdateEcho()

	out, err := s.orch.ResetSession(s.ctx, &story.ResetSessionInput{SessionID: "sess_1"})
	s.Require().NoError(err)

	s.Equal("start", out.Node.ID)
	s.Equal(entities.StoryAttributes{}, sess.Attributes)
	s.Empty(sess.Items)
	s.Zero(sess.Currency)
	s.Len(sess.History, 1)
}

func (s *OrchestratorTestSuite) TestGetProgress() {
	sess := s.session("deep", true)
	sess.History = []entities.StoryHistoryEntry{
		{NodeID: "start"},
		{NodeID: "start", ChoiceID: "advance"},
		{NodeID: "deep", ChoiceID: "back"},
	}
	s.expectGet(sess)

	out, err := s.orch.GetProgress(s.ctx, &story.GetProgressInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.Equal(2, out.Visited)
	s.Equal(2, out.Total)
	s.InDelta(1.0, out.Ratio, 0.0001)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

// TestNegotiatePeaceRaisesDiplomacy walks the shipped content: taking
// "negotiate-peace" raises diplomacy by exactly one and nothing else.
func TestNegotiatePeaceRaisesDiplomacy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graph, err := content.DefaultStory()
	if err != nil {
		t.Fatal(err)
	}

	mockRepo := sessionmock.NewMockRepository(ctrl)
	mockCharSvc := charactermock.NewMockService(ctrl)
	mockClock := clockmock.NewMockClock(ctrl)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mockClock.EXPECT().Now().Return(now).AnyTimes()

	orch, err := story.New(&story.Config{
		SessionRepo:      mockRepo,
		CharacterService: mockCharSvc,
		Graph:            graph,
		IDGenerator:      idgen.NewSequential("sess"),
		Clock:            mockClock,
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	sess := &sessionrepo.StorySession{
		ID:            "sess_1",
		NodeID:        "question-convergence",
		EnteredAt:     now,
		RevealSkipped: true,
		ExpiresAt:     now.Add(24 * time.Hour),
	}
	mockRepo.EXPECT().
		Get(ctx, sessionrepo.GetInput{SessionID: "sess_1"}).
		Return(&sessionrepo.GetOutput{Session: sess}, nil)
	mockRepo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input sessionrepo.UpdateInput) (*sessionrepo.UpdateOutput, error) {
			return &sessionrepo.UpdateOutput{Session: input.Session}, nil
		})

	out, err := orch.HandleChoice(ctx, &story.HandleChoiceInput{
		SessionID: "sess_1",
		ChoiceID:  "negotiate-peace",
	})
	if err != nil {
		t.Fatal(err)
	}

	want := entities.StoryAttributes{Diplomacy: 1}
	if sess.Attributes != want {
		t.Errorf("attributes = %+v, want diplomacy 1 and nothing else", sess.Attributes)
	}
	if out.Node.ID != "negotiate" {
		t.Errorf("node = %s, want negotiate", out.Node.ID)
	}
}
