package v1alpha1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/fractalshard/game-api/internal/clients/wallet"
	"github.com/fractalshard/game-api/internal/entities"
	"github.com/fractalshard/game-api/internal/errors"
	v1alpha1 "github.com/fractalshard/game-api/internal/handlers/api/v1alpha1"
	battleorch "github.com/fractalshard/game-api/internal/orchestrators/battle"
	battlemock "github.com/fractalshard/game-api/internal/orchestrators/battle/mock"
	characterorch "github.com/fractalshard/game-api/internal/orchestrators/character"
	charactermock "github.com/fractalshard/game-api/internal/orchestrators/character/mock"
	storyorch "github.com/fractalshard/game-api/internal/orchestrators/story"
	storymock "github.com/fractalshard/game-api/internal/orchestrators/story/mock"
)

// recordingNotifier captures toasts for assertions
type recordingNotifier struct {
	toasts []wallet.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, toast wallet.Notification) {
	n.toasts = append(n.toasts, toast)
}

type HandlerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	charSvc    *charactermock.MockService
	storySvc   *storymock.MockService
	battleSvc  *battlemock.MockService
	walletStub *wallet.Stub
	notifier   *recordingNotifier
	router     *gin.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.ctrl = gomock.NewController(s.T())
	s.charSvc = charactermock.NewMockService(s.ctrl)
	s.storySvc = storymock.NewMockService(s.ctrl)
	s.battleSvc = battlemock.NewMockService(s.ctrl)
	s.walletStub = wallet.NewStub("0x5hard")
	s.notifier = &recordingNotifier{}

	handler, err := v1alpha1.NewHandler(&v1alpha1.Config{
		CharacterService: s.charSvc,
		StoryService:     s.storySvc,
		BattleService:    s.battleSvc,
		WalletClient:     s.walletStub,
		Notifier:         s.notifier,
	})
	s.Require().NoError(err)

	s.router = gin.New()
	handler.RegisterRoutes(s.router)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) TestCreateCharacter() {
	s.charSvc.EXPECT().
		CreateCharacter(gomock.Any(), &characterorch.CreateCharacterInput{
			Name:  "Azrael",
			Class: entities.ClassMage,
		}).
		Return(&characterorch.CreateCharacterOutput{
			Character: &entities.Character{ID: "char_1", Name: "Azrael", Class: entities.ClassMage, Level: 1},
		}, nil)

	w := s.do(http.MethodPost, "/v1alpha1/characters", gin.H{"name": "Azrael", "class": "mage"})

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"char_1"`)
}

func (s *HandlerTestSuite) TestCreateCharacter_ValidationError() {
	s.charSvc.EXPECT().
		CreateCharacter(gomock.Any(), gomock.Any()).
		Return(nil, errors.InvalidArgument("Name: is required"))

	w := s.do(http.MethodPost, "/v1alpha1/characters", gin.H{"class": "mage"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), string(errors.CodeInvalidArgument))
}

func (s *HandlerTestSuite) TestGetCharacter_NotFound() {
	s.charSvc.EXPECT().
		GetCharacter(gomock.Any(), &characterorch.GetCharacterInput{CharacterID: "ghost"}).
		Return(nil, errors.NotFound("character with ID ghost not found"))

	w := s.do(http.MethodGet, "/v1alpha1/characters/ghost", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestHandleChoice_Redirect() {
	s.storySvc.EXPECT().
		HandleChoice(gomock.Any(), &storyorch.HandleChoiceInput{
			SessionID: "sess_1",
			ChoiceID:  "battle-start",
		}).
		Return(&storyorch.HandleChoiceOutput{
			Node:     &storyorch.NodeView{ID: "battle"},
			Redirect: "/battle",
		}, nil)

	w := s.do(http.MethodPost, "/v1alpha1/story/sessions/sess_1/choices", gin.H{"choice_id": "battle-start"})

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"redirect":"/battle"`)
}

func (s *HandlerTestSuite) TestHandleChoice_TypingConflict() {
	s.storySvc.EXPECT().
		HandleChoice(gomock.Any(), gomock.Any()).
		Return(nil, errors.FailedPrecondition("text is still revealing"))

	w := s.do(http.MethodPost, "/v1alpha1/story/sessions/sess_1/choices", gin.H{"choice_id": "examine"})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestSubmitAction_PhaseConflict() {
	s.battleSvc.EXPECT().
		SubmitAction(gomock.Any(), &battleorch.SubmitActionInput{
			BattleID: "battle_1",
			Action:   entities.ActionAttack,
		}).
		Return(nil, errors.FailedPrecondition("battle is not accepting actions"))

	w := s.do(http.MethodPost, "/v1alpha1/battles/battle_1/actions", gin.H{"action": "attack"})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestStartBattle() {
	s.battleSvc.EXPECT().
		StartBattle(gomock.Any(), &battleorch.StartBattleInput{CharacterID: "char_1"}).
		Return(&battleorch.StartBattleOutput{
			Battle: &entities.Battle{ID: "battle_1", Phase: entities.PhaseActionSelect},
		}, nil)

	w := s.do(http.MethodPost, "/v1alpha1/battles", gin.H{"character_id": "char_1"})

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"battle_1"`)
}

func (s *HandlerTestSuite) TestWalletConnectFailureBecomesToast() {
	s.walletStub.FailConnect = true

	w := s.do(http.MethodPost, "/v1alpha1/wallet/connect", nil)

	s.Equal(http.StatusOK, w.Code, "wallet failure is not an API error")
	s.Contains(w.Body.String(), `"connected":false`)
	s.Require().Len(s.notifier.toasts, 1)
	s.Equal("Wallet connection failed", s.notifier.toasts[0].Title)
	s.Equal("destructive", s.notifier.toasts[0].Variant)
	s.NotEmpty(s.notifier.toasts[0].Description)
}

func (s *HandlerTestSuite) TestWalletStatus() {
	_, err := s.walletStub.Connect(context.Background())
	s.Require().NoError(err)

	w := s.do(http.MethodGet, "/v1alpha1/wallet/status", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"0x5hard"`)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
