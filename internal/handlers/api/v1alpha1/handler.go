// Package v1alpha1 exposes the game services over HTTP. Handlers are a
// thin translation layer: bind the request, call the orchestrator, map
// the error code to a status.
package v1alpha1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fractalshard/game-api/internal/clients/wallet"
	"github.com/fractalshard/game-api/internal/entities"
	"github.com/fractalshard/game-api/internal/errors"
	battleorch "github.com/fractalshard/game-api/internal/orchestrators/battle"
	characterorch "github.com/fractalshard/game-api/internal/orchestrators/character"
	storyorch "github.com/fractalshard/game-api/internal/orchestrators/story"
)

// Config holds the services the handler fronts
type Config struct {
	CharacterService characterorch.Service
	StoryService     storyorch.Service
	BattleService    battleorch.Service
	WalletClient     wallet.Client
	Notifier         wallet.Notifier
}

// Validate ensures all required dependencies are provided
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	if cfg.StoryService == nil {
		vb.RequiredField("StoryService")
	}
	if cfg.BattleService == nil {
		vb.RequiredField("BattleService")
	}
	if cfg.WalletClient == nil {
		vb.RequiredField("WalletClient")
	}

	return vb.Build()
}

// Handler serves the v1alpha1 API
type Handler struct {
	characterSvc characterorch.Service
	storySvc     storyorch.Service
	battleSvc    battleorch.Service
	walletClient wallet.Client
	notifier     wallet.Notifier
}

// NewHandler creates a new API handler
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = &wallet.SlogNotifier{}
	}

	return &Handler{
		characterSvc: cfg.CharacterService,
		storySvc:     cfg.StoryService,
		battleSvc:    cfg.BattleService,
		walletClient: cfg.WalletClient,
		notifier:     notifier,
	}, nil
}

// RegisterRoutes attaches the API to a router
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/v1alpha1")

	v1.POST("/characters", h.createCharacter)
	v1.GET("/characters", h.listCharacters)
	v1.GET("/characters/selected", h.getSelectedCharacter)
	v1.GET("/characters/:id", h.getCharacter)
	v1.PATCH("/characters/:id", h.updateCharacter)
	v1.POST("/characters/:id/select", h.selectCharacter)
	v1.POST("/characters/:id/experience", h.grantExperience)

	v1.POST("/story/sessions", h.startSession)
	v1.GET("/story/sessions/:id/node", h.getNode)
	v1.POST("/story/sessions/:id/choices", h.handleChoice)
	v1.POST("/story/sessions/:id/skip", h.skipTyping)
	v1.POST("/story/sessions/:id/reset", h.resetSession)
	v1.GET("/story/sessions/:id/progress", h.getProgress)

	v1.POST("/battles", h.startBattle)
	v1.GET("/battles/:id", h.getBattle)
	v1.POST("/battles/:id/actions", h.submitAction)
	v1.DELETE("/battles/:id", h.endBattle)

	v1.POST("/wallet/connect", h.walletConnect)
	v1.POST("/wallet/disconnect", h.walletDisconnect)
	v1.GET("/wallet/status", h.walletStatus)
}

func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	c.JSON(code.HTTPStatus(), gin.H{
		"code":  string(code),
		"error": errors.GetMessage(err),
	})
}

type createCharacterRequest struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

func (h *Handler) createCharacter(c *gin.Context) {
	var req createCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.characterSvc.CreateCharacter(c.Request.Context(), &characterorch.CreateCharacterInput{
		Name:  req.Name,
		Class: entities.Class(req.Class),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"character": out.Character})
}

func (h *Handler) listCharacters(c *gin.Context) {
	out, err := h.characterSvc.ListCharacters(c.Request.Context(), &characterorch.ListCharactersInput{})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"characters": out.Characters})
}

func (h *Handler) getCharacter(c *gin.Context) {
	out, err := h.characterSvc.GetCharacter(c.Request.Context(), &characterorch.GetCharacterInput{
		CharacterID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"character": out.Character})
}

type updateCharacterRequest struct {
	Name  *string `json:"name"`
	Class *string `json:"class"`
	Level *int    `json:"level"`
}

func (h *Handler) updateCharacter(c *gin.Context) {
	var req updateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	input := &characterorch.UpdateCharacterInput{
		CharacterID: c.Param("id"),
		Name:        req.Name,
		Level:       req.Level,
	}
	if req.Class != nil {
		class := entities.Class(*req.Class)
		input.Class = &class
	}

	out, err := h.characterSvc.UpdateCharacter(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"character": out.Character})
}

func (h *Handler) selectCharacter(c *gin.Context) {
	out, err := h.characterSvc.SelectCharacter(c.Request.Context(), &characterorch.SelectCharacterInput{
		CharacterID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"character": out.Character})
}

func (h *Handler) getSelectedCharacter(c *gin.Context) {
	out, err := h.characterSvc.GetSelectedCharacter(c.Request.Context(), &characterorch.GetSelectedCharacterInput{})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"character": out.Character})
}

type grantExperienceRequest struct {
	Amount int `json:"amount"`
}

func (h *Handler) grantExperience(c *gin.Context) {
	var req grantExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.characterSvc.GrantExperience(c.Request.Context(), &characterorch.GrantExperienceInput{
		CharacterID: c.Param("id"),
		Amount:      req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"character":     out.Character,
		"levels_gained": out.LevelsGained,
	})
}

type startSessionRequest struct {
	CharacterID string `json:"character_id"`
}

func (h *Handler) startSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.storySvc.StartSession(c.Request.Context(), &storyorch.StartSessionInput{
		CharacterID: req.CharacterID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": out.Session.ID,
		"node":       out.Node,
	})
}

func (h *Handler) getNode(c *gin.Context) {
	out, err := h.storySvc.GetNode(c.Request.Context(), &storyorch.GetNodeInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"node": out.Node})
}

type handleChoiceRequest struct {
	ChoiceID string `json:"choice_id"`
}

func (h *Handler) handleChoice(c *gin.Context) {
	var req handleChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.storySvc.HandleChoice(c.Request.Context(), &storyorch.HandleChoiceInput{
		SessionID: c.Param("id"),
		ChoiceID:  req.ChoiceID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"node": out.Node}
	if out.Redirect != "" {
		// The caller navigates; the engine only reports the destination.
		resp["redirect"] = out.Redirect
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) skipTyping(c *gin.Context) {
	out, err := h.storySvc.SkipTyping(c.Request.Context(), &storyorch.SkipTypingInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"node": out.Node})
}

func (h *Handler) resetSession(c *gin.Context) {
	out, err := h.storySvc.ResetSession(c.Request.Context(), &storyorch.ResetSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"node": out.Node})
}

func (h *Handler) getProgress(c *gin.Context) {
	out, err := h.storySvc.GetProgress(c.Request.Context(), &storyorch.GetProgressInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"visited": out.Visited,
		"total":   out.Total,
		"ratio":   out.Ratio,
	})
}

type startBattleRequest struct {
	CharacterID string `json:"character_id"`
	EnemyID     string `json:"enemy_id"`
}

func (h *Handler) startBattle(c *gin.Context) {
	var req startBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.battleSvc.StartBattle(c.Request.Context(), &battleorch.StartBattleInput{
		CharacterID: req.CharacterID,
		EnemyID:     req.EnemyID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"battle": out.Battle})
}

func (h *Handler) getBattle(c *gin.Context) {
	out, err := h.battleSvc.GetBattle(c.Request.Context(), &battleorch.GetBattleInput{
		BattleID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"battle": out.Battle})
}

type submitActionRequest struct {
	Action string `json:"action"`
}

func (h *Handler) submitAction(c *gin.Context) {
	var req submitActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.battleSvc.SubmitAction(c.Request.Context(), &battleorch.SubmitActionInput{
		BattleID: c.Param("id"),
		Action:   entities.BattleAction(req.Action),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"battle": out.Battle})
}

func (h *Handler) endBattle(c *gin.Context) {
	if _, err := h.battleSvc.EndBattle(c.Request.Context(), &battleorch.EndBattleInput{
		BattleID: c.Param("id"),
	}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ended": true})
}

// Wallet failures never become errors for the game; the player gets a
// notification and the handler reports a disconnected wallet.
func (h *Handler) walletConnect(c *gin.Context) {
	status, err := h.walletClient.Connect(c.Request.Context())
	if err != nil {
		h.notifier.Notify(c.Request.Context(), wallet.Notification{
			Title:       "Wallet connection failed",
			Description: errors.GetMessage(err),
			Variant:     "destructive",
		})
		c.JSON(http.StatusOK, gin.H{"status": wallet.Status{Connected: false}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *Handler) walletDisconnect(c *gin.Context) {
	if err := h.walletClient.Disconnect(c.Request.Context()); err != nil {
		h.notifier.Notify(c.Request.Context(), wallet.Notification{
			Title:       "Wallet disconnect failed",
			Description: errors.GetMessage(err),
			Variant:     "destructive",
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": wallet.Status{Connected: false}})
}

func (h *Handler) walletStatus(c *gin.Context) {
	status, err := h.walletClient.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}
