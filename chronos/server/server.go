// Package server is the thin HTTP glue over the pack service. All invariants
// live in the core; this layer only parses, validates, and maps results to
// status codes.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/projectchronos/chronos/chronos/chain"
	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/projectchronos/chronos/chronos/logger"
	"github.com/projectchronos/chronos/chronos/packs"
	"github.com/sahilm/fuzzy"
)

type Server struct {
	service            *packs.Service
	chainAdmin         *chain.Gateway
	defaultCreateCount int
}

// New builds the transport. chainAdmin may be nil; the admin token routes
// are only registered when a gateway is configured.
func New(service *packs.Service, chainAdmin *chain.Gateway, defaultCreateCount int) *Server {
	if defaultCreateCount <= 0 {
		defaultCreateCount = 1
	}
	return &Server{
		service:            service,
		chainAdmin:         chainAdmin,
		defaultCreateCount: defaultCreateCount,
	}
}

// Handler builds the gin engine with all routes registered.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	api := r.Group("/api/v1")
	{
		api.GET("/ping", s.ping)
		api.POST("/templates", s.createTemplate)
		api.POST("/templates/welcome", s.ensureWelcomeTemplate)
		api.DELETE("/templates/:id", s.deactivateTemplate)
		api.POST("/packs", s.createPacks)
		api.POST("/packs/claim", s.claimPack)
		api.POST("/packs/claimTo", s.claimPack) // admin claim on behalf of a user
		api.GET("/packs/remaining/:type", s.packsRemaining)
		api.GET("/packs/content/:type", s.packContent)
		api.GET("/packs/owned/:userId", s.ownedPacks)
		api.GET("/claims/:userId", s.claimHistory)

		if s.chainAdmin != nil {
			admin := api.Group("/admin")
			admin.POST("/tokens/transfer", s.transferToken)
			admin.POST("/tokens/claimConditions", s.setClaimConditions)
		}
	}
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		logger.LogRequest(ctx.Request.Method, ctx.FullPath(), ctx.Writer.Status(), time.Since(start))
	}
}

func (s *Server) ping(ctx *gin.Context) {
	JsonSuccess(ctx, gin.H{"pong": true})
}

func (s *Server) ensureWelcomeTemplate(ctx *gin.Context) {
	created, err := s.service.EnsureWelcomePackTemplateExists(ctx.Request.Context())
	if err != nil {
		HandleError(ctx, http.StatusInternalServerError, err)
		return
	}
	JsonSuccess(ctx, gin.H{"created": created})
}

type createTemplateRequest struct {
	Type               string                    `json:"type"`
	RarityDistribution models.RarityDistribution `json:"rarityDistribution"`
	CardPool           []models.CardDefinition   `json:"cardPool"`
	CardsPerPack       int                       `json:"cardsPerPack"`
	MaxSupply          *int                      `json:"maxSupply"`
}

func (s *Server) createTemplate(ctx *gin.Context) {
	var req createTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		HandleError(ctx, http.StatusBadRequest, err)
		return
	}
	packType, err := parsePackType(req.Type)
	if err != nil {
		HandleError(ctx, http.StatusBadRequest, err)
		return
	}

	template := &models.CardPackTemplate{
		Type:               packType,
		RarityDistribution: req.RarityDistribution,
		CardPool:           req.CardPool,
		CardsPerPack:       req.CardsPerPack,
		MaxSupply:          req.MaxSupply,
	}
	if err := s.service.CreateTemplate(ctx.Request.Context(), template); err != nil {
		switch {
		case errors.Is(err, packs.ErrTemplateExists):
			HandleError(ctx, http.StatusConflict, err)
		default:
			HandleError(ctx, http.StatusBadRequest, err)
		}
		return
	}
	JsonSuccess(ctx, gin.H{"templateId": template.ID, "type": template.Type})
}

func (s *Server) deactivateTemplate(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		HandleError(ctx, http.StatusBadRequest, fmt.Errorf("invalid template id %q", ctx.Param("id")))
		return
	}

	if err := s.service.DeactivateTemplate(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, packs.ErrNotFound) {
			HandleError(ctx, http.StatusNotFound, err)
			return
		}
		HandleError(ctx, http.StatusInternalServerError, err)
		return
	}
	JsonSuccess(ctx, gin.H{"templateId": id, "active": false})
}

type createPacksRequest struct {
	TemplateID int64  `json:"templateId"`
	Type       string `json:"type"`
	Count      int    `json:"count"`
}

func (s *Server) createPacks(ctx *gin.Context) {
	var req createPacksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		HandleError(ctx, http.StatusBadRequest, err)
		return
	}
	if req.Count <= 0 {
		req.Count = s.defaultCreateCount
	}

	var created *packs.CreatedPacks
	var err error
	switch {
	case req.TemplateID > 0:
		created, err = s.service.CreatePacksByID(ctx.Request.Context(), req.TemplateID, req.Count)
	case req.Type != "":
		var packType models.PackType
		packType, err = parsePackType(req.Type)
		if err != nil {
			HandleError(ctx, http.StatusBadRequest, err)
			return
		}
		created, err = s.service.CreatePacksByType(ctx.Request.Context(), packType, req.Count)
	default:
		HandleError(ctx, http.StatusBadRequest, errors.New("templateId or type is required"))
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, packs.ErrNotFound):
			HandleError(ctx, http.StatusNotFound, err)
		case errors.Is(err, packs.ErrSupplyExhausted):
			HandleError(ctx, http.StatusConflict, err)
		default:
			HandleError(ctx, http.StatusInternalServerError, err)
		}
		return
	}
	JsonSuccess(ctx, created)
}

type claimPackRequest struct {
	UserID string `json:"userId"`
	Type   string `json:"type"`
}

func (s *Server) claimPack(ctx *gin.Context) {
	var req claimPackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		HandleError(ctx, http.StatusBadRequest, err)
		return
	}
	if req.UserID == "" {
		HandleError(ctx, http.StatusBadRequest, errors.New("userId is required"))
		return
	}
	packType, err := parsePackType(req.Type)
	if err != nil {
		HandleError(ctx, http.StatusBadRequest, err)
		return
	}

	result, err := s.service.ClaimPack(ctx.Request.Context(), req.UserID, packType)
	if err != nil {
		HandleError(ctx, http.StatusInternalServerError, err)
		return
	}

	switch result.Code {
	case packs.ClaimCodeOutOfStock:
		ctx.JSON(http.StatusConflict, result)
	case packs.ClaimCodeInvalidType:
		ctx.JSON(http.StatusBadRequest, result)
	default:
		JsonSuccess(ctx, result)
	}
}

func (s *Server) packsRemaining(ctx *gin.Context) {
	packType, err := parsePackType(ctx.Param("type"))
	if err != nil {
		HandleError(ctx, http.StatusBadRequest, err)
		return
	}

	remaining, err := s.service.GetPacksRemaining(ctx.Request.Context(), packType)
	if err != nil {
		HandleError(ctx, http.StatusInternalServerError, err)
		return
	}
	JsonSuccess(ctx, gin.H{"type": packType, "remaining": remaining})
}

func (s *Server) packContent(ctx *gin.Context) {
	packType, err := parsePackType(ctx.Param("type"))
	if err != nil {
		HandleError(ctx, http.StatusBadRequest, err)
		return
	}

	content, err := s.service.GetPackContent(ctx.Request.Context(), packType)
	if err != nil {
		if errors.Is(err, packs.ErrNotFound) {
			HandleError(ctx, http.StatusNotFound, err)
			return
		}
		HandleError(ctx, http.StatusInternalServerError, err)
		return
	}
	JsonSuccess(ctx, content)
}

func (s *Server) ownedPacks(ctx *gin.Context) {
	userID := ctx.Param("userId")
	if userID == "" {
		HandleError(ctx, http.StatusBadRequest, errors.New("userId is required"))
		return
	}

	owned, err := s.service.GetOwnedPacks(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, http.StatusInternalServerError, err)
		return
	}
	JsonSuccess(ctx, owned)
}

func (s *Server) claimHistory(ctx *gin.Context) {
	userID := ctx.Param("userId")
	if userID == "" {
		HandleError(ctx, http.StatusBadRequest, errors.New("userId is required"))
		return
	}

	history, err := s.service.GetClaimHistory(ctx.Request.Context(), userID)
	if err != nil {
		HandleError(ctx, http.StatusInternalServerError, err)
		return
	}
	JsonSuccess(ctx, history)
}

type transferRequest struct {
	TokenID string `json:"tokenId"`
	To      string `json:"to"`
	Amount  int    `json:"amount"`
}

func (s *Server) transferToken(ctx *gin.Context) {
	var req transferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		HandleError(ctx, http.StatusBadRequest, err)
		return
	}
	if req.TokenID == "" || req.To == "" {
		HandleError(ctx, http.StatusBadRequest, errors.New("tokenId and to are required"))
		return
	}

	result, err := s.chainAdmin.Transfer(ctx.Request.Context(), req.TokenID, req.To, req.Amount, uuid.NewString())
	if err != nil {
		HandleError(ctx, http.StatusBadGateway, err)
		return
	}
	JsonSuccess(ctx, result)
}

type claimConditionsRequest struct {
	TokenID    string                `json:"tokenId"`
	Conditions chain.ClaimConditions `json:"claimConditions"`
}

func (s *Server) setClaimConditions(ctx *gin.Context) {
	var req claimConditionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		HandleError(ctx, http.StatusBadRequest, err)
		return
	}
	if req.TokenID == "" {
		HandleError(ctx, http.StatusBadRequest, errors.New("tokenId is required"))
		return
	}

	if err := s.chainAdmin.SetClaimConditions(ctx.Request.Context(), req.TokenID, req.Conditions); err != nil {
		HandleError(ctx, http.StatusBadGateway, err)
		return
	}
	JsonSuccess(ctx, gin.H{"tokenId": req.TokenID, "applied": true})
}

// parsePackType parses a pack type, suggesting the closest known type on a
// miss.
func parsePackType(raw string) (models.PackType, error) {
	packType, err := models.ParsePackType(raw)
	if err == nil {
		return packType, nil
	}

	names := make([]string, 0)
	for _, t := range models.AllPackTypes() {
		names = append(names, t.String())
	}
	matches := fuzzy.Find(strings.ToLower(raw), names)
	if len(matches) > 0 {
		return "", fmt.Errorf("unknown pack type %q, did you mean %q?", raw, matches[0].Str)
	}
	return "", fmt.Errorf("unknown pack type %q", raw)
}
