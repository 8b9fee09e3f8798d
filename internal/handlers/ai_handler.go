package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habithero/internal/services"
)

// AIHandler serves AI-assisted suggestions and analysis. Provider failures
// never reach the client; the service answers from a static fallback.
type AIHandler struct {
	suggestionService services.SuggestionServicer
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(suggestionService services.SuggestionServicer) *AIHandler {
	return &AIHandler{suggestionService: suggestionService}
}

// SuggestionRequest is the optional body of POST /ai/suggestions.
type SuggestionRequest struct {
	Goals             string   `json:"goals" binding:"max=500"`
	ExcludeCategories []string `json:"exclude_categories" binding:"omitempty,max=20,dive,max=50"`
}

// GetSuggestions returns new habit suggestions based on existing habits.
// @Summary     Get habit suggestions
// @Tags        ai
// @Produce     json
// @Param       goals query string false "Free-text goals"
// @Success     200 {object} services.SuggestionResult "Suggestions"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ai/suggestions [get]
func (h *AIHandler) GetSuggestions(c *gin.Context) {
	h.suggest(c, SuggestionRequest{Goals: c.Query("goals")})
}

// PostSuggestions returns suggestions for the given goals.
// @Summary     Get habit suggestions for goals
// @Tags        ai
// @Accept      json
// @Produce     json
// @Param       request body SuggestionRequest false "Goals and categories to leave out"
// @Success     200 {object} services.SuggestionResult "Suggestions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ai/suggestions [post]
func (h *AIHandler) PostSuggestions(c *gin.Context) {
	var req SuggestionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, bindError(err))
			return
		}
	}
	h.suggest(c, req)
}

func (h *AIHandler) suggest(c *gin.Context, req SuggestionRequest) {
	result, err := h.suggestionService.Suggest(c.Request.Context(), req.Goals, req.ExcludeCategories)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAnalysis returns an assessment of the current habits.
// @Summary     Analyze habit patterns
// @Tags        ai
// @Produce     json
// @Success     200 {object} ai.Analysis "Analysis"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ai/analysis [get]
func (h *AIHandler) GetAnalysis(c *gin.Context) {
	analysis, err := h.suggestionService.Analyze(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// GetCategories returns suggested habit categories.
// @Summary     Suggest habit categories
// @Tags        ai
// @Produce     json
// @Success     200 {object} map[string][]string "Categories"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Router      /ai/categories [get]
func (h *AIHandler) GetCategories(c *gin.Context) {
	categories, err := h.suggestionService.Categories(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetHealth reports whether an AI provider is configured.
// @Summary     AI integration status
// @Tags        ai
// @Produce     json
// @Success     200 {object} ai.Health "Status"
// @Router      /ai/health [get]
func (h *AIHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, h.suggestionService.Health())
}
