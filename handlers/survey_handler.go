package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"surveypro/services"
)

type SurveyHandler struct {
	surveyService *services.SurveyService
}

func NewSurveyHandler(surveyService *services.SurveyService) *SurveyHandler {
	return &SurveyHandler{
		surveyService: surveyService,
	}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req services.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	survey, err := h.surveyService.CreateSurvey(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, survey)
}

func (h *SurveyHandler) GetSurveys(c *gin.Context) {
	surveys, err := h.surveyService.GetSurveys()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, surveys)
}

func (h *SurveyHandler) GetSurveyByID(c *gin.Context) {
	surveyID, ok := parseID(c, "id")
	if !ok {
		return
	}

	survey, err := h.surveyService.GetSurveyByID(surveyID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, survey)
}

func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	surveyID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	survey, err := h.surveyService.UpdateSurvey(surveyID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, survey)
}

func (h *SurveyHandler) DeleteSurvey(c *gin.Context) {
	surveyID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.surveyService.DeleteSurvey(surveyID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Survey deleted successfully"})
}
