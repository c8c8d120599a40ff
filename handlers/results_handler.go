package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"surveypro/services"
)

type ResultsHandler struct {
	resultsService *services.ResultsService
}

func NewResultsHandler(resultsService *services.ResultsService) *ResultsHandler {
	return &ResultsHandler{
		resultsService: resultsService,
	}
}

func (h *ResultsHandler) GetResults(c *gin.Context) {
	surveyID, ok := parseID(c, "id")
	if !ok {
		return
	}

	results, err := h.resultsService.Aggregate(surveyID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// ExportCSV streams the survey's answers as CSV straight to the response
// body. Errors past the first row can only be logged, the status line is
// already gone.
func (h *ResultsHandler) ExportCSV(c *gin.Context) {
	surveyID, ok := parseID(c, "id")
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="survey_%d_results.csv"`, surveyID))

	if err := h.resultsService.StreamCSV(surveyID, c.Writer); err != nil {
		writeError(c, err)
	}
}
