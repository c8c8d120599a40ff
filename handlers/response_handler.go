package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"surveypro/services"
)

// ResponseHandler serves the public respondent endpoints. There is no
// session here: possession of the invitation token is the only credential.
type ResponseHandler struct {
	responseService *services.ResponseService
}

func NewResponseHandler(responseService *services.ResponseService) *ResponseHandler {
	return &ResponseHandler{
		responseService: responseService,
	}
}

func (h *ResponseHandler) GetResponseForm(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invitation token required"})
		return
	}

	form, err := h.responseService.GetResponseForm(token)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invitation token required"})
		return
	}

	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.responseService.SubmitResponse(c.Request.Context(), token, &req); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Response recorded, thank you"})
}
