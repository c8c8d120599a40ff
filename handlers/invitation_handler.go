package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"surveypro/services"
)

type InvitationHandler struct {
	invitationService *services.InvitationService
	baseURL           string
}

func NewInvitationHandler(invitationService *services.InvitationService, baseURL string) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		baseURL:           baseURL,
	}
}

// CreateInvitation issues one single-use link. The returned link embeds the
// token; handing it to a respondent is the operator's job.
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	surveyID, ok := parseID(c, "id")
	if !ok {
		return
	}

	invitation, err := h.invitationService.CreateInvitation(surveyID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invitation": invitation,
		"link":       fmt.Sprintf("%s/respond/%s", h.baseURL, invitation.Token),
	})
}

func (h *InvitationHandler) GetInvitations(c *gin.Context) {
	surveyID, ok := parseID(c, "id")
	if !ok {
		return
	}

	invitations, err := h.invitationService.GetInvitations(surveyID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, invitations)
}
