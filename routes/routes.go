package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"surveypro/handlers"
	"surveypro/middleware"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	surveyHandler *handlers.SurveyHandler,
	questionHandler *handlers.QuestionHandler,
	invitationHandler *handlers.InvitationHandler,
	responseHandler *handlers.ResponseHandler,
	resultsHandler *handlers.ResultsHandler,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Operator routes, gated by a valid session token
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)

			surveys := protected.Group("/surveys")
			{
				surveys.GET("", surveyHandler.GetSurveys)
				surveys.POST("", surveyHandler.CreateSurvey)
				surveys.GET("/:id", surveyHandler.GetSurveyByID)
				surveys.PUT("/:id", surveyHandler.UpdateSurvey)
				surveys.DELETE("/:id", surveyHandler.DeleteSurvey)

				surveys.GET("/:id/questions", questionHandler.GetQuestions)
				surveys.POST("/:id/questions", questionHandler.CreateQuestion)

				surveys.GET("/:id/invitations", invitationHandler.GetInvitations)
				surveys.POST("/:id/invitations", invitationHandler.CreateInvitation)

				surveys.GET("/:id/results", resultsHandler.GetResults)
				surveys.GET("/:id/results/csv", resultsHandler.ExportCSV)
			}

			questions := protected.Group("/questions")
			{
				questions.PUT("/:id", questionHandler.UpdateQuestion)
				questions.DELETE("/:id", questionHandler.DeleteQuestion)
			}
		}

		// Respondent routes (public): the invitation token is the credential
		respond := api.Group("/respond")
		{
			respond.GET("/:token", responseHandler.GetResponseForm)
			respond.POST("/:token", responseHandler.SubmitResponse)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
