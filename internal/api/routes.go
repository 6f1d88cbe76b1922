package api

import (
	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/online-voting-system/internal/controller"
	"github.com/saxenaaman628/online-voting-system/internal/middleware"
	"github.com/saxenaaman628/online-voting-system/internal/utils"
)

func RegisterRoutes(r *gin.Engine, h *controller.Handler, tokens *utils.Tokens) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.POST("/upload", h.UploadImage)
		api.GET("/images/latest", h.LatestImage)
		api.POST("/validate/:entity", h.ValidateField)
	}

	users := api.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/me", middleware.JWTAuthMiddleware(tokens), h.Me)

		users.POST("/voter", h.CreateVoter)
		users.GET("/voter", h.ListVoters)
		users.GET("/voter/:userId", h.VerifyVoter)

		users.POST("/formdata", h.CreateElection)
		users.GET("/formdata", h.ListElections)
		users.GET("/formdata/:uid", h.GetElection)

		users.POST("/candidate", h.CreateCandidate)
		users.GET("/candidate", h.ListCandidates)

		users.POST("/votingdata", h.CastVote)
		users.GET("/votingdata", h.ListVotes)

		users.GET("/results/:formId", h.Results)
		users.GET("/results/:formId/candidates/:candidateUid", h.CandidateResults)
	}
}

// NewRouter builds the engine with the standard middleware stack.
// corsOrigins is passed to middleware.CORS.
func NewRouter(h *controller.Handler, tokens *utils.Tokens, corsOrigins []string, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(corsOrigins))
	r.Use(extra...)
	RegisterRoutes(r, h, tokens)
	return r
}
