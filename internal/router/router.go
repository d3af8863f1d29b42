package router

import (
	"net/http"

	_ "github.com/dappwork/marketplace/docs"
	"github.com/dappwork/marketplace/internal/config"
	"github.com/dappwork/marketplace/internal/middleware"
	"github.com/dappwork/marketplace/internal/modules/handler"
	"github.com/dappwork/marketplace/internal/modules/serializer"
	"github.com/dappwork/marketplace/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Config               *config.Config
	Log                  *zap.Logger
	UserHandler          *handler.UserHandler
	ProjectHandler       *handler.ProjectHandler
	ProjectModuleHandler *handler.ProjectModuleHandler
	SmartContractHandler *handler.SmartContractHandler
	ProposalHandler      *handler.ProposalHandler
	MessageHandler       *handler.MessageHandler
	MilestoneHandler     *handler.MilestoneHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	serializer.SetLogger(d.Log)
	handler.RegisterValidation()

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(telemetry.GinMiddleware(d.Config.App.Name))
		r.Use(telemetry.TraceIDMiddleware())
	}
	r.Use(middleware.Metrics())
	r.Use(middleware.ZapLogger(d.Log))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.GET("/freelancers", d.UserHandler.ListFreelancers)
			users.GET("/:id", d.UserHandler.GetUser)
			users.POST("", d.UserHandler.CreateUser)
			users.PATCH("/:id", d.UserHandler.UpdateUser)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", d.ProjectHandler.ListProjects)
			projects.POST("", d.ProjectHandler.CreateProject)
			projects.GET("/:id", d.ProjectHandler.GetProject)
			projects.PATCH("/:id", d.ProjectHandler.UpdateProject)
			projects.GET("/:id/overview", d.ProjectHandler.GetProjectOverview)

			projects.GET("/:id/modules", d.ProjectModuleHandler.ListModules)
			projects.POST("/:id/modules", d.ProjectModuleHandler.CreateModule)

			projects.GET("/:id/smart-contract", d.SmartContractHandler.GetSmartContract)
			projects.POST("/:id/smart-contract", d.SmartContractHandler.CreateSmartContract)

			projects.GET("/:id/proposals", d.ProposalHandler.ListProposals)
			projects.POST("/:id/proposals", d.ProposalHandler.CreateProposal)

			projects.GET("/:id/milestones", d.MilestoneHandler.ListMilestones)
			projects.POST("/:id/milestones", d.MilestoneHandler.CreateMilestone)
		}

		api.PATCH("/modules/:id", d.ProjectModuleHandler.UpdateModule)
		api.PATCH("/smart-contracts/:id", d.SmartContractHandler.UpdateSmartContract)
		api.PATCH("/proposals/:id", d.ProposalHandler.UpdateProposal)
		api.PATCH("/milestones/:id", d.MilestoneHandler.UpdateMilestone)

		messages := api.Group("/messages")
		{
			messages.GET("", d.MessageHandler.ListMessages)
			messages.POST("", d.MessageHandler.CreateMessage)
			messages.PATCH("/:id/read", d.MessageHandler.MarkMessageRead)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		serializer.Abort(c, http.StatusNotFound, serializer.NotFound("route not found"))
	})
	return r
}
