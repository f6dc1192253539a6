package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souqhub/marketplace/internal/auth"
	"github.com/souqhub/marketplace/internal/logging"
	"github.com/souqhub/marketplace/internal/metrics"
	"github.com/souqhub/marketplace/internal/services/catalog"
	"github.com/souqhub/marketplace/internal/services/listings"
	"github.com/souqhub/marketplace/internal/services/stores"
	"github.com/souqhub/marketplace/internal/services/users"
)

// Handler bundles the services behind the REST surface.
type Handler struct {
	log      *logging.Logger
	authn    *auth.Service
	users    *users.Service
	stores   *stores.Service
	catalog  *catalog.Service
	listings *listings.Service
}

func NewHandler(log *logging.Logger, authn *auth.Service, usersSvc *users.Service, storesSvc *stores.Service, catalogSvc *catalog.Service, listingsSvc *listings.Service) *Handler {
	return &Handler{
		log:      log,
		authn:    authn,
		users:    usersSvc,
		stores:   storesSvc,
		catalog:  catalogSvc,
		listings: listingsSvc,
	}
}

// Router builds the gin engine with every route mounted. Read endpoints are
// public; mutations require a bearer token.
func (h *Handler) Router(allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.log), metricsMiddleware(), corsMiddleware(allowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	authed := requireAuth(h.authn, h.log)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.handleRegister)
		authGroup.POST("/login", h.handleLogin)
		authGroup.GET("/me", authed, h.handleMe)
	}

	usersGroup := api.Group("/users", authed)
	{
		usersGroup.GET("", h.handleListUsers)
		usersGroup.GET("/:id", h.handleGetUser)
		usersGroup.PUT("/:id", h.handleUpdateUser)
	}

	storesGroup := api.Group("/stores")
	{
		storesGroup.GET("", h.handleListStores)
		storesGroup.GET("/:id", h.handleGetStore)
		storesGroup.GET("/owner/:ownerId", h.handleListStoresByOwner)
		storesGroup.POST("", authed, h.handleCreateStore)
		storesGroup.PUT("/:id", authed, h.handleUpdateStore)
		storesGroup.DELETE("/:id", authed, h.handleDeleteStore)
	}

	productsGroup := api.Group("/products")
	{
		productsGroup.GET("", h.handleListProducts)
		productsGroup.GET("/:id", h.handleGetProduct)
		productsGroup.GET("/store/:storeId", h.handleListProductsByStore)
		productsGroup.POST("", authed, h.handleCreateProduct)
		productsGroup.PUT("/:id", authed, h.handleUpdateProduct)
		productsGroup.DELETE("/:id", authed, h.handleDeleteProduct)
	}

	servicesGroup := api.Group("/services")
	{
		servicesGroup.GET("", h.handleListServices)
		servicesGroup.GET("/:id", h.handleGetService)
		servicesGroup.GET("/store/:storeId", h.handleListServicesByStore)
		servicesGroup.POST("", authed, h.handleCreateService)
		servicesGroup.PUT("/:id", authed, h.handleUpdateService)
		servicesGroup.DELETE("/:id", authed, h.handleDeleteService)
	}

	jobsGroup := api.Group("/jobs")
	{
		jobsGroup.GET("", h.handleListJobs)
		jobsGroup.GET("/:id", h.handleGetJob)
		jobsGroup.GET("/store/:storeId", h.handleListJobsByStore)
		jobsGroup.POST("", authed, h.handleCreateJob)
		jobsGroup.PUT("/:id", authed, h.handleUpdateJob)
		jobsGroup.DELETE("/:id", authed, h.handleDeleteJob)
	}

	announcementsGroup := api.Group("/announcements")
	{
		announcementsGroup.GET("", h.handleListAnnouncements)
		announcementsGroup.GET("/:id", h.handleGetAnnouncement)
		announcementsGroup.GET("/store/:storeId", h.handleListAnnouncementsByStore)
		announcementsGroup.POST("", authed, h.handleCreateAnnouncement)
		announcementsGroup.PUT("/:id", authed, h.handleUpdateAnnouncement)
		announcementsGroup.DELETE("/:id", authed, h.handleDeleteAnnouncement)
	}

	return r
}
