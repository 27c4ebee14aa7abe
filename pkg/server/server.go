package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"droscher.com/BrewJournal/pkg/repository"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

type Server struct {
	beans     repository.BeanRepository
	grinds    repository.GrindRepository
	equipment repository.EquipmentRepository
	sessions  repository.SessionRepository
	logger    *zap.Logger
}

func NewServer(beans repository.BeanRepository, grinds repository.GrindRepository, equipment repository.EquipmentRepository, sessions repository.SessionRepository, logger *zap.Logger) *Server {
	return &Server{beans: beans, grinds: grinds, equipment: equipment, sessions: sessions, logger: logger}
}

// NewRouter wires the full repository into a ready-to-serve engine.
func NewRouter(repo *repository.Repository, logger *zap.Logger) *gin.Engine {
	server := NewServer(repo, repo, repo, repo, logger)

	return server.Router()
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/health", s.health)

	beans := router.Group("/coffeebeans")
	beans.GET("", s.listBeans)
	beans.POST("", s.createBean)
	beans.GET("/recent", s.recentBeans)
	beans.GET("/most-used", s.mostUsedBeans)
	beans.GET("/:id", s.getBean)
	beans.PUT("/:id", s.updateBean)
	beans.DELETE("/:id", s.deleteBean)

	grinds := router.Group("/grindsettings")
	grinds.GET("", s.listGrindSettings)
	grinds.POST("", s.createGrindSetting)
	grinds.GET("/recent", s.recentGrindSettings)
	grinds.GET("/most-used", s.mostUsedGrindSettings)
	grinds.GET("/grinder-types", s.grinderTypes)
	grinds.GET("/:id", s.getGrindSetting)
	grinds.PUT("/:id", s.updateGrindSetting)
	grinds.DELETE("/:id", s.deleteGrindSetting)

	equipment := router.Group("/equipment")
	equipment.GET("", s.listEquipment)
	equipment.POST("", s.createEquipment)
	equipment.GET("/most-used", s.mostUsedEquipment)
	equipment.GET("/vendors", s.equipmentVendors)
	equipment.GET("/models", s.equipmentModels)
	equipment.GET("/:id", s.getEquipment)
	equipment.PUT("/:id", s.updateEquipment)
	equipment.DELETE("/:id", s.deleteEquipment)

	sessions := router.Group("/brewsessions")
	sessions.GET("", s.listSessions)
	sessions.POST("", s.createSession)
	sessions.GET("/favorites", s.favoriteSessions)
	sessions.GET("/recent", s.recentSessions)
	sessions.GET("/top-rated", s.topRatedSessions)
	sessions.GET("/:id", s.getSession)
	sessions.PUT("/:id", s.updateSession)
	sessions.DELETE("/:id", s.deleteSession)
	sessions.POST("/:id/favorite", s.setSessionFavorite)

	analytics := router.Group("/analytics")
	analytics.GET("/dashboard", s.analyticsDashboard)
	analytics.GET("/correlations", s.analyticsCorrelations)
	analytics.GET("/recommendations", s.analyticsRecommendations)
	analytics.GET("/equipment-performance", s.analyticsEquipmentPerformance)

	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Header("X-Request-ID", requestID)

		c.Next()

		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, healthResponse{Status: "healthy", Timestamp: time.Now().UTC(), Version: Version})
}
