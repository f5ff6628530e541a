package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	srv.gin.GET("/", srv.rootRedirect)
	srv.gin.GET("/dashboard", srv.dashboard)
	srv.gin.POST("/api/refresh-cache", srv.refreshCache)

	if srv.repo != nil && srv.tokens != nil {
		srv.gin.GET("/subscribe/:token", srv.subscribe)
		srv.gin.GET("/unsubscribe/:token", srv.unsubscribe)
		srv.gin.GET("/manage/:token", srv.managePage)
		srv.gin.POST("/save-subscriptions", srv.saveSubscriptions)
		srv.l.Infof(ctx, "Subscription routes registered")
	} else {
		srv.l.Infof(ctx, "Subscription store not configured, skipping subscription routes")
	}

	if srv.adminUser != "" && srv.adminPass != "" && srv.repo != nil {
		admin := srv.gin.Group("/admin", gin.BasicAuth(gin.Accounts{srv.adminUser: srv.adminPass}))
		admin.GET("/users", srv.listUsers)
		admin.DELETE("/users/:id", srv.deleteUser)
		srv.l.Infof(ctx, "Admin routes registered")
	} else {
		srv.l.Infof(ctx, "Admin credentials not configured, skipping admin routes")
	}

	return nil
}
