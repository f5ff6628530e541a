package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"engineering-sync/internal/auth"
	"engineering-sync/internal/render"
	"engineering-sync/pkg/response"
)

func (srv HTTPServer) rootRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

// dashboard renders the category graph as a live page. The usecase serves
// cache tiers in precedence order (enriched, basic, live fetch), so a cold
// cache costs one upstream round trip but never an inline enrichment cycle.
// A valid manage token in the query string narrows the page to that
// recipient's subscriptions.
func (srv HTTPServer) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	categories := srv.uc.GetDashboardCategories(ctx)

	if token := c.Query("token"); token != "" && srv.repo != nil && srv.tokens != nil {
		if email, err := srv.tokens.Verify(token, auth.PurposeManage); err == nil {
			if user, uErr := srv.repo.GetOrCreateUser(ctx, email); uErr == nil {
				if subs, sErr := srv.repo.GetUserSubscriptions(ctx, user.ID); sErr == nil {
					categories = srv.uc.ResolveForUser(ctx, categories, subs)
				}
			}
		}
	}

	total := 0
	for _, cat := range categories {
		total += len(cat.Tasks)
	}

	now := time.Now()
	page, err := render.Dashboard(render.DashboardData{
		Date:        render.DateStamp(now),
		Categories:  categories,
		TotalTasks:  total,
		GeneratedAt: now.Format(time.RFC1123),
	})
	if err != nil {
		srv.l.Errorf(ctx, "dashboard render failed: %v", err)
		response.InternalError(c)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// refreshCache drops both cache tiers and rebuilds the enriched graph.
func (srv HTTPServer) refreshCache(c *gin.Context) {
	ctx := c.Request.Context()
	categories := srv.uc.Refresh(ctx)

	total := 0
	for _, cat := range categories {
		total += len(cat.Tasks)
	}
	response.OK(c, gin.H{
		"categories": len(categories),
		"tasks":      total,
	})
}
