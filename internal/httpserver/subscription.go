package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"engineering-sync/internal/auth"
	"engineering-sync/internal/render"
	"engineering-sync/internal/subscription"
	"engineering-sync/pkg/response"
)

// subscribe provisions the recipient behind a subscribe link. A freshly
// provisioned user has zero subscriptions and therefore receives the full
// bulletin (discovery mode).
func (srv HTTPServer) subscribe(c *gin.Context) {
	ctx := c.Request.Context()
	email, err := srv.tokens.Verify(c.Param("token"), auth.PurposeSubscribe)
	if err != nil {
		response.NotFound(c, "invalid or expired link")
		return
	}
	if _, err := srv.repo.GetOrCreateUser(ctx, email); err != nil {
		srv.l.Errorf(ctx, "subscribe failed for %s: %v", email, err)
		response.InternalError(c)
		return
	}
	c.String(http.StatusOK, "You are subscribed. The next bulletin will include every stream until you pick specific ones.")
}

// unsubscribe removes the recipient entirely.
func (srv HTTPServer) unsubscribe(c *gin.Context) {
	ctx := c.Request.Context()
	email, err := srv.tokens.Verify(c.Param("token"), auth.PurposeUnsubscribe)
	if err != nil {
		response.NotFound(c, "invalid or expired link")
		return
	}
	user, err := srv.repo.GetUserByEmail(ctx, email)
	if err != nil {
		// Already gone. Unsubscribing twice is not an error.
		c.String(http.StatusOK, "You are unsubscribed.")
		return
	}
	if err := srv.repo.DeleteUser(ctx, user.ID); err != nil {
		srv.l.Errorf(ctx, "unsubscribe failed for %s: %v", email, err)
		response.InternalError(c)
		return
	}
	c.String(http.StatusOK, "You are unsubscribed.")
}

// managePage renders the checkbox form of every known category with the
// user's current subscriptions pre-checked.
func (srv HTTPServer) managePage(c *gin.Context) {
	ctx := c.Request.Context()
	token := c.Param("token")
	email, err := srv.tokens.Verify(token, auth.PurposeManage)
	if err != nil {
		response.NotFound(c, "invalid or expired link")
		return
	}

	user, err := srv.repo.GetOrCreateUser(ctx, email)
	if err != nil {
		srv.l.Errorf(ctx, "manage page load failed for %s: %v", email, err)
		response.InternalError(c)
		return
	}
	subs, err := srv.repo.GetUserSubscriptions(ctx, user.ID)
	if err != nil {
		srv.l.Errorf(ctx, "subscription load failed for %s: %v", email, err)
		response.InternalError(c)
		return
	}
	categories, err := srv.repo.ListCategories(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "category listing failed: %v", err)
		response.InternalError(c)
		return
	}

	subscribed := make(map[int]bool, len(subs))
	for _, s := range subs {
		subscribed[s.ID] = true
	}
	options := make([]render.ManageOption, 0, len(categories))
	for _, cat := range categories {
		options = append(options, render.ManageOption{
			ID:      cat.ID,
			Name:    cat.Name,
			Checked: subscribed[cat.ID],
		})
	}

	page, err := render.Manage(render.ManageData{Email: email, Token: token, Categories: options})
	if err != nil {
		srv.l.Errorf(ctx, "manage page render failed: %v", err)
		response.InternalError(c)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// saveSubscriptions replaces the user's subscription set from the manage
// form. An empty selection is valid and flips the user to discovery mode.
func (srv HTTPServer) saveSubscriptions(c *gin.Context) {
	ctx := c.Request.Context()
	email, err := srv.tokens.Verify(c.PostForm("token"), auth.PurposeManage)
	if err != nil {
		response.NotFound(c, "invalid or expired link")
		return
	}

	user, err := srv.repo.GetOrCreateUser(ctx, email)
	if err != nil {
		srv.l.Errorf(ctx, "save subscriptions failed for %s: %v", email, err)
		response.InternalError(c)
		return
	}

	ids := []int{}
	for _, raw := range c.PostFormArray("category_ids") {
		id, convErr := strconv.Atoi(raw)
		if convErr != nil {
			continue
		}
		ids = append(ids, id)
	}

	if err := srv.repo.UpdateUserSubscriptions(ctx, user.ID, ids); err != nil {
		srv.l.Errorf(ctx, "subscription update failed for %s: %v", email, err)
		response.InternalError(c)
		return
	}
	c.String(http.StatusOK, "Subscriptions saved.")
}

// listUsers returns every registered recipient with their subscriptions.
func (srv HTTPServer) listUsers(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := srv.repo.ListUsers(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "user listing failed: %v", err)
		response.InternalError(c)
		return
	}

	type userView struct {
		ID            int                        `json:"id"`
		Email         string                     `json:"email"`
		Name          string                     `json:"name"`
		Subscriptions []subscription.CategoryRef `json:"subscriptions"`
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		subs, subErr := srv.repo.GetUserSubscriptions(ctx, u.ID)
		if subErr != nil {
			subs = nil
		}
		views = append(views, userView{ID: u.ID, Email: u.Email, Name: u.Name, Subscriptions: subs})
	}
	response.OK(c, views)
}

// deleteUser removes a recipient by id.
func (srv HTTPServer) deleteUser(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := srv.repo.DeleteUser(ctx, id); err != nil {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, gin.H{"deleted": id})
}
