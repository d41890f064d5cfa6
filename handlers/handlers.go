package handlers

import (
	"net/http"

	"github.com/upb/cafe-directory/app"
	"github.com/upb/cafe-directory/middleware"
	"github.com/upb/cafe-directory/web"
	"go.uber.org/zap"
)

// render writes an HTML page, filling in the identity-derived nav state
// and any pending flash notice.
func render(deps *app.Dependencies, w http.ResponseWriter, r *http.Request, status int, page string, data *web.PageData) {
	if data == nil {
		data = &web.PageData{}
	}
	identity := middleware.GetIdentity(r.Context())
	data.Authenticated = identity.Authenticated()
	data.IsAdmin = identity.Provides(middleware.NeedAdmin)
	if data.Flash == nil {
		data.Flash = popFlash(w, r)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := deps.Renderer.Render(w, page, data); err != nil {
		deps.Logger.Error("template render failed", zap.String("page", page), zap.Error(err))
	}
}

// serverError logs the failure and responds with a generic 500
func serverError(deps *app.Dependencies, w http.ResponseWriter, err error) {
	deps.Logger.Error("request failed", zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// redirectWithFlash sets a one-shot notice and redirects
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, category, message string) {
	setFlash(w, category, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
