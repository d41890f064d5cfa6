package handlers

import (
	"net/http"

	"github.com/upb/cafe-directory/app"
	"github.com/upb/cafe-directory/web"
)

// HomeHandler renders the landing page
func HomeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(deps, w, r, http.StatusOK, "index", &web.PageData{Title: "Home"})
	}
}
