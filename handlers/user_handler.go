package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/upb/cafe-directory/app"
	"github.com/upb/cafe-directory/models"
	"github.com/upb/cafe-directory/services"
	"github.com/upb/cafe-directory/web"
)

// ListUsersHandler renders the admin user listing
func ListUsersHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := deps.UserService.List(r.Context())
		if err != nil {
			serverError(deps, w, err)
			return
		}
		render(deps, w, r, http.StatusOK, "users", &web.PageData{Title: "Users", Data: users})
	}
}

// ChangeRoleHandler sets a user's role from the listing form
func ChangeRoleHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PostFormValue("user_id"))
		if err != nil {
			redirectWithFlash(w, r, "/users", "error", "Unknown user.")
			return
		}

		err = deps.UserService.ChangeRole(r.Context(), id, models.UserRole(r.PostFormValue("role")))
		switch {
		case errors.Is(err, services.ErrInvalidRole):
			redirectWithFlash(w, r, "/users", "error", "Invalid role.")
		case errors.Is(err, services.ErrUserNotFound):
			redirectWithFlash(w, r, "/users", "error", "Unknown user.")
		case err != nil:
			serverError(deps, w, err)
		default:
			redirectWithFlash(w, r, "/users", "success", "Role updated.")
		}
	}
}

// DeleteUserHandler removes a user; missing ids still redirect with the
// success notice
func DeleteUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, err := uuid.Parse(chi.URLParam(r, "id")); err == nil {
			if err := deps.UserService.Delete(r.Context(), id); err != nil {
				serverError(deps, w, err)
				return
			}
		}
		redirectWithFlash(w, r, "/users", "success", "User deleted.")
	}
}
