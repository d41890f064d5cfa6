package handlers

import (
	"errors"
	"net/http"

	"github.com/upb/cafe-directory/app"
	"github.com/upb/cafe-directory/forms"
	"github.com/upb/cafe-directory/middleware"
	"github.com/upb/cafe-directory/models"
	"github.com/upb/cafe-directory/services"
	"github.com/upb/cafe-directory/web"
)

// RegisterHandler renders the registration form and creates accounts.
// A successful registration establishes a session immediately.
func RegisterHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			render(deps, w, r, http.StatusOK, "register", &web.PageData{Title: "Register", Form: &forms.RegisterForm{}})
			return
		}

		form := forms.ParseRegisterForm(r)
		if errs := form.Validate(); errs != nil {
			render(deps, w, r, http.StatusUnprocessableEntity, "register", &web.PageData{Title: "Register", Form: form, Errors: errs})
			return
		}

		user, err := deps.AuthService.Register(r.Context(), form.Email, form.Password)
		if errors.Is(err, services.ErrDuplicateEmail) {
			render(deps, w, r, http.StatusUnprocessableEntity, "register", &web.PageData{
				Title:  "Register",
				Form:   form,
				Errors: map[string]string{"email": "This email is already registered"},
			})
			return
		}
		if err != nil {
			serverError(deps, w, err)
			return
		}

		if err := establishSession(deps, w, r, user); err != nil {
			serverError(deps, w, err)
			return
		}
		redirectWithFlash(w, r, "/", "success", "Welcome! Your account has been created.")
	}
}

// LoginHandler renders the login form and authenticates against it
func LoginHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			render(deps, w, r, http.StatusOK, "login", &web.PageData{Title: "Log in", Form: &forms.LoginForm{}})
			return
		}

		form := forms.ParseLoginForm(r)
		if errs := form.Validate(); errs != nil {
			render(deps, w, r, http.StatusUnprocessableEntity, "login", &web.PageData{Title: "Log in", Form: form, Errors: errs})
			return
		}

		user, err := deps.AuthService.Login(r.Context(), form.Email, form.Password)
		if errors.Is(err, services.ErrInvalidCredentials) {
			render(deps, w, r, http.StatusUnauthorized, "login", &web.PageData{
				Title: "Log in",
				Form:  form,
				Flash: &web.Flash{Category: "error", Message: "Email or password is incorrect"},
			})
			return
		}
		if err != nil {
			serverError(deps, w, err)
			return
		}

		if err := establishSession(deps, w, r, user); err != nil {
			serverError(deps, w, err)
			return
		}
		redirectWithFlash(w, r, "/", "success", "Logged in successfully!")
	}
}

// LogoutHandler revokes the current session and clears the cookie
func LogoutHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
			if err := deps.AuthService.Logout(r.Context(), cookie.Value); err != nil {
				serverError(deps, w, err)
				return
			}
		}
		clearSessionCookie(w)
		redirectWithFlash(w, r, "/", "success", "You have been logged out.")
	}
}

func establishSession(deps *app.Dependencies, w http.ResponseWriter, r *http.Request, user *models.User) error {
	token, err := deps.AuthService.IssueSession(r.Context(), user)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
