package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/upb/cafe-directory/app"
	"github.com/upb/cafe-directory/forms"
	"github.com/upb/cafe-directory/services"
	"github.com/upb/cafe-directory/web"
)

// ContactHandler renders the contact form and stores submissions
func ContactHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			render(deps, w, r, http.StatusOK, "contact", &web.PageData{Title: "Contact", Form: &forms.ContactForm{}})
			return
		}

		form := forms.ParseContactForm(r)
		if errs := form.Validate(); errs != nil {
			render(deps, w, r, http.StatusUnprocessableEntity, "contact", &web.PageData{Title: "Contact", Form: form, Errors: errs})
			return
		}

		_, err := deps.MessageService.Create(r.Context(), services.MessageInput{
			Name:  form.Name,
			Email: form.Email,
			Phone: form.Phone,
			Body:  form.Body,
		})
		if err != nil {
			serverError(deps, w, err)
			return
		}
		redirectWithFlash(w, r, "/contact", "success", "Thanks, your message has been sent!")
	}
}

// ListMessagesHandler renders the admin inbox
func ListMessagesHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := deps.MessageService.List(r.Context())
		if err != nil {
			serverError(deps, w, err)
			return
		}
		render(deps, w, r, http.StatusOK, "messages", &web.PageData{Title: "Messages", Data: msgs})
	}
}

// DeleteMessageHandler removes a message; missing ids still redirect
// with the success notice
func DeleteMessageHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32); err == nil {
			if err := deps.MessageService.Delete(r.Context(), uint(id)); err != nil {
				serverError(deps, w, err)
				return
			}
		}
		redirectWithFlash(w, r, "/messages", "success", "Message deleted.")
	}
}
