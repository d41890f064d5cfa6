package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/upb/cafe-directory/app"
	"github.com/upb/cafe-directory/forms"
	"github.com/upb/cafe-directory/models"
	"github.com/upb/cafe-directory/services"
	"github.com/upb/cafe-directory/web"
)

// ListCafesHandler renders the directory listing
func ListCafesHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cafes, err := deps.CafeService.List(r.Context())
		if err != nil {
			serverError(deps, w, err)
			return
		}
		render(deps, w, r, http.StatusOK, "cafes", &web.PageData{
			Title: "All cafes",
			Data:  cafes,
		})
	}
}

// AddCafeHandler renders the add form and creates entries from it
func AddCafeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			renderCafeForm(deps, w, r, http.StatusOK, "add", "Add a cafe", &forms.AddCafeForm{Seats: models.SeatBuckets[0]}, nil)
			return
		}

		form := forms.ParseAddCafeForm(r)
		if errs := form.Validate(); errs != nil {
			renderCafeForm(deps, w, r, http.StatusUnprocessableEntity, "add", "Add a cafe", form, errs)
			return
		}

		_, err := deps.CafeService.Create(r.Context(), cafeInput(form))
		if errors.Is(err, services.ErrDuplicateCafeName) {
			redirectWithFlash(w, r, "/add", "error", "This cafe already exists")
			return
		}
		if err != nil {
			serverError(deps, w, err)
			return
		}
		redirectWithFlash(w, r, "/add", "success", "Cafe successfully added!")
	}
}

// EditCafeHandler renders the edit form pre-filled from the stored entry
// and applies changes from it
func EditCafeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := cafeID(r)
		if !ok {
			redirectWithFlash(w, r, "/cafes", "error", "This cafe does not exist!")
			return
		}

		if r.Method == http.MethodGet {
			cafe, err := deps.CafeService.Get(r.Context(), id)
			if errors.Is(err, services.ErrCafeNotFound) {
				redirectWithFlash(w, r, "/cafes", "error", "This cafe does not exist!")
				return
			}
			if err != nil {
				serverError(deps, w, err)
				return
			}
			renderCafeForm(deps, w, r, http.StatusOK, "edit_cafe", "Edit cafe", cafeForm(cafe), nil)
			return
		}

		form := forms.ParseAddCafeForm(r)
		if errs := form.Validate(); errs != nil {
			renderCafeForm(deps, w, r, http.StatusUnprocessableEntity, "edit_cafe", "Edit cafe", form, errs)
			return
		}

		_, err := deps.CafeService.Update(r.Context(), id, cafeInput(form))
		switch {
		case errors.Is(err, services.ErrCafeNotFound):
			redirectWithFlash(w, r, "/cafes", "error", "This cafe does not exist!")
		case errors.Is(err, services.ErrDuplicateCafeName):
			redirectWithFlash(w, r, r.URL.Path, "warning", "Oops, something's gone wrong. This cafe may already exist!")
		case err != nil:
			serverError(deps, w, err)
		default:
			redirectWithFlash(w, r, "/cafes", "success", "Cafe successfully edited!")
		}
	}
}

// DeleteCafeHandler removes an entry; missing ids still redirect with
// the success notice
func DeleteCafeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, ok := cafeID(r); ok {
			if err := deps.CafeService.Delete(r.Context(), id); err != nil {
				serverError(deps, w, err)
				return
			}
		}
		redirectWithFlash(w, r, "/cafes", "success", "Cafe successfully deleted!")
	}
}

func renderCafeForm(deps *app.Dependencies, w http.ResponseWriter, r *http.Request, status int, page, title string, form *forms.AddCafeForm, errs map[string]string) {
	render(deps, w, r, status, page, &web.PageData{
		Title:  title,
		Form:   form,
		Errors: errs,
		Data:   models.SeatBuckets,
	})
}

func cafeID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func cafeInput(f *forms.AddCafeForm) services.CafeInput {
	return services.CafeInput{
		Name:         f.Name,
		MapURL:       f.MapURL,
		ImgURL:       f.ImgURL,
		Location:     f.Location,
		Seats:        f.Seats,
		HasToilet:    f.HasToilet,
		HasWifi:      f.HasWifi,
		HasSockets:   f.HasSockets,
		CanTakeCalls: f.CanTakeCalls,
		CoffeePrice:  f.CoffeePrice,
	}
}

// cafeForm rebuilds the form values from a stored entry for the edit page
func cafeForm(cafe *models.Cafe) *forms.AddCafeForm {
	form := &forms.AddCafeForm{
		Name:         cafe.Name,
		MapURL:       cafe.MapURL,
		ImgURL:       cafe.ImgURL,
		Location:     cafe.Location,
		Seats:        cafe.Seats,
		HasToilet:    cafe.HasToilet,
		HasWifi:      cafe.HasWifi,
		HasSockets:   cafe.HasSockets,
		CanTakeCalls: cafe.CanTakeCalls,
	}
	if price, err := services.ParsePrice(cafe.CoffeePrice); err == nil {
		form.CoffeePrice = price
		form.CoffeePriceRaw = strconv.FormatFloat(price, 'f', -1, 64)
	}
	return form
}
