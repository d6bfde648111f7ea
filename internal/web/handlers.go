package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/roach88/recipebox/internal/flash"
	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/store"
)

// AllCategories is the list filter value meaning "no filter".
const AllCategories = "All"

// User-facing notifications.
const (
	MsgNotFound      = "Recipe not found!"
	MsgMissingFields = "All fields (except image) are required!"
	MsgAdded         = "Recipe added successfully!"
)

const maxFormBytes = 1 << 20

type homePage struct {
	Page
}

type listPage struct {
	Page
	Recipes          []recipe.Recipe
	Categories       []string
	SelectedCategory string
}

// AllSelected reports whether the list is unfiltered.
func (p *listPage) AllSelected() bool {
	return p.SelectedCategory == "" || p.SelectedCategory == AllCategories
}

type detailPage struct {
	Page
	Recipe recipe.Recipe
}

type addPage struct {
	Page
	recipe.Submission
	Categories []string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, viewHome, &homePage{})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	selected := r.URL.Query().Get("category")

	var (
		recipes []recipe.Recipe
		err     error
	)
	if selected == "" || selected == AllCategories {
		recipes, err = s.recipes.List(ctx)
	} else {
		recipes, err = s.recipes.ListByCategory(ctx, recipe.Normalize(selected))
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	categories, err := s.recipes.Categories(ctx)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, viewList, &listPage{
		Recipes:          recipes,
		Categories:       categories,
		SelectedCategory: selected,
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	// The route only matches digits; a parse failure means int64 overflow,
	// which can never be a stored id.
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.notFound(w, r)
		return
	}

	rec, err := s.recipes.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, viewDetail, &detailPage{Recipe: rec})
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	categories, err := s.recipes.Categories(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, viewAdd, &addPage{Categories: categories})
}

func (s *Server) handleAddSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	sub := recipe.SubmissionFromForm(r.PostForm)

	if verr := sub.Validate(); verr != nil {
		categories, err := s.recipes.Categories(ctx)
		if err != nil {
			s.internalError(w, r, err)
			return
		}
		s.log.Debug("rejected recipe submission", "error", verr)
		s.render(w, r, http.StatusOK, viewAdd, &addPage{
			Submission: sub,
			Categories: categories,
		}, flash.NewDanger(MsgMissingFields))
		return
	}

	created, err := s.recipes.Create(ctx, sub.Recipe(s.clock))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.log.Info("recipe added", "id", created.ID, "title", created.Title, "category", created.Category)

	s.flashes.Add(w, r, flash.NewSuccess(MsgAdded))
	http.Redirect(w, r, "/recipe/"+strconv.FormatInt(created.ID, 10), http.StatusFound)
}

// notFound sends the client back to the list with a notification.
func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.flashes.Add(w, r, flash.NewDanger(MsgNotFound))
	http.Redirect(w, r, "/recipes", http.StatusFound)
}

// render shows pending flashes plus extra ones meant for this response only.
// Pending flashes are consumed only once the view has executed, so a failed
// render leaves them for the next page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, view string, data pageData, extra ...flash.Message) {
	msgs := append(s.flashes.Peek(r), extra...)
	data.setFlashes(msgs)

	page, err := s.views.execute(view, data)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.flashes.Pop(w, r)
	if err := writePage(w, status, page); err != nil {
		s.log.Debug("write response", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
