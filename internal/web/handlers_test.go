package web

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebox/internal/flash"
)

func TestHome(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<h1>Recipe Box</h1>")
}

func TestList_All(t *testing.T) {
	for _, path := range []string{"/recipes", "/recipes?category=All", "/recipes?category="} {
		t.Run(path, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.get(path)
			require.Equal(t, http.StatusOK, rec.Code)

			body := rec.Body.String()
			pizza := strings.Index(body, "Classic Margherita Pizza")
			stirFry := strings.Index(body, "Vegetable Stir-Fry")
			tacos := strings.Index(body, "Spicy Chicken Tacos")
			require.True(t, pizza >= 0 && stirFry >= 0 && tacos >= 0, "all recipes listed")
			assert.Less(t, pizza, stirFry)
			assert.Less(t, stirFry, tacos)
			assert.Contains(t, body, `<option value="All" selected>All</option>`)
		})
	}
}

func TestList_Filter(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/recipes?category=Asian")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Vegetable Stir-Fry")
	assert.NotContains(t, body, "Classic Margherita Pizza")
	assert.NotContains(t, body, "Spicy Chicken Tacos")
	assert.Contains(t, body, `<option value="Asian" selected>Asian</option>`)
	// Full index is always offered for the filter control.
	assert.Contains(t, body, `<option value="Italian">Italian</option>`)
	assert.Contains(t, body, `<option value="Mexican">Mexican</option>`)
}

func TestList_FilterIsExact(t *testing.T) {
	for _, category := range []string{"asian", "Asia", "Unknown"} {
		t.Run(category, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.get("/recipes?category=" + url.QueryEscape(category))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "No recipes found.")
		})
	}
}

func TestDetail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/recipe/1")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Classic Margherita Pizza</h1>")
	assert.Contains(t, body, "<li>1 pre-made pizza dough</li>")
	assert.Contains(t, body, `<img src="/static/images/margherita_pizza.jpg"`)
}

func TestDetail_NotFoundRedirectsWithFlash(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/recipe/99")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/recipes", rec.Header().Get("Location"))
	assert.NotContains(t, rec.Body.String(), "<article")

	cookies := liveCookies(rec)
	require.Len(t, cookies, 1)

	list := env.get("/recipes", cookies...)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `<div class="flash flash-danger">Recipe not found!</div>`)

	// One-shot: the same cookie does not show it again.
	again := env.get("/recipes", cookies...)
	assert.NotContains(t, again.Body.String(), "Recipe not found!")
}

func TestDetail_OverflowingIDIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/recipe/99999999999999999999")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/recipes", rec.Header().Get("Location"))
}

func TestDetail_MalformedIDRejectedByRouter(t *testing.T) {
	for _, path := range []string{"/recipe/abc", "/recipe/-1", "/recipe/1.5", "/recipe/"} {
		t.Run(path, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.get(path)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Empty(t, liveCookies(rec), "no flash for client errors")
		})
	}
}

func TestAddForm(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/add_recipe")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<form method="post" action="/add_recipe">`)
	assert.Contains(t, body, `<input type="text" name="title" value="">`)
	assert.Contains(t, body, "<option value=\"Asian\">\n<option value=\"Italian\">\n<option value=\"Mexican\">\n")
}

func TestAddSubmit_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec := env.post("/add_recipe", validForm())
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/recipe/4", rec.Header().Get("Location"))

	created, err := env.store.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Test", created.Title)
	assert.Equal(t, "Italian", created.Category)
	assert.Equal(t, []string{"x", "y"}, created.Ingredients)
	assert.Equal(t, "do it", created.Instructions)
	assert.Nil(t, created.Image)
	assert.Equal(t, "2026-10-18", created.DateAdded)

	detail := env.get("/recipe/4", liveCookies(rec)...)
	require.Equal(t, http.StatusOK, detail.Code)
	body := detail.Body.String()
	assert.Contains(t, body, `<div class="flash flash-success">Recipe added successfully!</div>`)
	assert.Contains(t, body, "<h1>Test</h1>")
	assert.NotContains(t, body, "<img")
}

func TestAddSubmit_CleansIngredients(t *testing.T) {
	env := newTestEnv(t)

	form := validForm()
	form.Set("ingredients", "a\n\nb \n ")
	rec := env.post("/add_recipe", form)
	require.Equal(t, http.StatusFound, rec.Code)

	created, err := env.store.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, created.Ingredients)
}

func TestAddSubmit_KeepsImage(t *testing.T) {
	env := newTestEnv(t)

	form := validForm()
	form.Set("image", "lasagna.jpg")
	rec := env.post("/add_recipe", form)
	require.Equal(t, http.StatusFound, rec.Code)

	created, err := env.store.Get(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, created.Image)
	assert.Equal(t, "lasagna.jpg", *created.Image)
}

func TestAddSubmit_MissingFields(t *testing.T) {
	fields := []string{"title", "category", "ingredients", "instructions"}

	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()

			form := validForm()
			form.Set(field, "  ")
			rec := env.post("/add_recipe", form)

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, `<div class="flash flash-danger">All fields (except image) are required!</div>`)
			assert.Contains(t, body, `<form method="post" action="/add_recipe">`)

			n, err := env.store.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, n)
		})
	}
}

func TestAddSubmit_MissingTitleEchoesInput(t *testing.T) {
	env := newTestEnv(t)

	form := validForm()
	form.Set("title", "")
	form.Set("image", "pic.jpg")
	rec := env.post("/add_recipe", form)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `name="category" value="Italian"`)
	assert.Contains(t, body, `<textarea name="ingredients" rows="6">x`+"\n"+`y</textarea>`)
	assert.Contains(t, body, `<textarea name="instructions" rows="6">do it</textarea>`)
	assert.Contains(t, body, `name="image" value="pic.jpg"`)
	assert.Empty(t, liveCookies(rec), "failure notification is not carried to the next request")
}

func TestAddSubmit_EmptyBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post("/add_recipe", url.Values{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "All fields (except image) are required!")
}

func TestAddSubmit_UpdatesCategoryIndex(t *testing.T) {
	env := newTestEnv(t)

	form := validForm()
	form.Set("category", "French")
	rec := env.post("/add_recipe", form)
	require.Equal(t, http.StatusFound, rec.Code)

	categories, err := env.store.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Asian", "French", "Italian", "Mexican"}, categories)

	list := env.get("/recipes?category=French")
	assert.Contains(t, list.Body.String(), `<a href="/recipe/4">Test</a>`)
}

func TestAddSubmit_ConcurrentSubmissionsGetUniqueIDs(t *testing.T) {
	env := newTestEnv(t)

	const clients = 20
	locations := make([]string, clients)

	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := env.post("/add_recipe", validForm())
			locations[i] = rec.Header().Get("Location")
		}(i)
	}
	wg.Wait()

	ids := make([]int, 0, clients)
	for _, loc := range locations {
		id, err := strconv.Atoi(strings.TrimPrefix(loc, "/recipe/"))
		require.NoError(t, err, "location %q", loc)
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for i, id := range ids {
		assert.Equal(t, 4+i, id)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post("/recipes", url.Values{})
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStatic(t *testing.T) {
	env := newTestEnv(t)

	css := env.get("/static/style.css")
	assert.Equal(t, http.StatusOK, css.Code)
	assert.Contains(t, css.Body.String(), ".flash-danger")

	img := env.get("/static/images/margherita_pizza.jpg")
	assert.Equal(t, http.StatusNotFound, img.Code)
}

func TestList_FilterMatchesDecomposedCategory(t *testing.T) {
	env := newTestEnv(t)

	form := validForm()
	form.Set("title", "Croissant")
	form.Set("category", "Caf\u00e9")
	require.Equal(t, http.StatusFound, env.post("/add_recipe", form).Code)

	rec := env.get("/recipes?category=" + url.QueryEscape("Cafe\u0301"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Croissant")
	assert.NotContains(t, body, "Classic Margherita Pizza")
}

func TestRender_FailureKeepsPendingFlash(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/recipe/99")
	require.Equal(t, http.StatusFound, rec.Code)
	cookies := liveCookies(rec)
	require.Len(t, cookies, 1)

	// listPage has no Recipe field, so the detail view fails to execute.
	views := env.srv.views
	broken := &Renderer{pages: map[string]*template.Template{viewList: views.pages[viewDetail]}}
	env.srv.views = broken

	failed := env.get("/recipes", cookies...)
	require.Equal(t, http.StatusInternalServerError, failed.Code)
	for _, c := range failed.Result().Cookies() {
		assert.NotEqual(t, flash.CookieName, c.Name)
	}
	assert.Equal(t, 1, env.flashes.Pending())

	env.srv.views = views
	list := env.get("/recipes", cookies...)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `<div class="flash flash-danger">Recipe not found!</div>`)
	assert.Equal(t, 0, env.flashes.Pending())
}
