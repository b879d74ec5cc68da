package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/lanchonete/app/catalog"
	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/pkg/resource"
	"github.com/shashiranjanraj/lanchonete/pkg/response"
)

type MenuController struct{}

func NewMenuController() *MenuController {
	return &MenuController{}
}

// Index lists the menu, narrowed by ?category= and ?search=.
func (c *MenuController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := catalog.Filter(catalog.ListItems(), models.Category(q.Get("category")))
	items = catalog.Search(items, q.Get("search"))

	response.Success(w, resource.Collection(MenuItemResource, items).
		WithMeta(resource.Map{"count": len(items)}))
}

func (c *MenuController) Categories(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, catalog.ListCategories(catalog.ListItems()))
}

func (c *MenuController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}
	item, ok := catalog.Find(id)
	if !ok {
		response.NotFound(w)
		return
	}
	response.Success(w, resource.One(MenuItemResource, item))
}
