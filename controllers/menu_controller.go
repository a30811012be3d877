package controllers

import (
	"net/http"
	"strconv"

	"sabores/entity"
	"sabores/pkg/apperr"
	"sabores/pkg/resp"
	"sabores/repository"
	"sabores/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct{ Svc *services.MenuService }

func NewMenuController(s *services.MenuService) *MenuController { return &MenuController{Svc: s} }

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type MenuItemRequest struct {
	Name            string        `json:"name" binding:"required,max=100"`
	Description     string        `json:"description"`
	Price           *entity.Money `json:"price" binding:"required"`
	IsAvailable     *bool         `json:"is_available"`
	IsFeatured      *bool         `json:"is_featured"`
	PreparationTime *int          `json:"preparation_time" binding:"omitempty,min=0"`
	CategoryID      uint          `json:"category_id" binding:"required"`
}

func (r *MenuItemRequest) input() services.MenuItemInput {
	return services.MenuItemInput{
		Name: r.Name, Description: r.Description, Price: *r.Price,
		IsAvailable: r.IsAvailable, IsFeatured: r.IsFeatured,
		PreparationTime: r.PreparationTime, CategoryID: r.CategoryID,
	}
}

type BulkUpdateRequest struct {
	Action string `json:"action" binding:"required,oneof=set_available set_featured"`
	IDs    []uint `json:"ids" binding:"required,min=1"`
	Value  *bool  `json:"value" binding:"required"`
}

// menuFilter อ่าน query string ของหน้าเมนู
func menuFilter(c *gin.Context) (repository.MenuFilter, error) {
	f := repository.MenuFilter{
		AvailableOnly: queryBool(c, "available"),
		FeaturedOnly:  queryBool(c, "featured"),
		Search:        c.Query("search"),
		Ordering:      c.Query("ordering"),
	}
	fields := map[string]string{}
	if v := c.Query("category"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			fields["category"] = "must be a number"
		}
		f.CategoryID = uint(id)
	}
	for _, p := range []struct {
		name string
		dst  **entity.Money
	}{{"min_price", &f.MinPrice}, {"max_price", &f.MaxPrice}} {
		v := c.Query(p.name)
		if v == "" {
			continue
		}
		m, err := entity.NewMoney(v)
		if err != nil {
			fields[p.name] = "must be a number"
			continue
		}
		*p.dst = &m
	}
	if len(fields) > 0 {
		return f, apperr.ValidationFields("invalid query", fields)
	}
	return f, nil
}

// ---------------- Public ----------------

// GET /menu/categories
func (h *MenuController) Categories(c *gin.Context) {
	cats, err := h.Svc.ListCategories(true)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cats)
}

// GET /menu/items
func (h *MenuController) Items(c *gin.Context) {
	f, err := menuFilter(c)
	if err != nil {
		resp.Error(c, err)
		return
	}
	items, err := h.Svc.ListItems(f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /menu/items/:id
func (h *MenuController) Item(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := h.Svc.GetItem(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// GET /menu/featured
func (h *MenuController) Featured(c *gin.Context) {
	items, err := h.Svc.Featured()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

// ---------------- Staff: categories ----------------

// GET /menu/admin/categories
func (h *MenuController) AdminCategories(c *gin.Context) {
	cats, err := h.Svc.ListCategories(false)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cats)
}

// POST /menu/admin/categories
func (h *MenuController) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	cat, err := h.Svc.CreateCategory(services.CategoryInput{Name: req.Name, Description: req.Description, IsActive: req.IsActive})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, cat)
}

// GET /menu/admin/categories/:id
func (h *MenuController) GetCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cat, err := h.Svc.GetCategory(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cat)
}

// PUT /menu/admin/categories/:id
func (h *MenuController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	cat, err := h.Svc.UpdateCategory(id, services.CategoryInput{Name: req.Name, Description: req.Description, IsActive: req.IsActive})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cat)
}

// DELETE /menu/admin/categories/:id
func (h *MenuController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.DeleteCategory(id); err != nil {
		resp.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------- Staff: items ----------------

// GET /menu/admin/items
func (h *MenuController) AdminItems(c *gin.Context) {
	h.Items(c)
}

// POST /menu/admin/items
func (h *MenuController) CreateItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	item, err := h.Svc.CreateItem(req.input())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, item)
}

// PUT /menu/admin/items/:id
func (h *MenuController) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	item, err := h.Svc.UpdateItem(id, req.input())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /menu/admin/items/:id
func (h *MenuController) DeleteItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.DeleteItem(id); err != nil {
		resp.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /menu/admin/items/bulk-update
func (h *MenuController) BulkUpdate(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	n, err := h.Svc.BulkUpdate(req.Action, req.IDs, *req.Value)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": n})
}
