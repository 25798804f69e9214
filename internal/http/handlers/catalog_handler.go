// README: Catalog handlers: public reads, manager-only mutations.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro/internal/http/middleware"
	"bistro/internal/modules/catalog"
	"bistro/internal/types"
)

type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

type dishResp struct {
	ID               string `json:"id"`
	Category         string `json:"category"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	Compound         string `json:"compound"`
	WeightGrams      int64  `json:"weight_grams"`
	Price            int64  `json:"price"`
	Currency         string `json:"currency"`
}

func toDishResp(d *catalog.Dish) dishResp {
	return dishResp{
		ID:               string(d.ID),
		Category:         string(d.CategoryID),
		Name:             d.Name,
		Description:      d.Description,
		ShortDescription: d.ShortDescription,
		Compound:         d.Compound,
		WeightGrams:      d.WeightGrams,
		Price:            d.Price.Amount,
		Currency:         d.Price.Currency,
	}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]gin.H, 0, len(cats))
	for _, cat := range cats {
		out = append(out, gin.H{"id": cat.ID, "name": cat.Name})
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *CatalogHandler) ListDishes(c *gin.Context) {
	dishes, err := h.catalog.ListDishes(c.Request.Context(), types.ID(c.Query("category")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]dishResp, 0, len(dishes))
	for i := range dishes {
		out = append(out, toDishResp(&dishes[i]))
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *CatalogHandler) GetDish(c *gin.Context) {
	d, err := h.catalog.GetDish(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toDishResp(d))
}

func (h *CatalogHandler) ListRestaurants(c *gin.Context) {
	rs, err := h.catalog.ListRestaurants(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]gin.H, 0, len(rs))
	for _, r := range rs {
		out = append(out, gin.H{"id": r.ID, "address": r.Address})
	}
	writeJSON(c, http.StatusOK, out)
}

// requireManager guards catalog mutations.
func requireManager(c *gin.Context) bool {
	if middleware.CallerActor(c).Role != types.RoleManager {
		writeError(c, http.StatusForbidden, "manager role required")
		return false
	}
	return true
}

type createDishReq struct {
	Category         string `json:"category"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	Compound         string `json:"compound"`
	WeightGrams      int64  `json:"weight_grams"`
	Price            int64  `json:"price"`
}

func (h *CatalogHandler) CreateDish(c *gin.Context) {
	if !requireManager(c) {
		return
	}
	var req createDishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	d, err := h.catalog.CreateDish(c.Request.Context(), catalog.CreateDishCommand{
		CategoryID:       types.ID(req.Category),
		Name:             req.Name,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Compound:         req.Compound,
		WeightGrams:      req.WeightGrams,
		PriceAmount:      req.Price,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toDishResp(d))
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	if !requireManager(c) {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"id": cat.ID, "name": cat.Name})
}

func (h *CatalogHandler) CreateRestaurant(c *gin.Context) {
	if !requireManager(c) {
		return
	}
	var req struct {
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r, err := h.catalog.CreateRestaurant(c.Request.Context(), req.Address)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"id": r.ID, "address": r.Address})
}

type stopListReq struct {
	Dish       string `json:"dish"`
	Restaurant string `json:"restaurant"`
}

func (h *CatalogHandler) AddStopList(c *gin.Context) {
	if !requireManager(c) {
		return
	}
	var req stopListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	e, err := h.catalog.AddStopList(c.Request.Context(), types.ID(req.Dish), types.ID(req.Restaurant))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"id": e.ID, "dish": e.DishID, "restaurant": e.RestaurantID})
}

func (h *CatalogHandler) RemoveStopList(c *gin.Context) {
	if !requireManager(c) {
		return
	}
	var req stopListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.catalog.RemoveStopList(c.Request.Context(), types.ID(req.Dish), types.ID(req.Restaurant)); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
