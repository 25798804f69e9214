// README: Order and order-item handlers.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bistro/internal/http/middleware"
	"bistro/internal/modules/order"
	"bistro/internal/types"
)

type OrderHandler struct {
	order *order.Service
}

func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{order: svc}
}

type orderLineReq struct {
	Dish    string `json:"dish"`
	Comment string `json:"comment"`
}

type createOrderReq struct {
	Comment string         `json:"comment"`
	Client  string         `json:"client"`
	Dishes  []orderLineReq `json:"dishes"`
}

type orderItemResp struct {
	ID       string `json:"id"`
	Dish     string `json:"dish"`
	Status   string `json:"status"`
	Price    int64  `json:"price"`
	Employee string `json:"employee,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

type orderResp struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Price     int64           `json:"price"`
	Currency  string          `json:"currency"`
	Comment   string          `json:"comment,omitempty"`
	Client    string          `json:"client,omitempty"`
	Employee  string          `json:"employee,omitempty"`
	Items     []orderItemResp `json:"dishes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func toOrderResp(o *order.Order) orderResp {
	resp := orderResp{
		ID:        string(o.ID),
		Status:    string(o.Status),
		Price:     o.Price.Amount,
		Currency:  o.Price.Currency,
		Comment:   o.Comment,
		CreatedAt: o.CreatedAt,
	}
	if o.ClientID != nil {
		resp.Client = string(*o.ClientID)
	}
	if o.EmployeeID != nil {
		resp.Employee = string(*o.EmployeeID)
	}
	for _, it := range o.Items {
		item := orderItemResp{
			ID:      string(it.ID),
			Dish:    string(it.DishID),
			Status:  string(it.Status),
			Price:   it.Price.Amount,
			Comment: it.Comment,
		}
		if it.EmployeeID != nil {
			item.Employee = string(*it.EmployeeID)
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := order.CreateCommand{Comment: req.Comment}
	if req.Client != "" {
		id := types.ID(req.Client)
		cmd.ClientID = &id
	}
	for _, line := range req.Dishes {
		cmd.Lines = append(cmd.Lines, order.Line{
			DishID:  types.ID(line.Dish),
			Comment: line.Comment,
		})
	}
	o, err := h.order.Create(c.Request.Context(), middleware.CallerActor(c), cmd)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toOrderResp(o))
}

func (h *OrderHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}
	o, err := h.order.Get(c.Request.Context(), middleware.CallerActor(c), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toOrderResp(o))
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.order.List(c.Request.Context(), middleware.CallerActor(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]orderResp, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResp(&orders[i]))
	}
	writeJSON(c, http.StatusOK, out)
}

type updateOrderReq struct {
	Status   *string `json:"status"`
	Comment  *string `json:"comment"`
	Employee *string `json:"employee"`
	Client   *string `json:"client"`
}

func (h *OrderHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}
	var req updateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := order.UpdateCommand{OrderID: types.ID(id), Comment: req.Comment}
	if req.Status != nil {
		s := order.Status(*req.Status)
		cmd.Status = &s
	}
	if req.Employee != nil {
		e := types.ID(*req.Employee)
		cmd.EmployeeID = &e
	}
	if req.Client != nil {
		cl := types.ID(*req.Client)
		cmd.ClientID = &cl
	}
	o, err := h.order.Update(c.Request.Context(), middleware.CallerActor(c), cmd)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toOrderResp(o))
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}
	if err := h.order.Delete(c.Request.Context(), middleware.CallerActor(c), types.ID(id)); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type updateItemReq struct {
	Status  *string `json:"status"`
	Comment *string `json:"comment"`
}

type itemUpdateResp struct {
	Item       orderItemResp `json:"item"`
	OrderPrice int64         `json:"order_price"`
}

// UpdateItem advances one dish through the kitchen pipeline; the
// response carries the recomputed order total.
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing item id")
		return
	}
	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := order.ItemUpdateCommand{ItemID: types.ID(id), Comment: req.Comment}
	if req.Status != nil {
		s := order.ItemStatus(*req.Status)
		cmd.Status = &s
	}
	res, err := h.order.UpdateItem(c.Request.Context(), middleware.CallerActor(c), cmd)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	item := orderItemResp{
		ID:      string(res.Item.ID),
		Dish:    string(res.Item.DishID),
		Status:  string(res.Item.Status),
		Price:   res.Item.Price.Amount,
		Comment: res.Item.Comment,
	}
	if res.Item.EmployeeID != nil {
		item.Employee = string(*res.Item.EmployeeID)
	}
	writeJSON(c, http.StatusOK, itemUpdateResp{Item: item, OrderPrice: res.OrderTotal.Amount})
}
