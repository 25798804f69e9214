// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro/internal/http/handlers"
	"bistro/internal/http/middleware"
	"bistro/internal/infra"
	"bistro/internal/modules/catalog"
	"bistro/internal/modules/order"
	"bistro/internal/modules/reservation"
)

type RouterDeps struct {
	Order       *order.Service
	Catalog     *catalog.Service
	Reservation *reservation.Service
	Verifier    infra.TokenVerifier
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	catalogHandler := handlers.NewCatalogHandler(deps.Catalog)
	orderHandler := handlers.NewOrderHandler(deps.Order)
	reservationHandler := handlers.NewReservationHandler(deps.Reservation)

	// Catalog reads are public; everything else requires a token.
	r.GET("/api/categories", catalogHandler.ListCategories)
	r.GET("/api/dishes", catalogHandler.ListDishes)
	r.GET("/api/dishes/:id", catalogHandler.GetDish)
	r.GET("/api/restaurants", catalogHandler.ListRestaurants)

	auth := r.Group("/api", middleware.Auth(deps.Verifier))
	{
		auth.POST("/orders", orderHandler.Create)
		auth.GET("/orders", orderHandler.List)
		auth.GET("/orders/:id", orderHandler.Get)
		auth.PATCH("/orders/:id", orderHandler.Update)
		auth.DELETE("/orders/:id", orderHandler.Delete)
		auth.PATCH("/order-items/:id", orderHandler.UpdateItem)

		auth.POST("/table-assignments", reservationHandler.Create)
		auth.GET("/table-assignments", reservationHandler.List)
		auth.GET("/table-assignments/:id", reservationHandler.Get)

		auth.POST("/categories", catalogHandler.CreateCategory)
		auth.POST("/dishes", catalogHandler.CreateDish)
		auth.POST("/restaurants", catalogHandler.CreateRestaurant)
		auth.POST("/stop-list", catalogHandler.AddStopList)
		auth.DELETE("/stop-list", catalogHandler.RemoveStopList)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
