package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/arshprem01/flower-eCommerce/internal/session"
)

type Deps struct {
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	AuthHandler    *AuthHandler
	Session        *session.Service
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.GET("/products", d.ProductHandler.GetProducts)
	v1.GET("/products/:id", d.ProductHandler.GetProduct)
	v1.GET("/categories", d.ProductHandler.GetCategories)
	v1.GET("/search", d.ProductHandler.SearchProducts)

	v1.POST("/admin/login", d.AuthHandler.Login)
	v1.POST("/admin/logout", d.AuthHandler.Logout)
	v1.GET("/admin/session", d.AuthHandler.Session)

	admin := v1.Group("/admin", RequireAdmin(d.Session, d.JWTSecret))

	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.POST("/products/reset", d.ProductHandler.ResetProducts)

	crt := v1.Group("/cart", VisitorID())

	crt.GET("", d.CartHandler.GetCart)
	crt.POST("", d.CartHandler.AddToCart)
	crt.GET("/summary", d.CartHandler.GetSummary)
	crt.PATCH("/:id", d.CartHandler.UpdateQuantity)
	crt.DELETE("/:id", d.CartHandler.RemoveFromCart)
	crt.DELETE("", d.CartHandler.ClearCart)
}
