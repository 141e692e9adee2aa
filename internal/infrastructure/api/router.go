package api

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the storefront surface on the router. Session, catalog,
// cart, checkout and tracking are open; account routes require an
// authenticated session; admin routes additionally require staff or
// superuser.
func (h *Handler) Routes(r chi.Router) {
	r.Use(DeviceMiddleware)

	// Session lifecycle
	r.Get("/session", h.GetSession)
	r.Post("/session/refresh", h.RefreshSession)
	r.Post("/session/login", h.Login)
	r.Post("/session/logout", h.Logout)
	r.Post("/session/register", h.Register)
	r.Post("/password-reset", h.RequestPasswordReset)
	r.Post("/password-reset/{token}", h.ConfirmPasswordReset)

	// Catalog
	r.Get("/products", h.ListProducts)
	r.Get("/products/search", h.SearchProducts)
	r.Get("/products/variants/search", h.SearchVariants)
	r.Get("/products/{id}", h.GetProduct)

	// Cart and checkout
	r.Get("/cart", h.GetCart)
	r.Delete("/cart", h.ClearCart)
	r.Post("/cart/items", h.AddCartItem)
	r.Patch("/cart/items/{index}", h.UpdateCartItem)
	r.Delete("/cart/items/{index}", h.RemoveCartItem)
	r.Post("/checkout/quote", h.QuoteCheckout)
	r.Post("/checkout", h.PlaceOrder)
	r.Post("/coupons/validate", h.ValidateCoupon)

	// Visit tracking
	r.Post("/track-visit", h.TrackVisit)

	// Signed-in account area
	r.Group(func(r chi.Router) {
		r.Use(Gate(h.sessions, false, h.logger))
		r.Get("/account/profile", h.GetProfile)
		r.Get("/account/orders", h.GetUserOrders)
		r.Get("/account/coupons", h.GetUserCoupons)
	})

	// Back office
	r.Route("/admin", func(r chi.Router) {
		r.Use(Gate(h.sessions, true, h.logger))

		r.Get("/dashboard", h.GetDashboard)

		r.Post("/products", h.CreateProduct)
		r.Put("/products/{id}", h.UpdateProduct)
		r.Delete("/products/{id}", h.DeleteProduct)

		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{id}", h.GetOrder)
		r.Patch("/orders/{id}", h.UpdateOrderStatus)
		r.Delete("/orders/{id}", h.DeleteOrder)

		r.Get("/users", h.ListUsers)
		r.Get("/users/{id}", h.GetUser)
		r.Patch("/users/{id}", h.UpdateUser)
		r.Delete("/users/{id}", h.DeleteUser)
		r.Patch("/users/{id}/points", h.AdjustPoints)

		r.Get("/reports/daily", h.GetDailyReports)
		r.Get("/reports/monthly", h.GetMonthlyReports)
		r.Get("/reports/preferences", h.GetReportPrefs)
		r.Put("/reports/preferences", h.SaveReportPrefs)
		r.Get("/live-visitors", h.GetLiveVisitors)
	})
}
