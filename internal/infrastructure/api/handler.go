package api

import (
	"net/http"
	"strconv"

	"mate-storefront-layer/internal/application"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler carries the wired application services and exposes the HTTP
// surface of the layer.
type Handler struct {
	sessions *application.SessionService
	carts    *application.CartService
	checkout *application.CheckoutService
	catalog  *application.CatalogService
	accounts *application.AccountService
	admin    *application.AdminService
	reports  *application.ReportService
	visits   *application.VisitService
	logger   zerolog.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(
	sessions *application.SessionService,
	carts *application.CartService,
	checkout *application.CheckoutService,
	catalog *application.CatalogService,
	accounts *application.AccountService,
	admin *application.AdminService,
	reports *application.ReportService,
	visits *application.VisitService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		sessions: sessions,
		carts:    carts,
		checkout: checkout,
		catalog:  catalog,
		accounts: accounts,
		admin:    admin,
		reports:  reports,
		visits:   visits,
		logger:   logger,
	}
}

func urlParamInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func urlParamInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}
