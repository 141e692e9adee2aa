package api

import (
	"net/http"

	"mate-storefront-layer/internal/domain"
)

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

type adjustPointsRequest struct {
	Points int `json:"points"`
}

// GetDashboard returns the aggregated back-office snapshot. Individual
// fetch failures degrade to empty sections rather than failing the call.
// @Summary Dashboard snapshot
// @Tags admin
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Router /admin/dashboard [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	respondJSON(w, http.StatusOK, h.reports.Dashboard(ctx, creds))
}

// Products

// CreateProduct adds a product to the catalog.
// @Summary Create product
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} domain.Product
// @Router /admin/products [post]
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := decodeJSON(r, &product); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	created, err := h.catalog.Create(ctx, creds, &product)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateProduct replaces a product.
// @Summary Update product
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} domain.Product
// @Router /admin/products/{id} [put]
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid product id")
		return
	}
	var product domain.Product
	if err := decodeJSON(r, &product); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	product.ID = id

	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	updated, err := h.catalog.Update(ctx, creds, &product)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteProduct removes a product.
// @Summary Delete product
// @Tags admin
// @Success 204
// @Router /admin/products/{id} [delete]
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid product id")
		return
	}
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	if err := h.catalog.Delete(ctx, creds, id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Orders

// ListOrders returns all orders.
// @Summary List orders
// @Tags admin
// @Produce json
// @Success 200 {array} domain.Order
// @Router /admin/orders [get]
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	orders, err := h.admin.ListOrders(ctx, creds)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// GetOrder returns one order.
// @Summary Get order
// @Tags admin
// @Produce json
// @Success 200 {object} domain.Order
// @Router /admin/orders/{id} [get]
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid order id")
		return
	}
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	order, err := h.admin.GetOrder(ctx, creds, id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus moves an order between pending, delivered and
// cancelled.
// @Summary Update order status
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} domain.Order
// @Failure 400 {object} errorBody
// @Router /admin/orders/{id} [patch]
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid order id")
		return
	}
	var req updateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	order, err := h.admin.UpdateOrderStatus(ctx, creds, id, req.Status)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// DeleteOrder removes an order.
// @Summary Delete order
// @Tags admin
// @Success 204
// @Router /admin/orders/{id} [delete]
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid order id")
		return
	}
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	if err := h.admin.DeleteOrder(ctx, creds, id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Users

// ListUsers returns all users, with ?q= switching to a search.
// @Summary List or search users
// @Tags admin
// @Produce json
// @Success 200 {array} domain.User
// @Router /admin/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))

	var (
		users []domain.User
		err   error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		users, err = h.admin.SearchUsers(ctx, creds, q)
	} else {
		users, err = h.admin.ListUsers(ctx, creds)
	}
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GetUser returns one user account.
// @Summary Get user
// @Tags admin
// @Produce json
// @Success 200 {object} domain.User
// @Router /admin/users/{id} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid user id")
		return
	}
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	user, err := h.admin.GetUser(ctx, creds, id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateUser applies a partial update to a user.
// @Summary Update user
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} domain.User
// @Router /admin/users/{id} [patch]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid user id")
		return
	}
	var update domain.UserUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	user, err := h.admin.UpdateUser(ctx, creds, id, update)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DeleteUser removes a user account.
// @Summary Delete user
// @Tags admin
// @Success 204
// @Router /admin/users/{id} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid user id")
		return
	}
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	if err := h.admin.DeleteUser(ctx, creds, id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdjustPoints sets a user's points balance.
// @Summary Set user points
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} domain.User
// @Failure 400 {object} errorBody
// @Router /admin/users/{id}/points [patch]
func (h *Handler) AdjustPoints(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid user id")
		return
	}
	var req adjustPointsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	user, err := h.admin.AdjustPoints(ctx, creds, id, req.Points)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Reports

// GetDailyReports returns daily report rows, optionally for ?date=.
// @Summary Daily reports
// @Tags admin
// @Produce json
// @Success 200 {array} domain.Report
// @Router /admin/reports/daily [get]
func (h *Handler) GetDailyReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	reports, err := h.reports.Daily(ctx, creds, r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

// GetMonthlyReports returns monthly report rows for ?year=&month=.
// @Summary Monthly reports
// @Tags admin
// @Produce json
// @Success 200 {array} domain.Report
// @Router /admin/reports/monthly [get]
func (h *Handler) GetMonthlyReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	q := r.URL.Query()
	reports, err := h.reports.Monthly(ctx, creds, q.Get("year"), q.Get("month"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

// GetLiveVisitors returns the current visitor count.
// @Summary Live visitors
// @Tags admin
// @Produce json
// @Success 200 {object} domain.VisitorStats
// @Router /admin/live-visitors [get]
func (h *Handler) GetLiveVisitors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	stats, err := h.reports.LiveVisitors(ctx, creds)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetReportPrefs returns the device's stored report filters.
// @Summary Get report preferences
// @Tags admin
// @Produce json
// @Success 200 {object} domain.ReportPrefs
// @Router /admin/reports/preferences [get]
func (h *Handler) GetReportPrefs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	prefs, err := h.reports.Preferences(ctx, domain.DeviceIDFromContext(ctx))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

// SaveReportPrefs stores the device's report filters.
// @Summary Save report preferences
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} domain.ReportPrefs
// @Router /admin/reports/preferences [put]
func (h *Handler) SaveReportPrefs(w http.ResponseWriter, r *http.Request) {
	var prefs domain.ReportPrefs
	if err := decodeJSON(r, &prefs); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	ctx := r.Context()
	if err := h.reports.SavePreferences(ctx, domain.DeviceIDFromContext(ctx), &prefs); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}
