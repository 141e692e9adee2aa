package api

import (
	"errors"
	"net/http"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/infrastructure/upstream"
)

type addCartItemRequest struct {
	ProductID int64  `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type quoteRequest struct {
	Governorate string `json:"governorate"`
	CouponCode  string `json:"coupon_code"`
}

type validateCouponRequest struct {
	Code string `json:"code"`
}

type checkoutRequest struct {
	ShippingInfo domain.ShippingInfo `json:"shipping_info"`
	CouponCode   string              `json:"coupon_code"`
}

type trackVisitRequest struct {
	PageURL string `json:"page_url"`
}

// Catalog

// ListProducts returns the product catalog.
// @Summary List products
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Product
// @Router /products [get]
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	products, err := h.catalog.List(ctx, creds)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GetProduct returns one product with its variants and images.
// @Summary Get product
// @Tags catalog
// @Produce json
// @Success 200 {object} domain.Product
// @Router /products/{id} [get]
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid product id")
		return
	}
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	product, err := h.catalog.Get(ctx, creds, id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// SearchProducts returns products matching ?q=.
// @Summary Search products
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Product
// @Router /products/search [get]
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	products, err := h.catalog.Search(ctx, creds, r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// SearchVariants returns variants matching ?q=.
// @Summary Search variants
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.ProductVariant
// @Router /products/variants/search [get]
func (h *Handler) SearchVariants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	variants, err := h.catalog.SearchVariants(ctx, creds, r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, variants)
}

// Cart

// GetCart returns the device's cart.
// @Summary Get cart
// @Tags cart
// @Produce json
// @Success 200 {object} domain.Cart
// @Router /cart [get]
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cart, err := h.carts.Get(ctx, domain.DeviceIDFromContext(ctx))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// AddCartItem merges an item into the cart, enforcing the variant's
// stock ceiling.
// @Summary Add cart item
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {object} domain.Cart
// @Failure 400 {object} errorBody
// @Router /cart/items [post]
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	deviceID := domain.DeviceIDFromContext(ctx)
	creds := h.sessions.Credentials(ctx, deviceID)

	cart, err := h.carts.Add(ctx, deviceID, creds, domain.CartItem{
		ProductID: req.ProductID,
		Color:     req.Color,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		// Backend failures keep their status; validation failures are 400s.
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			respondError(w, h.logger, err)
		} else {
			respondBadRequest(w, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// UpdateCartItem sets the quantity of the line at {index}.
// @Summary Update cart line
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {object} domain.Cart
// @Failure 400 {object} errorBody
// @Router /cart/items/{index} [patch]
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	index, err := urlParamInt(r, "index")
	if err != nil {
		respondBadRequest(w, "invalid cart line index")
		return
	}
	var req updateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	cart, err := h.carts.UpdateQuantity(ctx, domain.DeviceIDFromContext(ctx), index, req.Quantity)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// RemoveCartItem drops the line at {index}, keeping the remaining lines
// in order.
// @Summary Remove cart line
// @Tags cart
// @Produce json
// @Success 200 {object} domain.Cart
// @Failure 400 {object} errorBody
// @Router /cart/items/{index} [delete]
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	index, err := urlParamInt(r, "index")
	if err != nil {
		respondBadRequest(w, "invalid cart line index")
		return
	}
	ctx := r.Context()
	cart, err := h.carts.Remove(ctx, domain.DeviceIDFromContext(ctx), index)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// ClearCart empties the device's cart.
// @Summary Clear cart
// @Tags cart
// @Success 204
// @Router /cart [delete]
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), domain.DeviceIDFromContext(r.Context())); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Checkout

// QuoteCheckout prices the device's cart for a governorate, validating
// the coupon code first when one is supplied.
// @Summary Quote checkout
// @Tags checkout
// @Accept json
// @Produce json
// @Success 200 {object} domain.CheckoutQuote
// @Failure 400 {object} errorBody
// @Router /checkout/quote [post]
func (h *Handler) QuoteCheckout(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	deviceID := domain.DeviceIDFromContext(ctx)

	var discount float64
	if req.CouponCode != "" {
		creds := h.sessions.Credentials(ctx, deviceID)
		var err error
		discount, err = h.checkout.ValidateCoupon(ctx, creds, req.CouponCode)
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
	}

	quote, err := h.checkout.Quote(ctx, deviceID, req.Governorate, discount)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// ValidateCoupon checks a coupon code and returns the discount it is
// worth.
// @Summary Validate coupon
// @Tags checkout
// @Accept json
// @Produce json
// @Success 200 {object} map[string]float64
// @Failure 400 {object} errorBody
// @Router /coupons/validate [post]
func (h *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req validateCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	discount, err := h.checkout.ValidateCoupon(ctx, creds, req.Code)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{"discount": discount})
}

// PlaceOrder submits the device's cart as an order and clears the cart
// on success.
// @Summary Place order
// @Tags checkout
// @Accept json
// @Produce json
// @Success 201 {object} domain.Order
// @Failure 400 {object} errorBody
// @Router /checkout [post]
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	deviceID := domain.DeviceIDFromContext(ctx)
	creds := h.sessions.Credentials(ctx, deviceID)

	order, err := h.checkout.PlaceOrder(ctx, deviceID, creds, req.ShippingInfo, req.CouponCode)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// Account (requires an authenticated session)

// GetProfile returns the signed-in user's profile.
// @Summary Get profile
// @Tags account
// @Produce json
// @Success 200 {object} domain.User
// @Router /account/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	user, err := h.accounts.Profile(ctx, creds)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// GetUserOrders returns the signed-in user's orders.
// @Summary List own orders
// @Tags account
// @Produce json
// @Success 200 {array} domain.Order
// @Router /account/orders [get]
func (h *Handler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	orders, err := h.accounts.Orders(ctx, creds)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// GetUserCoupons returns the signed-in user's coupons.
// @Summary List own coupons
// @Tags account
// @Produce json
// @Success 200 {array} domain.Coupon
// @Router /account/coupons [get]
func (h *Handler) GetUserCoupons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := h.sessions.Credentials(ctx, domain.DeviceIDFromContext(ctx))
	coupons, err := h.accounts.Coupons(ctx, creds)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, coupons)
}

// TrackVisit accepts a page-view beacon. It always returns 202; the
// forward to the backend happens in the background.
// @Summary Track page visit
// @Tags tracking
// @Accept json
// @Success 202
// @Router /track-visit [post]
func (h *Handler) TrackVisit(w http.ResponseWriter, r *http.Request) {
	var req trackVisitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	h.visits.Track(req.PageURL)
	w.WriteHeader(http.StatusAccepted)
}
