package application

import (
	"context"
	"sync"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/ports"

	"github.com/rs/zerolog"
)

// fakeStore stubs the backend contract with overridable functions. The
// embedded interface panics on anything a test did not set up, which is
// what we want: a call the test did not expect is a bug.
type fakeStore struct {
	ports.StoreClient

	loginFn          func(ctx context.Context, creds *domain.CredentialRecord, email, password string) (*domain.User, error)
	logoutFn         func(ctx context.Context, creds *domain.CredentialRecord) error
	registerFn       func(ctx context.Context, creds *domain.CredentialRecord, reg domain.Registration) (*domain.User, error)
	checkAuthFn      func(ctx context.Context, creds *domain.CredentialRecord) (*domain.User, error)
	refreshFn        func(ctx context.Context, creds *domain.CredentialRecord) error
	getProductFn     func(ctx context.Context, creds *domain.CredentialRecord, productID int64) (*domain.Product, error)
	listProductsFn   func(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Product, error)
	listOrdersFn     func(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Order, error)
	listUsersFn      func(ctx context.Context, creds *domain.CredentialRecord) ([]domain.User, error)
	createOrderFn    func(ctx context.Context, creds *domain.CredentialRecord, order *domain.Order) (*domain.Order, error)
	validateCouponFn func(ctx context.Context, creds *domain.CredentialRecord, code string) error
	dailyReportsFn   func(ctx context.Context, creds *domain.CredentialRecord, date string) ([]domain.Report, error)
}

func (f *fakeStore) Login(ctx context.Context, creds *domain.CredentialRecord, email, password string) (*domain.User, error) {
	return f.loginFn(ctx, creds, email, password)
}

func (f *fakeStore) Logout(ctx context.Context, creds *domain.CredentialRecord) error {
	return f.logoutFn(ctx, creds)
}

func (f *fakeStore) Register(ctx context.Context, creds *domain.CredentialRecord, reg domain.Registration) (*domain.User, error) {
	return f.registerFn(ctx, creds, reg)
}

func (f *fakeStore) CheckAuth(ctx context.Context, creds *domain.CredentialRecord) (*domain.User, error) {
	return f.checkAuthFn(ctx, creds)
}

func (f *fakeStore) RefreshToken(ctx context.Context, creds *domain.CredentialRecord) error {
	return f.refreshFn(ctx, creds)
}

func (f *fakeStore) GetProduct(ctx context.Context, creds *domain.CredentialRecord, productID int64) (*domain.Product, error) {
	return f.getProductFn(ctx, creds, productID)
}

func (f *fakeStore) ListProducts(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Product, error) {
	return f.listProductsFn(ctx, creds)
}

func (f *fakeStore) ListOrders(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Order, error) {
	return f.listOrdersFn(ctx, creds)
}

func (f *fakeStore) ListUsers(ctx context.Context, creds *domain.CredentialRecord) ([]domain.User, error) {
	return f.listUsersFn(ctx, creds)
}

func (f *fakeStore) CreateOrder(ctx context.Context, creds *domain.CredentialRecord, order *domain.Order) (*domain.Order, error) {
	return f.createOrderFn(ctx, creds, order)
}

func (f *fakeStore) ValidateCoupon(ctx context.Context, creds *domain.CredentialRecord, code string) error {
	return f.validateCouponFn(ctx, creds, code)
}

func (f *fakeStore) DailyReports(ctx context.Context, creds *domain.CredentialRecord, date string) ([]domain.Report, error) {
	return f.dailyReportsFn(ctx, creds, date)
}

// memCartRepo is an in-memory CartRepository.
type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *memCartRepo) Get(_ context.Context, deviceID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cart, ok := r.carts[deviceID]; ok {
		copied := *cart
		copied.Items = append([]domain.CartItem(nil), cart.Items...)
		return &copied, nil
	}
	return &domain.Cart{Items: []domain.CartItem{}}, nil
}

func (r *memCartRepo) Save(_ context.Context, deviceID string, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	r.carts[deviceID] = &copied
	return nil
}

func (r *memCartRepo) Clear(_ context.Context, deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, deviceID)
	return nil
}

// memSessionRepo is an in-memory SessionRepository.
type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.DeviceSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*domain.DeviceSession)}
}

func (r *memSessionRepo) Get(_ context.Context, deviceID string) (*domain.DeviceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[deviceID], nil
}

func (r *memSessionRepo) Save(_ context.Context, session *domain.DeviceSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.DeviceID] = session
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, deviceID)
	return nil
}

// memPrefRepo is an in-memory PreferenceRepository.
type memPrefRepo struct {
	mu    sync.Mutex
	prefs map[string]*domain.ReportPrefs
}

func newMemPrefRepo() *memPrefRepo {
	return &memPrefRepo{prefs: make(map[string]*domain.ReportPrefs)}
}

func (r *memPrefRepo) Get(_ context.Context, deviceID string) (*domain.ReportPrefs, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.prefs[deviceID]; ok {
		return p, nil
	}
	return &domain.ReportPrefs{Type: "daily"}, nil
}

func (r *memPrefRepo) Save(_ context.Context, deviceID string, prefs *domain.ReportPrefs) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[deviceID] = prefs
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
