package stubserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ramadhanarif/storefront-client/pkg/config"
	"github.com/ramadhanarif/storefront-client/pkg/enums"
	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
	"github.com/ramadhanarif/storefront-client/pkg/security"
	"github.com/ramadhanarif/storefront-client/pkg/types"
	"github.com/shopspring/decimal"
)

type ctxKey int

const ctxUser ctxKey = iota

// Server is an in-memory rendition of the storefront backend. It speaks
// the same wire format the real API does, so the client and its
// integration tests run against it unchanged.
type Server struct {
	cfg     config.StubConfig
	store   *Store
	logg    *logger.Logger
	metrics *metrics
	now     func() time.Time
}

func New(cfg config.StubConfig, store *Store, logg *logger.Logger) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Server{
		cfg:     cfg,
		store:   store,
		logg:    logg,
		metrics: newMetrics(),
		now:     time.Now,
	}, nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.metrics.middleware)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/product", s.handleProducts)
		r.Get("/product/{productId}", s.handleProductDetail)
		r.Get("/categories", s.handleCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.handleCartFetch)
			r.Post("/add", s.handleCartAdd)
			r.Patch("/{lineId}/increase", s.handleCartIncrease)
			r.Patch("/{lineId}/decrease", s.handleCartDecrease)
			r.Patch("/{lineId}/toggle-checked", s.handleCartToggle)
			r.Delete("/{lineId}", s.handleCartRemove)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.handleOrders)
			r.Post("/checkout", s.handleCheckout)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Get("/admin/all", s.handleAdminOrders)
				r.Patch("/admin/{orderId}/status", s.handleAdminOrderStatus)
			})

			r.Get("/{orderId}", s.handleOrderDetail)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Post("/product", s.handleProductCreate)
			r.Put("/product/{productId}", s.handleProductUpdate)
			r.Delete("/product/{productId}", s.handleProductDelete)

			r.Post("/categories", s.handleCategoryCreate)
			r.Put("/categories/{categoryId}", s.handleCategoryUpdate)
			r.Delete("/categories/{categoryId}", s.handleCategoryDelete)

			r.Get("/dashboard", s.handleDashboard)
		})
	})

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireAuth validates the bearer token and stashes the user record on
// the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get("Authorization"))
		if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			raw = strings.TrimSpace(raw[7:])
		}
		if raw == "" {
			writeError(r.Context(), s.logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		claims, err := parseToken(s.cfg, raw)
		if err != nil {
			writeError(r.Context(), s.logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
			return
		}
		user, ok := s.store.User(claims.Subject)
		if !ok {
			writeError(r.Context(), s.logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown user"))
			return
		}

		ctx := context.WithValue(r.Context(), ctxUser, user)
		ctx = s.logg.WithUserID(ctx, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		if user == nil || user.Role != enums.UserRoleAdmin {
			writeError(r.Context(), s.logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userFrom(ctx context.Context) *userRecord {
	user, _ := ctx.Value(ctxUser).(*userRecord)
	return user
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userJSON struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type authResponseJSON struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

func (s *Server) authResponse(w http.ResponseWriter, r *http.Request, user *userRecord, status int) {
	token, err := mintToken(s.cfg, user.ID, user.Role, s.now())
	if err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	writeJSON(w, status, authResponseJSON{
		Token: token,
		User:  userJSON{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role.String()},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	user, err := s.store.Authenticate(strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	s.authResponse(w, r, user, http.StatusOK)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || len(req.Password) < 8 {
		writeError(r.Context(), s.logg, w, pkgerrors.New(pkgerrors.CodeValidation, "username, email and a password of at least 8 characters are required"))
		return
	}

	// Self-registration never yields an admin account.
	role := enums.UserRoleCustomer

	hash, err := security.HashPassword(req.Password, security.DefaultParams())
	if err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	user, err := s.store.CreateUser(req.Username, req.Email, hash, role)
	if err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	s.authResponse(w, r, user, http.StatusCreated)
}

type variantJSON struct {
	ID         string           `json:"_id"`
	ProductID  string           `json:"product_id,omitempty"`
	Price      decimal.Decimal  `json:"price"`
	Stock      int              `json:"stock"`
	Attributes types.Attributes `json:"attributes,omitempty"`
	Thumbnail  string           `json:"thumbnail,omitempty"`
}

type productJSON struct {
	ID          string           `json:"_id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	CategoryID  string           `json:"category_id,omitempty"`
	Thumbnail   string           `json:"thumbnail,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	TotalStock  *int             `json:"total_stock,omitempty"`
	Variants    []variantJSON    `json:"variants,omitempty"`
}

func (s *Server) productJSON(product *productRecord) productJSON {
	variants := s.store.VariantsOf(product)
	out := productJSON{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		CategoryID:  product.CategoryID,
		Thumbnail:   product.Thumbnail,
	}

	totalStock := 0
	var minPrice decimal.Decimal
	for i, variant := range variants {
		totalStock += variant.Stock
		if i == 0 || variant.Price.LessThan(minPrice) {
			minPrice = variant.Price
		}
		out.Variants = append(out.Variants, variantJSON{
			ID:         variant.ID,
			ProductID:  variant.ProductID,
			Price:      variant.Price,
			Stock:      variant.Stock,
			Attributes: variant.Attributes,
			Thumbnail:  variant.Thumbnail,
		})
	}
	if len(variants) > 0 {
		out.Price = &minPrice
		out.TotalStock = &totalStock
	}
	return out
}

func (s *Server) handleProducts(w http.ResponseWriter, _ *http.Request) {
	products := s.store.Products()
	out := make([]productJSON, 0, len(products))
	for _, product := range products {
		out = append(out, s.productJSON(product))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	product, ok := s.store.Product(chi.URLParam(r, "productId"))
	if !ok {
		writeError(r.Context(), s.logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
		return
	}
	writeJSON(w, http.StatusOK, s.productJSON(product))
}

type variantInputJSON struct {
	Price      decimal.Decimal  `json:"price"`
	Stock      int              `json:"stock"`
	Attributes types.Attributes `json:"attributes"`
}

type productInputJSON struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CategoryID  string             `json:"category_id"`
	Thumbnail   string             `json:"thumbnail"`
	Variants    []variantInputJSON `json:"variants"`
}

func (p productInputJSON) specs() []variantSpec {
	specs := make([]variantSpec, 0, len(p.Variants))
	for _, v := range p.Variants {
		specs = append(specs, variantSpec{Price: v.Price, Stock: v.Stock, Attributes: v.Attributes})
	}
	return specs
}

func (p productInputJSON) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if p.CategoryID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category_id is required")
	}
	if len(p.Variants) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one variant is required")
	}
	for _, v := range p.Variants {
		if v.Stock < 0 || v.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant price and stock must be non-negative")
		}
	}
	return nil
}

func (s *Server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	var req productInputJSON
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	product, err := s.store.CreateProduct(req.Name, req.Description, req.CategoryID, req.Thumbnail, req.specs())
	if err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.productJSON(product))
}

func (s *Server) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	var req productInputJSON
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	product, err := s.store.UpdateProduct(chi.URLParam(r, "productId"), req.Name, req.Description, req.CategoryID, req.Thumbnail, req.specs())
	if err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.productJSON(product))
}

func (s *Server) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProduct(chi.URLParam(r, "productId")); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

type categoryJSON struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	categories := s.store.Categories()
	out := make([]categoryJSON, 0, len(categories))
	for _, category := range categories {
		out = append(out, categoryJSON{ID: category.ID, Name: category.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

type categoryInputJSON struct {
	Name string `json:"name"`
}

func (s *Server) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryInputJSON
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(r.Context(), s.logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category name is required"))
		return
	}
	category := s.store.CreateCategory(strings.TrimSpace(req.Name))
	writeJSON(w, http.StatusCreated, categoryJSON{ID: category.ID, Name: category.Name})
}

func (s *Server) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	var req categoryInputJSON
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(r.Context(), s.logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category name is required"))
		return
	}
	category, err := s.store.UpdateCategory(chi.URLParam(r, "categoryId"), strings.TrimSpace(req.Name))
	if err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryJSON{ID: category.ID, Name: category.Name})
}

func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCategory(chi.URLParam(r, "categoryId")); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

type productSnapshotJSON struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type variantSnapshotJSON struct {
	ID         string               `json:"_id"`
	Price      decimal.Decimal      `json:"price"`
	Stock      int                  `json:"stock"`
	Attributes types.Attributes     `json:"attributes,omitempty"`
	Thumbnail  string               `json:"thumbnail,omitempty"`
	Product    *productSnapshotJSON `json:"product_id,omitempty"`
}

type cartLineJSON struct {
	ID       string               `json:"_id"`
	Quantity int                  `json:"quantity"`
	Checked  bool                 `json:"is_checked"`
	Variant  *variantSnapshotJSON `json:"variant_id,omitempty"`
}

func (s *Server) cartLineJSON(line *cartLineRecord) cartLineJSON {
	out := cartLineJSON{ID: line.ID, Quantity: line.Quantity, Checked: line.Checked}
	variant, ok := s.store.Variant(line.VariantID)
	if !ok {
		return out
	}

	snapshot := &variantSnapshotJSON{
		ID:         variant.ID,
		Price:      variant.Price,
		Stock:      variant.Stock,
		Attributes: variant.Attributes,
		Thumbnail:  variant.Thumbnail,
	}
	if product, ok := s.store.Product(variant.ProductID); ok {
		snapshot.Product = &productSnapshotJSON{ID: product.ID, Name: product.Name, Thumbnail: product.Thumbnail}
	}
	out.Variant = snapshot
	return out
}

func (s *Server) handleCartFetch(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	lines := s.store.CartLines(user.ID)
	out := make([]cartLineJSON, 0, len(lines))
	for _, line := range lines {
		out = append(out, s.cartLineJSON(line))
	}
	writeJSON(w, http.StatusOK, out)
}

type cartAddRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	var req cartAddRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	line, err := s.store.AddCartLine(user.ID, req.VariantID, req.Quantity)
	if err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.cartLineJSON(line))
}

func (s *Server) cartMutation(w http.ResponseWriter, r *http.Request, mutate func(userID, lineID string) (*cartLineRecord, error)) {
	user := userFrom(r.Context())
	line, err := mutate(user.ID, chi.URLParam(r, "lineId"))
	if err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.cartLineJSON(line))
}

func (s *Server) handleCartIncrease(w http.ResponseWriter, r *http.Request) {
	s.cartMutation(w, r, s.store.IncreaseCartLine)
}

func (s *Server) handleCartDecrease(w http.ResponseWriter, r *http.Request) {
	s.cartMutation(w, r, s.store.DecreaseCartLine)
}

func (s *Server) handleCartToggle(w http.ResponseWriter, r *http.Request) {
	s.cartMutation(w, r, s.store.ToggleCartLine)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if err := s.store.RemoveCartLine(user.ID, chi.URLParam(r, "lineId")); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "item removed"})
}

type orderJSON struct {
	ID              string          `json:"_id"`
	OrderNumber     string          `json:"order_number"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress string          `json:"shipping_address"`
	ShippingMethod  string          `json:"shipping_method"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Total           decimal.Decimal `json:"total"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type orderItemJSON struct {
	ID                string           `json:"_id"`
	ProductName       string           `json:"product_name"`
	VariantAttributes types.Attributes `json:"variant_attributes,omitempty"`
	Price             decimal.Decimal  `json:"price"`
	Quantity          int              `json:"quantity"`
}

type orderDetailJSON struct {
	Order orderJSON       `json:"order"`
	Items []orderItemJSON `json:"items"`
}

func orderToJSON(order *orderRecord) orderJSON {
	return orderJSON{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Status:          order.Status.String(),
		PaymentStatus:   order.PaymentStatus.String(),
		PaymentMethod:   order.PaymentMethod.String(),
		ShippingAddress: order.ShippingAddress,
		ShippingMethod:  order.ShippingMethod,
		ShippingCost:    order.ShippingCost,
		Subtotal:        order.Subtotal,
		Total:           order.Total,
		CreatedAt:       order.CreatedAt,
	}
}

type checkoutRequest struct {
	ShippingAddress string          `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingMethod  string          `json:"shipping_method"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}

	if strings.TrimSpace(req.ShippingAddress) == "" {
		writeError(r.Context(), s.logg, w, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required"))
		return
	}
	method, err := enums.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		writeError(r.Context(), s.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
		return
	}
	if req.ShippingMethod == "" {
		req.ShippingMethod = "Standard"
	}

	order, err := s.store.Checkout(user.ID, strings.TrimSpace(req.ShippingAddress), method, req.ShippingMethod, req.ShippingCost, s.now())
	if err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}

	s.logg.Info(s.logg.WithOrderID(r.Context(), order.ID), "stub order created")
	writeJSON(w, http.StatusCreated, orderToJSON(order))
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	orders := s.store.OrdersOf(user.ID)
	out := make([]orderJSON, 0, len(orders))
	for _, order := range orders {
		out = append(out, orderToJSON(order))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOrderDetail(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	order, err := s.store.Order(user.ID, chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}

	items := make([]orderItemJSON, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemJSON{
			ID:                item.ID,
			ProductName:       item.ProductName,
			VariantAttributes: item.VariantAttributes,
			Price:             item.Price,
			Quantity:          item.Quantity,
		})
	}
	writeJSON(w, http.StatusOK, orderDetailJSON{Order: orderToJSON(order), Items: items})
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, _ *http.Request) {
	orders := s.store.AllOrders()
	out := make([]orderJSON, 0, len(orders))
	for _, order := range orders {
		out = append(out, orderToJSON(order))
	}
	writeJSON(w, http.StatusOK, out)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleAdminOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	status, err := enums.ParseOrderStatus(req.Status)
	if err != nil {
		writeError(r.Context(), s.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
		return
	}

	order, err := s.store.UpdateOrderStatus(chi.URLParam(r, "orderId"), status)
	if err != nil {
		writeError(r.Context(), s.logg, w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderToJSON(order))
}

type dashboardJSON struct {
	TotalProducts int             `json:"total_products"`
	TotalOrders   int             `json:"total_orders"`
	TotalUsers    int             `json:"total_users"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	products, orders, users, revenue := s.store.DashboardStats()
	writeJSON(w, http.StatusOK, dashboardJSON{
		TotalProducts: products,
		TotalOrders:   orders,
		TotalUsers:    users,
		TotalRevenue:  revenue,
	})
}
