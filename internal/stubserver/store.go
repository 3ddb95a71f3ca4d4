package stubserver

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ramadhanarif/storefront-client/pkg/enums"
	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/security"
	"github.com/ramadhanarif/storefront-client/pkg/types"
	"github.com/shopspring/decimal"
)

type userRecord struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         enums.UserRole
}

type variantRecord struct {
	ID         string
	ProductID  string
	Price      decimal.Decimal
	Stock      int
	Attributes types.Attributes
	Thumbnail  string
}

type productRecord struct {
	ID          string
	Name        string
	Description string
	CategoryID  string
	Thumbnail   string
	VariantIDs  []string
}

type categoryRecord struct {
	ID   string
	Name string
}

type cartLineRecord struct {
	ID        string
	UserID    string
	VariantID string
	Quantity  int
	Checked   bool
	AddedAt   time.Time
}

type orderItemRecord struct {
	ID                string
	ProductName       string
	VariantAttributes types.Attributes
	Price             decimal.Decimal
	Quantity          int
}

type orderRecord struct {
	ID              string
	UserID          string
	OrderNumber     string
	Status          enums.OrderStatus
	PaymentStatus   enums.PaymentStatus
	PaymentMethod   enums.PaymentMethod
	ShippingAddress string
	ShippingMethod  string
	ShippingCost    decimal.Decimal
	Subtotal        decimal.Decimal
	Total           decimal.Decimal
	CreatedAt       time.Time
	Items           []orderItemRecord
}

// Store is the in-memory state behind the stub backend. Everything lives
// under one mutex; the stub exists for local development and integration
// tests, not for load.
type Store struct {
	mu         sync.Mutex
	users      map[string]*userRecord
	products   map[string]*productRecord
	variants   map[string]*variantRecord
	categories map[string]*categoryRecord
	cartLines  map[string]*cartLineRecord
	orders     map[string]*orderRecord
	orderSeq   int
}

func NewStore() *Store {
	return &Store{
		users:      map[string]*userRecord{},
		products:   map[string]*productRecord{},
		variants:   map[string]*variantRecord{},
		categories: map[string]*categoryRecord{},
		cartLines:  map[string]*cartLineRecord{},
		orders:     map[string]*orderRecord{},
	}
}

// SeedDemo loads a small catalog plus one admin and one customer account,
// both with password "rahasia123".
func (s *Store) SeedDemo() error {
	hash, err := security.HashPassword("rahasia123", security.DefaultParams())
	if err != nil {
		return fmt.Errorf("seed password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	admin := &userRecord{ID: uuid.NewString(), Username: "admin", Email: "admin@example.com", PasswordHash: hash, Role: enums.UserRoleAdmin}
	customer := &userRecord{ID: uuid.NewString(), Username: "budi", Email: "budi@example.com", PasswordHash: hash, Role: enums.UserRoleCustomer}
	s.users[admin.ID] = admin
	s.users[customer.ID] = customer

	apparel := &categoryRecord{ID: uuid.NewString(), Name: "Apparel"}
	s.categories[apparel.ID] = apparel

	shirt := &productRecord{
		ID:          uuid.NewString(),
		Name:        "Kaos Polos",
		Description: "Plain cotton tee",
		CategoryID:  apparel.ID,
		Thumbnail:   "/uploads/kaos-polos.jpg",
	}
	for _, size := range []string{"S", "M", "L"} {
		variant := &variantRecord{
			ID:         uuid.NewString(),
			ProductID:  shirt.ID,
			Price:      decimal.NewFromInt(55000),
			Stock:      10,
			Attributes: types.Attributes{"size": size},
		}
		s.variants[variant.ID] = variant
		shirt.VariantIDs = append(shirt.VariantIDs, variant.ID)
	}
	s.products[shirt.ID] = shirt
	return nil
}

func (s *Store) findUserByEmail(email string) (*userRecord, bool) {
	for _, user := range s.users {
		if user.Email == email {
			return user, true
		}
	}
	return nil, false
}

func (s *Store) CreateUser(username, email, passwordHash string, role enums.UserRole) (*userRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.findUserByEmail(email); exists {
		return nil, pkgerrors.New(pkgerrors.CodeRejected, "email already registered")
	}
	user := &userRecord{ID: uuid.NewString(), Username: username, Email: email, PasswordHash: passwordHash, Role: role}
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) Authenticate(email, password string) (*userRecord, error) {
	s.mu.Lock()
	user, ok := s.findUserByEmail(email)
	s.mu.Unlock()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	match, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	return user, nil
}

func (s *Store) User(id string) (*userRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	return user, ok
}

func (s *Store) Products() []*productRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*productRecord, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Store) Product(id string) (*productRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

func (s *Store) Variant(id string) (*variantRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.variants[id]
	return v, ok
}

func (s *Store) VariantsOf(product *productRecord) []*variantRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*variantRecord, 0, len(product.VariantIDs))
	for _, id := range product.VariantIDs {
		if v, ok := s.variants[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

type variantSpec struct {
	Price      decimal.Decimal
	Stock      int
	Attributes types.Attributes
}

func (s *Store) CreateProduct(name, description, categoryID, thumbnail string, specs []variantSpec) (*productRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[categoryID]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	product := &productRecord{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CategoryID:  categoryID,
		Thumbnail:   thumbnail,
	}
	for _, spec := range specs {
		variant := &variantRecord{
			ID:         uuid.NewString(),
			ProductID:  product.ID,
			Price:      spec.Price,
			Stock:      spec.Stock,
			Attributes: spec.Attributes,
		}
		s.variants[variant.ID] = variant
		product.VariantIDs = append(product.VariantIDs, variant.ID)
	}
	s.products[product.ID] = product
	return product, nil
}

func (s *Store) UpdateProduct(id, name, description, categoryID, thumbnail string, specs []variantSpec) (*productRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if _, ok := s.categories[categoryID]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	for _, variantID := range product.VariantIDs {
		delete(s.variants, variantID)
	}
	product.Name = name
	product.Description = description
	product.CategoryID = categoryID
	product.Thumbnail = thumbnail
	product.VariantIDs = nil
	for _, spec := range specs {
		variant := &variantRecord{
			ID:         uuid.NewString(),
			ProductID:  product.ID,
			Price:      spec.Price,
			Stock:      spec.Stock,
			Attributes: spec.Attributes,
		}
		s.variants[variant.ID] = variant
		product.VariantIDs = append(product.VariantIDs, variant.ID)
	}
	return product, nil
}

func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	for _, variantID := range product.VariantIDs {
		delete(s.variants, variantID)
	}
	delete(s.products, id)
	return nil
}

func (s *Store) Categories() []*categoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*categoryRecord, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Store) CreateCategory(name string) *categoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	category := &categoryRecord{ID: uuid.NewString(), Name: name}
	s.categories[category.ID] = category
	return category
}

func (s *Store) UpdateCategory(id, name string) (*categoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	category.Name = name
	return category, nil
}

func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	delete(s.categories, id)
	return nil
}

// CartLines returns a user's lines in insertion order. Duplicate lines for
// the same variant are returned as-is; merging is the client's job.
func (s *Store) CartLines(userID string) []*cartLineRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*cartLineRecord, 0)
	for _, line := range s.cartLines {
		if line.UserID == userID {
			out = append(out, line)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt.Before(out[j].AddedAt) })
	return out
}

func (s *Store) AddCartLine(userID, variantID string, quantity int) (*cartLineRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	variant, ok := s.variants[variantID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if quantity > variant.Stock {
		return nil, pkgerrors.New(pkgerrors.CodeRejected, "insufficient stock")
	}

	line := &cartLineRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		VariantID: variantID,
		Quantity:  quantity,
		Checked:   true,
		AddedAt:   time.Now(),
	}
	s.cartLines[line.ID] = line
	return line, nil
}

func (s *Store) cartLineFor(userID, lineID string) (*cartLineRecord, error) {
	line, ok := s.cartLines[lineID]
	if !ok || line.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return line, nil
}

func (s *Store) IncreaseCartLine(userID, lineID string) (*cartLineRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.cartLineFor(userID, lineID)
	if err != nil {
		return nil, err
	}
	variant, ok := s.variants[line.VariantID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant no longer exists")
	}
	if line.Quantity >= variant.Stock {
		return nil, pkgerrors.New(pkgerrors.CodeRejected, "insufficient stock")
	}
	line.Quantity++
	return line, nil
}

func (s *Store) DecreaseCartLine(userID, lineID string) (*cartLineRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.cartLineFor(userID, lineID)
	if err != nil {
		return nil, err
	}
	if line.Quantity <= 1 {
		return nil, pkgerrors.New(pkgerrors.CodeRejected, "quantity cannot go below 1")
	}
	line.Quantity--
	return line, nil
}

func (s *Store) ToggleCartLine(userID, lineID string) (*cartLineRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.cartLineFor(userID, lineID)
	if err != nil {
		return nil, err
	}
	line.Checked = !line.Checked
	return line, nil
}

func (s *Store) RemoveCartLine(userID, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.cartLineFor(userID, lineID); err != nil {
		return err
	}
	delete(s.cartLines, lineID)
	return nil
}

// Checkout turns the user's checked lines into an order and removes them
// from the cart. Stock is decremented per line.
func (s *Store) Checkout(userID, shippingAddress string, paymentMethod enums.PaymentMethod, shippingMethod string, shippingCost decimal.Decimal, now time.Time) (*orderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	checked := make([]*cartLineRecord, 0)
	for _, line := range s.cartLines {
		if line.UserID == userID && line.Checked {
			checked = append(checked, line)
		}
	}
	if len(checked) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeRejected, "no items selected for checkout")
	}
	sort.Slice(checked, func(i, j int) bool { return checked[i].AddedAt.Before(checked[j].AddedAt) })

	subtotal := decimal.Zero
	items := make([]orderItemRecord, 0, len(checked))
	for _, line := range checked {
		variant, ok := s.variants[line.VariantID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeRejected, "cart references a removed variant")
		}
		if line.Quantity > variant.Stock {
			return nil, pkgerrors.New(pkgerrors.CodeRejected, "insufficient stock")
		}
		product, ok := s.products[variant.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeRejected, "cart references a removed product")
		}

		variant.Stock -= line.Quantity
		subtotal = subtotal.Add(variant.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, orderItemRecord{
			ID:                uuid.NewString(),
			ProductName:       product.Name,
			VariantAttributes: variant.Attributes,
			Price:             variant.Price,
			Quantity:          line.Quantity,
		})
	}

	s.orderSeq++
	order := &orderRecord{
		ID:              uuid.NewString(),
		UserID:          userID,
		OrderNumber:     fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), s.orderSeq),
		Status:          enums.OrderStatusPending,
		PaymentStatus:   enums.PaymentStatusPending,
		PaymentMethod:   paymentMethod,
		ShippingAddress: shippingAddress,
		ShippingMethod:  shippingMethod,
		ShippingCost:    shippingCost,
		Subtotal:        subtotal,
		Total:           subtotal.Add(shippingCost),
		CreatedAt:       now,
		Items:           items,
	}
	s.orders[order.ID] = order

	for _, line := range checked {
		delete(s.cartLines, line.ID)
	}
	return order, nil
}

func (s *Store) OrdersOf(userID string) []*orderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*orderRecord, 0)
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) AllOrders() []*orderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*orderRecord, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, order)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) Order(userID, orderID string) (*orderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *Store) UpdateOrderStatus(orderID string, status enums.OrderStatus) (*orderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	order.Status = status
	if status == enums.OrderStatusPaid || status == enums.OrderStatusCompleted {
		order.PaymentStatus = enums.PaymentStatusPaid
	}
	return order, nil
}

// DashboardStats aggregates the admin landing numbers.
func (s *Store) DashboardStats() (products, orders, users int, revenue decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	revenue = decimal.Zero
	for _, order := range s.orders {
		if order.Status != enums.OrderStatusCancelled {
			revenue = revenue.Add(order.Total)
		}
	}
	return len(s.products), len(s.orders), len(s.users), revenue
}
