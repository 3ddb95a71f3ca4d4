package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/ramadhanarif/storefront-client/pkg/enums"
	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
	"github.com/ramadhanarif/storefront-client/pkg/types"
	"github.com/shopspring/decimal"
)

// Order is the backend's view of a placed order. The client only displays
// it; every status transition happens server-side.
type Order struct {
	ID              string              `json:"_id"`
	OrderNumber     string              `json:"order_number"`
	Status          enums.OrderStatus   `json:"status"`
	PaymentStatus   enums.PaymentStatus `json:"payment_status"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method"`
	ShippingAddress string              `json:"shipping_address"`
	ShippingMethod  string              `json:"shipping_method"`
	ShippingCost    decimal.Decimal     `json:"shipping_cost"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Total           decimal.Decimal     `json:"total"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// Item is one purchased line inside an order detail.
type Item struct {
	ID                string           `json:"_id"`
	ProductName       string           `json:"product_name"`
	VariantAttributes types.Attributes `json:"variant_attributes,omitempty"`
	Price             decimal.Decimal  `json:"price"`
	Quantity          int              `json:"quantity"`
}

// Detail pairs an order with its line items, as returned by the detail
// endpoint.
type Detail struct {
	Order Order  `json:"order"`
	Items []Item `json:"items"`
}

type backend interface {
	Get(ctx context.Context, path string, out any) error
	Patch(ctx context.Context, path string, body, out any) error
}

type Service struct {
	api  backend
	logg *logger.Logger
}

func NewService(api backend, logg *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{api: api, logg: logg}, nil
}

// List returns the current user's orders.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := s.api.Get(ctx, "/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Detail fetches one order with its items.
func (s *Service) Detail(ctx context.Context, orderID string) (*Detail, error) {
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	var out Detail
	if err := s.api.Get(ctx, "/orders/"+orderID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminList returns every order in the system, admin only.
func (s *Service) AdminList(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := s.api.Get(ctx, "/orders/admin/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type statusPayload struct {
	Status enums.OrderStatus `json:"status"`
}

// AdminUpdateStatus asks the backend to move an order to the given status.
// Unknown statuses are refused locally; the transition itself is still the
// backend's decision.
func (s *Service) AdminUpdateStatus(ctx context.Context, orderID string, status enums.OrderStatus) (*Order, error) {
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}

	var updated Order
	if err := s.api.Patch(ctx, "/orders/admin/"+orderID+"/status", statusPayload{Status: status}, &updated); err != nil {
		return nil, err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"order_id": orderID, "status": status.String()})
	s.logg.Info(logCtx, "order status updated")
	return &updated, nil
}
