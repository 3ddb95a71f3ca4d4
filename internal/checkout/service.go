package checkout

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ramadhanarif/storefront-client/internal/cart"
	"github.com/ramadhanarif/storefront-client/internal/orders"
	"github.com/ramadhanarif/storefront-client/pkg/enums"
	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
	"github.com/shopspring/decimal"
)

// DefaultShippingMethod and DefaultShippingCost are the only shipping
// option offered. The backend recomputes totals either way.
const DefaultShippingMethod = "Standard"

var DefaultShippingCost = decimal.NewFromInt(15000)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Summary is the review screen: checked cart lines fetched fresh from the
// backend, plus the derived totals.
type Summary struct {
	Lines     []cart.Line
	Subtotal  decimal.Decimal
	ItemCount int
}

// Total adds the flat shipping cost on top of the checked subtotal.
func (s Summary) Total() decimal.Decimal {
	return s.Subtotal.Add(DefaultShippingCost)
}

// Input is the order placement payload.
type Input struct {
	ShippingAddress string              `json:"shipping_address" validate:"required"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method" validate:"required"`
	ShippingMethod  string              `json:"shipping_method"`
	ShippingCost    decimal.Decimal     `json:"shipping_cost"`
}

type lineFetcher interface {
	FetchLines(ctx context.Context) ([]cart.Line, error)
}

type poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

type Service struct {
	carts lineFetcher
	api   poster
	logg  *logger.Logger
}

func NewService(carts lineFetcher, api poster, logg *logger.Logger) (*Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart fetcher required")
	}
	if api == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{carts: carts, api: api, logg: logg}, nil
}

// BuildSummary refetches the cart so checkout always reflects server state,
// then keeps only the checked lines. An empty selection is a validation
// failure, not an empty screen.
func (s *Service) BuildSummary(ctx context.Context) (*Summary, error) {
	raw, err := s.carts.FetchLines(ctx)
	if err != nil {
		return nil, err
	}

	checked := make([]cart.Line, 0, len(raw))
	for _, line := range cart.Reconcile(raw) {
		if line.Checked {
			checked = append(checked, line)
		}
	}
	if len(checked) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items selected for checkout")
	}

	return &Summary{
		Lines:     checked,
		Subtotal:  cart.CheckedTotal(checked),
		ItemCount: len(checked),
	}, nil
}

// PlaceOrder validates the input locally and submits the checkout. The
// summary from BuildSummary is required so an empty selection can never
// slip through; guard failures never reach the network. The backend
// decides which cart lines the order covers (the checked ones) and owns
// the resulting order.
func (s *Service) PlaceOrder(ctx context.Context, summary *Summary, input Input) (*orders.Order, error) {
	if summary == nil || summary.ItemCount == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items selected for checkout")
	}

	input.ShippingAddress = strings.TrimSpace(input.ShippingAddress)
	if input.ShippingMethod == "" {
		input.ShippingMethod = DefaultShippingMethod
	}
	if input.ShippingCost.IsZero() {
		input.ShippingCost = DefaultShippingCost
	}

	if err := validate.Struct(input); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			details := map[string]string{}
			for _, fieldErr := range errs {
				details[fieldErr.Field()] = "is invalid (" + fieldErr.Tag() + ")"
			}
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout validation failed").WithDetails(details)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "checkout validation failed")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.PaymentMethod))
	}

	var placed orders.Order
	if err := s.api.Post(ctx, "/orders/checkout", input, &placed); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithOrderID(ctx, placed.ID), "order placed")
	return &placed, nil
}
