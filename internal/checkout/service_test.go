package checkout

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ramadhanarif/storefront-client/internal/cart"
	"github.com/ramadhanarif/storefront-client/pkg/enums"
	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCarts struct {
	lines   []cart.Line
	fetches int
	err     error
}

func (s *stubCarts) FetchLines(ctx context.Context) ([]cart.Line, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.lines, nil
}

type stubPoster struct {
	paths  []string
	body   any
	err    error
	orders string
}

func (s *stubPoster) Post(ctx context.Context, path string, body, out any) error {
	s.paths = append(s.paths, path)
	s.body = body
	if s.err != nil {
		return s.err
	}
	if s.orders != "" && out != nil {
		return json.Unmarshal([]byte(s.orders), out)
	}
	return nil
}

func checkedLine(id, variantID string, qty int, price int64, checked bool) cart.Line {
	return cart.Line{
		ID:       id,
		Quantity: qty,
		Checked:  checked,
		Variant:  &cart.VariantSnapshot{ID: variantID, Price: decimal.NewFromInt(price), Stock: 50},
	}
}

func newTestService(t *testing.T, carts *stubCarts, api *stubPoster) *Service {
	t.Helper()
	svc, err := NewService(carts, api, logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled}))
	require.NoError(t, err)
	return svc
}

func TestBuildSummaryRefetchesAndFiltersChecked(t *testing.T) {
	carts := &stubCarts{lines: []cart.Line{
		checkedLine("l1", "var-a", 2, 10000, true),
		checkedLine("l2", "var-b", 1, 5000, false),
		checkedLine("l3", "var-c", 1, 3000, true),
	}}
	svc := newTestService(t, carts, &stubPoster{})

	summary, err := svc.BuildSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, carts.fetches)
	assert.Equal(t, 2, summary.ItemCount)
	assert.True(t, summary.Subtotal.Equal(decimal.NewFromInt(23000)))
	assert.True(t, summary.Total().Equal(decimal.NewFromInt(38000)))
}

func TestBuildSummaryMergesDuplicateServerLines(t *testing.T) {
	carts := &stubCarts{lines: []cart.Line{
		checkedLine("l1", "var-a", 2, 10000, true),
		checkedLine("l2", "var-a", 3, 10000, true),
	}}
	svc := newTestService(t, carts, &stubPoster{})

	summary, err := svc.BuildSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, 5, summary.Lines[0].Quantity)
	assert.True(t, summary.Subtotal.Equal(decimal.NewFromInt(50000)))
}

func TestBuildSummaryEmptySelectionFailsValidation(t *testing.T) {
	carts := &stubCarts{lines: []cart.Line{
		checkedLine("l1", "var-a", 2, 10000, false),
	}}
	svc := newTestService(t, carts, &stubPoster{})

	_, err := svc.BuildSummary(context.Background())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func oneItemSummary() *Summary {
	line := checkedLine("l1", "var-a", 1, 10000, true)
	return &Summary{Lines: []cart.Line{line}, Subtotal: line.Subtotal(), ItemCount: 1}
}

func TestPlaceOrderRequiresNonEmptySummary(t *testing.T) {
	api := &stubPoster{}
	svc := newTestService(t, &stubCarts{}, api)

	input := Input{ShippingAddress: "Jl. Melati 5", PaymentMethod: enums.PaymentMethodCOD}

	_, err := svc.PlaceOrder(context.Background(), nil, input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = svc.PlaceOrder(context.Background(), &Summary{}, input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	assert.Empty(t, api.paths, "an empty selection never reaches the network")
}

func TestPlaceOrderBlankAddressNeverReachesNetwork(t *testing.T) {
	api := &stubPoster{}
	svc := newTestService(t, &stubCarts{}, api)

	_, err := svc.PlaceOrder(context.Background(), oneItemSummary(), Input{
		ShippingAddress: "   ",
		PaymentMethod:   enums.PaymentMethodBankTransfer,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Empty(t, api.paths)
}

func TestPlaceOrderRejectsUnknownPaymentMethod(t *testing.T) {
	api := &stubPoster{}
	svc := newTestService(t, &stubCarts{}, api)

	_, err := svc.PlaceOrder(context.Background(), oneItemSummary(), Input{
		ShippingAddress: "Jl. Melati 5",
		PaymentMethod:   enums.PaymentMethod("crypto"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Empty(t, api.paths)
}

func TestPlaceOrderFillsShippingDefaults(t *testing.T) {
	api := &stubPoster{orders: `{"_id":"o-1","status":"pending","payment_status":"pending"}`}
	svc := newTestService(t, &stubCarts{}, api)

	placed, err := svc.PlaceOrder(context.Background(), oneItemSummary(), Input{
		ShippingAddress: "  Jl. Melati 5  ",
		PaymentMethod:   enums.PaymentMethodCOD,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, placed.Status)
	assert.Equal(t, []string{"/orders/checkout"}, api.paths)

	raw, err := json.Marshal(api.body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"shipping_address": "Jl. Melati 5",
		"payment_method": "cod",
		"shipping_method": "Standard",
		"shipping_cost": "15000"
	}`, string(raw))
}

func TestPlaceOrderSurfacesBackendRejection(t *testing.T) {
	api := &stubPoster{err: pkgerrors.New(pkgerrors.CodeRejected, "cart is empty")}
	svc := newTestService(t, &stubCarts{}, api)

	_, err := svc.PlaceOrder(context.Background(), oneItemSummary(), Input{
		ShippingAddress: "Jl. Melati 5",
		PaymentMethod:   enums.PaymentMethodBankTransfer,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeRejected, pkgerrors.CodeOf(err))
	assert.Equal(t, "cart is empty", pkgerrors.UserMessage(err))
}
