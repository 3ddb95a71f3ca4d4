package cart

import (
	"context"
	"fmt"
)

// API is the backend cart surface the engine drives.
type API interface {
	FetchLines(ctx context.Context) ([]Line, error)
	Add(ctx context.Context, variantID string, quantity int) error
	Increase(ctx context.Context, lineID string) error
	Decrease(ctx context.Context, lineID string) error
	Remove(ctx context.Context, lineID string) error
	ToggleChecked(ctx context.Context, lineID string) error
}

type restDoer interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

type restAPI struct {
	api restDoer
}

// NewAPI adapts the REST client to the cart API.
func NewAPI(api restDoer) (API, error) {
	if api == nil {
		return nil, fmt.Errorf("rest client required")
	}
	return &restAPI{api: api}, nil
}

func (r *restAPI) FetchLines(ctx context.Context) ([]Line, error) {
	var lines []Line
	if err := r.api.Get(ctx, "/cart", &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

type addPayload struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (r *restAPI) Add(ctx context.Context, variantID string, quantity int) error {
	return r.api.Post(ctx, "/cart/add", addPayload{VariantID: variantID, Quantity: quantity}, nil)
}

func (r *restAPI) Increase(ctx context.Context, lineID string) error {
	return r.api.Patch(ctx, "/cart/"+lineID+"/increase", nil, nil)
}

func (r *restAPI) Decrease(ctx context.Context, lineID string) error {
	return r.api.Patch(ctx, "/cart/"+lineID+"/decrease", nil, nil)
}

func (r *restAPI) Remove(ctx context.Context, lineID string) error {
	return r.api.Delete(ctx, "/cart/"+lineID)
}

func (r *restAPI) ToggleChecked(ctx context.Context, lineID string) error {
	return r.api.Patch(ctx, "/cart/"+lineID+"/toggle-checked", nil, nil)
}
