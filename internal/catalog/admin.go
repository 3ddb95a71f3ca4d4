package catalog

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/types"
	"github.com/shopspring/decimal"
)

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

func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = "is invalid (" + fieldErr.Tag() + ")"
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

// VariantInput describes one variant in an admin product payload.
type VariantInput struct {
	Price      decimal.Decimal  `json:"price" validate:"required"`
	Stock      int              `json:"stock" validate:"min=0"`
	Attributes types.Attributes `json:"attributes"`
}

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	CategoryID  string         `json:"category_id" validate:"required"`
	Thumbnail   string         `json:"thumbnail"`
	Variants    []VariantInput `json:"variants" validate:"min=1,dive"`
}

func (s *Service) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	var created Product
	if err := s.api.Post(ctx, "/product", input, &created); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "product_id", created.ID), "product created")
	return &created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, productID string, input ProductInput) (*Product, error) {
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	var updated Product
	if err := s.api.Put(ctx, "/product/"+productID, input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.api.Delete(ctx, "/product/"+productID)
}

type categoryInput struct {
	Name string `json:"name" validate:"required"`
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	input := categoryInput{Name: strings.TrimSpace(name)}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	var created Category
	if err := s.api.Post(ctx, "/categories", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdateCategory(ctx context.Context, categoryID, name string) (*Category, error) {
	if categoryID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	input := categoryInput{Name: strings.TrimSpace(name)}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	var updated Category
	if err := s.api.Put(ctx, "/categories/"+categoryID, input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	return s.api.Delete(ctx, "/categories/"+categoryID)
}

// DashboardStats is the admin landing summary.
type DashboardStats struct {
	TotalProducts int             `json:"total_products"`
	TotalOrders   int             `json:"total_orders"`
	TotalUsers    int             `json:"total_users"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := s.api.Get(ctx, "/dashboard", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
