package catalog

import (
	"context"
	"fmt"
	"sort"

	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
)

type backend interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
	ResolveURL(path string) string
}

// Service exposes the product catalog to the UI: listings, detail with
// variants, categories, and the admin CRUD surface.
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

func (s *Service) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.api.Get(ctx, "/product", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductDetail returns the product with its variants populated.
func (s *Service) ProductDetail(ctx context.Context, productID string) (*Product, error) {
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var product Product
	if err := s.api.Get(ctx, "/product/"+productID, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.api.Get(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// VariantImageURL resolves the best image for a variant, falling back to
// the product thumbnail, as an absolute URL. Empty when nothing is set.
func (s *Service) VariantImageURL(variant Variant, product *Product) string {
	path := variant.ImagePath()
	if path == "" && product != nil {
		path = product.ImagePath()
	}
	return s.api.ResolveURL(path)
}

// FindVariant scans the catalog for a variant by id and returns it with
// its owning product. Listings embed variants, so no dedicated endpoint
// is needed.
func (s *Service) FindVariant(ctx context.Context, variantID string) (Variant, *Product, error) {
	if variantID == "" {
		return Variant{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}
	products, err := s.Products(ctx)
	if err != nil {
		return Variant{}, nil, err
	}
	for i := range products {
		for _, variant := range products[i].Variants {
			if variant.ID == variantID {
				return variant, &products[i], nil
			}
		}
	}
	return Variant{}, nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
}

// GroupVariantOptions collapses variant attributes into option pickers,
// one group per attribute name, skipping image-carrying entries.
func GroupVariantOptions(variants []Variant) []OptionGroup {
	seen := map[string]map[string]struct{}{}
	order := []string{}
	values := map[string][]string{}

	for _, variant := range variants {
		for _, pair := range variant.Attributes.DisplayPairs() {
			if _, ok := seen[pair.Key]; !ok {
				seen[pair.Key] = map[string]struct{}{}
				order = append(order, pair.Key)
			}
			if _, ok := seen[pair.Key][pair.Value]; !ok {
				seen[pair.Key][pair.Value] = struct{}{}
				values[pair.Key] = append(values[pair.Key], pair.Value)
			}
		}
	}

	sort.Strings(order)
	groups := make([]OptionGroup, 0, len(order))
	for _, name := range order {
		groups = append(groups, OptionGroup{Name: name, Values: values[name]})
	}
	return groups
}

// FindVariantByOption returns the first variant carrying the given
// attribute value, used to preview option images.
func FindVariantByOption(variants []Variant, name, value string) (Variant, bool) {
	for _, variant := range variants {
		if variant.Attributes[name] == value {
			return variant, true
		}
	}
	return Variant{}, false
}

// ClampQuantity bounds an order quantity to [1, stock]. A non-positive
// stock yields 0, meaning the variant cannot be ordered at all.
func ClampQuantity(quantity, stock int) int {
	if stock < 1 {
		return 0
	}
	if quantity < 1 {
		return 1
	}
	if quantity > stock {
		return stock
	}
	return quantity
}
