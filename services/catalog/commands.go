package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mystore"
)

type ProductRequest struct {
	Name         string
	Description  string
	SKU          string
	ImageRef     string
	Price        int
	ComparePrice int
	Stock        int
	CategoryUID  string
	IsFeatured   bool
}

func (r ProductRequest) validate() error {
	if r.Name == "" || r.SKU == "" || r.ImageRef == "" || r.CategoryUID == "" {
		return myerrors.NewInvalidInputErrorf("name, sku, image and categoryUID are required")
	}
	if r.Price <= 0 {
		return myerrors.NewInvalidInputErrorf("price must be positive")
	}
	if r.Stock < 0 {
		return myerrors.NewInvalidInputErrorf("stock must not be negative")
	}

	return nil
}

// ProductQuery composes the supported catalog filters into typed store
// predicates instead of ad-hoc clause merging.
type ProductQuery struct {
	CategoryUID  string
	OnlyFeatured bool
	OnlyActive   bool
	Search       string
}

func (q ProductQuery) storeFilters() []mystore.Filter {
	filters := []mystore.Filter{}
	if q.OnlyActive {
		filters = append(filters, mystore.Filter{Field: "IsActive", Compare: "=", Value: true})
	}
	if q.OnlyFeatured {
		filters = append(filters, mystore.Filter{Field: "IsFeatured", Compare: "=", Value: true})
	}
	if q.CategoryUID != "" {
		filters = append(filters, mystore.Filter{Field: "CategoryUID", Compare: "=", Value: q.CategoryUID})
	}

	return filters
}

// matchesSearch is applied in memory: the datastore has no substring filter.
func (q ProductQuery) matchesSearch(p Product) bool {
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)

	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.SKU), needle)
}

func (s *service) createProduct(c context.Context, req ProductRequest) (Product, error) {
	err := req.validate()
	if err != nil {
		return Product{}, err
	}

	uid := s.uuider.Create()
	createdAt := s.nower.Now()

	s.logger.Log(c, uid, mylog.SeverityInfo, "Creating product %s (sku %s)", req.Name, req.SKU)

	var product Product
	err = s.productStore.RunInTransaction(c, func(c context.Context) error {
		// An admin-supplied SKU is taken literally: a collision aborts creation.
		taken, err := s.skuExists(c, req.SKU)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if taken {
			return myerrors.NewConflictError(DuplicateIdentifierError{Kind: "sku", Value: req.SKU})
		}

		slug, err := AllocateSlug(c, req.Name, s.productSlugExists(""))
		if err != nil {
			return err
		}

		product = Product{
			UID:          uid,
			Name:         req.Name,
			Slug:         slug,
			SKU:          req.SKU,
			Description:  req.Description,
			ImageRef:     req.ImageRef,
			Price:        req.Price,
			ComparePrice: req.ComparePrice,
			Stock:        req.Stock,
			CategoryUID:  req.CategoryUID,
			IsActive:     true,
			IsFeatured:   req.IsFeatured,
			CreatedAt:    createdAt,
		}

		err = s.productStore.Put(c, uid, product)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Product{}, err
	}

	return product, nil
}

func (s *service) renameProduct(c context.Context, productUID string, newName string) (Product, error) {
	if newName == "" {
		return Product{}, myerrors.NewInvalidInputErrorf("name must not be empty")
	}

	s.logger.Log(c, productUID, mylog.SeverityInfo, "Renaming product %s to %s", productUID, newName)

	now := s.nower.Now()

	var product Product
	err := s.productStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		product, found, err = s.productStore.Get(c, productUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(UnknownProductError{ProductUID: productUID})
		}

		// The entity being renamed must not collide with itself.
		slug, err := AllocateSlug(c, newName, s.productSlugExists(productUID))
		if err != nil {
			return err
		}

		product.Name = newName
		product.Slug = slug
		product.LastModified = &now

		err = s.productStore.Put(c, productUID, product)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Product{}, err
	}

	return product, nil
}

func (s *service) listProducts(c context.Context, query ProductQuery) ([]Product, error) {
	products, err := s.productStore.Query(c, query.storeFilters(), "CreatedAt")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	result := make([]Product, 0, len(products))
	for _, p := range products {
		if query.matchesSearch(p) {
			result = append(result, p)
		}
	}

	return result, nil
}

func (s *service) getProduct(c context.Context, productUID string) (Product, error) {
	product, found, err := s.productStore.Get(c, productUID)
	if err != nil {
		return Product{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Product{}, myerrors.NewNotFoundError(UnknownProductError{ProductUID: productUID})
	}

	return product, nil
}

func (s *service) getProductBySlug(c context.Context, slug string) (Product, error) {
	products, err := s.productStore.Query(c, []mystore.Filter{{Field: "Slug", Compare: "=", Value: slug}}, "")
	if err != nil {
		return Product{}, myerrors.NewInternalError(err)
	}
	if len(products) == 0 {
		return Product{}, myerrors.NewNotFoundError(fmt.Errorf("product with slug %s not found", slug))
	}

	return products[0], nil
}

func (s *service) createCategory(c context.Context, name string, description string, imageRef string) (Category, error) {
	if name == "" {
		return Category{}, myerrors.NewInvalidInputErrorf("category name is required")
	}

	uid := s.uuider.Create()
	createdAt := s.nower.Now()

	s.logger.Log(c, uid, mylog.SeverityInfo, "Creating category %s", name)

	var category Category
	err := s.categoryStore.RunInTransaction(c, func(c context.Context) error {
		slug, err := AllocateSlug(c, name, s.categorySlugExists(""))
		if err != nil {
			return err
		}

		category = Category{
			UID:         uid,
			Name:        name,
			Slug:        slug,
			Description: description,
			ImageRef:    imageRef,
			IsActive:    true,
			CreatedAt:   createdAt,
		}

		err = s.categoryStore.Put(c, uid, category)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Category{}, err
	}

	return category, nil
}

func (s *service) renameCategory(c context.Context, categoryUID string, newName string) (Category, error) {
	if newName == "" {
		return Category{}, myerrors.NewInvalidInputErrorf("name must not be empty")
	}

	s.logger.Log(c, categoryUID, mylog.SeverityInfo, "Renaming category %s to %s", categoryUID, newName)

	now := s.nower.Now()

	var category Category
	err := s.categoryStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		category, found, err = s.categoryStore.Get(c, categoryUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("category with uid %s not found", categoryUID))
		}

		slug, err := AllocateSlug(c, newName, s.categorySlugExists(categoryUID))
		if err != nil {
			return err
		}

		category.Name = newName
		category.Slug = slug
		category.LastModified = &now

		err = s.categoryStore.Put(c, categoryUID, category)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Category{}, err
	}

	return category, nil
}

func (s *service) listCategories(c context.Context) ([]Category, error) {
	categories, err := s.categoryStore.Query(c, []mystore.Filter{{Field: "IsActive", Compare: "=", Value: true}}, "")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}

func (s *service) categoryBySlug(c context.Context, slug string) (Category, bool, error) {
	categories, err := s.categoryStore.Query(c, []mystore.Filter{{Field: "Slug", Compare: "=", Value: slug}}, "")
	if err != nil {
		return Category{}, false, err
	}
	if len(categories) == 0 {
		return Category{}, false, nil
	}

	return categories[0], true, nil
}

func (s *service) skuExists(c context.Context, sku string) (bool, error) {
	products, err := s.productStore.Query(c, []mystore.Filter{{Field: "SKU", Compare: "=", Value: sku}}, "")
	if err != nil {
		return false, err
	}

	return len(products) > 0, nil
}

func (s *service) productSlugExists(excludeUID string) func(c context.Context, slug string) (bool, error) {
	return func(c context.Context, slug string) (bool, error) {
		products, err := s.productStore.Query(c, []mystore.Filter{{Field: "Slug", Compare: "=", Value: slug}}, "")
		if err != nil {
			return false, myerrors.NewInternalError(err)
		}
		for _, p := range products {
			if p.UID != excludeUID {
				return true, nil
			}
		}

		return false, nil
	}
}

func (s *service) categorySlugExists(excludeUID string) func(c context.Context, slug string) (bool, error) {
	return func(c context.Context, slug string) (bool, error) {
		categories, err := s.categoryStore.Query(c, []mystore.Filter{{Field: "Slug", Compare: "=", Value: slug}}, "")
		if err != nil {
			return false, myerrors.NewInternalError(err)
		}
		for _, cat := range categories {
			if cat.UID != excludeUID {
				return true, nil
			}
		}

		return false, nil
	}
}

// GetProduct returns the full product for services that embed product data,
// like the cart snapshotting a line item.
func (s *service) GetProduct(c context.Context, productUID string) (Product, bool, error) {
	product, found, err := s.productStore.Get(c, productUID)
	if err != nil {
		return Product{}, false, myerrors.NewInternalError(err)
	}

	return product, found, nil
}

// GetProducts returns the current snapshot for each requested product uid.
// A uid that does not resolve yields an UnknownProductError so that checkout
// can distinguish a deleted product from an out-of-stock one.
func (s *service) GetProducts(c context.Context, productUIDs []string) ([]ProductSnapshot, error) {
	snapshots := make([]ProductSnapshot, 0, len(productUIDs))
	for _, uid := range productUIDs {
		product, found, err := s.productStore.Get(c, uid)
		if err != nil {
			return nil, myerrors.NewInternalError(err)
		}
		if !found {
			return nil, UnknownProductError{ProductUID: uid}
		}
		snapshots = append(snapshots, ProductSnapshot{
			ProductUID: product.UID,
			Price:      product.Price,
			Stock:      product.Stock,
			IsActive:   product.IsActive,
		})
	}

	return snapshots, nil
}

// DecrementStock conditionally lowers a product's stock. The condition
// (stock >= quantity) is re-checked here so that the decrement stays correct
// even when the caller's snapshot has gone stale.
func (s *service) DecrementStock(c context.Context, productUID string, quantity int) error {
	if quantity <= 0 {
		return myerrors.NewInvalidInputErrorf("quantity must be positive, got %d", quantity)
	}

	product, found, err := s.productStore.Get(c, productUID)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	if !found {
		return UnknownProductError{ProductUID: productUID}
	}
	if product.Stock < quantity {
		return InsufficientStockError{ProductUID: productUID, Requested: quantity, Available: product.Stock}
	}

	product.Stock -= quantity

	err = s.productStore.Put(c, productUID, product)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}
