package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
)

// QueryService serves the customer-facing catalog listings
type QueryService struct {
	shopRepo      catalog.ShopRepository
	categoryRepo  catalog.CategoryRepository
	productRepo   catalog.ProductInfoRepository
	parameterRepo catalog.ParameterRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(
	shopRepo catalog.ShopRepository,
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductInfoRepository,
	parameterRepo catalog.ParameterRepository,
) *QueryService {
	return &QueryService{
		shopRepo:      shopRepo,
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		parameterRepo: parameterRepo,
	}
}

// ListShops lists shops matching the filter
func (s *QueryService) ListShops(ctx context.Context, filter shared.Filter) (*shared.Paginated[ShopResponse], error) {
	filter.Normalize()

	shops, err := s.shopRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.shopRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ShopResponse, 0, len(shops))
	for i := range shops {
		responses = append(responses, ToShopResponse(&shops[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListCategories lists categories matching the filter
func (s *QueryService) ListCategories(ctx context.Context, filter shared.Filter) (*shared.Paginated[CategoryResponse], error) {
	filter.Normalize()

	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.categoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// SearchProducts lists SKUs of shops accepting orders, with their attributes
func (s *QueryService) SearchProducts(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductInfoResponse], error) {
	filter.Normalize()

	infos, err := s.productRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	names, err := s.parameterNames(ctx, infos)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductInfoResponse, 0, len(infos))
	for i := range infos {
		responses = append(responses, ToProductInfoResponse(&infos[i], names))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetProduct returns a single SKU with its attributes
func (s *QueryService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductInfoResponse, error) {
	info, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	names, err := s.parameterNames(ctx, []catalog.ProductInfo{*info})
	if err != nil {
		return nil, err
	}

	response := ToProductInfoResponse(info, names)
	return &response, nil
}

func (s *QueryService) parameterNames(ctx context.Context, infos []catalog.ProductInfo) (map[uuid.UUID]string, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for i := range infos {
		for _, par := range infos[i].Parameters {
			if _, ok := seen[par.ParameterID]; ok {
				continue
			}
			seen[par.ParameterID] = struct{}{}
			ids = append(ids, par.ParameterID)
		}
	}
	return s.parameterRepo.FindNamesByIDs(ctx, ids)
}
