package catalog

import (
	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ShopResponse is the API representation of a shop
type ShopResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	State bool      `json:"state"`
}

// CategoryResponse is the API representation of a category
type CategoryResponse struct {
	ID         uuid.UUID `json:"id"`
	ExternalID int64     `json:"external_id"`
	Name       string    `json:"name"`
}

// ProductInfoResponse is the API representation of one shop's SKU
type ProductInfoResponse struct {
	ID         uuid.UUID         `json:"id"`
	ProductID  uuid.UUID         `json:"product_id"`
	ShopID     uuid.UUID         `json:"shop_id"`
	ExternalID int64             `json:"external_id"`
	Model      string            `json:"model,omitempty"`
	Price      decimal.Decimal   `json:"price"`
	PriceRRC   decimal.Decimal   `json:"price_rrc"`
	Quantity   int               `json:"quantity"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// ImportResult reports one completed import cycle
type ImportResult struct {
	Shop       string `json:"shop"`
	Categories int    `json:"categories"`
	Products   int    `json:"products"`
	Parameters int    `json:"parameters"`
}

// ShopStateResponse is the partner's order-acceptance toggle
type ShopStateResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	State bool      `json:"state"`
}

// ToShopResponse converts a domain shop to its API representation
func ToShopResponse(s *catalog.Shop) ShopResponse {
	return ShopResponse{
		ID:    s.ID,
		Name:  s.Name,
		State: s.State,
	}
}

// ToCategoryResponse converts a domain category to its API representation
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:         c.ID,
		ExternalID: c.ExternalID,
		Name:       c.Name,
	}
}

// ToProductInfoResponse converts a domain SKU to its API representation.
// Parameter names are resolved by the caller, which has the repositories.
func ToProductInfoResponse(p *catalog.ProductInfo, parameterNames map[uuid.UUID]string) ProductInfoResponse {
	response := ProductInfoResponse{
		ID:         p.ID,
		ProductID:  p.ProductID,
		ShopID:     p.ShopID,
		ExternalID: p.ExternalID,
		Model:      p.Model,
		Price:      p.Price,
		PriceRRC:   p.PriceRRC,
		Quantity:   p.Quantity,
	}
	if len(p.Parameters) > 0 {
		response.Parameters = make(map[string]string, len(p.Parameters))
		for _, par := range p.Parameters {
			name, ok := parameterNames[par.ParameterID]
			if !ok {
				continue
			}
			response.Parameters[name] = par.Value
		}
	}
	return response
}
