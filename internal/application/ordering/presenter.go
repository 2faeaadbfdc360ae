package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// presenter assembles order responses: line details from the catalog and
// the read-time total from the order repository.
type presenter struct {
	orders       ordering.OrderRepository
	products     catalog.ProductInfoRepository
	productNames catalog.ProductRepository
}

// Order builds the API representation of one order
func (p *presenter) Order(ctx context.Context, order *ordering.Order) (*OrderResponse, error) {
	response := &OrderResponse{
		ID:        order.ID,
		Status:    order.Status.String(),
		CreatedAt: order.CreatedAt,
		ContactID: order.ContactID,
		Items:     make([]OrderItemResponse, 0, len(order.Items)),
	}

	infos := make(map[uuid.UUID]*catalog.ProductInfo, len(order.Items))
	var productIDs []uuid.UUID
	for _, item := range order.Items {
		info, err := p.products.FindByID(ctx, item.ProductInfoID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				// SKU dropped by a later import; the line stays visible
				continue
			}
			return nil, err
		}
		infos[item.ProductInfoID] = info
		productIDs = append(productIDs, info.ProductID)
	}

	names, err := p.productNames.FindNamesByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		line := OrderItemResponse{
			ID:            item.ID,
			ProductInfoID: item.ProductInfoID,
			Quantity:      item.Quantity,
		}
		if info, ok := infos[item.ProductInfoID]; ok {
			line.Product = names[info.ProductID]
			line.Price = info.Price
			line.Sum = info.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		response.Items = append(response.Items, line)
	}

	total, err := p.orders.TotalSum(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if total.Valid {
		response.TotalSum = &total.Decimal
	}
	return response, nil
}

// Orders builds the API representation of a list of orders
func (p *presenter) Orders(ctx context.Context, orders []ordering.Order) ([]OrderResponse, error) {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		response, err := p.Order(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}
