package ordering

import (
	"context"
	"errors"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderService handles checkout and the order lifecycle
type OrderService struct {
	orders    ordering.OrderRepository
	products  catalog.ProductInfoRepository
	shops     catalog.ShopRepository
	contacts  identity.ContactRepository
	users     identity.UserRepository
	notifier  ordering.Notifier
	validate  *validator.Validate
	presenter *presenter
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders ordering.OrderRepository,
	products catalog.ProductInfoRepository,
	productNames catalog.ProductRepository,
	shops catalog.ShopRepository,
	contacts identity.ContactRepository,
	users identity.UserRepository,
	notifier ordering.Notifier,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		shops:    shops,
		contacts: contacts,
		users:    users,
		notifier: notifier,
		validate: validator.New(),
		presenter: &presenter{
			orders:       orders,
			products:     products,
			productNames: productNames,
		},
		logger: logger,
	}
}

// Place creates a new order in state "new". All products are resolved
// before anything is written: one unknown product aborts the whole call
// and no order is stored. The basket is left untouched.
func (s *OrderService) Place(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*OrderResponse, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", err.Error())
	}

	contact, err := s.resolveContact(ctx, userID, input.Contact)
	if err != nil {
		return nil, err
	}

	order, err := ordering.NewOrder(userID, contact.ID)
	if err != nil {
		return nil, err
	}

	// resolve everything up front so a bad line aborts with nothing written
	infos := make([]*catalog.ProductInfo, 0, len(input.Items))
	for _, item := range input.Items {
		info, err := s.products.FindByProductName(ctx, item.Product)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND",
					"Product "+item.Product+" is not available, order was not placed")
			}
			return nil, err
		}
		infos = append(infos, info)
	}
	for i, item := range input.Items {
		if _, err := order.MergeItem(infos[i].ID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.notify(ctx, order, ordering.NotificationOrderCreated)
	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.Int("items", len(order.Items)),
	)
	return s.presenter.Order(ctx, order)
}

// Amend updates lines of a placed order and rebinds its contact by phone,
// returning the order to state "new" for re-confirmation.
func (s *OrderService) Amend(ctx context.Context, userID, orderID uuid.UUID, input AmendOrderInput) (*OrderResponse, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", err.Error())
	}

	order, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	contact, err := s.contacts.FindByPhone(ctx, userID, input.ContactPhone)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_CONTACT", "No contact on file with this phone number")
		}
		return nil, err
	}
	if err := order.BindContact(contact.ID); err != nil {
		return nil, err
	}

	for _, item := range input.Items {
		info, err := s.products.FindByProductName(ctx, item.Product)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND",
					"Product "+item.Product+" is not available, order was not changed")
			}
			return nil, err
		}
		if _, err := order.SetItemQuantity(info.ID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := order.Reopen(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.notify(ctx, order, ordering.NotificationOrderUpdated)
	return s.presenter.Order(ctx, order)
}

// AdvanceForPartner moves an incoming order to the target status on behalf
// of a supplier. The supplier must have a SKU in the order; the transition
// table applies, with cancellation allowed from any non-terminal state. The
// customer and shop admins are notified of the change.
func (s *OrderService) AdvanceForPartner(ctx context.Context, ownerID, orderID uuid.UUID, target ordering.OrderStatus) (*OrderResponse, error) {
	user, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !user.IsShop() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only shop accounts can manage incoming orders")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsBasket() {
		return nil, shared.ErrNotFound
	}
	ours, err := s.orders.ContainsShopOwner(ctx, orderID, ownerID)
	if err != nil {
		return nil, err
	}
	if !ours {
		// foreign orders look like missing ones, same as the customer side
		return nil, shared.ErrNotFound
	}

	if err := order.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("status", target.String()),
	)
	s.notify(ctx, order, ordering.NotificationOrderUpdated)
	return s.presenter.Order(ctx, order)
}

// Get returns one of the user's placed orders
func (s *OrderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return s.presenter.Order(ctx, order)
}

// List returns the user's placed orders with read-time totals
func (s *OrderService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	filter.Normalize()

	orders, err := s.orders.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.CountForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	responses, err := s.presenter.Orders(ctx, orders)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes the given placed orders, skipping ids the user does not
// own, and returns the number of orders deleted.
func (s *OrderService) Delete(ctx context.Context, userID uuid.UUID, input DeleteOrdersInput) (int64, error) {
	if err := s.validate.Struct(input); err != nil {
		return 0, shared.NewDomainError("VALIDATION_FAILED", err.Error())
	}
	return s.orders.DeleteForUser(ctx, userID, input.IDs)
}

// ListForPartner returns placed orders containing the supplier's SKUs
func (s *OrderService) ListForPartner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	filter.Normalize()

	user, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !user.IsShop() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only shop accounts can list incoming orders")
	}

	orders, err := s.orders.FindForShopOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.CountForShopOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	responses, err := s.presenter.Orders(ctx, orders)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ownedOrder loads a placed order and checks ownership. Foreign orders look
// like missing ones, so ids cannot be probed.
func (s *OrderService) ownedOrder(ctx context.Context, userID, orderID uuid.UUID) (*ordering.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID || order.IsBasket() {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

// notify sends one notification per order: to the customer and, once each,
// to the admin of every shop with a SKU in the order.
func (s *OrderService) notify(ctx context.Context, order *ordering.Order, kind ordering.NotificationKind) {
	recipients := make(map[string]struct{})

	if user, err := s.users.FindByID(ctx, order.UserID); err == nil {
		recipients[user.Email] = struct{}{}
	}
	for _, item := range order.Items {
		info, err := s.products.FindByID(ctx, item.ProductInfoID)
		if err != nil {
			continue
		}
		shop, err := s.shops.FindByID(ctx, info.ShopID)
		if err != nil || shop.AdminEmail == "" {
			continue
		}
		recipients[shop.AdminEmail] = struct{}{}
	}
	if len(recipients) == 0 {
		return
	}

	list := make([]string, 0, len(recipients))
	for email := range recipients {
		list = append(list, email)
	}
	sort.Strings(list)

	if err := s.notifier.Notify(ctx, ordering.Notification{
		Kind:       kind,
		Recipients: list,
		Context:    map[string]string{"order_id": order.ID.String()},
	}); err != nil {
		s.logger.Warn("order notification failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}

// resolveContact reuses a contact matching the submitted address exactly,
// or stores a new one.
func (s *OrderService) resolveContact(ctx context.Context, userID uuid.UUID, input PlaceOrderContact) (*identity.Contact, error) {
	existing, err := s.contacts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Matches(input.City, input.Street, input.House, input.Apartment, input.Phone) {
			return &existing[i], nil
		}
	}

	contact, err := identity.NewContact(userID,
		input.City, input.Street, input.House, "", "", input.Apartment, input.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.contacts.Save(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}
