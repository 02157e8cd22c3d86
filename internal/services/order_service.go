package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"watchstore/internal/models"
	"watchstore/internal/repositories"
	"watchstore/pkg/rabbitmq"
)

// Client-supplied totals are accepted when they agree with the server-side
// recomputation within half a cent.
const totalTolerance = 0.005

// OrderService handles the order lifecycle: creation, ownership-checked
// retrieval, admin listing, and status transitions.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	watchRepo repositories.WatchRepository
	mqClient  *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil, in which
// case event publishing is skipped.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, watchRepo repositories.WatchRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		watchRepo: watchRepo,
		mqClient:  mqClient,
	}
}

// CreateOrder validates and persists a new order for the authenticated user.
// Subtotal and total are recomputed server-side from the item snapshots and
// the request is rejected when the client-supplied aggregates disagree. The
// returned order is joined with current catalog data for its items.
func (s *OrderService) CreateOrder(userID string, req *models.Order) (*models.Order, error) {
	if req.FullName == "" || req.Phone == "" || req.ShippingAddress.AddressLine1 == "" || len(req.Items) == 0 {
		return nil, fmt.Errorf("all order fields are required: %w", ErrValidation)
	}

	var subtotal float64
	for _, item := range req.Items {
		if item.WatchID == "" {
			return nil, fmt.Errorf("order item is missing a watch reference: %w", ErrValidation)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("order item quantity must be at least 1: %w", ErrValidation)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("order item price must not be negative: %w", ErrValidation)
		}
		subtotal += item.Price * float64(item.Quantity)
	}

	total := subtotal + req.Shipping
	if math.Abs(subtotal-req.Subtotal) > totalTolerance || math.Abs(total-req.Total) > totalTolerance {
		return nil, fmt.Errorf("order totals do not match item prices: %w", ErrValidation)
	}

	// Resolve the acting user. A missing record here is the narrow race of
	// a deleted user holding a still-valid token.
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	newOrder := &models.Order{
		UserID:          user.ID,
		UserEmail:       user.Email,
		FullName:        req.FullName,
		Phone:           req.Phone,
		ShippingAddress: req.ShippingAddress,
		Items:           req.Items,
		Subtotal:        subtotal,
		Shipping:        req.Shipping,
		Total:           total,
		Status:          models.StatusPending,
		CreatedAt:       time.Now(),
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.joinCatalog(newOrder)
	s.publish(rabbitmq.EventOrderCreated, newOrder)

	return newOrder, nil
}

// GetUserOrders returns all orders owned by the given user, joined with
// catalog data.
func (s *OrderService) GetUserOrders(userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		s.joinCatalog(&orders[i])
	}
	return orders, nil
}

// GetOrderByID returns one order joined with catalog data. Only the owning
// user or an admin principal may read it; ownership is an opaque string
// comparison of the stored owner reference against the requester id.
func (s *OrderService) GetOrderByID(requesterID string, isAdmin bool, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID && !isAdmin {
		return nil, fmt.Errorf("order %s does not belong to the requester: %w", id, ErrForbidden)
	}
	s.joinCatalog(order)
	return order, nil
}

// GetAllOrders returns every order, joined with the owning-user summary and
// catalog data. Admin-gated at the route level.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range orders {
		s.joinCatalog(&orders[i])
		if user, err := s.userRepo.GetByID(orders[i].UserID); err == nil {
			summary := user.Summary()
			orders[i].UserInfo = &summary
		}
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to a new status. The transition is
// validated against the lifecycle graph; anything outside it is rejected
// with ErrInvalidTransition. Concurrent updates race at the storage layer
// with last-write-wins semantics.
func (s *OrderService) UpdateOrderStatus(id string, status string) (*models.Order, error) {
	if status == "" {
		return nil, fmt.Errorf("status is required: %w", ErrValidation)
	}

	next, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	current, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot move order %s from %s to %s: %w", id, current.Status, next, ErrInvalidTransition)
	}

	updated, err := s.orderRepo.UpdateStatus(id, next)
	if err != nil {
		return nil, err
	}

	s.joinCatalog(updated)
	s.publish(rabbitmq.EventOrderStatusUpdated, updated)

	return updated, nil
}

// joinCatalog attaches the current catalog document to each line item. Items
// whose watch has since been deleted keep their snapshot fields and a nil
// detail.
func (s *OrderService) joinCatalog(order *models.Order) {
	for i := range order.Items {
		if watch, err := s.watchRepo.GetByID(order.Items[i].WatchID); err == nil {
			order.Items[i].WatchDetail = watch
		}
	}
}

// publish emits an order event to the broker. Publishing is best-effort: a
// broker failure is logged, never surfaced to the caller.
func (s *OrderService) publish(event string, order *models.Order) {
	if s.mqClient == nil {
		return
	}
	err := s.mqClient.PublishOrderEvent(rabbitmq.OrderEvent{
		Event:   event,
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  string(order.Status),
		Total:   order.Total,
		At:      time.Now(),
	})
	if err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", event, order.ID, err)
	}
}
