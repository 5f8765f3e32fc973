package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/tranphihao2k3/LapLap-sub001/internal/domain/aggregate"
	"github.com/tranphihao2k3/LapLap-sub001/internal/infrastructure/store"
)

const AggregateType = "Order"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order must have at least one item")
	ErrInvalidCustomer   = errors.New("customer name is required")
	ErrInvalidPhone      = errors.New("invalid phone number")
	ErrInvalidStatus     = errors.New("invalid order status transition")
	ErrOrderConfirmed    = errors.New("order is already confirmed")
	ErrOrderNotConfirmed = errors.New("order must be confirmed before shipping")
	ErrOrderNotShipped   = errors.New("order must be shipped before delivery")
	ErrOrderShipped      = errors.New("cannot cancel shipped order")
	ErrOrderDelivered    = errors.New("order is already delivered")
	ErrOrderCancelled    = errors.New("order is already cancelled")
)

// phoneRegex matches local mobile numbers (leading zero, 10-11 digits);
// warranty lookups search by this number, so it is validated at intake.
var phoneRegex = regexp.MustCompile(`^0\d{9,10}$`)

// validTransitions defines allowed state transitions
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {}, // terminal state
	StatusCancelled: {}, // terminal state
}

// CanTransitionTo checks if the order can transition to the target status
func (o *Order) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[o.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// transitionError returns an appropriate error for an invalid transition
func (o *Order) transitionError(target Status) error {
	switch {
	case o.Status == StatusCancelled:
		return ErrOrderCancelled
	case o.Status == StatusDelivered:
		return ErrOrderDelivered
	case o.Status == StatusShipped && target == StatusCancelled:
		return ErrOrderShipped
	case o.Status != StatusPending && target == StatusConfirmed:
		return ErrOrderConfirmed
	case o.Status == StatusPending && target == StatusShipped:
		return ErrOrderNotConfirmed
	case o.Status != StatusShipped && target == StatusDelivered:
		return ErrOrderNotShipped
	default:
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidStatus, o.Status, target)
	}
}

type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone"`
	Items        []OrderItem `json:"items"`
	Total        int         `json:"total"`
	Status       Status      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	DeliveredAt  *time.Time  `json:"delivered_at,omitempty"`
	CancelReason string      `json:"cancel_reason,omitempty"`
	Version      int         `json:"version"`
}

// Aggregate interface implementation
func (o *Order) GetID() string    { return o.ID }
func (o *Order) GetVersion() int  { return o.Version }
func (o *Order) SetVersion(v int) { o.Version = v }

// ApplyEvent applies a single event to the order state
func (o *Order) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventOrderPlaced:
		var data OrderPlaced
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		o.ID = data.OrderID
		o.CustomerName = data.CustomerName
		o.Phone = data.Phone
		o.Items = data.Items
		o.Total = data.Total
		o.Status = StatusPending
		o.CreatedAt = data.PlacedAt
		o.UpdatedAt = data.PlacedAt
	case EventOrderConfirmed:
		var data OrderConfirmed
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		o.Status = StatusConfirmed
		o.UpdatedAt = data.ConfirmedAt
	case EventOrderShipped:
		var data OrderShipped
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		o.Status = StatusShipped
		o.UpdatedAt = data.ShippedAt
	case EventOrderDelivered:
		var data OrderDelivered
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		o.Status = StatusDelivered
		o.DeliveredAt = &data.DeliveredAt
		o.UpdatedAt = data.DeliveredAt
	case EventOrderCancelled:
		var data OrderCancelled
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		o.Status = StatusCancelled
		o.CancelReason = data.Reason
		o.UpdatedAt = data.CancelledAt
	}
	o.Version = event.Version
	return nil
}

type Service struct {
	eventStore store.EventStoreInterface
}

func NewService(es store.EventStoreInterface) *Service {
	return &Service{eventStore: es}
}

// loadOrder loads an order by replaying events, using snapshot if available
func (s *Service) loadOrder(ctx context.Context, orderID string) (*Order, error) {
	order, found, err := aggregate.Load(ctx, s.eventStore, orderID, func() *Order {
		return &Order{}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *Service) Place(ctx context.Context, customerName, phone string, items []OrderItem) (*Order, error) {
	if customerName == "" {
		return nil, ErrInvalidCustomer
	}
	if !phoneRegex.MatchString(phone) {
		return nil, ErrInvalidPhone
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	orderID := uuid.New().String()
	now := time.Now()

	var total int
	for _, item := range items {
		total += item.Price * item.Quantity
	}

	event := OrderPlaced{
		OrderID:      orderID,
		CustomerName: customerName,
		Phone:        phone,
		Items:        items,
		Total:        total,
		PlacedAt:     now,
	}

	storedEvent, err := s.eventStore.Append(ctx, orderID, AggregateType, EventOrderPlaced, event)
	if err != nil {
		return nil, err
	}

	version := 0
	if storedEvent != nil {
		version = storedEvent.Version
	}

	order := &Order{
		ID:           orderID,
		CustomerName: customerName,
		Phone:        phone,
		Items:        items,
		Total:        total,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      version,
	}

	if err := aggregate.MaybeCreateSnapshot(ctx, s.eventStore, order, AggregateType); err != nil {
		log.Printf("[Order] Failed to create snapshot for order %s: %v", order.ID, err)
	}

	return order, nil
}

func (s *Service) Confirm(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, StatusConfirmed, func(now time.Time) (string, any) {
		return EventOrderConfirmed, OrderConfirmed{OrderID: orderID, ConfirmedAt: now}
	})
}

func (s *Service) Ship(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, StatusShipped, func(now time.Time) (string, any) {
		return EventOrderShipped, OrderShipped{OrderID: orderID, ShippedAt: now}
	})
}

// Deliver marks the order delivered. The recorded delivery date is the
// warranty anchor for every item on the order.
func (s *Service) Deliver(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, StatusDelivered, func(now time.Time) (string, any) {
		return EventOrderDelivered, OrderDelivered{OrderID: orderID, DeliveredAt: now}
	})
}

func (s *Service) Cancel(ctx context.Context, orderID, reason string) error {
	return s.transition(ctx, orderID, StatusCancelled, func(now time.Time) (string, any) {
		return EventOrderCancelled, OrderCancelled{OrderID: orderID, Reason: reason, CancelledAt: now}
	})
}

// transition loads the order, validates the target state and appends the
// event produced by makeEvent.
func (s *Service) transition(ctx context.Context, orderID string, target Status, makeEvent func(now time.Time) (string, any)) error {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.CanTransitionTo(target) {
		return order.transitionError(target)
	}

	eventType, event := makeEvent(time.Now())

	storedEvent, err := s.eventStore.Append(ctx, orderID, AggregateType, eventType, event)
	if err != nil {
		return err
	}

	order.Status = target
	if storedEvent != nil {
		order.Version = storedEvent.Version
	}

	if err := aggregate.MaybeCreateSnapshot(ctx, s.eventStore, order, AggregateType); err != nil {
		log.Printf("[Order] Failed to create snapshot for order %s: %v", order.ID, err)
	}

	return nil
}
