package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"yumexpress-be/internal/account"
	"yumexpress-be/internal/apperr"
	"yumexpress-be/internal/events"
	"yumexpress-be/internal/logger"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// totalTolerance absorbs float rounding below one cent.
const totalTolerance = 0.005

// maxAmount is the largest value a NUMERIC(10,2) column holds.
const maxAmount = 99999999.99

const publishTimeout = 5 * time.Second

// AccountLookup resolves accounts by role; satisfied by account.Repository.
type AccountLookup interface {
	FindByID(ctx context.Context, role account.Role, id uuid.UUID) (account.Account, error)
}

type QRGenerator interface {
	Generate(orderID uuid.UUID) ([]byte, error)
}

// DefaultQRGenerator encodes the public tracking URL of an order as a PNG.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID uuid.UUID) ([]byte, error) {
	qrData := fmt.Sprintf("%s/orders/%s", strings.TrimRight(g.BaseURL, "/"), orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

type Service interface {
	Create(ctx context.Context, userID string, in CreateOrderInput) (Order, error)
	Transition(ctx context.Context, orderID, requested, actorRestaurantID string) (Order, error)
	ListForUser(ctx context.Context, userID string) ([]Order, error)
	ListForRestaurant(ctx context.Context, restaurantID string) ([]Order, error)
	Get(ctx context.Context, orderID string, actor Actor) (Order, error)
	TrackingQRCode(ctx context.Context, orderID string, actor Actor) ([]byte, error)
}

type service struct {
	repo      Repository
	accounts  AccountLookup
	publisher events.Publisher
	qr        QRGenerator
}

func NewService(repo Repository, accounts AccountLookup, publisher events.Publisher, qr QRGenerator) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &service{repo: repo, accounts: accounts, publisher: publisher, qr: qr}
}

func validateCreate(in CreateOrderInput) (LineItems, float64, error) {
	if strings.TrimSpace(in.RestaurantID) == "" || in.Total == nil || strings.TrimSpace(in.DeliveryAddress) == "" {
		return nil, 0, apperr.Validation("restaurantId, items, total and deliveryAddress are required")
	}
	if len(in.Items) == 0 {
		return nil, 0, apperr.Validation("order must contain at least one item")
	}

	items := make(LineItems, 0, len(in.Items))
	for i, it := range in.Items {
		name := strings.TrimSpace(it.Name)
		switch {
		case name == "":
			return nil, 0, apperr.Validation(fmt.Sprintf("item %d: name is required", i))
		case it.Price < 0 || math.IsNaN(it.Price) || math.IsInf(it.Price, 0):
			return nil, 0, apperr.Validation(fmt.Sprintf("item %d: price must not be negative", i))
		case it.Price > maxAmount:
			return nil, 0, apperr.Validation(fmt.Sprintf("item %d: price must not exceed %.2f", i, maxAmount))
		case it.Quantity < 1:
			return nil, 0, apperr.Validation(fmt.Sprintf("item %d: quantity must be at least 1", i))
		}
		items = append(items, LineItem{Name: name, Price: it.Price, Quantity: it.Quantity})
	}

	total := *in.Total
	if total < 0 || math.IsNaN(total) {
		return nil, 0, apperr.Validation("total must not be negative")
	}
	if total > maxAmount {
		return nil, 0, apperr.Validation(fmt.Sprintf("total must not exceed %.2f", maxAmount))
	}

	// The client total is checked against the line items rather than trusted.
	if subtotal := items.Subtotal(); math.Abs(subtotal-total) > totalTolerance {
		return nil, 0, apperr.Validation(fmt.Sprintf("total %.2f does not match items subtotal %.2f", total, subtotal))
	}

	return items, total, nil
}

func (s *service) Create(ctx context.Context, userID string, in CreateOrderInput) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("user_id", userID),
	)

	items, total, err := validateCreate(in)
	if err != nil {
		return Order{}, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return Order{}, ErrUserNotFound
	}
	rid, err := uuid.Parse(strings.TrimSpace(in.RestaurantID))
	if err != nil {
		return Order{}, ErrRestaurantNotFound
	}

	if err := s.ensureAccount(ctx, account.RoleUser, uid, ErrUserNotFound); err != nil {
		return Order{}, err
	}
	if err := s.ensureAccount(ctx, account.RoleRestaurant, rid, ErrRestaurantNotFound); err != nil {
		return Order{}, err
	}

	o, err := s.repo.Create(ctx, Order{
		UserID:          uid,
		RestaurantID:    rid,
		Items:           items,
		Total:           total,
		Status:          StatusPending,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
	})
	if err != nil {
		return Order{}, err
	}

	log.Info("order placed", zap.String("order_id", o.ID.String()), zap.Float64("total", total))
	s.publish(ctx, o, events.OrderCreated, "")
	return o, nil
}

func (s *service) ensureAccount(ctx context.Context, role account.Role, id uuid.UUID, missing error) error {
	_, err := s.accounts.FindByID(ctx, role, id)
	if errors.Is(err, account.ErrAccountNotFound) {
		return missing
	}
	return err
}

// Transition checks existence, then ownership, then the status table, in that order.
func (s *service) Transition(ctx context.Context, orderID, requested, actorRestaurantID string) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Transition"),
		zap.String("order_id", orderID),
	)

	if strings.TrimSpace(requested) == "" {
		return Order{}, ErrStatusRequired
	}
	next := OrderStatus(strings.TrimSpace(requested))

	id, err := uuid.Parse(orderID)
	if err != nil {
		return Order{}, ErrOrderNotFound
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}

	if current.RestaurantID.String() != actorRestaurantID {
		log.Warn("status change by foreign restaurant", zap.String("actor_id", actorRestaurantID))
		return Order{}, ErrNotOrderOwner
	}

	if !current.Status.CanTransitionTo(next) {
		return Order{}, invalidTransition(current.Status, next)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, next)
	if err != nil {
		return Order{}, err
	}

	s.publish(ctx, updated, events.OrderStatusChanged, current.Status)
	return updated, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]Order, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return []Order{}, nil
	}
	return s.repo.ListByUser(ctx, id)
}

func (s *service) ListForRestaurant(ctx context.Context, restaurantID string) ([]Order, error) {
	id, err := uuid.Parse(restaurantID)
	if err != nil {
		return []Order{}, nil
	}
	return s.repo.ListByRestaurant(ctx, id)
}

// Get returns the order to its user or its restaurant only.
func (s *service) Get(ctx context.Context, orderID string, actor Actor) (Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return Order{}, ErrOrderNotFound
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}

	var owner uuid.UUID
	switch account.Role(strings.ToLower(actor.Role)) {
	case account.RoleUser:
		owner = o.UserID
	case account.RoleRestaurant:
		owner = o.RestaurantID
	default:
		return Order{}, ErrNotOrderOwner
	}
	if owner.String() != actor.ID {
		return Order{}, ErrNotOrderOwner
	}

	return o, nil
}

func (s *service) TrackingQRCode(ctx context.Context, orderID string, actor Actor) ([]byte, error) {
	o, err := s.Get(ctx, orderID, actor)
	if err != nil {
		return nil, err
	}

	png, err := s.qr.Generate(o.ID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to generate qr code",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return png, nil
}

// publish runs in the background; broker failures are logged and never reach the caller.
func (s *service) publish(ctx context.Context, o Order, eventType string, previous OrderStatus) {
	e := events.Event{
		Type:           eventType,
		OrderID:        o.ID.String(),
		UserID:         o.UserID.String(),
		RestaurantID:   o.RestaurantID.String(),
		Status:         string(o.Status),
		PreviousStatus: string(previous),
		Total:          o.Total,
		OccurredAt:     time.Now().UTC(),
	}
	log := logger.FromCtx(ctx)

	go func() {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		if err := s.publisher.Publish(pubCtx, e); err != nil {
			log.Warn("failed to publish order event",
				zap.String("type", e.Type),
				zap.String("order_id", e.OrderID),
				zap.Error(err),
			)
		}
	}()
}
