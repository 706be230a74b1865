package order

import (
	"context"
	"log/slog"

	"github.com/tablekit/tablekit/internal/dependencies/clock"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/storage"
)

// Service manages order lifecycle
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new order Service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger.With(slog.String("component", "orders")),
	}
}

// LineInput is one requested order line
type LineInput struct {
	ItemID   model.MenuItemID
	Quantity int
}

// Create places an order for a table. Item names and prices are
// snapshotted from the menu at this moment.
func (s *Service) Create(ctx context.Context, tableID model.TableID, lines []LineInput, note string) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, model.ErrOrderEmpty
	}

	settings, err := s.storage.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.OrderingOpen {
		return nil, model.ErrOrderingClosed
	}

	if _, err := s.storage.GetTable(ctx, tableID); err != nil {
		return nil, err
	}

	orderLines := make([]model.OrderLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, model.ErrOrderEmpty
		}
		item, err := s.storage.GetMenuItem(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if !item.Available {
			return nil, model.ErrItemUnavailable
		}
		orderLines = append(orderLines, model.OrderLine{
			ItemID:     item.ID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			Quantity:   line.Quantity,
		})
	}

	id, err := s.storage.NextID(ctx, storage.SeqOrder)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	order := &model.Order{
		ID:        model.OrderID(id),
		TableID:   tableID,
		Lines:     orderLines,
		Note:      note,
		Status:    model.OrderStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storage.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		slog.Int64("order_id", id),
		slog.Int64("table_id", int64(tableID)),
		slog.Int("lines", len(orderLines)))
	return order, nil
}

// Get returns one order
func (s *Service) Get(ctx context.Context, id model.OrderID) (*model.Order, error) {
	return s.storage.GetOrder(ctx, id)
}

// List returns all orders ordered by id
func (s *Service) List(ctx context.Context) ([]*model.Order, error) {
	return s.storage.ListOrders(ctx)
}

// ListForTable returns the orders for one table
func (s *Service) ListForTable(ctx context.Context, tableID model.TableID) ([]*model.Order, error) {
	return s.storage.ListOrdersForTable(ctx, tableID)
}

// UpdateStatus moves an order along its lifecycle, refusing transitions
// the kitchen flow does not permit
func (s *Service) UpdateStatus(ctx context.Context, id model.OrderID, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, model.ErrInvalidStatusChange
	}

	order, err := s.storage.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(order.Status, status) {
		return nil, model.ErrInvalidStatusChange
	}

	order.Status = status
	order.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order status changed",
		slog.Int64("order_id", int64(id)),
		slog.String("status", string(status)))
	return order, nil
}

// Delete removes an order entirely (manager cleanup)
func (s *Service) Delete(ctx context.Context, id model.OrderID) error {
	return s.storage.DeleteOrder(ctx, id)
}
