package catalog

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/zhouzirui/food-catalog/backend/internal/model/food"
)

var (
	// ErrItemNotFound is returned when no item has the requested identifier.
	ErrItemNotFound = errors.New("food item not found")
	// ErrDuplicateName is returned when a create or rename collides with an existing name.
	ErrDuplicateName = food.ErrDuplicateName
	// ErrInvalidFilterRange is returned when max_price is below min_price.
	ErrInvalidFilterRange = food.ErrInvalidFilterRange
)

// CreateInput holds the validated fields of a new item.
type CreateInput struct {
	Name        string
	Price       float64
	Description string
}

// Service is the entry point handlers use to read and mutate the catalog.
type Service struct {
	store  food.Store
	logger *zap.Logger
	tracer trace.Tracer
}

// NewService wraps store. A nil logger is replaced by a no-op one.
func NewService(store food.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &Service{
		store:  store,
		logger: logger.Named("catalog"),
		tracer: otel.Tracer("catalog-service"),
	}
	catalogItems.Set(float64(store.Len()))
	return svc
}

// List returns one page of items matching filter.
func (s *Service) List(ctx context.Context, filter food.Filter, page, size int) (food.Page, error) {
	_, span := s.tracer.Start(ctx, "ListFood")
	defer span.End()

	span.SetAttributes(
		attribute.Int("page", page),
		attribute.Int("size", size),
		attribute.String("filter.name", filter.Name),
		attribute.String("filter.search", filter.Search),
	)

	if err := filter.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return food.Page{}, err
	}

	result := food.Query(s.store.List(), filter, page, size)
	span.SetAttributes(attribute.Int("result.total", result.Total))

	s.logger.Debug("food list served",
		zap.Int("page", result.Page),
		zap.Int("size", result.Size),
		zap.Int("returned", len(result.Items)),
		zap.Int("total", result.Total),
	)
	return result, nil
}

// Get returns a single item.
func (s *Service) Get(ctx context.Context, id int) (food.Item, error) {
	_, span := s.tracer.Start(ctx, "GetFood")
	defer span.End()
	span.SetAttributes(attribute.Int("food.id", id))

	item, ok := s.store.Get(id)
	if !ok {
		return food.Item{}, ErrItemNotFound
	}
	return item, nil
}

// Create stores a new item.
func (s *Service) Create(ctx context.Context, in CreateInput) (food.Item, error) {
	_, span := s.tracer.Start(ctx, "CreateFood")
	defer span.End()
	span.SetAttributes(attribute.String("food.name", in.Name))

	item, err := s.store.Create(in.Name, in.Price, in.Description)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.recordMutation("create", err)
		s.logger.Warn("food item rejected", zap.String("name", in.Name), zap.Error(err))
		return food.Item{}, err
	}

	s.recordMutation("create", nil)
	s.logger.Info("food item created", zap.Int("id", item.ID), zap.String("name", item.Name))
	return item, nil
}

// Update applies patch to the item with the given identifier.
func (s *Service) Update(ctx context.Context, id int, patch food.Patch) (food.Item, error) {
	_, span := s.tracer.Start(ctx, "UpdateFood")
	defer span.End()
	span.SetAttributes(attribute.Int("food.id", id))

	item, ok, err := s.store.Update(id, patch)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.recordMutation("update", err)
		s.logger.Warn("food item update rejected", zap.Int("id", id), zap.Error(err))
		return food.Item{}, err
	}
	if !ok {
		s.recordMutation("update", ErrItemNotFound)
		return food.Item{}, ErrItemNotFound
	}

	s.recordMutation("update", nil)
	s.logger.Info("food item updated", zap.Int("id", id), zap.Bool("empty_patch", patch.IsEmpty()))
	return item, nil
}

// Delete removes the item with the given identifier.
func (s *Service) Delete(ctx context.Context, id int) error {
	_, span := s.tracer.Start(ctx, "DeleteFood")
	defer span.End()
	span.SetAttributes(attribute.Int("food.id", id))

	if !s.store.Delete(id) {
		s.recordMutation("delete", ErrItemNotFound)
		return ErrItemNotFound
	}

	s.recordMutation("delete", nil)
	s.logger.Info("food item deleted", zap.Int("id", id))
	return nil
}

func (s *Service) recordMutation(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrItemNotFound):
		result = "not_found"
	case errors.Is(err, ErrDuplicateName):
		result = "duplicate"
	default:
		result = "error"
	}
	catalogMutations.WithLabelValues(op, result).Inc()
	catalogItems.Set(float64(s.store.Len()))
}
