package catalog

import (
	"context"
	"errors"
	"fmt"

	"restaurant-billing/internal/logger"
	"restaurant-billing/internal/menu"
	"restaurant-billing/internal/metrics"
)

// Operation names reported to metrics
const (
	OpCreate = "create"
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
	OpLoad   = "load"
)

// ErrUnreadable wraps every failure to load a catalog: a missing document or
// one that does not parse.
var ErrUnreadable = errors.New("catalog unreadable")

// Service manages named menu catalogs on top of a Store. Every operation is a
// full read-modify-write of the document with no locking; concurrent writers
// on the same name can lose updates.
type Service struct {
	store   Store
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewService creates a catalog service. m may be nil.
func NewService(store Store, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{store: store, metrics: m, logger: log}
}

// CreateMenu writes an empty catalog, replacing any existing one.
func (s *Service) CreateMenu(ctx context.Context, name string) (err error) {
	defer func() { s.metrics.ObserveCatalogOp(OpCreate, err) }()

	if err := s.save(ctx, name, Catalog{}); err != nil {
		return err
	}
	s.logger.Debug("menu_created", fmt.Sprintf("Created empty catalog %s", name), logger.RequestID(ctx), nil)
	return nil
}

// AddMenuItem upserts item under its own name. A missing or malformed
// catalog is replaced by an empty one rather than reported.
func (s *Service) AddMenuItem(ctx context.Context, name string, item menu.Item) (err error) {
	defer func() { s.metrics.ObserveCatalogOp(OpAdd, err) }()

	c, err := s.load(ctx, name)
	if err != nil {
		s.logger.Debug("catalog_recovered", fmt.Sprintf("Starting catalog %s from empty", name), logger.RequestID(ctx), map[string]interface{}{
			"reason": err.Error(),
		})
		c = Catalog{}
	}

	c[item.Name()] = EntryFor(item)
	return s.save(ctx, name, c)
}

// UpdateMenuItem replaces the entry stored under itemName with one derived
// from newItem. The key stays itemName even if newItem carries another name.
// A missing key leaves the catalog unchanged.
func (s *Service) UpdateMenuItem(ctx context.Context, name, itemName string, newItem menu.Item) (err error) {
	defer func() { s.metrics.ObserveCatalogOp(OpUpdate, err) }()

	c, err := s.load(ctx, name)
	if err != nil {
		return err
	}

	if _, ok := c[itemName]; ok {
		c[itemName] = EntryFor(newItem)
	}
	return s.save(ctx, name, c)
}

// DeleteMenuItem removes itemName. A missing key leaves the catalog unchanged.
func (s *Service) DeleteMenuItem(ctx context.Context, name, itemName string) (err error) {
	defer func() { s.metrics.ObserveCatalogOp(OpDelete, err) }()

	c, err := s.load(ctx, name)
	if err != nil {
		return err
	}

	delete(c, itemName)
	return s.save(ctx, name, c)
}

// Load reads and decodes the catalog. Failures wrap ErrUnreadable, and also
// ErrNotFound when the document does not exist.
func (s *Service) Load(ctx context.Context, name string) (Catalog, error) {
	c, err := s.load(ctx, name)
	s.metrics.ObserveCatalogOp(OpLoad, err)
	return c, err
}

func (s *Service) load(ctx context.Context, name string) (Catalog, error) {
	data, err := s.store.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrUnreadable, name, err)
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, name string, c Catalog) error {
	data, err := Encode(c)
	if err != nil {
		return fmt.Errorf("encode catalog %s: %w", name, err)
	}
	if err := s.store.Write(ctx, name, data); err != nil {
		return fmt.Errorf("save catalog %s: %w", name, err)
	}
	return nil
}
