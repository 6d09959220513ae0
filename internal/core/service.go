package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JonMunkholm/orderlookup/internal/dataset"
)

// LoadTimeout bounds the first load of the datasets.
var LoadTimeout = 2 * time.Minute

// Service provides the lookup operations over a lazily loaded snapshot.
type Service struct {
	loader *dataset.Loader
	refs   []dataset.Ref

	once sync.Once
	snap *Snapshot
	err  error
}

// NewService creates a Service that loads refs through loader on first use.
func NewService(loader *dataset.Loader, refs []dataset.Ref) *Service {
	return &Service{loader: loader, refs: refs}
}

// Refs returns the dataset references the service loads.
func (s *Service) Refs() []dataset.Ref {
	return s.refs
}

// Snapshot returns the shared snapshot, loading it on the first call.
// The outcome of the first load, success or error, is kept for the life of
// the process. A *MissingDatasetError means some datasets were not found.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.once.Do(func() {
		// The first caller's cancellation must not poison the shared result.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()
		s.snap, s.err = s.build(loadCtx)
	})
	return s.snap, s.err
}

func (s *Service) build(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	tables, missing, err := s.loader.LoadAll(ctx, s.refs)
	if err != nil {
		slog.Error("dataset load failed", "error", err)
		return nil, err
	}
	if len(missing) > 0 {
		merr := &MissingDatasetError{Missing: missing}
		slog.Warn("datasets missing", "files", merr.Files())
		return nil, merr
	}

	var (
		customers []Customer
		orders    []Order
		details   []OrderDetail
		statuses  []DatasetStatus
	)
	for _, ref := range s.refs {
		def, ok := Get(ref.Name)
		if !ok {
			return nil, fmt.Errorf("unknown dataset: %s", ref.Name)
		}
		t := tables[ref.Name]

		switch ref.Name {
		case DatasetCustomers:
			customers, err = decodeAs[Customer](def, t)
		case DatasetOrders:
			orders, err = decodeAs[Order](def, t)
		case DatasetOrderDetails:
			details, err = decodeAs[OrderDetail](def, t)
		default:
			_, err = DecodeTable(def, t)
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s from %s: %w", ref.Name, t.Source, err)
		}

		statuses = append(statuses, DatasetStatus{
			Key:    ref.Name,
			Label:  def.Info.Label,
			Source: t.Source,
			Format: t.Format,
			Rows:   t.Len(),
		})
	}

	for _, name := range []string{DatasetCustomers, DatasetOrders, DatasetOrderDetails} {
		if _, ok := tables[name]; !ok {
			return nil, fmt.Errorf("unknown dataset: %s is not configured", name)
		}
	}

	snap := NewSnapshot(customers, orders, details)
	snap.Datasets = statuses

	if snap.OrphanOrders > 0 {
		slog.Warn("orders without a matching customer", "snapshot_id", snap.ID, "count", snap.OrphanOrders)
	}
	if snap.OrphanDetails > 0 {
		slog.Warn("line items without a matching order", "snapshot_id", snap.ID, "count", snap.OrphanDetails)
	}
	slog.Info("snapshot loaded",
		"snapshot_id", snap.ID,
		"customers", len(customers),
		"orders", len(orders),
		"order_details", len(details),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return snap, nil
}

// Search finds customers by first or last name.
func (s *Service) Search(ctx context.Context, query string) (SearchResult, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	return snap.Search(query), nil
}

// History returns the order history of a known customer.
func (s *Service) History(ctx context.Context, customerID string) (History, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return History{}, err
	}
	if _, ok := snap.Customer(customerID); !ok {
		return History{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}
	return snap.History(customerID), nil
}

// Lookup searches and returns a display panel for every match.
func (s *Service) Lookup(ctx context.Context, query string) (LookupResult, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return LookupResult{}, err
	}
	return snap.Lookup(query), nil
}

// Status describes the loaded snapshot.
func (s *Service) Status(ctx context.Context) (Status, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Status{}, err
	}
	return snap.Status(), nil
}
