// Package accounts fetches account pages from the admin API in response
// to request events and publishes the results back on the bus.
package accounts

import (
	"context"
	"log"
	"sync"
	"time"

	"outlooker/internal/api"
	"outlooker/internal/domain"
	"outlooker/internal/eventbus"
)

// Service loads account pages for the dashboard
type Service interface {
	Fetch(ctx context.Context, q domain.AccountQuery)
	IsLoading() bool
}

// service is the concrete implementation
type service struct {
	bus    eventbus.EventBus
	client *api.Client
	mu     sync.Mutex
	// Calls are not cancellable once issued; the loading flag is what
	// keeps a fast double-request from going out twice.
	loading bool
}

// NewService creates a new accounts service. It subscribes to request
// events so panels only ever publish, never call HTTP themselves.
func NewService(bus eventbus.EventBus, client *api.Client) Service {
	s := &service{
		bus:    bus,
		client: client,
	}

	bus.Subscribe(eventbus.EventAccountsRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.AccountsRequestedEvent); ok {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			s.Fetch(ctx, event.Query)
		}
	})

	return s
}

// Fetch loads one page and publishes AccountsLoaded or Error. A fetch
// issued while another is in flight is dropped.
func (s *service) Fetch(ctx context.Context, q domain.AccountQuery) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		log.Printf("Accounts fetch already in flight, dropping request for page %d", q.Page)
		return
	}
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	page, err := s.client.Accounts(ctx, q)
	if err != nil {
		if !api.IsUnauthorized(err) {
			s.bus.Publish(eventbus.ErrorEvent{Message: "Failed to load accounts", Err: err})
		}
		return
	}

	s.bus.Publish(eventbus.AccountsLoadedEvent{Page: page, Query: q})
}

// IsLoading reports whether a fetch is in flight.
func (s *service) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
