package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the health payload.
type Status struct {
	OK            bool   `json:"ok"`
	MetadataStore string `json:"metadataStore"`
	ObjectStore   string `json:"objectStore"`
	Error         string `json:"error,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB            Pinger
	MetadataStore string
	ObjectStore   string
}

// NewService constructs a new health service. db may be nil for the in-memory store.
func NewService(db Pinger, metadataStore, objectStore string) *Service {
	return &Service{DB: db, MetadataStore: metadataStore, ObjectStore: objectStore}
}

// Status reports whether the metadata store is reachable.
func (s *Service) Status(ctx context.Context) Status {
	if s == nil {
		return Status{OK: true}
	}
	out := Status{OK: true, MetadataStore: s.MetadataStore, ObjectStore: s.ObjectStore}
	if s.DB == nil {
		return out
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		out.OK = false
		out.Error = err.Error()
	}
	return out
}
