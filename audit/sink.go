package audit

import (
	"context"

	auth "github.com/goliatone/go-auth-api"
	"github.com/goliatone/go-auth-api/activitymap"
)

// Sink writes activity events to the audit log
type Sink struct {
	service *Service
}

var _ auth.ActivitySink = (*Sink)(nil)

func NewSink(service *Service) *Sink {
	return &Sink{service: service}
}

// Record implements auth.ActivitySink
func (s *Sink) Record(ctx context.Context, event auth.ActivityEvent) error {
	_, err := s.service.Create(ctx, activitymap.Normalize(event).Message)
	return err
}
