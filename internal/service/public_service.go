package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/zerohunger/portal/internal/backend"
	"github.com/zerohunger/portal/internal/domain"
)

// PublicService backs the welcome page.
type PublicService struct {
	backend *backend.Client
	logger  *zap.Logger
}

// NewPublicService builds the service.
func NewPublicService(client *backend.Client, logger *zap.Logger) *PublicService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicService{backend: client, logger: logger}
}

// Welcome is the public landing page data.
type Welcome struct {
	Stats      domain.PublicStats
	Donors     []domain.PublicMember
	Volunteers []domain.PublicMember
	Deliveries []domain.DeliveryRecord
}

// Welcome fetches stats, donors, volunteers and deliveries one after another. The
// page renders whatever arrived before the first failure; a session expiry is the
// only error returned.
func (s *PublicService) Welcome(ctx context.Context, caller backend.Caller) (*Welcome, error) {
	out := &Welcome{Donors: []domain.PublicMember{}, Volunteers: []domain.PublicMember{}, Deliveries: []domain.DeliveryRecord{}}

	stats, err := s.backend.PublicStats(ctx, caller)
	if err != nil {
		return s.partial(out, "public_stats", err)
	}
	out.Stats = *stats

	if out.Donors, err = s.backend.PublicDonors(ctx, caller); err != nil {
		out.Donors = []domain.PublicMember{}
		return s.partial(out, "public_donors", err)
	}
	if out.Volunteers, err = s.backend.PublicVolunteers(ctx, caller); err != nil {
		out.Volunteers = []domain.PublicMember{}
		return s.partial(out, "public_volunteers", err)
	}
	if out.Deliveries, err = s.backend.PublicDeliveries(ctx, caller); err != nil {
		out.Deliveries = []domain.DeliveryRecord{}
		return s.partial(out, "public_deliveries", err)
	}
	return out, nil
}

func (s *PublicService) partial(out *Welcome, stage string, err error) (*Welcome, error) {
	if errors.Is(err, backend.ErrUnauthorized) {
		return nil, err
	}
	s.logger.Warn("welcome page data incomplete", zap.String("stage", stage), zap.Error(err))
	return out, nil
}
