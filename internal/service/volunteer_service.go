package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zerohunger/portal/internal/backend"
	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/listing"
	"github.com/zerohunger/portal/internal/media"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

// User-facing messages of the volunteer views.
const (
	MsgAvailableLoadFailed = "Failed to load available food"
	MsgReserved            = "Added to pickup cart"
	MsgReserveFailed       = "Pickup failed"
	MsgCartLoadFailed      = "Failed to load pickup cart"
	MsgPicked              = "Marked as picked"
	MsgPickFailed          = "Pick failed"
	MsgRemoved             = "Removed from pickup cart"
	MsgRemoveFailed        = "Remove failed"
	MsgDeliveryRequired    = "Delivery address and image are required"
	MsgDelivered           = "Delivered successfully!"
	MsgDeliveryFailed      = "Delivery failed"
	MsgProfileLoadFailed   = "Failed to load volunteer profile"
	MsgNotReserved         = "Only reserved items can be picked or removed"
	MsgNotPicked           = "Only picked items can be delivered"
)

// VolunteerService backs the volunteer dashboard, pickup cart and profile.
type VolunteerService struct {
	backend *backend.Client
	updates *FoodUpdates
	logger  *zap.Logger
	now     func() time.Time
}

// VolunteerDependencies bundles collaborators of the volunteer service.
type VolunteerDependencies struct {
	Backend *backend.Client
	Updates *FoodUpdates
	Logger  *zap.Logger
}

// NewVolunteerService builds the service.
func NewVolunteerService(deps VolunteerDependencies) *VolunteerService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VolunteerService{backend: deps.Backend, updates: deps.Updates, logger: logger, now: time.Now}
}

// AvailableQuery selects the window of available food.
type AvailableQuery struct {
	Search   string
	Category string
	Page     int
}

// VolunteerDashboard is the available-food view.
type VolunteerDashboard struct {
	Query       AvailableQuery
	Foods       listing.Page[listing.Card]
	FoodUpdated int64
}

// Dashboard lists available food with search, category filter and paging.
// FoodUpdated is the baseline the page polls against.
func (s *VolunteerService) Dashboard(ctx context.Context, caller backend.Caller, q AvailableQuery) (*VolunteerDashboard, error) {
	foods, err := s.backend.AvailableFoods(ctx, caller)
	if err != nil {
		return nil, withFallback(err, MsgAvailableLoadFailed)
	}
	filtered := listing.FilterFoods(foods, listing.FoodFilter{Query: q.Search, Category: q.Category})
	page := listing.Paginate(listing.Cards(filtered, s.now()), q.Page, listing.VolunteerAvailablePageSize)
	q.Page = page.Number
	return &VolunteerDashboard{
		Query:       q,
		Foods:       page,
		FoodUpdated: s.updates.Last(ctx, caller.SessionID),
	}, nil
}

// Reserve puts an available listing into the volunteer's cart.
func (s *VolunteerService) Reserve(ctx context.Context, caller backend.Caller, id string) error {
	if _, err := s.backend.ReserveFood(ctx, caller, id); err != nil {
		return withFallback(err, MsgReserveFailed)
	}
	s.updates.Touch(ctx, caller.SessionID, id, "reserve")
	return nil
}

// Cart is the paginated pickup cart.
type Cart struct {
	Foods listing.Page[listing.Card]
}

// Cart lists the volunteer's reserved and picked listings.
func (s *VolunteerService) Cart(ctx context.Context, caller backend.Caller, page int) (*Cart, error) {
	foods, err := s.backend.MyCart(ctx, caller)
	if err != nil {
		return nil, withFallback(err, MsgCartLoadFailed)
	}
	return &Cart{Foods: listing.Paginate(listing.Cards(foods, s.now()), page, listing.CartPageSize)}, nil
}

// Pick marks a reserved cart entry as picked up.
func (s *VolunteerService) Pick(ctx context.Context, caller backend.Caller, id string) error {
	if err := s.requireCartAction(ctx, caller, id, MsgPickFailed, func(a listing.CartActions) bool { return a.Pick }, MsgNotReserved); err != nil {
		return err
	}
	if _, err := s.backend.PickFood(ctx, caller, id); err != nil {
		return withFallback(err, MsgPickFailed)
	}
	s.updates.Touch(ctx, caller.SessionID, id, "pick")
	return nil
}

// Remove returns a reserved cart entry to the available pool.
func (s *VolunteerService) Remove(ctx context.Context, caller backend.Caller, id string) error {
	if err := s.requireCartAction(ctx, caller, id, MsgRemoveFailed, func(a listing.CartActions) bool { return a.Remove }, MsgNotReserved); err != nil {
		return err
	}
	if _, err := s.backend.UnreserveFood(ctx, caller, id); err != nil {
		return withFallback(err, MsgRemoveFailed)
	}
	s.updates.Touch(ctx, caller.SessionID, id, "unreserve")
	return nil
}

// DeliverInput is the proof-of-delivery form.
type DeliverInput struct {
	Address string
	Image   string
	Notes   string
}

// Deliver completes a picked cart entry. Address and image are required before
// anything is sent.
func (s *VolunteerService) Deliver(ctx context.Context, caller backend.Caller, id string, in DeliverInput) error {
	if blank(in.Address) || blank(in.Image) {
		return apperrors.NewValidationError(MsgDeliveryRequired, nil)
	}
	if !media.ValidDataURL(in.Image) {
		return apperrors.NewValidationError(MsgDeliveryRequired, map[string]any{"image": "not an image data url"})
	}
	if err := s.requireCartAction(ctx, caller, id, MsgDeliveryFailed, func(a listing.CartActions) bool { return a.Deliver }, MsgNotPicked); err != nil {
		return err
	}
	if _, err := s.backend.DeliverFood(ctx, caller, id, backend.DeliverRequest{
		DeliveryAddress: in.Address,
		DeliveryImage:   in.Image,
		DeliveryNotes:   in.Notes,
	}); err != nil {
		return withFallback(err, MsgDeliveryFailed)
	}
	s.updates.Touch(ctx, caller.SessionID, id, "deliver")
	return nil
}

// VolunteerProfile is the joined profile view.
type VolunteerProfile struct {
	Profile    domain.Profile
	Platform   domain.PlatformStats
	Search     string
	Deliveries listing.Page[domain.DeliveryRecord]
}

// Profile loads profile, deliveries and platform stats concurrently and pages the
// deliveries matching search.
func (s *VolunteerService) Profile(ctx context.Context, caller backend.Caller, search string, page int) (*VolunteerProfile, error) {
	var (
		profile    *domain.Profile
		deliveries []domain.DeliveryRecord
		platform   *domain.PlatformStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.backend.VolunteerProfile(gctx, caller)
		return err
	})
	g.Go(func() error {
		var err error
		deliveries, err = s.backend.VolunteerDeliveries(gctx, caller)
		return err
	})
	g.Go(func() error {
		var err error
		platform, err = s.backend.PlatformStats(gctx, caller)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, withFallback(err, MsgProfileLoadFailed)
	}

	filtered := listing.FilterDeliveries(deliveries, search)
	return &VolunteerProfile{
		Profile:    *profile,
		Platform:   *platform,
		Search:     search,
		Deliveries: listing.Paginate(filtered, page, listing.VolunteerDeliveriesPageSize),
	}, nil
}

func (s *VolunteerService) requireCartAction(ctx context.Context, caller backend.Caller, id, fallback string, allowed func(listing.CartActions) bool, denied string) error {
	foods, err := s.backend.MyCart(ctx, caller)
	if err != nil {
		return withFallback(err, fallback)
	}
	for _, f := range foods {
		if f.ID != id {
			continue
		}
		if !allowed(listing.CartActionsFor(f.Status)) {
			return apperrors.NewValidationError(denied, map[string]any{"status": f.Status})
		}
		return nil
	}
	return apperrors.NewNotFound("cart item", map[string]any{"id": id})
}
