package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zerohunger/portal/internal/backend"
	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/geo"
	"github.com/zerohunger/portal/internal/listing"
	"github.com/zerohunger/portal/internal/media"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

// User-facing messages of the donor views.
const (
	MsgDashboardLoadFailed  = "Failed to load dashboard"
	MsgFoodsLoadFailed      = "Failed to load foods"
	MsgRequiredFields       = "All required fields must be filled"
	MsgPickupAddress        = "Pickup address is required"
	MsgImageRequired        = "Please upload an image"
	MsgItemAdded            = "Item added successfully!"
	MsgAddFailed            = "Failed to add item"
	MsgUpdateFailed         = "Update failed"
	MsgUpdated              = "Item updated"
	MsgDeleteFailed         = "Delete failed"
	MsgDeleted              = "Item deleted"
	MsgOnlyAvailableEdits   = "Only available items can be edited"
	MsgOnlyRemovableDeletes = "Only available or expired items can be deleted"
)

// DonorService backs the donor dashboard, add-food form and my-foods view.
type DonorService struct {
	backend *backend.Client
	updates *FoodUpdates
	logger  *zap.Logger
	now     func() time.Time
}

// DonorDependencies bundles collaborators of the donor service.
type DonorDependencies struct {
	Backend *backend.Client
	Updates *FoodUpdates
	Logger  *zap.Logger
}

// NewDonorService builds the service.
func NewDonorService(deps DonorDependencies) *DonorService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DonorService{backend: deps.Backend, updates: deps.Updates, logger: logger, now: time.Now}
}

// DonorDashboard is the joined dashboard view.
type DonorDashboard struct {
	Profile  domain.Profile
	Stats    domain.DonorStats
	Platform domain.PlatformStats
	Foods    listing.Page[listing.Card]
}

// Dashboard loads profile, donor stats and platform stats concurrently and, once all
// three have arrived, the community list of available food.
func (s *DonorService) Dashboard(ctx context.Context, caller backend.Caller, page int) (*DonorDashboard, error) {
	var (
		profile  *domain.Profile
		stats    *domain.DonorStats
		platform *domain.PlatformStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.backend.DonorProfile(gctx, caller)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.backend.DonorStats(gctx, caller)
		return err
	})
	g.Go(func() error {
		var err error
		platform, err = s.backend.PlatformStats(gctx, caller)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, withFallback(err, MsgDashboardLoadFailed)
	}

	foods, err := s.backend.AvailableFoods(ctx, caller)
	if err != nil {
		return nil, withFallback(err, MsgDashboardLoadFailed)
	}
	return &DonorDashboard{
		Profile:  *profile,
		Stats:    *stats,
		Platform: *platform,
		Foods:    listing.Paginate(listing.Cards(foods, s.now()), page, listing.DonorCommunityPageSize),
	}, nil
}

// AddFoodInput is the add-food form.
type AddFoodInput struct {
	FoodName         string
	Quantity         string
	FoodType         domain.FoodType
	ItemCategory     domain.FoodCategory
	ExpiryDateTime   string
	ExpiryDateOnly   string
	IsSameAsLocation bool
	Address          string
	Lat              string
	Lng              string
	Image            string
}

// AddFood validates the form in the order the page reports problems and posts it.
func (s *DonorService) AddFood(ctx context.Context, caller backend.Caller, in AddFoodInput) error {
	if blank(in.FoodName) || blank(in.Quantity) || blank(in.Lat) || blank(in.Lng) {
		return apperrors.NewValidationError(MsgRequiredFields, nil)
	}
	if !in.IsSameAsLocation && blank(in.Address) {
		return apperrors.NewValidationError(MsgPickupAddress, nil)
	}
	if blank(in.Image) {
		return apperrors.NewValidationError(MsgImageRequired, nil)
	}
	if !media.ValidDataURL(in.Image) {
		return apperrors.NewValidationError(MsgImageRequired, map[string]any{"image": "not an image data url"})
	}
	category := in.ItemCategory
	if !category.Valid() {
		category = domain.FoodCategoryCooked
	}
	expiry, err := listing.DeriveExpiry(category, in.ExpiryDateTime, in.ExpiryDateOnly)
	if err != nil {
		return err
	}
	loc, err := geo.ParseCoordinates(in.Lat, in.Lng)
	if err != nil {
		return apperrors.NewValidationError(MsgRequiredFields, map[string]any{"location": err.Error()})
	}
	address := in.Address
	if in.IsSameAsLocation {
		address = loc.DisplayAddress()
	}
	foodType := in.FoodType
	if foodType == "" {
		foodType = domain.FoodTypeVeg
	}

	if _, err := s.backend.AddFood(ctx, caller, backend.AddFoodRequest{
		FoodName:         in.FoodName,
		Quantity:         in.Quantity,
		FoodType:         foodType,
		ItemCategory:     category,
		ExpiryTime:       expiry,
		Location:         loc,
		Address:          address,
		IsSameAsLocation: in.IsSameAsLocation,
		Image:            in.Image,
	}); err != nil {
		return withFallback(err, MsgAddFailed)
	}
	s.updates.Touch(ctx, caller.SessionID, "", "add")
	return nil
}

// MyFoodsQuery selects the window of the donor's own listings.
type MyFoodsQuery struct {
	Search string
	Status string
	Page   int
}

// MyFoods is the filtered, paginated list of the donor's listings.
type MyFoods struct {
	Query MyFoodsQuery
	Foods listing.Page[listing.Card]
}

// MyFoods fetches the donor's listings and applies search, status filter and paging.
func (s *DonorService) MyFoods(ctx context.Context, caller backend.Caller, q MyFoodsQuery) (*MyFoods, error) {
	foods, err := s.backend.MyFoods(ctx, caller)
	if err != nil {
		return nil, withFallback(err, MsgFoodsLoadFailed)
	}
	filtered := listing.FilterFoods(foods, listing.FoodFilter{Query: q.Search, Status: q.Status})
	page := listing.Paginate(listing.Cards(filtered, s.now()), q.Page, listing.MyFoodsPageSize)
	q.Page = page.Number
	return &MyFoods{Query: q, Foods: page}, nil
}

// UpdateFoodInput is the edit form of a listing.
type UpdateFoodInput struct {
	FoodName   string
	Quantity   string
	ExpiryTime string
	Address    string
}

// UpdateFood edits a listing that is still available.
func (s *DonorService) UpdateFood(ctx context.Context, caller backend.Caller, id string, in UpdateFoodInput) error {
	current, err := s.ownListing(ctx, caller, id, MsgUpdateFailed)
	if err != nil {
		return err
	}
	if !listing.CanEdit(current.Status) {
		return apperrors.NewValidationError(MsgOnlyAvailableEdits, map[string]any{"status": current.Status})
	}
	if _, err := s.backend.UpdateFood(ctx, caller, id, backend.UpdateFoodRequest{
		FoodName:   in.FoodName,
		Quantity:   in.Quantity,
		ExpiryTime: in.ExpiryTime,
		Address:    in.Address,
	}); err != nil {
		return withFallback(err, MsgUpdateFailed)
	}
	s.updates.Touch(ctx, caller.SessionID, id, "update")
	return nil
}

// DeleteFood removes a listing that is available or expired.
func (s *DonorService) DeleteFood(ctx context.Context, caller backend.Caller, id string) error {
	current, err := s.ownListing(ctx, caller, id, MsgDeleteFailed)
	if err != nil {
		return err
	}
	if !listing.CanDelete(current.Status) {
		return apperrors.NewValidationError(MsgOnlyRemovableDeletes, map[string]any{"status": current.Status})
	}
	if _, err := s.backend.DeleteFood(ctx, caller, id); err != nil {
		return withFallback(err, MsgDeleteFailed)
	}
	s.updates.Touch(ctx, caller.SessionID, id, "delete")
	return nil
}

func (s *DonorService) ownListing(ctx context.Context, caller backend.Caller, id, fallback string) (*domain.FoodListing, error) {
	foods, err := s.backend.MyFoods(ctx, caller)
	if err != nil {
		return nil, withFallback(err, fallback)
	}
	for i := range foods {
		if foods[i].ID == id {
			return &foods[i], nil
		}
	}
	return nil, apperrors.NewNotFound("food", map[string]any{"id": id})
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
