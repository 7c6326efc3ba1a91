package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/zerohunger/portal/internal/backend"
	"github.com/zerohunger/portal/internal/backend/backendtest"
	"github.com/zerohunger/portal/internal/config"
	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/events"
	"github.com/zerohunger/portal/internal/session"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

const pixel = "data:image/png;base64,iVBORw0KGgo="

type harness struct {
	fake       *backendtest.Server
	client     *backend.Client
	dispatcher events.Dispatcher
	signals    *session.MemorySignals
	sessions   *session.Manager
	auth       *AuthService
	donor      *DonorService
	volunteer  *VolunteerService
	public     *PublicService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		fake:       backendtest.New(t),
		dispatcher: events.NewInMemoryDispatcher(),
		signals:    session.NewMemorySignals(),
	}
	h.client = backend.NewClient(config.BackendConfig{BaseURL: h.fake.URL, TimeoutSeconds: 5}, backend.ClientDependencies{Dispatcher: h.dispatcher})
	h.sessions = session.NewManager(config.SessionConfig{TTLMinutes: 60}, session.ManagerDependencies{Store: session.NewMemoryStore()})
	updates := NewFoodUpdates(h.signals, h.dispatcher, nil)
	h.auth = NewAuthService(AuthDependencies{Backend: h.client, Sessions: h.sessions})
	h.donor = NewDonorService(DonorDependencies{Backend: h.client, Updates: updates})
	h.volunteer = NewVolunteerService(VolunteerDependencies{Backend: h.client, Updates: updates})
	h.public = NewPublicService(h.client, nil)
	return h
}

func wantMessage(t *testing.T, op string, err error, code, message string) {
	t.Helper()
	if !apperrors.HasCode(err, code) {
		t.Fatalf("%s: want code %s got %v", op, code, err)
	}
	if got := apperrors.ToDomainError(err).Message; got != message {
		t.Fatalf("%s: want message %q got %q", op, message, got)
	}
}

func TestRegisterRequiresEveryField(t *testing.T) {
	h := newHarness(t)
	sess := &domain.Session{ID: "s1"}
	in := RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "pw", Phone: "99", Address: "Main St", Lat: "12.9"}

	err := h.auth.Register(context.Background(), sess, in)
	wantMessage(t, "Register", err, apperrors.CodeValidation, MsgAllFieldsMandatory)
	if n := len(h.fake.Requests()); n != 0 {
		t.Fatalf("Register: validation failure must not reach the backend, saw %d requests", n)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	sess := &domain.Session{ID: "s1"}

	err := h.auth.Register(ctx, sess, RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "pw", Phone: "99",
		Address: "Main St", Lat: "12.9", Lng: "77.5",
	})
	if err != nil {
		t.Fatalf("Register: unexpected error: %v", err)
	}
	if err := h.auth.Register(ctx, sess, RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "pw", Phone: "99",
		Address: "Main St", Lat: "12.9", Lng: "77.5",
	}); apperrors.ToDomainError(err).Message != "User already exists" {
		t.Fatalf("Register duplicate: want backend message, got %v", err)
	}

	role, err := h.auth.Login(ctx, sess, "asha@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: unexpected error: %v", err)
	}
	if role != domain.RoleDonor || sess.Role != domain.RoleDonor || sess.Credential == "" {
		t.Fatalf("Login: session not signed in as donor: %+v", sess)
	}

	h.auth.Logout(sess)
	if sess.Authenticated() || sess.Credential != "" || sess.Role != "" {
		t.Fatalf("Logout: pair not cleared: %+v", sess)
	}
}

func TestLoginFailures(t *testing.T) {
	h := newHarness(t)
	h.fake.AddAccount(domain.RoleVolunteer, "Vee", "vee@example.com", "pw")
	sess := &domain.Session{ID: "s1"}

	_, err := h.auth.Login(context.Background(), sess, "vee@example.com", "wrong")
	wantMessage(t, "Login", err, apperrors.CodeBackend, "Invalid credentials")
	if sess.Authenticated() {
		t.Fatalf("Login: failed login signed the session in")
	}

	h.fake.Close()
	_, err = h.auth.Login(context.Background(), sess, "vee@example.com", "pw")
	wantMessage(t, "Login unreachable", err, apperrors.CodeUnavailable, MsgLoginFailed)
}

func TestLoginRejectsResponseWithoutRole(t *testing.T) {
	h := newHarness(t)
	h.fake.AddAccount("", "Nobody", "nobody@example.com", "pw")
	sess := &domain.Session{ID: "s1"}

	_, err := h.auth.Login(context.Background(), sess, "nobody@example.com", "pw")
	wantMessage(t, "Login", err, apperrors.CodeBackend, MsgLoginFailed)
	if sess.Credential != "" || sess.Role != "" || sess.ID != "s1" {
		t.Fatalf("Login: half pair stored: %+v", sess)
	}
}

func TestDonorDashboardJoinsThenLists(t *testing.T) {
	h := newHarness(t)
	token := h.fake.AddAccount(domain.RoleDonor, "Dee", "dee@example.com", "pw")
	for i := 0; i < 7; i++ {
		h.fake.SeedFood("dee@example.com", domain.FoodListing{FoodName: "Meal", Quantity: "5"})
	}
	caller := backend.Caller{SessionID: "s1", Credential: token}

	view, err := h.donor.Dashboard(context.Background(), caller, 2)
	if err != nil {
		t.Fatalf("Dashboard: unexpected error: %v", err)
	}
	if view.Profile.Name != "Dee" || view.Stats.Total != 7 || view.Platform.TotalPosted != 7 {
		t.Fatalf("Dashboard: unexpected joined data %+v", view)
	}
	if view.Foods.Number != 2 || len(view.Foods.Items) != 2 || view.Foods.TotalPages != 2 {
		t.Fatalf("Dashboard: unexpected page %+v", view.Foods)
	}

	reqs := h.fake.Requests()
	if last := reqs[len(reqs)-1]; last.Path != "/api/food/available" {
		t.Fatalf("Dashboard: available list must be fetched last, got %s", last.Path)
	}
	if len(reqs) != 4 {
		t.Fatalf("Dashboard: want 4 backend calls got %d", len(reqs))
	}
}

func TestDonorDashboardFailure(t *testing.T) {
	h := newHarness(t)
	token := h.fake.AddAccount(domain.RoleDonor, "Dee", "dee@example.com", "pw")
	h.fake.FailPath("/api/food/donor-stats", http.StatusInternalServerError)

	_, err := h.donor.Dashboard(context.Background(), backend.Caller{SessionID: "s1", Credential: token}, 1)
	if err == nil {
		t.Fatalf("Dashboard: want error")
	}
	if h.fake.CountPath("/api/food/available") != 0 {
		t.Fatalf("Dashboard: list fetched after a failed join")
	}
}

func TestAddFoodValidationOrder(t *testing.T) {
	h := newHarness(t)
	valid := AddFoodInput{
		FoodName: "Dal", Quantity: "10", ItemCategory: domain.FoodCategoryCooked,
		ExpiryDateTime: "2030-01-01T20:00", IsSameAsLocation: true, Lat: "12.5", Lng: "77.25", Image: pixel,
	}

	cases := []struct {
		name   string
		mutate func(*AddFoodInput)
		want   string
	}{
		{name: "no name", mutate: func(in *AddFoodInput) { in.FoodName = ""; in.Image = "" }, want: MsgRequiredFields},
		{name: "no coordinates", mutate: func(in *AddFoodInput) { in.Lng = "" }, want: MsgRequiredFields},
		{name: "manual without address", mutate: func(in *AddFoodInput) { in.IsSameAsLocation = false; in.Image = "" }, want: MsgPickupAddress},
		{name: "no image", mutate: func(in *AddFoodInput) { in.Image = ""; in.ExpiryDateTime = "" }, want: MsgImageRequired},
		{name: "cooked no expiry", mutate: func(in *AddFoodInput) { in.ExpiryDateTime = "" }, want: "Expiry date & time required for cooked food"},
		{name: "packed no date", mutate: func(in *AddFoodInput) { in.ItemCategory = domain.FoodCategoryPacked }, want: "Expiry date required for packed items"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			err := h.donor.AddFood(context.Background(), backend.Caller{SessionID: "s1", Credential: "t"}, in)
			wantMessage(t, "AddFood", err, apperrors.CodeValidation, tc.want)
		})
	}
	if n := len(h.fake.Requests()); n != 0 {
		t.Fatalf("AddFood: validation failures reached the backend %d times", n)
	}
}

func TestAddFoodSameAsLocationPacked(t *testing.T) {
	h := newHarness(t)
	token := h.fake.AddAccount(domain.RoleDonor, "Dee", "dee@example.com", "pw")
	caller := backend.Caller{SessionID: "s1", Credential: token}

	err := h.donor.AddFood(context.Background(), caller, AddFoodInput{
		FoodName: "Biscuits", Quantity: "3 boxes", ItemCategory: domain.FoodCategoryPacked,
		ExpiryDateOnly: "2030-05-01", IsSameAsLocation: true, Address: "ignored",
		Lat: "12.5", Lng: "77.25", Image: pixel,
	})
	if err != nil {
		t.Fatalf("AddFood: unexpected error: %v", err)
	}

	mine, err := h.donor.MyFoods(context.Background(), caller, MyFoodsQuery{})
	if err != nil || mine.Foods.Total != 1 {
		t.Fatalf("MyFoods: want one listing, got %+v (%v)", mine, err)
	}
	got := mine.Foods.Items[0]
	if got.Address != "Lat: 12.5, Lng: 77.25" || got.Location != (domain.Location{Lat: 12.5, Lng: 77.25}) {
		t.Fatalf("AddFood: unexpected location fields %+v", got.FoodListing)
	}
	want := time.Date(2030, 5, 1, 23, 59, 0, 0, time.Local)
	if !got.ExpiryTime.Equal(want) {
		t.Fatalf("AddFood: expiry want=%s got=%s", want, got.ExpiryTime.Time)
	}
	if last, _ := h.signals.Last(context.Background(), "s1"); last.IsZero() {
		t.Fatalf("AddFood: food update signal not touched")
	}
}

func TestMyFoodsGates(t *testing.T) {
	h := newHarness(t)
	token := h.fake.AddAccount(domain.RoleDonor, "Dee", "dee@example.com", "pw")
	caller := backend.Caller{SessionID: "s1", Credential: token}
	ctx := context.Background()
	reserved := h.fake.SeedFood("dee@example.com", domain.FoodListing{FoodName: "Rice", Status: domain.FoodStatusReserved})
	expired := h.fake.SeedFood("dee@example.com", domain.FoodListing{FoodName: "Bread", Status: domain.FoodStatusExpired})
	available := h.fake.SeedFood("dee@example.com", domain.FoodListing{FoodName: "Soup"})

	err := h.donor.UpdateFood(ctx, caller, reserved, UpdateFoodInput{FoodName: "x"})
	wantMessage(t, "UpdateFood reserved", err, apperrors.CodeValidation, MsgOnlyAvailableEdits)
	err = h.donor.DeleteFood(ctx, caller, reserved)
	wantMessage(t, "DeleteFood reserved", err, apperrors.CodeValidation, MsgOnlyRemovableDeletes)

	if err := h.donor.UpdateFood(ctx, caller, available, UpdateFoodInput{FoodName: "Tomato Soup", Quantity: "4", ExpiryTime: "2030-01-01T10:00", Address: "Hall"}); err != nil {
		t.Fatalf("UpdateFood available: unexpected error: %v", err)
	}
	if f, _ := h.fake.Food(available); f.FoodName != "Tomato Soup" || f.Address != "Hall" {
		t.Fatalf("UpdateFood: backend not updated: %+v", f)
	}
	if err := h.donor.DeleteFood(ctx, caller, expired); err != nil {
		t.Fatalf("DeleteFood expired: unexpected error: %v", err)
	}
	if _, ok := h.fake.Food(expired); ok {
		t.Fatalf("DeleteFood: listing still present")
	}

	view, err := h.donor.MyFoods(ctx, caller, MyFoodsQuery{Search: "SOUP", Status: "available"})
	if err != nil || view.Foods.Total != 1 {
		t.Fatalf("MyFoods filter: want 1 got %+v (%v)", view, err)
	}
}

func TestVolunteerCartFlow(t *testing.T) {
	h := newHarness(t)
	h.fake.AddAccount(domain.RoleDonor, "Dee", "dee@example.com", "pw")
	token := h.fake.AddAccount(domain.RoleVolunteer, "Vee", "vee@example.com", "pw")
	caller := backend.Caller{SessionID: "s2", Credential: token}
	ctx := context.Background()
	id := h.fake.SeedFood("dee@example.com", domain.FoodListing{FoodName: "Khichdi", ItemCategory: domain.FoodCategoryCooked})
	h.fake.SeedFood("dee@example.com", domain.FoodListing{FoodName: "Chips", ItemCategory: domain.FoodCategoryPacked})

	dash, err := h.volunteer.Dashboard(ctx, caller, AvailableQuery{Category: "cooked"})
	if err != nil || dash.Foods.Total != 1 || dash.FoodUpdated != 0 {
		t.Fatalf("Dashboard: unexpected view %+v (%v)", dash, err)
	}

	if err := h.volunteer.Reserve(ctx, caller, id); err != nil {
		t.Fatalf("Reserve: unexpected error: %v", err)
	}
	if err := h.volunteer.Reserve(ctx, caller, id); apperrors.ToDomainError(err).Message != "Food is reserved" {
		t.Fatalf("Reserve twice: want backend message got %v", err)
	}

	err = h.volunteer.Deliver(ctx, caller, id, DeliverInput{Address: "Shelter", Image: pixel})
	wantMessage(t, "Deliver before pick", err, apperrors.CodeValidation, MsgNotPicked)

	if err := h.volunteer.Pick(ctx, caller, id); err != nil {
		t.Fatalf("Pick: unexpected error: %v", err)
	}
	err = h.volunteer.Remove(ctx, caller, id)
	wantMessage(t, "Remove after pick", err, apperrors.CodeValidation, MsgNotReserved)

	before := len(h.fake.Requests())
	err = h.volunteer.Deliver(ctx, caller, id, DeliverInput{Address: "Shelter"})
	wantMessage(t, "Deliver without image", err, apperrors.CodeValidation, MsgDeliveryRequired)
	if len(h.fake.Requests()) != before {
		t.Fatalf("Deliver: validation failure reached the backend")
	}

	if err := h.volunteer.Deliver(ctx, caller, id, DeliverInput{Address: "Shelter", Image: pixel, Notes: "thanks"}); err != nil {
		t.Fatalf("Deliver: unexpected error: %v", err)
	}
	profile, err := h.volunteer.Profile(ctx, caller, "khich", 1)
	if err != nil {
		t.Fatalf("Profile: unexpected error: %v", err)
	}
	if profile.Profile.KarmaPoints != 10 || profile.Deliveries.Total != 1 || profile.Platform.TotalDelivered != 1 {
		t.Fatalf("Profile: unexpected view %+v", profile)
	}

	dash, err = h.volunteer.Dashboard(ctx, caller, AvailableQuery{})
	if err != nil || dash.FoodUpdated == 0 {
		t.Fatalf("Dashboard: want foodUpdated baseline after changes, got %+v (%v)", dash, err)
	}
}

func TestRemoveReturnsListingToPool(t *testing.T) {
	h := newHarness(t)
	h.fake.AddAccount(domain.RoleDonor, "Dee", "dee@example.com", "pw")
	token := h.fake.AddAccount(domain.RoleVolunteer, "Vee", "vee@example.com", "pw")
	caller := backend.Caller{SessionID: "s2", Credential: token}
	ctx := context.Background()
	id := h.fake.SeedFood("dee@example.com", domain.FoodListing{FoodName: "Idli"})

	var updates []events.FoodUpdatedPayload
	h.dispatcher.Subscribe(events.EventFoodUpdated, func(_ context.Context, e events.Event) error {
		updates = append(updates, e.Payload.(events.FoodUpdatedPayload))
		return nil
	})

	if err := h.volunteer.Reserve(ctx, caller, id); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := h.volunteer.Remove(ctx, caller, id); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if f, _ := h.fake.Food(id); f.Status != domain.FoodStatusAvailable {
		t.Fatalf("Remove: status want available got %s", f.Status)
	}
	if len(updates) != 2 || updates[1].Action != "unreserve" {
		t.Fatalf("Remove: unexpected food update events %+v", updates)
	}
}

func TestUnauthorizedPropagates(t *testing.T) {
	h := newHarness(t)
	token := h.fake.AddAccount(domain.RoleVolunteer, "Vee", "vee@example.com", "pw")
	h.fake.RevokeTokens()

	var invalidated string
	h.dispatcher.Subscribe(events.EventSessionInvalidated, func(_ context.Context, e events.Event) error {
		invalidated = e.SessionID
		return nil
	})

	_, err := h.volunteer.Cart(context.Background(), backend.Caller{SessionID: "s9", Credential: token}, 1)
	if !errors.Is(err, backend.ErrUnauthorized) {
		t.Fatalf("Cart: want ErrUnauthorized got %v", err)
	}
	if invalidated != "s9" {
		t.Fatalf("Cart: session s9 not invalidated, got %q", invalidated)
	}
}

func TestWelcomeRendersPartialData(t *testing.T) {
	h := newHarness(t)
	h.fake.AddAccount(domain.RoleDonor, "Dee", "dee@example.com", "pw")
	h.fake.FailPath("/api/food/public/volunteers", http.StatusInternalServerError)

	view, err := h.public.Welcome(context.Background(), backend.Caller{})
	if err != nil {
		t.Fatalf("Welcome: unexpected error: %v", err)
	}
	if view.Stats.Donors != 1 || len(view.Donors) != 1 {
		t.Fatalf("Welcome: earlier stages lost: %+v", view)
	}
	if len(view.Volunteers) != 0 || len(view.Deliveries) != 0 {
		t.Fatalf("Welcome: later stages should be empty: %+v", view)
	}
	if h.fake.CountPath("/api/food/public/deliveries") != 0 {
		t.Fatalf("Welcome: fetching continued after a failure")
	}
}
