package backend_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zerohunger/portal/internal/backend"
	"github.com/zerohunger/portal/internal/backend/backendtest"
	"github.com/zerohunger/portal/internal/config"
	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/events"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

func newClient(t *testing.T, baseURL string, dispatcher events.Dispatcher) *backend.Client {
	t.Helper()
	return backend.NewClient(config.BackendConfig{BaseURL: baseURL, TimeoutSeconds: 5}, backend.ClientDependencies{Dispatcher: dispatcher})
}

func TestBearerHeaderFollowsCredential(t *testing.T) {
	fake := backendtest.New(t)
	token := fake.AddAccount(domain.RoleVolunteer, "Vee", "vee@example.com", "pw")
	client := newClient(t, fake.URL, nil)
	ctx := context.Background()

	if _, err := client.PublicStats(ctx, backend.Caller{}); err != nil {
		t.Fatalf("PublicStats: unexpected error: %v", err)
	}
	if _, err := client.AvailableFoods(ctx, backend.Caller{SessionID: "s1", Credential: token}); err != nil {
		t.Fatalf("AvailableFoods: unexpected error: %v", err)
	}

	reqs := fake.Requests()
	if len(reqs) != 2 {
		t.Fatalf("Requests: want=2 got=%d", len(reqs))
	}
	if reqs[0].Authorization != "" {
		t.Fatalf("anonymous call carried Authorization %q", reqs[0].Authorization)
	}
	if reqs[1].Authorization != "Bearer "+token {
		t.Fatalf("authenticated call Authorization want=%q got=%q", "Bearer "+token, reqs[1].Authorization)
	}
}

func TestUnauthorizedPublishesInvalidation(t *testing.T) {
	fake := backendtest.New(t)
	dispatcher := events.NewInMemoryDispatcher()
	var invalidated []string
	dispatcher.Subscribe(events.EventSessionInvalidated, func(_ context.Context, e events.Event) error {
		invalidated = append(invalidated, e.SessionID)
		return nil
	})
	client := newClient(t, fake.URL, dispatcher)

	calls := map[string]func(backend.Caller) error{
		"my_cart": func(c backend.Caller) error {
			_, err := client.MyCart(context.Background(), c)
			return err
		},
		"donor_profile": func(c backend.Caller) error {
			_, err := client.DonorProfile(context.Background(), c)
			return err
		},
		"reserve": func(c backend.Caller) error {
			_, err := client.ReserveFood(context.Background(), c, "food-1")
			return err
		},
	}
	for name, fn := range calls {
		err := fn(backend.Caller{SessionID: "sid-" + name, Credential: "stale"})
		if !errors.Is(err, backend.ErrUnauthorized) {
			t.Fatalf("%s: want ErrUnauthorized got %v", name, err)
		}
		if got := apperrors.ToDomainError(err).Message; got != "Unauthorized" {
			t.Fatalf("%s: want backend message got %q", name, got)
		}
	}
	if len(invalidated) != len(calls) {
		t.Fatalf("invalidations want=%d got=%v", len(calls), invalidated)
	}
}

func TestBackendMessagePropagates(t *testing.T) {
	fake := backendtest.New(t)
	client := newClient(t, fake.URL, nil)

	_, err := client.Login(context.Background(), backend.Caller{}, backend.LoginRequest{Email: "nobody@example.com", Password: "x"})
	if err == nil {
		t.Fatalf("Login: expected error")
	}
	if !apperrors.HasCode(err, apperrors.CodeBackend) {
		t.Fatalf("Login: want backend error got %v", err)
	}
	if got := apperrors.UserMessage(err, "Login failed"); got != "Invalid credentials" {
		t.Fatalf("Login: message want=%q got=%q", "Invalid credentials", got)
	}
}

func TestNonArrayListDecodesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"no foods"}`))
	}))
	defer srv.Close()
	client := newClient(t, srv.URL, nil)

	foods, err := client.MyFoods(context.Background(), backend.Caller{Credential: "t"})
	if err != nil {
		t.Fatalf("MyFoods: unexpected error: %v", err)
	}
	if foods == nil || len(foods) != 0 {
		t.Fatalf("MyFoods: want empty slice got %#v", foods)
	}
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	client := newClient(t, url, nil)

	_, err := client.PublicStats(context.Background(), backend.Caller{})
	if !apperrors.HasCode(err, apperrors.CodeUnavailable) {
		t.Fatalf("PublicStats: want unavailable got %v", err)
	}
}

func TestLoginReturnsCredentialAndRole(t *testing.T) {
	fake := backendtest.New(t)
	fake.AddAccount(domain.RoleDonor, "Dee", "dee@example.com", "secret")
	client := newClient(t, fake.URL, nil)

	resp, err := client.Login(context.Background(), backend.Caller{}, backend.LoginRequest{Email: "dee@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: unexpected error: %v", err)
	}
	if resp.AccessToken == "" || resp.Role != domain.RoleDonor {
		t.Fatalf("Login: unexpected response %+v", resp)
	}
}
