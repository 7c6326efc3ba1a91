// Package backendtest runs an in-memory Zero Hunger API for tests.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zerohunger/portal/internal/backend"
	"github.com/zerohunger/portal/internal/domain"
)

// Recorded is one request seen by the fake.
type Recorded struct {
	Method        string
	Path          string
	Authorization string
}

type account struct {
	profile  domain.Profile
	password string
}

type food struct {
	listing   domain.FoodListing
	owner     string
	volunteer string
}

// Server is a fake backend holding accounts, listings and deliveries in memory.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	accounts   map[string]*account
	tokens     map[string]string
	foods      []*food
	deliveries map[string][]domain.DeliveryRecord
	requests   []Recorded
	failures   map[string]int
	nextID     int
}

// New starts the fake and stops it when the test ends.
func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		accounts:   map[string]*account{},
		tokens:     map[string]string{},
		deliveries: map[string][]domain.DeliveryRecord{},
		failures:   map[string]int{},
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/login", s.login)

	mux.HandleFunc("POST /api/food/add", s.authed(domain.RoleDonor, s.addFood))
	mux.HandleFunc("GET /api/food/my-foods", s.authed(domain.RoleDonor, s.myFoods))
	mux.HandleFunc("PUT /api/food/update/{id}", s.authed(domain.RoleDonor, s.updateFood))
	mux.HandleFunc("DELETE /api/food/delete/{id}", s.authed(domain.RoleDonor, s.deleteFood))
	mux.HandleFunc("GET /api/food/donor-stats", s.authed(domain.RoleDonor, s.donorStats))
	mux.HandleFunc("GET /api/food/donor/profile", s.authed(domain.RoleDonor, s.profile))

	mux.HandleFunc("GET /api/food/available", s.authed("", s.available))
	mux.HandleFunc("POST /api/food/reserve/{id}", s.authed(domain.RoleVolunteer, s.transition(domain.FoodStatusAvailable, domain.FoodStatusReserved)))
	mux.HandleFunc("POST /api/food/unreserve/{id}", s.authed(domain.RoleVolunteer, s.transition(domain.FoodStatusReserved, domain.FoodStatusAvailable)))
	mux.HandleFunc("POST /api/food/pick/{id}", s.authed(domain.RoleVolunteer, s.transition(domain.FoodStatusReserved, domain.FoodStatusPicked)))
	mux.HandleFunc("GET /api/food/my-cart", s.authed(domain.RoleVolunteer, s.myCart))
	mux.HandleFunc("POST /api/food/deliver/{id}", s.authed(domain.RoleVolunteer, s.deliver))
	mux.HandleFunc("GET /api/food/volunteer/profile", s.authed(domain.RoleVolunteer, s.profile))
	mux.HandleFunc("GET /api/food/volunteer/deliveries", s.authed(domain.RoleVolunteer, s.volunteerDeliveries))

	mux.HandleFunc("GET /api/food/platform/stats", s.authed("", s.platformStats))
	mux.HandleFunc("GET /api/food/public/stats", s.publicStats)
	mux.HandleFunc("GET /api/food/public/donors", s.publicMembers(domain.RoleDonor))
	mux.HandleFunc("GET /api/food/public/volunteers", s.publicMembers(domain.RoleVolunteer))
	mux.HandleFunc("GET /api/food/public/deliveries", s.publicDeliveries)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Recorded{Method: r.Method, Path: r.URL.Path, Authorization: r.Header.Get("Authorization")})
		status, failing := s.failures[r.URL.Path]
		s.mu.Unlock()
		if failing {
			writeJSON(w, status, map[string]string{"message": "forced failure"})
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// AddAccount registers an account directly and returns its credential.
func (s *Server) AddAccount(role domain.Role, name, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = &account{
		profile: domain.Profile{
			ID:        s.newID("user"),
			Name:      name,
			Email:     email,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		},
		password: password,
	}
	return s.issueToken(email)
}

// SeedFood stores a listing owned by the donor and returns its id.
func (s *Server) SeedFood(ownerEmail string, listing domain.FoodListing) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing.ID = s.newID("food")
	if listing.Status == "" {
		listing.Status = domain.FoodStatusAvailable
	}
	s.foods = append(s.foods, &food{listing: listing, owner: ownerEmail})
	return listing.ID
}

// Food returns a copy of a stored listing.
func (s *Server) Food(id string) (domain.FoodListing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f := s.find(id); f != nil {
		return f.listing, true
	}
	return domain.FoodListing{}, false
}

// Profile returns the stored profile of an account.
func (s *Server) Profile(email string) (domain.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[email]
	if !ok {
		return domain.Profile{}, false
	}
	return acc.profile, true
}

// RevokeTokens makes every issued credential fail with 401.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]string{}
}

// FailPath makes every request to path answer with status.
func (s *Server) FailPath(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// Requests returns every request seen so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// CountPath returns how many requests hit path.
func (s *Server) CountPath(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *Server) issueToken(email string) string {
	token := s.newID("token")
	s.tokens[token] = email
	return token
}

func (s *Server) find(id string) *food {
	for _, f := range s.foods {
		if f.listing.ID == id {
			return f
		}
	}
	return nil
}

type handler func(w http.ResponseWriter, r *http.Request, acc *account)

func (s *Server) authed(role domain.Role, next handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		email, ok := s.tokens[token]
		acc := s.accounts[email]
		s.mu.Unlock()
		if !ok || acc == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		if role != "" && acc.profile.Role != role {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "Access denied"})
			return
		}
		next(w, r, acc)
	}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req backend.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid payload"})
		return
	}
	s.mu.Lock()
	_, exists := s.accounts[req.Email]
	s.mu.Unlock()
	if exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "User already exists"})
		return
	}
	s.AddAccount(req.Role, req.Name, req.Email, req.Password)
	s.mu.Lock()
	s.accounts[req.Email].profile.Phone = req.Phone
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registered"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req backend.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[req.Email]
	if !ok || acc.password != req.Password {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, backend.LoginResponse{AccessToken: s.issueToken(req.Email), Role: acc.profile.Role})
}

func (s *Server) addFood(w http.ResponseWriter, r *http.Request, acc *account) {
	var req backend.AddFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid payload"})
		return
	}
	expiry, err := time.ParseInLocation(domain.LocalMinuteLayout, req.ExpiryTime, time.Local)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid expiry"})
		return
	}
	s.SeedFood(acc.profile.Email, domain.FoodListing{
		FoodName:         req.FoodName,
		Quantity:         domain.Quantity(req.Quantity),
		FoodType:         req.FoodType,
		ItemCategory:     req.ItemCategory,
		ExpiryTime:       domain.Timestamp{Time: expiry},
		Location:         req.Location,
		Address:          req.Address,
		IsSameAsLocation: req.IsSameAsLocation,
		Image:            req.Image,
		CreatedAt:        domain.Timestamp{Time: time.Now().UTC()},
	})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Food added"})
}

func (s *Server) myFoods(w http.ResponseWriter, r *http.Request, acc *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.FoodListing{}
	for _, f := range s.foods {
		if f.owner == acc.profile.Email {
			out = append(out, f.listing)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateFood(w http.ResponseWriter, r *http.Request, acc *account) {
	var req backend.UpdateFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.find(r.PathValue("id"))
	if f == nil || f.owner != acc.profile.Email {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Food not found"})
		return
	}
	if f.listing.Status != domain.FoodStatusAvailable {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Only available food can be edited"})
		return
	}
	f.listing.FoodName = req.FoodName
	f.listing.Quantity = domain.Quantity(req.Quantity)
	f.listing.Address = req.Address
	if expiry, err := time.ParseInLocation(domain.LocalMinuteLayout, req.ExpiryTime, time.Local); err == nil {
		f.listing.ExpiryTime = domain.Timestamp{Time: expiry}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Food updated"})
}

func (s *Server) deleteFood(w http.ResponseWriter, r *http.Request, acc *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := r.PathValue("id")
	for i, f := range s.foods {
		if f.listing.ID == id && f.owner == acc.profile.Email {
			s.foods = append(s.foods[:i], s.foods[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Food deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Food not found"})
}

func (s *Server) donorStats(w http.ResponseWriter, r *http.Request, acc *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stats domain.DonorStats
	for _, f := range s.foods {
		if f.owner != acc.profile.Email {
			continue
		}
		stats.Total++
		switch f.listing.Status {
		case domain.FoodStatusDelivered:
			stats.Delivered++
		case domain.FoodStatusExpired:
			stats.Expired++
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request, acc *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, acc.profile)
}

func (s *Server) available(w http.ResponseWriter, r *http.Request, _ *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.FoodListing{}
	for _, f := range s.foods {
		if f.listing.Status == domain.FoodStatusAvailable {
			out = append(out, f.listing)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) transition(from, to domain.FoodStatus) handler {
	return func(w http.ResponseWriter, r *http.Request, acc *account) {
		s.mu.Lock()
		defer s.mu.Unlock()
		f := s.find(r.PathValue("id"))
		if f == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Food not found"})
			return
		}
		if f.listing.Status != from {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": fmt.Sprintf("Food is %s", f.listing.Status)})
			return
		}
		if from != domain.FoodStatusAvailable && f.volunteer != acc.profile.Email {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "Not your reservation"})
			return
		}
		f.listing.Status = to
		if to == domain.FoodStatusAvailable {
			f.volunteer = ""
		} else {
			f.volunteer = acc.profile.Email
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Food " + string(to)})
	}
}

func (s *Server) myCart(w http.ResponseWriter, r *http.Request, acc *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.FoodListing{}
	for _, f := range s.foods {
		if f.volunteer != acc.profile.Email {
			continue
		}
		if f.listing.Status == domain.FoodStatusReserved || f.listing.Status == domain.FoodStatusPicked {
			out = append(out, f.listing)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deliver(w http.ResponseWriter, r *http.Request, acc *account) {
	var req backend.DeliverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.find(r.PathValue("id"))
	if f == nil || f.volunteer != acc.profile.Email {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Food not found"})
		return
	}
	if f.listing.Status != domain.FoodStatusPicked {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Food must be picked first"})
		return
	}
	f.listing.Status = domain.FoodStatusDelivered
	acc.profile.KarmaPoints += 10
	acc.profile.DeliveriesCompleted++
	s.deliveries[acc.profile.Email] = append(s.deliveries[acc.profile.Email], domain.DeliveryRecord{
		ID:              f.listing.ID,
		FoodName:        f.listing.FoodName,
		Quantity:        f.listing.Quantity,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryImage:   req.DeliveryImage,
		DeliveryNotes:   req.DeliveryNotes,
		DeliveredAt:     domain.Timestamp{Time: time.Now().UTC()},
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Delivered"})
}

func (s *Server) volunteerDeliveries(w http.ResponseWriter, r *http.Request, acc *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]domain.DeliveryRecord{}, s.deliveries[acc.profile.Email]...)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) platformTotals() domain.PlatformStats {
	var stats domain.PlatformStats
	for _, f := range s.foods {
		stats.TotalPosted++
		switch f.listing.Status {
		case domain.FoodStatusDelivered:
			stats.TotalDelivered++
		case domain.FoodStatusExpired:
			stats.TotalExpired++
		}
	}
	return stats
}

func (s *Server) platformStats(w http.ResponseWriter, r *http.Request, _ *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.platformTotals())
}

func (s *Server) publicStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := domain.PublicStats{PlatformStats: s.platformTotals()}
	for _, acc := range s.accounts {
		switch acc.profile.Role {
		case domain.RoleDonor:
			stats.Donors++
		case domain.RoleVolunteer:
			stats.Volunteers++
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) publicMembers(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := []domain.PublicMember{}
		for _, acc := range s.accounts {
			if acc.profile.Role == role {
				out = append(out, domain.PublicMember{ID: acc.profile.ID, Name: acc.profile.Name})
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) publicDeliveries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.DeliveryRecord{}
	for _, list := range s.deliveries {
		out = append(out, list...)
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
