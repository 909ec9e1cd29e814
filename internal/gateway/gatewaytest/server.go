// Package gatewaytest provides an in-process fake of the ClusterView
// gateway for tests: seeded collections, a user registry, and the same
// wire contracts the real backend exposes.
package gatewaytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"clusterview/internal/domain/resource"
)

// Account is one registered user in the fake registry.
type Account struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	FavoriteAnimal string `json:"favoriteAnimal"`
	ContactNumber  string `json:"contactNumber"`
}

// Call records one mutation request for assertions.
type Call struct {
	Path   string
	Fields map[string][]string
	Files  map[string][]string
	Body   map[string]any
}

// Server is the fake gateway state. Zero value is not usable; use New.
type Server struct {
	mu sync.Mutex

	accounts    map[string]Account
	collections map[string][]resource.Record
	saved       map[string]map[string][]resource.Record
	otps        map[string]string

	// failures maps a path to an error message returned instead of the
	// normal response.
	failures map[string]string

	calls []Call

	router chi.Router
}

func New() *Server {
	s := &Server{
		accounts:    make(map[string]Account),
		collections: make(map[string][]resource.Record),
		saved:       make(map[string]map[string][]resource.Record),
		otps:        make(map[string]string),
		failures:    make(map[string]string),
	}
	s.routes()
	return s
}

// Handler returns the fake's HTTP handler for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Seed replaces the collection for one resource name.
func (s *Server) Seed(name string, records ...resource.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[name] = records
}

// AddAccount registers a user that can log in.
func (s *Server) AddAccount(acc Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[acc.Email] = acc
}

// SetOTP fixes the code expected from the given address.
func (s *Server) SetOTP(email, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[email] = code
}

// FailWith makes the given path answer with an error payload.
func (s *Server) FailWith(path, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = message
}

// Calls returns every recorded mutation call so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Collection returns the current state of one seeded collection.
func (s *Server) Collection(name string) []resource.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]resource.Record, len(s.collections[name]))
	copy(out, s.collections[name])
	return out
}

func (s *Server) routes() {
	r := chi.NewRouter()

	r.Post("/login", s.handleLogin)
	r.Post("/register", s.handleRegister)
	r.Post("/send-otp", s.handleSendOTP)
	r.Post("/verify-otp", s.handleVerifyOTP)
	r.Post("/forgot-password", s.handleForgotPassword)

	r.Get("/fetch-all-foods", s.fetchAll("food"))
	r.Get("/fetch-all-jobs", s.fetchAll("job"))
	r.Get("/fetch-all-rooms", s.fetchAll("room"))
	r.Get("/fetch-all-users", s.fetchAccounts)
	r.Get("/fetch-all-queries", s.fetchAll("query"))

	r.Post("/fetch-food", s.fetchSelf("food"))
	r.Post("/fetch-rooms", s.fetchSelf("room"))
	r.Post("/search-job", s.fetchSelf("job"))

	r.Post("/search-food", s.fetchSelf("food"))
	r.Post("/search-room", s.handleSearchRooms)
	r.Get("/search-job", s.handleSearchJobs)

	r.Post("/insert-food", s.insert("food"))
	r.Post("/insert-job", s.insert("job"))
	r.Post("/insert-room", s.insert("room"))

	r.Post("/update-food", s.update("food", "foodId"))
	r.Post("/update-job", s.update("job", "jobId"))
	r.Post("/update-room", s.update("room", "roomId"))

	r.Post("/delete-food", s.remove("food", "foodId"))
	r.Post("/delete-job", s.remove("job", "jobId"))
	r.Post("/delete-room", s.remove("room", "roomId"))

	r.Post("/get-user-details", s.handleUserDetails)
	r.Post("/update-user-details", s.handleUpdateUserDetails)

	r.Post("/save-food", s.save("food"))
	r.Post("/save-job", s.save("job"))
	r.Post("/save-room", s.save("room"))
	r.Delete("/unsave-food", s.unsave("food", "foodId"))
	r.Delete("/unsave-job", s.unsave("job", "jobId"))
	r.Delete("/unsave-room", s.unsave("room", "roomId"))
	r.Get("/get-saved-foods", s.listSaved("food"))
	r.Get("/get-saved-jobs", s.listSaved("job"))
	r.Get("/get-saved-rooms", s.listSaved("room"))

	r.Post("/submit-query", s.handleSubmitQuery)

	s.router = r
}

func (s *Server) failed(w http.ResponseWriter, path string) bool {
	if msg, ok := s.failures[path]; ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return true
	}
	return false
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed(w, r.URL.Path) {
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	acc, ok := s.accounts[body.Email]
	if !ok || acc.Password != body.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Login Successful"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed(w, r.URL.Path) {
		return
	}

	var acc Account
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	if _, exists := s.accounts[acc.Email]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "User already exists"})
		return
	}

	s.accounts[acc.Email] = acc
	writeJSON(w, http.StatusOK, map[string]string{"message": "Registration Successful"})
}

func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed(w, r.URL.Path) {
		return
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	if _, ok := s.otps[body.Email]; !ok {
		s.otps[body.Email] = "123456"
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent"})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed(w, r.URL.Path) {
		return
	}

	var body struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	if s.otps[body.Email] != body.OTP {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid OTP"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP verified"})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed(w, r.URL.Path) {
		return
	}

	var body struct {
		Email          string `json:"email"`
		FavoriteAnimal string `json:"favoriteAnimal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	acc, ok := s.accounts[body.Email]
	if !ok || acc.FavoriteAnimal != body.FavoriteAnimal {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Incorrect recovery answer"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"password": acc.Password})
}

func (s *Server) fetchAll(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failed(w, r.URL.Path) {
			return
		}

		if r.URL.Query().Get("email") == "" || r.URL.Query().Get("password") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}

		writeJSON(w, http.StatusOK, s.collections[name])
	}
}

func (s *Server) fetchSelf(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failed(w, r.URL.Path) {
			return
		}

		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}

		writeJSON(w, http.StatusOK, s.collections[name])
	}
}

func (s *Server) handleSearchRooms(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed(w, r.URL.Path) {
		return
	}

	var body struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		Type       string `json:"type"`
		PriceRange string `json:"priceRange"`
		Location   string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	out := make([]resource.Record, 0)
	for _, rec := range s.collections["room"] {
		if body.Type != "" {
			if roomType, _ := rec.Lookup("roomType"); roomType != body.Type {
				continue
			}
		}
		if body.Location != "" {
			location, _ := rec.Lookup("location")
			if !strings.Contains(strings.ToLower(location), strings.ToLower(body.Location)) {
				continue
			}
		}
		if body.PriceRange != "" && !priceInRange(rec, body.PriceRange) {
			continue
		}
		out = append(out, rec)
	}

	writeJSON(w, http.StatusOK, out)
}

func priceInRange(rec resource.Record, bucket string) bool {
	raw, _ := rec.Lookup("price")
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}

	if open, found := strings.CutSuffix(bucket, "+"); found {
		min, err := strconv.ParseFloat(open, 64)
		return err == nil && price >= min
	}

	low, high, found := strings.Cut(bucket, "-")
	if !found {
		return false
	}
	min, errLow := strconv.ParseFloat(low, 64)
	max, errHigh := strconv.ParseFloat(high, 64)
	return errLow == nil && errHigh == nil && price >= min && price <= max
}

func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed(w, r.URL.Path) {
		return
	}

	query := strings.ToLower(r.URL.Query().Get("query"))
	out := make([]resource.Record, 0)
	for _, rec := range s.collections["job"] {
		if query == "" {
			out = append(out, rec)
			continue
		}
		for _, field := range []string{"title", "company", "location"} {
			value, _ := rec.Lookup(field)
			if strings.Contains(strings.ToLower(value), query) {
				out = append(out, rec)
				break
			}
		}
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) fetchAccounts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed(w, r.URL.Path) {
		return
	}

	out := make([]resource.Record, 0, len(s.accounts))
	i := 0
	for _, acc := range s.accounts {
		i++
		out = append(out, resource.Record{
			"_id":            fmt.Sprintf("user-%d", i),
			"username":       acc.Username,
			"email":          acc.Email,
			"password":       acc.Password,
			"favoriteAnimal": acc.FavoriteAnimal,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) recordMultipart(r *http.Request) (Call, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return Call{}, err
	}

	call := Call{
		Path:   r.URL.Path,
		Fields: map[string][]string{},
		Files:  map[string][]string{},
	}
	for name, values := range r.MultipartForm.Value {
		call.Fields[name] = values
	}
	for name, files := range r.MultipartForm.File {
		for _, fh := range files {
			call.Files[name] = append(call.Files[name], fh.Filename)
		}
	}

	s.calls = append(s.calls, call)
	return call, nil
}

func (s *Server) insert(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failed(w, r.URL.Path) {
			return
		}

		call, err := s.recordMultipart(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form"})
			return
		}

		rec := resource.Record{"_id": fmt.Sprintf("%s-%d", name, len(s.collections[name])+1)}
		for field, values := range call.Fields {
			if field == "email" || field == "password" {
				continue
			}
			if len(values) > 0 {
				rec[field] = values[0]
			}
		}
		s.collections[name] = append(s.collections[name], rec)

		writeJSON(w, http.StatusOK, map[string]string{"message": "Inserted successfully"})
	}
}

func (s *Server) update(name, idParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failed(w, r.URL.Path) {
			return
		}

		call, err := s.recordMultipart(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form"})
			return
		}

		ids := call.Fields[idParam]
		if len(ids) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": idParam + " is required"})
			return
		}

		for i, rec := range s.collections[name] {
			if rec.ID() != ids[0] {
				continue
			}
			updated := resource.Record{}
			for k, v := range rec {
				updated[k] = v
			}
			for field, values := range call.Fields {
				if field == idParam || field == "email" || field == "password" || field == "existingImages" {
					continue
				}
				if len(values) > 0 {
					updated[field] = values[0]
				}
			}
			s.collections[name][i] = updated
			writeJSON(w, http.StatusOK, map[string]string{"message": "Updated successfully"})
			return
		}

		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Record not found"})
	}
}

func (s *Server) remove(name, idParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failed(w, r.URL.Path) {
			return
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
			return
		}
		s.calls = append(s.calls, Call{Path: r.URL.Path, Body: body})

		id, _ := body[idParam].(string)
		for i, rec := range s.collections[name] {
			if rec.ID() == id {
				s.collections[name] = append(s.collections[name][:i], s.collections[name][i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
				return
			}
		}

		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Record not found"})
	}
}

func (s *Server) handleUserDetails(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed(w, r.URL.Path) {
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	acc, ok := s.accounts[body.Email]
	if !ok || acc.Password != body.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"username":       acc.Username,
		"email":          acc.Email,
		"favoriteAnimal": acc.FavoriteAnimal,
		"contactNumber":  acc.ContactNumber,
	})
}

func (s *Server) handleUpdateUserDetails(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed(w, r.URL.Path) {
		return
	}

	var body struct {
		Email          string `json:"email"`
		Password       string `json:"password"`
		Username       string `json:"username"`
		FavoriteAnimal string `json:"favoriteAnimal"`
		ContactNumber  string `json:"contactNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	acc, ok := s.accounts[body.Email]
	if !ok || acc.Password != body.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	acc.Username = body.Username
	acc.FavoriteAnimal = body.FavoriteAnimal
	acc.ContactNumber = body.ContactNumber
	s.accounts[body.Email] = acc

	writeJSON(w, http.StatusOK, map[string]any{"updatedUser": map[string]string{
		"username":       acc.Username,
		"email":          acc.Email,
		"favoriteAnimal": acc.FavoriteAnimal,
		"contactNumber":  acc.ContactNumber,
	}})
}

func (s *Server) save(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failed(w, r.URL.Path) {
			return
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
			return
		}

		email, _ := body["userEmail"].(string)
		payload, _ := body[name].(map[string]any)
		if email == "" || payload == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userEmail and payload are required"})
			return
		}

		if s.saved[name] == nil {
			s.saved[name] = make(map[string][]resource.Record)
		}
		s.saved[name][email] = append(s.saved[name][email], resource.Record(payload))

		writeJSON(w, http.StatusOK, map[string]string{"message": "Saved successfully"})
	}
}

func (s *Server) unsave(name, idParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failed(w, r.URL.Path) {
			return
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
			return
		}

		email, _ := body["userEmail"].(string)
		id, _ := body[idParam].(string)
		items := s.saved[name][email]
		for i, rec := range items {
			if rec.ID() == id {
				s.saved[name][email] = append(items[:i], items[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "Removed successfully"})
				return
			}
		}

		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Saved item not found"})
	}
}

func (s *Server) listSaved(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failed(w, r.URL.Path) {
			return
		}

		email := r.URL.Query().Get("email")
		items := s.saved[name][email]
		if items == nil {
			items = []resource.Record{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func (s *Server) handleSubmitQuery(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed(w, r.URL.Path) {
		return
	}

	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" || body.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and query are required"})
		return
	}

	s.collections["query"] = append(s.collections["query"], resource.Record{
		"_id":   fmt.Sprintf("query-%d", len(s.collections["query"])+1),
		"name":  body.Name,
		"email": body.Email,
		"query": body.Query,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Query submitted successfully"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = w.Write(data)
}
