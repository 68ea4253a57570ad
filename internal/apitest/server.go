// Package apitest provides an in-memory fake of the ParishPortal backend
// for integration-style tests. It speaks the production wire contract: the
// JSON response envelope, the top-level token/user login shape, bearer
// tokens, and multipart uploads. Tokens are real HS256 JWTs and passwords
// are bcrypt-hashed, so the auth paths behave like the deployed service.
package apitest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/parishportal/parishportal/internal/client/models"
	"github.com/parishportal/parishportal/internal/common"
)

const defaultTokenTTL = time.Hour

type account struct {
	user models.User
	hash []byte
}

type storedFile struct {
	meta models.Resource
	data []byte
}

type storedPhoto struct {
	meta models.GalleryItem
	data []byte
	mime string
}

// Server is the fake backend. All state lives in memory and is guarded by
// a single mutex; the zero value is not usable, construct with New.
type Server struct {
	srv    *httptest.Server
	secret []byte

	mu          sync.Mutex
	nextID      int64
	users       map[int64]*account
	events      map[int64]*models.Event
	ministries  map[int64]*models.Ministry
	posts       map[int64]*models.Post
	resources   map[int64]*storedFile
	gallery     map[int64]*storedPhoto
	collections map[int64]*models.GalleryCollection

	// Base64-embedded uploads, decoded and served back raw.
	eventImages    map[int64]*rawImage
	ministryImages map[int64]*rawImage
	postImages     map[int64]*rawImage
}

type rawImage struct {
	data []byte
	mime string
}

// New starts the fake backend on a loopback listener.
func New() *Server {
	s := &Server{
		secret:      []byte("apitest-secret"),
		users:       make(map[int64]*account),
		events:      make(map[int64]*models.Event),
		ministries:  make(map[int64]*models.Ministry),
		posts:       make(map[int64]*models.Post),
		resources:   make(map[int64]*storedFile),
		gallery:     make(map[int64]*storedPhoto),
		collections: make(map[int64]*models.GalleryCollection),

		eventImages:    make(map[int64]*rawImage),
		ministryImages: make(map[int64]*rawImage),
		postImages:     make(map[int64]*rawImage),
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/profile", s.handleProfile).Methods(http.MethodGet)
	r.HandleFunc("/auth/profile", s.handleUpdateProfile).Methods(http.MethodPut)
	r.HandleFunc("/auth/change-password", s.handleChangePassword).Methods(http.MethodPut)

	r.HandleFunc("/events", s.handleListEvents).Methods(http.MethodGet)
	r.HandleFunc("/events", s.handleCreateEvent).Methods(http.MethodPost)
	r.HandleFunc("/events/{id:[0-9]+}", s.handleGetEvent).Methods(http.MethodGet)
	r.HandleFunc("/events/{id:[0-9]+}", s.handleUpdateEvent).Methods(http.MethodPut)
	r.HandleFunc("/events/{id:[0-9]+}", s.handleDeleteEvent).Methods(http.MethodDelete)
	r.HandleFunc("/events/{id:[0-9]+}/image", s.imageHandler(s.eventImages)).Methods(http.MethodGet)

	r.HandleFunc("/ministries", s.handleListMinistries).Methods(http.MethodGet)
	r.HandleFunc("/ministries", s.handleCreateMinistry).Methods(http.MethodPost)
	r.HandleFunc("/ministries/{id:[0-9]+}", s.handleGetMinistry).Methods(http.MethodGet)
	r.HandleFunc("/ministries/{id:[0-9]+}", s.handleUpdateMinistry).Methods(http.MethodPut)
	r.HandleFunc("/ministries/{id:[0-9]+}", s.handleDeleteMinistry).Methods(http.MethodDelete)
	r.HandleFunc("/ministries/{id:[0-9]+}/image", s.imageHandler(s.ministryImages)).Methods(http.MethodGet)

	// Posts resolve by numeric id or by slug on the same collection path;
	// the id pattern is constrained so slugs fall through to the slug route.
	r.HandleFunc("/posts", s.handleListPosts).Methods(http.MethodGet)
	r.HandleFunc("/posts", s.handleCreatePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}", s.handleGetPost).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}", s.handleUpdatePost).Methods(http.MethodPut)
	r.HandleFunc("/posts/{id:[0-9]+}", s.handleDeletePost).Methods(http.MethodDelete)
	r.HandleFunc("/posts/{id:[0-9]+}/image", s.imageHandler(s.postImages)).Methods(http.MethodGet)
	r.HandleFunc("/posts/{slug}", s.handleGetPostBySlug).Methods(http.MethodGet)

	r.HandleFunc("/resources", s.handleListResources).Methods(http.MethodGet)
	r.HandleFunc("/resources", s.handleUploadResource).Methods(http.MethodPost)
	r.HandleFunc("/resources/{id:[0-9]+}", s.handleDownloadResource).Methods(http.MethodGet)
	r.HandleFunc("/resources/{id:[0-9]+}", s.handleDeleteResource).Methods(http.MethodDelete)

	r.HandleFunc("/gallery/collections", s.handleListCollections).Methods(http.MethodGet)
	r.HandleFunc("/gallery", s.handleListGallery).Methods(http.MethodGet)
	r.HandleFunc("/gallery", s.handleUploadPhoto).Methods(http.MethodPost)
	r.HandleFunc("/gallery/{id:[0-9]+}/image", s.handlePhotoImage).Methods(http.MethodGet)
	r.HandleFunc("/gallery/{id:[0-9]+}", s.handleDeletePhoto).Methods(http.MethodDelete)

	s.srv = httptest.NewServer(r)
	return s
}

// URL is the base URL clients should be pointed at.
func (s *Server) URL() string { return s.srv.URL }

func (s *Server) Close() { s.srv.Close() }

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

// SeedUser registers an account directly, bypassing the HTTP surface.
// MinCost keeps test setup fast; the comparison path is identical.
func (s *Server) SeedUser(username, email, password string, role models.Role) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.User{
		ID:       s.id(),
		Username: username,
		Email:    email,
		Role:     role,
	}
	s.users[u.ID] = &account{user: u, hash: hash}
	return u
}

// SeedEvent inserts an event directly.
func (s *Server) SeedEvent(e models.Event) models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		e.ID = s.id()
	}
	s.events[e.ID] = &e
	return e
}

// SeedCollection inserts a gallery collection directly.
func (s *Server) SeedCollection(c models.GalleryCollection) models.GalleryCollection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.collections[c.ID] = &c
	return c
}

// TokenFor mints a valid token for the given user id.
func (s *Server) TokenFor(userID int64) string {
	tok, err := generateToken(userID, s.secret, defaultTokenTTL)
	if err != nil {
		panic(err)
	}
	return tok
}

// ---- wire helpers ----

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type envelope struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message,omitempty"`
	Data       any          `json:"data,omitempty"`
	Errors     []fieldError `json:"errors,omitempty"`
	Pagination *pagination  `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func fail(w http.ResponseWriter, status int, message string, errs ...fieldError) {
	writeJSON(w, status, envelope{Success: false, Message: message, Errors: errs})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// paginate slices ids according to page/limit query params. Listings are
// ordered by id so responses are deterministic.
func paginate[T any](r *http.Request, items []T) ([]T, *pagination) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}

	total := len(items)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return items[start:end], &pagination{Page: page, Limit: limit, Total: total, Pages: totalPages}
}

// ---- auth ----

func (s *Server) userFromRequest(r *http.Request) *models.User {
	h := r.Header.Get(common.AuthHeaderName)
	if !strings.HasPrefix(h, common.BearerPrefix) {
		return nil
	}
	id, err := userIDFromToken(strings.TrimPrefix(h, common.BearerPrefix), s.secret)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, found := s.users[id]
	if !found {
		return nil
	}
	u := acc.user
	return &u
}

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) *models.User {
	u := s.userFromRequest(r)
	if u == nil {
		fail(w, http.StatusUnauthorized, "authentication required")
	}
	return u
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) *models.User {
	u := s.userFromRequest(r)
	if u == nil {
		fail(w, http.StatusUnauthorized, "authentication required")
		return nil
	}
	if u.Role != models.RoleAdmin {
		fail(w, http.StatusForbidden, "admin access required")
		return nil
	}
	return u
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ok(w, "ok", nil)
}

// handleLogin responds with the login wire shape: token and user are
// top-level siblings of success, not nested under data.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "malformed request")
		return
	}

	s.mu.Lock()
	var acc *account
	for _, a := range s.users {
		if a.user.Username == in.Username || a.user.Email == in.Username {
			acc = a
			break
		}
	}
	s.mu.Unlock()

	if acc == nil || bcrypt.CompareHashAndPassword(acc.hash, []byte(in.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}{false, "invalid credentials"})
		return
	}

	token, err := generateToken(acc.user.ID, s.secret, defaultTokenTTL)
	if err != nil {
		fail(w, http.StatusInternalServerError, "token generation failed")
		return
	}

	u := acc.user
	writeJSON(w, http.StatusOK, struct {
		Success bool         `json:"success"`
		Message string       `json:"message"`
		Token   string       `json:"token"`
		User    *models.User `json:"user"`
	}{true, "welcome back", token, &u})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "malformed request")
		return
	}
	if in.Username == "" || in.Email == "" || in.Password == "" {
		fail(w, http.StatusUnprocessableEntity, "validation failed",
			fieldError{Field: "username", Message: "username, email and password are required"})
		return
	}

	s.mu.Lock()
	for _, a := range s.users {
		if a.user.Username == in.Username || a.user.Email == in.Email {
			s.mu.Unlock()
			fail(w, http.StatusConflict, "account already exists",
				fieldError{Field: "username", Message: "already taken"})
			return
		}
	}
	s.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.MinCost)
	if err != nil {
		fail(w, http.StatusInternalServerError, "hashing failed")
		return
	}

	s.mu.Lock()
	u := models.User{
		ID:        s.id(),
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      models.RoleMember,
	}
	s.users[u.ID] = &account{user: u, hash: hash}
	s.mu.Unlock()

	ok(w, "account created, please log in", nil)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	u := s.requireUser(w, r)
	if u == nil {
		return
	}
	ok(w, "", u)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	u := s.requireUser(w, r)
	if u == nil {
		return
	}

	var in struct {
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		Phone       string `json:"phone"`
		Address     string `json:"address"`
		DateOfBirth string `json:"date_of_birth"`
		BaptismDate string `json:"baptism_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "malformed request")
		return
	}

	s.mu.Lock()
	acc := s.users[u.ID]
	if in.FirstName != "" {
		acc.user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		acc.user.LastName = in.LastName
	}
	if in.Phone != "" {
		acc.user.Phone = in.Phone
	}
	if in.Address != "" {
		acc.user.Address = in.Address
	}
	if in.DateOfBirth != "" {
		acc.user.DateOfBirth = in.DateOfBirth
	}
	if in.BaptismDate != "" {
		acc.user.BaptismDate = in.BaptismDate
	}
	out := acc.user
	s.mu.Unlock()

	ok(w, "profile updated", out)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	u := s.requireUser(w, r)
	if u == nil {
		return
	}

	var in struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "malformed request")
		return
	}

	s.mu.Lock()
	acc := s.users[u.ID]
	if bcrypt.CompareHashAndPassword(acc.hash, []byte(in.CurrentPassword)) != nil {
		s.mu.Unlock()
		fail(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.MinCost)
	if err != nil {
		s.mu.Unlock()
		fail(w, http.StatusInternalServerError, "hashing failed")
		return
	}
	acc.hash = hash
	s.mu.Unlock()

	ok(w, "password changed", nil)
}

// ---- events ----

func sortedValues[T any](m map[int64]*T) []T {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]T, 0, len(m))
	for _, k := range keys {
		out = append(out, *m[k])
	}
	return out
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	all := sortedValues(s.events)
	s.mu.Unlock()

	q := r.URL.Query()
	filtered := all[:0:0]
	for _, e := range all {
		if c := q.Get("category"); c != "" && e.Category != c {
			continue
		}
		if f := q.Get("featured"); f != "" && strconv.FormatBool(e.Featured) != f {
			continue
		}
		filtered = append(filtered, e)
	}

	page, pg := paginate(r, filtered)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: page, Pagination: pg})
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "bad id")
		return
	}

	s.mu.Lock()
	e, found := s.events[id]
	s.mu.Unlock()
	if !found {
		fail(w, http.StatusNotFound, "event not found")
		return
	}
	ok(w, "", e)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}

	var in models.EventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "malformed request")
		return
	}
	if in.Title == "" {
		fail(w, http.StatusUnprocessableEntity, "validation failed",
			fieldError{Field: "title", Message: "title is required"})
		return
	}

	s.mu.Lock()
	e := models.Event{
		ID:          s.id(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Featured:    in.Featured,
	}
	s.events[e.ID] = &e
	storeImage(s.eventImages, e.ID, in.ImageData, in.ImageName)
	s.mu.Unlock()

	ok(w, "event created", e)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "bad id")
		return
	}

	var in models.EventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "malformed request")
		return
	}

	s.mu.Lock()
	e, found := s.events[id]
	if found {
		e.Title = in.Title
		e.Description = in.Description
		e.Category = in.Category
		e.Location = in.Location
		e.StartTime = in.StartTime
		e.EndTime = in.EndTime
		e.Featured = in.Featured
		storeImage(s.eventImages, e.ID, in.ImageData, in.ImageName)
	}
	s.mu.Unlock()
	if !found {
		fail(w, http.StatusNotFound, "event not found")
		return
	}
	ok(w, "event updated", e)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	s.deleteByID(w, r, func(id int64) bool {
		_, found := s.events[id]
		delete(s.events, id)
		return found
	}, "event")
}

// storeImage decodes a base64-embedded upload into the given image map.
// Call with the lock held. Empty data means "no image sent", not removal.
func storeImage(images map[int64]*rawImage, id int64, data, name string) {
	if data == "" {
		return
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return
	}
	images[id] = &rawImage{data: raw, mime: mime.TypeByExtension(filepath.Ext(name))}
}

// imageHandler serves the raw stored image bytes, outside the envelope.
func (s *Server) imageHandler(images map[int64]*rawImage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			fail(w, http.StatusBadRequest, "bad id")
			return
		}

		s.mu.Lock()
		img, found := images[id]
		s.mu.Unlock()
		if !found {
			http.NotFound(w, r)
			return
		}

		if img.mime != "" {
			w.Header().Set("Content-Type", img.mime)
		}
		_, _ = w.Write(img.data)
	}
}

// deleteByID runs rm under the lock and writes the shared delete envelope.
func (s *Server) deleteByID(w http.ResponseWriter, r *http.Request, rm func(int64) bool, kind string) {
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "bad id")
		return
	}

	s.mu.Lock()
	found := rm(id)
	s.mu.Unlock()
	if !found {
		fail(w, http.StatusNotFound, kind+" not found")
		return
	}
	ok(w, kind+" deleted", nil)
}

// ---- ministries ----

func (s *Server) handleListMinistries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	all := sortedValues(s.ministries)
	s.mu.Unlock()

	page, pg := paginate(r, all)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: page, Pagination: pg})
}

func (s *Server) handleGetMinistry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "bad id")
		return
	}

	s.mu.Lock()
	m, found := s.ministries[id]
	s.mu.Unlock()
	if !found {
		fail(w, http.StatusNotFound, "ministry not found")
		return
	}
	ok(w, "", m)
}

func (s *Server) handleCreateMinistry(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}

	var in models.MinistryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "malformed request")
		return
	}
	if in.Name == "" {
		fail(w, http.StatusUnprocessableEntity, "validation failed",
			fieldError{Field: "name", Message: "name is required"})
		return
	}

	s.mu.Lock()
	m := models.Ministry{
		ID:          s.id(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Leader:      in.Leader,
		MeetingTime: in.MeetingTime,
		ContactInfo: in.ContactInfo,
	}
	s.ministries[m.ID] = &m
	storeImage(s.ministryImages, m.ID, in.ImageData, in.ImageName)
	s.mu.Unlock()

	ok(w, "ministry created", m)
}

func (s *Server) handleUpdateMinistry(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "bad id")
		return
	}

	var in models.MinistryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "malformed request")
		return
	}

	s.mu.Lock()
	m, found := s.ministries[id]
	if found {
		m.Name = in.Name
		m.Description = in.Description
		m.Category = in.Category
		m.Leader = in.Leader
		m.MeetingTime = in.MeetingTime
		m.ContactInfo = in.ContactInfo
		storeImage(s.ministryImages, m.ID, in.ImageData, in.ImageName)
	}
	s.mu.Unlock()
	if !found {
		fail(w, http.StatusNotFound, "ministry not found")
		return
	}
	ok(w, "ministry updated", m)
}

func (s *Server) handleDeleteMinistry(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	s.deleteByID(w, r, func(id int64) bool {
		_, found := s.ministries[id]
		delete(s.ministries, id)
		return found
	}, "ministry")
}

// ---- posts ----

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, slug)
	return strings.Trim(slug, "-")
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	all := sortedValues(s.posts)
	s.mu.Unlock()

	q := r.URL.Query()
	filtered := all[:0:0]
	for _, p := range all {
		if c := q.Get("category"); c != "" && p.Category != c {
			continue
		}
		if st := q.Get("status"); st != "" && string(p.Status) != st {
			continue
		}
		filtered = append(filtered, p)
	}

	page, pg := paginate(r, filtered)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: page, Pagination: pg})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "bad id")
		return
	}

	s.mu.Lock()
	p, found := s.posts[id]
	s.mu.Unlock()
	if !found {
		fail(w, http.StatusNotFound, "post not found")
		return
	}
	ok(w, "", p)
}

func (s *Server) handleGetPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	s.mu.Lock()
	var p *models.Post
	for _, cand := range s.posts {
		if cand.Slug == slug {
			p = cand
			break
		}
	}
	s.mu.Unlock()
	if p == nil {
		fail(w, http.StatusNotFound, "post not found")
		return
	}
	ok(w, "", p)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	u := s.requireAdmin(w, r)
	if u == nil {
		return
	}

	var in models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "malformed request")
		return
	}
	if in.Title == "" {
		fail(w, http.StatusUnprocessableEntity, "validation failed",
			fieldError{Field: "title", Message: "title is required"})
		return
	}

	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	s.mu.Lock()
	p := models.Post{
		ID:       s.id(),
		Slug:     slugify(in.Title),
		Title:    in.Title,
		Excerpt:  in.Excerpt,
		Content:  in.Content,
		Category: in.Category,
		Status:   status,
		AuthorID: u.ID,
		Featured: in.Featured,
	}
	s.posts[p.ID] = &p
	storeImage(s.postImages, p.ID, in.ImageData, in.ImageName)
	s.mu.Unlock()

	ok(w, "post created", p)
}

// handleUpdatePost replaces the mutable fields; the slug tracks the title.
func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "bad id")
		return
	}

	var in models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "malformed request")
		return
	}
	if in.Title == "" {
		fail(w, http.StatusUnprocessableEntity, "validation failed",
			fieldError{Field: "title", Message: "title is required"})
		return
	}

	s.mu.Lock()
	p, found := s.posts[id]
	if found {
		p.Title = in.Title
		p.Slug = slugify(in.Title)
		p.Excerpt = in.Excerpt
		p.Content = in.Content
		p.Category = in.Category
		if in.Status != "" {
			p.Status = in.Status
		}
		p.Featured = in.Featured
		storeImage(s.postImages, p.ID, in.ImageData, in.ImageName)
	}
	s.mu.Unlock()
	if !found {
		fail(w, http.StatusNotFound, "post not found")
		return
	}
	ok(w, "post updated", p)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	s.deleteByID(w, r, func(id int64) bool {
		_, found := s.posts[id]
		delete(s.posts, id)
		return found
	}, "post")
}

// ---- resources ----

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	all := make([]models.Resource, 0, len(s.resources))
	for _, f := range s.resources {
		all = append(all, f.meta)
	}
	s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	q := r.URL.Query()
	filtered := all[:0:0]
	for _, res := range all {
		if t := q.Get("type"); t != "" && string(res.Type) != t {
			continue
		}
		filtered = append(filtered, res)
	}

	page, pg := paginate(r, filtered)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: page, Pagination: pg})
}

func (s *Server) handleUploadResource(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		fail(w, http.StatusBadRequest, "expected multipart form")
		return
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		fail(w, http.StatusUnprocessableEntity, "validation failed",
			fieldError{Field: "file", Message: "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		fail(w, http.StatusInternalServerError, "read upload")
		return
	}

	s.mu.Lock()
	res := models.Resource{
		ID:       s.id(),
		Title:    r.FormValue("title"),
		Type:     models.ResourceType(r.FormValue("type")),
		FileName: hdr.Filename,
		FileSize: int64(len(data)),
		MimeType: hdr.Header.Get("Content-Type"),
	}
	s.resources[res.ID] = &storedFile{meta: res, data: data}
	s.mu.Unlock()

	ok(w, "resource uploaded", res)
}

// handleDownloadResource serves the raw file bytes, outside the envelope.
func (s *Server) handleDownloadResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "bad id")
		return
	}

	s.mu.Lock()
	f, found := s.resources[id]
	s.mu.Unlock()
	if !found {
		http.NotFound(w, r)
		return
	}

	if f.meta.MimeType != "" {
		w.Header().Set("Content-Type", f.meta.MimeType)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.meta.FileName))
	_, _ = w.Write(f.data)
}

func (s *Server) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	s.deleteByID(w, r, func(id int64) bool {
		_, found := s.resources[id]
		delete(s.resources, id)
		return found
	}, "resource")
}

// ---- gallery ----

func (s *Server) handleListGallery(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	all := make([]models.GalleryItem, 0, len(s.gallery))
	for _, p := range s.gallery {
		all = append(all, p.meta)
	}
	s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	page, pg := paginate(r, all)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: page, Pagination: pg})
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	all := sortedValues(s.collections)
	for i := range all {
		n := 0
		for _, p := range s.gallery {
			if p.meta.CollectionID == all[i].ID {
				n++
			}
		}
		all[i].ItemCount = n
	}
	s.mu.Unlock()

	page, pg := paginate(r, all)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: page, Pagination: pg})
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		fail(w, http.StatusBadRequest, "expected multipart form")
		return
	}

	file, hdr, err := r.FormFile("image")
	if err != nil {
		fail(w, http.StatusUnprocessableEntity, "validation failed",
			fieldError{Field: "image", Message: "image is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		fail(w, http.StatusInternalServerError, "read upload")
		return
	}

	collectionID, _ := strconv.ParseInt(r.FormValue("collection_id"), 10, 64)

	s.mu.Lock()
	item := models.GalleryItem{
		ID:           s.id(),
		Title:        r.FormValue("title"),
		CollectionID: collectionID,
	}
	s.gallery[item.ID] = &storedPhoto{meta: item, data: data, mime: hdr.Header.Get("Content-Type")}
	s.mu.Unlock()

	ok(w, "photo uploaded", item)
}

func (s *Server) handlePhotoImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "bad id")
		return
	}

	s.mu.Lock()
	p, found := s.gallery[id]
	s.mu.Unlock()
	if !found {
		http.NotFound(w, r)
		return
	}

	if p.mime != "" {
		w.Header().Set("Content-Type", p.mime)
	}
	_, _ = w.Write(p.data)
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	s.deleteByID(w, r, func(id int64) bool {
		_, found := s.gallery[id]
		delete(s.gallery, id)
		return found
	}, "photo")
}
