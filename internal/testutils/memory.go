package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kinostream/backend/internal/models"
	"github.com/kinostream/backend/internal/store"
)

// In-memory store implementations mirroring the Mongo stores' behavior
// (timestamps, active flags, uniqueness, pagination) so handler tests run
// without a database.

type MemoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
		if u.Username != "" && existing.Username == u.Username {
			return store.ErrDuplicate
		}
	}

	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := u
	return &out, nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemoryUserStore) Update(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	for id, existing := range s.users {
		if id != u.ID && u.Username != "" && existing.Username == u.Username {
			return store.ErrDuplicate
		}
	}

	u.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// Count reports how many user documents exist; assertions only.
func (s *MemoryUserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type MemoryMovieStore struct {
	mu     sync.Mutex
	movies map[primitive.ObjectID]models.Movie
}

func NewMemoryMovieStore() *MemoryMovieStore {
	return &MemoryMovieStore{movies: make(map[primitive.ObjectID]models.Movie)}
}

func (s *MemoryMovieStore) Create(_ context.Context, m *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = now
	m.UpdatedAt = now
	m.IsActive = true
	m.RatingStats = models.ZeroRatingStats()
	s.movies[m.ID] = *m
	return nil
}

func (s *MemoryMovieStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movies[id]
	if !ok || !m.IsActive {
		return nil, store.ErrNotFound
	}
	out := m
	return &out, nil
}

func (s *MemoryMovieStore) List(_ context.Context, filter store.MovieFilter, page, limit int) ([]models.Movie, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []models.Movie{}
	for _, m := range s.movies {
		if !m.IsActive {
			continue
		}
		if filter.Genre != "" && !contains(m.Genres, filter.Genre) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, m)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, page, limit)
}

func (s *MemoryMovieStore) Update(_ context.Context, m *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.movies[m.ID]
	if !ok || !existing.IsActive {
		return store.ErrNotFound
	}
	m.UpdatedAt = time.Now().UTC()
	s.movies[m.ID] = *m
	return nil
}

func (s *MemoryMovieStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movies[id]
	if !ok || !m.IsActive {
		return store.ErrNotFound
	}
	m.IsActive = false
	m.UpdatedAt = time.Now().UTC()
	s.movies[id] = m
	return nil
}

func (s *MemoryMovieStore) IncrementViewCount(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movies[id]
	if !ok || !m.IsActive {
		return nil
	}
	m.ViewCount++
	s.movies[id] = m
	return nil
}

func (s *MemoryMovieStore) UpdateRatingStats(_ context.Context, id primitive.ObjectID, stats models.RatingStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movies[id]
	if !ok {
		return store.ErrNotFound
	}
	m.RatingStats = stats
	m.UpdatedAt = time.Now().UTC()
	s.movies[id] = m
	return nil
}

type MemoryRatingStore struct {
	mu      sync.Mutex
	ratings map[primitive.ObjectID]models.Rating
}

func NewMemoryRatingStore() *MemoryRatingStore {
	return &MemoryRatingStore{ratings: make(map[primitive.ObjectID]models.Rating)}
}

func (s *MemoryRatingStore) Insert(_ context.Context, r *models.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.ratings {
		if existing.IsActive && existing.UserID == r.UserID && existing.MovieID == r.MovieID {
			return store.ErrDuplicate
		}
	}

	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.IsActive = true
	s.ratings[r.ID] = *r
	return nil
}

func (s *MemoryRatingStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.ratings[id]
	if !ok || !r.IsActive {
		return nil, store.ErrNotFound
	}
	out := r
	return &out, nil
}

func (s *MemoryRatingStore) FindActiveByUserAndMovie(_ context.Context, userID, movieID primitive.ObjectID) (*models.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.ratings {
		if r.IsActive && r.UserID == userID && r.MovieID == movieID {
			out := r
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemoryRatingStore) ListByMovie(_ context.Context, movieID primitive.ObjectID, page, limit int) ([]models.Rating, int64, error) {
	return s.list(func(r models.Rating) bool { return r.MovieID == movieID }, page, limit)
}

func (s *MemoryRatingStore) ListByUser(_ context.Context, userID primitive.ObjectID, page, limit int) ([]models.Rating, int64, error) {
	return s.list(func(r models.Rating) bool { return r.UserID == userID }, page, limit)
}

func (s *MemoryRatingStore) list(match func(models.Rating) bool, page, limit int) ([]models.Rating, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []models.Rating{}
	for _, r := range s.ratings {
		if r.IsActive && match(r) {
			matched = append(matched, r)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, page, limit)
}

func (s *MemoryRatingStore) Update(_ context.Context, r *models.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.ratings[r.ID]
	if !ok || !existing.IsActive {
		return store.ErrNotFound
	}
	r.UpdatedAt = time.Now().UTC()
	s.ratings[r.ID] = *r
	return nil
}

func (s *MemoryRatingStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.ratings[id]
	if !ok || !r.IsActive {
		return store.ErrNotFound
	}
	r.IsActive = false
	r.UpdatedAt = time.Now().UTC()
	s.ratings[id] = r
	return nil
}

func (s *MemoryRatingStore) CountActiveByValue(_ context.Context, movieID primitive.ObjectID) (map[int]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[int]int64{}
	for _, r := range s.ratings {
		if r.IsActive && r.MovieID == movieID {
			counts[r.Value]++
		}
	}
	return counts, nil
}

// ActiveCountForPair reports active ratings for a (user, movie) pair;
// assertions only.
func (s *MemoryRatingStore) ActiveCountForPair(userID, movieID primitive.ObjectID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.ratings {
		if r.IsActive && r.UserID == userID && r.MovieID == movieID {
			n++
		}
	}
	return n
}

type MemoryCommentStore struct {
	mu       sync.Mutex
	comments map[primitive.ObjectID]models.Comment
}

func NewMemoryCommentStore() *MemoryCommentStore {
	return &MemoryCommentStore{comments: make(map[primitive.ObjectID]models.Comment)}
}

func (s *MemoryCommentStore) Insert(_ context.Context, cm *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	cm.ID = primitive.NewObjectID()
	cm.CreatedAt = now
	cm.UpdatedAt = now
	cm.IsActive = true
	s.comments[cm.ID] = *cm
	return nil
}

func (s *MemoryCommentStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cm, ok := s.comments[id]
	if !ok || !cm.IsActive {
		return nil, store.ErrNotFound
	}
	out := cm
	return &out, nil
}

func (s *MemoryCommentStore) ListByMovie(_ context.Context, movieID primitive.ObjectID, page, limit int) ([]models.Comment, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []models.Comment{}
	for _, cm := range s.comments {
		if cm.IsActive && cm.MovieID == movieID {
			matched = append(matched, cm)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, page, limit)
}

func (s *MemoryCommentStore) Update(_ context.Context, cm *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.comments[cm.ID]
	if !ok || !existing.IsActive {
		return store.ErrNotFound
	}
	cm.UpdatedAt = time.Now().UTC()
	s.comments[cm.ID] = *cm
	return nil
}

func (s *MemoryCommentStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cm, ok := s.comments[id]
	if !ok || !cm.IsActive {
		return store.ErrNotFound
	}
	cm.IsActive = false
	cm.UpdatedAt = time.Now().UTC()
	s.comments[id] = cm
	return nil
}

type MemoryFavoriteStore struct {
	mu        sync.Mutex
	favorites map[primitive.ObjectID]models.Favorite
}

func NewMemoryFavoriteStore() *MemoryFavoriteStore {
	return &MemoryFavoriteStore{favorites: make(map[primitive.ObjectID]models.Favorite)}
}

func (s *MemoryFavoriteStore) Insert(_ context.Context, f *models.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.favorites {
		if existing.IsActive && existing.UserID == f.UserID && existing.MovieID == f.MovieID {
			return store.ErrDuplicate
		}
	}

	now := time.Now().UTC()
	f.ID = primitive.NewObjectID()
	f.CreatedAt = now
	f.UpdatedAt = now
	f.IsActive = true
	s.favorites[f.ID] = *f
	return nil
}

func (s *MemoryFavoriteStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.favorites[id]
	if !ok || !f.IsActive {
		return nil, store.ErrNotFound
	}
	out := f
	return &out, nil
}

func (s *MemoryFavoriteStore) FindByUserAndMovie(_ context.Context, userID, movieID primitive.ObjectID) (*models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.favorites {
		if f.UserID == userID && f.MovieID == movieID {
			out := f
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemoryFavoriteStore) ListByUser(_ context.Context, userID primitive.ObjectID, page, limit int) ([]models.Favorite, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []models.Favorite{}
	for _, f := range s.favorites {
		if f.IsActive && f.UserID == userID {
			matched = append(matched, f)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, page, limit)
}

func (s *MemoryFavoriteStore) Update(_ context.Context, f *models.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.favorites[f.ID]; !ok {
		return store.ErrNotFound
	}
	f.UpdatedAt = time.Now().UTC()
	s.favorites[f.ID] = *f
	return nil
}

func (s *MemoryFavoriteStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.favorites[id]
	if !ok || !f.IsActive {
		return store.ErrNotFound
	}
	f.IsActive = false
	f.UpdatedAt = time.Now().UTC()
	s.favorites[id] = f
	return nil
}

type MemoryTokenStore struct {
	mu      sync.Mutex
	revoked map[string]models.RevokedToken
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{revoked: make(map[string]models.RevokedToken)}
}

func (s *MemoryTokenStore) Revoke(_ context.Context, t *models.RevokedToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.RevokedAt = time.Now().UTC()
	s.revoked[t.Token] = *t
	return nil
}

func (s *MemoryTokenStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.revoked[token]
	if !ok {
		return false, nil
	}
	// Mirror the TTL index: an expired revocation record no longer exists.
	if time.Now().After(t.ExpiresAt) {
		delete(s.revoked, token)
		return false, nil
	}
	return true, nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, page, limit int) ([]T, int64, error) {
	total := int64(len(items))
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}, total, nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total, nil
}
