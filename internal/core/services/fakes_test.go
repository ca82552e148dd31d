package services

import (
	"context"
	"sort"
	"time"

	"autopro-rental/internal/adapters/persistence/models"
	"autopro-rental/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, search, role string, offset, limit int) ([]*models.User, int64, error) {
	var all []*models.User
	for _, user := range r.users {
		if role != "" && user.Role != role {
			continue
		}
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) CountActiveByRole(_ context.Context, role string) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Role == role && user.IsActive {
			count++
		}
	}
	return count, nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.Session
	nextID   uint
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session), nextID: 1}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	session.ID = r.nextID
	r.nextID++
	r.sessions[session.TokenHash] = session
	return nil
}

func (r *fakeSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.Session, error) {
	session, ok := r.sessions[tokenHash]
	if !ok || session.IsRevoked() {
		return nil, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (r *fakeSessionRepo) GetByUserID(_ context.Context, userID uint) ([]*models.Session, error) {
	var out []*models.Session
	for _, session := range r.sessions {
		if session.UserID == userID && !session.IsRevoked() {
			out = append(out, session)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	if session, ok := r.sessions[tokenHash]; ok {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, session := range r.sessions {
		if session.UserID == userID && !session.IsRevoked() {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var removed int64
	for hash, session := range r.sessions {
		if session.IsExpired() || session.IsRevoked() {
			delete(r.sessions, hash)
			removed++
		}
	}
	return removed, nil
}

type fakeResetRepo struct {
	tokens map[string]*models.PasswordResetToken
	nextID uint
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*models.PasswordResetToken), nextID: 1}
}

func (r *fakeResetRepo) Create(_ context.Context, token *models.PasswordResetToken) error {
	token.ID = r.nextID
	r.nextID++
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *fakeResetRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	token, ok := r.tokens[tokenHash]
	if !ok || token.IsUsed() {
		return nil, gorm.ErrRecordNotFound
	}
	return token, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id uint) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.ID == id {
			token.UsedAt = &now
		}
	}
	return nil
}

func (r *fakeResetRepo) InvalidateByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && !token.IsUsed() {
			token.UsedAt = &now
		}
	}
	return nil
}

func (r *fakeResetRepo) DeleteExpired(_ context.Context) (int64, error) {
	var removed int64
	for hash, token := range r.tokens {
		if token.IsExpired() || token.IsUsed() {
			delete(r.tokens, hash)
			removed++
		}
	}
	return removed, nil
}

type fakeCarRepo struct {
	cars   map[uint]*models.Car
	nextID uint
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{cars: make(map[uint]*models.Car), nextID: 1}
}

func (r *fakeCarRepo) Create(_ context.Context, car *models.Car) error {
	car.ID = r.nextID
	r.nextID++
	r.cars[car.ID] = car
	return nil
}

func (r *fakeCarRepo) GetByID(_ context.Context, id uint) (*models.Car, error) {
	car, ok := r.cars[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return car, nil
}

func (r *fakeCarRepo) Update(_ context.Context, car *models.Car) error {
	r.cars[car.ID] = car
	return nil
}

func (r *fakeCarRepo) Delete(_ context.Context, id uint) error {
	delete(r.cars, id)
	return nil
}

func (r *fakeCarRepo) List(_ context.Context, filter repositories.CarFilter, offset, limit int) ([]*models.Car, int64, error) {
	var all []*models.Car
	for _, car := range r.cars {
		if filter.Category != "" && car.Category != filter.Category {
			continue
		}
		if filter.OnlyAvailable && !car.IsAvailable {
			continue
		}
		all = append(all, car)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeCarRepo) ListAvailable(_ context.Context) ([]*models.Car, error) {
	var out []*models.Car
	for _, car := range r.cars {
		if car.IsAvailable {
			out = append(out, car)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCarRepo) CountAvailability(_ context.Context) (available, total int64, err error) {
	for _, car := range r.cars {
		total++
		if car.IsAvailable {
			available++
		}
	}
	return available, total, nil
}

func (r *fakeCarRepo) CountByCategory(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, car := range r.cars {
		counts[car.Category]++
	}
	return counts, nil
}

type fakeBookingRepo struct {
	bookings map[uint]*models.Booking
	nextID   uint
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uint]*models.Booking), nextID: 1}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	booking.ID = r.nextID
	r.nextID++
	booking.CreatedAt = time.Now()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id uint) (*models.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return booking, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *models.Booking) error {
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) List(_ context.Context, status string, offset, limit int) ([]*models.Booking, int64, error) {
	var all []*models.Booking
	for _, booking := range r.bookings {
		if status != "" && booking.Status != status {
			continue
		}
		all = append(all, booking)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, booking := range r.bookings {
		counts[booking.Status]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, booking := range r.bookings {
		if !booking.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) RevenueSince(_ context.Context, since time.Time) (float64, error) {
	var revenue float64
	for _, booking := range r.bookings {
		if !booking.CreatedAt.Before(since) && booking.Status != models.BookingStatusCancelled {
			revenue += booking.TotalPrice
		}
	}
	return revenue, nil
}

func (r *fakeBookingRepo) MonthlyStatsSince(_ context.Context, since time.Time) ([]repositories.MonthlyBucket, error) {
	byMonth := make(map[string]*repositories.MonthlyBucket)
	for _, booking := range r.bookings {
		if booking.CreatedAt.Before(since) {
			continue
		}
		month := booking.CreatedAt.Format("2006-01")
		bucket, ok := byMonth[month]
		if !ok {
			bucket = &repositories.MonthlyBucket{Month: month}
			byMonth[month] = bucket
		}
		bucket.Bookings++
		if booking.Status != models.BookingStatusCancelled {
			bucket.Revenue += booking.TotalPrice
		}
	}

	var rows []repositories.MonthlyBucket
	for _, bucket := range byMonth {
		rows = append(rows, *bucket)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows, nil
}

func (r *fakeBookingRepo) CountCarsInUse(_ context.Context) (int64, error) {
	cars := make(map[uint]bool)
	for _, booking := range r.bookings {
		if booking.Status == models.BookingStatusConfirmed {
			cars[booking.CarID] = true
		}
	}
	return int64(len(cars)), nil
}

func (r *fakeBookingRepo) TopCarsSince(_ context.Context, since time.Time, limit int) ([]repositories.CarBookingCount, error) {
	byCar := make(map[uint]*repositories.CarBookingCount)
	for _, booking := range r.bookings {
		if booking.CreatedAt.Before(since) || booking.Status == models.BookingStatusCancelled {
			continue
		}
		row, ok := byCar[booking.CarID]
		if !ok {
			row = &repositories.CarBookingCount{CarID: booking.CarID}
			byCar[booking.CarID] = row
		}
		row.Bookings++
		row.Revenue += booking.TotalPrice
	}

	var rows []repositories.CarBookingCount
	for _, row := range byCar {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Bookings > rows[j].Bookings })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type fakeSettingsRepo struct {
	settings *models.SystemSettings
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*models.SystemSettings, error) {
	if r.settings == nil {
		return models.DefaultSettings(), nil
	}
	return r.settings, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, settings *models.SystemSettings) error {
	settings.ID = 1
	r.settings = settings
	return nil
}
