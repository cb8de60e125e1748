package booking

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.RWMutex
	bookings map[string]Booking
	now      func() time.Time
}

// NewMemoryRepository returns a Repository kept in process memory.
// Contents are lost on restart.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		bookings: make(map[string]Booking),
		now:      time.Now,
	}
}

func (r *memoryRepository) Insert(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[b.ID]; exists {
		return ErrDuplicateID
	}
	b.UpdatedAt = b.CreatedAt
	r.bookings[b.ID] = *b
	return nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *memoryRepository) FindAll(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.RLock()
	matched := make([]*Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if !matches(b, filter) {
			continue
		}
		b := b
		matched = append(matched, &b)
	}
	r.mu.RUnlock()

	sortBookings(matched, filter.SortBy, filter.SortOrder == "ASC")

	total := len(matched)
	page, pageSize := pagination(filter)
	if page-1 >= (total+pageSize-1)/pageSize {
		return nil, total, nil
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *memoryRepository) Update(ctx context.Context, b *Booking, expected Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.bookings[b.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Status != expected {
		return ErrStaleStatus
	}

	stored.Status = b.Status
	stored.UpdatedAt = r.now().UTC()
	r.bookings[b.ID] = stored
	b.UpdatedAt = stored.UpdatedAt
	return nil
}

func matches(b Booking, f Filter) bool {
	if f.GuestName != "" && b.GuestName != f.GuestName {
		return false
	}
	if f.AccommodationID != "" && b.AccommodationID != f.AccommodationID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.PaymentMethod != "" && b.PaymentMethod != f.PaymentMethod {
		return false
	}
	return true
}

func sortBookings(list []*Booking, sortBy string, asc bool) {
	less := func(a, b *Booking) bool {
		switch sortBy {
		case "total":
			if a.Total != b.Total {
				return a.Total < b.Total
			}
		case "status":
			if a.Status != b.Status {
				return a.Status < b.Status
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	}

	sort.Slice(list, func(i, j int) bool {
		if asc {
			return less(list[i], list[j])
		}
		return less(list[j], list[i])
	})
}
