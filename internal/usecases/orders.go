package usecases

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bookeasy/admin-backend/internal/core/ports"
	"github.com/bookeasy/admin-backend/internal/entities"
)

type BookingsRepository interface {
	FindRecentBookings(ctx context.Context, limit int) ([]entities.Booking, error)
}

// RefreshListener is notified after every completed window refresh.
type RefreshListener interface {
	NotifyRefresh(count int, fetchedAt time.Time)
}

// OrderService keeps a bounded window of the most recent bookings in memory
// and answers all filtering, sorting, pagination and export requests from it
// without touching the database again.
type OrderService struct {
	repo  BookingsRepository
	limit int

	mu        sync.RWMutex
	window    []entities.Booking
	fetchedAt time.Time

	listeners []RefreshListener
}

func NewOrderService(repo BookingsRepository, limit int) *OrderService {
	return &OrderService{repo: repo, limit: limit}
}

// AddRefreshListener registers a listener. Not safe to call after the service
// started serving requests.
func (os *OrderService) AddRefreshListener(l RefreshListener) {
	os.listeners = append(os.listeners, l)
}

// Refresh re-issues the bounded fetch and replaces the window wholesale.
// Overlapping refreshes are not coordinated: the last response to resolve
// wins.
func (os *OrderService) Refresh(ctx context.Context) error {
	bookings, err := os.repo.FindRecentBookings(ctx, os.limit)
	if err != nil {
		return err
	}

	for i := range bookings {
		bookings[i].StatusDisplay = bookings[i].DisplayStatus()
	}

	now := time.Now().UTC()

	os.mu.Lock()
	os.window = bookings
	os.fetchedAt = now
	os.mu.Unlock()

	for _, l := range os.listeners {
		l.NotifyRefresh(len(bookings), now)
	}

	return nil
}

// Query filters, sorts and paginates the in-memory window.
func (os *OrderService) Query(q entities.OrderQuery) entities.OrderPage {
	os.mu.RLock()
	window := os.window
	fetchedAt := os.fetchedAt
	os.mu.RUnlock()

	filtered := filterBookings(window, q)
	sortBookings(filtered, q.SortBy, q.SortDir)

	pageSize := normalizePageSize(q.PageSize)
	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	items := filtered[start:end]
	if items == nil {
		items = []entities.Booking{}
	}

	return entities.OrderPage{
		Items:      items,
		Total:      len(filtered),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		FetchedAt:  fetchedAt,
	}
}

// ExportCSV writes the filtered (not paginated) set as CSV. encoding/csv
// wraps fields containing commas, quotes or newlines and doubles internal
// quotes.
func (os *OrderService) ExportCSV(w io.Writer, q entities.OrderQuery) error {
	os.mu.RLock()
	window := os.window
	os.mu.RUnlock()

	filtered := filterBookings(window, q)
	sortBookings(filtered, q.SortBy, q.SortDir)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Service", "Vendor", "Booking Date", "Time", "Amount", "Status", "Created At"}); err != nil {
		return err
	}

	for _, b := range filtered {
		record := []string{
			b.ID,
			strFromPtr(b.ServiceName),
			strFromPtr(b.VendorName),
			dateFromPtr(b.BookingDate, "2006-01-02"),
			strFromPtr(b.BookingTime),
			amountString(b.Amount),
			b.Status,
			dateFromPtr(b.CreatedAt, time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func filterBookings(window []entities.Booking, q entities.OrderQuery) []entities.Booking {
	status := strings.ToLower(strings.TrimSpace(q.Status))
	search := strings.ToLower(strings.TrimSpace(q.Search))

	filtered := make([]entities.Booking, 0, len(window))
	for _, b := range window {
		if status != "" && status != ports.StatusAll && strings.ToLower(b.Status) != status {
			continue
		}
		if search != "" && !matchesSearch(b, search) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}

func matchesSearch(b entities.Booking, q string) bool {
	if strings.Contains(strings.ToLower(b.ID), q) {
		return true
	}
	if b.ServiceName != nil && strings.Contains(strings.ToLower(*b.ServiceName), q) {
		return true
	}
	if b.VendorName != nil && strings.Contains(strings.ToLower(*b.VendorName), q) {
		return true
	}
	return false
}

func sortBookings(list []entities.Booking, sortBy, sortDir string) {
	dir := 1
	if sortDir == ports.SortDesc {
		dir = -1
	}

	var cmp func(a, b entities.Booking) int
	switch sortBy {
	case ports.SortByBookingDate:
		cmp = func(a, b entities.Booking) int {
			return compareInt64(timeOrZero(a.BookingDate), timeOrZero(b.BookingDate))
		}
	case ports.SortByAmount:
		cmp = func(a, b entities.Booking) int {
			av, bv := amountOrZero(a.Amount), amountOrZero(b.Amount)
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
	case ports.SortByStatus:
		cmp = func(a, b entities.Booking) int {
			return strings.Compare(a.Status, b.Status)
		}
	default: // ports.SortByCreatedAt
		cmp = func(a, b entities.Booking) int {
			return compareInt64(timeOrZero(a.CreatedAt), timeOrZero(b.CreatedAt))
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		return cmp(list[i], list[j])*dir < 0
	})
}

func normalizePageSize(size int) int {
	for _, allowed := range ports.AllowedPageSizes {
		if size == allowed {
			return size
		}
	}
	return ports.DefaultPageSize
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// timeOrZero treats missing dates as epoch zero.
func timeOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

func amountOrZero(a *float64) float64 {
	if a == nil {
		return 0
	}
	return *a
}

func strFromPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateFromPtr(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

func amountString(a *float64) string {
	if a == nil {
		return ""
	}
	return strconv.FormatFloat(*a, 'f', 2, 64)
}
