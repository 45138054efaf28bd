package ports

// Sort keys accepted by the orders view.
const (
	SortByCreatedAt   = "created_at"
	SortByBookingDate = "booking_date"
	SortByAmount      = "amount"
	SortByStatus      = "status"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// StatusAll disables status filtering.
const StatusAll = "all"

const DefaultPageSize = 20

// AllowedPageSizes matches the page size selector of the dashboard.
var AllowedPageSizes = []int{10, 20, 50}
