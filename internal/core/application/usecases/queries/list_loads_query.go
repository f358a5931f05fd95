package queries

import (
	"errors"
	"fmt"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/guard"
)

var ErrListLoadsQueryIsNotConstructed = errors.New(
	"ListLoadsQuery must be created via NewListLoadsQuery constructor",
)

const (
	// DefaultPageSize applies when the caller does not specify one.
	DefaultPageSize = 20

	// MaxPageSize caps a single listing page.
	MaxPageSize = 100
)

// SortBy selects the ordering column for load listings.
type SortBy int

const (
	// SortByCreatedAt orders by creation time (the default).
	SortByCreatedAt SortBy = iota

	// SortByPickupDate orders by scheduled pickup time.
	SortByPickupDate

	// SortByRate orders by the posted loadboard rate.
	SortByRate

	// SortByRatePerMile orders by the derived rate/miles ratio. Rows whose
	// ratio is undefined (missing or zero miles) sort last regardless of
	// direction.
	SortByRatePerMile
)

func getSortByStrings() map[SortBy]string {
	return map[SortBy]string{
		SortByCreatedAt:   "created_at",
		SortByPickupDate:  "pickup_date",
		SortByRate:        "rate",
		SortByRatePerMile: "rate_per_mile",
	}
}

// SortByFromString parses a wire sort key.
func SortByFromString(s string) (SortBy, error) {
	for key, name := range getSortByStrings() {
		if name == s {
			return key, nil
		}
	}
	return SortByCreatedAt, errs.NewValidationError("sort_by",
		fmt.Errorf("unknown sort key: %s", s))
}

// String returns the wire form of the sort key.
func (s SortBy) String() string {
	if name, ok := getSortByStrings()[s]; ok {
		return name
	}
	return "created_at"
}

// Validate reports whether the key is one of the defined sort keys.
func (s SortBy) Validate() error {
	if _, ok := getSortByStrings()[s]; !ok {
		return errs.NewValidationError("sort_by",
			fmt.Errorf("unknown sort key: %d", int(s)))
	}
	return nil
}

// ListLoadsParams carries the optional filters, ordering, and page window of
// a listing. Nil filters do not narrow; set filters combine with logical AND.
// Zero Page and PageSize fall back to the first page and DefaultPageSize.
type ListLoadsParams struct {
	Status     *load.Status
	Equipment  *load.EquipmentType
	PickupFrom *time.Time
	PickupTo   *time.Time

	SortBy     SortBy
	Descending bool

	Page     int
	PageSize int
}

// ListLoadsQuery retrieves one page of non-deleted loads.
//
// Example:
//
//	status := load.Available
//	query, err := NewListLoadsQuery(ListLoadsParams{
//	    Status:   &status,
//	    SortBy:   SortByRatePerMile,
//	    Page:     1,
//	    PageSize: 25,
//	})
//	if err != nil {
//	    return fmt.Errorf("bad listing request: %w", err)
//	}
//	page, err := handler.Handle(ctx, query)
type ListLoadsQuery struct {
	params ListLoadsParams

	guard guard.ConstructorGuard
}

// NewListLoadsQuery builds the query, normalizing the page window and
// checking the filters.
func NewListLoadsQuery(params ListLoadsParams) (ListLoadsQuery, error) {
	if params.Page == 0 {
		params.Page = 1
	}
	if params.PageSize == 0 {
		params.PageSize = DefaultPageSize
	}

	if params.Page < 1 {
		return ListLoadsQuery{}, errs.NewValidationError("page",
			fmt.Errorf("%d is not a positive page number", params.Page))
	}
	if params.PageSize < 1 || params.PageSize > MaxPageSize {
		return ListLoadsQuery{}, errs.NewValidationError("page_size",
			fmt.Errorf("%d is outside [1, %d]", params.PageSize, MaxPageSize))
	}
	if err := params.SortBy.Validate(); err != nil {
		return ListLoadsQuery{}, err
	}
	if params.Status != nil {
		if err := params.Status.Validate(); err != nil {
			return ListLoadsQuery{}, errs.NewValidationError("status", err)
		}
	}
	if params.Equipment != nil {
		if err := params.Equipment.Validate(); err != nil {
			return ListLoadsQuery{}, err
		}
	}
	if params.PickupFrom != nil && params.PickupTo != nil && params.PickupTo.Before(*params.PickupFrom) {
		return ListLoadsQuery{}, errs.NewValidationError("pickup_to",
			errors.New("window end precedes window start"))
	}

	return ListLoadsQuery{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListLoadsQuery) Validate() error {
	return q.guard.Validate(ErrListLoadsQueryIsNotConstructed)
}

// Params returns the normalized listing parameters.
func (q ListLoadsQuery) Params() ListLoadsParams {
	return q.params
}

// LoadSummary is the listing projection of one load. RatePerMile is derived
// at read time and nil when miles are missing or zero.
type LoadSummary struct {
	ID              kernel.UUID
	ReferenceNumber string
	Origin          kernel.Location
	Destination     kernel.Location
	PickupAt        time.Time
	DeliveryAt      time.Time
	Rate            kernel.Money
	RatePerMile     *kernel.Money
	Miles           *kernel.Distance
	Equipment       load.EquipmentType
	Commodity       string
	WeightLbs       int
	Status          load.Status
	CreatedAt       time.Time
	Version         int
}

// ListLoadsResponse is one page of load summaries with pagination metadata.
type ListLoadsResponse struct {
	Loads       []LoadSummary
	TotalCount  int64
	Page        int
	PageSize    int
	HasNext     bool
	HasPrevious bool
}
