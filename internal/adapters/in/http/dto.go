package http

import (
	"time"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/application/usecases/queries"
)

// LocationBody is the wire form of a stop location.
type LocationBody struct {
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code,omitempty"`
}

// CreateLoadRequest is the body of POST /api/v1/loads. Monetary amounts and
// miles travel as strings to avoid float rounding on the wire.
type CreateLoadRequest struct {
	Origin            LocationBody `json:"origin"`
	Destination       LocationBody `json:"destination"`
	PickupDatetime    time.Time    `json:"pickup_datetime"`
	DeliveryDatetime  time.Time    `json:"delivery_datetime"`

	LoadboardRate string  `json:"loadboard_rate"`
	MinRate       *string `json:"min_rate,omitempty"`
	MaxRate       *string `json:"max_rate,omitempty"`
	FuelSurcharge *string `json:"fuel_surcharge,omitempty"`

	EquipmentType string `json:"equipment_type"`
	CommodityType string `json:"commodity_type"`
	WeightLbs     int    `json:"weight_lbs"`
	Dimensions    string `json:"dimensions,omitempty"`
	NumOfPieces   int    `json:"num_of_pieces,omitempty"`
	Hazmat        bool   `json:"hazmat,omitempty"`
	HazmatClass   string `json:"hazmat_class,omitempty"`

	SessionID           string   `json:"session_id,omitempty"`
	Miles               *string  `json:"miles,omitempty"`
	Notes               string   `json:"notes,omitempty"`
	BrokerCompany       string   `json:"broker_company,omitempty"`
	CustomerName        string   `json:"customer_name,omitempty"`
	SpecialRequirements []string `json:"special_requirements,omitempty"`
}

// UpdateLoadRequest is the body of PATCH /api/v1/loads/{loadId}. Version is
// the version the caller last read; it is required, and zero is a valid
// value, hence the pointer. Absent fields keep their current value; for the
// clearable fields (min_rate, max_rate, fuel_surcharge, miles) an explicit
// empty string clears the stored value.
type UpdateLoadRequest struct {
	Version *int `json:"version"`

	Origin           *LocationBody `json:"origin,omitempty"`
	Destination      *LocationBody `json:"destination,omitempty"`
	PickupDatetime   *time.Time    `json:"pickup_datetime,omitempty"`
	DeliveryDatetime *time.Time    `json:"delivery_datetime,omitempty"`

	LoadboardRate *string `json:"loadboard_rate,omitempty"`
	MinRate       *string `json:"min_rate,omitempty"`
	MaxRate       *string `json:"max_rate,omitempty"`
	FuelSurcharge *string `json:"fuel_surcharge,omitempty"`

	EquipmentType *string `json:"equipment_type,omitempty"`
	CommodityType *string `json:"commodity_type,omitempty"`
	WeightLbs     *int    `json:"weight_lbs,omitempty"`
	Dimensions    *string `json:"dimensions,omitempty"`
	NumOfPieces   *int    `json:"num_of_pieces,omitempty"`
	Hazmat        *bool   `json:"hazmat,omitempty"`
	HazmatClass   *string `json:"hazmat_class,omitempty"`

	Booked              *bool     `json:"booked,omitempty"`
	SessionID           *string   `json:"session_id,omitempty"`
	Miles               *string   `json:"miles,omitempty"`
	Notes               *string   `json:"notes,omitempty"`
	BrokerCompany       *string   `json:"broker_company,omitempty"`
	CustomerName        *string   `json:"customer_name,omitempty"`
	SpecialRequirements *[]string `json:"special_requirements,omitempty"`

	Status *string `json:"status,omitempty"`
}

// DeleteLoadRequest is the body of DELETE /api/v1/loads/{loadId}.
type DeleteLoadRequest struct {
	Version *int `json:"version"`
}

// CreateLoadResponseBody reports the identity of a newly posted load.
type CreateLoadResponseBody struct {
	ID              string    `json:"id"`
	ReferenceNumber string    `json:"reference_number"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// UpdateLoadResponseBody reports the state of a load after an update.
type UpdateLoadResponseBody struct {
	ID              string    `json:"id"`
	ReferenceNumber string    `json:"reference_number"`
	Status          string    `json:"status"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         int       `json:"version"`
}

// DeleteLoadResponseBody reports the state of a load after a soft delete.
type DeleteLoadResponseBody struct {
	ID              string    `json:"id"`
	ReferenceNumber string    `json:"reference_number"`
	DeletedAt       time.Time `json:"deleted_at"`
	Version         int       `json:"version"`
}

// LoadSummaryBody is one row of a listing response.
type LoadSummaryBody struct {
	ID              string       `json:"id"`
	ReferenceNumber string       `json:"reference_number"`
	Origin          LocationBody `json:"origin"`
	Destination     LocationBody `json:"destination"`
	PickupDatetime  time.Time    `json:"pickup_datetime"`
	DeliveryDatetime time.Time   `json:"delivery_datetime"`
	LoadboardRate   string       `json:"loadboard_rate"`
	RatePerMile     *string      `json:"rate_per_mile,omitempty"`
	Miles           *string      `json:"miles,omitempty"`
	EquipmentType   string       `json:"equipment_type"`
	CommodityType   string       `json:"commodity_type"`
	WeightLbs       int          `json:"weight_lbs"`
	Status          string       `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	Version         int          `json:"version"`
}

// ListLoadsResponseBody is one page of load summaries.
type ListLoadsResponseBody struct {
	Loads       []LoadSummaryBody `json:"loads"`
	TotalCount  int64             `json:"total_count"`
	Page        int               `json:"page"`
	PageSize    int               `json:"page_size"`
	HasNext     bool              `json:"has_next"`
	HasPrevious bool              `json:"has_previous"`
}

// LoadDetailBody is the full detail of one load.
type LoadDetailBody struct {
	ID               string       `json:"id"`
	ReferenceNumber  string       `json:"reference_number"`
	Origin           LocationBody `json:"origin"`
	Destination      LocationBody `json:"destination"`
	PickupDatetime   time.Time    `json:"pickup_datetime"`
	DeliveryDatetime time.Time    `json:"delivery_datetime"`

	LoadboardRate string  `json:"loadboard_rate"`
	MinRate       *string `json:"min_rate,omitempty"`
	MaxRate       *string `json:"max_rate,omitempty"`
	FuelSurcharge *string `json:"fuel_surcharge,omitempty"`
	RatePerMile   *string `json:"rate_per_mile,omitempty"`

	EquipmentType string `json:"equipment_type"`
	CommodityType string `json:"commodity_type"`
	WeightLbs     int    `json:"weight_lbs"`
	Dimensions    string `json:"dimensions,omitempty"`
	NumOfPieces   int    `json:"num_of_pieces,omitempty"`
	Hazmat        bool   `json:"hazmat"`
	HazmatClass   string `json:"hazmat_class,omitempty"`

	Booked              bool     `json:"booked"`
	SessionID           string   `json:"session_id,omitempty"`
	Miles               *string  `json:"miles,omitempty"`
	Notes               string   `json:"notes,omitempty"`
	BrokerCompany       string   `json:"broker_company,omitempty"`
	CustomerName        string   `json:"customer_name,omitempty"`
	SpecialRequirements []string `json:"special_requirements,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ErrorBody is the uniform error payload.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func summaryBody(s queries.LoadSummary) LoadSummaryBody {
	body := LoadSummaryBody{
		ID:              s.ID.String(),
		ReferenceNumber: s.ReferenceNumber,
		Origin: LocationBody{
			City:       s.Origin.City(),
			State:      s.Origin.State(),
			PostalCode: s.Origin.PostalCode(),
		},
		Destination: LocationBody{
			City:       s.Destination.City(),
			State:      s.Destination.State(),
			PostalCode: s.Destination.PostalCode(),
		},
		PickupDatetime:   s.PickupAt,
		DeliveryDatetime: s.DeliveryAt,
		LoadboardRate:    s.Rate.String(),
		EquipmentType:    s.Equipment.String(),
		CommodityType:    s.Commodity,
		WeightLbs:        s.WeightLbs,
		Status:           s.Status.String(),
		CreatedAt:        s.CreatedAt,
		Version:          s.Version,
	}
	if s.RatePerMile != nil {
		rpm := s.RatePerMile.String()
		body.RatePerMile = &rpm
	}
	if s.Miles != nil {
		miles := s.Miles.String()
		body.Miles = &miles
	}
	return body
}

func detailBody(d queries.GetLoadResponse) LoadDetailBody {
	body := LoadDetailBody{
		ID:              d.ID.String(),
		ReferenceNumber: d.ReferenceNumber,
		Origin: LocationBody{
			City:       d.Origin.City(),
			State:      d.Origin.State(),
			PostalCode: d.Origin.PostalCode(),
		},
		Destination: LocationBody{
			City:       d.Destination.City(),
			State:      d.Destination.State(),
			PostalCode: d.Destination.PostalCode(),
		},
		PickupDatetime:      d.PickupAt,
		DeliveryDatetime:    d.DeliveryAt,
		LoadboardRate:       d.Rate.String(),
		EquipmentType:       d.Equipment.String(),
		CommodityType:       d.Commodity,
		WeightLbs:           d.WeightLbs,
		Dimensions:          d.Dimensions,
		NumOfPieces:         d.NumOfPieces,
		Hazmat:              d.Hazmat,
		HazmatClass:         d.HazmatClass,
		Booked:              d.Booked,
		SessionID:           d.SessionID,
		Notes:               d.Notes,
		BrokerCompany:       d.BrokerCompany,
		CustomerName:        d.CustomerName,
		SpecialRequirements: d.SpecialRequirements,
		Status:              d.Status.String(),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
		Version:             d.Version,
	}
	if d.MinRate != nil {
		v := d.MinRate.String()
		body.MinRate = &v
	}
	if d.MaxRate != nil {
		v := d.MaxRate.String()
		body.MaxRate = &v
	}
	if d.FuelSurcharge != nil {
		v := d.FuelSurcharge.String()
		body.FuelSurcharge = &v
	}
	if d.RatePerMile != nil {
		v := d.RatePerMile.String()
		body.RatePerMile = &v
	}
	if d.Miles != nil {
		v := d.Miles.String()
		body.Miles = &v
	}
	return body
}

func createResponseBody(resp commands.CreateLoadResponse) CreateLoadResponseBody {
	return CreateLoadResponseBody{
		ID:              resp.LoadID.String(),
		ReferenceNumber: resp.ReferenceNumber,
		Status:          resp.Status.String(),
		CreatedAt:       resp.CreatedAt,
	}
}

func updateResponseBody(resp commands.UpdateLoadResponse) UpdateLoadResponseBody {
	return UpdateLoadResponseBody{
		ID:              resp.LoadID.String(),
		ReferenceNumber: resp.ReferenceNumber,
		Status:          resp.Status.String(),
		UpdatedAt:       resp.UpdatedAt,
		Version:         resp.Version,
	}
}

func deleteResponseBody(resp commands.DeleteLoadResponse) DeleteLoadResponseBody {
	return DeleteLoadResponseBody{
		ID:              resp.LoadID.String(),
		ReferenceNumber: resp.ReferenceNumber,
		DeletedAt:       resp.DeletedAt,
		Version:         resp.Version,
	}
}
