// Package http exposes the load lifecycle over a JSON API. It translates
// wire payloads into commands and queries and the core error taxonomy into
// HTTP statuses; no business rule lives here.
package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/application/usecases/queries"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createLoadHandler commands.CreateLoadCommandHandler
	updateLoadHandler commands.UpdateLoadCommandHandler
	deleteLoadHandler commands.DeleteLoadCommandHandler

	listLoadsHandler queries.ListLoadsQueryHandler
	getLoadHandler   queries.GetLoadQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createLoadHandler commands.CreateLoadCommandHandler,
	updateLoadHandler commands.UpdateLoadCommandHandler,
	deleteLoadHandler commands.DeleteLoadCommandHandler,
	listLoadsHandler queries.ListLoadsQueryHandler,
	getLoadHandler queries.GetLoadQueryHandler,
) *Server {
	return &Server{
		createLoadHandler: createLoadHandler,
		updateLoadHandler: updateLoadHandler,
		deleteLoadHandler: deleteLoadHandler,
		listLoadsHandler:  listLoadsHandler,
		getLoadHandler:    getLoadHandler,
	}
}

// RegisterRoutes mounts the API onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/loads", s.CreateLoad)
	v1.GET("/loads", s.ListLoads)
	v1.GET("/loads/:loadId", s.GetLoad)
	v1.PATCH("/loads/:loadId", s.UpdateLoad)
	v1.DELETE("/loads/:loadId", s.DeleteLoad)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateLoad handles POST /api/v1/loads.
func (s *Server) CreateLoad(ctx echo.Context) error {
	var req CreateLoadRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	params, err := createParams(req)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCreateLoadCommand(params)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.createLoadHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createResponseBody(resp))
}

// ListLoads handles GET /api/v1/loads.
func (s *Server) ListLoads(ctx echo.Context) error {
	params, err := listParams(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewListLoadsQuery(params)
	if err != nil {
		return errorResponse(ctx, err)
	}

	page, err := s.listLoadsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	loads := make([]LoadSummaryBody, 0, len(page.Loads))
	for _, summary := range page.Loads {
		loads = append(loads, summaryBody(summary))
	}

	return ctx.JSON(http.StatusOK, ListLoadsResponseBody{
		Loads:       loads,
		TotalCount:  page.TotalCount,
		Page:        page.Page,
		PageSize:    page.PageSize,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
	})
}

// GetLoad handles GET /api/v1/loads/{loadId}.
func (s *Server) GetLoad(ctx echo.Context) error {
	loadID, err := kernel.UUIDFromString(ctx.Param("loadId"))
	if err != nil {
		return badRequest(ctx, "invalid load id")
	}

	query, err := queries.NewGetLoadQuery(loadID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	detail, err := s.getLoadHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, detailBody(detail))
}

// UpdateLoad handles PATCH /api/v1/loads/{loadId}.
func (s *Server) UpdateLoad(ctx echo.Context) error {
	loadID, err := kernel.UUIDFromString(ctx.Param("loadId"))
	if err != nil {
		return badRequest(ctx, "invalid load id")
	}

	var req UpdateLoadRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if req.Version == nil {
		return badRequest(ctx, "version is required")
	}

	changes, err := changeSet(req)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdateLoadCommand(loadID, *req.Version, changes)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.updateLoadHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, updateResponseBody(resp))
}

// DeleteLoad handles DELETE /api/v1/loads/{loadId}.
func (s *Server) DeleteLoad(ctx echo.Context) error {
	loadID, err := kernel.UUIDFromString(ctx.Param("loadId"))
	if err != nil {
		return badRequest(ctx, "invalid load id")
	}

	var req DeleteLoadRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if req.Version == nil {
		return badRequest(ctx, "version is required")
	}

	cmd, err := commands.NewDeleteLoadCommand(loadID, *req.Version)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.deleteLoadHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deleteResponseBody(resp))
}

// errorResponse maps the core error taxonomy onto HTTP statuses: malformed
// input is 400, a missing load 404, write races 409, and business rule
// rejections on an existing load 422.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrLoadNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrVersionConflict),
		errors.Is(err, errs.ErrDuplicateReference),
		errors.Is(err, errs.ErrDuplicateKey):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrLoadImmutable),
		errors.Is(err, errs.ErrLoadDeleted):
		status = http.StatusUnprocessableEntity
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Do not leak repository internals to callers; keep the cause in
		// the server log so storage failures stay diagnosable.
		ctx.Logger().Error(err)
		message = "internal error"
	}

	return ctx.JSON(status, ErrorBody{Code: status, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorBody{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func createParams(req CreateLoadRequest) (load.NewLoadParams, error) {
	origin, err := kernel.NewLocation(req.Origin.City, req.Origin.State, req.Origin.PostalCode)
	if err != nil {
		return load.NewLoadParams{}, errs.NewValidationError("origin", err)
	}
	destination, err := kernel.NewLocation(req.Destination.City, req.Destination.State, req.Destination.PostalCode)
	if err != nil {
		return load.NewLoadParams{}, errs.NewValidationError("destination", err)
	}

	rate, err := kernel.MoneyFromString(req.LoadboardRate)
	if err != nil {
		return load.NewLoadParams{}, errs.NewValidationError("loadboard_rate", err)
	}

	minRate, err := optionalMoneyParam(req.MinRate, "min_rate")
	if err != nil {
		return load.NewLoadParams{}, err
	}
	maxRate, err := optionalMoneyParam(req.MaxRate, "max_rate")
	if err != nil {
		return load.NewLoadParams{}, err
	}
	fuelSurcharge, err := optionalMoneyParam(req.FuelSurcharge, "fuel_surcharge")
	if err != nil {
		return load.NewLoadParams{}, err
	}

	miles, err := optionalDistanceParam(req.Miles)
	if err != nil {
		return load.NewLoadParams{}, err
	}

	return load.NewLoadParams{
		Origin:      origin,
		Destination: destination,
		PickupAt:    req.PickupDatetime,
		DeliveryAt:  req.DeliveryDatetime,

		Rate:          rate,
		MinRate:       minRate,
		MaxRate:       maxRate,
		FuelSurcharge: fuelSurcharge,

		Equipment:   load.EquipmentType(req.EquipmentType),
		Commodity:   req.CommodityType,
		WeightLbs:   req.WeightLbs,
		Dimensions:  req.Dimensions,
		NumOfPieces: req.NumOfPieces,
		Hazmat:      req.Hazmat,
		HazmatClass: req.HazmatClass,

		SessionID:           req.SessionID,
		Miles:               miles,
		Notes:               req.Notes,
		BrokerCompany:       req.BrokerCompany,
		CustomerName:        req.CustomerName,
		SpecialRequirements: req.SpecialRequirements,
	}, nil
}

func changeSet(req UpdateLoadRequest) (load.ChangeSet, error) {
	var changes load.ChangeSet

	if req.Origin != nil {
		origin, err := kernel.NewLocation(req.Origin.City, req.Origin.State, req.Origin.PostalCode)
		if err != nil {
			return load.ChangeSet{}, errs.NewValidationError("origin", err)
		}
		changes.Origin = &origin
	}
	if req.Destination != nil {
		destination, err := kernel.NewLocation(req.Destination.City, req.Destination.State, req.Destination.PostalCode)
		if err != nil {
			return load.ChangeSet{}, errs.NewValidationError("destination", err)
		}
		changes.Destination = &destination
	}
	changes.PickupAt = req.PickupDatetime
	changes.DeliveryAt = req.DeliveryDatetime

	if req.LoadboardRate != nil {
		rate, err := kernel.MoneyFromString(*req.LoadboardRate)
		if err != nil {
			return load.ChangeSet{}, errs.NewValidationError("loadboard_rate", err)
		}
		changes.Rate = &rate
	}

	minRate, err := clearableMoneyChange(req.MinRate, "min_rate")
	if err != nil {
		return load.ChangeSet{}, err
	}
	changes.MinRate = minRate

	maxRate, err := clearableMoneyChange(req.MaxRate, "max_rate")
	if err != nil {
		return load.ChangeSet{}, err
	}
	changes.MaxRate = maxRate

	fuelSurcharge, err := clearableMoneyChange(req.FuelSurcharge, "fuel_surcharge")
	if err != nil {
		return load.ChangeSet{}, err
	}
	changes.FuelSurcharge = fuelSurcharge

	if req.EquipmentType != nil {
		equipment := load.EquipmentType(*req.EquipmentType)
		changes.Equipment = &equipment
	}
	changes.Commodity = req.CommodityType
	changes.WeightLbs = req.WeightLbs
	changes.Dimensions = req.Dimensions
	changes.NumOfPieces = req.NumOfPieces
	changes.Hazmat = req.Hazmat
	changes.HazmatClass = req.HazmatClass
	changes.Booked = req.Booked
	changes.SessionID = req.SessionID

	if req.Miles != nil {
		if *req.Miles == "" {
			var cleared *kernel.Distance
			changes.Miles = &cleared
		} else {
			miles, distErr := kernel.DistanceFromString(*req.Miles)
			if distErr != nil {
				return load.ChangeSet{}, errs.NewValidationError("miles", distErr)
			}
			milesPtr := &miles
			changes.Miles = &milesPtr
		}
	}

	changes.Notes = req.Notes
	changes.BrokerCompany = req.BrokerCompany
	changes.CustomerName = req.CustomerName
	changes.SpecialRequirements = req.SpecialRequirements

	if req.Status != nil {
		status, statusErr := load.StatusFromString(*req.Status)
		if statusErr != nil {
			return load.ChangeSet{}, errs.NewValidationError("status", statusErr)
		}
		changes.Status = &status
	}

	return changes, nil
}

func listParams(ctx echo.Context) (queries.ListLoadsParams, error) {
	var params queries.ListLoadsParams

	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := load.StatusFromString(raw)
		if err != nil {
			return queries.ListLoadsParams{}, errs.NewValidationError("status", err)
		}
		params.Status = &status
	}
	if raw := ctx.QueryParam("equipment_type"); raw != "" {
		equipment := load.EquipmentType(raw)
		params.Equipment = &equipment
	}
	if raw := ctx.QueryParam("pickup_from"); raw != "" {
		from, err := parseTimeParam(raw, "pickup_from")
		if err != nil {
			return queries.ListLoadsParams{}, err
		}
		params.PickupFrom = from
	}
	if raw := ctx.QueryParam("pickup_to"); raw != "" {
		to, err := parseTimeParam(raw, "pickup_to")
		if err != nil {
			return queries.ListLoadsParams{}, err
		}
		params.PickupTo = to
	}
	if raw := ctx.QueryParam("sort_by"); raw != "" {
		sortBy, err := queries.SortByFromString(raw)
		if err != nil {
			return queries.ListLoadsParams{}, err
		}
		params.SortBy = sortBy
	}
	params.Descending = ctx.QueryParam("sort_dir") == "desc"

	page, err := parseIntParam(ctx.QueryParam("page"), "page")
	if err != nil {
		return queries.ListLoadsParams{}, err
	}
	params.Page = page

	pageSize, err := parseIntParam(ctx.QueryParam("page_size"), "page_size")
	if err != nil {
		return queries.ListLoadsParams{}, err
	}
	params.PageSize = pageSize

	return params, nil
}

func parseTimeParam(raw, field string) (*time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errs.NewValidationError(field, err)
	}
	return &t, nil
}

func parseIntParam(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError(field, fmt.Errorf("%q is not an integer", raw))
	}
	return n, nil
}

func optionalMoneyParam(raw *string, field string) (*kernel.Money, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	m, err := kernel.MoneyFromString(*raw)
	if err != nil {
		return nil, errs.NewValidationError(field, err)
	}
	return &m, nil
}

func optionalDistanceParam(raw *string) (*kernel.Distance, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := kernel.DistanceFromString(*raw)
	if err != nil {
		return nil, errs.NewValidationError("miles", err)
	}
	return &d, nil
}

func clearableMoneyChange(raw *string, field string) (**kernel.Money, error) {
	if raw == nil {
		return nil, nil
	}
	if *raw == "" {
		var cleared *kernel.Money
		return &cleared, nil
	}
	m, err := kernel.MoneyFromString(*raw)
	if err != nil {
		return nil, errs.NewValidationError(field, err)
	}
	ptr := &m
	return &ptr, nil
}
