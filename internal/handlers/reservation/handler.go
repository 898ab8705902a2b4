package reservation

import (
	"net/http"
	"strconv"

	"donmario/infras/otel"
	"donmario/internal/domains/reservation/model"
	"donmario/internal/domains/reservation/model/dto"
	"donmario/internal/domains/reservation/service"
	"donmario/shared/constant"
	gDto "donmario/shared/dto"
	"donmario/shared/failure"
	"donmario/shared/validator"
	"donmario/transport/http/middleware"
	"donmario/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	authMw  middleware.Auth
	otel    otel.Otel
}

func New(service service.Reservation, authMw middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		authMw:  authMw,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.With(handler.authMw.Optional).Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/occupancy", handler.GetOccupancy)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Post("/{id}/cancel", handler.CancelReservation)
	})
}

// CreateReservation books a randomly assigned available table for the requested
// date. The originator is derived from the caller's token: admins book as Admin,
// everyone else as Client.
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservation created for table " + strconv.FormatInt(reservation.TableID, 10))

	response.WithJSON(writer, http.StatusCreated, reservation)
}

// GetReservations lists reservations of any status with optional date, status
// and table filters.
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	date := r.URL.Query().Get(constant.RequestParamDate)
	status := r.URL.Query().Get(model.FieldStatus)
	tableID := r.URL.Query().Get(model.FieldTableID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if date != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if tableID != "" {
		parsedTableID, err := strconv.ParseInt(tableID, 10, 64)
		if err != nil {
			err = failure.BadRequestFromString("invalid table_id parameter")

			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTableID,
			Operator: gDto.FilterOperatorEq,
			Value:    parsedTableID,
			Table:    model.TableName,
		})
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetOccupancy reports table occupancy for a date, defaulting to today.
func (handler *Handler) GetOccupancy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOccupancy")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)

	occupancy, err := handler.service.Occupancy(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get occupancy")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Occupancy retrieved successfully")

	response.WithJSON(w, http.StatusOK, occupancy)
}

// GetReservationByID retrieves a reservation by its identifier.
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservation)
}

// CancelReservation cancels a reservation and frees its table. Cancelling an
// already cancelled reservation succeeds.
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Cancel(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation cancelled successfully")

	response.WithJSON(w, http.StatusOK, reservation)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil {
		return 0, failure.BadRequestFromString("invalid id parameter") // nolint:wrapcheck
	}

	return id, nil
}
