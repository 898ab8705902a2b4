package table

import (
	"net/http"
	"strconv"

	"donmario/infras/otel"
	"donmario/internal/domains/table/model"
	"donmario/internal/domains/table/model/dto"
	"donmario/internal/domains/table/service"
	"donmario/shared"
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
	service service.Table
	authMw  middleware.Auth
	otel    otel.Otel
}

func New(service service.Table, authMw middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		authMw:  authMw,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tables", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTables)

		routerGroup.Group(func(adminGroup chi.Router) {
			adminGroup.Use(handler.authMw.Verify)
			adminGroup.Use(handler.authMw.RequireAdmin)
			adminGroup.Post("/", handler.CreateTable)
			adminGroup.Delete("/{id}", handler.DeleteTable)
			adminGroup.Patch("/{id}/availability", handler.SetAvailability)
		})
	})
}

// GetTables lists dining tables with an optional availability filter.
func (handler *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTables")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	available := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldAvailable))

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if available != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAvailable,
			Operator: gDto.FilterOperatorEq,
			Value:    *available,
			Table:    model.TableName,
		})
	}

	tables, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tables")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tables retrieved successfully")

	response.WithJSON(w, http.StatusOK, tables)
}

// CreateTable adds a dining table to the inventory. New tables start available.
func (handler *Handler) CreateTable(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTable")
	defer scope.End()

	req := dto.CreateTableRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	table, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create table")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Table created successfully")

	response.WithJSON(writer, http.StatusCreated, table)
}

// DeleteTable removes a dining table from the inventory.
func (handler *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTable")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table deleted successfully")

	response.WithMessage(w, http.StatusOK, "Table deleted successfully")
}

// SetAvailability overrides a table's availability flag.
func (handler *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetAvailability")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.UpdateAvailabilityRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetAvailability(ctx, id, *req.Available); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update table availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table availability updated successfully")

	response.WithMessage(w, http.StatusOK, "Table availability updated successfully")
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil {
		return 0, failure.BadRequestFromString("invalid id parameter") // nolint:wrapcheck
	}

	return id, nil
}
