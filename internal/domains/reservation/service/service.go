package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"donmario/config"
	"donmario/infras/kafka"
	"donmario/infras/otel"
	"donmario/internal/domains/reservation/model"
	"donmario/internal/domains/reservation/model/dto"
	"donmario/internal/domains/reservation/repository"
	tableModel "donmario/internal/domains/table/model"
	tableRepo "donmario/internal/domains/table/repository"
	"donmario/shared"
	"donmario/shared/cache"
	"donmario/shared/constant"
	gDto "donmario/shared/dto"
	"donmario/shared/failure"
	"donmario/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
	cacheOccupancy         = "reservation:occupancy"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id int64) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.ReservationResponse, error)
	Occupancy(ctx context.Context, date string) (dto.OccupancyResponse, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	tableRepo tableRepo.Table
	cfg       *config.Config
	cache     cache.RedisCache
	kafka     kafka.Client
	otel      otel.Otel
	rngMu     sync.Mutex
	rng       *rand.Rand
}

// New wires the reservation service. The random source is injected so table
// assignment is reproducible under test.
func New(repo repository.Reservation, tableRepo tableRepo.Table, cfg *config.Config, cache cache.RedisCache, kafkaClient kafka.Client, otel otel.Otel, rng *rand.Rand) Reservation {
	return &serviceImpl{
		repo:      repo,
		tableRepo: tableRepo,
		cfg:       cfg,
		cache:     cache,
		kafka:     kafkaClient,
		otel:      otel,
		rng:       rng,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	tables, err := s.tableRepo.GetAll(ctx, gDto.QueryParams{}, availableTablesFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get available tables")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	if len(tables) == 0 {
		return res, failure.NoTablesAvailable() // nolint:wrapcheck
	}

	picked := tables[s.pick(len(tables))]

	existing, err := s.repo.Get(ctx, activeConflictFilter(picked.ID, req.Date))
	if err != nil {
		log.Error().Err(err).Msg("failed to check reservation conflict")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	if existing.ID != 0 {
		log.Error().Int64("tableID", picked.ID).Str("date", req.Date).Msg("table already reserved")

		return res, failure.TableAlreadyReserved(picked.ID, req.Date) // nolint:wrapcheck
	}

	reservation := req.ToModel(picked.ID, originatorFromContext(ctx))

	id, err := s.repo.ClaimAndInsert(ctx, reservation)
	if err != nil {
		if errors.Is(err, repository.ErrTableUnavailable) {
			log.Error().Int64("tableID", picked.ID).Str("date", req.Date).Msg("lost the table to a concurrent reservation")

			return res, failure.TableAlreadyReserved(picked.ID, req.Date) // nolint:wrapcheck
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			log.Error().Int64("tableID", picked.ID).Str("date", req.Date).Msg("active reservation already exists for table and date")

			return res, failure.TableAlreadyReserved(picked.ID, req.Date) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create reservation")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	reservation.ID = id
	res.FromModel(reservation)

	s.publish(ctx, s.cfg.Kafka.Topics.ReservationCreated, res)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
		shared.InvalidateCaches(c, s.cache, cacheOccupancy)
	}()

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("reservationID", id).Msg("failed to get reservation")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	if reservation.ID == 0 {
		log.Error().Int64("reservationID", id).Msg("reservation not found")

		return res, failure.NotFoundEntity(model.EntityName, id) // nolint:wrapcheck
	}

	if err = s.repo.CancelAndRelease(ctx, id, reservation.TableID); err != nil {
		log.Error().Err(err).Int64("reservationID", id).Msg("failed to cancel reservation")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	reservation.Status = constant.ReservationStatusCancelled
	reservation.ModifiedAt = timezone.Now()
	res.FromModel(reservation)

	s.publish(ctx, s.cfg.Kafka.Topics.ReservationCancelled, res)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, strconv.FormatInt(id, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
		shared.InvalidateCaches(c, s.cache, cacheOccupancy)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, strconv.FormatInt(id, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("reservationID", id).Msg("failed to get reservation")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	if reservation.ID == 0 {
		return res, failure.NotFoundEntity(model.EntityName, id) // nolint:wrapcheck
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Occupancy(ctx context.Context, date string) (res dto.OccupancyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Occupancy")
	defer scope.End()
	defer scope.TraceIfError(err)

	if date == "" {
		date = timezone.Today(constant.ReservationDateFormat)
	}

	cacheKey := shared.BuildCacheKey(cacheOccupancy, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for occupancy")

		return res, nil
	}

	total, err := s.tableRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count tables")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	occupied, err := s.repo.Count(ctx, activeOnDateFilter(date))
	if err != nil {
		log.Error().Err(err).Msg("failed to count active reservations")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	percentage := "0.00"
	if total > 0 {
		percentage = fmt.Sprintf("%.2f", float64(occupied)/float64(total)*100)
	}

	res = dto.OccupancyResponse{
		Date:        date,
		TotalTables: total,
		Occupied:    occupied,
		Free:        total - occupied,
		Percentage:  percentage,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save occupancy to cache")
		}
	}()

	return res, nil
}

// pick serializes access to the shared random source.
func (s *serviceImpl) pick(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	return s.rng.Intn(n)
}

func (s *serviceImpl) publish(ctx context.Context, topic string, res dto.ReservationResponse) {
	if !s.cfg.Kafka.Enable {
		return
	}

	msg := kafka.Message{
		Key:   strconv.FormatInt(res.ID, 10),
		Value: res,
	}

	if err := s.kafka.SendMessages(context.WithoutCancel(ctx), topic, msg); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to publish reservation event")
	}
}

func originatorFromContext(ctx context.Context) string {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAdmin {
		return constant.OriginatorAdmin
	}

	return constant.OriginatorClient
}

func availableTablesFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    tableModel.FieldAvailable,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    tableModel.TableName,
			},
		},
	}
}

func activeConflictFilter(tableID int64, date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTableID,
				Value:    tableID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldDate,
				Value:    date,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    constant.ReservationStatusActive,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func activeOnDateFilter(date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDate,
				Value:    date,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    constant.ReservationStatusActive,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
