package service

import (
	"context"
	"errors"

	"donmario/config"
	"donmario/infras/otel"
	"donmario/internal/domains/table/model"
	"donmario/internal/domains/table/model/dto"
	"donmario/internal/domains/table/repository"
	"donmario/shared"
	"donmario/shared/cache"
	"donmario/shared/constant"
	gDto "donmario/shared/dto"
	"donmario/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetTable    = "table:get"
	cacheGetAllTable = "table:gets"
	cacheCountTable  = "table:count"
)

type Table interface {
	Create(ctx context.Context, req dto.CreateTableRequest) (dto.TableResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTablesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo  repository.Table
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Table, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Table {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	table := req.ToModel()

	id, err := s.repo.InsertReturningID(ctx, table)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			log.Error().Err(err).Msg("table id already taken")

			return res, failure.DuplicateID(model.EntityName) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create table")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	table.ID = id
	res.FromModel(table)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTable)
		shared.InvalidateCaches(c, s.cache, cacheCountTable)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTable, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tables")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tables")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tables to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTable, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for table count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tables")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save table count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) SetAvailability(ctx context.Context, id int64, available bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	affected, err := s.repo.Update(
		ctx,
		map[string]any{model.FieldAvailable: available},
		shared.FilterByID(id, model.FieldID, model.TableName),
	)
	if err != nil {
		log.Error().Err(err).Int64("tableID", id).Msg("failed to update table availability")

		return failure.Persistence(err) // nolint:wrapcheck
	}

	if affected == 0 {
		log.Error().Int64("tableID", id).Msg("table not found")

		return failure.NotFoundEntity(model.EntityName, id) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTable)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("tableID", id).Msg("failed to delete table")

		return failure.Persistence(err) // nolint:wrapcheck
	}

	if affected == 0 {
		log.Error().Int64("tableID", id).Msg("table not found")

		return failure.NotFoundEntity(model.EntityName, id) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTable)
		shared.InvalidateCaches(c, s.cache, cacheCountTable)
	}()

	return nil
}
