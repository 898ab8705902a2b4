package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"donmario/infras/otel"
	"donmario/infras/postgres"
	"donmario/internal/domains/reservation/model"
	tableModel "donmario/internal/domains/table/model"
	"donmario/shared"
	"donmario/shared/constant"
	gDto "donmario/shared/dto"
	"donmario/shared/logger"
	gRepo "donmario/shared/repository"
	"donmario/shared/timezone"

	"github.com/jmoiron/sqlx"
)

// ErrTableUnavailable reports that the claimed table was taken by a concurrent
// caller between the pick and the claim.
var ErrTableUnavailable = errors.New("table is no longer available")

type Reservation interface {
	ClaimAndInsert(ctx context.Context, res model.Reservation) (int64, error)
	CancelAndRelease(ctx context.Context, reservationID, tableID int64) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	tables gRepo.Repository[tableModel.Table]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		tables:     gRepo.NewRepository[tableModel.Table](tableModel.EntityName, tableModel.TableName, tableModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ClaimAndInsert atomically flips the picked table to unavailable and inserts the
// reservation in a single transaction. The claim is conditional on the table still
// being available, so two concurrent callers cannot both win the same table.
func (repo *repositoryImpl) ClaimAndInsert(ctx context.Context, res model.Reservation) (id int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ClaimAndInsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to begin claim transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	claimFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    tableModel.FieldID,
				Value:    res.TableID,
				Operator: gDto.FilterOperatorEq,
				Table:    tableModel.TableName,
			},
			gDto.Filter{
				ArgName:  "want_available",
				Field:    tableModel.FieldAvailable,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    tableModel.TableName,
			},
		},
	}

	claimed, err := repo.tables.UpdateTx(ctx, tx, map[string]any{
		tableModel.FieldAvailable: false,
		constant.FieldModifiedAt:  timezone.Now(),
	}, claimFilter)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to claim table: %w", err)
	}

	if claimed == 0 {
		return 0, ErrTableUnavailable
	}

	id, err = repo.InsertReturningIDTx(ctx, tx, res)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to insert reservation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to commit claim transaction: %w", err)
	}

	return id, nil
}

// CancelAndRelease marks the reservation cancelled and frees its table in a single
// transaction. Cancelling an already cancelled reservation re-frees the table and
// is not an error.
func (repo *repositoryImpl) CancelAndRelease(ctx context.Context, reservationID, tableID int64) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CancelAndRelease")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin cancel transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	_, err = repo.UpdateTx(ctx, tx, map[string]any{
		model.FieldStatus:        constant.ReservationStatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
	}, shared.FilterByID(reservationID, model.FieldID, model.TableName))
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	_, err = repo.tables.UpdateTx(ctx, tx, map[string]any{
		tableModel.FieldAvailable: true,
		constant.FieldModifiedAt:  timezone.Now(),
	}, shared.FilterByID(tableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to release table: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit cancel transaction: %w", err)
	}

	return nil
}

func rollbackOnError(tx *sqlx.Tx, err *error) {
	if *err == nil {
		return
	}

	if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		logger.ErrorWithStack(rbErr)
	}
}
