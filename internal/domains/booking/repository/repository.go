package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"estate/infras/otel"
	"estate/infras/postgres"
	"estate/internal/domains/booking/model"
	propertyModel "estate/internal/domains/property/model"
	"estate/shared/constant"
	gDto "estate/shared/dto"
	"estate/shared/logger"
	gRepo "estate/shared/repository"
	"estate/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ConfirmPending(ctx context.Context, bookingID, actorID, propertyID string) (bool, error)
	CancelActive(ctx context.Context, bookingID, actorID, reason, propertyID string) (bool, error)
	ApplyPayment(ctx context.Context, bookingID, actorID string, amount float64, method, transactionID string, paidAt time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ConfirmPending flips a pending booking to confirmed and the property to
// rented in one transaction. The conditional update makes exactly one of two
// concurrent confirms win; the loser sees zero affected rows and false is
// returned without touching the property.
func (repo *repositoryImpl) ConfirmPending(ctx context.Context, bookingID, actorID, propertyID string) (won bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ConfirmPending")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := timezone.Now()

	query := confirmPendingQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.NamedExecContext(ctx, query, map[string]any{
		"status":   model.StatusConfirmed,
		"now":      now,
		"actor":    actorID,
		"id":       bookingID,
		"expected": model.StatusPending,
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to confirm booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		_ = tx.Rollback()

		return false, nil
	}

	if err = repo.setPropertyStatusTx(ctx, tx, propertyID, propertyModel.StatusRented, actorID, now); err != nil {
		return false, err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to commit confirm transaction: %w", err)
	}

	return true, nil
}

// CancelActive cancels a booking still in pending or confirmed and reverts
// the property to available, both inside one transaction.
func (repo *repositoryImpl) CancelActive(ctx context.Context, bookingID, actorID, reason, propertyID string) (won bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".CancelActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := timezone.Now()

	query := cancelActiveQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.NamedExecContext(ctx, query, map[string]any{
		"status":    model.StatusCancelled,
		"now":       now,
		"actor":     actorID,
		"reason":    reason,
		"id":        bookingID,
		"pending":   model.StatusPending,
		"confirmed": model.StatusConfirmed,
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to cancel booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		_ = tx.Rollback()

		return false, nil
	}

	if err = repo.setPropertyStatusTx(ctx, tx, propertyID, propertyModel.StatusAvailable, actorID, now); err != nil {
		return false, err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to commit cancel transaction: %w", err)
	}

	return true, nil
}

// ApplyPayment accrues a payment amount on a booking that still accepts
// payments. The accumulation and the status recomputation happen in the
// database so concurrent payments never lose an increment.
func (repo *repositoryImpl) ApplyPayment(ctx context.Context, bookingID, actorID string, amount float64, method, transactionID string, paidAt time.Time) (won bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ApplyPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := applyPaymentQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"amount":         amount,
		"completed":      model.PaymentStatusCompleted,
		"partial":        model.PaymentStatusPartial,
		"method":         method,
		"transaction_id": transactionID,
		"paid_at":        paidAt,
		"actor":          actorID,
		"id":             bookingID,
		"pending":        model.StatusPending,
		"confirmed":      model.StatusConfirmed,
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to apply payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func confirmPendingQuery() string {
	return fmt.Sprintf(
		"UPDATE %s SET %s = :status, %s = :now, %s = :actor, %s = :now, %s = :actor WHERE %s = :id AND %s = :expected",
		model.TableName,
		model.FieldBookingStatus, model.FieldConfirmedAt, model.FieldConfirmedBy,
		constant.FieldModifiedAt, constant.FieldModifiedBy,
		model.FieldID, model.FieldBookingStatus,
	)
}

func cancelActiveQuery() string {
	return fmt.Sprintf(
		"UPDATE %s SET %s = :status, %s = :now, %s = :actor, %s = :reason, %s = :now, %s = :actor WHERE %s = :id AND %s IN (:pending, :confirmed)",
		model.TableName,
		model.FieldBookingStatus, model.FieldCancelledAt, model.FieldCancelledBy, model.FieldCancellationReason,
		constant.FieldModifiedAt, constant.FieldModifiedBy,
		model.FieldID, model.FieldBookingStatus,
	)
}

func applyPaymentQuery() string {
	return fmt.Sprintf(
		`UPDATE %s SET
			%s = %s + :amount,
			%s = CASE
				WHEN %s + :amount >= %s THEN :completed
				WHEN %s + :amount > 0 THEN :partial
				ELSE %s
			END,
			%s = :method, %s = :transaction_id, %s = :paid_at, %s = :paid_at, %s = :actor
		WHERE %s = :id AND %s IN (:pending, :confirmed)`,
		model.TableName,
		model.FieldPaidAmount, model.FieldPaidAmount,
		model.FieldPaymentStatus,
		model.FieldPaidAmount, model.FieldTotalAmount,
		model.FieldPaidAmount,
		model.FieldPaymentStatus,
		model.FieldPaymentMethod, model.FieldTransactionID, model.FieldPaymentDate,
		constant.FieldModifiedAt, constant.FieldModifiedBy,
		model.FieldID, model.FieldBookingStatus,
	)
}

func (repo *repositoryImpl) setPropertyStatusTx(ctx context.Context, tx *sqlx.Tx, propertyID, status, actorID string, now time.Time) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = :status, %s = :now, %s = :actor WHERE %s = :id",
		propertyModel.TableName,
		propertyModel.FieldStatus,
		constant.FieldModifiedAt, constant.FieldModifiedBy,
		propertyModel.FieldID,
	)

	_, err := tx.NamedExecContext(ctx, query, map[string]any{
		"status": status,
		"now":    now,
		"actor":  actorID,
		"id":     propertyID,
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to update property status: %w", err)
	}

	return nil
}
