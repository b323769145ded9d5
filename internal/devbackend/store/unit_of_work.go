package store

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork groups repository calls into one database transaction.
//
// Example:
//
//	uow := store.NewUnitOfWork(db)
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	if err := uow.Orders().Update(ctx, dto); err != nil {
//	    _ = uow.Rollback(ctx)
//	    return err
//	}
//	return uow.Commit(ctx)
type UnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Begin starts the transaction. Calling it twice is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// Orders runs inside the transaction when one is open.
func (uow *UnitOfWork) Orders() *OrderRepository {
	return NewOrderRepository(uow.conn())
}

// Partners runs inside the transaction when one is open.
func (uow *UnitOfWork) Partners() *PartnerRepository {
	return NewPartnerRepository(uow.conn())
}

func (uow *UnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
