package repository

import (
	"context"
	"errors"
	"fmt"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"jandervidros/internal/apperror"
)

// Store owns the *gorm.DB handle every repository runs through. It is created
// once by the composition root and closed there; nothing else holds the pool.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// DB returns the handle bound to ctx.
func (s *Store) DB(ctx context.Context) *gorm.DB { return s.db.WithContext(ctx) }

// Transaction runs fn inside BEGIN … COMMIT. Any error returned by fn, or a
// panic, rolls back every statement fn issued. The error is classified.
func (s *Store) Transaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	return classify(op, s.db.WithContext(ctx).Transaction(fn))
}

// Ping checks that the backend answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperror.Backend("ping", err)
	}
	return apperror.Backend("ping", sqlDB.PingContext(ctx))
}

// Close releases the pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Driver is the dialect name reported by gorm ("postgres", "mysql", "sqlite").
func (s *Store) Driver() string { return s.db.Dialector.Name() }

// findByID loads one row into dest, mapping a missing row to NotFound.
func (s *Store) findByID(ctx context.Context, entity string, dest interface{}, id uint) error {
	err := s.DB(ctx).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(entity, id)
	}
	return classify("find "+entity, err)
}

// deleteByID removes one row, mapping zero affected rows to NotFound.
func (s *Store) deleteByID(ctx context.Context, entity string, m interface{}, id uint) error {
	res := s.DB(ctx).Delete(m, id)
	if res.Error != nil {
		return classify("delete "+entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound(entity, id)
	}
	return nil
}

// classify maps a driver error onto the apperror taxonomy. Constraint
// violations are the caller's fault; everything else is a backend failure.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) || apperror.IsValidation(err) || apperror.IsBackend(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, apperror.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23502", "23503", "23505", "23514": // not_null, foreign_key, unique, check
			return &apperror.ValidationError{Field: pgErr.ColumnName, Message: pgErr.Message}
		case "22003": // numeric_value_out_of_range
			return &apperror.ValidationError{Field: pgErr.ColumnName, Message: "value out of range"}
		}
	}

	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1048, 1062, 1452, 3819: // bad null, dup entry, no referenced row, check
			return &apperror.ValidationError{Message: myErr.Message}
		case 1264: // out of range value for column
			return &apperror.ValidationError{Message: myErr.Message}
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		return &apperror.ValidationError{Message: liteErr.Error()}
	}

	return apperror.Backend(op, err)
}
