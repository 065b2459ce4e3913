package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/db"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnsupportedOperation is returned for natural-key lookups on a
// repository that has no such key
var ErrUnsupportedOperation = errors.New("operation not supported")

// Repository is the CRUD surface shared by every entity
type Repository[T any] interface {
	// Get returns nil, nil when no entity has the id
	Get(ctx context.Context, id uint) (*T, error)
	// GetByColumn matches a natural key case-insensitively, exactly when
	// strict is set and by substring otherwise
	GetByColumn(ctx context.Context, key, value string, strict bool) ([]T, error)
	GetAll(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, entity *T) (uint, error)
	Update(ctx context.Context, entity *T) (uint, error)
	Delete(ctx context.Context, id uint) error
}

type entityPtr[T any] interface {
	*T
	model.Entity
}

type crudRepository[T any, PT entityPtr[T]] struct {
	db      *gorm.DB
	kind    string
	columns map[string]string // natural key -> column expression
	preload func(*gorm.DB) *gorm.DB
}

func newCrudRepository[T any, PT entityPtr[T]](conn *gorm.DB, kind string, columns map[string]string) *crudRepository[T, PT] {
	return &crudRepository[T, PT]{db: conn, kind: kind, columns: columns}
}

func (r *crudRepository[T, PT]) query(tx *gorm.DB) *gorm.DB {
	if r.preload != nil {
		return r.preload(tx)
	}
	return tx
}

func (r *crudRepository[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	var entity *T
	err := db.WithSession(ctx, r.db, func(tx *gorm.DB) error {
		var err error
		entity, err = r.getTx(tx, id)
		return err
	})
	if err != nil {
		logger.Error("Failed to find entity by ID in database", err, logger.Fields{
			"kind": r.kind,
			"id":   id,
		})
		return nil, err
	}
	return entity, nil
}

func (r *crudRepository[T, PT]) getTx(tx *gorm.DB, id uint) (*T, error) {
	var entity T
	err := r.query(tx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *crudRepository[T, PT]) GetByColumn(ctx context.Context, key, value string, strict bool) ([]T, error) {
	column, ok := r.columns[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no natural key %q", ErrUnsupportedOperation, r.kind, key)
	}

	logger.Debug("Finding entities by column in database", logger.Fields{
		"kind":   r.kind,
		"key":    key,
		"strict": strict,
	})

	var entities []T
	err := db.WithSession(ctx, r.db, func(tx *gorm.DB) error {
		q := r.query(tx)
		if strict {
			q = q.Where(fmt.Sprintf("LOWER(%s) = ?", column), strings.ToLower(value))
		} else {
			q = q.Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column), "%"+escapeLike(strings.ToLower(value))+"%")
		}
		return q.Order("id ASC").Find(&entities).Error
	})
	if err != nil {
		logger.Error("Failed to find entities by column in database", err, logger.Fields{
			"kind": r.kind,
			"key":  key,
		})
		return nil, err
	}
	return entities, nil
}

func (r *crudRepository[T, PT]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	err := db.WithSession(ctx, r.db, func(tx *gorm.DB) error {
		return r.query(tx).Order("id ASC").Find(&entities).Error
	})
	if err != nil {
		logger.Error("Failed to list entities in database", err, logger.Fields{"kind": r.kind})
		return nil, err
	}
	return entities, nil
}

func (r *crudRepository[T, PT]) Insert(ctx context.Context, entity *T) (uint, error) {
	err := db.WithSession(ctx, r.db, func(tx *gorm.DB) error {
		return r.insertTx(tx, entity)
	})
	if err != nil {
		return 0, err
	}
	return PT(entity).GetID(), nil
}

func (r *crudRepository[T, PT]) insertTx(tx *gorm.DB, entity *T) error {
	PT(entity).SetID(0)
	if err := tx.Omit(clause.Associations).Create(entity).Error; err != nil {
		logger.Error("Failed to insert entity in database", err, logger.Fields{"kind": r.kind})
		return err
	}
	logger.Debug("Entity inserted in database", logger.Fields{
		"kind": r.kind,
		"id":   PT(entity).GetID(),
	})
	return nil
}

func (r *crudRepository[T, PT]) Update(ctx context.Context, entity *T) (uint, error) {
	err := db.WithSession(ctx, r.db, func(tx *gorm.DB) error {
		return r.updateTx(tx, entity)
	})
	if err != nil {
		return 0, err
	}
	return PT(entity).GetID(), nil
}

func (r *crudRepository[T, PT]) updateTx(tx *gorm.DB, entity *T) error {
	if err := r.mustExist(tx, PT(entity).GetID()); err != nil {
		return err
	}
	if err := tx.Omit(clause.Associations).Save(entity).Error; err != nil {
		logger.Error("Failed to update entity in database", err, logger.Fields{
			"kind": r.kind,
			"id":   PT(entity).GetID(),
		})
		return err
	}
	logger.Debug("Entity updated in database", logger.Fields{
		"kind": r.kind,
		"id":   PT(entity).GetID(),
	})
	return nil
}

func (r *crudRepository[T, PT]) Delete(ctx context.Context, id uint) error {
	return db.WithSession(ctx, r.db, func(tx *gorm.DB) error {
		return r.deleteTx(tx, id)
	})
}

func (r *crudRepository[T, PT]) deleteTx(tx *gorm.DB, id uint) error {
	result := tx.Delete(new(T), id)
	if result.Error != nil {
		logger.Error("Failed to delete entity from database", result.Error, logger.Fields{
			"kind": r.kind,
			"id":   id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	logger.Debug("Entity deleted from database", logger.Fields{
		"kind": r.kind,
		"id":   id,
	})
	return nil
}

// mustExist returns gorm.ErrRecordNotFound when no row has the id
func (r *crudRepository[T, PT]) mustExist(tx *gorm.DB, id uint) error {
	if id == 0 {
		return gorm.ErrRecordNotFound
	}
	var count int64
	if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
