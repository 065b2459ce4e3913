package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/pkg/logger"
)

type entityPtr[T any] interface {
	*T
	model.Entity
}

func getByID[T any](ctx context.Context, repo repository.Repository[T], kind string, id uint) (*T, error) {
	entity, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, &NotFoundError{Kind: kind, ID: id}
	}
	return entity, nil
}

// list returns every entity, or those whose key contains pattern, then cuts
// the result to the requested window
func list[T any](ctx context.Context, repo repository.Repository[T], key string, params ListParams) ([]T, error) {
	var (
		items []T
		err   error
	)
	pattern := strings.TrimSpace(params.Pattern)
	if pattern == "" || key == "" {
		items, err = repo.GetAll(ctx)
	} else {
		items, err = repo.GetByColumn(ctx, key, pattern, false)
	}
	if err != nil {
		return nil, err
	}
	return MakeCut(items, params.Quantity, params.Offset), nil
}

// checkUnique returns a field error when another entity already has value
// under key, compared case-insensitively
func checkUnique[T any, PT entityPtr[T]](ctx context.Context, repo repository.Repository[T], kind, key, value string, selfID uint) (map[string]string, error) {
	matches, err := repo.GetByColumn(ctx, key, value, true)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if PT(&matches[i]).GetID() != selfID {
			logger.Warn("Duplicate natural key", logger.Fields{
				"kind":  kind,
				"key":   key,
				"value": value,
			})
			return map[string]string{key: fmt.Sprintf("%s with this %s already exists", kind, key)}, nil
		}
	}
	return nil, nil
}

func deleteByID[T any](ctx context.Context, repo repository.Repository[T], kind string, id uint) error {
	if _, err := getByID(ctx, repo, kind, id); err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete entity", err, logger.Fields{
			"kind": kind,
			"id":   id,
		})
		return wrapDeleteError(kind, id, err)
	}
	logger.Info("Entity deleted", logger.Fields{
		"kind": kind,
		"id":   id,
	})
	return nil
}

func mergeFields(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
