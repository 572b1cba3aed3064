package shared

import (
	"chappbooking/shared/cache"
	"chappbooking/shared/constant"
	"chappbooking/shared/dto"
	"chappbooking/shared/failure"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins prefix and parts, e.g. booking:get:42.
func BuildCacheKey(prefix string, parts ...any) string {
	key := []string{prefix}

	for _, part := range parts {
		key = append(key, fmt.Sprint(part))
	}

	return strings.Join(key, cacheKeySeparator)
}

// InvalidateCaches removes every key under prefix.
func InvalidateCaches(ctx context.Context, redis cache.RedisCache, prefix string) {
	if err := redis.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// ParseID reads a positive numeric path id. Anything else cannot name a row, so it is a not found.
func ParseID(raw, entityName string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.NotFound(entityName + " not found") // nolint:wrapcheck
	}

	return id, nil
}
