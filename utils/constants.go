// File: utils/constants.go
package utils

import "time"

// RatingCachePrefix is the prefix for cached road-rating projections.
const RatingCachePrefix = "rating:road:"

// RatingCacheTTL bounds staleness of cached rating projections; refreshes
// also invalidate eagerly.
const RatingCacheTTL = 5 * time.Minute

// TokenTTL is the lifetime of issued auth tokens.
const TokenTTL = 72 * time.Hour
