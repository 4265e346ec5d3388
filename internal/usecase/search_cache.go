package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const recommendationKeyPrefix = "recommend:"

// RecommendationCacheKey hashes the normalized query together with the
// catalog fingerprint, so a reload never serves results from an older
// dataset. Fields are NUL separated.
func RecommendationCacheKey(fingerprint string, skills []string, limit int, minPercent float64, similarity bool) string {
	var b strings.Builder
	b.WriteString(fingerprint)
	b.WriteByte(0)
	b.WriteString(strings.Join(skills, "\x1f"))
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(limit))
	b.WriteByte(0)
	b.WriteString(strconv.FormatFloat(minPercent, 'g', -1, 64))
	b.WriteByte(0)
	b.WriteString(strconv.FormatBool(similarity))

	sum := sha256.Sum256([]byte(b.String()))
	return recommendationKeyPrefix + hex.EncodeToString(sum[:])
}

// RecommendationCachePattern matches every cached recommendation.
func RecommendationCachePattern() string {
	return recommendationKeyPrefix + "*"
}
