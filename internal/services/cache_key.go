package services

import (
	"crew-route-service/internal/domain"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

type cacheFingerprint struct {
	Algorithm     domain.Algorithm  `json:"a"`
	Locations     []domain.Location `json:"l"`
	StartIndex    int               `json:"s"`
	EndIndex      int               `json:"e"`
	StartTime     string            `json:"t"`
	Speed         float64           `json:"v"`
	MaxIterations int               `json:"i"`
}

// CacheKey fingerprints everything that determines a route's output.
func CacheKey(req OptimizeRequest) (string, error) {
	fp := cacheFingerprint{
		Algorithm:     req.Algorithm,
		Locations:     req.Locations,
		StartIndex:    req.Options.StartIndex,
		EndIndex:      req.Options.EndIndex,
		StartTime:     req.Options.StartTime.UTC().Format(time.RFC3339Nano),
		Speed:         req.Options.AverageSpeedKmh,
		MaxIterations: req.Options.MaxIterations,
	}

	b, err := json.Marshal(fp)
	if err != nil {
		return "", fmt.Errorf("cache key: marshal request: %w", err)
	}

	sum := sha256.Sum256(b)
	return "route:" + hex.EncodeToString(sum[:]), nil
}
