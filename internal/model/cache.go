package model

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PositionCacheKey cache key of one position snapshot
func PositionCacheKey(userID, accountID, positionID int64) string {
	return fmt.Sprintf("positions:userId_%d:accountId_%d:positionId_%d", userID, accountID, positionID)
}

// UserPositionsPattern glob matching every cached position of a user
func UserPositionsPattern(userID int64) string {
	return fmt.Sprintf("positions:userId_%d:*", userID)
}

// EncodePosition cache entry of a position, operationId included
func EncodePosition(p *Position) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("cache - EncodePosition - Marshal: %w", err)
	}
	return string(raw), nil
}

// DecodePosition parse a cache entry
func DecodePosition(raw string) (*Position, error) {
	p := &Position{}
	if err := json.Unmarshal([]byte(raw), p); err != nil {
		return nil, fmt.Errorf("cache - DecodePosition - Unmarshal: %w", err)
	}
	return p, nil
}
