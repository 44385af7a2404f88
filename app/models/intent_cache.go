package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IntentCache cache kết quả phân tích truy vấn (tầng Mongo)
type IntentCache struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Fingerprint    string             `bson:"fingerprint" json:"fingerprint"`         // sha256 của truy vấn đã chuẩn hóa
	RawQuery       string             `bson:"raw_query" json:"raw_query"`             // Truy vấn gốc (đã cắt 400 ký tự)
	Result         Interpretation     `bson:"result" json:"result"`                   // Kết quả phân tích
	RulesetVersion string             `bson:"ruleset_version" json:"ruleset_version"` // Phiên bản bộ luật/prompt
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt      time.Time          `bson:"expires_at" json:"expires_at"` // TTL index
	LastAccessed   time.Time          `bson:"last_accessed" json:"last_accessed"`
	AccessCount    int                `bson:"access_count" json:"access_count"`
}

// NewIntentCache tạo mới một IntentCache
func NewIntentCache(fingerprint, rawQuery string, result Interpretation, rulesetVersion string, ttl time.Duration) *IntentCache {
	now := time.Now()
	return &IntentCache{
		Fingerprint:    fingerprint,
		RawQuery:       rawQuery,
		Result:         result,
		RulesetVersion: rulesetVersion,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
		LastAccessed:   now,
		AccessCount:    1,
	}
}

// UpdateAccess cập nhật thông tin truy cập
func (ic *IntentCache) UpdateAccess() {
	ic.LastAccessed = time.Now()
	ic.AccessCount++
}

// IsExpired kiểm tra cache có hết hạn không
func (ic *IntentCache) IsExpired() bool {
	return time.Now().After(ic.ExpiresAt)
}

// IsValidRulesetVersion kiểm tra phiên bản bộ luật có khớp không
func (ic *IntentCache) IsValidRulesetVersion(currentVersion string) bool {
	return ic.RulesetVersion == currentVersion
}
