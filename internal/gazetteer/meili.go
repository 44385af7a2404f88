package gazetteer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"github.com/xrash/smetrics"
	"go.uber.org/zap"

	"github.com/intent-parser/internal/normalizer"
)

// MeiliConfig cấu hình cho gazetteer chạy trên Meilisearch
type MeiliConfig struct {
	Host      string
	APIKey    string
	IndexName string
	Timeout   time.Duration
}

// MeiliGazetteer tra cứu tỉnh/thành qua Meilisearch, có StaticGazetteer
// làm phương án dự phòng khi Meilisearch lỗi.
type MeiliGazetteer struct {
	client    meilisearch.ServiceManager
	indexName string
	timeout   time.Duration
	fallback  *StaticGazetteer
	logger    *zap.Logger
}

// NewMeiliGazetteer tạo gazetteer Meilisearch, kiểm tra kết nối ngay lúc khởi tạo.
func NewMeiliGazetteer(cfg MeiliConfig, fallback *StaticGazetteer, logger *zap.Logger) (*MeiliGazetteer, error) {
	client := meilisearch.New(cfg.Host, meilisearch.WithAPIKey(cfg.APIKey))
	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Meilisearch: %w", err)
	}

	return &MeiliGazetteer{
		client:    client,
		indexName: cfg.IndexName,
		timeout:   cfg.Timeout,
		fallback:  fallback,
		logger:    logger,
	}, nil
}

// Reload kiểm tra lại kết nối Meilisearch, dùng cho thao tác reload của admin.
func (g *MeiliGazetteer) Reload(ctx context.Context) error {
	if _, err := g.client.Health(); err != nil {
		return fmt.Errorf("Meilisearch không sẵn sàng: %w", err)
	}
	g.logger.Info("Meilisearch gazetteer sẵn sàng", zap.String("index", g.indexName))
	return nil
}

// Lookup tìm tỉnh/thành qua Meilisearch rồi rescore lại bằng JaroWinkler
// để loại hit lạc đề (Meilisearch rất bao dung với typo).
func (g *MeiliGazetteer) Lookup(ctx context.Context, text string) (*Match, error) {
	folded := normalizer.FoldStrict(text)
	if folded == "" {
		return nil, nil
	}

	index := g.client.Index(g.indexName)
	result, err := index.Search(folded, &meilisearch.SearchRequest{Limit: 5})
	if err != nil {
		g.logger.Warn("Meilisearch lỗi, dùng gazetteer tĩnh", zap.Error(err))
		return g.fallback.Lookup(ctx, text)
	}

	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := hitMap["name"].(string)
		if name == "" {
			continue
		}

		aliases := []string{normalizer.FoldStrict(name)}
		if raw, ok := hitMap["aliases"].([]interface{}); ok {
			for _, a := range raw {
				if s, ok := a.(string); ok {
					aliases = append(aliases, s)
				}
			}
		}

		if alias, span := g.confirmHit(folded, aliases); alias != "" {
			remaining := strings.TrimSpace(strings.Replace(folded, span, " ", 1))
			remaining = strings.Join(strings.Fields(remaining), " ")
			return &Match{ProvinceName: name, RemainingKeyword: remaining}, nil
		}
	}

	// Meilisearch không có hit đáng tin thì vẫn thử bảng tĩnh
	return g.fallback.Lookup(ctx, text)
}

// confirmHit tìm n-gram trong query đủ gần một alias của hit.
func (g *MeiliGazetteer) confirmHit(folded string, aliases []string) (alias, span string) {
	words := strings.Fields(folded)
	for n := 3; n >= 1; n-- {
		for i := 0; i+n <= len(words); i++ {
			candidate := strings.Join(words[i:i+n], " ")
			for _, a := range aliases {
				if a == "" {
					continue
				}
				if candidate == a || smetrics.JaroWinkler(candidate, a, 0.7, 4) >= 0.95 {
					return a, candidate
				}
			}
		}
	}
	return "", ""
}
