package gazetteer

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ProvinceDoc document tỉnh/thành để seed vào Meilisearch
type ProvinceDoc struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// LoadProvinceDocs đọc bảng tỉnh/thành nhúng sẵn thành documents cho Meilisearch.
// Dùng bởi cmd/seed để index Meilisearch luôn khớp bảng tĩnh.
func LoadProvinceDocs() ([]ProvinceDoc, error) {
	var table provinceTable
	if err := yaml.Unmarshal(provincesYAML, &table); err != nil {
		return nil, fmt.Errorf("load province table: %w", err)
	}

	docs := make([]ProvinceDoc, 0, len(table.Provinces))
	for i, p := range table.Provinces {
		docs = append(docs, ProvinceDoc{
			ID:      fmt.Sprintf("province_%02d", i+1),
			Name:    p.Name,
			Aliases: p.Aliases,
		})
	}
	return docs, nil
}
