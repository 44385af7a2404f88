package location

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/districts.yaml
var districtsYAML []byte

// districtTable bảng alias quận/huyện load từ embedded YAML
type districtTable struct {
	Districts []districtEntry `yaml:"districts"`
}

type districtEntry struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// aliasMatcher một alias đã compile, gắn với tên chuẩn có dấu
type aliasMatcher struct {
	alias string
	name  string
	re    *regexp.Regexp
}

// loadDistrictAliases build danh sách alias sắp theo độ dài giảm dần,
// để "quan 10" được thử trước "quan 1".
func loadDistrictAliases() ([]aliasMatcher, error) {
	var table districtTable
	if err := yaml.Unmarshal(districtsYAML, &table); err != nil {
		return nil, fmt.Errorf("load district table: %w", err)
	}

	var matchers []aliasMatcher
	for _, d := range table.Districts {
		for _, a := range d.Aliases {
			matchers = append(matchers, aliasMatcher{
				alias: a,
				name:  d.Name,
				re:    regexp.MustCompile(`\b` + regexp.QuoteMeta(a) + `\b`),
			})
		}
	}
	sort.SliceStable(matchers, func(i, j int) bool {
		return len(matchers[i].alias) > len(matchers[j].alias)
	})
	return matchers, nil
}
