package gazetteer

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/mozillazg/go-unidecode"
	"github.com/xrash/smetrics"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/intent-parser/internal/normalizer"
)

//go:embed data/provinces.yaml
var provincesYAML []byte

type provinceTable struct {
	Provinces []provinceEntry `yaml:"provinces"`
}

type provinceEntry struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

type provinceAlias struct {
	alias string
	name  string
	re    *regexp.Regexp
}

// Marker đứng trước cụm tỉnh/thành, dùng để khoanh vùng fuzzy match
// (fuzzy trên toàn câu sinh false positive kiểu "can ho" ~ "can tho").
var reProvinceMarker = regexp.MustCompile(`\b(?:tinh|thanh pho|tp|o|tai)\s+`)

// StaticGazetteer tra cứu tỉnh/thành trên bảng nhúng sẵn:
// exact alias trước, fuzzy JaroWinkler + levenshtein sau.
type StaticGazetteer struct {
	aliases []provinceAlias
	logger  *zap.Logger

	jaroThreshold float64
	maxEditDist   int
}

// NewStaticGazetteer load bảng tỉnh/thành từ embedded YAML.
func NewStaticGazetteer(logger *zap.Logger) (*StaticGazetteer, error) {
	var table provinceTable
	if err := yaml.Unmarshal(provincesYAML, &table); err != nil {
		return nil, fmt.Errorf("load province table: %w", err)
	}

	var aliases []provinceAlias
	for _, p := range table.Provinces {
		for _, a := range p.Aliases {
			aliases = append(aliases, provinceAlias{
				alias: a,
				name:  p.Name,
				re:    regexp.MustCompile(`\b` + regexp.QuoteMeta(a) + `\b`),
			})
		}
	}
	// Alias dài thử trước để "ba ria vung tau" thắng "vung tau"
	sort.SliceStable(aliases, func(i, j int) bool {
		return len(aliases[i].alias) > len(aliases[j].alias)
	})

	return &StaticGazetteer{
		aliases:       aliases,
		logger:        logger,
		jaroThreshold: 0.92,
		maxEditDist:   1,
	}, nil
}

// Lookup tìm tỉnh/thành trong text tự do. Không bao giờ trả error:
// bảng nhúng sẵn, không có I/O.
func (g *StaticGazetteer) Lookup(_ context.Context, text string) (*Match, error) {
	folded := normalizer.FoldStrict(text)
	if folded == "" {
		return nil, nil
	}

	for _, a := range g.aliases {
		if loc := a.re.FindStringIndex(folded); loc != nil {
			remaining := strings.Join(strings.Fields(folded[:loc[0]]+" "+folded[loc[1]:]), " ")
			return &Match{ProvinceName: a.name, RemainingKeyword: remaining}, nil
		}
	}

	return g.fuzzyLookup(folded), nil
}

// fuzzyLookup chỉ xét các cụm đứng sau marker vị trí ("ở", "tại", "tỉnh"...),
// so với alias key đã unidecode.
func (g *StaticGazetteer) fuzzyLookup(folded string) *Match {
	for _, loc := range reProvinceMarker.FindAllStringIndex(folded, -1) {
		rest := folded[loc[1]:]
		words := strings.Fields(rest)
		for n := min(3, len(words)); n >= 1; n-- {
			candidate := strings.Join(words[:n], " ")
			if a := g.bestFuzzyAlias(candidate); a != nil {
				remaining := strings.TrimSpace(folded[:loc[0]])
				if i := strings.Index(rest, candidate); i >= 0 {
					remaining = strings.TrimSpace(remaining + " " + strings.TrimSpace(rest[i+len(candidate):]))
				}
				g.logger.Debug("fuzzy province match",
					zap.String("candidate", candidate),
					zap.String("province", a.name))
				return &Match{ProvinceName: a.name, RemainingKeyword: remaining}
			}
		}
	}
	return nil
}

func (g *StaticGazetteer) bestFuzzyAlias(candidate string) *provinceAlias {
	key := strings.ToLower(unidecode.Unidecode(candidate))
	var best *provinceAlias
	bestScore := 0.0
	for i := range g.aliases {
		a := &g.aliases[i]
		if math.Abs(float64(len(a.alias)-len(key))) > 2 {
			continue
		}
		score := smetrics.JaroWinkler(key, a.alias, 0.7, 4)
		if score < g.jaroThreshold {
			continue
		}
		if levenshtein.ComputeDistance(key, a.alias) > g.maxEditDist {
			continue
		}
		if score > bestScore {
			best, bestScore = a, score
		}
	}
	return best
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
