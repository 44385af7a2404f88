package location

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/intent-parser/internal/gazetteer"
)

// Detector nhận diện tỉnh/thành và quận/huyện trong truy vấn.
// Tỉnh/thành ủy quyền cho dịch vụ gazetteer, quận/huyện khớp bảng alias tĩnh.
type Detector struct {
	provinces gazetteer.ProvinceLookup
	aliases   []aliasMatcher
	logger    *zap.Logger
}

// NewDetector load bảng alias quận/huyện và giữ tham chiếu tới dịch vụ tỉnh/thành.
func NewDetector(provinces gazetteer.ProvinceLookup, logger *zap.Logger) (*Detector, error) {
	aliases, err := loadDistrictAliases()
	if err != nil {
		return nil, err
	}
	return &Detector{provinces: provinces, aliases: aliases, logger: logger}, nil
}

// Detect trả về tên tỉnh/thành và quận/huyện chuẩn có dấu, nil nếu không thấy.
// Lỗi của dịch vụ tỉnh/thành được nuốt: location không bao giờ làm hỏng cả request.
func (d *Detector) Detect(ctx context.Context, raw, folded string) (province, district *string) {
	if match, err := d.provinces.Lookup(ctx, raw); err != nil {
		d.logger.Warn("tra cứu tỉnh/thành lỗi, bỏ qua", zap.Error(err))
	} else if match != nil {
		name := stripProvinceQualifier(match.ProvinceName)
		if name != "" {
			province = &name
		}
	}

	district = d.matchDistrict(folded)
	return province, district
}

// matchDistrict duyệt alias theo độ dài giảm dần, alias dài nhất thắng.
func (d *Detector) matchDistrict(folded string) *string {
	for _, m := range d.aliases {
		if m.re.MatchString(folded) {
			name := m.name
			return &name
		}
	}
	return nil
}

// stripProvinceQualifier bỏ định danh "Tỉnh "/"Thành phố " ở đầu tên chuẩn.
func stripProvinceQualifier(name string) string {
	for _, prefix := range []string{"Thành phố ", "Tỉnh "} {
		if strings.HasPrefix(name, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(name, prefix))
		}
	}
	return name
}
