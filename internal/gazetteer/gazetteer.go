// Package gazetteer cung cấp dịch vụ tra cứu tỉnh/thành từ text tự do.
package gazetteer

import "context"

// Match kết quả tra cứu tỉnh/thành
type Match struct {
	// ProvinceName tên chuẩn có dấu, còn nguyên định danh "Tỉnh"/"Thành phố"
	ProvinceName string
	// RemainingKeyword phần còn lại sau khi bỏ cụm tỉnh/thành, tính trên
	// text đã fold (chữ thường, không dấu), không phải text gốc
	RemainingKeyword string
}

// ProvinceLookup hợp đồng tra cứu tỉnh/thành. Trả về nil Match khi không
// nhận ra tỉnh/thành nào trong text.
type ProvinceLookup interface {
	Lookup(ctx context.Context, text string) (*Match, error)
}
