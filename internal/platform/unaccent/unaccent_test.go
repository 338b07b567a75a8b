package unaccent

import "testing"

func TestStrip(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Alice", "Alice"},
		{"Nguyễn Văn Hùng", "Nguyen Van Hung"},
		{"Trần Thị Ánh", "Tran Thi Anh"},
		{"café", "cafe"},
		// đ has no combining mark decomposition and stays as-is
		{"Đặng Đình Đức", "Đang Đinh Đuc"},
	}
	for _, tt := range tests {
		if got := Strip(tt.in); got != tt.want {
			t.Errorf("Strip(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
