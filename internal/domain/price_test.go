package domain

import "testing"

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price    float64
		currency string
		want     string
	}{
		{0, "KZT", "0 KZT"},
		{999, "KZT", "999 KZT"},
		{1000, "KZT", "1 000 KZT"},
		{220000, "KZT", "220 000 KZT"},
		{1234567.5, "KZT", "1 234 567.5 KZT"},
		{12.25, "", "12.25"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.price, tt.currency); got != tt.want {
			t.Errorf("FormatPrice(%v, %q) = %q, want %q", tt.price, tt.currency, got, tt.want)
		}
	}
}
