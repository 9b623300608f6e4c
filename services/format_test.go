package services

import "testing"

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "$ 0.00"},
		{"small", 5.9, "$ 5.90"},
		{"hundreds", 123.45, "$ 123.45"},
		{"thousands", 1234.5, "$ 1,234.50"},
		{"millions", 1234567.89, "$ 1,234,567.89"},
		{"rounding", 9.999, "$ 10.00"},
		{"negative", -1234.5, "-$ 1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatUSD(tt.amount)
			if got != tt.want {
				t.Errorf("FormatUSD(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole number", 10, "10"},
		{"zero", 0, "0"},
		{"decimal", 10.5, "10.50"},
		{"small decimal", 0.25, "0.25"},
		{"large whole", 1000, "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatQty(tt.input)
			if got != tt.want {
				t.Errorf("FormatQty(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
