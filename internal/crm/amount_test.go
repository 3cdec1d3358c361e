package crm

import "testing"

func TestFormatAmountBuckets(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{12_500_000, "₹1.25 Cr"},
		{10_000_000, "₹1 Cr"},
		{15_000_000, "₹1.5 Cr"},
		{4_500_000, "₹45 L"},
		{100_000, "₹1 L"},
		{99_999, "₹99,999"},
		{1_234_567_0, "₹1.23 Cr"},
		{45_000, "₹45,000"},
		{999, "₹999"},
		{0, "₹0"},
		{-4_500_000, "-₹45 L"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.amount); got != tc.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestGroupRupeesIndianGrouping(t *testing.T) {
	cases := map[int64]string{
		1234567: "12,34,567",
		123456:  "1,23,456",
		12345:   "12,345",
		1234:    "1,234",
		123:     "123",
	}
	for value, want := range cases {
		if got := groupRupees(value); got != want {
			t.Errorf("groupRupees(%d) = %q, want %q", value, got, want)
		}
	}
}
