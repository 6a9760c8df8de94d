package pricing

import "testing"

func TestNextInvoiceNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prev   string
		prefix string
		year   int
		want   string
	}{
		{name: "continues sequence", prev: "INV-2024-007", prefix: "INV", year: 2024, want: "INV-2024-008"},
		{name: "no prior number", prev: "", prefix: "INV", year: 2026, want: "INV-2026-001"},
		{name: "malformed prior restarts", prev: "INV-draft", prefix: "INV", year: 2026, want: "INV-2026-001"},
		{name: "whitespace prior restarts", prev: "   ", prefix: "INV", year: 2026, want: "INV-2026-001"},
		{name: "vendor prefix", prev: "ZAVERI-2025-041", prefix: "ZAVERI", year: 2025, want: "ZAVERI-2025-042"},
		{name: "sequence beyond padding", prev: "INV-2025-999", prefix: "INV", year: 2025, want: "INV-2025-1000"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NextInvoiceNumber(tt.prev, tt.prefix, tt.year); got != tt.want {
				t.Fatalf("NextInvoiceNumber(%q) = %q, want %q", tt.prev, got, tt.want)
			}
		})
	}
}

func TestNextInvoiceNumberIsStableWithoutPersistence(t *testing.T) {
	t.Parallel()

	first := NextInvoiceNumber("INV-2026-003", "INV", 2026)
	second := NextInvoiceNumber("INV-2026-003", "INV", 2026)
	if first != second {
		t.Fatalf("same prior number must suggest the same next number: %q vs %q", first, second)
	}
}
