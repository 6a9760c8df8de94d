package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nishantzaveri/jewelbooks-backend/pkg/enums"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func edit(t *testing.T, item LineItem, field Field, value string, rate decimal.Decimal) LineItem {
	t.Helper()
	return Apply(item, FieldEdit{Field: field, Value: value}, rate)
}

func TestApplyDerivesNetWeightInGrossMode(t *testing.T) {
	t.Parallel()

	rate := decimal.Zero
	item := NewLineItem("li-1")
	item = edit(t, item, FieldGrossWeight, "10", rate)
	item = edit(t, item, FieldDiamondWeight, "1", rate)

	if !item.NetWeight.Equal(dec("9.8")) {
		t.Fatalf("expected net weight 9.8, got %s", item.NetWeight)
	}

	item = edit(t, item, FieldGemstoneWeight, "4", rate)
	if !item.NetWeight.Equal(dec("9")) {
		t.Fatalf("expected net weight 9 after gemstone edit, got %s", item.NetWeight)
	}
}

func TestApplyClampsNetWeightAtZero(t *testing.T) {
	t.Parallel()

	item := NewLineItem("li-1")
	item = edit(t, item, FieldGrossWeight, "1", decimal.Zero)
	item = edit(t, item, FieldDiamondWeight, "12", decimal.Zero)

	if !item.NetWeight.IsZero() {
		t.Fatalf("net weight must clamp to zero, got %s", item.NetWeight)
	}
}

func TestApplyNetModeKeepsDirectEntry(t *testing.T) {
	t.Parallel()

	item := NewLineItem("li-1")
	item = edit(t, item, FieldGrossWeight, "10", decimal.Zero)
	item = edit(t, item, FieldDiamondWeight, "1", decimal.Zero)

	// Switching mode alone must not recompute; the resolved 9.8 stays.
	item = edit(t, item, FieldWeightMode, "net", decimal.Zero)
	if !item.NetWeight.Equal(dec("9.8")) {
		t.Fatalf("mode switch should retain resolved weight, got %s", item.NetWeight)
	}

	item = edit(t, item, FieldNetWeight, "7.25", decimal.Zero)
	if !item.NetWeight.Equal(dec("7.25")) {
		t.Fatalf("expected direct entry 7.25, got %s", item.NetWeight)
	}

	// Stone edits no longer overwrite the direct entry while in net mode.
	item = edit(t, item, FieldDiamondWeight, "3", decimal.Zero)
	if !item.NetWeight.Equal(dec("7.25")) {
		t.Fatalf("net mode must ignore stone displacement, got %s", item.NetWeight)
	}
}

func TestApplyGrossModeAlwaysDerivesNetWeight(t *testing.T) {
	t.Parallel()

	item := NewLineItem("li-1")
	item = edit(t, item, FieldGrossWeight, "10", decimal.Zero)
	item = edit(t, item, FieldDiamondWeight, "1", decimal.Zero)

	// A direct net entry cannot stick while the mode still derives it.
	item = edit(t, item, FieldNetWeight, "3", decimal.Zero)
	if !item.NetWeight.Equal(dec("9.8")) {
		t.Fatalf("gross mode must re-derive net weight, got %s", item.NetWeight)
	}

	// Switching back from net mode re-derives from the current inputs.
	item = edit(t, item, FieldWeightMode, "net", decimal.Zero)
	item = edit(t, item, FieldNetWeight, "3", decimal.Zero)
	item = edit(t, item, FieldWeightMode, "gross", decimal.Zero)
	if !item.NetWeight.Equal(dec("9.8")) {
		t.Fatalf("switching to gross must re-derive net weight, got %s", item.NetWeight)
	}
}

func TestApplyCoercesInvalidNumericInputToZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "empty", value: ""},
		{name: "text", value: "abc"},
		{name: "negative", value: "-4"},
		{name: "whitespace", value: "   "},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := NewLineItem("li-1")
			item = edit(t, item, FieldMakingCharges, tt.value, decimal.Zero)
			if !item.MakingCharges.IsZero() {
				t.Fatalf("expected coercion to zero for %q, got %s", tt.value, item.MakingCharges)
			}
		})
	}
}

func TestApplySubtotalSumsAllSixComponents(t *testing.T) {
	t.Parallel()

	rate := dec("6000")
	item := NewLineItem("li-1")
	item = edit(t, item, FieldGrossWeight, "10", rate)
	item = edit(t, item, FieldPurityFraction, "0.75", rate)
	item = edit(t, item, FieldDiamondWeight, "1", rate)
	item = edit(t, item, FieldDiamondPerCarat, "50000", rate)
	item = edit(t, item, FieldMakingCharges, "2000", rate)
	item = edit(t, item, FieldCertificationCost, "500", rate)
	item = edit(t, item, FieldCADDesignCharges, "300", rate)
	item = edit(t, item, FieldCammingCharges, "200", rate)
	item = edit(t, item, FieldGemstoneCost, "1000", rate)

	expectedGold := dec("44100") // 9.8 x 0.75 x 6000
	if !item.GoldCost.Equal(expectedGold) {
		t.Fatalf("expected gold cost %s, got %s", expectedGold, item.GoldCost)
	}
	if !item.DiamondCost.Equal(dec("50000")) {
		t.Fatalf("expected diamond cost 50000, got %s", item.DiamondCost)
	}

	sum := item.GoldCost.
		Add(item.MakingCharges).
		Add(item.CertificationCost).
		Add(item.CADDesignCharges).
		Add(item.CammingCharges).
		Add(item.DiamondCost).
		Add(item.GemstoneCost)
	if !item.Subtotal.Equal(sum) {
		t.Fatalf("subtotal %s does not equal component sum %s", item.Subtotal, sum)
	}
}

func TestApplyIsIdempotentForRepeatedEdits(t *testing.T) {
	t.Parallel()

	rate := dec("6000")
	item := NewLineItem("li-1")
	item = edit(t, item, FieldGrossWeight, "10", rate)
	item = edit(t, item, FieldPurityFraction, "0.916", rate)

	once := edit(t, item, FieldMakingCharges, "1500", rate)
	twice := edit(t, once, FieldMakingCharges, "1500", rate)

	if !once.Subtotal.Equal(twice.Subtotal) || !once.NetWeight.Equal(twice.NetWeight) {
		t.Fatalf("repeated edit changed outputs: %s vs %s", once.Subtotal, twice.Subtotal)
	}
}

func TestGemstoneManualCostSurvivesZeroedPerCarat(t *testing.T) {
	t.Parallel()

	item := NewLineItem("li-1")
	item = edit(t, item, FieldGemstoneCost, "7500", decimal.Zero)
	if item.GemstonePricing != enums.GemstonePricingManual {
		t.Fatalf("manual cost entry should keep manual pricing, got %s", item.GemstonePricing)
	}

	item = edit(t, item, FieldGemstoneWeight, "2", decimal.Zero)
	item = edit(t, item, FieldGemstonePerCarat, "3000", decimal.Zero)
	if item.GemstonePricing != enums.GemstonePricingDerived {
		t.Fatalf("positive per-carat price should switch to derived, got %s", item.GemstonePricing)
	}
	if !item.GemstoneCost.Equal(dec("6000")) {
		t.Fatalf("expected derived gemstone cost 6000, got %s", item.GemstoneCost)
	}

	// Zeroing the per-carat price reverts to manual and must not erase the
	// last manually entered amount.
	item = edit(t, item, FieldGemstonePerCarat, "0", decimal.Zero)
	if item.GemstonePricing != enums.GemstonePricingManual {
		t.Fatalf("zero per-carat price should revert to manual, got %s", item.GemstonePricing)
	}
	if !item.GemstoneCost.Equal(dec("6000")) {
		t.Fatalf("manual cost erased, got %s", item.GemstoneCost)
	}
}

func TestApplyClampsPurityFractionToOne(t *testing.T) {
	t.Parallel()

	item := NewLineItem("li-1")
	item = edit(t, item, FieldPurityFraction, "1.5", decimal.Zero)
	if !item.PurityFraction.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("purity fraction should clamp to 1, got %s", item.PurityFraction)
	}
}

func TestRecomputeAfterMetalRateChange(t *testing.T) {
	t.Parallel()

	item := NewLineItem("li-1")
	item = edit(t, item, FieldGrossWeight, "5", dec("6000"))
	item = edit(t, item, FieldPurityFraction, "0.75", dec("6000"))
	if !item.GoldCost.Equal(dec("22500")) {
		t.Fatalf("expected gold cost 22500, got %s", item.GoldCost)
	}

	item = Recompute(item, dec("7000"))
	if !item.GoldCost.Equal(dec("26250")) {
		t.Fatalf("expected gold cost 26250 after rate change, got %s", item.GoldCost)
	}
}

func TestCollectionTotalAndRemoval(t *testing.T) {
	t.Parallel()

	rate := decimal.Zero
	first := edit(t, NewLineItem("li-1"), FieldMakingCharges, "100", rate)
	second := edit(t, NewLineItem("li-2"), FieldMakingCharges, "250", rate)
	third := edit(t, NewLineItem("li-3"), FieldMakingCharges, "50", rate)

	items := Collection{}.Append(first).Append(second).Append(third)
	if !items.Total().Equal(dec("400")) {
		t.Fatalf("expected total 400, got %s", items.Total())
	}

	reordered := Collection{third, first, second}
	if !reordered.Total().Equal(items.Total()) {
		t.Fatalf("total must be order-independent")
	}

	items = items.RemoveAt(1)
	if len(items) != 2 {
		t.Fatalf("expected 2 items after removal, got %d", len(items))
	}
	if items[0].ID != "li-1" || items[1].ID != "li-3" {
		t.Fatalf("removal must not renumber survivors: %s, %s", items[0].ID, items[1].ID)
	}
	if !items.Total().Equal(dec("150")) {
		t.Fatalf("expected total 150 after removal, got %s", items.Total())
	}

	if got := items.RemoveAt(9); len(got) != 2 {
		t.Fatalf("out-of-range removal should be a no-op")
	}
}

func TestCollectionIndexOf(t *testing.T) {
	t.Parallel()

	items := Collection{NewLineItem("a"), NewLineItem("b")}
	if items.IndexOf("b") != 1 {
		t.Fatalf("expected index 1 for id b")
	}
	if items.IndexOf("missing") != -1 {
		t.Fatalf("expected -1 for unknown id")
	}
}
