package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nishantzaveri/jewelbooks-backend/pkg/enums"
)

// caratsPerGram encodes the "5 carats of stone displace roughly 1 gram of
// metal" approximation used when deriving net weight from gross weight. It is
// a fixed business constant, not configurable per item.
var caratsPerGram = decimal.NewFromInt(5)

// LineItem is one priced article within an estimate: a jewelry piece, a loose
// diamond, or a gemstone. Descriptive fields are opaque to the engine; the
// derived cost block is recomputed by Apply after every field edit and is
// never hand-edited.
type LineItem struct {
	ID             string
	Name           string
	Description    string
	ImageRef       string
	CertificateRef string

	GrossWeight    decimal.Decimal
	NetWeight      decimal.Decimal
	PurityFraction decimal.Decimal
	WeightMode     enums.WeightMode

	DiamondWeight        decimal.Decimal
	DiamondPerCarat      decimal.Decimal
	DiamondShape         string
	DiamondColor         string
	DiamondClarity       string
	DiamondCut           string
	DiamondFluorescence  string
	DiamondMeasurement   string
	DiamondCertification string

	GemstoneWeight    decimal.Decimal
	GemstonePerCarat  decimal.Decimal
	GemstonePricing   enums.GemstonePricing
	GemstoneType      string
	GemstoneColor     string
	GemstoneClarity   string
	GemstoneOrigin    string
	GemstoneTreatment string
	GemstoneShape     string

	MakingCharges     decimal.Decimal
	CertificationCost decimal.Decimal
	CADDesignCharges  decimal.Decimal
	CammingCharges    decimal.Decimal

	GoldCost     decimal.Decimal
	DiamondCost  decimal.Decimal
	GemstoneCost decimal.Decimal
	Subtotal     decimal.Decimal
}

// NewLineItem returns a blank item: every numeric field zeroed, gross weight
// mode, gemstone cost entered manually until a per-carat price shows up.
func NewLineItem(id string) LineItem {
	return LineItem{
		ID:              id,
		WeightMode:      enums.WeightModeGross,
		GemstonePricing: enums.GemstonePricingManual,
	}
}

// Field names an editable line-item attribute. The reducer accepts one field
// per edit, mirroring how the estimate form writes a single input at a time.
type Field string

const (
	FieldName           Field = "name"
	FieldDescription    Field = "description"
	FieldImageRef       Field = "image_ref"
	FieldCertificateRef Field = "certificate_ref"

	FieldGrossWeight    Field = "gross_weight"
	FieldNetWeight      Field = "net_weight"
	FieldPurityFraction Field = "purity_fraction"
	FieldWeightMode     Field = "weight_mode"

	FieldDiamondWeight        Field = "diamond_weight"
	FieldDiamondPerCarat      Field = "diamond_per_carat"
	FieldDiamondShape         Field = "diamond_shape"
	FieldDiamondColor         Field = "diamond_color"
	FieldDiamondClarity       Field = "diamond_clarity"
	FieldDiamondCut           Field = "diamond_cut"
	FieldDiamondFluorescence  Field = "diamond_fluorescence"
	FieldDiamondMeasurement   Field = "diamond_measurement"
	FieldDiamondCertification Field = "diamond_certification"

	FieldGemstoneWeight    Field = "gemstone_weight"
	FieldGemstonePerCarat  Field = "gemstone_per_carat"
	FieldGemstoneCost      Field = "gemstone_cost"
	FieldGemstoneType      Field = "gemstone_type"
	FieldGemstoneColor     Field = "gemstone_color"
	FieldGemstoneClarity   Field = "gemstone_clarity"
	FieldGemstoneOrigin    Field = "gemstone_origin"
	FieldGemstoneTreatment Field = "gemstone_treatment"
	FieldGemstoneShape     Field = "gemstone_shape"

	FieldMakingCharges     Field = "making_charges"
	FieldCertificationCost Field = "certification_cost"
	FieldCADDesignCharges  Field = "cad_design_charges"
	FieldCammingCharges    Field = "camming_charges"
)

var validFields = map[Field]bool{
	FieldName: true, FieldDescription: true, FieldImageRef: true, FieldCertificateRef: true,
	FieldGrossWeight: true, FieldNetWeight: true, FieldPurityFraction: true, FieldWeightMode: true,
	FieldDiamondWeight: true, FieldDiamondPerCarat: true, FieldDiamondShape: true,
	FieldDiamondColor: true, FieldDiamondClarity: true, FieldDiamondCut: true,
	FieldDiamondFluorescence: true, FieldDiamondMeasurement: true, FieldDiamondCertification: true,
	FieldGemstoneWeight: true, FieldGemstonePerCarat: true, FieldGemstoneCost: true,
	FieldGemstoneType: true, FieldGemstoneColor: true, FieldGemstoneClarity: true,
	FieldGemstoneOrigin: true, FieldGemstoneTreatment: true, FieldGemstoneShape: true,
	FieldMakingCharges: true, FieldCertificationCost: true, FieldCADDesignCharges: true,
	FieldCammingCharges: true,
}

// IsValid reports whether the field name is editable.
func (f Field) IsValid() bool {
	return validFields[f]
}

// FieldEdit carries one raw form write: the target field and the text the
// user typed. Numeric coercion happens inside Apply.
type FieldEdit struct {
	Field Field
	Value string
}

// ParseAmount coerces raw form input into a non-negative decimal. Empty or
// non-numeric text resolves to zero so a partially filled form never blocks
// recomputation; negative input clamps to zero.
func ParseAmount(raw string) decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || value.IsNegative() {
		return decimal.Zero
	}
	return value
}

// Apply writes one field to the item and re-runs weight resolution and cost
// aggregation for that item alone. It is a pure reducer: the input item is
// untouched, and applying the same edit twice yields the same result.
// metalRate is the externally supplied 24k-equivalent rate per gram.
func Apply(item LineItem, edit FieldEdit, metalRate decimal.Decimal) LineItem {
	next := item

	switch edit.Field {
	case FieldName:
		next.Name = edit.Value
	case FieldDescription:
		next.Description = edit.Value
	case FieldImageRef:
		next.ImageRef = edit.Value
	case FieldCertificateRef:
		next.CertificateRef = edit.Value

	case FieldGrossWeight:
		next.GrossWeight = ParseAmount(edit.Value)
	case FieldNetWeight:
		next.NetWeight = ParseAmount(edit.Value)
	case FieldPurityFraction:
		next.PurityFraction = clampFraction(ParseAmount(edit.Value))
	case FieldWeightMode:
		// Switching to net keeps the previously resolved net weight as the
		// starting point for direct editing. Switching to gross re-derives
		// immediately, like every other edit in gross mode.
		if mode, err := enums.ParseWeightMode(edit.Value); err == nil {
			next.WeightMode = mode
		}

	case FieldDiamondWeight:
		next.DiamondWeight = ParseAmount(edit.Value)
	case FieldDiamondPerCarat:
		next.DiamondPerCarat = ParseAmount(edit.Value)
	case FieldDiamondShape:
		next.DiamondShape = edit.Value
	case FieldDiamondColor:
		next.DiamondColor = edit.Value
	case FieldDiamondClarity:
		next.DiamondClarity = edit.Value
	case FieldDiamondCut:
		next.DiamondCut = edit.Value
	case FieldDiamondFluorescence:
		next.DiamondFluorescence = edit.Value
	case FieldDiamondMeasurement:
		next.DiamondMeasurement = edit.Value
	case FieldDiamondCertification:
		next.DiamondCertification = edit.Value

	case FieldGemstoneWeight:
		next.GemstoneWeight = ParseAmount(edit.Value)
	case FieldGemstonePerCarat:
		// A positive per-carat price switches the gemstone to derived
		// pricing; zeroing it reverts to manual and keeps the last manual
		// cost intact.
		next.GemstonePerCarat = ParseAmount(edit.Value)
		if next.GemstonePerCarat.IsPositive() {
			next.GemstonePricing = enums.GemstonePricingDerived
		} else {
			next.GemstonePricing = enums.GemstonePricingManual
		}
	case FieldGemstoneCost:
		next.GemstoneCost = ParseAmount(edit.Value)
		next.GemstonePricing = enums.GemstonePricingManual
	case FieldGemstoneType:
		next.GemstoneType = edit.Value
	case FieldGemstoneColor:
		next.GemstoneColor = edit.Value
	case FieldGemstoneClarity:
		next.GemstoneClarity = edit.Value
	case FieldGemstoneOrigin:
		next.GemstoneOrigin = edit.Value
	case FieldGemstoneTreatment:
		next.GemstoneTreatment = edit.Value
	case FieldGemstoneShape:
		next.GemstoneShape = edit.Value

	case FieldMakingCharges:
		next.MakingCharges = ParseAmount(edit.Value)
	case FieldCertificationCost:
		next.CertificationCost = ParseAmount(edit.Value)
	case FieldCADDesignCharges:
		next.CADDesignCharges = ParseAmount(edit.Value)
	case FieldCammingCharges:
		next.CammingCharges = ParseAmount(edit.Value)
	}

	// In gross mode net weight is always derived, so every edit re-resolves
	// it; a direct net entry only sticks in net mode.
	if next.WeightMode == enums.WeightModeGross {
		next.NetWeight = resolveNetWeight(next)
	}
	return recomputeCosts(next, metalRate)
}

// Recompute re-runs weight resolution and cost aggregation against the item's
// current inputs without editing any field, e.g. after the metal rate changes.
func Recompute(item LineItem, metalRate decimal.Decimal) LineItem {
	next := item
	if next.WeightMode == enums.WeightModeGross {
		next.NetWeight = resolveNetWeight(next)
	}
	return recomputeCosts(next, metalRate)
}

// resolveNetWeight derives net metal weight from gross weight minus stone
// displacement in gross mode, flooring at zero. In net mode the last directly
// entered value wins.
func resolveNetWeight(item LineItem) decimal.Decimal {
	if item.WeightMode != enums.WeightModeGross {
		return item.NetWeight
	}
	stoneCarats := item.DiamondWeight.Add(item.GemstoneWeight)
	net := item.GrossWeight.Sub(stoneCarats.Div(caratsPerGram))
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// recomputeCosts rebuilds the derived cost block:
//
//	gold     = net weight x purity fraction x metal rate (24k/gram)
//	diamond  = carat weight x per-carat price
//	gemstone = carat weight x per-carat price when derived, else the manual amount
//	subtotal = gold + making + certification + cad + camming + diamond + gemstone
//
// Monetary results round to 2 decimal places at the point of storage.
func recomputeCosts(item LineItem, metalRate decimal.Decimal) LineItem {
	if metalRate.IsNegative() {
		metalRate = decimal.Zero
	}

	item.GoldCost = item.NetWeight.Mul(item.PurityFraction).Mul(metalRate).Round(2)
	item.DiamondCost = item.DiamondWeight.Mul(item.DiamondPerCarat).Round(2)
	if item.GemstonePricing == enums.GemstonePricingDerived {
		item.GemstoneCost = item.GemstoneWeight.Mul(item.GemstonePerCarat).Round(2)
	}

	item.Subtotal = item.GoldCost.
		Add(item.MakingCharges).
		Add(item.CertificationCost).
		Add(item.CADDesignCharges).
		Add(item.CammingCharges).
		Add(item.DiamondCost).
		Add(item.GemstoneCost).
		Round(2)
	return item
}

func clampFraction(value decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if value.GreaterThan(one) {
		return one
	}
	return value
}
