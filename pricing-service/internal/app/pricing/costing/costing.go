package costing

// Unit is the measurement unit of a product type or instance.
type Unit string

const (
	UnitGram  Unit = "gram"
	UnitPiece Unit = "piece"
	UnitLiter Unit = "liter"
	UnitMeter Unit = "meter"
)

// Prices are denominated per thousand units (per kilo when the unit is grams).
// The divisor applies to every instance price regardless of unit.
const perThousand = 1000

// InstancePricing holds the derived fields of a product instance.
// These are pure functions of (waste ratio, total weight, unit price) and are
// recomputed on every save.
type InstancePricing struct {
	WasteWeight float64
	NetWeight   float64
	TotalPrice  float64
}

// WasteRatio returns waste/baseWeight, or 0 when baseWeight is not positive.
// A zero base weight means "no waste", never a division error.
func WasteRatio(baseWeight, waste float64) float64 {
	if baseWeight > 0 {
		return waste / baseWeight
	}
	return 0
}

// ComputeInstancePricing derives waste weight, net weight and total price for a
// product instance. The waste share is charged on top of the base price: the
// buyer pays for the waste the instance generates. Zero or negative inputs are
// accepted and flow through the arithmetic unchanged.
func ComputeInstancePricing(wasteRatio, totalWeight, pricePerUnit float64) InstancePricing {
	wasteWeight := totalWeight * wasteRatio
	netWeight := totalWeight - wasteWeight

	basePrice := pricePerUnit * totalWeight / perThousand
	wasteCost := pricePerUnit * wasteWeight / perThousand

	return InstancePricing{
		WasteWeight: wasteWeight,
		NetWeight:   netWeight,
		TotalPrice:  basePrice + wasteCost,
	}
}

// CostedItem is the slice of a recipe item the aggregator needs: the referenced
// instance's unit and unit price, and the quantity the recipe consumes.
type CostedItem struct {
	Unit         Unit
	PricePerUnit float64
	Quantity     float64
}

// ItemCost prices one recipe item. Weight-based ingredients prorate by the
// per-thousand denomination; count, volume and length units multiply directly.
func ItemCost(unit Unit, pricePerUnit, quantity float64) float64 {
	if unit == UnitGram {
		return pricePerUnit * quantity / perThousand
	}
	return pricePerUnit * quantity
}

// TotalCost sums the item costs of a recipe. An empty recipe costs 0.
func TotalCost(items []CostedItem) float64 {
	var total float64
	for _, item := range items {
		total += ItemCost(item.Unit, item.PricePerUnit, item.Quantity)
	}
	return total
}

// Profit returns sellingPrice-totalCost. A recipe without a selling price is a
// valid priced-but-not-for-sale state and yields 0.
func Profit(sellingPrice *float64, totalCost float64) float64 {
	if sellingPrice == nil {
		return 0
	}
	return *sellingPrice - totalCost
}

// ProfitPercentage returns the profit as a percentage of total cost.
// Returns 0 when no selling price is set or the total cost is 0.
func ProfitPercentage(sellingPrice *float64, totalCost float64) float64 {
	if sellingPrice == nil || totalCost == 0 {
		return 0
	}
	return (*sellingPrice - totalCost) / totalCost * 100
}
