package pricing

// UnitInput represents the per-printer inputs of a single usage session.
type UnitInput struct {
	PurchasePrice         float64
	ExpectedLifetimeHours float64
	UsageHours            float64
	AveragePowerWatts     float64
	ConsumableCost        float64
}

// GlobalInput represents global pricing parameters shared across all printers.
type GlobalInput struct {
	ElectricityPricePerKWh  float64
	HandlingCost            float64
	ImplicitOverheadPercent float64
}

// Breakdown contains the line items that make up the total.
type Breakdown struct {
	MachineDepreciation float64
	ElectricityCost     float64
	ConsumableCost      float64
	HandlingCost        float64
	BaseCost            float64
	Overhead            float64
}

// Totals contains roll-up values from the pricing calculation.
type Totals struct {
	Total float64
}

// Result groups the full pricing output. Defined is false when the expected
// lifetime is zero; Breakdown and Totals are then left empty.
type Result struct {
	Breakdown Breakdown
	Totals    Totals
	Defined   bool
}

// Calculate computes the amortized cost of one usage session.
func Calculate(unit UnitInput, global GlobalInput) Result {
	if unit.ExpectedLifetimeHours == 0 {
		return Result{}
	}

	machineDepreciation := (unit.PurchasePrice / unit.ExpectedLifetimeHours) * unit.UsageHours
	electricityCost := (unit.AveragePowerWatts / 1000.0) * unit.UsageHours * global.ElectricityPricePerKWh

	baseCost := machineDepreciation + electricityCost + unit.ConsumableCost + global.HandlingCost
	total := baseCost * (1.0 + global.ImplicitOverheadPercent/100.0)

	return Result{
		Breakdown: Breakdown{
			MachineDepreciation: machineDepreciation,
			ElectricityCost:     electricityCost,
			ConsumableCost:      unit.ConsumableCost,
			HandlingCost:        global.HandlingCost,
			BaseCost:            baseCost,
			Overhead:            total - baseCost,
		},
		Totals:  Totals{Total: total},
		Defined: true,
	}
}

// EstimateCost is the flat form of Calculate. ok is false when
// expectedLifetimeHours is zero and the cost is undefined.
func EstimateCost(
	purchasePrice, expectedLifetimeHours, usageHours, averagePowerWatts, consumableCost,
	electricityPricePerKWh, handlingCost, implicitOverheadPercent float64,
) (total float64, ok bool) {
	result := Calculate(
		UnitInput{
			PurchasePrice:         purchasePrice,
			ExpectedLifetimeHours: expectedLifetimeHours,
			UsageHours:            usageHours,
			AveragePowerWatts:     averagePowerWatts,
			ConsumableCost:        consumableCost,
		},
		GlobalInput{
			ElectricityPricePerKWh:  electricityPricePerKWh,
			HandlingCost:            handlingCost,
			ImplicitOverheadPercent: implicitOverheadPercent,
		},
	)
	return result.Totals.Total, result.Defined
}
