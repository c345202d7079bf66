package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Simplici0/printcost/internal/duration"
	"github.com/Simplici0/printcost/internal/format"
	"github.com/Simplici0/printcost/internal/numparse"
	"github.com/Simplici0/printcost/internal/pricing"
	"github.com/Simplici0/printcost/internal/sheet"
	"github.com/Simplici0/printcost/internal/store"
)

// EstimateOptions holds the raw field values of a one-off estimate. Values
// are kept as text and coerced the same way sheet fields are.
type EstimateOptions struct {
	Price       string
	Lifetime    string
	Time        string
	Power       string
	Consumable  string
	Electricity string
	Handling    string
	Implicit    string
	Currency    string
}

func DefaultEstimateOptions() *EstimateOptions {
	printer := sheet.DefaultPrinter(0)
	globals := sheet.DefaultGlobals()
	return &EstimateOptions{
		Price:       printer.P,
		Lifetime:    printer.L,
		Time:        printer.T,
		Power:       printer.W,
		Consumable:  printer.M,
		Electricity: globals[store.GlobalElectricityPrice],
		Handling:    globals[store.GlobalHandlingCost],
		Implicit:    globals[store.GlobalImplicitCost],
		Currency:    format.DefaultSymbol,
	}
}

func NewCmdEstimate() *cobra.Command {
	o := DefaultEstimateOptions()
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the cost of one print without touching saved state",
		Example: `  costcalc estimate --time 2h45m
  costcalc estimate --price 18000 --lifetime 5000 --time "1d 3h" --power 120`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&o.Price, "price", o.Price, "purchase price of the printer")
	cmd.Flags().StringVar(&o.Lifetime, "lifetime", o.Lifetime, "expected printer lifetime in hours")
	cmd.Flags().StringVar(&o.Time, "time", o.Time, `print duration, e.g. "1d2h30m" or "2.5"`)
	cmd.Flags().StringVar(&o.Power, "power", o.Power, "average power draw in watts")
	cmd.Flags().StringVar(&o.Consumable, "consumable", o.Consumable, "consumable cost")
	cmd.Flags().StringVar(&o.Electricity, "electricity", o.Electricity, "electricity price per kWh")
	cmd.Flags().StringVar(&o.Handling, "handling", o.Handling, "handling cost")
	cmd.Flags().StringVar(&o.Implicit, "implicit", o.Implicit, "implicit overhead percent")
	cmd.Flags().StringVar(&o.Currency, "currency", o.Currency, "currency symbol")
	return cmd
}

func (o *EstimateOptions) Run(w io.Writer) error {
	unit := pricing.UnitInput{
		PurchasePrice:         numparse.Float(o.Price),
		ExpectedLifetimeHours: numparse.Float(o.Lifetime),
		UsageHours:            duration.ParseHours(o.Time),
		AveragePowerWatts:     numparse.Float(o.Power),
		ConsumableCost:        numparse.Float(o.Consumable),
	}
	global := pricing.GlobalInput{
		ElectricityPricePerKWh:  numparse.Float(o.Electricity),
		HandlingCost:            numparse.Float(o.Handling),
		ImplicitOverheadPercent: numparse.Float(o.Implicit),
	}

	result := pricing.Calculate(unit, global)
	currency := format.NewCurrency(o.Currency)

	fmt.Fprintf(w, "Print time:   %s h (%s)\n", strconv.FormatFloat(unit.UsageHours, 'f', -1, 64), duration.Format(unit.UsageHours))
	if result.Defined {
		b := result.Breakdown
		fmt.Fprintf(w, "Depreciation: %s\n", currency.Amount(b.MachineDepreciation))
		fmt.Fprintf(w, "Electricity:  %s\n", currency.Amount(b.ElectricityCost))
		fmt.Fprintf(w, "Consumables:  %s\n", currency.Amount(b.ConsumableCost))
		fmt.Fprintf(w, "Handling:     %s\n", currency.Amount(b.HandlingCost))
		fmt.Fprintf(w, "Overhead:     %s\n", currency.Amount(b.Overhead))
	}
	fmt.Fprintf(w, "Total:        %s\n", currency.Result(result))
	return nil
}
