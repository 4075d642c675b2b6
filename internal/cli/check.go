package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/terraincognita07/milla/internal/availability"
	"github.com/terraincognita07/milla/internal/config"
	"github.com/terraincognita07/milla/internal/pricing"
)

var ErrCheckUsage = errors.New("usage: milla check <checkin DD.MM.YYYY> <checkout DD.MM.YYYY> [guests]")

// RunCheckCommand validates a stay against the configured calendar and
// prints the verdict plus the cost breakdown. A rejected stay is returned
// as the validator's error.
func RunCheckCommand(cfg *config.Config, args []string, out io.Writer, options ...availability.Option) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrCheckUsage
	}

	location, err := cfg.Location()
	if err != nil {
		return err
	}
	calendar, err := cfg.NewCalendar(location, options...)
	if err != nil {
		return fmt.Errorf("build calendar: %w", err)
	}

	today := calendar.Today()
	selection, nights, err := calendar.ValidateText(args[0], args[1], today)
	if err != nil {
		fmt.Fprintf(out, "rejected: %s (%v)\n", availability.ReasonOf(err), err)
		return err
	}
	fmt.Fprintf(out, "ok: %s - %s, %d nights (today %s, minimum %d)\n",
		availability.FormatDisplay(selection.Start),
		availability.FormatDisplay(selection.End),
		nights,
		availability.FormatDisplay(today),
		calendar.MinNights(),
	)

	if len(args) < 3 {
		return nil
	}
	breakdown, ok := pricing.Quote(selection, pricing.ParsePartySize(args[2]))
	if !ok || !breakdown.Priced() {
		fmt.Fprintf(out, "no price for %q guests\n", args[2])
		return nil
	}

	table := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(table, "accommodation (%d x %s)\t%s\t\n", breakdown.Nights, pricing.FormatAmount(breakdown.NightlyRate), pricing.FormatAmount(breakdown.Accommodation))
	fmt.Fprintf(table, "linen (%d guests)\t%s\t\n", breakdown.PartySize, pricing.FormatAmount(breakdown.LinenFee))
	fmt.Fprintf(table, "cleaning\t%s\t\n", pricing.FormatAmount(breakdown.CleaningFee))
	fmt.Fprintf(table, "total\t%s\t\n", pricing.FormatAmount(breakdown.Total))
	return table.Flush()
}
