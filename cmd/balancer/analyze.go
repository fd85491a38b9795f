package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"room_balancer/internal/app"
	"room_balancer/internal/balancer"
	"room_balancer/internal/domain"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one night and print overbookings, alerts and assignments",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, res, err := runNight(cmd)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeIndented(cmd.OutOrStdout(), res)
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	},
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Analyze one night and apply approvals for the named guests",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, res, err := runNight(cmd)
		if err != nil {
			return err
		}
		names, _ := cmd.Flags().GetStringSlice("approve")
		approvals := make(map[string]bool, len(names))
		for _, n := range names {
			approvals[n] = true
		}
		return writeIndented(cmd.OutOrStdout(), balancer.Finalize(p, res, approvals))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the room assignments of one night as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, res, err := runNight(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("out"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return app.WriteAssignmentsCSV(out, res.Assignments)
	},
}

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List arrival dates with their occupancy",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := property()
		if err != nil {
			return err
		}
		input, _ := cmd.Flags().GetString("input")
		rs, err := readReservations(input)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tARRIVALS\tOCCUPIED\tOCCUPANCY")
		for _, d := range balancer.Dates(p, rs) {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d%%\n", d.Date, d.Arrivals, d.Occupied, d.OccupancyPct)
		}
		return tw.Flush()
	},
}

func init() {
	for _, c := range []*cobra.Command{analyzeCmd, finalizeCmd, exportCmd} {
		c.Flags().String("input", "", "reservation export (JSON array or {\"reservations\": [...]})")
		c.Flags().String("date", "", "night to balance (YYYY-MM-DD)")
	}
	datesCmd.Flags().String("input", "", "reservation export (JSON array or {\"reservations\": [...]})")
	analyzeCmd.Flags().Bool("json", false, "print the full result as JSON")
	finalizeCmd.Flags().StringSlice("approve", nil, "guest names whose alerts are approved")
	exportCmd.Flags().String("out", "", "CSV file to write (default stdout)")
}

func runNight(cmd *cobra.Command) (domain.Property, domain.Result, error) {
	p, err := property()
	if err != nil {
		return domain.Property{}, domain.Result{}, err
	}
	date, err := dateFlag(cmd)
	if err != nil {
		return domain.Property{}, domain.Result{}, err
	}
	input, _ := cmd.Flags().GetString("input")
	rs, err := readReservations(input)
	if err != nil {
		return domain.Property{}, domain.Result{}, err
	}
	return p, balancer.Analyze(balancer.Input{Reservations: rs, Date: date, Property: p}), nil
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, res domain.Result) {
	s := res.Summary
	fmt.Fprintf(w, "%s: %d arrivals, %d in house, %d due out, %d occupied (%d%%)\n",
		res.Date, s.Arrivals, s.InHouse, s.DueOuts, s.Occupied, s.OccupancyPct)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nTYPE\tINV\tIN HOUSE\tDUE OUT\tARRIVALS\tAVAILABLE\tOVERBY")
	for _, r := range res.Report {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			r.RoomType, r.Inventory, r.InHouse, r.Departures, r.Arrivals, r.Available, r.Overby)
	}
	t := res.Totals
	fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
		t.RoomType, t.Inventory, t.InHouse, t.Departures, t.Arrivals, t.Available, t.Overby)
	_ = tw.Flush()

	if len(res.Alerts) == 0 {
		fmt.Fprintln(w, "\nNo alerts.")
		return
	}
	fmt.Fprintf(w, "\n%d alerts (%d walks, %d upgrades):\n", s.Alerts, s.Walks, s.Upgrades)
	for _, a := range res.Alerts {
		fmt.Fprintf(w, "  [%s] %s\n", a.Severity, a.Message)
	}
	for _, c := range res.Connecting {
		fmt.Fprintf(w, "  [connecting] %s in %s\n", c.GuestName, c.AssignedRoomType)
	}
}
