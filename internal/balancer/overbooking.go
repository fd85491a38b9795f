package balancer

import (
	"sort"

	"room_balancer/internal/domain"
)

// available is the room count left for arrivals with no substitutions.
func available(c *Catalog, occ domain.OccupancySnapshot, code string) int {
	return c.Inventory(code) - (occ.InHouse[code] - occ.DueOut[code])
}

// Overbookings reports every demanded room type whose arrivals exceed what is
// left after stay-overs. It ignores upgrades: the question answered is whether
// the type would be oversold as booked. Types are ordered by their first arrival.
func Overbookings(c *Catalog, occ domain.OccupancySnapshot, demand domain.DemandSnapshot) []domain.Overbooking {
	var out []domain.Overbooking
	for _, code := range demandOrder(demand) {
		arrivals := demand.ByType[code]
		if arrivals == 0 {
			continue
		}
		avail := available(c, occ, code)
		overby := arrivals - avail
		if overby <= 0 {
			continue
		}
		out = append(out, domain.Overbooking{
			RoomType:  code,
			Arrivals:  arrivals,
			InHouse:   occ.InHouse[code],
			DueOuts:   occ.DueOut[code],
			Available: avail,
			Overby:    overby,
		})
	}
	return out
}

// Report builds the per-room-type availability table and its totals row.
// Rows cover every configured type plus any unknown demanded type, sorted by
// arrivals descending and then table order.
func Report(c *Catalog, occ domain.OccupancySnapshot, demand domain.DemandSnapshot) ([]domain.ReportRow, domain.ReportRow) {
	codes := append([]string{}, c.Codes()...)
	var unknown []string
	for code := range demand.ByType {
		if !c.Known(code) {
			unknown = append(unknown, code)
		}
	}
	sort.Strings(unknown)
	codes = append(codes, unknown...)

	rows := make([]domain.ReportRow, 0, len(codes))
	for _, code := range codes {
		sold := occ.InHouse[code] - occ.DueOut[code]
		avail := c.Inventory(code) - sold
		arrivals := demand.ByType[code]
		overby := max(0, arrivals-avail)
		rows = append(rows, domain.ReportRow{
			RoomType:   code,
			Available:  avail,
			Arrivals:   arrivals,
			Sold:       sold,
			Inventory:  c.Inventory(code),
			Departures: occ.DueOut[code],
			InHouse:    occ.InHouse[code],
			Overby:     overby,
			Overbooked: overby > 0,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Arrivals > rows[j].Arrivals })

	totals := domain.ReportRow{RoomType: "TOTALS"}
	for _, r := range rows {
		totals.Available += r.Available
		totals.Arrivals += r.Arrivals
		totals.Sold += r.Sold
		totals.OutOfOrder += r.OutOfOrder
		totals.Inventory += r.Inventory
		totals.Departures += r.Departures
		totals.InHouse += r.InHouse
		totals.Overby += r.Overby
	}
	totals.Overbooked = totals.Overby > 0
	return rows, totals
}

func demandOrder(demand domain.DemandSnapshot) []string {
	seen := make(map[string]bool, len(demand.ByType))
	var out []string
	for _, r := range demand.Arrivals {
		if !seen[r.RoomType] {
			seen[r.RoomType] = true
			out = append(out, r.RoomType)
		}
	}
	return out
}
