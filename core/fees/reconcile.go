package fees

import (
	"fmt"
	"sort"
)

func formatPeriod(from, to int) string {
	return fmt.Sprintf("%d-%d", from, to)
}

// Reconcile turns an unordered transaction set for one person and one fee kind
// into display-ordered ledger rows with a running balance.
//
// Within a period the authoritative total is max(TotalDue) over the group:
// individual transactions may carry stale totals from upstream inconsistency.
// The running balance is walked in forward-chronological order, timestampless
// opening rows first. Scheduled tuition periods with no transactions at all are
// gap-filled with a single synthetic Due row; exam fees are opportunistic and
// never gap-filled. Rows come back sorted for display: period descending,
// newest transaction first.
func Reconcile(txns []Transaction, schedule Schedule) ([]LedgerRow, Meta) {
	var meta Meta

	groups := make(map[string][]Transaction)
	for _, tx := range txns {
		if tx.PersonID == "" || tx.Period == "" {
			meta.Skipped++
			continue
		}
		groups[tx.Period] = append(groups[tx.Period], tx)
	}

	// gap-fill scheduled periods that have no transactions
	synthetic := make(map[string]bool)
	for _, period := range schedule.Periods {
		if _, ok := groups[period]; ok {
			continue
		}
		groups[period] = []Transaction{{
			Period:   period,
			Kind:     KindTuition,
			TotalDue: schedule.Annual,
		}}
		synthetic[period] = true
	}

	periods := make([]string, 0, len(groups))
	for period := range groups {
		periods = append(periods, period)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(periods)))

	var rows []LedgerRow
	for _, period := range periods {
		group := groups[period]

		var total int64
		for _, tx := range group {
			if tx.TotalDue > total {
				total = tx.TotalDue
			}
		}

		// forward-chronological walk; timestampless opening rows first
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Timestamp.IsZero() != group[j].Timestamp.IsZero() {
				return group[i].Timestamp.IsZero()
			}
			return group[i].Timestamp.Before(group[j].Timestamp)
		})

		periodRows := make([]LedgerRow, 0, len(group))
		var runningPaid int64
		for _, tx := range group {
			runningPaid += tx.AmountPaid
			due := total - runningPaid
			if due < 0 {
				due = 0
			}
			status := StatusDue
			switch {
			case due == 0:
				status = StatusPaid
			case runningPaid > 0:
				status = StatusPartial
			}
			periodRows = append(periodRows, LedgerRow{
				Period:      period,
				Kind:        tx.Kind,
				TotalDue:    total,
				AmountPaid:  tx.AmountPaid,
				RunningPaid: runningPaid,
				DueBalance:  due,
				Status:      status,
				Timestamp:   tx.Timestamp,
				Synthetic:   synthetic[period],
			})
		}

		// newest transaction first for display
		for i := len(periodRows) - 1; i >= 0; i-- {
			rows = append(rows, periodRows[i])
		}
	}
	return rows, meta
}

// Outstanding sums the remaining due over display-ordered rows, taking only the
// latest row per period. Summing every row would double-count historical
// partial payments.
func Outstanding(rows []LedgerRow) int64 {
	var total int64
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if seen[row.Period] {
			continue
		}
		seen[row.Period] = true
		total += row.DueBalance
	}
	return total
}
