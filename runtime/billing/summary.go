package billing

import (
	"sort"

	"github.com/viant/fluxcost/policy"
)

// Summary is the (pid, cost, penalty) triple reported for one process.
type Summary struct {
	PID     PID   `json:"pid" yaml:"pid"`
	Cost    int64 `json:"cost" yaml:"cost"`
	Penalty int64 `json:"penalty" yaml:"penalty"`
}

// Totals aggregates a report.
type Totals struct {
	Processes int   `json:"processes" yaml:"processes"`
	Cost      int64 `json:"cost" yaml:"cost"`
	Penalty   int64 `json:"penalty" yaml:"penalty"`
}

// Total sums cost and penalty across summaries.
func Total(summaries []Summary) Totals {
	ret := Totals{Processes: len(summaries)}
	for _, s := range summaries {
		ret.Cost = policy.AddCost(ret.Cost, s.Cost)
		ret.Penalty = policy.AddCost(ret.Penalty, s.Penalty)
	}
	return ret
}

// SortByPID orders summaries by PID in place and returns them.
func SortByPID(summaries []Summary) []Summary {
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].PID < summaries[j].PID })
	return summaries
}
