package experiment

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samber/lo"
)

// Summary aggregates the results of one heuristic.
type Summary struct {
	Heuristic  string  `json:"heuristic"`
	Runs       int     `json:"runs"`
	Failures   int     `json:"failures"`
	Optimal    int     `json:"optimal"`
	TotalBins  int     `json:"totalBins"`
	TotalBest  int     `json:"totalBest"`
	MeanGapPct float64 `json:"meanGapPct"`
}

// Summarize groups results by heuristic, keeping the order heuristics first appear in.
// Failed runs count towards Runs and Failures only.
func Summarize(results []Result) []Summary {
	groups := lo.GroupBy(results, func(r Result) string { return r.Heuristic })
	order := lo.Uniq(lo.Map(results, func(r Result, _ int) string { return r.Heuristic }))

	return lo.Map(order, func(heuristic string, _ int) Summary {
		runs := groups[heuristic]
		solved := lo.Reject(runs, func(r Result, _ int) bool { return r.Failed() })

		s := Summary{
			Heuristic: heuristic,
			Runs:      len(runs),
			Failures:  len(runs) - len(solved),
			Optimal:   lo.CountBy(solved, func(r Result) bool { return r.Gap() <= 0 }),
			TotalBins: lo.SumBy(solved, func(r Result) int { return r.BinsUsed }),
			TotalBest: lo.SumBy(solved, func(r Result) int { return r.BestKnown }),
		}

		gaps := lo.FilterMap(solved, func(r Result, _ int) (float64, bool) {
			if r.BestKnown <= 0 {
				return 0, false
			}
			return 100 * float64(r.Gap()) / float64(r.BestKnown), true
		})
		if len(gaps) > 0 {
			s.MeanGapPct = lo.Sum(gaps) / float64(len(gaps))
		}
		return s
	})
}

// WriteSummary renders summaries as an aligned table.
func WriteSummary(w io.Writer, summaries []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "heuristic\truns\tfailed\toptimal\tbins\tbest\tmean gap %")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%.2f\n",
			s.Heuristic, s.Runs, s.Failures, s.Optimal, s.TotalBins, s.TotalBest, s.MeanGapPct)
	}
	return tw.Flush()
}
