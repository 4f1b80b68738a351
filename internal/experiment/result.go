package experiment

import (
	"context"
	"time"
)

// Result records one constructor run on one instance.
type Result struct {
	Instance  string        `json:"instance"`
	Heuristic string        `json:"heuristic"`
	Items     int           `json:"items"`
	BinsUsed  int           `json:"binsUsed"`
	BestKnown int           `json:"bestKnown"`
	Elapsed   time.Duration `json:"elapsedNs"`
	Err       string        `json:"error,omitempty"`
}

// Failed reports whether the constructor aborted on this instance.
func (r Result) Failed() bool {
	return r.Err != ""
}

// Gap is the number of bins used above the best known solution.
func (r Result) Gap() int {
	return r.BinsUsed - r.BestKnown
}

// Sink receives every result as soon as it is produced.
type Sink interface {
	SaveResult(ctx context.Context, result Result) error
}
