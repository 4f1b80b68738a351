package experiment

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []Result {
	return []Result{
		{Instance: "u120_00", Heuristic: "first-fit", Items: 120, BinsUsed: 49, BestKnown: 48, Elapsed: 1234 * time.Millisecond},
		{Instance: "u120_01", Heuristic: "first-fit", Items: 120, BestKnown: 49, Err: "impossible to add object to box"},
		{Instance: "u120_00", Heuristic: "first-fit-descending", Items: 120, BinsUsed: 48, BestKnown: 48, Elapsed: 5 * time.Millisecond},
		{Instance: "u120_01", Heuristic: "first-fit-descending", Items: 120, BinsUsed: 50, BestKnown: 49, Elapsed: 5 * time.Millisecond},
	}
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, sampleResults()[:2]))

	assert.Equal(t, "u120_00\t49\t48\t1.23\nu120_01\t-\t49\t0.00\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()[:2]))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "instance,heuristic,items,bins,best_known,gap,elapsed_ms,error", lines[0])
	assert.Equal(t, "u120_00,first-fit,120,49,48,1,1234.000,", lines[1])
	assert.Equal(t, "u120_01,first-fit,120,,49,,0.000,impossible to add object to box", lines[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults()))

	var decoded []Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleResults(), decoded)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteDispatchesByFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "CSV", sampleResults()))
	assert.True(t, strings.HasPrefix(buf.String(), "instance,heuristic"))

	buf.Reset()
	require.NoError(t, Write(&buf, "", sampleResults()[:1]))
	assert.Equal(t, "u120_00\t49\t48\t1.23\n", buf.String())

	assert.ErrorIs(t, Write(&buf, "xml", nil), ErrUnknownFormat)
}

func TestSummarize(t *testing.T) {
	summaries := Summarize(sampleResults())
	require.Len(t, summaries, 2)

	ff := summaries[0]
	assert.Equal(t, "first-fit", ff.Heuristic)
	assert.Equal(t, 2, ff.Runs)
	assert.Equal(t, 1, ff.Failures)
	assert.Equal(t, 0, ff.Optimal)
	assert.Equal(t, 49, ff.TotalBins)
	assert.Equal(t, 48, ff.TotalBest)
	assert.InDelta(t, 100.0/48, ff.MeanGapPct, 1e-9)

	ffd := summaries[1]
	assert.Equal(t, "first-fit-descending", ffd.Heuristic)
	assert.Equal(t, 1, ffd.Optimal)
	assert.Equal(t, 98, ffd.TotalBins)
	assert.InDelta(t, (0+100.0/49)/2, ffd.MeanGapPct, 1e-9)

	assert.Empty(t, Summarize(nil))
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, Summarize(sampleResults())))

	out := buf.String()
	assert.Contains(t, out, "heuristic")
	assert.Contains(t, out, "first-fit-descending")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}
