package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func items(nearFar ...float64) []VisibleItem {
	var out []VisibleItem
	for i := 0; i+1 < len(nearFar); i += 2 {
		out = append(out, VisibleItem{Near: nearFar[i], Far: nearFar[i+1]})
	}
	return out
}

func TestSplitSpansMergesOverlappingItems(t *testing.T) {
	// Ascending-far order, as VisibleItemCollector's callers guarantee.
	it := items(100, 200, 150, 250)
	spans := splitSpans(it)
	assert.Len(t, spans, 1)
	assert.Equal(t, 100.0, spans[0].Near)
	assert.Equal(t, 250.0, spans[0].Far)
	assert.Equal(t, 2, spans[0].ItemCount)
	assert.Equal(t, 1, spans[0].BackItemIndex)
}

func TestSplitSpansInsertsGapForDisjointItems(t *testing.T) {
	it := items(100, 200, 1000, 1100)
	spans := splitSpans(it)
	if assert.Len(t, spans, 3) {
		// Walked back to front: farthest item span, then the gap, then the
		// nearest item span.
		assert.Equal(t, 1, spans[0].ItemCount)
		assert.Equal(t, 0, spans[1].ItemCount) // gap span.
		assert.Equal(t, 1, spans[2].ItemCount)
		assert.True(t, spans[1].Near <= spans[1].Far)
	}
}

func TestCoalesceSpansRespectsPreferredRatio(t *testing.T) {
	split := []DepthBufferSpan{
		{Near: 900, Far: 1000, BackItemIndex: 1, ItemCount: 1},
		{Near: 1, Far: 2, BackItemIndex: 0, ItemCount: 1},
	}
	merged := coalesceSpans(split)
	// 1/1000 is far below PreferredNearFarRatio, so these must not merge.
	assert.Len(t, merged, 2)
}

func TestCoalesceSpansMergesWithinRatio(t *testing.T) {
	split := []DepthBufferSpan{
		{Near: 999, Far: 1000, BackItemIndex: 1, ItemCount: 1},
		{Near: 998, Far: 999, BackItemIndex: 0, ItemCount: 1},
	}
	merged := coalesceSpans(split)
	if assert.Len(t, merged, 1) {
		assert.Equal(t, 998.0, merged[0].Near)
		assert.Equal(t, 1000.0, merged[0].Far)
		assert.Equal(t, 2, merged[0].ItemCount)
	}
}

func TestDepthSpanPartitionerSpansAreFarFirstAndNonInverted(t *testing.T) {
	normal := items(10, 20, 500, 600, 1e6, 1.1e6)
	spans := DepthSpanPartitioner(normal, nil, 1, 1e9)
	if !assert.NotEmpty(t, spans) {
		return
	}
	for _, s := range spans {
		assert.LessOrEqual(t, s.Near, s.Far)
	}
	for i := 1; i < len(spans); i++ {
		assert.GreaterOrEqual(t, spans[i-1].Far, spans[i].Far, "spans must be returned far-first")
	}
}

func TestDepthSpanPartitionerNoNormalItemsStillCoversSplittables(t *testing.T) {
	splittable := items(1e5, 2e5)
	spans := DepthSpanPartitioner(nil, splittable, 1, 1e9)
	assert.NotEmpty(t, spans)
	assert.LessOrEqual(t, spans[0].Near, spans[0].Far)
}

func TestSpanItemsIsContiguous(t *testing.T) {
	normal := items(10, 20, 15, 25, 500, 600)
	spans := DepthSpanPartitioner(normal, nil, 1, 1e9)
	total := 0
	for _, s := range spans {
		total += len(spanItems(normal, s))
	}
	assert.Equal(t, len(normal), total)
}
