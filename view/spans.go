package view

// spans.go implements DepthSpanPartitioner (spec §4.3): split phase,
// coalesce phase, and splittable-item span extension. Grounded on the
// teacher's back-to-front layer iteration in gazed-vu/target.go, generalized
// to the span-merge and splittable-extension algorithm spec §4.3 and §9
// specify (the latter's ordering pitfall is preserved verbatim below).

// DepthBufferSpan is a contiguous depth range allocated its own sliced
// projection and fractional hardware depth range (spec §3).
type DepthBufferSpan struct {
	Near          float64
	Far           float64
	BackItemIndex int // index of the span's farthest item in the ascending-far normal item list.
	ItemCount     int
}

// splitSpans is the split phase of spec §4.3: visible items, already sorted
// ascending by far_distance, are walked back (largest far) to front and
// folded into disjoint spans, inserting empty spans across gaps.
func splitSpans(items []VisibleItem) []DepthBufferSpan {
	var spans []DepthBufferSpan
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if len(spans) == 0 {
			spans = append(spans, DepthBufferSpan{Near: it.Near, Far: it.Far, BackItemIndex: i, ItemCount: 1})
			continue
		}
		cur := &spans[len(spans)-1]
		switch {
		case it.Far < cur.Near:
			spans = append(spans, DepthBufferSpan{Near: it.Far, Far: cur.Near}) // empty gap span.
			spans = append(spans, DepthBufferSpan{Near: it.Near, Far: it.Far, BackItemIndex: i, ItemCount: 1})
		default:
			cur.ItemCount++
			if it.Near < cur.Near {
				cur.Near = it.Near
			}
		}
	}
	return spans
}

// coalesceSpans is the coalesce phase of spec §4.3: adjacent split spans
// whose near/far ratio stays within PreferredNearFarRatio are merged into a
// single span sharing one depth buffer.
func coalesceSpans(split []DepthBufferSpan) []DepthBufferSpan {
	var merged []DepthBufferSpan
	i := 0
	for i < len(split) {
		j := i
		for j+1 < len(split) && split[j+1].Near/split[i].Far >= PreferredNearFarRatio {
			j++
		}
		m := DepthBufferSpan{Near: split[j].Near, Far: split[i].Far, BackItemIndex: split[i].BackItemIndex}
		for k := i; k <= j; k++ {
			if m.ItemCount == 0 && split[k].ItemCount > 0 {
				// A window that opens on an empty gap span takes its back
				// item from the first split span that holds items.
				m.BackItemIndex = split[k].BackItemIndex
			}
			m.ItemCount += split[k].ItemCount
		}
		merged = append(merged, m)
		i = j + 1
	}
	return merged
}

// extendForSplittables implements spec §4.3's splittable-item span
// extension. The prepend-then-append order below is load-bearing (spec §9):
// reordering these steps leaves gaps that don't cover the projection range.
func extendForSplittables(merged []DepthBufferSpan, splittable []VisibleItem, projNear, projFar float64) []DepthBufferSpan {
	if len(splittable) == 0 {
		return merged
	}

	if len(merged) == 0 {
		back := projFar / MaxFarNearRatio
		if back < projNear {
			back = projNear
		}
		return []DepthBufferSpan{{Near: back, Far: projFar}}
	}

	front := merged[0]
	splitFrontFar := splittable[0].Far
	limit := splitFrontFar
	if projFar < limit {
		limit = projFar
	}
	if limit > front.Far {
		merged = append([]DepthBufferSpan{{Near: front.Far, Far: limit}}, merged...)
	}

	for merged[len(merged)-1].Near > projNear {
		back := merged[len(merged)-1]
		nextNear := back.Near / MaxFarNearRatio
		if nextNear < projNear {
			nextNear = projNear
		}
		if nextNear >= back.Near {
			break
		}
		merged = append(merged, DepthBufferSpan{Near: nextNear, Far: back.Near})
	}

	head := merged[0]
	merged = append([]DepthBufferSpan{{Near: head.Far, Far: head.Far * MaxFarNearRatio}}, merged...)

	return merged
}

// DepthSpanPartitioner runs the full split/coalesce/extend pipeline of spec
// §4.3 over the normal and splittable item lists (both sorted ascending by
// far_distance).
func DepthSpanPartitioner(normal, splittable []VisibleItem, projNear, projFar float64) []DepthBufferSpan {
	merged := coalesceSpans(splitSpans(normal))
	return extendForSplittables(merged, splittable, projNear, projFar)
}
