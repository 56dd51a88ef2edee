package sentiment

// Average combines per-chunk scalar records into one. Scores are averaged and
// the label is recomputed from the average. A single scalar keeps its own
// label. Records without a scalar form are ignored; nil when none has one.
func Average(records []*Record) *Record {
	var (
		sum   float64
		count int
	)
	for _, r := range records {
		if !r.HasScalar() {
			continue
		}
		sum += *r.Score
		count++
	}
	if count == 0 {
		return nil
	}
	if count == 1 {
		for _, r := range records {
			if r.HasScalar() {
				return NewScalar(r.LabelOr(LabelNeutral), *r.Score)
			}
		}
	}
	avg := sum / float64(count)
	return NewScalar(LabelFor(avg), avg)
}
