package sentiment

import (
	"encoding/json"
	"testing"
)

func TestParseRecord(t *testing.T) {
	t.Run("null and empty", func(t *testing.T) {
		for _, raw := range []string{"", "null", "  ", "{}"} {
			rec, err := ParseRecord([]byte(raw))
			if err != nil {
				t.Fatalf("%q: unexpected error %v", raw, err)
			}
			if rec != nil {
				t.Fatalf("%q: expected nil record, got %+v", raw, rec)
			}
		}
	})

	t.Run("scalar", func(t *testing.T) {
		rec, err := ParseRecord([]byte(`{"sentiment":"Positive","score":0.6}`))
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if !rec.HasScalar() || rec.HasTriple() {
			t.Fatalf("expected scalar record, got %+v", rec)
		}
		if *rec.Score != 0.6 || rec.LabelOr("") != "positive" {
			t.Fatalf("unexpected values %+v", rec)
		}
	})

	t.Run("numeric strings", func(t *testing.T) {
		rec, err := ParseRecord([]byte(`{"sentiment":"negative","score":"-0.5"}`))
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if rec.Score == nil || *rec.Score != -0.5 {
			t.Fatalf("expected score -0.5, got %+v", rec.Score)
		}
	})

	t.Run("triple", func(t *testing.T) {
		rec, err := ParseRecord([]byte(`{"positive":60,"neutral":30}`))
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		assertValues(t, Synthesize(rec), []float64{60, 30, 0})
	})

	t.Run("neutral with scalar stays scalar", func(t *testing.T) {
		rec, err := ParseRecord([]byte(`{"neutral":50,"sentiment":"positive","score":1}`))
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if rec.HasTriple() {
			t.Fatalf("expected scalar selection, got %+v", rec)
		}
		assertValues(t, Synthesize(rec), []float64{100, 20, 0})
	})

	t.Run("garbage score ignored", func(t *testing.T) {
		rec, err := ParseRecord([]byte(`{"sentiment":"positive","score":"high"}`))
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if rec.HasScalar() {
			t.Fatalf("expected no usable scalar, got %+v", rec)
		}
		if got := Synthesize(rec); !got.IsEmpty() {
			t.Fatalf("expected empty breakdown, got %v", got)
		}
	})

	t.Run("not an object", func(t *testing.T) {
		if _, err := ParseRecord([]byte(`[1,2,3]`)); err == nil {
			t.Fatal("expected error for array payload")
		}
	})
}

func TestRecordJSONRoundTripKeepsShape(t *testing.T) {
	b, err := json.Marshal(NewScalar("neutral", 0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"sentiment":"neutral","score":0}` {
		t.Fatalf("unexpected encoding %s", b)
	}
}

func TestAverage(t *testing.T) {
	if Average(nil) != nil {
		t.Fatal("expected nil for no records")
	}

	single := Average([]*Record{NewTriple(1, 1, 1), NewScalar("Positive", 0.1)})
	if single.LabelOr("") != "positive" || *single.Score != 0.1 {
		t.Fatalf("single scalar should keep its label, got %+v", single)
	}

	avg := Average([]*Record{NewScalar("positive", 0.9), NewScalar("negative", -0.3)})
	if *avg.Score < 0.299 || *avg.Score > 0.301 {
		t.Fatalf("expected average 0.3, got %v", *avg.Score)
	}
	if avg.LabelOr("") != LabelPositive {
		t.Fatalf("expected positive label, got %s", avg.LabelOr(""))
	}
}
