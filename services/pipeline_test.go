package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"cafe-insights/models"
	"cafe-insights/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger(utils.LevelError) }

func rawRecord(location, rating, value, timestamp, comment string) *models.RawFeedback {
	return &models.RawFeedback{
		Location:         location,
		Rating:           rating,
		TransactionValue: value,
		Timestamp:        timestamp,
		Comment:          comment,
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	p := NewPipeline(newTestLogger())

	raw := []*models.RawFeedback{
		rawRecord("Albany", "5", "20/10/2020 8:24:00 AM", "20/10/2020 8:24:00 AM", "lovely"),
		rawRecord("Albany ", "5", "$35.00", "20/10/2020 9:00:00 AM", "great coffee"),
	}

	clean, rejections := p.Clean(raw)

	if len(clean) != 1 {
		t.Fatalf("expected 1 canonical record, got %d", len(clean))
	}
	if clean[0].Location != "Albany" {
		t.Errorf("Location: got %q, want %q", clean[0].Location, "Albany")
	}
	if clean[0].TransactionValue != 35.00 {
		t.Errorf("TransactionValue: got %.2f, want 35.00", clean[0].TransactionValue)
	}
	if len(rejections) != 1 {
		t.Fatalf("expected 1 rejection, got %d", len(rejections))
	}
	if rejections[0].Reason != models.ReasonBadTransactionValue {
		t.Errorf("Reason: got %q, want %q", rejections[0].Reason, models.ReasonBadTransactionValue)
	}
}

func TestPipelineFirstFailureWins(t *testing.T) {
	p := NewPipeline(newTestLogger())

	tests := []struct {
		name string
		raw  *models.RawFeedback
		want models.ReasonCode
	}{
		{"location before rating", rawRecord("  ", "bad", "bad", "bad", ""), models.ReasonBadLocation},
		{"rating before value", rawRecord("Albany", "bad", "bad", "bad", ""), models.ReasonBadRating},
		{"value before timestamp", rawRecord("Albany", "4", "bad", "bad", ""), models.ReasonBadTransactionValue},
		{"range check after extraction", rawRecord("Albany", "4", "$900", "bad", ""), models.ReasonValueOutOfRange},
		{"timestamp last", rawRecord("Albany", "4", "$20", "bad", ""), models.ReasonBadTimestamp},
	}

	for _, tt := range tests {
		_, rejections := p.Clean([]*models.RawFeedback{tt.raw})
		if len(rejections) != 1 {
			t.Fatalf("%s: expected 1 rejection, got %d", tt.name, len(rejections))
		}
		if rejections[0].Reason != tt.want {
			t.Errorf("%s: reason = %q; want %q", tt.name, rejections[0].Reason, tt.want)
		}
	}
}

func TestPipelineIdempotent(t *testing.T) {
	p := NewPipeline(newTestLogger())

	raw := []*models.RawFeedback{
		rawRecord("Albany", "5", "$35.00", "20/10/2020 9:00:00 AM", "great"),
		rawRecord("Berlin", "oops", "$12.00", "21/10/2020", ""),
		rawRecord("Cairo", "3", "$12.00", "21/10/2020", "ok I guess"),
	}

	clean1, rej1 := p.Clean(raw)
	clean2, rej2 := p.Clean(raw)

	if diff := cmp.Diff(clean1, clean2); diff != "" {
		t.Errorf("canonical output differs between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(rej1, rej2); diff != "" {
		t.Errorf("rejection log differs between runs (-first +second):\n%s", diff)
	}
}

func TestPipelineDeduplicates(t *testing.T) {
	p := NewPipeline(newTestLogger())

	// Same record twice, differing only in raw whitespace. Identical after
	// normalization, so only the first survives.
	raw := []*models.RawFeedback{
		rawRecord("Albany", "5", "$35.00", "20/10/2020 9:00:00 AM", "great"),
		rawRecord("  Albany  ", "5", "$35.00", "20/10/2020 9:00:00 AM", "great"),
		// Same tuple except comment: a legitimate distinct record.
		rawRecord("Albany", "5", "$35.00", "20/10/2020 9:00:00 AM", "great!"),
	}

	clean, rejections := p.Clean(raw)
	if len(clean) != 2 {
		t.Fatalf("expected 2 canonical records after dedup, got %d", len(clean))
	}
	if len(rejections) != 0 {
		t.Errorf("expected no rejections, got %d", len(rejections))
	}
}

func TestPipelineEmptyInput(t *testing.T) {
	p := NewPipeline(newTestLogger())

	clean, rejections := p.Clean(nil)
	if len(clean) != 0 || len(rejections) != 0 {
		t.Errorf("empty input: got %d clean, %d rejected; want 0, 0", len(clean), len(rejections))
	}
}

func TestCleanCachedReturnsMemoizedResult(t *testing.T) {
	p := NewPipeline(newTestLogger())
	cache := &Cache{}

	raw := []*models.RawFeedback{
		rawRecord("Albany", "5", "$35.00", "20/10/2020 9:00:00 AM", "great"),
	}

	clean1, _ := p.CleanCached(cache, raw)
	clean2, _ := p.CleanCached(cache, raw)

	if len(clean1) != 1 || len(clean2) != 1 {
		t.Fatalf("expected 1 record from both calls, got %d and %d", len(clean1), len(clean2))
	}
	if clean1[0] != clean2[0] {
		t.Error("unchanged input should return the cached records, not recomputed copies")
	}

	// Changed input must miss the cache.
	raw = append(raw, rawRecord("Berlin", "4", "$20.00", "21/10/2020", ""))
	clean3, _ := p.CleanCached(cache, raw)
	if len(clean3) != 2 {
		t.Errorf("changed input: expected 2 records, got %d", len(clean3))
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	a := []*models.RawFeedback{rawRecord("Albany", "5", "$35.00", "20/10/2020", "x")}
	b := []*models.RawFeedback{rawRecord("Albany", "5", "$35.00", "20/10/2020", "x")}
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("identical content must produce identical fingerprints")
	}

	// Field boundaries are length-prefixed: shifting a character across a
	// boundary must change the hash.
	c := []*models.RawFeedback{rawRecord("Albany5", "", "$35.00", "20/10/2020", "x")}
	if Fingerprint(a) == Fingerprint(c) {
		t.Error("shifted field boundary must change the fingerprint")
	}
}
