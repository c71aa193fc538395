package services

import (
	"encoding/binary"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"cafe-insights/models"
	"cafe-insights/utils"
)

// Pipeline turns raw feedback rows into the canonical dataset plus a
// rejection log. It is pure: the same raw input always yields the same
// output, record for record, in the same order.
type Pipeline struct {
	logger *utils.Logger
}

// NewPipeline creates a Pipeline with the given logger.
func NewPipeline(logger *utils.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// Clean validates every raw record and deduplicates the survivors.
// Insertion order is preserved; duplicates (identical on the full canonical
// tuple) keep the first occurrence. This guards against accidental
// double-ingestion, not legitimate repeat visits. No single bad record ever
// aborts the run.
func (p *Pipeline) Clean(raw []*models.RawFeedback) ([]*models.Feedback, []*models.Rejection) {
	seen := make(map[string]struct{})
	clean := make([]*models.Feedback, 0, len(raw))
	rejections := make([]*models.Rejection, 0)

	for _, r := range raw {
		fb, reason := ValidateRecord(r)
		if reason != "" {
			p.logger.Debug("[pipeline] Rejected record (%s): location=%q rating=%q value=%q",
				reason, r.Location, r.Rating, r.TransactionValue)
			rejections = append(rejections, &models.Rejection{Raw: r, Reason: reason})
			continue
		}

		key := dedupKey(fb)
		if _, dup := seen[key]; dup {
			p.logger.Debug("[pipeline] Duplicate record skipped: %s @ %s",
				fb.Location, fb.Timestamp.Format(time.RFC3339))
			continue
		}
		seen[key] = struct{}{}

		clean = append(clean, fb)
	}

	p.logger.Info("[pipeline] Cleaned %d → %d records (%d rejected, %d duplicates)",
		len(raw), len(clean), len(rejections), len(raw)-len(clean)-len(rejections))
	return clean, rejections
}

// dedupKey builds the identity tuple of a canonical record. The unit
// separator keeps field boundaries unambiguous.
func dedupKey(f *models.Feedback) string {
	return strings.Join([]string{
		f.Location,
		strconv.Itoa(f.Rating),
		strconv.FormatFloat(f.TransactionValue, 'f', -1, 64),
		f.Timestamp.Format(time.RFC3339Nano),
		f.Comment,
	}, "\x1f")
}

// Fingerprint computes a content hash of the raw input. Field and record
// boundaries are length-prefixed so shifted content cannot collide.
func Fingerprint(raw []*models.RawFeedback) uint64 {
	h := xxhash.New()
	var lenBuf [8]byte

	writeField := func(s string) {
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(s)))
		_, _ = h.Write(lenBuf[:])
		_, _ = h.WriteString(s)
	}

	for _, r := range raw {
		writeField(r.Location)
		writeField(r.Rating)
		writeField(r.TransactionValue)
		writeField(r.Timestamp)
		writeField(r.Comment)
	}
	return h.Sum64()
}

// Cache memoizes the latest Clean result keyed by input fingerprint. The
// caller owns the cache; the pipeline itself stays a pure function of its
// input. Safe for concurrent readers.
type Cache struct {
	mu          sync.Mutex
	fingerprint uint64
	clean       []*models.Feedback
	rejections  []*models.Rejection
	populated   bool
}

// CleanCached returns the cached result when the raw input is unchanged,
// otherwise cleans and stores. Callers must treat the returned slices as
// immutable: they are shared across every invocation with the same input.
func (p *Pipeline) CleanCached(cache *Cache, raw []*models.RawFeedback) ([]*models.Feedback, []*models.Rejection) {
	fp := Fingerprint(raw)

	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.populated && cache.fingerprint == fp {
		p.logger.Debug("[pipeline] Cache hit (fingerprint %016x)", fp)
		return cache.clean, cache.rejections
	}

	clean, rejections := p.Clean(raw)
	cache.fingerprint = fp
	cache.clean = clean
	cache.rejections = rejections
	cache.populated = true
	return clean, rejections
}
