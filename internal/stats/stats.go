// Package stats tallies how many input rows an engine run accepted or
// dropped, by transaction kind, using the same Prometheus counter types the
// teacher exposes over HTTP. Here the registry is private and never served;
// it exists purely to give the run a single, deterministic summary line at
// the end of ingestion.
package stats

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Stats accumulates per-run counters.
type Stats struct {
	registry *prometheus.Registry
	rows     prometheus.Counter
	records  *prometheus.CounterVec
}

// New returns an empty counter set with its own private registry.
func New() *Stats {
	s := &Stats{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payments_engine_rows_total",
			Help: "Input rows read from the record source, including undecodable ones.",
		}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payments_engine_records_total",
			Help: "Records dispatched by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	s.registry.MustRegister(s.rows, s.records)
	return s
}

// ObserveRow counts one row read from the source, decodable or not.
func (s *Stats) ObserveRow() {
	s.rows.Inc()
}

// Accept counts one record of kind that was applied successfully.
func (s *Stats) Accept(kind string) {
	s.records.WithLabelValues(kind, "accepted").Inc()
}

// Drop counts one record of kind that was dropped.
func (s *Stats) Drop(kind string) {
	s.records.WithLabelValues(kind, "dropped").Inc()
}

// Snapshot is a plain-value summary of a Stats instance at a point in time.
type Snapshot struct {
	TotalRows int
	Accepted  map[string]int
	Dropped   map[string]int
}

// Snapshot gathers the registry into a Snapshot suitable for logging.
func (s *Stats) Snapshot() Snapshot {
	snap := Snapshot{Accepted: map[string]int{}, Dropped: map[string]int{}}

	families, err := s.registry.Gather()
	if err != nil {
		return snap
	}

	for _, fam := range families {
		switch fam.GetName() {
		case "payments_engine_rows_total":
			for _, m := range fam.GetMetric() {
				snap.TotalRows += int(m.GetCounter().GetValue())
			}
		case "payments_engine_records_total":
			for _, m := range fam.GetMetric() {
				kind, outcome := labelsOf(m)
				switch outcome {
				case "accepted":
					snap.Accepted[kind] += int(m.GetCounter().GetValue())
				case "dropped":
					snap.Dropped[kind] += int(m.GetCounter().GetValue())
				}
			}
		}
	}
	return snap
}

func labelsOf(m *dto.Metric) (kind, outcome string) {
	for _, lp := range m.GetLabel() {
		switch lp.GetName() {
		case "kind":
			kind = lp.GetValue()
		case "outcome":
			outcome = lp.GetValue()
		}
	}
	return kind, outcome
}

// Fields renders the snapshot as logging fields: the row total plus an
// accepted and a dropped count for every kind seen. The logging package
// writes fields in key order, so the emitted line is stable across runs over
// the same input.
func (snap Snapshot) Fields() map[string]interface{} {
	fields := map[string]interface{}{"rows": snap.TotalRows}
	for _, kind := range sortedKinds(snap.Accepted, snap.Dropped) {
		fields[kind+"_accepted"] = snap.Accepted[kind]
		fields[kind+"_dropped"] = snap.Dropped[kind]
	}
	return fields
}

func sortedKinds(maps ...map[string]int) []string {
	seen := map[string]struct{}{}
	for _, m := range maps {
		for k := range m {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
