package models

import "encoding/json"

// MetricType identifies one category of wearable data in the Oura v2 API.
type MetricType string

const (
	MetricDailyActivity  MetricType = "daily_activity"
	MetricDailyReadiness MetricType = "daily_readiness"
	MetricDailySleep     MetricType = "daily_sleep"
)

// AllMetricTypes returns the fixed set of tracked metric types in fetch order.
func AllMetricTypes() []MetricType {
	return []MetricType{MetricDailyActivity, MetricDailyReadiness, MetricDailySleep}
}

// Record is one time-stamped measurement exactly as the upstream returned it.
// Nothing downstream interprets its fields except the spreadsheet exporter,
// which derives column names from the keys it encounters.
type Record map[string]any

// Bucket holds the accumulated records for one metric type plus whatever
// other top-level fields the upstream response carried (next_token and the
// like). Those extra fields are kept as raw JSON and written back verbatim.
type Bucket struct {
	Data  []Record
	Extra map[string]json.RawMessage
}

// MarshalJSON flattens Extra back alongside the data array so the persisted
// document keeps the upstream response shape.
func (b *Bucket) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(b.Extra)+1)
	for k, v := range b.Extra {
		out[k] = v
	}
	data := b.Data
	if data == nil {
		data = []Record{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	out["data"] = raw
	return json.Marshal(out)
}

// UnmarshalJSON splits the upstream object into the data array and the
// pass-through remainder.
func (b *Bucket) UnmarshalJSON(raw []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}
	if data, ok := fields["data"]; ok {
		if err := json.Unmarshal(data, &b.Data); err != nil {
			return err
		}
		delete(fields, "data")
	}
	b.Extra = fields
	return nil
}

// Len returns the number of accumulated records.
func (b *Bucket) Len() int { return len(b.Data) }

// Store maps metric type names to their accumulated buckets. Keys are the
// raw metric type strings so the document round-trips without translation.
type Store map[string]*Bucket

// IsEmpty reports whether no metric type has ever been stored.
func (s Store) IsEmpty() bool { return len(s) == 0 }
