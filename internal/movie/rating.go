package movie

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// RatingState enumerates the lifecycle of a critic rating.
type RatingState uint8

const (
	// RatingUnknown means no enrichment source has supplied a rating yet.
	RatingUnknown RatingState = iota
	// RatingNoData means the ratings source was asked and had nothing usable.
	RatingNoData
	// RatingValue means a score on the 0-10 scale is available.
	RatingValue
)

// Persisted sentinels used by movies.json.
const (
	unknownSentinel = -1
	noDataSentinel  = -2
)

// Rating is a critic score with an explicit Unknown/NoData/Value state.
type Rating struct {
	state RatingState
	value float64
}

// UnknownRating returns a rating that has not been fetched.
func UnknownRating() Rating { return Rating{state: RatingUnknown} }

// NoDataRating returns a rating for which the ratings source had no usable score.
func NoDataRating() Rating { return Rating{state: RatingNoData} }

// RatingOf returns a known rating on the 0-10 scale.
func RatingOf(value float64) Rating { return Rating{state: RatingValue, value: value} }

// State reports which of the three states the rating is in.
func (r Rating) State() RatingState { return r.state }

// IsUnknown reports whether the rating still needs a lookup.
func (r Rating) IsUnknown() bool { return r.state == RatingUnknown }

// Value returns the score and whether one is present.
func (r Rating) Value() (float64, bool) {
	if r.state != RatingValue {
		return 0, false
	}
	return r.value, true
}

// Sentinel returns the legacy numeric encoding (-1, -2 or the score).
func (r Rating) Sentinel() float64 {
	switch r.state {
	case RatingNoData:
		return noDataSentinel
	case RatingValue:
		return r.value
	default:
		return unknownSentinel
	}
}

// Equal compares state and value.
func (r Rating) Equal(other Rating) bool {
	return r.state == other.state && r.value == other.value
}

// String renders the score with one decimal, or an en dash without one.
func (r Rating) String() string {
	if v, ok := r.Value(); ok {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return "–"
}

// RatingFromSentinel decodes the legacy numeric encoding.
func RatingFromSentinel(value float64) Rating {
	switch {
	case value == noDataSentinel:
		return NoDataRating()
	case value < 0:
		return UnknownRating()
	default:
		return RatingOf(value)
	}
}

// MarshalJSON writes the legacy sentinel number.
func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Sentinel())
}

// UnmarshalJSON accepts the legacy sentinel number; null decodes as unknown.
func (r *Rating) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = UnknownRating()
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decode rating: %w", err)
	}
	*r = RatingFromSentinel(value)
	return nil
}
