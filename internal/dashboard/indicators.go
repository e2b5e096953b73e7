package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/camuig/lcf-dashboard/internal/storage"
)

// Indicator is a precomputed overlay the price chart can show.
type Indicator struct {
	Code      string
	Option    string // label in the selector
	TraceName string // label on the chart legend
	Column    string
	Color     string
}

var indicators = []Indicator{
	{Code: "sma15day", Option: "SMA 15 day", TraceName: "SMA 15d", Column: storage.ColumnSMA15Day, Color: "#FFA500"},
	{Code: "baseSMA", Option: "200 day SMA", TraceName: "SMA 200d", Column: storage.ColumnBaseSMA, Color: "#023020"},
}

func Indicators() []Indicator {
	out := make([]Indicator, len(indicators))
	copy(out, indicators)
	return out
}

func LookupIndicator(code string) (Indicator, bool) {
	for _, ind := range indicators {
		if ind.Code == code {
			return ind, true
		}
	}
	return Indicator{}, false
}

// IndicatorSelection is what the indicator selector sent. It decodes from a
// bare string, a list of strings or null.
type IndicatorSelection []string

func (s *IndicatorSelection) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*s = nil
		return nil
	}

	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*s = IndicatorSelection{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("indicator must be a string or a list of strings: %w", err)
	}
	*s = IndicatorSelection(many)
	return nil
}

// ParseIndicatorQuery builds a selection from repeated query values, each of
// which may hold a comma separated list.
func ParseIndicatorQuery(values []string) IndicatorSelection {
	var sel IndicatorSelection
	for _, v := range values {
		for _, code := range strings.Split(v, ",") {
			if code = strings.TrimSpace(code); code != "" {
				sel = append(sel, code)
			}
		}
	}
	return sel
}
