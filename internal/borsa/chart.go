package borsa

import (
	"context"
	"encoding/json"
	"fmt"
)

// Chart request constants for the MOT segment.
const (
	MarketSuffix = ".MOT"

	SampleMonthly = "1m"
	FrameOneYear  = "1y"
)

// chartEnvelope is the request body shape expected by GetCvals.
type chartEnvelope struct {
	Request chartRequest `json:"request"`
}

type chartRequest struct {
	SampleTime           string  `json:"SampleTime"`
	TimeFrame            string  `json:"TimeFrame"`
	RequestedDataSetType string  `json:"RequestedDataSetType"`
	ChartPriceType       string  `json:"ChartPriceType"`
	Key                  string  `json:"Key"`
	OffSet               int     `json:"OffSet"`
	FromDate             *string `json:"FromDate"`
	ToDate               *string `json:"ToDate"`
	KeyType              string  `json:"KeyType"`
	KeyType2             string  `json:"KeyType2"`
	Language             string  `json:"Language"`
}

// chartResponse wraps the sample list; "d" is the ASMX payload field.
type chartResponse struct {
	D [][]float64 `json:"d"`
}

// VolumeSample is one (timestamp, raw volume) pair from the charting
// service. Timestamps are epoch milliseconds.
type VolumeSample struct {
	Timestamp int64
	Volume    float64
}

// GetVolumeHistory fetches the volume series for one ISIN at the given
// sampling granularity and time frame (e.g. SampleMonthly, FrameOneYear).
func (c *Client) GetVolumeHistory(ctx context.Context, isin, sampleTime, timeFrame string) ([]VolumeSample, error) {
	payload := chartEnvelope{
		Request: chartRequest{
			SampleTime:           sampleTime,
			TimeFrame:            timeFrame,
			RequestedDataSetType: "cvals",
			ChartPriceType:       "price",
			Key:                  isin + MarketSuffix,
			OffSet:               0,
			FromDate:             nil,
			ToDate:               nil,
			KeyType:              "Topic",
			KeyType2:             "Topic",
			Language:             "it-IT",
		},
	}

	body, err := c.postChart(ctx, payload)
	if err != nil {
		return nil, err
	}

	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal chart response: %w", err)
	}
	if resp.D == nil {
		return nil, fmt.Errorf("chart response missing data list")
	}

	samples := make([]VolumeSample, 0, len(resp.D))
	for _, pair := range resp.D {
		if len(pair) < 2 {
			return nil, fmt.Errorf("chart response sample has %d elements, want 2", len(pair))
		}
		samples = append(samples, VolumeSample{
			Timestamp: int64(pair[0]),
			Volume:    pair[1],
		})
	}

	return samples, nil
}
