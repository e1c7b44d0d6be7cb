package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ChartBlobVersion is the schema version written by MarshalChart.
const ChartBlobVersion = 1

// chartBlob is the persisted envelope around a chart. The version tag lets
// UnmarshalChart reject blobs written by a newer schema instead of loading
// them partially.
type chartBlob struct {
	Version int           `json:"version"`
	Chart   *SeatingChart `json:"chart"`
}

// MarshalChart serializes the chart as one versioned JSON blob.
// UnmarshalChart(MarshalChart(c)) is structurally equal to c for every
// valid chart.
func MarshalChart(chart *SeatingChart) ([]byte, error) {
	if chart == nil {
		return nil, fmt.Errorf("%w: nil chart", ErrInvalidInput)
	}
	return json.Marshal(chartBlob{Version: ChartBlobVersion, Chart: chart})
}

// UnmarshalChart decodes a blob written by MarshalChart. Blobs with an
// unrecognized version are rejected with ErrUnsupportedVersion; malformed
// payloads are rejected outright. There is no best-effort partial load.
func UnmarshalChart(data []byte) (*SeatingChart, error) {
	var blob chartBlob
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&blob); err != nil {
		return nil, fmt.Errorf("decode chart blob: %w", err)
	}
	if blob.Version != ChartBlobVersion {
		return nil, fmt.Errorf("%w: got version %d, want %d", ErrUnsupportedVersion, blob.Version, ChartBlobVersion)
	}
	if blob.Chart == nil {
		return nil, fmt.Errorf("decode chart blob: %w: missing chart", ErrInvalidInput)
	}
	return blob.Chart, nil
}
