package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshalSARIFProducesOneRulePerCode(t *testing.T) {
	r := Build(sampleNotices(), nil, nil, Options{}, "2026-01-01T00:00:00Z")
	out, err := r.MarshalSARIF()
	require.NoError(t, err)

	var log sarifLog
	require.NoError(t, json.Unmarshal(out, &log))
	require.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	require.Len(t, log.Runs[0].Tool.Driver.Rules, 2) // invalid_color, missing_recommended_field
	require.Len(t, log.Runs[0].Results, 3)           // two invalid_color rows + one missing_recommended_field row
}

func TestMarshalSARIFLevelsMapSeverity(t *testing.T) {
	r := Build(sampleNotices(), nil, nil, Options{}, "2026-01-01T00:00:00Z")
	out, err := r.MarshalSARIF()
	require.NoError(t, err)

	var log sarifLog
	require.NoError(t, json.Unmarshal(out, &log))
	levels := map[string]bool{}
	for _, res := range log.Runs[0].Results {
		levels[res.Level] = true
	}
	require.True(t, levels["error"])
	require.True(t, levels["warning"])
}

func TestMarshalSARIFMessageIncludesFilename(t *testing.T) {
	r := Build(sampleNotices(), nil, nil, Options{}, "2026-01-01T00:00:00Z")
	out, err := r.MarshalSARIF()
	require.NoError(t, err)
	require.Contains(t, string(out), "routes.txt")
}
