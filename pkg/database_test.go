package fribtrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectorParametersForRunWithoutDatabase(t *testing.T) {
	config := Configuration{NoDB: true, Detector: DetectorParameters{GetFrequency: 12.5, MaxCorrection: 256}}
	params, err := DetectorParametersForRun(config)
	require.NoError(t, err)
	assert.Equal(t, config.Detector, params)

	config.Detector.GetFrequency = 0
	_, err = DetectorParametersForRun(config)
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "get_frequency", configErr.Field)
}
