package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateTracingDefaultsAreValid(t *testing.T) {
	require.NoError(t, ValidateTracing(Defaults().Tracing))
}

func TestValidateTracingRejectsSampleRateOutOfRange(t *testing.T) {
	tr := Defaults().Tracing
	tr.SampleRate = 1.5
	require.Error(t, ValidateTracing(tr))

	tr.SampleRate = -0.1
	require.Error(t, ValidateTracing(tr))
}

func TestValidateTracingRejectsUnknownExporter(t *testing.T) {
	tr := Defaults().Tracing
	tr.Exporter = "carrier-pigeon"
	require.Error(t, ValidateTracing(tr))
}

func TestValidateTracingRequiresFilePathForFileExporter(t *testing.T) {
	tr := TracingConfig{Enabled: true, Exporter: "file", SampleRate: 1.0}
	require.Error(t, ValidateTracing(tr))

	tr.FilePath = "/tmp/traces.jsonl"
	require.NoError(t, ValidateTracing(tr))
}

func TestValidateTracingRequiresOTLPEndpointForOTLPExporter(t *testing.T) {
	tr := TracingConfig{Enabled: true, Exporter: "otlp", SampleRate: 1.0}
	require.Error(t, ValidateTracing(tr))

	tr.OTLPEndpoint = "localhost:4317"
	require.NoError(t, ValidateTracing(tr))
}

func TestValidateTracingDisabledSkipsPathRequirements(t *testing.T) {
	tr := TracingConfig{Enabled: false, Exporter: "file", SampleRate: 1.0}
	require.NoError(t, ValidateTracing(tr))
}

func TestValidateThemeAcceptsKnownPresetsAndModes(t *testing.T) {
	require.NoError(t, ValidateTheme(ThemeConfig{}))
	require.NoError(t, ValidateTheme(ThemeConfig{Preset: "default", Mode: "dark"}))
	require.NoError(t, ValidateTheme(ThemeConfig{Preset: "mono", Mode: "light"}))
}

func TestValidateThemeRejectsUnknownPreset(t *testing.T) {
	require.Error(t, ValidateTheme(ThemeConfig{Preset: "solarized"}))
}

func TestValidateThemeRejectsUnknownMode(t *testing.T) {
	require.Error(t, ValidateTheme(ThemeConfig{Mode: "twilight"}))
}

func TestDefaultsProduceAValidConfig(t *testing.T) {
	d := Defaults()
	require.NoError(t, ValidateTracing(d.Tracing))
	require.NoError(t, ValidateTheme(d.Theme))
	require.Equal(t, 4, d.UI.TabWidth)
	require.Equal(t, 600, d.Registers.CacheTTLSeconds)
}

func TestDefaultConfigTemplateParsesAsValidYAMLShape(t *testing.T) {
	require.Contains(t, DefaultConfigTemplate(), "tab_width: 4")
	require.Contains(t, DefaultConfigTemplate(), "preset: default")
}
