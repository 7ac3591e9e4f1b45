package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())

	_, span := p.Tracer().Start(context.Background(), "noop")
	span.End()
	assert.False(t, span.SpanContext().IsValid())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_Stdout(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Enabled = true

	p, err := NewProvider(cfg, &buf)
	require.NoError(t, err)
	assert.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "registry.GetShell")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), "registry.GetShell")
}

func TestNewProvider_None(t *testing.T) {
	cfg := Config{Enabled: true, Exporter: ExporterNone}
	p, err := NewProvider(cfg, nil)
	require.NoError(t, err)

	_, span := p.Tracer().Start(context.Background(), "x")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_ExporterCase(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Enabled: true, Exporter: "STDOUT", ServiceName: "aas-registry"}

	p, err := NewProvider(cfg, &buf)
	require.NoError(t, err)

	_, span := p.Tracer().Start(context.Background(), "registry.ListShells")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), "registry.ListShells")
}

func TestNewProvider_UnknownExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "carrier-pigeon"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported exporter")
}
