package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aasregistry/internal/domain"
)

func sampleDocument() *Document {
	sm := domain.NewSubmodelDescriptor("sm-1", "Nameplate")
	sm.SemanticID = domain.NewReference(domain.ExternalReference, domain.Key{Type: domain.KeyTypeGlobalReference, Value: "urn:nameplate"})
	sm.Endpoints = []domain.Endpoint{domain.NewHTTPEndpoint(domain.InterfaceSubmodel, "http://localhost/sm-1")}

	shell := domain.NewShellDescriptor("shell-1", "Pump")
	shell.Descriptions = []domain.LangString{{Language: "en", Text: "a pump"}}
	shell.SubmodelDescriptors = []domain.SubmodelDescriptor{*sm}

	return &Document{
		Shells:    []domain.ShellDescriptor{*shell},
		Submodels: []domain.SubmodelDescriptor{*domain.NewSubmodelDescriptor("sm-99", "Standalone")},
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "json", want: "json"},
		{in: "YAML", want: "yaml"},
		{in: "yml", want: "yaml"},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ForFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Format())
		})
	}
}

func TestForPath(t *testing.T) {
	assert.Equal(t, "yaml", ForPath("dump.YML").Format())
	assert.Equal(t, "yaml", ForPath("/tmp/dump.yaml").Format())
	assert.Equal(t, "json", ForPath("dump.json").Format())
	assert.Equal(t, "json", ForPath("dump").Format())
}

func TestExportParse(t *testing.T) {
	type exportParser interface {
		Importer
		Exporter
	}

	for _, c := range []exportParser{NewJSONCodec(), NewYAMLCodec()} {
		t.Run(c.(Codec).Format(), func(t *testing.T) {
			doc := sampleDocument()

			var buf bytes.Buffer
			require.NoError(t, c.Export(doc, &buf))

			got, err := c.Parse(&buf)
			require.NoError(t, err)
			require.Len(t, got.Shells, 1)
			require.Len(t, got.Submodels, 1)
			assert.True(t, doc.Shells[0].Equal(got.Shells[0]))
			assert.True(t, doc.Submodels[0].Equal(got.Submodels[0]))
		})
	}
}

func TestJSONFieldNames(t *testing.T) {
	data, err := NewJSONCodec().Marshal(sampleDocument().Shells[0])
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"identification":{`)
	assert.Contains(t, s, `"idShort":"Pump"`)
	assert.Contains(t, s, `"submodelDescriptors":[`)
	assert.NotContains(t, s, `"globalAssetId"`)
}

func TestUnmarshalStrict(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		data  string
	}{
		{name: "json unknown field", codec: NewJSONCodec(), data: `{"identification":{"id":"x"},"color":"red"}`},
		{name: "json trailing data", codec: NewJSONCodec(), data: `{"identification":{"id":"x"}} {}`},
		{name: "json malformed", codec: NewJSONCodec(), data: `{"identification":`},
		{name: "yaml unknown field", codec: NewYAMLCodec(), data: "identification:\n  id: x\ncolor: red\n"},
		{name: "yaml empty", codec: NewYAMLCodec(), data: ""},
		{name: "yaml wrong type", codec: NewYAMLCodec(), data: "identification: [1, 2]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sm domain.SubmodelDescriptor
			err := tt.codec.Unmarshal([]byte(tt.data), &sm)
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), "failed to parse"))
		})
	}
}

func TestUnmarshalSingleDescriptor(t *testing.T) {
	var sm domain.SubmodelDescriptor
	require.NoError(t, NewYAMLCodec().Unmarshal([]byte("identification:\n  id: sm-7\nidShort: Doc\n"), &sm))
	assert.Equal(t, "sm-7", sm.ID())
	assert.Equal(t, "Doc", sm.IDShort)
}
