package toolbox

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolHandler(t *testing.T) {
	tool := Tool{
		Name:        "echo",
		Description: "Echoes input back",
		Params:      []Param{{Name: "text", Type: TypeString, Required: true}},
		Handler: func(_ context.Context, input json.RawMessage) (any, error) {
			var params struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(input, &params); err != nil {
				return nil, err
			}
			return map[string]string{"text": params.Text}, nil
		},
	}

	result, err := tool.Handler(context.Background(), json.RawMessage(`{"text":"hello"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"text": "hello"}, result)
}

func TestApplyDefaults(t *testing.T) {
	tool := Tool{
		Params: []Param{
			{Name: "Name", Type: TypeString, Required: true},
			{Name: "Language", Type: TypeString, Default: "en"},
			{Name: "Loud", Type: TypeBoolean},
		},
	}

	params := map[string]any{"Name": "Sam"}
	tool.ApplyDefaults(params)

	assert.Equal(t, map[string]any{"Name": "Sam", "Language": "en"}, params)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	tool := Tool{
		Params: []Param{{Name: "Language", Type: TypeString, Default: "en"}},
	}

	params := map[string]any{"Language": "es"}
	tool.ApplyDefaults(params)
	assert.Equal(t, "es", params["Language"])

	params = map[string]any{"Language": nil}
	tool.ApplyDefaults(params)
	assert.Nil(t, params["Language"])
}

func TestApplyDefaultsIgnoresRequiredParams(t *testing.T) {
	tool := Tool{
		Params: []Param{{Name: "Name", Type: TypeString, Required: true, Default: "x"}},
	}

	params := map[string]any{}
	tool.ApplyDefaults(params)
	assert.Empty(t, params)
}

func TestRequiredParams(t *testing.T) {
	tool := Tool{
		Params: []Param{
			{Name: "a", Required: true},
			{Name: "b"},
			{Name: "c", Required: true},
		},
	}

	assert.Equal(t, []string{"a", "c"}, tool.RequiredParams())
	assert.Nil(t, Tool{}.RequiredParams())
}
