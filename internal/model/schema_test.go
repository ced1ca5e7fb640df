package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeShowBasic(t *testing.T) {
	data := []byte(`{
		"format_version": "1.2",
		"configuration": {
			"root_module": {
				"module_calls": {
					"vpc": {"source": "./modules/vpc", "module": {}}
				}
			}
		}
	}`)

	doc, err := DecodeShow(data)
	require.NoError(t, err)

	calls := doc.Configuration.RootModule.Calls
	require.Len(t, calls, 1)
	assert.Equal(t, "vpc", calls[0].Name)
	assert.Equal(t, "./modules/vpc", calls[0].Source)
	assert.Nil(t, calls[0].Count)
	assert.Nil(t, calls[0].ForEach)
	assert.Empty(t, calls[0].Module.Calls)
}

func TestDecodeShowPreservesCallOrder(t *testing.T) {
	data := []byte(`{"configuration": {"root_module": {"module_calls": {
		"zeta": {"source": "./z", "module": {}},
		"alpha": {"source": "./a", "module": {}},
		"mid": {"source": "./m", "module": {}}
	}}}}`)

	doc, err := DecodeShow(data)
	require.NoError(t, err)

	var names []string
	for _, call := range doc.Configuration.RootModule.Calls {
		names = append(names, call.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestDecodeShowNestedModules(t *testing.T) {
	data := []byte(`{"configuration": {"root_module": {"module_calls": {
		"net": {
			"source": "./modules/net",
			"module": {
				"module_calls": {
					"subnet": {"source": "./subnet", "module": {}}
				}
			}
		}
	}}}}`)

	doc, err := DecodeShow(data)
	require.NoError(t, err)

	net := doc.Configuration.RootModule.Calls[0]
	require.Len(t, net.Module.Calls, 1)
	assert.Equal(t, "subnet", net.Module.Calls[0].Name)
	assert.Equal(t, "./subnet", net.Module.Calls[0].Source)
}

func TestDecodeShowMissingSource(t *testing.T) {
	data := []byte(`{"configuration": {"root_module": {"module_calls": {
		"vpc": {"module": {}}
	}}}}`)

	_, err := DecodeShow(data)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "vpc", schemaErr.Call)
	assert.Contains(t, err.Error(), "source")
}

func TestDecodeShowSourceWrongType(t *testing.T) {
	data := []byte(`{"configuration": {"root_module": {"module_calls": {
		"vpc": {"source": 42, "module": {}}
	}}}}`)

	var schemaErr *SchemaError
	_, err := DecodeShow(data)
	require.ErrorAs(t, err, &schemaErr)
}

func TestDecodeShowCountConstant(t *testing.T) {
	data := []byte(`{"configuration": {"root_module": {"module_calls": {
		"vpc": {
			"source": "./modules/vpc",
			"module": {},
			"count_expression": {"constant_value": 2}
		}
	}}}}`)

	doc, err := DecodeShow(data)
	require.NoError(t, err)

	call := doc.Configuration.RootModule.Calls[0]
	require.NotNil(t, call.Count)
	assert.Equal(t, 2, *call.Count)
}

func TestDecodeShowCountNotConstant(t *testing.T) {
	// count depends on a variable: no constant_value in the expression.
	data := []byte(`{"configuration": {"root_module": {"module_calls": {
		"vpc": {
			"source": "./modules/vpc",
			"module": {},
			"count_expression": {"references": ["var.n"]}
		}
	}}}}`)

	doc, err := DecodeShow(data)
	require.NoError(t, err)
	assert.Nil(t, doc.Configuration.RootModule.Calls[0].Count)
}

func TestDecodeShowNegativeCount(t *testing.T) {
	data := []byte(`{"configuration": {"root_module": {"module_calls": {
		"vpc": {
			"source": "./modules/vpc",
			"module": {},
			"count_expression": {"constant_value": -1}
		}
	}}}}`)

	var schemaErr *SchemaError
	_, err := DecodeShow(data)
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "vpc", schemaErr.Call)
}

func TestDecodeShowForEachKeysInDocumentOrder(t *testing.T) {
	data := []byte(`{"configuration": {"root_module": {"module_calls": {
		"vpc": {
			"source": "./modules/vpc",
			"module": {},
			"for_each_expression": {"constant_value": {"west": {}, "east": {}, "north": {}}}
		}
	}}}}`)

	doc, err := DecodeShow(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"west", "east", "north"}, doc.Configuration.RootModule.Calls[0].ForEach)
}

func TestDecodeShowForEachEmptyIsPresent(t *testing.T) {
	data := []byte(`{"configuration": {"root_module": {"module_calls": {
		"vpc": {
			"source": "./modules/vpc",
			"module": {},
			"for_each_expression": {"constant_value": {}}
		}
	}}}}`)

	doc, err := DecodeShow(data)
	require.NoError(t, err)

	forEach := doc.Configuration.RootModule.Calls[0].ForEach
	require.NotNil(t, forEach, "empty for_each must stay distinguishable from no for_each")
	assert.Empty(t, forEach)
}

func TestDecodeShowForEachSet(t *testing.T) {
	data := []byte(`{"configuration": {"root_module": {"module_calls": {
		"vpc": {
			"source": "./modules/vpc",
			"module": {},
			"for_each_expression": {"constant_value": ["a", "b"]}
		}
	}}}}`)

	doc, err := DecodeShow(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, doc.Configuration.RootModule.Calls[0].ForEach)
}

func TestDecodeShowIgnoresUnknownFields(t *testing.T) {
	data := []byte(`{
		"format_version": "1.2",
		"planned_values": {"root_module": {"resources": [{"address": "aws_vpc.x"}]}},
		"configuration": {
			"provider_config": {"aws": {"name": "aws"}},
			"root_module": {
				"resources": [{"address": "aws_vpc.x", "mode": "managed"}],
				"variables": {"env": {"default": "dev"}},
				"module_calls": {
					"vpc": {"source": "./modules/vpc", "module": {"outputs": {"id": {}}}}
				}
			}
		}
	}`)

	doc, err := DecodeShow(data)
	require.NoError(t, err)
	require.Len(t, doc.Configuration.RootModule.Calls, 1)
}

func TestDecodeShowLeafModules(t *testing.T) {
	for name, body := range map[string]string{
		"absent calls": `{"configuration": {"root_module": {}}}`,
		"null calls":   `{"configuration": {"root_module": {"module_calls": null}}}`,
		"null module":  `{"configuration": {"root_module": null}}`,
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := DecodeShow([]byte(body))
			require.NoError(t, err)
			assert.Empty(t, doc.Configuration.RootModule.Calls)
		})
	}
}

func TestDecodeShowNotJSON(t *testing.T) {
	var schemaErr *SchemaError
	_, err := DecodeShow([]byte("terraform crashed"))
	require.ErrorAs(t, err, &schemaErr)
}
