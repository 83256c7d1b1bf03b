//go:build unit

package codec_test

import (
	"testing"

	"github.com/streamworks/kinesis-runtime/codec"
	"github.com/stretchr/testify/require"
)

type testData struct {
	Value string `json:"value"`
}

type testMeta struct {
	Hash string `json:"hash"`
}

func TestJSONDecoder_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "valid record",
			input: `{"data":{"value":"first"},"metadata":{"hash":"8b04"}}`,
		},
		{
			name:    "not a json object",
			input:   `"just a string"`,
			wantErr: true,
		},
		{
			name:    "missing data field",
			input:   `{"metadata":{"hash":"8b04"}}`,
			wantErr: true,
		},
		{
			name:    "missing metadata field",
			input:   `{"data":{"value":"first"}}`,
			wantErr: true,
		},
		{
			name:    "data type mismatch",
			input:   `{"data":"not-an-object","metadata":{"hash":"8b04"}}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			input:   `{foobar}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				t.Parallel()

				d := codec.NewJSONDecoder[testData, testMeta]()
				rec, err := d.Decode([]byte(tt.input))

				if tt.wantErr {
					require.Error(t, err)
					var deserErr *codec.DeserializationError
					require.ErrorAs(t, err, &deserErr)
					require.Equal(t, []byte(tt.input), deserErr.Raw)
					return
				}

				require.NoError(t, err)
				require.Equal(t, "first", rec.Data.Value)
				require.Equal(t, "8b04", rec.Metadata.Hash)
			},
		)
	}
}
