package result

import (
	"encoding/json"
	"testing"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestRelayResultMarshalUnmarshal(t *testing.T) {
	h := util.Uint256{1, 2, 3}
	r := RelayResult{Hash: h}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var got RelayResult
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, h, got.Hash)
}

func TestNetworkFeeUnmarshalBothForms(t *testing.T) {
	quoted := []byte(`{"networkfee":"1228520"}`)
	f := new(NetworkFee)
	require.NoError(t, json.Unmarshal(quoted, f))
	require.EqualValues(t, 1228520, f.Value)

	bare := []byte(`{"networkfee":1228520}`)
	require.NoError(t, json.Unmarshal(bare, f))
	require.EqualValues(t, 1228520, f.Value)
}

func TestNetworkFeeMarshal(t *testing.T) {
	data, err := json.Marshal(NetworkFee{Value: 42})
	require.NoError(t, err)
	require.JSONEq(t, `{"networkfee":"42"}`, string(data))
}

func TestValidateAddressJSON(t *testing.T) {
	data := []byte(`{"address":"Nhxx","isvalid":true}`)
	var v ValidateAddress
	require.NoError(t, json.Unmarshal(data, &v))
	require.Equal(t, "Nhxx", v.Address)
	require.True(t, v.IsValid)
}
