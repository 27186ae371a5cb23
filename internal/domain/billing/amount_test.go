package billing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_JSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Total Amount `json:"total"`
	}{Total: NewAmount(dec("198"))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 198.00}`, string(out))
	assert.Contains(t, string(out), "198.00")

	out, err = json.Marshal(NewAmount(dec("0.75075")))
	require.NoError(t, err)
	assert.Equal(t, "0.75", string(out))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"12.5"`), &a))
	assertDecimal(t, "12.5", a.Decimal())
	require.NoError(t, json.Unmarshal([]byte(`7`), &a))
	assertDecimal(t, "7", a.Decimal())
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &a))
}

func TestNumber_JSONKeepsPrecision(t *testing.T) {
	out, err := json.Marshal(NewNumber(dec("0.33333")))
	require.NoError(t, err)
	assert.Equal(t, "0.33333", string(out))

	var n Number
	require.NoError(t, json.Unmarshal([]byte(`2.125`), &n))
	assertDecimal(t, "2.125", n.Decimal())
}
