package symbols

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsAnyCase(t *testing.T) {
	l := Default()
	for _, raw := range []string{"BTC", "btc", "Btc", "qqq", "vHyL"} {
		s, err := l.Validate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, Symbol(strings.ToUpper(raw)), s)
	}
}

func TestValidate_RejectsUnknown(t *testing.T) {
	l := Default()
	for _, raw := range []string{"", "XYZ", "btc ", " BTC", "BTC-USD", "VWRA.L", "spx500"} {
		s, err := l.Validate(raw)
		assert.Empty(t, s)
		require.Error(t, err, "%q should be rejected", raw)
		assert.True(t, errors.Is(err, ErrInvalidSymbol))

		var ise *InvalidSymbolError
		require.True(t, errors.As(err, &ise))
		assert.Equal(t, raw, ise.Input, "error keeps the original input")
	}
}

func TestValidate_ErrorMessageKeepsOriginalCasing(t *testing.T) {
	_, err := Default().Validate("xyz")
	assert.EqualError(t, err, "invalid symbol: xyz")
}

func TestDefault_CoversRegistry(t *testing.T) {
	l := Default()
	assert.Equal(t, 21, l.Len())

	want := []Symbol{"BTC", "ETH", "BNB", "SOL", "XRP", "LTC", "VWRA", "IWDA", "VT",
		"CSPX", "VTI", "EXSA", "VWO", "BND", "EMB", "GLD", "DBC", "VNQ", "QQQ", "ICLN", "VHYL"}
	assert.Equal(t, want, l.Symbols())

	for _, a := range l.Assets() {
		assert.Equal(t, strings.ToUpper(string(a.Symbol)), string(a.Symbol))
		assert.NotEmpty(t, a.Name)
		assert.NotEmpty(t, a.Category)
	}
}

func TestNewAllowList_CanonicalizesAndDedups(t *testing.T) {
	l := NewAllowList([]Asset{
		{Symbol: "abc", Name: "first", Category: CategoryEquity},
		{Symbol: "ABC", Name: "second", Category: CategoryBond},
	})
	require.Equal(t, 1, l.Len())
	assert.Equal(t, "first", l.Assets()[0].Name)
	assert.True(t, l.Contains("Abc"))
}

func TestAssets_ReturnsCopy(t *testing.T) {
	l := Default()
	a := l.Assets()
	a[0].Symbol = "HACK"
	assert.False(t, l.Contains("HACK"))
	assert.Equal(t, Symbol("BTC"), l.Symbols()[0])
}
