package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringListValueScanRoundTrip(t *testing.T) {
	in := StringList{"purchased_goods", "upstream_transport"}

	v, err := in.Value()
	require.NoError(t, err)
	require.Equal(t, `["purchased_goods","upstream_transport"]`, v)

	var out StringList
	require.NoError(t, out.Scan(v))
	require.Equal(t, in, out)
}

func TestStringListNilValueIsEmptyArray(t *testing.T) {
	var l StringList
	v, err := l.Value()
	require.NoError(t, err)
	require.Equal(t, "[]", v)
}

func TestStringListScanNullColumn(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(nil))
	require.NotNil(t, l)
	require.Empty(t, l)
}

func TestIntListRoundTrip(t *testing.T) {
	in := IntList{3, 14, 15}

	v, err := in.Value()
	require.NoError(t, err)

	var out IntList
	require.NoError(t, out.Scan(v))
	require.Equal(t, in, out)
}

func TestIntListScanBytes(t *testing.T) {
	var l IntList
	require.NoError(t, l.Scan([]byte(`[1,2]`)))
	require.Equal(t, IntList{1, 2}, l)
}

func TestScanRejectsUnsupportedType(t *testing.T) {
	var l StringList
	require.Error(t, l.Scan(42))
}
