package common

import (
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringList(t *testing.T) {
	assert.Equal(t, StringList{"A", "B"}, ParseStringList(",A,, B ,"))
	assert.Equal(t, StringList{}, ParseStringList(""))
}

func TestStringList_Append(t *testing.T) {
	merged := StringList{"A"}.Append(StringList{"", "B"})
	assert.Equal(t, "A,B", merged.String())

	merged = StringList{}.Append(StringList{"B"})
	assert.Equal(t, "B", merged.String())
}

func TestStringList_ScanValue(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte("1.0,1.1")))
	assert.Equal(t, StringList{"1.0", "1.1"}, l)

	v, err := l.Value()
	require.NoError(t, err)
	assert.Equal(t, "1.0,1.1", v)

	require.NoError(t, l.Scan(nil))
	assert.Empty(t, l)
	assert.Error(t, l.Scan(12))
}

func TestStringList_JSON(t *testing.T) {
	var body struct {
		Sqlno StringList `json:"sqlno"`
		Pckno StringList `json:"pckno"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"sqlno":"a,b","pckno":["c","","d"]}`), &body))
	assert.Equal(t, StringList{"a", "b"}, body.Sqlno)
	assert.Equal(t, StringList{"c", "d"}, body.Pckno)

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sqlno":"a,b","pckno":"c,d"}`, string(out))
}

func TestParseIDList(t *testing.T) {
	l, err := ParseIDList("[1,2,3]")
	require.NoError(t, err)
	assert.Equal(t, IDList{1, 2, 3}, l)

	l, err = ParseIDList("7")
	require.NoError(t, err)
	assert.Equal(t, IDList{7}, l)

	_, err = ParseIDList("1,x")
	assert.Error(t, err)
}

func TestIDList_Distinct(t *testing.T) {
	assert.Equal(t, IDList{3, 1, 2}, IDList{3, 1, 3, 2, 1}.Distinct())
	assert.True(t, IDList{1, 2}.Contains(2))
	assert.False(t, IDList{1, 2}.Contains(5))
}

func TestIDList_JSON(t *testing.T) {
	var body struct {
		Blineno IDList `json:"blineno"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"blineno":"4,5"}`), &body))
	assert.Equal(t, IDList{4, 5}, body.Blineno)
	require.NoError(t, json.Unmarshal([]byte(`{"blineno":[6,7]}`), &body))
	assert.Equal(t, IDList{6, 7}, body.Blineno)

	v, err := body.Blineno.Value()
	require.NoError(t, err)
	assert.Equal(t, "6,7", v)
}
