package fetch_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/leaguedash/internal/fetch"
)

func TestParseTable_HeaderInference(t *testing.T) {
	input := "player,position,ppg\nJosh Allen,QB,24.1\nDerrick Henry,RB,18.5\n"

	table, err := fetch.ParseTable(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"player", "position", "ppg"}, table.Headers)
	require.Len(t, table.Records, 2)
	assert.Equal(t, "Josh Allen", table.Records[0]["player"])
	assert.Equal(t, 24.1, table.Records[0]["ppg"])
}

func TestParseTable_TypeCoercion(t *testing.T) {
	input := "name,value,note\nalpha,12,ok\nbeta,-3.5,\n"

	table, err := fetch.ParseTable(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 12.0, table.Records[0]["value"])
	assert.Equal(t, -3.5, table.Records[1]["value"])
	assert.Equal(t, "ok", table.Records[0]["note"])
	assert.Nil(t, table.Records[1]["note"], "empty fields become nil")
}

func TestParseTable_EmptyBody(t *testing.T) {
	_, err := fetch.ParseTable(strings.NewReader(""))
	assert.Error(t, err, "missing header row is a parse failure")
}
