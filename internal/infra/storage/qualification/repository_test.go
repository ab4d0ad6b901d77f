package qualification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectByIDQuery(t *testing.T) {
	query, args, err := selectByIDQuery(2).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, name, coefficient FROM qualifications WHERE id = $1", query)
	assert.Equal(t, []interface{}{int64(2)}, args)
}
