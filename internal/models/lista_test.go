package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListaContem(t *testing.T) {
	l := Lista{"P1", "P2"}
	assert.True(t, l.Contem("P1"))
	assert.False(t, l.Contem("P3"))
	assert.False(t, Lista(nil).Contem("P1"))
}

func TestListaScan(t *testing.T) {
	var l Lista
	require.NoError(t, l.Scan(`["P1","P2"]`))
	assert.Equal(t, Lista{"P1", "P2"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)
}

func TestListaValue(t *testing.T) {
	v, err := Lista{"P1"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["P1"]`, v)

	v, err = Lista(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
