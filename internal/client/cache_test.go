package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mutar o slice devolvido por Snapshot não pode alterar o snapshot
// publicado: a imutabilidade é estrutural, não convenção.
func TestCache_SnapshotIsolado(t *testing.T) {
	cache := NewCache()
	cache.Replace([]ItemLocal{{LocalID: "a", RascunhoAtendimento: "original"}})

	snap := cache.Snapshot()
	require.Len(t, snap, 1)
	snap[0].RascunhoAtendimento = "mudado por fora"

	assert.Equal(t, "original", cache.Snapshot()[0].RascunhoAtendimento)
}

// Mutar o slice passado a Replace depois da publicação também não
// vaza para o cache.
func TestCache_ReplaceCopiaEntrada(t *testing.T) {
	cache := NewCache()

	itens := []ItemLocal{{LocalID: "b"}}
	cache.Replace(itens)
	itens[0].LocalID = "mudado por fora"

	assert.Equal(t, "b", cache.Snapshot()[0].LocalID)
}
