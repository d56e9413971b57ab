package client

import (
	"sync"

	"github.com/lucasmalaguti/CortaPau/backend/internal/models"
)

// MidiaPendente é uma foto tirada no aparelho e ainda não enviada
// para /uploads/base64. Só existe no cache local.
type MidiaPendente struct {
	Dados []byte
	Mime  string
}

// ItemLocal embrulha uma solicitação do servidor junto com o estado
// que só o cliente conhece. O servidor sempre vence nos campos dele;
// os campos locais sobrevivem à reconciliação enquanto o item existir
// no servidor.
type ItemLocal struct {
	// LocalID é o identificador estável do lado do cliente, cunhado
	// uma vez e reaproveitado a cada passo de reconciliação. Permite
	// endereçar itens criados localmente antes do id canônico existir.
	LocalID string

	Solicitacao models.Solicitacao
	Eventos     []models.Evento

	// MinhaSolicitacao marca se o item pertence ao ator atual.
	MinhaSolicitacao bool

	// Campos exclusivamente locais, preservados pela allowlist da
	// reconciliação.
	RascunhoAtendimento    string
	RascunhoEncaminhamento string
	MidiasPendentes        []MidiaPendente
}

// Cache guarda o snapshot corrente de itens. A coleção só muda por
// substituição atômica do snapshot inteiro: nenhum observador vê um
// passo de reconciliação pela metade, e um passo abandonado não toca
// o que já foi publicado.
type Cache struct {
	mu    sync.RWMutex
	itens []ItemLocal
}

func NewCache() *Cache {
	return &Cache{}
}

// Snapshot devolve uma cópia da coleção corrente. Quem chama pode
// alterar os itens devolvidos sem afetar o snapshot publicado.
func (c *Cache) Snapshot() []ItemLocal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	itens := make([]ItemLocal, len(c.itens))
	copy(itens, c.itens)
	return itens
}

// Replace publica uma nova coleção completa, descartando a anterior.
// A coleção é copiada na entrada: mutações posteriores no slice de
// quem chamou não vazam para o snapshot publicado. Itens que o
// servidor deixou de reportar somem junto com seus campos locais.
func (c *Cache) Replace(itens []ItemLocal) {
	copia := make([]ItemLocal, len(itens))
	copy(copia, itens)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.itens = copia
}
