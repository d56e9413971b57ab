package client

import (
	"strings"

	"github.com/lucasmalaguti/CortaPau/backend/internal/models"
)

// Ator é a identidade corrente do aplicativo, obtida no login.
type Ator struct {
	ID    string
	Login string
}

// PertenceAoAtor decide se uma solicitação é do ator atual.
// Duas verificações independentes, qualquer uma basta:
//   - o id canônico do autor bate com o id do ator;
//   - o login/email do autor bate com o do ator, sem distinguir
//     maiúsculas (fallback para quando os ids não estão disponíveis
//     ou não batem).
func PertenceAoAtor(s *models.Solicitacao, ator Ator) bool {
	if ator.ID != "" && s.AutorID == ator.ID {
		return true
	}
	if ator.Login != "" && s.Autor != nil && strings.EqualFold(s.Autor.Login, ator.Login) {
		return true
	}
	return false
}
