package models

import (
	"errors"
	"fmt"
)

// ErrNaoEncontrado indica que a solicitação pedida não existe.
var ErrNaoEncontrado = errors.New("solicitação não encontrada")

// ErrCredenciaisInvalidas indica falha de autenticação no login.
var ErrCredenciaisInvalidas = errors.New("login ou senha inválidos")

// ValidationError descreve um campo malformado ou ausente na requisição.
// A requisição é rejeitada sem nenhuma mudança de estado.
type ValidationError struct {
	Campo  string
	Motivo string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campo %q inválido: %s", e.Campo, e.Motivo)
}
