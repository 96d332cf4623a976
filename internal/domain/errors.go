package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los mensajes son los que ve el operador de la consola.
var (
	ErrNotFound          = errors.New("registro não encontrado")
	ErrInvalidInput      = errors.New("dados inválidos")
	ErrDuplicate         = errors.New("já existe um registro com esse código")
	ErrUnauthorized      = errors.New("não autorizado")
	ErrConflict          = errors.New("o estoque foi alterado por outra operação, recarregue e tente novamente")
	ErrInsufficientStock = errors.New("estoque insuficiente para realizar a saída")
	ErrGateway           = errors.New("falha na comunicação com o serviço de dados")
)
