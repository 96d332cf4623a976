package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Niveles de Notice.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice mensaje corto para el operador (los "toasts" de la consola).
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// SuccessNotice construye un Notice de éxito.
func SuccessNotice(msg string) Notice { return Notice{Level: NoticeSuccess, Message: msg} }

// ErrorNotice construye un Notice de error.
func ErrorNotice(msg string) Notice { return Notice{Level: NoticeError, Message: msg} }

// ActionResponse respuesta de una acción que muta datos.
type ActionResponse struct {
	ID      string   `json:"id,omitempty"`
	Notices []Notice `json:"notices"`
}

// Option entrada de un select del front.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
