package errorc

import (
	"fmt"
	"net/http"
)

type Error struct {
	*ErrorCode
	Msg      string
	Cause    error  `json:"-"`
	Stack    string `json:"-"`
	TraceID  string `json:"traceId,omitempty"`
	Entry    string `json:"-"`
	FileName string `json:"-"`
	Line     int    `json:"-"`
	FuncName string `json:"-"`
}

// Unwrap 支持 errors.Is / errors.As 沿 Cause 链查找
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

type ErrorCode struct {
	Code int
	Name string
}

func (c *ErrorCode) String() string {
	return fmt.Sprintf("%d: %s", c.Code, c.Name)
}

// HTTPStatus 错误码对应的 HTTP 状态码
func (c *ErrorCode) HTTPStatus() int {
	if c == nil {
		return http.StatusInternalServerError
	}
	switch c.Code {
	case 400, 401, 403, 404, 503:
		return c.Code
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrorCodeUnknown     = &ErrorCode{500, "Unknown"}
	ErrorCodeDB          = &ErrorCode{501, "DB"}
	ErrorCodeThird       = &ErrorCode{502, "Third"}
	ErrorCodeValid       = &ErrorCode{400, "ValidWithCtx"}
	ErrorCodeNoAuth      = &ErrorCode{401, "Unauthenticated"}
	ErrorCodeForbidden   = &ErrorCode{403, "Forbidden"}
	ErrorCodeNotFound    = &ErrorCode{404, "NotFound"}
	ErrorCodeUnavailable = &ErrorCode{503, "Unavailable"}
	ErrorCodeInternal    = &ErrorCode{500, "InternalError"}
)
