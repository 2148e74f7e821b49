package errorc

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"relman/pkg/core/consts"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	enableFullStack = true
	stackBufferPool = sync.Pool{
		New: func() interface{} {
			return make([]byte, 4096)
		},
	}
)

// ErrorBuilder 按组件名构造错误，Entry 用于日志定位
type ErrorBuilder struct {
	entryName string
}

func NewErrorBuilder(entryName string) *ErrorBuilder {
	return &ErrorBuilder{entryName: entryName}
}

func (e *ErrorBuilder) New(msg string, err error) *Error {
	stack := caller(2)
	stack.Msg = msg
	stack.Cause = err
	stack.Entry = e.entryName
	stack.ErrorCode = getErrCode(err)
	return stack
}

// New err 或 msg 可以为空
func New(msg string, err error) *Error {
	stack := caller(2)
	stack.Msg = msg
	stack.Cause = err
	stack.ErrorCode = getErrCode(err)
	return stack
}

func (e *ErrorBuilder) NotFound(msg string) *Error {
	stack := caller(2)
	stack.Msg = msg
	stack.Entry = e.entryName
	stack.ErrorCode = ErrorCodeNotFound
	return stack
}

func (e *ErrorBuilder) BadRequest(msg string) *Error {
	stack := caller(2)
	stack.Msg = msg
	stack.Entry = e.entryName
	stack.ErrorCode = ErrorCodeValid
	return stack
}

func (e *ErrorBuilder) Forbidden(msg string) *Error {
	stack := caller(2)
	stack.Msg = msg
	stack.Entry = e.entryName
	stack.ErrorCode = ErrorCodeForbidden
	return stack
}

func (e *Error) WithTraceID(ctx context.Context) *Error {
	if ctx == nil {
		return e
	}
	if traceID, ok := ctx.Value(consts.TraceKey).(string); ok {
		e.TraceID = traceID
	}
	return e
}

func (e *Error) WithCode(code *ErrorCode) *Error {
	e.ErrorCode = code
	return e
}

// DB 数据库错误；记录不存在时保留 404
func (e *Error) DB() *Error {
	if e.ErrorCode == ErrorCodeNotFound {
		return e
	}
	e.ErrorCode = ErrorCodeDB
	return e
}

func (e *Error) Third() *Error {
	e.ErrorCode = ErrorCodeThird
	return e
}

func (e *Error) ValidWithCtx() *Error {
	e.ErrorCode = ErrorCodeValid
	return e
}

func (e *Error) NoAuth() *Error {
	e.ErrorCode = ErrorCodeNoAuth
	return e
}

func (e *Error) Forbidden() *Error {
	e.ErrorCode = ErrorCodeForbidden
	return e
}

func (e *Error) NotFound() *Error {
	e.ErrorCode = ErrorCodeNotFound
	return e
}

// chain 返回从外到内的 *Error 链
func (e *Error) chain() []*Error {
	var list []*Error
	for curr := e; curr != nil; {
		list = append(list, curr)
		next, ok := curr.Cause.(*Error)
		if !ok {
			break
		}
		curr = next
	}
	return list
}

// root 找到最内层包装了非 *Error 的错误，找不到就取链尾
func (e *Error) root() (*Error, error) {
	list := e.chain()
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Cause != nil {
			return list[i], list[i].Cause
		}
	}
	last := list[len(list)-1]
	return last, last.Cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	rootCause, original := e.root()

	var sb strings.Builder
	sb.WriteString("========================= Root Cause =========================\n")
	if original != nil {
		sb.WriteString(fmt.Sprintf("Error: %s\n", original.Error()))
	}
	if rootCause.FileName != "" {
		sb.WriteString(fmt.Sprintf("Location: %s:%d\n", rootCause.FileName, rootCause.Line))
	}
	if rootCause.Msg != "" {
		sb.WriteString(fmt.Sprintf("Message: %s\n", rootCause.Msg))
	}
	if rootCause.TraceID != "" {
		sb.WriteString(fmt.Sprintf("Trace ID: %s\n", rootCause.TraceID))
	}

	sb.WriteString("\n======================= Full Error Trace =======================\n")
	for i, err := range e.chain() {
		sb.WriteString(fmt.Sprintf("%d: ", i+1))
		if err.ErrorCode != nil {
			sb.WriteString(fmt.Sprintf("[%s] ", err.ErrorCode.String()))
		}
		sb.WriteString(err.Msg)
		if err.FileName != "" {
			sb.WriteString(fmt.Sprintf("\n   at %s:%d", err.FileName, err.Line))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("==============================================================\n")
	return sb.String()
}

// RootCause 简短的根因描述，返回给调用方
func (e *Error) RootCause() string {
	if e == nil {
		return ""
	}
	rootCause, original := e.root()
	msg := rootCause.Msg
	if original != nil {
		if msg == "" {
			return original.Error()
		}
		return msg + ": " + original.Error()
	}
	if msg == "" {
		return e.Msg
	}
	return msg
}

// Message 链上第一个非空的 Msg
func (e *Error) Message() string {
	for _, err := range e.chain() {
		if err.Msg != "" {
			return err.Msg
		}
	}
	return e.RootCause()
}

func (e *Error) ToLog(log *logrus.Entry, msgs ...string) *Error {
	if e == nil {
		return nil
	}
	rootCause, original := e.root()

	fields := logrus.Fields{
		"root_cause_file": rootCause.FileName,
		"root_cause_line": rootCause.Line,
		"root_cause_func": rootCause.FuncName,
		"root_cause_msg":  rootCause.Msg,
	}
	if original != nil {
		fields["root_cause_original_error"] = original.Error()
	}
	if rootCause.ErrorCode != nil {
		fields["root_cause_error_code"] = rootCause.ErrorCode.String()
	}

	chain := make([]map[string]interface{}, 0)
	for _, err := range e.chain() {
		level := map[string]interface{}{
			"file": err.FileName,
			"line": err.Line,
			"func": err.FuncName,
			"msg":  err.Msg,
		}
		if err.ErrorCode != nil {
			level["code"] = err.ErrorCode.String()
		}
		if err == e && enableFullStack {
			if stack := err.fullStack(); stack != "" {
				level["stack_trace"] = stack
			}
		}
		chain = append(chain, level)
	}
	fields["error_chain"] = chain
	if e.TraceID != "" {
		fields["trace_id"] = e.TraceID
	}

	finalMsg := e.Msg
	if len(msgs) > 0 {
		finalMsg = strings.Join(msgs, ", ")
	}
	log.WithFields(fields).Error(finalMsg)
	return e
}

func caller(skip int) *Error {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return &Error{FileName: "<unknown>", FuncName: "<unknown>"}
	}
	funcName := "<unknown>"
	if details := runtime.FuncForPC(pc); details != nil {
		funcName = details.Name()
	}
	return &Error{FileName: file, Line: line, FuncName: funcName}
}

func (e *Error) fullStack() string {
	if e.Stack != "" || !enableFullStack {
		return e.Stack
	}
	buf := stackBufferPool.Get().([]byte)
	defer stackBufferPool.Put(buf)
	n := runtime.Stack(buf, false)
	e.Stack = string(buf[:n])
	return e.Stack
}

// SetStackTraceEnabled 控制是否记录完整堆栈
func SetStackTraceEnabled(enabled bool) {
	enableFullStack = enabled
}

var notfounds = []error{gorm.ErrRecordNotFound}

func getErrCode(err error) *ErrorCode {
	if err == nil {
		return ErrorCodeUnknown
	}
	var e *Error
	if errors.As(err, &e) && e.ErrorCode != nil {
		return e.ErrorCode
	}
	for _, target := range notfounds {
		if errors.Is(err, target) {
			return ErrorCodeNotFound
		}
	}
	return ErrorCodeUnknown
}

func ParseError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Cause: err, ErrorCode: getErrCode(err)}
}

func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) && e.ErrorCode == ErrorCodeNotFound {
		return true
	}
	for _, target := range notfounds {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
