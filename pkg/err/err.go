package errprocess

import (
	"errors"
	"net/http"

	"football_highlights_service/pkg/logger"

	"go.uber.org/zap"
)

// Kind 錯誤分類
type Kind string

const (
	// InvalidInput 請求內容不合法
	InvalidInput Kind = "InvalidInput"
	// NotFound 找不到來源影片或輸出檔案
	NotFound Kind = "NotFound"
	// ExportFailed 剪輯或合併失敗
	ExportFailed Kind = "ExportFailed"
	// ProbeFailed 讀取影片資訊失敗
	ProbeFailed Kind = "ProbeFailed"
	// Internal 其他錯誤
	Internal Kind = "Internal"
)

// Error typed error carried from usecase to handler
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil || e.Msg == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Set set err info
func Set(kind Kind, errMsg string) error {
	logger.Log.Error(errMsg, zap.String("kind", string(kind)))
	return &Error{Kind: kind, Msg: errMsg}
}

// Wrap set err info with cause
func Wrap(kind Kind, errMsg string, err error) error {
	logger.Log.Error(errMsg, zap.String("kind", string(kind)), zap.Error(err))
	return &Error{Kind: kind, Msg: errMsg, Err: err}
}

// KindOf 取得錯誤分類, 非 *Error 視為 Internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message 取得對外顯示的錯誤訊息
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != ExportFailed && e.Kind != Internal {
		return e.Msg
	}
	return err.Error()
}

// HTTPStatus mapping error kind to http status
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidInput:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
