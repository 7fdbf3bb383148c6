package usecase

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind はエラーの種類（HandlerがHTTPステータスに変換する）
type Kind string

const (
	KindInternal          Kind = "INTERNAL"
	KindNotFound          Kind = "NOT_FOUND"
	KindInvalidArgument   Kind = "INVALID_ARGUMENT"
	KindConflict          Kind = "CONFLICT"
	KindEmptyCart         Kind = "EMPTY_CART"
	KindSettlementFailure Kind = "SETTLEMENT_FAILURE"
	KindUnauthorized      Kind = "UNAUTHORIZED"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError はcauseを保持したまま種類を付ける
func WrapError(kind Kind, err error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// KindOf は一番外側の種類。*Errorでなければ INTERNAL
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return KindInternal
}

// IsKind はチェーンのどこかにkindがあればtrue
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// repositoryのエラーはINTERNALにまとめる（*Errorはそのまま）
func internal(err error, op string) error {
	if _, ok := AsError(err); ok {
		return err
	}
	return WrapError(KindInternal, err, "%s", op)
}
