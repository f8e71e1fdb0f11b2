package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeInvalidInput        ErrorCode = "INVALID_INPUT"
	ErrCodeInsufficientStake   ErrorCode = "INSUFFICIENT_STAKE"
	ErrCodeInsufficientPayment ErrorCode = "INSUFFICIENT_PAYMENT"
	ErrCodeRateLimited         ErrorCode = "RATE_LIMITED"
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrCodeNotOwner            ErrorCode = "NOT_OWNER"
	ErrCodeNotApproved         ErrorCode = "NOT_APPROVED"
	ErrCodeInvalidState        ErrorCode = "INVALID_STATE"
	ErrCodeNotVerified         ErrorCode = "NOT_VERIFIED"
	ErrCodeNotRefundable       ErrorCode = "NOT_REFUNDABLE"
	ErrCodeAlreadyEvaluated    ErrorCode = "ALREADY_EVALUATED"
	ErrCodeAlreadyRegistered   ErrorCode = "ALREADY_REGISTERED"
	ErrCodeNotRegistered       ErrorCode = "NOT_REGISTERED"
	ErrCodeNotEvaluated        ErrorCode = "NOT_EVALUATED"
	ErrCodeInvalidScore        ErrorCode = "INVALID_SCORE"
	ErrCodeScoreTooHigh        ErrorCode = "SCORE_TOO_HIGH"
	ErrCodeTimeoutNotReached   ErrorCode = "TIMEOUT_NOT_REACHED"
	ErrCodeNothingToWithdraw   ErrorCode = "NOTHING_TO_WITHDRAW"
	ErrCodeTransferFailed      ErrorCode = "TRANSFER_FAILED"
	ErrCodeReentrantCall       ErrorCode = "REENTRANT_CALL"
	ErrCodePaused              ErrorCode = "PAUSED"
	ErrCodeRejected            ErrorCode = "REJECTED"
	ErrCodeInvalidAgent        ErrorCode = "INVALID_AGENT"
	ErrCodeInvalidAddress      ErrorCode = "INVALID_ADDRESS"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is позволяет сравнивать через errors.Is по коду ошибки.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeNotOwner, ErrCodeNotApproved, ErrCodeRejected:
		return http.StatusForbidden
	case ErrCodeInvalidInput, ErrCodeInvalidScore, ErrCodeInvalidAgent, ErrCodeInvalidAddress:
		return http.StatusBadRequest
	case ErrCodeInsufficientStake, ErrCodeInsufficientPayment:
		return http.StatusPaymentRequired
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeInvalidState, ErrCodeNotVerified, ErrCodeNotRefundable,
		ErrCodeAlreadyEvaluated, ErrCodeAlreadyRegistered, ErrCodeNotRegistered,
		ErrCodeNotEvaluated, ErrCodeScoreTooHigh, ErrCodeTimeoutNotReached,
		ErrCodeNothingToWithdraw, ErrCodeReentrantCall, ErrCodeTransferFailed:
		return http.StatusConflict
	case ErrCodePaused:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код AppError или ErrCodeInternal для прочих ошибок.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// Ошибки эскроу-ядра. Сообщения отдаются клиенту как есть.
var (
	ErrInvalidInput        = New(ErrCodeInvalidInput, "некорректные входные данные")
	ErrInsufficientStake   = New(ErrCodeInsufficientStake, "залог меньше минимального")
	ErrInsufficientPayment = New(ErrCodeInsufficientPayment, "оплата меньше стоимости доступа")
	ErrRateLimited         = New(ErrCodeRateLimited, "превышен лимит заявок для отправителя")
	ErrSubmissionNotFound  = New(ErrCodeNotFound, "заявка не найдена")
	ErrUnauthorized        = New(ErrCodeUnauthorized, "нет прав на выполнение операции")
	ErrNotOwner            = New(ErrCodeNotOwner, "операция доступна только владельцу")
	ErrNotApproved         = New(ErrCodeNotApproved, "журналист не одобрен агентом")
	ErrInvalidState        = New(ErrCodeInvalidState, "недопустимый статус заявки для операции")
	ErrNotVerified         = New(ErrCodeNotVerified, "заявка не прошла проверку")
	ErrNotRefundable       = New(ErrCodeNotRefundable, "возврат возможен только после оплаты доступа")
	ErrAlreadyEvaluated    = New(ErrCodeAlreadyEvaluated, "оценка уже записана")
	ErrAlreadyRegistered   = New(ErrCodeAlreadyRegistered, "журналист уже зарегистрирован")
	ErrNotRegistered       = New(ErrCodeNotRegistered, "журналист не зарегистрирован")
	ErrNotEvaluated        = New(ErrCodeNotEvaluated, "заявка ещё не оценена")
	ErrInvalidScore        = New(ErrCodeInvalidScore, "оценка должна быть в диапазоне 0..100")
	ErrScoreTooHigh        = New(ErrCodeScoreTooHigh, "оценка выше порога, штраф невозможен")
	ErrTimeoutNotReached   = New(ErrCodeTimeoutNotReached, "срок ожидания ещё не истёк")
	ErrNothingToWithdraw   = New(ErrCodeNothingToWithdraw, "нет средств для вывода")
	ErrTransferFailed      = New(ErrCodeTransferFailed, "перевод средств не выполнен")
	ErrReentrantCall       = New(ErrCodeReentrantCall, "повторный вход в защищённую операцию")
	ErrPaused              = New(ErrCodePaused, "сервис приостановлен")
	ErrRejected            = New(ErrCodeRejected, "перевод без операции отклонён")
	ErrInvalidAgent        = New(ErrCodeInvalidAgent, "идентификатор агента не задан")
	ErrInvalidAddress      = New(ErrCodeInvalidAddress, "нулевой идентификатор недопустим")
)
