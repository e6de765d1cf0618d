package registration

import "fmt"

type ErrorReason string

const (
	REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL ErrorReason = "FAILED_TO_TRANSLATE_TO_DB_MODEL"
	REASON_FAILED_TO_WRITE                 ErrorReason = "FAILED_TO_WRITE"
	REASON_REGISTRATION_DOES_NOT_EXIST     ErrorReason = "REGISTRATION_DOES_NOT_EXIST"
	REASON_REGISTRATION_ALREADY_EXISTS     ErrorReason = "REGISTRATION_ALREADY_EXISTS"
	REASON_FAILED_TO_FETCH                 ErrorReason = "FAILED_TO_FETCH"
	REASON_VERSION_CONFLICT                ErrorReason = "VERSION_CONFLICT"
	REASON_TIMEOUT                         ErrorReason = "TIMEOUT"
	REASON_INVALID_CHECKOUT_TYPE           ErrorReason = "INVALID_CHECKOUT_TYPE"
	REASON_INVALID_DONATION_AMOUNT         ErrorReason = "INVALID_DONATION_AMOUNT"
	REASON_PAYMENT_PROCESSOR_FAILURE       ErrorReason = "PAYMENT_PROCESSOR_FAILURE"
	REASON_PAYMENT_NOT_COMPLETED           ErrorReason = "PAYMENT_NOT_COMPLETED"
	REASON_RELAY_FAILED                    ErrorReason = "RELAY_FAILED"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newRegistrationError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewFailedToWriteError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_WRITE, message, cause)
}

func NewFailedToTranslateToDBModelError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL, message, cause)
}

func NewRegistrationAlreadyExistsError(message string, cause error) *Error {
	return newRegistrationError(REASON_REGISTRATION_ALREADY_EXISTS, message, cause)
}

func NewRegistrationDoesNotExistsError(message string, cause error) *Error {
	return newRegistrationError(REASON_REGISTRATION_DOES_NOT_EXIST, message, cause)
}

func NewFailedToFetchError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_FETCH, message, cause)
}

func NewVersionConflictError(message string, cause error) *Error {
	return newRegistrationError(REASON_VERSION_CONFLICT, message, cause)
}

func NewTimeoutError(message string) *Error {
	return newRegistrationError(REASON_TIMEOUT, message, nil)
}

func NewInvalidCheckoutTypeError(tier Tier) *Error {
	return newRegistrationError(REASON_INVALID_CHECKOUT_TYPE, fmt.Sprintf("Checkout type %q is not a purchasable tier", tier), nil)
}

func NewInvalidDonationAmountError(amount float64) *Error {
	return newRegistrationError(REASON_INVALID_DONATION_AMOUNT, fmt.Sprintf("Donation amount %g cannot be charged", amount), nil)
}

func NewPaymentProcessorFailureError(message string, cause error) *Error {
	return newRegistrationError(REASON_PAYMENT_PROCESSOR_FAILURE, message, cause)
}

func NewPaymentNotCompletedError(sessionId string, status PaymentStatus) *Error {
	return newRegistrationError(REASON_PAYMENT_NOT_COMPLETED, fmt.Sprintf("Session %q has payment status %q", sessionId, status), nil)
}

func NewRelayFailedError(message string, cause error) *Error {
	return newRegistrationError(REASON_RELAY_FAILED, message, cause)
}
