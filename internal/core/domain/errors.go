package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")
var ErrProductNotFound = errors.New("product not found")
var ErrBookingNotFound = errors.New("booking not found")
var ErrReportNotFound = errors.New("report not found")
var ErrDuplicateTransaction = errors.New("transaction already recorded")

// ErrBookingAlreadyPaid rejects a payment for a booking that was finalized
// under a different transaction id. Replays of the original transaction id
// are accepted instead.
var ErrBookingAlreadyPaid = errors.New("booking already paid")

// ErrCascadeIncomplete signals that the payment record was durably appended
// but a later finalization step failed. The sale must be driven forward by
// resubmitting the same transaction id; it is never a lost payment.
var ErrCascadeIncomplete = errors.New("payment recorded but finalization incomplete")
