package model

import "errors"

// DomainError typed error surfaced to callers as a client failure
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Code + ": " + e.Message
}

var (
	ErrPositionNotFound          = &DomainError{Code: "POSITION_NOT_FOUND", Message: "position not found"}
	ErrPositionInvalidQuantity   = &DomainError{Code: "POSITION_INVALID_QUANTITY", Message: "quantity must be positive"}
	ErrPositionQuantityNotEnough = &DomainError{Code: "POSITION_QUANTITY_NOT_ENOUGH", Message: "quantity exceeds position size"}
	ErrNotEnoughBalance          = &DomainError{Code: "NOT_ENOUGH_BALANCE", Message: "not enough balance"}
	ErrUpdatePositionNotValid    = &DomainError{Code: "PARAMS_UPDATE_POSITION_NOT_VALID", Message: "take profit / stop loss params not valid"}
	ErrRemoveTpSlNotValid        = &DomainError{Code: "PARAMS_REMOVE_TP_SL_POSITION_NOT_VALID", Message: "exactly one of take profit or stop loss order id is required"}
	ErrOrderPriceValidationFail  = &DomainError{Code: "ORDER_PRICE_VALIDATION_FAIL", Message: "order price out of allowed range"}
	ErrAccountHasNoPosition      = &DomainError{Code: "ACCOUNT_HAS_NO_POSITION", Message: "account has no position"}
	ErrOrderNotFound             = &DomainError{Code: "ORDER_NOT_FOUND", Message: "order not found"}
	ErrMarginModeNotIsolated     = &DomainError{Code: "POSITION_MARGIN_MODE_NOT_ISOLATED", Message: "margin can only be adjusted on isolated positions"}
	ErrTimeout                   = &DomainError{Code: "REQUEST_TIMEOUT", Message: "request timed out"}
)

// CodeOf domain code carried by err, empty for non-domain errors
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
