package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// ErrUnauthorized will throw if the caller holds no right for the action
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrAlreadyListed will throw if the token already has an active listing
	ErrAlreadyListed = errors.New("Already Listed")
	// ErrNotListed will throw if no listing exists for the token
	ErrNotListed = errors.New("Not Listed")
	// ErrInvalidPrice will throw if the listing price is not positive
	ErrInvalidPrice = errors.New("Invalid Price")
	// ErrUnsupportedDenom will throw if the denom differs from the settlement denom
	ErrUnsupportedDenom = errors.New("Unsupported Denom")
	// ErrExpiryInPast will throw if the listing expiry is not beyond the current height
	ErrExpiryInPast = errors.New("Expiry in Past")
	// ErrExpiryTooShort will throw if the listing expiry is inside the minimum window
	ErrExpiryTooShort = errors.New("Expiry Too Short")
	// ErrExpiryTooLong will throw if the listing expiry is beyond the maximum window
	ErrExpiryTooLong = errors.New("Expiry Too Long")
	// ErrExpired will throw if a listing, approval or delegation has lapsed
	ErrExpired = errors.New("Expired")
	// ErrInvalidFunds will throw if submitted funds do not match the listing price exactly
	ErrInvalidFunds = errors.New("Invalid Funds")

	// ErrInvalidIdentity will throw if a principal identity is malformed
	ErrInvalidIdentity = errors.New("Invalid identity")
)
