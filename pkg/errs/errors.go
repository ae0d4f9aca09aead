package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotLoggedIn    = http.StatusUnauthorized
	ErrStatusNoPermission   = http.StatusForbidden
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusTooManyRequest = http.StatusTooManyRequests
)

var (
	ErrInternalServer      = errors.New("Internal server error")
	ErrClient              = errors.New("Bad request")
	ErrValidation          = errors.New("Validation failed")
	ErrNotLoggedIn         = errors.New("Access token required")
	ErrInvalidToken        = errors.New("Invalid or expired token")
	ErrUnauthorized        = errors.New("Admin access required")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrProductNotFound     = errors.New("Product not found")
	ErrOrderNotFound       = errors.New("Order not found")
	ErrCartNotFound        = errors.New("Cart not found")
	ErrCartItemNotFound    = errors.New("Item not found in cart")
	ErrWishlistNotFound    = errors.New("Wishlist not found")
	ErrUserNotFound        = errors.New("User not found")
	ErrUserAlreadyExists   = errors.New("User with this username or email already exists")
	ErrNotAnImage          = errors.New("Only image files are allowed")
	ErrFileTooLarge        = errors.New("File too large")
	ErrTooManyFiles        = errors.New("Too many files")
	ErrNoFileUploaded      = errors.New("No file uploaded")
	ErrInvalidOrderStatus  = errors.New("Invalid order status")
	ErrInvalidPayment      = errors.New("Invalid payment status")
	ErrRouteNotFound       = errors.New("Route not found")
	ErrRateLimited         = errors.New("Too many requests, please try again later")
	ErrTransactionRollback = errors.New("Order could not be placed")
)

var errorMap = map[error]int{
	ErrInternalServer:      ErrStatusInternalServer,
	ErrClient:              ErrStatusClient,
	ErrValidation:          ErrStatusClient,
	ErrNotLoggedIn:         ErrStatusNotLoggedIn,
	ErrInvalidToken:        ErrStatusNotLoggedIn,
	ErrUnauthorized:        ErrStatusNoPermission,
	ErrInvalidCredentials:  ErrStatusNotLoggedIn,
	ErrProductNotFound:     ErrStatusNotFound,
	ErrOrderNotFound:       ErrStatusNotFound,
	ErrCartNotFound:        ErrStatusNotFound,
	ErrCartItemNotFound:    ErrStatusNotFound,
	ErrWishlistNotFound:    ErrStatusNotFound,
	ErrUserNotFound:        ErrStatusNotFound,
	ErrUserAlreadyExists:   ErrStatusClient,
	ErrNotAnImage:          ErrStatusClient,
	ErrFileTooLarge:        ErrStatusClient,
	ErrTooManyFiles:        ErrStatusClient,
	ErrNoFileUploaded:      ErrStatusClient,
	ErrInvalidOrderStatus:  ErrStatusClient,
	ErrInvalidPayment:      ErrStatusClient,
	ErrRouteNotFound:       ErrStatusNotFound,
	ErrRateLimited:         ErrStatusTooManyRequest,
	ErrTransactionRollback: ErrStatusInternalServer,
}

// GetErrorStatusCode resolves wrapped errors too, so fmt.Errorf("%w: ...")
// keeps the status of the sentinel it wraps.
func GetErrorStatusCode(err error) int {
	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}

	for sentinel, errStatusCode := range errorMap {
		if errors.Is(err, sentinel) {
			return errStatusCode
		}
	}

	return errorMap[ErrInternalServer]
}

// IsKnown reports whether err carries one of the sentinels above and is
// therefore safe to show to the client.
func IsKnown(err error) bool {
	if _, ok := errorMap[err]; ok {
		return true
	}

	for sentinel := range errorMap {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}
