package repository

import "errors"

// Sentinel errors returned by repository implementations. Usecases map
// these onto the user-facing error taxonomy.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrChatRoomNotFound = errors.New("chat room not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
)
