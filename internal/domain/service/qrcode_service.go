package service

// QRCodeService defines the interface for QR code generation
type QRCodeService interface {
	// GenerateInvoiceQR generates a QR code encoding an invoice reference
	GenerateInvoiceQR(invoiceNumber string) ([]byte, error)
}
