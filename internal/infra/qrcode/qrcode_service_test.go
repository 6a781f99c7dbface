package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoiceQR(t *testing.T) {
	t.Parallel()

	svc := NewQRCodeService(256, "M")

	png, err := svc.GenerateInvoiceQR("INV-20260830-abcd1234")

	require.NoError(t, err)
	require.NotEmpty(t, png)
	// PNG signature
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])
}

func TestGenerateInvoiceQR_UnknownLevelDefaultsToMedium(t *testing.T) {
	t.Parallel()

	svc := NewQRCodeService(128, "X")

	png, err := svc.GenerateInvoiceQR("INV-1")

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
