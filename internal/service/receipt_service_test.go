package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jandervidros/internal/apperror"
	"jandervidros/internal/dto"
	"jandervidros/internal/infra"
	"jandervidros/internal/service"
)

func TestReceiptService_RendersPDFs(t *testing.T) {
	ctx := context.Background()
	txRepo := newStubTransactionRepo()
	soRepo := newStubServiceOrderRepo()
	receipts := service.NewReceiptService(txRepo, soRepo, infra.NewReceipt("JANDER VIDROS"))

	txID, err := service.NewTransactionService(txRepo, nil).Create(ctx, janeSaleRequest())
	require.NoError(t, err)
	soID, err := service.NewServiceOrderService(soRepo).Create(ctx, dto.ServiceOrderRequest{
		ClientName: "João", Description: strPtr("Instalação de box"), Value: decPtr("350"), Date: "2024-04-10",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, receipts.TransactionReceipt(ctx, txID, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, receipts.ServiceReceipt(ctx, soID, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	assert.True(t, apperror.IsNotFound(receipts.TransactionReceipt(ctx, 99, &buf)))
	assert.True(t, apperror.IsNotFound(receipts.ServiceReceipt(ctx, 99, &buf)))
}
