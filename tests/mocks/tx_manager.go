package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// TxManager runs the function directly with a nil executor. Repository mocks
// match on the executor with mock.Anything, so unit tests exercise service
// transaction bodies without a database.
type TxManager struct{}

func (m *TxManager) RunInTx(ctx context.Context, fn func(tx sqlx.ExtContext) error) error {
	return fn(nil)
}
