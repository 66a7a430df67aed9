package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fr76/bankledger/internal/domain"
	"github.com/fr76/bankledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
// The transactions table is append-only: there is no update or delete.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a ledger transaction inside the operation's database
// transaction, so it commits or rolls back together with the balance write.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (id, type, amount, account_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := pgxTx.Exec(ctx, query,
		transaction.ID,
		string(transaction.Type),
		decimalToNumeric(transaction.Amount),
		transaction.AccountID,
		timeToPgTimestamptz(transaction.CreatedAt),
	)

	return err
}

// ListByAccount lists an account's transactions, most recent first. Ties on
// created_at break by id so the order is stable.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, filter domain.TransactionFilter, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, type, amount, account_id, created_at
		FROM transactions
		WHERE account_id = $1
	`

	args := []any{accountID}

	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}

	if !filter.StartDate.IsZero() {
		args = append(args, timeToPgTimestamptz(filter.StartDate))
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}

	if !filter.EndDate.IsZero() {
		args = append(args, timeToPgTimestamptz(filter.EndDate))
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction

	for rows.Next() {
		var (
			transaction domain.Transaction
			txType      string
			amount      pgtype.Numeric
			createdAt   pgtype.Timestamptz
		)

		err := rows.Scan(
			&transaction.ID,
			&txType,
			&amount,
			&transaction.AccountID,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		transaction.Type = domain.TransactionType(txType)
		transaction.Amount = numericToDecimal(amount)
		transaction.CreatedAt = createdAt.Time

		transactions = append(transactions, &transaction)
	}

	return transactions, rows.Err()
}
