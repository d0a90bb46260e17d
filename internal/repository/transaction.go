package repository

import (
	"database/sql"
	"fmt"
)

// transactionManager implements TransactionManager
type transactionManager struct {
	db *sql.DB
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(db *sql.DB) TransactionManager {
	return &transactionManager{db: db}
}

// WithTransaction executes a function within a database transaction. The
// conversion orchestrator relies on this for its all-or-nothing guarantee:
// any error from fn rolls back every write made through the supplied repos.
func (tm *transactionManager) WithTransaction(fn func(repos *Repositories) error) error {
	tx, err := tm.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	repos := newRepositories(dbExecutor(tx), tm)

	err = fn(repos)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("transaction failed: %v, rollback failed: %w", err, rollbackErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// dbExecutor is an interface that both *sql.DB and *sql.Tx implement
type dbExecutor interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func newRepositories(db dbExecutor, tx TransactionManager) *Repositories {
	return &Repositories{
		Lead:        NewLeadRepository(db),
		Prospect:    NewProspectRepository(db),
		Account:     NewAccountRepository(db),
		Contact:     NewContactRepository(db),
		Opportunity: NewOpportunityRepository(db),
		Campaign:    NewCampaignRepository(db),
		Insight:     NewInsightRepository(db),
		Approval:    NewApprovalRepository(db),
		User:        NewUserRepository(db),
		Tx:          tx,
	}
}

// NewRepositories creates a new repository collection
func NewRepositories(db *sql.DB) *Repositories {
	return newRepositories(dbExecutor(db), NewTransactionManager(db))
}
