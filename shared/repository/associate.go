package repository

import (
	"context"
	"fmt"
	"roost/infras/otel"
	"roost/infras/postgres"
	"roost/shared/constant"
	"roost/shared/failure"
	"roost/shared/logger"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Association describes a many-to-many relation between a primary entity and
// a reference table, e.g. rooms and their amenity tags. One description
// serves every entity/reference pairing in the system.
type Association struct {
	JoinTable     string
	EntityColumn  string
	RefColumn     string
	RefTable      string
	RefPrimary    string
	RefKindColumn string
	RefKind       string
}

// CreateWithRefs creates a primary entity together with its reference
// attachments as a single all-or-nothing unit. Every referenced id is
// resolved up front; only when all of them exist is the primary entity
// inserted and the join rows attached, all inside one transaction. A missing
// id aborts the transaction and surfaces as ReferenceNotFound, leaving
// nothing observable to subsequent reads. An empty id list is valid.
func (assoc Association) CreateWithRefs(ctx context.Context, db *postgres.Connection, otl otel.Otel, entityID string, refIDs []string, insertPrimary func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := otl.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.CreateWithRefs", constant.OtelRepositoryScopeName, assoc.JoinTable))
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", assoc.JoinTable, err)
	}

	committed := false

	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	refIDs = dedupe(refIDs)

	if len(refIDs) > 0 {
		if err = assoc.resolveRefs(ctx, tx, refIDs); err != nil {
			return err
		}
	}

	if err = insertPrimary(tx); err != nil {
		return err
	}

	if len(refIDs) > 0 {
		if err = assoc.insertJoinRows(ctx, tx, scope, entityID, refIDs); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", assoc.JoinTable, err)
	}

	committed = true

	return nil
}

// resolveRefs checks that every requested reference id exists before anything
// is written. The first id that fails to resolve is reported.
func (assoc Association) resolveRefs(ctx context.Context, tx *sqlx.Tx, refIDs []string) error {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IN (?)", assoc.RefPrimary, assoc.RefTable, assoc.RefPrimary)

	args := []any{refIDs}
	if assoc.RefKindColumn != "" {
		query += fmt.Sprintf(" AND %s = ?", assoc.RefKindColumn)
		args = append(args, assoc.RefKind)
	}

	query, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to build reference lookup (%s): %w", assoc.RefTable, err)
	}

	query = tx.Rebind(query)

	var found []string
	if err := tx.SelectContext(ctx, &found, query, inArgs...); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to resolve references (%s): %w", assoc.RefTable, err)
	}

	for _, id := range refIDs {
		if !slices.Contains(found, id) {
			return failure.ReferenceNotFound(id) //nolint:wrapcheck
		}
	}

	return nil
}

func (assoc Association) insertJoinRows(ctx context.Context, tx *sqlx.Tx, scope otel.Scope, entityID string, refIDs []string) error {
	values := make([]string, len(refIDs))
	args := make([]any, 0, len(refIDs)*2)

	for i, refID := range refIDs {
		values[i] = fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2)
		args = append(args, entityID, refID)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES %s", assoc.JoinTable, assoc.EntityColumn, assoc.RefColumn, strings.Join(values, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to attach references (%s): %w", assoc.JoinTable, err)
	}

	return nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	return out
}
