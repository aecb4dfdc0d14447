package database

import (
	"fmt"

	"github.com/semmidev/chbackup/internal/domain"
)

// Statement is a BACKUP query with its server-side bound parameters.
type Statement struct {
	Query  string
	Params map[string]string
}

// BuildBackupStatement interpolates only the table identifier; the
// destination URLs and credentials are passed as {name:String} parameters.
// See https://clickhouse.com/docs/operations/backup#take-an-incremental-backup
func BuildBackupStatement(table domain.TableRef, plan domain.BackupPlan, creds domain.Credentials) (Statement, error) {
	if err := domain.ValidateIdentifier(table.Database); err != nil {
		return Statement{}, fmt.Errorf("invalid database identifier: %w", err)
	}
	if err := domain.ValidateIdentifier(table.Table); err != nil {
		return Statement{}, fmt.Errorf("invalid table identifier: %w", err)
	}
	if plan.Target == "" {
		return Statement{}, fmt.Errorf("backup target is empty")
	}

	query := fmt.Sprintf(
		`BACKUP TABLE "%s"."%s" TO S3({target:String}, {access_key:String}, {secret_key:String})`,
		table.Database, table.Table,
	)
	params := map[string]string{
		"target":     plan.Target,
		"access_key": creds.AccessKey,
		"secret_key": creds.SecretKey,
	}

	if plan.Incremental() {
		query += ` SETTINGS base_backup = S3({target_base:String}, {access_key:String}, {secret_key:String})`
		params["target_base"] = plan.Base
	}

	return Statement{Query: query, Params: params}, nil
}
