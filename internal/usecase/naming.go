package usecase

import (
	"strings"

	"github.com/semmidev/chbackup/internal/domain"
)

// Prefix is the object key prefix grouping every backup of a table.
func Prefix(database, table string) string {
	return database + "/" + table
}

func prefixOf(t domain.TableRef) string {
	return Prefix(t.Database, t.Table)
}

// objectURL joins the public endpoint, bucket and key into the URL the engine writes to.
func objectURL(endpoint, bucket, key string) string {
	return strings.TrimSuffix(endpoint, "/") + "/" + bucket + "/" + key
}
