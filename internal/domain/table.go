package domain

import (
	"fmt"
	"strings"
	"unicode"
)

type TableRef struct {
	Database string
	Table    string
}

func (t TableRef) String() string {
	return t.Database + "." + t.Table
}

// ParseTableRef resolves "db.table" or "table" against defaultDB.
func ParseTableRef(name, defaultDB string) (TableRef, error) {
	name = strings.TrimSpace(name)
	parts := strings.Split(name, ".")

	var ref TableRef
	switch len(parts) {
	case 1:
		ref = TableRef{Database: defaultDB, Table: parts[0]}
	case 2:
		ref = TableRef{Database: parts[0], Table: parts[1]}
	default:
		return TableRef{}, &ConfigurationError{Field: name, Reason: "expected table or database.table"}
	}

	if err := ValidateIdentifier(ref.Database); err != nil {
		return TableRef{}, &ConfigurationError{Field: name, Reason: "database " + err.Error()}
	}
	if err := ValidateIdentifier(ref.Table); err != nil {
		return TableRef{}, &ConfigurationError{Field: name, Reason: "table " + err.Error()}
	}
	return ref, nil
}

// ParseTables splits a comma-separated list, skipping blank entries.
func ParseTables(list, defaultDB string) ([]TableRef, error) {
	var tables []TableRef
	for _, item := range strings.Split(list, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		ref, err := ParseTableRef(item, defaultDB)
		if err != nil {
			return nil, err
		}
		tables = append(tables, ref)
	}
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	return tables, nil
}

// ValidateIdentifier rejects names that would break key prefixes or quoting.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	for _, r := range name {
		switch {
		case r == '/':
			return fmt.Errorf("name %q contains '/'", name)
		case r == '"', r == '\\':
			return fmt.Errorf("name %q contains a quote or backslash", name)
		case unicode.IsControl(r):
			return fmt.Errorf("name %q contains a control character", name)
		}
	}
	return nil
}
