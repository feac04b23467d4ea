package utils

import "strings"

// ParseSort converts a comma-separated sort expression ("-createdAt,title")
// into SQL ORDER BY fragments. A leading dash means descending. Field names
// are filtered against the allowed column set to keep the clause injectable-
// free; unknown fields are dropped.
func ParseSort(sort string, allowed map[string]string) []string {
	if sort == "" {
		return nil
	}

	var clauses []string
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		desc := strings.HasPrefix(field, "-")
		if desc {
			field = field[1:]
		}

		column, ok := allowed[field]
		if !ok {
			continue
		}
		if desc {
			clauses = append(clauses, column+" DESC")
		} else {
			clauses = append(clauses, column+" ASC")
		}
	}
	return clauses
}
