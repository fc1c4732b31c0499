package backendless

import (
	"fmt"
	"strings"
)

// WhereEqual builds an equality predicate in the remote store's SQL-like
// where language, e.g. `code = 'CALC1'`. The value is always emitted as a
// single quoted literal so caller-supplied input cannot extend the
// predicate with additional clauses.
func WhereEqual(field, value string) string {
	return fmt.Sprintf("%s = '%s'", field, escapeLiteral(value))
}

// escapeLiteral escapes the quote and escape characters of the where
// language. Quotes are doubled per SQL convention.
func escapeLiteral(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `''`)
	return v
}
