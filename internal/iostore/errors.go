package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
)

// OpenError signals that the registry database cannot be opened or
// migrated.
func OpenError(path string, err error) error {
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg: `Cannot open the download registry <em>%s</em>.

Check filesystem permissions; delete the file to start a fresh registry.`,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open registry %s: %w", path, err),
	}
}

// QueryError signals a failed registry read or write.
func QueryError(err error) error {
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  "A download registry operation failed.",
		Err:  fmt.Errorf("registry query: %w", err),
	}
}
