package state

import "errors"

// ErrJournalUnbalanced reports a commit of a checkpoint that is not the
// innermost open one, or a revert of a checkpoint that is not open.
var ErrJournalUnbalanced = errors.New("journal checkpoint/commit calls are unbalanced")
