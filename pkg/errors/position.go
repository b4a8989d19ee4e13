package errors

import "jslint/pkg/source"

// Position re-exports source.Position so that diagnostic consumers don't
// need to import pkg/source directly just to print a location.
type Position = source.Position
