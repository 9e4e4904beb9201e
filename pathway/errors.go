package pathway

import "fmt"

// Internal parse-failure reasons, each wrapping ErrInvalidPath so
// errors.Is(err, ErrInvalidPath) holds for every *InvalidPath Parse
// returns, while still carrying its own specific message.
var (
	errLeadingDot        = fmt.Errorf("%w: path cannot start with '.'", ErrInvalidPath)
	errEmptySegment      = fmt.Errorf("%w: empty path segment", ErrInvalidPath)
	errUnbalancedBracket = fmt.Errorf("%w: unbalanced '['", ErrInvalidPath)
	errNonNumericIndex   = fmt.Errorf("%w: array index must be a non-negative integer", ErrInvalidPath)
)
