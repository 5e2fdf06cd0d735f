package clipboard

import "errors"

// ErrUnsupported indicates no clipboard utility is available on this system.
var ErrUnsupported = errors.New("no clipboard utility found (install xclip, xsel or wl-clipboard)")
