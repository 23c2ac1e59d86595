package dotgen

import (
	"io"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/ui"
)

// HandleError prints err and returns the process exit code. A cancelled
// confirmation is not a failure.
func HandleError(err error, w io.Writer) int {
	if err == nil {
		return 0
	}

	r, rerr := ui.NewRenderer(ui.FormatAuto, w)
	if rerr != nil {
		return 1
	}

	if errors.IsErrorCode(err, errors.ErrCancelled) {
		_ = r.RenderMessage("[muted]" + MsgCancelled + "[/muted]")
		return 0
	}

	_ = r.RenderError(err)
	return 1
}
