package batch

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Scales below this finish too fast for a bar to be worth drawing.
const progressThreshold = 50_000

func (r *Runner) newBar(n int) *progressbar.ProgressBar {
	if r.Quiet || n < progressThreshold {
		return nil
	}

	return progressbar.NewOptions(n,
		progressbar.OptionSetDescription(ArtifactName(n)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
