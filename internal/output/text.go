package output

import (
	"fmt"
	"io"
)

// TextFormatter prints one collision line and one timing line per pair.
// Times are seconds: user, system, user+system, then wall clock.
type TextFormatter struct{}

func (t *TextFormatter) Format(w io.Writer, data Data) error {
	if data.Config.Verbose && data.SystemInfo != nil {
		if _, err := fmt.Fprintln(w, data.SystemInfo.Banner()); err != nil {
			return err
		}
	}

	for _, r := range data.Results {
		var err error
		if r.Failed {
			_, err = fmt.Fprintf(w, "%s hashing %s: FAILED (%s): %s\n", r.Hash, r.Source, r.FailureKind, r.Error)
		} else {
			user := r.UserTime.Seconds()
			sys := r.SystemTime.Seconds()
			_, err = fmt.Fprintf(w, "%s hashing %s: %d collisions\n%10.6f %10.6f %10.6f (%10.6f)\n",
				r.Hash, r.Source, r.Collisions, user, sys, user+sys, r.TotalTime.Seconds())
		}
		if err != nil {
			return err
		}
	}
	return nil
}
