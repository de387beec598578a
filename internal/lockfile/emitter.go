package lockfile

import (
	"fmt"
	"io"

	"yahb/internal/resolver"
)

const header = "# yahb lock format: version 1\n"

// Emitter writes resolved dependency sets in the yahb lock format.
type Emitter struct {
	w io.Writer
}

// NewEmitter creates a lockfile emitter.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit writes the root package, its dependency list, and one entry per
// resolved dependency. Dependencies are already sorted by the resolver.
func (e *Emitter) Emit(res *resolver.Result) error {
	if _, err := fmt.Fprint(e.w, header); err != nil {
		return err
	}
	if _, err := fmt.Fprint(e.w, "PACKAGES\n"); err != nil {
		return err
	}

	if err := e.emitOne(res.Root); err != nil {
		return err
	}

	if len(res.Deps) > 0 {
		if _, err := fmt.Fprint(e.w, "    depends:\n"); err != nil {
			return err
		}
		for _, d := range res.Deps {
			label := d.Version.Label
			if d.Recipe.Virtual {
				label = "virtual"
			}
			if _, err := fmt.Fprintf(e.w, "      %s %s\n", d.Recipe.Name, label); err != nil {
				return err
			}
		}
	}

	for _, d := range res.Deps {
		if err := e.emitOne(d); err != nil {
			return err
		}
	}

	return nil
}

func (e *Emitter) emitOne(r resolver.Resolved) error {
	if r.Recipe.Virtual {
		_, err := fmt.Fprintf(e.w, "  %s\n    virtual: true\n", r.Recipe.Name)
		return err
	}

	if _, err := fmt.Fprintf(e.w, "  %s@%s\n", r.Recipe.Name, r.Version.Label); err != nil {
		return err
	}
	if r.Spec != nil {
		if _, err := fmt.Fprintf(e.w, "    spec: %s\n", r.Spec); err != nil {
			return err
		}
	}

	switch {
	case r.Version.Branch != "":
		if _, err := fmt.Fprintf(e.w, "    source: %s branch=%s\n", r.Recipe.Git, r.Version.Branch); err != nil {
			return err
		}
	case r.Version.URL != "":
		if _, err := fmt.Fprintf(e.w, "    source: %s\n", r.Version.URL); err != nil {
			return err
		}
	}
	if r.Version.SHA256 != "" {
		if _, err := fmt.Fprintf(e.w, "    sha256: %s\n", r.Version.SHA256); err != nil {
			return err
		}
	}

	return nil
}
