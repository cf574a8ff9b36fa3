package core

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Dispatch runs every context on its own goroutine and waits for all of
// them. One context takes the same path.
func Dispatch(contexts []*Context) error {
	if len(contexts) < 1 || len(contexts) > MaxContexts {
		return fmt.Errorf("contexts must be in [1, %d], got %d",
			MaxContexts, len(contexts))
	}

	var g errgroup.Group
	for _, c := range contexts {
		g.Go(func() error {
			c.Run()
			return nil
		})
	}

	return g.Wait()
}
