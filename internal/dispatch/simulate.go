package dispatch

import "context"

// SimulatedBrowser stands in for the external browser automation layer.
// Every job page presents a single form that is immediately submittable, so
// flows complete without touching a real site. Used for dry runs.
type SimulatedBrowser struct{}

func (SimulatedBrowser) OpenJob(_ context.Context, _ string) (PageProbe, error) {
	return simulatedPage{}, nil
}

type simulatedPage struct{}

func (simulatedPage) Fill(context.Context, string) error { return nil }

func (simulatedPage) Detect(context.Context) (Affordance, error) { return AffordanceSubmit, nil }

func (simulatedPage) Advance(context.Context) error { return nil }

func (simulatedPage) Close() error { return nil }
