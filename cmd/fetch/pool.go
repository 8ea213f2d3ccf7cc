package fetch

import "sync"

// dispatch runs fn for every entry with at most workers in flight: a fixed
// pool of goroutines consumes a shared job channel and reports outcomes over
// a result channel. It blocks until every entry has produced an outcome and
// returns exactly one outcome per entry, in completion order. Per-item
// failures never stop the batch.
func dispatch(entries []Entry, workers int, fn func(Entry) Outcome) []Outcome {
	if len(entries) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(entries) {
		workers = len(entries)
	}

	jobs := make(chan Entry)
	results := make(chan Outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				results <- fn(entry)
			}
		}()
	}

	go func() {
		for _, entry := range entries {
			jobs <- entry
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	outcomes := make([]Outcome, 0, len(entries))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}
