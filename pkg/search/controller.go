package search

import (
	"sync"
	"time"
)

// View is what the results region renders after every change.
type View struct {
	Result      Result       `json:"result"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	Category    string       `json:"category"`
	Sort        SortMode     `json:"sort"`
}

// Controller wires an Engine to input events. Typing is debounced; everything else re-renders
// immediately. Every state change is pushed to the listener.
type Controller struct {
	mu       sync.Mutex
	emitMu   sync.Mutex
	engine   *Engine
	debounce *Debouncer
	listener func(View)
}

func NewController(engine *Engine, quiet time.Duration, listener func(View)) *Controller {
	if listener == nil {
		listener = func(View) {}
	}
	return &Controller{
		engine:   engine,
		debounce: NewDebouncer(quiet),
		listener: listener,
	}
}

// Input records a keystroke. The search runs once typing has paused.
func (c *Controller) Input(raw string) {
	c.mu.Lock()
	c.engine.SetSearchTerm(raw)
	c.mu.Unlock()
	c.debounce.Trigger(func() { c.refresh(true) })
}

// Submit runs the pending search now, as on Enter or the search button.
func (c *Controller) Submit() {
	c.debounce.Cancel()
	c.refresh(false)
}

func (c *Controller) Clear() {
	c.debounce.Cancel()
	c.mu.Lock()
	c.engine.SetSearchTerm("")
	c.mu.Unlock()
	c.refresh(false)
}

func (c *Controller) SetCategory(category string) error {
	c.mu.Lock()
	err := c.engine.SetCategoryFilter(category)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.refresh(false)
	return nil
}

func (c *Controller) SetSort(mode SortMode) error {
	c.mu.Lock()
	err := c.engine.SetSort(mode)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.refresh(false)
	return nil
}

// Choose applies a suggestion. A category suggestion switches the filter and empties the
// search box; the others replace the search term.
func (c *Controller) Choose(s Suggestion) error {
	c.debounce.Cancel()
	c.mu.Lock()
	var err error
	if s.Kind == SuggestCategory {
		err = c.engine.SetCategoryFilter(s.Value)
		c.engine.SetSearchTerm("")
	} else {
		c.engine.SetSearchTerm(s.Value)
	}
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.refresh(false)
	return nil
}

// ClearAll resets term, category and sort.
func (c *Controller) ClearAll() {
	c.debounce.Cancel()
	c.mu.Lock()
	c.engine.SetSearchTerm("")
	_ = c.engine.SetCategoryFilter(All)
	_ = c.engine.SetSort(SortDefault)
	c.mu.Unlock()
	c.refresh(false)
}

func (c *Controller) Current() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked(false)
}

// Close cancels pending debounced work. Later input is ignored.
func (c *Controller) Close() {
	c.debounce.Stop()
}

func (c *Controller) viewLocked(withSuggestions bool) View {
	v := View{
		Result:   c.engine.Apply(),
		Category: c.engine.CategoryFilter(),
		Sort:     c.engine.Sort(),
	}
	if withSuggestions {
		v.Suggestions = c.engine.Suggestions(c.engine.SearchTerm())
	}
	return v
}

func (c *Controller) refresh(withSuggestions bool) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	c.mu.Lock()
	v := c.viewLocked(withSuggestions)
	c.mu.Unlock()
	c.listener(v)
}
