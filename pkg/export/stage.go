package export

import (
	"sort"
	"sync"

	"github.com/goliatone/go-fosterdocs/pkg/layout"
)

// StagedPage is one document placed in a staging container.
type StagedPage struct {
	Document layout.Document
	// BreakBefore is set on every page except the first.
	BreakBefore bool
}

// Container is the off-screen wrapper an export is laid out in before it is
// rasterised.
type Container struct {
	ID    string
	Title string
	Pages []StagedPage
}

// Documents returns the staged documents in order.
func (c *Container) Documents() []layout.Document {
	docs := make([]layout.Document, 0, len(c.Pages))
	for _, page := range c.Pages {
		docs = append(docs, page.Document)
	}
	return docs
}

// Breaks counts the page breaks between staged documents.
func (c *Container) Breaks() int {
	n := 0
	for _, page := range c.Pages {
		if page.BreakBefore {
			n++
		}
	}
	return n
}

func newContainer(id, title string, docs []layout.Document) *Container {
	c := &Container{ID: id, Title: title, Pages: make([]StagedPage, 0, len(docs))}
	for idx, doc := range docs {
		doc.Mode = layout.ModeExport
		c.Pages = append(c.Pages, StagedPage{Document: doc, BreakBefore: idx > 0})
	}
	return c
}

// Stage is the shared host containers are attached to while they render.
type Stage struct {
	mu         sync.Mutex
	containers map[string]*Container
	observers  []func(attached int)
}

// NewStage creates an empty staging host.
func NewStage() *Stage {
	return &Stage{containers: make(map[string]*Container)}
}

// Attach places c on the stage.
func (s *Stage) Attach(c *Container) {
	if c == nil {
		return
	}
	s.mu.Lock()
	s.containers[c.ID] = c
	n := len(s.containers)
	observers := append([]func(int){}, s.observers...)
	s.mu.Unlock()
	notify(observers, n)
}

// Detach removes the container with id. Unknown ids are ignored.
func (s *Stage) Detach(id string) {
	s.mu.Lock()
	if _, ok := s.containers[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.containers, id)
	n := len(s.containers)
	observers := append([]func(int){}, s.observers...)
	s.mu.Unlock()
	notify(observers, n)
}

// Attached lists the ids currently on the stage.
func (s *Stage) Attached() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.containers))
	for id := range s.containers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports how many containers are attached.
func (s *Stage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.containers)
}

// Observe registers fn to be called with the attached count after every
// change.
func (s *Stage) Observe(fn func(attached int)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func notify(observers []func(int), n int) {
	for _, fn := range observers {
		fn(n)
	}
}
