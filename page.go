package sitemd

import "time"

// PageStatus classifies the outcome of processing one frontier URL.
type PageStatus string

// Page outcomes. Skip statuses are the only ones that do not count against
// the page budget.
const (
	PageOK              PageStatus = "ok"
	PageDuplicate       PageStatus = "duplicate"
	PageFailed          PageStatus = "failed"
	PageSkippedRobots   PageStatus = "skipped_robots"
	PageSkippedExcluded PageStatus = "skipped_excluded"
)

// Skipped reports whether the status is one of the skip outcomes.
func (s PageStatus) Skipped() bool {
	return s == PageSkippedRobots || s == PageSkippedExcluded
}

// PageRecord is the immutable per-URL result appended by the crawl
// controller. Failed pages carry a reason instead of content.
type PageRecord struct {
	URL        string     `json:"url"`
	Status     PageStatus `json:"status"`
	HTTPStatus int        `json:"httpStatus,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	Title      string     `json:"title,omitempty"`
	Markdown   string     `json:"markdown,omitempty"`
	Links      []string   `json:"links,omitempty"`
	FetchedAt  time.Time  `json:"timestamp"`
}

// CrawlState tracks the controller's session state machine.
type CrawlState string

// Session states. A session moves Idle -> Running -> {Completed, Aborted}.
const (
	StateIdle      CrawlState = "idle"
	StateRunning   CrawlState = "running"
	StateCompleted CrawlState = "completed"
	StateAborted   CrawlState = "aborted"
)

// Summary holds the session counters reported alongside the page records.
type Summary struct {
	Attempted  int `json:"attempted"`
	Succeeded  int `json:"succeeded"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	Duplicates int `json:"duplicates"`
}

// CrawlResult is the terminal artifact of a crawl session, handed to the
// exporters. Pages appear in crawl order.
type CrawlResult struct {
	ID         string        `json:"id"`
	SeedURL    string        `json:"seedUrl"`
	State      CrawlState    `json:"state"`
	Pages      []*PageRecord `json:"pages"`
	Summary    Summary       `json:"summary"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
}
