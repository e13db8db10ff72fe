package property

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	loggerpkg "github.com/minhyannv/property-assistant-go/pkg/logger"
)

// Status classifies the outcome of a fetch-and-store step.
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusMalformed
	StatusIO
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusMalformed:
		return "malformed"
	case StatusIO:
		return "io"
	default:
		return "failed"
	}
}

// Result is the outcome of FetchAndStore. On any status other than
// StatusOK nothing was written.
type Result struct {
	Status Status
	URL    string
	Path   string
	Bytes  int
	Err    error
}

// OK reports whether the record was written.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Message renders the console line for the result.
func (r Result) Message() string {
	switch r.Status {
	case StatusOK:
		return fmt.Sprintf("Property data successfully retrieved '%s'", filepath.Base(r.Path))
	case StatusEmpty:
		return "ValueError: Data is empty. Property address is not correct."
	case StatusMalformed:
		return fmt.Sprintf("JSONDecodeError: %v", r.Err)
	case StatusIO:
		return fmt.Sprintf("IOError: %v", r.Err)
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", r.Err)
	}
}

// Service ties a Fetcher to a Store.
type Service struct {
	fetcher *Fetcher
	store   *Store
	baseURL string
	logger  loggerpkg.Logger
}

// NewService returns a Service. An empty baseURL uses DefaultBaseURL.
func NewService(fetcher *Fetcher, store *Store, baseURL string, logger loggerpkg.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Service{
		fetcher: fetcher,
		store:   store,
		baseURL: baseURL,
		logger:  loggerpkg.OrNop(logger),
	}
}

// FetchAndStore looks up the property for address and zpid and writes it to
// the store. Failures are reported in the Result rather than returned.
func (s *Service) FetchAndStore(ctx context.Context, address, zpid string) Result {
	res := Result{
		URL:  LookupURL(s.baseURL, address, zpid),
		Path: s.store.Path(),
	}

	raw, err := s.fetcher.Fetch(ctx, res.URL)
	if err != nil {
		res.Status, res.Err = classify(err), err
		s.logger.Warn("property fetch failed", map[string]any{"url": res.URL, "status": res.Status.String(), "error": err.Error()})
		return res
	}
	if len(raw) == 0 {
		res.Status = StatusEmpty
		res.Err = errors.New("data is empty")
		s.logger.Warn("property data empty", map[string]any{"url": res.URL})
		return res
	}

	n, err := s.store.Write(raw)
	if err != nil {
		res.Status, res.Err = classify(err), err
		s.logger.Warn("property write failed", map[string]any{"path": res.Path, "status": res.Status.String(), "error": err.Error()})
		return res
	}

	res.Status = StatusOK
	res.Bytes = n
	s.logger.Info("property record written", map[string]any{"path": res.Path, "bytes": n})
	return res
}

func classify(err error) Status {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, ErrMalformed):
		return StatusMalformed
	case errors.As(err, &pathErr):
		return StatusIO
	default:
		return StatusFailed
	}
}
