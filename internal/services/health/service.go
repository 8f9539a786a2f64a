package health

import (
	"context"
	"sort"
	"time"
)

const checkTimeout = 2 * time.Second

// Check probes one dependency; a nil error means healthy.
type Check func(ctx context.Context) error

// Status is the health payload returned by the API.
type Status struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	checks map[string]Check
	info   map[string]func() string
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{checks: map[string]Check{}, info: map[string]func() string{}}
}

// AddCheck registers a check that turns the service unhealthy when it fails.
func (s *Service) AddCheck(name string, check Check) *Service {
	s.checks[name] = check
	return s
}

// AddInfo registers a value reported alongside checks without affecting OK.
func (s *Service) AddInfo(name string, fn func() string) *Service {
	s.info[name] = fn
	return s
}

// Status runs every check with a short timeout.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true}
	if len(s.checks) == 0 && len(s.info) == 0 {
		return st
	}
	st.Checks = make(map[string]string, len(s.checks)+len(s.info))

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cctx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := s.checks[name](cctx)
		cancel()
		if err != nil {
			st.OK = false
			st.Checks[name] = err.Error()
			continue
		}
		st.Checks[name] = "ok"
	}
	for name, fn := range s.info {
		st.Checks[name] = fn()
	}
	return st
}
