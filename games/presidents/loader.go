/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package presidents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"golang.org/x/sync/singleflight"
)

// DefaultURL is the public endpoint serving the list of presidents.
const DefaultURL = "https://api.sampleapis.com/presidents/presidents"

// maxPayload bounds how much of the response body is read.
const maxPayload = 8 << 20

var (
	// ErrLoad matches every error returned by Loader.Load.
	ErrLoad = errors.New("failed to load president data")

	errNoRecords = errors.New("payload contained no usable records")
)

// LoadError describes a failed retrieval of the record set.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// Loader fetches the record set with a single GET request. There is no
// retry; callers treat any error as fatal for the session. Concurrent calls
// share one request.
type Loader struct {
	client *http.Client
	url    string
	sf     singleflight.Group
}

func NewLoader(client *http.Client, url string) *Loader {
	if client == nil {
		client = http.DefaultClient
	}

	return &Loader{client: client, url: url}
}

// Load retrieves and parses the record set. Unknown fields are ignored and
// records without a name are dropped.
//
// The shared request runs on a context detached from the caller's
// cancellation, bounded by the caller's deadline. A caller whose context
// ends stops waiting without failing the others.
func (l *Loader) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, l.fail(err)
	}

	ch := l.sf.DoChan(l.url, func() (any, error) {
		shared, cancel := detach(ctx)
		defer cancel()

		return l.fetch(shared)
	})

	select {
	case <-ctx.Done():
		return nil, l.fail(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return slices.Clone(res.Val.([]Record)), nil
	}
}

func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	shared := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(shared, deadline)
	}

	return context.WithCancel(shared)
}

func (l *Loader) fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, l.fail(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, l.fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, l.fail(fmt.Errorf("unexpected status %s", resp.Status))
	}

	var raw []Record
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayload)).Decode(&raw); err != nil {
		return nil, l.fail(fmt.Errorf("decode payload: %w", err))
	}

	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			continue
		}
		records = append(records, r)
	}

	if len(records) == 0 {
		return nil, l.fail(errNoRecords)
	}

	return records, nil
}

func (l *Loader) fail(err error) error {
	return &LoadError{URL: l.url, Err: err}
}
