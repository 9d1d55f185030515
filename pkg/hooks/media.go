package hooks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ShubSpyder/custom-hooks/pkg/events"
	"github.com/ShubSpyder/custom-hooks/pkg/reactive"
)

// MediaQuery evaluates a CSS-style media query against the viewport and
// exposes the match state as a boolean signal, updated on every resize
// event. Supported features: min-width, max-width, min-height, max-height,
// and orientation (landscape/portrait), joined with "and".
//
//	mq := hooks.NewMediaQuery(bus, "(min-width: 768px) and (orientation: landscape)")
//	wide := mq.Matches()
type MediaQuery struct {
	query    string
	conds    []mediaCondition
	parseErr error

	matches  *reactive.Signal[bool]
	listener *Listener
}

type mediaCondition struct {
	feature string
	value   int    // pixel value for width/height features
	orient  string // "landscape" or "portrait"
}

// NewMediaQuery parses query and subscribes to resize events on bus. The
// match state is false until the first resize event arrives. An
// unparseable query keeps Matches false forever and captures the error.
func NewMediaQuery(bus *events.Bus, query string) *MediaQuery {
	mq := &MediaQuery{
		query:   query,
		matches: reactive.NewSignal(false),
	}
	mq.conds, mq.parseErr = parseMediaQuery(query)
	if mq.parseErr != nil {
		return mq
	}

	mq.listener = NewListener(bus, "", events.Resize, func(ev events.Event) {
		size, ok := ev.Data.(events.ResizeEvent)
		if !ok {
			return
		}
		mq.matches.Set(mq.evaluate(size))
	})
	return mq
}

// Matches returns the current match state (tracked read).
func (mq *MediaQuery) Matches() bool { return mq.matches.Get() }

// Err returns the parse error, if any.
func (mq *MediaQuery) Err() error { return mq.parseErr }

// Query returns the original query string.
func (mq *MediaQuery) Query() string { return mq.query }

// Close unsubscribes from resize events.
func (mq *MediaQuery) Close() {
	if mq.listener != nil {
		mq.listener.Close()
	}
}

func (mq *MediaQuery) evaluate(size events.ResizeEvent) bool {
	for _, c := range mq.conds {
		switch c.feature {
		case "min-width":
			if size.Width < c.value {
				return false
			}
		case "max-width":
			if size.Width > c.value {
				return false
			}
		case "min-height":
			if size.Height < c.value {
				return false
			}
		case "max-height":
			if size.Height > c.value {
				return false
			}
		case "orientation":
			landscape := size.Width >= size.Height
			if c.orient == "landscape" && !landscape {
				return false
			}
			if c.orient == "portrait" && landscape {
				return false
			}
		}
	}
	return true
}

func parseMediaQuery(query string) ([]mediaCondition, error) {
	parts := strings.Split(query, " and ")
	conds := make([]mediaCondition, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, "(") || !strings.HasSuffix(part, ")") {
			return nil, fmt.Errorf("media query: malformed condition %q", part)
		}
		inner := part[1 : len(part)-1]

		feature, value, ok := strings.Cut(inner, ":")
		if !ok {
			return nil, fmt.Errorf("media query: missing value in %q", part)
		}
		feature = strings.TrimSpace(feature)
		value = strings.TrimSpace(value)

		switch feature {
		case "min-width", "max-width", "min-height", "max-height":
			px, err := parsePixels(value)
			if err != nil {
				return nil, fmt.Errorf("media query: %q: %w", part, err)
			}
			conds = append(conds, mediaCondition{feature: feature, value: px})
		case "orientation":
			if value != "landscape" && value != "portrait" {
				return nil, fmt.Errorf("media query: unknown orientation %q", value)
			}
			conds = append(conds, mediaCondition{feature: feature, orient: value})
		default:
			return nil, fmt.Errorf("media query: unsupported feature %q", feature)
		}
	}

	return conds, nil
}

func parsePixels(s string) (int, error) {
	s = strings.TrimSuffix(s, "px")
	px, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad pixel value %q", s)
	}
	if px < 0 {
		return 0, fmt.Errorf("negative pixel value %d", px)
	}
	return px, nil
}
