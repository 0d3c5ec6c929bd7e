// Package http provides http transport for the digest service
package http

import (
	stdhttp "net/http"
	"time"

	"golang.org/x/text/language"

	"velofact/internal/core/lexicon"
	perr "velofact/internal/platform/errors"
	phttp "velofact/internal/platform/net/http"
	"velofact/internal/services/digest/domain"
	svc "velofact/internal/services/digest/service"
)

// Register mounts digest endpoints on the given router
func Register(r phttp.Router, s svc.Service, now func() time.Time) {
	h := &handlers{svc: s, now: now}

	// one sentence about yesterday, lang defaults to fr
	phttp.GetJSON(r, "/fact", h.fact)

	// shape of the fetched count history
	phttp.GetJSON(r, "/summary", h.summary)
}

type handlers struct {
	svc svc.Service
	now func() time.Time
}

func (h *handlers) fact(r *stdhttp.Request) (any, error) {
	lang, err := parseLang(r.URL.Query().Get("lang"))
	if err != nil {
		return nil, err
	}
	return h.svc.Compose(r.Context(), domain.ComposeInput{Lang: lang, Now: h.now()})
}

func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	return h.svc.Summarize(r.Context())
}

// parseLang resolves the lang query param against the supported languages
func parseLang(raw string) (language.Tag, error) {
	if raw == "" {
		return language.French, nil
	}
	parsed, err := language.Parse(raw)
	if err != nil {
		return language.Und, perr.Validationf("unparseable lang %q", raw)
	}
	matcher := language.NewMatcher(lexicon.Languages())
	tag, _, conf := matcher.Match(parsed)
	if conf == language.No {
		return language.Und, perr.Validationf("unsupported lang %q", raw)
	}
	// Match can return extended tags, pin back to the canonical set
	base, _ := tag.Base()
	for _, supported := range lexicon.Languages() {
		if sb, _ := supported.Base(); sb == base {
			return supported, nil
		}
	}
	return language.Und, perr.Validationf("unsupported lang %q", raw)
}
