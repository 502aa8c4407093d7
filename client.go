// Package confmap maintains a conference deadline dataset reconciled from
// several independent web sources against a curated master list.
//
// A sync run works through three passes that share one matcher and one
// field merger:
//
//   - WikiCFP: every master conference is searched, the best matching
//     candidate's detail page becomes a deadline and is merged by id.
//   - CORE: every deadline is looked up in the CORE ranking portal and only
//     its ranking fields are merged.
//   - Feed: the rows of a third-party deadline feed are mapped and merged by id.
//
// Existing values always win over scraped ones; differing values are
// reported as conflicts for manual review. The result is deduplicated by id
// and sorted by deadline, with TBA entries last.
//
// Example usage:
//
//	cm, err := confmap.New(confmap.WithDataPath("_data/conferences.yml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cm.OnConflict(func(e reconciler.Event) {
//	    log.Printf("review %s", e)
//	})
//
//	result, err := cm.Sync(ctx, sync.WithBatch(0, 20), sync.WithDryRun(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package confmap

import (
	"context"

	"github.com/agentstation/confmap/internal/sources/aideadlines"
	"github.com/agentstation/confmap/internal/sources/core"
	"github.com/agentstation/confmap/internal/sources/wikicfp"
	"github.com/agentstation/confmap/internal/transport"
	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/matching"
	"github.com/agentstation/confmap/pkg/reconciler"
	pkgsync "github.com/agentstation/confmap/pkg/sync"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client manages the conference dataset.
type Client interface {
	// Persistence loads and stores masters and deadlines
	Persistence

	// Sync runs the reconciliation passes and saves the result
	Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error)

	// Search scores the WikiCFP candidates for a title without merging anything
	Search(ctx context.Context, title string, currentYear int) ([]matching.Scored, error)

	// UpdateMasters appends a master for every dataset title that has none
	UpdateMasters(dryRun bool) ([]conferences.Master, error)

	// ApplyUpdateCandidates fills missing fields from a curator-reviewed file
	ApplyUpdateCandidates(path string, dryRun bool) (*reconciler.Result, error)

	// Validate checks the stored dataset
	Validate() ([]Issue, error)

	// Hooks provides access to event callback registration
	Hooks
}

type client struct {
	options *options
	matcher *matching.Matcher
	hooks   *hooks
}

// New creates a Client. Sources that are not configured explicitly talk to
// the public WikiCFP, CORE and feed endpoints.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	if o.wikicfp == nil {
		o.wikicfp = wikicfp.New(wikicfp.WithBaseURL(o.wikicfpURL), wikicfp.WithClient(transport.New(
			"wikicfp",
			transport.WithInterval(o.wikicfpInterval),
			transport.WithUserAgent(o.userAgent),
		)))
	}
	if o.core == nil {
		o.core = core.New(core.WithBaseURL(o.coreURL), core.WithEdition(o.coreEdition), core.WithClient(transport.New(
			"core",
			transport.WithInterval(o.coreInterval),
			transport.WithUserAgent(o.userAgent),
		)))
	}
	if o.feed == nil {
		o.feed = aideadlines.New(aideadlines.WithURL(o.feedURL), aideadlines.WithClient(transport.New(
			"aideadlines",
			transport.WithUserAgent(o.userAgent),
		)))
	}

	return &client{
		options: o,
		matcher: matching.New(o.matcherOptions...),
		hooks:   newHooks(),
	}, nil
}
