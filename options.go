package confmap

import (
	"time"

	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/matching"
	"github.com/agentstation/confmap/pkg/reconciler"
	"github.com/agentstation/confmap/pkg/sources"
)

// Option is a function that configures a Client.
type Option func(*options) error

type options struct {
	// data files
	masterPath     string
	dataPath       string
	csvPath        string
	candidatesPath string
	provenancePath string

	// sources
	wikicfp         sources.CandidateSource
	core            sources.RankingSource
	feed            sources.FeedSource
	wikicfpInterval time.Duration
	coreInterval    time.Duration
	wikicfpURL      string
	coreURL         string
	coreEdition     string
	feedURL         string
	userAgent       string

	// reconciliation
	strategy       reconciler.StrategyType
	exclusions     []string
	matcherOptions []matching.Option
}

func defaults() *options {
	return &options{
		masterPath:      constants.DefaultMasterDataPath,
		dataPath:        constants.DefaultConferencesPath,
		csvPath:         constants.DefaultConferencesCSVPath,
		candidatesPath:  constants.DefaultUpdateCandidatesPath,
		wikicfpInterval: constants.WikiCFPMinInterval,
		coreInterval:    constants.CoreMinInterval,
		wikicfpURL:      constants.WikiCFPBaseURL,
		coreURL:         constants.CoreBaseURL,
		coreEdition:     constants.CoreDefaultEdition,
		feedURL:         constants.AIDeadlinesFeedURL,
		userAgent:       constants.DefaultUserAgent,
		strategy:        reconciler.StrategyTypeRetainExisting,
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithMasterPath sets the master data file (CSV or YAML).
func WithMasterPath(path string) Option {
	return func(o *options) error {
		o.masterPath = path
		return nil
	}
}

// WithDataPath sets the YAML conference dataset.
func WithDataPath(path string) Option {
	return func(o *options) error {
		o.dataPath = path
		return nil
	}
}

// WithCSVPath sets where the CSV export is written. Empty disables the export.
func WithCSVPath(path string) Option {
	return func(o *options) error {
		o.csvPath = path
		return nil
	}
}

// WithCandidatesPath sets the default update candidates file.
func WithCandidatesPath(path string) Option {
	return func(o *options) error {
		o.candidatesPath = path
		return nil
	}
}

// WithProvenancePath enables provenance tracking, appended to path after each sync.
func WithProvenancePath(path string) Option {
	return func(o *options) error {
		o.provenancePath = path
		return nil
	}
}

// WithWikiCFP replaces the WikiCFP source.
func WithWikiCFP(src sources.CandidateSource) Option {
	return func(o *options) error {
		o.wikicfp = src
		return nil
	}
}

// WithCore replaces the ranking source.
func WithCore(src sources.RankingSource) Option {
	return func(o *options) error {
		o.core = src
		return nil
	}
}

// WithFeed replaces the deadline feed source.
func WithFeed(src sources.FeedSource) Option {
	return func(o *options) error {
		o.feed = src
		return nil
	}
}

// WithIntervals sets the minimum delay between two requests to WikiCFP and
// to CORE. Values below the sources' documented minimum are rejected.
func WithIntervals(wikicfp, core time.Duration) Option {
	return func(o *options) error {
		if wikicfp < constants.WikiCFPMinInterval {
			return errors.NewValidationError("sources.wikicfp.interval", wikicfp,
				"interval must be at least "+constants.WikiCFPMinInterval.String())
		}
		if core < constants.CoreMinInterval {
			return errors.NewValidationError("sources.core.interval", core,
				"interval must be at least "+constants.CoreMinInterval.String())
		}
		o.wikicfpInterval = wikicfp
		o.coreInterval = core
		return nil
	}
}

// WithCoreEdition selects the CORE ranking edition, e.g. "CORE2023".
func WithCoreEdition(edition string) Option {
	return func(o *options) error {
		if edition != "" {
			o.coreEdition = edition
		}
		return nil
	}
}

// WithWikiCFPURL overrides the WikiCFP site root.
func WithWikiCFPURL(url string) Option {
	return func(o *options) error {
		if url != "" {
			o.wikicfpURL = url
		}
		return nil
	}
}

// WithCoreURL overrides the CORE portal URL.
func WithCoreURL(url string) Option {
	return func(o *options) error {
		if url != "" {
			o.coreURL = url
		}
		return nil
	}
}

// WithFeedURL overrides the deadline feed URL.
func WithFeedURL(url string) Option {
	return func(o *options) error {
		if url != "" {
			o.feedURL = url
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent of every request.
func WithUserAgent(ua string) Option {
	return func(o *options) error {
		if ua != "" {
			o.userAgent = ua
		}
		return nil
	}
}

// WithStrategy sets the default conflict strategy of sync runs.
func WithStrategy(typ reconciler.StrategyType) Option {
	return func(o *options) error {
		if _, err := reconciler.NewStrategy(typ); err != nil {
			return err
		}
		o.strategy = typ
		return nil
	}
}

// WithExclusions replaces the title patterns of feed rows that are never merged.
func WithExclusions(patterns ...string) Option {
	return func(o *options) error {
		o.exclusions = patterns
		return nil
	}
}

// WithMatcherOptions tunes the candidate matcher.
func WithMatcherOptions(opts ...matching.Option) Option {
	return func(o *options) error {
		o.matcherOptions = append(o.matcherOptions, opts...)
		return nil
	}
}
