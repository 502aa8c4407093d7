// Package constants provides shared constants used throughout the confmap codebase.
// This includes timeouts, politeness intervals, matching thresholds, output
// layouts, and the well-known URLs of the external sources.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to external sources
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands.
	// A full WikiCFP pass over a few hundred masters at one request every
	// five seconds takes well over an hour.
	CommandTimeout = 4 * time.Hour
)

// Politeness constants
const (
	// WikiCFPMinInterval is the minimum interval between two requests to WikiCFP.
	// See http://wikicfp.com/cfp/data.jsp
	WikiCFPMinInterval = 5 * time.Second

	// CoreMinInterval is the minimum interval between two requests to the CORE portal
	CoreMinInterval = 2 * time.Second

	// DefaultUserAgent is sent with every outgoing request
	DefaultUserAgent = "confmap/1.0 (+https://github.com/agentstation/confmap)"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Matching constants
const (
	// MatchThreshold is the minimum exclusive score a candidate needs to be kept
	MatchThreshold = 0.8

	// AbbreviationWeight weighs the character-set overlap of the acronym
	AbbreviationWeight = 0.7

	// NameWeight weighs the word-set overlap of the full name
	NameWeight = 0.3

	// YearWindow is how many years before or after the current one a candidate may be
	YearWindow = 1
)

// Record values with special meaning
const (
	// TBA marks a deadline that has not been announced yet
	TBA = "TBA"

	// Unset is the placeholder some feeds use for a missing value
	Unset = "--"

	// DefaultDeadlineTime is appended to deadlines known only by date
	DefaultDeadlineTime = "23:59"

	// NotePrefix is the boilerplate prefix stripped from feed notes
	NotePrefix = "<b>NOTE</b>: "

	// FarFutureYear is the year a TBA deadline sorts as
	FarFutureYear = 3000
)

// Path constants
const (
	// DefaultMasterDataPath is the default path of the curated master list
	DefaultMasterDataPath = "_data/master_data.csv"

	// DefaultConferencesPath is the default path of the published dataset
	DefaultConferencesPath = "_data/conferences.yml"

	// DefaultConferencesCSVPath is the tabular export of the published dataset
	DefaultConferencesCSVPath = "_data/conferences.csv"

	// DefaultUpdateCandidatesPath holds curator-reviewed updates waiting to be applied
	DefaultUpdateCandidatesPath = "_data/conferences_update_candidates.yml"

	// DefaultProvenancePath is where provenance history is kept when enabled
	DefaultProvenancePath = "_data/provenance.yml"

	// DefaultConfigPath is the default path for configuration files
	DefaultConfigPath = "~/.confmap/config.yaml"
)

// External source URLs
const (
	// WikiCFPBaseURL is the root of the WikiCFP site
	WikiCFPBaseURL = "http://wikicfp.com"

	// WikiCFPSearchPath is the search endpoint, relative to WikiCFPBaseURL
	WikiCFPSearchPath = "/cfp/servlet/tool.search"

	// CoreBaseURL is the CORE conference ranking portal
	CoreBaseURL = "http://portal.core.edu.au/conf-ranks/"

	// CoreDefaultEdition is the CORE ranking edition queried by default
	CoreDefaultEdition = "CORE2023"

	// AIDeadlinesFeedURL is the default third-party deadline feed
	AIDeadlinesFeedURL = "https://raw.githubusercontent.com/ad-deadlines/ad-deadlines.github.io/master/_data/conferences.yml"
)
