package conferences

import "strings"

// Master is the curator-maintained canonical definition of a recurring
// conference. Title is its identity and is compared case-insensitively.
type Master struct {
	Title        string `json:"title" yaml:"title"`                                     // Lowercase acronym, e.g. "icml"
	FullName     string `json:"full_name" yaml:"full_name"`                             // Full conference name
	WikiCFPQuery string `json:"wikicfp_query,omitempty" yaml:"wikicfp_query,omitempty"` // Search key for WikiCFP
	WikiCFPLink  string `json:"wikicfp_link,omitempty" yaml:"wikicfp_link,omitempty"`   // Direct series page, overrides the query
	Ranking      string `json:"ranking,omitempty" yaml:"ranking,omitempty"`
	Sub          string `json:"sub,omitempty" yaml:"sub,omitempty"`
	HIndex       string `json:"hindex,omitempty" yaml:"hindex,omitempty"`
}

// Master record columns.
const (
	MasterTitle        = "title"
	MasterFullName     = "full_name"
	MasterWikiCFPQuery = "wikicfp_query"
	MasterWikiCFPLink  = "wikicfp_link"
	MasterRanking      = "ranking"
	MasterSub          = "sub"
	MasterHIndex       = "hindex"
)

// MasterFromRecord converts a master-data row. The misspelled wikicpf_*
// columns of older files are accepted.
func MasterFromRecord(r Record) Master {
	m := Master{
		Title:        strings.TrimSpace(r.String(MasterTitle)),
		FullName:     strings.TrimSpace(r.String(MasterFullName)),
		WikiCFPQuery: strings.TrimSpace(r.String(MasterWikiCFPQuery)),
		WikiCFPLink:  strings.TrimSpace(r.String(MasterWikiCFPLink)),
		Ranking:      strings.TrimSpace(r.String(MasterRanking)),
		Sub:          strings.TrimSpace(r.String(MasterSub)),
		HIndex:       strings.TrimSpace(r.String(MasterHIndex)),
	}
	if m.WikiCFPQuery == "" {
		m.WikiCFPQuery = strings.TrimSpace(r.String("wikicpf_query"))
	}
	if m.WikiCFPLink == "" {
		m.WikiCFPLink = strings.TrimSpace(r.String("wikicpf_link"))
	}
	return m
}

// Record converts the master into a row with every column present.
func (m Master) Record() Record {
	return NewRecord(
		Item{MasterTitle, m.Title},
		Item{MasterFullName, m.FullName},
		Item{MasterWikiCFPQuery, m.WikiCFPQuery},
		Item{MasterWikiCFPLink, m.WikiCFPLink},
		Item{MasterRanking, m.Ranking},
		Item{MasterSub, m.Sub},
		Item{MasterHIndex, m.HIndex},
	)
}

// Query returns the WikiCFP search key, falling back to the title.
func (m Master) Query() string {
	if m.WikiCFPQuery != "" {
		return m.WikiCFPQuery
	}
	return m.Title
}

// MastersFromRecords converts master-data rows, skipping rows without a title.
func MastersFromRecords(records []Record) []Master {
	out := make([]Master, 0, len(records))
	for _, r := range records {
		m := MasterFromRecord(r)
		if m.Title == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}
