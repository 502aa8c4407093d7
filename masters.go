package confmap

import (
	"strings"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/logging"
)

// DeriveMasters returns a master for every conference title in deadlines
// that has none in masters yet, built from the newest edition of that
// title. Existing masters are never modified. The result follows the order
// in which titles first appear in deadlines.
func DeriveMasters(deadlines []*conferences.Deadline, masters []conferences.Master) []conferences.Master {
	known := make(map[string]bool, len(masters))
	for _, m := range masters {
		known[strings.ToLower(m.Title)] = true
	}

	var order []string
	newest := make(map[string]*conferences.Deadline)
	for _, d := range deadlines {
		key := strings.ToLower(strings.TrimSpace(d.Title))
		if key == "" || known[key] {
			continue
		}
		cur, ok := newest[key]
		if !ok {
			order = append(order, key)
		}
		if !ok || d.Year > cur.Year {
			newest[key] = d
		}
	}

	out := make([]conferences.Master, 0, len(order))
	for _, key := range order {
		d := newest[key]
		out = append(out, conferences.Master{
			Title:        key,
			FullName:     d.FullName,
			WikiCFPQuery: d.Title,
			Ranking:      d.Ranking,
			Sub:          d.Sub,
			HIndex:       d.HIndex,
		})
	}
	return out
}

// UpdateMasters appends the masters DeriveMasters finds for the stored
// dataset and saves the master list unless dryRun is set.
func (c *client) UpdateMasters(dryRun bool) ([]conferences.Master, error) {
	masters, err := c.Masters()
	if err != nil {
		return nil, err
	}
	deadlines, err := c.Deadlines()
	if err != nil {
		return nil, err
	}

	added := DeriveMasters(deadlines, masters)
	for _, m := range added {
		logging.Info().Str("title", m.Title).Str("full_name", m.FullName).Msg("New master")
	}
	if len(added) == 0 || dryRun {
		return added, nil
	}
	if err := c.SaveMasters(append(masters, added...)); err != nil {
		return nil, err
	}
	return added, nil
}
