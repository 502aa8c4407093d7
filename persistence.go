package confmap

import (
	"io/fs"

	"github.com/agentstation/confmap/internal/persistence"
	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ Persistence = (*client)(nil)

// Persistence handles dataset persistence operations.
type Persistence interface {
	// Masters loads the master list
	Masters() ([]conferences.Master, error)

	// Deadlines loads the conference dataset in stored order
	Deadlines() ([]*conferences.Deadline, error)

	// SaveDeadlines writes the dataset and its CSV export
	SaveDeadlines(deadlines []*conferences.Deadline) error

	// SaveMasters writes the master list
	SaveMasters(masters []conferences.Master) error
}

// Masters loads the master list. A missing file is an empty list.
func (c *client) Masters() ([]conferences.Master, error) {
	records, err := loadOptional(c.options.masterPath)
	if err != nil {
		return nil, err
	}
	return conferences.MastersFromRecords(records), nil
}

// Deadlines loads the conference dataset. A missing file is an empty dataset.
func (c *client) Deadlines() ([]*conferences.Deadline, error) {
	return loadDeadlines(c.options.dataPath)
}

// SaveDeadlines writes deadlines to the dataset file and, when configured,
// the same sequence to the CSV export.
func (c *client) SaveDeadlines(deadlines []*conferences.Deadline) error {
	return writeDeadlines(c.options.dataPath, c.options.csvPath, deadlines)
}

func writeDeadlines(dataPath, csvPath string, deadlines []*conferences.Deadline) error {
	records := make([]conferences.Record, 0, len(deadlines))
	for _, d := range deadlines {
		records = append(records, d.Record())
	}
	if err := persistence.Save(dataPath, records); err != nil {
		return err
	}
	logging.Info().Str("path", dataPath).Int("deadlines", len(records)).Msg("Saved dataset")

	if csvPath == "" {
		return nil
	}
	if err := persistence.SaveCSV(csvPath, records); err != nil {
		return err
	}
	logging.Info().Str("path", csvPath).Msg("Exported CSV")
	return nil
}

// SaveMasters writes the master list.
func (c *client) SaveMasters(masters []conferences.Master) error {
	records := make([]conferences.Record, 0, len(masters))
	for _, m := range masters {
		records = append(records, m.Record())
	}
	return persistence.Save(c.options.masterPath, records)
}

func loadDeadlines(path string) ([]*conferences.Deadline, error) {
	records, err := loadOptional(path)
	if err != nil {
		return nil, err
	}
	out := make([]*conferences.Deadline, 0, len(records))
	for i, r := range records {
		d, err := conferences.DeadlineFromRecord(r)
		if err != nil {
			return nil, errors.NewParseError("yaml", path, "record "+r.String(string(conferences.FieldID)), err)
		}
		if d.ID == "" {
			logging.Warn().Str("path", path).Int("record", i).Msg("Record without id or title and year")
		}
		out = append(out, d)
	}
	return out, nil
}

func loadOptional(path string) ([]conferences.Record, error) {
	records, err := persistence.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Debug().Str("path", path).Msg("File does not exist, starting empty")
		return nil, nil
	}
	return records, err
}
