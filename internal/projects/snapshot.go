package projects

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/projtrack/internal/common"
	"github.com/dmitrijs2005/projtrack/internal/models"
)

// EncodeSnapshot serializes snap in the persisted record format.
func EncodeSnapshot(snap models.ProjectSnapshot) ([]byte, error) {
	b, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode project record: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses a persisted record. Missing module and document
// lists decode as empty. A record holding statuses or progress values outside
// the data model is rejected.
func DecodeSnapshot(b []byte) (models.ProjectSnapshot, error) {
	var snap models.ProjectSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return models.ProjectSnapshot{}, fmt.Errorf("decode project record: %w", err)
	}
	if snap.Projects == nil {
		snap.Projects = []models.Project{}
	}
	for i := range snap.Projects {
		p := &snap.Projects[i]
		if p.Modules == nil {
			p.Modules = []models.Module{}
		}
		for j := range p.Modules {
			if p.Modules[j].Documents == nil {
				p.Modules[j].Documents = []models.Document{}
			}
		}
	}
	if err := validateSnapshot(snap); err != nil {
		return models.ProjectSnapshot{}, fmt.Errorf("decode project record: %w", err)
	}
	return snap, nil
}

func validateSnapshot(snap models.ProjectSnapshot) error {
	for _, p := range snap.Projects {
		if !p.Status.Valid() {
			return fmt.Errorf("project %q: %w %q", p.ID, common.ErrInvalidStatus, p.Status)
		}
		for _, m := range p.Modules {
			if m.Progress < 0 || m.Progress > 100 {
				return fmt.Errorf("module %q: %w", m.ID, common.ErrInvalidProgress)
			}
			if !m.Status.Valid() {
				return fmt.Errorf("module %q: %w %q", m.ID, common.ErrInvalidStatus, m.Status)
			}
		}
	}
	return nil
}
