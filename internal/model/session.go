package model

import "time"

// Session lifecycle states as persisted.
const (
	SessionWalking   = "walking"
	SessionComplete  = "complete"
	SessionCorrupted = "corrupted"
)

// Session is one in-progress (or finished) review of a report pair. The
// walker cursor and the statistics snapshot are persisted after every
// mutation so an interrupted review resumes where it stopped.
type Session struct {
	ID          string    `db:"id" json:"id"`
	MainPath    string    `db:"main_path" json:"main_path"`
	WorkingPath string    `db:"working_path" json:"working_path"`
	DaasPath    string    `db:"daas_path" json:"daas_path"`
	State       string    `db:"state" json:"state"`
	CurrentRow  int       `db:"current_row" json:"current_row"`
	DeletedRows int       `db:"deleted_rows" json:"deleted_rows"`
	Total       int       `db:"total" json:"total"`
	LastStatus  string    `db:"last_status" json:"last_status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// Serialized as JSON columns.
	Stats  map[string]map[string]int `db:"-" json:"stats,omitempty"`
	Period Period                    `db:"-" json:"period"`
	Daas   *Aggregation              `db:"-" json:"daas,omitempty"`
}
