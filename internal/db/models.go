package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// Response is one stored questionnaire submission. Answers holds the
// respondent's own answer set; ManagerExpectations is only set for managers.
type Response struct {
	ID                  uuid.UUID             `json:"id"`
	CompanyHash         string                `json:"company_hash"`
	Team                sql.NullString        `json:"team"`
	Role                string                `json:"role"`
	Answers             json.RawMessage       `json:"answers"`
	ManagerExpectations pqtype.NullRawMessage `json:"manager_expectations"`
	CreatedAt           time.Time             `json:"created_at"`
}

type TeamDirectory struct {
	CompanyHash    string    `json:"company_hash"`
	Team           string    `json:"team"`
	ResponseCount  int32     `json:"response_count"`
	LastResponseAt time.Time `json:"last_response_at"`
}
