package store

import (
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
)

// QueryBuilderLog is one user feedback record: what the user asked, what
// the pipeline produced, and what they kept.
type QueryBuilderLog struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"user_id"`
	InputPrompt      string `json:"input_prompt"`
	GeneratedMessage string `json:"generated_message"`
	FinalMessage     string `json:"final_message"`
	Rating           int    `json:"rating"`
	WasEdited        bool   `json:"was_edited"`
	CreatedAt        string `json:"created_at"`
}

// CorrectionPair is an edited feedback record shaped as a training pair.
type CorrectionPair struct {
	Input           string `json:"input"`
	Message         string `json:"message"`
	OriginalMessage string `json:"original_message"`
	Rating          int    `json:"rating"`
	Source          string `json:"source"`
}

type FeedbackStore struct {
	DB *sql.DB
}

func NewFeedbackStore(dbPath string) (*FeedbackStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	schema := `CREATE TABLE IF NOT EXISTS query_builder_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		input_prompt TEXT,
		generated_message TEXT,
		final_message TEXT,
		rating INTEGER,
		was_edited BOOLEAN DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err = db.Exec(schema); err != nil {
		return nil, err
	}

	return &FeedbackStore{DB: db}, nil
}

func (s *FeedbackStore) Close() error {
	return s.DB.Close()
}

// LogFeedback stores one feedback record and returns its id. was_edited is
// derived from whether the user changed the generated message.
func (s *FeedbackStore) LogFeedback(userID int64, inputPrompt, generatedMessage, finalMessage string, rating int) (int64, error) {
	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	wasEdited := generatedMessage != finalMessage

	result, err := s.DB.Exec(
		`INSERT INTO query_builder_logs (user_id, input_prompt, generated_message, final_message, rating, was_edited) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, inputPrompt, generatedMessage, finalMessage, rating, wasEdited,
	)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// ExportCorrections returns the edited records as training pairs, using
// the user's corrected message as ground truth.
func (s *FeedbackStore) ExportCorrections() ([]CorrectionPair, error) {
	rows, err := s.DB.Query(
		`SELECT input_prompt, generated_message, final_message, rating FROM query_builder_logs WHERE was_edited = 1 ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []CorrectionPair
	for rows.Next() {
		var p CorrectionPair
		if err := rows.Scan(&p.Input, &p.OriginalMessage, &p.Message, &p.Rating); err != nil {
			return nil, err
		}
		p.Source = "user_correction"
		pairs = append(pairs, p)
	}

	return pairs, rows.Err()
}
