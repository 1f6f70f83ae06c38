package domain

// QuestionOption is one selectable answer for a question.
type QuestionOption struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Explanation string `json:"explanation,omitempty"`
}

// Question is a multiple-choice question. CorrectAnswer holds the ID of the
// correct option.
type Question struct {
	ID            string           `json:"id"`
	QuizID        string           `json:"quiz_id"`
	Text          string           `json:"question"`
	Difficulty    Difficulty       `json:"difficulty,omitempty"`
	Options       []QuestionOption `json:"options"`
	CorrectAnswer string           `json:"correct_answer"`
	Explanation   string           `json:"explanation"`
	Order         int              `json:"order"`
}

// Sanitized returns a copy safe to hand to a quiz taker: the correct answer
// and the explanation are withheld until the attempt is scored.
func (q Question) Sanitized() Question {
	s := q
	s.CorrectAnswer = ""
	s.Explanation = ""
	opts := make([]QuestionOption, len(q.Options))
	for i, o := range q.Options {
		opts[i] = QuestionOption{ID: o.ID, Text: o.Text}
	}
	s.Options = opts
	return s
}
