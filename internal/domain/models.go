package domain

import "time"

// QuestionType discriminates how a question is answered and graded.
type QuestionType string

const (
	// QuestionSingle has exactly one correct option.
	QuestionSingle QuestionType = "single"
	// QuestionMultiple is graded against the full set of correct options.
	QuestionMultiple QuestionType = "multiple"
	// QuestionText is free text compared against one reference answer.
	QuestionText QuestionType = "text"
)

// Choice reports whether the type is answered by selecting options.
func (t QuestionType) Choice() bool {
	return t == QuestionSingle || t == QuestionMultiple
}

// QuizStatus is the author-side lifecycle state of a quiz.
type QuizStatus string

const (
	StatusDraft     QuizStatus = "draft"
	StatusPublished QuizStatus = "published"
)

// Option is one selectable answer for a choice question.
type Option struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct,omitempty"`
}

// Question models a single quiz question. Options are populated for choice
// types; CorrectAnswer only for text questions.
type Question struct {
	ID            int64        `json:"id"`
	Type          QuestionType `json:"type"`
	Text          string       `json:"text"`
	Options       []Option     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	out := q
	if len(q.Options) > 0 {
		out.Options = make([]Option, len(q.Options))
		copy(out.Options, q.Options)
	}
	return out
}

// Quiz is the authored quiz definition.
type Quiz struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Category         string     `json:"category"`
	AuthorID         int64      `json:"authorId"`
	Status           QuizStatus `json:"status"`
	TimeLimitMinutes int        `json:"timeLimit"` // 0 means unlimited; the core never enforces it
	ShuffleQuestions bool       `json:"shuffleQuestions"`
	ShowResults      bool       `json:"showResults"`
	AllowRetake      bool       `json:"allowRetake"`
	Questions        []Question `json:"questions"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// Clone returns a deep copy of the quiz, questions included.
func (q Quiz) Clone() Quiz {
	out := q
	if len(q.Questions) > 0 {
		out.Questions = make([]Question, len(q.Questions))
		for i, question := range q.Questions {
			out.Questions[i] = question.Clone()
		}
	}
	return out
}

// WithoutAnswers returns a deep copy with the answer key stripped, for
// handing to respondents.
func (q Quiz) WithoutAnswers() Quiz {
	out := q.Clone()
	for i := range out.Questions {
		out.Questions[i].CorrectAnswer = ""
		for j := range out.Questions[i].Options {
			out.Questions[i].Options[j].Correct = false
		}
	}
	return out
}

// Answer is a respondent's answer to one question: selected option IDs for
// choice questions, free text for text questions. The selection is treated
// as a set when graded.
type Answer struct {
	Selected []int64 `json:"selected,omitempty"`
	Text     string  `json:"text,omitempty"`
}

// Empty reports whether nothing was answered.
func (a Answer) Empty() bool {
	return len(a.Selected) == 0 && a.Text == ""
}

// Clone returns a deep copy of the answer.
func (a Answer) Clone() Answer {
	out := a
	if len(a.Selected) > 0 {
		out.Selected = make([]int64, len(a.Selected))
		copy(out.Selected, a.Selected)
	}
	return out
}

// ResultDetail records the outcome for one question of a finished attempt.
// Answer is nil when the question was left unanswered. CorrectAnswer holds
// the correct option texts in definition order, or the reference answer for
// text questions.
type ResultDetail struct {
	QuestionText  string   `json:"questionText"`
	Answer        *Answer  `json:"answer,omitempty"`
	Correct       bool     `json:"correct"`
	CorrectAnswer []string `json:"correctAnswer"`
}

// Result is the immutable outcome of one finished attempt. UserID is nil
// for anonymous respondents.
type Result struct {
	ID             int64          `json:"id"`
	QuizID         int64          `json:"quizId"`
	UserID         *int64         `json:"userId,omitempty"`
	Score          int            `json:"score"` // 0..100
	CorrectCount   int            `json:"correctAnswers"`
	TotalQuestions int            `json:"totalQuestions"`
	Details        []ResultDetail `json:"details"`
	CompletedAt    time.Time      `json:"completedAt"`
}
