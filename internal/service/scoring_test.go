package service

import (
	"testing"

	"educonnect_backend/internal/model"
)

func mcQuestion(marks int, options ...model.QuestionOption) model.TestQuestion {
	return model.TestQuestion{
		Type:    model.QuestionMultipleChoice,
		Marks:   marks,
		Options: model.QuestionOptions(options),
	}
}

func tfQuestion(marks int, correct string) model.TestQuestion {
	return model.TestQuestion{
		Type:          model.QuestionTrueFalse,
		Marks:         marks,
		CorrectAnswer: correct,
	}
}

func TestScoreAnswers(t *testing.T) {
	questions := []model.TestQuestion{
		mcQuestion(5,
			model.QuestionOption{Text: "Paris", IsCorrect: true},
			model.QuestionOption{Text: "London"},
		),
		tfQuestion(3, "true"),
		{Type: model.QuestionShortAnswer, Marks: 10},
	}

	tests := []struct {
		name    string
		answers []model.SubmittedAnswer
		want    int
	}{
		{
			name: "all objective answers correct",
			answers: []model.SubmittedAnswer{
				{QuestionIndex: 0, Answer: "Paris"},
				{QuestionIndex: 1, Answer: "true"},
			},
			want: 8,
		},
		{
			name: "wrong multiple-choice answer scores zero",
			answers: []model.SubmittedAnswer{
				{QuestionIndex: 0, Answer: "London"},
			},
			want: 0,
		},
		{
			name: "case-sensitive exact match",
			answers: []model.SubmittedAnswer{
				{QuestionIndex: 0, Answer: "paris"},
			},
			want: 0,
		},
		{
			name: "true-false mismatch scores zero",
			answers: []model.SubmittedAnswer{
				{QuestionIndex: 1, Answer: "false"},
			},
			want: 0,
		},
		{
			name: "short answer never auto-scored",
			answers: []model.SubmittedAnswer{
				{QuestionIndex: 2, Answer: "a long essay"},
			},
			want: 0,
		},
		{
			name: "out-of-range index contributes nothing",
			answers: []model.SubmittedAnswer{
				{QuestionIndex: 7, Answer: "Paris"},
				{QuestionIndex: -1, Answer: "Paris"},
				{QuestionIndex: 1, Answer: "true"},
			},
			want: 3,
		},
		{
			name: "empty answer contributes nothing",
			answers: []model.SubmittedAnswer{
				{QuestionIndex: 0, Answer: ""},
				{QuestionIndex: 1, Answer: ""},
			},
			want: 0,
		},
		{
			name:    "no answers",
			answers: nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAnswers(questions, tt.answers)
			if got != tt.want {
				t.Errorf("ScoreAnswers() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreAnswersDeterministic(t *testing.T) {
	questions := []model.TestQuestion{
		mcQuestion(2, model.QuestionOption{Text: "A", IsCorrect: true}, model.QuestionOption{Text: "B"}),
		tfQuestion(2, "false"),
	}
	answers := []model.SubmittedAnswer{
		{QuestionIndex: 0, Answer: "A"},
		{QuestionIndex: 1, Answer: "false"},
	}

	first := ScoreAnswers(questions, answers)
	for i := 0; i < 10; i++ {
		if got := ScoreAnswers(questions, answers); got != first {
			t.Fatalf("run %d: ScoreAnswers() = %d, want %d", i, got, first)
		}
	}
}

func TestScoreAnswersFirstFlaggedOptionWins(t *testing.T) {
	// Legacy rows may carry more than one flagged option; only the first counts.
	questions := []model.TestQuestion{
		mcQuestion(4,
			model.QuestionOption{Text: "A", IsCorrect: true},
			model.QuestionOption{Text: "B", IsCorrect: true},
		),
	}

	if got := ScoreAnswers(questions, []model.SubmittedAnswer{{QuestionIndex: 0, Answer: "A"}}); got != 4 {
		t.Errorf("first flagged option: got %d, want 4", got)
	}
	if got := ScoreAnswers(questions, []model.SubmittedAnswer{{QuestionIndex: 0, Answer: "B"}}); got != 0 {
		t.Errorf("second flagged option: got %d, want 0", got)
	}
}

func TestScoreAnswersNoFlaggedOption(t *testing.T) {
	questions := []model.TestQuestion{
		mcQuestion(4, model.QuestionOption{Text: "A"}, model.QuestionOption{Text: "B"}),
	}
	if got := ScoreAnswers(questions, []model.SubmittedAnswer{{QuestionIndex: 0, Answer: "A"}}); got != 0 {
		t.Errorf("no flagged option: got %d, want 0", got)
	}
}

func TestScoreIndependentOfTotalMarks(t *testing.T) {
	// The test's declared totalMarks never feeds the score; only per-question
	// marks do.
	questions := []model.TestQuestion{
		mcQuestion(10, model.QuestionOption{Text: "yes", IsCorrect: true}, model.QuestionOption{Text: "no"}),
	}
	answers := []model.SubmittedAnswer{{QuestionIndex: 0, Answer: "yes"}}

	if got := ScoreAnswers(questions, answers); got != 10 {
		t.Errorf("ScoreAnswers() = %d, want 10", got)
	}
}
