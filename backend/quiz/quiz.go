// Package quiz keeps the fixed per-course knowledge tests and scores
// submissions against them.
package quiz

import "math"

type Question struct {
	ID      string            `json:"id"`
	Text    string            `json:"text"`
	Options map[string]string `json:"options"`
	Correct string            `json:"-"`
}

type QuestionResult struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Submitted string `json:"submitted"`
	Correct   string `json:"correct"`
	IsCorrect bool   `json:"is_correct"`
}

type Result struct {
	Total      int              `json:"total"`
	Correct    int              `json:"correct"`
	Percentage float64          `json:"percentage"`
	Details    []QuestionResult `json:"details"`
}

// banks are keyed by course title, matching the catalog seed data.
var banks = map[string][]Question{
	"Основы программирования на Python": {
		{
			ID:   "q1",
			Text: "Какой тип данных возвращает input()?",
			Options: map[string]string{
				"a": "str", "b": "int", "c": "float", "d": "bool",
			},
			Correct: "a",
		},
		{
			ID:   "q2",
			Text: "Какие коллекции изменяемы?",
			Options: map[string]string{
				"a": "list", "b": "dict", "c": "tuple", "d": "frozenset",
			},
			// Историческое составное значение: с одиночным ключом ответа
			// никогда не совпадает.
			Correct: "a,b",
		},
		{
			ID:   "q3",
			Text: "Что выведет print(2 ** 3)?",
			Options: map[string]string{
				"a": "6", "b": "8", "c": "9", "d": "23",
			},
			Correct: "b",
		},
		{
			ID:   "q4",
			Text: "Как объявить функцию в Python?",
			Options: map[string]string{
				"a": "function f():", "b": "def f():", "c": "fn f():", "d": "func f():",
			},
			Correct: "b",
		},
	},
	"Веб-разработка (HTML, CSS, JS)": {
		{
			ID:   "q1",
			Text: "Какой тег задаёт заголовок первого уровня?",
			Options: map[string]string{
				"a": "<header>", "b": "<h1>", "c": "<title>", "d": "<head>",
			},
			Correct: "b",
		},
		{
			ID:   "q2",
			Text: "Какое свойство CSS задаёт цвет текста?",
			Options: map[string]string{
				"a": "font-color", "b": "text-style", "c": "color", "d": "background",
			},
			Correct: "c",
		},
		{
			ID:   "q3",
			Text: "Как объявить переменную в современном JavaScript?",
			Options: map[string]string{
				"a": "var", "b": "let", "c": "dim", "d": "set",
			},
			Correct: "b",
		},
	},
	"Backend-разработка с Python": {
		{
			ID:   "q1",
			Text: "Какой HTTP-метод используется для создания ресурса?",
			Options: map[string]string{
				"a": "GET", "b": "POST", "c": "HEAD", "d": "OPTIONS",
			},
			Correct: "b",
		},
		{
			ID:   "q2",
			Text: "Что такое ORM?",
			Options: map[string]string{
				"a": "Протокол передачи данных",
				"b": "Отображение объектов на реляционную модель",
				"c": "Формат сериализации",
				"d": "Веб-сервер",
			},
			Correct: "b",
		},
		{
			ID:   "q3",
			Text: "Какой код статуса означает «не найдено»?",
			Options: map[string]string{
				"a": "200", "b": "301", "c": "404", "d": "500",
			},
			Correct: "c",
		},
	},
}

// BankFor returns the question set for a course title. A missing bank is not
// an error: the course simply has no test.
func BankFor(courseTitle string) ([]Question, bool) {
	bank, ok := banks[courseTitle]
	return bank, ok
}

// Unanswered returns the ids of questions absent from the submission.
func Unanswered(questions []Question, answers map[string]string) []string {
	var missing []string
	for _, q := range questions {
		if answers[q.ID] == "" {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Evaluate scores a complete submission. Comparison is exact string equality
// of the submitted option key against the stored correct key.
func Evaluate(questions []Question, answers map[string]string) Result {
	result := Result{Total: len(questions)}
	for _, q := range questions {
		submitted := answers[q.ID]
		correct := submitted == q.Correct
		if correct {
			result.Correct++
		}
		result.Details = append(result.Details, QuestionResult{
			ID:        q.ID,
			Text:      q.Text,
			Submitted: submitted,
			Correct:   q.Correct,
			IsCorrect: correct,
		})
	}
	if result.Total > 0 {
		pct := float64(result.Correct) / float64(result.Total) * 100
		result.Percentage = math.Round(pct*100) / 100
	}
	return result
}

// MergeProgress implements the "keep the best score" rule shared by the
// favorite and per-module progress updates.
func MergeProgress(existing, incoming int) int {
	if incoming > existing {
		return incoming
	}
	return existing
}
