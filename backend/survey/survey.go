// Package survey drives the multi-step course-recommendation questionnaire:
// fixed per-track question banks, the in-session run state and the static
// track-to-course lookup.
package survey

import (
	"encoding/json"
	"strconv"
)

// Track identifiers
const (
	TrackBackend     = "backend"
	TrackFrontend    = "frontend"
	TrackDataScience = "data_science"
	TrackDevOps      = "devops"
	TrackAIML        = "ai_ml"
)

type Option struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// Все вопросы используют одну шкалу ответов.
var scale = []Option{
	{Text: "Очень", Score: 3},
	{Text: "Скорее да", Score: 2},
	{Text: "Немного", Score: 1},
	{Text: "Совсем нет", Score: 0},
}

var trackCourses = map[string]string{
	TrackBackend:     "Backend-разработка с Python",
	TrackFrontend:    "Frontend-разработка с JavaScript",
	TrackDataScience: "Data Science и анализ данных",
	TrackDevOps:      "DevOps-инженерия",
	TrackAIML:        "Искусственный интеллект и машинное обучение",
}

var trackQuestions = map[string][]string{
	TrackBackend: {
		"Насколько вам интересно проектировать серверную логику?",
		"Нравится ли вам работать с базами данных?",
		"Интересно ли вам устройство HTTP и REST API?",
		"Хотите ли вы изучать Python глубже?",
		"Интересна ли вам оптимизация производительности?",
		"Нравится ли вам разбираться в архитектуре приложений?",
		"Интересна ли вам безопасность веб-приложений?",
		"Хотите ли вы работать с очередями и фоновыми задачами?",
		"Нравится ли вам писать автоматические тесты?",
		"Интересно ли вам администрирование серверов?",
	},
	TrackFrontend: {
		"Насколько вам интересен визуальный дизайн интерфейсов?",
		"Нравится ли вам верстать страницы на HTML и CSS?",
		"Интересен ли вам JavaScript?",
		"Хотите ли вы изучать современные фреймворки (React, Vue)?",
		"Интересна ли вам анимация и интерактивность?",
		"Нравится ли вам адаптивная вёрстка под мобильные устройства?",
		"Интересна ли вам доступность интерфейсов?",
		"Хотите ли вы работать с дизайнерами в связке?",
		"Нравится ли вам доводить мелкие детали до идеала?",
		"Интересна ли вам скорость загрузки страниц?",
	},
	TrackDataScience: {
		"Насколько вам интересна работа с данными?",
		"Нравится ли вам статистика и математика?",
		"Интересна ли вам визуализация данных?",
		"Хотите ли вы изучать pandas и numpy?",
		"Интересен ли вам SQL и аналитические запросы?",
		"Нравится ли вам искать закономерности в числах?",
		"Интересны ли вам A/B-эксперименты?",
		"Хотите ли вы строить прогнозные модели?",
		"Нравится ли вам готовить отчёты и дашборды?",
		"Интересна ли вам очистка и подготовка данных?",
	},
	TrackDevOps: {
		"Насколько вам интересна автоматизация инфраструктуры?",
		"Нравится ли вам работать с Linux?",
		"Интересны ли вам контейнеры и Docker?",
		"Хотите ли вы настраивать CI/CD-пайплайны?",
		"Интересен ли вам мониторинг и алертинг?",
		"Нравится ли вам писать скрипты для рутинных задач?",
		"Интересны ли вам облачные платформы?",
		"Хотите ли вы управлять кластерами Kubernetes?",
		"Нравится ли вам разбираться в сетях?",
		"Интересна ли вам надёжность и отказоустойчивость?",
	},
	TrackAIML: {
		"Насколько вам интересен искусственный интеллект?",
		"Нравится ли вам линейная алгебра?",
		"Интересно ли вам машинное обучение?",
		"Хотите ли вы обучать нейронные сети?",
		"Интересна ли вам обработка естественного языка?",
		"Нравится ли вам читать научные статьи?",
		"Интересно ли вам компьютерное зрение?",
		"Хотите ли вы экспериментировать с моделями?",
		"Нравится ли вам Python как инструмент исследований?",
		"Интересны ли вам большие языковые модели?",
	},
}

// Questions returns the ordered bank for a track.
func Questions(track string) ([]Question, bool) {
	texts, ok := trackQuestions[track]
	if !ok {
		return nil, false
	}
	questions := make([]Question, len(texts))
	for i, text := range texts {
		questions[i] = Question{
			ID:      questionID(i),
			Text:    text,
			Options: scale,
		}
	}
	return questions, true
}

func questionID(index int) string {
	return "q" + strconv.Itoa(index+1)
}

// RecommendedCourse maps a track to its fixed course title. The recommendation
// is a static lookup: the accumulated score is recorded but never branches.
func RecommendedCourse(track string) (string, bool) {
	title, ok := trackCourses[track]
	return title, ok
}

// ValidScore reports whether a submitted score is on the answer scale.
func ValidScore(score int) bool {
	return score >= 0 && score <= 3
}

// State is the per-user run state held in the session between requests.
type State struct {
	Track   string         `json:"track"`
	Answers map[string]int `json:"answers"`
	Index   int            `json:"index"`
}

// NewState starts a fresh run for a track with an empty answer map.
func NewState(track string) *State {
	return &State{Track: track, Answers: map[string]int{}}
}

// Current returns the question the run is waiting on.
func (s *State) Current(questions []Question) (Question, bool) {
	if s.Index < 0 || s.Index >= len(questions) {
		return Question{}, false
	}
	return questions[s.Index], true
}

// Record stores the answer for the current question and advances.
func (s *State) Record(questionID string, score int) {
	if s.Answers == nil {
		s.Answers = map[string]int{}
	}
	s.Answers[questionID] = score
	s.Index++
}

// Done reports whether every question in the bank has been answered.
func (s *State) Done(questions []Question) bool {
	return s.Index >= len(questions)
}

// Sum totals the recorded scores.
func (s *State) Sum() int {
	total := 0
	for _, score := range s.Answers {
		total += score
	}
	return total
}

// Encode serializes the state for session storage.
func (s *State) Encode() (string, error) {
	raw, err := json.Marshal(s)
	return string(raw), err
}

// DecodeState restores a run from its session representation.
func DecodeState(raw string) (*State, error) {
	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	return &s, nil
}
