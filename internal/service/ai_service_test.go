package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vibestudy/internal/config"
	"vibestudy/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLessonUnconfiguredFallsBackToMock(t *testing.T) {
	svc := NewAIService(config.AIConfig{})
	assert.False(t, svc.Configured())

	theory, tasks := svc.GenerateLesson(context.Background(), "Python", 5, "Backend Developer")

	assert.NotEmpty(t, theory)
	require.Len(t, tasks, 3)
	assert.Equal(t, model.DifficultyEasy, tasks[0].Difficulty)
	assert.Equal(t, model.DifficultyMedium, tasks[1].Difficulty)
	assert.Equal(t, model.DifficultyHard, tasks[2].Difficulty)

	// Deterministic for the same inputs.
	theory2, _ := svc.GenerateLesson(context.Background(), "Python", 5, "Backend Developer")
	assert.Equal(t, theory, theory2)
}

func TestMockLessonPhases(t *testing.T) {
	early, _ := mockLesson("Go", 10, "Backend Developer")
	mid, _ := mockLesson("Go", 45, "Backend Developer")
	late, _ := mockLesson("Go", 80, "Backend Developer")

	assert.Contains(t, early, "foundational")
	assert.Contains(t, mid, "beyond the basics")
	assert.Contains(t, late, "advanced phase")
}

func TestGenerateLessonFromAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)

		reply := `{"theory": "Closures capture their environment.", "tasks": [{"id": 1, "title": "Counter", "description": "Build a counter with a closure.", "difficulty": "easy"}]}`
		json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []struct {
				Message AIChatMessage `json:"message"`
			}{{Message: AIChatMessage{Role: "assistant", Content: reply}}},
		})
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL, APIKey: "test-key", Model: "test-model"})
	require.True(t, svc.Configured())

	theory, tasks := svc.GenerateLesson(context.Background(), "JavaScript", 20, "Frontend Developer")

	assert.Equal(t, "Closures capture their environment.", theory)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Counter", tasks[0].Title)
	assert.Equal(t, model.DifficultyEasy, tasks[0].Difficulty)
}

func TestGenerateLessonAPIFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL, APIKey: "test-key", Model: "test-model"})
	theory, tasks := svc.GenerateLesson(context.Background(), "Rust", 12, "Systems Programmer")

	mockTheory, _ := mockLesson("Rust", 12, "Systems Programmer")
	assert.Equal(t, mockTheory, theory)
	assert.Len(t, tasks, 3)
}

func TestParseLessonContent(t *testing.T) {
	t.Run("task list with surrounding chatter", func(t *testing.T) {
		content := "Here is your lesson:\n{\"theory\": \"Slices are views.\", \"tasks\": [{\"title\": \"Reslice\", \"description\": \"...\", \"difficulty\": \"HARD\"}]}\nEnjoy!"

		theory, tasks, err := parseLessonContent(content)
		require.NoError(t, err)
		assert.Equal(t, "Slices are views.", theory)
		require.Len(t, tasks, 1)
		assert.Equal(t, 1, tasks[0].ID, "missing task ids are filled in")
		assert.Equal(t, model.DifficultyHard, tasks[0].Difficulty)
	})

	t.Run("single task and hint shape", func(t *testing.T) {
		content := `{"theory": "Maps are unordered.", "task": "Count word frequencies.", "hint": "Use a map[string]int."}`

		theory, tasks, err := parseLessonContent(content)
		require.NoError(t, err)
		assert.Equal(t, "Maps are unordered.", theory)
		require.Len(t, tasks, 1)
		assert.Equal(t, model.DifficultyMedium, tasks[0].Difficulty)
		assert.Contains(t, tasks[0].Description, "Hint: Use a map[string]int.")
	})

	t.Run("no JSON object", func(t *testing.T) {
		_, _, err := parseLessonContent("sorry, I cannot help with that")
		assert.Error(t, err)
	})

	t.Run("missing theory", func(t *testing.T) {
		_, _, err := parseLessonContent(`{"tasks": [{"title": "x"}]}`)
		assert.Error(t, err)
	})

	t.Run("unknown difficulty defaults to medium", func(t *testing.T) {
		_, tasks, err := parseLessonContent(`{"theory": "t", "tasks": [{"title": "x", "difficulty": "brutal"}]}`)
		require.NoError(t, err)
		assert.Equal(t, model.DifficultyMedium, tasks[0].Difficulty)
	})
}

func TestGenerateDailyChallenge(t *testing.T) {
	svc := NewAIService(config.AIConfig{})
	challenge := svc.GenerateDailyChallenge("Go")

	assert.Equal(t, "Build a Go Rate Limiter", challenge.Title)
	assert.Equal(t, model.DifficultyMedium, challenge.Difficulty)
	assert.NotEmpty(t, challenge.Requirements)
}
