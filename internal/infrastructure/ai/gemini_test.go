package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"lazyintern/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/genai"
)

type fakeModels struct {
	reply  string
	err    error
	model  string
	config *genai.GenerateContentConfig
	prompt string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.config = model, cfg
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: f.reply}}},
		}},
	}, nil
}

func TestGemini_GenerateJSON(t *testing.T) {
	models := &fakeModels{reply: "```json\n{\"major\":\"CS\"}\n```"}
	g := NewGemini(models, "gemini-test", time.Second, zaptest.NewLogger(t))

	out, err := g.GenerateJSON(context.Background(), "system", "react devs")
	require.NoError(t, err)
	assert.Equal(t, `{"major":"CS"}`, out)
	assert.Equal(t, "gemini-test", models.model)
	assert.Equal(t, "react devs", models.prompt)
	assert.Equal(t, "application/json", models.config.ResponseMIMEType)
	require.NotNil(t, models.config.SystemInstruction)
	assert.Equal(t, "system", models.config.SystemInstruction.Parts[0].Text)
}

func TestGemini_Errors(t *testing.T) {
	g := NewGemini(&fakeModels{err: errors.New("quota")}, "m", 0, nil)
	_, err := g.GenerateJSON(context.Background(), "s", "q")
	assert.ErrorContains(t, err, "quota")

	g = NewGemini(&fakeModels{reply: "  "}, "m", 0, nil)
	_, err = g.GenerateJSON(context.Background(), "s", "q")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestNew_DisabledWithoutKey(t *testing.T) {
	g, err := New(context.Background(), config.AIConfig{Model: "m"}, nil)
	require.NoError(t, err)
	assert.Nil(t, g)
}
